package services

import (
	"testing"

	"github.com/petopia/petopia/models"
)

func TestRequiredExperienceSegments(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 100},   // 40*1 + 60
		{5, 260},   // 40*5 + 60
		{10, 460},  // 40*10 + 60
		{11, 476},  // floor(0.8*121 + 380)
		{50, 2380}, // floor(0.8*2500 + 380)
		{100, 8380},
	}
	for _, tt := range tests {
		if got := RequiredExperience(tt.level); got != tt.want {
			t.Errorf("RequiredExperience(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestRequiredExperienceMonotonic(t *testing.T) {
	prev := 0
	for level := 1; level <= MaxPetLevel; level++ {
		got := RequiredExperience(level)
		if got < prev {
			t.Fatalf("RequiredExperience not monotonic at level %d: %d < %d", level, got, prev)
		}
		prev = got
	}
}

func TestAddExperienceSingleLevelUp(t *testing.T) {
	pet := &models.Pet{Level: 1}
	if !AddExperience(pet, 100) {
		t.Fatal("expected a level-up")
	}
	if pet.Level != 2 || pet.Experience != 0 {
		t.Fatalf("pet = level %d exp %d, want level 2 exp 0", pet.Level, pet.Experience)
	}
}

func TestAddExperienceNoLevelUp(t *testing.T) {
	pet := &models.Pet{Level: 1, Experience: 50}
	if AddExperience(pet, 49) {
		t.Fatal("unexpected level-up")
	}
	if pet.Level != 1 || pet.Experience != 99 {
		t.Fatalf("pet = level %d exp %d, want level 1 exp 99", pet.Level, pet.Experience)
	}
}

func TestAddExperienceMultipleLevelUps(t *testing.T) {
	// Levels 1..3 need 100+140+180 = 420; one grant covers all three.
	pet := &models.Pet{Level: 1}
	if !AddExperience(pet, 425) {
		t.Fatal("expected level-ups")
	}
	if pet.Level != 4 || pet.Experience != 5 {
		t.Fatalf("pet = level %d exp %d, want level 4 exp 5", pet.Level, pet.Experience)
	}
}

func TestAddExperienceSettlesBelowRequirement(t *testing.T) {
	pet := &models.Pet{Level: 1}
	AddExperience(pet, 1_000_000)
	if pet.Level < MaxPetLevel && pet.Experience >= RequiredExperience(pet.Level) {
		t.Fatalf("unsettled pet: level %d exp %d requirement %d",
			pet.Level, pet.Experience, RequiredExperience(pet.Level))
	}
	if pet.Experience < 0 {
		t.Fatalf("negative experience: %d", pet.Experience)
	}
}

func TestAddExperienceRespectsLevelCap(t *testing.T) {
	pet := &models.Pet{Level: MaxPetLevel}
	AddExperience(pet, 10_000_000)
	if pet.Level != MaxPetLevel {
		t.Fatalf("level = %d, want cap %d", pet.Level, MaxPetLevel)
	}
	if pet.Experience != 10_000_000 {
		t.Fatalf("experience at cap should accumulate, got %d", pet.Experience)
	}
}

func TestAddExperienceIgnoresNonPositiveAmounts(t *testing.T) {
	pet := &models.Pet{Level: 3, Experience: 10}
	if AddExperience(pet, 0) || AddExperience(pet, -50) {
		t.Fatal("non-positive grants must not level")
	}
	if pet.Level != 3 || pet.Experience != 10 {
		t.Fatalf("pet mutated by non-positive grant: level %d exp %d", pet.Level, pet.Experience)
	}
}
