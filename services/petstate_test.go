package services

import (
	"errors"
	"testing"

	"github.com/petopia/petopia/models"
)

func defaultRules() PetRules {
	return PetRules{InteractionGain: 10, PenaltyThreshold: 30, PenaltyAmount: 20}
}

func healthyPet() *models.Pet {
	return &models.Pet{
		Level: 1, Hunger: 80, Mood: 80, Stamina: 80, Cleanliness: 80, Health: 80,
	}
}

func TestInteractionRaisesTargetAttribute(t *testing.T) {
	tests := []struct {
		typ  InteractionType
		get  func(*models.Pet) int
		name string
	}{
		{InteractionFeed, func(p *models.Pet) int { return p.Hunger }, "hunger"},
		{InteractionBath, func(p *models.Pet) int { return p.Cleanliness }, "cleanliness"},
		{InteractionPlay, func(p *models.Pet) int { return p.Mood }, "mood"},
		{InteractionRest, func(p *models.Pet) int { return p.Stamina }, "stamina"},
	}
	for _, tt := range tests {
		pet := healthyPet()
		out, err := ApplyInteraction(pet, tt.typ, defaultRules())
		if err != nil {
			t.Fatalf("%s: %v", tt.typ, err)
		}
		if got := tt.get(pet); got != 90 {
			t.Errorf("%s: attribute = %d, want 90", tt.typ, got)
		}
		if out.Attribute != tt.name || out.ValueBefore != 80 || out.ValueAfter != 90 {
			t.Errorf("%s: outcome = %+v", tt.typ, out)
		}
	}
}

func TestInteractionClampsAtMax(t *testing.T) {
	pet := healthyPet()
	pet.Hunger = 95
	out, err := ApplyInteraction(pet, InteractionFeed, defaultRules())
	if err != nil {
		t.Fatal(err)
	}
	if pet.Hunger != 100 || out.ValueAfter != 100 {
		t.Fatalf("hunger = %d, want clamp at 100", pet.Hunger)
	}
}

func TestInteractionRejectedWhenUnfit(t *testing.T) {
	for _, zero := range []func(*models.Pet){
		func(p *models.Pet) { p.Health = 0 },
		func(p *models.Pet) { p.Hunger = 0 },
		func(p *models.Pet) { p.Mood = 0 },
		func(p *models.Pet) { p.Stamina = 0 },
		func(p *models.Pet) { p.Cleanliness = 0 },
	} {
		pet := healthyPet()
		zero(pet)
		if _, err := ApplyInteraction(pet, InteractionFeed, defaultRules()); !errors.Is(err, ErrPetUnfit) {
			t.Fatalf("expected ErrPetUnfit, got %v", err)
		}
	}
}

func TestInteractionUnknownType(t *testing.T) {
	if _, err := ApplyInteraction(healthyPet(), "cuddle", defaultRules()); !errors.Is(err, ErrUnknownInteraction) {
		t.Fatalf("expected ErrUnknownInteraction, got %v", err)
	}
}

func TestHealthRestoreWhenAllFourFull(t *testing.T) {
	pet := &models.Pet{Hunger: 90, Mood: 100, Stamina: 100, Cleanliness: 100, Health: 15}
	out, err := ApplyInteraction(pet, InteractionFeed, defaultRules())
	if err != nil {
		t.Fatal(err)
	}
	if !out.HealthRestored {
		t.Fatal("health restore should trigger when all four attributes reach 100")
	}
	if pet.Health != 100 {
		t.Fatalf("health = %d, want full restore to 100", pet.Health)
	}
	if out.HealthPenalty != 0 {
		t.Fatal("penalty must not be evaluated after a restore")
	}
}

func TestHealthRestoreNotTriggeredWhenOneShort(t *testing.T) {
	pet := &models.Pet{Hunger: 90, Mood: 99, Stamina: 100, Cleanliness: 100, Health: 15}
	out, err := ApplyInteraction(pet, InteractionFeed, defaultRules())
	if err != nil {
		t.Fatal(err)
	}
	if out.HealthRestored {
		t.Fatal("restore must require all four at 100")
	}
	if pet.Health != 15 {
		t.Fatalf("health = %d, want unchanged 15", pet.Health)
	}
}

func TestHealthPenaltyAdditivePerCause(t *testing.T) {
	// Hunger and stamina below threshold cost 20 each: 100 -> 60.
	pet := &models.Pet{Hunger: 20, Mood: 80, Stamina: 25, Cleanliness: 90, Health: 100}
	if got := applyHealthPenalty(pet, defaultRules()); got != 40 {
		t.Fatalf("penalty = %d, want 40", got)
	}
	if pet.Health != 60 {
		t.Fatalf("health = %d, want 60", pet.Health)
	}
}

func TestHealthPenaltyTripleCause(t *testing.T) {
	pet := &models.Pet{Hunger: 10, Mood: 80, Stamina: 10, Cleanliness: 10, Health: 70}
	if got := applyHealthPenalty(pet, defaultRules()); got != 60 {
		t.Fatalf("penalty = %d, want 60", got)
	}
	if pet.Health != 10 {
		t.Fatalf("health = %d, want 10", pet.Health)
	}
}

func TestHealthPenaltyClampsAtZero(t *testing.T) {
	pet := &models.Pet{Hunger: 10, Mood: 80, Stamina: 10, Cleanliness: 10, Health: 30}
	applyHealthPenalty(pet, defaultRules())
	if pet.Health != 0 {
		t.Fatalf("health = %d, want clamp at 0", pet.Health)
	}
}

func TestMoodNeverCausesHealthPenalty(t *testing.T) {
	pet := &models.Pet{Hunger: 80, Mood: 5, Stamina: 80, Cleanliness: 80, Health: 100}
	if got := applyHealthPenalty(pet, defaultRules()); got != 0 {
		t.Fatalf("penalty = %d, low mood must not cost health", got)
	}
}

func TestInteractionAppliesPenaltyAfterIncrement(t *testing.T) {
	// Feeding takes hunger to 30, which is not below the threshold; only
	// stamina remains low, so one penalty applies.
	pet := &models.Pet{Hunger: 20, Mood: 80, Stamina: 25, Cleanliness: 90, Health: 100}
	out, err := ApplyInteraction(pet, InteractionFeed, defaultRules())
	if err != nil {
		t.Fatal(err)
	}
	if pet.Hunger != 30 {
		t.Fatalf("hunger = %d, want 30", pet.Hunger)
	}
	if out.HealthPenalty != 20 || pet.Health != 80 {
		t.Fatalf("penalty = %d health = %d, want 20 and 80", out.HealthPenalty, pet.Health)
	}
}

func TestApplyDecayClampsAndPenalizes(t *testing.T) {
	pet := &models.Pet{Hunger: 35, Mood: 3, Stamina: 50, Cleanliness: 4, Health: 90}
	ApplyDecay(pet, DecayAmounts{Hunger: 10, Mood: 5, Stamina: 8, Cleanliness: 6}, defaultRules())

	if pet.Hunger != 25 || pet.Mood != 0 || pet.Stamina != 42 || pet.Cleanliness != 0 {
		t.Fatalf("attributes after decay = %d/%d/%d/%d", pet.Hunger, pet.Mood, pet.Stamina, pet.Cleanliness)
	}
	// Hunger and cleanliness below threshold: 90 - 40 = 50.
	if pet.Health != 50 {
		t.Fatalf("health = %d, want 50", pet.Health)
	}
}

func TestAttributesStayInBoundsUnderLongSequences(t *testing.T) {
	pet := &models.Pet{Hunger: 50, Mood: 50, Stamina: 50, Cleanliness: 50, Health: 50}
	rules := defaultRules()
	decay := DecayAmounts{Hunger: 10, Mood: 5, Stamina: 8, Cleanliness: 6}

	check := func(step string) {
		for name, v := range map[string]int{
			"hunger": pet.Hunger, "mood": pet.Mood, "stamina": pet.Stamina,
			"cleanliness": pet.Cleanliness, "health": pet.Health,
		} {
			if v < 0 || v > AttributeMax {
				t.Fatalf("%s: %s out of bounds: %d", step, name, v)
			}
		}
	}

	types := []InteractionType{InteractionFeed, InteractionBath, InteractionPlay, InteractionRest}
	for i := 0; i < 200; i++ {
		if CanInteract(pet) {
			if _, err := ApplyInteraction(pet, types[i%len(types)], rules); err != nil {
				t.Fatal(err)
			}
		}
		if i%3 == 0 {
			ApplyDecay(pet, decay, rules)
		}
		check("iteration")
	}
}
