package services

import (
	"math"

	"github.com/petopia/petopia/models"
)

// MaxPetLevel caps the leveling curve. At the cap the requirement is treated
// as infinite and experience simply accumulates.
const MaxPetLevel = 250

// RequiredExperience returns the experience needed to advance from the given
// level to the next. The curve is piecewise:
//
//	level 1..10:     40*level + 60
//	level 11..100:   floor(0.8*level^2 + 380)
//	level 101..249:  floor(285.69 * 1.06^level)
//
// The middle segment is computed in integer arithmetic (4*level*level/5) so
// the floor is exact rather than subject to float rounding.
func RequiredExperience(level int) int {
	switch {
	case level < 1:
		level = 1
		fallthrough
	case level <= 10:
		return 40*level + 60
	case level <= 100:
		return 4*level*level/5 + 380
	case level < MaxPetLevel:
		return int(math.Floor(285.69 * math.Pow(1.06, float64(level))))
	default:
		return math.MaxInt32
	}
}

// AddExperience adds amount to the pet's experience and settles the level: as
// long as the pet is below the cap and has enough experience for its current
// level, the requirement is subtracted and the level incremented. One large
// grant can therefore produce several level-ups. Returns true when at least
// one level-up occurred.
func AddExperience(pet *models.Pet, amount int) bool {
	if amount <= 0 {
		return false
	}
	pet.Experience += amount

	leveled := false
	for pet.Level < MaxPetLevel {
		need := RequiredExperience(pet.Level)
		if pet.Experience < need {
			break
		}
		pet.Experience -= need
		pet.Level++
		leveled = true
	}
	return leveled
}
