package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/petopia/petopia/models"
	"github.com/petopia/petopia/utils"
)

// PetService owns the persistent side of the pet state machine: lazy
// creation, interactions, experience grants, cosmetic changes and the daily
// decay pass. All mutations lock the pet row so concurrent requests for the
// same user serialize instead of losing updates.
type PetService struct {
	db        *gorm.DB
	clock     *Clock
	wallet    *WalletService
	notifier  *Notifier
	sanitizer *bluemonday.Policy
	rules     PetRules
	decay     DecayAmounts
	colorCost int
}

// NewPetService wires the pet service.
func NewPetService(db *gorm.DB, clock *Clock, wallet *WalletService, notifier *Notifier, rules PetRules, decay DecayAmounts, colorCost int) *PetService {
	return &PetService{
		db:        db,
		clock:     clock,
		wallet:    wallet,
		notifier:  notifier,
		sanitizer: bluemonday.StrictPolicy(),
		rules:     rules,
		decay:     decay,
		colorCost: colorCost,
	}
}

// PetInteractionResult is returned from a successful interaction.
type PetInteractionResult struct {
	Pet     *models.Pet        `json:"pet"`
	Outcome InteractionOutcome `json:"outcome"`
}

var colorPattern = regexp.MustCompile(`^[a-z0-9_-]{1,32}$`)

// GetOrCreate loads the user's pet, creating it with full attributes on first
// access.
func (s *PetService) GetOrCreate(userID uint) (*models.Pet, error) {
	var pet models.Pet
	err := s.db.Where("user_id = ?", userID).First(&pet).Error
	if err == nil {
		return &pet, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pet = newPet(userID)
	if err := s.db.Create(&pet).Error; err != nil {
		// Lost a create race with a concurrent request; use the winner's row.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := s.db.Where("user_id = ?", userID).First(&pet).Error; err != nil {
				return nil, err
			}
			return &pet, nil
		}
		return nil, err
	}
	return &pet, nil
}

// Interact runs one owner-initiated interaction through the state machine and
// appends the audit log entry. Rejected with ErrPetUnfit while any attribute
// is at zero.
func (s *PetService) Interact(userID uint, t InteractionType) (*PetInteractionResult, error) {
	var result PetInteractionResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		pet, err := s.lockPet(tx, userID)
		if err != nil {
			return err
		}
		if !pet.Active {
			return ErrPetInactive
		}

		outcome, err := ApplyInteraction(pet, t, s.rules)
		if err != nil {
			return err
		}

		entry := models.PetInteraction{
			PetID:       pet.ID,
			UserID:      userID,
			Type:        string(t),
			Description: describeInteraction(t, outcome),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		if err := tx.Save(pet).Error; err != nil {
			return err
		}

		result = PetInteractionResult{Pet: pet, Outcome: outcome}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GrantExperience adds experience to the user's pet and settles level-ups.
// Returns whether at least one level-up occurred.
func (s *PetService) GrantExperience(userID uint, amount int) (bool, error) {
	if amount <= 0 {
		return false, nil
	}
	var leveled bool
	var level int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		pet, err := s.lockPet(tx, userID)
		if err != nil {
			return err
		}
		leveled = AddExperience(pet, amount)
		level = pet.Level
		return tx.Save(pet).Error
	})
	if err != nil {
		return false, err
	}
	if leveled {
		s.notifier.Publish("pet.levelup", userID, map[string]any{"level": level})
	}
	return leveled, nil
}

// ChangeColor debits the fixed cosmetic cost from the wallet, then applies
// the new colors. Fails with ErrInsufficientPoints when the balance is too
// low; the debit happens first so an unpaid change can never stick.
func (s *PetService) ChangeColor(userID uint, skin, background string) (*models.Pet, error) {
	skin = strings.ToLower(strings.TrimSpace(skin))
	background = strings.ToLower(strings.TrimSpace(background))
	if !colorPattern.MatchString(skin) || !colorPattern.MatchString(background) {
		return nil, ErrInvalidColor
	}

	if _, err := s.GetOrCreate(userID); err != nil {
		return nil, err
	}

	key := "color-change:" + uuid.NewString()
	if err := s.wallet.SpendPoints(userID, s.colorCost, "pet color change", key); err != nil {
		return nil, err
	}

	var pet *models.Pet
	err := s.db.Transaction(func(tx *gorm.DB) error {
		p, err := s.lockPet(tx, userID)
		if err != nil {
			return err
		}
		p.SkinColor = skin
		p.BgColor = background
		pet = p
		return tx.Save(p).Error
	})
	if err != nil {
		utils.Sugar.Errorf("color change debited but not applied user=%d key=%s err=%v", userID, key, err)
		return nil, err
	}
	return pet, nil
}

// Rename sets the pet nickname after strict sanitization.
func (s *PetService) Rename(userID uint, nickname string) (*models.Pet, error) {
	nickname = strings.TrimSpace(s.sanitizer.Sanitize(nickname))
	if len(nickname) > 64 {
		nickname = nickname[:64]
	}

	var pet *models.Pet
	err := s.db.Transaction(func(tx *gorm.DB) error {
		p, err := s.lockPet(tx, userID)
		if err != nil {
			return err
		}
		p.Nickname = nickname
		pet = p
		return tx.Save(p).Error
	})
	if err != nil {
		return nil, err
	}
	return pet, nil
}

// DecayAll applies the daily decay to every active pet not yet decayed on the
// given local day. Each pet is processed in its own locked transaction so the
// batch can overlap owner interactions safely; the per-pet LastDecayDay check
// makes the pass idempotent per day. Returns the number of pets decayed.
func (s *PetService) DecayAll(day LocalDate) (int, error) {
	dayStr := day.String()
	decayed := 0

	var ids []uint
	if err := s.db.Model(&models.Pet{}).
		Where("active = ? AND (last_decay_day IS NULL OR last_decay_day <> ?)", true, dayStr).
		Pluck("id", &ids).Error; err != nil {
		return 0, err
	}

	for _, id := range ids {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			var pet models.Pet
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&pet, id).Error; err != nil {
				return err
			}
			if pet.LastDecayDay == dayStr {
				return nil // another worker got here first
			}
			ApplyDecay(&pet, s.decay, s.rules)
			pet.LastDecayDay = dayStr
			if err := tx.Save(&pet).Error; err != nil {
				return err
			}
			decayed++
			return nil
		})
		if err != nil {
			utils.Sugar.Warnf("decay failed pet=%d day=%s err=%v", id, dayStr, err)
		}
	}
	return decayed, nil
}

// lockPet loads the user's pet under FOR UPDATE, creating it first if needed.
func (s *PetService) lockPet(tx *gorm.DB, userID uint) (*models.Pet, error) {
	var pet models.Pet
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&pet).Error
	if err == nil {
		return &pet, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pet = newPet(userID)
	if err := tx.Create(&pet).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("user_id = ?", userID).First(&pet).Error; err != nil {
				return nil, err
			}
			return &pet, nil
		}
		return nil, err
	}
	return &pet, nil
}

func newPet(userID uint) models.Pet {
	return models.Pet{
		UserID:      userID,
		Level:       1,
		Hunger:      AttributeMax,
		Mood:        AttributeMax,
		Stamina:     AttributeMax,
		Cleanliness: AttributeMax,
		Health:      AttributeMax,
		SkinColor:   "default",
		BgColor:     "default",
		Active:      true,
	}
}

func describeInteraction(t InteractionType, out InteractionOutcome) string {
	desc := fmt.Sprintf("%s: %s %d -> %d", t, out.Attribute, out.ValueBefore, out.ValueAfter)
	if out.HealthRestored {
		desc += ", health fully restored"
	} else if out.HealthPenalty > 0 {
		desc += fmt.Sprintf(", health -%d", out.HealthPenalty)
	}
	return desc
}
