package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/petopia/petopia/models"
	"github.com/petopia/petopia/utils"
)

// WalletService manages the points balance on the user row plus the
// append-only wallet_entries ledger. Balance and ledger row always move in the
// same locked transaction, and the unique idempotency key makes redelivered
// requests no-ops.
type WalletService struct {
	db *gorm.DB
}

// NewWalletService creates a wallet service on the shared DB handle.
func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{db: db}
}

// EarnPoints credits amount to the user. A repeated call with the same
// idempotency key returns nil without crediting again.
func (s *WalletService) EarnPoints(userID uint, amount int, reason, idempotencyKey string) error {
	if amount <= 0 {
		return fmt.Errorf("earn amount must be positive, got %d", amount)
	}
	return s.apply(userID, amount, reason, idempotencyKey)
}

// SpendPoints debits amount from the user, failing with ErrInsufficientPoints
// when the balance cannot cover it. Same idempotency semantics as EarnPoints.
func (s *WalletService) SpendPoints(userID uint, amount int, reason, idempotencyKey string) error {
	if amount <= 0 {
		return fmt.Errorf("spend amount must be positive, got %d", amount)
	}
	return s.apply(userID, -amount, reason, idempotencyKey)
}

// Balance returns the user's current points balance.
func (s *WalletService) Balance(userID uint) (int, error) {
	var user models.User
	if err := s.db.Select("points").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return user.Points, nil
}

func (s *WalletService) apply(userID uint, amount int, reason, idempotencyKey string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.WalletEntry
		err := tx.Where("idempotency_key = ?", idempotencyKey).First(&existing).Error
		if err == nil {
			utils.Sugar.Debugf("wallet entry already applied key=%s user=%d", idempotencyKey, userID)
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if amount < 0 && user.Points+amount < 0 {
			return ErrInsufficientPoints
		}
		user.Points += amount

		entry := models.WalletEntry{
			UserID:         userID,
			Amount:         amount,
			Reason:         reason,
			IdempotencyKey: idempotencyKey,
			BalanceAfter:   user.Points,
		}
		if err := tx.Create(&entry).Error; err != nil {
			// Two deliveries raced past the read; the first one won.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil
			}
			return err
		}
		return tx.Save(&user).Error
	})
}
