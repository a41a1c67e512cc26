package models

import "time"

// WalletEntry is one row of the append-only points ledger. Amount is positive
// for credits and negative for debits. The unique IdempotencyKey makes
// redelivered credit requests no-ops instead of double-credits.
type WalletEntry struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"index;not null" json:"user_id"`
	Amount         int       `gorm:"not null" json:"amount"`
	Reason         string    `gorm:"size:128" json:"reason"`
	IdempotencyKey string    `gorm:"size:64;not null;uniqueIndex" json:"idempotency_key"`
	BalanceAfter   int       `json:"balance_after"`
	CreatedAt      time.Time `json:"created_at"`
}
