package models

import "time"

// PetInteraction is an append-only audit entry written on every successful
// pet interaction. Rows are never updated or deleted by the engine.
type PetInteraction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PetID       uint      `gorm:"index;not null" json:"pet_id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Type        string    `gorm:"size:16;not null" json:"type"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
