package models

import "time"

// Pet is the 1:1 companion of a user, created lazily on first access.
//
// The five bounded attributes always stay within [0,100]; all mutation goes
// through the petstate transition functions so the clamping rules live in one
// place. LastDecayDay records the local day the decay batch last touched this
// pet, making decay idempotent per day even without the redis guard.
type Pet struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Nickname     string    `gorm:"size:64" json:"nickname"`
	Level        int       `gorm:"default:1" json:"level"`
	Experience   int       `gorm:"default:0" json:"experience"`
	Hunger       int       `gorm:"default:100" json:"hunger"`
	Mood         int       `gorm:"default:100" json:"mood"`
	Stamina      int       `gorm:"default:100" json:"stamina"`
	Cleanliness  int       `gorm:"default:100" json:"cleanliness"`
	Health       int       `gorm:"default:100" json:"health"`
	SkinColor    string    `gorm:"size:32;default:'default'" json:"skin_color"`
	BgColor      string    `gorm:"size:32;default:'default'" json:"bg_color"`
	Active       bool      `gorm:"default:true" json:"active"`
	LastDecayDay string    `gorm:"size:10" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
