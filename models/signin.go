package models

import "time"

// SignInRecord stores one row per successful daily sign-in.
//
// LocalDay is the platform-local calendar day ("2006-01-02") the sign-in
// belongs to. The composite unique index on (user_id, local_day) is what
// enforces the one-sign-in-per-day invariant; concurrent attempts race on the
// insert and exactly one wins.
type SignInRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_signin_user_day" json:"user_id"`
	LocalDay   string    `gorm:"size:10;not null;uniqueIndex:idx_signin_user_day" json:"local_day"`
	SignedAt   time.Time `gorm:"index;not null" json:"signed_at"`
	Points     int       `json:"points"`
	Experience int       `json:"experience"`
	StreakDay  int       `json:"streak_day"`
	CreatedAt  time.Time `json:"created_at"`
}
