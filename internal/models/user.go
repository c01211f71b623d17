package model

import "time"

type User struct {
	ID           int64  `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`

	// LastCheckinDate is a YYYY-MM-DD string, empty until the first
	// check-in. Streak arithmetic only ever compares whole days.
	LastCheckinDate string `gorm:"size:10" json:"-"`
	StreakCount     int    `gorm:"not null;default:0" json:"streak"`

	CreatedAt time.Time `json:"created_at"`
}
