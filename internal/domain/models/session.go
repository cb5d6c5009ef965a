package models

import "time"

// Session maps an opaque browser cookie token onto the backend tokens
// issued at sign-in. Stored locally so sessions survive a restart.
type Session struct {
	Token        string `gorm:"primaryKey"`
	AccountID    string
	Email        string
	Role         Role
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
