package db

import "time"

// LoginAttempt records every sign-in attempt, successful or not. The auth
// service counts recent failures per email to rate-limit brute forcing.
type LoginAttempt struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"size:254;index"`
	Success   bool
	CreatedAt time.Time `gorm:"index"`
}

// TableName pins the table name.
func (LoginAttempt) TableName() string {
	return "login_attempts"
}
