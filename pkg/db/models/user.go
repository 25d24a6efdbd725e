package models

import "time"

// User represents an authenticated operator of the backoffice.
// Rows are immutable after registration and never deleted.
type User struct {
	ID           string    `gorm:"column:id;type:text;primaryKey"`
	Username     string    `gorm:"column:username;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
