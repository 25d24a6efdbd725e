package models

import "time"

// Session maps an opaque bearer token to a user. Sessions are created at
// login/registration, deleted on logout, and purged once older than the
// configured TTL.
type Session struct {
	Token     string    `gorm:"column:token;type:text;primaryKey"`
	UserID    string    `gorm:"column:user_id;type:text;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
