// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// DefaultAvatar is assigned to every account at registration.
const DefaultAvatar = "src/assets/user.svg"

// User represents an account in the Chronicle application. The username is
// the business key: it is lowercased at registration and immutable afterwards.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"unique;not null" json:"username"`
	Email       string    `json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	DisplayName string    `json:"display_name"`
	Avatar      string    `json:"avatar"`
	Gender      string    `json:"gender"`
	IsActivated bool      `gorm:"default:false" json:"is_activated"`
	// IsDeleted is carried for schema compatibility; no query filters on it.
	IsDeleted bool      `gorm:"default:false" json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SimpleUser is a denormalized, read-only projection of User embedded
// wherever a foreign user needs to be displayed without a join. It is a
// snapshot taken at relationship/comment creation time and is never
// retroactively synced with the source account.
type SimpleUser struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
}

// Simple returns the SimpleUser projection of the account.
func (u *User) Simple() SimpleUser {
	return SimpleUser{
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
	}
}
