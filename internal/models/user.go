package models

import (
	"time"
	"unicode"
)

// User is a person todos can be assigned to. Email is unique.
type User struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	AvatarURL *string   `db:"avatar_url" json:"avatar_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// GetID returns the user ID (used by quiet CLI output)
func (u *User) GetID() string {
	return u.ID
}

// Initial returns the uppercased first letter of the name, for avatar placeholders
func (u *User) Initial() string {
	for _, r := range u.Name {
		return string(unicode.ToUpper(r))
	}
	return "?"
}
