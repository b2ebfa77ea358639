package models

import (
	"time"
)

// User represents an account in the system
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Username     string    `json:"username" db:"username"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserProfile is the public view of a user returned by the login flows
type UserProfile struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// DefaultDisplayName is shown when a stored username is unexpectedly empty
const DefaultDisplayName = "User"

// Profile returns the display pair for the user
func (u *User) Profile() UserProfile {
	username := u.Username
	if username == "" {
		username = DefaultDisplayName
	}
	return UserProfile{Email: u.Email, Username: username}
}
