package models

import (
	"time"
	"unicode/utf8"
)

// MaxUsernameLength is the longest accepted username, in characters.
const MaxUsernameLength = 64

// ValidUsername reports whether username is non-empty and at most
// MaxUsernameLength characters long.
func ValidUsername(username string) bool {
	n := utf8.RuneCountInString(username)
	return n > 0 && n <= MaxUsernameLength
}

// User represents an internal user model for the application/database.
// PasswordHash is a bcrypt hash; the salt is part of the hash string.
type User struct {
	ID           string `bson:"id" mapstructure:"id" db:"id"`
	Username     string `bson:"username" mapstructure:"username" db:"username"`
	PasswordHash string `bson:"password_hash" mapstructure:"password_hash" db:"password_hash"`
	CreatedAt    int64  `bson:"created_at" mapstructure:"created_at" db:"created_at"`
}

// NewUser creates a new User instance with the given username and password hash.
// Note: No validation is performed here.
func NewUser(username string, passwordHash string) *User {
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UnixNano(),
	}
}

// Identity is what a successful authentication yields.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
