// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"strings"
	"time"
)

// User is an account that owns designs.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	CreatedAt    time.Time `json:"created_at"`
}

// UserSummary is the public view of a user returned alongside a token.
type UserSummary struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Summary returns the client-facing view of u.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Email: u.Email}
}

// NormalizeEmail trims and lowercases an email address so lookups and the
// unique index agree regardless of how the user typed it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
