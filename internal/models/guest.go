package models

import (
	"strings"
	"time"
)

// Guest is an entry in the owner-managed guest list of a design.
type Guest struct {
	ID          int64     `json:"id"`
	DesignID    int64     `json:"design_id"`
	Name        string    `json:"name"`
	Contact     *string   `json:"contact"`
	Comment     *string   `json:"comment"`
	IsConfirmed bool      `json:"is_confirmed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GuestPatch carries the fields of a partial guest update. Name and
// IsConfirmed are nil when absent.
type GuestPatch struct {
	Name        *string
	Contact     OptionalString
	Comment     OptionalString
	IsConfirmed *bool
}

// Empty reports whether the patch changes nothing.
func (p GuestPatch) Empty() bool {
	return p.Name == nil && !p.Contact.Set && !p.Comment.Set && p.IsConfirmed == nil
}

// OptionalString is a nullable string field that may also be absent.
type OptionalString struct {
	Set   bool
	Value *string
}

// NullIfBlank trims s and returns nil when nothing is left.
func NullIfBlank(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
