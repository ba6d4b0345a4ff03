package models

import "time"

// InvitationResponse is an RSVP submitted by an invitee on the public page.
type InvitationResponse struct {
	ID        int64     `json:"id"`
	DesignID  int64     `json:"-"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Message   *string   `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
