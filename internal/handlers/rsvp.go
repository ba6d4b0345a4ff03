package handlers

import (
	"net/http"
	"strings"

	"invitemaker/internal/apperr"
	"invitemaker/internal/models"
)

// RSVP groups the invitee-facing handlers and the owner's response list.
type RSVP struct {
	designs   DesignRepo
	responses ResponseRepo
}

// NewRSVP creates a new RSVP handler group.
func NewRSVP(designs DesignRepo, responses ResponseRepo) *RSVP {
	return &RSVP{designs: designs, responses: responses}
}

// rsvpBody is the request body of a public RSVP submission.
type rsvpBody struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Message *string `json:"message"`
}

// Info returns the public view of a design for its RSVP page.
func (h *RSVP) Info(w http.ResponseWriter, r *http.Request) {
	designID, err := pathID(r, "designID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	info, err := h.designs.RSVPInfo(r.Context(), designID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if info == nil {
		writeError(w, r, apperr.NotFound())
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// Create records an invitee's response. No authentication is required.
func (h *RSVP) Create(w http.ResponseWriter, r *http.Request) {
	designID, err := pathID(r, "designID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var body rsvpBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	resp := &models.InvitationResponse{
		DesignID: designID,
		Name:     strings.TrimSpace(deref(body.Name)),
		Phone:    strings.TrimSpace(deref(body.Phone)),
		Message:  models.NullIfBlank(deref(body.Message)),
	}
	if resp.Name == "" || resp.Phone == "" {
		writeError(w, r, apperr.Validation("Name and phone are required"))
		return
	}

	created, err := h.responses.Create(r.Context(), resp)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if created == nil {
		writeError(w, r, apperr.NotFound())
		return
	}
	writeJSON(w, http.StatusOK, created)
}

// List returns the responses to one of the caller's designs, newest first.
func (h *RSVP) List(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	designID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	design, err := h.designs.FindOwned(r.Context(), designID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if design == nil {
		writeError(w, r, apperr.NotFound())
		return
	}

	responses, err := h.responses.ListByDesign(r.Context(), designID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, responses)
}

// deref returns *s, or "" for nil.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
