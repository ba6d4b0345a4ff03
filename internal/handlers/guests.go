package handlers

import (
	"encoding/json"
	"net/http"

	"invitemaker/internal/apperr"
	"invitemaker/internal/models"
)

// Guests groups the guest-list handlers. All of them are owner-only.
type Guests struct {
	designs DesignRepo
	guests  GuestRepo
}

// NewGuests creates a new Guests handler group.
func NewGuests(designs DesignRepo, guests GuestRepo) *Guests {
	return &Guests{designs: designs, guests: guests}
}

// errGuestName is returned for a missing or blank guest name.
var errGuestName = apperr.Validation("Guest name is required")

// List returns the guest list of one of the caller's designs, oldest first.
func (g *Guests) List(w http.ResponseWriter, r *http.Request) {
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

	design, err := g.designs.FindOwned(r.Context(), designID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if design == nil {
		writeError(w, r, apperr.NotFound())
		return
	}

	guests, err := g.guests.ListByDesign(r.Context(), designID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, guests)
}

// Create adds a guest to one of the caller's designs.
func (g *Guests) Create(w http.ResponseWriter, r *http.Request) {
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

	design, err := g.designs.FindOwned(r.Context(), designID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if design == nil {
		writeError(w, r, apperr.NotFound())
		return
	}

	fields, err := decodeFields(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	guest, err := newGuest(designID, fields)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := g.guests.Create(r.Context(), userID, guest)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if created == nil {
		writeError(w, r, apperr.NotFound())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// newGuest validates a create body.
func newGuest(designID int64, fields map[string]json.RawMessage) (*models.Guest, error) {
	guest := &models.Guest{DesignID: designID}

	name, err := optionalText(fields["name"], "name")
	if err != nil {
		return nil, err
	}
	if name == nil {
		return nil, errGuestName
	}
	guest.Name = *name

	if guest.Contact, err = optionalText(fields["contact"], "contact"); err != nil {
		return nil, err
	}
	if guest.Comment, err = optionalText(fields["comment"], "comment"); err != nil {
		return nil, err
	}
	if guest.IsConfirmed, err = boolField(fields["is_confirmed"], "is_confirmed"); err != nil {
		return nil, err
	}
	return guest, nil
}

// Update applies the keys present in the body to a guest of one of the
// caller's designs and returns the guest.
func (g *Guests) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	guestID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	guest, err := g.guests.FindOwned(r.Context(), userID, guestID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if guest == nil {
		writeError(w, r, apperr.NotFound())
		return
	}

	fields, err := decodeFields(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	patch, err := guestPatch(fields)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := g.guests.Update(r.Context(), userID, guestID, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if updated == nil {
		writeError(w, r, apperr.NotFound())
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// guestPatch builds a partial update from the recognised keys of a body,
// validating each present field the same way Create does.
func guestPatch(fields map[string]json.RawMessage) (models.GuestPatch, error) {
	var patch models.GuestPatch

	if raw, ok := fields["name"]; ok {
		name, err := optionalText(raw, "name")
		if err != nil {
			return patch, err
		}
		if name == nil {
			return patch, errGuestName
		}
		patch.Name = name
	}
	if raw, ok := fields["contact"]; ok {
		contact, err := optionalText(raw, "contact")
		if err != nil {
			return patch, err
		}
		patch.Contact = models.OptionalString{Set: true, Value: contact}
	}
	if raw, ok := fields["comment"]; ok {
		comment, err := optionalText(raw, "comment")
		if err != nil {
			return patch, err
		}
		patch.Comment = models.OptionalString{Set: true, Value: comment}
	}
	if raw, ok := fields["is_confirmed"]; ok {
		confirmed, err := boolField(raw, "is_confirmed")
		if err != nil {
			return patch, err
		}
		patch.IsConfirmed = &confirmed
	}
	return patch, nil
}

// Delete removes a guest of one of the caller's designs.
func (g *Guests) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	guestID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	ok, err := g.guests.Delete(r.Context(), userID, guestID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		writeError(w, r, apperr.NotFound())
		return
	}
	writeOK(w)
}
