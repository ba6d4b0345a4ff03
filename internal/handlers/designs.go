// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	qrcode "github.com/skip2/go-qrcode"

	"invitemaker/internal/apperr"
	"invitemaker/internal/models"
	"invitemaker/internal/store"
)

// qrSize is the edge length in pixels of RSVP link QR codes.
const qrSize = 256

// Designs groups the owner-only design handlers.
type Designs struct {
	designs       DesignRepo
	publicBaseURL string
}

// NewDesigns creates a new Designs handler group. publicBaseURL is the
// frontend origin used to build RSVP links.
func NewDesigns(designs DesignRepo, publicBaseURL string) *Designs {
	return &Designs{designs: designs, publicBaseURL: publicBaseURL}
}

// Create saves a new design for the caller and returns its id and title.
func (d *Designs) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	fields, err := decodeFields(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	design := &models.Design{UserID: userID}

	title, err := stringField(fields["title"], "title")
	if err != nil {
		writeError(w, r, err)
		return
	}
	design.Title = titleOrDefault(title, models.DefaultDesignTitle)

	rawTemplate, ok := fields["template_id"]
	if design.TemplateID, err = idField(rawTemplate, ok, "template_id"); err != nil {
		writeError(w, r, err)
		return
	}

	design.FabricJSON = models.NormalizeBlob(fields["fabric_json"])
	design.RSVPFabricJSON = models.NormalizeBlob(fields["rsvp_fabric_json"])

	created, err := d.designs.Create(r.Context(), design)
	if errors.Is(err, store.ErrUnknownTemplate) {
		writeError(w, r, apperr.Validation("Unknown template"))
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"id": created.ID, "title": created.Title})
}

// List returns summaries of the caller's designs.
func (d *Designs) List(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	designs, err := d.designs.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, designs)
}

// Get returns one of the caller's designs with both canvas documents.
func (d *Designs) Get(w http.ResponseWriter, r *http.Request) {
	design, err := d.owned(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, design)
}

// Update applies the keys present in the body to one of the caller's designs.
func (d *Designs) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Ownership is settled before the body is looked at, so a stranger
	// gets 404 whatever they send.
	design, err := d.designs.FindOwned(r.Context(), id, userID)
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

	patch, err := designPatch(fields)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ok, err := d.designs.Update(r.Context(), id, userID, patch)
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

// designPatch builds a partial update from the recognised keys of a body.
func designPatch(fields map[string]json.RawMessage) (models.DesignPatch, error) {
	var patch models.DesignPatch
	if raw, ok := fields["title"]; ok {
		title, err := stringField(raw, "title")
		if err != nil {
			return patch, err
		}
		title = titleOrDefault(title, models.DefaultDesignTitle)
		patch.Title = &title
	}
	if raw, ok := fields["fabric_json"]; ok {
		patch.FabricJSON = models.OptionalJSON{Set: true, Value: models.NormalizeBlob(raw)}
	}
	if raw, ok := fields["rsvp_fabric_json"]; ok {
		patch.RSVPFabricJSON = models.OptionalJSON{Set: true, Value: models.NormalizeBlob(raw)}
	}
	return patch, nil
}

// Delete removes one of the caller's designs with its responses and guests.
func (d *Designs) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	ok, err := d.designs.Delete(r.Context(), id, userID)
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

// QR returns a PNG QR code of the public RSVP link of one of the caller's designs.
func (d *Designs) QR(w http.ResponseWriter, r *http.Request) {
	design, err := d.owned(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	png, err := qrcode.Encode(d.RSVPLink(design.ID), qrcode.Medium, qrSize)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// RSVPLink returns the public RSVP page URL of a design.
func (d *Designs) RSVPLink(designID int64) string {
	return d.publicBaseURL + "/rsvp/" + strconv.FormatInt(designID, 10)
}

// owned loads the {id} design of the request if it belongs to the caller.
func (d *Designs) owned(r *http.Request) (*models.Design, error) {
	userID, err := currentUser(r)
	if err != nil {
		return nil, err
	}
	id, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}

	design, err := d.designs.FindOwned(r.Context(), id, userID)
	if err != nil {
		return nil, err
	}
	if design == nil {
		return nil, apperr.NotFound()
	}
	return design, nil
}
