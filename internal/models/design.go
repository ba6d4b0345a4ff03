// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// DefaultDesignTitle is used when a design is saved without a title.
const DefaultDesignTitle = "Untitled"

// Design is a saved invitation owned by one user. FabricJSON and
// RSVPFabricJSON are the editor's serialized canvas documents; the server
// stores and returns them without looking inside. A nil value is SQL NULL.
type Design struct {
	ID             int64           `json:"id"`
	UserID         int64           `json:"-"`
	TemplateID     int64           `json:"template_id"`
	Title          string          `json:"title"`
	FabricJSON     json.RawMessage `json:"fabric_json"`
	RSVPFabricJSON json.RawMessage `json:"rsvp_fabric_json"`
	CreatedAt      time.Time       `json:"-"`
	UpdatedAt      time.Time       `json:"-"`
}

// DesignSummary is the list view of a design.
type DesignSummary struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	TemplateID    int64     `json:"template_id"`
	UpdatedAt     time.Time `json:"updated_at"`
	HasRSVPDesign bool      `json:"has_rsvp_design"`
}

// DesignPatch carries the fields of a partial design update. Title is nil
// when absent; the blobs track presence separately so an explicit null
// clears the column.
type DesignPatch struct {
	Title          *string
	FabricJSON     OptionalJSON
	RSVPFabricJSON OptionalJSON
}

// OptionalJSON is a JSON value that may be absent (Set=false), null
// (Set=true, Value=nil) or any other JSON document.
type OptionalJSON struct {
	Set   bool
	Value json.RawMessage
}

// NormalizeBlob maps an empty or literal null document to nil so it is
// stored as SQL NULL. Any other document is kept verbatim apart from surrounding whitespace.
func NormalizeBlob(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return trimmed
}

// RSVPInfo is the public view of a design shown to invitees. The template
// fields are nil when the referenced template no longer exists.
type RSVPInfo struct {
	Title          string          `json:"title"`
	Template       *string         `json:"template"`
	TemplateWidth  *int            `json:"template_width"`
	TemplateHeight *int            `json:"template_height"`
	FabricJSON     json.RawMessage `json:"fabric_json"`
	RSVPFabricJSON json.RawMessage `json:"rsvp_fabric_json"`
}
