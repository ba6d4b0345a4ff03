package handlers

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"invitemaker/internal/apperr"
	"invitemaker/internal/models"
)

// isNull reports whether a raw JSON value is absent or the literal null.
// A key missing from the body decodes to an empty value.
func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// stringField decodes a string-or-null value. Null decodes as "".
func stringField(raw json.RawMessage, name string) (string, error) {
	if isNull(raw) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", apperr.Validation(name + " must be a string")
	}
	return s, nil
}

// optionalText decodes a string-or-null value, trimming it and mapping
// blank to nil.
func optionalText(raw json.RawMessage, name string) (*string, error) {
	s, err := stringField(raw, name)
	if err != nil {
		return nil, err
	}
	return models.NullIfBlank(s), nil
}

// boolField decodes a boolean-or-null value. Null decodes as false.
func boolField(raw json.RawMessage, name string) (bool, error) {
	if isNull(raw) {
		return false, nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, apperr.Validation(name + " must be a boolean")
	}
	return b, nil
}

// idField decodes a required positive integer given as a JSON number or a
// numeric string.
func idField(raw json.RawMessage, present bool, name string) (int64, error) {
	if !present || isNull(raw) {
		return 0, apperr.Validation(name + " is required")
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		text = string(bytes.TrimSpace(raw))
	}
	id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation(name + " must be an integer")
	}
	return id, nil
}

// titleOrDefault returns the default design title for blank titles.
func titleOrDefault(title, fallback string) string {
	if strings.TrimSpace(title) == "" {
		return fallback
	}
	return title
}
