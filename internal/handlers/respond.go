package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"invitemaker/internal/apperr"
	"invitemaker/internal/middleware"
)

// maxJSONBody caps request bodies. Canvas documents may embed images as
// data URLs, so the limit is generous.
const maxJSONBody = 16 << 20

// writeJSON sends a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeOK sends {"ok": true}.
func writeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// writeError maps err to a {"error": ...} response. Errors that are not an
// *apperr.Error are logged and reported as a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if appErr, ok := apperr.As(err); ok {
		writeJSON(w, appErr.Status(), map[string]string{"error": appErr.Message})
		return
	}
	slog.Error("request failed",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.RequestIDFromCtx(r.Context()),
	)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
}

// decodeJSON reads the request body into dst. An empty body decodes as {}.
// Anything after the first JSON value other than whitespace is rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err == nil {
		err = dec.Decode(&struct{}{})
		if errors.Is(err, io.EOF) {
			return nil
		}
	}
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		return apperr.Validation("Request body too large")
	}
	return apperr.Validation("Invalid JSON body")
}

// decodeFields reads a JSON object body keeping each value raw, so callers
// can tell an absent key from an explicit null.
func decodeFields(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, error) {
	fields := map[string]json.RawMessage{}
	if err := decodeJSON(w, r, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		// The body was the literal null.
		fields = map[string]json.RawMessage{}
	}
	return fields, nil
}

// pathID parses a positive integer URL parameter. Anything else is reported
// as not found, matching how an unknown route would answer.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, apperr.NotFound()
	}
	for _, c := range raw {
		if c < '0' || c > '9' {
			return 0, apperr.NotFound()
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.NotFound()
	}
	return id, nil
}

// currentUser returns the authenticated user ID set by RequireToken.
func currentUser(r *http.Request) (int64, error) {
	id, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		return 0, apperr.Auth("Missing authorization token")
	}
	return id, nil
}
