package handlers

import (
	"net/http"

	"invitemaker/internal/apperr"
	"invitemaker/internal/storage"
)

// maxUploadMemory is how much of a multipart upload is held in memory
// before spilling to temporary files.
const maxUploadMemory = 32 << 20

// Uploads handles image uploads used as photo overlays on designs.
type Uploads struct {
	backend storage.Backend
}

// NewUploads creates a new Uploads handler group.
func NewUploads(backend storage.Backend) *Uploads {
	return &Uploads{backend: backend}
}

// Upload stores the multipart "file" part and returns its URL.
func (u *Uploads) Upload(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, r, apperr.Validation("No file"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, apperr.Validation("No file"))
		return
	}
	defer file.Close()

	name, err := storage.FileName(userID, header.Filename)
	if err != nil {
		writeError(w, r, err)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := u.backend.Save(r.Context(), name, contentType, file, header.Size)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
