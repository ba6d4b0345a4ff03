// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"invitemaker/internal/apperr"
)

// serviceName is reported by the root endpoint.
const serviceName = "Invitation Maker API"

// Public groups the unauthenticated catalogue and asset handlers. The
// template list is read through the Valkey cache when one is configured.
type Public struct {
	templates   TemplateRepo
	cache       TemplateCache
	uploadDir   string
	templateDir string
}

// NewPublic creates a new Public handler group. cache may be nil.
func NewPublic(templates TemplateRepo, cache TemplateCache, uploadDir, templateDir string) *Public {
	return &Public{
		templates:   templates,
		cache:       cache,
		uploadDir:   uploadDir,
		templateDir: templateDir,
	}
}

// Root identifies the service.
func (p *Public) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "service": serviceName})
}

// Templates lists all templates in id order.
func (p *Public) Templates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if p.cache != nil {
		if cached, ok := p.cache.Get(ctx); ok {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	templates, err := p.templates.List(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if p.cache != nil {
		p.cache.Set(ctx, templates)
	}
	writeJSON(w, http.StatusOK, templates)
}

// Uploads serves files from the upload directory.
func (p *Public) Uploads(w http.ResponseWriter, r *http.Request) {
	serveFile(w, r, p.uploadDir)
}

// TemplateAssets serves template thumbnails and backgrounds.
func (p *Public) TemplateAssets(w http.ResponseWriter, r *http.Request) {
	serveFile(w, r, p.templateDir)
}

// serveFile serves the wildcard path of the route from dir. The path is
// cleaned against a virtual root so it cannot climb out of dir; directories
// and missing files are 404.
func serveFile(w http.ResponseWriter, r *http.Request, dir string) {
	rel := path.Clean("/" + chi.URLParam(r, "*"))
	if rel == "/" {
		writeError(w, r, apperr.NotFound())
		return
	}

	f, err := os.Open(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		writeError(w, r, apperr.NotFound())
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		writeError(w, r, apperr.NotFound())
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
