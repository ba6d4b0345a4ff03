// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestTemplateStoreList(t *testing.T) {
	db, mock := newMock(t)
	s := NewTemplateStore(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM templates`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "thumbnail_url", "image_url", "width", "height"}).
			AddRow(int64(1), "Floral A6", "/static/templates/floral-thumb.png", "/static/templates/floral.png", 1200, 1800).
			AddRow(int64(2), "Minimal Dark", "/static/templates/minimal-thumb.png", "/static/templates/minimal.png", 1600, 900))

	templates, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(templates))
	}
	if templates[1].Name != "Minimal Dark" || templates[1].Width != 1600 || templates[1].Height != 900 {
		t.Errorf("second template = %+v", templates[1])
	}
}

func TestTemplateStoreListEmptyIsNotNil(t *testing.T) {
	db, mock := newMock(t)
	s := NewTemplateStore(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM templates`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "thumbnail_url", "image_url", "width", "height"}))

	templates, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if templates == nil {
		t.Error("List returned nil slice; JSON would encode null instead of []")
	}
}

func TestTemplateStoreListError(t *testing.T) {
	db, mock := newMock(t)
	s := NewTemplateStore(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM templates`)).WillReturnError(errors.New("connection reset"))

	if _, err := s.List(context.Background()); err == nil {
		t.Error("expected error")
	}
}
