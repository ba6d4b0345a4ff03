// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Template is a reusable background and canvas size a design starts from.
// Templates are reference data: seeded once and never edited through the API.
type Template struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	ThumbnailURL string `json:"thumbnail_url"`
	ImageURL     string `json:"image_url"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
}

// SampleTemplates are inserted when the templates table is empty.
var SampleTemplates = []Template{
	{
		Name:         "Floral A6",
		ThumbnailURL: "/static/templates/floral-thumb.png",
		ImageURL:     "/static/templates/floral.png",
		Width:        1200,
		Height:       1800,
	},
	{
		Name:         "Minimal Dark",
		ThumbnailURL: "/static/templates/minimal-thumb.png",
		ImageURL:     "/static/templates/minimal.png",
		Width:        1600,
		Height:       900,
	},
}
