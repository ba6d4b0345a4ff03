// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// templates.go caches the template catalogue in Valkey. Templates only
// change when the seeder runs, so the list is read from PostgreSQL at most
// once per TTL.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"invitemaker/internal/models"
)

const (
	// templatesKey is the Valkey key holding the JSON-encoded template list.
	templatesKey = "templates:all"

	// DefaultTemplateTTL is how long the template list stays cached.
	DefaultTemplateTTL = 10 * time.Minute
)

// TemplateCache stores the template list in Valkey. A nil *TemplateCache
// is valid and behaves as a cache that always misses.
type TemplateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTemplateCache creates a template cache backed by the given Valkey client.
func NewTemplateCache(client *redis.Client, ttl time.Duration) *TemplateCache {
	if ttl == 0 {
		ttl = DefaultTemplateTTL
	}
	return &TemplateCache{client: client, ttl: ttl}
}

// Get returns the cached template list. The second result is false on a
// miss, on a Valkey error, or when the cached value cannot be decoded.
func (tc *TemplateCache) Get(ctx context.Context) ([]models.Template, bool) {
	if tc == nil {
		return nil, false
	}
	val, err := tc.client.Get(ctx, templatesKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("template cache get error", "error", err)
		return nil, false
	}

	var templates []models.Template
	if err := json.Unmarshal(val, &templates); err != nil {
		slog.Warn("template cache decode error", "error", err)
		return nil, false
	}
	slog.Debug("template cache hit", "count", len(templates))
	return templates, true
}

// Set stores the template list with the configured TTL.
func (tc *TemplateCache) Set(ctx context.Context, templates []models.Template) {
	if tc == nil {
		return
	}
	data, err := json.Marshal(templates)
	if err != nil {
		slog.Warn("template cache encode error", "error", err)
		return
	}
	if err := tc.client.Set(ctx, templatesKey, data, tc.ttl).Err(); err != nil {
		slog.Warn("template cache set error", "error", err)
	}
}

// Invalidate drops the cached list so the next read goes to the database.
func (tc *TemplateCache) Invalidate(ctx context.Context) {
	if tc == nil {
		return
	}
	if err := tc.client.Del(ctx, templatesKey).Err(); err != nil {
		slog.Warn("template cache invalidate error", "error", err)
	}
}
