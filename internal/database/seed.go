package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"invitemaker/internal/models"
)

// seedLockKey identifies the transaction-scoped advisory lock held while
// seeding.
const seedLockKey int64 = 0x696e7669746573 // "invites"

// SeedTemplates inserts the sample templates when the templates table is
// empty. It is a no-op if any template row already exists. The check and
// the inserts run in one transaction under an advisory lock, so processes
// starting together seed at most once. Returns the number of rows inserted.
func SeedTemplates(ctx context.Context, db *sql.DB) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	// Released on commit or rollback. A second seeder blocks here and then
	// sees the committed rows.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, seedLockKey); err != nil {
		return 0, fmt.Errorf("seed lock: %w", err)
	}

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM templates)`).Scan(&exists); err != nil {
		return 0, fmt.Errorf("seed check templates: %w", err)
	}

	if exists {
		slog.Info("templates already seeded, skipping")
		return 0, nil
	}

	for _, t := range models.SampleTemplates {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO templates (name, thumbnail_url, image_url, width, height)
			VALUES ($1, $2, $3, $4, $5)
		`, t.Name, t.ThumbnailURL, t.ImageURL, t.Width, t.Height)
		if err != nil {
			return 0, fmt.Errorf("seed insert template %q: %w", t.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with sample templates", "count", len(models.SampleTemplates))
	return len(models.SampleTemplates), nil
}
