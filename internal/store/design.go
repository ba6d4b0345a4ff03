// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"invitemaker/internal/models"
)

// DesignStore handles all design-related database operations. Every
// owner-facing method filters on user_id, so a design owned by someone else
// looks exactly like a missing one.
type DesignStore struct {
	db *sql.DB
}

// NewDesignStore creates a new DesignStore with the given database connection.
func NewDesignStore(db *sql.DB) *DesignStore {
	return &DesignStore{db: db}
}

// designColumns lists the columns selected in design queries.
const designColumns = `id, user_id, template_id, title, fabric_json, rsvp_fabric_json, created_at, updated_at`

// scanDesign scans a design row from the result set.
func scanDesign(sc scanner) (*models.Design, error) {
	var (
		d            models.Design
		fabric, rsvp sql.NullString
	)
	err := sc.Scan(&d.ID, &d.UserID, &d.TemplateID, &d.Title, &fabric, &rsvp, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d.FabricJSON = blobFromNull(fabric)
	d.RSVPFabricJSON = blobFromNull(rsvp)
	return &d, nil
}

// Create inserts a new design and fills in its ID and timestamps. Returns
// ErrUnknownTemplate if the template does not exist.
func (s *DesignStore) Create(ctx context.Context, d *models.Design) (*models.Design, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO designs (user_id, template_id, title, fabric_json, rsvp_fabric_json)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, d.UserID, d.TemplateID, d.Title, blobToNull(d.FabricJSON), blobToNull(d.RSVPFabricJSON),
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if pgCode(err) == pgForeignKeyViolation {
		return nil, ErrUnknownTemplate
	}
	if err != nil {
		return nil, fmt.Errorf("create design: %w", err)
	}
	return d, nil
}

// ListByUser returns the summaries of all designs owned by userID.
func (s *DesignStore) ListByUser(ctx context.Context, userID int64) ([]models.DesignSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, template_id, updated_at, rsvp_fabric_json IS NOT NULL
		FROM designs
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list designs: %w", err)
	}
	defer rows.Close()

	designs := []models.DesignSummary{}
	for rows.Next() {
		var d models.DesignSummary
		if err := rows.Scan(&d.ID, &d.Title, &d.TemplateID, &d.UpdatedAt, &d.HasRSVPDesign); err != nil {
			return nil, fmt.Errorf("scan design summary: %w", err)
		}
		designs = append(designs, d)
	}
	return designs, rows.Err()
}

// FindOwned retrieves a design by ID if it belongs to userID. Returns nil
// if the design does not exist or has another owner.
func (s *DesignStore) FindOwned(ctx context.Context, id, userID int64) (*models.Design, error) {
	d, err := scanDesign(s.db.QueryRowContext(ctx, `
		SELECT `+designColumns+`
		FROM designs WHERE id = $1 AND user_id = $2
	`, id, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find design: %w", err)
	}
	return d, nil
}

// Update applies the fields present in patch and bumps updated_at in a
// single statement. Returns false if the design is missing or not owned.
func (s *DesignStore) Update(ctx context.Context, id, userID int64, patch models.DesignPatch) (bool, error) {
	var set setClause
	if patch.Title != nil {
		set.add("title", *patch.Title)
	}
	if patch.FabricJSON.Set {
		set.add("fabric_json", blobToNull(patch.FabricJSON.Value))
	}
	if patch.RSVPFabricJSON.Set {
		set.add("rsvp_fabric_json", blobToNull(patch.RSVPFabricJSON.Value))
	}

	idArg := set.arg(id)
	userArg := set.arg(userID)
	result, err := s.db.ExecContext(ctx,
		`UPDATE designs SET `+set.String()+` WHERE id = `+idArg+` AND user_id = `+userArg,
		set.args...,
	)
	if err != nil {
		return false, fmt.Errorf("update design: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update design rows: %w", err)
	}
	return n > 0, nil
}

// Delete removes a design owned by userID. Responses and guests go with it
// through ON DELETE CASCADE. Returns false if nothing was deleted.
func (s *DesignStore) Delete(ctx context.Context, id, userID int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM designs WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete design: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete design rows: %w", err)
	}
	return n > 0, nil
}

// RSVPInfo returns the public view of a design joined with its template's
// display metadata. Returns nil if the design does not exist.
func (s *DesignStore) RSVPInfo(ctx context.Context, id int64) (*models.RSVPInfo, error) {
	var (
		info          models.RSVPInfo
		tmplName      sql.NullString
		width, height sql.NullInt64
		fabric, rsvp  sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT d.title, t.name, t.width, t.height, d.fabric_json, d.rsvp_fabric_json
		FROM designs d
		LEFT JOIN templates t ON t.id = d.template_id
		WHERE d.id = $1
	`, id).Scan(&info.Title, &tmplName, &width, &height, &fabric, &rsvp)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("rsvp info: %w", err)
	}

	if tmplName.Valid {
		info.Template = &tmplName.String
	}
	if width.Valid {
		w := int(width.Int64)
		info.TemplateWidth = &w
	}
	if height.Valid {
		h := int(height.Int64)
		info.TemplateHeight = &h
	}
	info.FabricJSON = blobFromNull(fabric)
	info.RSVPFabricJSON = blobFromNull(rsvp)
	return &info, nil
}
