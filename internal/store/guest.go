package store

import (
	"context"
	"database/sql"
	"fmt"

	"invitemaker/internal/models"
)

// GuestStore handles guest-list rows. Ownership is always resolved through
// the parent design's user_id inside the same statement.
type GuestStore struct {
	db *sql.DB
}

// NewGuestStore creates a new GuestStore with the given database connection.
func NewGuestStore(db *sql.DB) *GuestStore {
	return &GuestStore{db: db}
}

// guestColumns lists the columns selected in guest queries.
const guestColumns = `id, design_id, name, contact, comment, is_confirmed, created_at, updated_at`

// guestColumnsQualified prefixes every guest column with the g alias.
const guestColumnsQualified = `g.id, g.design_id, g.name, g.contact, g.comment, g.is_confirmed, g.created_at, g.updated_at`

// scanGuest scans a guest row from the result set.
func scanGuest(sc scanner) (*models.Guest, error) {
	var g models.Guest
	err := sc.Scan(&g.ID, &g.DesignID, &g.Name, &g.Contact, &g.Comment, &g.IsConfirmed, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// ListByDesign returns the guests of a design, oldest first. The caller is
// responsible for checking that the design belongs to the requester.
func (s *GuestStore) ListByDesign(ctx context.Context, designID int64) ([]models.Guest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+guestColumns+`
		FROM guests
		WHERE design_id = $1
		ORDER BY created_at ASC, id ASC
	`, designID)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	defer rows.Close()

	guests := []models.Guest{}
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan guest: %w", err)
		}
		guests = append(guests, *g)
	}
	return guests, rows.Err()
}

// Create inserts a guest for g.DesignID provided that design belongs to
// userID. Returns nil if the design is missing or not owned.
func (s *GuestStore) Create(ctx context.Context, userID int64, g *models.Guest) (*models.Guest, error) {
	created, err := scanGuest(s.db.QueryRowContext(ctx, `
		INSERT INTO guests (design_id, name, contact, comment, is_confirmed)
		SELECT $1::bigint, $2::text, $3::text, $4::text, $5::boolean
		WHERE EXISTS (SELECT 1 FROM designs WHERE id = $1 AND user_id = $6)
		RETURNING `+guestColumns,
		g.DesignID, g.Name, g.Contact, g.Comment, g.IsConfirmed, userID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("create guest: %w", err)
	}
	return created, nil
}

// FindOwned retrieves a guest whose design belongs to userID. Returns nil
// if the guest is missing or not owned.
func (s *GuestStore) FindOwned(ctx context.Context, userID, guestID int64) (*models.Guest, error) {
	g, err := scanGuest(s.db.QueryRowContext(ctx, `
		SELECT `+guestColumnsQualified+`
		FROM guests g
		JOIN designs d ON d.id = g.design_id
		WHERE g.id = $1 AND d.user_id = $2
	`, guestID, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find guest: %w", err)
	}
	return g, nil
}

// Update applies the fields present in patch to a guest whose design
// belongs to userID and returns the updated row. Returns nil if the guest
// is missing or not owned. An empty patch leaves the row untouched.
func (s *GuestStore) Update(ctx context.Context, userID, guestID int64, patch models.GuestPatch) (*models.Guest, error) {
	if patch.Empty() {
		return s.FindOwned(ctx, userID, guestID)
	}

	var set setClause
	if patch.Name != nil {
		set.add("name", *patch.Name)
	}
	if patch.Contact.Set {
		set.add("contact", patch.Contact.Value)
	}
	if patch.Comment.Set {
		set.add("comment", patch.Comment.Value)
	}
	if patch.IsConfirmed != nil {
		set.add("is_confirmed", *patch.IsConfirmed)
	}

	guestArg := set.arg(guestID)
	userArg := set.arg(userID)
	g, err := scanGuest(s.db.QueryRowContext(ctx, `
		UPDATE guests g SET `+set.String()+`
		FROM designs d
		WHERE g.id = `+guestArg+` AND d.id = g.design_id AND d.user_id = `+userArg+`
		RETURNING `+guestColumnsQualified,
		set.args...,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update guest: %w", err)
	}
	return g, nil
}

// Delete removes a guest whose design belongs to userID. Returns false if
// nothing was deleted.
func (s *GuestStore) Delete(ctx context.Context, userID, guestID int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM guests g
		USING designs d
		WHERE g.id = $1 AND d.id = g.design_id AND d.user_id = $2
	`, guestID, userID)
	if err != nil {
		return false, fmt.Errorf("delete guest: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete guest rows: %w", err)
	}
	return n > 0, nil
}
