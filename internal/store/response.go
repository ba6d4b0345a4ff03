package store

import (
	"context"
	"database/sql"
	"fmt"

	"invitemaker/internal/models"
)

// ResponseStore handles RSVP submissions.
type ResponseStore struct {
	db *sql.DB
}

// NewResponseStore creates a new ResponseStore with the given database connection.
func NewResponseStore(db *sql.DB) *ResponseStore {
	return &ResponseStore{db: db}
}

// Create records an RSVP against r.DesignID and fills in its ID and
// timestamp. Returns nil if the design does not exist.
func (s *ResponseStore) Create(ctx context.Context, r *models.InvitationResponse) (*models.InvitationResponse, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO invitation_responses (design_id, name, phone, message)
		SELECT $1::bigint, $2::text, $3::text, $4::text
		WHERE EXISTS (SELECT 1 FROM designs WHERE id = $1)
		RETURNING id, created_at
	`, r.DesignID, r.Name, r.Phone, r.Message).Scan(&r.ID, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("create response: %w", err)
	}
	return r, nil
}

// ListByDesign returns a design's responses, newest first. The caller is
// responsible for checking that the design belongs to the requester.
func (s *ResponseStore) ListByDesign(ctx context.Context, designID int64) ([]models.InvitationResponse, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, design_id, name, phone, message, created_at
		FROM invitation_responses
		WHERE design_id = $1
		ORDER BY created_at DESC, id DESC
	`, designID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()

	responses := []models.InvitationResponse{}
	for rows.Next() {
		var r models.InvitationResponse
		if err := rows.Scan(&r.ID, &r.DesignID, &r.Name, &r.Phone, &r.Message, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		responses = append(responses, r)
	}
	return responses, rows.Err()
}
