// Package store provides database access methods for all invitation
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the stores translate into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var (
	// ErrEmailTaken is returned when a user with the same email already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUnknownTemplate is returned when a design references a missing template.
	ErrUnknownTemplate = errors.New("unknown template")
)

// pgCode returns the SQLSTATE of a PostgreSQL error, or "" for anything else.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// blobFromNull converts a nullable TEXT column into a JSON document.
func blobFromNull(ns sql.NullString) json.RawMessage {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	return json.RawMessage(ns.String)
}

// blobToNull converts a JSON document into a nullable TEXT value.
func blobToNull(raw json.RawMessage) sql.NullString {
	if raw == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(raw), Valid: true}
}

// setClause accumulates "column = $n" assignments for partial updates.
type setClause struct {
	parts []string
	args  []any
}

// add assigns value to column.
func (s *setClause) add(column string, value any) {
	s.args = append(s.args, value)
	s.parts = append(s.parts, fmt.Sprintf("%s = $%d", column, len(s.args)))
}

// arg appends a trailing argument (used in WHERE) and returns its placeholder.
func (s *setClause) arg(value any) string {
	s.args = append(s.args, value)
	return fmt.Sprintf("$%d", len(s.args))
}

// String renders the assignments followed by updated_at = NOW().
func (s *setClause) String() string {
	return strings.Join(append(s.parts, "updated_at = NOW()"), ", ")
}
