// Package handlers implements the JSON API of the invitation service. Each
// handler group is a struct built with NewX and depends only on the narrow
// repository interfaces declared here, which the store package satisfies.
package handlers

import (
	"context"
	"time"

	"invitemaker/internal/models"
)

// UserRepo is the account storage used by Auth.
type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, email, password string) (*models.User, error)
	CheckPassword(user *models.User, password string) bool
}

// TokenIssuer mints bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// TemplateRepo lists the template catalogue.
type TemplateRepo interface {
	List(ctx context.Context) ([]models.Template, error)
}

// TemplateCache holds a copy of the template catalogue.
type TemplateCache interface {
	Get(ctx context.Context) ([]models.Template, bool)
	Set(ctx context.Context, templates []models.Template)
}

// DesignRepo is the design storage. Owner-facing methods return nil or
// false when the design is missing or belongs to someone else.
type DesignRepo interface {
	Create(ctx context.Context, d *models.Design) (*models.Design, error)
	ListByUser(ctx context.Context, userID int64) ([]models.DesignSummary, error)
	FindOwned(ctx context.Context, id, userID int64) (*models.Design, error)
	Update(ctx context.Context, id, userID int64, patch models.DesignPatch) (bool, error)
	Delete(ctx context.Context, id, userID int64) (bool, error)
	RSVPInfo(ctx context.Context, id int64) (*models.RSVPInfo, error)
}

// GuestRepo is the guest-list storage. Methods taking a userID resolve
// ownership through the guest's design.
type GuestRepo interface {
	ListByDesign(ctx context.Context, designID int64) ([]models.Guest, error)
	Create(ctx context.Context, userID int64, g *models.Guest) (*models.Guest, error)
	FindOwned(ctx context.Context, userID, guestID int64) (*models.Guest, error)
	Update(ctx context.Context, userID, guestID int64, patch models.GuestPatch) (*models.Guest, error)
	Delete(ctx context.Context, userID, guestID int64) (bool, error)
}

// ResponseRepo is the RSVP storage.
type ResponseRepo interface {
	Create(ctx context.Context, r *models.InvitationResponse) (*models.InvitationResponse, error)
	ListByDesign(ctx context.Context, designID int64) ([]models.InvitationResponse, error)
}

// AnalyticsRepo computes the per-user dashboard figures.
type AnalyticsRepo interface {
	Summary(ctx context.Context, userID int64, now time.Time) (*models.AnalyticsSummary, error)
}
