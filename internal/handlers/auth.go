package handlers

import (
	"errors"
	"net/http"

	"invitemaker/internal/apperr"
	"invitemaker/internal/models"
	"invitemaker/internal/store"
)

// Auth groups the account registration and login handlers.
type Auth struct {
	users  UserRepo
	tokens TokenIssuer
}

// NewAuth creates a new Auth handler group.
func NewAuth(users UserRepo, tokens TokenIssuer) *Auth {
	return &Auth{users: users, tokens: tokens}
}

// credentials is the request body of register and login.
type credentials struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// normalized returns the lower-cased email and the password, with absent
// or null fields as "".
func (c credentials) normalized() (string, string) {
	var email, password string
	if c.Email != nil {
		email = models.NormalizeEmail(*c.Email)
	}
	if c.Password != nil {
		password = *c.Password
	}
	return email, password
}

// authResponse is returned by register and login.
type authResponse struct {
	Token string             `json:"token"`
	User  models.UserSummary `json:"user"`
}

// Register creates an account and returns a token for it.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	email, password := body.normalized()
	if email == "" || password == "" {
		writeError(w, r, apperr.Validation("Email & password required"))
		return
	}

	// Checked up front for the common case; the unique index settles races.
	existing, err := a.users.FindByEmail(r.Context(), email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if existing != nil {
		writeError(w, r, apperr.Conflict("Email already registered"))
		return
	}

	user, err := a.users.Create(r.Context(), email, password)
	if errors.Is(err, store.ErrEmailTaken) {
		writeError(w, r, apperr.Conflict("Email already registered"))
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	a.respondWithToken(w, r, user)
}

// Login verifies credentials and returns a fresh token.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	email, password := body.normalized()
	user, err := a.users.FindByEmail(r.Context(), email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if user == nil || !a.users.CheckPassword(user, password) {
		writeError(w, r, apperr.Auth("Invalid credentials"))
		return
	}

	a.respondWithToken(w, r, user)
}

func (a *Auth) respondWithToken(w http.ResponseWriter, r *http.Request, user *models.User) {
	token, err := a.tokens.Issue(user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user.Summary()})
}
