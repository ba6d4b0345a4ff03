// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests:
// in-memory implementations of the repository interfaces and a helper
// that routes a single request through chi.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"invitemaker/internal/middleware"
	"invitemaker/internal/models"
	"invitemaker/internal/store"
)

// memDB is a tiny in-memory database shared by the fake repositories.
type memDB struct {
	mu        sync.Mutex
	nextID    int64
	clock     time.Time
	users     map[string]*models.User
	passwords map[int64]string
	templates []models.Template
	designs   map[int64]*models.Design
	guests    map[int64]*models.Guest
	responses map[int64]*models.InvitationResponse
}

func newMemDB() *memDB {
	db := &memDB{
		clock:     time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		users:     map[string]*models.User{},
		passwords: map[int64]string{},
		designs:   map[int64]*models.Design{},
		guests:    map[int64]*models.Guest{},
		responses: map[int64]*models.InvitationResponse{},
	}
	for i, t := range models.SampleTemplates {
		t.ID = int64(i + 1)
		db.templates = append(db.templates, t)
	}
	return db
}

// id returns the next identifier. Callers hold mu.
func (db *memDB) id() int64 {
	db.nextID++
	return db.nextID
}

// tick advances the fake clock by a second. Callers hold mu.
func (db *memDB) tick() time.Time {
	db.clock = db.clock.Add(time.Second)
	return db.clock
}

// ownedDesign returns the design if it belongs to userID. Callers hold mu.
func (db *memDB) ownedDesign(id, userID int64) *models.Design {
	d := db.designs[id]
	if d == nil || d.UserID != userID {
		return nil
	}
	return d
}

// fakeUsers implements UserRepo.
type fakeUsers struct{ db *memDB }

func (f fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if u, ok := f.db.users[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f fakeUsers) Create(_ context.Context, email, password string) (*models.User, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.users[email]; ok {
		return nil, store.ErrEmailTaken
	}
	u := &models.User{ID: f.db.id(), Email: email, PasswordHash: "hashed:" + password, CreatedAt: f.db.tick()}
	f.db.users[email] = u
	cp := *u
	return &cp, nil
}

func (f fakeUsers) CheckPassword(u *models.User, password string) bool {
	return u.PasswordHash == "hashed:"+password
}

// fakeTokens implements TokenIssuer.
type fakeTokens struct{}

func (fakeTokens) Issue(userID int64) (string, error) {
	return "token-for-" + strconv.FormatInt(userID, 10), nil
}

// fakeTemplates implements TemplateRepo and counts reads.
type fakeTemplates struct {
	db    *memDB
	calls int
}

func (f *fakeTemplates) List(context.Context) ([]models.Template, error) {
	f.calls++
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	return append([]models.Template{}, f.db.templates...), nil
}

// fakeDesigns implements DesignRepo.
type fakeDesigns struct{ db *memDB }

func (f fakeDesigns) Create(_ context.Context, d *models.Design) (*models.Design, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	known := false
	for _, t := range f.db.templates {
		if t.ID == d.TemplateID {
			known = true
		}
	}
	if !known {
		return nil, store.ErrUnknownTemplate
	}
	d.ID = f.db.id()
	d.CreatedAt = f.db.tick()
	d.UpdatedAt = d.CreatedAt
	cp := *d
	f.db.designs[d.ID] = &cp
	return d, nil
}

func (f fakeDesigns) ListByUser(_ context.Context, userID int64) ([]models.DesignSummary, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := []models.DesignSummary{}
	for _, d := range f.db.designs {
		if d.UserID == userID {
			out = append(out, models.DesignSummary{
				ID: d.ID, Title: d.Title, TemplateID: d.TemplateID,
				UpdatedAt: d.UpdatedAt, HasRSVPDesign: d.RSVPFabricJSON != nil,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeDesigns) FindOwned(_ context.Context, id, userID int64) (*models.Design, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if d := f.db.ownedDesign(id, userID); d != nil {
		cp := *d
		return &cp, nil
	}
	return nil, nil
}

func (f fakeDesigns) Update(_ context.Context, id, userID int64, p models.DesignPatch) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	d := f.db.ownedDesign(id, userID)
	if d == nil {
		return false, nil
	}
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.FabricJSON.Set {
		d.FabricJSON = p.FabricJSON.Value
	}
	if p.RSVPFabricJSON.Set {
		d.RSVPFabricJSON = p.RSVPFabricJSON.Value
	}
	d.UpdatedAt = f.db.tick()
	return true, nil
}

func (f fakeDesigns) Delete(_ context.Context, id, userID int64) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.db.ownedDesign(id, userID) == nil {
		return false, nil
	}
	delete(f.db.designs, id)
	for gid, g := range f.db.guests {
		if g.DesignID == id {
			delete(f.db.guests, gid)
		}
	}
	for rid, r := range f.db.responses {
		if r.DesignID == id {
			delete(f.db.responses, rid)
		}
	}
	return true, nil
}

func (f fakeDesigns) RSVPInfo(_ context.Context, id int64) (*models.RSVPInfo, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	d := f.db.designs[id]
	if d == nil {
		return nil, nil
	}
	info := &models.RSVPInfo{Title: d.Title, FabricJSON: d.FabricJSON, RSVPFabricJSON: d.RSVPFabricJSON}
	for _, t := range f.db.templates {
		if t.ID == d.TemplateID {
			name, w, h := t.Name, t.Width, t.Height
			info.Template, info.TemplateWidth, info.TemplateHeight = &name, &w, &h
		}
	}
	return info, nil
}

// fakeGuests implements GuestRepo.
type fakeGuests struct{ db *memDB }

func (f fakeGuests) ListByDesign(_ context.Context, designID int64) ([]models.Guest, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := []models.Guest{}
	for _, g := range f.db.guests {
		if g.DesignID == designID {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeGuests) Create(_ context.Context, userID int64, g *models.Guest) (*models.Guest, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.db.ownedDesign(g.DesignID, userID) == nil {
		return nil, nil
	}
	g.ID = f.db.id()
	g.CreatedAt = f.db.tick()
	g.UpdatedAt = g.CreatedAt
	cp := *g
	f.db.guests[g.ID] = &cp
	return g, nil
}

func (f fakeGuests) owned(userID, guestID int64) *models.Guest {
	g := f.db.guests[guestID]
	if g == nil || f.db.ownedDesign(g.DesignID, userID) == nil {
		return nil
	}
	return g
}

func (f fakeGuests) FindOwned(_ context.Context, userID, guestID int64) (*models.Guest, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if g := f.owned(userID, guestID); g != nil {
		cp := *g
		return &cp, nil
	}
	return nil, nil
}

func (f fakeGuests) Update(_ context.Context, userID, guestID int64, p models.GuestPatch) (*models.Guest, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	g := f.owned(userID, guestID)
	if g == nil {
		return nil, nil
	}
	if p.Empty() {
		cp := *g
		return &cp, nil
	}
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.Contact.Set {
		g.Contact = p.Contact.Value
	}
	if p.Comment.Set {
		g.Comment = p.Comment.Value
	}
	if p.IsConfirmed != nil {
		g.IsConfirmed = *p.IsConfirmed
	}
	g.UpdatedAt = f.db.tick()
	cp := *g
	return &cp, nil
}

func (f fakeGuests) Delete(_ context.Context, userID, guestID int64) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.owned(userID, guestID) == nil {
		return false, nil
	}
	delete(f.db.guests, guestID)
	return true, nil
}

// fakeResponses implements ResponseRepo.
type fakeResponses struct{ db *memDB }

func (f fakeResponses) Create(_ context.Context, r *models.InvitationResponse) (*models.InvitationResponse, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.db.designs[r.DesignID] == nil {
		return nil, nil
	}
	r.ID = f.db.id()
	r.CreatedAt = f.db.tick()
	cp := *r
	f.db.responses[r.ID] = &cp
	return r, nil
}

func (f fakeResponses) ListByDesign(_ context.Context, designID int64) ([]models.InvitationResponse, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := []models.InvitationResponse{}
	for _, r := range f.db.responses {
		if r.DesignID == designID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// testEnv holds the handler groups wired to one memDB.
type testEnv struct {
	db        *memDB
	templates *fakeTemplates
	auth      *Auth
	designs   *Designs
	guests    *Guests
	rsvp      *RSVP
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newMemDB()
	designs := fakeDesigns{db}
	return &testEnv{
		db:        db,
		templates: &fakeTemplates{db: db},
		auth:      NewAuth(fakeUsers{db}, fakeTokens{}),
		designs:   NewDesigns(designs, "https://invite.example.com"),
		guests:    NewGuests(designs, fakeGuests{db}),
		rsvp:      NewRSVP(designs, fakeResponses{db}),
	}
}

// seedDesign stores a design for userID directly and returns its ID.
func (e *testEnv) seedDesign(t *testing.T, userID int64, title string) int64 {
	t.Helper()
	d, err := fakeDesigns{e.db}.Create(context.Background(), &models.Design{
		UserID: userID, TemplateID: 1, Title: title, FabricJSON: json.RawMessage(`{"objects":[]}`),
	})
	if err != nil {
		t.Fatalf("seed design: %v", err)
	}
	return d.ID
}

// serve routes one request to h registered under pattern. A positive
// userID is injected the way RequireToken would.
func serve(h http.HandlerFunc, method, pattern, target string, body any, userID int64) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}

	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

// decodeBody unmarshals the response body into a generic value.
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return out
}

// decodeList unmarshals a JSON array response body.
func decodeList(t *testing.T, rr *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return out
}

// expectError checks the status code and {"error": msg} body.
func expectError(t *testing.T, rr *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("status: got %d, want %d (body %s)", rr.Code, status, rr.Body.String())
	}
	if got := decodeBody(t, rr)["error"]; got != msg {
		t.Errorf("error: got %q, want %q", got, msg)
	}
}
