package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Adarsha-Hegade/data-entry1/internal/bootstrap"
	"github.com/Adarsha-Hegade/data-entry1/internal/models"
	"github.com/Adarsha-Hegade/data-entry1/internal/service"
)

// memProfiles backs both the credential service and the account probe.
type memProfiles struct {
	byEmail map[string]*models.Profile
	byID    map[string]*models.Profile
}

func newMemProfiles() *memProfiles {
	return &memProfiles{
		byEmail: make(map[string]*models.Profile),
		byID:    make(map[string]*models.Profile),
	}
}

func (m *memProfiles) Any(context.Context) (bool, error) { return len(m.byID) > 0, nil }

func (m *memProfiles) FindByEmail(_ context.Context, email string) (*models.Profile, error) {
	return m.byEmail[email], nil
}

func (m *memProfiles) FindByID(_ context.Context, id string) (*models.Profile, error) {
	return m.byID[id], nil
}

func (m *memProfiles) Create(_ context.Context, p *models.Profile) error {
	m.byEmail[p.Email] = p
	m.byID[p.ID] = p
	return nil
}

func newAuthHandler(store *memProfiles) *AuthHandler {
	svc := service.NewAuthService(store, "test-secret", time.Hour)
	return NewAuthHandler(svc, store)
}

func postJSON(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestStatusReportsFirstUser(t *testing.T) {
	h := newAuthHandler(newMemProfiles())

	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		FirstUser bool `json:"firstUser"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.FirstUser)
}

func TestStatusAfterAccountsExist(t *testing.T) {
	store := newMemProfiles()
	require.NoError(t, store.Create(context.Background(), &models.Profile{ID: "u1", Email: "a@b.c"}))
	h := newAuthHandler(store)

	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var body struct {
		FirstUser bool `json:"firstUser"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.False(t, body.FirstUser)
}

func TestBootstrapProvisionsAdminAndSignsIn(t *testing.T) {
	store := newMemProfiles()
	h := newAuthHandler(store)

	rec := postJSON(h.Bootstrap, `{"email":"boss@example.com","password":"s3cret","fullName":"The Boss"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var session bootstrap.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)
	require.Equal(t, models.RoleAdmin, session.User.Role)

	created := store.byEmail["boss@example.com"]
	require.NotNil(t, created)
	require.Equal(t, models.RoleAdmin, created.Role)
}

func TestBootstrapConflictsOnceAccountsExist(t *testing.T) {
	store := newMemProfiles()
	h := newAuthHandler(store)

	rec := postJSON(h.Bootstrap, `{"email":"boss@example.com","password":"s3cret","fullName":"The Boss"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(h.Bootstrap, `{"email":"late@example.com","password":"pw","fullName":"Late Comer"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestBootstrapRequiresAllFields(t *testing.T) {
	h := newAuthHandler(newMemProfiles())

	rec := postJSON(h.Bootstrap, `{"email":"boss@example.com","password":"s3cret"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginAfterBootstrap(t *testing.T) {
	h := newAuthHandler(newMemProfiles())

	rec := postJSON(h.Bootstrap, `{"email":"boss@example.com","password":"s3cret","fullName":"The Boss"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(h.Login, `{"email":"boss@example.com","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var session bootstrap.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)

	rec = postJSON(h.Login, `{"email":"boss@example.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
