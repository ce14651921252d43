package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	authpkg "github.com/Adarsha-Hegade/data-entry1/internal/auth"
	"github.com/Adarsha-Hegade/data-entry1/internal/models"
)

type fakeProfileStore struct {
	byEmail map[string]*models.Profile
	byID    map[string]*models.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{
		byEmail: make(map[string]*models.Profile),
		byID:    make(map[string]*models.Profile),
	}
}

func (f *fakeProfileStore) Any(context.Context) (bool, error) {
	return len(f.byID) > 0, nil
}

func (f *fakeProfileStore) FindByEmail(_ context.Context, email string) (*models.Profile, error) {
	return f.byEmail[email], nil
}

func (f *fakeProfileStore) FindByID(_ context.Context, id string) (*models.Profile, error) {
	return f.byID[id], nil
}

func (f *fakeProfileStore) Create(_ context.Context, p *models.Profile) error {
	f.byEmail[p.Email] = p
	f.byID[p.ID] = p
	return nil
}

func newTestAuthService(store *fakeProfileStore) *AuthService {
	return NewAuthService(store, "test-secret", time.Hour)
}

func TestSignUpStoresHashedPassword(t *testing.T) {
	store := newFakeProfileStore()
	svc := newTestAuthService(store)

	id, err := svc.SignUp(context.Background(), "user@example.com", "hunter2", "Test User", models.RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	created := store.byID[id]
	require.NotNil(t, created)
	require.Equal(t, models.RoleUser, created.Role)
	require.NotEqual(t, "hunter2", created.PasswordHash)
	require.True(t, authpkg.CheckPassword("hunter2", created.PasswordHash))
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	store := newFakeProfileStore()
	svc := newTestAuthService(store)

	_, err := svc.SignUp(context.Background(), "user@example.com", "pw", "First", models.RoleUser)
	require.NoError(t, err)

	_, err = svc.SignUp(context.Background(), "user@example.com", "pw", "Second", models.RoleUser)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignUpRejectsUnknownRole(t *testing.T) {
	svc := newTestAuthService(newFakeProfileStore())

	_, err := svc.SignUp(context.Background(), "user@example.com", "pw", "Test User", "superuser")
	require.Error(t, err)
}

func TestSignInIssuesValidToken(t *testing.T) {
	store := newFakeProfileStore()
	svc := newTestAuthService(store)

	id, err := svc.SignUp(context.Background(), "admin@example.com", "s3cret", "Admin", models.RoleAdmin)
	require.NoError(t, err)

	session, err := svc.SignIn(context.Background(), "admin@example.com", "s3cret")
	require.NoError(t, err)
	require.Equal(t, id, session.User.ID)
	require.Equal(t, models.RoleAdmin, session.User.Role)

	claims, err := authpkg.ValidateToken("test-secret", session.Token)
	require.NoError(t, err)
	require.Equal(t, id, claims.UserID)
	require.Equal(t, models.RoleAdmin, claims.Role)
}

func TestSignInRejectsWrongPassword(t *testing.T) {
	store := newFakeProfileStore()
	svc := newTestAuthService(store)

	_, err := svc.SignUp(context.Background(), "user@example.com", "right", "Test User", models.RoleUser)
	require.NoError(t, err)

	_, err = svc.SignIn(context.Background(), "user@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignInRejectsUnknownEmail(t *testing.T) {
	svc := newTestAuthService(newFakeProfileStore())

	_, err := svc.SignIn(context.Background(), "nobody@example.com", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMeReturnsNotFoundForMissingProfile(t *testing.T) {
	svc := newTestAuthService(newFakeProfileStore())

	_, err := svc.Me(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMeOmitsPasswordHash(t *testing.T) {
	store := newFakeProfileStore()
	svc := newTestAuthService(store)

	id, err := svc.SignUp(context.Background(), "user@example.com", "pw", "Test User", models.RoleUser)
	require.NoError(t, err)

	me, err := svc.Me(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "user@example.com", me.Email)
	require.Equal(t, "Test User", me.FullName)
}
