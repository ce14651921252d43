package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Adarsha-Hegade/data-entry1/internal/models"
)

func bearerRequest(t *testing.T, secret, role string) *http.Request {
	t.Helper()
	token, err := GenerateToken(secret, time.Hour, "u1", "user@example.com", role)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestMiddlewarePropagatesClaims(t *testing.T) {
	var got *Claims
	handler := Middleware("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetUser(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest(t, "secret", models.RoleUser))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	require.Equal(t, "u1", got.UserID)
	require.Equal(t, models.RoleUser, got.Role)
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	handler := Middleware("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareRejectsForgedToken(t *testing.T) {
	handler := Middleware("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest(t, "other-secret", models.RoleUser))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	handler := Middleware("secret")(RequireRole(models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest(t, "secret", models.RoleAdmin))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireRoleForbidsOtherRoles(t *testing.T) {
	handler := Middleware("secret")(RequireRole(models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest(t, "secret", models.RoleUser))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleWithoutClaimsIsUnauthorized(t *testing.T) {
	handler := RequireRole(models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareErrorsAreJSON(t *testing.T) {
	handler := Middleware("secret")(RequireRole(models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})))

	for _, tc := range []struct {
		name    string
		req     *http.Request
		status  int
		message string
	}{
		{"missing header", httptest.NewRequest(http.MethodGet, "/", nil), http.StatusUnauthorized, "unauthorized"},
		{"bad token", bearerRequest(t, "other-secret", models.RoleAdmin), http.StatusUnauthorized, "invalid token"},
		{"wrong role", bearerRequest(t, "secret", models.RoleUser), http.StatusForbidden, "forbidden"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, tc.req)

			require.Equal(t, tc.status, rec.Code)
			require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body struct {
				Error string `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Equal(t, tc.message, body.Error)
		})
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	require.NotEqual(t, "hunter2", hash)

	require.True(t, CheckPassword("hunter2", hash))
	require.False(t, CheckPassword("hunter3", hash))
}
