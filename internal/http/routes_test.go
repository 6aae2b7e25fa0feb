package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/superaisp/acceso-api/internal/domain/auth"
	mockauth "github.com/superaisp/acceso-api/internal/mocks/auth"
	"github.com/superaisp/acceso-api/internal/service"
)

func newTestRouter(t *testing.T, role domainauth.Role) http.Handler {
	t.Helper()

	source := &mockauth.MemorySource{
		Users: []domainauth.AllowedUser{
			{Email: "mock.user@example.com", Name: "Ana García", Role: role},
		},
		Schedule: []domainauth.ScheduleEntry{{Title: "Cierre mensual", Date: "2026-09-01"}},
	}

	auth := service.NewAuthService(service.AuthServiceOptions{
		Verifier:  mockauth.NewMockVerifier(),
		Allowlist: service.NewAllowlistService(service.AllowlistServiceOptions{Source: source}),
		Sessions:  &mockauth.MockCodec{},
	})

	return NewRouter(RouterServices{
		Auth:              auth,
		SessionCookieName: "session",
	})
}

func signIn(t *testing.T, router http.Handler) *http.Cookie {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/google",
		strings.NewReader(`{"id_token":"google-token"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookie := findCookie(t, rec, "session")
	require.NotNil(t, cookie, "sign-in must set the session cookie")
	return cookie
}

func TestRouterSignInFlow(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, domainauth.RoleCoordinador)
	cookie := signIn(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mock.user@example.com")
	assert.Contains(t, rec.Body.String(), "coordinador")
}

func TestRouterRejectsUnauthenticatedMe(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, domainauth.RoleCoordinador)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterScheduleRequiresSession(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, domainauth.RoleSistematizador)

	req := httptest.NewRequest(http.MethodGet, "/api/cronograma", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	cookie := signIn(t, router)
	req = httptest.NewRequest(http.MethodGet, "/api/cronograma", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cierre mensual")
}

func TestRouterCoordinacionRoleGate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		role       domainauth.Role
		wantStatus int
	}{
		{"coordinador", domainauth.RoleCoordinador, http.StatusOK},
		{"admin", domainauth.RoleAdmin, http.StatusOK},
		{"sistematizador", domainauth.RoleSistematizador, http.StatusForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router := newTestRouter(t, tc.role)
			cookie := signIn(t, router)

			req := httptest.NewRequest(http.MethodGet, "/api/protected/coordinacion", nil)
			req.AddCookie(cookie)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestRouterLogoutThenMe(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, domainauth.RoleCoordinador)
	cookie := signIn(t, router)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	cleared := findCookie(t, rec, "session")
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	// A client honoring the cleared cookie sends no session at all.
	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterHealth(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, domainauth.RoleCoordinador)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
