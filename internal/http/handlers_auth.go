package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/superaisp/acceso-api/internal/domain/auth"
	apperrors "github.com/superaisp/acceso-api/internal/errors"
	"github.com/superaisp/acceso-api/internal/service"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	Login(ctx context.Context, rawToken string) (*service.LoginResult, error)
	CurrentSession(token string) (domainauth.Principal, error)
	Schedule(ctx context.Context) ([]domainauth.ScheduleEntry, error)
}

// SessionCookies reads, sets, and clears the session cookie. Secure is
// derived per request so the same binary works behind TLS terminators and
// in local development.
type SessionCookies struct {
	Name   string
	Domain string
}

// Read returns the session credential from the request cookie.
func (c SessionCookies) Read(r *http.Request) (string, error) {
	cookie, err := r.Cookie(c.Name)
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}

// Set writes the session cookie with the credential's lifetime.
func (c SessionCookies) Set(w http.ResponseWriter, r *http.Request, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
}

// Clear expires the session cookie immediately. It mirrors key attributes
// (Secure, Path, Domain, SameSite) used when setting the cookie to maximize
// compatibility across browsers during deletion.
func (c SessionCookies) Clear(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc     AuthServiceInterface
	Cookies SessionCookies
	Logger  *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// googleLoginRequest is the sign-in request body.
type googleLoginRequest struct {
	IDToken string `json:"id_token"`
}

// GoogleLogin handles the sign-in endpoint.
// POST /api/auth/google with body {"id_token": "<google id token>"}.
func (h *AuthHandlers) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.IDToken == "" {
		WriteAppError(w, apperrors.Validation("id_token is required"))
		return
	}

	result, err := h.Svc.Login(r.Context(), req.IDToken)
	if err != nil {
		// No cookie is written on any failure path.
		h.logger().InfoContext(r.Context(), "sign-in rejected", "reason", apperrors.GetCode(err))
		WriteAppError(w, err)
		return
	}

	h.Cookies.Set(w, r, result.Token, result.TTL)
	WriteJSON(w, http.StatusOK, map[string]any{
		"ok":   true,
		"role": result.Principal.Role,
		"name": result.Principal.Name,
	})
}

// Me returns the authenticated user's profile.
// GET /api/me (requires a valid session).
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		WriteAppError(w, apperrors.NoSession("authentication required"))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"ok": true,
		"user": map[string]any{
			"id":      principal.Subject,
			"email":   principal.Email,
			"name":    principal.Name,
			"picture": principal.Picture,
			"role":    principal.Role,
		},
	})
}

// Logout clears the session cookie.
// POST /api/logout. Idempotent, succeeds with or without a session.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Cookies.Clear(w, r)
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}
