package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/superaisp/acceso-api/internal/domain/auth"
	"github.com/superaisp/acceso-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth *service.AuthService

	SessionCookieName string
	CookieDomain      string

	Logger *slog.Logger
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	cookies := SessionCookies{
		Name:   services.SessionCookieName,
		Domain: services.CookieDomain,
	}

	authHandlers := &AuthHandlers{
		Svc:     services.Auth,
		Cookies: cookies,
		Logger:  services.Logger,
	}
	scheduleHandlers := &ScheduleHandlers{Svc: services.Auth}

	requireAuth := RequireAuth(services.Auth, cookies)
	requireCoordinacion := RequireRole(services.Auth, cookies,
		domainauth.RoleCoordinador, domainauth.RoleAdmin)

	mux.HandleFunc("POST /api/auth/google", authHandlers.GoogleLogin)
	mux.HandleFunc("POST /api/logout", authHandlers.Logout)
	mux.Handle("GET /api/me", requireAuth(http.HandlerFunc(authHandlers.Me)))
	mux.Handle("GET /api/cronograma", requireAuth(http.HandlerFunc(scheduleHandlers.Schedule)))
	mux.Handle("GET /api/protected/coordinacion",
		requireCoordinacion(http.HandlerFunc(scheduleHandlers.Coordinacion)))

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}
