package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	domainauth "github.com/superaisp/acceso-api/internal/domain/auth"
	apperrors "github.com/superaisp/acceso-api/internal/errors"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders returns a middleware that sets baseline security headers
// on every response.
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "no-referrer")
			next.ServeHTTP(w, r)
		})
	}
}

// CORSConfig holds configuration for the CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is the exact-match list of origins permitted to make
	// credentialed requests. Origins are compared without trailing slashes.
	AllowedOrigins []string
}

// CORS returns a middleware that answers cross-origin requests from the
// configured origins. Credentials are allowed, so the Allow-Origin header
// always echoes the specific origin rather than a wildcard. Requests from
// unlisted origins pass through without CORS headers and are left to the
// browser to block.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	allowed := make([]string, 0, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin != "" {
			allowed = append(allowed, origin)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && slices.Contains(allowed, strings.TrimRight(origin, "/")) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Add("Vary", "Origin")

				if r.Method == http.MethodOptions {
					h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
					h.Set("Access-Control-Allow-Headers", "Content-Type")
					h.Set("Access-Control-Max-Age", "600")
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth returns a middleware that requires a valid session.
// If the request carries no session or an invalid one, it returns a
// 401 Unauthorized response; invalid cookies are cleared.
func RequireAuth(authSvc AuthServiceInterface, cookies SessionCookies) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := authenticate(w, r, authSvc, cookies)
			if !ok {
				return
			}

			ctx := SetPrincipalInContext(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole returns a middleware that requires a valid session whose role
// is one of the given roles. Membership is exact, there is no role hierarchy.
func RequireRole(
	authSvc AuthServiceInterface,
	cookies SessionCookies,
	roles ...domainauth.Role,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := authenticate(w, r, authSvc, cookies)
			if !ok {
				return
			}

			if !slices.Contains(roles, principal.Role) {
				WriteAppError(w, apperrors.Forbidden("insufficient permissions"))
				return
			}

			ctx := SetPrincipalInContext(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authenticate resolves the request's session cookie into a principal.
// On failure the error response has already been written.
func authenticate(
	w http.ResponseWriter,
	r *http.Request,
	authSvc AuthServiceInterface,
	cookies SessionCookies,
) (*domainauth.Principal, bool) {
	token, err := cookies.Read(r)
	if err != nil {
		WriteAppError(w, apperrors.NoSession("authentication required"))
		return nil, false
	}

	principal, err := authSvc.CurrentSession(token)
	if err != nil {
		// The cookie exists but does not validate, drop it so the client
		// stops sending it.
		cookies.Clear(w, r)
		if apperrors.GetCode(err) == "" {
			err = errors.Join(apperrors.InvalidSession("session is not valid"), err)
		}
		WriteAppError(w, err)
		return nil, false
	}

	return &principal, true
}
