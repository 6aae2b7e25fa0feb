package httpx

import (
	"net/http"

	domainauth "github.com/superaisp/acceso-api/internal/domain/auth"
	apperrors "github.com/superaisp/acceso-api/internal/errors"
)

// ScheduleHandlers provides HTTP handlers for cronograma and role-gated content.
type ScheduleHandlers struct {
	Svc AuthServiceInterface
}

// Schedule returns the cronograma visible to any authenticated user.
// GET /api/cronograma (requires a valid session).
func (h *ScheduleHandlers) Schedule(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Svc.Schedule(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if entries == nil {
		entries = []domainauth.ScheduleEntry{}
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"cronograma": entries,
	})
}

// Coordinacion serves content restricted to coordinators and admins.
// GET /api/protected/coordinacion. The route's role middleware and the
// principal's own IsCoordinador must agree; the handler enforces the latter
// so it is safe even when mounted without the middleware.
func (h *ScheduleHandlers) Coordinacion(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		WriteAppError(w, apperrors.NoSession("authentication required"))
		return
	}
	if !principal.IsCoordinador() {
		WriteAppError(w, apperrors.Forbidden("insufficient permissions"))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"secret": "Datos sensibles de coordinación",
	})
}
