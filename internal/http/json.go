package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/superaisp/acceso-api/internal/errors"
)

// DecodeJSON decodes JSON from the request body into the destination and handles errors.
// Returns true if successful, false if there was an error (error response already written).
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_json", Err: err})
		return false
	}

	return true
}

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (e.g., client disconnect) can't be recovered from here.
		return
	}
}

// ErrorParams groups parameters for WriteError.
type ErrorParams struct {
	Code    int
	ErrCode string
	Err     error
}

// WriteError writes a JSON error response using ErrorParams. Every error body
// carries "ok": false so clients can branch on a single field.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	body := map[string]any{
		"ok":      false,
		"message": p.Err.Error(),
	}
	if p.ErrCode != "" {
		body["error"] = p.ErrCode
	}
	WriteJSON(w, p.Code, body)
}

// WriteAppError maps an application error to an HTTP status and writes it.
// Token rejections collapse to a single generic 401, in both the message and
// the error code, so callers cannot tell which verification step failed. The
// distinct internal codes still feed logs and metrics.
func WriteAppError(w http.ResponseWriter, err error) {
	if apperrors.IsTokenRejection(err) {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "invalid_token",
			Err:     errors.New("token could not be verified"),
		})
		return
	}

	WriteError(w, ErrorParams{
		Code:    statusForError(err),
		ErrCode: string(apperrors.GetCode(err)),
		Err:     errors.New(publicMessage(err)),
	})
}

func statusForError(err error) int {
	switch {
	case apperrors.IsValidation(err):
		return http.StatusBadRequest
	case apperrors.IsNoSession(err), apperrors.IsInvalidSession(err):
		return http.StatusUnauthorized
	case apperrors.IsEmailNotVerified(err), apperrors.IsUserNotAuthorized(err), apperrors.IsForbidden(err):
		return http.StatusForbidden
	case apperrors.IsNotFound(err):
		return http.StatusNotFound
	case apperrors.IsUnavailable(err), apperrors.IsTimeout(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage keeps internal failure detail out of response bodies.
func publicMessage(err error) string {
	if statusForError(err) == http.StatusInternalServerError {
		return "an internal error occurred"
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "request failed"
}
