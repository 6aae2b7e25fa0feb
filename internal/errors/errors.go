package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeMalformedToken indicates the identity token lacks the expected
	// structure or its payload could not be decoded.
	ErrCodeMalformedToken ErrorCode = "malformed_token"
	// ErrCodeInvalidSignature indicates the identity token signature did not
	// verify against the provider's published keys.
	ErrCodeInvalidSignature ErrorCode = "invalid_signature"
	// ErrCodeAudienceMismatch indicates the identity token was minted for a
	// different client.
	ErrCodeAudienceMismatch ErrorCode = "audience_mismatch"
	// ErrCodeTokenVerification indicates any other provider-side rejection
	// (expired, wrong issuer, malformed claims).
	ErrCodeTokenVerification ErrorCode = "token_verification"
	// ErrCodeEmailNotVerified indicates the provider has not verified the
	// account email.
	ErrCodeEmailNotVerified ErrorCode = "email_not_verified"
	// ErrCodeUserNotAuthorized indicates the email is absent from the allow-list.
	ErrCodeUserNotAuthorized ErrorCode = "user_not_authorized"
	// ErrCodeNoSession indicates no session cookie was presented.
	ErrCodeNoSession ErrorCode = "no_session"
	// ErrCodeInvalidSession indicates the session credential is expired or
	// fails signature validation.
	ErrCodeInvalidSession ErrorCode = "invalid_session"
	// ErrCodeForbidden indicates the session role is not in the allowed set.
	ErrCodeForbidden ErrorCode = "forbidden"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeUnavailable indicates a backing service could not be reached.
	ErrCodeUnavailable ErrorCode = "unavailable"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError with the given code and message.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Newf creates a new AppError with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// MalformedToken creates a new malformed-token error.
func MalformedToken(message string) *AppError {
	return New(ErrCodeMalformedToken, message)
}

// InvalidSignature creates a new invalid-signature error.
func InvalidSignature(message string) *AppError {
	return New(ErrCodeInvalidSignature, message)
}

// AudienceMismatch creates a new audience-mismatch error.
func AudienceMismatch(message string) *AppError {
	return New(ErrCodeAudienceMismatch, message)
}

// TokenVerification creates a new token-verification error.
func TokenVerification(message string) *AppError {
	return New(ErrCodeTokenVerification, message)
}

// EmailNotVerified creates a new email-not-verified error.
func EmailNotVerified(message string) *AppError {
	return New(ErrCodeEmailNotVerified, message)
}

// UserNotAuthorized creates a new user-not-authorized error.
func UserNotAuthorized(message string) *AppError {
	return New(ErrCodeUserNotAuthorized, message)
}

// NoSession creates a new no-session error.
func NoSession(message string) *AppError {
	return New(ErrCodeNoSession, message)
}

// InvalidSession creates a new invalid-session error.
func InvalidSession(message string) *AppError {
	return New(ErrCodeInvalidSession, message)
}

// Forbidden creates a new forbidden error.
func Forbidden(message string) *AppError {
	return New(ErrCodeForbidden, message)
}

// NotFound creates a new not-found error.
func NotFound(message string) *AppError {
	return New(ErrCodeNotFound, message)
}

// Validation creates a new validation error.
func Validation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

// Internal creates a new internal error.
func Internal(message string) *AppError {
	return New(ErrCodeInternal, message)
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsMalformedToken checks if an error is a malformed-token error.
func IsMalformedToken(err error) bool {
	return isCode(err, ErrCodeMalformedToken)
}

// IsInvalidSignature checks if an error is an invalid-signature error.
func IsInvalidSignature(err error) bool {
	return isCode(err, ErrCodeInvalidSignature)
}

// IsAudienceMismatch checks if an error is an audience-mismatch error.
func IsAudienceMismatch(err error) bool {
	return isCode(err, ErrCodeAudienceMismatch)
}

// IsTokenVerification checks if an error is a token-verification error.
func IsTokenVerification(err error) bool {
	return isCode(err, ErrCodeTokenVerification)
}

// IsEmailNotVerified checks if an error is an email-not-verified error.
func IsEmailNotVerified(err error) bool {
	return isCode(err, ErrCodeEmailNotVerified)
}

// IsUserNotAuthorized checks if an error is a user-not-authorized error.
func IsUserNotAuthorized(err error) bool {
	return isCode(err, ErrCodeUserNotAuthorized)
}

// IsNoSession checks if an error is a no-session error.
func IsNoSession(err error) bool {
	return isCode(err, ErrCodeNoSession)
}

// IsInvalidSession checks if an error is an invalid-session error.
func IsInvalidSession(err error) bool {
	return isCode(err, ErrCodeInvalidSession)
}

// IsForbidden checks if an error is a forbidden error.
func IsForbidden(err error) bool {
	return isCode(err, ErrCodeForbidden)
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return isCode(err, ErrCodeUnavailable)
}

// IsInternal checks if an error is an internal error.
func IsInternal(err error) bool {
	return isCode(err, ErrCodeInternal)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	return isCode(err, ErrCodeTimeout)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsTokenRejection reports whether the error is any identity-token rejection.
// All token rejections surface to callers with the same generic message so a
// caller cannot probe which check failed.
func IsTokenRejection(err error) bool {
	switch GetCode(err) {
	case ErrCodeMalformedToken, ErrCodeInvalidSignature, ErrCodeAudienceMismatch, ErrCodeTokenVerification:
		return true
	default:
		return false
	}
}
