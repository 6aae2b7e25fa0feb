package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"slices"
	"time"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleSistematizador Role = "sistematizador"
	RoleCoordinador    Role = "coordinador"
	RoleAdmin          Role = "admin"
)

// ValidRoles returns all valid roles.
func ValidRoles() []Role {
	return []Role{RoleSistematizador, RoleCoordinador, RoleAdmin}
}

// IsValid reports whether the role is one of the defined values.
func (r Role) IsValid() bool {
	return slices.Contains(ValidRoles(), r)
}

// Identity represents the claims decoded from a Google ID token.
// Adapters map provider-specific claims into this shape.
type Identity struct {
	Subject       string // stable user identifier (Google "sub")
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// AllowedUser is an allow-list entry mapping an email to a role.
// The email key is matched case-insensitively with accents and surrounding
// whitespace stripped; Name and Association are stored verbatim.
type AllowedUser struct {
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	Role        Role   `json:"role,omitempty"`
	Association string `json:"association,omitempty"`
}

// Principal is the authenticated user embedded in the session credential.
// The role is fixed at issuance; later allow-list changes do not affect an
// already-issued session until it expires.
type Principal struct {
	Subject   string    `json:"sub"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture,omitempty"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsCoordinador reports whether the principal may access coordination resources.
func (p Principal) IsCoordinador() bool {
	return p.Role == RoleCoordinador || p.Role == RoleAdmin
}

// ScheduleEntry is a cronograma record from the directory service.
// Records are passed through to clients untouched.
type ScheduleEntry struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Notes string `json:"notes,omitempty"`
}
