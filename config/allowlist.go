package config

import (
	"fmt"
	"strings"
	"time"
)

// AllowlistSourceMode selects the backing store for the allow-list.
type AllowlistSourceMode string

const (
	// AllowlistSourceFile reads allowed users from a local JSON file.
	AllowlistSourceFile AllowlistSourceMode = "file"
	// AllowlistSourceRemote fetches allowed users from the directory service.
	AllowlistSourceRemote AllowlistSourceMode = "remote"
	// AllowlistSourcePostgres reads allowed users from PostgreSQL.
	AllowlistSourcePostgres AllowlistSourceMode = "postgres"
)

// UnmarshalText implements encoding.TextUnmarshaler for AllowlistSourceMode.
func (m *AllowlistSourceMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "file", "remote", "postgres":
		*m = AllowlistSourceMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AllowlistSourceMode: %q (valid options: file, remote, postgres)", v)
	}
}

// AllowlistConfig controls where authorized users are loaded from and how
// often the in-memory snapshot is refreshed.
type AllowlistConfig struct {
	// Source selects the backing store.
	Source AllowlistSourceMode `env:"ALLOWLIST_SOURCE" envDefault:"file"`

	// File is the path to the allowed-users JSON file (Source=file).
	File string `env:"ALLOWLIST_FILE" envDefault:"allowedUsers.json"`

	// URL is the directory service endpoint (Source=remote). Records are
	// fetched with ?q=getUsers and ?q=getCronograma queries.
	URL string `env:"ALLOWLIST_URL"`

	// UsersExpr is the JMESPath expression locating user records in the
	// directory service response.
	UsersExpr string `env:"ALLOWLIST_USERS_EXPR" envDefault:"users"`

	// ScheduleExpr is the JMESPath expression locating schedule records in
	// the directory service response.
	ScheduleExpr string `env:"ALLOWLIST_SCHEDULE_EXPR" envDefault:"cronograma"`

	// FetchTimeout bounds a single fetch against the backing store.
	FetchTimeout time.Duration `env:"ALLOWLIST_FETCH_TIMEOUT" envDefault:"10s"`

	// RefreshInterval is the snapshot staleness window. A lookup against a
	// stale snapshot triggers a refresh; readers keep the previous snapshot
	// until the new one is published.
	RefreshInterval time.Duration `env:"ALLOWLIST_REFRESH_INTERVAL" envDefault:"5m"`
}

// Sanitize applies guardrails to allow-list configuration values.
func (c *AllowlistConfig) Sanitize() {
	c.File = strings.TrimSpace(c.File)
	c.URL = strings.TrimSpace(c.URL)
	c.UsersExpr = strings.TrimSpace(c.UsersExpr)
	c.ScheduleExpr = strings.TrimSpace(c.ScheduleExpr)
	if c.UsersExpr == "" {
		c.UsersExpr = "users"
	}
	if c.ScheduleExpr == "" {
		c.ScheduleExpr = "cronograma"
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 10 * time.Second
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = 5 * time.Minute
	}
}
