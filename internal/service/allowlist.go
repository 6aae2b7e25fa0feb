package service

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
	"unicode"

	domainauth "github.com/superaisp/acceso-api/internal/domain/auth"
	"github.com/superaisp/acceso-api/internal/ports"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var emailNormalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeEmail canonicalizes an email address for allow-list matching:
// surrounding whitespace is trimmed, the address is lowercased, and accents
// are stripped. "  CoordinacionGeneral@SuperaISP.org " and
// "coordinaciongeneral@superaisp.org" match the same record.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	stripped, _, err := transform.String(emailNormalizer, email)
	if err != nil {
		return email
	}
	return stripped
}

// allowlistSnapshot is an immutable view of the allow-list at fetch time.
// Lookups read whichever snapshot is current without locking.
type allowlistSnapshot struct {
	users     map[string]domainauth.AllowedUser
	schedule  []domainauth.ScheduleEntry
	fetchedAt time.Time
}

func (s *allowlistSnapshot) expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.fetchedAt) >= ttl
}

// AllowlistService resolves authorization records against a backing source,
// keeping an in-memory snapshot so the hot path never blocks on I/O.
//
// Refreshes are coalesced: concurrent lookups that find the snapshot stale
// trigger a single fetch. When the source fails after at least one successful
// fetch, the stale snapshot keeps serving; before the first successful fetch
// there is nothing to serve and lookups fail closed against an empty set, so
// a broken source rejects everyone rather than letting anyone through. The
// empty set is not cached, the next lookup retries the fetch.
type AllowlistService struct {
	source          ports.AllowlistSource
	refreshInterval time.Duration
	fetchTimeout    time.Duration
	logger          *slog.Logger
	now             func() time.Time

	snapshot atomic.Pointer[allowlistSnapshot]
	refresh  singleflight.Group
}

// AllowlistServiceOptions contains configuration for AllowlistService.
type AllowlistServiceOptions struct {
	// Source provides the authoritative records.
	Source ports.AllowlistSource

	// RefreshInterval is how long a snapshot is served before a refetch.
	// Optional, defaults to 5m.
	RefreshInterval time.Duration

	// FetchTimeout bounds a single refresh fetch. Optional, defaults to 10s.
	FetchTimeout time.Duration

	// Logger for refresh diagnostics. Optional, defaults to slog.Default().
	Logger *slog.Logger

	// Now overrides the clock (tests).
	Now func() time.Time
}

// NewAllowlistService creates a new AllowlistService.
func NewAllowlistService(opts AllowlistServiceOptions) *AllowlistService {
	refreshInterval := opts.RefreshInterval
	if refreshInterval <= 0 {
		refreshInterval = 5 * time.Minute
	}
	fetchTimeout := opts.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = 10 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &AllowlistService{
		source:          opts.Source,
		refreshInterval: refreshInterval,
		fetchTimeout:    fetchTimeout,
		logger:          logger,
		now:             now,
	}
}

// Resolve looks up an email in the allow-list. The email is normalized before
// matching. The boolean reports whether the address is authorized; a source
// failure is never surfaced here, it manifests as a negative result.
func (s *AllowlistService) Resolve(ctx context.Context, email string) (domainauth.AllowedUser, bool, error) {
	snap := s.current(ctx)
	user, ok := snap.users[NormalizeEmail(email)]
	return user, ok, nil
}

// Schedule returns the cronograma records from the current snapshot.
func (s *AllowlistService) Schedule(ctx context.Context) ([]domainauth.ScheduleEntry, error) {
	return s.current(ctx).schedule, nil
}

// Invalidate drops the current snapshot so the next lookup refetches.
func (s *AllowlistService) Invalidate() {
	s.snapshot.Store(nil)
}

// current returns a usable snapshot, refreshing when stale or absent.
// Fetch failures degrade instead of erroring: a stale snapshot keeps serving,
// and with no snapshot at all an ephemeral empty one is returned so every
// lookup comes back negative until the source recovers.
func (s *AllowlistService) current(ctx context.Context) *allowlistSnapshot {
	snap := s.snapshot.Load()
	if snap != nil && !snap.expired(s.now(), s.refreshInterval) {
		return snap
	}

	fresh, err, _ := s.refresh.Do("allowlist", func() (any, error) {
		// Another caller may have refreshed while this one waited.
		if current := s.snapshot.Load(); current != nil && !current.expired(s.now(), s.refreshInterval) {
			return current, nil
		}
		// The refresh serves every coalesced waiter, so it must not
		// inherit the winning caller's cancellation or deadline.
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
		defer cancel()
		return s.fetch(fetchCtx)
	})
	if err != nil {
		if snap != nil {
			s.logger.Warn("allow-list refresh failed, serving stale snapshot",
				"error", err,
				"snapshot_age", s.now().Sub(snap.fetchedAt).String(),
			)
			return snap
		}
		s.logger.Error("allow-list fetch failed with no snapshot, failing closed", "error", err)
		return &allowlistSnapshot{fetchedAt: s.now()}
	}

	return fresh.(*allowlistSnapshot)
}

// fetch loads the full record set from the source and swaps it in.
func (s *AllowlistService) fetch(ctx context.Context) (*allowlistSnapshot, error) {
	users, err := s.source.FetchUsers(ctx)
	if err != nil {
		return nil, err
	}

	schedule, err := s.source.FetchSchedule(ctx)
	if err != nil {
		return nil, err
	}

	byEmail := make(map[string]domainauth.AllowedUser, len(users))
	for _, user := range users {
		key := NormalizeEmail(user.Email)
		if key == "" {
			continue
		}
		byEmail[key] = user
	}

	snap := &allowlistSnapshot{
		users:     byEmail,
		schedule:  schedule,
		fetchedAt: s.now(),
	}
	s.snapshot.Store(snap)

	s.logger.Debug("allow-list snapshot refreshed",
		"users", len(byEmail),
		"schedule_entries", len(schedule),
	)

	return snap, nil
}
