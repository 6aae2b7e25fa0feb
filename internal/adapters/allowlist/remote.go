package allowlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
	domainauth "github.com/superaisp/acceso-api/internal/domain/auth"
	"github.com/superaisp/acceso-api/internal/ports"
)

// RemoteSource fetches allow-list records from the directory service over
// HTTP. The service answers ?q=getUsers and ?q=getCronograma queries with a
// JSON document; a JMESPath expression locates the record array inside it, so
// the application does not depend on the exact response envelope.
type RemoteSource struct {
	endpoint     string
	usersExpr    string
	scheduleExpr string
	client       *http.Client
}

var _ ports.AllowlistSource = (*RemoteSource)(nil)

// RemoteSourceConfig holds configuration for the remote allow-list source.
type RemoteSourceConfig struct {
	// URL is the directory service endpoint.
	URL string

	// UsersExpr locates user records in the getUsers response.
	// Use "@" when the response is a bare array.
	UsersExpr string

	// ScheduleExpr locates schedule records in the getCronograma response.
	ScheduleExpr string

	// Timeout bounds a single fetch. Optional, defaults to 10s.
	Timeout time.Duration

	// HTTPClient overrides the fetch client (tests). When set, Timeout is
	// not applied to it.
	HTTPClient *http.Client
}

// NewRemoteSource validates the configuration and compiles the JMESPath
// expressions up front so misconfiguration fails at startup, not per request.
func NewRemoteSource(config RemoteSourceConfig) (*RemoteSource, error) {
	if strings.TrimSpace(config.URL) == "" {
		return nil, errors.New("directory service URL is required")
	}
	if _, err := url.Parse(config.URL); err != nil {
		return nil, fmt.Errorf("parse directory service URL: %w", err)
	}

	usersExpr := strings.TrimSpace(config.UsersExpr)
	if usersExpr == "" {
		usersExpr = "@"
	}
	scheduleExpr := strings.TrimSpace(config.ScheduleExpr)
	if scheduleExpr == "" {
		scheduleExpr = "@"
	}
	for _, expr := range []string{usersExpr, scheduleExpr} {
		if _, err := jmespath.Compile(expr); err != nil {
			return nil, fmt.Errorf("compile JMESPath expression %q: %w", expr, err)
		}
	}

	client := config.HTTPClient
	if client == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &RemoteSource{
		endpoint:     strings.TrimSpace(config.URL),
		usersExpr:    usersExpr,
		scheduleExpr: scheduleExpr,
		client:       client,
	}, nil
}

// FetchUsers retrieves the full set of authorized users.
func (s *RemoteSource) FetchUsers(ctx context.Context) ([]domainauth.AllowedUser, error) {
	var users []domainauth.AllowedUser
	if err := s.query(ctx, "getUsers", s.usersExpr, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FetchSchedule retrieves the cronograma records.
func (s *RemoteSource) FetchSchedule(ctx context.Context) ([]domainauth.ScheduleEntry, error) {
	var entries []domainauth.ScheduleEntry
	if err := s.query(ctx, "getCronograma", s.scheduleExpr, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// query performs one directory service call and decodes the extracted records
// into dst (a pointer to a slice).
func (s *RemoteSource) query(ctx context.Context, queryName, expr string, dst any) error {
	reqURL, err := s.buildURL(queryName)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build directory request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("directory %s: %w", queryName, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("directory %s: unexpected status %d", queryName, resp.StatusCode)
	}

	var payload any
	if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr != nil {
		return fmt.Errorf("decode directory %s response: %w", queryName, decodeErr)
	}

	records, err := jmespath.Search(expr, payload)
	if err != nil {
		return fmt.Errorf("extract records from %s response: %w", queryName, err)
	}
	if records == nil {
		return nil
	}

	// Round-trip through JSON to map loosely typed records onto the domain
	// structs, tolerating extra fields from the directory service.
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("re-encode %s records: %w", queryName, err)
	}
	if unmarshalErr := json.Unmarshal(raw, dst); unmarshalErr != nil {
		return fmt.Errorf("map %s records: %w", queryName, unmarshalErr)
	}

	return nil
}

func (s *RemoteSource) buildURL(queryName string) (string, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse directory service URL: %w", err)
	}
	q := u.Query()
	q.Set("q", queryName)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
