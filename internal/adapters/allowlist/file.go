package allowlist

// Package allowlist provides backing-store adapters for the allow-list
// resolver. Each adapter returns the complete record set on every fetch;
// caching, normalization, and fail-closed behavior live in the resolver.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	domainauth "github.com/superaisp/acceso-api/internal/domain/auth"
	"github.com/superaisp/acceso-api/internal/ports"
)

// FileSource reads allowed users from a local JSON file
// (an array of {email, role, name?, association?} objects).
type FileSource struct {
	path string
}

var _ ports.AllowlistSource = (*FileSource)(nil)

// NewFileSource creates a file-backed allow-list source.
func NewFileSource(path string) (*FileSource, error) {
	if path == "" {
		return nil, errors.New("allow-list file path is required")
	}
	return &FileSource{path: path}, nil
}

// FetchUsers reads and parses the allowed-users file.
// A missing file yields an empty list so the service can start before the
// file is provisioned.
func (s *FileSource) FetchUsers(_ context.Context) ([]domainauth.AllowedUser, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read allow-list file: %w", err)
	}

	var users []domainauth.AllowedUser
	if unmarshalErr := json.Unmarshal(data, &users); unmarshalErr != nil {
		return nil, fmt.Errorf("parse allow-list file %s: %w", s.path, unmarshalErr)
	}

	return users, nil
}

// FetchSchedule returns an empty schedule; the file source carries users only.
func (s *FileSource) FetchSchedule(_ context.Context) ([]domainauth.ScheduleEntry, error) {
	return nil, nil
}
