package allowlist

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/superaisp/acceso-api/internal/domain/auth"
)

func TestNewFileSourceRequiresPath(t *testing.T) {
	t.Parallel()

	_, err := NewFileSource("")
	require.Error(t, err)
}

func TestFileSourceFetchUsers(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "allowedUsers.json")
	content := `[
		{"email": "ana@superaisp.org", "name": "Ana", "role": "coordinador"},
		{"email": "luis@superaisp.org", "role": "sistematizador", "association": "Sur"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	source, err := NewFileSource(path)
	require.NoError(t, err)

	users, err := source.FetchUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, "ana@superaisp.org", users[0].Email)
	assert.Equal(t, domainauth.RoleCoordinador, users[0].Role)
	assert.Equal(t, "Sur", users[1].Association)
}

func TestFileSourceMissingFileYieldsEmptyList(t *testing.T) {
	t.Parallel()

	source, err := NewFileSource(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	users, err := source.FetchUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestFileSourceInvalidJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"`), 0o600))

	source, err := NewFileSource(path)
	require.NoError(t, err)

	_, err = source.FetchUsers(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse allow-list file")
}

func TestFileSourceScheduleIsEmpty(t *testing.T) {
	t.Parallel()

	source, err := NewFileSource("allowedUsers.json")
	require.NoError(t, err)

	entries, err := source.FetchSchedule(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
