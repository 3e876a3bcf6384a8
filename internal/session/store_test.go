package session

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngocminh-dev/tcms-api/internal/models"
)

func TestStoreLoginSetsAllFields(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.Login("jwt-token", "alice", models.RoleAdmin))

	state := s.Current()
	assert.True(t, state.IsAuthenticated())
	assert.Equal(t, "jwt-token", state.Token)
	assert.Equal(t, "alice", state.Username)
	assert.Equal(t, models.RoleAdmin, state.Role)
}

func TestStoreLogoutClearsEverything(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Login("jwt-token", "alice", models.RoleAdmin))

	require.NoError(t, s.Logout())

	state := s.Current()
	assert.False(t, state.IsAuthenticated())
	assert.Empty(t, state.Token)
	assert.Empty(t, state.Username)
	assert.Empty(t, state.Role)
}

func TestStoreLogoutIdempotent(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Logout())
	require.NoError(t, s.Logout())
	assert.False(t, s.Current().IsAuthenticated())
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Login("jwt-token", "bob", models.RoleStaff))

	reopened, err := Open(path)
	require.NoError(t, err)
	state := reopened.Current()
	assert.True(t, state.IsAuthenticated())
	assert.Equal(t, "bob", state.Username)
	assert.Equal(t, models.RoleStaff, state.Role)
}

func TestStoreFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}
	path := filepath.Join(t.TempDir(), "session.json")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Login("jwt-token", "bob", models.RoleStaff))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStoreMissingFileIsEmptySession(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.False(t, s.Current().IsAuthenticated())
}

func TestStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Open(path)
	assert.Error(t, err)
}
