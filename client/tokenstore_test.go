// client/tokenstore_test.go
package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	ts := NewFileTokenStore(path)

	assert.Empty(t, ts.Get(), "fresh store should be empty")

	require.NoError(t, ts.Set("abc123"))
	assert.Equal(t, "abc123", ts.Get())

	// replacing
	require.NoError(t, ts.Set("def456"))
	assert.Equal(t, "def456", ts.Get())

	require.NoError(t, ts.Clear())
	assert.Empty(t, ts.Get())
}

func TestFileTokenStoreClearIsIdempotent(t *testing.T) {
	ts := NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, ts.Clear())
	require.NoError(t, ts.Clear())
}

func TestFileTokenStoreTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("  abc123\n"), 0600))

	ts := NewFileTokenStore(path)
	assert.Equal(t, "abc123", ts.Get())
}

func TestFileTokenStorePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	ts := NewFileTokenStore(path)
	require.NoError(t, ts.Set("secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestMemoryTokenStore(t *testing.T) {
	ts := &MemoryTokenStore{}
	assert.Empty(t, ts.Get())

	require.NoError(t, ts.Set("tok"))
	assert.Equal(t, "tok", ts.Get())

	require.NoError(t, ts.Clear())
	assert.Empty(t, ts.Get())
}
