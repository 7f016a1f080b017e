package ipc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocketPathPrecedence(t *testing.T) {
	t.Setenv("CLIPKEEP_SOCKET", "/tmp/explicit.sock")
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	assert.Equal(t, "/tmp/explicit.sock", SocketPath())

	t.Setenv("CLIPKEEP_SOCKET", "")
	assert.Equal(t, "/run/user/1000/clipkeep.sock", SocketPath())

	t.Setenv("XDG_RUNTIME_DIR", "")
	assert.Equal(t, filepath.Join(os.TempDir(), "clipkeep.sock"), SocketPath())
}

func TestListenReplacesStaleSocket(t *testing.T) {
	// Short directory: Unix socket paths are length-limited.
	dir, err := os.MkdirTemp("", "ck")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	path := filepath.Join(dir, "s.sock")

	require.NoError(t, os.WriteFile(path, nil, 0o600))
	assert.False(t, IsRunning(path))

	ln, err := Listen(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	assert.True(t, IsRunning(path))
	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	_, err = Listen(path)
	assert.Error(t, err)
}

func TestTarget(t *testing.T) {
	assert.Equal(t, "unix:///tmp/x.sock", Target("/tmp/x.sock"))
}
