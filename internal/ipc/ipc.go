// Package ipc provides helpers for the local Unix-socket control channel used
// by CLI tools (copy/paste/watch/status) to talk to a running clipkeep daemon.
//
// The channel is gRPC (ClipboardControl) multiplexed with the HTTP/JSON
// gateway on a single Unix domain socket. The socket file is created with
// owner-only permissions.
package ipc

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"
)

// SocketPath returns the path of the control socket.
//
//   - $CLIPKEEP_SOCKET when set
//   - $XDG_RUNTIME_DIR/clipkeep.sock on Linux desktops
//   - $TMPDIR/clipkeep.sock otherwise
func SocketPath() string {
	if s := os.Getenv("CLIPKEEP_SOCKET"); s != "" {
		return s
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "clipkeep.sock")
	}
	return filepath.Join(os.TempDir(), "clipkeep.sock")
}

// Target returns the gRPC dial target for path.
func Target(path string) string { return "unix://" + path }

// IsRunning reports whether a daemon appears to be listening on path. It does
// a cheap dial-and-close; no data is exchanged.
func IsRunning(path string) bool {
	c, err := net.DialTimeout("unix", path, time.Second)
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}

// Listen creates a listener on path, removing a stale socket from a previous
// (crashed) run first. It refuses to take over a socket that still answers.
func Listen(path string) (net.Listener, error) {
	if IsRunning(path) {
		return nil, fmt.Errorf("another daemon is listening on %s", path)
	}
	_ = os.Remove(path)
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", path, err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		_ = ln.Close()
		return nil, fmt.Errorf("chmod %s: %w", path, err)
	}
	return ln, nil
}
