package pipe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// DefaultPath returns the conventional per-user pipe location.
func DefaultPath() (string, error) {
	runtimeDir := strings.TrimSpace(os.Getenv("XDG_RUNTIME_DIR"))
	if runtimeDir == "" {
		return "", errors.New("XDG_RUNTIME_DIR is not set")
	}
	return filepath.Join(runtimeDir, "done.fifo"), nil
}

// Create makes the FIFO at path when absent. An existing FIFO is reused;
// anything else at that path is rejected.
func Create(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("ensure pipe dir: %w", err)
	}
	if err := unix.Mkfifo(path, 0o600); err != nil {
		if errors.Is(err, unix.EEXIST) {
			return Verify(path)
		}
		return fmt.Errorf("mkfifo %s: %w", path, err)
	}
	return nil
}

// Verify confirms that path exists and names a FIFO.
func Verify(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat pipe %s: %w", path, err)
	}
	if fi.Mode()&os.ModeNamedPipe == 0 {
		return fmt.Errorf("pipe %s: not a named pipe (mode %s)", path, fi.Mode())
	}
	return nil
}
