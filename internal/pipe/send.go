package pipe

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// ErrNoReader reports that no server currently has the pipe open for reading.
var ErrNoReader = errors.New("no pipe reader")

// Send connects as a writer, delivers one payload, and closes the pipe so the
// reader observes EOF. The non-blocking open fails fast with ErrNoReader
// instead of hanging when no server is draining the pipe.
func Send(path string, payload []byte) error {
	fd, err := unix.Open(path, unix.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		if errors.Is(err, unix.ENXIO) {
			return fmt.Errorf("%w at %s", ErrNoReader, path)
		}
		return fmt.Errorf("open pipe %s: %w", path, err)
	}

	// Restore blocking mode so payloads larger than the pipe buffer wait for
	// the reader to drain instead of failing with EAGAIN mid-write.
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err == nil {
		_, err = unix.FcntlInt(uintptr(fd), unix.F_SETFL, flags&^unix.O_NONBLOCK)
	}
	if err != nil {
		_ = unix.Close(fd)
		return fmt.Errorf("set pipe %s blocking: %w", path, err)
	}

	f := os.NewFile(uintptr(fd), path)
	defer f.Close()

	if _, err := f.Write(payload); err != nil {
		return fmt.Errorf("write pipe %s: %w", path, err)
	}
	return nil
}
