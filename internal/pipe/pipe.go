// Package pipe implements the FIFO transport carrying command messages.
//
// Producers open the pipe for writing, write one JSON payload, and close
// their end; the resulting EOF is what frames a message. The reader runs an
// open/read/close cycle per message and reopens the pipe before every read.
package pipe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// ErrInterrupted reports a read cycle that ended without a message. Callers
// retry; the cycle consumed a producer session that carried no payload.
var ErrInterrupted = errors.New("pipe read interrupted")

// Reader consumes command messages from the FIFO one cycle at a time.
type Reader struct {
	path string
}

func NewReader(path string) *Reader {
	return &Reader{path: path}
}

type openResult struct {
	file *os.File
	err  error
}

// ReadMessage blocks until a producer connects, then reads that session to
// EOF and returns the payload. Sessions that end without data yield
// ErrInterrupted; context cancellation yields ctx.Err().
func (r *Reader) ReadMessage(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	openDone := make(chan openResult, 1)
	go func() {
		f, err := os.OpenFile(r.path, os.O_RDONLY, 0)
		openDone <- openResult{file: f, err: err}
	}()

	select {
	case res := <-openDone:
		if res.err != nil {
			return nil, fmt.Errorf("open pipe %s: %w", r.path, res.err)
		}
		return r.drain(res.file)
	case <-ctx.Done():
		r.abandonOpen(openDone)
		return nil, ctx.Err()
	}
}

// drain reads one producer session to EOF and closes the descriptor.
func (r *Reader) drain(f *os.File) ([]byte, error) {
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat pipe %s: %w", r.path, err)
	}
	if fi.Mode()&os.ModeNamedPipe == 0 {
		return nil, fmt.Errorf("pipe %s: not a named pipe", r.path)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		// The producer owns the cycle and may tear it down mid-read; surface
		// that as a retryable interruption rather than a transport failure.
		return nil, fmt.Errorf("%w: %v", ErrInterrupted, err)
	}
	if len(data) == 0 {
		return nil, ErrInterrupted
	}
	return data, nil
}

// abandonOpen unblocks a pending FIFO open after cancellation by briefly
// connecting as a writer, then releases whatever the open produced.
func (r *Reader) abandonOpen(openDone <-chan openResult) {
	giveUp := time.NewTimer(time.Second)
	defer giveUp.Stop()
	retry := time.NewTicker(10 * time.Millisecond)
	defer retry.Stop()

	for {
		r.wake()
		select {
		case res := <-openDone:
			if res.err == nil {
				_ = res.file.Close()
			}
			return
		case <-retry.C:
		case <-giveUp.C:
			return
		}
	}
}

// wake connects as a non-blocking writer so a reader blocked in open can
// complete. ENXIO means no reader is pending yet; abandonOpen retries.
func (r *Reader) wake() {
	fd, err := unix.Open(r.path, unix.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	_ = unix.Close(fd)
}
