package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/eugene-babichenko/done/internal/fsm"
	"github.com/eugene-babichenko/done/internal/pipe"
	"github.com/eugene-babichenko/done/internal/protocol"
)

// MessageSource is the loop-facing subset of the pipe transport.
type MessageSource interface {
	ReadMessage(ctx context.Context) ([]byte, error)
}

// Loop owns the sequential read/decode/dispatch cycle. Exactly one message
// is in flight at a time, so result lines appear in request order.
type Loop struct {
	logger   *slog.Logger
	source   MessageSource
	registry *Registry
	out      io.Writer

	mu    sync.RWMutex
	state fsm.State
}

// NewLoop constructs a command loop with safe default fallbacks.
func NewLoop(logger *slog.Logger, source MessageSource, registry *Registry, out io.Writer) *Loop {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if registry == nil {
		registry = NewRegistry(nil)
	}
	if out == nil {
		out = io.Discard
	}

	return &Loop{
		logger:   logger,
		source:   source,
		registry: registry,
		out:      out,
		state:    fsm.StateIdle,
	}
}

// State returns the current FSM state snapshot.
func (l *Loop) State() fsm.State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// advance applies one FSM event to the loop state.
func (l *Loop) advance(event fsm.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next, err := fsm.Transition(l.state, event)
	if err != nil {
		return err
	}
	l.state = next
	return nil
}

// Run processes messages until ctx is cancelled or the transport fails.
// A nil return means clean shutdown; any error means the pipe is unusable
// and the process should exit non-zero.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info("command loop started", "commands", l.registry.Names())

	for {
		if err := l.advance(fsm.EventRead); err != nil {
			return err
		}

		data, err := l.source.ReadMessage(ctx)
		if err != nil {
			switch {
			case ctx.Err() != nil:
				_ = l.advance(fsm.EventShutdown)
				l.logger.Info("command loop stopped", "reason", ctx.Err())
				return nil
			case errors.Is(err, pipe.ErrInterrupted):
				// The retrying state re-enters reading through the next
				// iteration's read event.
				if err := l.advance(fsm.EventInterrupt); err != nil {
					return err
				}
				l.logger.Debug("read interrupted; retrying")
				continue
			default:
				l.logger.Error("pipe read failed", "error", err)
				return fmt.Errorf("read command pipe: %w", err)
			}
		}

		requestID := uuid.NewString()
		if err := l.advance(fsm.EventMessage); err != nil {
			return err
		}

		cmd, err := protocol.Decode(data)
		if err != nil {
			// Malformed payloads are dropped without output so one bad
			// producer cannot poison the stream for the next one.
			l.logger.Warn("discarding malformed message", "request_id", requestID, "error", err, "bytes", len(data))
			if err := l.advance(fsm.EventDiscard); err != nil {
				return err
			}
			continue
		}

		handler, ok := l.registry.Lookup(cmd.Name)
		if !ok {
			l.logger.Info("ignoring unknown command", "request_id", requestID, "command", cmd.Name)
			if err := l.advance(fsm.EventDiscard); err != nil {
				return err
			}
			continue
		}

		if err := l.advance(fsm.EventDecoded); err != nil {
			return err
		}

		l.logger.Info("dispatching command", "request_id", requestID, "command", cmd.Name)
		result, err := handler.Invoke(ctx, cmd.Arguments)
		if err != nil {
			l.logger.Error("command failed", "request_id", requestID, "command", cmd.Name, "error", err)
			l.emit("ERROR: " + err.Error())
		} else {
			l.emit(result)
		}

		if err := l.advance(fsm.EventDispatched); err != nil {
			return err
		}
	}
}

// emit writes one result line before the next read cycle begins.
func (l *Loop) emit(line string) {
	_, _ = fmt.Fprintln(l.out, line)
}
