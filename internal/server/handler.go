// Package server runs the command loop: read one pipe message, decode it,
// dispatch its handler, emit one stdout line.
package server

import (
	"context"
	"sort"

	"github.com/eugene-babichenko/done/internal/protocol"
)

// Handler executes one command. The returned string is the single result
// line emitted on stdout; a non-nil error is reported as an ERROR line.
type Handler interface {
	Invoke(ctx context.Context, args protocol.Arguments) (string, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(context.Context, protocol.Arguments) (string, error)

func (f HandlerFunc) Invoke(ctx context.Context, args protocol.Arguments) (string, error) {
	return f(ctx, args)
}

// Registry is the immutable command table consulted by the loop. It is built
// once at startup; commands cannot be added or removed afterwards.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry copies handlers into an immutable lookup table.
func NewRegistry(handlers map[string]Handler) *Registry {
	table := make(map[string]Handler, len(handlers))
	for name, h := range handlers {
		table[name] = h
	}
	return &Registry{handlers: table}
}

// Lookup returns the handler registered under name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Names lists registered commands in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
