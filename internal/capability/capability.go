// Package capability binds the built-in command handlers into a registry.
package capability

import (
	"context"
	"fmt"
	"strconv"

	"github.com/eugene-babichenko/done/internal/notify"
	"github.com/eugene-babichenko/done/internal/protocol"
	"github.com/eugene-babichenko/done/internal/server"
	"github.com/eugene-babichenko/done/internal/window"
)

// NewRegistry builds the handler registry served by the command loop.
func NewRegistry(querier window.Querier, notifier notify.Notifier) *server.Registry {
	return server.NewRegistry(map[string]server.Handler{
		protocol.CmdGetForegroundWindow: foregroundWindowHandler(querier),
		protocol.CmdShowNotification:    showNotificationHandler(notifier),
	})
}

// foregroundWindowHandler replies with the active window handle as a
// decimal string.
func foregroundWindowHandler(querier window.Querier) server.Handler {
	return server.HandlerFunc(func(ctx context.Context, _ protocol.Arguments) (string, error) {
		handle, err := querier.Active(ctx)
		if err != nil {
			return "", fmt.Errorf("query foreground window: %w", err)
		}
		return strconv.FormatUint(handle, 10), nil
	})
}

// showNotificationHandler delivers the notification and replies OK.
func showNotificationHandler(notifier notify.Notifier) server.Handler {
	return server.HandlerFunc(func(ctx context.Context, args protocol.Arguments) (string, error) {
		req, err := protocol.ParseNotification(args)
		if err != nil {
			return "", err
		}
		if err := notifier.Show(ctx, req); err != nil {
			return "", fmt.Errorf("show notification: %w", err)
		}
		return "OK", nil
	})
}
