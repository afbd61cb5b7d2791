// Package window resolves the handle of the currently focused window.
package window

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/eugene-babichenko/done/internal/config"
)

// Querier reads the active window handle from the host window system.
type Querier interface {
	Active(ctx context.Context) (uint64, error)
}

// New selects the querier for the configured backend.
func New(cfg config.WindowConfig) (Querier, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "hypr":
		return HyprQuerier{}, nil
	case "x11":
		return X11Querier{}, nil
	default:
		return nil, fmt.Errorf("unknown window backend %q", cfg.Backend)
	}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		trimmed := strings.TrimSpace(string(out))
		if trimmed == "" {
			return nil, fmt.Errorf("%s %v failed: %w", name, args, err)
		}
		return nil, fmt.Errorf("%s %v failed: %w (%s)", name, args, err, trimmed)
	}
	return out, nil
}
