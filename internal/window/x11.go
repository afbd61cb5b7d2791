package window

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// X11Querier resolves the focused window through xdotool.
type X11Querier struct{}

// Active returns the X11 window id of the focused window.
func (X11Querier) Active(ctx context.Context) (uint64, error) {
	output, err := runCommand(ctx, "xdotool", "getactivewindow")
	if err != nil {
		return 0, err
	}

	raw := strings.TrimSpace(string(output))
	if raw == "" {
		return 0, fmt.Errorf("no active window")
	}

	handle, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse xdotool window id %q: %w", raw, err)
	}
	return handle, nil
}
