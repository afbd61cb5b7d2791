package window

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// activeWindow mirrors the hyprctl activewindow fields we consume.
type activeWindow struct {
	Address string `json:"address"`
	Class   string `json:"class"`
}

// HyprQuerier resolves the focused window through hyprctl.
type HyprQuerier struct{}

// Active returns the numeric address of the focused Hyprland window.
func (HyprQuerier) Active(ctx context.Context) (uint64, error) {
	output, err := runCommand(ctx, "hyprctl", "-j", "activewindow")
	if err != nil {
		return 0, err
	}

	var window activeWindow
	if err := json.Unmarshal(output, &window); err != nil {
		return 0, fmt.Errorf("decode hyprctl activewindow output: %w", err)
	}

	address := strings.TrimSpace(window.Address)
	if address == "" {
		// hyprctl reports {} when no window holds focus.
		return 0, fmt.Errorf("no active window")
	}

	hex := strings.TrimPrefix(strings.ToLower(address), "0x")
	handle, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("parse window address %q: %w", address, err)
	}
	return handle, nil
}
