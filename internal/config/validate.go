package config

import (
	"fmt"
	"strings"
)

// Validate enforces config invariants and returns non-fatal warnings.
func Validate(cfg Config) ([]Warning, error) {
	warnings := make([]Warning, 0)

	windowBackend := strings.ToLower(strings.TrimSpace(cfg.Window.Backend))
	if windowBackend == "" {
		return nil, fmt.Errorf("window.backend must not be empty")
	}
	if windowBackend != "hypr" && windowBackend != "x11" {
		return nil, fmt.Errorf("window.backend must be one of: hypr, x11")
	}

	notifyBackend := strings.ToLower(strings.TrimSpace(cfg.Notify.Backend))
	if notifyBackend == "" {
		return nil, fmt.Errorf("notify.backend must not be empty")
	}
	if notifyBackend != "desktop" && notifyBackend != "hypr" && notifyBackend != "command" {
		return nil, fmt.Errorf("notify.backend must be one of: desktop, hypr, command")
	}
	if notifyBackend == "desktop" && strings.TrimSpace(cfg.Notify.AppName) == "" {
		return nil, fmt.Errorf("notify.app_name must not be empty when notify.backend=desktop")
	}
	if notifyBackend == "command" && len(cfg.Notify.Command.Argv) == 0 {
		return nil, fmt.Errorf("notify.command must be set when notify.backend=command")
	}
	if cfg.Notify.TimeoutMS < 0 {
		return nil, fmt.Errorf("notify.timeout_ms must be >= 0")
	}

	if notifyBackend != "command" && len(cfg.Notify.Command.Argv) > 0 {
		warnings = append(warnings, Warning{Message: "notify.command is ignored unless notify.backend=command"})
	}
	if !cfg.Notify.Sound.Enable && strings.TrimSpace(cfg.Notify.Sound.File) != "" {
		warnings = append(warnings, Warning{Message: "notify.sound.file is ignored while notify.sound.enable=false"})
	}

	return warnings, nil
}
