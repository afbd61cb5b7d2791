package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateRejectsInvalidFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "empty window backend", mutate: func(c *Config) { c.Window.Backend = "" }, wantErr: "window.backend"},
		{name: "unknown window backend", mutate: func(c *Config) { c.Window.Backend = "wayland" }, wantErr: "hypr, x11"},
		{name: "empty notify backend", mutate: func(c *Config) { c.Notify.Backend = " " }, wantErr: "notify.backend"},
		{name: "unknown notify backend", mutate: func(c *Config) { c.Notify.Backend = "growl" }, wantErr: "desktop, hypr, command"},
		{name: "desktop without app name", mutate: func(c *Config) { c.Notify.AppName = "" }, wantErr: "notify.app_name"},
		{name: "command backend without command", mutate: func(c *Config) { c.Notify.Backend = "command" }, wantErr: "notify.command"},
		{name: "negative timeout", mutate: func(c *Config) { c.Notify.TimeoutMS = -1 }, wantErr: "notify.timeout_ms"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)

			_, err := Validate(cfg)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidateAcceptsCaseInsensitiveBackends(t *testing.T) {
	cfg := Default()
	cfg.Window.Backend = "X11"
	cfg.Notify.Backend = "Desktop"

	warnings, err := Validate(cfg)
	require.NoError(t, err)
	require.Empty(t, warnings)
}

func TestValidateWarnsOnIgnoredNotifyCommand(t *testing.T) {
	cfg := Default()
	cfg.Notify.Command = CommandConfig{Raw: "notify-send", Argv: []string{"notify-send"}}

	warnings, err := Validate(cfg)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0].Message, "notify.command is ignored")
}

func TestValidateWarnsOnIgnoredSoundFile(t *testing.T) {
	cfg := Default()
	cfg.Notify.Sound.Enable = false
	cfg.Notify.Sound.File = "/tmp/ding.wav"

	warnings, err := Validate(cfg)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0].Message, "notify.sound.file is ignored")
}
