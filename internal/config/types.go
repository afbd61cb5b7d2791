// Package config resolves, parses, validates, and defaults doned configuration.
package config

// Config is the fully materialized runtime configuration used by doned.
type Config struct {
	Pipe   PipeConfig
	Window WindowConfig
	Notify NotifyConfig
}

// PipeConfig controls where the command pipe lives.
type PipeConfig struct {
	Path string
}

// WindowConfig controls how the foreground window handle is resolved.
type WindowConfig struct {
	Backend string
}

// NotifyConfig controls notification delivery and the optional chime.
type NotifyConfig struct {
	Backend      string
	AppName      string
	TimeoutMS    int
	EscapeMarkup bool
	Command      CommandConfig
	Sound        SoundConfig
}

// SoundConfig controls the notification chime.
type SoundConfig struct {
	Enable bool
	File   string
}

// CommandConfig stores a raw command string and its parsed argv form.
type CommandConfig struct {
	Raw  string
	Argv []string
}

// Warning is a non-fatal parse/validation message.
type Warning struct {
	Message string
}
