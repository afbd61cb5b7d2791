package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Parse reads JSONC configuration content over the supplied base config.
func Parse(content string, base Config) (Config, []Warning, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		validatedWarnings, err := Validate(base)
		if err != nil {
			return Config{}, nil, err
		}
		return base, validatedWarnings, nil
	}

	if !strings.HasPrefix(trimmed, "{") {
		return Config{}, nil, fmt.Errorf("config must be a JSONC object")
	}

	return parseJSONC(content, base)
}

type jsoncConfig struct {
	Pipe   *jsoncPipe   `json:"pipe"`
	Window *jsoncWindow `json:"window"`
	Notify *jsoncNotify `json:"notify"`
}

type jsoncPipe struct {
	Path *string `json:"path"`
}

type jsoncWindow struct {
	Backend *string `json:"backend"`
}

type jsoncNotify struct {
	Backend      *string     `json:"backend"`
	AppName      *string     `json:"app_name"`
	TimeoutMS    *int        `json:"timeout_ms"`
	EscapeMarkup *bool       `json:"escape_markup"`
	Command      *string     `json:"command"`
	Sound        *jsoncSound `json:"sound"`
}

type jsoncSound struct {
	Enable *bool   `json:"enable"`
	File   *string `json:"file"`
}

func parseJSONC(content string, base Config) (Config, []Warning, error) {
	normalized, err := normalizeJSONC(content)
	if err != nil {
		return Config{}, nil, err
	}

	decoder := json.NewDecoder(strings.NewReader(normalized))
	decoder.DisallowUnknownFields()

	var payload jsoncConfig
	if err := decoder.Decode(&payload); err != nil {
		return Config{}, nil, wrapJSONDecodeError(normalized, err)
	}
	if err := ensureSingleJSONValue(decoder); err != nil {
		return Config{}, nil, wrapJSONDecodeError(normalized, err)
	}

	cfg := base
	if err := payload.applyTo(&cfg); err != nil {
		return Config{}, nil, err
	}

	warnings, err := Validate(cfg)
	if err != nil {
		return Config{}, nil, err
	}
	return cfg, warnings, nil
}

func (payload jsoncConfig) applyTo(cfg *Config) error {
	if payload.Pipe != nil && payload.Pipe.Path != nil {
		cfg.Pipe.Path = strings.TrimSpace(*payload.Pipe.Path)
	}

	if payload.Window != nil && payload.Window.Backend != nil {
		cfg.Window.Backend = strings.TrimSpace(*payload.Window.Backend)
	}

	if payload.Notify != nil {
		if payload.Notify.Backend != nil {
			cfg.Notify.Backend = strings.TrimSpace(*payload.Notify.Backend)
		}
		if payload.Notify.AppName != nil {
			cfg.Notify.AppName = strings.TrimSpace(*payload.Notify.AppName)
		}
		if payload.Notify.TimeoutMS != nil {
			cfg.Notify.TimeoutMS = *payload.Notify.TimeoutMS
		}
		if payload.Notify.EscapeMarkup != nil {
			cfg.Notify.EscapeMarkup = *payload.Notify.EscapeMarkup
		}
		if payload.Notify.Command != nil {
			raw := *payload.Notify.Command
			argv, err := parseArgv(raw)
			if err != nil {
				return fmt.Errorf("invalid notify.command: %w", err)
			}
			cfg.Notify.Command = CommandConfig{Raw: raw, Argv: argv}
		}
		if payload.Notify.Sound != nil {
			if payload.Notify.Sound.Enable != nil {
				cfg.Notify.Sound.Enable = *payload.Notify.Sound.Enable
			}
			if payload.Notify.Sound.File != nil {
				cfg.Notify.Sound.File = strings.TrimSpace(*payload.Notify.Sound.File)
			}
		}
	}

	return nil
}
