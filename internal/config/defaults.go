package config

// Default returns the canonical runtime configuration used when no file is present.
func Default() Config {
	return Config{
		Pipe: PipeConfig{},
		Window: WindowConfig{
			Backend: "hypr",
		},
		Notify: NotifyConfig{
			Backend:      "desktop",
			AppName:      "done",
			TimeoutMS:    8000,
			EscapeMarkup: true,
			Sound:        SoundConfig{Enable: true},
		},
	}
}
