// Package doctor runs runtime readiness diagnostics for config, pipe, and backends.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/jfreymuth/pulse"

	"github.com/eugene-babichenko/done/internal/config"
	"github.com/eugene-babichenko/done/internal/notify"
	"github.com/eugene-babichenko/done/internal/pipe"
	"github.com/eugene-babichenko/done/internal/window"
)

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Run executes environment/config/runtime checks for a loaded config and
// the resolved command pipe path.
func Run(cfg config.Loaded, pipePath string) Report {
	checks := []Check{configCheck(cfg), checkPipe(pipePath)}
	checks = append(checks, checkWindow(cfg.Config.Window)...)
	checks = append(checks, checkNotify(cfg.Config.Notify)...)
	checks = append(checks, checkChime(cfg.Config.Notify.Sound)...)
	return Report{Checks: checks}
}

func configCheck(cfg config.Loaded) Check {
	if !cfg.Exists {
		return Check{Name: "config", Pass: true, Message: fmt.Sprintf("%q not found; using defaults", cfg.Path)}
	}
	return Check{Name: "config", Pass: true, Message: fmt.Sprintf("loaded %q", cfg.Path)}
}

// checkPipe validates that the command pipe path resolves to a FIFO.
func checkPipe(path string) Check {
	if strings.TrimSpace(path) == "" {
		return Check{Name: "pipe", Pass: false, Message: "no pipe path; set pipe.path or XDG_RUNTIME_DIR"}
	}
	if err := pipe.Verify(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Check{Name: "pipe", Pass: false, Message: fmt.Sprintf("%s is missing; doned serve --create will create it", path)}
		}
		return Check{Name: "pipe", Pass: false, Message: err.Error()}
	}
	return Check{Name: "pipe", Pass: true, Message: fmt.Sprintf("fifo at %s", path)}
}

// checkWindow validates the window backend environment and runs a live query.
func checkWindow(cfg config.WindowConfig) []Check {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "hypr":
		checks := []Check{
			checkEnv("HYPRLAND_INSTANCE_SIGNATURE", func(v string) bool {
				return strings.TrimSpace(v) != ""
			}, "Hyprland session detected", "HYPRLAND_INSTANCE_SIGNATURE is empty"),
			checkBinary("hyprctl", "window queries available"),
		}
		return append(checks, checkWindowQuery(cfg))
	case "x11":
		checks := []Check{
			checkEnv("DISPLAY", func(v string) bool {
				return strings.TrimSpace(v) != ""
			}, "X11 display detected", "DISPLAY is empty"),
			checkBinary("xdotool", "window queries available"),
		}
		return append(checks, checkWindowQuery(cfg))
	default:
		return []Check{{Name: "window.backend", Pass: false, Message: fmt.Sprintf("unknown backend %q", cfg.Backend)}}
	}
}

// checkWindowQuery runs a live active-window query to surface backend issues.
func checkWindowQuery(cfg config.WindowConfig) Check {
	querier, err := window.New(cfg)
	if err != nil {
		return Check{Name: "window.query", Pass: false, Message: err.Error()}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	handle, err := querier.Active(ctx)
	if err != nil {
		return Check{Name: "window.query", Pass: false, Message: err.Error()}
	}
	return Check{Name: "window.query", Pass: true, Message: fmt.Sprintf("active window handle %d", handle)}
}

// checkNotify validates that the notify backend has its tooling available.
func checkNotify(cfg config.NotifyConfig) []Check {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "desktop":
		return []Check{checkBinary("busctl", "desktop notifications available")}
	case "hypr":
		return []Check{checkBinary("hyprctl", "hyprland notifications available")}
	case "command":
		return []Check{checkCommand(cfg.Command, "notify.command")}
	default:
		return []Check{{Name: "notify.backend", Pass: false, Message: fmt.Sprintf("unknown backend %q", cfg.Backend)}}
	}
}

// checkChime validates chime playback prerequisites when sound is enabled.
func checkChime(cfg config.SoundConfig) []Check {
	if !cfg.Enable {
		return nil
	}
	if path := notify.ChimeFile(cfg); path != "" {
		checks := []Check{checkChimeFile(path)}
		return append(checks, checkBinary("pw-play", "chime file playback available"))
	}
	return []Check{checkPulse()}
}

func checkChimeFile(path string) Check {
	if _, err := os.Stat(path); err != nil {
		return Check{Name: "sound.file", Pass: false, Message: fmt.Sprintf("cannot read %s: %v", path, err)}
	}
	return Check{Name: "sound.file", Pass: true, Message: fmt.Sprintf("chime file %s", path)}
}

// checkPulse probes the pulse server used for synthesized chime playback.
func checkPulse() Check {
	client, err := pulse.NewClient(pulse.ClientApplicationName("done"))
	if err != nil {
		return Check{Name: "sound.pulse", Pass: false, Message: fmt.Sprintf("connect pulse server: %v", err)}
	}
	defer client.Close()
	return Check{Name: "sound.pulse", Pass: true, Message: "pulse server reachable"}
}

// checkEnv validates an environment variable through a caller-supplied predicate.
func checkEnv(name string, predicate func(string) bool, okMsg, failMsg string) Check {
	value := os.Getenv(name)
	if predicate(value) {
		return Check{Name: name, Pass: true, Message: okMsg}
	}
	return Check{Name: name, Pass: false, Message: failMsg}
}

// checkCommand validates that a configured command line has a runnable binary.
func checkCommand(cmd config.CommandConfig, name string) Check {
	if len(cmd.Argv) == 0 {
		return Check{Name: name, Pass: false, Message: "command is empty"}
	}
	return checkBinary(cmd.Argv[0], fmt.Sprintf("%s %q is available", name, cmd.Raw))
}

// checkBinary validates that a binary exists in PATH.
func checkBinary(bin string, okMsg string) Check {
	path, err := exec.LookPath(bin)
	if err != nil {
		return Check{Name: bin, Pass: false, Message: fmt.Sprintf("binary not found in PATH: %s", bin)}
	}
	return Check{Name: bin, Pass: true, Message: fmt.Sprintf("found at %s (%s)", path, okMsg)}
}
