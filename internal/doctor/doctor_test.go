package doctor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eugene-babichenko/done/internal/config"
	"github.com/eugene-babichenko/done/internal/pipe"
)

func TestReportOKAndString(t *testing.T) {
	report := Report{Checks: []Check{
		{Name: "one", Pass: true, Message: "good"},
		{Name: "two", Pass: false, Message: "bad"},
	}}

	require.False(t, report.OK())
	text := report.String()
	require.Contains(t, text, "[OK] one: good")
	require.Contains(t, text, "[FAIL] two: bad")
}

func TestReportOKAllPassing(t *testing.T) {
	report := Report{Checks: []Check{{Name: "one", Pass: true}, {Name: "two", Pass: true}}}
	require.True(t, report.OK())
}

func TestCheckEnv(t *testing.T) {
	t.Setenv("TEST_DOCTOR_ENV", "wayland")

	check := checkEnv(
		"TEST_DOCTOR_ENV",
		func(v string) bool { return strings.EqualFold(v, "wayland") },
		"looks good",
		"unexpected",
	)

	require.True(t, check.Pass)
	require.Equal(t, "looks good", check.Message)
}

func TestCheckCommandEmpty(t *testing.T) {
	check := checkCommand(config.CommandConfig{}, "notify.command")
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "command is empty")
}

func TestCheckBinaryFound(t *testing.T) {
	check := checkBinary("sh", "shell available")
	require.True(t, check.Pass)
	require.Contains(t, check.Message, "shell available")
}

func TestCheckBinaryMissing(t *testing.T) {
	check := checkBinary("definitely-not-a-real-binary", "unused")
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "binary not found")
}

func TestCheckPipeEmptyPath(t *testing.T) {
	check := checkPipe("  ")
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "no pipe path")
}

func TestCheckPipeMissingFifo(t *testing.T) {
	check := checkPipe(filepath.Join(t.TempDir(), "done.fifo"))
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "doned serve --create")
}

func TestCheckPipeRejectsRegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "done.fifo")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	check := checkPipe(path)
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "not a named pipe")
}

func TestCheckPipePasses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "done.fifo")
	require.NoError(t, pipe.Create(path))

	check := checkPipe(path)
	require.True(t, check.Pass)
	require.Contains(t, check.Message, "fifo at")
}

func TestCheckWindowUnknownBackend(t *testing.T) {
	checks := checkWindow(config.WindowConfig{Backend: "cosmic"})
	require.Len(t, checks, 1)
	require.False(t, checks[0].Pass)
	require.Contains(t, checks[0].Message, "unknown backend")
}

func TestCheckWindowQueryFailure(t *testing.T) {
	dir := t.TempDir()
	stub := filepath.Join(dir, "hyprctl")
	require.NoError(t, os.WriteFile(stub, []byte("#!/usr/bin/env bash\nexit 1\n"), 0o755))
	t.Setenv("PATH", dir+":"+os.Getenv("PATH"))

	check := checkWindowQuery(config.WindowConfig{Backend: "hypr"})
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "hyprctl")
}

func TestCheckNotifyUnknownBackend(t *testing.T) {
	checks := checkNotify(config.NotifyConfig{Backend: "growl"})
	require.Len(t, checks, 1)
	require.False(t, checks[0].Pass)
	require.Contains(t, checks[0].Message, "unknown backend")
}

func TestCheckNotifyCommandBackend(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "my-notifier")
	require.NoError(t, os.WriteFile(script, []byte("#!/usr/bin/env sh\nexit 0\n"), 0o755))
	t.Setenv("PATH", dir+":"+os.Getenv("PATH"))

	cfg := config.NotifyConfig{Backend: "command", Command: config.CommandConfig{
		Raw:  "my-notifier -u low",
		Argv: []string{"my-notifier", "-u", "low"},
	}}
	checks := checkNotify(cfg)
	require.Len(t, checks, 1)
	require.True(t, checks[0].Pass)
	require.Contains(t, checks[0].Message, `notify.command "my-notifier -u low" is available`)
}

func TestCheckChimeSkippedWhenSoundDisabled(t *testing.T) {
	require.Empty(t, checkChime(config.SoundConfig{Enable: false, File: "/missing.wav"}))
}

func TestCheckChimeFileMissing(t *testing.T) {
	checks := checkChime(config.SoundConfig{Enable: true, File: filepath.Join(t.TempDir(), "missing.wav")})
	require.NotEmpty(t, checks)
	require.Equal(t, "sound.file", checks[0].Name)
	require.False(t, checks[0].Pass)
}

func TestRunAllChecksPassWithStubs(t *testing.T) {
	binDir := t.TempDir()
	hyprctl := filepath.Join(binDir, "hyprctl")
	script := `#!/usr/bin/env bash
set -euo pipefail
if [[ "${1:-}" == "-j" && "${2:-}" == "activewindow" ]]; then
  echo '{"address":"0x5631aabbcc","class":"kitty"}'
fi
`
	require.NoError(t, os.WriteFile(hyprctl, []byte(script), 0o755))
	busctl := filepath.Join(binDir, "busctl")
	require.NoError(t, os.WriteFile(busctl, []byte("#!/usr/bin/env sh\nexit 0\n"), 0o755))
	t.Setenv("PATH", binDir+":"+os.Getenv("PATH"))
	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "abc123")

	fifoPath := filepath.Join(t.TempDir(), "done.fifo")
	require.NoError(t, pipe.Create(fifoPath))

	cfg := config.Default()
	cfg.Notify.Sound.Enable = false

	report := Run(config.Loaded{Path: "/tmp/config.jsonc", Config: cfg, Exists: true}, fifoPath)
	require.True(t, report.OK(), report.String())
}

func TestRunReportsBrokenBackends(t *testing.T) {
	cfg := config.Default()
	cfg.Window.Backend = "cosmic"
	cfg.Notify.Backend = "growl"
	cfg.Notify.Sound.Enable = false

	report := Run(config.Loaded{Path: "/tmp/config.jsonc", Config: cfg}, "")
	require.False(t, report.OK())

	text := report.String()
	require.Contains(t, text, "[FAIL] window.backend")
	require.Contains(t, text, "[FAIL] notify.backend")
	require.Contains(t, text, "[FAIL] pipe")
}
