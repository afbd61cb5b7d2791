// Package notify delivers desktop notifications and completion chimes.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/eugene-babichenko/done/internal/config"
	"github.com/eugene-babichenko/done/internal/protocol"
)

// Notifier delivers a single notification to the user.
type Notifier interface {
	Show(ctx context.Context, req protocol.NotificationRequest) error
}

// LocalNotifier routes notifications through the configured backend and
// plays the completion chime when a request asks for sound.
type LocalNotifier struct {
	cfg    config.NotifyConfig
	logger *slog.Logger

	soundMu sync.Mutex
}

// New creates a notifier from config. The backend string is validated up
// front so misconfiguration surfaces at startup rather than on first use.
func New(cfg config.NotifyConfig, logger *slog.Logger) (*LocalNotifier, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "desktop", "hypr", "command":
	default:
		return nil, fmt.Errorf("unknown notify backend %q", cfg.Backend)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LocalNotifier{cfg: cfg, logger: logger}, nil
}

// Show dispatches the notification through the configured backend. The
// chime is emitted asynchronously so audio playback never delays the
// caller's reply.
func (n *LocalNotifier) Show(ctx context.Context, req protocol.NotificationRequest) error {
	if req.Sound && n.cfg.Sound.Enable {
		n.playChime()
	}

	runCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	switch strings.ToLower(strings.TrimSpace(n.cfg.Backend)) {
	case "hypr":
		return n.showHypr(runCtx, req)
	case "command":
		return n.showCommand(runCtx, req)
	default:
		return n.showDesktop(runCtx, req)
	}
}

// showDesktop sends a freedesktop notification over DBus.
func (n *LocalNotifier) showDesktop(ctx context.Context, req protocol.NotificationRequest) error {
	appName := strings.TrimSpace(n.cfg.AppName)
	if appName == "" {
		appName = "done"
	}

	summary, body := req.Title, req.Message
	if n.cfg.EscapeMarkup {
		summary = escapeMarkup(summary)
		body = escapeMarkup(body)
	}

	_, err := desktopNotify(ctx, appName, summary, body, n.cfg.TimeoutMS)
	return err
}

// showHypr paints the notification through the Hyprland notify dispatcher,
// which renders a single line of text.
func (n *LocalNotifier) showHypr(ctx context.Context, req protocol.NotificationRequest) error {
	text := strings.TrimSpace(req.Title)
	if body := strings.TrimSpace(req.Message); body != "" {
		if text == "" {
			text = body
		} else {
			text = text + ": " + body
		}
	}

	args := []string{
		"--quiet",
		"dispatch",
		"notify",
		"1",
		strconv.Itoa(n.cfg.TimeoutMS),
		"rgb(89b4fa)",
		text,
	}
	out, err := exec.CommandContext(ctx, "hyprctl", args...).CombinedOutput()
	if err != nil {
		trimmed := strings.TrimSpace(string(out))
		if trimmed == "" {
			return fmt.Errorf("hyprctl notify failed: %w", err)
		}
		return fmt.Errorf("hyprctl notify failed: %w (%s)", err, trimmed)
	}
	return nil
}

// showCommand runs the user-configured program with the title and message
// appended as the final two arguments.
func (n *LocalNotifier) showCommand(ctx context.Context, req protocol.NotificationRequest) error {
	argv := n.cfg.Command.Argv
	if len(argv) == 0 {
		return fmt.Errorf("notify.command is not configured")
	}

	args := append(append([]string{}, argv[1:]...), req.Title, req.Message)
	out, err := exec.CommandContext(ctx, argv[0], args...).CombinedOutput()
	if err != nil {
		trimmed := strings.TrimSpace(string(out))
		if trimmed == "" {
			return fmt.Errorf("notify command %s failed: %w", argv[0], err)
		}
		return fmt.Errorf("notify command %s failed: %w (%s)", argv[0], err, trimmed)
	}
	return nil
}

// playChime serializes chime playback and emits audio asynchronously.
func (n *LocalNotifier) playChime() {
	go func() {
		n.soundMu.Lock()
		defer n.soundMu.Unlock()
		if err := playChime(n.cfg.Sound); err != nil {
			n.logger.Debug("notification chime failed", "error", err.Error())
		}
	}()
}

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// escapeMarkup neutralizes markup-significant characters so caller-supplied
// text cannot inject tags into the notification server's renderer.
func escapeMarkup(text string) string {
	return markupEscaper.Replace(text)
}
