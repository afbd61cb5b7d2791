package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/eugene-babichenko/done/internal/capability"
	"github.com/eugene-babichenko/done/internal/cli"
	"github.com/eugene-babichenko/done/internal/config"
	"github.com/eugene-babichenko/done/internal/doctor"
	"github.com/eugene-babichenko/done/internal/logging"
	"github.com/eugene-babichenko/done/internal/notify"
	"github.com/eugene-babichenko/done/internal/pipe"
	"github.com/eugene-babichenko/done/internal/server"
	"github.com/eugene-babichenko/done/internal/version"
	"github.com/eugene-babichenko/done/internal/window"
)

type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	r := Runner{Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

func (r Runner) Execute(ctx context.Context, args []string) int {
	parsed, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText("doned"))
		return 2
	}

	if parsed.ShowHelp {
		fmt.Fprint(r.Stdout, cli.HelpText("doned"))
		return 0
	}

	if parsed.Command == cli.CommandVersion {
		fmt.Fprintln(r.Stdout, version.String())
		return 0
	}

	logRuntime, err := logging.New()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: setup logging: %v\n", err)
		return 1
	}
	defer func() { _ = logRuntime.Close() }()

	logger := r.Logger
	if logger == nil {
		logger = logRuntime.Logger
	}

	cfgLoaded, err := config.Load(parsed.ConfigPath)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("load config failed", "error", err.Error())
		return 1
	}
	for _, w := range cfgLoaded.Warnings {
		fmt.Fprintf(r.Stderr, "warning: %s\n", w.Message)
		logger.Warn("config warning", "message", w.Message)
	}

	// The pipe path may be unresolvable (no config value, no runtime dir);
	// doctor still runs and reports that, the other commands fail on it.
	pipePath, pipeErr := resolvePipePath(parsed.PipePath, cfgLoaded.Config)

	logger.Info("command start",
		"command", parsed.Command,
		"config", cfgLoaded.Path,
		"pipe", pipePath,
		"log", logRuntime.Path,
	)

	switch parsed.Command {
	case cli.CommandDoctor:
		report := doctor.Run(cfgLoaded, pipePath)
		fmt.Fprintln(r.Stdout, report.String())
		if report.OK() {
			return 0
		}
		return 1
	case cli.CommandServe:
		if pipeErr != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", pipeErr)
			return 1
		}
		return r.commandServe(ctx, cfgLoaded.Config, pipePath, parsed.CreatePipe, logger)
	case cli.CommandSend:
		if pipeErr != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", pipeErr)
			return 1
		}
		return r.commandSend(parsed.Payload, pipePath)
	default:
		fmt.Fprintf(r.Stderr, "error: unsupported command %q\n", parsed.Command)
		return 2
	}
}

// resolvePipePath picks the command pipe path: flag, then config, then the
// runtime-dir default.
func resolvePipePath(flagPath string, cfg config.Config) (string, error) {
	if path := strings.TrimSpace(flagPath); path != "" {
		return path, nil
	}
	if path := strings.TrimSpace(cfg.Pipe.Path); path != "" {
		return path, nil
	}
	return pipe.DefaultPath()
}

// commandServe runs the command loop until the context is cancelled or the
// pipe becomes unusable.
func (r Runner) commandServe(ctx context.Context, cfg config.Config, pipePath string, create bool, logger *slog.Logger) int {
	if create {
		if err := pipe.Create(pipePath); err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			logger.Error("create command pipe failed", "path", pipePath, "error", err.Error())
			return 1
		}
	}
	if err := pipe.Verify(pipePath); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("verify command pipe failed", "path", pipePath, "error", err.Error())
		return 1
	}

	querier, err := window.New(cfg.Window)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	notifier, err := notify.New(cfg.Notify, logger)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	registry := capability.NewRegistry(querier, notifier)
	loop := server.NewLoop(logger, pipe.NewReader(pipePath), registry, r.Stdout)
	if err := loop.Run(ctx); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("command loop failed", "error", err.Error())
		return 1
	}
	return 0
}

// commandSend writes one JSON payload into the pipe for a running server.
func (r Runner) commandSend(payload string, pipePath string) int {
	if strings.TrimSpace(payload) == "" {
		stdin := r.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(r.Stderr, "error: read payload from stdin: %v\n", err)
			return 1
		}
		payload = string(data)
	}
	if strings.TrimSpace(payload) == "" {
		fmt.Fprintln(r.Stderr, "error: send requires a JSON payload (argument or stdin)")
		return 2
	}

	if err := pipe.Send(pipePath, []byte(payload)); err != nil {
		if errors.Is(err, pipe.ErrNoReader) {
			fmt.Fprintf(r.Stderr, "error: no doned server is reading %s\n", pipePath)
			return 1
		}
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
