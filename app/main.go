// Package main is an entrypoint for application
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/Semior001/newsdesk/app/cmd"
	"github.com/Semior001/newsdesk/pkg/logx"
	"github.com/jessevdk/go-flags"
	"golang.org/x/exp/slog"
)

var opts struct {
	TUI      cmd.TUI `command:"tui" description:"run terminal news reader"`
	Bot      cmd.Bot `command:"bot" description:"run telegram news reader"`
	JSONLogs bool    `long:"json-logs" env:"JSON_LOGS" description:"turn on json logs"`
	Debug    bool    `long:"dbg" env:"DEBUG" description:"turn on debug mode"`
	LogFile  string  `long:"log-file" env:"LOG_FILE" description:"file to write logs to, tui writes to a temp file by default"`
}

var version = "unknown"

func getVersion() string {
	v, ok := debug.ReadBuildInfo()
	if !ok || v.Main.Version == "(devel)" {
		return version
	}
	return v.Main.Version
}

func main() {
	fmt.Printf("newsdesk, version: %s\n", getVersion())

	p := flags.NewParser(&opts, flags.Default)
	p.CommandHandler = func(command flags.Commander, args []string) error {
		closeLog, err := setupLog(command)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to setup logs: %v\n", err)
			os.Exit(1)
		}
		defer closeLog()

		if err = command.Execute(args); err != nil {
			slog.Error("failed to execute command", slog.Any("err", err))
			closeLog()
			os.Exit(1)
		}

		return nil
	}

	// after failure command does not return non-zero code
	if _, err := p.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		} else {
			slog.Error("failed to parse flags", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

// setupLog sets the default logger. The terminal reader owns the screen,
// so its logs go to a file.
func setupLog(command flags.Commander) (closeFn func(), err error) {
	handlerOpts := &slog.HandlerOptions{Level: slog.LevelInfo}

	if opts.Debug {
		handlerOpts.Level = slog.LevelDebug
		handlerOpts.AddSource = true
	}

	var w io.Writer = os.Stderr
	closeFn = func() {}

	path := opts.LogFile
	if _, isTUI := command.(*cmd.TUI); isTUI && path == "" {
		path = filepath.Join(os.TempDir(), "newsdesk.log")
	}

	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", path, err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}

	var h slog.Handler = slog.NewTextHandler(w, handlerOpts)
	if opts.JSONLogs {
		h = slog.NewJSONHandler(w, handlerOpts)
	}

	slog.SetDefault(slog.New(&logx.Chain{
		Middleware: []logx.Middleware{logx.RequestID},
		Handler:    h,
	}))

	return closeFn, nil
}
