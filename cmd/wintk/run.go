package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/1broseidon/wintk/internal/config"
	"github.com/1broseidon/wintk/internal/display"
	"github.com/1broseidon/wintk/internal/ipc"
	"github.com/1broseidon/wintk/internal/resource"
	"github.com/1broseidon/wintk/internal/runtimepath"
	"github.com/1broseidon/wintk/internal/tui"
	"github.com/1broseidon/wintk/internal/ui"
)

const terminalPreset = "terminal"

func runRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/wintk/config.yaml)")
	preset := fs.String("preset", terminalPreset, "Builtin preset to apply over the config file")
	logPath := fs.String("log", "", "Log file (default: wintk.log in the runtime directory)")
	socket := fs.String("socket", "", "Control socket (default: wintk.sock in the runtime directory)")
	noWatch := fs.Bool("no-watch", false, "Do not reload the config file when it changes")
	noIPC := fs.Bool("no-ipc", false, "Do not listen on the control socket")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "wintk run requires an interactive terminal")
		return 1
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config
	if err := usePreset(cfg, *preset); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// The terminal belongs to the UI, so logs go to a file regardless.
	logFilePath, err := logFile(*logPath, runtimepath.LogPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger, closeLog, err := openLog(logFilePath, cfg.SlogLevel())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watchPath := ""
	if !*noWatch {
		watchPath = *path
		if watchPath == "" {
			if watchPath, err = config.DefaultConfigPath(); err != nil {
				logger.Warn("config watch disabled", "error", err)
			}
		}
	}

	socketPath := ""
	if !*noIPC {
		socketPath = *socket
		if socketPath == "" {
			if socketPath, err = runtimepath.SocketPath(); err != nil {
				logger.Warn("control socket disabled", "error", err)
			}
		}
	}

	if err := runDesktop(ctx, cfg, desktopOptions{watchPath: watchPath, socketPath: socketPath, preset: *preset}, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// openLog returns a logger writing to path, or a discarding logger when path
// is empty.
// logFile returns path, or the default log file when path is empty.
func logFile(path string, fallback func() (string, error)) (string, error) {
	if path != "" {
		return path, nil
	}
	def, err := fallback()
	if err != nil {
		return "", fmt.Errorf("failed to resolve log file: %w", err)
	}
	return def, nil
}

func openLog(path string, level slog.Level) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { f.Close() }, nil
}

func terminalSize() (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

type desktopOptions struct {
	watchPath  string // reload the config from this file when it changes
	socketPath string // serve the control socket here
	preset     string // preset forced onto reloaded configs
}

// runDesktop runs the demo until it quits.
func runDesktop(ctx context.Context, cfg *config.Config, opts desktopOptions, logger *slog.Logger) error {
	w, h := terminalSize()
	canvas := tui.NewCanvas(w, h)

	res := resource.New(logger)
	loadResources(res, cfg, logger)
	res.SetDefaultFont(resource.CellFace{})

	mgr, err := ui.NewManager(canvas, res, cfg,
		ui.WithLogger(logger),
		ui.WithDisplay(display.NewStatic(display.Mode{Width: w, Height: h})),
		ui.WithScreenSize(w, h),
	)
	if err != nil {
		return fmt.Errorf("failed to start toolkit: %w", err)
	}
	defer mgr.Dispose()

	d, err := newDemo(mgr, logger)
	if err != nil {
		return err
	}

	if opts.watchPath != "" {
		go watchConfig(ctx, opts.watchPath, opts.preset, mgr, d.configType, logger)
	}
	if opts.socketPath != "" {
		srv := ipc.NewServer(opts.socketPath, desktopControl{mgr: mgr, typ: d.ipcType}, logger)
		if err := srv.Start(); err != nil {
			logger.Warn("control socket disabled", "error", err)
		} else {
			defer srv.Stop()
		}
	}

	hotkeys := tui.DefaultHotkeys(mgr, d.desk, logger)
	p := tui.New(mgr, canvas, d.handle, tui.WithHotkeys(hotkeys), tui.WithLogger(logger))
	if err := p.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// watchConfig posts every reloaded config as an event so it is applied on the
// dispatch goroutine.
func watchConfig(ctx context.Context, path, preset string, mgr *ui.Manager, typ ui.EventType, logger *slog.Logger) {
	w, err := config.NewWatcher(path, logger)
	if err != nil {
		logger.Warn("config watch disabled", "error", err)
		return
	}
	err = w.Run(ctx, func(res *config.LoadResult) {
		cfg := res.Config
		if err := usePreset(cfg, preset); err != nil {
			logger.Warn("reloaded config ignored", "error", err)
			return
		}
		mgr.Post(ui.Event{Type: typ, Data: cfg})
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("config watcher stopped", "error", err)
	}
}
