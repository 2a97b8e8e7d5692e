// Package main is the entry point for the glidekbd daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/glidekbd/internal/backend"
	"github.com/dshills/glidekbd/internal/config"
	"github.com/dshills/glidekbd/internal/dispatch"
	"github.com/dshills/glidekbd/internal/ipc"
	"github.com/dshills/glidekbd/internal/keyboard"
	"github.com/dshills/glidekbd/internal/layout"
	"github.com/dshills/glidekbd/internal/logging"
	"github.com/dshills/glidekbd/internal/osk"
	"github.com/dshills/glidekbd/internal/pointer"
	"github.com/dshills/glidekbd/internal/replay"
	"github.com/dshills/glidekbd/internal/tui"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	replayPath string
	dumpLayout bool
	logLevel   string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if opts.dumpLayout {
		if _, err := os.Stdout.Write(layout.DefaultBytes()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	configPath := opts.configPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, err := openLogger(cfg, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer logger.Close()
	logging.SetDefault(logger)

	lay, err := loadLayout(cfg)
	if err != nil {
		logger.Error("layout load failed", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Replay drives the engine headless; scripted touches land on the
	// log backend regardless of the configured one.
	if opts.replayPath != "" {
		cfg.Backend.Kind = "log"
	}

	devices, err := backend.Open(ctx, backend.Config{
		Kind:      cfg.Backend.Kind,
		UinputDev: cfg.Backend.UinputDev,
		Logger:    logger.WithComponent("backend").Logger,
	})
	if err != nil {
		logger.Error("backend open failed", "kind", cfg.Backend.Kind, "error", err)
		return 1
	}
	defer devices.Close()

	keys := keyboard.New(devices.Keyboard, lay)
	ptr := pointer.New(devices.Pointer, int32(cfg.Pointer.ScrollStep))
	dispCfg := dispatch.Config{
		Gesture:   cfg.Gesture.Recognizer(),
		BaseScale: cfg.Pointer.BaseScale,
		Logger:    logger.WithComponent("dispatch").Logger,
	}

	if opts.replayPath != "" {
		h := replay.New(keys, ptr, dispCfg)
		if err := h.RunFile(opts.replayPath); err != nil {
			logger.Error("replay failed", "script", opts.replayPath, "error", err)
			return 1
		}
		return 0
	}

	// The D-Bus service is created after the UI but observes it from
	// the start; Publish is a no-op until the service is up.
	var oskSvc *osk.Service

	ui, err := tui.New(tui.Config{
		Keys:      keys,
		Pointer:   ptr,
		Dispatch:  dispCfg,
		PxPerCell: cfg.TUI.PxPerCell,
		Logger:    logger.WithComponent("tui").Logger,
		OnVisible: func(show bool) {
			if oskSvc != nil {
				oskSvc.Publish(show)
			}
		},
	})
	if err != nil {
		logger.Error("ui setup failed", "error", err)
		return 1
	}

	// The control socket doubles as the single-instance guard: a
	// second daemon fails to bind it and exits here.
	srv := ipc.NewServer(ipc.Config{
		SocketPath: cfg.Control.SocketPath(),
		Logger:     logger.WithComponent("ipc").Logger,
	}, ui, keys)
	if err := srv.Start(); err != nil {
		logger.Error("control socket failed", "error", err)
		return 1
	}
	defer srv.Stop()

	if cfg.Control.DBus {
		oskSvc = osk.New(ui, logger.WithComponent("osk").Logger)
		if err := oskSvc.Start(); err != nil {
			// No session bus in a plain console session.
			logger.Warn("dbus service unavailable", "error", err)
			oskSvc = nil
		} else {
			defer oskSvc.Stop()
		}
	}

	logger.Info("glidekbd started", "version", version, "backend", cfg.Backend.Kind)
	if err := ui.Run(ctx); err != nil {
		logger.Error("ui stopped", "error", err)
		return 1
	}
	return 0
}

// openLogger builds the process logger from the config file with the
// command line level override applied.
func openLogger(cfg config.Config, opts options) (*logging.Logger, error) {
	logCfg, err := cfg.Log.Logging()
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		level, err := logging.ParseLevel(opts.logLevel)
		if err != nil {
			return nil, err
		}
		logCfg.Level = level
	}
	return logging.New(logCfg)
}

// loadLayout reads the configured layout file, or the embedded default
// when none is configured.
func loadLayout(cfg config.Config) (*layout.Layout, error) {
	if cfg.Layout.Path != "" {
		return layout.Load(cfg.Layout.Path)
	}
	return layout.Default()
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.replayPath, "replay", "", "Run a Lua gesture script against the log backend and exit")
	flag.BoolVar(&opts.dumpLayout, "dump-layout", false, "Write the embedded default layout to stdout and exit")
	flag.StringVar(&opts.logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "glidekbd - gesture-typing split keyboard\n\n")
		fmt.Fprintf(os.Stderr, "Usage: glidekbd [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  glidekbd                         Run with ~/.config/glidekbd/config.toml\n")
		fmt.Fprintf(os.Stderr, "  glidekbd -dump-layout > my.yml   Export the default layout for editing\n")
		fmt.Fprintf(os.Stderr, "  glidekbd -replay swipe.lua       Replay a scripted gesture\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("glidekbd %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return opts
}
