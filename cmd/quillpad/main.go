// Package main is the entry point for the Quillpad editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/quillpad/internal/clipboard"
	"github.com/dshills/quillpad/internal/config"
	"github.com/dshills/quillpad/internal/engine"
	"github.com/dshills/quillpad/internal/host"
	"github.com/dshills/quillpad/internal/logging"
	"github.com/dshills/quillpad/internal/watcher"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the parsed command line.
type options struct {
	configPath string
	logLevel   string
	tabWidth   int
	file       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logFile, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
		return 1
	}
	defer logFile.Close()

	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel(),
		Output: logFile,
		Prefix: "quillpad",
	})
	logging.SetDefault(logger)
	logger.Info("starting quillpad %s (config %s)", version, cfg.Path())

	session, err := openSession(cfg, opts.file, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	term, err := host.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer term.Shutdown()

	hostOpts := []host.Option{
		host.WithRegister(clipboard.New(cfg.Clipboard.System, logger)),
		host.WithScrollMargin(cfg.Editor.ScrollMargin),
		host.WithLogger(logger),
	}
	if cfg.Watch.Enabled && opts.file != "" {
		w, err := watcher.New(opts.file, watcher.WithLogger(logger))
		if err != nil {
			logger.Warn("file watching disabled: %v", err)
		} else {
			defer w.Close()
			hostOpts = append(hostOpts, host.WithWatcher(w))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	h := host.New(term, session, opts.file, hostOpts...)
	if err := h.Run(ctx); err != nil {
		logger.Error("run: %v", err)
		return 1
	}

	logger.Info("exiting")
	return 0
}

// loadConfig applies command line overrides on top of the loaded settings.
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.tabWidth > 0 {
		cfg.Editor.TabWidth = opts.tabWidth
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openSession loads path, or starts an empty session when the file does
// not exist yet. It is created on the first save.
func openSession(cfg *config.Config, path string, logger *logging.Logger) (*engine.Session, error) {
	enc, err := cfg.Encoder()
	if err != nil {
		return nil, err
	}
	sessionOpts := []engine.Option{
		engine.WithTabWidth(cfg.Editor.TabWidth),
		engine.WithEncoder(enc),
		engine.WithLogger(logger),
	}

	if path == "" {
		return engine.New(sessionOpts...), nil
	}
	s, err := engine.Open(path, sessionOpts...)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("new file %s", path)
		return engine.New(sessionOpts...), nil
	}
	return s, err
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.IntVar(&opts.tabWidth, "tab-width", 0, "Columns per tab (1-16)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Quillpad - a small terminal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: quillpad [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  Shift+arrows        select\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+C / X / V      copy / cut / paste\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+D              duplicate line\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+Shift+Up/Down  move lines (Alt+Up/Down)\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+S / Ctrl+Q     save / quit\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Quillpad %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch flag.NArg() {
	case 0:
	case 1:
		opts.file = flag.Arg(0)
	default:
		fmt.Fprintf(os.Stderr, "Error: quillpad edits one file at a time\n")
		os.Exit(1)
	}

	return opts
}
