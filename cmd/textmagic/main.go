// Package main is the entry point for the Text Magic editor.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/textmagic/internal/app"
	"github.com/dshills/textmagic/internal/config"
	"github.com/dshills/textmagic/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "0.1.0"
	commit  = "unknown"
	date    = "unknown"
)

type flags struct {
	configPath  string
	logLevel    string
	backendName string
	path        string
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	cfg, err := config.Load(f.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.backendName != "" {
		cfg.UI.Backend = f.backendName
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, closeLog, err := app.OpenLogFile(cfg.LogFile(), app.ParseLogLevel(cfg.Log.Level))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer func() { _ = closeLog() }()
	logger.Info("starting textmagic %s (%s)", version, commit)

	application, err := app.New(app.Options{
		Path:    f.path,
		Config:  cfg,
		Version: version,
		Logger:  logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Rescue unsaved changes if anything below panics.
	defer application.Guard()

	term, err := newBackend(cfg.UI.Backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	// Ctrl+C is an editor key in raw mode; only outside signals stop the loop.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if path := application.RescuedPath(); path != "" {
			fmt.Fprintf(os.Stderr, "Unsaved changes were written to %s\n", path)
		} else if application.Dirty() {
			fmt.Fprintf(os.Stderr, "Unsaved changes could not be rescued\n")
		}
		return 1
	}
	return 0
}

func newBackend(name string) (backend.Backend, error) {
	switch name {
	case config.BackendANSI:
		if err := backend.CheckTerminal(os.Stdin); err != nil {
			return nil, err
		}
		return backend.NewANSI(os.Stdin, os.Stdout), nil
	default:
		return backend.NewTerminal()
	}
}

func parseFlags() flags {
	var f flags
	var showVersion bool
	var showHelp bool

	flag.StringVar(&f.configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&f.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&f.backendName, "backend", "", "Terminal backend (tcell, ansi)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Text Magic - a small terminal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: textmagic [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+S  save (asks for a name if the buffer has none)\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+C  quit (repeat to discard unsaved changes)\n")
		fmt.Fprintf(os.Stderr, "\nEnvironment variables prefixed with %s override the config file.\n", config.EnvPrefix)
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Text Magic %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch flag.NArg() {
	case 0:
	case 1:
		f.path = flag.Arg(0)
	default:
		fmt.Fprintf(os.Stderr, "Error: expected at most one file, got %d\n", flag.NArg())
		flag.Usage()
		os.Exit(2)
	}

	return f
}
