// Ash & Aether is a deterministic, data-driven action-RPG simulation core
// played from a terminal.
// Usage: ashaether [--version] [--plain] [--validate] [--script <file>] [--slot <n>] [--trace] [content_dir]
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/nathoo/ashaether/cli"
	"github.com/nathoo/ashaether/config"
	"github.com/nathoo/ashaether/content"
	"github.com/nathoo/ashaether/engine"
	"github.com/nathoo/ashaether/engine/save"
	"github.com/nathoo/ashaether/loader"
	"github.com/nathoo/ashaether/logging"
	"github.com/nathoo/ashaether/storage"
	"github.com/nathoo/ashaether/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: ashaether [--version] [--plain] [--validate] [--script <file>] [--slot <n>] [--trace] [content_dir]"

// plainWidth is the wrap column of the line-oriented console.
const plainWidth = 80

type flags struct {
	plain      bool
	trace      bool
	validate   bool
	scriptFile string
	slot       int
	loadSlot   bool
	contentDir string
}

func main() {
	f, ok := parseFlags(os.Args[1:])
	if !ok {
		return
	}

	cfg, err := config.Load(config.WithContentDir(f.contentDir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, f, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (flags, bool) {
	var f flags
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("ashaether %s (commit %s, built %s)\n", version, commit, date)
			return f, false
		case "--plain":
			f.plain = true
		case "--trace":
			f.trace = true
		case "--validate":
			f.validate = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "--script requires a file path")
				os.Exit(1)
			}
			i++
			f.scriptFile = args[i]
		case "--slot":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "--slot requires a slot number")
				os.Exit(1)
			}
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil || n < 0 || n >= save.SlotCount {
				fmt.Fprintf(os.Stderr, "--slot must be a number from 0 to %d\n", save.SlotCount-1)
				os.Exit(1)
			}
			f.slot, f.loadSlot = n, true
		case "-h", "--help":
			fmt.Println(usage)
			return f, false
		default:
			if f.contentDir == "" {
				f.contentDir = args[i]
			}
		}
	}
	return f, true
}

func run(ctx context.Context, f flags, cfg config.Config) error {
	interactive := f.scriptFile == "" && !f.plain && isTerminal()

	// The TUI owns the screen, so its records only go to a log file.
	var logOut io.Writer = os.Stderr
	if interactive {
		logOut = nil
	}
	logger, closer := logging.Setup(cfg.Logging, logOut)
	defer closer.Close()

	parsed, err := loadContent(cfg.ContentDir)
	if err != nil {
		return err
	}
	if f.validate {
		fmt.Printf("Content OK: %d items, %d enemies, %d quests, %d dialogues, %d regions\n",
			len(parsed.Items), len(parsed.Enemies), len(parsed.Quests), len(parsed.Dialogues), len(parsed.Regions))
		return nil
	}

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}

	repo := save.NewRepository(store, logger)
	g := cli.NewGame(parsed, repo, engine.Options{Logger: logger, Seed: cfg.Seed})
	g.Trace = f.trace
	if f.loadSlot {
		found, err := g.LoadSlot(ctx, f.slot)
		if err != nil {
			logging.WithError(logger, err).Error("load slot failed", "slot", f.slot)
			return fmt.Errorf("loading slot %d: %w", f.slot, err)
		}
		if !found {
			logger.Warn("save slot is empty, starting a new game", "slot", f.slot)
			g.Slot = f.slot
		}
	}

	if interactive {
		return tui.Run(ctx, g)
	}

	c := cli.New(g)
	c.Width = plainWidth
	if f.scriptFile != "" {
		script, err := os.Open(f.scriptFile)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer script.Close()
		c.In = script
		c.EchoInput = true
	}
	c.Run(ctx)
	return nil
}

// loadContent compiles dir, or returns the embedded default bundle when dir
// is empty.
func loadContent(dir string) (*content.Parsed, error) {
	if dir == "" {
		return content.LoadDefault()
	}
	parsed, err := loader.Compile(dir)
	if err != nil {
		return nil, fmt.Errorf("loading content from %s: %w", dir, err)
	}
	return parsed, nil
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (save.Store, error) {
	switch cfg.SaveBackend {
	case config.BackendMemory:
		return storage.NewMemory(), nil
	case config.BackendRedis:
		return storage.NewRedis(ctx, cfg.RedisURL, logger)
	case config.BackendSQLite:
		return storage.OpenSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("%q: %w", cfg.SaveBackend, config.ErrUnknownBackend)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
