// Dominion is a progression-based narrative game driven by an event-rules
// engine: weighted random events, forced chains, and a clamped stat set.
// Usage: dominion [--version] [--plain] [--new] [--seed <n>] [--save <file>] <data_directory>
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/nathoo/dominion/cli"
	"github.com/nathoo/dominion/engine"
	"github.com/nathoo/dominion/engine/save"
	"github.com/nathoo/dominion/engine/state"
	"github.com/nathoo/dominion/loader"
	"github.com/nathoo/dominion/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// config holds the environment-variable settings. Flags override these.
type config struct {
	DataDir  string `env:"DOMINION_DATA"`
	SavePath string `env:"DOMINION_SAVE"`
	Seed     int64  `env:"DOMINION_SEED"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading environment: %v\n", err)
		os.Exit(1)
	}

	plain := false
	fresh := false

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("dominion %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--new":
			fresh = true
		case "--seed":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--seed requires a number\n")
				os.Exit(1)
			}
			i++
			seed, err := strconv.ParseInt(args[i], 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "--seed requires a number, got %q\n", args[i])
				os.Exit(1)
			}
			cfg.Seed = seed
		case "--save":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--save requires a file path\n")
				os.Exit(1)
			}
			i++
			cfg.SavePath = args[i]
		default:
			cfg.DataDir = args[i]
		}
	}

	if cfg.DataDir == "" {
		fmt.Fprintf(os.Stderr, "Usage: dominion [--version] [--plain] [--new] [--seed <n>] [--save <file>] <data_directory>\n")
		os.Exit(1)
	}
	if cfg.SavePath == "" {
		cfg.SavePath = cli.DefaultSavePath()
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	var snap *save.Snapshot
	if !fresh {
		snap = cli.LoadSession(cfg.SavePath)
	}

	// The catalog binds to the saved dominion level, or the first level for
	// a fresh game.
	level := state.DefaultDominionLevel
	if snap != nil {
		level = snap.StatSet.DominionLevel
	}

	cat, err := loader.Load(cfg.DataDir, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game content: %v\n", err)
		os.Exit(1)
	}

	eng := engine.New(cat, cfg.Seed)
	st := state.NewStats()
	if snap != nil {
		save.Apply(snap, st, eng)
	}

	// Use the plain CLI if --plain is set or stdout is not a terminal.
	if plain || !isTerminal() {
		c := cli.New(eng, st, cfg.DataDir)
		c.SavePath = cfg.SavePath
		c.Run()
		return
	}

	if err := tui.Run(eng, st, cfg.DataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
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
