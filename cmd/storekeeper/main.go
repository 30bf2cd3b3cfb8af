// storekeeper is a terminal Sokoban: push every box onto a goal.
//
// Usage:
//
//	storekeeper list                 - List available level packs
//	storekeeper play [pack|file]     - Play a pack
//	storekeeper menu                 - Pick packs and levels interactively
//	storekeeper serve                - Start SSH server for remote play
//	storekeeper scores [pack]        - Show best results
//	storekeeper validate <file>...   - Check pack files
//	storekeeper convert <in> <out>   - Convert a pack between formats
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: from config, 60)
//	--db <path>         - Set database path (default: ~/.storekeeper/results.db)
//	--config <path>     - Use a custom config file
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/storekeeper/internal/config"
	"github.com/vovakirdan/storekeeper/internal/core"
	"github.com/vovakirdan/storekeeper/internal/games/storekeeper"
	"github.com/vovakirdan/storekeeper/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "storekeeper",
	Short: "Storekeeper - Sokoban in your terminal",
	Long: `Storekeeper is a terminal Sokoban. Walk the warehouse, push every box
onto a goal, and try to do it in as few moves as possible.

Available commands:
  list      - Show all level packs
  play      - Play a pack directly
  menu      - Interactive pack and level picker
  serve     - Start SSH server for remote play
  scores    - View best results
  validate  - Check pack files for errors
  convert   - Convert a pack between .sok, .json and .yaml

Examples:
  storekeeper list
  storekeeper play tutorial
  storekeeper play ./my-pack.sok --watch
  storekeeper menu
  storekeeper serve --ssh :2222`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		storekeeper.SetConfigPath(flagConfig)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = display.tick_rate from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.storekeeper/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(convertCmd)
}

// newLogger builds the command logger. Full-screen commands log only to
// --log-file since stderr shares the terminal with the game.
func newLogger(fullScreen bool) (*log.Logger, func()) {
	var w io.Writer = os.Stderr
	closeFn := func() {}

	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(config.ExpandHome(flagLogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
			w = io.Discard
		} else {
			w = f
			closeFn = func() { f.Close() }
		}
	case fullScreen:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "storekeeper",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)

	return logger, closeFn
}

// loadConfig loads the config named by --config, or the default search path.
func loadConfig() config.StorekeeperConfig {
	cfg, err := config.LoadStorekeeper(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// runtimeConfig sizes the game to the terminal and picks the tick rate.
func runtimeConfig(cfg config.StorekeeperConfig) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	tickRate := cfg.Display.TickRate
	if flagFPS > 0 {
		tickRate = flagFPS
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: tickRate,
	}
}

// openStore opens the results database. Games still run without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
