package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/storekeeper/internal/config"
	"github.com/vovakirdan/storekeeper/internal/games/storekeeper"
	"github.com/vovakirdan/storekeeper/internal/platform/tui"
	"github.com/vovakirdan/storekeeper/internal/sokoban/levels"
)

var (
	flagLevel int
	flagSpeed string
	flagWatch bool
)

var playCmd = &cobra.Command{
	Use:   "play [pack|file]",
	Short: "Play a level pack",
	Long: `Play a builtin pack, a pack from your pack directories, or any
.sok, .txt, .json or .yaml file. Without an argument the pack named by
packs.default in the config is played.

Controls:
  Arrows/WASD/HJKL  - Move
  U/Z/Backspace     - Undo
  R                 - Restart level
  [ / ]             - Previous / next level
  P                 - Pause
  Enter             - Continue after a solved level
  Esc/B             - Back
  Q/Ctrl+C          - Quit
  Ctrl+S            - Save a screenshot

Speed options:
  slow, normal, fast, instant

Examples:
  storekeeper play
  storekeeper play warehouse --level 3
  storekeeper play ./my-pack.sok --watch
  storekeeper play depot --speed fast`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Level to start on (0 = choose interactively)")
	playCmd.Flags().StringVar(&flagSpeed, "speed", "", "Animation speed: slow, normal, fast, instant")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the pack file when it changes on disk")
}

func runPlay(_ *cobra.Command, args []string) {
	logger, closeLog := newLogger(true)
	defer closeLog()

	cfg := loadConfig()
	packs, err := allPacks(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	name := cfg.Packs.Default
	if len(args) > 0 {
		name = args[0]
	}
	pack, err := resolvePack(name, packs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'storekeeper list' to see available packs.")
		os.Exit(1)
	}

	if flagSpeed != "" {
		preset, speedErr := config.ParseSpeedPreset(flagSpeed)
		if speedErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", speedErr)
			os.Exit(1)
		}
		steps, _ := config.StepsForPreset(preset)
		storekeeper.SetStepsPerMove(steps)
	}

	if flagWatch && pack.Builtin {
		fmt.Fprintln(os.Stderr, "Error: --watch needs a pack file, not a builtin pack")
		os.Exit(1)
	}

	rcfg := runtimeConfig(cfg)
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	level := flagLevel
	if level == 0 {
		selected, quit, selErr := tui.RunLevelSelector(store, pack, rcfg)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}
		// User pressed back or quit
		if quit || selected == 0 {
			return
		}
		level = selected
	}

	game, err := tui.NewGame(pack, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	opts := []tui.ModelOption{tui.WithLogger(logger)}
	if flagWatch {
		reloads, stop, watchErr := watchPack(pack.Path, logger)
		if watchErr != nil {
			fmt.Fprintf(os.Stderr, "Error watching %s: %v\n", pack.Path, watchErr)
			os.Exit(1)
		}
		defer stop()
		opts = append(opts, tui.WithReloads(reloads))
	}

	logger.Info("playing", "pack", pack.ID, "level", level, "source", packSource(pack))
	if _, err := tui.Run(game, store, rcfg, opts...); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// watchPack re-reads path whenever it changes and delivers the result on
// the returned channel. stop closes the watcher and the channel.
func watchPack(path string, logger *log.Logger) (<-chan tui.ReloadMsg, func(), error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, err
	}
	w, err := levels.NewWatcher(abs)
	if err != nil {
		return nil, nil, err
	}

	out := make(chan tui.ReloadMsg, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(out)
		for {
			select {
			case name, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(name) != abs {
					continue
				}
				logger.Debug("pack changed", "path", name)
				p, loadErr := levels.LoadFile(abs)
				msg := tui.ReloadMsg{Pack: p.Pack, Err: loadErr}
				// Keep only the newest pending reload.
				select {
				case <-out:
				default:
				}
				out <- msg
			case werr, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error", "error", werr)
			}
		}
	}()

	stop := func() {
		_ = w.Close()
		<-done
	}
	return out, stop, nil
}
