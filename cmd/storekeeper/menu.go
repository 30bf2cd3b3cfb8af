package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/storekeeper/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick packs and levels interactively",
	Long: `Start storekeeper in interactive menu mode.

Choose a pack, then a level. Leaving a game with Esc returns to the
menu; Tab in the menu opens the results board.

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Select
  Tab          - Results
  Esc/B        - Back
  Q            - Quit

Examples:
  storekeeper menu
  storekeeper menu --fps 30
  storekeeper menu --db ./results.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger(true)
	defer closeLog()

	cfg := loadConfig()
	packs, err := allPacks(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	rcfg := runtimeConfig(cfg)

	for {
		menuResult, err := tui.RunMenu(store, packs, rcfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		rcfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, packs, rcfg.ScreenW, rcfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		if menuResult.Pack == nil {
			return
		}
		pack := *menuResult.Pack

		level, quit, selErr := tui.RunLevelSelector(store, pack, rcfg)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			continue
		}
		if quit {
			return
		}
		if level == 0 {
			continue
		}

		game, err := tui.NewGame(pack, level)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		logger.Info("playing", "pack", pack.ID, "level", level)
		quit, err = tui.Run(game, store, rcfg, tui.WithLogger(logger))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if quit {
			return
		}
	}
}
