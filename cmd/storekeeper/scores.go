package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/storekeeper/internal/sokoban/levels"
	"github.com/vovakirdan/storekeeper/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [pack]",
	Short: "Show best results",
	Long: `Display the best result of every solved level of a pack. Without a
pack, a summary of every pack that has been played is shown.

Examples:
  storekeeper scores
  storekeeper scores tutorial
  storekeeper scores tutorial --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all results of the pack")
}

func runScores(_ *cobra.Command, args []string) {
	logger, closeLog := newLogger(false)
	defer closeLog()

	cfg := loadConfig()
	packs, err := allPacks(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagClear {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a pack")
			os.Exit(1)
		}
		printSummary(store, packs)
		return
	}

	pack, err := resolvePack(args[0], packs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'storekeeper list' to see available packs.")
		os.Exit(1)
	}

	if flagClear {
		if err := store.ClearResults(pack.ID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Info("results cleared", "pack", pack.ID)
		fmt.Printf("Cleared results for %s.\n", pack.Title())
		return
	}

	printPack(store, pack)
}

// printPack prints the best result of every solved level of a pack.
func printPack(store *storage.Store, pack levels.PackFile) {
	results, err := store.PackResults(pack.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best Results - %s\n", pack.Title())
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No levels solved yet.")
		fmt.Println()
		fmt.Printf("Play 'storekeeper play %s' to record the first result!\n", pack.ID)
		return
	}

	fmt.Printf("  %-5s  %-20s  %6s  %6s  %s\n", "Level", "Name", "Moves", "Pushes", "Date")
	fmt.Printf("  %-5s  %-20s  %6s  %6s  %s\n", "-----", "----", "-----", "------", "----")

	for _, r := range results {
		name := ""
		if r.Level >= 1 && r.Level <= len(pack.Pack.Levels) {
			name = pack.Pack.Levels[r.Level-1].Name
		}
		fmt.Printf("  %-5d  %-20s  %6d  %6d  %s\n", r.Level, name, r.Moves, r.Pushes, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.PackStats(pack.ID); err == nil {
		fmt.Printf("Solved %d/%d levels in %d solves (%d moves, %d pushes)\n",
			stats.LevelsSolved, len(pack.Pack.Levels), stats.Solves, stats.TotalMoves, stats.TotalPushes)
	}
}

// printSummary prints one line per played pack.
func printSummary(store *storage.Store, packs []levels.PackFile) {
	all, err := store.AllPackStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	if len(all) == 0 {
		fmt.Println("No results recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %8s  %6s  %s\n", "Pack", "Solved", "Solves", "Last played")
	fmt.Printf("  %-16s  %8s  %6s  %s\n", "----", "------", "------", "-----------")

	for _, p := range packs {
		stats, ok := all[p.ID]
		if !ok {
			continue
		}
		solved := fmt.Sprintf("%d/%d", stats.LevelsSolved, len(p.Pack.Levels))
		fmt.Printf("  %-16s  %8s  %6d  %s\n", p.ID, solved, stats.Solves, stats.LastPlayed.Format("2006-01-02 15:04"))
		delete(all, p.ID)
	}

	// Packs with results whose files are no longer available.
	for id, stats := range all {
		fmt.Printf("  %-16s  %8d  %6d  %s\n", id, stats.LevelsSolved, stats.Solves, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
}
