package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all level packs",
	Long: `Shows the packs shipped with storekeeper and the packs found in the
directories listed under packs.dirs in the config.`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger(false)
	defer closeLog()

	cfg := loadConfig()
	packs, err := allPacks(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(packs) == 0 {
		fmt.Println("No packs available.")
		return
	}

	fmt.Println("Available packs:")
	fmt.Println()

	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, p := range packs {
		maxIDLen = max(maxIDLen, len(p.ID))
		maxTitleLen = max(maxTitleLen, len(p.Title()))
	}

	fmt.Printf("  %-*s  %-*s  %6s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Levels", "Source")
	fmt.Printf("  %-*s  %-*s  %6s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "------", "------")

	for _, p := range packs {
		fmt.Printf("  %-*s  %-*s  %6d  %s\n", maxIDLen, p.ID, maxTitleLen, p.Title(), len(p.Pack.Levels), packSource(p))
	}

	fmt.Println()
	fmt.Println("Run 'storekeeper play <id>' to play a pack.")
}
