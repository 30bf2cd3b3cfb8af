package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/storekeeper/internal/sokoban/formats"
	"github.com/vovakirdan/storekeeper/internal/sokoban/levels"
)

var flagForce bool

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Convert a pack between formats",
	Long: `Read a pack and write it in the format given by the extension of the
output file: .sok/.txt, .json or .yaml/.yml.

Examples:
  storekeeper convert classic.sok classic.yaml
  storekeeper convert my-pack.json my-pack.sok --force`,
	Args: cobra.ExactArgs(2),
	Run:  runConvert,
}

func init() {
	convertCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite the output file if it exists")
}

func runConvert(_ *cobra.Command, args []string) {
	in, out := args[0], args[1]

	if _, err := os.Stat(out); err == nil && !flagForce {
		fmt.Fprintf(os.Stderr, "Error: %s exists (use --force to overwrite)\n", out)
		os.Exit(1)
	}

	pack, err := levels.LoadFile(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := formats.Encode(pack.Pack, filepath.Ext(out))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding %s: %v\n", out, err)
		os.Exit(1)
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", out, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d levels to %s\n", len(pack.Pack.Levels), out)
}
