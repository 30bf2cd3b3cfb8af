package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/storekeeper/internal/sokoban/levels"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check pack files for errors",
	Long: `Read each pack file and check that every level is playable: exactly
one worker, at least one goal and as many boxes as goals.
Exits with status 1 if any file fails.

Examples:
  storekeeper validate ./my-pack.sok
  storekeeper validate ~/.storekeeper/packs/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run:  runValidate,
}

func runValidate(_ *cobra.Command, args []string) {
	failed := 0
	for _, path := range args {
		if !validateFile(path) {
			failed++
		}
	}

	if failed > 0 {
		fmt.Printf("\n%d of %d files failed.\n", failed, len(args))
		os.Exit(1)
	}
}

// validateFile prints the verdict for one file and reports whether it passed.
func validateFile(path string) bool {
	pack, err := levels.LoadFile(path)
	if err != nil {
		fmt.Printf("%s: %v\n", path, err)
		return false
	}

	errs := levels.Check(pack.Pack)
	if len(errs) == 0 {
		fmt.Printf("%s: ok (%d levels)\n", path, len(pack.Pack.Levels))
		return true
	}

	fmt.Printf("%s: %d of %d levels invalid\n", path, len(errs), len(pack.Pack.Levels))
	nums := make([]int, 0, len(errs))
	for n := range errs {
		nums = append(nums, n)
	}
	slices.Sort(nums)
	for _, n := range nums {
		name := pack.Pack.Levels[n-1].Name
		if name == "" {
			name = fmt.Sprintf("#%d", n)
		}
		fmt.Printf("  level %d (%s): %v\n", n, name, errs[n])
	}
	return false
}
