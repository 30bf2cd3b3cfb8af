package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/storekeeper/internal/config"
	"github.com/vovakirdan/storekeeper/internal/sokoban/formats"
	"github.com/vovakirdan/storekeeper/internal/sokoban/levels"
)

// allPacks returns the builtin packs followed by packs found in the
// configured directories. A directory pack whose ID is already taken is
// skipped, since results are stored by pack ID.
func allPacks(cfg config.StorekeeperConfig, logger *log.Logger) ([]levels.PackFile, error) {
	packs, err := levels.Builtin()
	if err != nil {
		return nil, fmt.Errorf("loading builtin packs: %w", err)
	}
	packs = append([]levels.PackFile(nil), packs...)

	seen := make(map[string]string, len(packs))
	for _, p := range packs {
		seen[p.ID] = "builtin"
	}

	for _, dir := range cfg.PackDirs() {
		if _, err := os.Stat(dir); err != nil {
			logger.Debug("pack directory not available", "dir", dir, "error", err)
			continue
		}
		found, err := levels.NewLoader(dir).LoadAll()
		if err != nil {
			logger.Warn("could not scan pack directory", "dir", dir, "error", err)
			continue
		}
		for _, p := range found {
			if src, ok := seen[p.ID]; ok {
				logger.Warn("duplicate pack ID skipped", "id", p.ID, "path", p.Path, "kept", src)
				continue
			}
			seen[p.ID] = p.Path
			packs = append(packs, p)
		}
	}

	return packs, nil
}

// resolvePack finds a pack by file path or by ID. An argument naming an
// existing file with a pack extension is always read as a file.
func resolvePack(arg string, packs []levels.PackFile) (levels.PackFile, error) {
	if formats.IsSupported(filepath.Ext(arg)) {
		if _, err := os.Stat(arg); err == nil {
			return levels.LoadFile(arg)
		}
	}

	for _, p := range packs {
		if p.ID == arg {
			return p, nil
		}
	}
	return levels.PackFile{}, fmt.Errorf("unknown pack %q", arg)
}

// packSource describes where a pack was loaded from.
func packSource(p levels.PackFile) string {
	if p.Builtin {
		return "builtin"
	}
	return p.Path
}
