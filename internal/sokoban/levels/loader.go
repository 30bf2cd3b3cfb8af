// Package levels loads level packs from disk and from the embedded builtin
// set, and builds playable sokoban packs from them.
// This package depends on sokoban but sokoban does not depend on levels.
package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/storekeeper/internal/sokoban/formats"
)

// PackFile is a decoded pack together with where it came from.
type PackFile struct {
	ID      string
	Path    string
	Pack    formats.Pack
	Builtin bool // Embedded in the binary; Path is relative to the embedded tree
}

// Title returns the pack name, falling back to its ID.
func (f PackFile) Title() string {
	if f.Pack.Name != "" {
		return f.Pack.Name
	}
	return f.ID
}

// Loader handles loading packs from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new pack loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all pack files.
// Returns packs sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]PackFile, error) {
	var packs []PackFile

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if !formats.IsSupported(filepath.Ext(path)) {
			return nil
		}

		pack, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		packs = append(packs, pack)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(packs, func(i, j int) bool {
		return packs[i].ID < packs[j].ID
	})

	return packs, nil
}

// LoadFile loads a single pack file.
func (l *Loader) LoadFile(path string) (PackFile, error) {
	return LoadFile(path)
}

// LoadByID loads a specific pack by ID.
func (l *Loader) LoadByID(id string) (PackFile, error) {
	packs, err := l.LoadAll()
	if err != nil {
		return PackFile{}, err
	}

	for _, p := range packs {
		if p.ID == id {
			return p, nil
		}
	}

	return PackFile{}, fmt.Errorf("pack not found: %s", id)
}

// LoadFile reads and decodes a pack file by its extension.
func LoadFile(path string) (PackFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PackFile{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	pack, err := formats.Parse(data, filepath.Ext(path))
	if err != nil {
		return PackFile{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	return PackFile{
		ID:   FileID(path),
		Path: path,
		Pack: pack,
	}, nil
}

// FileID derives a pack ID from a file name: the base name without extension.
func FileID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
