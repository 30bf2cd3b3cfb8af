package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"

	"github.com/vovakirdan/storekeeper/internal/sokoban/formats"
)

//go:embed builtin/*
var builtinFS embed.FS

var (
	builtinOnce  sync.Once
	builtinPacks []PackFile
	builtinErr   error
)

// Builtin returns the packs shipped with the binary, sorted by ID.
// The embedded files are decoded once.
func Builtin() ([]PackFile, error) {
	builtinOnce.Do(func() {
		builtinPacks, builtinErr = loadFS(builtinFS, "builtin")
	})
	return builtinPacks, builtinErr
}

// BuiltinByID returns a builtin pack by ID.
func BuiltinByID(id string) (PackFile, error) {
	packs, err := Builtin()
	if err != nil {
		return PackFile{}, err
	}
	for _, p := range packs {
		if p.ID == id {
			return p, nil
		}
	}
	return PackFile{}, fmt.Errorf("builtin pack not found: %s", id)
}

func loadFS(fsys fs.FS, root string) ([]PackFile, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	var packs []PackFile
	for _, e := range entries {
		if e.IsDir() || !formats.IsSupported(path.Ext(e.Name())) {
			continue
		}
		name := path.Join(root, e.Name())
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		pack, err := formats.Parse(data, path.Ext(name))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		packs = append(packs, PackFile{ID: FileID(name), Path: name, Pack: pack, Builtin: true})
	}

	sort.Slice(packs, func(i, j int) bool {
		return packs[i].ID < packs[j].ID
	})
	return packs, nil
}
