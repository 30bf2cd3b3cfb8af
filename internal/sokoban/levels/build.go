package levels

import (
	"fmt"

	"github.com/vovakirdan/storekeeper/internal/sokoban"
	"github.com/vovakirdan/storekeeper/internal/sokoban/formats"
)

// Build constructs a playable pack. Each level grid is normalized first so
// ragged or padded input is accepted. opts apply to every level.
func Build(p formats.Pack, opts ...sokoban.LevelOption) (*sokoban.Pack, error) {
	if len(p.Levels) == 0 {
		return nil, formats.ErrNoLevels
	}

	pack := sokoban.NewPack(p.Name, p.Description)
	for i, lvl := range p.Levels {
		level, err := BuildLevel(lvl, opts...)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", i+1, err)
		}
		pack.Add(level)
	}
	return pack, nil
}

// BuildLevel constructs a single level from its decoded form.
func BuildLevel(lvl formats.Level, opts ...sokoban.LevelOption) (*sokoban.Level, error) {
	grid := sokoban.NewGrid(lvl.Items)
	grid.Normalize()

	all := make([]sokoban.LevelOption, 0, len(opts)+2)
	all = append(all, sokoban.WithName(lvl.Name), sokoban.WithDescription(lvl.Description))
	all = append(all, opts...)
	return sokoban.NewLevel(grid, all...)
}

// Check validates every level of a pack and returns one error per invalid
// level, keyed by 1-based level number.
func Check(p formats.Pack) map[int]error {
	errs := make(map[int]error)
	for i, lvl := range p.Levels {
		grid := sokoban.NewGrid(lvl.Items)
		grid.Normalize()
		if err := grid.Check(); err != nil {
			errs[i+1] = err
		}
	}
	return errs
}
