package sokoban

import "fmt"

// PackOption configures a Pack at construction.
type PackOption func(*Pack)

// WithPackListener subscribes fn to the pack's events.
func WithPackListener(fn Listener) PackOption {
	return func(p *Pack) {
		p.events.Subscribe(fn)
	}
}

// Pack is an ordered collection of levels with a current selection.
// The index is unset until the first level is added.
type Pack struct {
	name        string
	description string
	levels      []*Level
	index       int
	events      Emitter
}

// NewPack creates an empty pack.
func NewPack(name, description string, opts ...PackOption) *Pack {
	p := &Pack{
		name:        name,
		description: description,
		index:       -1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the pack name.
func (p *Pack) Name() string { return p.name }

// Description returns the pack description.
func (p *Pack) Description() string { return p.description }

// Add appends a level. The first level added becomes the current one.
func (p *Pack) Add(level *Level) {
	p.levels = append(p.levels, level)
	if p.index < 0 {
		p.index = 0
	}
}

// Len returns the number of levels.
func (p *Pack) Len() int {
	return len(p.levels)
}

// Index returns the current index and whether one is selected.
func (p *Pack) Index() (int, bool) {
	return p.index, p.index >= 0
}

// Current returns the selected level, or nil for an empty pack.
func (p *Pack) Current() *Level {
	if p.index < 0 {
		return nil
	}
	return p.levels[p.index]
}

// Level returns the level at index i.
func (p *Pack) Level(i int) (*Level, error) {
	if i < 0 || i >= len(p.levels) {
		return nil, fmt.Errorf("level %d of %d: %w", i, len(p.levels), ErrLevelIndexOutOfRange)
	}
	return p.levels[i], nil
}

// Levels returns all levels in order.
func (p *Pack) Levels() []*Level {
	return p.levels
}

// GoToPrevious selects the previous level, wrapping to the last one.
func (p *Pack) GoToPrevious() {
	if p.index < 0 {
		return
	}
	p.index = (p.index - 1 + len(p.levels)) % len(p.levels)
	p.changed()
}

// GoToNext selects the next level, wrapping to the first one.
func (p *Pack) GoToNext() {
	if p.index < 0 {
		return
	}
	p.index = (p.index + 1) % len(p.levels)
	p.changed()
}

// GoTo selects the level at index i.
func (p *Pack) GoTo(i int) error {
	if i < 0 || i >= len(p.levels) {
		return fmt.Errorf("go to level %d of %d: %w", i, len(p.levels), ErrLevelIndexOutOfRange)
	}
	p.index = i
	p.changed()
	return nil
}

// Restart resets the current level in place.
func (p *Pack) Restart() {
	if p.index < 0 {
		return
	}
	p.levels[p.index].Reset()
	p.changed()
}

// Subscribe registers a listener for level changes.
func (p *Pack) Subscribe(fn Listener) (unsubscribe func()) {
	return p.events.Subscribe(fn)
}

func (p *Pack) changed() {
	p.events.Emit(LevelChangedEvent{Number: p.index + 1})
}
