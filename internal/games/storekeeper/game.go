// Package storekeeper drives a Sokoban level pack once per platform tick.
// Every builtin pack is registered as its own game; packs read from disk
// are wrapped with NewFromPack.
package storekeeper

import (
	"fmt"

	"github.com/vovakirdan/storekeeper/internal/config"
	"github.com/vovakirdan/storekeeper/internal/core"
	"github.com/vovakirdan/storekeeper/internal/registry"
	"github.com/vovakirdan/storekeeper/internal/sokoban"
	"github.com/vovakirdan/storekeeper/internal/sokoban/formats"
	"github.com/vovakirdan/storekeeper/internal/sokoban/levels"
)

// Game implements registry.Game for one level pack.
type Game struct {
	id     string
	source formats.Pack
	pack   *sokoban.Pack
	cfg    config.StorekeeperConfig
	theme  theme

	// Screen dimensions
	screenW int
	screenH int

	tick       uint64
	pending    sokoban.Direction // Buffered until the level is idle
	startLevel int               // 1-based, 0 means first level
	loadErr    error

	solved    map[int]bool // 0-based indexes solved this session
	results   []core.LevelResult
	lastMoves int
	lastPush  int

	// Game state flags
	levelCleared bool
	clearTicks   int
	won          bool
	paused       bool
	tooSmall     bool
}

// Package-level variables set by the CLI before a game is created.
var (
	selectedStartLevel int
	configPath         string
	stepsOverride      int
)

// SetStartLevel sets the starting level (1-indexed). 0 means start from beginning.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// SetConfigPath sets the config file read on Reset. Empty uses the search order.
func SetConfigPath(path string) {
	configPath = path
}

// SetStepsPerMove overrides the configured animation speed. 0 keeps the config value.
func SetStepsPerMove(n int) {
	stepsOverride = n
}

func init() {
	packs, err := levels.Builtin()
	if err != nil {
		panic(fmt.Sprintf("storekeeper: builtin packs: %v", err))
	}
	for _, pf := range packs {
		registry.Register(registry.GameInfo{
			ID:          pf.ID,
			Title:       pf.Title(),
			Description: pf.Pack.Description,
			Levels:      len(pf.Pack.Levels),
		}, func() registry.Game {
			return NewFromPack(pf.ID, pf.Pack)
		})
	}
}

// NewFromPack creates a game for a decoded pack. The pack is built on Reset.
func NewFromPack(id string, p formats.Pack) *Game {
	return &Game{
		id:     id,
		source: p,
		cfg:    config.DefaultStorekeeperConfig(),
	}
}

// ID returns the pack identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the pack name, falling back to the ID.
func (g *Game) Title() string {
	if g.source.Name != "" {
		return g.source.Name
	}
	return g.id
}

// SelectLevel chooses the 1-based level to play. Before the first Reset the
// choice is kept until the pack is built.
func (g *Game) SelectLevel(n int) error {
	if n < 1 || n > len(g.source.Levels) {
		return fmt.Errorf("level %d out of range 1-%d", n, len(g.source.Levels))
	}
	if g.pack == nil {
		g.startLevel = n
		return nil
	}
	g.clearLevelFlags()
	return g.pack.GoTo(n - 1)
}

// Reset loads the configuration and rebuilds the pack from its first (or
// selected) level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.pending = sokoban.DirNone
	g.solved = make(map[int]bool)
	g.results = nil
	g.won = false
	g.paused = false
	g.clearLevelFlags()

	g.cfg = loadConfig()
	g.theme = newTheme(g.cfg.Display.Theme)

	start := 0
	if g.startLevel > 0 {
		start = g.startLevel - 1
		g.startLevel = 0
	} else if selectedStartLevel > 0 {
		start = selectedStartLevel - 1
		selectedStartLevel = 0 // Reset after use
	}

	g.loadErr = g.build(start)
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Reload replaces the pack contents, keeping the current level index when
// the new pack still has it. Levels solved so far are forgotten since their
// contents may have changed.
func (g *Game) Reload(p formats.Pack) error {
	index := 0
	if g.pack != nil {
		if i, ok := g.pack.Index(); ok {
			index = i
		}
	}

	prev := g.source
	g.source = p
	if err := g.build(index); err != nil {
		g.source = prev
		return err
	}
	g.loadErr = nil
	g.solved = make(map[int]bool)
	g.won = false
	return nil
}

// build constructs the runtime pack and moves to level index, clamped to
// the pack size.
func (g *Game) build(index int) error {
	steps := g.cfg.Engine.StepsPerMove
	if stepsOverride > 0 {
		steps = stepsOverride
	}

	pack, err := levels.Build(g.source,
		sokoban.WithStepsPerMove(steps),
		sokoban.WithListener(g.onLevelEvent),
	)
	if err != nil {
		return fmt.Errorf("pack %s: %w", g.id, err)
	}
	pack.Subscribe(g.onPackEvent)

	if index >= pack.Len() {
		index = pack.Len() - 1
	}
	if index < 0 {
		index = 0
	}
	g.pack = pack
	return pack.GoTo(index)
}

// loadConfig reads the configuration, falling back to defaults.
func loadConfig() config.StorekeeperConfig {
	cfg, err := config.LoadStorekeeper(configPath)
	if err != nil {
		return config.DefaultStorekeeperConfig()
	}
	return cfg
}

// Resize updates the screen dimensions without touching progress.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// checkScreenSize checks if the board, HUD and help line fit.
func (g *Game) checkScreenSize() {
	level := g.level()
	if level == nil {
		g.tooSmall = false
		return
	}
	minW := level.Columns() + 2
	minH := level.Rows() + hudHeight + 1
	if g.cfg.Display.ShowHelp {
		minH++
	}
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// level returns the level being played, or nil if the pack failed to build.
func (g *Game) level() *sokoban.Level {
	if g.pack == nil {
		return nil
	}
	return g.pack.Current()
}

// onLevelEvent receives events from every level of the pack. Only the
// current level moves, so events are attributed to it.
func (g *Game) onLevelEvent(ev sokoban.Event) {
	switch e := ev.(type) {
	case sokoban.MoveStartEvent:
		g.lastMoves = e.MovesCount
		g.lastPush = e.PushesCount
	case sokoban.UndoEvent:
		g.lastMoves = e.MovesCount
		g.lastPush = e.PushesCount
	case sokoban.CompletedEvent:
		g.onCompleted()
	}
}

// onPackEvent resets per-level flags when the current level changes.
// A level that was already solved starts over.
func (g *Game) onPackEvent(ev sokoban.Event) {
	if _, ok := ev.(sokoban.LevelChangedEvent); !ok {
		return
	}
	level := g.pack.Current()
	if level.IsCompleted() {
		level.Reset()
	}
	g.pending = sokoban.DirNone
	g.lastMoves = level.MovesCount()
	g.lastPush = level.PushesCount()
	g.clearLevelFlags()
	g.checkScreenSize()
}

// onCompleted records the solved level and starts the clear countdown.
func (g *Game) onCompleted() {
	index, ok := g.pack.Index()
	if !ok {
		return
	}
	level := g.pack.Current()

	g.results = append(g.results, core.LevelResult{
		PackID: g.id,
		Level:  index + 1,
		Moves:  level.MovesCount(),
		Pushes: level.PushesCount(),
	})
	g.solved[index] = true
	g.levelCleared = true
	g.clearTicks = g.cfg.Gameplay.AdvanceDelayTicks

	if len(g.solved) == g.pack.Len() {
		g.won = true
	}
}

func (g *Game) clearLevelFlags() {
	g.levelCleared = false
	g.clearTicks = 0
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.results = nil

	if g.pack == nil || g.tooSmall {
		return g.result()
	}

	// Handle pause
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	// The platform resets a won game on Restart.
	if g.won {
		return g.result()
	}

	// Pack navigation
	switch {
	case in.Has(core.ActionNextLevel):
		g.pack.GoToNext()
		return g.result()
	case in.Has(core.ActionPrevLevel):
		g.pack.GoToPrevious()
		return g.result()
	case in.Has(core.ActionRestart):
		g.pack.Restart()
		return g.result()
	}

	if g.levelCleared {
		g.stepCleared(in)
		return g.result()
	}

	level := g.pack.Current()

	if in.Has(core.ActionUndo) {
		g.pending = sokoban.DirNone
		level.Undo()
	}

	if dir := directionOf(in); dir != sokoban.DirNone {
		g.pending = dir
	}

	if !level.IsAnimating() && g.pending != sokoban.DirNone {
		level.SetDirection(g.pending)
		g.pending = sokoban.DirNone
	} else {
		level.SetDirection(sokoban.DirNone)
	}
	level.Move()

	return g.result()
}

// stepCleared runs the level-clear countdown.
func (g *Game) stepCleared(in core.InputFrame) {
	if g.clearTicks > 0 {
		g.clearTicks--
	}
	confirmed := in.Has(core.ActionConfirm)
	if confirmed || (g.cfg.Gameplay.AutoAdvance && g.clearTicks == 0) {
		g.advance()
	}
}

// advance moves to the next unsolved level, wrapping around the pack.
func (g *Game) advance() {
	index, _ := g.pack.Index()
	n := g.pack.Len()
	for i := 1; i <= n; i++ {
		next := (index + i) % n
		if !g.solved[next] {
			//nolint:errcheck // next is always in range
			g.pack.GoTo(next)
			return
		}
	}
	g.clearLevelFlags()
}

// directionOf returns the first movement action of the frame.
func directionOf(in core.InputFrame) sokoban.Direction {
	switch {
	case in.Has(core.ActionUp):
		return sokoban.DirUp
	case in.Has(core.ActionDown):
		return sokoban.DirDown
	case in.Has(core.ActionLeft):
		return sokoban.DirLeft
	case in.Has(core.ActionRight):
		return sokoban.DirRight
	default:
		return sokoban.DirNone
	}
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Results: g.results}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    len(g.solved),
		GameOver: g.won || g.loadErr != nil,
		Won:      g.won,
		Paused:   g.paused || g.tooSmall,
	}
}

// Err returns the error that prevented the pack from loading, if any.
func (g *Game) Err() error {
	return g.loadErr
}

// Pack returns the runtime pack, or nil before Reset.
func (g *Game) Pack() *sokoban.Pack {
	return g.pack
}
