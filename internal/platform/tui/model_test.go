package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/storekeeper/internal/core"
	"github.com/vovakirdan/storekeeper/internal/sokoban/formats"
	"github.com/vovakirdan/storekeeper/internal/sokoban/levels"
	"github.com/vovakirdan/storekeeper/internal/storage"
)

// fakeGame records what the model asks of it.
type fakeGame struct {
	resets   int
	steps    int
	resized  [2]int
	state    core.GameState
	pending  []core.LevelResult
	reloaded *formats.Pack
	reloadEr error
}

func (g *fakeGame) ID() string { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	res := core.StepResult{State: g.state, Results: g.pending}
	g.pending = nil
	return res
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "fake")
}

func (g *fakeGame) State() core.GameState { return g.state }

func (g *fakeGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func (g *fakeGame) Reload(p formats.Pack) error {
	if g.reloadEr != nil {
		return g.reloadEr
	}
	g.reloaded = &p
	return nil
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", next)
	}
	return nm, cmd
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60}
}

func TestModelSavesResults(t *testing.T) {
	store := openStore(t)
	game := &fakeGame{}
	m := NewModel(game, store, testConfig())
	m.Init()

	game.pending = []core.LevelResult{{PackID: "fake", Level: 2, Moves: 14, Pushes: 3}}
	m, cmd := update(t, m, TickMsg{})
	if cmd == nil {
		t.Error("expected next tick command")
	}
	if game.steps != 1 {
		t.Errorf("expected 1 step, got %d", game.steps)
	}

	best, err := store.BestResult("fake", 2)
	if err != nil {
		t.Fatalf("BestResult failed: %v", err)
	}
	if best == nil || best.Moves != 14 || best.Pushes != 3 {
		t.Errorf("expected stored result 14/3, got %+v", best)
	}

	// Without a store results are only logged.
	m = NewModel(game, nil, testConfig())
	game.pending = []core.LevelResult{{PackID: "fake", Level: 1, Moves: 1}}
	update(t, m, TickMsg{})
}

func TestModelRestartAfterGameOver(t *testing.T) {
	game := &fakeGame{}
	m := NewModel(game, nil, testConfig())
	m.Init()

	game.state.GameOver = true
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, runeKey('r'))
	m, _ = update(t, m, TickMsg{})

	if game.resets != 2 {
		t.Errorf("expected 2 resets, got %d", game.resets)
	}
	if game.steps != 1 {
		t.Errorf("expected restart tick not to step, got %d steps", game.steps)
	}
}

func TestModelResizeKeepsProgress(t *testing.T) {
	game := &fakeGame{}
	m := NewModel(game, nil, testConfig())
	m.Init()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if game.resized != [2]int{100, 30} {
		t.Errorf("expected resize to 100x30, got %v", game.resized)
	}
	if game.resets != 1 {
		t.Errorf("expected no extra reset, got %d resets", game.resets)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("expected screen 100x30, got %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestModelBackAndQuit(t *testing.T) {
	game := &fakeGame{}
	m := NewModel(game, nil, testConfig())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("expected back to menu")
	}
	if cmd != nil {
		t.Error("expected embedded model not to quit on back")
	}

	m.standalone = true
	m.backToMenu = false
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || cmd == nil {
		t.Error("expected standalone model to quit on back")
	}

	m, _ = update(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Error("expected quitting")
	}
	if m.View() != "" {
		t.Error("expected empty view when quitting")
	}
}

func TestModelReload(t *testing.T) {
	game := &fakeGame{}
	ch := make(chan ReloadMsg, 1)
	m := NewModel(game, nil, testConfig(), WithReloads(ch))

	pack := formats.Pack{Name: "New", Levels: []formats.Level{{Items: []string{"#@$.#"}}}}
	m, cmd := update(t, m, ReloadMsg{Pack: pack})
	if cmd == nil {
		t.Error("expected command waiting for the next reload")
	}
	if game.reloaded == nil || game.reloaded.Name != "New" {
		t.Fatalf("expected pack to be reloaded, got %+v", game.reloaded)
	}
	if !strings.Contains(m.View(), "Reloaded 1 levels") {
		t.Error("expected reload notice in view")
	}

	game.reloadEr = errors.New("bad level")
	m, _ = update(t, m, ReloadMsg{Pack: pack})
	if !strings.Contains(m.View(), "Reload failed: bad level") {
		t.Error("expected reload failure notice in view")
	}

	m, _ = update(t, m, ReloadMsg{Err: errors.New("unreadable")})
	if !strings.Contains(m.View(), "Reload failed: unreadable") {
		t.Error("expected read failure notice in view")
	}

	for range noticeTicks {
		m, _ = update(t, m, TickMsg{})
	}
	if strings.Contains(m.View(), "Reload failed") {
		t.Error("expected notice to expire")
	}
}

func TestWaitForReload(t *testing.T) {
	if waitForReload(nil) != nil {
		t.Error("expected no command without a channel")
	}

	ch := make(chan ReloadMsg, 1)
	ch <- ReloadMsg{Err: errors.New("x")}
	msg := waitForReload(ch)()
	if rm, ok := msg.(ReloadMsg); !ok || rm.Err == nil {
		t.Errorf("expected ReloadMsg with error, got %v", msg)
	}

	close(ch)
	if msg := waitForReload(ch)(); msg != nil {
		t.Errorf("expected nil after close, got %v", msg)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "cd") {
		t.Errorf("expected first line to hold both runs, got %q", lines[0])
	}
}

func TestNewGame(t *testing.T) {
	builtin, err := levels.BuiltinByID("tutorial")
	if err != nil {
		t.Fatalf("BuiltinByID failed: %v", err)
	}
	g, err := NewGame(builtin, 2)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	if g.ID() != "tutorial" {
		t.Errorf("expected tutorial, got %s", g.ID())
	}

	file := levels.PackFile{
		ID:   "mine",
		Pack: formats.Pack{Levels: []formats.Level{{Items: []string{"#####", "#@$.#", "#####"}}}},
	}
	g, err = NewGame(file, 0)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	if g.ID() != "mine" {
		t.Errorf("expected mine, got %s", g.ID())
	}

	if _, err := NewGame(file, 5); err == nil {
		t.Error("expected error for level out of range")
	}
}
