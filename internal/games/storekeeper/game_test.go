package storekeeper

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/storekeeper/internal/core"
	"github.com/vovakirdan/storekeeper/internal/registry"
	"github.com/vovakirdan/storekeeper/internal/sokoban/formats"
)

var (
	oneMoveLevel = formats.Level{Name: "one", Items: []string{
		"#####",
		"#@$.#",
		"#####",
	}}
	corridorLevel = formats.Level{Name: "corridor", Items: []string{
		"#######",
		"#@ $ .#",
		"#######",
	}}
)

// isolate points HOME at an empty directory so no user config is read.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() {
		SetStepsPerMove(0)
		SetConfigPath("")
		SetStartLevel(0)
	})
}

func writeConfig(t *testing.T, data string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storekeeper.yaml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
}

func newTestGame(t *testing.T, steps int, lvls ...formats.Level) *Game {
	t.Helper()
	isolate(t)
	SetStepsPerMove(steps)
	g := NewFromPack("test", formats.Pack{Name: "Test Pack", Levels: lvls})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
	if err := g.Err(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	return g
}

func press(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func idle(g *Game, ticks int) []core.LevelResult {
	var results []core.LevelResult
	for range ticks {
		results = append(results, press(g).Results...)
	}
	return results
}

func currentIndex(t *testing.T, g *Game) int {
	t.Helper()
	i, ok := g.Pack().Index()
	if !ok {
		t.Fatal("expected a current level")
	}
	return i
}

func TestBuiltinPacksRegistered(t *testing.T) {
	for _, id := range []string{"depot", "tutorial", "warehouse"} {
		info, ok := registry.Info(id)
		if !ok {
			t.Errorf("expected builtin pack %q to be registered", id)
			continue
		}
		if info.Levels == 0 {
			t.Errorf("expected %q to report its level count", id)
		}
	}

	info, _ := registry.Info("tutorial")
	if info.Levels != 4 {
		t.Errorf("expected 4 tutorial levels, got %d", info.Levels)
	}
}

func TestCompletingLastLevelWinsPack(t *testing.T) {
	g := newTestGame(t, 1, oneMoveLevel)

	res := press(g, core.ActionRight)
	if len(res.Results) != 0 {
		t.Fatalf("expected no result on the move tick, got %v", res.Results)
	}

	res = press(g)
	if len(res.Results) != 1 {
		t.Fatalf("expected one result, got %d", len(res.Results))
	}
	want := core.LevelResult{PackID: "test", Level: 1, Moves: 1, Pushes: 1}
	if res.Results[0] != want {
		t.Errorf("expected %+v, got %+v", want, res.Results[0])
	}

	if !res.State.Won || !res.State.GameOver {
		t.Errorf("expected pack won, got %+v", res.State)
	}
	if res.State.Score != 1 {
		t.Errorf("expected score 1, got %d", res.State.Score)
	}

	// The result is reported once.
	if results := idle(g, 10); len(results) != 0 {
		t.Errorf("expected no further results, got %v", results)
	}
}

func TestDirectionBufferedDuringAnimation(t *testing.T) {
	g := newTestGame(t, 4, corridorLevel)
	level := g.Pack().Current()

	press(g, core.ActionRight)
	if !level.IsAnimating() {
		t.Fatal("expected the first move to animate")
	}
	press(g, core.ActionRight)
	idle(g, 20)

	if level.MovesCount() != 2 {
		t.Errorf("expected 2 moves, got %d", level.MovesCount())
	}
	if level.PushesCount() != 1 {
		t.Errorf("expected 1 push, got %d", level.PushesCount())
	}
	if row, col := level.Worker().Cell(); row != 1 || col != 3 {
		t.Errorf("expected worker at (1,3), got (%d,%d)", row, col)
	}
}

func TestUndo(t *testing.T) {
	g := newTestGame(t, 1, corridorLevel)
	level := g.Pack().Current()

	press(g, core.ActionRight)
	idle(g, 2)
	press(g, core.ActionUndo)

	if level.MovesCount() != 0 {
		t.Errorf("expected 0 moves after undo, got %d", level.MovesCount())
	}
	if row, col := level.Worker().Cell(); row != 1 || col != 1 {
		t.Errorf("expected worker back at (1,1), got (%d,%d)", row, col)
	}
	if g.lastMoves != 0 {
		t.Errorf("expected HUD moves 0, got %d", g.lastMoves)
	}
}

func TestNavigationAndRestart(t *testing.T) {
	g := newTestGame(t, 1, corridorLevel, oneMoveLevel, corridorLevel)

	press(g, core.ActionNextLevel)
	if i := currentIndex(t, g); i != 1 {
		t.Errorf("expected level index 1, got %d", i)
	}
	press(g, core.ActionPrevLevel)
	press(g, core.ActionPrevLevel)
	if i := currentIndex(t, g); i != 2 {
		t.Errorf("expected wrap to index 2, got %d", i)
	}

	level := g.Pack().Current()
	press(g, core.ActionRight)
	idle(g, 2)
	if level.MovesCount() != 1 {
		t.Fatalf("expected 1 move, got %d", level.MovesCount())
	}

	press(g, core.ActionRestart)
	if level.MovesCount() != 0 {
		t.Errorf("expected restart to clear moves, got %d", level.MovesCount())
	}
	if g.lastMoves != 0 {
		t.Errorf("expected HUD moves 0 after restart, got %d", g.lastMoves)
	}
}

func TestAutoAdvanceAfterDelay(t *testing.T) {
	g := newTestGame(t, 1, oneMoveLevel, corridorLevel)

	press(g, core.ActionRight)
	if results := idle(g, 1); len(results) != 1 {
		t.Fatalf("expected level 1 result, got %v", results)
	}
	if g.State().Won {
		t.Fatal("expected pack not won with a level left")
	}

	idle(g, 119)
	if i := currentIndex(t, g); i != 0 {
		t.Fatalf("expected to stay on level 0 during the delay, got %d", i)
	}
	idle(g, 1)
	if i := currentIndex(t, g); i != 1 {
		t.Errorf("expected auto advance to level 1, got %d", i)
	}
}

func TestConfirmAdvancesWithoutAutoAdvance(t *testing.T) {
	isolate(t)
	writeConfig(t, "gameplay:\n  auto_advance: false\n")
	g := newTestGame(t, 1, oneMoveLevel, corridorLevel)

	press(g, core.ActionRight)
	idle(g, 300)
	if i := currentIndex(t, g); i != 0 {
		t.Fatalf("expected to wait on level 0, got %d", i)
	}

	press(g, core.ActionConfirm)
	if i := currentIndex(t, g); i != 1 {
		t.Errorf("expected confirm to advance to level 1, got %d", i)
	}
}

func TestSolvedLevelStartsOverWhenRevisited(t *testing.T) {
	isolate(t)
	writeConfig(t, "gameplay:\n  auto_advance: false\n")
	g := newTestGame(t, 1, oneMoveLevel, corridorLevel)

	press(g, core.ActionRight)
	idle(g, 1)
	press(g, core.ActionConfirm)
	press(g, core.ActionPrevLevel)

	level := g.Pack().Current()
	if level.IsCompleted() || level.MovesCount() != 0 {
		t.Errorf("expected solved level to be reset, completed=%v moves=%d", level.IsCompleted(), level.MovesCount())
	}
}

func TestSelectLevel(t *testing.T) {
	isolate(t)
	g := NewFromPack("test", formats.Pack{Levels: []formats.Level{corridorLevel, oneMoveLevel, corridorLevel}})

	if err := g.SelectLevel(4); err == nil {
		t.Error("expected error for level 4 of 3")
	}
	if err := g.SelectLevel(2); err != nil {
		t.Fatalf("SelectLevel failed: %v", err)
	}
	g.Reset(core.DefaultConfig())
	if i := currentIndex(t, g); i != 1 {
		t.Errorf("expected start on index 1, got %d", i)
	}

	if err := g.SelectLevel(3); err != nil {
		t.Fatalf("SelectLevel failed: %v", err)
	}
	if i := currentIndex(t, g); i != 2 {
		t.Errorf("expected index 2, got %d", i)
	}
}

func TestStartLevelKnob(t *testing.T) {
	isolate(t)
	SetStartLevel(3)
	g, err := registry.Create("tutorial")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	g.Reset(core.DefaultConfig())

	if i := currentIndex(t, g.(*Game)); i != 2 {
		t.Errorf("expected start on index 2, got %d", i)
	}
	if GetStartLevel() != 0 {
		t.Errorf("expected start level consumed, got %d", GetStartLevel())
	}
}

func TestCreateAt(t *testing.T) {
	isolate(t)
	g, err := registry.CreateAt("warehouse", 2)
	if err != nil {
		t.Fatalf("CreateAt failed: %v", err)
	}
	g.Reset(core.DefaultConfig())
	if i := currentIndex(t, g.(*Game)); i != 1 {
		t.Errorf("expected index 1, got %d", i)
	}

	if _, err := registry.CreateAt("warehouse", 99); err == nil {
		t.Error("expected error for missing level")
	}
}

func TestReloadKeepsLevelIndex(t *testing.T) {
	g := newTestGame(t, 1, corridorLevel, corridorLevel)
	press(g, core.ActionNextLevel)

	err := g.Reload(formats.Pack{Levels: []formats.Level{oneMoveLevel, oneMoveLevel, oneMoveLevel}})
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if i := currentIndex(t, g); i != 1 {
		t.Errorf("expected index 1 after reload, got %d", i)
	}
	if g.Pack().Len() != 3 {
		t.Errorf("expected 3 levels, got %d", g.Pack().Len())
	}

	press(g, core.ActionNextLevel)
	if err := g.Reload(formats.Pack{Levels: []formats.Level{oneMoveLevel}}); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if i := currentIndex(t, g); i != 0 {
		t.Errorf("expected index clamped to 0, got %d", i)
	}

	bad := formats.Pack{Levels: []formats.Level{{Items: []string{"#.#"}}}}
	if err := g.Reload(bad); err == nil {
		t.Error("expected error for invalid pack")
	}
	if g.Pack().Len() != 1 {
		t.Errorf("expected previous pack kept, got %d levels", g.Pack().Len())
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(t, 1, corridorLevel)
	level := g.Pack().Current()

	if res := press(g, core.ActionPause); !res.State.Paused {
		t.Fatal("expected paused state")
	}
	press(g, core.ActionRight)
	idle(g, 5)
	if level.MovesCount() != 0 {
		t.Errorf("expected no moves while paused, got %d", level.MovesCount())
	}

	press(g, core.ActionPause)
	press(g, core.ActionRight)
	if level.MovesCount() != 1 {
		t.Errorf("expected a move after unpause, got %d", level.MovesCount())
	}
}

func TestLoadError(t *testing.T) {
	isolate(t)
	g := NewFromPack("broken", formats.Pack{Levels: []formats.Level{{Items: []string{"# #"}}}})
	g.Reset(core.DefaultConfig())

	if g.Err() == nil {
		t.Fatal("expected load error")
	}
	if !g.State().GameOver {
		t.Error("expected game over on load error")
	}
	press(g, core.ActionRight)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Cannot load pack") {
		t.Error("expected load error message")
	}
}

func TestTooSmallAndResize(t *testing.T) {
	isolate(t)
	g := NewFromPack("test", formats.Pack{Levels: []formats.Level{corridorLevel}})
	g.Reset(core.RuntimeConfig{ScreenW: 6, ScreenH: 4, TickRate: 60})

	if !g.State().Paused {
		t.Error("expected paused state when the window is too small")
	}
	screen := core.NewScreen(6, 4)
	g.Render(screen)

	var r registry.Resizer = g
	r.Resize(80, 24)
	if g.State().Paused {
		t.Error("expected game to resume after resize")
	}
}

func TestRenderNarrowBoard(t *testing.T) {
	isolate(t)
	writeConfig(t, "display:\n  wide_cells: false\n")
	g := newTestGame(t, 1, corridorLevel)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	level := g.Pack().Current()
	items := level.Items()
	x := (80 - level.Columns()) / 2
	y := hudHeight + (24-hudHeight-1-level.Rows())/2
	for r, want := range items {
		got := strings.TrimRight(screen.Row(y + r)[x:x+level.Columns()], " ")
		if got != want {
			t.Errorf("row %d: expected %q, got %q", r, want, got)
		}
	}

	if !strings.Contains(screen.Row(0), "Test Pack  Level 1/1") {
		t.Errorf("unexpected title row %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(2), "Moves: 0  Pushes: 0  Boxes: 0/1") {
		t.Errorf("unexpected counters row %q", screen.Row(2))
	}
}

func TestRenderWideBoardAndOverlay(t *testing.T) {
	g := newTestGame(t, 1, oneMoveLevel, corridorLevel)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "()[]··") {
		t.Errorf("expected wide glyphs for worker, box and goal, got\n%s", screen.String())
	}

	press(g, core.ActionRight)
	idle(g, 1)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Level 1 solved!") {
		t.Error("expected level clear overlay")
	}
	if !strings.Contains(screen.String(), "Moves: 1  Pushes: 1  Boxes: 1/1") {
		t.Error("expected counters to follow the move")
	}
}
