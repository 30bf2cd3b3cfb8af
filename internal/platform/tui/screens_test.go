package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/storekeeper/internal/core"
	"github.com/vovakirdan/storekeeper/internal/sokoban/levels"
)

func tutorialPack(t *testing.T) levels.PackFile {
	t.Helper()
	p, err := levels.BuiltinByID("tutorial")
	if err != nil {
		t.Fatalf("BuiltinByID failed: %v", err)
	}
	return p
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func TestLevelSelectStartsOnFirstUnsolved(t *testing.T) {
	store := openStore(t)
	pack := tutorialPack(t)
	if _, err := store.SaveResult(core.LevelResult{PackID: pack.ID, Level: 1, Moves: 7, Pushes: 2}); err != nil {
		t.Fatal(err)
	}

	m := NewLevelSelectModel(store, pack, 80, 24)
	if m.cursor != 1 {
		t.Errorf("expected cursor on level 2, got %d", m.cursor+1)
	}
	if !strings.Contains(m.View(), "best 7 moves, 2 pushes") {
		t.Error("expected best result in view")
	}

	next, cmd := m.Update(runeKey('j'))
	m = next.(LevelSelectModel)
	next, cmd = m.Update(enter)
	m = next.(LevelSelectModel)
	if m.Selected() != 3 {
		t.Errorf("expected level 3, got %d", m.Selected())
	}
	if cmd == nil {
		t.Error("expected quit command after selection")
	}
}

func TestLevelSelectBackAndScroll(t *testing.T) {
	m := NewLevelSelectModel(nil, tutorialPack(t), 80, 9)
	if m.visible() != 1 {
		t.Fatalf("expected 1 visible line, got %d", m.visible())
	}

	for range 3 {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(LevelSelectModel)
	}
	if m.cursor != 3 || m.offset != 3 {
		t.Errorf("expected cursor and offset 3, got %d and %d", m.cursor, m.offset)
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(LevelSelectModel)
	if m.cursor != 3 {
		t.Errorf("expected cursor to stay on last level, got %d", m.cursor)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(LevelSelectModel)
	if !m.WantsBack() || m.Selected() != 0 || cmd == nil {
		t.Error("expected back without a selection")
	}
}

func TestScoreboardShowsPackResults(t *testing.T) {
	store := openStore(t)
	pack := tutorialPack(t)
	for _, r := range []core.LevelResult{
		{PackID: pack.ID, Level: 2, Moves: 30, Pushes: 9},
		{PackID: pack.ID, Level: 2, Moves: 25, Pushes: 9},
		{PackID: pack.ID, Level: 1, Moves: 6, Pushes: 2},
	} {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatal(err)
		}
	}

	other := levels.PackFile{ID: "other"}
	m := NewScoreboardModel(store, []levels.PackFile{pack, other}, 100, 30)

	rows := m.table.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "1" || rows[1][2] != "25" {
		t.Errorf("expected level 1 first and best 25 moves, got %v", rows)
	}
	if rows[0][1] != pack.Pack.Levels[0].Name {
		t.Errorf("expected level name %q, got %q", pack.Pack.Levels[0].Name, rows[0][1])
	}
	if !strings.Contains(m.summary(), "2/4 levels solved  |  3 solves") {
		t.Errorf("unexpected summary %q", m.summary())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if len(m.table.Rows()) != 0 {
		t.Error("expected no rows for other pack")
	}
	if !strings.Contains(m.View(), "No levels solved yet.") {
		t.Error("expected empty message")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.packCursor != 0 {
		t.Errorf("expected first pack, got %d", m.packCursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ScoreboardModel)
	if !m.IsGoingBack() {
		t.Error("expected going back")
	}
}

func TestMenuSelection(t *testing.T) {
	store := openStore(t)
	pack := tutorialPack(t)
	if _, err := store.SaveResult(core.LevelResult{PackID: pack.ID, Level: 3, Moves: 10}); err != nil {
		t.Fatal(err)
	}

	m := NewMenuModel(store, []levels.PackFile{pack}, core.DefaultConfig())
	if !strings.Contains(m.View(), "1/4  solved") {
		t.Errorf("expected solved count in view, got %q", m.View())
	}

	next, _ := m.Update(enter)
	m = next.(MenuModel)
	if m.Selected() == nil || m.Selected().Pack.ID != "tutorial" {
		t.Errorf("expected tutorial selected, got %+v", m.Selected())
	}
}

func TestSessionFlow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	store := openStore(t)
	packs := []levels.PackFile{tutorialPack(t)}
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}

	var m tea.Model = NewSessionModel(store, packs, cfg, log.New(io.Discard))
	send := func(msg tea.Msg) {
		t.Helper()
		m, _ = m.Update(msg)
	}
	screen := func() sessionScreen { return m.(SessionModel).screen }

	send(enter)
	if screen() != screenLevels {
		t.Fatalf("expected level selector, got %v", screen())
	}

	send(enter)
	if screen() != screenGame {
		t.Fatalf("expected game, got %v", screen())
	}
	if !strings.Contains(m.View(), "Level 1/4") {
		t.Error("expected game HUD in view")
	}

	send(tea.KeyMsg{Type: tea.KeyEsc})
	if screen() != screenMenu {
		t.Fatalf("expected menu after back, got %v", screen())
	}

	send(tea.KeyMsg{Type: tea.KeyTab})
	if screen() != screenScores {
		t.Fatalf("expected results board, got %v", screen())
	}
	send(tea.KeyMsg{Type: tea.KeyEsc})
	if screen() != screenMenu {
		t.Fatalf("expected menu, got %v", screen())
	}

	send(runeKey('q'))
	if !m.(SessionModel).quitting {
		t.Error("expected session to quit")
	}
}
