package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/storekeeper/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"wasd left", runeKey('a'), core.ActionLeft, false},
		{"vim down", runeKey('j'), core.ActionDown, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"undo u", runeKey('u'), core.ActionUndo, false},
		{"undo backspace", tea.KeyMsg{Type: tea.KeyBackspace}, core.ActionUndo, false},
		{"restart", runeKey('r'), core.ActionRestart, false},
		{"next level", runeKey(']'), core.ActionNextLevel, false},
		{"prev level", runeKey('['), core.ActionPrevLevel, false},
		{"pause", runeKey('p'), core.ActionPause, false},
		{"confirm", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"quit", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('x'), core.ActionNone, false},
	}

	km := NewKeyMapper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action {
				t.Errorf("expected %v, got %v", tt.action, action)
			}
			if quit != tt.quit {
				t.Errorf("expected quit %v, got %v", tt.quit, quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey('l'), &frame) {
		t.Error("expected l not to quit")
	}
	if !frame.Has(core.ActionRight) {
		t.Error("expected right action in frame")
	}

	km.MapKeyToFrame(runeKey('x'), &frame)
	frame.Clear()
	if !frame.Empty() {
		t.Error("expected empty frame after clear")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.msg.String(), tt.want, got)
		}
	}
}
