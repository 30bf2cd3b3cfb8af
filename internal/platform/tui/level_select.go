package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/storekeeper/internal/core"
	"github.com/vovakirdan/storekeeper/internal/sokoban/levels"
	"github.com/vovakirdan/storekeeper/internal/storage"
)

// levelLine is one row of the level selector.
type levelLine struct {
	name   string
	best   *storage.ResultEntry // nil when unsolved
	number int                  // 1-based
}

// LevelSelectModel lets users choose the starting level of a pack.
type LevelSelectModel struct {
	pack      levels.PackFile
	lines     []levelLine
	cursor    int
	offset    int // First visible line
	width     int
	height    int
	keyMapper *KeyMapper
	level     int // Chosen 1-based level, 0 while choosing
	quitting  bool
	back      bool
}

// NewLevelSelectModel creates a level selector for a pack. The cursor
// starts on the first level without a stored result.
func NewLevelSelectModel(store *storage.Store, pack levels.PackFile, width, height int) LevelSelectModel {
	lines := make([]levelLine, len(pack.Pack.Levels))
	for i, lvl := range pack.Pack.Levels {
		lines[i] = levelLine{name: lvl.Name, number: i + 1}
	}
	if store != nil {
		if best, err := store.PackResults(pack.ID); err == nil {
			for _, e := range best {
				if e.Level >= 1 && e.Level <= len(lines) {
					lines[e.Level-1].best = &e
				}
			}
		}
	}

	m := LevelSelectModel{
		pack:      pack,
		lines:     lines,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
	for i, l := range lines {
		if l.best == nil {
			m.cursor = i
			break
		}
	}
	m.scroll()
	return m
}

// Init initializes the model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scroll()
		return m, nil
	}
	return m, nil
}

func (m LevelSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.lines)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.lines) > 0 {
			m.level = m.cursor + 1
			return m, tea.Quit
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	m.scroll()
	return m, nil
}

// visible returns how many level lines fit under the header and footer.
func (m LevelSelectModel) visible() int {
	return max(m.height-8, 1)
}

// scroll keeps the cursor inside the visible window.
func (m *LevelSelectModel) scroll() {
	n := m.visible()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+n {
		m.offset = m.cursor - n + 1
	}
}

// View renders the level list.
func (m LevelSelectModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(strings.ToUpper(m.pack.Title()), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select level:", m.width))
	b.WriteString("\n\n")

	end := min(m.offset+m.visible(), len(m.lines))
	for i := m.offset; i < end; i++ {
		l := m.lines[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		name := l.name
		if name == "" {
			name = fmt.Sprintf("Level %d", l.number)
		}
		status := "-"
		if l.best != nil {
			status = fmt.Sprintf("best %d moves, %d pushes", l.best.Moves, l.best.Pushes)
		}

		line := fmt.Sprintf("%s%3d. %-20s %s", cursor, l.number, name, status)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Play  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen 1-based level, or 0 if none was chosen.
func (m LevelSelectModel) Selected() int {
	return m.level
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector runs the level selector. It returns the chosen 1-based
// level, or 0 when the user went back; quit is set when the user asked to
// exit entirely.
func RunLevelSelector(store *storage.Store, pack levels.PackFile, cfg core.RuntimeConfig) (level int, quit bool, err error) {
	model := NewLevelSelectModel(store, pack, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return 0, true, err
	}

	m, ok := finalModel.(LevelSelectModel)
	if !ok {
		return 0, true, nil
	}

	return m.Selected(), m.IsQuitting(), nil
}
