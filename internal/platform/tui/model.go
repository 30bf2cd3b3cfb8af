package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/storekeeper/internal/core"
	"github.com/vovakirdan/storekeeper/internal/registry"
	"github.com/vovakirdan/storekeeper/internal/sokoban/formats"
	"github.com/vovakirdan/storekeeper/internal/storage"
)

// noticeTicks is how long a status notice stays on screen.
const noticeTicks = 120

// Reloader is implemented by games whose pack can be replaced in place.
type Reloader interface {
	Reload(p formats.Pack) error
}

// ReloadMsg carries a re-read pack, or the error that prevented reading it.
type ReloadMsg struct {
	Pack formats.Pack
	Err  error
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithReloads makes the model apply packs received on ch to a Reloader game.
func WithReloads(ch <-chan ReloadMsg) ModelOption {
	return func(m *Model) {
		m.reloads = ch
	}
}

// WithLogger sets the logger used for storage and reload errors.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) {
		m.logger = l
	}
}

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	gameState  core.GameState
	reloads    <-chan ReloadMsg
	logger     *log.Logger

	notice      string
	noticeTicks int

	quitting   bool
	backToMenu bool
	standalone bool // Back ends the program instead of returning to a menu
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tea.Batch(tickCmd(m.config.TickRate), waitForReload(m.reloads))
}

// waitForReload blocks on the next reload. A nil channel yields no command.
func waitForReload(ch <-chan ReloadMsg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case ReloadMsg:
		return m.handleReload(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleResize processes window resize events. Games that implement
// registry.Resizer keep their progress; others are reset.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.saveResults(result.Results)

	if m.noticeTicks > 0 {
		m.noticeTicks--
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveResults records solved levels. Failures are logged; play continues.
func (m *Model) saveResults(results []core.LevelResult) {
	for _, r := range results {
		m.logger.Info("level solved", "pack", r.PackID, "level", r.Level, "moves", r.Moves, "pushes", r.Pushes)
		if m.store == nil {
			continue
		}
		if _, err := m.store.SaveResult(r); err != nil {
			m.logger.Error("could not save result", "error", err)
		}
	}
}

// handleReload applies a re-read pack and waits for the next one.
func (m Model) handleReload(msg ReloadMsg) (tea.Model, tea.Cmd) {
	next := waitForReload(m.reloads)

	if msg.Err != nil {
		m.logger.Warn("reload failed", "error", msg.Err)
		m.setNotice("Reload failed: " + msg.Err.Error())
		return m, next
	}

	r, ok := m.game.(Reloader)
	if !ok {
		return m, next
	}
	if err := r.Reload(msg.Pack); err != nil {
		m.logger.Warn("reload rejected", "error", err)
		m.setNotice("Reload failed: " + err.Error())
		return m, next
	}

	m.logger.Info("pack reloaded", "game", m.game.ID(), "levels", len(msg.Pack.Levels))
	m.gameState = m.game.State()
	m.setNotice(fmt.Sprintf("Reloaded %d levels", len(msg.Pack.Levels)))
	return m, next
}

func (m *Model) setNotice(s string) {
	m.notice = s
	m.noticeTicks = noticeTicks
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".storekeeper", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.setNotice("Saved " + path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	if m.noticeTicks > 0 {
		y := m.screen.Height() - 1
		m.screen.DrawHLine(0, y, m.screen.Width(), ' ', core.ColorDefault)
		m.screen.DrawTextCenteredColor(y, m.notice, core.ColorBrightYellow)
	}

	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program for one game and blocks until the
// player leaves it. quit reports whether the player asked to exit entirely
// rather than go back.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) (quit bool, err error) {
	model := NewModel(game, store, cfg, opts...)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return true, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return true, nil
	}
	return m.IsQuitting(), nil
}
