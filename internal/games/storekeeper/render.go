package storekeeper

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/storekeeper/internal/config"
	"github.com/vovakirdan/storekeeper/internal/core"
	"github.com/vovakirdan/storekeeper/internal/sokoban"
)

const hudHeight = 3 // Title, level name, counters

// theme holds the resolved color of each board element.
type theme struct {
	wall      core.Color
	goal      core.Color
	box       core.Color
	boxOnGoal core.Color
	worker    core.Color
	hud       core.Color
}

// newTheme resolves color names, keeping the default for unknown ones.
func newTheme(tc config.ThemeConfig) theme {
	def := config.DefaultStorekeeperConfig().Display.Theme
	pick := func(name, fallback string) core.Color {
		if c, ok := core.ParseColor(name); ok {
			return c
		}
		c, _ := core.ParseColor(fallback)
		return c
	}
	return theme{
		wall:      pick(tc.Wall, def.Wall),
		goal:      pick(tc.Goal, def.Goal),
		box:       pick(tc.Box, def.Box),
		boxOnGoal: pick(tc.BoxOnGoal, def.BoxOnGoal),
		worker:    pick(tc.Worker, def.Worker),
		hud:       pick(tc.HUD, def.HUD),
	}
}

// glyphs for one-column and two-column cells.
var (
	narrowGlyphs = map[sokoban.Kind]string{
		sokoban.KindWall:   "#",
		sokoban.KindGoal:   ".",
		sokoban.KindBox:    "$",
		sokoban.KindWorker: "@",
	}
	wideGlyphs = map[sokoban.Kind]string{
		sokoban.KindWall:   "██",
		sokoban.KindGoal:   "··",
		sokoban.KindBox:    "[]",
		sokoban.KindWorker: "()",
	}
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.loadErr != nil {
		g.renderError(dst)
		return
	}

	level := g.level()
	if level == nil {
		return
	}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	cellW := g.cellWidth(level)
	boardW := level.Columns() * cellW
	boardH := level.Rows()

	availH := g.screenH - hudHeight
	if g.cfg.Display.ShowHelp {
		availH--
	}
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + (availH-boardH)/2

	g.renderHUD(dst, level)
	g.renderBoard(dst, level, boardX, boardY, cellW)
	if g.cfg.Display.ShowHelp {
		dst.DrawTextCenteredColor(g.screenH-1, g.Controls(), core.ColorGray)
	}

	g.renderOverlays(dst, level, boardX+boardW/2, boardY+boardH/2)
}

// cellWidth returns 2 when wide cells are enabled and the board fits.
func (g *Game) cellWidth(level *sokoban.Level) int {
	if g.cfg.Display.WideCells && level.Columns()*2+2 <= g.screenW {
		return 2
	}
	return 1
}

// renderHUD draws the pack title, level name and counters.
func (g *Game) renderHUD(dst *core.Screen, level *sokoban.Level) {
	index, _ := g.pack.Index()
	title := fmt.Sprintf("%s  Level %d/%d", g.Title(), index+1, g.pack.Len())
	dst.DrawTextCenteredColor(0, title, g.theme.hud)

	if name := level.Name(); name != "" {
		dst.DrawTextCentered(1, name)
	}

	counters := fmt.Sprintf("Moves: %d  Pushes: %d  Boxes: %d/%d",
		g.lastMoves, g.lastPush, level.BoxesOverGoalsCount(), level.BoxesCount())
	dst.DrawTextCentered(2, counters)
}

// renderBoard draws goals, walls, boxes and the worker, in that order, so
// movables cover the goals they stand on.
func (g *Game) renderBoard(dst *core.Screen, level *sokoban.Level, boardX, boardY, cellW int) {
	glyphs := narrowGlyphs
	if cellW == 2 {
		glyphs = wideGlyphs
	}

	draw := func(item sokoban.Item, glyph string, c core.Color) {
		row, col := item.Position()
		x := boardX + int(math.Round(col*float64(cellW)))
		y := boardY + int(math.Round(row))
		dst.DrawTextColor(x, y, glyph, c)
	}

	for _, goal := range level.Goals() {
		draw(goal, glyphs[sokoban.KindGoal], g.theme.goal)
	}
	for _, wall := range level.Walls() {
		draw(wall, glyphs[sokoban.KindWall], g.theme.wall)
	}
	for _, box := range level.Boxes() {
		glyph, c := glyphs[sokoban.KindBox], g.theme.box
		if boxOnGoal(level, box) {
			c = g.theme.boxOnGoal
			if cellW == 1 {
				glyph = string(sokoban.MarkerBoxOnGoal)
			}
		}
		draw(box, glyph, c)
	}

	worker := level.Worker()
	glyph := glyphs[sokoban.KindWorker]
	if cellW == 1 && level.IsGoal(worker.Cell()) && !worker.IsMoving() {
		glyph = string(sokoban.MarkerWorkerOnGoal)
	}
	draw(worker, glyph, g.theme.worker)
}

// boxOnGoal reports whether a box is drawn as placed. A moving box keeps
// the look of the cell it is leaving.
func boxOnGoal(level *sokoban.Level, box *sokoban.Box) bool {
	if box.IsMoving() {
		return box.GoalSource
	}
	return level.IsGoal(box.Cell())
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderError shows why the pack could not be loaded.
func (g *Game) renderError(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCenteredColor(y-1, "Cannot load pack", core.ColorBrightRed)
	dst.DrawTextCentered(y, g.loadErr.Error())
	dst.DrawTextCentered(y+2, "Press Esc to go back")
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, level *sokoban.Level, centerX, centerY int) {
	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.won {
		solved := fmt.Sprintf("%d levels solved", len(g.solved))
		g.drawOverlay(dst, centerX, centerY, "PACK COMPLETE!", solved, "Press R to play again")
		return
	}

	if g.levelCleared {
		index, _ := g.pack.Index()
		head := fmt.Sprintf("Level %d solved!", index+1)
		stats := fmt.Sprintf("Moves: %d  Pushes: %d", level.MovesCount(), level.PushesCount())
		hint := "Press Enter to continue"
		if g.cfg.Gameplay.AutoAdvance && g.clearTicks > 0 {
			hint = fmt.Sprintf("Next level in %ds", g.secondsLeft())
		}
		g.drawOverlay(dst, centerX, centerY, head, stats, hint)
	}
}

// secondsLeft converts the clear countdown to whole seconds, rounded up.
func (g *Game) secondsLeft() int {
	rate := g.cfg.Display.TickRate
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	return (g.clearTicks + rate - 1) / rate
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, g.theme.hud)

	for i, line := range lines {
		x := centerX - utf8.RuneCountInString(line)/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | U: Undo | R: Restart | [ ]: Level | P: Pause | Esc: Menu"
}
