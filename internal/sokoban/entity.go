package sokoban

// Kind identifies one of the four scene item variants.
type Kind uint8

const (
	KindWorker Kind = iota
	KindWall
	KindGoal
	KindBox
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindWorker:
		return "Worker"
	case KindWall:
		return "Wall"
	case KindGoal:
		return "Goal"
	case KindBox:
		return "Box"
	default:
		return "Unknown"
	}
}

// Item is a positioned object in a level. The set of implementations is
// closed: *Worker, *Wall, *Goal and *Box. Callers switch on Kind.
type Item interface {
	Kind() Kind
	// Position is real-valued while the item is animating.
	Position() (row, col float64)
	// Cell is the cell the item occupies once its current move settles.
	Cell() (row, col int)
	sceneItem()
}

// fixed is the position of an item that never moves.
type fixed struct {
	row int
	col int
}

func (f fixed) Position() (row, col float64) {
	return float64(f.row), float64(f.col)
}

func (f fixed) Cell() (row, col int) {
	return f.row, f.col
}

func (fixed) sceneItem() {}

// Wall blocks the worker and boxes.
type Wall struct{ fixed }

// NewWall creates a wall at the given cell.
func NewWall(row, col int) *Wall {
	return &Wall{fixed{row: row, col: col}}
}

// Kind returns KindWall.
func (*Wall) Kind() Kind { return KindWall }

// Goal is a target cell for a box. It never blocks.
type Goal struct{ fixed }

// NewGoal creates a goal at the given cell.
func NewGoal(row, col int) *Goal {
	return &Goal{fixed{row: row, col: col}}
}

// Kind returns KindGoal.
func (*Goal) Kind() Kind { return KindGoal }

// Movable is the animation and bookkeeping state shared by the worker and
// boxes. A move is split into StepsPerMove animation steps; the final step
// snaps the position onto the target so no rounding error accumulates.
type Movable struct {
	Row    float64
	Column float64

	TargetRow    int
	TargetColumn int

	StepsPerMove int
	Step         int // animation steps taken in the current move
	Moves        int

	LastHorizontal Direction
	LastVertical   Direction

	originRow int
	originCol int
}

func newMovable(row, col, stepsPerMove int) Movable {
	m := Movable{StepsPerMove: stepsPerMove}
	m.Reset(row, col)
	return m
}

// Position returns the current, possibly fractional, position.
func (m *Movable) Position() (row, col float64) {
	return m.Row, m.Column
}

// Cell returns the destination cell of the move in flight, which is the
// current cell when at rest.
func (m *Movable) Cell() (row, col int) {
	return m.TargetRow, m.TargetColumn
}

func (*Movable) sceneItem() {}

// StepSize is the fraction of a cell covered per animation step.
func (m *Movable) StepSize() float64 {
	return 1 / float64(m.StepsPerMove)
}

// IsMoving reports whether the item has not yet reached its target.
func (m *Movable) IsMoving() bool {
	return m.Row != float64(m.TargetRow) || m.Column != float64(m.TargetColumn)
}

// Reset places the item at rest on a cell and clears its counters.
func (m *Movable) Reset(row, col int) {
	m.Row, m.Column = float64(row), float64(col)
	m.TargetRow, m.TargetColumn = row, col
	m.originRow, m.originCol = row, col
	m.Step = 0
	m.Moves = 0
	m.LastHorizontal = DirNone
	m.LastVertical = DirNone
}

// Move starts a one-cell move in dir and counts it.
func (m *Movable) Move(dir Direction) {
	dRow, dCol := dir.Delta()
	m.originRow, m.originCol = m.TargetRow, m.TargetColumn
	m.TargetRow += dRow
	m.TargetColumn += dCol
	m.Step = 0
	m.Moves++
	m.face(dir)
}

// Animate advances the current move by one step and reports whether the
// item is at rest afterwards.
func (m *Movable) Animate() bool {
	if !m.IsMoving() {
		return true
	}
	m.Step++
	if m.Step >= m.StepsPerMove {
		m.Row, m.Column = float64(m.TargetRow), float64(m.TargetColumn)
		m.Step = 0
		return true
	}
	progress := float64(m.Step) / float64(m.StepsPerMove)
	m.Row = float64(m.originRow) + float64(m.TargetRow-m.originRow)*progress
	m.Column = float64(m.originCol) + float64(m.TargetColumn-m.originCol)*progress
	return false
}

// Undo reverts a settled move in dir instantly and uncounts it.
func (m *Movable) Undo(dir Direction) {
	dRow, dCol := dir.Delta()
	m.TargetRow -= dRow
	m.TargetColumn -= dCol
	m.Row, m.Column = float64(m.TargetRow), float64(m.TargetColumn)
	m.originRow, m.originCol = m.TargetRow, m.TargetColumn
	m.Step = 0
	if m.Moves > 0 {
		m.Moves--
	}
}

func (m *Movable) face(dir Direction) {
	switch {
	case dir.IsHorizontal():
		m.LastHorizontal = dir
	case dir.IsVertical():
		m.LastVertical = dir
	}
}

// Worker is the player-controlled storekeeper.
type Worker struct {
	Movable
}

// NewWorker creates a worker at rest on a cell.
func NewWorker(row, col, stepsPerMove int) *Worker {
	return &Worker{Movable: newMovable(row, col, stepsPerMove)}
}

// Kind returns KindWorker.
func (*Worker) Kind() Kind { return KindWorker }

// Box is pushed by the worker.
type Box struct {
	Movable

	// GoalSource is whether the box stood on a goal before its current move.
	GoalSource bool
	// GoalTarget is whether the box will stand on a goal after its current move.
	GoalTarget bool
}

// NewBox creates a box at rest on a cell.
func NewBox(row, col, stepsPerMove int, onGoal bool) *Box {
	return &Box{
		Movable:    newMovable(row, col, stepsPerMove),
		GoalSource: onGoal,
	}
}

// Kind returns KindBox.
func (*Box) Kind() Kind { return KindBox }

// Compile-time checks that the four variants satisfy Item.
var (
	_ Item = (*Worker)(nil)
	_ Item = (*Wall)(nil)
	_ Item = (*Goal)(nil)
	_ Item = (*Box)(nil)
)
