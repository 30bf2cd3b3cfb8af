package sokoban

// DefaultStepsPerMove is the number of animation ticks a single move takes.
const DefaultStepsPerMove = 8

// LevelState is the state of the level simulation.
type LevelState uint8

const (
	StateIdle LevelState = iota
	StateAnimating
	StateCompleted
)

// String returns the string representation of a state.
func (s LevelState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnimating:
		return "animating"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// LevelOption configures a Level at construction.
type LevelOption func(*Level)

// WithStepsPerMove sets how many ticks a move is animated over.
// Values below 1 are treated as 1 (moves settle in the tick they start).
func WithStepsPerMove(n int) LevelOption {
	return func(l *Level) {
		if n < 1 {
			n = 1
		}
		l.stepsPerMove = n
	}
}

// WithListener subscribes fn to the level's events.
func WithListener(fn Listener) LevelOption {
	return func(l *Level) {
		l.events.Subscribe(fn)
	}
}

// WithName sets the level name.
func WithName(name string) LevelOption {
	return func(l *Level) {
		l.name = name
	}
}

// WithDescription sets the level description.
func WithDescription(description string) LevelOption {
	return func(l *Level) {
		l.description = description
	}
}

type cell struct {
	row int
	col int
}

// moveRecord is one committed move kept for Undo.
type moveRecord struct {
	dir Direction
	box *Box
}

// Level owns the entities derived from a grid and advances them one tick
// per Move call. It is not safe for concurrent use; the driver calls Move
// at most once per tick.
type Level struct {
	grid         *Grid
	name         string
	description  string
	stepsPerMove int
	events       Emitter

	worker *Worker
	walls  []*Wall
	goals  []*Goal
	boxes  []*Box

	wallCells map[cell]bool
	goalCells map[cell]bool

	direction Direction
	animating bool
	animated  []Item
	lastBox   *Box // box pushed by the latest move, until its goal flags are committed

	boxesOverGoals      int
	boxesOverGoalsValid bool
	completedFired      bool

	history []moveRecord
}

// NewLevel creates a level from a grid. The grid must validate.
func NewLevel(grid *Grid, opts ...LevelOption) (*Level, error) {
	if err := grid.Check(); err != nil {
		return nil, err
	}

	l := &Level{
		grid:         grid,
		stepsPerMove: DefaultStepsPerMove,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.Reset()
	return l, nil
}

// NewLevelFromRows creates a level from raw row strings.
func NewLevelFromRows(rows []string, opts ...LevelOption) (*Level, error) {
	return NewLevel(NewGrid(rows), opts...)
}

// Reset re-derives every entity from the grid and clears all transient
// simulation state.
func (l *Level) Reset() {
	l.worker = nil
	l.walls = l.walls[:0]
	l.goals = l.goals[:0]
	l.boxes = l.boxes[:0]
	l.wallCells = make(map[cell]bool)
	l.goalCells = make(map[cell]bool)

	for row := range l.grid.Rows() {
		for col := range l.grid.Columns() {
			m := l.grid.At(row, col)
			if m.IsWall() {
				l.walls = append(l.walls, NewWall(row, col))
				l.wallCells[cell{row, col}] = true
			}
			if m.HasGoal() {
				l.goals = append(l.goals, NewGoal(row, col))
				l.goalCells[cell{row, col}] = true
			}
			if m.HasBox() {
				l.boxes = append(l.boxes, NewBox(row, col, l.stepsPerMove, m.HasGoal()))
			}
			if m.HasWorker() {
				l.worker = NewWorker(row, col, l.stepsPerMove)
			}
		}
	}

	l.direction = DirNone
	l.animating = false
	l.animated = nil
	l.lastBox = nil
	l.boxesOverGoalsValid = false
	l.completedFired = false
	l.history = nil
}

// SetDirection sets the commanded direction for the next idle tick.
// A move already in flight is not affected.
func (l *Level) SetDirection(d Direction) {
	l.direction = d
}

// Direction returns the commanded direction.
func (l *Level) Direction() Direction {
	return l.direction
}

// Move advances the simulation by one tick and reports whether a new move
// was started. Events are delivered before it returns.
func (l *Level) Move() bool {
	if l.animating {
		l.animate()
		return false
	}

	if l.IsCompleted() {
		if !l.completedFired {
			l.completedFired = true
			l.events.Emit(CompletedEvent{})
		}
		return false
	}

	// Commit the goal transition of the previous push.
	if box := l.lastBox; box != nil {
		box.GoalSource = box.GoalTarget
		box.GoalTarget = false
		l.lastBox = nil
	}

	dir := l.direction
	if dir == DirNone {
		l.animated = l.animated[:0]
		return false
	}

	box, blocked := l.detectCollision(dir)
	if blocked {
		l.animated = l.animated[:0]
		if dir.IsHorizontal() {
			l.worker.LastHorizontal = dir
		}
		return false
	}

	l.commit(dir, box)
	return true
}

// detectCollision checks the worker's destination and, when a box sits
// there, the box's destination. It returns the box to push, if any.
func (l *Level) detectCollision(dir Direction) (*Box, bool) {
	dRow, dCol := dir.Delta()
	row, col := l.worker.Cell()
	row, col = row+dRow, col+dCol

	if !l.grid.InBounds(row, col) || l.wallCells[cell{row, col}] {
		return nil, true
	}

	box := l.boxAt(row, col)
	if box == nil {
		return nil, false
	}

	nextRow, nextCol := row+dRow, col+dCol
	if !l.grid.InBounds(nextRow, nextCol) ||
		l.wallCells[cell{nextRow, nextCol}] ||
		l.boxAt(nextRow, nextCol) != nil {
		return nil, true
	}

	box.GoalTarget = l.goalCells[cell{nextRow, nextCol}]
	return box, false
}

func (l *Level) commit(dir Direction, box *Box) {
	l.animated = append(l.animated[:0], l.worker)
	l.worker.Move(dir)

	if box != nil {
		if l.goalCells[cellOf(box)] {
			box.GoalSource = true
		}
		box.Move(dir)
		l.animated = append(l.animated, box)
		l.lastBox = box
	}

	l.history = append(l.history, moveRecord{dir: dir, box: box})
	l.animating = true
	l.events.Emit(MoveStartEvent{
		MovesCount:  l.MovesCount(),
		PushesCount: l.PushesCount(),
	})

	// The first step is taken right away so no frame of a move is a no-op.
	l.animate()
}

// animate steps every animated item; once all have settled the move ends.
func (l *Level) animate() {
	settled := true
	for _, item := range l.animated {
		if !movableOf(item).Animate() {
			settled = false
		}
	}
	if !settled {
		return
	}

	l.animating = false
	for _, item := range l.animated {
		if box, ok := item.(*Box); ok && box.GoalSource != box.GoalTarget {
			l.boxesOverGoalsValid = false
		}
	}
	l.events.Emit(MoveEndEvent{
		BoxesCount:          len(l.boxes),
		BoxesOverGoalsCount: l.BoxesOverGoalsCount(),
	})
}

func movableOf(item Item) *Movable {
	switch it := item.(type) {
	case *Worker:
		return &it.Movable
	case *Box:
		return &it.Movable
	default:
		panic("sokoban: item of kind " + item.Kind().String() + " cannot move")
	}
}

func cellOf(item Item) cell {
	row, col := item.Cell()
	return cell{row, col}
}

func (l *Level) boxAt(row, col int) *Box {
	for _, b := range l.boxes {
		if r, c := b.Cell(); r == row && c == col {
			return b
		}
	}
	return nil
}

// Undo takes back the latest move. It only works while the level is at
// rest and returns false when there is nothing to undo.
func (l *Level) Undo() bool {
	if l.animating || len(l.history) == 0 {
		return false
	}

	rec := l.history[len(l.history)-1]
	l.history = l.history[:len(l.history)-1]

	l.worker.Undo(rec.dir)
	if rec.box != nil {
		rec.box.Undo(rec.dir)
		rec.box.GoalSource = l.goalCells[cellOf(rec.box)]
		rec.box.GoalTarget = false
		l.boxesOverGoalsValid = false
	}
	l.lastBox = nil
	l.animated = l.animated[:0]

	if !l.IsCompleted() {
		l.completedFired = false
	}

	l.events.Emit(UndoEvent{
		MovesCount:  l.MovesCount(),
		PushesCount: l.PushesCount(),
	})
	return true
}

// CanUndo reports whether Undo would take back a move.
func (l *Level) CanUndo() bool {
	return !l.animating && len(l.history) > 0
}

// BoxesOverGoalsCount returns how many boxes stand on goals. The count is
// cached until a move changes a box's goal status.
func (l *Level) BoxesOverGoalsCount() int {
	if !l.boxesOverGoalsValid {
		n := 0
		for _, b := range l.boxes {
			if l.goalCells[cellOf(b)] {
				n++
			}
		}
		l.boxesOverGoals = n
		l.boxesOverGoalsValid = true
	}
	return l.boxesOverGoals
}

// BoxesCount returns the number of boxes.
func (l *Level) BoxesCount() int {
	return len(l.boxes)
}

// IsCompleted reports whether every box stands on a goal.
func (l *Level) IsCompleted() bool {
	return l.BoxesOverGoalsCount() == len(l.boxes)
}

// IsAnimating reports whether a move is in flight.
func (l *Level) IsAnimating() bool {
	return l.animating
}

// State returns the state machine state.
func (l *Level) State() LevelState {
	switch {
	case l.animating:
		return StateAnimating
	case l.IsCompleted():
		return StateCompleted
	default:
		return StateIdle
	}
}

// MovesCount returns the number of worker moves.
func (l *Level) MovesCount() int {
	return l.worker.Moves
}

// PushesCount returns the total number of box moves.
func (l *Level) PushesCount() int {
	n := 0
	for _, b := range l.boxes {
		n += b.Moves
	}
	return n
}

// Subscribe registers a listener for this level's events.
func (l *Level) Subscribe(fn Listener) (unsubscribe func()) {
	return l.events.Subscribe(fn)
}

// Worker returns the worker. The entity accessors return live references
// that must be treated as read-only and are valid until the next Move.
func (l *Level) Worker() *Worker { return l.worker }

// Boxes returns the boxes in grid scan order.
func (l *Level) Boxes() []*Box { return l.boxes }

// Walls returns the walls in grid scan order.
func (l *Level) Walls() []*Wall { return l.walls }

// Goals returns the goals in grid scan order.
func (l *Level) Goals() []*Goal { return l.goals }

// AnimatedItems returns the items moved by the current or latest move.
func (l *Level) AnimatedItems() []Item { return l.animated }

// Grid returns the grid the level was built from.
func (l *Level) Grid() *Grid { return l.grid }

// Rows returns the grid height.
func (l *Level) Rows() int { return l.grid.Rows() }

// Columns returns the grid width.
func (l *Level) Columns() int { return l.grid.Columns() }

// Name returns the level name.
func (l *Level) Name() string { return l.name }

// Description returns the level description.
func (l *Level) Description() string { return l.description }

// StepsPerMove returns the configured animation length of a move.
func (l *Level) StepsPerMove() int { return l.stepsPerMove }

// IsGoal reports whether the cell is a goal.
func (l *Level) IsGoal(row, col int) bool {
	return l.goalCells[cell{row, col}]
}

// Items returns the current layout as marker rows, using each movable's
// settled cell. The result parses back into an equivalent level.
func (l *Level) Items() []string {
	g := l.grid.Clone()
	for row := range g.Rows() {
		for col := range g.Columns() {
			m := g.At(row, col)
			g.Insert(row, col, ComposeMarker(false, false, m.IsWall(), m.HasGoal()))
		}
	}
	for _, b := range l.boxes {
		row, col := b.Cell()
		g.Insert(row, col, ComposeMarker(false, true, false, l.IsGoal(row, col)))
	}
	row, col := l.worker.Cell()
	g.Insert(row, col, ComposeMarker(true, false, false, l.IsGoal(row, col)))
	return g.Items()
}
