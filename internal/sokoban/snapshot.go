package sokoban

// MovableSnapshot is the copied state of a worker or box.
type MovableSnapshot struct {
	Row          float64
	Column       float64
	TargetRow    int
	TargetColumn int
	Step         int
	Moves        int
	GoalSource   bool
	GoalTarget   bool
}

// Snapshot is a value copy of a level's simulation state. Two levels fed
// the same command sequence produce equal snapshots.
type Snapshot struct {
	State               LevelState
	Direction           Direction
	Worker              MovableSnapshot
	Boxes               []MovableSnapshot
	BoxesOverGoalsCount int
	MovesCount          int
	PushesCount         int
	Items               []string
}

func snapshotOf(m *Movable) MovableSnapshot {
	return MovableSnapshot{
		Row:          m.Row,
		Column:       m.Column,
		TargetRow:    m.TargetRow,
		TargetColumn: m.TargetColumn,
		Step:         m.Step,
		Moves:        m.Moves,
	}
}

// Snapshot returns a copy of the current simulation state.
func (l *Level) Snapshot() Snapshot {
	s := Snapshot{
		State:               l.State(),
		Direction:           l.direction,
		Worker:              snapshotOf(&l.worker.Movable),
		Boxes:               make([]MovableSnapshot, len(l.boxes)),
		BoxesOverGoalsCount: l.BoxesOverGoalsCount(),
		MovesCount:          l.MovesCount(),
		PushesCount:         l.PushesCount(),
		Items:               l.Items(),
	}
	for i, b := range l.boxes {
		bs := snapshotOf(&b.Movable)
		bs.GoalSource = b.GoalSource
		bs.GoalTarget = b.GoalTarget
		s.Boxes[i] = bs
	}
	return s
}

// Equal reports whether two snapshots describe the same state.
func (s Snapshot) Equal(other Snapshot) bool {
	if s.State != other.State ||
		s.Direction != other.Direction ||
		s.Worker != other.Worker ||
		s.BoxesOverGoalsCount != other.BoxesOverGoalsCount ||
		s.MovesCount != other.MovesCount ||
		s.PushesCount != other.PushesCount ||
		len(s.Boxes) != len(other.Boxes) ||
		len(s.Items) != len(other.Items) {
		return false
	}
	for i := range s.Boxes {
		if s.Boxes[i] != other.Boxes[i] {
			return false
		}
	}
	for i := range s.Items {
		if s.Items[i] != other.Items[i] {
			return false
		}
	}
	return true
}
