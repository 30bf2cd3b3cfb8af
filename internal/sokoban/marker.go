// Package sokoban implements the Storekeeper level simulation engine.
// It is UI-agnostic and deterministic: a Level advances by exactly one
// discrete step per Move call and reports what happened through events.
package sokoban

// Marker is a single character cell of a level grid.
type Marker byte

// Grid markers, as used by the SOK and JSON level formats.
const (
	MarkerWorker       Marker = '@'
	MarkerWorkerOnGoal Marker = '+'
	MarkerWall         Marker = '#'
	MarkerGoal         Marker = '.'
	MarkerBox          Marker = '$'
	MarkerBoxOnGoal    Marker = '*'
	MarkerSpace        Marker = ' '
)

// Valid reports whether m is one of the seven known markers.
func (m Marker) Valid() bool {
	switch m {
	case MarkerWorker, MarkerWorkerOnGoal, MarkerWall, MarkerGoal,
		MarkerBox, MarkerBoxOnGoal, MarkerSpace:
		return true
	default:
		return false
	}
}

// HasWorker reports whether the cell holds the worker.
func (m Marker) HasWorker() bool {
	return m == MarkerWorker || m == MarkerWorkerOnGoal
}

// HasBox reports whether the cell holds a box.
func (m Marker) HasBox() bool {
	return m == MarkerBox || m == MarkerBoxOnGoal
}

// HasGoal reports whether the cell is a goal, occupied or not.
func (m Marker) HasGoal() bool {
	return m == MarkerGoal || m == MarkerWorkerOnGoal || m == MarkerBoxOnGoal
}

// IsWall reports whether the cell is a wall.
func (m Marker) IsWall() bool {
	return m == MarkerWall
}

// String returns the marker as a one-character string.
func (m Marker) String() string {
	return string(rune(m))
}

// ComposeMarker builds the marker for a cell from what occupies it.
// A wall hides everything else; the worker wins over a box.
func ComposeMarker(worker, box, wall, goal bool) Marker {
	switch {
	case wall:
		return MarkerWall
	case worker && goal:
		return MarkerWorkerOnGoal
	case worker:
		return MarkerWorker
	case box && goal:
		return MarkerBoxOnGoal
	case box:
		return MarkerBox
	case goal:
		return MarkerGoal
	default:
		return MarkerSpace
	}
}
