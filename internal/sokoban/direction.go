package sokoban

import "strings"

// Direction is the commanded movement direction.
type Direction uint8

const (
	DirNone Direction = iota
	DirLeft
	DirRight
	DirUp
	DirDown
)

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case DirNone:
		return "None"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	default:
		return "Unknown"
	}
}

// Delta returns the unit (row, column) shift for one step in this direction.
// Up decreases the row (screen coordinates).
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	default:
		return 0, 0
	}
}

// IsHorizontal reports whether d is Left or Right.
func (d Direction) IsHorizontal() bool {
	return d == DirLeft || d == DirRight
}

// IsVertical reports whether d is Up or Down.
func (d Direction) IsVertical() bool {
	return d == DirUp || d == DirDown
}

// Opposite returns the opposite direction. DirNone is its own opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	default:
		return d
	}
}

// ParseDirection parses a direction name (case-insensitive) or one of the
// LURD solution letters.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(s) {
	case "", "none":
		return DirNone, true
	case "left", "l":
		return DirLeft, true
	case "right", "r":
		return DirRight, true
	case "up", "u":
		return DirUp, true
	case "down", "d":
		return DirDown, true
	default:
		return DirNone, false
	}
}
