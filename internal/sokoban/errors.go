package sokoban

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGrid is wrapped by every grid validation failure.
	ErrInvalidGrid = errors.New("invalid level grid")

	// ErrLevelIndexOutOfRange is returned when a pack index does not exist.
	ErrLevelIndexOutOfRange = errors.New("level index out of range")
)

// Validation error codes.
const (
	CodeWorkerCount     = "WORKER_COUNT"
	CodeNoGoals         = "NO_GOALS"
	CodeGoalBoxMismatch = "GOAL_BOX_MISMATCH"
)

// ValidationError contains details about a grid validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap lets callers match any validation failure with errors.Is(err, ErrInvalidGrid).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidGrid
}
