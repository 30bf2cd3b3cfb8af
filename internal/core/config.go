package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Levels solved this session
	GameOver bool // Whether the game has ended
	Won      bool // Whether every level has been solved
	Paused   bool // Whether the game is paused
}

// LevelResult is a solved level, reported to the platform for persistence.
type LevelResult struct {
	PackID string
	Level  int // 1-based
	Moves  int
	Pushes int
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Results lists levels solved during this tick.
	Results []LevelResult
}
