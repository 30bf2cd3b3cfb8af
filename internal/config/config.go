// Package config provides YAML-based configuration loading and speed
// presets for the storekeeper game.
package config

// StorekeeperConfig contains all configuration for the storekeeper game.
type StorekeeperConfig struct {
	Engine   EngineConfig   `yaml:"engine"`
	Display  DisplayConfig  `yaml:"display"`
	Packs    PacksConfig    `yaml:"packs"`
	Gameplay GameplayConfig `yaml:"gameplay"`
}

// EngineConfig defines simulation parameters.
type EngineConfig struct {
	StepsPerMove int `yaml:"steps_per_move"` // Animation ticks per one-cell move
}

// DisplayConfig defines rendering parameters.
type DisplayConfig struct {
	TickRate  int         `yaml:"tick_rate"`  // Simulation ticks per second
	WideCells bool        `yaml:"wide_cells"` // Two terminal columns per grid cell when they fit
	ShowHelp  bool        `yaml:"show_help"`  // Key hints under the board
	Theme     ThemeConfig `yaml:"theme"`
}

// ThemeConfig names the color of each board element.
// Valid names are those accepted by core.ParseColor.
type ThemeConfig struct {
	Wall      string `yaml:"wall"`
	Goal      string `yaml:"goal"`
	Box       string `yaml:"box"`
	BoxOnGoal string `yaml:"box_on_goal"`
	Worker    string `yaml:"worker"`
	HUD       string `yaml:"hud"`
}

// PacksConfig defines where level packs are found.
type PacksConfig struct {
	Dirs    []string `yaml:"dirs"`    // Extra directories scanned for pack files
	Default string   `yaml:"default"` // Pack played when none is named
}

// GameplayConfig defines level progression.
type GameplayConfig struct {
	AutoAdvance       bool `yaml:"auto_advance"`        // Move to the next level after a clear
	AdvanceDelayTicks int  `yaml:"advance_delay_ticks"` // Ticks the level-clear banner stays up
}
