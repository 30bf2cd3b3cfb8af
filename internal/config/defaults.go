package config

import (
	_ "embed"
)

//go:embed defaults/storekeeper.yaml
var defaultStorekeeperYAML []byte

// DefaultStorekeeperConfig returns the default storekeeper configuration.
func DefaultStorekeeperConfig() StorekeeperConfig {
	return StorekeeperConfig{
		Engine: EngineConfig{
			StepsPerMove: 8,
		},
		Display: DisplayConfig{
			TickRate:  60,
			WideCells: true,
			ShowHelp:  true,
			Theme: ThemeConfig{
				Wall:      "gray",
				Goal:      "bright-red",
				Box:       "orange",
				BoxOnGoal: "bright-green",
				Worker:    "bright-cyan",
				HUD:       "bright-white",
			},
		},
		Packs: PacksConfig{
			Dirs:    []string{"~/.storekeeper/packs"},
			Default: "tutorial",
		},
		Gameplay: GameplayConfig{
			AutoAdvance:       true,
			AdvanceDelayTicks: 120,
		},
	}
}
