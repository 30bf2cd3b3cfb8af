package config

import (
	"fmt"
	"strings"
)

// SpeedPreset represents a named animation speed.
type SpeedPreset string

const (
	SpeedSlow    SpeedPreset = "slow"
	SpeedNormal  SpeedPreset = "normal"
	SpeedFast    SpeedPreset = "fast"
	SpeedInstant SpeedPreset = "instant"
)

// SpeedPresets lists the presets from slowest to fastest.
func SpeedPresets() []SpeedPreset {
	return []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast, SpeedInstant}
}

// StepsForPreset returns the steps per move for a speed preset.
func StepsForPreset(preset SpeedPreset) (int, bool) {
	switch preset {
	case SpeedSlow:
		return 16, true
	case SpeedNormal:
		return 8, true
	case SpeedFast:
		return 4, true
	case SpeedInstant:
		return 1, true
	default:
		return 0, false
	}
}

// ParseSpeedPreset parses a preset name (case-insensitive).
func ParseSpeedPreset(s string) (SpeedPreset, error) {
	preset := SpeedPreset(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := StepsForPreset(preset); !ok {
		names := make([]string, 0, len(SpeedPresets()))
		for _, p := range SpeedPresets() {
			names = append(names, string(p))
		}
		return "", fmt.Errorf("unknown speed %q (want one of %s)", s, strings.Join(names, ", "))
	}
	return preset, nil
}

// ApplySpeedPreset modifies the config based on a speed preset.
func ApplySpeedPreset(cfg *StorekeeperConfig, preset SpeedPreset) error {
	steps, ok := StepsForPreset(preset)
	if !ok {
		return fmt.Errorf("unknown speed %q", preset)
	}
	cfg.Engine.StepsPerMove = steps
	return nil
}
