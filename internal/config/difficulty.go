package config

import "math"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// DifficultyConfig defines launch speed scaling.
type DifficultyConfig struct {
	Preset             DifficultyPreset `yaml:"preset"`
	SpeedMultiplier    float64          `yaml:"speed_multiplier"`     // Base multiplier at level 0
	LevelSpeedStep     float64          `yaml:"level_speed_step"`     // Added per level index
	MaxSpeedMultiplier float64          `yaml:"max_speed_multiplier"` // Upper bound
}

// ParsePreset maps a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// SpeedMultiplierForPreset returns the base launch speed multiplier for a preset.
func SpeedMultiplierForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.85
	case DifficultyHard:
		return 1.2
	default:
		return 1.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *ArkanoidConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.Difficulty.Preset = preset
	cfg.Difficulty.SpeedMultiplier = SpeedMultiplierForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Paddle.Width = 150
		cfg.Enemies.MaxActive = 2
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Paddle.Width = 100
		cfg.Enemies.MaxActive = 4
	}
}

// DifficultyManager calculates the launch speed multiplier for a level.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	if cfg.SpeedMultiplier <= 0 {
		cfg.SpeedMultiplier = 1.0
	}
	if cfg.MaxSpeedMultiplier < cfg.SpeedMultiplier {
		cfg.MaxSpeedMultiplier = cfg.SpeedMultiplier
	}
	return &DifficultyManager{cfg: cfg}
}

// SpeedMultiplier returns the multiplier for the given zero-based level index.
func (d *DifficultyManager) SpeedMultiplier(level int) float64 {
	if level < 0 {
		level = 0
	}
	m := d.cfg.SpeedMultiplier * (1.0 + float64(level)*d.cfg.LevelSpeedStep)
	return clampF(m, d.cfg.SpeedMultiplier, d.cfg.MaxSpeedMultiplier)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
