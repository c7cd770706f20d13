package config

import (
	_ "embed"
)

//go:embed defaults/arkanoid.yaml
var defaultArkanoidYAML []byte

// DefaultArkanoidConfig returns the built-in configuration.
// It mirrors defaults/arkanoid.yaml and is used when the embedded file cannot be parsed.
func DefaultArkanoidConfig() ArkanoidConfig {
	return ArkanoidConfig{
		World: WorldConfig{
			Width:  800,
			Height: 600,
		},
		Ball: BallConfig{
			Radius:         6,
			Speed:          300,
			DockOffset:     1,
			MinLaunchAngle: 60,
			MaxLaunchAngle: 120,
			PaddleDeflect:  60,
		},
		Paddle: PaddleConfig{
			Width:        120,
			Height:       14,
			Speed:        400,
			MinWidth:     60,
			MaxWidth:     240,
			BottomOffset: 40,
		},
		Bricks: BricksConfig{
			Width:         60,
			Height:        20,
			GapX:          4,
			GapY:          4,
			OffsetX:       16,
			OffsetY:       60,
			ScorePerBrick: 10,
		},
		Bullets: BulletsConfig{
			Width:        3,
			Height:       10,
			Speed:        600,
			Cooldown:     0.35,
			BarrelOffset: 8,
			MinY:         -20,
		},
		PowerUps: PowerUpsConfig{
			DropChance:       0.15,
			FallSpeed:        120,
			Width:            30,
			Height:           14,
			Duration:         10,
			ExpandFactor:     1.5,
			LaserWidthFactor: 1.0,
			SlowFactor:       0.6,
			MultiBallSpread:  15,
			DefaultSpeed:     300,
			Enabled: []string{
				"EXPAND_PADDLE",
				"LASER_PADDLE",
				"CATCH_BALL",
				"MULTI_BALL",
				"EXTRA_LIFE",
				"SLOW_BALL",
			},
		},
		Enemies: EnemiesConfig{
			Enabled:         true,
			MaxActive:       3,
			SpawnInterval:   8,
			Width:           24,
			Height:          24,
			SpeedX:          60,
			SpeedY:          40,
			SpawnY:          30,
			ZigZagInterval:  1.2,
			MoleculeSpeedUp: 1.15,
			PyramidPenalty:  100,
		},
		Gameplay: GameplayConfig{
			Lives:      3,
			StartLevel: 0,
		},
		Difficulty: DifficultyConfig{
			Preset:             DifficultyNormal,
			SpeedMultiplier:    1.0,
			LevelSpeedStep:     0.05,
			MaxSpeedMultiplier: 1.6,
		},
	}
}

// DefaultYAML returns the embedded default YAML, e.g. for `arkanoid config dump`.
func DefaultYAML() []byte {
	return defaultArkanoidYAML
}
