// Package config provides YAML-based game configuration loading and
// difficulty management for the arkanoid simulation.
package config

import "fmt"

// ArkanoidConfig contains all tunables for a play session.
// Distances are in world units, speeds in world units per second,
// durations in seconds.
type ArkanoidConfig struct {
	World      WorldConfig      `yaml:"world"`
	Ball       BallConfig       `yaml:"ball"`
	Paddle     PaddleConfig     `yaml:"paddle"`
	Bricks     BricksConfig     `yaml:"bricks"`
	Bullets    BulletsConfig    `yaml:"bullets"`
	PowerUps   PowerUpsConfig   `yaml:"powerups"`
	Enemies    EnemiesConfig    `yaml:"enemies"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// WorldConfig defines the logical playfield the simulation runs in.
// Renderers scale it to whatever surface they have.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BallConfig defines ball geometry and launch parameters.
type BallConfig struct {
	Radius         float64 `yaml:"radius"`
	Speed          float64 `yaml:"speed"`
	DockOffset     float64 `yaml:"dock_offset"`      // Gap between docked ball and paddle top
	MinLaunchAngle float64 `yaml:"min_launch_angle"` // Degrees from the +X axis
	MaxLaunchAngle float64 `yaml:"max_launch_angle"`
	PaddleDeflect  float64 `yaml:"paddle_deflect"` // Max degrees off vertical at the paddle edge
}

// PaddleConfig defines paddle geometry and movement.
type PaddleConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"`
	MinWidth     float64 `yaml:"min_width"`
	MaxWidth     float64 `yaml:"max_width"`
	MarginLeft   float64 `yaml:"margin_left"`
	MarginRight  float64 `yaml:"margin_right"`
	BottomOffset float64 `yaml:"bottom_offset"` // Distance from world bottom to paddle top
}

// BricksConfig defines the brick grid pitch and scoring.
type BricksConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	GapX          float64 `yaml:"gap_x"`
	GapY          float64 `yaml:"gap_y"`
	OffsetX       float64 `yaml:"offset_x"`
	OffsetY       float64 `yaml:"offset_y"`
	ScorePerBrick int     `yaml:"score_per_brick"`
}

// BulletsConfig defines laser bullets.
type BulletsConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"`
	Cooldown     float64 `yaml:"cooldown"`
	BarrelOffset float64 `yaml:"barrel_offset"` // Inset of each barrel from the paddle edge
	MinY         float64 `yaml:"min_y"`         // Bullets above this are discarded
}

// PowerUpsConfig defines power-up drops and effect strengths.
type PowerUpsConfig struct {
	DropChance       float64  `yaml:"drop_chance"` // 0.0 - 1.0
	FallSpeed        float64  `yaml:"fall_speed"`
	Width            float64  `yaml:"width"`
	Height           float64  `yaml:"height"`
	Duration         float64  `yaml:"duration"`
	ExpandFactor     float64  `yaml:"expand_factor"`
	LaserWidthFactor float64  `yaml:"laser_width_factor"`
	SlowFactor       float64  `yaml:"slow_factor"`
	MultiBallSpread  float64  `yaml:"multi_ball_spread"` // Degrees either side of the source heading
	DefaultSpeed     float64  `yaml:"default_speed"`     // Used when the source ball is not moving
	Enabled          []string `yaml:"enabled"`
}

// EnemiesConfig defines falling enemies.
type EnemiesConfig struct {
	Enabled         bool    `yaml:"enabled"`
	MaxActive       int     `yaml:"max_active"`
	SpawnInterval   float64 `yaml:"spawn_interval"`
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	SpeedX          float64 `yaml:"speed_x"`
	SpeedY          float64 `yaml:"speed_y"`
	SpawnY          float64 `yaml:"spawn_y"`
	ZigZagInterval  float64 `yaml:"zigzag_interval"`
	MoleculeSpeedUp float64 `yaml:"molecule_speed_up"`
	PyramidPenalty  int     `yaml:"pyramid_penalty"`
}

// GameplayConfig defines session rules.
type GameplayConfig struct {
	Lives      int `yaml:"lives"`
	StartLevel int `yaml:"start_level"`
}

// Validate reports the first setting that would make the simulation unusable.
func (c *ArkanoidConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("config: world size must be positive, got %vx%v", c.World.Width, c.World.Height)
	case c.Ball.Radius <= 0:
		return fmt.Errorf("config: ball.radius must be positive, got %v", c.Ball.Radius)
	case c.Ball.MinLaunchAngle > c.Ball.MaxLaunchAngle:
		return fmt.Errorf("config: ball.min_launch_angle %v exceeds max_launch_angle %v",
			c.Ball.MinLaunchAngle, c.Ball.MaxLaunchAngle)
	case c.Ball.PaddleDeflect < 0 || c.Ball.PaddleDeflect >= 90:
		return fmt.Errorf("config: ball.paddle_deflect must be within [0, 90), got %v", c.Ball.PaddleDeflect)
	case c.Paddle.MinWidth <= 0 || c.Paddle.MinWidth > c.Paddle.MaxWidth:
		return fmt.Errorf("config: paddle width range [%v, %v] is invalid", c.Paddle.MinWidth, c.Paddle.MaxWidth)
	case c.Bricks.Width <= 0 || c.Bricks.Height <= 0:
		return fmt.Errorf("config: brick size must be positive")
	case c.PowerUps.DropChance < 0 || c.PowerUps.DropChance > 1:
		return fmt.Errorf("config: powerups.drop_chance must be within [0, 1], got %v", c.PowerUps.DropChance)
	case c.Gameplay.Lives < 0:
		return fmt.Errorf("config: gameplay.lives must not be negative")
	}
	return nil
}
