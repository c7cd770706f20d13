// Package sim is the deterministic per-frame simulation of the arkanoid
// game: entities, the services that move and collide them, and the
// GameService orchestrator that sequences one tick.
//
// The package performs no I/O. It consumes an Input and a time delta per
// frame and reports what happened through an injected EventSink.
package sim

import (
	"math"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// PowerUpType identifies a power-up and the effect it applies.
type PowerUpType int

const (
	PowerUpExpandPaddle PowerUpType = iota // Wider paddle for a while
	PowerUpLaserPaddle                     // Paddle fires lasers for a while
	PowerUpCatchBall                       // Next paddle contact holds the ball
	PowerUpMultiBall                       // Two extra balls
	PowerUpExtraLife                       // One more life
	PowerUpSlowBall                        // Global slow motion for a while
	PowerUpTypeCount                       // Sentinel for counting types
)

var powerUpNames = [PowerUpTypeCount]string{
	"EXPAND_PADDLE",
	"LASER_PADDLE",
	"CATCH_BALL",
	"MULTI_BALL",
	"EXTRA_LIFE",
	"SLOW_BALL",
}

// String returns the configuration name of the power-up type.
func (t PowerUpType) String() string {
	if t < 0 || t >= PowerUpTypeCount {
		return "UNKNOWN"
	}
	return powerUpNames[t]
}

// ParsePowerUpType maps a configuration name back to its type.
func ParsePowerUpType(name string) (PowerUpType, bool) {
	for i, n := range powerUpNames {
		if n == name {
			return PowerUpType(i), true
		}
	}
	return 0, false
}

// EnemyType identifies an enemy and the effect of colliding with it.
type EnemyType int

const (
	EnemyCone     EnemyType = iota // Costs a life
	EnemyCube                      // Swallows the ball that hits it
	EnemyMolecule                  // Speeds up every ball
	EnemyPyramid                   // Deducts score
	EnemyTypeCount
)

// String returns the name of the enemy type.
func (t EnemyType) String() string {
	switch t {
	case EnemyCone:
		return "CONE"
	case EnemyCube:
		return "CUBE"
	case EnemyMolecule:
		return "MOLECULE"
	case EnemyPyramid:
		return "PYRAMID"
	default:
		return "UNKNOWN"
	}
}

// ParseEnemyType maps a name written by String back to its type.
func ParseEnemyType(name string) (EnemyType, bool) {
	for t := range EnemyTypeCount {
		if t.String() == name {
			return t, true
		}
	}
	return 0, false
}

// Ball is a circle. X and Y are its center.
type Ball struct {
	X, Y   float64
	DX, DY float64
	Radius float64
	Moving bool
	// Stuck marks the ball as caught (or about to be caught) by the paddle.
	// A stuck ball that is not moving rides the paddle at StuckOffset from
	// its center until launched.
	Stuck       bool
	StuckOffset float64
}

// Bounds returns the ball's bounding box.
func (b *Ball) Bounds() core.Rect {
	return core.NewRect(b.X-b.Radius, b.Y-b.Radius, 2*b.Radius, 2*b.Radius)
}

// Speed returns the velocity magnitude.
func (b *Ball) Speed() float64 {
	return math.Hypot(b.DX, b.DY)
}

// Paddle is the player's bat. X and Y are its top-left corner.
type Paddle struct {
	X, Y          float64
	Width, Height float64
}

// Bounds returns the paddle rectangle.
func (p *Paddle) Bounds() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}

// CenterX returns the horizontal center of the paddle.
func (p *Paddle) CenterX() float64 {
	return p.X + p.Width/2
}

// Brick is one cell of a level layout.
type Brick struct {
	X, Y           float64
	Width, Height  float64
	Health         int
	Indestructible bool
}

// Bounds returns the brick rectangle.
func (b *Brick) Bounds() core.Rect {
	return core.NewRect(b.X, b.Y, b.Width, b.Height)
}

// Destroyed reports whether the brick no longer takes part in play.
func (b *Brick) Destroyed() bool {
	return !b.Indestructible && b.Health <= 0
}

// Bullet is a laser shot travelling upward.
type Bullet struct {
	X, Y          float64
	Width, Height float64
	DY            float64
}

// Bounds returns the bullet rectangle.
func (b *Bullet) Bounds() core.Rect {
	return core.NewRect(b.X, b.Y, b.Width, b.Height)
}

// PowerUp is a falling capsule.
type PowerUp struct {
	X, Y          float64
	Width, Height float64
	DY            float64
	Type          PowerUpType
	Collected     bool
}

// Bounds returns the capsule rectangle.
func (p *PowerUp) Bounds() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}

// Enemy drifts down the playfield in a zig-zag.
type Enemy struct {
	X, Y          float64
	Width, Height float64
	DX, DY        float64
	Type          EnemyType
	ZigZagTimer   float64
}

// Bounds returns the enemy rectangle.
func (e *Enemy) Bounds() core.Rect {
	return core.NewRect(e.X, e.Y, e.Width, e.Height)
}

// EffectTimers holds at most one countdown per timed power-up type.
// Iteration follows the PowerUpType order.
type EffectTimers struct {
	remaining [PowerUpTypeCount]float64
	active    [PowerUpTypeCount]bool
}

// Active reports whether an effect of type t is running.
func (e *EffectTimers) Active(t PowerUpType) bool {
	return t >= 0 && t < PowerUpTypeCount && e.active[t]
}

// Remaining returns the seconds left on t, or 0 if inactive.
func (e *EffectTimers) Remaining(t PowerUpType) float64 {
	if !e.Active(t) {
		return 0
	}
	return e.remaining[t]
}

// Set starts or refreshes the timer for t.
func (e *EffectTimers) Set(t PowerUpType, seconds float64) {
	if t < 0 || t >= PowerUpTypeCount {
		return
	}
	e.active[t] = true
	e.remaining[t] = seconds
}

// Cancel stops the timer for t without reporting expiry.
func (e *EffectTimers) Cancel(t PowerUpType) {
	if t < 0 || t >= PowerUpTypeCount {
		return
	}
	e.active[t] = false
	e.remaining[t] = 0
}

// Reset stops every timer.
func (e *EffectTimers) Reset() {
	*e = EffectTimers{}
}

// Len returns the number of running timers.
func (e *EffectTimers) Len() int {
	n := 0
	for _, a := range e.active {
		if a {
			n++
		}
	}
	return n
}

// Each calls fn for every running timer in type order.
func (e *EffectTimers) Each(fn func(t PowerUpType, remaining float64)) {
	for i, a := range e.active {
		if a {
			fn(PowerUpType(i), e.remaining[i])
		}
	}
}

// Input is the per-frame control state.
type Input struct {
	Left   bool
	Right  bool
	Launch bool
	Fire   bool
}

// GameState is the single mutable aggregate of a play session.
// Only GameService writes it.
type GameState struct {
	Ball       Ball   // Primary ball
	ExtraBalls []Ball // Balls added by multi-ball
	Paddle     Paddle
	Bricks     []Brick
	Bullets    []Bullet
	PowerUps   []PowerUp
	Enemies    []Enemy

	ActivePowerUps EffectTimers

	Score int
	Lives int
	Level int // Zero-based level index

	Running                bool
	Paused                 bool
	AwaitingStart          bool // Level loaded, waiting for the go signal
	GameOver               bool
	GameCompleted          bool
	LevelTransitionPending bool

	TimeScale       float64 // Slow-motion multiplier applied to every tick's dt
	LaserCooldown   float64
	BricksRemaining int
	EnemySpawnTimer float64
	NextEnemyLeft   bool // Direction of the next spawned enemy
	LaunchHeld      bool // Launch input seen last frame
	Ticks           uint64

	WorldW, WorldH float64 // Playfield size seen by the last update

	RNG SimpleRNG
}

// BallCount returns the number of balls in play, the primary included.
func (s *GameState) BallCount() int {
	return 1 + len(s.ExtraBalls)
}

// BallAt returns ball i, where 0 is the primary ball.
func (s *GameState) BallAt(i int) *Ball {
	if i == 0 {
		return &s.Ball
	}
	return &s.ExtraBalls[i-1]
}

// removeBall drops ball i. Removing the primary promotes the first extra.
// The caller must ensure at least one ball remains.
func (s *GameState) removeBall(i int) {
	if i == 0 {
		s.Ball = s.ExtraBalls[0]
		s.ExtraBalls = s.ExtraBalls[1:]
		return
	}
	s.ExtraBalls = append(s.ExtraBalls[:i-1], s.ExtraBalls[i:]...)
}

// MarshalText encodes the type by name.
func (t PowerUpType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// MarshalText encodes the type by name.
func (t EnemyType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
