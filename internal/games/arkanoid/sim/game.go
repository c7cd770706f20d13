package sim

import (
	"fmt"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// GameService sequences the sub-services once per frame and owns the level
// transition state machine. It is the only writer of GameState.
type GameService struct {
	cfg        *config.ArkanoidConfig
	sink       EventSink
	difficulty *config.DifficultyManager

	Balls    *BallService
	Paddles  *PaddleService
	Bricks   *BricksService
	Bullets  *BulletService
	PowerUps *PowerUpService
	Enemies  *EnemyService
	Rounds   *RoundService
}

// NewGameService wires the services over cfg. A nil sink discards events.
func NewGameService(cfg *config.ArkanoidConfig, levels LevelSource, sink EventSink) (*GameService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("sim: nil config: %w", ErrInvalidArgument)
	}
	if levels == nil || levels.Count() == 0 {
		return nil, fmt.Errorf("sim: no levels: %w", ErrInvalidArgument)
	}
	if sink == nil {
		sink = func(Event) {}
	}

	g := &GameService{
		cfg:        cfg,
		sink:       sink,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
	g.Balls = NewBallService(cfg)
	g.Paddles = NewPaddleService(cfg)
	g.Bricks = NewBricksService(cfg)
	g.Bullets = NewBulletService(cfg, g.Bricks)
	powerUps, err := NewPowerUpService(cfg, g.Paddles)
	if err != nil {
		return nil, err
	}
	g.PowerUps = powerUps
	g.Enemies = NewEnemyService(cfg, g.Balls)
	g.Rounds = NewRoundService(levels, g.Bricks, g.Balls, g.Paddles)
	return g, nil
}

// Config returns the configuration the services were built with.
func (g *GameService) Config() *config.ArkanoidConfig {
	return g.cfg
}

// NewSession creates a fresh GameState on the configured start level,
// paused and awaiting Start.
func (g *GameService) NewSession(worldW, worldH float64, seed int64) (*GameState, error) {
	ball, err := NewBall(0, 0, g.cfg.Ball.Radius)
	if err != nil {
		return nil, err
	}
	state := &GameState{
		Ball:      ball,
		Paddle:    g.Paddles.NewPaddle(worldW, worldH),
		Lives:     g.cfg.Gameplay.Lives,
		TimeScale: 1.0,
		WorldW:    worldW,
		WorldH:    worldH,
		RNG:       NewSimpleRNG(seed),
	}
	start := core.Clamp(g.cfg.Gameplay.StartLevel, 0, g.Rounds.LevelCount()-1)
	if err := g.Rounds.LoadLevel(state, start); err != nil {
		return nil, err
	}
	return state, nil
}

// Start gives the go signal for a freshly loaded level.
func (g *GameService) Start(state *GameState) {
	if !state.Running || !state.AwaitingStart || state.LevelTransitionPending {
		return
	}
	state.AwaitingStart = false
	state.Paused = false
	g.sink(LevelStarted{Level: state.Level})
}

// Pause suspends updates.
func (g *GameService) Pause(state *GameState) {
	if state.Running {
		state.Paused = true
	}
}

// Resume lifts a pause. A level awaiting its go signal needs Start instead.
func (g *GameService) Resume(state *GameState) {
	if state.Running && !state.AwaitingStart {
		state.Paused = false
	}
}

// ConfirmLevelTransition acknowledges a cleared level: the next level is
// loaded (awaiting Start) or, after the last one, the game is completed.
// It does nothing unless a transition is pending.
func (g *GameService) ConfirmLevelTransition(state *GameState) error {
	if !state.LevelTransitionPending {
		return nil
	}
	completed, err := g.Rounds.LoadNextLevel(state)
	if err != nil {
		return err
	}
	if completed {
		g.sink(GameCompleted{Score: state.Score, Ticks: state.Ticks})
	}
	return nil
}

// Snapshot captures state for persistence or replay checks.
func (g *GameService) Snapshot(state *GameState) Snapshot {
	return TakeSnapshot(state)
}

// Restore builds a new session from snap. The snapshot's level must exist
// in this service's level source. A running session comes back paused.
func (g *GameService) Restore(snap Snapshot) (*GameState, error) {
	if snap.Level < 0 || snap.Level >= g.Rounds.LevelCount() {
		return nil, fmt.Errorf("sim: snapshot level %d not in level set of %d: %w",
			snap.Level, g.Rounds.LevelCount(), ErrInvalidSnapshot)
	}
	state := &GameState{}
	if err := snap.ApplyTo(state); err != nil {
		return nil, err
	}
	return state, nil
}

// SpeedMultiplier returns the launch speed multiplier for the state's level.
func (g *GameService) SpeedMultiplier(state *GameState) float64 {
	return g.difficulty.SpeedMultiplier(state.Level)
}

// Update advances the session by dt seconds. It is a no-op unless the
// session is running, unpaused and not waiting on a level transition.
//
// Order per tick: input, bullet cooldown, balls, bullets, power-ups and
// their timers, enemies, then the level-clear check.
func (g *GameService) Update(state *GameState, in Input, dt, worldW, worldH float64) {
	if !state.Running || state.Paused || state.LevelTransitionPending || dt < 0 {
		return
	}
	state.WorldW, state.WorldH = worldW, worldH
	state.Ticks++
	// Slow motion stretches every sub-update, timers included.
	scaled := dt * state.TimeScale

	g.applyInput(state, in, scaled, worldW)

	g.Bullets.TickCooldown(state, scaled)
	g.updateBalls(state, scaled, worldW, worldH)
	if state.GameOver {
		return
	}

	for _, imp := range g.Bullets.Update(state, scaled, worldH) {
		g.onBrickHit(state, imp.Brick, imp.Destroyed, true)
	}

	for _, t := range g.PowerUps.Update(state, scaled, worldH) {
		g.sink(PowerUpCollected{Type: t})
		if g.PowerUps.ApplyPowerUp(state, t, worldW) {
			g.sink(PowerUpActivated{Type: t})
		}
	}
	for _, t := range g.PowerUps.TickActiveEffects(state, scaled, worldW) {
		g.sink(PowerUpExpired{Type: t})
	}

	if e, ok := g.Enemies.TrySpawn(state, scaled, worldW); ok {
		g.sink(EnemySpawned{Type: e.Type, X: e.X})
	}
	hits := g.Enemies.Update(state, scaled, worldW, worldH)
	for _, h := range hits {
		g.sink(EnemyExploded{Type: h.Enemy.Type, Source: h.Source, X: h.Enemy.X, Y: h.Enemy.Y})
	}
	for range g.Enemies.ApplyEffects(state, hits) {
		g.loseLife(state)
		if state.GameOver {
			return
		}
	}

	state.BricksRemaining = g.Bricks.RecalculateBricksRemaining(state.Bricks)
	if state.BricksRemaining == 0 {
		state.LevelTransitionPending = true
		state.Running = false
		g.sink(LevelCleared{Level: state.Level, Score: state.Score, Ticks: state.Ticks})
	}
}

// applyInput moves the paddle, keeps resting balls on it, launches on the
// rising edge of the launch input and fires lasers.
func (g *GameService) applyInput(state *GameState, in Input, dt, worldW float64) {
	if in.Left {
		g.Paddles.MoveLeft(&state.Paddle, dt, worldW)
	}
	if in.Right {
		g.Paddles.MoveRight(&state.Paddle, dt, worldW)
	}
	g.Paddles.Clamp(&state.Paddle, worldW)

	for i := range state.BallCount() {
		g.Balls.FollowPaddle(state.BallAt(i), &state.Paddle)
	}

	launch := in.Launch && !state.LaunchHeld
	state.LaunchHeld = in.Launch
	if launch {
		for i := range state.BallCount() {
			b := state.BallAt(i)
			if b.Moving {
				continue
			}
			g.Balls.Launch(b, &state.RNG, g.SpeedMultiplier(state))
			g.sink(BallLaunched{X: b.X, DX: b.DX, DY: b.DY})
			break
		}
	}

	if in.Fire && state.ActivePowerUps.Active(PowerUpLaserPaddle) {
		if g.Bullets.TryFire(state) {
			g.sink(BulletFired{Count: 2})
		}
	}
}

// updateBalls moves every ball, bounces it off the walls, the paddle and at
// most one brick, then handles balls that fell out.
func (g *GameService) updateBalls(state *GameState, dt, worldW, worldH float64) {
	paddle := &state.Paddle
	for i := range state.BallCount() {
		b := state.BallAt(i)
		if !b.Moving {
			continue
		}
		g.Balls.Step(b, dt)
		if g.Balls.BounceWorld(b, worldW, worldH) {
			g.sink(WallHit{})
		}

		if b.DY > 0 && g.Balls.CheckCollision(b, paddle.Bounds()) {
			if b.Stuck {
				g.Balls.Catch(b, paddle)
				g.sink(PaddleHit{Caught: true})
				continue
			}
			above := b.Y < paddle.Y
			if g.Balls.BounceOff(b, paddle.Bounds()) == AxisVertical && above {
				g.Balls.DeflectFromPaddle(b, paddle)
			}
			g.sink(PaddleHit{})
		}

		idx := firstBrickHit(state.Bricks, func(br *Brick) bool {
			return g.Balls.CheckCollision(b, br.Bounds())
		})
		if idx >= 0 {
			brick := &state.Bricks[idx]
			g.Balls.BounceOff(b, brick.Bounds())
			g.onBrickHit(state, brick, g.Bricks.HandleBrickHit(brick), false)
		}
	}

	g.dropFallenBalls(state, worldH)
}

// dropFallenBalls removes balls below the world. Extra balls vanish
// silently; losing the primary promotes an extra; losing the last ball
// costs a life.
func (g *GameService) dropFallenBalls(state *GameState, worldH float64) {
	for i := state.BallCount() - 1; i >= 0; i-- {
		if !g.Balls.FellBelow(state.BallAt(i), worldH) {
			continue
		}
		if state.BallCount() > 1 {
			state.removeBall(i)
			g.sink(BallLost{})
			continue
		}
		g.sink(BallLost{Last: true})
		g.loseLife(state)
	}
}

// onBrickHit scores a destroyed brick and rolls a power-up drop while
// breakable bricks remain.
func (g *GameService) onBrickHit(state *GameState, brick *Brick, destroyed, byBullet bool) {
	g.sink(BrickHit{
		X:              brick.X,
		Y:              brick.Y,
		Destroyed:      destroyed,
		Indestructible: brick.Indestructible,
		ByBullet:       byBullet,
	})
	if !destroyed {
		return
	}
	state.Score += g.cfg.Bricks.ScorePerBrick
	state.BricksRemaining = g.Bricks.RecalculateBricksRemaining(state.Bricks)
	if state.BricksRemaining > 0 {
		g.PowerUps.SpawnPowerUpIfAny(state, brick)
	}
}

// loseLife takes a life, clears extra balls, capsules and effects and
// docks the primary ball. Going below zero lives ends the game.
func (g *GameService) loseLife(state *GameState) {
	state.Lives--
	g.sink(LifeLost{Lives: state.Lives})

	state.ExtraBalls = nil
	state.PowerUps = nil
	g.PowerUps.ClearEffects(state, state.WorldW)
	g.Balls.ResetOnPaddle(&state.Ball, &state.Paddle)

	if state.Lives < 0 {
		state.GameOver = true
		state.Running = false
		g.sink(GameOver{Level: state.Level, Score: state.Score, Ticks: state.Ticks})
	}
}
