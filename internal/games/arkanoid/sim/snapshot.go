package sim

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
)

// Snapshot is a flat, serializable copy of a GameState, sufficient to
// rebuild it. The primary ball is Balls[0].
type Snapshot struct {
	Score int `json:"score"`
	Lives int `json:"lives"`
	Level int `json:"level"`

	PaddleX      float64 `json:"paddle_x"`
	PaddleY      float64 `json:"paddle_y"`
	PaddleWidth  float64 `json:"paddle_width"`
	PaddleHeight float64 `json:"paddle_height"`

	Balls    []BallSnapshot    `json:"balls"`
	Bricks   []BrickSnapshot   `json:"bricks"`
	PowerUps []PowerUpSnapshot `json:"powerups"`
	Bullets  []BulletSnapshot  `json:"bullets"`
	Enemies  []EnemySnapshot   `json:"enemies"`
	Effects  []EffectSnapshot  `json:"effects"`

	TimeScale       float64 `json:"time_scale"`
	LaserCooldown   float64 `json:"laser_cooldown"`
	EnemySpawnTimer float64 `json:"enemy_spawn_timer"`
	NextEnemyLeft   bool    `json:"next_enemy_left"`
	Ticks           uint64  `json:"ticks"`

	GameOver               bool `json:"game_over"`
	GameCompleted          bool `json:"game_completed"`
	LevelTransitionPending bool `json:"level_transition_pending"`

	WorldW   float64 `json:"world_w"`
	WorldH   float64 `json:"world_h"`
	RNGState uint64  `json:"rng_state"`
}

// BallSnapshot is one ball.
type BallSnapshot struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	DX          float64 `json:"dx"`
	DY          float64 `json:"dy"`
	Radius      float64 `json:"radius"`
	Moving      bool    `json:"moving"`
	Stuck       bool    `json:"stuck,omitempty"`
	StuckOffset float64 `json:"stuck_offset,omitempty"`
}

// BrickSnapshot is one brick.
type BrickSnapshot struct {
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Width          float64 `json:"w"`
	Height         float64 `json:"h"`
	Health         int     `json:"health"`
	Indestructible bool    `json:"indestructible,omitempty"`
}

// PowerUpSnapshot is one falling capsule.
type PowerUpSnapshot struct {
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"w"`
	Height float64 `json:"h"`
	DY     float64 `json:"dy"`
}

// BulletSnapshot is one bullet.
type BulletSnapshot struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"w"`
	Height float64 `json:"h"`
	DY     float64 `json:"dy"`
}

// EnemySnapshot is one enemy.
type EnemySnapshot struct {
	Type        string  `json:"type"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"w"`
	Height      float64 `json:"h"`
	DX          float64 `json:"dx"`
	DY          float64 `json:"dy"`
	ZigZagTimer float64 `json:"zigzag_timer"`
}

// EffectSnapshot is one running effect timer.
type EffectSnapshot struct {
	Type      string  `json:"type"`
	Remaining float64 `json:"remaining"`
}

// TakeSnapshot copies the state into a Snapshot.
func TakeSnapshot(state *GameState) Snapshot {
	snap := Snapshot{
		Score:                  state.Score,
		Lives:                  state.Lives,
		Level:                  state.Level,
		PaddleX:                state.Paddle.X,
		PaddleY:                state.Paddle.Y,
		PaddleWidth:            state.Paddle.Width,
		PaddleHeight:           state.Paddle.Height,
		TimeScale:              state.TimeScale,
		LaserCooldown:          state.LaserCooldown,
		EnemySpawnTimer:        state.EnemySpawnTimer,
		NextEnemyLeft:          state.NextEnemyLeft,
		Ticks:                  state.Ticks,
		GameOver:               state.GameOver,
		GameCompleted:          state.GameCompleted,
		LevelTransitionPending: state.LevelTransitionPending,
		WorldW:                 state.WorldW,
		WorldH:                 state.WorldH,
		RNGState:               state.RNG.State,
	}

	snap.Balls = make([]BallSnapshot, 0, state.BallCount())
	for i := range state.BallCount() {
		b := state.BallAt(i)
		snap.Balls = append(snap.Balls, BallSnapshot{
			X: b.X, Y: b.Y, DX: b.DX, DY: b.DY,
			Radius: b.Radius, Moving: b.Moving,
			Stuck: b.Stuck, StuckOffset: b.StuckOffset,
		})
	}

	snap.Bricks = make([]BrickSnapshot, len(state.Bricks))
	for i, b := range state.Bricks {
		snap.Bricks[i] = BrickSnapshot{
			X: b.X, Y: b.Y, Width: b.Width, Height: b.Height,
			Health: b.Health, Indestructible: b.Indestructible,
		}
	}

	snap.PowerUps = make([]PowerUpSnapshot, len(state.PowerUps))
	for i, p := range state.PowerUps {
		snap.PowerUps[i] = PowerUpSnapshot{
			Type: p.Type.String(), X: p.X, Y: p.Y,
			Width: p.Width, Height: p.Height, DY: p.DY,
		}
	}

	snap.Bullets = make([]BulletSnapshot, len(state.Bullets))
	for i, b := range state.Bullets {
		snap.Bullets[i] = BulletSnapshot{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height, DY: b.DY}
	}

	snap.Enemies = make([]EnemySnapshot, len(state.Enemies))
	for i, e := range state.Enemies {
		snap.Enemies[i] = EnemySnapshot{
			Type: e.Type.String(), X: e.X, Y: e.Y, Width: e.Width, Height: e.Height,
			DX: e.DX, DY: e.DY, ZigZagTimer: e.ZigZagTimer,
		}
	}

	snap.Effects = make([]EffectSnapshot, 0, state.ActivePowerUps.Len())
	state.ActivePowerUps.Each(func(t PowerUpType, remaining float64) {
		snap.Effects = append(snap.Effects, EffectSnapshot{Type: t.String(), Remaining: remaining})
	})

	return snap
}

// ApplyTo rebuilds state from the snapshot. A session that had not ended
// is left running and paused, so play continues on Resume. The state is
// not modified if the snapshot is invalid.
func (s Snapshot) ApplyTo(state *GameState) error {
	if err := s.validate(); err != nil {
		return err
	}

	restored := GameState{
		Score:                  s.Score,
		Lives:                  s.Lives,
		Level:                  s.Level,
		Paddle:                 Paddle{X: s.PaddleX, Y: s.PaddleY, Width: s.PaddleWidth, Height: s.PaddleHeight},
		TimeScale:              s.TimeScale,
		LaserCooldown:          s.LaserCooldown,
		EnemySpawnTimer:        s.EnemySpawnTimer,
		NextEnemyLeft:          s.NextEnemyLeft,
		Ticks:                  s.Ticks,
		GameOver:               s.GameOver,
		GameCompleted:          s.GameCompleted,
		LevelTransitionPending: s.LevelTransitionPending,
		WorldW:                 s.WorldW,
		WorldH:                 s.WorldH,
		RNG:                    SimpleRNG{State: s.RNGState},
	}
	restored.Running = !s.GameOver && !s.GameCompleted && !s.LevelTransitionPending
	restored.Paused = restored.Running

	for i, b := range s.Balls {
		ball := Ball{
			X: b.X, Y: b.Y, DX: b.DX, DY: b.DY, Radius: b.Radius,
			Moving: b.Moving, Stuck: b.Stuck, StuckOffset: b.StuckOffset,
		}
		if i == 0 {
			restored.Ball = ball
		} else {
			restored.ExtraBalls = append(restored.ExtraBalls, ball)
		}
	}

	restored.Bricks = make([]Brick, len(s.Bricks))
	for i, b := range s.Bricks {
		restored.Bricks[i] = Brick{
			X: b.X, Y: b.Y, Width: b.Width, Height: b.Height,
			Health: b.Health, Indestructible: b.Indestructible,
		}
	}
	restored.BricksRemaining = (&BricksService{}).RecalculateBricksRemaining(restored.Bricks)

	for _, p := range s.PowerUps {
		t, _ := ParsePowerUpType(p.Type)
		restored.PowerUps = append(restored.PowerUps, PowerUp{
			Type: t, X: p.X, Y: p.Y, Width: p.Width, Height: p.Height, DY: p.DY,
		})
	}
	for _, b := range s.Bullets {
		restored.Bullets = append(restored.Bullets, Bullet{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height, DY: b.DY})
	}
	for _, e := range s.Enemies {
		t, _ := ParseEnemyType(e.Type)
		restored.Enemies = append(restored.Enemies, Enemy{
			Type: t, X: e.X, Y: e.Y, Width: e.Width, Height: e.Height,
			DX: e.DX, DY: e.DY, ZigZagTimer: e.ZigZagTimer,
		})
	}
	for _, e := range s.Effects {
		t, _ := ParsePowerUpType(e.Type)
		restored.ActivePowerUps.Set(t, e.Remaining)
	}

	*state = restored
	return nil
}

func (s *Snapshot) validate() error {
	if len(s.Balls) == 0 {
		return fmt.Errorf("sim: snapshot has no balls: %w", ErrInvalidSnapshot)
	}
	for i, b := range s.Balls {
		if b.Radius <= 0 {
			return fmt.Errorf("sim: snapshot ball %d radius %v: %w", i, b.Radius, ErrInvalidSnapshot)
		}
	}
	for i, b := range s.Bricks {
		if b.Health < 0 || b.Health > CodeIndestructible || b.Indestructible != (b.Health == CodeIndestructible) {
			return fmt.Errorf("sim: snapshot brick %d health %d: %w", i, b.Health, ErrInvalidSnapshot)
		}
	}
	for _, p := range s.PowerUps {
		if _, ok := ParsePowerUpType(p.Type); !ok {
			return fmt.Errorf("sim: snapshot power-up %q: %w", p.Type, ErrInvalidSnapshot)
		}
	}
	for _, e := range s.Effects {
		if _, ok := ParsePowerUpType(e.Type); !ok {
			return fmt.Errorf("sim: snapshot effect %q: %w", e.Type, ErrInvalidSnapshot)
		}
	}
	for i, e := range s.Enemies {
		if _, ok := ParseEnemyType(e.Type); !ok {
			return fmt.Errorf("sim: snapshot enemy %d type %q: %w", i, e.Type, ErrInvalidSnapshot)
		}
	}
	if s.TimeScale <= 0 {
		return fmt.Errorf("sim: snapshot time scale %v: %w", s.TimeScale, ErrInvalidSnapshot)
	}
	return nil
}

// Hash returns an FNV-1a digest of the snapshot for determinism checks.
func (s *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	// Encoding plain structs of numbers, strings and slices cannot fail.
	_ = json.NewEncoder(h).Encode(s)
	return h.Sum64()
}
