package sim

// Event is a domain notification published by GameService.
// The set of events is closed; the private marker keeps it that way.
type Event interface {
	simEvent()
	// Kind returns a stable snake_case name for logs and wire formats.
	Kind() string
}

// EventSink receives events. It must not block and must not call back
// into the GameService that published the event.
type EventSink func(Event)

// Fanout returns a sink that forwards every event to each non-nil sink in order.
func Fanout(sinks ...EventSink) EventSink {
	active := make([]EventSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			active = append(active, s)
		}
	}
	return func(e Event) {
		for _, s := range active {
			s(e)
		}
	}
}

// LevelStarted is published when play begins on a freshly loaded level.
type LevelStarted struct {
	Level int `json:"level"`
}

func (LevelStarted) simEvent()    {}
func (LevelStarted) Kind() string { return "level_started" }

// LevelCleared is published once when the last breakable brick goes.
type LevelCleared struct {
	Level int    `json:"level"`
	Score int    `json:"score"`
	Ticks uint64 `json:"ticks"`
}

func (LevelCleared) simEvent()    {}
func (LevelCleared) Kind() string { return "level_cleared" }

// GameOver is published when the last life is lost.
type GameOver struct {
	Level int    `json:"level"`
	Score int    `json:"score"`
	Ticks uint64 `json:"ticks"`
}

func (GameOver) simEvent()    {}
func (GameOver) Kind() string { return "game_over" }

// GameCompleted is published when the final level is confirmed cleared.
type GameCompleted struct {
	Score int    `json:"score"`
	Ticks uint64 `json:"ticks"`
}

func (GameCompleted) simEvent()    {}
func (GameCompleted) Kind() string { return "game_completed" }

// PowerUpCollected is published when the paddle catches a capsule.
type PowerUpCollected struct {
	Type PowerUpType `json:"type"`
}

func (PowerUpCollected) simEvent()    {}
func (PowerUpCollected) Kind() string { return "powerup_collected" }

// PowerUpActivated is published when an effect starts. Refreshing a running
// timed effect does not publish it again.
type PowerUpActivated struct {
	Type PowerUpType `json:"type"`
}

func (PowerUpActivated) simEvent()    {}
func (PowerUpActivated) Kind() string { return "powerup_activated" }

// PowerUpExpired is published once when a timed effect runs out.
type PowerUpExpired struct {
	Type PowerUpType `json:"type"`
}

func (PowerUpExpired) simEvent()    {}
func (PowerUpExpired) Kind() string { return "powerup_expired" }

// BallLaunched is published when a docked or caught ball leaves the paddle.
type BallLaunched struct {
	X  float64 `json:"x"`
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

func (BallLaunched) simEvent()    {}
func (BallLaunched) Kind() string { return "ball_launched" }

// BallLost is published for every ball that leaves the bottom. Last is
// true when it was the only ball in play.
type BallLost struct {
	Last bool `json:"last"`
}

func (BallLost) simEvent()    {}
func (BallLost) Kind() string { return "ball_lost" }

// LifeLost is published after lives are decremented.
type LifeLost struct {
	Lives int `json:"lives"`
}

func (LifeLost) simEvent()    {}
func (LifeLost) Kind() string { return "life_lost" }

// BrickHit is published for every ball or bullet impact on a brick.
type BrickHit struct {
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Destroyed      bool    `json:"destroyed"`
	Indestructible bool    `json:"indestructible"`
	ByBullet       bool    `json:"by_bullet"`
}

func (BrickHit) simEvent()    {}
func (BrickHit) Kind() string { return "brick_hit" }

// PaddleHit is published when a ball bounces off or is caught by the paddle.
type PaddleHit struct {
	Caught bool `json:"caught"`
}

func (PaddleHit) simEvent()    {}
func (PaddleHit) Kind() string { return "paddle_hit" }

// WallHit is published when a ball bounces off the playfield edges.
type WallHit struct{}

func (WallHit) simEvent()    {}
func (WallHit) Kind() string { return "wall_hit" }

// BulletFired is published when the laser paddle shoots.
type BulletFired struct {
	Count int `json:"count"`
}

func (BulletFired) simEvent()    {}
func (BulletFired) Kind() string { return "bullet_fired" }

// EnemySpawned is published when an enemy enters the playfield.
type EnemySpawned struct {
	Type EnemyType `json:"type"`
	X    float64   `json:"x"`
}

func (EnemySpawned) simEvent()    {}
func (EnemySpawned) Kind() string { return "enemy_spawned" }

// EnemyExploded is published when an enemy collides with the paddle,
// a ball or a bullet.
type EnemyExploded struct {
	Type   EnemyType `json:"type"`
	Source HitSource `json:"source"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
}

func (EnemyExploded) simEvent()    {}
func (EnemyExploded) Kind() string { return "enemy_exploded" }
