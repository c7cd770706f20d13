// Package telemetry records headless simulation runs and exports them as
// parquet for offline analysis.
package telemetry

import (
	"github.com/vovakirdan/tui-arkanoid/internal/games/arkanoid/sim"
)

// Row kinds.
const (
	KindLevel   = "level"
	KindSession = "session"
)

// Outcomes.
const (
	OutcomeCleared   = "cleared"
	OutcomeGameOver  = "game_over"
	OutcomeCompleted = "completed"
	OutcomeTimeout   = "timeout"
)

// Row is one finished level or one finished session.
type Row struct {
	Seed            int64  `parquet:"seed"`
	Kind            string `parquet:"kind,dict"`
	Level           int32  `parquet:"level"` // One-based
	Score           int32  `parquet:"score"`
	Ticks           int64  `parquet:"ticks"`
	BricksDestroyed int32  `parquet:"bricks_destroyed"`
	PowerUps        int32  `parquet:"powerups"`
	LivesLost       int32  `parquet:"lives_lost"`
	Enemies         int32  `parquet:"enemies_destroyed"`
	Outcome         string `parquet:"outcome,dict"`
}

type counters struct {
	bricks, powerUps, livesLost, enemies int32
}

func (c *counters) fill(r *Row) {
	r.BricksDestroyed = c.bricks
	r.PowerUps = c.powerUps
	r.LivesLost = c.livesLost
	r.Enemies = c.enemies
}

// Recorder turns a stream of events into rows. It is not safe for
// concurrent use; record one session at a time.
type Recorder struct {
	rows    []Row
	seed    int64
	level   counters
	session counters
	ended   bool
}

// Begin starts recording a session for seed.
func (r *Recorder) Begin(seed int64) {
	r.seed = seed
	r.level = counters{}
	r.session = counters{}
	r.ended = false
}

// Sink returns the event sink feeding the recorder.
func (r *Recorder) Sink() sim.EventSink {
	return r.observe
}

func (r *Recorder) observe(e sim.Event) {
	switch ev := e.(type) {
	case sim.BrickHit:
		if ev.Destroyed {
			r.level.bricks++
			r.session.bricks++
		}
	case sim.PowerUpCollected:
		r.level.powerUps++
		r.session.powerUps++
	case sim.LifeLost:
		r.level.livesLost++
		r.session.livesLost++
	case sim.EnemyExploded:
		r.level.enemies++
		r.session.enemies++
	case sim.LevelCleared:
		r.levelRow(ev.Level, ev.Score, ev.Ticks, OutcomeCleared)
	case sim.GameOver:
		r.levelRow(ev.Level, ev.Score, ev.Ticks, OutcomeGameOver)
		r.sessionRow(ev.Level, ev.Score, ev.Ticks, OutcomeGameOver)
	case sim.GameCompleted:
		last := int(r.lastLevel())
		r.sessionRow(last, ev.Score, ev.Ticks, OutcomeCompleted)
	}
}

func (r *Recorder) levelRow(level, score int, ticks uint64, outcome string) {
	row := Row{
		Seed:    r.seed,
		Kind:    KindLevel,
		Level:   int32(level + 1),
		Score:   int32(score),
		Ticks:   int64(ticks),
		Outcome: outcome,
	}
	r.level.fill(&row)
	r.rows = append(r.rows, row)
	r.level = counters{}
}

func (r *Recorder) sessionRow(level, score int, ticks uint64, outcome string) {
	if r.ended {
		return
	}
	row := Row{
		Seed:    r.seed,
		Kind:    KindSession,
		Level:   int32(level + 1),
		Score:   int32(score),
		Ticks:   int64(ticks),
		Outcome: outcome,
	}
	r.session.fill(&row)
	r.rows = append(r.rows, row)
	r.ended = true
}

// lastLevel returns the zero-based level of the most recent level row.
func (r *Recorder) lastLevel() int32 {
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].Seed == r.seed && r.rows[i].Kind == KindLevel {
			return r.rows[i].Level - 1
		}
	}
	return 0
}

// End closes the session. A session that never reached game over or
// completion is recorded as a timeout.
func (r *Recorder) End(level, score int, ticks uint64) {
	r.sessionRow(level, score, ticks, OutcomeTimeout)
}

// Rows returns everything recorded so far.
func (r *Recorder) Rows() []Row {
	return r.rows
}
