package telemetry

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-arkanoid/internal/games/arkanoid/sim"
)

func TestRecorderRows(t *testing.T) {
	var r Recorder
	r.Begin(7)
	sink := r.Sink()

	sink(sim.BrickHit{Destroyed: true})
	sink(sim.BrickHit{Destroyed: false})
	sink(sim.PowerUpCollected{Type: sim.PowerUpMultiBall})
	sink(sim.LevelCleared{Level: 0, Score: 10, Ticks: 100})
	sink(sim.BrickHit{Destroyed: true})
	sink(sim.LifeLost{Lives: 0})
	sink(sim.GameOver{Level: 1, Score: 20, Ticks: 250})
	r.End(1, 20, 250) // already ended, no extra row

	rows := r.Rows()
	if len(rows) != 3 {
		t.Fatalf("got %d rows, expected 3: %+v", len(rows), rows)
	}

	first := rows[0]
	if first.Kind != KindLevel || first.Level != 1 || first.BricksDestroyed != 1 || first.PowerUps != 1 || first.Outcome != OutcomeCleared {
		t.Errorf("first level row = %+v", first)
	}
	second := rows[1]
	if second.Level != 2 || second.BricksDestroyed != 1 || second.LivesLost != 1 || second.Outcome != OutcomeGameOver {
		t.Errorf("second level row = %+v", second)
	}
	session := rows[2]
	if session.Kind != KindSession || session.BricksDestroyed != 2 || session.Ticks != 250 || session.Seed != 7 {
		t.Errorf("session row = %+v", session)
	}
}

func TestRecorderTimeoutAndCompletion(t *testing.T) {
	var r Recorder
	r.Begin(1)
	r.End(0, 5, 99)

	r.Begin(2)
	r.Sink()(sim.LevelCleared{Level: 2, Score: 30, Ticks: 10})
	r.Sink()(sim.GameCompleted{Score: 30, Ticks: 12})

	rows := r.Rows()
	if len(rows) != 3 {
		t.Fatalf("got %d rows, expected 3", len(rows))
	}
	if rows[0].Outcome != OutcomeTimeout || rows[0].Seed != 1 {
		t.Errorf("timeout row = %+v", rows[0])
	}
	if rows[2].Outcome != OutcomeCompleted || rows[2].Level != 3 {
		t.Errorf("completed row = %+v", rows[2])
	}
}

func TestParquetRoundTrip(t *testing.T) {
	rows := []Row{
		{Seed: 1, Kind: KindLevel, Level: 1, Score: 100, Ticks: 600, BricksDestroyed: 10, Outcome: OutcomeCleared},
		{Seed: 1, Kind: KindSession, Level: 2, Score: 150, Ticks: 900, LivesLost: 4, Outcome: OutcomeGameOver},
	}
	path := filepath.Join(t.TempDir(), "out", "run.parquet")

	if err := WriteParquet(path, rows); err != nil {
		t.Fatalf("WriteParquet() failed: %v", err)
	}
	got, err := ReadParquet(path)
	if err != nil {
		t.Fatalf("ReadParquet() failed: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("read %d rows, expected %d", len(got), len(rows))
	}
	for i := range rows {
		if got[i] != rows[i] {
			t.Errorf("row %d = %+v, expected %+v", i, got[i], rows[i])
		}
	}
}
