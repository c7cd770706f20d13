package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
)

const (
	testWorldW = 800.0
	testWorldH = 600.0
	testDT     = 1.0 / 60.0
)

// quietConfig returns the default config with random drops and enemies off
// so tests only see what they set up.
func quietConfig() config.ArkanoidConfig {
	cfg := config.DefaultArkanoidConfig()
	cfg.PowerUps.DropChance = 0
	cfg.Enemies.Enabled = false
	return cfg
}

// eventLog collects published events.
type eventLog struct {
	events []Event
}

func (l *eventLog) sink(e Event) {
	l.events = append(l.events, e)
}

func (l *eventLog) count(kind string) int {
	n := 0
	for _, e := range l.events {
		if e.Kind() == kind {
			n++
		}
	}
	return n
}

// newTestGame builds a GameService over levels and a started session.
func newTestGame(t *testing.T, cfg config.ArkanoidConfig, levels StaticLevels) (*GameService, *GameState, *eventLog) {
	t.Helper()
	log := &eventLog{}
	g, err := NewGameService(&cfg, levels, log.sink)
	if err != nil {
		t.Fatalf("NewGameService() failed: %v", err)
	}
	state, err := g.NewSession(testWorldW, testWorldH, 42)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	g.Start(state)
	return g, state, log
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// oneBrick is a level with a single one-hit brick at the grid origin.
var oneBrick = StaticLevels{{{1}}}
