package arkanoid

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arkanoid/internal/games/arkanoid/sim"
)

// LogSink returns an event sink that logs milestones at info level and
// everything else at debug level.
func LogSink(logger *log.Logger) sim.EventSink {
	return func(e sim.Event) {
		switch ev := e.(type) {
		case sim.LevelCleared:
			logger.Info("level cleared", "level", ev.Level+1, "score", ev.Score)
		case sim.GameOver:
			logger.Info("game over", "level", ev.Level+1, "score", ev.Score)
		case sim.GameCompleted:
			logger.Info("game completed", "score", ev.Score)
		case sim.LifeLost:
			logger.Debug("life lost", "lives", ev.Lives)
		case sim.PowerUpActivated:
			logger.Debug("power-up activated", "type", ev.Type)
		case sim.EnemyExploded:
			logger.Debug("enemy exploded", "type", ev.Type, "source", ev.Source)
		default:
			logger.Debug("event", "kind", e.Kind())
		}
	}
}
