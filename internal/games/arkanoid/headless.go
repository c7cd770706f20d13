package arkanoid

import (
	"fmt"

	"github.com/vovakirdan/tui-arkanoid/internal/games/arkanoid/sim"
)

// RunResult summarizes one headless session.
type RunResult struct {
	Seed      int64
	Score     int
	Level     int
	Lives     int
	Ticks     uint64
	GameOver  bool
	Completed bool
	Hash      uint64
}

// RunHeadless plays a full session with the autopilot at a fixed dt until
// the game ends or maxTicks updates have run. Level transitions are
// confirmed immediately.
func RunHeadless(svc *sim.GameService, seed int64, dt float64, maxTicks int) (RunResult, error) {
	cfg := svc.Config()
	state, err := svc.NewSession(cfg.World.Width, cfg.World.Height, seed)
	if err != nil {
		return RunResult{}, fmt.Errorf("arkanoid: headless session: %w", err)
	}

	var pilot Autopilot
	for range maxTicks {
		if state.GameOver || state.GameCompleted {
			break
		}
		if state.LevelTransitionPending {
			if err := svc.ConfirmLevelTransition(state); err != nil {
				return RunResult{}, fmt.Errorf("arkanoid: headless transition: %w", err)
			}
			continue
		}
		if state.AwaitingStart {
			svc.Start(state)
		}
		in := pilot.Input(state, dt, cfg.Paddle.Speed)
		svc.Update(state, in, dt, cfg.World.Width, cfg.World.Height)
	}

	snap := sim.TakeSnapshot(state)
	return RunResult{
		Seed:      seed,
		Score:     state.Score,
		Level:     state.Level,
		Lives:     state.Lives,
		Ticks:     state.Ticks,
		GameOver:  state.GameOver,
		Completed: state.GameCompleted,
		Hash:      snap.Hash(),
	}, nil
}
