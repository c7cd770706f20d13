package sim

import "fmt"

// RoundService loads levels and tracks progression.
//
// A level moves through Loading, Playing (paused until started), Cleared
// (LevelTransitionPending), Transitioning and then either Loading the next
// level or Completed.
type RoundService struct {
	levels  LevelSource
	bricks  *BricksService
	balls   *BallService
	paddles *PaddleService
}

// NewRoundService creates a round service over the given level source.
func NewRoundService(levels LevelSource, bricks *BricksService, balls *BallService, paddles *PaddleService) *RoundService {
	return &RoundService{levels: levels, bricks: bricks, balls: balls, paddles: paddles}
}

// LevelCount returns the number of levels available.
func (s *RoundService) LevelCount() int {
	return s.levels.Count()
}

// IsLastLevel reports whether the state is on the final level.
func (s *RoundService) IsLastLevel(state *GameState) bool {
	return state.Level >= s.levels.Count()-1
}

// LoadLevel rebuilds the playfield for level index. Transient entities and
// effects are cleared, the paddle returns to base width and the primary ball
// is docked. The session is left running but paused, awaiting Start.
// A level that cannot be loaded leaves the state untouched.
func (s *RoundService) LoadLevel(state *GameState, index int) error {
	bricks, err := s.bricks.CreateBricksFromResource(s.levels, index)
	if err != nil {
		return err
	}

	state.Level = index
	state.Bricks = bricks
	state.BricksRemaining = s.bricks.RecalculateBricksRemaining(bricks)

	state.ExtraBalls = nil
	state.Bullets = nil
	state.PowerUps = nil
	state.Enemies = nil
	state.ActivePowerUps.Reset()
	state.LaserCooldown = 0
	state.TimeScale = 1.0
	state.EnemySpawnTimer = 0

	s.paddles.SetWidth(&state.Paddle, s.paddles.BaseWidth(), state.WorldW)
	s.balls.ResetOnPaddle(&state.Ball, &state.Paddle)

	state.LevelTransitionPending = false
	state.Running = true
	state.Paused = true
	state.AwaitingStart = true
	return nil
}

// LoadNextLevel loads the level after the current one. On the last level it
// marks the game completed instead and reports true; bricks are left as
// they are.
func (s *RoundService) LoadNextLevel(state *GameState) (completed bool, err error) {
	if s.IsLastLevel(state) {
		state.GameCompleted = true
		state.Running = false
		state.LevelTransitionPending = false
		return true, nil
	}
	if err := s.LoadLevel(state, state.Level+1); err != nil {
		return false, fmt.Errorf("sim: advance from level %d: %w", state.Level, err)
	}
	return false, nil
}
