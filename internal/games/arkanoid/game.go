// Package arkanoid adapts the deterministic simulation in sim to the
// platform's core.Game contract: it maps input frames to sim.Input, owns
// the session and draws it into a character screen.
package arkanoid

import (
	"fmt"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
	"github.com/vovakirdan/tui-arkanoid/internal/games/arkanoid/sim"
)

// GameID is the identifier used for scores and save slots.
const GameID = "arkanoid"

// Minimum screen size to render a playable field.
const (
	MinScreenW = 40
	MinScreenH = 16
)

// Game implements core.Game on top of sim.GameService.
type Game struct {
	cfg    config.ArkanoidConfig
	levels sim.LevelSource
	names  func(int) string
	sink   sim.EventSink

	svc     *sim.GameService
	state   *sim.GameState
	runtime core.RuntimeConfig
	err     error

	screenTooSmall bool
}

// Option customizes a Game.
type Option func(*Game)

// WithLevelNames sets the function used to title levels in overlays.
func WithLevelNames(names func(int) string) Option {
	return func(g *Game) { g.names = names }
}

// New creates a game over cfg and levels. Events are delivered to sink,
// which may be nil.
func New(cfg config.ArkanoidConfig, levels sim.LevelSource, sink sim.EventSink, opts ...Option) (*Game, error) {
	g := &Game{cfg: cfg, levels: levels, sink: sink}
	for _, opt := range opts {
		opt(g)
	}
	svc, err := sim.NewGameService(&g.cfg, levels, sink)
	if err != nil {
		return nil, fmt.Errorf("arkanoid: %w", err)
	}
	g.svc = svc
	return g, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Arkanoid"
}

// Reset starts a new session. The simulation always runs in the configured
// logical world; the screen size only affects rendering.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.runtime = rt
	g.screenTooSmall = rt.ScreenW < MinScreenW || rt.ScreenH < MinScreenH
	g.state, g.err = g.svc.NewSession(g.cfg.World.Width, g.cfg.World.Height, rt.Seed)
}

// Resize adapts rendering to a new screen without touching the session.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.screenTooSmall = w < MinScreenW || h < MinScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.state == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) && g.State().Finished() {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.state.AwaitingStart {
		if g.state.Paused {
			g.svc.Resume(g.state)
		} else {
			g.svc.Pause(g.state)
		}
	}

	switch {
	case g.state.LevelTransitionPending:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionLaunch) {
			if err := g.svc.ConfirmLevelTransition(g.state); err != nil {
				g.err = err
			}
		}
		return core.StepResult{State: g.State()}
	case g.state.AwaitingStart:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionLaunch) {
			g.svc.Start(g.state)
		}
	}

	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	g.svc.Update(g.state, toSimInput(in), g.runtime.DT(), g.cfg.World.Width, g.cfg.World.Height)
	return core.StepResult{State: g.State()}
}

// toSimInput maps platform actions to the simulation's control state.
func toSimInput(in core.InputFrame) sim.Input {
	return sim.Input{
		Left:   in.Has(core.ActionLeft),
		Right:  in.Has(core.ActionRight),
		Launch: in.Has(core.ActionLaunch),
		Fire:   in.Has(core.ActionFire),
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.state == nil {
		return core.GameState{}
	}
	s := g.state
	return core.GameState{
		Score:         s.Score,
		Lives:         s.Lives,
		Level:         s.Level,
		GameOver:      s.GameOver,
		Completed:     s.GameCompleted,
		Paused:        s.Paused && !s.AwaitingStart,
		AwaitingStart: s.AwaitingStart,
		LevelCleared:  s.LevelTransitionPending,
	}
}

// Err returns the last error the session hit, if any.
func (g *Game) Err() error {
	return g.err
}

// Session exposes the simulation state for read-only consumers.
func (g *Game) Session() *sim.GameState {
	return g.state
}

// Snapshot captures the session for a save slot.
func (g *Game) Snapshot() (sim.Snapshot, error) {
	if g.state == nil {
		return sim.Snapshot{}, fmt.Errorf("arkanoid: no session to snapshot")
	}
	return g.svc.Snapshot(g.state), nil
}

// Restore replaces the session with snap. The restored session is paused.
func (g *Game) Restore(snap sim.Snapshot) error {
	state, err := g.svc.Restore(snap)
	if err != nil {
		return fmt.Errorf("arkanoid: %w", err)
	}
	g.state = state
	g.err = nil
	return nil
}

func (g *Game) levelName(i int) string {
	if g.names != nil {
		if name := g.names(i); name != "" {
			return name
		}
	}
	return fmt.Sprintf("Level %d", i+1)
}

// Compile-time interface check
var _ core.Game = (*Game)(nil)
