package core

// Game is what the platform layer drives. Games contain pure logic with no
// terminal dependencies; the platform handles input mapping, timing and
// drawing the screen buffer.
type Game interface {
	// ID returns a stable identifier used for score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a new session sized for cfg.
	Reset(cfg RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in InputFrame) StepResult

	// Render draws the current state into the provided screen buffer.
	Render(dst *Screen)

	// State returns the current summary state.
	State() GameState
}
