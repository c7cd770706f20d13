package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
	"github.com/vovakirdan/tui-arkanoid/internal/games/arkanoid/sim"
	"github.com/vovakirdan/tui-arkanoid/internal/storage"
)

const (
	// holdTicks keeps a movement key active between terminal key repeats.
	holdTicks = 8
	// statusTicks is how long a status message stays on the help line.
	statusTicks = 120
	// DefaultSaveSlot is used when no slot name is configured.
	DefaultSaveSlot = "quicksave"
)

// Saver is implemented by games that can snapshot their session.
type Saver interface {
	Snapshot() (sim.Snapshot, error)
}

// Resizer is implemented by games that can adapt rendering to a new size
// without restarting the session.
type Resizer interface {
	Resize(w, h int)
}

// Option customizes a Model.
type Option func(*Model)

// WithSaveSlot sets the slot ctrl+s writes to.
func WithSaveSlot(name string) Option {
	return func(m *Model) { m.saveSlot = name }
}

// WithLogger sets the logger for storage failures.
func WithLogger(logger *log.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

// WithoutReset makes Init keep the game's current session, for a game
// restored from a save before the program starts.
func WithoutReset() Option {
	return func(m *Model) { m.skipReset = true }
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game   core.Game
	screen *core.Screen
	store  *storage.Store
	config core.RuntimeConfig
	logger *log.Logger

	keys KeyMap
	help help.Model

	held      map[core.Action]int
	pressed   core.InputFrame
	gameState core.GameState

	saveSlot   string
	status     string
	statusLeft int
	skipReset  bool
	quitting   bool
	scoreSaved bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game core.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	m := Model{
		game:     game,
		screen:   core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:    store,
		config:   cfg,
		logger:   log.Default(),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		held:     make(map[core.Action]int),
		pressed:  core.NewInputFrame(),
		saveSlot: DefaultSaveSlot,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.help.Width = cfg.ScreenW
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	if !m.skipReset {
		m.game.Reset(m.gameConfig())
	}
	return tickCmd(m.config.TickRate)
}

// gameConfig is the runtime config minus the help line.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = max(cfg.ScreenH-1, 1)
	return cfg
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	switch {
	case action == core.ActionNone:
		return m, nil
	case action == core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionSave:
		m.save()
		return m, nil
	case Held(action):
		m.held[action] = holdTicks
		// Opposite direction cancels the other hold
		switch action {
		case core.ActionLeft:
			delete(m.held, core.ActionRight)
		case core.ActionRight:
			delete(m.held, core.ActionLeft)
		}
	default:
		m.pressed.Set(action)
	}
	return m, nil
}

// handleResize adapts the screen without restarting a running session.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	gc := m.gameConfig()
	m.screen.Resize(gc.ScreenW, gc.ScreenH)
	m.help.Width = msg.Width

	if r, ok := m.game.(Resizer); ok {
		r.Resize(gc.ScreenW, gc.ScreenH)
	} else if !m.gameState.Finished() {
		m.game.Reset(gc)
	}
	return m, nil
}

// frame merges held and one-shot actions for this tick.
func (m Model) frame() core.InputFrame {
	f := m.pressed.Clone()
	for a, left := range m.held {
		if left > 0 {
			f.Set(a)
		}
	}
	return f
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	frame := m.frame()

	if frame.Has(core.ActionRestart) && m.gameState.Finished() {
		// Fresh seed for the new session
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.gameConfig())
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.pressed.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(frame)
	m.gameState = result.State

	// Record the score once per finished session
	if m.gameState.Finished() && !m.scoreSaved {
		m.recordScore()
		m.scoreSaved = true
	}

	for a, left := range m.held {
		if left <= 1 {
			delete(m.held, a)
		} else {
			m.held[a] = left - 1
		}
	}
	m.pressed.Clear()
	if m.statusLeft > 0 {
		m.statusLeft--
	}

	return m, tickCmd(m.config.TickRate)
}

func (m *Model) recordScore() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	_, err := m.store.SaveScore(m.game.ID(), m.gameState.Score, m.gameState.Level+1, m.gameState.Completed)
	if err != nil {
		m.logger.Warn("could not record score", "err", err)
	}
}

// save writes the session to the configured slot.
func (m *Model) save() {
	saver, ok := m.game.(Saver)
	switch {
	case !ok:
		m.setStatus("this game cannot be saved")
		return
	case m.store == nil:
		m.setStatus("no database, save disabled")
		return
	}

	snap, err := saver.Snapshot()
	if err == nil {
		err = m.store.SaveSnapshot(m.saveSlot, snap)
	}
	if err != nil {
		m.logger.Warn("save failed", "slot", m.saveSlot, "err", err)
		m.setStatus("save failed: " + err.Error())
		return
	}
	m.setStatus(fmt.Sprintf("saved to slot %q", m.saveSlot))
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusLeft = statusTicks
}

// Status returns the current status line message, if any.
func (m Model) Status() string {
	if m.statusLeft > 0 {
		return m.status
	}
	return ""
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := m.help.View(m.keys)
	if s := m.Status(); s != "" {
		footer = statusStyle.Render(s)
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// Run starts the Bubble Tea program with the given model.
func Run(game core.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
