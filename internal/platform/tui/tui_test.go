package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
	"github.com/vovakirdan/tui-arkanoid/internal/games/arkanoid/sim"
	"github.com/vovakirdan/tui-arkanoid/internal/storage"
)

// fakeGame records the frames it is stepped with.
type fakeGame struct {
	frames []core.InputFrame
	state  core.GameState
	resets int
}

func (g *fakeGame) ID() string { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++; g.state = core.GameState{} }
func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState { return g.state }
func (g *fakeGame) Snapshot() (sim.Snapshot, error) { return sim.Snapshot{Score: g.state.Score}, nil }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.state}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestKeyMapActions(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{runeKey("d"), core.ActionRight},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionLaunch},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{runeKey("p"), core.ActionPause},
		{tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionSave},
		{runeKey("q"), core.ActionQuit},
		{runeKey("z"), core.ActionNone},
	}
	for _, tc := range tests {
		if got := keys.Action(tc.msg); got != tc.want {
			t.Errorf("Action(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
		}
	}
}

func TestMovementIsHeldBetweenRepeats(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})

	m = step(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	for range holdTicks + 2 {
		m = step(t, m, TickMsg{})
	}

	held := 0
	for _, f := range g.frames {
		if f.Has(core.ActionLeft) {
			held++
		}
	}
	if held != holdTicks {
		t.Errorf("left held for %d ticks, expected %d", held, holdTicks)
	}
}

func TestOppositeDirectionCancelsHold(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})

	m = step(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyRight})
	step(t, m, TickMsg{})

	last := g.frames[len(g.frames)-1]
	if last.Has(core.ActionLeft) || !last.Has(core.ActionRight) {
		t.Errorf("frame = %v, expected only right", last.Actions)
	}
}

func TestOneShotActionsLastOneTick(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = step(t, m, TickMsg{})
	step(t, m, TickMsg{})

	if !g.frames[0].Has(core.ActionConfirm) || g.frames[1].Has(core.ActionConfirm) {
		t.Error("confirm should be delivered for exactly one tick")
	}
}

func TestScoreRecordedOnceAndSave(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "tui.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	g := &fakeGame{state: core.GameState{Score: 120, Level: 1, GameOver: true}}
	m := NewModel(g, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}, WithSaveSlot("slot-a"))

	m = step(t, m, TickMsg{})
	m = step(t, m, TickMsg{})

	scores, _ := store.TopScores("fake", 10)
	if len(scores) != 1 || scores[0].Score != 120 || scores[0].Level != 2 {
		t.Errorf("scores = %+v, expected one entry of 120 at level 2", scores)
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.Contains(m.Status(), "slot-a") {
		t.Errorf("status = %q, expected save confirmation", m.Status())
	}
	if _, err := store.LoadSnapshot("slot-a"); err != nil {
		t.Errorf("LoadSnapshot() failed: %v", err)
	}
}

func TestRenderScreenStylesOnlyColoredRuns(t *testing.T) {
	s := core.NewScreen(6, 1)
	s.DrawText(0, 0, "ab")
	s.SetColored(2, 0, 'X', core.ColorRed)

	out := RenderScreen(s)
	if !strings.HasPrefix(out, "ab") {
		t.Errorf("default run should be unstyled, got %q", out)
	}
	if !strings.Contains(out, "X") {
		t.Errorf("colored cell missing from %q", out)
	}
}

func TestViewIncludesFooter(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})

	view := m.View()
	if !strings.HasPrefix(view, "fake") {
		t.Errorf("view should start with the game screen, got %q", view[:min(len(view), 20)])
	}
	if !strings.Contains(view, "launch") {
		t.Error("view should include the help bar")
	}
}

func TestScoreboardTabsAndDelete(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "board.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	store.SaveScore("arkanoid", 300, 3, true)
	store.SaveScore("arkanoid", 100, 1, false)
	if err := store.SaveSnapshot("slot-a", sim.Snapshot{Score: 50, Lives: 2}); err != nil {
		t.Fatal(err)
	}

	m := NewScoreboardModel(store, "arkanoid", 100, 30)
	if view := m.View(); !strings.Contains(view, "300") || !strings.Contains(view, "2 games") {
		t.Errorf("scores view missing entries or stats:\n%s", view)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.Tab() != TabSaves {
		t.Fatalf("tab = %v, expected saves", m.Tab())
	}
	if !strings.Contains(m.View(), "slot-a") {
		t.Error("saves view should list slot-a")
	}

	next, _ = m.Update(runeKey("x"))
	m = next.(ScoreboardModel)
	if saves, _ := store.ListSaves(); len(saves) != 0 {
		t.Errorf("saves after delete = %+v, expected none", saves)
	}
	if !strings.Contains(m.View(), "No saved games") {
		t.Error("saves view should report an empty list")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, "arkanoid", 80, 24)
	if !strings.Contains(m.View(), "No database") {
		t.Error("expected a no-database message")
	}
}
