package arkanoid

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
	"github.com/vovakirdan/tui-arkanoid/internal/games/arkanoid/sim"
)

// Visual characters for rendering
const (
	PaddleChar       = '='
	BallChar         = '●'
	BulletChar       = '|'
	BrickChar        = '█'
	SolidBrickChar   = '▓'
	hudRows          = 2 // Score line and effects line
	playfieldBorders = 2
)

// brickColors is indexed by remaining health, capped at the last entry.
var brickColors = []core.Color{
	core.ColorDefault,
	core.ColorCyan,
	core.ColorGreen,
	core.ColorYellow,
	core.ColorOrange,
	core.ColorMagenta,
	core.ColorBrightRed,
}

// powerUpGlyphs uses the classic capsule letters.
var powerUpGlyphs = [sim.PowerUpTypeCount]struct {
	r rune
	c core.Color
}{
	sim.PowerUpExpandPaddle: {'E', core.ColorBrightBlue},
	sim.PowerUpLaserPaddle:  {'L', core.ColorBrightRed},
	sim.PowerUpCatchBall:    {'C', core.ColorBrightGreen},
	sim.PowerUpMultiBall:    {'D', core.ColorBrightCyan},
	sim.PowerUpExtraLife:    {'P', core.ColorGray},
	sim.PowerUpSlowBall:     {'S', core.ColorOrange},
}

var enemyGlyphs = [sim.EnemyTypeCount]rune{
	sim.EnemyCone:     '^',
	sim.EnemyCube:     '■',
	sim.EnemyMolecule: '*',
	sim.EnemyPyramid:  '▲',
}

// viewport maps world coordinates onto the playfield cells inside the border.
type viewport struct {
	left, top  int
	cols, rows int
	sx, sy     float64
}

func newViewport(dst *core.Screen, worldW, worldH float64) viewport {
	v := viewport{
		left: 1,
		top:  hudRows + 1,
		cols: dst.Width() - playfieldBorders,
		rows: dst.Height() - hudRows - playfieldBorders,
	}
	v.sx = float64(v.cols) / worldW
	v.sy = float64(v.rows) / worldH
	return v
}

func (v viewport) col(x float64) int {
	return v.left + core.Clamp(int(math.Floor(x*v.sx)), 0, v.cols-1)
}

func (v viewport) row(y float64) int {
	return v.top + int(math.Floor(y*v.sy))
}

func (v viewport) visible(row int) bool {
	return row >= v.top && row < v.top+v.rows
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.state == nil {
		msg := "Session failed to start"
		if g.err != nil {
			msg = g.err.Error()
		}
		dst.DrawTextCenteredColored(dst.Height()/2, msg, core.ColorRed)
		return
	}

	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	v := newViewport(dst, g.cfg.World.Width, g.cfg.World.Height)

	g.renderHUD(dst)
	dst.DrawBox(0, hudRows, dst.Width(), dst.Height()-hudRows, core.ColorGray)
	g.renderBricks(dst, v)
	g.renderPowerUps(dst, v)
	g.renderEnemies(dst, v)
	g.renderBullets(dst, v)
	g.renderPaddle(dst, v)
	g.renderBalls(dst, v)
	g.renderOverlay(dst)
}

// renderHUD draws score, lives and level on row 0 and active effects on row 1.
func (g *Game) renderHUD(dst *core.Screen) {
	s := g.state
	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", s.Score), core.ColorBrightWhite)
	dst.DrawTextCentered(0, fmt.Sprintf("Lives: %d", s.Lives))

	levelText := fmt.Sprintf("Level: %d/%d", s.Level+1, g.levels.Count())
	dst.DrawText(dst.Width()-len(levelText)-1, 0, levelText)

	var effects []string
	s.ActivePowerUps.Each(func(t sim.PowerUpType, remaining float64) {
		effects = append(effects, fmt.Sprintf("%s %.0fs", effectLabel(t), math.Ceil(remaining)))
	})
	if len(effects) > 0 {
		dst.DrawTextColored(1, 1, strings.Join(effects, "  "), core.ColorBrightYellow)
	}
}

func effectLabel(t sim.PowerUpType) string {
	switch t {
	case sim.PowerUpExpandPaddle:
		return "EXPAND"
	case sim.PowerUpLaserPaddle:
		return "LASER"
	case sim.PowerUpSlowBall:
		return "SLOW"
	default:
		return t.String()
	}
}

// renderBricks draws every brick still standing. The last cell of a brick
// is left blank when the brick is wide enough, so neighbours read apart.
func (g *Game) renderBricks(dst *core.Screen, v viewport) {
	for i := range g.state.Bricks {
		b := &g.state.Bricks[i]
		if b.Destroyed() {
			continue
		}
		y := v.row(b.Y + b.Height/2)
		if !v.visible(y) {
			continue
		}
		x0 := v.col(b.X)
		x1 := max(v.col(b.X+b.Width)-1, x0)
		if x1-x0 >= 2 {
			x1--
		}

		glyph, color := BrickChar, brickColors[min(b.Health, len(brickColors)-1)]
		if b.Indestructible {
			glyph, color = SolidBrickChar, core.ColorGray
		}
		for x := x0; x <= x1; x++ {
			dst.SetColored(x, y, glyph, color)
		}
	}
}

func (g *Game) renderPowerUps(dst *core.Screen, v viewport) {
	for _, p := range g.state.PowerUps {
		if p.Collected || p.Type < 0 || p.Type >= sim.PowerUpTypeCount {
			continue
		}
		y := v.row(p.Y + p.Height/2)
		if !v.visible(y) {
			continue
		}
		glyph := powerUpGlyphs[p.Type]
		dst.SetColored(v.col(p.X+p.Width/2), y, glyph.r, glyph.c)
	}
}

func (g *Game) renderEnemies(dst *core.Screen, v viewport) {
	for _, e := range g.state.Enemies {
		if e.Type < 0 || e.Type >= sim.EnemyTypeCount {
			continue
		}
		y := v.row(e.Y + e.Height/2)
		if v.visible(y) {
			dst.SetColored(v.col(e.X+e.Width/2), y, enemyGlyphs[e.Type], core.ColorBrightMagenta)
		}
	}
}

func (g *Game) renderBullets(dst *core.Screen, v viewport) {
	for _, b := range g.state.Bullets {
		y := v.row(b.Y)
		if v.visible(y) {
			dst.SetColored(v.col(b.X+b.Width/2), y, BulletChar, core.ColorBrightYellow)
		}
	}
}

// renderPaddle draws the paddle; it turns red while the laser is armed.
func (g *Game) renderPaddle(dst *core.Screen, v viewport) {
	p := g.state.Paddle
	color := core.ColorBrightWhite
	if g.state.ActivePowerUps.Active(sim.PowerUpLaserPaddle) {
		color = core.ColorBrightRed
	}
	y := min(v.row(p.Y), v.top+v.rows-1)
	x0 := v.col(p.X)
	x1 := max(v.col(p.X+p.Width)-1, x0)
	for x := x0; x <= x1; x++ {
		dst.SetColored(x, y, PaddleChar, color)
	}
}

func (g *Game) renderBalls(dst *core.Screen, v viewport) {
	for i := range g.state.BallCount() {
		b := g.state.BallAt(i)
		y := v.row(b.Y)
		if !b.Moving {
			// A docked ball sits on the row above the paddle
			y = min(v.row(g.state.Paddle.Y), v.top+v.rows-1) - 1
		}
		if v.visible(y) {
			dst.SetColored(v.col(b.X), y, BallChar, core.ColorBrightWhite)
		}
	}
}

// renderOverlay draws state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	s := g.state
	switch {
	case s.GameOver:
		g.drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", s.Score))
	case s.GameCompleted:
		g.drawCenteredBox(dst, "YOU WIN!", fmt.Sprintf("Final Score: %d  |  Press R to restart", s.Score))
	case s.LevelTransitionPending:
		g.drawCenteredBox(dst, fmt.Sprintf("%s CLEARED", strings.ToUpper(g.levelName(s.Level))), "Press ENTER to continue")
	case s.AwaitingStart:
		g.drawCenteredBox(dst, g.levelName(s.Level), "Press ENTER to start")
	case s.Paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume  |  Ctrl+S to save")
	case !g.anyBallMoving():
		dst.DrawTextCentered(dst.Height()-1, " Press SPACE to launch ")
	}
}

func (g *Game) anyBallMoving() bool {
	for i := range g.state.BallCount() {
		if g.state.BallAt(i).Moving {
			return true
		}
	}
	return false
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorWhite)

	dst.DrawTextCenteredColored(boxY+1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(boxY+3, subtitle)
}
