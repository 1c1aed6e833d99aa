package term

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Grid-Invaders/internal/sim"
)

// hudRows is the number of screen rows above the playfield.
const hudRows = 1

var (
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHealth   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	styleShot     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleEnemyHit = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleGameOver = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	tierGlyphs = [len(sim.Tiers)]rune{'&', 'M', 'W'}
	tierStyles = [len(sim.Tiers)]tcell.Style{
		tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
		tcell.StyleDefault.Foreground(tcell.ColorAqua),
		tcell.StyleDefault.Foreground(tcell.ColorOrange),
	}
)

// Renderer draws snapshots onto a terminal, scaling world pixels to cells.
type Renderer struct {
	screen tcell.Screen
	cfg    sim.Config
}

// NewRenderer creates a renderer for worlds built with cfg.
func NewRenderer(screen tcell.Screen, cfg sim.Config) *Renderer {
	return &Renderer{screen: screen, cfg: cfg}
}

// cellX maps a world x to a column of a w-column screen.
func (r *Renderer) cellX(x float64, w int) int {
	return clamp(int(x/r.cfg.WindowWidth*float64(w)), 0, w-1)
}

// cellY maps a world y to a row below the HUD of an h-row screen.
func (r *Renderer) cellY(y float64, h int) int {
	field := h - hudRows
	if field < 1 {
		return h - 1
	}
	return hudRows + clamp(int(y/r.cfg.WindowHeight*float64(field)), 0, field-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Draw clears the screen and renders s. It does not call Show.
func (r *Renderer) Draw(s sim.Snapshot) {
	r.screen.Clear()
	if s.Lost {
		r.drawGameOver(s)
		return
	}
	for _, sp := range s.Sprites() {
		r.drawSprite(sp)
	}
	r.drawHUD(s)
}

func (r *Renderer) drawSprite(sp sim.Sprite) {
	w, h := r.screen.Size()
	row := r.cellY(sp.Rect.CenterY(), h)
	switch sp.Kind {
	case sim.SpriteProjectile:
		glyph, style := '|', styleShot
		if sp.Owner == sim.OwnerEnemy {
			glyph, style = '!', styleEnemyHit
		}
		r.screen.SetContent(r.cellX(sp.Rect.CenterX(), w), row, glyph, nil, style)
	case sim.SpriteEnemy:
		glyph, style := '?', tcell.StyleDefault
		if int(sp.Tier) >= 0 && int(sp.Tier) < len(tierGlyphs) {
			glyph, style = tierGlyphs[sp.Tier], tierStyles[sp.Tier]
		}
		r.fillSpan(sp.Rect, row, w, glyph, style)
	case sim.SpritePlayer:
		r.fillSpan(sp.Rect, row, w, '^', stylePlayer)
		r.screen.SetContent(r.cellX(sp.Rect.CenterX(), w), row, 'A', nil, stylePlayer)
	}
}

// fillSpan covers every column rect spans on one row, at least one cell.
func (r *Renderer) fillSpan(rect sim.Rect, row, w int, glyph rune, style tcell.Style) {
	from, to := r.cellX(rect.X, w), r.cellX(rect.Right(), w)
	if to <= from {
		to = from + 1
	}
	for x := from; x < to && x < w; x++ {
		r.screen.SetContent(x, row, glyph, nil, style)
	}
}

// healthGauge renders health as ten cells; health beyond the maximum shows as '+'.
func healthGauge(health, full float64) string {
	const cells = 10
	filled := 0
	if health > 0 {
		filled = int(health / full * cells)
	}
	if filled > cells {
		return "[" + strings.Repeat("#", cells) + "]+"
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(" ", cells-filled) + "]"
}

func hudText(s sim.Snapshot) string {
	return fmt.Sprintf("SCORE %d  ROUND %d  SHOTS %d/%d", s.Score, s.Round, s.PlayerShots, s.ShotCap)
}

func (r *Renderer) drawHUD(s sim.Snapshot) {
	gauge := healthGauge(s.Player.Health, r.cfg.PlayerHealth)
	x := r.drawString(0, 0, "HP ", styleHUD)
	x = r.drawString(x, 0, gauge, styleHealth)
	r.drawString(x+2, 0, hudText(s), styleHUD)
}

func gameOverLines(s sim.Snapshot) []string {
	return []string{
		fmt.Sprintf("ROUNDS: %d", s.Round),
		fmt.Sprintf("SCORE: %d", s.Score),
		"SKILL ISSUE",
		"",
		"R to restart   Q to quit",
	}
}

func (r *Renderer) drawGameOver(s sim.Snapshot) {
	w, h := r.screen.Size()
	lines := gameOverLines(s)
	y := (h - len(lines)) / 2
	for i, line := range lines {
		style := styleHUD
		if i == 2 {
			style = styleGameOver
		}
		r.drawString((w-len(line))/2, y+i, line, style)
	}
}

// drawString writes s starting at (x, y) and returns the column after it.
func (r *Renderer) drawString(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
