package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Grid-Invaders/internal/sim"
)

var (
	spaceColor      = color.RGBA{R: 6, G: 6, B: 18, A: 255}
	healthBackColor = color.RGBA{A: 255}
	healthFillColor = color.RGBA{G: 200, A: 255}
	healthEdgeColor = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	hudTextColor    = color.RGBA{R: 230, G: 230, B: 230, A: 255}
)

// spriteGeoM maps an imgW x imgH texture onto r. A negative scale mirrors
// the texture within r on that axis.
func spriteGeoM(imgW, imgH int, r sim.Rect, scale sim.Vec2) ebiten.GeoM {
	var m ebiten.GeoM
	m.Scale(r.W/float64(imgW)*scale.X, r.H/float64(imgH)*scale.Y)
	tx, ty := r.X, r.Y
	if scale.X < 0 {
		tx += r.W
	}
	if scale.Y < 0 {
		ty += r.H
	}
	m.Translate(tx, ty)
	return m
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	bg := g.assets.Background
	if bg == nil {
		screen.Fill(spaceColor)
		return
	}
	w, h := bg.Bounds().Dx(), bg.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.width)/float64(w), float64(g.height)/float64(h))
	screen.DrawImage(bg, op)
}

func (g *Game) drawSprite(screen *ebiten.Image, s sim.Sprite) {
	img := g.assets.texture(s)
	if img == nil {
		vector.FillRect(screen, float32(s.Rect.X), float32(s.Rect.Y), float32(s.Rect.W), float32(s.Rect.H), spriteColor(s), false)
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM = spriteGeoM(img.Bounds().Dx(), img.Bounds().Dy(), s.Rect, s.Scale)
	screen.DrawImage(img, op)
}

// drawHealthBar draws the black frame at full width and the green fill at the
// current health. Health above the maximum overflows the frame.
func (g *Game) drawHealthBar(screen *ebiten.Image, p sim.PlayerView) {
	cfg := g.world.Config()
	frame := cfg.HealthBar
	x, y := float32(frame.X), float32(frame.Y)
	vector.FillRect(screen, x, y, float32(frame.W), float32(frame.H), healthBackColor, false)
	if p.HealthBar.W > 0 {
		vector.FillRect(screen, x, y, float32(p.HealthBar.W), float32(frame.H), healthFillColor, false)
	}
	vector.StrokeRect(screen, x, y, float32(frame.W), float32(frame.H), float32(cfg.HealthBarStroke), healthEdgeColor, false)
}

func hudLine(s sim.Snapshot) string {
	return fmt.Sprintf("SCORE: %d   ROUND: %d   SHOTS: %d/%d", s.Score, s.Round, s.PlayerShots, s.ShotCap)
}

func (g *Game) drawHUD(screen *ebiten.Image, s sim.Snapshot) {
	bar := g.world.Config().HealthBar
	drawText(screen, g.assets.Face, hudLine(s), bar.X, bar.Bottom()+8)
}

// gameOverLines is the text shown instead of the world once the game is lost.
func gameOverLines(s sim.Snapshot) []string {
	return []string{
		fmt.Sprintf("ROUNDS: %d", s.Round),
		fmt.Sprintf("SCORE: %d", s.Score),
		"SKILL ISSUE",
		"",
		"R to restart   C to copy report",
	}
}

func (g *Game) drawGameOver(screen *ebiten.Image, s sim.Snapshot) {
	face := g.assets.Face
	lines := gameOverLines(s)
	lineH := face.Metrics().HAscent + face.Metrics().HDescent + 6
	y := (float64(g.height) - lineH*float64(len(lines))) / 2
	for _, line := range lines {
		w, _ := text.Measure(line, face, lineH)
		drawText(screen, face, line, (float64(g.width)-w)/2, y)
		y += lineH
	}
}

func drawText(screen *ebiten.Image, face text.Face, s string, x, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(hudTextColor)
	text.Draw(screen, s, face, op)
}
