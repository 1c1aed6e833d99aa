package game

import (
	"fmt"
	_ "image/jpeg" // space.jpg background
	_ "image/png"  // sprite textures
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"

	"github.com/Garsondee/Grid-Invaders/internal/sim"
)

const (
	hudFontSize = 18
	fontFile    = "Roboto-Regular.ttf"
)

// Assets holds every texture and the text face. A nil texture is drawn as a
// flat rectangle instead.
type Assets struct {
	Background *ebiten.Image
	Ship       *ebiten.Image
	Bullet     *ebiten.Image
	Enemies    [len(sim.Tiers)]*ebiten.Image // indexed by sim.Tier
	Face       text.Face
}

// textureFiles names the image file for each texture slot under images/.
func textureFiles(a *Assets) map[string]**ebiten.Image {
	files := map[string]**ebiten.Image{
		"space.jpg":  &a.Background,
		"ship.png":   &a.Ship,
		"bullet.png": &a.Bullet,
	}
	for _, t := range sim.Tiers {
		files[t.String()+".png"] = &a.Enemies[t]
	}
	return files
}

// LoadAssets reads textures from dir/images and the font from dir/fonts.
// It always returns usable Assets; errs lists what fell back.
func LoadAssets(dir string) (*Assets, []error) {
	a := &Assets{}
	var errs []error
	for name, slot := range textureFiles(a) {
		img, _, err := ebitenutil.NewImageFromFile(filepath.Join(dir, "images", name))
		if err != nil {
			errs = append(errs, fmt.Errorf("texture %s: %w", name, err))
			continue
		}
		*slot = img
	}

	face, err := loadFace(filepath.Join(dir, "fonts", fontFile), hudFontSize)
	if err != nil {
		errs = append(errs, err)
		face = text.NewGoXFace(basicfont.Face7x13)
	}
	a.Face = face
	return a, errs
}

func loadFace(path string, size float64) (text.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", path, err)
	}
	tt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face %s: %w", path, err)
	}
	return text.NewGoXFace(face), nil
}

// texture returns the image for a sprite, or nil when it fell back.
func (a *Assets) texture(s sim.Sprite) *ebiten.Image {
	switch s.Kind {
	case sim.SpritePlayer:
		return a.Ship
	case sim.SpriteProjectile:
		return a.Bullet
	case sim.SpriteEnemy:
		if int(s.Tier) >= 0 && int(s.Tier) < len(a.Enemies) {
			return a.Enemies[s.Tier]
		}
	}
	return nil
}
