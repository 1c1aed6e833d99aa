package game

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Grid-Invaders/internal/sim"
	"github.com/Garsondee/Grid-Invaders/internal/sound"
)

// statusTicks is how long a status message stays on screen.
const statusTicks = 3 * sim.TickRate

// Options configures a windowed game.
type Options struct {
	Config   sim.Config
	Seed     int64
	AssetDir string       // root holding images/ and fonts/
	Sounds   sound.Player // nil plays nothing
}

// Game adapts a sim.World to ebiten: one world tick per ebiten Update.
type Game struct {
	width  int
	height int
	world  *sim.World
	rng    *rand.Rand
	dt     float64
	assets *Assets
	sounds sound.Player

	feed     *EventFeed
	showFeed bool
	logSeen  int // sim log entries already pushed to the feed

	status      string
	statusTicks int

	copyText func(string) error
}

// New builds a game and loads its assets. Missing assets are logged and
// replaced by fallbacks; they never prevent the game from starting.
func New(opts Options) *Game {
	cfg := opts.Config
	assets, errs := LoadAssets(opts.AssetDir)
	for _, err := range errs {
		log.Printf("asset fallback: %v", err)
	}
	return &Game{
		width:    int(cfg.WindowWidth),
		height:   int(cfg.WindowHeight),
		world:    sim.NewWorld(cfg),
		rng:      rand.New(rand.NewSource(opts.Seed)), // #nosec G404 -- game only
		dt:       1.0 / sim.TickRate,
		assets:   assets,
		sounds:   opts.Sounds,
		feed:     NewEventFeed(),
		copyText: clipboard.WriteAll,
	}
}

// keyBinding maps physical keys to one action. Only the press edge counts:
// a direction stays latched after the key is released.
type keyBinding struct {
	keys   []ebiten.Key
	action sim.Action
}

var keyBindings = []keyBinding{
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, sim.ActionMoveLeft},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, sim.ActionMoveRight},
	{[]ebiten.Key{ebiten.KeySpace}, sim.ActionFire},
	{[]ebiten.Key{ebiten.KeyR}, sim.ActionRestart},
}

// pressedActions returns the actions whose keys were pressed this frame,
// at most once per action.
func pressedActions(justPressed func(ebiten.Key) bool) []sim.Action {
	var out []sim.Action
	for _, b := range keyBindings {
		for _, k := range b.keys {
			if justPressed(k) {
				out = append(out, b.action)
				break
			}
		}
	}
	return out
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for _, a := range pressedActions(inpututil.IsKeyJustPressed) {
		g.world.Apply(a)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.showFeed = !g.showFeed
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyReport()
	}

	g.world.Update(g.dt, g.rng)
	sound.PlayAll(g.sounds, g.world.DrainEffects())
	g.syncFeed()

	if g.statusTicks > 0 {
		g.statusTicks--
	}
	return nil
}

// syncFeed pushes log entries recorded since the last frame to the feed.
func (g *Game) syncFeed() {
	for _, e := range g.world.Log.Since(g.logSeen) {
		g.feed.Add(e)
	}
	g.logSeen = g.world.Log.Len()
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTicks = statusTicks
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.world.Snapshot()
	g.drawBackground(screen)

	if snap.Lost {
		g.drawGameOver(screen, snap)
	} else {
		for _, s := range snap.Sprites() {
			g.drawSprite(screen, s)
		}
		g.drawHealthBar(screen, snap.Player)
		g.drawHUD(screen, snap)
	}

	if g.showFeed {
		g.feed.Draw(screen, g.width-feedPanelWidth, g.height)
	}
	if g.statusTicks > 0 {
		ebitenutil.DebugPrintAt(screen, g.status, 8, g.height-18)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// World exposes the simulation, mainly for tests and the report copy.
func (g *Game) World() *sim.World { return g.world }

// spriteColor is the fallback fill when a texture is missing.
func spriteColor(s sim.Sprite) color.RGBA {
	switch s.Kind {
	case sim.SpritePlayer:
		return color.RGBA{R: 80, G: 220, B: 120, A: 255}
	case sim.SpriteProjectile:
		if s.Owner == sim.OwnerEnemy {
			return color.RGBA{R: 255, G: 90, B: 70, A: 255}
		}
		return color.RGBA{R: 250, G: 250, B: 200, A: 255}
	}
	switch s.Tier {
	case sim.TierA:
		return color.RGBA{R: 200, G: 120, B: 255, A: 255}
	case sim.TierB:
		return color.RGBA{R: 90, G: 200, B: 255, A: 255}
	default:
		return color.RGBA{R: 255, G: 220, B: 90, A: 255}
	}
}

func statusForCopy(err error) string {
	if err != nil {
		return fmt.Sprintf("copy failed: %v", err)
	}
	return "run report copied to clipboard"
}
