package main

import (
	"flag"
	"log"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/Garsondee/Grid-Invaders/internal/game"
	"github.com/Garsondee/Grid-Invaders/internal/sim"
	"github.com/Garsondee/Grid-Invaders/internal/sound"
)

func main() {
	var seed int64
	var cols int
	var rows int
	var assets string
	var mute bool

	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "RNG seed")
	flag.IntVar(&cols, "cols", 10, "formation columns")
	flag.IntVar(&rows, "rows", 5, "formation rows")
	flag.StringVar(&assets, "assets", "assets", "directory holding images/, fonts/ and sounds/")
	flag.BoolVar(&mute, "mute", false, "disable sound")
	flag.Parse()

	cfg := sim.DefaultConfig()
	cfg.GridCols = cols
	cfg.GridRows = rows
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	var sounds sound.Player = sound.Silent{}
	if !mute {
		bank, errs := sound.NewBank(audio.NewContext(sound.SampleRate), filepath.Join(assets, "sounds"), sound.DefaultVolumes())
		for _, err := range errs {
			log.Printf("sound fallback: %v", err)
		}
		sounds = bank
	}

	g := game.New(game.Options{
		Config:   cfg,
		Seed:     seed,
		AssetDir: assets,
		Sounds:   sounds,
	})

	ebiten.SetWindowTitle("Grid Invaders")
	ebiten.SetWindowSize(int(cfg.WindowWidth), int(cfg.WindowHeight))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetTPS(sim.TickRate)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
