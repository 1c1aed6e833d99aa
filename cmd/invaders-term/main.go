package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Grid-Invaders/internal/sim"
	"github.com/Garsondee/Grid-Invaders/internal/sound"
	"github.com/Garsondee/Grid-Invaders/internal/term"
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
	flag.StringVar(&assets, "assets", "assets", "directory holding sounds/")
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
		spk, errs := sound.NewSpeaker(filepath.Join(assets, "sounds"), sound.DefaultVolumes())
		for _, err := range errs {
			log.Printf("sound fallback: %v", err)
		}
		if err := spk.Init(); err != nil {
			log.Printf("no audio device, playing muted: %v", err)
		} else {
			defer spk.Close()
			sounds = spk
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.HideCursor()
	screen.Clear()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	world := sim.NewWorld(cfg)
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- game only
	if err := term.NewSession(screen, world, rng, sounds).Run(ctx); err != nil {
		screen.Fini()
		log.Fatal(err)
	}
}
