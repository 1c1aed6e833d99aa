package sound

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/Garsondee/Grid-Invaders/internal/sim"
)

// SampleRate is shared by the ebiten bank and the terminal speaker.
const SampleRate = 48000

// Bank plays effect sounds through an ebiten audio context. Every effect owns
// one player that is rewound on each trigger, so a sound restarts rather
// than overlapping itself.
type Bank struct {
	players map[sim.Effect]*audio.Player
}

// NewBank loads dir/AssetName(e) for every effect and synthesizes the ones
// that are missing or unreadable. The errors are informational.
func NewBank(ctx *audio.Context, dir string, vols Volumes) (*Bank, []error) {
	b := &Bank{players: make(map[sim.Effect]*audio.Player, len(sim.Effects))}
	var errs []error
	for _, e := range sim.Effects {
		pcm, err := decodeWav(filepath.Join(dir, AssetName(e)))
		if err != nil {
			errs = append(errs, err)
			pcm = PCM16(Voice(e, beep.SampleRate(SampleRate)))
		}
		p := ctx.NewPlayerFromBytes(pcm)
		p.SetVolume(vols.Of(e))
		b.players[e] = p
	}
	return b, errs
}

// decodeWav reads a whole wav file resampled to SampleRate. The file is read
// up front so the players can be rewound freely.
func decodeWav(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sound %s: %w", path, err)
	}
	s, err := wav.DecodeWithSampleRate(SampleRate, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode sound %s: %w", path, err)
	}
	pcm, err := io.ReadAll(s)
	if err != nil {
		return nil, fmt.Errorf("decode sound %s: %w", path, err)
	}
	return pcm, nil
}

// Play restarts the sound for e.
func (b *Bank) Play(e sim.Effect) {
	p, ok := b.players[e]
	if !ok {
		return
	}
	restart(p, e)
}

// rewindPlayer is the part of *audio.Player that Play drives.
type rewindPlayer interface {
	Rewind() error
	Play()
}

// restart rewinds p and plays it. A player that cannot rewind is left alone
// rather than resumed mid-sound.
func restart(p rewindPlayer, e sim.Effect) bool {
	if err := p.Rewind(); err != nil {
		log.Printf("sound: rewind %s: %v", e, err)
		return false
	}
	p.Play()
	return true
}
