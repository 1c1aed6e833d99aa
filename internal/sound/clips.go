package sound

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/Garsondee/Grid-Invaders/internal/sim"
)

// Player plays the sound for one effect signal. Implementations must not block.
type Player interface {
	Play(e sim.Effect)
}

// PlayAll plays every effect in order; a nil player is silent.
func PlayAll(p Player, effects []sim.Effect) {
	if p == nil {
		return
	}
	for _, e := range effects {
		p.Play(e)
	}
}

// Silent is a Player that discards everything, used with -mute or when no
// audio device is available.
type Silent struct{}

func (Silent) Play(sim.Effect) {}

// AssetName is the wav file that carries the sound for e.
func AssetName(e sim.Effect) string {
	switch e {
	case sim.EffectEnemyDestroyed:
		return "enemy_explosion.wav"
	case sim.EffectPlayerHit:
		return "hit.wav"
	case sim.EffectPlayerDestroyed:
		return "player_explosion.wav"
	case sim.EffectPlayerFired:
		return "laser_shoot.wav"
	}
	return ""
}

// Volumes maps effects to a linear playback volume; missing entries play at 1.
type Volumes map[sim.Effect]float64

// DefaultVolumes keeps enemy explosions quiet so they don't drown out the rest.
func DefaultVolumes() Volumes {
	return Volumes{
		sim.EffectEnemyDestroyed:  0.2,
		sim.EffectPlayerHit:       1.0,
		sim.EffectPlayerDestroyed: 1.0,
		sim.EffectPlayerFired:     1.0,
	}
}

// Of returns the volume for e.
func (v Volumes) Of(e sim.Effect) float64 {
	if vol, ok := v[e]; ok {
		return vol
	}
	return 1
}

// LoadClips buffers one clip per effect at the given rate. Each clip comes from
// dir/AssetName(e) when that file decodes, otherwise from Voice. The returned
// errors describe every file that could not be used; the map is always complete.
func LoadClips(dir string, rate beep.SampleRate) (map[sim.Effect]*beep.Buffer, []error) {
	clips := make(map[sim.Effect]*beep.Buffer, len(sim.Effects))
	var errs []error
	for _, e := range sim.Effects {
		buf, err := loadWavClip(filepath.Join(dir, AssetName(e)), rate)
		if err != nil {
			errs = append(errs, err)
			buf = beep.NewBuffer(clipFormat(rate))
			buf.Append(Voice(e, rate))
		}
		clips[e] = buf
	}
	return clips, errs
}

func clipFormat(rate beep.SampleRate) beep.Format {
	return beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
}

func loadWavClip(path string, rate beep.SampleRate) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sound %s: %w", path, err)
	}
	defer f.Close()

	s, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode sound %s: %w", path, err)
	}
	defer s.Close()

	buf := beep.NewBuffer(clipFormat(rate))
	if format.SampleRate == rate {
		buf.Append(s)
	} else {
		buf.Append(beep.Resample(4, format.SampleRate, rate, s))
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("read sound %s: %w", path, err)
	}
	return buf, nil
}

// PCM16 drains s into interleaved signed 16-bit little-endian stereo, the
// layout ebiten's audio players consume.
func PCM16(s beep.Streamer) []byte {
	var out []byte
	chunk := make([][2]float64, 512)
	for {
		n, ok := s.Stream(chunk)
		for _, frame := range chunk[:n] {
			for _, v := range frame {
				out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(v)))
			}
		}
		if !ok {
			return out
		}
	}
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}
