package sound

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/Garsondee/Grid-Invaders/internal/sim"
)

// WaveType selects an oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    *rand.Rand
}

// NewOscillator returns a finite streamer of duration worth of one wave shape.
// Noise is drawn from a fixed seed so a voice always renders the same samples.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		noise:    rand.New(rand.NewSource(int64(freq) + 1)), // #nosec G404 -- audio noise
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope shapes a stream with a linear attack and release.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s so it ramps up over attack and down over the final release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. log2(0) is -Inf, so zero is silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

const (
	laserDuration     = 70 * time.Millisecond
	hitDuration       = 90 * time.Millisecond
	explosionDuration = 180 * time.Millisecond
	crashDuration     = 200 * time.Millisecond
	rumbleDuration    = 350 * time.Millisecond
)

// VoiceDuration is how long the synthesized voice for e lasts.
func VoiceDuration(e sim.Effect) time.Duration {
	switch e {
	case sim.EffectPlayerFired:
		return laserDuration
	case sim.EffectPlayerHit:
		return hitDuration
	case sim.EffectEnemyDestroyed:
		return explosionDuration
	case sim.EffectPlayerDestroyed:
		return crashDuration + rumbleDuration
	}
	return 0
}

// Voice synthesizes the stand-in sound for an effect at full volume.
// It returns nil for an unknown effect.
func Voice(e sim.Effect, rate beep.SampleRate) beep.Streamer {
	switch e {
	case sim.EffectPlayerFired:
		var src beep.Streamer
		if tone, err := generators.SineTone(rate, 950); err == nil {
			src = beep.Take(rate.N(laserDuration), tone)
		} else {
			src = NewOscillator(950, laserDuration, WaveSine, rate)
		}
		return NewEnvelope(src, laserDuration, 2*time.Millisecond, 40*time.Millisecond, rate)

	case sim.EffectPlayerHit:
		osc := NewOscillator(220, hitDuration, WaveSquare, rate)
		return newVolume(NewEnvelope(osc, hitDuration, time.Millisecond, 60*time.Millisecond, rate), 0.6)

	case sim.EffectEnemyDestroyed:
		noise := NewOscillator(0, explosionDuration, WaveNoise, rate)
		return NewEnvelope(noise, explosionDuration, 2*time.Millisecond, 150*time.Millisecond, rate)

	case sim.EffectPlayerDestroyed:
		crash := NewEnvelope(NewOscillator(160, crashDuration, WaveSaw, rate),
			crashDuration, 5*time.Millisecond, 50*time.Millisecond, rate)
		rumble := NewEnvelope(NewOscillator(0, rumbleDuration, WaveNoise, rate),
			rumbleDuration, 0, 300*time.Millisecond, rate)
		return beep.Seq(crash, newVolume(rumble, 0.7))
	}
	return nil
}
