package sound

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/Grid-Invaders/internal/sim"
)

// Speaker plays effect sounds through the beep speaker. Unlike Bank, each
// trigger adds a fresh stream to the mixer so repeated sounds overlap.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	clips       map[sim.Effect]*beep.Buffer
	vols        Volumes
	rate        beep.SampleRate
	initialized bool
}

// NewSpeaker buffers the clips found in dir. Call Init before Play.
func NewSpeaker(dir string, vols Volumes) (*Speaker, []error) {
	rate := beep.SampleRate(SampleRate)
	clips, errs := LoadClips(dir, rate)
	return &Speaker{
		mixer: &beep.Mixer{},
		clips: clips,
		vols:  vols,
		rate:  rate,
	}, errs
}

// Init opens the audio device and starts the mixer.
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(s.rate, s.rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play mixes in the clip for e. It does nothing before Init.
func (s *Speaker) Play(e sim.Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clip, ok := s.clips[e]
	if !s.initialized || !ok {
		return
	}
	speaker.Lock()
	s.mixer.Add(newVolume(clip.Streamer(0, clip.Len()), s.vols.Of(e)))
	speaker.Unlock()
}

// Close silences everything still playing.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}
