package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Grid-Invaders/internal/sim"
	"github.com/Garsondee/Grid-Invaders/internal/sound"
)

// Session runs one world on a terminal screen.
type Session struct {
	screen   tcell.Screen
	world    *sim.World
	rng      sim.Rand
	sounds   sound.Player
	renderer *Renderer
	dt       float64
	interval time.Duration
}

// NewSession wires a world to a screen. sounds may be nil.
func NewSession(screen tcell.Screen, world *sim.World, rng sim.Rand, sounds sound.Player) *Session {
	return &Session{
		screen:   screen,
		world:    world,
		rng:      rng,
		sounds:   sounds,
		renderer: NewRenderer(screen, world.Config()),
		dt:       1.0 / sim.TickRate,
		interval: time.Second / sim.TickRate,
	}
}

// keyAction maps a key event to a game action. quit is true for the keys
// that leave the game.
func keyAction(ev *tcell.EventKey) (action sim.Action, ok bool, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return 0, false, true
	case tcell.KeyLeft:
		return sim.ActionMoveLeft, true, false
	case tcell.KeyRight:
		return sim.ActionMoveRight, true, false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return 0, false, true
		case 'a', 'A', 'h':
			return sim.ActionMoveLeft, true, false
		case 'd', 'D', 'l':
			return sim.ActionMoveRight, true, false
		case ' ':
			return sim.ActionFire, true, false
		case 'r', 'R':
			return sim.ActionRestart, true, false
		}
	}
	return 0, false, false
}

// Run ticks the world at the fixed rate until ctx is done or a quit key is
// pressed. Input is read on a separate goroutine and applied between ticks.
func (s *Session) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 32)
	stop := make(chan struct{})
	go s.poll(events, stop)
	defer func() {
		close(stop)
		// Unblock PollEvent so the poller sees stop.
		_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.frame()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if s.handle(ev) {
				return nil
			}
		case <-ticker.C:
			s.Step()
			s.frame()
		}
	}
}

func (s *Session) poll(events chan<- tcell.Event, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}

		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-stop:
			return
		}
	}
}

// handle applies one input event and reports whether the session should end.
func (s *Session) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		action, ok, quit := keyAction(ev)
		if quit {
			return true
		}
		if ok {
			s.world.Apply(action)
		}
	case *tcell.EventResize:
		s.screen.Sync()
	}
	return false
}

// Step advances the world one tick and plays the effects it raised.
func (s *Session) Step() {
	s.world.Update(s.dt, s.rng)
	sound.PlayAll(s.sounds, s.world.DrainEffects())
}

func (s *Session) frame() {
	s.renderer.Draw(s.world.Snapshot())
	s.screen.Show()
}
