package sim

import (
	"math/rand"
	"time"
)

// Headless drives a World without a window: a manual clock advanced by one
// fixed tick per step, a seeded RNG and an optional scripted pilot.
// Tests and cmd/headless-report run games through it.
type Headless struct {
	World *World
	Clock *ManualClock
	Log   *SimLog
	Pilot Pilot

	cfg  Config
	rng  *rand.Rand
	dt   float64
	cols int
	rows int
}

// Pilot picks the actions to apply before a tick.
type Pilot func(w *World) []Action

// ManualClock is a clock that only moves when told to.
type ManualClock struct {
	now time.Time
}

// NewManualClock starts a clock at a fixed epoch.
func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// headlessOptionKind controls the pass in which an option is applied.
type headlessOptionKind int

const (
	optInfra headlessOptionKind = iota // config, seed, verbose: applied before the world exists
	optWorld                           // pilot and world tweaks: applied after
)

// HeadlessOption is a builder function applied to a Headless during construction.
type HeadlessOption struct {
	kind headlessOptionKind
	fn   func(*Headless)
}

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) HeadlessOption {
	return HeadlessOption{optInfra, func(h *Headless) {
		h.cfg = cfg
	}}
}

// WithGrid sets the formation grid size.
func WithGrid(cols, rows int) HeadlessOption {
	return HeadlessOption{optInfra, func(h *Headless) {
		h.cols = cols
		h.rows = rows
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) HeadlessOption {
	return HeadlessOption{optInfra, func(h *Headless) {
		h.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- game simulation
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) HeadlessOption {
	return HeadlessOption{optInfra, func(h *Headless) {
		h.Log = NewSimLog(v)
	}}
}

// WithAutopilot plays with the stock pilot: chase the lowest enemy, fire
// whenever a shot is available, restart never.
func WithAutopilot() HeadlessOption {
	return HeadlessOption{optWorld, func(h *Headless) {
		h.Pilot = Autopilot
	}}
}

// WithPilot plays with a custom pilot.
func WithPilot(p Pilot) HeadlessOption {
	return HeadlessOption{optWorld, func(h *Headless) {
		h.Pilot = p
	}}
}

// NewHeadless builds the harness in two passes: infrastructure, then the world.
func NewHeadless(opts ...HeadlessOption) *Headless {
	h := &Headless{
		cfg:   DefaultConfig(),
		Clock: NewManualClock(),
		Log:   NewSimLog(false),
		rng:   rand.New(rand.NewSource(1)), // #nosec G404 -- game simulation default
		dt:    1.0 / TickRate,
	}
	for _, o := range opts {
		if o.kind == optInfra {
			o.fn(h)
		}
	}
	if h.cols > 0 && h.rows > 0 {
		h.cfg.GridCols = h.cols
		h.cfg.GridRows = h.rows
	}
	h.World = NewWorld(h.cfg, WithClock(h.Clock.Now), WithLog(h.Log))
	for _, o := range opts {
		if o.kind == optWorld {
			o.fn(h)
		}
	}
	return h
}

// Rand exposes the harness RNG so tests can pass it to World.Update directly.
func (h *Headless) Rand() *rand.Rand { return h.rng }

// Step runs the pilot, advances the clock by one tick and updates the world.
func (h *Headless) Step() {
	if h.Pilot != nil {
		for _, a := range h.Pilot(h.World) {
			h.World.Apply(a)
		}
	}
	h.Clock.Advance(time.Second / TickRate)
	h.World.Update(h.dt, h.rng)
}

// RunTicks advances the simulation n ticks.
func (h *Headless) RunTicks(n int) {
	for i := 0; i < n; i++ {
		h.Step()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (h *Headless) RunUntil(predicate func(*World) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		h.Step()
		if predicate(h.World) {
			return h.World.Tick
		}
	}
	return -1
}

// Autopilot steers under the lowest enemy and fires whenever it may.
func Autopilot(w *World) []Action {
	if w.Lost || w.Formation.Len() == 0 {
		return nil
	}
	target := w.Formation.Enemies[0]
	for _, e := range w.Formation.Enemies[1:] {
		if e.Rect.Y > target.Rect.Y || (e.Rect.Y == target.Rect.Y && e.Rect.X < target.Rect.X) {
			target = e
		}
	}

	var actions []Action
	dx := target.Rect.CenterX() - w.Player.Rect.CenterX()
	switch {
	case dx > target.Rect.W/2:
		actions = append(actions, ActionMoveRight)
	case dx < -target.Rect.W/2:
		actions = append(actions, ActionMoveLeft)
	}
	if w.PlayerShots() < w.ShotCap() {
		actions = append(actions, ActionFire)
	}
	return actions
}
