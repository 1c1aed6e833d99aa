package sim

// Player is the ship at the bottom of the screen. Rect.Facing doubles as the
// latched movement direction: DirLeft or DirRight move, anything else holds still.
type Player struct {
	Rect      Rect
	Scale     Vec2
	Velocity  Vec2
	Health    float64
	HealthBar Rect

	screenWidth float64
}

// NewPlayer places a full-health player at the configured start position.
func NewPlayer(cfg Config) Player {
	return Player{
		Rect: Rect{
			X:      cfg.PlayerStart.X,
			Y:      cfg.PlayerStart.Y,
			W:      cfg.PlayerWidth,
			H:      cfg.PlayerHeight,
			Facing: DirUp,
		},
		Scale:       Vec2{X: 1, Y: 1},
		Velocity:    Vec2{X: cfg.PlayerSpeed},
		Health:      cfg.PlayerHealth,
		HealthBar:   cfg.HealthBar,
		screenWidth: cfg.WindowWidth,
	}
}

// IsAlive reports whether health is strictly positive. Health is never clamped.
func (p *Player) IsAlive() bool {
	return p.Health > 0
}

// Steer latches a movement direction until the next call.
func (p *Player) Steer(d Direction) {
	p.Rect.Facing = d
}

// Update moves the player along the latched direction, wraps it around the
// screen and syncs the health bar width to health.
func (p *Player) Update(dt float64) {
	switch p.Rect.Facing {
	case DirRight:
		p.Rect.X += p.Velocity.X * dt
	case DirLeft:
		p.Rect.X -= p.Velocity.X * dt
	}

	// Leaving on the left is judged by the centre, leaving on the right by
	// the left edge.
	if p.Rect.CenterX() < 0 {
		p.Rect.X = p.screenWidth - p.Rect.W/2
	} else if p.Rect.X > p.screenWidth {
		p.Rect.X = p.Rect.W / 2
	}

	p.HealthBar.W = p.Health
}
