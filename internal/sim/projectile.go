package sim

import (
	"fmt"
	"time"
)

// Owner is the side that fired a projectile. It decides what the projectile may hit.
type Owner int

const (
	OwnerPlayer Owner = iota // hits enemies only
	OwnerEnemy               // hits the player only
)

func (o Owner) String() string {
	switch o {
	case OwnerPlayer:
		return "player"
	case OwnerEnemy:
		return "enemy"
	}
	return fmt.Sprintf("owner(%d)", int(o))
}

// Projectile is a single ballistic shot.
type Projectile struct {
	ID        int
	Rect      Rect
	Scale     Vec2
	Accel     Vec2
	Velocity  Vec2
	Damage    float64
	Owner     Owner
	SpawnedAt time.Time
}

// newProjectile centres a w x h projectile horizontally on x with its top at y.
func newProjectile(id int, x, y, w, h float64, scale, accel, vel Vec2, damage float64, owner Owner, now time.Time) Projectile {
	if damage < 0 {
		damage = 0
	}
	return Projectile{
		ID:        id,
		Rect:      Rect{X: x - w/2, Y: y, W: w, H: h, Facing: DirUp},
		Scale:     scale,
		Accel:     accel,
		Velocity:  vel,
		Damage:    damage,
		Owner:     owner,
		SpawnedAt: now,
	}
}

// Advance moves the projectile by the ballistic displacement for the total
// time elapsed since spawn: y += a*t²/2 + v*t.
//
// t comes from the clock, not from summed tick deltas, so a clock that keeps
// running while the game is paused makes the shot jump on resume.
func (p *Projectile) Advance(now time.Time) {
	t := now.Sub(p.SpawnedAt).Seconds()
	p.Rect.Y += 0.5*p.Accel.Y*t*t + p.Velocity.Y*t
}

// InPlayArea reports whether the projectile's top edge is within [0, height).
func (p *Projectile) InPlayArea(height float64) bool {
	return p.Rect.Y >= 0 && p.Rect.Y < height
}
