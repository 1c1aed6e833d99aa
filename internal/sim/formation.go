package sim

import "fmt"

// Tier identifies an enemy variation and with it the points it is worth.
type Tier int

const (
	TierA Tier = iota // first row, worth the most
	TierB             // rows 2-3
	TierC             // rows 4 and below, worth the least
	tierCount
)

// Tiers lists every tier from most to least valuable.
var Tiers = [tierCount]Tier{TierA, TierB, TierC}

func (t Tier) String() string {
	switch t {
	case TierA:
		return "squid"
	case TierB:
		return "crab"
	case TierC:
		return "octopus"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// tierForRow maps a 1-based grid row to its tier.
func tierForRow(row int) Tier {
	switch {
	case row <= 1:
		return TierA
	case row <= 3:
		return TierB
	default:
		return TierC
	}
}

// Enemy is one member of a formation. It has no velocity of its own.
type Enemy struct {
	ID    int
	Rect  Rect
	Scale Vec2
	Tier  Tier
}

// Formation is the marching grid. Every enemy moves by the one shared
// velocity; the formation, not the enemy, is what bounces off the zone.
type Formation struct {
	Enemies       []Enemy
	ReachedPlayer bool

	velocity    Vec2
	zone        Rect
	stepDown    float64
	cols, rows  int
	bouncedLast bool
}

// gridSlots returns the top-left corner of every cell of a cols x rows grid,
// left-to-right then top-to-bottom, centred horizontally and starting at top.
func gridSlots(cfg Config, cols, rows int) []Vec2 {
	slots := make([]Vec2, 0, cols*rows)
	cfg.GridCols = cols
	x0 := cfg.GridX()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			slots = append(slots, Vec2{
				X: x0 + float64(c)*(cfg.EnemyWidth+cfg.EnemySpacing),
				Y: cfg.GridY + float64(r)*(cfg.EnemyHeight+cfg.EnemySpacing),
			})
		}
	}
	return slots
}

// NewFormation lays out a fresh cols x rows wave moving right. nextID hands
// out enemy IDs so they stay unique across waves.
func NewFormation(cfg Config, cols, rows int, nextID func() int) *Formation {
	f := &Formation{
		velocity: Vec2{X: cfg.EnemySpeed},
		zone:     cfg.Zone(),
		stepDown: cfg.EnemyHeight,
		cols:     cols,
		rows:     rows,
	}
	for i, slot := range gridSlots(cfg, cols, rows) {
		f.Enemies = append(f.Enemies, Enemy{
			ID:    nextID(),
			Rect:  Rect{X: slot.X, Y: slot.Y, W: cfg.EnemyWidth, H: cfg.EnemyHeight, Facing: DirUp},
			Scale: Vec2{X: 1, Y: 1},
			Tier:  tierForRow(i/cols + 1),
		})
	}
	return f
}

// Velocity returns the shared formation velocity.
func (f *Formation) Velocity() Vec2 { return f.velocity }

// Zone returns the bounding zone the formation bounces within.
func (f *Formation) Zone() Rect { return f.zone }

// Bounced reports whether the last Update reversed the formation.
func (f *Formation) Bounced() bool { return f.bouncedLast }

// Size returns the grid dimensions the wave was generated with.
func (f *Formation) Size() (cols, rows int) { return f.cols, f.rows }

// Len returns the number of live enemies.
func (f *Formation) Len() int { return len(f.Enemies) }

// Update runs one tick of the march: detect zone breaches, then move.
// A breach of the top edge is impossible from the spawn layout and panics.
func (f *Formation) Update(dt float64) {
	var bottom, left, right bool
	for i := range f.Enemies {
		e := &f.Enemies[i]
		edge, ok := Exceeds(e.Rect, f.zone)
		if !ok {
			continue
		}
		e.Rect.Facing = edge
		switch edge {
		case DirUp:
			panic(fmt.Sprintf("sim: enemy %d at (%.1f,%.1f) breached the top of zone %+v", e.ID, e.Rect.X, e.Rect.Y, f.zone))
		case DirDown:
			bottom = true
		case DirLeft:
			left = true
		case DirRight:
			right = true
		}
	}

	f.bouncedLast = false
	switch {
	case bottom:
		f.ReachedPlayer = true
		f.velocity = Vec2{}
	case right:
		f.velocity.X = -abs(f.velocity.X)
		f.bouncedLast = true
	case left:
		f.velocity.X = abs(f.velocity.X)
		f.bouncedLast = true
	}

	for i := range f.Enemies {
		f.Enemies[i].Rect.X += f.velocity.X * dt
		if f.bouncedLast {
			f.Enemies[i].Rect.Y += f.stepDown
		}
	}
}

// RemoveIDs drops every enemy whose ID is in ids and returns how many were removed.
func (f *Formation) RemoveIDs(ids map[int]struct{}) int {
	if len(ids) == 0 {
		return 0
	}
	kept := f.Enemies[:0]
	for _, e := range f.Enemies {
		if _, dead := ids[e.ID]; !dead {
			kept = append(kept, e)
		}
	}
	removed := len(f.Enemies) - len(kept)
	f.Enemies = kept
	return removed
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
