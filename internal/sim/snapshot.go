package sim

// SpriteKind tags what a Sprite stands for.
type SpriteKind int

const (
	SpritePlayer SpriteKind = iota
	SpriteEnemy
	SpriteProjectile
)

// Sprite is the closed set of things a renderer draws. Only the field that
// matches Kind is meaningful: Tier for enemies, Owner for projectiles.
type Sprite struct {
	Kind  SpriteKind
	ID    int
	Rect  Rect
	Scale Vec2
	Tier  Tier
	Owner Owner
}

// PlayerView is the read-only player state a HUD needs.
type PlayerView struct {
	Rect      Rect
	HealthBar Rect
	Health    float64
	Alive     bool
}

// Snapshot is a copy of everything visible after a tick. Mutating it does
// not affect the World.
type Snapshot struct {
	Tick        int
	Player      PlayerView
	Enemies     []Sprite
	Projectiles []Sprite
	Score       uint64
	Round       int
	Lost        bool
	ShotCap     int
	PlayerShots int
}

// Snapshot copies the current state for rendering.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Tick: w.Tick,
		Player: PlayerView{
			Rect:      w.Player.Rect,
			HealthBar: w.Player.HealthBar,
			Health:    w.Player.Health,
			Alive:     w.Player.IsAlive(),
		},
		Enemies:     make([]Sprite, 0, w.Formation.Len()),
		Projectiles: make([]Sprite, 0, len(w.Projectiles)),
		Score:       w.Score,
		Round:       w.Rounds,
		Lost:        w.Lost,
		ShotCap:     w.ShotCap(),
		PlayerShots: w.PlayerShots(),
	}
	for _, e := range w.Formation.Enemies {
		s.Enemies = append(s.Enemies, Sprite{Kind: SpriteEnemy, ID: e.ID, Rect: e.Rect, Scale: e.Scale, Tier: e.Tier})
	}
	for _, p := range w.Projectiles {
		s.Projectiles = append(s.Projectiles, Sprite{Kind: SpriteProjectile, ID: p.ID, Rect: p.Rect, Scale: p.Scale, Owner: p.Owner})
	}
	return s
}

// Sprites returns every drawable in back-to-front order: enemies, projectiles, player.
func (s Snapshot) Sprites() []Sprite {
	out := make([]Sprite, 0, len(s.Enemies)+len(s.Projectiles)+1)
	out = append(out, s.Enemies...)
	out = append(out, s.Projectiles...)
	out = append(out, Sprite{Kind: SpritePlayer, Rect: s.Player.Rect, Scale: Vec2{X: 1, Y: 1}})
	return out
}
