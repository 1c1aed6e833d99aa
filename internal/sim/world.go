package sim

import (
	"fmt"
	"time"
)

// Rand is the randomness a tick consumes. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Option configures a World at construction.
type Option func(*World)

// WithClock replaces time.Now as the source of projectile spawn and flight times.
func WithClock(now func() time.Time) Option {
	return func(w *World) {
		w.clock = now
	}
}

// WithLog sends the world's events to sl instead of a fresh quiet log.
func WithLog(sl *SimLog) Option {
	return func(w *World) {
		w.Log = sl
	}
}

// World owns the whole game: the player, the formation and every projectile.
// Entities never reference each other; all interaction happens here.
type World struct {
	Player      Player
	Projectiles []Projectile
	Formation   *Formation
	Score       uint64
	Rounds      int
	Lost        bool
	Tick        int
	Log         *SimLog

	cfg       Config
	clock     func() time.Time
	nextID    int
	effects   []Effect
	gameStart int // log length when the current game began
}

// NewWorld starts a game. cfg is assumed valid; see Config.Validate.
func NewWorld(cfg Config, opts ...Option) *World {
	w := &World{
		cfg:   cfg,
		clock: time.Now,
		Log:   NewSimLog(false),
	}
	for _, o := range opts {
		o(w)
	}
	w.reset()
	return w
}

func (w *World) reset() {
	w.Player = NewPlayer(w.cfg)
	w.Projectiles = nil
	w.Formation = NewFormation(w.cfg, w.cfg.GridCols, w.cfg.GridRows, w.newID)
	w.Score = 0
	w.Rounds = 0
	w.Lost = false
	w.effects = nil
	w.gameStart = w.Log.Len()
}

func (w *World) newID() int {
	w.nextID++
	return w.nextID
}

// Config returns the configuration the world was built with.
func (w *World) Config() Config { return w.cfg }

// GameEntries returns the log entries of the game in progress.
func (w *World) GameEntries() []SimLogEntry {
	return w.Log.Since(w.gameStart)
}

// DrainEffects returns the effects raised since the previous call.
func (w *World) DrainEffects() []Effect {
	out := w.effects
	w.effects = nil
	return out
}

func (w *World) emit(e Effect) {
	w.effects = append(w.effects, e)
}

// Update advances the game by one fixed tick of dt seconds.
func (w *World) Update(dt float64, rng Rand) {
	w.Tick++

	wasLost := w.Lost
	w.Lost = !w.Player.IsAlive() || w.Formation.ReachedPlayer
	if w.Lost && !wasLost {
		w.Log.Add(w.Tick, "--", "--", "game", "lost",
			fmt.Sprintf("score=%d rounds=%d health=%.1f", w.Score, w.Rounds, w.Player.Health), float64(w.Score))
	}

	// Both keep moving on the losing tick so the final frame still animates.
	reached := w.Formation.ReachedPlayer
	w.Player.Update(dt)
	w.Formation.Update(dt)
	w.logMotion(reached)

	if w.Lost {
		return
	}

	if w.Formation.Len() == 0 {
		w.nextRound(rng)
	}
	w.enemyFire(rng)
	w.resolveCollisions()
	w.cullProjectiles()
}

func (w *World) logMotion(reachedBefore bool) {
	f := w.Formation
	if f.Bounced() {
		w.Log.Add(w.Tick, "--", "enemy", "formation", "bounce",
			fmt.Sprintf("vx=%.1f", f.Velocity().X), f.Velocity().X)
	}
	if f.ReachedPlayer && !reachedBefore {
		w.Log.Add(w.Tick, "--", "enemy", "formation", "reached_player",
			fmt.Sprintf("%d enemies left", f.Len()), float64(f.Len()))
	}
	if !w.Log.Verbose() {
		return
	}
	w.Log.AddVerbose(w.Tick, "P", "player", "move", "position",
		fmt.Sprintf("(%.1f,%.1f)", w.Player.Rect.X, w.Player.Rect.Y), w.Player.Rect.X)
}

// nextRound counts the cleared wave, heals the player and lays out a new one
// of the same size.
// The heal is drawn from [RegenMin+rounds, RegenMax+rounds).
func (w *World) nextRound(rng Rand) {
	w.Rounds++
	lo := w.cfg.HealthRegenMin + float64(w.Rounds)
	hi := w.cfg.HealthRegenMax + float64(w.Rounds)
	heal := lo + rng.Float64()*(hi-lo)
	w.Player.Health += heal
	cols, rows := w.Formation.Size()
	w.Formation = NewFormation(w.cfg, cols, rows, w.newID)

	w.Log.Add(w.Tick, "--", "--", "round", "cleared",
		fmt.Sprintf("round %d", w.Rounds), float64(w.Rounds))
	w.Log.Add(w.Tick, "P", "player", "player", "healed",
		fmt.Sprintf("+%.1f -> %.1f", heal, w.Player.Health), heal)
}

// enemyFire drops one enemy shot with probability Rounds/100.
func (w *World) enemyFire(rng Rand) {
	n := w.Formation.Len()
	if n == 0 || rng.Intn(100) >= w.Rounds {
		return
	}
	shooter := w.Formation.Enemies[rng.Intn(n)]
	damage := w.cfg.EnemyMinDamage + rng.Float64()*(w.cfg.EnemyMaxDamage-w.cfg.EnemyMinDamage)
	p := newProjectile(w.newID(), shooter.Rect.X, shooter.Rect.Y,
		w.cfg.ProjectileWidth, w.cfg.ProjectileHeight,
		Vec2{X: 1, Y: -1}, w.cfg.EnemyShotAccel, w.cfg.EnemyShotVel,
		damage, OwnerEnemy, w.clock())
	w.Projectiles = append(w.Projectiles, p)
	w.Log.Add(w.Tick, fmt.Sprintf("E%d", shooter.ID), "enemy", "fire", "enemy",
		fmt.Sprintf("dmg=%.1f", damage), damage)
}

// resolveCollisions moves every projectile and applies hits. Removals are
// collected by ID and applied only after the whole pass.
func (w *World) resolveCollisions() {
	now := w.clock()
	spentShots := map[int]struct{}{}
	deadEnemies := map[int]struct{}{}
	playerHit := false

	for i := range w.Projectiles {
		p := &w.Projectiles[i]
		p.Advance(now)

		switch p.Owner {
		case OwnerPlayer:
			for _, e := range w.Formation.Enemies {
				if _, gone := deadEnemies[e.ID]; gone || !Collides(p.Rect, e.Rect) {
					continue
				}
				points := w.cfg.Points[e.Tier]
				w.Score += points
				spentShots[p.ID] = struct{}{}
				deadEnemies[e.ID] = struct{}{}
				w.emit(EffectEnemyDestroyed)
				w.Log.Add(w.Tick, fmt.Sprintf("E%d", e.ID), "enemy", "score", "enemy_destroyed",
					fmt.Sprintf("%s +%d", e.Tier, points), float64(points))
			}

		case OwnerEnemy:
			if playerHit || !Collides(p.Rect, w.Player.Rect) {
				continue
			}
			wasAlive := w.Player.IsAlive()
			w.Player.Health -= p.Damage
			w.emit(EffectPlayerHit)
			w.Log.Add(w.Tick, "P", "player", "player", "hit",
				fmt.Sprintf("-%.1f -> %.1f", p.Damage, w.Player.Health), p.Damage)
			if wasAlive && !w.Player.IsAlive() {
				w.emit(EffectPlayerDestroyed)
				w.Log.Add(w.Tick, "P", "player", "player", "destroyed",
					fmt.Sprintf("health %.1f", w.Player.Health), w.Player.Health)
			}
			spentShots[p.ID] = struct{}{}
			playerHit = true
		}
	}

	w.removeProjectiles(spentShots)
	w.Formation.RemoveIDs(deadEnemies)
}

func (w *World) removeProjectiles(ids map[int]struct{}) {
	if len(ids) == 0 {
		return
	}
	kept := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		if _, spent := ids[p.ID]; !spent {
			kept = append(kept, p)
		}
	}
	w.Projectiles = kept
}

// cullProjectiles drops shots whose top edge left [0, WindowHeight).
func (w *World) cullProjectiles() {
	kept := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		if p.InPlayArea(w.cfg.WindowHeight) {
			kept = append(kept, p)
		}
	}
	w.Projectiles = kept
}

// PlayerShots counts the player's projectiles still in flight.
func (w *World) PlayerShots() int {
	n := 0
	for _, p := range w.Projectiles {
		if p.Owner == OwnerPlayer {
			n++
		}
	}
	return n
}

// ShotCap is how many player projectiles may be in flight at once.
func (w *World) ShotCap() int {
	return w.Rounds/w.cfg.FireFrequency + 1
}

// Apply runs one input action immediately and reports whether it took effect.
func (w *World) Apply(a Action) bool {
	switch a {
	case ActionMoveLeft:
		w.Player.Steer(DirLeft)
		return true
	case ActionMoveRight:
		w.Player.Steer(DirRight)
		return true
	case ActionFire:
		return w.fire()
	case ActionRestart:
		if !w.Lost {
			return false
		}
		w.Log.Add(w.Tick, "--", "--", "game", "restart",
			fmt.Sprintf("previous score=%d rounds=%d", w.Score, w.Rounds), float64(w.Score))
		w.reset()
		return true
	}
	return false
}

func (w *World) fire() bool {
	if !w.Player.IsAlive() {
		return false
	}
	if w.PlayerShots() >= w.ShotCap() {
		w.Log.Add(w.Tick, "P", "player", "fire", "rejected",
			fmt.Sprintf("%d/%d in flight", w.PlayerShots(), w.ShotCap()), float64(w.ShotCap()))
		return false
	}
	p := newProjectile(w.newID(), w.Player.Rect.CenterX(), w.Player.Rect.Y,
		w.cfg.ProjectileWidth, w.cfg.ProjectileHeight,
		Vec2{X: 1, Y: 1}, w.cfg.PlayerShotAccel, w.cfg.PlayerShotVel,
		w.cfg.PlayerShotDamage, OwnerPlayer, w.clock())
	w.Projectiles = append(w.Projectiles, p)
	w.emit(EffectPlayerFired)
	w.Log.Add(w.Tick, "P", "player", "fire", "player",
		fmt.Sprintf("x=%.1f", p.Rect.CenterX()), p.Rect.CenterX())
	return true
}
