package sim

import (
	"testing"
)

// stubRand replays scripted values so tests can force each random branch.
type stubRand struct {
	ints   []int
	floats []float64
}

func (s *stubRand) Intn(n int) int {
	if len(s.ints) == 0 {
		return n - 1
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *stubRand) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

// placeShot drops a motionless projectile whose centre-top is (x, y).
func placeShot(h *Headless, owner Owner, x, y, damage float64) int {
	w := h.World
	cfg := w.Config()
	p := newProjectile(w.newID(), x, y, cfg.ProjectileWidth, cfg.ProjectileHeight,
		Vec2{X: 1, Y: 1}, Vec2{}, Vec2{}, damage, owner, h.Clock.Now())
	w.Projectiles = append(w.Projectiles, p)
	return p.ID
}

func shotOn(h *Headless, owner Owner, r Rect, damage float64) int {
	return placeShot(h, owner, r.CenterX(), r.Y+r.H/4, damage)
}

func countEffects(effects []Effect, want Effect) int {
	n := 0
	for _, e := range effects {
		if e == want {
			n++
		}
	}
	return n
}

func TestWorld_ScoresOneEnemyOfEachTier(t *testing.T) {
	h := NewHeadless()
	w := h.World
	cfg := w.Config()
	targets := []Enemy{w.Formation.Enemies[0], w.Formation.Enemies[10], w.Formation.Enemies[30]}
	for _, e := range targets {
		shotOn(h, OwnerPlayer, e.Rect, cfg.PlayerShotDamage)
	}

	h.Step()

	want := cfg.Points[TierA] + cfg.Points[TierB] + cfg.Points[TierC]
	if w.Score != want {
		t.Fatalf("expected score %d, got %d\n%s", want, w.Score, w.Log.Format())
	}
	if w.Formation.Len() != 47 {
		t.Fatalf("expected 47 enemies left, got %d", w.Formation.Len())
	}
	if len(w.Projectiles) != 0 {
		t.Fatalf("expected every spent shot removed, %d left", len(w.Projectiles))
	}
	if n := countEffects(w.DrainEffects(), EffectEnemyDestroyed); n != 3 {
		t.Fatalf("expected 3 enemy_destroyed effects, got %d", n)
	}

	r := BuildReport(w)
	for _, tier := range Tiers {
		if r.Kills[tier] != 1 {
			t.Fatalf("report: expected one %s kill, got %d", tier, r.Kills[tier])
		}
	}
	if r.Outcome != OutcomeInProgress {
		t.Fatalf("report: expected in_progress, got %s", r.Outcome)
	}
}

func TestWorld_AdjacentKillsRemoveOnlyHitEnemies(t *testing.T) {
	h := NewHeadless()
	w := h.World
	first, second, neighbour := w.Formation.Enemies[0], w.Formation.Enemies[1], w.Formation.Enemies[2]
	shotOn(h, OwnerPlayer, first.Rect, 100)
	shotOn(h, OwnerPlayer, second.Rect, 100)
	stray := placeShot(h, OwnerPlayer, 5, 200, 100)

	h.Step()

	if w.Formation.Len() != 48 {
		t.Fatalf("expected 48 enemies, got %d", w.Formation.Len())
	}
	seen := map[int]bool{}
	for _, e := range w.Formation.Enemies {
		seen[e.ID] = true
	}
	if seen[first.ID] || seen[second.ID] || !seen[neighbour.ID] {
		t.Fatalf("wrong enemies removed: first=%v second=%v neighbour=%v", seen[first.ID], seen[second.ID], seen[neighbour.ID])
	}
	if len(w.Projectiles) != 1 || w.Projectiles[0].ID != stray {
		t.Fatalf("expected only the stray shot %d to survive, got %+v", stray, w.Projectiles)
	}
}

func TestWorld_TallShotKillsEveryEnemyItOverlaps(t *testing.T) {
	h := NewHeadless()
	w := h.World
	cfg := w.Config()
	top, below := w.Formation.Enemies[0], w.Formation.Enemies[10]
	y := top.Rect.Y + top.Rect.H/4
	p := newProjectile(w.newID(), top.Rect.CenterX(), y, cfg.ProjectileWidth, below.Rect.CenterY()-y,
		Vec2{X: 1, Y: 1}, Vec2{}, Vec2{}, cfg.PlayerShotDamage, OwnerPlayer, h.Clock.Now())
	w.Projectiles = append(w.Projectiles, p)

	h.Step()

	want := cfg.Points[top.Tier] + cfg.Points[below.Tier]
	if w.Score != want {
		t.Fatalf("expected score %d for both rows, got %d\n%s", want, w.Score, w.Log.Format())
	}
	if w.Formation.Len() != 48 {
		t.Fatalf("expected 48 enemies left, got %d", w.Formation.Len())
	}
	for _, e := range w.Formation.Enemies {
		if e.ID == top.ID || e.ID == below.ID {
			t.Fatalf("enemy %d survived a hit", e.ID)
		}
	}
	if len(w.Projectiles) != 0 {
		t.Fatalf("expected the shot to be spent, %d left", len(w.Projectiles))
	}
	if n := countEffects(w.DrainEffects(), EffectEnemyDestroyed); n != 2 {
		t.Fatalf("expected 2 enemy_destroyed effects, got %d", n)
	}
	if n := w.Log.CountCategory("score", "enemy_destroyed"); n != 2 {
		t.Fatalf("expected 2 score entries, got %d", n)
	}
}

func TestWorld_EnemyShotDamagesPlayerOncePerTick(t *testing.T) {
	h := NewHeadless()
	w := h.World
	shotOn(h, OwnerEnemy, w.Player.Rect, 10)
	shotOn(h, OwnerEnemy, w.Player.Rect, 10)

	h.Step()

	if w.Player.Health != 90 {
		t.Fatalf("expected health 90 after one registered hit, got %.1f", w.Player.Health)
	}
	if len(w.Projectiles) != 1 {
		t.Fatalf("expected the second shot to stay in flight, got %d projectiles", len(w.Projectiles))
	}
	if n := countEffects(w.DrainEffects(), EffectPlayerHit); n != 1 {
		t.Fatalf("expected one player_hit effect, got %d", n)
	}

	h.Step()
	if w.Player.Health != 80 {
		t.Fatalf("expected the held-over shot to land next tick (health 80), got %.1f", w.Player.Health)
	}
}

func TestWorld_PlayerShotIgnoresPlayer(t *testing.T) {
	h := NewHeadless()
	w := h.World
	shotOn(h, OwnerPlayer, w.Player.Rect, 100)

	h.Step()

	if w.Player.Health != w.Config().PlayerHealth {
		t.Fatalf("player-owned shot damaged the player: health %.1f", w.Player.Health)
	}
}

func TestWorld_KillingHitRaisesDestroyedThenLoses(t *testing.T) {
	h := NewHeadless()
	w := h.World
	w.Player.Health = 5
	shotOn(h, OwnerEnemy, w.Player.Rect, 10)

	h.Step()

	effects := w.DrainEffects()
	if countEffects(effects, EffectPlayerHit) != 1 || countEffects(effects, EffectPlayerDestroyed) != 1 {
		t.Fatalf("expected player_hit and player_destroyed, got %v", effects)
	}
	if w.Lost {
		t.Fatalf("loss is evaluated at the start of the next tick")
	}
	h.Step()
	if !w.Lost {
		t.Fatalf("expected Lost once health is %.1f", w.Player.Health)
	}
	if !w.Log.HasEntry("game", "lost", "") {
		t.Fatalf("expected a game/lost log entry\n%s", w.Log.Format())
	}
}

func TestWorld_FormationReachingPlayerLoses(t *testing.T) {
	h := NewHeadless()
	w := h.World
	_, _, bottom := formationExtent(w.Formation)
	shiftFormation(w.Formation, 0, w.Formation.Zone().Bottom()-bottom)

	h.Step()
	if !w.Formation.ReachedPlayer {
		t.Fatalf("expected ReachedPlayer after bottom breach\n%s", w.Log.FormatRange(0, w.Tick))
	}
	h.Step()
	if !w.Lost {
		t.Fatalf("expected Lost the tick after the formation reached the player\n%s", w.Log.FormatRange(w.Tick-1, w.Tick))
	}
	if !w.Log.HasEntry("formation", "reached_player", "") || !w.Log.HasEntry("game", "lost", "") {
		t.Fatalf("expected reached_player and lost entries\n%s", w.Log.FormatRange(w.Tick-1, w.Tick))
	}
	if r := BuildReport(w); r.Outcome != OutcomeOverrun {
		t.Fatalf("expected outcome overrun, got %s", r.Outcome)
	}
}

func TestWorld_LostTickSkipsCollisions(t *testing.T) {
	h := NewHeadless()
	w := h.World
	w.Player.Health = 0
	shotOn(h, OwnerPlayer, w.Formation.Enemies[0].Rect, 100)
	x := w.Formation.Enemies[0].Rect.X

	h.Step()

	if !w.Lost {
		t.Fatalf("expected Lost with zero health")
	}
	if w.Score != 0 || w.Formation.Len() != 50 || len(w.Projectiles) != 1 {
		t.Fatalf("collisions ran after loss: score=%d enemies=%d shots=%d", w.Score, w.Formation.Len(), len(w.Projectiles))
	}
	if w.Formation.Enemies[0].Rect.X == x {
		t.Fatalf("formation should still move on the losing tick")
	}
}

func TestWorld_RoundClearHealsAndRegenerates(t *testing.T) {
	h := NewHeadless(WithSeed(99))
	w := h.World
	cfg := w.Config()
	oldIDs := map[int]bool{}
	for _, e := range w.Formation.Enemies {
		oldIDs[e.ID] = true
	}
	w.Formation.Enemies = nil
	before := w.Player.Health

	h.Step()

	if w.Rounds != 1 {
		t.Fatalf("expected round 1, got %d", w.Rounds)
	}
	heal := w.Player.Health - before
	lo, hi := cfg.HealthRegenMin+1, cfg.HealthRegenMax+1
	if heal < lo || heal >= hi {
		t.Fatalf("heal %.2f outside [%.1f,%.1f)", heal, lo, hi)
	}
	if w.Formation.Len() != cfg.GridCols*cfg.GridRows || w.Formation.ReachedPlayer {
		t.Fatalf("expected a fresh %d-enemy formation, got %d (reached=%v)",
			cfg.GridCols*cfg.GridRows, w.Formation.Len(), w.Formation.ReachedPlayer)
	}
	for _, e := range w.Formation.Enemies {
		if oldIDs[e.ID] {
			t.Fatalf("enemy ID %d reused across waves", e.ID)
		}
	}
	if w.Formation.Velocity().X != cfg.EnemySpeed {
		t.Fatalf("expected fresh velocity %.1f, got %.1f", cfg.EnemySpeed, w.Formation.Velocity().X)
	}
}

func TestWorld_HealAlwaysPositive(t *testing.T) {
	w := NewHeadless().World
	for round := 0; round < 12; round++ {
		before := w.Player.Health
		w.nextRound(&stubRand{floats: []float64{0}})
		if w.Player.Health <= before {
			t.Fatalf("round %d: heal did not increase health (%.1f -> %.1f)", w.Rounds, before, w.Player.Health)
		}
	}
}

func TestWorld_EnemyFireProbabilityFollowsRounds(t *testing.T) {
	w := NewHeadless().World
	cfg := w.Config()
	w.Rounds = 3

	w.enemyFire(&stubRand{ints: []int{3}})
	if len(w.Projectiles) != 0 {
		t.Fatalf("roll 3 with 3 rounds should not fire")
	}

	w.enemyFire(&stubRand{ints: []int{2, 7}, floats: []float64{0.5}})
	if len(w.Projectiles) != 1 {
		t.Fatalf("roll 2 with 3 rounds should fire, got %d shots", len(w.Projectiles))
	}
	p := w.Projectiles[0]
	shooter := w.Formation.Enemies[7]
	if p.Owner != OwnerEnemy {
		t.Fatalf("expected enemy-owned shot, got %s", p.Owner)
	}
	if want := cfg.EnemyMinDamage + 0.5*(cfg.EnemyMaxDamage-cfg.EnemyMinDamage); p.Damage != want {
		t.Fatalf("expected damage %.1f, got %.1f", want, p.Damage)
	}
	if p.Rect.CenterX() != shooter.Rect.X || p.Rect.Y != shooter.Rect.Y {
		t.Fatalf("shot not spawned at shooter %d position", shooter.ID)
	}
	if p.Velocity != cfg.EnemyShotVel || p.Accel != cfg.EnemyShotAccel {
		t.Fatalf("enemy shot has wrong motion profile: v=%+v a=%+v", p.Velocity, p.Accel)
	}
}

func TestWorld_RoundZeroEnemiesNeverFire(t *testing.T) {
	h := NewHeadless(WithSeed(5))
	h.RunTicks(120)
	if n := h.Log.CountCategory("fire", "enemy"); n != 0 {
		t.Fatalf("expected no enemy fire in round 0, got %d shots", n)
	}
}

func TestWorld_CullsShotsOutsidePlayArea(t *testing.T) {
	h := NewHeadless()
	w := h.World
	placeShot(h, OwnerPlayer, 5, -5, 100)
	placeShot(h, OwnerEnemy, 5, w.Config().WindowHeight+10, 5)
	keep := placeShot(h, OwnerPlayer, 5, 200, 100)

	h.Step()

	if len(w.Projectiles) != 1 || w.Projectiles[0].ID != keep {
		t.Fatalf("expected only shot %d to remain, got %+v", keep, w.Projectiles)
	}
}

func TestWorld_FireCapScalesWithRounds(t *testing.T) {
	cases := []struct {
		rounds int
		cap    int
	}{
		{0, 1},
		{4, 1},
		{5, 2},
		{12, 3},
	}
	for _, tc := range cases {
		w := NewHeadless().World
		w.Rounds = tc.rounds
		for i := 0; i < tc.cap; i++ {
			if !w.Apply(ActionFire) {
				t.Fatalf("rounds=%d: shot %d below cap %d was rejected", tc.rounds, i+1, tc.cap)
			}
		}
		if w.Apply(ActionFire) {
			t.Fatalf("rounds=%d: shot above cap %d was accepted", tc.rounds, tc.cap)
		}
		if n := countEffects(w.DrainEffects(), EffectPlayerFired); n != tc.cap {
			t.Fatalf("rounds=%d: expected %d player_fired effects, got %d", tc.rounds, tc.cap, n)
		}
		if !w.Log.HasEntry("fire", "rejected", "") {
			t.Fatalf("rounds=%d: rejected shot not logged", tc.rounds)
		}
	}
}

func TestWorld_EnemyShotsDoNotCountTowardCap(t *testing.T) {
	h := NewHeadless()
	w := h.World
	placeShot(h, OwnerEnemy, 5, 100, 5)
	if !w.Apply(ActionFire) {
		t.Fatalf("enemy shots in flight must not block the player's first shot")
	}
}

func TestWorld_FireRejectedWhenDead(t *testing.T) {
	w := NewHeadless().World
	w.Player.Health = 0
	if w.Apply(ActionFire) {
		t.Fatalf("dead player fired")
	}
}

func TestWorld_PlayerShotSpawnsAtShipNose(t *testing.T) {
	w := NewHeadless().World
	w.Apply(ActionFire)
	p := w.Projectiles[0]
	if p.Owner != OwnerPlayer || p.Rect.CenterX() != w.Player.Rect.CenterX() || p.Rect.Y != w.Player.Rect.Y {
		t.Fatalf("player shot misplaced: %+v (player %+v)", p.Rect, w.Player.Rect)
	}
}

func TestWorld_MoveActionsLatchDirection(t *testing.T) {
	h := NewHeadless()
	w := h.World
	x := w.Player.Rect.X
	w.Apply(ActionMoveLeft)
	h.RunTicks(3)
	if w.Player.Rect.X >= x {
		t.Fatalf("expected player to keep moving left, x %.2f -> %.2f", x, w.Player.Rect.X)
	}
}

func TestWorld_RestartIgnoredWhilePlaying(t *testing.T) {
	w := NewHeadless().World
	w.Score = 50
	w.Rounds = 2
	if w.Apply(ActionRestart) {
		t.Fatalf("restart accepted while the player is still in the game")
	}
	if w.Score != 50 || w.Rounds != 2 {
		t.Fatalf("restart changed state: score=%d rounds=%d", w.Score, w.Rounds)
	}
}

func TestWorld_RestartAfterLossResetsEverything(t *testing.T) {
	h := NewHeadless()
	w := h.World
	cfg := w.Config()
	w.Score = 300
	w.Rounds = 3
	w.Player.Health = -4
	w.Player.Rect.X = 10
	w.Formation.Enemies = w.Formation.Enemies[:5]
	placeShot(h, OwnerEnemy, 5, 100, 5)
	h.Step()
	if !w.Lost {
		t.Fatalf("setup: expected Lost")
	}

	if !w.Apply(ActionRestart) {
		t.Fatalf("restart rejected after loss")
	}
	if w.Score != 0 || w.Rounds != 0 || w.Lost {
		t.Fatalf("expected score=0 rounds=0 lost=false, got %d %d %v", w.Score, w.Rounds, w.Lost)
	}
	if len(w.Projectiles) != 0 {
		t.Fatalf("expected projectiles cleared, got %d", len(w.Projectiles))
	}
	if w.Formation.Len() != cfg.GridCols*cfg.GridRows {
		t.Fatalf("expected full formation, got %d", w.Formation.Len())
	}
	if w.Player.Health != cfg.PlayerHealth || w.Player.Rect.X != cfg.PlayerStart.X {
		t.Fatalf("player not reset: health=%.1f x=%.1f", w.Player.Health, w.Player.Rect.X)
	}
	if len(w.GameEntries()) != 0 {
		t.Fatalf("new game should start with an empty entry range, got %d", len(w.GameEntries()))
	}
}

func TestWorld_SnapshotIsACopy(t *testing.T) {
	w := NewHeadless().World
	w.Apply(ActionFire)
	snap := w.Snapshot()
	snap.Enemies[0].Rect.X = -999
	snap.Projectiles[0].Rect.Y = -999
	if w.Formation.Enemies[0].Rect.X == -999 || w.Projectiles[0].Rect.Y == -999 {
		t.Fatalf("mutating the snapshot changed the world")
	}
	if got := len(snap.Sprites()); got != 50+1+1 {
		t.Fatalf("expected 52 sprites, got %d", got)
	}
	if snap.Projectiles[0].Owner != OwnerPlayer || snap.Enemies[0].Kind != SpriteEnemy {
		t.Fatalf("sprite tags wrong: %+v %+v", snap.Projectiles[0], snap.Enemies[0])
	}
}

func TestHeadless_SameSeedSameGame(t *testing.T) {
	run := func() *World {
		h := NewHeadless(WithSeed(11), WithAutopilot())
		h.RunTicks(1800)
		return h.World
	}
	a, b := run(), run()
	if a.Score != b.Score || a.Rounds != b.Rounds || a.Player.Health != b.Player.Health || a.Log.Len() != b.Log.Len() {
		t.Fatalf("seeded runs diverged: score %d/%d rounds %d/%d health %.1f/%.1f",
			a.Score, b.Score, a.Rounds, b.Rounds, a.Player.Health, b.Player.Health)
	}
}

func TestHeadless_AutopilotScores(t *testing.T) {
	h := NewHeadless(WithSeed(3), WithAutopilot())
	h.RunTicks(300)
	if h.World.Score == 0 {
		t.Fatalf("autopilot scored nothing in 300 ticks\n%s", h.Log.Format())
	}
}

func TestHeadless_WithGridShapesEveryWave(t *testing.T) {
	h := NewHeadless(WithGrid(4, 7))
	w := h.World
	if cols, rows := w.Formation.Size(); cols != 4 || rows != 7 {
		t.Fatalf("expected a 4x7 wave, got %dx%d", cols, rows)
	}
	if w.Formation.Len() != 28 {
		t.Fatalf("expected 28 enemies, got %d", w.Formation.Len())
	}
	for i, e := range w.Formation.Enemies {
		row := i/4 + 1
		want := TierC
		switch {
		case row == 1:
			want = TierA
		case row <= 3:
			want = TierB
		}
		if e.Tier != want {
			t.Fatalf("enemy %d (row %d): expected tier %s, got %s", i, row, want, e.Tier)
		}
	}

	w.Formation.Enemies = nil
	h.Step()
	if w.Rounds != 1 {
		t.Fatalf("expected round 1 after clearing the wave, got %d", w.Rounds)
	}
	if cols, rows := w.Formation.Size(); cols != 4 || rows != 7 || w.Formation.Len() != 28 {
		t.Fatalf("expected the next wave to stay 4x7 with 28 enemies, got %dx%d with %d", cols, rows, w.Formation.Len())
	}
}

func TestHeadless_ShallowGridHasNoBottomTier(t *testing.T) {
	w := NewHeadless(WithGrid(10, 2)).World
	for _, e := range w.Formation.Enemies {
		if e.Tier == TierC {
			t.Fatalf("enemy %d is %s in a two-row grid", e.ID, e.Tier)
		}
	}
}

func TestHeadless_TriggerHappyPilotHeldAtCap(t *testing.T) {
	fireOnly := func(*World) []Action { return []Action{ActionFire} }
	h := NewHeadless(WithSeed(9), WithPilot(fireOnly))
	w := h.World
	for i := 0; i < 120; i++ {
		h.Step()
		if w.PlayerShots() > w.ShotCap() {
			t.Fatalf("tick %d: %d shots in flight above cap %d\n%s",
				w.Tick, w.PlayerShots(), w.ShotCap(), w.Log.FormatRange(w.Tick-1, w.Tick))
		}
	}
	if w.Log.CountCategory("fire", "player") == 0 {
		t.Fatalf("pilot never got a shot off")
	}
	if w.Log.CountCategory("fire", "rejected") == 0 {
		t.Fatalf("expected shots rejected while one was in flight")
	}
}
