package sim

import (
	"fmt"
	"strings"
)

// Outcome says how a game ended, if it has.
type Outcome int

const (
	OutcomeInProgress Outcome = iota
	OutcomeDestroyed          // health reached zero
	OutcomeOverrun            // the formation reached the player's row
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInProgress:
		return "in_progress"
	case OutcomeDestroyed:
		return "destroyed"
	case OutcomeOverrun:
		return "overrun"
	default:
		return "unknown"
	}
}

// Report summarises one game from its log entries.
type Report struct {
	Outcome        Outcome
	Score          uint64
	Rounds         int
	Ticks          int // ticks from the first entry of the game to the last
	ShotsFired     int
	ShotsRejected  int
	EnemyShots     int
	Kills          [tierCount]int
	HitsTaken      int
	DamageTaken    float64
	HealthHealed   float64
	Bounces        int
	FinalHealth    float64
	StartTick      int
	EndTick        int
	Accuracy       float64 // kills per shot fired
	PointsByTier   [tierCount]uint64
	TotalKills     int
	LossReasonText string
}

// BuildReport tallies a report for the game currently held by w.
func BuildReport(w *World) Report {
	r := Report{
		Score:       w.Score,
		Rounds:      w.Rounds,
		FinalHealth: w.Player.Health,
		StartTick:   -1,
		EndTick:     w.Tick,
	}
	for _, e := range w.GameEntries() {
		if r.StartTick < 0 {
			r.StartTick = e.Tick
		}
		switch e.Category + "/" + e.Key {
		case "fire/player":
			r.ShotsFired++
		case "fire/rejected":
			r.ShotsRejected++
		case "fire/enemy":
			r.EnemyShots++
		case "score/enemy_destroyed":
			for _, t := range Tiers {
				if strings.HasPrefix(e.Value, t.String()+" ") {
					r.Kills[t]++
					r.PointsByTier[t] += uint64(e.NumVal)
				}
			}
			r.TotalKills++
		case "player/hit":
			r.HitsTaken++
			r.DamageTaken += e.NumVal
		case "player/healed":
			r.HealthHealed += e.NumVal
		case "formation/bounce":
			r.Bounces++
		}
	}
	if r.StartTick < 0 {
		r.StartTick = w.Tick
	}
	r.Ticks = r.EndTick - r.StartTick
	if r.ShotsFired > 0 {
		r.Accuracy = float64(r.TotalKills) / float64(r.ShotsFired)
	}

	switch {
	case !w.Lost:
		r.Outcome = OutcomeInProgress
	case w.Formation.ReachedPlayer:
		r.Outcome = OutcomeOverrun
		r.LossReasonText = "the formation reached the player's row"
	default:
		r.Outcome = OutcomeDestroyed
		r.LossReasonText = fmt.Sprintf("health fell to %.1f", w.Player.Health)
	}
	return r
}

// String formats the report as a block of key=value lines.
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Grid Invaders run report ---\n")
	fmt.Fprintf(&b, "outcome=%s score=%d rounds=%d ticks=%d (T=%d..%d)\n",
		r.Outcome, r.Score, r.Rounds, r.Ticks, r.StartTick, r.EndTick)
	if r.LossReasonText != "" {
		fmt.Fprintf(&b, "reason: %s\n", r.LossReasonText)
	}
	fmt.Fprintf(&b, "shots: fired=%d rejected=%d enemy=%d accuracy=%.2f\n",
		r.ShotsFired, r.ShotsRejected, r.EnemyShots, r.Accuracy)
	b.WriteString("kills:")
	for _, t := range Tiers {
		fmt.Fprintf(&b, " %s=%d(+%d)", t, r.Kills[t], r.PointsByTier[t])
	}
	fmt.Fprintf(&b, " total=%d\n", r.TotalKills)
	fmt.Fprintf(&b, "health: final=%.1f hits=%d damage=%.1f healed=%.1f\n",
		r.FinalHealth, r.HitsTaken, r.DamageTaken, r.HealthHealed)
	fmt.Fprintf(&b, "formation: bounces=%d\n", r.Bounces)
	return b.String()
}
