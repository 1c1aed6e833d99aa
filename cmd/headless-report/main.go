package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Garsondee/Grid-Invaders/internal/sim"
)

type runStats struct {
	runIndex int
	seed     int64

	firstKillTick   int
	firstHitTick    int
	firstBounceTick int
	firstClearTick  int
	lossTick        int

	report sim.Report
	log    string // full formatted log, kept only with -verbose
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var cols int
	var rows int
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless games")
	flag.IntVar(&ticks, "ticks", 3*60*sim.TickRate, "tick limit per game")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&cols, "cols", 10, "formation columns")
	flag.IntVar(&rows, "rows", 5, "formation rows")
	flag.BoolVar(&verbose, "verbose", false, "print every run's full event log")
	flag.Parse()

	cfg, err := checkFlags(runs, ticks, cols, rows)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("=== Headless Invaders Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d grid=%dx%d\n\n", runs, ticks, seedBase, seedStep, cols, rows)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runGame(i+1, seed, ticks, cfg, verbose)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

// checkFlags validates the run knobs and builds the game config.
func checkFlags(runs, ticks, cols, rows int) (sim.Config, error) {
	if runs <= 0 {
		return sim.Config{}, errors.New("-runs must be > 0")
	}
	if ticks <= 0 {
		return sim.Config{}, errors.New("-ticks must be > 0")
	}
	cfg := sim.DefaultConfig()
	cfg.GridCols = cols
	cfg.GridRows = rows
	if err := cfg.Validate(); err != nil {
		return sim.Config{}, err
	}
	return cfg, nil
}

// runGame plays one autopilot game until it is lost or the tick limit hits.
func runGame(runIndex int, seed int64, ticks int, cfg sim.Config, verbose bool) runStats {
	h := sim.NewHeadless(
		sim.WithConfig(cfg),
		sim.WithSeed(seed),
		sim.WithVerbose(verbose),
		sim.WithAutopilot(),
	)
	h.RunUntil(func(w *sim.World) bool { return w.Lost }, ticks)

	entries := h.Log.Entries()
	rs := runStats{
		runIndex:        runIndex,
		seed:            seed,
		firstKillTick:   firstTick(entries, "score", "enemy_destroyed", ""),
		firstHitTick:    firstTick(entries, "player", "hit", ""),
		firstBounceTick: firstTick(entries, "formation", "bounce", ""),
		firstClearTick:  firstTick(entries, "round", "cleared", ""),
		lossTick:        firstTick(entries, "game", "lost", ""),
		report:          sim.BuildReport(h.World),
	}
	if verbose {
		rs.log = h.Log.Format()
	}
	return rs
}

func firstTick(entries []sim.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_kill=%d first_hit=%d first_bounce=%d first_clear=%d loss=%d\n",
		rs.firstKillTick, rs.firstHitTick, rs.firstBounceTick, rs.firstClearTick, rs.lossTick)
	fmt.Print(rs.report.String())
	if rs.log != "" {
		fmt.Println("event_log:")
		fmt.Print(rs.log)
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalScore := uint64(0)
	totalRounds := 0
	totalTicks := 0
	totalShots := 0
	totalHits := 0
	var kills [len(sim.Tiers)]int

	clearTicks := make([]int, 0, len(all))
	lossTicks := make([]int, 0, len(all))
	outcomes := outcomeCounts(all)

	for _, rs := range all {
		totalScore += rs.report.Score
		totalRounds += rs.report.Rounds
		totalTicks += rs.report.Ticks
		totalShots += rs.report.ShotsFired
		totalHits += rs.report.HitsTaken
		for _, t := range sim.Tiers {
			kills[t] += rs.report.Kills[t]
		}
		if rs.firstClearTick >= 0 {
			clearTicks = append(clearTicks, rs.firstClearTick)
		}
		if rs.lossTick >= 0 {
			lossTicks = append(lossTicks, rs.lossTick)
		}
	}

	n := len(all)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d outcomes: %s\n", n, formatOutcomes(outcomes))
	fmt.Printf("avg_per_run: score=%.1f rounds=%.2f ticks=%.1f shots=%.1f hits_taken=%.1f\n",
		avg(int(totalScore), n), avg(totalRounds, n), avg(totalTicks, n), avg(totalShots, n), avg(totalHits, n))
	fmt.Print("avg_kills_per_run:")
	for _, t := range sim.Tiers {
		fmt.Printf(" %s=%.1f", t, avg(kills[t], n))
	}
	fmt.Println()
	fmt.Printf("phase_marker_avg_ticks: first_clear=%s loss=%s\n", avgTickString(clearTicks), avgTickString(lossTicks))

	if best, ok := bestRun(all); ok {
		fmt.Printf("best_run=%d seed=%d score=%d rounds=%d\n", best.runIndex, best.seed, best.report.Score, best.report.Rounds)
	}
}

func outcomeCounts(all []runStats) map[sim.Outcome]int {
	out := map[sim.Outcome]int{}
	for _, rs := range all {
		out[rs.report.Outcome]++
	}
	return out
}

func formatOutcomes(counts map[sim.Outcome]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]sim.Outcome, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, " ")
}

// bestRun picks the highest score, breaking ties by the earlier run.
func bestRun(all []runStats) (runStats, bool) {
	if len(all) == 0 {
		return runStats{}, false
	}
	best := all[0]
	for _, rs := range all[1:] {
		if rs.report.Score > best.report.Score {
			best = rs
		}
	}
	return best, true
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
