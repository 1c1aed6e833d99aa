package game

import (
	"log"
	"strings"

	"github.com/Garsondee/Grid-Invaders/internal/sim"
)

// reportTail is how many of the game's latest log entries follow the report.
const reportTail = 30

// runReport formats the run report of the current game followed by its most
// recent events.
func runReport(w *sim.World, tail int) string {
	var b strings.Builder
	b.WriteString(sim.BuildReport(w).String())

	entries := w.GameEntries()
	if len(entries) == 0 {
		return b.String()
	}
	if len(entries) > tail {
		entries = entries[len(entries)-tail:]
	}
	b.WriteString("\nrecent events:\n")
	for _, e := range entries {
		b.WriteString("  ")
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// copyReport puts the run report on the system clipboard.
func (g *Game) copyReport() {
	err := g.copyText(runReport(g.world, reportTail))
	if err != nil {
		log.Printf("copy report: %v", err)
	}
	g.setStatus(statusForCopy(err))
}
