package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Grid-Invaders/internal/sim"
)

const (
	feedPanelWidth = 300
	feedMaxEntries = 40
	feedLineHeight = 14
)

// EventFeed is a ring buffer of the latest sim log entries rendered as an
// overlay panel. The full log stays in the world's SimLog.
type EventFeed struct {
	entries []sim.SimLogEntry
	head    int
	count   int
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{
		entries: make([]sim.SimLogEntry, feedMaxEntries),
	}
}

// Add appends an entry, evicting the oldest when full.
func (f *EventFeed) Add(e sim.SimLogEntry) {
	f.entries[f.head] = e
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []sim.SimLogEntry {
	result := make([]sim.SimLogEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

func sideColor(side string) color.RGBA {
	switch side {
	case "player":
		return color.RGBA{R: 80, G: 210, B: 110, A: 255}
	case "enemy":
		return color.RGBA{R: 210, G: 70, B: 70, A: 255}
	default:
		return color.RGBA{R: 150, G: 150, B: 150, A: 255}
	}
}

func feedLine(e sim.SimLogEntry) string {
	return fmt.Sprintf("%4d %-9s %s", e.Tick, e.Key, e.Value)
}

// Draw renders the feed as a panel at panelX spanning panelH, newest at the bottom.
func (f *EventFeed) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, feedPanelWidth, float32(panelH), color.RGBA{R: 8, G: 10, B: 16, A: 220}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 60, G: 70, B: 110, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS  (L to hide)", panelX+8, 2)

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for _, e := range entries {
		vector.FillRect(screen, float32(panelX+5), float32(y+5), 3, 5, sideColor(e.Side), false)
		ebitenutil.DebugPrintAt(screen, feedLine(e), panelX+12, y)
		y += feedLineHeight
	}
}
