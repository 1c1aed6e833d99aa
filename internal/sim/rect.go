package sim

import "fmt"

// Direction tags a rectangle with a facing or the edge it last exceeded.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// Vec2 is a 2D vector in screen space (+y is down).
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned box. Facing is informational only; collision never reads it.
type Rect struct {
	X, Y   float64
	W, H   float64
	Facing Direction
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

func (r Rect) CenterX() float64 { return r.X + r.W/2 }

func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Center returns the midpoint of the box.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.CenterX(), Y: r.CenterY()}
}

// Collides reports whether a and b overlap. Touching edges count as overlap.
func Collides(a, b Rect) bool {
	return a.X <= b.Right() &&
		a.Right() >= b.X &&
		a.Y <= b.Bottom() &&
		a.Bottom() >= b.Y
}

// Exceeds reports which edge of region r has reached or crossed, if any.
// Edges are tested in the fixed order up, down, left, right and only the
// first breached edge is returned, even when several are breached at once.
func Exceeds(r, region Rect) (Direction, bool) {
	switch {
	case r.Y <= region.Y:
		return DirUp, true
	case r.Bottom() >= region.Bottom():
		return DirDown, true
	case r.X <= region.X:
		return DirLeft, true
	case r.Right() >= region.Right():
		return DirRight, true
	}
	return 0, false
}
