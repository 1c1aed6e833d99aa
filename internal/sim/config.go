package sim

import (
	"errors"
	"fmt"
)

// TickRate is the number of fixed simulation updates per second.
const TickRate = 60

// Config holds every tunable of a game. DefaultConfig returns the stock values.
type Config struct {
	WindowWidth  float64
	WindowHeight float64

	PlayerStart  Vec2
	PlayerWidth  float64
	PlayerHeight float64
	PlayerSpeed  float64 // px/s while a direction is latched
	PlayerHealth float64

	HealthBar       Rect
	HealthBarStroke float64
	HealthRegenMin  float64 // lower bound of the round-clear heal, before round scaling
	HealthRegenMax  float64 // upper bound (exclusive), before round scaling

	EnemyWidth     float64
	EnemyHeight    float64
	EnemySpeed     float64 // px/s, shared by the whole formation
	EnemySpacing   float64 // gap between grid cells
	EnemyMinDamage float64
	EnemyMaxDamage float64 // exclusive
	GridCols       int
	GridRows       int
	GridY          float64 // top edge of the first row

	// Zone insets: the formation zone is the window shrunk by ZoneInsetX on
	// each side and by ZoneInsetBottom at the bottom.
	ZoneInsetX      float64
	ZoneInsetBottom float64

	Points [tierCount]uint64

	ProjectileWidth  float64
	ProjectileHeight float64

	PlayerShotAccel  Vec2
	PlayerShotVel    Vec2
	PlayerShotDamage float64
	EnemyShotAccel   Vec2
	EnemyShotVel     Vec2

	// FireFrequency is how many cleared rounds it takes to earn one more
	// simultaneous player projectile.
	FireFrequency int
}

// DefaultConfig returns the stock 650x450 game.
func DefaultConfig() Config {
	const (
		w = 650.0
		h = 450.0
	)
	return Config{
		WindowWidth:  w,
		WindowHeight: h,

		PlayerStart:  Vec2{X: w / 2, Y: h - 50},
		PlayerWidth:  30,
		PlayerHeight: 26,
		PlayerSpeed:  80,
		PlayerHealth: 100,

		HealthBar:       Rect{X: 20, Y: 20, W: 100, H: 10},
		HealthBarStroke: 2.5,
		HealthRegenMin:  5,
		HealthRegenMax:  10,

		EnemyWidth:     30,
		EnemyHeight:    22,
		EnemySpeed:     30,
		EnemySpacing:   12,
		EnemyMinDamage: 2,
		EnemyMaxDamage: 12,
		GridCols:       10,
		GridRows:       5,
		GridY:          32,

		ZoneInsetX:      50,
		ZoneInsetBottom: 50,

		Points: [tierCount]uint64{
			TierA: 40,
			TierB: 20,
			TierC: 10,
		},

		ProjectileWidth:  5,
		ProjectileHeight: 10,

		PlayerShotAccel:  Vec2{X: 0, Y: -9.8},
		PlayerShotVel:    Vec2{X: 0, Y: -50},
		PlayerShotDamage: 100,
		EnemyShotAccel:   Vec2{X: 0, Y: 0},
		EnemyShotVel:     Vec2{X: 0, Y: 10},

		FireFrequency: 5,
	}
}

// Zone returns the rectangle the formation must stay within.
func (c Config) Zone() Rect {
	return Rect{
		X: c.ZoneInsetX,
		Y: 0,
		W: c.WindowWidth - 2*c.ZoneInsetX,
		H: c.WindowHeight - c.ZoneInsetBottom,
	}
}

// GridWidth returns the span from the left edge of the first column to the
// right edge of the last.
func (c Config) GridWidth() float64 {
	return float64(c.GridCols)*(c.EnemyWidth+c.EnemySpacing) - c.EnemySpacing
}

// GridX returns the left offset that centres the grid in the window.
func (c Config) GridX() float64 {
	return (c.WindowWidth - c.GridWidth()) / 2
}

// Validate reports the first setting that would make the simulation ill-defined.
func (c Config) Validate() error {
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("window size %.0fx%.0f must be positive", c.WindowWidth, c.WindowHeight)
	}
	if c.GridCols <= 0 || c.GridRows <= 0 {
		return fmt.Errorf("grid %dx%d must have at least one enemy", c.GridCols, c.GridRows)
	}
	if c.EnemyWidth <= 0 || c.EnemyHeight <= 0 || c.PlayerWidth <= 0 || c.PlayerHeight <= 0 {
		return errors.New("entity sizes must be positive")
	}
	if c.ProjectileWidth < 0 || c.ProjectileHeight < 0 {
		return errors.New("projectile size must be non-negative")
	}
	if c.EnemyMinDamage < 0 || c.EnemyMaxDamage <= c.EnemyMinDamage {
		return fmt.Errorf("enemy damage range [%.1f,%.1f) is empty or negative", c.EnemyMinDamage, c.EnemyMaxDamage)
	}
	if c.HealthRegenMin <= 0 || c.HealthRegenMax <= c.HealthRegenMin {
		return fmt.Errorf("health regen range [%.1f,%.1f) must be positive and non-empty", c.HealthRegenMin, c.HealthRegenMax)
	}
	if c.PlayerShotDamage < 0 {
		return errors.New("player shot damage must be non-negative")
	}
	if c.FireFrequency <= 0 {
		return fmt.Errorf("fire frequency %d must be positive", c.FireFrequency)
	}
	zone := c.Zone()
	if zone.W <= 0 || zone.H <= 0 {
		return fmt.Errorf("formation zone %.0fx%.0f is empty", zone.W, zone.H)
	}
	if c.GridY <= zone.Y {
		return fmt.Errorf("grid top %.1f must sit below the zone's top edge", c.GridY)
	}
	if c.GridWidth() >= zone.W {
		return fmt.Errorf("grid width %.1f does not fit the %.1f wide zone", c.GridWidth(), zone.W)
	}
	return nil
}
