package sim

import "fmt"

// Effect is a fire-and-forget notification for presentation layers such as
// audio. The simulation never waits on, or learns about, how it is rendered.
type Effect int

const (
	EffectEnemyDestroyed Effect = iota
	EffectPlayerHit
	EffectPlayerDestroyed
	EffectPlayerFired
	effectCount
)

// Effects lists every effect kind.
var Effects = [effectCount]Effect{EffectEnemyDestroyed, EffectPlayerHit, EffectPlayerDestroyed, EffectPlayerFired}

func (e Effect) String() string {
	switch e {
	case EffectEnemyDestroyed:
		return "enemy_destroyed"
	case EffectPlayerHit:
		return "player_hit"
	case EffectPlayerDestroyed:
		return "player_destroyed"
	case EffectPlayerFired:
		return "player_fired"
	}
	return fmt.Sprintf("effect(%d)", int(e))
}

// Action is an input-level command applied to a World between ticks.
type Action int

const (
	ActionMoveLeft Action = iota
	ActionMoveRight
	ActionFire
	ActionRestart
)

func (a Action) String() string {
	switch a {
	case ActionMoveLeft:
		return "move_left"
	case ActionMoveRight:
		return "move_right"
	case ActionFire:
		return "fire"
	case ActionRestart:
		return "restart"
	}
	return fmt.Sprintf("action(%d)", int(a))
}
