package input

import "github.com/tomz197/asteroids-classic/internal/game"

// Keys is the held state of the game controls.
type Keys struct {
	Left, Right, Thrust, Fire bool
}

// KeysOf extracts the game controls from terminal input.
func KeysOf(in Input) Keys {
	return Keys{Left: in.Left, Right: in.Right, Thrust: in.Up, Fire: in.Space}
}

// Translator emits actions for the edges of held keys: a press starts a
// rotation, thrust or shot and a release stops it or re-arms the laser.
type Translator struct {
	prev Keys
}

// Translate returns the actions that move the game from the previous key
// state to k, in a fixed order.
func (t *Translator) Translate(k Keys) []game.Action {
	var out []game.Action

	if dir := rotation(k); dir != rotation(t.prev) {
		out = append(out, dir)
	}
	if k.Thrust != t.prev.Thrust {
		if k.Thrust {
			out = append(out, game.ThrustOn)
		} else {
			out = append(out, game.ThrustStop)
		}
	}
	if k.Fire != t.prev.Fire {
		if k.Fire {
			out = append(out, game.ShootLaser)
		} else {
			out = append(out, game.EnableLaser)
		}
	}

	t.prev = k
	return out
}

// Reset forgets the held keys, for example after a restart.
func (t *Translator) Reset() {
	t.prev = Keys{}
}

// rotation resolves left and right into one rotation action. Both or
// neither held means no rotation.
func rotation(k Keys) game.Action {
	switch {
	case k.Left && !k.Right:
		return game.RotateLeft
	case k.Right && !k.Left:
		return game.RotateRight
	default:
		return game.RotateStop
	}
}
