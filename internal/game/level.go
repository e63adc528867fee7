package game

import (
	"math/rand/v2"

	"github.com/tomz197/asteroids-classic/internal/object"
)

// checkLevelCompleted starts the next level once the belt is cleared.
func (e *Engine) checkLevelCompleted(s State) State {
	if s.Lives == 0 || len(s.Asteroids) > 0 {
		return s
	}
	return withRand(s, func(r *rand.Rand) State {
		s.Level++
		s.Asteroids = object.NewBelt(e.cfg, r, s.Level, s.Ship)
		return s
	})
}

// animateExplosions steps every particle and prunes explosions whose
// particles have all faded.
func (e *Engine) animateExplosions(s State) State {
	if len(s.Explosions) == 0 {
		return s
	}
	out := make([]object.Explosion, 0, len(s.Explosions))
	for _, ex := range s.Explosions {
		next := ex.Step(e.cfg.ParticleFriction, e.cfg.ParticleGravity)
		if !next.Done() {
			out = append(out, next)
		}
	}
	s.Explosions = out
	return s
}
