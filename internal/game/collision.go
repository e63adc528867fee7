package game

import (
	"math/rand/v2"
	"slices"

	"github.com/tomz197/asteroids-classic/internal/object"
	"github.com/tomz197/asteroids-classic/internal/physics"
)

// circleCollision reports whether the collision circles of a and b overlap.
func circleCollision(a, b object.Positioned) bool {
	ax, ay := a.Position()
	bx, by := b.Position()
	return physics.CirclesOverlap(ax, ay, a.CollisionRadius(), bx, by, b.CollisionRadius())
}

// firstOverlap returns the index of the first asteroid overlapping p, or -1.
func firstOverlap(p object.Positioned, asteroids []object.Asteroid) int {
	return slices.IndexFunc(asteroids, func(a object.Asteroid) bool {
		return circleCollision(p, a)
	})
}

// checkShipCollision destroys the ship on the first asteroid it overlaps.
// With lives to spare the ship respawns and the asteroid fragments; on the
// last life the game ends and the belt is left as it is.
func (e *Engine) checkShipCollision(s State) State {
	if s.Lives == 0 || s.Ship.Invincible() {
		return s
	}
	hit := firstOverlap(s.Ship, s.Asteroids)
	if hit < 0 {
		return s
	}
	return withRand(s, func(r *rand.Rand) State {
		nx, ny := s.Ship.Nose()
		s.Explosions = appendExplosion(s.Explosions, object.NewExplosion(e.cfg, r, nx, ny))
		if s.Lives > 1 {
			s.Lives--
			s.Asteroids = e.removeAsteroid(s.Asteroids, hit, s.Level, r)
			s.Ship = object.NewShip(e.cfg)
		} else {
			s.Lives = 0
		}
		return s
	})
}

// checkLaserCollision resolves at most one laser hit per tick. The first
// laser overlapping any asteroid triggers; the first asteroid overlapping
// that laser is destroyed, and every laser touching it is consumed.
func (e *Engine) checkLaserCollision(s State) State {
	if s.Lives == 0 || s.Ship.Invincible() {
		return s
	}
	lasers := s.Ship.Lasers
	li := slices.IndexFunc(lasers, func(l object.Laser) bool {
		return !l.Exploding() && firstOverlap(l, s.Asteroids) >= 0
	})
	if li < 0 {
		return s
	}
	laser := lasers[li]
	ai := firstOverlap(laser, s.Asteroids)
	target := s.Asteroids[ai]

	kept := make([]object.Laser, 0, len(lasers))
	for _, l := range lasers {
		if !circleCollision(l, target) {
			kept = append(kept, l)
		}
	}

	return withRand(s, func(r *rand.Rand) State {
		s.Score += e.cfg.StagePoints(target.Stage)
		s.Ship.Lasers = kept
		s.Asteroids = e.removeAsteroid(s.Asteroids, ai, s.Level, r)
		s.Explosions = appendExplosion(s.Explosions, object.NewExplosion(e.cfg, r, laser.X, laser.Y))
		return s
	})
}

// removeAsteroid returns a new belt without the asteroid at i, followed by
// its fragments.
func (e *Engine) removeAsteroid(belt []object.Asteroid, i, level int, r *rand.Rand) []object.Asteroid {
	kids := belt[i].Fragments(e.cfg, r, level)
	out := make([]object.Asteroid, 0, len(belt)-1+len(kids))
	out = append(out, belt[:i]...)
	out = append(out, belt[i+1:]...)
	return append(out, kids...)
}

func appendExplosion(list []object.Explosion, ex object.Explosion) []object.Explosion {
	out := make([]object.Explosion, len(list), len(list)+1)
	copy(out, list)
	return append(out, ex)
}
