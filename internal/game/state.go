// Package game implements the simulation core: a pure transition function
// from (State, Action) to the next State.
package game

import (
	"math/rand/v2"
	"slices"

	"github.com/tomz197/asteroids-classic/internal/object"
)

// seedStream selects the PCG stream used for every draw from State.Seed.
const seedStream = 0x9e3779b97f4a7c15

// Phase is the spawn/play/game-over state of a game.
type Phase int

const (
	PhaseSpawning Phase = iota // Ship blinking and immune
	PhasePlaying               // Full collision pipeline
	PhaseGameOver              // No lives left; only explosions animate
)

func (p Phase) String() string {
	switch p {
	case PhaseSpawning:
		return "spawning"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of one game. Transitions never modify the
// slices of the state they receive.
type State struct {
	Score      int
	Level      int
	Lives      int
	Ship       object.Ship
	Asteroids  []object.Asteroid
	Explosions []object.Explosion
	Tick       uint64 // Completed game loop ticks
	Seed       uint64 // Source for the next random draw
}

// Phase derives the current phase from lives and the ship's blink counter.
func (s State) Phase() Phase {
	switch {
	case s.Lives == 0:
		return PhaseGameOver
	case s.Ship.Invincible():
		return PhaseSpawning
	default:
		return PhasePlaying
	}
}

// Drawables returns every entity handled by the generic renderer: the ship
// while alive and in an "on" blink phase, then the asteroids.
func (s State) Drawables() []object.Drawable {
	out := make([]object.Drawable, 0, len(s.Asteroids)+1)
	if s.Lives > 0 && s.Ship.Visible() {
		out = append(out, s.Ship)
	}
	for _, a := range s.Asteroids {
		out = append(out, a)
	}
	return out
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	s.Ship = s.Ship.Clone()
	s.Asteroids = slices.Clone(s.Asteroids)
	s.Explosions = slices.Clone(s.Explosions)
	return s
}

// withRand runs fn with a generator seeded from s and stores a fresh seed in
// the returned state.
func withRand(s State, fn func(r *rand.Rand) State) State {
	r := rand.New(rand.NewPCG(s.Seed, seedStream))
	next := fn(r)
	next.Seed = r.Uint64()
	return next
}
