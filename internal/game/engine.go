package game

import (
	"math"
	"math/rand/v2"

	"github.com/tomz197/asteroids-classic/internal/config"
	"github.com/tomz197/asteroids-classic/internal/object"
)

// transition is one pure step of the per-tick pipeline.
type transition func(State) State

// Engine applies actions to game states. It holds only immutable
// configuration, so one Engine can serve any number of games concurrently.
type Engine struct {
	cfg config.Game

	spawning []transition
	playing  []transition
	gameOver []transition
}

// NewEngine creates an engine for the given configuration.
func NewEngine(cfg config.Game) *Engine {
	e := &Engine{cfg: cfg}
	e.spawning = []transition{
		e.moveShip,
		e.moveLasers,
		e.moveAsteroids,
		e.updateBlink,
		e.checkLevelCompleted,
		e.animateExplosions,
	}
	e.playing = []transition{
		e.moveShip,
		e.moveLasers,
		e.moveAsteroids,
		e.checkShipCollision,
		e.checkLaserCollision,
		e.checkLevelCompleted,
		e.animateExplosions,
	}
	e.gameOver = []transition{
		e.animateExplosions,
	}
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() config.Game {
	return e.cfg
}

// NewGame returns the opening state: level 1, full lives, a fresh ship and
// a belt placed away from it.
func (e *Engine) NewGame(seed uint64) State {
	s := State{
		Level: 1,
		Lives: e.cfg.Lives,
		Ship:  object.NewShip(e.cfg),
		Seed:  seed,
	}
	return withRand(s, func(r *rand.Rand) State {
		s.Asteroids = object.NewBelt(e.cfg, r, s.Level, s.Ship)
		return s
	})
}

// Update returns the state that follows s after applying a. Unknown actions
// and actions that do not apply to the current phase return s unchanged.
func (e *Engine) Update(s State, a Action) State {
	switch a {
	case GameLoop:
		return e.gameLoop(s)
	case RotateLeft:
		return e.control(s, func(ship *object.Ship) {
			ship.Rotation = e.turnRate()
		})
	case RotateRight:
		return e.control(s, func(ship *object.Ship) {
			ship.Rotation = -e.turnRate()
		})
	case RotateStop:
		return e.control(s, func(ship *object.Ship) {
			ship.Rotation = 0
		})
	case ThrustOn:
		return e.control(s, func(ship *object.Ship) {
			ship.Thrusting = true
		})
	case ThrustStop:
		return e.control(s, func(ship *object.Ship) {
			ship.Thrusting = false
		})
	case ShootLaser:
		return e.control(s, func(ship *object.Ship) {
			if !ship.CanShoot {
				return
			}
			lasers := make([]object.Laser, len(ship.Lasers), len(ship.Lasers)+1)
			copy(lasers, ship.Lasers)
			ship.Lasers = append(lasers, object.NewLaser(e.cfg, *ship))
			ship.CanShoot = false
		})
	case EnableLaser:
		return e.control(s, func(ship *object.Ship) {
			ship.CanShoot = true
		})
	default:
		return s
	}
}

// control applies fn to a copy of the ship unless the game is over.
func (e *Engine) control(s State, fn func(ship *object.Ship)) State {
	if s.Lives == 0 {
		return s
	}
	ship := s.Ship
	fn(&ship)
	s.Ship = ship
	return s
}

// gameLoop runs the pipeline for the current phase.
func (e *Engine) gameLoop(s State) State {
	var steps []transition
	switch s.Phase() {
	case PhaseGameOver:
		steps = e.gameOver
	case PhaseSpawning:
		steps = e.spawning
	default:
		steps = e.playing
	}
	for _, step := range steps {
		s = step(s)
	}
	s.Tick++
	return s
}

// turnRate is the ship's angular speed in radians per tick.
func (e *Engine) turnRate() float64 {
	return e.cfg.PerTick(e.cfg.ShipTurnSpeed / 180 * math.Pi)
}
