package game

import (
	"math"

	"github.com/tomz197/asteroids-classic/internal/object"
	"github.com/tomz197/asteroids-classic/internal/physics"
)

// moveShip turns the ship, moves it with wraparound, then thrusts along its
// facing or coasts under friction.
func (e *Engine) moveShip(s State) State {
	if s.Lives == 0 {
		return s
	}
	ship := s.Ship
	ship.Angle += ship.Rotation
	ship.X = physics.Wrap(ship.X+ship.XV, ship.Radius, e.cfg.Width)
	ship.Y = physics.Wrap(ship.Y+ship.YV, ship.Radius, e.cfg.Height)

	if ship.Thrusting {
		thrust := e.cfg.PerTick(e.cfg.ShipThrust)
		ship.XV += thrust * math.Cos(ship.Angle)
		ship.YV -= thrust * math.Sin(ship.Angle)
	} else {
		drag := e.cfg.PerTick(e.cfg.Friction)
		ship.XV -= drag * ship.XV
		ship.YV -= drag * ship.YV
	}
	s.Ship = ship
	return s
}

// moveLasers advances flying lasers, counts down detonating ones and drops
// lasers that leave the board. Lasers do not wrap.
func (e *Engine) moveLasers(s State) State {
	if s.Lives == 0 || len(s.Ship.Lasers) == 0 {
		return s
	}
	kept := make([]object.Laser, 0, len(s.Ship.Lasers))
	for _, l := range s.Ship.Lasers {
		if l.Exploding() {
			l.ExplodeTime--
			if l.ExplodeTime > 0 {
				kept = append(kept, l)
			}
			continue
		}
		l.X += l.XV
		l.Y += l.YV
		l.Dist += math.Hypot(l.XV, l.YV)
		if l.X < 0 || l.X > e.cfg.Width || l.Y < 0 || l.Y > e.cfg.Height {
			continue
		}
		kept = append(kept, l)
	}
	s.Ship.Lasers = kept
	return s
}

// moveAsteroids drifts every asteroid with wraparound.
func (e *Engine) moveAsteroids(s State) State {
	if s.Lives == 0 {
		return s
	}
	moved := make([]object.Asteroid, len(s.Asteroids))
	for i, a := range s.Asteroids {
		a.X = physics.Wrap(a.X+a.XV, a.Radius, e.cfg.Width)
		a.Y = physics.Wrap(a.Y+a.YV, a.Radius, e.cfg.Height)
		moved[i] = a
	}
	s.Asteroids = moved
	return s
}

// updateBlink counts down the current blink phase; when it runs out a new
// phase starts and one fewer remains.
func (e *Engine) updateBlink(s State) State {
	if !s.Ship.Invincible() {
		return s
	}
	ship := s.Ship
	ship.BlinkTime--
	if ship.BlinkTime <= 0 {
		ship.BlinkTime = e.cfg.Ticks(e.cfg.ShipBlinkDuration)
		ship.BlinkNum--
	}
	s.Ship = ship
	return s
}
