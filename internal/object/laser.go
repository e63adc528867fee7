package object

import (
	"math"

	"github.com/tomz197/asteroids-classic/internal/config"
)

// Laser is a shot fired from the ship's nose.
//
// ExplodeTime is reserved for a detonation effect. The engine removes lasers
// that hit an asteroid outright and never sets it, but a laser that carries a
// countdown stops, fades over LaserExplodeDuration and is then removed.
type Laser struct {
	Entity
	Dist        float64 // Distance traveled
	ExplodeTime int     // Ticks of detonation left; 0 while flying
}

// NewLaser creates a laser at the ship's nose moving along its facing angle.
func NewLaser(cfg config.Game, ship Ship) Laser {
	x, y := ship.Nose()
	speed := cfg.PerTick(cfg.LaserSpeed)
	return Laser{
		Entity: Entity{
			X:          x,
			Y:          y,
			Radius:     cfg.LaserRadius,
			XV:         speed * math.Cos(ship.Angle),
			YV:         -speed * math.Sin(ship.Angle),
			LayerIndex: LayerGame,
		},
	}
}

// Exploding reports whether the laser is showing its detonation.
func (l Laser) Exploding() bool {
	return l.ExplodeTime > 0
}
