package object

import (
	"math"
	"slices"

	"github.com/tomz197/asteroids-classic/internal/config"
	"github.com/tomz197/asteroids-classic/internal/physics"
)

// shipOutline is the nose and the two rear vertices, facing angle 0.
var shipOutline = []Vertex{
	{X: 4.0 / 3, Y: 0},
	{X: -2.0 / 3, Y: 1},
	{X: -2.0 / 3, Y: -1},
}

// Ship is the player-controlled spaceship.
type Ship struct {
	Entity
	Angle     float64 // Facing in radians, counter-clockwise, 0 = right
	Rotation  float64 // Angular rate in radians per tick
	Thrusting bool
	BlinkTime int  // Ticks left in the current blink phase
	BlinkNum  int  // Blink phases left; > 0 while invincible
	CanShoot  bool // Laser cooldown released
	Lasers    []Laser
}

// NewShip creates a ship centered on the board, facing up, with a full spawn
// grace period.
func NewShip(cfg config.Game) Ship {
	return Ship{
		Entity: Entity{
			X:          cfg.Width / 2,
			Y:          cfg.Height / 2,
			Radius:     cfg.ShipRadius(),
			LayerIndex: LayerGame,
		},
		Angle:     math.Pi / 2,
		BlinkTime: cfg.Ticks(cfg.ShipBlinkDuration),
		BlinkNum:  cfg.BlinkCycles(),
		CanShoot:  true,
	}
}

// Nose returns the tip of the ship.
func (s Ship) Nose() (float64, float64) {
	return physics.Rotate(s.X, s.Y, shipOutline[0].X, shipOutline[0].Y, s.Angle, s.Radius)
}

// Invincible reports whether the spawn grace period is running.
func (s Ship) Invincible() bool {
	return s.BlinkNum > 0
}

// Visible reports whether the ship is in an "on" blink phase.
func (s Ship) Visible() bool {
	return s.BlinkNum == 0 || s.BlinkNum%2 == 0
}

// Facing returns the ship angle.
func (s Ship) Facing() float64 {
	return s.Angle
}

// Outline returns the ship triangle.
func (s Ship) Outline() []Vertex {
	return shipOutline
}

// Clone returns a copy that shares no slices with s.
func (s Ship) Clone() Ship {
	s.Lasers = slices.Clone(s.Lasers)
	return s
}
