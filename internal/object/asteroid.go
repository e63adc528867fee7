package object

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/tomz197/asteroids-classic/internal/config"
	"github.com/tomz197/asteroids-classic/internal/physics"
)

// Asteroid stages. Radius strictly decreases with stage.
const (
	StageLarge  = 1
	StageMedium = 2
	StageSmall  = 3
)

// Asteroid is a jagged rock drifting across the board.
type Asteroid struct {
	Entity
	Angle   float64   // Facing in radians
	Stage   int       // 1 = large, 2 = medium, 3 = small
	Offsets []float64 // Per-vertex radius ratios in [1-jag, 1+jag]
}

// NewAsteroid creates an asteroid of the given stage at (x, y) with random
// velocity, facing and outline. Speed scales with level.
func NewAsteroid(cfg config.Game, r *rand.Rand, x, y float64, level, stage int) Asteroid {
	maxSpeed := cfg.PerTick(cfg.AsteroidSpeed) * (1 + 0.1*float64(level))

	verts := cfg.AsteroidVertices/2 + r.IntN(cfg.AsteroidVertices+1)
	if verts < 3 {
		verts = 3
	}
	offsets := make([]float64, verts)
	for i := range offsets {
		offsets[i] = physics.RandomRange(r, 1-cfg.AsteroidJag, 1+cfg.AsteroidJag)
	}

	return Asteroid{
		Entity: Entity{
			X:          x,
			Y:          y,
			Radius:     math.Ceil(cfg.StageSize(stage) / 2),
			XV:         r.Float64() * maxSpeed * physics.RandomSign(r),
			YV:         r.Float64() * maxSpeed * physics.RandomSign(r),
			LayerIndex: LayerGame,
		},
		Angle:   r.Float64() * 2 * math.Pi,
		Stage:   stage,
		Offsets: offsets,
	}
}

// NewBelt creates AsteroidBaseCount+level large asteroids placed uniformly
// over the board, away from the ship.
func NewBelt(cfg config.Game, r *rand.Rand, level int, ship Ship) []Asteroid {
	count := cfg.AsteroidBaseCount + level
	clearance := cfg.BeltClearance()

	belt := make([]Asteroid, 0, count)
	for len(belt) < count {
		var x, y float64
		for {
			x = r.Float64() * cfg.Width
			y = r.Float64() * cfg.Height
			if physics.Distance(ship.X, ship.Y, x, y) >= clearance {
				break
			}
		}
		belt = append(belt, NewAsteroid(cfg, r, x, y, level, StageLarge))
	}
	return belt
}

// Fragments returns the two children of a stage 1 or 2 asteroid, or nil for
// the smallest stage.
func (a Asteroid) Fragments(cfg config.Game, r *rand.Rand, level int) []Asteroid {
	if a.Stage >= StageSmall {
		return nil
	}
	d := cfg.FragmentOffset
	return []Asteroid{
		NewAsteroid(cfg, r, a.X-d, a.Y-d, level, a.Stage+1),
		NewAsteroid(cfg, r, a.X+d, a.Y+d, level, a.Stage+1),
	}
}

// Facing returns the asteroid angle.
func (a Asteroid) Facing() float64 {
	return a.Angle
}

// Outline spreads the jittered vertices evenly around the center.
func (a Asteroid) Outline() []Vertex {
	n := len(a.Offsets)
	verts := make([]Vertex, n)
	for i, ratio := range a.Offsets {
		theta := float64(i) * 2 * math.Pi / float64(n)
		verts[i] = Vertex{X: ratio * math.Cos(theta), Y: ratio * math.Sin(theta)}
	}
	return verts
}

// Clone returns a copy that shares no slices with a.
func (a Asteroid) Clone() Asteroid {
	a.Offsets = slices.Clone(a.Offsets)
	return a
}
