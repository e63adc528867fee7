package object

import (
	"math"
	"math/rand/v2"

	"github.com/tomz197/asteroids-classic/internal/config"
	"github.com/tomz197/asteroids-classic/internal/physics"
)

// Particle is one spark of an explosion, trailing its recent positions.
type Particle struct {
	X, Y       float64
	Trail      []Vertex // Most recent first, fixed length
	Angle      float64  // Direction of travel
	Speed      float64  // Units per tick
	Brightness float64  // Cosmetic lightness in percent
	Alpha      float64  // Opacity in (0, 1]
	Decay      float64  // Alpha lost per tick
}

// NewParticle creates a particle at (x, y) heading in a random direction.
func NewParticle(cfg config.Game, r *rand.Rand, x, y float64) Particle {
	trail := make([]Vertex, cfg.ParticleTrail)
	for i := range trail {
		trail[i] = Vertex{X: x, Y: y}
	}
	return Particle{
		X:          x,
		Y:          y,
		Trail:      trail,
		Angle:      r.Float64() * 2 * math.Pi,
		Speed:      physics.RandomRange(r, cfg.ParticleSpeedMin, cfg.ParticleSpeedMax),
		Brightness: physics.RandomRange(r, cfg.ParticleBrightMin, cfg.ParticleBrightMax),
		Alpha:      1,
		Decay:      physics.RandomRange(r, cfg.ParticleDecayMin, cfg.ParticleDecayMax),
	}
}

// Step advances the particle by one tick. It returns false once the particle
// has faded to its own decay rate and should be removed.
func (p Particle) Step(friction, gravity float64) (Particle, bool) {
	if p.Alpha <= p.Decay {
		return p, false
	}

	trail := make([]Vertex, len(p.Trail))
	if len(trail) > 0 {
		trail[0] = Vertex{X: p.X, Y: p.Y}
		copy(trail[1:], p.Trail)
	}
	p.Trail = trail

	p.Speed *= friction
	p.Alpha -= p.Decay
	p.X += math.Cos(p.Angle) * p.Speed
	p.Y += math.Sin(p.Angle)*p.Speed + gravity
	return p, true
}

// Explosion is a burst of particles spawned together.
type Explosion struct {
	X, Y       float64
	LayerIndex int
	Particles  []Particle
}

// NewExplosion creates a full burst of particles at (x, y).
func NewExplosion(cfg config.Game, r *rand.Rand, x, y float64) Explosion {
	particles := make([]Particle, cfg.ExplosionParticles)
	for i := range particles {
		particles[i] = NewParticle(cfg, r, x, y)
	}
	return Explosion{X: x, Y: y, LayerIndex: LayerGame, Particles: particles}
}

// Layer returns the render layer index.
func (e Explosion) Layer() int {
	return e.LayerIndex
}

// Done reports whether every particle has faded.
func (e Explosion) Done() bool {
	return len(e.Particles) == 0
}

// Step advances every particle and drops the faded ones.
func (e Explosion) Step(friction, gravity float64) Explosion {
	alive := make([]Particle, 0, len(e.Particles))
	for _, p := range e.Particles {
		if next, ok := p.Step(friction, gravity); ok {
			alive = append(alive, next)
		}
	}
	e.Particles = alive
	return e
}
