package config

import (
	"math"
	"time"
)

// Game holds every tunable of the simulation. Speeds and accelerations are
// expressed per second and converted to per-tick values with TicksPerSecond.
type Game struct {
	Width          float64 // Board width in logical units
	Height         float64 // Board height in logical units
	TicksPerSecond int     // Nominal host cadence

	Lives int // Lives at game start

	// Ship
	ShipSize          float64       // Ship diameter
	ShipThrust        float64       // Acceleration in units/s²
	ShipTurnSpeed     float64       // Degrees per second
	Friction          float64       // Fraction of velocity lost per second when coasting
	ShipInvincibility time.Duration // Spawn grace period
	ShipBlinkDuration time.Duration // Length of one blink phase

	// Lasers
	LaserSpeed           float64 // Units per second
	LaserRadius          float64
	LaserExplodeDuration time.Duration // Fade length of a detonating laser (reserved)

	// Asteroids
	AsteroidBaseCount int     // Belt size is AsteroidBaseCount + level
	AsteroidSize      float64 // Stage 1 diameter; halves with each stage
	AsteroidSpeed     float64 // Max units per second at level 0
	AsteroidVertices  int     // Average vertex count
	AsteroidJag       float64 // Vertex radius jitter (0 = round)
	FragmentOffset    float64 // Child displacement from the parent center
	PointsLarge       int
	PointsMedium      int
	PointsSmall       int

	// Explosions
	ExplosionParticles int
	ParticleSpeedMin   float64 // Units per tick
	ParticleSpeedMax   float64
	ParticleDecayMin   float64 // Alpha lost per tick
	ParticleDecayMax   float64
	ParticleBrightMin  float64
	ParticleBrightMax  float64
	ParticleFriction   float64 // Speed multiplier per tick
	ParticleTrail      int     // Trail length in positions
	ParticleGravity    float64 // Constant vertical offset per tick
}

// Default returns the documented game constants at 60 ticks per second.
func Default() Game {
	return Game{
		Width:          700,
		Height:         500,
		TicksPerSecond: 60,

		Lives: 3,

		ShipSize:          30,
		ShipThrust:        5,
		ShipTurnSpeed:     360,
		Friction:          0.7,
		ShipInvincibility: 3 * time.Second,
		ShipBlinkDuration: 100 * time.Millisecond,

		LaserSpeed:           500,
		LaserRadius:          2,
		LaserExplodeDuration: 100 * time.Millisecond,

		AsteroidBaseCount: 3,
		AsteroidSize:      100,
		AsteroidSpeed:     50,
		AsteroidVertices:  10,
		AsteroidJag:       0.4,
		FragmentOffset:    5,
		PointsLarge:       20,
		PointsMedium:      50,
		PointsSmall:       100,

		ExplosionParticles: 30,
		ParticleSpeedMin:   1,
		ParticleSpeedMax:   10,
		ParticleDecayMin:   0.015,
		ParticleDecayMax:   0.03,
		ParticleBrightMin:  50,
		ParticleBrightMax:  80,
		ParticleFriction:   0.95,
		ParticleTrail:      5,
		ParticleGravity:    0,
	}
}

// MaxTicksPerSecond bounds the tick rate so a tick lasts at least a
// millisecond.
const MaxTicksPerSecond = 1000

// FromEnv returns Default overridden by BOARD_WIDTH, BOARD_HEIGHT, TICK_RATE,
// PARTICLE_GRAVITY, SHIP_INVINCIBILITY and SHIP_BLINK. Values the game cannot
// run with fall back to their defaults: a board too small to place a belt
// away from the ship, or a non-positive tick rate or blink duration. The tick
// rate is capped at MaxTicksPerSecond.
func FromEnv() Game {
	def := Default()
	g := def
	g.Width = GetEnvFloat("BOARD_WIDTH", g.Width)
	g.Height = GetEnvFloat("BOARD_HEIGHT", g.Height)
	g.TicksPerSecond = GetEnvInt("TICK_RATE", g.TicksPerSecond)
	g.ParticleGravity = GetEnvFloat("PARTICLE_GRAVITY", g.ParticleGravity)
	g.ShipInvincibility = GetEnvDuration("SHIP_INVINCIBILITY", g.ShipInvincibility)
	g.ShipBlinkDuration = GetEnvDuration("SHIP_BLINK", g.ShipBlinkDuration)

	if g.TicksPerSecond <= 0 {
		g.TicksPerSecond = def.TicksPerSecond
	}
	g.TicksPerSecond = min(g.TicksPerSecond, MaxTicksPerSecond)
	if !g.roomForBelt() {
		g.Width, g.Height = def.Width, def.Height
	}
	if g.ShipBlinkDuration <= 0 {
		g.ShipBlinkDuration = def.ShipBlinkDuration
	}
	if g.ShipInvincibility < 0 {
		g.ShipInvincibility = def.ShipInvincibility
	}
	return g
}

// BeltClearance is the minimum distance between a new belt asteroid and the
// ship: the largest asteroid diameter plus the ship radius.
func (g Game) BeltClearance() float64 {
	return 2*math.Ceil(g.StageSize(1)/2) + g.ShipRadius()
}

// roomForBelt reports whether some board point lies farther than
// BeltClearance from the centered ship, so belt placement terminates.
func (g Game) roomForBelt() bool {
	if g.Width <= 0 || g.Height <= 0 || math.IsInf(g.Width, 0) || math.IsInf(g.Height, 0) {
		return false
	}
	return math.Hypot(g.Width/2, g.Height/2) > g.BeltClearance()
}

// Ticks converts a duration to a whole number of ticks, rounding up.
func (g Game) Ticks(d time.Duration) int {
	tps := int64(g.TicksPerSecond)
	sec := int64(time.Second)
	return int((int64(d)*tps + sec - 1) / sec)
}

// TickTime is the wall-clock duration of one tick.
func (g Game) TickTime() time.Duration {
	return time.Second / time.Duration(g.TicksPerSecond)
}

// PerTick converts a per-second quantity to a per-tick quantity.
func (g Game) PerTick(perSecond float64) float64 {
	return perSecond / float64(g.TicksPerSecond)
}

// BlinkCycles is the number of blink phases in the spawn grace period.
func (g Game) BlinkCycles() int {
	return int((g.ShipInvincibility + g.ShipBlinkDuration - 1) / g.ShipBlinkDuration)
}

// ShipRadius is half the ship size.
func (g Game) ShipRadius() float64 {
	return g.ShipSize / 2
}

// StageSize returns the diameter of an asteroid of the given stage (1, 2 or 3).
func (g Game) StageSize(stage int) float64 {
	size := g.AsteroidSize
	for i := 1; i < stage; i++ {
		size /= 2
	}
	return size
}

// StagePoints returns the score for destroying an asteroid of the given stage.
func (g Game) StagePoints(stage int) int {
	switch stage {
	case 1:
		return g.PointsLarge
	case 2:
		return g.PointsMedium
	case 3:
		return g.PointsSmall
	default:
		return 0
	}
}
