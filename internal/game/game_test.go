package game

import (
	"math"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/tomz197/asteroids-classic/internal/config"
	"github.com/tomz197/asteroids-classic/internal/object"
	"github.com/tomz197/asteroids-classic/internal/physics"
)

func newEngine() *Engine {
	return NewEngine(config.Default())
}

// rock creates a motionless asteroid of the given stage.
func rock(cfg config.Game, stage int, x, y float64) object.Asteroid {
	a := object.NewAsteroid(cfg, rand.New(rand.NewPCG(7, 7)), x, y, 1, stage)
	a.XV, a.YV = 0, 0
	return a
}

// still creates a motionless laser.
func still(cfg config.Game, x, y float64) object.Laser {
	return object.Laser{Entity: object.Entity{X: x, Y: y, Radius: cfg.LaserRadius, LayerIndex: object.LayerGame}}
}

// playing returns a state past the spawn grace period with the given belt.
func playing(e *Engine, belt ...object.Asteroid) State {
	s := e.NewGame(42)
	s.Ship.BlinkNum = 0
	s.Asteroids = belt
	return s
}

func tick(e *Engine, s State, n int) State {
	for range n {
		s = e.Update(s, GameLoop)
	}
	return s
}

func TestNewGame(t *testing.T) {
	e := newEngine()
	cfg := e.Config()
	s := e.NewGame(1)

	if s.Level != 1 || s.Lives != cfg.Lives || s.Score != 0 {
		t.Fatalf("level/lives/score = %d/%d/%d", s.Level, s.Lives, s.Score)
	}
	if len(s.Asteroids) != cfg.AsteroidBaseCount+1 {
		t.Fatalf("expected %d asteroids, got %d", cfg.AsteroidBaseCount+1, len(s.Asteroids))
	}
	for _, a := range s.Asteroids {
		if a.Stage != object.StageLarge {
			t.Errorf("belt asteroid has stage %d", a.Stage)
		}
	}
	if s.Phase() != PhaseSpawning {
		t.Errorf("expected spawning phase, got %s", s.Phase())
	}
	if !reflect.DeepEqual(s, e.NewGame(1)) {
		t.Error("same seed produced different games")
	}
}

func TestUpdateDoesNotMutateInput(t *testing.T) {
	e := newEngine()
	cfg := e.Config()
	s := playing(e, rock(cfg, object.StageLarge, 100, 100), rock(cfg, object.StageSmall, 600, 400))
	s.Ship.Lasers = []object.Laser{still(cfg, 100, 100), still(cfg, 300, 300)}
	s.Explosions = []object.Explosion{object.NewExplosion(cfg, rand.New(rand.NewPCG(1, 2)), 10, 10)}
	before := s.Clone()

	actions := []Action{RotateLeft, ThrustOn, ShootLaser, GameLoop, EnableLaser, ShootLaser, GameLoop, RotateStop, ThrustStop, GameLoop}
	for _, a := range actions {
		e.Update(s, a)
		if !reflect.DeepEqual(s, before) {
			t.Fatalf("%s modified its input state", a)
		}
	}
}

func TestUpdateIsDeterministic(t *testing.T) {
	e := newEngine()
	run := func() State {
		s := e.NewGame(99)
		for i := range 400 {
			switch i % 50 {
			case 0:
				s = e.Update(s, ThrustOn)
			case 10:
				s = e.Update(s, ShootLaser)
			case 11:
				s = e.Update(s, EnableLaser)
			case 20:
				s = e.Update(s, RotateRight)
			case 30:
				s = e.Update(s, ThrustStop)
				s = e.Update(s, RotateStop)
			}
			s = e.Update(s, GameLoop)
		}
		return s
	}
	if !reflect.DeepEqual(run(), run()) {
		t.Error("identical action sequences diverged")
	}
}

func TestUnknownActionIsNoop(t *testing.T) {
	e := newEngine()
	s := e.NewGame(3)
	for _, a := range []Action{ActionNone, Action(-1), Action(1000)} {
		if got := e.Update(s, a); !reflect.DeepEqual(got, s) {
			t.Errorf("action %d changed the state", a)
		}
	}
}

func TestRotationControls(t *testing.T) {
	e := newEngine()
	s := playing(e)
	want := 2 * math.Pi / 60

	s = e.Update(s, RotateLeft)
	if math.Abs(s.Ship.Rotation-want) > 1e-12 {
		t.Errorf("left rotation = %v, want %v", s.Ship.Rotation, want)
	}
	s = e.Update(s, RotateRight)
	if math.Abs(s.Ship.Rotation+want) > 1e-12 {
		t.Errorf("right rotation = %v, want %v", s.Ship.Rotation, -want)
	}
	once := e.Update(s, RotateStop)
	twice := e.Update(once, RotateStop)
	if once.Ship.Rotation != 0 || !reflect.DeepEqual(once, twice) {
		t.Error("rotateStop is not idempotent")
	}

	on := e.Update(s, ThrustOn)
	if !on.Ship.Thrusting {
		t.Error("thrustOn did not engage thrust")
	}
	off := e.Update(on, ThrustStop)
	if off.Ship.Thrusting || !reflect.DeepEqual(off, e.Update(off, ThrustStop)) {
		t.Error("thrustStop is not idempotent")
	}
}

func TestShootRequiresRelease(t *testing.T) {
	e := newEngine()
	s := playing(e)

	s = e.Update(s, ShootLaser)
	if len(s.Ship.Lasers) != 1 || s.Ship.CanShoot {
		t.Fatalf("after first shot: %d lasers, canShoot %v", len(s.Ship.Lasers), s.Ship.CanShoot)
	}
	s = e.Update(s, ShootLaser)
	if len(s.Ship.Lasers) != 1 {
		t.Fatalf("held trigger fired again: %d lasers", len(s.Ship.Lasers))
	}
	s = e.Update(s, EnableLaser)
	s = e.Update(s, ShootLaser)
	if len(s.Ship.Lasers) != 2 {
		t.Fatalf("expected 2 lasers after release, got %d", len(s.Ship.Lasers))
	}
}

func TestControlsIgnoredAfterGameOver(t *testing.T) {
	e := newEngine()
	s := playing(e)
	s.Lives = 0
	for _, a := range []Action{RotateLeft, RotateRight, ThrustOn, ShootLaser, EnableLaser} {
		if got := e.Update(s, a); !reflect.DeepEqual(got, s) {
			t.Errorf("%s changed a finished game", a)
		}
	}
}

func TestShipWrapsAround(t *testing.T) {
	e := newEngine()
	cfg := e.Config()
	s := playing(e, rock(cfg, object.StageLarge, 500, 100))
	r := s.Ship.Radius

	s.Ship.X, s.Ship.XV = cfg.Width+r-0.5, 1
	s = tick(e, s, 1)
	if s.Ship.X != -r {
		t.Errorf("x = %v, want %v", s.Ship.X, -r)
	}

	s.Ship.X, s.Ship.XV = 100, 0
	s.Ship.Y, s.Ship.YV = -r+0.5, -1
	s = tick(e, s, 1)
	if s.Ship.Y != cfg.Height+r {
		t.Errorf("y = %v, want %v", s.Ship.Y, cfg.Height+r)
	}
}

func TestFrictionDecaysVelocity(t *testing.T) {
	e := newEngine()
	cfg := e.Config()
	s := playing(e, rock(cfg, object.StageLarge, 600, 50))
	s.Ship.X, s.Ship.Y = 100, 400
	s.Ship.XV, s.Ship.YV = 3, -2

	prev := math.Hypot(s.Ship.XV, s.Ship.YV)
	for range 120 {
		s = tick(e, s, 1)
		speed := math.Hypot(s.Ship.XV, s.Ship.YV)
		if speed >= prev {
			t.Fatalf("speed did not decrease: %v -> %v", prev, speed)
		}
		if s.Ship.XV <= 0 || s.Ship.YV >= 0 {
			t.Fatalf("velocity reversed: (%v, %v)", s.Ship.XV, s.Ship.YV)
		}
		prev = speed
	}
}

func TestThrustAcceleratesAlongFacing(t *testing.T) {
	e := newEngine()
	cfg := e.Config()
	s := playing(e, rock(cfg, object.StageLarge, 600, 50))
	s = e.Update(s, ThrustOn)
	s = tick(e, s, 1)

	if math.Abs(s.Ship.XV) > 1e-12 {
		t.Errorf("facing up should not accelerate sideways, xv = %v", s.Ship.XV)
	}
	if want := -cfg.ShipThrust / 60; math.Abs(s.Ship.YV-want) > 1e-12 {
		t.Errorf("yv = %v, want %v", s.Ship.YV, want)
	}
}

func TestLasersLeaveBoardAndDetonate(t *testing.T) {
	e := newEngine()
	cfg := e.Config()
	s := playing(e, rock(cfg, object.StageLarge, 600, 50))

	gone := still(cfg, cfg.Width-1, 300)
	gone.XV = 5
	flying := still(cfg, 100, 300)
	flying.XV = 3
	flying.YV = 4
	boom := still(cfg, 200, 300)
	boom.XV = 3
	boom.ExplodeTime = 2
	s.Ship.Lasers = []object.Laser{gone, flying, boom}

	s = tick(e, s, 1)
	if len(s.Ship.Lasers) != 2 {
		t.Fatalf("expected 2 lasers, got %d", len(s.Ship.Lasers))
	}
	if l := s.Ship.Lasers[0]; l.X != 103 || l.Y != 304 || l.Dist != 5 {
		t.Errorf("flying laser = (%v, %v) dist %v", l.X, l.Y, l.Dist)
	}
	if l := s.Ship.Lasers[1]; l.X != 200 || l.ExplodeTime != 1 {
		t.Errorf("detonating laser moved or did not count down: x %v, time %d", l.X, l.ExplodeTime)
	}

	s = tick(e, s, 1)
	if len(s.Ship.Lasers) != 1 {
		t.Errorf("detonation should have finished, %d lasers left", len(s.Ship.Lasers))
	}
}

func TestAsteroidsWrap(t *testing.T) {
	e := newEngine()
	cfg := e.Config()
	a := rock(cfg, object.StageLarge, -a0(cfg)+0.5, 100)
	a.XV = -1
	s := playing(e, a)
	s = tick(e, s, 1)
	if got := s.Asteroids[0].X; got != cfg.Width+a.Radius {
		t.Errorf("asteroid x = %v, want %v", got, cfg.Width+a.Radius)
	}
}

func a0(cfg config.Game) float64 {
	return math.Ceil(cfg.StageSize(object.StageLarge) / 2)
}

func TestScoringAndFragmentation(t *testing.T) {
	e := newEngine()
	cfg := e.Config()
	s := playing(e,
		rock(cfg, object.StageLarge, 100, 100),
		rock(cfg, object.StageMedium, 400, 100),
		rock(cfg, object.StageSmall, 600, 400),
	)
	s.Ship.Lasers = []object.Laser{still(cfg, 100, 100), still(cfg, 400, 100), still(cfg, 600, 400)}

	steps := []struct {
		score     int
		asteroids int
		lasers    int
	}{
		{20, 4, 2},
		{70, 5, 1},
		{170, 4, 0},
	}
	for i, want := range steps {
		s = tick(e, s, 1)
		if s.Score != want.score || len(s.Asteroids) != want.asteroids || len(s.Ship.Lasers) != want.lasers {
			t.Fatalf("tick %d: score %d asteroids %d lasers %d, want %+v",
				i+1, s.Score, len(s.Asteroids), len(s.Ship.Lasers), want)
		}
		if len(s.Explosions) != i+1 {
			t.Fatalf("tick %d: expected %d explosions, got %d", i+1, i+1, len(s.Explosions))
		}
	}

	stages := map[int]int{}
	for _, a := range s.Asteroids {
		stages[a.Stage]++
	}
	if stages[object.StageMedium] != 2 || stages[object.StageSmall] != 2 {
		t.Errorf("unexpected stage mix %v", stages)
	}
}

func TestFragmentsSpawnAroundParent(t *testing.T) {
	e := newEngine()
	cfg := e.Config()
	s := playing(e, rock(cfg, object.StageLarge, 200, 200))
	s.Ship.Lasers = []object.Laser{still(cfg, 200, 200)}

	s = e.checkLaserCollision(s)
	if len(s.Asteroids) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(s.Asteroids))
	}
	d := cfg.FragmentOffset
	want := [][2]float64{{200 - d, 200 - d}, {200 + d, 200 + d}}
	for i, a := range s.Asteroids {
		if a.X != want[i][0] || a.Y != want[i][1] {
			t.Errorf("fragment %d at (%v, %v), want %v", i, a.X, a.Y, want[i])
		}
		if a.Stage != object.StageMedium {
			t.Errorf("fragment %d stage %d", i, a.Stage)
		}
	}
}

func TestLaserHitResolvesFirstMatch(t *testing.T) {
	e := newEngine()
	cfg := e.Config()
	first := rock(cfg, object.StageLarge, 200, 200)
	second := rock(cfg, object.StageLarge, 260, 200)
	s := playing(e, first, second)
	s.Ship.Lasers = []object.Laser{
		still(cfg, 500, 400), // misses everything
		still(cfg, 230, 200), // inside both
		still(cfg, 180, 200), // inside first only
		still(cfg, 300, 200), // inside second only
	}

	s = e.checkLaserCollision(s)
	if s.Score != cfg.PointsLarge {
		t.Errorf("score = %d, want %d", s.Score, cfg.PointsLarge)
	}
	if len(s.Asteroids) != 3 || s.Asteroids[0].X != 260 {
		t.Fatalf("second asteroid should survive ahead of the fragments: %d asteroids", len(s.Asteroids))
	}
	if len(s.Ship.Lasers) != 2 {
		t.Fatalf("expected 2 lasers left, got %d", len(s.Ship.Lasers))
	}
	if s.Ship.Lasers[0].X != 500 || s.Ship.Lasers[1].X != 300 {
		t.Errorf("wrong lasers kept: %v, %v", s.Ship.Lasers[0].X, s.Ship.Lasers[1].X)
	}
	if ex := s.Explosions[0]; ex.X != 230 || ex.Y != 200 {
		t.Errorf("explosion at (%v, %v), want the triggering laser", ex.X, ex.Y)
	}
}

func TestShipCollisionCostsLife(t *testing.T) {
	e := newEngine()
	cfg := e.Config()
	s := playing(e, rock(cfg, object.StageLarge, cfg.Width/2+20, cfg.Height/2))
	s.Ship.Lasers = []object.Laser{still(cfg, 50, 50)}

	s = tick(e, s, 1)
	if s.Lives != cfg.Lives-1 {
		t.Fatalf("lives = %d, want %d", s.Lives, cfg.Lives-1)
	}
	if s.Phase() != PhaseSpawning || s.Ship.BlinkNum != cfg.BlinkCycles() {
		t.Errorf("ship did not respawn: phase %s blink %d", s.Phase(), s.Ship.BlinkNum)
	}
	if len(s.Ship.Lasers) != 0 {
		t.Error("respawned ship kept old lasers")
	}
	if len(s.Asteroids) != 2 || s.Asteroids[0].Stage != object.StageMedium {
		t.Errorf("asteroid did not fragment: %d asteroids", len(s.Asteroids))
	}
	if len(s.Explosions) != 1 || s.Score != 0 {
		t.Errorf("explosions %d score %d", len(s.Explosions), s.Score)
	}
}

func TestLastLifeEndsGame(t *testing.T) {
	e := newEngine()
	cfg := e.Config()
	s := playing(e, rock(cfg, object.StageLarge, cfg.Width/2, cfg.Height/2), rock(cfg, object.StageMedium, 100, 100))
	s.Asteroids[1].XV = 1
	s.Lives = 1

	s = tick(e, s, 1)
	if s.Lives != 0 || s.Phase() != PhaseGameOver {
		t.Fatalf("lives %d phase %s", s.Lives, s.Phase())
	}
	if len(s.Asteroids) != 2 || len(s.Explosions) != 1 {
		t.Fatalf("asteroids %d explosions %d", len(s.Asteroids), len(s.Explosions))
	}
	if len(s.Drawables()) != 2 {
		t.Errorf("dead ship should not be drawn")
	}

	frozen := s
	s = tick(e, s, 1)
	if !reflect.DeepEqual(s.Asteroids, frozen.Asteroids) || !reflect.DeepEqual(s.Ship, frozen.Ship) {
		t.Error("game over did not freeze the board")
	}
	if reflect.DeepEqual(s.Explosions, frozen.Explosions) {
		t.Error("explosions stopped animating")
	}

	s = tick(e, s, 200)
	if len(s.Explosions) != 0 {
		t.Errorf("faded explosions were not pruned: %d left", len(s.Explosions))
	}
}

func TestSpawningSkipsCollisions(t *testing.T) {
	e := newEngine()
	cfg := e.Config()
	s := e.NewGame(5)
	s.Asteroids = []object.Asteroid{rock(cfg, object.StageLarge, cfg.Width/2, cfg.Height/2)}
	s.Ship.Lasers = []object.Laser{still(cfg, cfg.Width/2, cfg.Height/2)}

	s = tick(e, s, 1)
	if s.Lives != cfg.Lives || s.Score != 0 || len(s.Asteroids) != 1 {
		t.Errorf("collisions resolved while spawning: lives %d score %d asteroids %d",
			s.Lives, s.Score, len(s.Asteroids))
	}
}

func TestBlinkCountdown(t *testing.T) {
	e := newEngine()
	cfg := e.Config()
	s := e.NewGame(5)
	s.Asteroids = []object.Asteroid{rock(cfg, object.StageLarge, 60, 60)}
	phase := cfg.Ticks(cfg.ShipBlinkDuration)

	s = tick(e, s, phase-1)
	if s.Ship.BlinkNum != cfg.BlinkCycles() || !s.Ship.Visible() {
		t.Fatalf("blink advanced early: %d", s.Ship.BlinkNum)
	}
	s = tick(e, s, 1)
	if s.Ship.BlinkNum != cfg.BlinkCycles()-1 || s.Ship.Visible() {
		t.Fatalf("blink did not advance: %d", s.Ship.BlinkNum)
	}
	s = tick(e, s, phase*(cfg.BlinkCycles()-1))
	if s.Phase() != PhasePlaying {
		t.Errorf("still %s after the grace period", s.Phase())
	}
	if s.Tick != uint64(phase*cfg.BlinkCycles()) {
		t.Errorf("tick counter = %d", s.Tick)
	}
}

func TestLevelProgression(t *testing.T) {
	e := newEngine()
	cfg := e.Config()
	s := playing(e, rock(cfg, object.StageSmall, 100, 100))
	s.Ship.Lasers = []object.Laser{still(cfg, 100, 100)}

	s = tick(e, s, 1)
	if s.Level != 2 {
		t.Fatalf("level = %d, want 2", s.Level)
	}
	if len(s.Asteroids) != cfg.AsteroidBaseCount+2 {
		t.Fatalf("expected %d asteroids, got %d", cfg.AsteroidBaseCount+2, len(s.Asteroids))
	}
	clearance := 2*a0(cfg) + s.Ship.Radius
	for _, a := range s.Asteroids {
		if a.Stage != object.StageLarge {
			t.Errorf("new belt asteroid stage %d", a.Stage)
		}
		if d := physics.Distance(a.X, a.Y, s.Ship.X, s.Ship.Y); d < clearance {
			t.Errorf("asteroid spawned %v from the ship", d)
		}
	}
	if s.Score != cfg.PointsSmall {
		t.Errorf("score = %d", s.Score)
	}
}

func TestFadedExplosionsPruned(t *testing.T) {
	e := newEngine()
	s := playing(e, rock(e.Config(), object.StageLarge, 60, 60))
	s.Explosions = []object.Explosion{
		{X: 1, Y: 1, Particles: []object.Particle{{Alpha: 0.01, Decay: 0.02}}},
		{X: 2, Y: 2, Particles: []object.Particle{{Alpha: 1, Decay: 0.02}}},
	}
	s = tick(e, s, 1)
	if len(s.Explosions) != 1 || s.Explosions[0].X != 2 {
		t.Errorf("expected only the live explosion, got %d", len(s.Explosions))
	}
}

func TestNames(t *testing.T) {
	if GameLoop.String() != "gameLoop" || Action(77).String() != "unknown" {
		t.Error("action names")
	}
	if PhaseGameOver.String() != "game over" || Phase(9).String() != "unknown" {
		t.Error("phase names")
	}
}

func TestLaserFlightFromStationaryShip(t *testing.T) {
	e := newEngine()
	cfg := e.Config()
	s := playing(e, rock(cfg, object.StageLarge, 60, 60))
	s = e.Update(s, ShootLaser)
	start := s.Ship.Lasers[0]

	const n = 10
	s = tick(e, s, n)
	l := s.Ship.Lasers[0]
	step := cfg.LaserSpeed / float64(cfg.TicksPerSecond)
	if math.Abs(l.Y-(start.Y-n*step)) > 1e-9 {
		t.Errorf("y = %v, want %v", l.Y, start.Y-n*step)
	}
	if math.Abs(l.X-start.X) > 1e-9 {
		t.Errorf("x drifted from %v to %v", start.X, l.X)
	}
	if math.Abs(l.Dist-n*step) > 1e-9 {
		t.Errorf("dist = %v", l.Dist)
	}
}
