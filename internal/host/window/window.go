// Package window plays a game in a desktop window using ebiten.
package window

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/asteroids-classic/internal/config"
	"github.com/tomz197/asteroids-classic/internal/game"
	"github.com/tomz197/asteroids-classic/internal/input"
	"github.com/tomz197/asteroids-classic/internal/loop"
	"github.com/tomz197/asteroids-classic/internal/object"
	"github.com/tomz197/asteroids-classic/internal/render"
)

// Key bindings.
var (
	leftKeys   = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}
	rightKeys  = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}
	thrustKeys = []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}
	fireKeys   = []ebiten.Key{ebiten.KeySpace}
)

// Game implements ebiten.Game. Update steps the session once per ebiten tick
// and Draw renders the latest state through one off-screen image per layer.
type Game struct {
	ctx        context.Context
	cfg        config.Game
	logger     *log.Logger
	session    *loop.Session
	renderer   *render.Renderer
	translator input.Translator

	layers   [object.LayerCount]*ebiten.Image
	surfaces render.Layers
}

// New creates a window game. Update ends the game loop once ctx is done.
func New(ctx context.Context, cfg config.Game, seed uint64, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &Game{
		ctx:      ctx,
		cfg:      cfg,
		logger:   logger,
		session:  loop.NewSession(game.NewEngine(cfg), seed, loop.WithLogger(logger)),
		renderer: render.New(cfg),
	}
	for i := range g.layers {
		g.layers[i] = ebiten.NewImage(int(cfg.Width), int(cfg.Height))
		g.surfaces[i] = &surface{img: g.layers[i]}
	}
	return g
}

// Run opens the window and blocks until it closes.
func (g *Game) Run() error {
	ebiten.SetWindowSize(int(g.cfg.Width), int(g.cfg.Height))
	ebiten.SetWindowTitle("Asteroids")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.cfg.TicksPerSecond)
	g.logger.Info("game started", "backend", "window")
	return ebiten.RunGame(g)
}

// Update dispatches the key edges since the last tick and steps the game.
func (g *Game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && g.session.State().Phase() == game.PhaseGameOver {
		g.session.Restart()
		g.translator.Reset()
	}
	for _, a := range g.translator.Translate(keysFrom(ebiten.IsKeyPressed)) {
		if err := g.session.Dispatch(a); err != nil {
			return err
		}
	}
	return g.session.Step()
}

// Draw renders the latest state and composites the layers in order.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Render(g.session.State(), g.surfaces)
	for _, l := range g.layers {
		screen.DrawImage(l, nil)
	}
}

// Layout keeps the board resolution; ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return int(g.cfg.Width), int(g.cfg.Height)
}

// keysFrom reads the held controls through pressed.
func keysFrom(pressed func(ebiten.Key) bool) input.Keys {
	held := func(keys []ebiten.Key) bool {
		for _, k := range keys {
			if pressed(k) {
				return true
			}
		}
		return false
	}
	return input.Keys{
		Left:   held(leftKeys),
		Right:  held(rightKeys),
		Thrust: held(thrustKeys),
		Fire:   held(fireKeys),
	}
}
