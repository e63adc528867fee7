package render

import (
	"github.com/tomz197/asteroids-classic/internal/config"
	"github.com/tomz197/asteroids-classic/internal/game"
	"github.com/tomz197/asteroids-classic/internal/object"
	"github.com/tomz197/asteroids-classic/internal/physics"
)

// Drawer inspects the whole state and draws directly onto the layers.
type Drawer func(cfg config.Game, s game.State, l Layers)

// PlayingDrawers are active while a game is running.
var PlayingDrawers = []Drawer{
	DrawFrame,
	DrawLasers,
	DrawThrust,
	DrawExplosions,
	DrawHUD,
}

// GameOverDrawers replace PlayingDrawers once the last life is lost.
var GameOverDrawers = []Drawer{
	DrawFrame,
	DrawExplosions,
	DrawHUD,
	DrawBanner,
}

// Renderer draws states for one board configuration.
type Renderer struct {
	cfg      config.Game
	playing  []Drawer
	gameOver []Drawer
}

// New creates a renderer with the default drawer sets.
func New(cfg config.Game) *Renderer {
	return &Renderer{
		cfg:      cfg,
		playing:  PlayingDrawers,
		gameOver: GameOverDrawers,
	}
}

// Render clears every layer and redraws s: polygon entities first, then the
// drawer set for the current phase.
func (r *Renderer) Render(s game.State, l Layers) {
	l.Clear()

	for _, d := range s.Drawables() {
		p, ok := d.(object.Polygonal)
		if !ok {
			continue
		}
		if surf := l.At(p.Layer()); surf != nil {
			DrawEntity(surf, p)
		}
	}

	drawers := r.playing
	if s.Phase() == game.PhaseGameOver {
		drawers = r.gameOver
	}
	for _, draw := range drawers {
		draw(r.cfg, s, l)
	}
}

// Outline returns the polygon of p in board coordinates: each local vertex is
// rotated by the facing angle, scaled by the radius and moved to the center.
func Outline(p object.Polygonal) []Point {
	x, y := p.Position()
	radius := p.CollisionRadius()
	angle := p.Facing()
	local := p.Outline()

	points := make([]Point, len(local))
	for i, v := range local {
		px, py := physics.Rotate(x, y, v.X, v.Y, angle, radius)
		points[i] = Point{X: px, Y: py}
	}
	return points
}

// DrawEntity strokes the closed outline of p.
func DrawEntity(s Surface, p object.Polygonal) {
	s.DrawPolygon(Outline(p), false)
}
