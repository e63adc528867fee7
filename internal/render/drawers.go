package render

import (
	"fmt"
	"math"

	"github.com/tomz197/asteroids-classic/internal/config"
	"github.com/tomz197/asteroids-classic/internal/game"
	"github.com/tomz197/asteroids-classic/internal/object"
	"github.com/tomz197/asteroids-classic/internal/physics"
)

// flameOutline is drawn behind the ship while thrusting, in the ship frame.
var flameOutline = []object.Vertex{
	{X: -2.0 / 3, Y: 0.5},
	{X: -4.0 / 3, Y: 0},
	{X: -2.0 / 3, Y: -0.5},
}

// Banner texts.
const (
	GameOverText = "GAME OVER"
	RestartText  = "press ENTER to play again"
)

// DrawFrame outlines the board on the background layer.
func DrawFrame(cfg config.Game, _ game.State, l Layers) {
	surf := l.At(object.LayerBackground)
	if surf == nil {
		return
	}
	w, h := cfg.Width-1, cfg.Height-1
	surf.DrawPolygon([]Point{{0, 0}, {w, 0}, {w, h}, {0, h}}, false)
}

// DrawLasers draws flying lasers as short streaks and detonating lasers as
// fading bursts.
func DrawLasers(cfg config.Game, s game.State, l Layers) {
	surf := l.At(object.LayerGame)
	if surf == nil || s.Lives == 0 {
		return
	}
	full := float64(cfg.Ticks(cfg.LaserExplodeDuration))
	for _, laser := range s.Ship.Lasers {
		if laser.Exploding() {
			r := laser.Radius * 2
			alpha := 1.0
			if full > 0 {
				alpha = float64(laser.ExplodeTime) / full
			}
			surf.FillRect(laser.X-r, laser.Y-r, 2*r, 2*r, alpha)
			continue
		}
		tail := Point{X: laser.X - laser.XV, Y: laser.Y - laser.YV}
		surf.DrawLine(tail, Point{X: laser.X, Y: laser.Y})
	}
}

// DrawThrust draws the exhaust flame of a visible, thrusting ship.
func DrawThrust(_ config.Game, s game.State, l Layers) {
	ship := s.Ship
	surf := l.At(ship.Layer())
	if surf == nil || s.Lives == 0 || !ship.Thrusting || !ship.Visible() {
		return
	}
	points := make([]Point, len(flameOutline))
	for i, v := range flameOutline {
		x, y := physics.Rotate(ship.X, ship.Y, v.X, v.Y, ship.Angle, ship.Radius)
		points[i] = Point{X: x, Y: y}
	}
	surf.DrawPolygon(points, true)
}

// DrawExplosions plots every particle with its fading trail.
func DrawExplosions(_ config.Game, s game.State, l Layers) {
	for _, ex := range s.Explosions {
		surf := l.At(ex.Layer())
		if surf == nil {
			continue
		}
		for _, p := range ex.Particles {
			drawParticle(surf, p)
		}
	}
}

func drawParticle(surf Surface, p object.Particle) {
	n := float64(len(p.Trail) + 1)
	prev := Point{X: p.X, Y: p.Y}
	for i, t := range p.Trail {
		next := Point{X: t.X, Y: t.Y}
		if next != prev {
			surf.DrawLine(prev, next)
		}
		surf.Plot(t.X, t.Y, p.Alpha*(n-float64(i+1))/n)
		prev = next
	}
	surf.Plot(p.X, p.Y, p.Alpha)
}

// DrawHUD writes score, level and lives along the top of the UI layer.
func DrawHUD(cfg config.Game, s game.State, l Layers) {
	surf := l.At(object.LayerUI)
	if surf == nil {
		return
	}
	const margin = 10
	surf.DrawText(margin, margin, fmt.Sprintf("SCORE %d", s.Score), AlignLeft)
	surf.DrawText(cfg.Width/2, margin, fmt.Sprintf("LEVEL %d", s.Level), AlignCenter)
	surf.DrawText(cfg.Width-margin, margin, fmt.Sprintf("LIVES %d", s.Lives), AlignRight)
}

// DrawBanner centers the game over message over a translucent backing.
func DrawBanner(cfg config.Game, s game.State, l Layers) {
	surf := l.At(object.LayerUI)
	if surf == nil {
		return
	}
	w := math.Round(cfg.Width * 0.6)
	h := math.Round(cfg.Height * 0.3)
	x := (cfg.Width - w) / 2
	y := (cfg.Height - h) / 2
	surf.FillRect(x, y, w, h, 0.5)

	cx, cy := cfg.Width/2, cfg.Height/2
	surf.DrawText(cx, cy-h/6, GameOverText, AlignCenter)
	surf.DrawText(cx, cy+h/6, fmt.Sprintf("final score %d", s.Score), AlignCenter)
	surf.DrawText(cx, y+h-h/8, RestartText, AlignCenter)
}
