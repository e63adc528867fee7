package draw

import (
	"github.com/tomz197/asteroids-classic/internal/object"
	"github.com/tomz197/asteroids-classic/internal/render"
)

// Screen is one canvas per render layer plus the display canvas they are
// composited onto.
type Screen struct {
	layers  [object.LayerCount]*Canvas
	display *Canvas
}

// NewScreen creates layer canvases of the given cell size for a logical board.
func NewScreen(cols, rows int, logicalWidth, logicalHeight float64) *Screen {
	s := &Screen{display: NewScaledCanvas(cols, rows, logicalWidth, logicalHeight)}
	for i := range s.layers {
		s.layers[i] = NewScaledCanvas(cols, rows, logicalWidth, logicalHeight)
	}
	return s
}

// Surfaces returns the layer canvases as render targets.
func (s *Screen) Surfaces() render.Layers {
	var l render.Layers
	for i, c := range s.layers {
		l[i] = c
	}
	return l
}

// Resize resizes every canvas.
func (s *Screen) Resize(cols, rows int) {
	for _, c := range s.layers {
		c.Resize(cols, rows)
	}
	s.display.Resize(cols, rows)
}

// Frame composites the layers in order and returns the display canvas.
func (s *Screen) Frame() *Canvas {
	s.display.Composite(s.layers[:]...)
	return s.display
}
