// Package render draws game states onto layered surfaces. It never feeds
// anything back into the simulation.
package render

import "github.com/tomz197/asteroids-classic/internal/object"

// Point is a position in board coordinates (y grows downwards).
type Point struct {
	X, Y float64
}

// Align selects how DrawText positions a string relative to its anchor.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Surface is an off-screen drawing target in board coordinates. Alpha values
// are in [0, 1].
type Surface interface {
	Clear()
	DrawLine(p1, p2 Point)
	DrawPolygon(points []Point, filled bool)
	Plot(x, y, alpha float64)
	FillRect(x, y, w, h, alpha float64)
	DrawText(x, y float64, text string, align Align)
}

// Layers holds one surface per layer index, composited in ascending order by
// the host. Nil entries are skipped.
type Layers [object.LayerCount]Surface

// At returns the surface for a layer index, or nil when out of range.
func (l Layers) At(i int) Surface {
	if i < 0 || i >= len(l) {
		return nil
	}
	return l[i]
}

// Clear clears every surface.
func (l Layers) Clear() {
	for _, s := range l {
		if s != nil {
			s.Clear()
		}
	}
}
