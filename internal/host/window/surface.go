package window

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/asteroids-classic/internal/render"
)

// Debug font cell size used to align text.
const (
	glyphWidth  = 6
	glyphHeight = 16
)

var (
	inkColor   = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	panelColor = color.NRGBA{R: 40, G: 40, B: 70, A: 255}
)

// whitePixel is the source texture for filled triangles.
var whitePixel = sync.OnceValue(func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
})

// surface draws onto an off-screen image in board coordinates.
type surface struct {
	img *ebiten.Image
}

var _ render.Surface = (*surface)(nil)

func (s *surface) Clear() {
	s.img.Clear()
}

func (s *surface) DrawLine(p1, p2 render.Point) {
	vector.StrokeLine(s.img, float32(p1.X), float32(p1.Y), float32(p2.X), float32(p2.Y), 1, inkColor, true)
}

func (s *surface) DrawPolygon(points []render.Point, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		var path vector.Path
		path.MoveTo(float32(points[0].X), float32(points[0].Y))
		for _, p := range points[1:] {
			path.LineTo(float32(p.X), float32(p.Y))
		}
		path.Close()
		vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
		r, g, b, a := inkColor.RGBA()
		for i := range vs {
			vs[i].SrcX, vs[i].SrcY = 1, 1
			vs[i].ColorR = float32(r) / 0xffff
			vs[i].ColorG = float32(g) / 0xffff
			vs[i].ColorB = float32(b) / 0xffff
			vs[i].ColorA = float32(a) / 0xffff
		}
		s.img.DrawTriangles(vs, is, whitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
	}
	for i := range points {
		s.DrawLine(points[i], points[(i+1)%len(points)])
	}
}

func (s *surface) Plot(x, y, alpha float64) {
	if alpha <= 0 {
		return
	}
	vector.DrawFilledRect(s.img, float32(x-1), float32(y-1), 2, 2, withAlpha(inkColor, alpha), true)
}

func (s *surface) FillRect(x, y, w, h, alpha float64) {
	if alpha <= 0 {
		return
	}
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), withAlpha(panelColor, alpha), false)
}

func (s *surface) DrawText(x, y float64, text string, align render.Align) {
	width := float64(len([]rune(text)) * glyphWidth)
	switch align {
	case render.AlignCenter:
		x -= width / 2
	case render.AlignRight:
		x -= width
	}
	ebitenutil.DebugPrintAt(s.img, text, int(x), int(y-glyphHeight/2))
}

func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(float64(c.A) * min(alpha, 1))
	return c
}
