package draw

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tomz197/asteroids-classic/internal/render"
)

// plotThreshold is the alpha from which a plotted point becomes a solid
// sub-pixel instead of a shaded cell.
const plotThreshold = 0.4

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// It maps board coordinates onto terminal cells and carries two overlays per
// cell: a translucent shade and a text glyph. Canvas implements render.Surface.
type Canvas struct {
	termWidth      int       // Terminal columns covered by the canvas
	termHeight     int       // Terminal rows covered by the canvas
	subPixelHeight int       // termHeight * 2
	pixels         []bool    // [y * termWidth + x], true if the sub-pixel is set
	shade          []float64 // [row * termWidth + col], translucent coverage
	glyphs         []rune    // [row * termWidth + col], 0 if no text

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	prev []rune // Cells written by the last Render; nil forces a full redraw

	scaledBuf       []Point
	intersectionBuf []float64
}

var _ render.Surface = (*Canvas)(nil)

// NewScaledCanvas creates a canvas that scales from board coordinates to terminal pixels.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Fit returns the canvas size that shows a logical board as large as
// possible inside a terminal with square sub-pixels, and the offsets that
// center it.
func Fit(termWidth, termHeight int, logicalWidth, logicalHeight float64) (cols, rows, offsetCol, offsetRow int) {
	if termWidth <= 0 || termHeight <= 0 {
		return 0, 0, 0, 0
	}
	scale := math.Min(float64(termWidth)/logicalWidth, float64(termHeight*2)/logicalHeight)
	cols = max(1, min(termWidth, int(math.Floor(logicalWidth*scale+1e-9))))
	rows = max(1, min(termHeight, int(math.Floor(logicalHeight*scale/2+1e-9))))
	offsetCol = (termWidth - cols) / 2
	offsetRow = (termHeight - rows) / 2
	return cols, rows, offsetCol, offsetRow
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 0)
	termHeight = max(termHeight, 0)
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		cells := termWidth * termHeight
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]bool, c.subPixelHeight*termWidth)
		c.shade = make([]float64, cells)
		c.glyphs = make([]rune, cells)
		c.prev = nil
	}
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// TerminalWidth returns the canvas width in columns.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the canvas height in rows.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// ForceRedraw makes the next Render write every cell.
func (c *Canvas) ForceRedraw() {
	c.prev = nil
}

// Clear resets pixels and overlays.
func (c *Canvas) Clear() {
	clear(c.pixels)
	clear(c.shade)
	clear(c.glyphs)
}

// setPixel sets a sub-pixel at terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// shadeCell raises the translucent coverage of a cell.
func (c *Canvas) shadeCell(col, row int, alpha float64) {
	if col >= 0 && col < c.termWidth && row >= 0 && row < c.termHeight {
		i := row*c.termWidth + col
		c.shade[i] = max(c.shade[i], alpha)
	}
}

func (c *Canvas) toPixel(x, y float64) (int, int) {
	return int(math.Round(x * c.scaleX)), int(math.Round(y * c.scaleY))
}

// ToCell converts board coordinates to a 0-based canvas cell.
func (c *Canvas) ToCell(x, y float64) (col, row int) {
	px, py := c.toPixel(x, y)
	return px, py / 2
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in board space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1, y1 := c.toPixel(p1.X, p1.Y)
	x2, y2 := c.toPixel(p2.X, p2.Y)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon strokes a closed polygon, filling the interior first if filled is true.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points)
	}
	n := len(points)
	for i := range n {
		c.DrawLine(points[i], points[(i+1)%n])
	}
}

// fillPolygon fills a polygon using scanline algorithm in pixel space.
func (c *Canvas) fillPolygon(points []Point) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := range n {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)
		for i := 0; i+1 < len(intersections); i += 2 {
			for x := int(math.Ceil(intersections[i])); x <= int(math.Floor(intersections[i+1])); x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// Plot draws a single point. Faint points shade their cell instead of
// setting a sub-pixel.
func (c *Canvas) Plot(x, y, alpha float64) {
	if alpha <= 0 {
		return
	}
	px, py := c.toPixel(x, y)
	if alpha >= plotThreshold {
		c.setPixel(px, py)
		return
	}
	c.shadeCell(px, py/2, alpha)
}

// FillRect fills a rectangle. An opaque fill sets every sub-pixel; a
// translucent one shades the covered cells.
func (c *Canvas) FillRect(x, y, w, h, alpha float64) {
	if alpha <= 0 || w <= 0 || h <= 0 {
		return
	}
	x1, y1 := c.toPixel(x, y)
	x2, y2 := c.toPixel(x+w, y+h)
	if alpha >= 1 {
		for py := y1; py < y2; py++ {
			for px := x1; px < x2; px++ {
				c.setPixel(px, py)
			}
		}
		return
	}
	for row := y1 / 2; row < (y2+1)/2; row++ {
		for col := x1; col < x2; col++ {
			c.shadeCell(col, row, alpha)
		}
	}
}

// DrawText writes text into the glyph overlay on the cell row containing y.
func (c *Canvas) DrawText(x, y float64, text string, align render.Align) {
	col, row := c.ToCell(x, y)
	if row < 0 || row >= c.termHeight {
		return
	}
	n := utf8.RuneCountInString(text)
	switch align {
	case render.AlignCenter:
		col -= n / 2
	case render.AlignRight:
		col -= n - 1
	}
	for _, r := range text {
		if col >= 0 && col < c.termWidth {
			c.glyphs[row*c.termWidth+col] = r
		}
		col++
	}
}

// Composite merges layers onto c in order. Sub-pixels are combined, shade
// keeps the strongest coverage and later glyphs replace earlier ones.
// Layers must have the same size as c.
func (c *Canvas) Composite(layers ...*Canvas) {
	c.Clear()
	for _, l := range layers {
		if l == nil || l.termWidth != c.termWidth || l.termHeight != c.termHeight {
			continue
		}
		for i, on := range l.pixels {
			if on {
				c.pixels[i] = true
			}
		}
		for i, s := range l.shade {
			c.shade[i] = max(c.shade[i], s)
		}
		for i, g := range l.glyphs {
			if g != 0 {
				c.glyphs[i] = g
			}
		}
	}
}

// Cell returns the character shown at a 0-based canvas cell. Text wins over
// sub-pixels, which win over shade.
func (c *Canvas) Cell(col, row int) rune {
	if col < 0 || col >= c.termWidth || row < 0 || row >= c.termHeight {
		return BlockEmpty
	}
	if g := c.glyphs[row*c.termWidth+col]; g != 0 {
		return g
	}
	top := c.pixels[(row*2)*c.termWidth+col]
	bottom := c.pixels[(row*2+1)*c.termWidth+col]
	switch {
	case top && bottom:
		return BlockFull
	case top:
		return BlockUpperHalf
	case bottom:
		return BlockLowerHalf
	}
	return ShadeLevel(c.shade[row*c.termWidth+col])
}

// Render queues the cells that changed since the previous Render as
// positioned characters on cw. A full redraw clears the screen first.
func (c *Canvas) Render(cw *ChunkWriter) {
	cells := c.termWidth * c.termHeight
	full := len(c.prev) != cells
	if full {
		c.prev = make([]rune, cells)
		cw.WriteString(clearScreen)
	}

	var cell [utf8.UTFMax]byte
	for row := range c.termHeight {
		for col := range c.termWidth {
			ch := c.Cell(col, row)
			i := row*c.termWidth + col
			if !full && c.prev[i] == ch {
				continue
			}
			c.prev[i] = ch
			if full && ch == BlockEmpty {
				continue
			}
			cw.MoveCursor(col+1, row+1)
			cw.Write(cell[:utf8.EncodeRune(cell[:], ch)])
		}
	}
}

// RenderBorder queues a box around the canvas when the offset of cw leaves
// room for it: vertical bars need a column offset, horizontal bars a row
// offset.
func (c *Canvas) RenderBorder(cw *ChunkWriter) {
	offCol, offRow := cw.Offset()
	hasSides := offCol >= 1
	hasBars := offRow >= 1
	if !hasSides && !hasBars {
		return
	}

	right := c.termWidth + 1
	bottom := c.termHeight + 1
	bar := strings.Repeat("─", c.termWidth)

	if hasBars {
		if hasSides {
			cw.WriteAt(0, 0, "┌"+bar+"┐")
			cw.WriteAt(0, bottom, "└"+bar+"┘")
		} else {
			cw.WriteAt(1, 0, bar)
			cw.WriteAt(1, bottom, bar)
		}
	}
	if hasSides {
		for row := 1; row <= c.termHeight; row++ {
			cw.WriteAt(0, row, "│")
			cw.WriteAt(right, row, "│")
		}
	}
}
