package draw

import "github.com/tomz197/asteroids-classic/internal/render"

// Point represents a 2D coordinate in board units.
type Point = render.Point

// Shades holds the characters for translucent cells, from lightest to darkest.
var Shades = []rune{BlockEmpty, BlockLight, BlockMedium, BlockDark, BlockFull}

// ShadeLevel returns a shade character for a value between 0.0 (empty) and
// 1.0 (solid). Any partial coverage shows at least the lightest shade.
func ShadeLevel(intensity float64) rune {
	if intensity <= 0 {
		return Shades[0]
	}
	if intensity >= 1 {
		return Shades[len(Shades)-1]
	}
	partial := len(Shades) - 2
	return Shades[1+min(int(intensity*float64(partial)), partial-1)]
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockLight     = '░'
	BlockMedium    = '▒'
	BlockDark      = '▓'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
