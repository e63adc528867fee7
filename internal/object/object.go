// Package object defines the game entities and the factories that create them.
package object

// Layer indices. Drawables are routed to the surface with their index and
// layers are composited in ascending order.
const (
	LayerBackground = iota
	LayerGame
	LayerUI
	LayerCount
)

// Vertex is a polygon vertex offset in a y-up local frame, in units of the
// owning entity's radius.
type Vertex struct {
	X, Y float64
}

// Positioned is implemented by anything with a center and a collision radius.
type Positioned interface {
	Position() (x, y float64)
	CollisionRadius() float64
}

// Drawable is implemented by entities that carry a layer attribute.
type Drawable interface {
	Layer() int
}

// Polygonal is a drawable outline that is rotated by Facing, scaled by its
// collision radius and translated to its position when rendered.
type Polygonal interface {
	Drawable
	Positioned
	Facing() float64
	Outline() []Vertex
}

// Entity is the base shape shared by every moving body.
type Entity struct {
	X, Y       float64 // Center
	Radius     float64 // Collision extent
	XV, YV     float64 // Velocity in units per tick
	LayerIndex int
}

// Position returns the entity's center.
func (e Entity) Position() (float64, float64) {
	return e.X, e.Y
}

// CollisionRadius returns the entity's collision radius.
func (e Entity) CollisionRadius() float64 {
	return e.Radius
}

// Layer returns the render layer index.
func (e Entity) Layer() int {
	return e.LayerIndex
}
