package components

import "gonum.org/v1/gonum/spatial/r3"

// Transform is an entity's world position. Z orders drawing and is the camera depth.
type Transform struct {
	Translation r3.Vec
}

// Projection holds an orthographic projection scale (world units per screen pixel).
type Projection struct {
	Scale float64
}
