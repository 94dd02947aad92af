// Package components defines ECS components for the map.
package components

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/gridwalk/movement"
)

// Actor identifies a map actor in events and logs.
type Actor struct {
	ID   uint32
	Name string
}

// Player tags the actor driven by directional input.
type Player struct{}

// MainCamera tags the camera that follows the player.
type MainCamera struct{}

// Movable holds the tile-crossing state machine of an actor.
// Origin is the translation the active crossing started from.
type Movable struct {
	movement.Mover
	Origin r3.Vec
}

// Atlas selects a frame of a sprite sheet.
type Atlas struct {
	Index int
}

// Sprite is the visual of an actor. Atlas is nil for sprites without frames;
// such sprites still move but are not animated.
type Sprite struct {
	Atlas *Atlas
	FlipX bool
	Size  float64 // world units
}

// Animatable reports whether the sprite has a frame index to drive.
func (s *Sprite) Animatable() bool {
	return s != nil && s.Atlas != nil
}
