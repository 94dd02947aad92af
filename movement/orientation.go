// Package movement implements stepped, grid-aligned tile crossings:
// descriptor construction, the Idle/Moving state machine and substep progression.
package movement

import "gonum.org/v1/gonum/spatial/r3"

// Orientation is the facing of a moving actor.
type Orientation uint8

const (
	Down Orientation = iota
	Up
	Left
	Right
)

// String returns the orientation name.
func (o Orientation) String() string {
	switch o {
	case Down:
		return "down"
	case Up:
		return "up"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Horizontal reports whether o travels along the x axis.
func (o Orientation) Horizontal() bool {
	return o == Left || o == Right
}

// Unit returns the unit direction vector for o. World y points up.
func (o Orientation) Unit() r3.Vec {
	switch o {
	case Down:
		return r3.Vec{Y: -1}
	case Up:
		return r3.Vec{Y: 1}
	case Left:
		return r3.Vec{X: -1}
	case Right:
		return r3.Vec{X: 1}
	default:
		return r3.Vec{}
	}
}

// State is the movement state of an actor.
type State uint8

const (
	Idle State = iota
	Moving
)

// String returns the state name.
func (s State) String() string {
	if s == Moving {
		return "moving"
	}
	return "idle"
}
