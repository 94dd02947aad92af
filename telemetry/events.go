// Package telemetry records movement events, performance timing and CSV output.
package telemetry

import "github.com/pthm-cable/gridwalk/movement"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventMovementStarted EventType = iota
	EventStep
	EventMovementCompleted
	EventZoomChanged
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventMovementStarted:
		return "movement_started"
	case EventStep:
		return "step"
	case EventMovementCompleted:
		return "movement_completed"
	case EventZoomChanged:
		return "zoom_changed"
	default:
		return "unknown"
	}
}

// Event represents a single telemetry event.
type Event struct {
	Type    EventType
	Tick    int64
	ActorID uint32

	// Optional fields depending on event type
	Orientation movement.Orientation
	X, Y        float64 // actor position after the event
	Step        int     // substep index for step events
	Scale       float64 // projection scale for zoom events
}

// NewMovementStartedEvent creates an event for an accepted movement request.
func NewMovementStartedEvent(tick int64, actorID uint32, o movement.Orientation, x, y float64) Event {
	return Event{
		Type:        EventMovementStarted,
		Tick:        tick,
		ActorID:     actorID,
		Orientation: o,
		X:           x,
		Y:           y,
	}
}

// NewStepEvent creates an event for one completed substep.
func NewStepEvent(tick int64, actorID uint32, o movement.Orientation, step int, x, y float64) Event {
	return Event{
		Type:        EventStep,
		Tick:        tick,
		ActorID:     actorID,
		Orientation: o,
		Step:        step,
		X:           x,
		Y:           y,
	}
}

// NewMovementCompletedEvent creates the event fired when an actor returns to Idle.
func NewMovementCompletedEvent(tick int64, actorID uint32, o movement.Orientation, x, y float64) Event {
	return Event{
		Type:        EventMovementCompleted,
		Tick:        tick,
		ActorID:     actorID,
		Orientation: o,
		X:           x,
		Y:           y,
	}
}

// NewZoomChangedEvent creates an event for a new projection scale.
func NewZoomChangedEvent(tick int64, scale float64) Event {
	return Event{
		Type:  EventZoomChanged,
		Tick:  tick,
		Scale: scale,
	}
}
