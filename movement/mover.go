package movement

import (
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// StepEvent reports one completed substep.
type StepEvent struct {
	Index       int // 1-based within the crossing
	Delta       r3.Vec
	Orientation Orientation
	Final       bool
}

// Mover is the per-actor movement state machine.
// The descriptor is present if and only if the state is Moving.
type Mover struct {
	state State
	desc  *Descriptor

	// CarryOvershoot keeps time past the final substep for the next crossing.
	CarryOvershoot bool
	overshoot      time.Duration
}

// State returns the current movement state.
func (m *Mover) State() State {
	return m.state
}

// Idle reports whether a new crossing may begin.
func (m *Mover) Idle() bool {
	return m.state == Idle
}

// Active returns a copy of the active descriptor.
func (m *Mover) Active() (Descriptor, bool) {
	if m.desc == nil {
		return Descriptor{}, false
	}
	return *m.desc, true
}

// Begin starts a crossing. It returns false and leaves the active
// crossing untouched if the mover is already Moving.
func (m *Mover) Begin(d Descriptor) bool {
	if m.state != Idle {
		return false
	}
	d.elapsed = 0
	if m.CarryOvershoot {
		d.elapsed = m.overshoot
	}
	m.overshoot = 0
	d.fresh = true

	m.desc = &d
	m.state = Moving
	return true
}

// Advance feeds dt into the active crossing and calls fn once per substep
// completed. A crossing begun in the current tick does not advance until the next.
// It returns the number of substeps fired.
func (m *Mover) Advance(dt time.Duration, fn func(StepEvent)) int {
	d := m.desc
	if d == nil {
		return 0
	}
	if d.fresh {
		d.fresh = false
		return 0
	}
	if dt > 0 {
		d.elapsed += dt
	}

	fired := 0
	for d.Remaining > 0 && d.elapsed >= d.Interval {
		d.elapsed -= d.Interval
		ev := StepEvent{
			Index:       d.steps - d.Remaining + 1,
			Delta:       d.delta(),
			Orientation: d.Orientation,
			Final:       d.Remaining == 1,
		}
		d.Remaining--
		fired++
		if fn != nil {
			fn(ev)
		}
	}

	if d.Remaining == 0 {
		if m.CarryOvershoot {
			m.overshoot = d.elapsed
		}
		m.desc = nil
		m.state = Idle
	}
	return fired
}

// Overshoot returns time carried into the next crossing.
func (m *Mover) Overshoot() time.Duration {
	return m.overshoot
}
