package movement

import (
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrInvalidRequest is returned for requests that cannot describe a tile crossing.
var ErrInvalidRequest = errors.New("movement: invalid request")

// Request asks for one tile crossing.
type Request struct {
	Direction   r3.Vec // unit vector
	Orientation Orientation
	Duration    time.Duration // whole crossing
	Steps       int           // substeps, >= 1
}

// NewRequest builds a request travelling in the direction of o.
func NewRequest(o Orientation, duration time.Duration, steps int) Request {
	return Request{
		Direction:   o.Unit(),
		Orientation: o,
		Duration:    duration,
		Steps:       steps,
	}
}

// Descriptor is the plan for a single tile crossing.
// Everything except the remaining counter and the time accumulator is fixed at construction.
type Descriptor struct {
	Step        r3.Vec        // displacement per substep
	Interval    time.Duration // time per substep
	Orientation Orientation
	Remaining   int

	total   r3.Vec // full-tile displacement
	steps   int
	elapsed time.Duration
	fresh   bool
}

// NewDescriptor derives the substep plan for req on a grid of the given tile size.
func NewDescriptor(req Request, tileSize float64) (Descriptor, error) {
	if req.Steps < 1 {
		return Descriptor{}, fmt.Errorf("%w: steps %d < 1", ErrInvalidRequest, req.Steps)
	}
	if tileSize <= 0 {
		return Descriptor{}, fmt.Errorf("%w: tile size %v", ErrInvalidRequest, tileSize)
	}
	if req.Duration <= 0 {
		return Descriptor{}, fmt.Errorf("%w: duration %v", ErrInvalidRequest, req.Duration)
	}
	interval := req.Duration / time.Duration(req.Steps)
	if interval <= 0 {
		return Descriptor{}, fmt.Errorf("%w: duration %v too short for %d steps", ErrInvalidRequest, req.Duration, req.Steps)
	}

	total := r3.Scale(tileSize, req.Direction)
	return Descriptor{
		Step:        r3.Scale(1/float64(req.Steps), total),
		Interval:    interval,
		Orientation: req.Orientation,
		Remaining:   req.Steps,
		total:       total,
		steps:       req.Steps,
	}, nil
}

// Total returns the displacement of the whole crossing.
func (d Descriptor) Total() r3.Vec {
	return d.total
}

// Steps returns the substep count the descriptor was built with.
func (d Descriptor) Steps() int {
	return d.steps
}

// Elapsed returns time accumulated toward the next substep.
func (d Descriptor) Elapsed() time.Duration {
	return d.elapsed
}

// delta returns the displacement for the next substep. The last substep
// absorbs rounding so the crossing sums to exactly one tile's extent.
func (d *Descriptor) delta() r3.Vec {
	if d.Remaining == 1 {
		done := float64(d.steps - 1)
		return r3.Sub(d.total, r3.Scale(done, d.Step))
	}
	return d.Step
}
