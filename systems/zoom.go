package systems

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gridwalk/components"
	"github.com/pthm-cable/gridwalk/cycle"
	"github.com/pthm-cable/gridwalk/input"
	"github.com/pthm-cable/gridwalk/telemetry"
)

// ZoomSystem cycles the camera projection scale through a fixed set.
type ZoomSystem struct {
	filter ecs.Filter2[components.Projection, components.MainCamera]
	scales *cycle.Ring[float64]
}

// NewZoomSystem creates the system. An empty scale set is an error.
func NewZoomSystem(w *ecs.World, scales []float64) (*ZoomSystem, error) {
	ring, err := cycle.New(scales)
	if err != nil {
		return nil, fmt.Errorf("zoom scales: %w", err)
	}
	return &ZoomSystem{
		filter: *ecs.NewFilter2[components.Projection, components.MainCamera](w),
		scales: ring,
	}, nil
}

// Update advances to the next scale on the tick the zoom action is pressed.
// Holding the action does not repeat. It returns true if the scale changed.
func (s *ZoomSystem) Update(tick int64, in input.Snapshot, emit func(telemetry.Event)) bool {
	if !in.JustPressed.Has(input.CycleZoom) {
		return false
	}
	s.Cycle(tick, emit)
	return true
}

// Cycle advances to the next scale and applies it to every main camera.
func (s *ZoomSystem) Cycle(tick int64, emit func(telemetry.Event)) float64 {
	scale := s.scales.Next()
	s.apply(scale)
	if emit != nil {
		emit(telemetry.NewZoomChangedEvent(tick, scale))
	}
	return scale
}

// Restore selects the scale at index without emitting an event.
func (s *ZoomSystem) Restore(index int) float64 {
	scale := s.scales.Seek(index)
	s.apply(scale)
	return scale
}

// Current returns the selected scale.
func (s *ZoomSystem) Current() float64 {
	return s.scales.Current()
}

// Index returns the position of the selected scale.
func (s *ZoomSystem) Index() int {
	return s.scales.Index()
}

func (s *ZoomSystem) apply(scale float64) {
	query := s.filter.Query()
	for query.Next() {
		proj, _ := query.Get()
		proj.Scale = scale
	}
}
