package telemetry

import (
	"log/slog"
	"math"
)

// Crossing is one completed tile crossing, flattened for CSV export.
type Crossing struct {
	ActorID     uint32  `csv:"actor_id"`
	Orientation string  `csv:"orientation"`
	StartTick   int64   `csv:"start_tick"`
	EndTick     int64   `csv:"end_tick"`
	Steps       int     `csv:"steps"`
	FromX       float64 `csv:"from_x"`
	FromY       float64 `csv:"from_y"`
	ToX         float64 `csv:"to_x"`
	ToY         float64 `csv:"to_y"`
}

// Distance returns the straight-line length of the crossing.
func (c Crossing) Distance() float64 {
	return math.Hypot(c.ToX-c.FromX, c.ToY-c.FromY)
}

// Collector aggregates movement events into counters and crossing records.
type Collector struct {
	crossings   int
	steps       int
	zoomChanges int
	distance    float64
	byDirection map[string]int

	pending   map[uint32]*Crossing
	completed []Crossing
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		byDirection: make(map[string]int),
		pending:     make(map[uint32]*Crossing),
	}
}

// Record folds one event into the collector.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventMovementStarted:
		c.pending[ev.ActorID] = &Crossing{
			ActorID:     ev.ActorID,
			Orientation: ev.Orientation.String(),
			StartTick:   ev.Tick,
			FromX:       ev.X,
			FromY:       ev.Y,
		}
	case EventStep:
		c.steps++
		if p, ok := c.pending[ev.ActorID]; ok {
			p.Steps++
		}
	case EventMovementCompleted:
		c.crossings++
		c.byDirection[ev.Orientation.String()]++
		p, ok := c.pending[ev.ActorID]
		if !ok {
			return
		}
		delete(c.pending, ev.ActorID)
		p.EndTick = ev.Tick
		p.ToX = ev.X
		p.ToY = ev.Y
		c.distance += p.Distance()
		c.completed = append(c.completed, *p)
	case EventZoomChanged:
		c.zoomChanges++
	}
}

// Crossings returns the number of completed crossings.
func (c *Collector) Crossings() int {
	return c.crossings
}

// Steps returns the number of substeps fired.
func (c *Collector) Steps() int {
	return c.steps
}

// ZoomChanges returns the number of zoom cycles.
func (c *Collector) ZoomChanges() int {
	return c.zoomChanges
}

// Distance returns the total distance covered by completed crossings.
func (c *Collector) Distance() float64 {
	return c.distance
}

// ByDirection returns completed crossings for an orientation name.
func (c *Collector) ByDirection(name string) int {
	return c.byDirection[name]
}

// Drain returns crossings completed since the last call.
func (c *Collector) Drain() []Crossing {
	out := c.completed
	c.completed = nil
	return out
}

// LogValue implements slog.LogValuer for structured logging.
func (c *Collector) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("crossings", c.crossings),
		slog.Int("steps", c.steps),
		slog.Int("zoom_changes", c.zoomChanges),
		slog.Float64("distance", c.distance),
		slog.Int("left", c.byDirection["left"]),
		slog.Int("right", c.byDirection["right"]),
		slog.Int("up", c.byDirection["up"]),
		slog.Int("down", c.byDirection["down"]),
	)
}
