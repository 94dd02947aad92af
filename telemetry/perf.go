package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the simulation step.
const (
	PhaseInput     = "input"
	PhaseSteps     = "steps"
	PhaseZoom      = "zoom"
	PhaseCamera    = "camera"
	PhaseTelemetry = "telemetry"
)

// Phases lists the tick phases in execution order.
var Phases = []string{PhaseInput, PhaseSteps, PhaseZoom, PhaseCamera, PhaseTelemetry}

const numPhases = 5

func phaseSlot(name string) int {
	for i, p := range Phases {
		if p == name {
			return i
		}
	}
	return -1
}

// PerfSample is the timing of one tick.
type PerfSample struct {
	Total  time.Duration
	Phases [numPhases]time.Duration
	// Moving is set when the tick advanced at least one crossing.
	Moving bool
}

// PerfCollector keeps the last N tick samples in a ring.
type PerfCollector struct {
	ring  []PerfSample
	next  int
	count int

	cur        PerfSample
	tickStart  time.Time
	phaseStart time.Time
	phase      int
}

// NewPerfCollector creates a collector averaging over window ticks (60 when window < 1).
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{ring: make([]PerfSample, window), phase: -1}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.cur = PerfSample{}
	p.phase = -1
}

// StartPhase closes the running phase and opens the named one.
// Unknown names close the running phase without opening another.
func (p *PerfCollector) StartPhase(name string) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phaseSlot(name)
	p.phaseStart = now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 {
		p.cur.Phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.phase = -1
}

// EndTick records the tick. moving reports whether any crossing advanced.
func (p *PerfCollector) EndTick(moving bool) {
	now := time.Now()
	p.closePhase(now)
	p.cur.Total = now.Sub(p.tickStart)
	p.cur.Moving = moving

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
}

// PerfStats aggregates the samples in the window.
type PerfStats struct {
	Samples         int
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Moving and idle ticks averaged separately.
	MovingTicks   int
	AvgMovingTick time.Duration
	AvgIdleTick   time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		Samples:  p.count,
		PhaseAvg: make(map[string]time.Duration, numPhases),
		PhasePct: make(map[string]float64, numPhases),
	}
	if p.count == 0 {
		return stats
	}

	var total, moving, idle time.Duration
	var phases [numPhases]time.Duration
	for i, s := range p.ring[:p.count] {
		total += s.Total
		if i == 0 || s.Total < stats.MinTickDuration {
			stats.MinTickDuration = s.Total
		}
		stats.MaxTickDuration = max(stats.MaxTickDuration, s.Total)
		if s.Moving {
			stats.MovingTicks++
			moving += s.Total
		} else {
			idle += s.Total
		}
		for j, d := range s.Phases {
			phases[j] += d
		}
	}

	n := time.Duration(p.count)
	stats.AvgTickDuration = total / n
	if stats.MovingTicks > 0 {
		stats.AvgMovingTick = moving / time.Duration(stats.MovingTicks)
	}
	if idleTicks := p.count - stats.MovingTicks; idleTicks > 0 {
		stats.AvgIdleTick = idle / time.Duration(idleTicks)
	}

	for j, name := range Phases {
		avg := phases[j] / n
		stats.PhaseAvg[name] = avg
		if stats.AvgTickDuration > 0 {
			stats.PhasePct[name] = float64(avg) / float64(stats.AvgTickDuration) * 100
		}
	}
	if stats.AvgTickDuration > 0 {
		stats.TicksPerSecond = float64(time.Second) / float64(stats.AvgTickDuration)
	}
	return stats
}

// LogStats logs the window at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "window", s)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("samples", s.Samples),
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("moving_ticks", s.MovingTicks),
		slog.Int64("moving_tick_us", s.AvgMovingTick.Microseconds()),
		slog.Int64("idle_tick_us", s.AvgIdleTick.Microseconds()),
	}
	for _, phase := range Phases {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd    int64   `csv:"window_end"`
	Samples      int     `csv:"samples"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	MovingTicks  int     `csv:"moving_ticks"`
	MovingTickUS int64   `csv:"moving_tick_us"`
	IdleTickUS   int64   `csv:"idle_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	InputPct     float64 `csv:"input_pct"`
	StepsPct     float64 `csv:"steps_pct"`
	ZoomPct      float64 `csv:"zoom_pct"`
	CameraPct    float64 `csv:"camera_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the window ending at tick windowEnd.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		Samples:      s.Samples,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		MovingTicks:  s.MovingTicks,
		MovingTickUS: s.AvgMovingTick.Microseconds(),
		IdleTickUS:   s.AvgIdleTick.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		InputPct:     s.PhasePct[PhaseInput],
		StepsPct:     s.PhasePct[PhaseSteps],
		ZoomPct:      s.PhasePct[PhaseZoom],
		CameraPct:    s.PhasePct[PhaseCamera],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
