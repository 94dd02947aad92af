package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/gridwalk/input"
	"github.com/pthm-cable/gridwalk/prefs"
	"github.com/pthm-cable/gridwalk/telemetry"
)

// UpdateKeys derives press edges from the actions held this frame and runs one tick.
func (g *Game) UpdateKeys(dt time.Duration, down input.Actions) {
	g.Update(dt, g.tracker.Update(down))
}

// RequestZoom cycles the zoom on the next tick, as if the zoom key were pressed.
func (g *Game) RequestZoom() {
	g.zoomRequested = true
}

// Update runs one tick: movement initiation, step progression, zoom, camera
// follow, then event delivery. A crossing started this tick first advances on the next.
func (g *Game) Update(dt time.Duration, snap input.Snapshot) {
	g.events = g.events[:0]
	if g.zoomRequested {
		snap.JustPressed = snap.JustPressed.With(input.CycleZoom)
		g.zoomRequested = false
	}

	perf := g.perfCollector
	perf.StartTick()

	perf.StartPhase(telemetry.PhaseInput)
	g.moveInput.Update(g.tick, snap, g.emit)

	perf.StartPhase(telemetry.PhaseSteps)
	moving := g.steps.Update(g.tick, dt, g.emit) > 0

	perf.StartPhase(telemetry.PhaseZoom)
	zoomed := g.zoom.Update(g.tick, snap, g.emit)

	perf.StartPhase(telemetry.PhaseCamera)
	g.follow.Update(dt)

	perf.StartPhase(telemetry.PhaseTelemetry)
	g.deliverEvents()
	if zoomed {
		g.saveZoom()
	}
	g.flushCrossings()

	perf.EndTick(moving)
	g.tick++
	g.flushPerf()
}

// Events returns the events of the last tick. The slice is reused by the next Update.
func (g *Game) Events() []telemetry.Event {
	return g.events
}

func (g *Game) emit(ev telemetry.Event) {
	g.events = append(g.events, ev)
}

func (g *Game) deliverEvents() {
	for _, ev := range g.events {
		g.collector.Record(ev)
		if g.onEvent != nil {
			g.onEvent(ev)
		}

		switch ev.Type {
		case telemetry.EventMovementCompleted:
			slog.Debug("crossing completed",
				"tick", ev.Tick,
				"actor", ev.ActorID,
				"direction", ev.Orientation.String(),
				"x", ev.X,
				"y", ev.Y,
			)
		case telemetry.EventZoomChanged:
			slog.Info("zoom changed", "tick", ev.Tick, "scale", ev.Scale)
		}
	}
}

// saveZoom persists the current zoom index.
func (g *Game) saveZoom() {
	if g.prefs == nil {
		return
	}
	p, _, err := g.prefs.Load()
	if err != nil {
		p = prefs.Prefs{}
	}
	p.ZoomIndex = g.zoom.Index()
	if err := g.prefs.Save(p); err != nil {
		slog.Warn("failed to save prefs", "error", err)
	}
}

func (g *Game) flushCrossings() {
	crossings := g.collector.Drain()
	if err := g.outputManager.WriteCrossings(crossings); err != nil {
		slog.Error("failed to write crossings", "error", err)
	}
}

// flushPerf writes and logs perf stats once per perf window.
func (g *Game) flushPerf() {
	window := int64(g.cfg.Telemetry.PerfWindow)
	if window <= 0 || g.tick%window != 0 {
		return
	}
	stats := g.perfCollector.Stats()
	if g.logStats {
		stats.LogStats()
	}
	if err := g.outputManager.WritePerf(stats, g.tick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
