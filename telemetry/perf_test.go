package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_TracksTickPhases(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseInput)
		time.Sleep(50 * time.Microsecond)
		pc.StartPhase(PhaseSteps)
		time.Sleep(200 * time.Microsecond)
		pc.StartPhase(PhaseCamera)
		pc.EndTick(false)
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	for _, phase := range Phases {
		if _, ok := stats.PhaseAvg[phase]; !ok {
			t.Errorf("expected %s phase to be tracked", phase)
		}
	}
	if got := stats.PhaseAvg[PhaseInput]; got < 50*time.Microsecond {
		t.Errorf("input phase avg = %v, want at least the 50µs slept", got)
	}
	if got := stats.PhaseAvg[PhaseZoom]; got != 0 {
		t.Errorf("zoom phase avg = %v, want 0 for a phase never started", got)
	}
}

func TestPerfCollector_UnknownPhaseClosesRunning(t *testing.T) {
	pc := NewPerfCollector(1)

	pc.StartTick()
	pc.StartPhase(PhaseSteps)
	pc.StartPhase("render")
	time.Sleep(2 * time.Millisecond)
	pc.EndTick(false)

	stats := pc.Stats()
	if stats.PhaseAvg[PhaseSteps] >= stats.AvgTickDuration {
		t.Errorf("steps = %v should stop at the unknown phase, tick = %v",
			stats.PhaseAvg[PhaseSteps], stats.AvgTickDuration)
	}
	if _, ok := stats.PhaseAvg["render"]; ok {
		t.Error("unknown phase should not be reported")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 12; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseZoom)
		pc.EndTick(false)
	}

	stats := pc.Stats()
	if stats.Samples != 5 {
		t.Errorf("Samples = %d, want window size 5", stats.Samples)
	}
	if stats.MinTickDuration > stats.MaxTickDuration {
		t.Errorf("min %v > max %v", stats.MinTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_SplitsMovingAndIdle(t *testing.T) {
	pc := NewPerfCollector(10)

	moving := []bool{true, true, false, true}
	for _, m := range moving {
		pc.StartTick()
		pc.StartPhase(PhaseSteps)
		pc.EndTick(m)
	}

	stats := pc.Stats()
	if stats.MovingTicks != 3 {
		t.Errorf("MovingTicks = %d, want 3", stats.MovingTicks)
	}
	if stats.Samples != 4 {
		t.Errorf("Samples = %d, want 4", stats.Samples)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(0).Stats()

	if stats.AvgTickDuration != 0 || stats.Samples != 0 {
		t.Error("expected zero stats for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
	if stats.TicksPerSecond != 0 {
		t.Errorf("TicksPerSecond = %v, want 0", stats.TicksPerSecond)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{
		Samples:         60,
		AvgTickDuration: 1500 * time.Microsecond,
		MaxTickDuration: 3 * time.Millisecond,
		MovingTicks:     24,
		AvgMovingTick:   2 * time.Millisecond,
		PhasePct: map[string]float64{
			PhaseSteps:  60,
			PhaseCamera: 25,
		},
	}

	row := stats.ToCSV(120)
	if row.WindowEnd != 120 || row.AvgTickUS != 1500 || row.MaxTickUS != 3000 {
		t.Errorf("unexpected timing columns: %+v", row)
	}
	if row.Samples != 60 || row.MovingTicks != 24 || row.MovingTickUS != 2000 || row.IdleTickUS != 0 {
		t.Errorf("unexpected moving columns: %+v", row)
	}
	if row.StepsPct != 60 || row.CameraPct != 25 || row.InputPct != 0 {
		t.Errorf("unexpected phase columns: %+v", row)
	}
}
