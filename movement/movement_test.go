package movement

import (
	"errors"
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

const eps = 1e-9

func approxVec(a, b r3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func mustDescriptor(t *testing.T, o Orientation, d time.Duration, steps int, tile float64) Descriptor {
	t.Helper()
	desc, err := NewDescriptor(NewRequest(o, d, steps), tile)
	if err != nil {
		t.Fatalf("NewDescriptor: %v", err)
	}
	return desc
}

// begin starts a crossing and consumes the trigger tick.
func begin(t *testing.T, m *Mover, d Descriptor) {
	t.Helper()
	if !m.Begin(d) {
		t.Fatal("Begin rejected on idle mover")
	}
	if n := m.Advance(time.Second, nil); n != 0 {
		t.Fatalf("crossing advanced %d steps in its trigger tick", n)
	}
}

func TestNewDescriptorLeft(t *testing.T) {
	d := mustDescriptor(t, Left, 125*time.Millisecond, 3, 16)

	if d.Remaining != 3 {
		t.Errorf("Remaining = %d, want 3", d.Remaining)
	}
	if !approxVec(d.Step, r3.Vec{X: -16.0 / 3}, eps) {
		t.Errorf("Step = %+v, want (-5.333, 0, 0)", d.Step)
	}
	wantInterval := 125 * time.Millisecond / 3
	if d.Interval != wantInterval {
		t.Errorf("Interval = %v, want %v", d.Interval, wantInterval)
	}
	if math.Abs(d.Interval.Seconds()-0.041667) > 1e-5 {
		t.Errorf("Interval = %vs, want ~0.04167s", d.Interval.Seconds())
	}
	if d.Orientation != Left {
		t.Errorf("Orientation = %v, want left", d.Orientation)
	}
}

func TestNewDescriptorErrors(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		tile float64
	}{
		{"zero steps", NewRequest(Up, time.Second, 0), 16},
		{"negative steps", NewRequest(Up, time.Second, -2), 16},
		{"zero tile", NewRequest(Up, time.Second, 3), 0},
		{"negative tile", NewRequest(Up, time.Second, 3), -1},
		{"zero duration", NewRequest(Up, 0, 3), 16},
		{"duration shorter than steps", NewRequest(Up, 2*time.Nanosecond, 3), 16},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewDescriptor(tc.req, tc.tile)
			if !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestCrossingScenarioLeft(t *testing.T) {
	var m Mover
	begin(t, &m, mustDescriptor(t, Left, 125*time.Millisecond, 3, 16))

	var pos r3.Vec
	steps := 0
	apply := func(ev StepEvent) {
		pos = r3.Add(pos, ev.Delta)
		steps++
	}

	// 125ms in 5ms chunks.
	for i := 0; i < 25; i++ {
		if m.State() != Moving {
			t.Fatalf("state went idle early at chunk %d", i)
		}
		m.Advance(5*time.Millisecond, apply)
	}

	if steps != 3 {
		t.Errorf("fired %d steps, want 3", steps)
	}
	if !approxVec(pos, r3.Vec{X: -16}, eps) {
		t.Errorf("position = %+v, want (-16, 0, 0)", pos)
	}
	if m.State() != Idle {
		t.Errorf("state = %v, want idle", m.State())
	}
	if _, ok := m.Active(); ok {
		t.Error("descriptor still present after crossing")
	}
}

func TestStepCountIndependentOfChunking(t *testing.T) {
	chunkings := map[string][]time.Duration{
		"single large delta": {time.Second},
		"exact intervals":    {125 * time.Millisecond / 3, 125 * time.Millisecond / 3, 125 * time.Millisecond / 3},
		"60fps":              repeat(time.Second/60, 10),
		"uneven":             {10 * time.Millisecond, 70 * time.Millisecond, 3 * time.Millisecond, 50 * time.Millisecond},
		"tiny":               repeat(time.Millisecond, 200),
	}
	for name, chunks := range chunkings {
		t.Run(name, func(t *testing.T) {
			for _, steps := range []int{1, 2, 3, 7} {
				var m Mover
				begin(t, &m, mustDescriptor(t, Down, 125*time.Millisecond, steps, 16))
				fired := 0
				var pos r3.Vec
				for _, dt := range chunks {
					fired += m.Advance(dt, func(ev StepEvent) { pos = r3.Add(pos, ev.Delta) })
				}
				if fired != steps {
					t.Errorf("steps=%d: fired %d", steps, fired)
				}
				if !approxVec(pos, r3.Vec{Y: -16}, 1e-9) {
					t.Errorf("steps=%d: position %+v, want (0,-16,0)", steps, pos)
				}
				if !m.Idle() {
					t.Errorf("steps=%d: not idle after crossing", steps)
				}
			}
		})
	}
}

func repeat(d time.Duration, n int) []time.Duration {
	out := make([]time.Duration, n)
	for i := range out {
		out[i] = d
	}
	return out
}

func TestLargeDeltaFiresEveryStep(t *testing.T) {
	var m Mover
	begin(t, &m, mustDescriptor(t, Right, 125*time.Millisecond, 3, 16))

	var events []StepEvent
	m.Advance(90*time.Millisecond, func(ev StepEvent) { events = append(events, ev) })
	if len(events) != 2 {
		t.Fatalf("90ms fired %d steps, want 2", len(events))
	}
	if events[0].Index != 1 || events[1].Index != 2 {
		t.Errorf("indices = %d,%d, want 1,2", events[0].Index, events[1].Index)
	}
	if events[1].Final {
		t.Error("second of three steps marked final")
	}

	d, ok := m.Active()
	if !ok {
		t.Fatal("expected active descriptor")
	}
	// Remainder is carried, not reset.
	wantElapsed := 90*time.Millisecond - 2*d.Interval
	if d.Elapsed() != wantElapsed {
		t.Errorf("elapsed = %v, want %v", d.Elapsed(), wantElapsed)
	}
	if d.Remaining != 1 {
		t.Errorf("Remaining = %d, want 1", d.Remaining)
	}

	m.Advance(40*time.Millisecond, func(ev StepEvent) { events = append(events, ev) })
	if len(events) != 3 || !events[2].Final {
		t.Fatalf("expected final third step, got %d events", len(events))
	}
}

func TestBeginWhileMovingIgnored(t *testing.T) {
	var m Mover
	begin(t, &m, mustDescriptor(t, Down, 125*time.Millisecond, 3, 16))
	m.Advance(50*time.Millisecond, nil)

	before, _ := m.Active()
	if m.Begin(mustDescriptor(t, Up, time.Second, 5, 32)) {
		t.Fatal("Begin accepted while moving")
	}
	after, _ := m.Active()
	if before != after {
		t.Errorf("active descriptor changed: %+v -> %+v", before, after)
	}
}

func TestTriggerTickDoesNotAdvance(t *testing.T) {
	var m Mover
	m.Begin(mustDescriptor(t, Up, 30*time.Millisecond, 3, 16))
	if n := m.Advance(time.Second, nil); n != 0 {
		t.Fatalf("fired %d steps in trigger tick", n)
	}
	if n := m.Advance(30*time.Millisecond, nil); n != 3 {
		t.Errorf("fired %d steps, want 3", n)
	}
}

func TestAdvanceIdleNoop(t *testing.T) {
	var m Mover
	called := false
	if n := m.Advance(time.Second, func(StepEvent) { called = true }); n != 0 || called {
		t.Error("idle mover fired steps")
	}
}

func TestOvershootDroppedByDefault(t *testing.T) {
	var m Mover
	begin(t, &m, mustDescriptor(t, Left, 30*time.Millisecond, 3, 16))
	m.Advance(35*time.Millisecond, nil)
	if m.Overshoot() != 0 {
		t.Errorf("overshoot = %v, want 0", m.Overshoot())
	}

	m.Begin(mustDescriptor(t, Left, 30*time.Millisecond, 3, 16))
	d, _ := m.Active()
	if d.Elapsed() != 0 {
		t.Errorf("new crossing started with %v elapsed", d.Elapsed())
	}
}

func TestOvershootCarried(t *testing.T) {
	m := Mover{CarryOvershoot: true}
	begin(t, &m, mustDescriptor(t, Left, 30*time.Millisecond, 3, 16))
	m.Advance(35*time.Millisecond, nil)
	if m.Overshoot() != 5*time.Millisecond {
		t.Fatalf("overshoot = %v, want 5ms", m.Overshoot())
	}

	m.Begin(mustDescriptor(t, Left, 30*time.Millisecond, 3, 16))
	d, _ := m.Active()
	if d.Elapsed() != 5*time.Millisecond {
		t.Errorf("carried elapsed = %v, want 5ms", d.Elapsed())
	}
	if m.Overshoot() != 0 {
		t.Error("overshoot not consumed by Begin")
	}
}

func TestFrames(t *testing.T) {
	f := DefaultFrames()

	t.Run("vertical toggles flip", func(t *testing.T) {
		idx, flip := 2, false
		for i := 0; i < 4; i++ {
			prev := flip
			idx, flip = f.Apply(Down, idx, flip)
			if idx != 0 {
				t.Fatalf("down frame = %d, want 0", idx)
			}
			if flip == prev {
				t.Fatalf("flip not toggled on substep %d", i)
			}
		}
		idx, _ = f.Apply(Up, idx, flip)
		if idx != 1 {
			t.Errorf("up frame = %d, want 1", idx)
		}
	})

	t.Run("horizontal alternates walk frames", func(t *testing.T) {
		idx, flip := 0, true
		want := []int{2, 3, 2, 3}
		for i, w := range want {
			idx, flip = f.Apply(Left, idx, flip)
			if idx != w {
				t.Errorf("substep %d: frame %d, want %d", i, idx, w)
			}
			if flip {
				t.Errorf("substep %d: left must not be mirrored", i)
			}
		}
	})

	t.Run("walk starts from the inactive frame", func(t *testing.T) {
		idx, flip := f.Apply(Right, 2, false)
		if idx != 3 || !flip {
			t.Errorf("got (%d,%v), want (3,true)", idx, flip)
		}
		idx, flip = f.Apply(Right, idx, flip)
		if idx != 2 || !flip {
			t.Errorf("got (%d,%v), want (2,true)", idx, flip)
		}
	})
}

func TestFrameCycleEmpty(t *testing.T) {
	var c FrameCycle
	if c.Next(5) != 5 {
		t.Error("empty cycle should keep current frame")
	}
}

func TestOrientationUnit(t *testing.T) {
	for _, o := range []Orientation{Down, Up, Left, Right} {
		if n := r3.Norm(o.Unit()); math.Abs(n-1) > eps {
			t.Errorf("%v unit norm = %v", o, n)
		}
		if o.Unit().Z != 0 {
			t.Errorf("%v unit has z component", o)
		}
	}
}
