package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/gridwalk/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager and no error, got %v, %v", om, err)
	}
	// Nil manager methods are no-ops.
	if err := om.WriteCrossings([]Crossing{{}}); err != nil {
		t.Error(err)
	}
	if err := om.WritePerf(PerfStats{}, 1); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" {
		t.Error("nil manager should report empty dir")
	}
}

func TestOutputManagerWritesCrossings(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	first := []Crossing{{ActorID: 1, Orientation: "left", StartTick: 1, EndTick: 9, Steps: 3, ToX: -16}}
	second := []Crossing{{ActorID: 1, Orientation: "up", StartTick: 10, EndTick: 18, Steps: 3, FromX: -16, ToX: -16, ToY: 16}}
	if err := om.WriteCrossings(first); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteCrossings(second); err != nil {
		t.Fatal(err)
	}
	if err := om.WritePerf(PerfStats{AvgTickDuration: time.Millisecond}, 60); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "crossings.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "actor_id"); n != 1 {
		t.Errorf("header written %d times, want 1", n)
	}

	var rows []Crossing
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		t.Fatalf("parsing crossings.csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[1].Orientation != "up" || rows[1].ToY != 16 {
		t.Errorf("unexpected second row: %+v", rows[1])
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot not loadable: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "perf.csv")); err != nil {
		t.Errorf("perf.csv missing: %v", err)
	}
}
