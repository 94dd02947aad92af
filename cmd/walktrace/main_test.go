package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/gridwalk/config"
	"github.com/pthm-cable/gridwalk/game"
)

func TestSummaryRoundTrip(t *testing.T) {
	g, err := game.New(config.Default(), game.Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	route, err := game.ParseRoute("RRU")
	if err != nil {
		t.Fatal(err)
	}
	tiles := g.Walk(route, time.Second/60, 0)

	s := summarize(g, "RRU", 60, tiles, time.Millisecond)
	if s.Tiles != 3 || s.FinalX != 32 || s.FinalY != 16 {
		t.Errorf("summary = %+v, want 3 tiles ending at (32, 16)", s)
	}
	if s.ByDir["right"] != 2 || s.ByDir["up"] != 1 {
		t.Errorf("by direction = %v", s.ByDir)
	}

	path := filepath.Join(t.TempDir(), "summary.yaml")
	if err := writeSummary(path, s); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got Summary
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Route != "RRU" || got.Steps != 9 {
		t.Errorf("read back %+v", got)
	}
}
