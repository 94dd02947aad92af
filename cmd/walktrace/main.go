// Command walktrace walks a scripted route through the map without a window
// and writes the crossings, perf windows and a run summary to a directory.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/gridwalk/config"
	"github.com/pthm-cable/gridwalk/game"
)

// Summary is written to summary.yaml after the walk.
type Summary struct {
	Route      string             `yaml:"route"`
	FPS        int                `yaml:"fps"`
	Ticks      int64              `yaml:"ticks"`
	Tiles      int                `yaml:"tiles"`
	Steps      int                `yaml:"steps"`
	Distance   float64            `yaml:"distance"`
	FinalX     float64            `yaml:"final_x"`
	FinalY     float64            `yaml:"final_y"`
	CameraX    float64            `yaml:"camera_x"`
	CameraY    float64            `yaml:"camera_y"`
	ByDir      map[string]int     `yaml:"by_direction"`
	Elapsed    string             `yaml:"elapsed"`
	PerfPhases map[string]float64 `yaml:"perf_phase_pct,omitempty"`
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	route := flag.String("route", "", "Route of L, R, U, D letters, one tile each")
	fps := flag.Int("fps", 60, "Fixed frame rate of the simulated clock")
	settle := flag.Int("settle", 0, "Idle ticks after the route so the camera can catch up")
	maxTicks := flag.Int64("max-ticks", 0, "Stop the walk after N ticks (0 = unlimited)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if *fps < 1 {
		log.Fatal("--fps must be at least 1")
	}

	steps, err := game.ParseRoute(*route)
	if err != nil {
		log.Fatalf("invalid route: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	g, err := game.New(config.Cfg(), game.Options{OutputDir: *outputDir})
	if err != nil {
		log.Fatalf("failed to create game: %v", err)
	}

	dt := time.Second / time.Duration(*fps)
	start := time.Now()
	tiles := g.Walk(steps, dt, *maxTicks)
	g.RunIdle(dt, int64(*settle))
	elapsed := time.Since(start)

	summary := summarize(g, *route, *fps, tiles, elapsed)
	if err := g.Close(); err != nil {
		log.Fatalf("failed to close output: %v", err)
	}
	if err := writeSummary(filepath.Join(*outputDir, "summary.yaml"), summary); err != nil {
		log.Fatalf("failed to write summary: %v", err)
	}

	fmt.Printf("walked %d/%d tiles in %d ticks, final position (%.1f, %.1f)\n",
		tiles, len(steps), summary.Ticks, summary.FinalX, summary.FinalY)
}

func summarize(g *game.Game, route string, fps, tiles int, elapsed time.Duration) Summary {
	tr, _ := g.Player()
	cam, _ := g.Camera()
	c := g.Collector()

	byDir := make(map[string]int)
	for _, d := range []string{"left", "right", "up", "down"} {
		if n := c.ByDirection(d); n > 0 {
			byDir[d] = n
		}
	}

	return Summary{
		Route:      route,
		FPS:        fps,
		Ticks:      g.Tick(),
		Tiles:      tiles,
		Steps:      c.Steps(),
		Distance:   c.Distance(),
		FinalX:     tr.Translation.X,
		FinalY:     tr.Translation.Y,
		CameraX:    cam.Translation.X,
		CameraY:    cam.Translation.Y,
		ByDir:      byDir,
		Elapsed:    elapsed.Round(time.Microsecond).String(),
		PerfPhases: g.PerfStats().PhasePct,
	}
}

func writeSummary(path string, s Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}
