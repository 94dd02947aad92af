package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gridwalk/audio"
	"github.com/pthm-cable/gridwalk/config"
	"github.com/pthm-cable/gridwalk/game"
	"github.com/pthm-cable/gridwalk/prefs"
	"github.com/pthm-cable/gridwalk/renderer"
	"github.com/pthm-cable/gridwalk/terminal"
)

const appName = "gridwalk"

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	tui := flag.Bool("tui", false, "Run in the terminal instead of a window")
	route := flag.String("route", "", "Headless walk route, e.g. LLDRU (empty = idle)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited; headless idle needs a limit)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logJSON := flag.Bool("log-json", false, "Log JSON instead of text")
	logStats := flag.Bool("log-stats", false, "Log perf windows and session totals")
	noPrefs := flag.Bool("no-prefs", false, "Do not load or save viewer preferences")

	flag.Parse()

	// The terminal owns stdout in TUI mode.
	var logOut io.Writer = os.Stdout
	if *tui {
		logOut = io.Discard
	}
	logger, err := newLogger(logOut, *logLevel, *logJSON)
	if err != nil {
		slog.Error("invalid flags", "error", err)
		os.Exit(2)
	}
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	slog.Info("config loaded", "path", *configPath)

	var store *prefs.Store
	if !*noPrefs && !*headless {
		store, err = prefs.Open(appName)
		if err != nil {
			slog.Warn("prefs not persistent", "error", err)
		}
	}

	footsteps := audio.NewFootsteps(cfg.Audio, cfg.Derived.ToneDuration)
	if store != nil {
		if p, ok, err := store.Load(); err == nil && ok {
			footsteps.SetEnabled(p.Footsteps)
		}
	}

	opts := game.Options{
		OutputDir: *outputDir,
		LogStats:  *logStats,
		Prefs:     store,
	}
	if !*headless {
		opts.OnEvent = footsteps.OnEvent
	}

	g, err := game.New(cfg, opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := g.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}()

	switch {
	case *headless:
		runHeadless(g, *route, int64(*maxTicks))
	case *tui:
		initAudio(footsteps)
		defer footsteps.Close()
		runTerminal(g)
	default:
		initAudio(footsteps)
		defer footsteps.Close()
		runWindow(g, footsteps, store, *maxTicks)
	}
}

func initAudio(f *audio.Footsteps) {
	if err := f.Init(); err != nil {
		// Non-fatal, the map runs without sound
		slog.Warn("audio unavailable", "error", err)
	}
}

// runHeadless walks route at a fixed frame rate, or idles for maxTicks.
func runHeadless(g *game.Game, route string, maxTicks int64) {
	dt := time.Second / time.Duration(max(g.Config().Screen.TargetFPS, 1))

	steps, err := game.ParseRoute(route)
	if err != nil {
		slog.Error("invalid route", "error", err)
		return
	}
	slog.Info("starting headless run", "route", route, "max_ticks", maxTicks, "dt", dt)

	if len(steps) > 0 {
		walked := g.Walk(steps, dt, maxTicks)
		tr, _ := g.Player()
		slog.Info("route finished",
			"tiles", walked,
			"tick", g.Tick(),
			"x", tr.Translation.X,
			"y", tr.Translation.Y,
		)
		return
	}
	if maxTicks <= 0 {
		slog.Warn("headless idle run needs -max-ticks")
		return
	}
	g.RunIdle(dt, maxTicks)
	slog.Info("max ticks reached", "tick", g.Tick())
}

func runTerminal(g *game.Game) {
	screen, err := tcell.NewScreen()
	if err != nil {
		slog.Error("failed to open terminal", "error", err)
		return
	}
	if err := screen.Init(); err != nil {
		slog.Error("failed to init terminal", "error", err)
		return
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := terminal.NewApp(screen, g).Run(ctx); err != nil && ctx.Err() == nil {
		slog.Error("terminal front end stopped", "error", err)
	}
}

func runWindow(g *game.Game, footsteps *audio.Footsteps, store *prefs.Store, maxTicks int) {
	cfg := g.Config()
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Grid Walk")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	app := renderer.NewApp(g, footsteps, store)
	for !rl.WindowShouldClose() {
		app.Frame()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
}
