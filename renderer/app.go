package renderer

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gridwalk/audio"
	"github.com/pthm-cable/gridwalk/game"
	"github.com/pthm-cable/gridwalk/input"
	"github.com/pthm-cable/gridwalk/prefs"
	"github.com/pthm-cable/gridwalk/telemetry"
	"github.com/pthm-cable/gridwalk/ui"
)

// App is the raylib front end: it polls keys, ticks the game once per frame and draws.
// The window must be open before NewApp is called.
type App struct {
	game      *game.Game
	bindings  input.Bindings
	world     *WorldRenderer
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	footsteps *audio.Footsteps
	prefs     *prefs.Store
	showPerf  bool
	controls  string
	facing    string
}

// NewApp creates the front end for g. footsteps and store may be nil.
func NewApp(g *game.Game, footsteps *audio.Footsteps, store *prefs.Store) *App {
	cfg := g.Config()
	return &App{
		game:      g,
		bindings:  input.NewBindings(cfg.Keys),
		world:     NewWorldRenderer(cfg),
		hud:       ui.NewHUD(),
		perfPanel: ui.NewPerfPanel(int32(cfg.Screen.Width)-260, 90),
		footsteps: footsteps,
		prefs:     store,
		controls:  controlsLegend(cfg.Keys.Left, cfg.Keys.Right, cfg.Keys.Up, cfg.Keys.Down, cfg.Keys.CycleZoom),
		facing:    "down",
	}
}

func controlsLegend(left, right, up, down, zoom []string) string {
	join := func(keys []string) string { return strings.Join(keys, "/") }
	return fmt.Sprintf("Move: %s %s %s %s | Zoom: %s | Perf: P",
		join(left), join(right), join(up), join(down), join(zoom))
}

// Frame runs one tick with the last frame time and draws the result.
func (a *App) Frame() {
	if rl.IsWindowResized() {
		a.world.Resize(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
		a.perfPanel.SetPosition(int32(rl.GetScreenWidth())-260, 90)
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.showPerf = !a.showPerf
	}

	dt := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
	a.game.UpdateKeys(dt, PollActions(&a.bindings))

	rl.BeginDrawing()
	defer rl.EndDrawing()

	camTr, proj := a.game.Camera()
	a.world.SetCamera(camTr, proj)
	player, sprite := a.game.Player()
	a.world.Draw(player, sprite)

	a.drawHUD(player.Translation.X, player.Translation.Y, proj.Scale)
}

func (a *App) drawHUD(x, y, scale float64) {
	ts := a.game.Config().Map.TileSize
	for _, ev := range a.game.Events() {
		if ev.Type == telemetry.EventMovementStarted {
			a.facing = ev.Orientation.String()
		}
	}

	a.hud.Draw(ui.HUDData{
		Title:     "Grid Walk",
		Tick:      a.game.Tick(),
		X:         x / ts,
		Y:         y / ts,
		State:     a.game.PlayerState().String(),
		Facing:    a.facing,
		Zoom:      scale,
		Crossings: a.game.Collector().Crossings(),
		FPS:       rl.GetFPS(),
	})
	a.hud.DrawControls(int32(rl.GetScreenHeight()), a.controls)

	on := a.footsteps != nil && a.footsteps.Enabled()
	buttons := a.hud.DrawButtons(int32(rl.GetScreenWidth()), on)
	if buttons.Zoom {
		a.game.RequestZoom()
	}
	if buttons.Footsteps && a.footsteps != nil {
		a.toggleFootsteps(!on)
	}

	if a.showPerf {
		stats := a.game.PerfStats()
		a.perfPanel.Draw(ui.PerfPanelData{
			PhaseAvg: stats.PhaseAvg,
			PhasePct: stats.PhasePct,
			Total:    stats.AvgTickDuration,
			Registry: a.game.Registry(),
		})
	}
}

func (a *App) toggleFootsteps(on bool) {
	a.footsteps.SetEnabled(on)
	if on {
		if err := a.footsteps.Init(); err != nil {
			slog.Warn("audio unavailable", "error", err)
		}
	}
	if a.prefs == nil {
		return
	}
	p, _, err := a.prefs.Load()
	if err != nil {
		p = prefs.Prefs{}
	}
	p.Footsteps = on
	p.ZoomIndex = a.game.ZoomIndex()
	if err := a.prefs.Save(p); err != nil {
		slog.Warn("failed to save prefs", "error", err)
	}
}
