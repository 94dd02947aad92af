// Package game wires the map world, its systems and telemetry into a tick loop.
package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/gridwalk/components"
	"github.com/pthm-cable/gridwalk/config"
	"github.com/pthm-cable/gridwalk/input"
	"github.com/pthm-cable/gridwalk/movement"
	"github.com/pthm-cable/gridwalk/prefs"
	"github.com/pthm-cable/gridwalk/systems"
	"github.com/pthm-cable/gridwalk/telemetry"
)

// CameraDepth keeps the camera in front of everything drawn on the map.
const CameraDepth = 999.9

// PlayerID is the actor ID of the spawned player.
const PlayerID uint32 = 1

// Game holds the complete map state.
type Game struct {
	cfg   *config.Config
	world *ecs.World

	playerMapper *ecs.Map5[
		components.Transform,
		components.Movable,
		components.Actor,
		components.Player,
		components.Sprite,
	]
	cameraMapper *ecs.Map3[
		components.Transform,
		components.Projection,
		components.MainCamera,
	]

	transformMap  *ecs.Map1[components.Transform]
	movableMap    *ecs.Map1[components.Movable]
	spriteMap     *ecs.Map1[components.Sprite]
	projectionMap *ecs.Map1[components.Projection]

	player ecs.Entity
	camera ecs.Entity

	// Systems in tick order
	moveInput *systems.MoveInputSystem
	steps     *systems.StepSystem
	zoom      *systems.ZoomSystem
	follow    *systems.CameraFollowSystem
	registry  *systems.SystemRegistry

	tracker       input.Tracker
	zoomRequested bool

	// Telemetry
	events        []telemetry.Event
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	onEvent       func(telemetry.Event)

	prefs *prefs.Store

	tick int64
}

// New creates a game with one player at the origin and a main camera on it.
func New(cfg *config.Config, opts Options) (*Game, error) {
	world := ecs.NewWorld()

	g := &Game{
		cfg:   cfg,
		world: world,
		playerMapper: ecs.NewMap5[
			components.Transform,
			components.Movable,
			components.Actor,
			components.Player,
			components.Sprite,
		](world),
		cameraMapper: ecs.NewMap3[
			components.Transform,
			components.Projection,
			components.MainCamera,
		](world),
		transformMap:  ecs.NewMap1[components.Transform](world),
		movableMap:    ecs.NewMap1[components.Movable](world),
		spriteMap:     ecs.NewMap1[components.Sprite](world),
		projectionMap: ecs.NewMap1[components.Projection](world),
		registry:      systems.NewSystemRegistry(),
		collector:     telemetry.NewCollector(),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		logStats:      opts.LogStats,
		onEvent:       opts.OnEvent,
		prefs:         opts.Prefs,
	}

	var err error
	g.moveInput, err = systems.NewMoveInputSystem(world, systems.MoveSettings{
		TileSize:     cfg.Map.TileSize,
		TileDuration: cfg.Derived.TileDuration,
		Steps:        cfg.Movement.StepsPerTile,
		HoldToRepeat: cfg.Movement.HoldToRepeat,
	})
	if err != nil {
		return nil, err
	}
	g.steps = systems.NewStepSystem(world, framesFromConfig(cfg.Sprite))
	g.zoom, err = systems.NewZoomSystem(world, cfg.Camera.ZoomScales)
	if err != nil {
		return nil, err
	}
	g.follow = systems.NewCameraFollowSystem(world, cfg.Camera.DecayRate)

	g.player = g.spawnPlayer(r3.Vec{})
	g.camera = g.spawnCamera(r3.Vec{Z: CameraDepth}, cfg.Derived.DefaultScale)
	g.restorePrefs()

	g.outputManager, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	slog.Info("game created",
		"tile_size", cfg.Map.TileSize,
		"tile_duration", cfg.Derived.TileDuration,
		"steps_per_tile", cfg.Movement.StepsPerTile,
		"zoom", g.zoom.Current(),
		"output_dir", g.outputManager.Dir(),
	)
	return g, nil
}

func framesFromConfig(s config.SpriteConfig) movement.Frames {
	return movement.Frames{
		Down: s.DownIndex,
		Up:   s.UpIndex,
		Walk: movement.FrameCycle(append([]int(nil), s.WalkIndices...)),
	}
}

// spawnPlayer creates the player facing down.
func (g *Game) spawnPlayer(at r3.Vec) ecs.Entity {
	tr := components.Transform{Translation: at}
	mov := components.Movable{Mover: movement.Mover{CarryOvershoot: g.cfg.Movement.CarryOvershoot}}
	actor := components.Actor{ID: PlayerID, Name: "player"}
	sprite := components.Sprite{
		Atlas: &components.Atlas{Index: g.cfg.Sprite.DownIndex},
		Size:  g.cfg.Sprite.Size,
	}
	return g.playerMapper.NewEntity(&tr, &mov, &actor, &components.Player{}, &sprite)
}

// spawnCamera creates the main camera.
func (g *Game) spawnCamera(at r3.Vec, scale float64) ecs.Entity {
	tr := components.Transform{Translation: at}
	proj := components.Projection{Scale: scale}
	return g.cameraMapper.NewEntity(&tr, &proj, &components.MainCamera{})
}

// restorePrefs applies the saved zoom, if any.
func (g *Game) restorePrefs() {
	if g.prefs == nil {
		return
	}
	p, ok, err := g.prefs.Load()
	if err != nil {
		slog.Warn("failed to load prefs", "error", err)
		return
	}
	if !ok || p.ZoomIndex < 0 || p.ZoomIndex >= len(g.cfg.Camera.ZoomScales) {
		return
	}
	scale := g.zoom.Restore(p.ZoomIndex)
	slog.Info("restored zoom", "index", p.ZoomIndex, "scale", scale)
}

// Config returns the configuration the game was built with.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() int64 {
	return g.tick
}

// Player returns the player's transform and sprite.
func (g *Game) Player() (components.Transform, components.Sprite) {
	return *g.transformMap.Get(g.player), *g.spriteMap.Get(g.player)
}

// PlayerState returns the player's movement state.
func (g *Game) PlayerState() movement.State {
	return g.movableMap.Get(g.player).State()
}

// Camera returns the main camera's transform and projection.
func (g *Game) Camera() (components.Transform, components.Projection) {
	return *g.transformMap.Get(g.camera), *g.projectionMap.Get(g.camera)
}

// ZoomIndex returns the position of the current scale in the zoom set.
func (g *Game) ZoomIndex() int {
	return g.zoom.Index()
}

// Collector returns the movement counters.
func (g *Game) Collector() *telemetry.Collector {
	return g.collector
}

// PerfStats returns timing over the current perf window.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// Registry returns system display metadata.
func (g *Game) Registry() *systems.SystemRegistry {
	return g.registry
}

// Close flushes telemetry and closes output files.
func (g *Game) Close() error {
	g.flushCrossings()
	if g.logStats {
		slog.Info("session", "totals", g.collector)
	}
	return g.outputManager.Close()
}
