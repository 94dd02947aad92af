// Package terminal is a tcell front end for the map.
package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/gridwalk/game"
	"github.com/pthm-cable/gridwalk/input"
)

// App runs the game in a terminal. Terminals report key presses (with auto
// repeat) rather than key state, so each press counts as pressed for one tick.
type App struct {
	screen   tcell.Screen
	game     *game.Game
	bindings input.Bindings
	view     *View
	frame    time.Duration
	pending  input.Actions
}

// NewApp creates a terminal front end on an initialized screen.
func NewApp(s tcell.Screen, g *game.Game) *App {
	cfg := g.Config()
	fps := cfg.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	return &App{
		screen:   s,
		game:     g,
		bindings: input.NewBindings(cfg.Keys),
		view:     NewView(cfg),
		frame:    time.Second / time.Duration(fps),
	}
}

// HandleEvent queues input from ev. It returns false when the user quits.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isQuit(ev) {
			return false
		}
		if act, ok := a.bindings.Lookup(KeyName(ev)); ok {
			a.pending = a.pending.With(act)
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

// Step runs one tick with the queued presses and redraws.
func (a *App) Step(dt time.Duration) {
	snap := input.Snapshot{Pressed: a.pending, JustPressed: a.pending}
	a.pending = 0
	a.game.Update(dt, snap)
	a.Draw()
}

// Draw renders the current game state.
func (a *App) Draw() {
	camTr, proj := a.game.Camera()
	player, sprite := a.game.Player()
	ts := a.game.Config().Map.TileSize
	status := fmt.Sprintf("tile %.0f,%.0f | %s | zoom %.3f | crossings %d | q quits",
		player.Translation.X/ts, player.Translation.Y/ts,
		a.game.PlayerState(), proj.Scale, a.game.Collector().Crossings())

	a.view.Draw(a.screen, Frame{
		Camera:     camTr,
		Projection: proj,
		Player:     player,
		Sprite:     sprite,
		Status:     status,
	})
}

// Run ticks at the target frame rate until ctx is done or the user quits.
// The caller finalizes the screen, which also stops the event reader.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go a.readEvents(events, done)

	ticker := time.NewTicker(a.frame)
	defer ticker.Stop()

	last := time.Now()
	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !a.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			a.Step(now.Sub(last))
			last = now
		}
	}
}

// readEvents forwards screen events until the screen is finalized or done closes.
func (a *App) readEvents(events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}
