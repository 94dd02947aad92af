package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/gridwalk/components"
	"github.com/pthm-cable/gridwalk/config"
	"github.com/pthm-cable/gridwalk/game"
	"github.com/pthm-cable/gridwalk/movement"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func newTestApp(t *testing.T, s tcell.Screen) (*App, *game.Game) {
	t.Helper()
	g, err := game.New(config.Default(), game.Options{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { g.Close() })
	return NewApp(s, g), g
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), "a"},
		{tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModShift), "w"},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), "space"},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), "left"},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), "down"},
		{tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), ""},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := KeyName(tt.ev); got != tt.want {
				t.Errorf("KeyName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGlyph(t *testing.T) {
	v := NewView(config.Default())
	tests := []struct {
		name  string
		frame int
		flip  bool
		want  rune
	}{
		{"down", 0, false, 'v'},
		{"down flipped", 0, true, 'v'},
		{"up", 1, false, '^'},
		{"walk left", 2, false, '<'},
		{"walk right", 3, true, '>'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sprite := components.Sprite{Atlas: &components.Atlas{Index: tt.frame}, FlipX: tt.flip}
			if got := v.Glyph(sprite); got != tt.want {
				t.Errorf("Glyph = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDraw_PlayerAtCenter(t *testing.T) {
	s := newSimScreen(t, 40, 21)
	app, _ := newTestApp(t, s)

	app.Draw()

	r, _, _, _ := s.GetContent(20, 10)
	if r != 'v' {
		t.Errorf("center cell = %q, want player glyph 'v'", r)
	}
	r, _, _, _ = s.GetContent(1, 0)
	if r != 't' {
		t.Errorf("status line should start with the tile readout, got %q", r)
	}
}

func TestHandleEvent_QueuesPress(t *testing.T) {
	s := newSimScreen(t, 40, 21)
	app, g := newTestApp(t, s)

	if !app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)) {
		t.Fatal("a should not quit")
	}
	app.Step(time.Second / 60)
	if g.PlayerState() != movement.Moving {
		t.Fatal("queued press should start a crossing")
	}

	for i := 0; i < 10; i++ {
		app.Step(time.Second / 60)
	}
	tr, sprite := g.Player()
	if tr.Translation.X != -16 {
		t.Errorf("X = %.3f, want -16", tr.Translation.X)
	}
	if got := app.view.Glyph(sprite); got != '<' {
		t.Errorf("glyph after walking left = %q, want '<'", got)
	}
}

func TestHandleEvent_Quit(t *testing.T) {
	s := newSimScreen(t, 10, 5)
	app, _ := newTestApp(t, s)

	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
	} {
		if app.HandleEvent(ev) {
			t.Errorf("%v should quit", ev.Name())
		}
	}
}

func TestReadEvents_StopsWhenDone(t *testing.T) {
	s := newSimScreen(t, 10, 5)
	app, _ := newTestApp(t, s)

	events := make(chan tcell.Event)
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		app.readEvents(events, done)
		close(finished)
	}()

	close(done)
	if err := s.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)); err != nil {
		t.Fatalf("PostEvent: %v", err)
	}

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("event reader still blocked after done closed")
	}
	if _, ok := <-events; ok {
		t.Error("events should be closed")
	}
}
