// Package input turns per-tick key state into logical actions.
package input

import (
	"strings"

	"github.com/pthm-cable/gridwalk/config"
	"github.com/pthm-cable/gridwalk/movement"
)

// Action is a logical input independent of physical keys.
type Action uint8

const (
	Left Action = iota
	Right
	Down
	Up
	CycleZoom
	numActions
)

// Actions is a set of actions.
type Actions uint8

// Has reports whether a is in the set.
func (s Actions) Has(a Action) bool {
	return s&(1<<a) != 0
}

// With returns the set with a added.
func (s Actions) With(a Action) Actions {
	return s | 1<<a
}

// Snapshot is the input state for one tick.
type Snapshot struct {
	Pressed     Actions // held this tick
	JustPressed Actions // went down this tick
}

// directionPriority is the order in which simultaneous directions are resolved.
var directionPriority = [...]struct {
	action      Action
	orientation movement.Orientation
}{
	{Left, movement.Left},
	{Right, movement.Right},
	{Down, movement.Down},
	{Up, movement.Up},
}

// Direction returns the single direction honored this tick, if any.
// With held set, a direction that is still down counts; otherwise only a fresh press does.
func (s Snapshot) Direction(held bool) (movement.Orientation, bool) {
	set := s.JustPressed
	if held {
		set |= s.Pressed
	}
	for _, d := range directionPriority {
		if set.Has(d.action) {
			return d.orientation, true
		}
	}
	return 0, false
}

// Tracker derives just-pressed edges from level key state.
type Tracker struct {
	prev Actions
}

// Update records the actions held this tick and returns the snapshot.
func (t *Tracker) Update(down Actions) Snapshot {
	s := Snapshot{
		Pressed:     down,
		JustPressed: down &^ t.prev,
	}
	t.prev = down
	return s
}

// Bindings maps each action to the key names that trigger it.
type Bindings [numActions][]string

// NewBindings builds bindings from the keys section of the config.
func NewBindings(k config.KeysConfig) Bindings {
	var b Bindings
	b[Left] = normalize(k.Left)
	b[Right] = normalize(k.Right)
	b[Down] = normalize(k.Down)
	b[Up] = normalize(k.Up)
	b[CycleZoom] = normalize(k.CycleZoom)
	return b
}

// Keys returns the key names bound to a.
func (b *Bindings) Keys(a Action) []string {
	return b[a]
}

// Poll returns the set of actions with at least one bound key down.
// isDown receives lower-case key names.
func (b *Bindings) Poll(isDown func(name string) bool) Actions {
	var s Actions
	for a := Action(0); a < numActions; a++ {
		for _, name := range b[a] {
			if isDown(name) {
				s = s.With(a)
				break
			}
		}
	}
	return s
}

// Lookup returns the action bound to a key name.
func (b *Bindings) Lookup(name string) (Action, bool) {
	name = strings.ToLower(name)
	for a := Action(0); a < numActions; a++ {
		for _, n := range b[a] {
			if n == name {
				return a, true
			}
		}
	}
	return 0, false
}

func normalize(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}
