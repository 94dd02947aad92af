package game

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pthm-cable/gridwalk/input"
	"github.com/pthm-cable/gridwalk/movement"
)

// ErrBadRoute is returned by ParseRoute for letters other than L, R, U, D.
var ErrBadRoute = errors.New("route may only contain L, R, U, D")

// ParseRoute reads a walk route such as "LLDRU", one tile per letter.
// Spaces are ignored and letters are case-insensitive.
func ParseRoute(s string) ([]movement.Orientation, error) {
	var route []movement.Orientation
	for i, r := range strings.ToUpper(s) {
		switch r {
		case 'L':
			route = append(route, movement.Left)
		case 'R':
			route = append(route, movement.Right)
		case 'U':
			route = append(route, movement.Up)
		case 'D':
			route = append(route, movement.Down)
		case ' ':
		default:
			return nil, fmt.Errorf("%w: %q at %d", ErrBadRoute, r, i)
		}
	}
	return route, nil
}

func actionFor(o movement.Orientation) input.Action {
	switch o {
	case movement.Left:
		return input.Left
	case movement.Right:
		return input.Right
	case movement.Up:
		return input.Up
	default:
		return input.Down
	}
}

// Walk drives the player along route at a fixed frame duration without a window.
// Each direction is pressed for one tick once the player is Idle, then released.
// It stops after maxTicks ticks if maxTicks > 0 and returns the tiles walked.
// A non-positive dt never completes a crossing, so Walk returns 0 without ticking.
func (g *Game) Walk(route []movement.Orientation, dt time.Duration, maxTicks int64) int {
	if dt <= 0 {
		return 0
	}
	start := g.tick
	next := 0
	walked := 0
	pressed := false

	for {
		if maxTicks > 0 && g.tick-start >= maxTicks {
			return walked
		}

		var down input.Actions
		if g.PlayerState() == movement.Idle {
			if pressed {
				walked++
				pressed = false
			}
			if next >= len(route) {
				return walked
			}
			down = down.With(actionFor(route[next]))
			next++
			pressed = true
		}
		g.UpdateKeys(dt, down)
	}
}

// RunIdle advances the game n ticks with no input.
func (g *Game) RunIdle(dt time.Duration, n int64) {
	for i := int64(0); i < n; i++ {
		g.UpdateKeys(dt, 0)
	}
}
