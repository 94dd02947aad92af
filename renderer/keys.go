package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gridwalk/input"
)

// keyCodes maps lowercased config key names to raylib keys.
var keyCodes = map[string]int32{
	"a": rl.KeyA, "b": rl.KeyB, "c": rl.KeyC, "d": rl.KeyD, "e": rl.KeyE,
	"f": rl.KeyF, "g": rl.KeyG, "h": rl.KeyH, "i": rl.KeyI, "j": rl.KeyJ,
	"k": rl.KeyK, "l": rl.KeyL, "m": rl.KeyM, "n": rl.KeyN, "o": rl.KeyO,
	"p": rl.KeyP, "q": rl.KeyQ, "r": rl.KeyR, "s": rl.KeyS, "t": rl.KeyT,
	"u": rl.KeyU, "v": rl.KeyV, "w": rl.KeyW, "x": rl.KeyX, "y": rl.KeyY,
	"z": rl.KeyZ,

	"left":  rl.KeyLeft,
	"right": rl.KeyRight,
	"up":    rl.KeyUp,
	"down":  rl.KeyDown,
	"space": rl.KeySpace,
	"enter": rl.KeyEnter,
	"tab":   rl.KeyTab,
}

// KeyCode returns the raylib key for a config key name.
func KeyCode(name string) (int32, bool) {
	code, ok := keyCodes[name]
	return code, ok
}

// PollActions returns the actions whose bound keys are held this frame.
// Unknown key names never match.
func PollActions(b *input.Bindings) input.Actions {
	return b.Poll(func(name string) bool {
		code, ok := keyCodes[name]
		return ok && rl.IsKeyDown(code)
	})
}
