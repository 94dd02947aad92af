package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// specialKeys names the non-rune keys usable in key bindings.
var specialKeys = map[tcell.Key]string{
	tcell.KeyLeft:  "left",
	tcell.KeyRight: "right",
	tcell.KeyUp:    "up",
	tcell.KeyDown:  "down",
	tcell.KeyEnter: "enter",
	tcell.KeyTab:   "tab",
}

// KeyName returns the lower-case config name for a key event, or "" if it has none.
func KeyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r == ' ' {
			return "space"
		}
		return string(unicode.ToLower(r))
	}
	return specialKeys[ev.Key()]
}

// isQuit reports whether ev should end the session.
func isQuit(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
		(ev.Key() == tcell.KeyRune && ev.Rune() == 'q')
}
