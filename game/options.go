package game

import (
	"github.com/pthm-cable/gridwalk/prefs"
	"github.com/pthm-cable/gridwalk/telemetry"
)

// Options configures a Game beyond the loaded config.
type Options struct {
	// OutputDir receives config.yaml, crossings.csv and perf.csv. Empty disables output.
	OutputDir string

	// LogStats logs perf windows and crossing totals via slog.
	LogStats bool

	// Prefs restores the last zoom at start and saves zoom changes. Nil disables it.
	Prefs *prefs.Store

	// OnEvent is called for every event after the tick's systems ran.
	OnEvent func(telemetry.Event)
}
