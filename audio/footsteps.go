// Package audio plays a short tone for each movement substep.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/gridwalk/config"
	"github.com/pthm-cable/gridwalk/telemetry"
)

const sampleRate = beep.SampleRate(44100)

// footstepVolume is the linear gain applied to each tone.
const footstepVolume = 0.25

// Footsteps ticks once per substep. Until Init succeeds every call is a no-op,
// so a missing audio device never affects movement.
type Footsteps struct {
	mu          sync.Mutex
	enabled     bool
	hz          float64
	duration    time.Duration
	mixer       *beep.Mixer
	initialized bool
}

// NewFootsteps creates a player from the audio config section.
func NewFootsteps(cfg config.AudioConfig, toneDuration time.Duration) *Footsteps {
	return &Footsteps{
		enabled:  cfg.Footsteps,
		hz:       cfg.ToneHz,
		duration: toneDuration,
		mixer:    &beep.Mixer{},
	}
}

// Init opens the speaker. Disabled footsteps skip it and return nil.
func (f *Footsteps) Init() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.enabled || f.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(f.mixer)
	f.initialized = true
	return nil
}

// SetEnabled switches footsteps on or off. Turning them on after startup
// still requires Init.
func (f *Footsteps) SetEnabled(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enabled = on
}

// Enabled reports whether footsteps are switched on.
func (f *Footsteps) Enabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enabled
}

// OnEvent plays a tone for each step event.
func (f *Footsteps) OnEvent(ev telemetry.Event) {
	if ev.Type != telemetry.EventStep {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.enabled || !f.initialized {
		return
	}

	tone, err := f.tone()
	if err != nil {
		return
	}
	speaker.Lock()
	f.mixer.Add(tone)
	speaker.Unlock()
}

// Close stops pending tones.
func (f *Footsteps) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.initialized {
		return
	}
	speaker.Lock()
	f.mixer.Clear()
	speaker.Unlock()
	f.initialized = false
}

// tone builds one footstep: a sine of the configured pitch cut to the tone duration.
func (f *Footsteps) tone() (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, f.hz)
	if err != nil {
		return nil, fmt.Errorf("sine tone: %w", err)
	}
	return &effects.Volume{
		Streamer: beep.Take(sampleRate.N(f.duration), sine),
		Base:     2,
		Volume:   math.Log2(footstepVolume),
	}, nil
}
