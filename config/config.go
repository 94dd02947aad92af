// Package config provides configuration loading and access for the map.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Configuration errors reported by Validate.
var (
	ErrInvalidSteps      = errors.New("movement.steps_per_tile must be at least 1")
	ErrInvalidDuration   = errors.New("movement.seconds_per_tile must be positive")
	ErrInvalidTileSize   = errors.New("map.tile_size must be positive")
	ErrNoZoomScales      = errors.New("camera.zoom_scales must not be empty")
	ErrInvalidZoomScale  = errors.New("camera.zoom_scales entries must be positive")
	ErrInvalidDecayRate  = errors.New("camera.decay_rate must not be negative")
	ErrInvalidWalkFrames = errors.New("sprite.walk_indices must hold exactly two frames")
	ErrInvalidMapSize    = errors.New("map dimensions must be positive")
)

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Map       MapConfig       `yaml:"map"`
	Movement  MovementConfig  `yaml:"movement"`
	Sprite    SpriteConfig    `yaml:"sprite"`
	Camera    CameraConfig    `yaml:"camera"`
	Keys      KeysConfig      `yaml:"keys"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Audio     AudioConfig     `yaml:"audio"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// MapConfig holds the tile grid dimensions.
type MapConfig struct {
	TileSize    float64 `yaml:"tile_size"`    // world units per tile
	WidthTiles  int     `yaml:"width_tiles"`  // drawn grid width
	HeightTiles int     `yaml:"height_tiles"` // drawn grid height
}

// MovementConfig holds tile crossing timing.
type MovementConfig struct {
	SecondsPerTile float64 `yaml:"seconds_per_tile"`
	StepsPerTile   int     `yaml:"steps_per_tile"`
	HoldToRepeat   bool    `yaml:"hold_to_repeat"`  // held direction starts the next crossing
	CarryOvershoot bool    `yaml:"carry_overshoot"` // keep time past the last substep
}

// SpriteConfig holds sprite sheet frame layout.
type SpriteConfig struct {
	Size        float64 `yaml:"size"`
	DownIndex   int     `yaml:"down_index"`
	UpIndex     int     `yaml:"up_index"`
	WalkIndices []int   `yaml:"walk_indices"`
}

// CameraConfig holds camera follow and zoom settings.
type CameraConfig struct {
	DecayRate  float64   `yaml:"decay_rate"`  // higher = snappier follow
	ZoomScales []float64 `yaml:"zoom_scales"` // projection scales cycled by the zoom key; first is the default
}

// KeysConfig maps logical actions to key names.
type KeysConfig struct {
	Left      []string `yaml:"left"`
	Right     []string `yaml:"right"`
	Down      []string `yaml:"down"`
	Up        []string `yaml:"up"`
	CycleZoom []string `yaml:"cycle_zoom"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow int `yaml:"perf_window"` // ticks averaged by the perf collector
}

// AudioConfig holds footstep sound settings.
type AudioConfig struct {
	Footsteps bool    `yaml:"footsteps"`
	ToneHz    float64 `yaml:"tone_hz"`
	ToneMs    int     `yaml:"tone_ms"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TileDuration time.Duration // Movement.SecondsPerTile
	StepInterval time.Duration // TileDuration / StepsPerTile
	ToneDuration time.Duration // Audio.ToneMs
	DefaultScale float64       // first zoom scale
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return Parse(data)
}

// Parse merges YAML data over the embedded defaults, validates the result
// and computes derived values.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if len(data) > 0 {
		// Unmarshal into same struct - only overwrites fields present in data
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.computeDerived()
	return cfg, nil
}

// Validate reports every configuration error, joined.
func (c *Config) Validate() error {
	var errs []error
	if c.Movement.StepsPerTile < 1 {
		errs = append(errs, fmt.Errorf("%w (got %d)", ErrInvalidSteps, c.Movement.StepsPerTile))
	}
	if c.Movement.SecondsPerTile <= 0 {
		errs = append(errs, fmt.Errorf("%w (got %v)", ErrInvalidDuration, c.Movement.SecondsPerTile))
	}
	if c.Map.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("%w (got %v)", ErrInvalidTileSize, c.Map.TileSize))
	}
	if c.Map.WidthTiles <= 0 || c.Map.HeightTiles <= 0 {
		errs = append(errs, fmt.Errorf("%w (got %dx%d)", ErrInvalidMapSize, c.Map.WidthTiles, c.Map.HeightTiles))
	}
	if len(c.Camera.ZoomScales) == 0 {
		errs = append(errs, ErrNoZoomScales)
	}
	for i, s := range c.Camera.ZoomScales {
		if s <= 0 {
			errs = append(errs, fmt.Errorf("%w (index %d is %v)", ErrInvalidZoomScale, i, s))
		}
	}
	if c.Camera.DecayRate < 0 {
		errs = append(errs, fmt.Errorf("%w (got %v)", ErrInvalidDecayRate, c.Camera.DecayRate))
	}
	if len(c.Sprite.WalkIndices) != 2 {
		errs = append(errs, fmt.Errorf("%w (got %d)", ErrInvalidWalkFrames, len(c.Sprite.WalkIndices)))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.TileDuration = time.Duration(c.Movement.SecondsPerTile * float64(time.Second))
	c.Derived.StepInterval = c.Derived.TileDuration / time.Duration(c.Movement.StepsPerTile)
	c.Derived.ToneDuration = time.Duration(c.Audio.ToneMs) * time.Millisecond
	c.Derived.DefaultScale = c.Camera.ZoomScales[0]
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
