// Package config provides configuration loading for the hero background.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Camera    CameraConfig    `yaml:"camera"`
	Grid      GridConfig      `yaml:"grid"`
	Colors    ColorsConfig    `yaml:"colors"`
	Shapes    ShapesConfig    `yaml:"shapes"`
	Pointer   PointerConfig   `yaml:"pointer"`
	Force     ForceConfig     `yaml:"force"`
	Opacity   OpacityConfig   `yaml:"opacity"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window and page settings.
type ScreenConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TargetFPS  int    `yaml:"target_fps"`
	HeroHeight int    `yaml:"hero_height"` // 0 = window height
	PageHeight int    `yaml:"page_height"` // 0 = hero only, no scrolling
	Background string `yaml:"background"`
}

// CameraConfig holds the perspective camera settings.
type CameraConfig struct {
	FOV           float64 `yaml:"fov"` // degrees
	Near          float64 `yaml:"near"`
	Far           float64 `yaml:"far"`
	Distance      float64 `yaml:"distance"`
	DriftRange    float64 `yaml:"drift_range"`
	DriftRate     float64 `yaml:"drift_rate"`
	MaxPixelRatio float64 `yaml:"max_pixel_ratio"`
}

// GridConfig holds particle grid topology settings.
type GridConfig struct {
	Columns   int     `yaml:"columns"`
	BaseSize  float64 `yaml:"base_size"`
	LineAlpha float64 `yaml:"line_alpha"`
}

// ColorsConfig holds hex colours for the gradient and glow.
type ColorsConfig struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
	Glow  string `yaml:"glow"`
}

// ShapesConfig holds shape scheduling and transition timing.
type ShapesConfig struct {
	ChangeInterval       float64 `yaml:"change_interval"`
	TimeScale            float64 `yaml:"time_scale"`
	TransitionDuration   float64 `yaml:"transition_duration"`
	FastFinishThreshold  float64 `yaml:"fast_finish_threshold"`
	FastFinishMultiplier float64 `yaml:"fast_finish_multiplier"`
	CompleteThreshold    float64 `yaml:"complete_threshold"`
}

// PointerConfig holds pointer smoothing parameters.
type PointerConfig struct {
	Smoothing       float64 `yaml:"smoothing"`
	Decay           float64 `yaml:"decay"`
	ActiveThreshold float64 `yaml:"active_threshold"`
}

// ForceConfig holds the pointer force field parameters.
type ForceConfig struct {
	MaxDistance     float64 `yaml:"max_distance"`
	Attraction      float64 `yaml:"attraction"`
	Swirl           float64 `yaml:"swirl"`
	Lift            float64 `yaml:"lift"`
	SizeGain        float64 `yaml:"size_gain"`
	RippleFrequency float64 `yaml:"ripple_frequency"`
	RippleSpeed     float64 `yaml:"ripple_speed"`
	RippleBase      float64 `yaml:"ripple_base"`
	RippleAmplitude float64 `yaml:"ripple_amplitude"`
	GlowMix         float64 `yaml:"glow_mix"`
	GlowBoost       float64 `yaml:"glow_boost"`
}

// OpacityConfig holds material opacities.
type OpacityConfig struct {
	Points         float64 `yaml:"points"`
	PointsHover    float64 `yaml:"points_hover"`
	Lines          float64 `yaml:"lines"`
	LinesHover     float64 `yaml:"lines_hover"`
	LinePulse      float64 `yaml:"line_pulse"`
	PointsRotation float64 `yaml:"points_rotation"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"`
	PerfWindow  int     `yaml:"perf_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ColorStart colorful.Color
	ColorEnd   colorful.Color
	ColorGlow  colorful.Color
	Background colorful.Color
}

// Default returns the embedded defaults.
func Default() (*Config, error) {
	return Load("")
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values the engine divides by or sizes buffers from.
func (c *Config) Validate() error {
	var errs []error
	if c.Grid.Columns < 1 {
		errs = append(errs, fmt.Errorf("grid.columns must be >= 1, got %d", c.Grid.Columns))
	}
	if c.Shapes.TransitionDuration <= 0 {
		errs = append(errs, fmt.Errorf("shapes.transition_duration must be > 0, got %g", c.Shapes.TransitionDuration))
	}
	if c.Shapes.ChangeInterval <= 0 {
		errs = append(errs, fmt.Errorf("shapes.change_interval must be > 0, got %g", c.Shapes.ChangeInterval))
	}
	if c.Force.MaxDistance <= 0 {
		errs = append(errs, fmt.Errorf("force.max_distance must be > 0, got %g", c.Force.MaxDistance))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera.fov must be in (0, 180), got %g", c.Camera.FOV))
	}
	if c.Camera.Distance <= 0 {
		errs = append(errs, fmt.Errorf("camera.distance must be > 0, got %g", c.Camera.Distance))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// computeDerived parses colours once so nothing is constructed per frame.
func (c *Config) computeDerived() error {
	parse := func(field, hex string) (colorful.Color, error) {
		col, err := colorful.Hex(hex)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("parsing %s colour %q: %w", field, hex, err)
		}
		return col, nil
	}

	var err error
	if c.Derived.ColorStart, err = parse("colors.start", c.Colors.Start); err != nil {
		return err
	}
	if c.Derived.ColorEnd, err = parse("colors.end", c.Colors.End); err != nil {
		return err
	}
	if c.Derived.ColorGlow, err = parse("colors.glow", c.Colors.Glow); err != nil {
		return err
	}
	if c.Derived.Background, err = parse("screen.background", c.Screen.Background); err != nil {
		return err
	}
	return nil
}

// HeroHeight returns the host section height, defaulting to the window height.
func (c *Config) HeroHeight() int {
	if c.Screen.HeroHeight > 0 {
		return c.Screen.HeroHeight
	}
	return c.Screen.Height
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
