// Package config defines the run configuration and its loading.
//
// Values are layered from defaults, an optional YAML file and LIGHTNESS_
// environment variables (see Load), then validated by Resolve into a Plan
// the rest of the program consumes.
package config

import (
	"fmt"
	"strings"

	"github.com/ironsheep/lightness-curve/internal/engine"
	"github.com/ironsheep/lightness-curve/internal/fault"
	"github.com/ironsheep/lightness-curve/internal/metric"
	"github.com/ironsheep/lightness-curve/internal/ordering"
	"github.com/ironsheep/lightness-curve/internal/pixel"
)

// Config contains the raw, unvalidated run configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// InputPath is a directory of images or a single image file.
	InputPath string `koanf:"input_path"`

	// OrderBy selects the sort key: name, created or modified (or 0, 1, 2).
	// Empty keeps directory order.
	OrderBy    string `koanf:"order_by"`
	Descending bool   `koanf:"descending"`

	// Mode is the metric name (mean, hsp, r, g, b, h, s, v) or index 0-7.
	Mode string `koanf:"mode"`

	// ROI; either all four are set or none.
	TopLeftX *int `koanf:"top_left_x"`
	TopLeftY *int `koanf:"top_left_y"`
	Width    *int `koanf:"width"`
	Height   *int `koanf:"height"`

	// Workers is the pool size; 0 means one per CPU.
	Workers int `koanf:"workers"`

	OutputDataPath  string `koanf:"output_data_path"`
	OutputPlotPath  string `koanf:"output_plot_path"`
	MetricsTextfile string `koanf:"metrics_textfile"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel: "info",
		Mode:     metric.Mean.String(),
	}
}

// Plan is a validated Config.
type Plan struct {
	InputPath  string
	OrderBy    ordering.Key
	Descending bool
	Engine     engine.Options

	OutputDataPath  string
	OutputPlotPath  string
	MetricsTextfile string
}

// Resolve validates c and converts it into a Plan. All failures wrap
// fault.ErrConfig.
func (c *Config) Resolve() (*Plan, error) {
	if strings.TrimSpace(c.InputPath) == "" {
		return nil, fmt.Errorf("%w: input_path must not be empty", fault.ErrConfig)
	}

	key, err := ordering.ParseKey(c.OrderBy)
	if err != nil {
		return nil, err
	}
	mode, err := metric.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}
	if c.Workers < 0 {
		return nil, fmt.Errorf("%w: workers must not be negative, got %d", fault.ErrConfig, c.Workers)
	}
	roi, err := c.roi()
	if err != nil {
		return nil, err
	}

	return &Plan{
		InputPath:  c.InputPath,
		OrderBy:    key,
		Descending: c.Descending,
		Engine: engine.Options{
			Mode:    mode,
			ROI:     roi,
			Workers: c.Workers,
		},
		OutputDataPath:  c.OutputDataPath,
		OutputPlotPath:  c.OutputPlotPath,
		MetricsTextfile: c.MetricsTextfile,
	}, nil
}

func (c *Config) roi() (*pixel.Rect, error) {
	fields := []*int{c.TopLeftX, c.TopLeftY, c.Width, c.Height}
	set := 0
	for _, f := range fields {
		if f != nil {
			set++
		}
	}
	switch set {
	case 0:
		return nil, nil
	case len(fields):
	default:
		return nil, fmt.Errorf("%w: top_left_x, top_left_y, width and height must be set together", fault.ErrConfig)
	}

	r := &pixel.Rect{X: *c.TopLeftX, Y: *c.TopLeftY, Width: *c.Width, Height: *c.Height}
	if r.X < 0 || r.Y < 0 {
		return nil, fmt.Errorf("%w: roi origin must not be negative, got %s", fault.ErrConfig, r)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return nil, fmt.Errorf("%w: roi must have a positive size, got %s", fault.ErrConfig, r)
	}
	return r, nil
}
