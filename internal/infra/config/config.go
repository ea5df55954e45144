// Package config provides configuration loading from YAML files.
package config

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"spindle/internal/domain/station"
)

// Config represents the application configuration.
type Config struct {
	MPD         MPDConfig         `yaml:"mpd"`
	Input       InputConfig       `yaml:"input"`
	Display     DisplayConfig     `yaml:"display"`
	Coordinator CoordinatorConfig `yaml:"coordinator"`
	Stations    []StationConfig   `yaml:"stations" validate:"required,min=1,dive"`
}

// MPDConfig represents the playback daemon connection configuration.
type MPDConfig struct {
	Addr             string `yaml:"addr" default:"localhost:6600"`
	CommandTimeoutMs int    `yaml:"command_timeout_ms" default:"2000" validate:"gte=100,lte=10000"`
}

// CommandTimeout returns the daemon command timeout as a duration.
func (c MPDConfig) CommandTimeout() time.Duration {
	return time.Duration(c.CommandTimeoutMs) * time.Millisecond
}

// InputConfig selects the input backend. Settings is backend specific and
// decoded by the backend itself.
type InputConfig struct {
	Backend  string         `yaml:"backend" default:"gpio"`
	Settings map[string]any `yaml:"settings"`
}

// DisplayConfig selects the display driver. Settings is driver specific
// and decoded by the driver itself.
type DisplayConfig struct {
	Driver   string         `yaml:"driver" default:"waveshare2in13v4"`
	Settings map[string]any `yaml:"settings"`
}

// CoordinatorConfig represents the control loop configuration.
type CoordinatorConfig struct {
	StatusPollMs   int `yaml:"status_poll_ms" default:"500" validate:"gte=100,lte=10000"`
	VolumeStep     int `yaml:"volume_step" default:"5" validate:"gte=1,lte=25"`
	VolumeIdleMs   int `yaml:"volume_idle_ms" default:"3000" validate:"gte=500,lte=30000"`
	ErrorOverlayMs int `yaml:"error_overlay_ms" default:"5000" validate:"gte=500,lte=60000"`
	IdleClockSec   int `yaml:"idle_clock_sec" default:"30" validate:"gte=5"`

	// LivePreview selects whether rotating while playing retunes the
	// daemon immediately, or drops back to browsing for a two-step
	// rotate-then-click confirm.
	LivePreview *bool `yaml:"live_preview" default:"true"`

	// Autoplay starts playback of the first station at boot instead of
	// waiting in the browse screen.
	Autoplay bool `yaml:"autoplay"`
}

// StatusPoll returns the daemon status poll interval.
func (c CoordinatorConfig) StatusPoll() time.Duration {
	return time.Duration(c.StatusPollMs) * time.Millisecond
}

// VolumeIdle returns the volume-mode idle timeout.
func (c CoordinatorConfig) VolumeIdle() time.Duration {
	return time.Duration(c.VolumeIdleMs) * time.Millisecond
}

// ErrorOverlay returns how long an error overlay stays up without input.
func (c CoordinatorConfig) ErrorOverlay() time.Duration {
	return time.Duration(c.ErrorOverlayMs) * time.Millisecond
}

// IdleClock returns the idle period after which the title bar clock shows.
func (c CoordinatorConfig) IdleClock() time.Duration {
	return time.Duration(c.IdleClockSec) * time.Second
}

// IsLivePreview reports the live-preview setting.
func (c CoordinatorConfig) IsLivePreview() bool {
	return c.LivePreview == nil || *c.LivePreview
}

// StationConfig represents one station list entry.
type StationConfig struct {
	Name      string `yaml:"name" validate:"required"`
	StreamURI string `yaml:"stream_uri" validate:"required,url"`
}

// Load loads configuration from a YAML file.
// Environment variables take precedence over file values for
// host-specific fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	cfg.overrideFromEnv()

	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("MPD_ADDR"); v != "" {
		c.MPD.Addr = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}

// StationList builds the immutable station list from the configuration.
func (c *Config) StationList() station.List {
	stations := make([]station.Station, len(c.Stations))
	for i, s := range c.Stations {
		stations[i] = station.Station{Name: s.Name, StreamURI: s.StreamURI}
	}
	return station.NewList(stations)
}
