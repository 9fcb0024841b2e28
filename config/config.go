// Package config loads the simulation setup from YAML with MANEGE_* environment overrides
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/manege/core"
	"github.com/lixenwraith/manege/engine"
	"github.com/lixenwraith/manege/parameter"
	"github.com/lixenwraith/manege/render"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// EntityConfig describes one entity created at startup
type EntityConfig struct {
	Name     string   `yaml:"name"`
	Color    string   `yaml:"color"` // "#rrggbb"
	Position float64  `yaml:"position"`
	Speed    float64  `yaml:"speed"`
	Width    float64  `yaml:"width"`   // 0 keeps the default
	Opacity  *float64 `yaml:"opacity"` // nil keeps the default
	ZIndex   int      `yaml:"zindex"`
	Hidden   bool     `yaml:"hidden"`
}

// AudioConfig controls collision sounds
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 - 1.0
}

// Config is the full startup configuration
type Config struct {
	Size                int            `yaml:"size"`
	Bounds              string         `yaml:"bounds"` // clip | wrap
	LongCollisionMs     int            `yaml:"long_collision_ms"`
	WrapAwareCollisions bool           `yaml:"wrap_aware_collisions"`
	TickMs              int            `yaml:"tick_ms"`
	Blend               string         `yaml:"blend"` // alpha | add | max
	Seed                uint64         `yaml:"seed"`  // 0 seeds from the clock
	Audio               AudioConfig    `yaml:"audio"`
	Entities            []EntityConfig `yaml:"entities"`
}

// Default returns the two entity chase setup on a 30 cell ring
func Default() *Config {
	return &Config{
		Size:            parameter.DefaultStripSize,
		Bounds:          core.Wrap.String(),
		LongCollisionMs: int(parameter.DefaultLongCollision / time.Millisecond),
		TickMs:          int(parameter.TickInterval / time.Millisecond),
		Blend:           "alpha",
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Entities: []EntityConfig{
			{Name: "player", Color: "#00ff00", Position: 16.5, ZIndex: 1},
			{Name: "enemy", Color: "#ff0000", Position: 0},
		},
	}
}

// Load reads, overrides from the environment, and validates a YAML file
// An empty path yields the defaults with environment overrides
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
		cfg, err = Parse(data)
		if err != nil {
			return nil, errors.Wrapf(err, "config %s", path)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults, an entities list replaces the default one
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML")
	}
	return cfg, nil
}

// ApplyEnv overrides fields from MANEGE_* variables
// Malformed values are errors rather than silently ignored
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("MANEGE_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "MANEGE_SIZE")
		}
		c.Size = n
	}
	if v, ok := lookup("MANEGE_BOUNDS"); ok {
		c.Bounds = v
	}
	if v, ok := lookup("MANEGE_LONG_COLLISION_MS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "MANEGE_LONG_COLLISION_MS")
		}
		c.LongCollisionMs = n
	}
	if v, ok := lookup("MANEGE_BLEND"); ok {
		c.Blend = v
	}
	if v, ok := lookup("MANEGE_AUDIO_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, "MANEGE_AUDIO_ENABLED")
		}
		c.Audio.Enabled = b
	}
	if v, ok := lookup("MANEGE_VOLUME"); ok {
		// 0-100 as a percentage
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "MANEGE_VOLUME")
		}
		c.Audio.Volume = min(1, max(0, float64(n)/100))
	}
	return nil
}

// Validate reports the first unusable field
func (c *Config) Validate() error {
	if c.Size <= 0 {
		return errors.Wrapf(ErrInvalid, "size must be positive, got %d", c.Size)
	}
	if _, err := core.ParseBoundsMode(c.Bounds); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	if c.LongCollisionMs < 0 {
		return errors.Wrapf(ErrInvalid, "long_collision_ms cannot be negative, got %d", c.LongCollisionMs)
	}
	if c.TickMs < 0 {
		return errors.Wrapf(ErrInvalid, "tick_ms cannot be negative, got %d", c.TickMs)
	}
	if _, ok := render.ParseBlendMode(c.Blend); !ok {
		return errors.Wrapf(ErrInvalid, "blend must be one of alpha, add, max, got %q", c.Blend)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return errors.Wrapf(ErrInvalid, "audio volume must be within [0,1], got %v", c.Audio.Volume)
	}

	names := make(map[string]bool, len(c.Entities))
	for i, e := range c.Entities {
		if _, err := core.ParseHex(e.Color); err != nil {
			return errors.Wrapf(ErrInvalid, "entity %d: %v", i, err)
		}
		if e.Width < 0 {
			return errors.Wrapf(ErrInvalid, "entity %d: width cannot be negative, got %v", i, e.Width)
		}
		if e.Name != "" {
			if names[e.Name] {
				return errors.Wrapf(ErrInvalid, "entity %d: duplicate name %q", i, e.Name)
			}
			names[e.Name] = true
		}
	}
	return nil
}

// Engine converts to the world settings
func (c *Config) Engine() (engine.Config, error) {
	bounds, err := core.ParseBoundsMode(c.Bounds)
	if err != nil {
		return engine.Config{}, errors.Wrap(ErrInvalid, err.Error())
	}
	return engine.Config{
		Size:                c.Size,
		Bounds:              bounds,
		LongCollision:       time.Duration(c.LongCollisionMs) * time.Millisecond,
		WrapAwareCollisions: c.WrapAwareCollisions,
	}, nil
}

// BlendMode returns the configured compositor mode
func (c *Config) BlendMode() render.BlendMode {
	m, _ := render.ParseBlendMode(c.Blend)
	return m
}

// TickInterval returns the scheduler period, 0 selects the default
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickMs) * time.Millisecond
}
