package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
)

const (
	DefaultWidth   = 1920
	DefaultHeight  = 1080
	DefaultFPS     = 60
	DefaultDataDir = ".bounce"
)

var (
	ErrUnknownPreset = errors.New("config: unknown preset")
	ErrInvalidAxis   = errors.New("config: vector axis must be an integer or \"random\"")
)

type Config struct {
	Viewport  Viewport       `yaml:"viewport"`
	Seed      int64          `yaml:"seed"`
	FPS       int            `yaml:"fps"`
	Sound     bool           `yaml:"sound"`
	InboxSize int            `yaml:"inbox_size"`
	DataDir   string         `yaml:"data_dir"`
	Spheres   []SphereConfig `yaml:"spheres,omitempty"`
}

type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SphereConfig is one initial spawn. Omitted coordinates and vector axes are
// random, an omitted radius is the default and an omitted colour is white.
type SphereConfig struct {
	X      *float64 `yaml:"x,omitempty"`
	Y      *float64 `yaml:"y,omitempty"`
	Radius float64  `yaml:"radius,omitempty"`
	Color  string   `yaml:"color,omitempty"`
	VX     *Axis    `yaml:"vx,omitempty"`
	VY     *Axis    `yaml:"vy,omitempty"`
}

// Axis is a vector component as written in a session file: an integer or the
// word "random".
type Axis sim.Axis

func (a Axis) MarshalYAML() (any, error) {
	if a.Random {
		return "random", nil
	}
	return a.Value, nil
}

func (a *Axis) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d", ErrInvalidAxis, node.Line)
	}
	v := strings.TrimSpace(node.Value)
	if strings.EqualFold(v, "random") {
		*a = Axis(sim.RandomAxis())
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: line %d: %q", ErrInvalidAxis, node.Line, node.Value)
	}
	*a = Axis(sim.Fixed(n))
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Viewport:  Viewport{Width: DefaultWidth, Height: DefaultHeight},
		FPS:       DefaultFPS,
		InboxSize: sim.DefaultInboxSize,
		DataDir:   DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the values that cannot be clamped. Sphere parameters are
// clamped at spawn and never rejected here, except for unparseable colours.
func (c *Config) Validate() error {
	if !c.Bounds().Valid() || c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("%w: viewport %gx%g", sim.ErrInvalidBounds, c.Viewport.Width, c.Viewport.Height)
	}
	if c.FPS <= 0 {
		c.FPS = DefaultFPS
	}
	_, err := c.SpawnConfigs()
	return err
}

func (c *Config) Bounds() physics.Bounds {
	return physics.NewBounds(c.Viewport.Width, c.Viewport.Height)
}

// SimOptions translates the session settings into simulator options.
func (c *Config) SimOptions() []sim.Option {
	opts := []sim.Option{
		sim.WithBounds(c.Bounds()),
		sim.WithInboxSize(c.InboxSize),
	}
	if c.Seed != 0 {
		opts = append(opts, sim.WithSeed(c.Seed))
	}
	return opts
}

func (c *Config) SpawnConfigs() ([]sim.SpawnConfig, error) {
	out := make([]sim.SpawnConfig, 0, len(c.Spheres))
	for i, sc := range c.Spheres {
		spawn, err := sc.SpawnConfig()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		out = append(out, spawn)
	}
	return out, nil
}

func (sc SphereConfig) SpawnConfig() (sim.SpawnConfig, error) {
	spawn := sim.DefaultSpawnConfig()
	spawn.X, spawn.Y = sc.X, sc.Y
	if sc.Radius != 0 {
		spawn.Radius = sc.Radius
	}
	if sc.Color != "" {
		c, err := sim.ParseColor(sc.Color)
		if err != nil {
			return sim.SpawnConfig{}, err
		}
		spawn.Color = c
	}
	if sc.VX != nil {
		spawn.VX = sim.Axis(*sc.VX)
	}
	if sc.VY != nil {
		spawn.VY = sim.Axis(*sc.VY)
	}
	return spawn.Normalize(), nil
}

// Populate queues every initial sphere on s.
func (c *Config) Populate(s *sim.Simulator) error {
	spawns, err := c.SpawnConfigs()
	if err != nil {
		return err
	}
	for _, spawn := range spawns {
		if _, err := s.Spawn(spawn); err != nil {
			return err
		}
	}
	return nil
}
