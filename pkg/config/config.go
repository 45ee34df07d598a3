// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/opd-ai/go-particles/pkg/collision"
	"github.com/opd-ai/go-particles/pkg/particle"
	"github.com/opd-ai/go-particles/pkg/physics"
	"github.com/opd-ai/go-particles/pkg/spatial"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Renderer names accepted by RuntimeConfig.Renderer
const (
	RendererTerminal = "terminal"
	RendererEngo     = "engo"
	RendererNull     = "null"
)

// Config contains configuration for a particle simulation.
// The same structure is read from JSON or from an INI style gcfg file, where
// each section below is a [section] and keys match field names.
type Config struct {
	World     WorldConfig     `json:"world"`
	Particles ParticlesConfig `json:"particles"`
	QuadTree  spatial.Config  `json:"quadTree"`
	Runtime   RuntimeConfig   `json:"runtime"`
}

// WorldConfig is the size of the rectangular domain, anchored at the origin
type WorldConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ParticlesConfig controls the population and how particles are spawned
type ParticlesConfig struct {
	Count     int     `json:"count"`
	MinCount  int     `json:"minCount"`
	MaxCount  int     `json:"maxCount"`
	CountStep int     `json:"countStep"`
	MinRadius float64 `json:"minRadius"`
	MaxRadius float64 `json:"maxRadius"`
	MaxSpeed  float64 `json:"maxSpeed"`
}

// RuntimeConfig holds the initial interactive settings
type RuntimeConfig struct {
	Strategy       string `json:"strategy"`
	ShowPartitions bool   `json:"showPartitions"`
	TickRate       int    `json:"tickRate"`
	// Seed 0 means seed from the clock at startup.
	Seed     uint64 `json:"seed"`
	Renderer string `json:"renderer"`
	Sound    bool   `json:"sound"`
}

// DefaultConfig returns a default simulation configuration: a 1200x800 world
// with 100 particles, brute force detection and 60 ticks per second.
func DefaultConfig() *Config {
	return &Config{
		World: WorldConfig{
			Width:  1200,
			Height: 800,
		},
		Particles: ParticlesConfig{
			Count:     100,
			MinCount:  50,
			MaxCount:  500,
			CountStep: 50,
			MinRadius: 8,
			MaxRadius: 12,
			MaxSpeed:  2,
		},
		QuadTree: spatial.DefaultConfig(),
		Runtime: RuntimeConfig{
			Strategy:       collision.Exhaustive.String(),
			ShowPartitions: false,
			TickRate:       60,
			Seed:           0,
			Renderer:       RendererTerminal,
			Sound:          false,
		},
	}
}

// Bounds returns the simulation domain
func (c *Config) Bounds() physics.Rect {
	return physics.NewRect(0, 0, c.World.Width, c.World.Height)
}

// SpawnConfig returns the particle spawn parameters
func (c *Config) SpawnConfig() particle.SpawnConfig {
	return particle.SpawnConfig{
		MinRadius: c.Particles.MinRadius,
		MaxRadius: c.Particles.MaxRadius,
		MaxSpeed:  c.Particles.MaxSpeed,
	}
}

// Strategy returns the configured collision strategy
func (c *Config) Strategy() (collision.Strategy, error) {
	return collision.ParseStrategy(c.Runtime.Strategy)
}

// LoadConfig loads a configuration from a file on top of DefaultConfig.
// Files ending in .ini, .gcfg or .conf are read with gcfg, anything else as JSON.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini", ".gcfg", ".conf":
		if err := gcfg.ReadStringInto(config, string(data)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	return config, nil
}

// SaveConfig saves a configuration to a file as indented JSON
func SaveConfig(config *Config, path string) error {
	if config == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the configuration once, before a simulation is built
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.World.Width <= 0 || c.World.Height <= 0 {
		invalid("world size must be positive, got %gx%g", c.World.Width, c.World.Height)
	}

	p := c.Particles
	if p.MinCount < 1 {
		invalid("minimum particle count must be at least 1, got %d", p.MinCount)
	} else if p.MinCount > p.MaxCount {
		invalid("particle count bounds [%d, %d] are not ordered", p.MinCount, p.MaxCount)
	}
	if p.Count < p.MinCount || p.Count > p.MaxCount {
		invalid("particle count %d outside [%d, %d]", p.Count, p.MinCount, p.MaxCount)
	}
	if p.CountStep <= 0 {
		invalid("count step must be positive, got %d", p.CountStep)
	}
	if p.MinRadius <= 0 || p.MaxRadius < p.MinRadius {
		invalid("radius range [%g, %g] must be positive and ordered", p.MinRadius, p.MaxRadius)
	}
	if p.MaxSpeed < 0 {
		invalid("max speed must not be negative, got %g", p.MaxSpeed)
	}

	if c.QuadTree.Capacity < 1 {
		invalid("quadtree capacity must be at least 1, got %d", c.QuadTree.Capacity)
	}
	if c.QuadTree.MaxDepth < 0 {
		invalid("quadtree max depth must not be negative, got %d", c.QuadTree.MaxDepth)
	}

	if _, err := c.Strategy(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}
	if c.Runtime.TickRate <= 0 {
		invalid("tick rate must be positive, got %d", c.Runtime.TickRate)
	}
	switch c.Runtime.Renderer {
	case RendererTerminal, RendererEngo, RendererNull:
	default:
		invalid("unknown renderer %q", c.Runtime.Renderer)
	}

	return errors.Join(errs...)
}
