package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-particles/pkg/collision"
	"github.com/opd-ai/go-particles/pkg/particle"
	"github.com/opd-ai/go-particles/pkg/physics"
	"github.com/opd-ai/go-particles/pkg/spatial"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	require.NotNil(t, config)

	assert.Equal(t, WorldConfig{Width: 1200, Height: 800}, config.World)
	assert.Equal(t, ParticlesConfig{
		Count:     100,
		MinCount:  50,
		MaxCount:  500,
		CountStep: 50,
		MinRadius: 8,
		MaxRadius: 12,
		MaxSpeed:  2,
	}, config.Particles)
	assert.Equal(t, spatial.Config{Capacity: 4, MaxDepth: 8}, config.QuadTree)
	assert.Equal(t, "exhaustive", config.Runtime.Strategy)
	assert.False(t, config.Runtime.ShowPartitions)
	assert.Equal(t, 60, config.Runtime.TickRate)
	assert.Equal(t, RendererTerminal, config.Runtime.Renderer)

	assert.NoError(t, config.Validate())
}

func TestConfig_Derived(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, physics.NewRect(0, 0, 1200, 800), config.Bounds())
	assert.Equal(t, particle.DefaultSpawnConfig(), config.SpawnConfig())

	strategy, err := config.Strategy()
	require.NoError(t, err)
	assert.Equal(t, collision.Exhaustive, strategy)

	config.Runtime.Strategy = "quadtree"
	strategy, err = config.Strategy()
	require.NoError(t, err)
	assert.Equal(t, collision.Indexed, strategy)
}

func TestLoadConfig_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "particles.json")
	data := `{
  "world": {"width": 640, "height": 480},
  "particles": {"count": 200},
  "runtime": {"strategy": "indexed", "showPartitions": true, "seed": 42}
}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, WorldConfig{Width: 640, Height: 480}, config.World)
	assert.Equal(t, 200, config.Particles.Count)
	assert.Equal(t, "indexed", config.Runtime.Strategy)
	assert.True(t, config.Runtime.ShowPartitions)
	assert.Equal(t, uint64(42), config.Runtime.Seed)

	// unspecified values keep their defaults
	assert.Equal(t, 50, config.Particles.MinCount)
	assert.Equal(t, 12.0, config.Particles.MaxRadius)
	assert.Equal(t, spatial.DefaultConfig(), config.QuadTree)
	assert.Equal(t, 60, config.Runtime.TickRate)
	assert.NoError(t, config.Validate())
}

func TestLoadConfig_INI(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{"ini extension", "particles.ini"},
		{"gcfg extension", "particles.gcfg"},
		{"conf extension", "PARTICLES.CONF"},
	}

	data := `; particle viewer
[world]
width = 1600
height = 900

[particles]
count = 250
maxSpeed = 3.5

[quadtree]
capacity = 6
maxdepth = 5

[runtime]
strategy = quadtree
showPartitions = true
renderer = null
seed = 7
`

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

			config, err := LoadConfig(path)
			require.NoError(t, err)

			assert.Equal(t, WorldConfig{Width: 1600, Height: 900}, config.World)
			assert.Equal(t, 250, config.Particles.Count)
			assert.Equal(t, 3.5, config.Particles.MaxSpeed)
			assert.Equal(t, 8.0, config.Particles.MinRadius, "default kept")
			assert.Equal(t, spatial.Config{Capacity: 6, MaxDepth: 5}, config.QuadTree)
			assert.Equal(t, "quadtree", config.Runtime.Strategy)
			assert.True(t, config.Runtime.ShowPartitions)
			assert.Equal(t, RendererNull, config.Runtime.Renderer)
			assert.Equal(t, uint64(7), config.Runtime.Seed)
			assert.NoError(t, config.Validate())
		})
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfig_Malformed(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
	}{
		{"invalid json", "bad.json", `{"world": {"width": }`},
		{"wrong json type", "bad.json", `{"particles": {"count": "many"}}`},
		{"unknown ini section", "bad.ini", "[galaxy]\nplanets = 3\n"},
		{"unknown ini variable", "bad.ini", "[world]\ndepth = 3\n"},
		{"bad ini value", "bad.ini", "[particles]\ncount = lots\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0o644))

			config, err := LoadConfig(path)

			assert.Error(t, err)
			assert.Nil(t, config)
			assert.Contains(t, err.Error(), "failed to parse config file")
		})
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.json")

	original := DefaultConfig()
	original.Particles.Count = 350
	original.Runtime.Strategy = "indexed"
	original.Runtime.Sound = true

	require.NoError(t, SaveConfig(original, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "quadTree")

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestSaveConfig_InvalidPath(t *testing.T) {
	err := SaveConfig(DefaultConfig(), filepath.Join(t.TempDir(), "missing", "dir", "config.json"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write config file")
}

func TestSaveConfig_NilConfig(t *testing.T) {
	err := SaveConfig(nil, filepath.Join(t.TempDir(), "nil.json"))

	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"zero width", func(c *Config) { c.World.Width = 0 }, "world size"},
		{"negative height", func(c *Config) { c.World.Height = -1 }, "world size"},
		{"count below minimum", func(c *Config) { c.Particles.Count = 10 }, "outside"},
		{"count above maximum", func(c *Config) { c.Particles.Count = 501 }, "outside"},
		{"unordered count bounds", func(c *Config) { c.Particles.MinCount = 600 }, "not ordered"},
		{"zero count", func(c *Config) { c.Particles.MinCount, c.Particles.Count = 0, 0 }, "at least 1"},
		{"negative minimum count", func(c *Config) { c.Particles.MinCount = -5 }, "at least 1"},
		{"zero count step", func(c *Config) { c.Particles.CountStep = 0 }, "count step"},
		{"zero radius", func(c *Config) { c.Particles.MinRadius = 0 }, "radius range"},
		{"unordered radii", func(c *Config) { c.Particles.MaxRadius = 4 }, "radius range"},
		{"negative speed", func(c *Config) { c.Particles.MaxSpeed = -1 }, "max speed"},
		{"zero capacity", func(c *Config) { c.QuadTree.Capacity = 0 }, "capacity"},
		{"negative depth", func(c *Config) { c.QuadTree.MaxDepth = -1 }, "max depth"},
		{"unknown strategy", func(c *Config) { c.Runtime.Strategy = "octree" }, "unknown collision strategy"},
		{"zero tick rate", func(c *Config) { c.Runtime.TickRate = 0 }, "tick rate"},
		{"unknown renderer", func(c *Config) { c.Runtime.Renderer = "opengl" }, "unknown renderer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)

			err := config.Validate()

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	config := DefaultConfig()
	config.World.Width = 0
	config.Runtime.Strategy = "octree"

	err := config.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, collision.ErrUnknownStrategy)
	assert.Contains(t, err.Error(), "world size")
}

func TestValidate_Edges(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"count at minimum", func(c *Config) { c.Particles.Count = 50 }},
		{"single particle", func(c *Config) { c.Particles.MinCount, c.Particles.Count = 1, 1 }},
		{"count at maximum", func(c *Config) { c.Particles.Count = 500 }},
		{"equal radii", func(c *Config) { c.Particles.MaxRadius = 8 }},
		{"stationary particles", func(c *Config) { c.Particles.MaxSpeed = 0 }},
		{"max depth zero", func(c *Config) { c.QuadTree.MaxDepth = 0 }},
		{"engo renderer", func(c *Config) { c.Runtime.Renderer = RendererEngo }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)
			assert.NoError(t, config.Validate())
		})
	}
}
