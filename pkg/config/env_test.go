package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	EnvCount,
	EnvStrategy,
	EnvSeed,
	EnvRenderer,
	EnvTickRate,
	EnvShowPartitions,
	EnvSound,
}

// clearEnv blanks every recognised variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
	}
}

func TestApplyEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvCount, "250")
	t.Setenv(EnvStrategy, "QuadTree")
	t.Setenv(EnvSeed, "12345")
	t.Setenv(EnvRenderer, "NULL")
	t.Setenv(EnvTickRate, "30")
	t.Setenv(EnvShowPartitions, "true")
	t.Setenv(EnvSound, "1")

	config := DefaultConfig()
	require.NoError(t, ApplyEnvironmentOverrides(config))

	assert.Equal(t, 250, config.Particles.Count)
	assert.Equal(t, "quadtree", config.Runtime.Strategy)
	assert.Equal(t, uint64(12345), config.Runtime.Seed)
	assert.Equal(t, RendererNull, config.Runtime.Renderer)
	assert.Equal(t, 30, config.Runtime.TickRate)
	assert.True(t, config.Runtime.ShowPartitions)
	assert.True(t, config.Runtime.Sound)
	assert.NoError(t, config.Validate())
}

func TestApplyEnvironmentOverrides_UnsetKeepsValues(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvCount, "   ")

	config := DefaultConfig()
	require.NoError(t, ApplyEnvironmentOverrides(config))

	assert.Equal(t, DefaultConfig(), config)
}

func TestApplyEnvironmentOverrides_Malformed(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{EnvCount, "many"},
		{EnvSeed, "-1"},
		{EnvTickRate, "fast"},
		{EnvShowPartitions, "sometimes"},
		{EnvSound, "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			err := ApplyEnvironmentOverrides(DefaultConfig())

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestApplyEnvironmentOverrides_ValuesStillValidated(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvCount, "5000")
	t.Setenv(EnvStrategy, "octree")

	config := DefaultConfig()
	require.NoError(t, ApplyEnvironmentOverrides(config), "overrides only parse")

	err := config.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside")
	assert.Contains(t, err.Error(), "unknown collision strategy")
}

func TestApplyEnvironmentOverrides_NilConfig(t *testing.T) {
	assert.ErrorIs(t, ApplyEnvironmentOverrides(nil), ErrInvalidConfig)
}
