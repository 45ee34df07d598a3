// pkg/config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables recognised by ApplyEnvironmentOverrides
const (
	EnvCount          = "PARTICLES_COUNT"
	EnvStrategy       = "PARTICLES_STRATEGY"
	EnvSeed           = "PARTICLES_SEED"
	EnvRenderer       = "PARTICLES_RENDERER"
	EnvTickRate       = "PARTICLES_TICK_RATE"
	EnvShowPartitions = "PARTICLES_SHOW_PARTITIONS"
	EnvSound          = "PARTICLES_SOUND"
)

// ApplyEnvironmentOverrides replaces configuration values with those set in
// the environment. Unset variables leave the value alone; malformed ones are
// reported and leave the configuration unchanged for that key.
func ApplyEnvironmentOverrides(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}

	if value, ok := lookupEnv(EnvCount); ok {
		count, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, EnvCount, value, err)
		}
		config.Particles.Count = count
	}

	if value, ok := lookupEnv(EnvStrategy); ok {
		config.Runtime.Strategy = strings.ToLower(value)
	}

	if value, ok := lookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, EnvSeed, value, err)
		}
		config.Runtime.Seed = seed
	}

	if value, ok := lookupEnv(EnvRenderer); ok {
		config.Runtime.Renderer = strings.ToLower(value)
	}

	if value, ok := lookupEnv(EnvTickRate); ok {
		rate, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, EnvTickRate, value, err)
		}
		config.Runtime.TickRate = rate
	}

	if value, ok := lookupEnv(EnvShowPartitions); ok {
		show, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, EnvShowPartitions, value, err)
		}
		config.Runtime.ShowPartitions = show
	}

	if value, ok := lookupEnv(EnvSound); ok {
		sound, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, EnvSound, value, err)
		}
		config.Runtime.Sound = sound
	}

	return nil
}

// lookupEnv treats a variable set to only whitespace as unset
func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}
