// pkg/particle/population_test.go
package particle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(ps Particles) []ID {
	out := make([]ID, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestNewPopulation(t *testing.T) {
	pop := NewPopulation(5, testBounds, NewSource(1), DefaultSpawnConfig())

	assert.Equal(t, 5, pop.Len())
	assert.Equal(t, []ID{0, 1, 2, 3, 4}, ids(pop.Particles))
	assert.Equal(t, ID(5), pop.NextID())
}

func TestPopulation_Resize(t *testing.T) {
	t.Run("shrink_drops_highest_identities", func(t *testing.T) {
		pop := NewPopulation(6, testBounds, NewSource(1), DefaultSpawnConfig())
		kept := pop.Particles[:3].Clone()

		pop.Resize(3)

		assert.Equal(t, kept, pop.Particles)
		assert.Equal(t, ID(6), pop.NextID())
	})

	t.Run("grow_appends_fresh_identities", func(t *testing.T) {
		pop := NewPopulation(3, testBounds, NewSource(1), DefaultSpawnConfig())
		before := pop.Particles.Clone()

		pop.Resize(5)

		require.Equal(t, 5, pop.Len())
		assert.Equal(t, before, pop.Particles[:3], "existing particles untouched")
		assert.Equal(t, []ID{0, 1, 2, 3, 4}, ids(pop.Particles))
	})

	t.Run("identities_are_never_reused", func(t *testing.T) {
		pop := NewPopulation(4, testBounds, NewSource(1), DefaultSpawnConfig())

		pop.Resize(2)
		pop.Resize(4)

		assert.Equal(t, []ID{0, 1, 4, 5}, ids(pop.Particles))
		assert.Equal(t, ID(6), pop.NextID())
	})

	t.Run("truncated_storage_is_not_overwritten", func(t *testing.T) {
		pop := NewPopulation(4, testBounds, NewSource(1), DefaultSpawnConfig())
		old := pop.Particles

		pop.Resize(2)
		pop.Resize(3)

		assert.Equal(t, ID(2), old[2].ID, "appending after a shrink reallocates")
		assert.Equal(t, ID(4), pop.Particles[2].ID)
	})

	t.Run("negative_count_empties", func(t *testing.T) {
		pop := NewPopulation(4, testBounds, NewSource(1), DefaultSpawnConfig())

		pop.Resize(-1)

		assert.Zero(t, pop.Len())
	})
}

func TestPopulation_Reset(t *testing.T) {
	pop := NewPopulation(4, testBounds, NewSource(1), DefaultSpawnConfig())
	pop.Resize(2)
	pop.Resize(3)

	pop.Reset(3)

	assert.Equal(t, []ID{0, 1, 2}, ids(pop.Particles))
	assert.Equal(t, ID(3), pop.NextID())
}
