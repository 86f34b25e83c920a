package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNG(t *testing.T) {
	t.Run("Deterministic", func(t *testing.T) {
		a := NewRNG(7).UniformVectors(10, 4)
		b := NewRNG(7).UniformVectors(10, 4)
		assert.Equal(t, a, b)
	})

	t.Run("Reset", func(t *testing.T) {
		rng := NewRNG(7)
		first := rng.Float64()
		rng.Reset()
		assert.Equal(t, first, rng.Float64())
		assert.Equal(t, int64(7), rng.Seed())
	})

	t.Run("FillUniformRange", func(t *testing.T) {
		rng := NewRNG(1)
		dst := make([]float64, 100)
		rng.FillUniformRange(dst, -2, 2)
		for _, v := range dst {
			assert.GreaterOrEqual(t, v, -2.0)
			assert.Less(t, v, 2.0)
		}
	})
}

func TestWalks(t *testing.T) {
	start := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("RandomWalk", func(t *testing.T) {
		traj := NewRNG(3).RandomWalk("obj", start, 20, 5, time.Minute)
		require.Equal(t, 20, traj.Len())
		assert.Equal(t, "obj", traj.ObjectID())
		for i := 1; i < traj.Len(); i++ {
			assert.False(t, traj.At(i).Timestamp.Before(traj.At(i-1).Timestamp))
		}
	})

	t.Run("TerrestrialWalk", func(t *testing.T) {
		traj := NewRNG(3).TerrestrialWalk("obj", start, 10, 12, 45, 0.1, time.Minute)
		require.Equal(t, 10, traj.Len())
		first := traj.First()
		assert.Equal(t, 12.0, first.Lon())
		assert.Equal(t, 45.0, first.Lat())
	})
}
