package assemble

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandialabs/tracktable-sub003/point"
)

func terrestrialAt(objectID string, lon, lat float64, minute int) point.Point {
	return point.MustNew(point.Terrestrial, lon, lat).
		WithObjectID(objectID).
		WithTimestamp(time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(minute) * time.Minute))
}

func TestAssembler(t *testing.T) {
	t.Run("TemporalGapSplits", func(t *testing.T) {
		// A 21-minute gap exceeds the 20-minute separation time.
		asm, err := New(func(o *Options) {
			o.SeparationTime = 20 * time.Minute
			o.MinimumLength = 2
		})
		require.NoError(t, err)

		stream := []point.Point{
			terrestrialAt("a", 0.00, 0, 0),
			terrestrialAt("a", 0.01, 0, 5),
			terrestrialAt("a", 0.02, 0, 10),
			terrestrialAt("a", 0.03, 0, 15),
			terrestrialAt("a", 0.04, 0, 36), // 21 minutes after the previous point
			terrestrialAt("a", 0.05, 0, 41),
		}

		trajs, err := asm.Assemble(slices.Values(stream))
		require.NoError(t, err)
		require.Len(t, trajs, 2)
		assert.Equal(t, 4, trajs[0].Len())
		assert.Equal(t, 2, trajs[1].Len())
		// The triggering point starts the second trajectory.
		assert.Equal(t, 0.04, trajs[1].First().Lon())
	})

	t.Run("SpatialGapSplits", func(t *testing.T) {
		asm, err := New(func(o *Options) {
			o.SeparationDistance = 100 // km
			o.SeparationTime = time.Hour
			o.MinimumLength = 2
		})
		require.NoError(t, err)

		stream := []point.Point{
			terrestrialAt("a", 0.0, 0, 0),
			terrestrialAt("a", 0.1, 0, 5),
			terrestrialAt("a", 2.0, 0, 10), // >200 km jump
			terrestrialAt("a", 2.1, 0, 15),
		}

		trajs, err := asm.Assemble(slices.Values(stream))
		require.NoError(t, err)
		require.Len(t, trajs, 2)
		assert.Equal(t, 2, trajs[0].Len())
		assert.Equal(t, 2, trajs[1].Len())
	})

	t.Run("MinimumLengthDropsShortTrajectories", func(t *testing.T) {
		asm, err := New(func(o *Options) {
			o.SeparationTime = 20 * time.Minute
			o.MinimumLength = 3
		})
		require.NoError(t, err)

		stream := []point.Point{
			terrestrialAt("a", 0.00, 0, 0),
			terrestrialAt("a", 0.01, 0, 5),
			terrestrialAt("a", 0.02, 0, 10),
			terrestrialAt("a", 0.03, 0, 60), // split: first trajectory has 3 points
			terrestrialAt("a", 0.04, 0, 65), // tail has only 2, dropped at flush
		}

		trajs, err := asm.Assemble(slices.Values(stream))
		require.NoError(t, err)
		require.Len(t, trajs, 1)
		assert.Equal(t, 3, trajs[0].Len())
	})

	t.Run("FlushEmitsInProgress", func(t *testing.T) {
		asm, err := New()
		require.NoError(t, err)

		_, err = asm.Push(terrestrialAt("a", 0, 0, 0))
		require.NoError(t, err)
		_, err = asm.Push(terrestrialAt("a", 0.01, 0, 1))
		require.NoError(t, err)

		trajs := asm.Flush()
		require.Len(t, trajs, 1)
		assert.Equal(t, 2, trajs[0].Len())

		// Flush resets the assembler.
		assert.Empty(t, asm.Flush())
	})

	t.Run("InterleavedObjects", func(t *testing.T) {
		asm, err := New()
		require.NoError(t, err)

		stream := []point.Point{
			terrestrialAt("a", 0.00, 0, 0),
			terrestrialAt("b", 5.00, 5, 0),
			terrestrialAt("a", 0.01, 0, 1),
			terrestrialAt("b", 5.01, 5, 1),
			terrestrialAt("a", 0.02, 0, 2),
		}

		trajs, err := asm.Assemble(slices.Values(stream))
		require.NoError(t, err)
		require.Len(t, trajs, 2)
		assert.Equal(t, "a", trajs[0].ObjectID())
		assert.Equal(t, 3, trajs[0].Len())
		assert.Equal(t, "b", trajs[1].ObjectID())
		assert.Equal(t, 2, trajs[1].Len())
	})

	t.Run("TrajectoryProperties", func(t *testing.T) {
		asm, err := New()
		require.NoError(t, err)

		stream := []point.Point{
			terrestrialAt("a", 0.00, 0, 0),
			terrestrialAt("a", 0.01, 0, 1),
			terrestrialAt("a", 0.02, 0, 60), // split
			terrestrialAt("a", 0.03, 0, 61),
		}

		trajs, err := asm.Assemble(slices.Values(stream))
		require.NoError(t, err)
		require.Len(t, trajs, 2)

		objID, ok := trajs[0].Property("object_id")
		require.True(t, ok)
		assert.Equal(t, "a", objID.Str)

		first, ok := trajs[0].Property("trajectory_id")
		require.True(t, ok)
		second, ok := trajs[1].Property("trajectory_id")
		require.True(t, ok)
		assert.NotEmpty(t, first.Str)
		assert.NotEqual(t, first.Str, second.Str)
	})

	t.Run("SkipMalformed", func(t *testing.T) {
		asm, err := New(func(o *Options) { o.OnMalformed = SkipMalformed })
		require.NoError(t, err)

		stream := []point.Point{
			terrestrialAt("a", 0.00, 0, 10),
			terrestrialAt("", 0.01, 0, 11),  // missing object id
			terrestrialAt("a", 0.02, 0, 5),  // timestamp regression
			point.MustNew(point.Terrestrial, 0.03, 0).WithObjectID("a"), // missing timestamp
			terrestrialAt("a", 0.04, 0, 12),
		}

		trajs, err := asm.Assemble(slices.Values(stream))
		require.NoError(t, err)
		assert.Equal(t, 3, asm.Skipped())
		require.Len(t, trajs, 1)
		assert.Equal(t, 2, trajs[0].Len())
	})

	t.Run("AbortOnMalformed", func(t *testing.T) {
		asm, err := New(func(o *Options) { o.OnMalformed = AbortOnMalformed })
		require.NoError(t, err)

		stream := []point.Point{
			terrestrialAt("a", 0.00, 0, 10),
			terrestrialAt("a", 0.01, 0, 5), // timestamp regression
		}

		_, err = asm.Assemble(slices.Values(stream))
		require.Error(t, err)
		var malformed *ErrMalformedPoint
		require.True(t, errors.As(err, &malformed))
		assert.Equal(t, "a", malformed.ObjectID)
	})

	t.Run("OutputTimestampsNonDecreasing", func(t *testing.T) {
		asm, err := New()
		require.NoError(t, err)

		stream := []point.Point{
			terrestrialAt("a", 0.00, 0, 0),
			terrestrialAt("a", 0.01, 0, 0), // equal timestamps are allowed
			terrestrialAt("a", 0.02, 0, 1),
		}

		trajs, err := asm.Assemble(slices.Values(stream))
		require.NoError(t, err)
		require.Len(t, trajs, 1)
		for i := 1; i < trajs[0].Len(); i++ {
			assert.False(t, trajs[0].At(i).Timestamp.Before(trajs[0].At(i-1).Timestamp))
		}
	})

	t.Run("InvalidMinimumLength", func(t *testing.T) {
		_, err := New(func(o *Options) { o.MinimumLength = 0 })
		assert.Error(t, err)
	})
}
