package geom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandialabs/tracktable-sub003/point"
	"github.com/sandialabs/tracktable-sub003/testutil"
)

func walkTrajectory(t *testing.T, coords [][2]float64) *point.Trajectory {
	t.Helper()
	pts := make([]point.Point, len(coords))
	for i, c := range coords {
		pts[i] = point.MustNew(point.Euclidean2D, c[0], c[1]).
			WithObjectID("walk").
			WithTimestamp(ts(0).Add(time.Duration(i) * time.Minute))
	}
	traj, err := point.NewTrajectory(pts)
	require.NoError(t, err)
	return traj
}

func TestCurrentLengths(t *testing.T) {
	t.Run("KnownValues", func(t *testing.T) {
		traj := walkTrajectory(t, [][2]float64{{0, 0}, {3, 4}, {3, 14}})

		lengths, err := CurrentLengths(traj)
		require.NoError(t, err)
		require.Len(t, lengths, 3)
		assert.Equal(t, 0.0, lengths[0])
		assert.InDelta(t, 5, lengths[1], 1e-12)
		assert.InDelta(t, 15, lengths[2], 1e-12)
	})

	t.Run("NonDecreasing", func(t *testing.T) {
		rng := testutil.NewRNG(7)
		traj := rng.RandomWalk("walk", ts(0), 50, 10, time.Minute)

		lengths, err := CurrentLengths(traj)
		require.NoError(t, err)
		assert.Equal(t, 0.0, lengths[0])
		for i := 1; i < len(lengths); i++ {
			assert.GreaterOrEqual(t, lengths[i], lengths[i-1])
		}
	})

	t.Run("Empty", func(t *testing.T) {
		traj, err := point.NewTrajectory(nil)
		require.NoError(t, err)
		_, err = CurrentLengths(traj)
		assert.ErrorIs(t, err, point.ErrEmptyTrajectory)
	})
}

func TestTrajectoryLength(t *testing.T) {
	traj := walkTrajectory(t, [][2]float64{{0, 0}, {3, 4}, {3, 14}})
	total, err := TrajectoryLength(traj)
	require.NoError(t, err)
	assert.InDelta(t, 15, total, 1e-12)
}

func TestPointAtFraction(t *testing.T) {
	traj := walkTrajectory(t, [][2]float64{{0, 0}, {10, 0}, {10, 10}})

	t.Run("Endpoints", func(t *testing.T) {
		first, err := PointAtFraction(traj, 0)
		require.NoError(t, err)
		assert.True(t, first.Equal(traj.First()))

		last, err := PointAtFraction(traj, 1)
		require.NoError(t, err)
		assert.True(t, last.Equal(traj.Last()))
	})

	t.Run("ClampsOutOfRange", func(t *testing.T) {
		below, err := PointAtFraction(traj, -0.5)
		require.NoError(t, err)
		assert.True(t, below.Equal(traj.First()))

		above, err := PointAtFraction(traj, 1.5)
		require.NoError(t, err)
		assert.True(t, above.Equal(traj.Last()))
	})

	t.Run("ArcLengthParameterized", func(t *testing.T) {
		// Total length 20; fraction 0.25 lies halfway down the first leg.
		p, err := PointAtFraction(traj, 0.25)
		require.NoError(t, err)
		assert.InDelta(t, 5, p.Coords[0], 1e-12)
		assert.InDelta(t, 0, p.Coords[1], 1e-12)

		// Fraction 0.75 lies halfway up the second leg.
		p, err = PointAtFraction(traj, 0.75)
		require.NoError(t, err)
		assert.InDelta(t, 10, p.Coords[0], 1e-12)
		assert.InDelta(t, 5, p.Coords[1], 1e-12)
	})

	t.Run("DegenerateAllCoincident", func(t *testing.T) {
		still := walkTrajectory(t, [][2]float64{{2, 2}, {2, 2}, {2, 2}})
		p, err := PointAtFraction(still, 0.5)
		require.NoError(t, err)
		assert.True(t, p.Equal(still.First()))
	})
}

func TestSpeedProfile(t *testing.T) {
	t.Run("ConstantSpeed", func(t *testing.T) {
		// One unit per minute, three segments.
		traj := walkTrajectory(t, [][2]float64{{0, 0}, {1, 0}, {2, 0}, {3, 0}})

		profile, err := SpeedProfile(traj)
		require.NoError(t, err)
		assert.Equal(t, 3, profile.Samples)
		assert.InDelta(t, 1.0/60.0, profile.Mean, 1e-12)
		assert.InDelta(t, 1.0/60.0, profile.Median, 1e-12)
		assert.InDelta(t, 1.0/60.0, profile.Max, 1e-12)
		assert.InDelta(t, 0, profile.StdDev, 1e-12)
	})

	t.Run("SkipsZeroDurationSegments", func(t *testing.T) {
		base := ts(0)
		pts := []point.Point{
			point.MustNew(point.Euclidean2D, 0, 0).WithTimestamp(base),
			point.MustNew(point.Euclidean2D, 1, 0).WithTimestamp(base), // same instant
			point.MustNew(point.Euclidean2D, 2, 0).WithTimestamp(base.Add(time.Minute)),
		}
		traj, err := point.NewTrajectory(pts)
		require.NoError(t, err)

		profile, err := SpeedProfile(traj)
		require.NoError(t, err)
		assert.Equal(t, 1, profile.Samples)
	})

	t.Run("Empty", func(t *testing.T) {
		traj, err := point.NewTrajectory(nil)
		require.NoError(t, err)
		_, err = SpeedProfile(traj)
		assert.ErrorIs(t, err, point.ErrEmptyTrajectory)
	})
}
