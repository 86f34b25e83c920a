package median

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandialabs/tracktable-sub003/point"
)

func TestGeometricMedian(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		_, err := GeometricMedian(nil)
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("SinglePoint", func(t *testing.T) {
		p := point.MustNew(point.Terrestrial, 12.5, 41.9)
		got, err := GeometricMedian([]point.Point{p})
		require.NoError(t, err)
		assert.True(t, got.Equal(p))
	})

	t.Run("ColinearOddCount", func(t *testing.T) {
		// Nine colinear points at x=0..8: the geometric median is the
		// middle point.
		pts := make([]point.Point, 9)
		for i := range pts {
			pts[i] = point.MustNew(point.Euclidean2D, float64(i), 0)
		}

		got, err := GeometricMedian(pts)
		require.NoError(t, err)
		assert.InDelta(t, 4, got.Coords[0], 1e-6)
		assert.InDelta(t, 0, got.Coords[1], 1e-6)
	})

	t.Run("SquareCorners", func(t *testing.T) {
		pts := []point.Point{
			point.MustNew(point.Euclidean2D, 0, 0),
			point.MustNew(point.Euclidean2D, 1, 0),
			point.MustNew(point.Euclidean2D, 1, 1),
			point.MustNew(point.Euclidean2D, 0, 1),
		}

		got, err := GeometricMedian(pts)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, got.Coords[0], 1e-6)
		assert.InDelta(t, 0.5, got.Coords[1], 1e-6)
	})

	t.Run("Euclidean3D", func(t *testing.T) {
		pts := []point.Point{
			point.MustNew(point.Euclidean3D, 0, 0, 0),
			point.MustNew(point.Euclidean3D, 2, 0, 0),
			point.MustNew(point.Euclidean3D, 1, 0, 0),
		}

		got, err := GeometricMedian(pts)
		require.NoError(t, err)
		assert.InDelta(t, 1, got.Coords[0], 1e-6)
	})

	t.Run("AllCoincident", func(t *testing.T) {
		p := point.MustNew(point.Euclidean2D, 3, 3)
		got, err := GeometricMedian([]point.Point{p, p, p})
		require.NoError(t, err)
		assert.InDelta(t, 3, got.Coords[0], 1e-9)
		assert.InDelta(t, 3, got.Coords[1], 1e-9)
	})

	t.Run("TerrestrialCluster", func(t *testing.T) {
		pts := []point.Point{
			point.MustNew(point.Terrestrial, 10.0, 40.0),
			point.MustNew(point.Terrestrial, 10.2, 40.1),
			point.MustNew(point.Terrestrial, 10.1, 39.9),
			point.MustNew(point.Terrestrial, 9.9, 40.05),
		}

		got, err := GeometricMedian(pts)
		require.NoError(t, err)
		assert.Equal(t, point.Terrestrial, got.Domain)
		assert.InDelta(t, 10.05, got.Lon(), 0.2)
		assert.InDelta(t, 40.0, got.Lat(), 0.2)
	})

	t.Run("ShapeMismatch", func(t *testing.T) {
		_, err := GeometricMedian([]point.Point{
			point.MustNew(point.Euclidean2D, 0, 0),
			point.MustNew(point.Terrestrial, 0, 0),
		})
		assert.Error(t, err)
		assert.IsType(t, &point.ErrDomainMismatch{}, err)
	})

	t.Run("Options", func(t *testing.T) {
		pts := []point.Point{
			point.MustNew(point.Euclidean2D, 0, 0),
			point.MustNew(point.Euclidean2D, 10, 0),
			point.MustNew(point.Euclidean2D, 5, 8),
		}

		got, err := GeometricMedian(pts, func(o *Options) {
			o.Tolerance = 1e-9
			o.MaxIterations = 500
		})
		require.NoError(t, err)
		// The Fermat point of a triangle lies strictly inside it.
		assert.Greater(t, got.Coords[0], 0.0)
		assert.Less(t, got.Coords[0], 10.0)
		assert.Greater(t, got.Coords[1], 0.0)
		assert.Less(t, got.Coords[1], 8.0)
	})
}
