package geom

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sandialabs/tracktable-sub003/point"
)

// CurrentLengths returns the cumulative distance traveled up to and
// including each point of the trajectory. The result has one entry per
// point, starts at 0 and is non-decreasing.
//
// Lengths are derived from the point sequence on every call; they are never
// cached, so they cannot drift from the sequence they describe.
func CurrentLengths(t *point.Trajectory) ([]float64, error) {
	n := t.Len()
	if n == 0 {
		return nil, point.ErrEmptyTrajectory
	}
	segs := make([]float64, n)
	for i := 1; i < n; i++ {
		d, err := Distance(t.At(i-1), t.At(i))
		if err != nil {
			return nil, err
		}
		segs[i] = d
	}
	return floats.CumSum(make([]float64, n), segs), nil
}

// TrajectoryLength returns the total arc length of the trajectory.
func TrajectoryLength(t *point.Trajectory) (float64, error) {
	lengths, err := CurrentLengths(t)
	if err != nil {
		return 0, err
	}
	return lengths[len(lengths)-1], nil
}

// PointAtFraction maps fraction in [0, 1] to the cumulative-arc-length
// position along the trajectory and interpolates between the bracketing
// points. Fraction 0 returns the first point and fraction 1 the last;
// out-of-range fractions clamp to the endpoints.
func PointAtFraction(t *point.Trajectory, fraction float64) (point.Point, error) {
	if t.Len() == 0 {
		return point.Point{}, point.ErrEmptyTrajectory
	}
	if fraction <= 0 || t.Len() == 1 {
		return t.First(), nil
	}
	if fraction >= 1 {
		return t.Last(), nil
	}

	lengths, err := CurrentLengths(t)
	if err != nil {
		return point.Point{}, err
	}
	total := lengths[len(lengths)-1]
	if total == 0 {
		// Degenerate trajectory: every point is coincident.
		return t.First(), nil
	}

	target := fraction * total
	// First index whose cumulative length reaches the target.
	i := sort.SearchFloat64s(lengths, target)
	if i == 0 {
		return t.First(), nil
	}
	seg := lengths[i] - lengths[i-1]
	if seg == 0 {
		return t.At(i), nil
	}
	return Interpolate(t.At(i-1), t.At(i), (target-lengths[i-1])/seg)
}

// Profile summarizes the consecutive-point speeds of a trajectory.
type Profile struct {
	Mean   float64
	Median float64
	Max    float64
	StdDev float64
	// Samples is the number of segments that contributed a speed.
	Samples int
}

// SpeedProfile computes speed statistics over the consecutive-point
// segments of a trajectory. Segments with zero duration carry no rate
// information and are excluded from the statistics.
func SpeedProfile(t *point.Trajectory) (Profile, error) {
	if t.Len() == 0 {
		return Profile{}, point.ErrEmptyTrajectory
	}
	speeds := make([]float64, 0, t.Len()-1)
	for i := 1; i < t.Len(); i++ {
		a, b := t.At(i-1), t.At(i)
		if !b.Timestamp.After(a.Timestamp) {
			continue
		}
		s, err := SpeedBetween(a, b)
		if err != nil {
			return Profile{}, err
		}
		speeds = append(speeds, s)
	}
	if len(speeds) == 0 {
		return Profile{}, nil
	}

	sorted := make([]float64, len(speeds))
	copy(sorted, speeds)
	sort.Float64s(sorted)

	return Profile{
		Mean:    stat.Mean(speeds, nil),
		Median:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Max:     sorted[len(sorted)-1],
		StdDev:  stat.StdDev(speeds, nil),
		Samples: len(speeds),
	}, nil
}
