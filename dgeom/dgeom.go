// Package dgeom extracts distance-geometry feature vectors from
// trajectories: normalized pairwise distances among evenly arc-length-
// sampled points, across every window length.
//
// Feature vectors are shape descriptors: values are independent of the
// absolute trajectory length, so trajectories of different scales but
// similar shape map to nearby vectors. They are the typical input for the
// rtree package's nearest-neighbor queries.
package dgeom

import (
	"fmt"

	"github.com/sandialabs/tracktable-sub003/geom"
	"github.com/sandialabs/tracktable-sub003/point"
)

// ErrInvalidSampleCount indicates an out-of-range sample count.
type ErrInvalidSampleCount struct {
	Count int
}

func (e *ErrInvalidSampleCount) Error() string {
	return fmt.Sprintf("invalid sample count: %d", e.Count)
}

// FeatureLength returns the length of the feature vector produced for the
// given sample count: sum over window lengths L=2..S of (S-L+1).
func FeatureLength(numSamples int) int {
	n := 0
	for l := 2; l <= numSamples; l++ {
		n += numSamples - l + 1
	}
	return n
}

// DistanceGeometryByDistance samples the trajectory at numSamples evenly
// spaced arc-length fractions and returns the flat feature vector of
// normalized distances between the endpoints of every sampling window.
//
// Windows are ordered length-major: all length-2 windows in start order,
// then length-3, and so on up to the full span. Each length group is
// normalized by its own maximum distance, so values lie in [0, 1] with 0
// meaning coincident sample points; a group whose maximum is zero
// normalizes to all zeros.
//
// A single sample is taken at fraction 0.5 and yields an empty vector.
func DistanceGeometryByDistance(t *point.Trajectory, numSamples int) ([]float64, error) {
	if numSamples < 1 {
		return nil, &ErrInvalidSampleCount{Count: numSamples}
	}
	if t.Len() == 0 {
		return nil, point.ErrEmptyTrajectory
	}

	samples, err := sample(t, numSamples)
	if err != nil {
		return nil, err
	}

	features := make([]float64, 0, FeatureLength(numSamples))
	for l := 2; l <= numSamples; l++ {
		count := numSamples - l + 1
		group := make([]float64, count)
		groupMax := 0.0
		for start := 0; start < count; start++ {
			d, err := geom.Distance(samples[start], samples[start+l-1])
			if err != nil {
				return nil, err
			}
			group[start] = d
			if d > groupMax {
				groupMax = d
			}
		}
		for _, d := range group {
			if groupMax > 0 {
				features = append(features, d/groupMax)
			} else {
				features = append(features, 0)
			}
		}
	}
	return features, nil
}

func sample(t *point.Trajectory, numSamples int) ([]point.Point, error) {
	if numSamples == 1 {
		p, err := geom.PointAtFraction(t, 0.5)
		if err != nil {
			return nil, err
		}
		return []point.Point{p}, nil
	}
	samples := make([]point.Point, numSamples)
	for i := 0; i < numSamples; i++ {
		p, err := geom.PointAtFraction(t, float64(i)/float64(numSamples-1))
		if err != nil {
			return nil, err
		}
		samples[i] = p
	}
	return samples, nil
}
