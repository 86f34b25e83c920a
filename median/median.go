// Package median computes the geometric median of a point set with the
// Weiszfeld iteration: the point minimizing the sum of domain-appropriate
// distances to all inputs.
package median

import (
	"errors"
	"math"

	"github.com/sandialabs/tracktable-sub003/geom"
	"github.com/sandialabs/tracktable-sub003/point"
)

// ErrEmptyInput is returned when the point set is empty.
var ErrEmptyInput = errors.New("geometric median requires at least one point")

// Options contains configuration options for the solver.
type Options struct {
	// Tolerance is the candidate displacement (in coordinate units)
	// below which iteration stops.
	Tolerance float64

	// MaxIterations bounds the iteration count when convergence is slow.
	MaxIterations int
}

// DefaultOptions contains the default solver configuration.
var DefaultOptions = Options{
	Tolerance:     1e-6,
	MaxIterations: 200,
}

// GeometricMedian returns the point minimizing the total distance to the
// input set. Distances use the points' domain metric (great-circle
// kilometers for terrestrial points); the candidate update is the weighted
// coordinate average. Points coincident with the current candidate are
// excluded from that iteration's weighting, so degeneracies converge
// instead of dividing by zero.
//
// A single-point input is returned unchanged.
func GeometricMedian(points []point.Point, optFns ...func(o *Options)) (point.Point, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if len(points) == 0 {
		return point.Point{}, ErrEmptyInput
	}
	if len(points) == 1 {
		return points[0], nil
	}
	for _, p := range points[1:] {
		if err := points[0].SameShape(p); err != nil {
			return point.Point{}, err
		}
	}

	dim := points[0].Dimension()
	domain := points[0].Domain

	// Start from the centroid.
	candidate := make([]float64, dim)
	for _, p := range points {
		for d := 0; d < dim; d++ {
			candidate[d] += p.Coords[d]
		}
	}
	for d := 0; d < dim; d++ {
		candidate[d] /= float64(len(points))
	}

	next := make([]float64, dim)
	for iter := 0; iter < opts.MaxIterations; iter++ {
		cand := point.Point{Domain: domain, Coords: candidate}
		for d := 0; d < dim; d++ {
			next[d] = 0
		}
		var totalWeight float64
		for _, p := range points {
			dist, err := geom.Distance(cand, p)
			if err != nil {
				return point.Point{}, err
			}
			if dist < 1e-12 {
				// Candidate sits on an input point; skip its weight.
				continue
			}
			w := 1 / dist
			totalWeight += w
			for d := 0; d < dim; d++ {
				next[d] += w * p.Coords[d]
			}
		}
		if totalWeight == 0 {
			// Every input coincides with the candidate.
			break
		}

		var displacement float64
		for d := 0; d < dim; d++ {
			next[d] /= totalWeight
			diff := next[d] - candidate[d]
			displacement += diff * diff
		}
		candidate, next = next, candidate
		if math.Sqrt(displacement) < opts.Tolerance {
			break
		}
	}

	coords := make([]float64, dim)
	copy(coords, candidate)
	return point.Point{Domain: domain, Coords: coords}, nil
}
