// Package testutil provides deterministic random data generators for
// tests and benchmarks.
package testutil

import (
	"math/rand"
	"sync"
	"time"

	"github.com/sandialabs/tracktable-sub003/point"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns, as a float64, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// FillUniformRange fills dst with random values in range [minVal, maxVal).
func (r *RNG) FillUniformRange(dst []float64, minVal, maxVal float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	span := maxVal - minVal
	for i := range dst {
		dst[i] = minVal + r.rand.Float64()*span
	}
}

// UniformVectors generates random vectors with values in range [0, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformVectors(num int, dimensions int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dimensions)
	vectors := make([][]float64, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = r.rand.Float64()
		}
		vectors[i] = vec
	}

	return vectors
}

// RandomWalk generates a Euclidean 2D trajectory for the given object:
// count points starting at the origin, stepping up to maxStep per axis,
// with the given interval between timestamps.
func (r *RNG) RandomWalk(objectID string, start time.Time, count int, maxStep float64, interval time.Duration) *point.Trajectory {
	r.mu.Lock()
	defer r.mu.Unlock()

	pts := make([]point.Point, count)
	x, y := 0.0, 0.0
	for i := 0; i < count; i++ {
		pts[i] = point.MustNew(point.Euclidean2D, x, y).
			WithObjectID(objectID).
			WithTimestamp(start.Add(time.Duration(i) * interval))
		x += (r.rand.Float64()*2 - 1) * maxStep
		y += (r.rand.Float64()*2 - 1) * maxStep
	}

	traj, err := point.NewTrajectory(pts)
	if err != nil {
		panic(err)
	}
	return traj
}

// TerrestrialWalk generates a terrestrial trajectory near the given
// lon/lat, stepping up to maxStepDeg degrees per axis.
func (r *RNG) TerrestrialWalk(objectID string, start time.Time, count int, lon, lat, maxStepDeg float64, interval time.Duration) *point.Trajectory {
	r.mu.Lock()
	defer r.mu.Unlock()

	pts := make([]point.Point, count)
	for i := 0; i < count; i++ {
		pts[i] = point.MustNew(point.Terrestrial, lon, lat).
			WithObjectID(objectID).
			WithTimestamp(start.Add(time.Duration(i) * interval))
		lon += (r.rand.Float64()*2 - 1) * maxStepDeg
		lat += (r.rand.Float64()*2 - 1) * maxStepDeg
	}

	traj, err := point.NewTrajectory(pts)
	if err != nil {
		panic(err)
	}
	return traj
}
