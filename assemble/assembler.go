// Package assemble turns a time-ordered stream of identified points into
// discrete trajectories. A split begins a new trajectory whenever
// consecutive points of one object are separated by too much time or too
// much distance; undersized trajectories are dropped.
package assemble

import (
	"fmt"
	"iter"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sandialabs/tracktable-sub003/geom"
	"github.com/sandialabs/tracktable-sub003/point"
)

// MalformedPolicy selects how the assembler reacts to defective input
// points. There is no hidden default beyond DefaultOptions; callers that
// care must choose explicitly.
type MalformedPolicy int

const (
	// SkipMalformed drops defective points and keeps assembling.
	SkipMalformed MalformedPolicy = iota
	// AbortOnMalformed stops the run at the first defective point.
	AbortOnMalformed
)

// ErrMalformedPoint indicates an ingestion-time defect in the point
// stream: a missing object ID, a zero timestamp, or a timestamp regression
// within one object's subsequence.
type ErrMalformedPoint struct {
	Reason   string
	ObjectID string
}

func (e *ErrMalformedPoint) Error() string {
	if e.ObjectID == "" {
		return fmt.Sprintf("malformed point: %s", e.Reason)
	}
	return fmt.Sprintf("malformed point for object %q: %s", e.ObjectID, e.Reason)
}

// Options contains configuration options for the assembler.
type Options struct {
	// SeparationDistance is the spatial gap (in the domain's distance
	// units, kilometers for terrestrial points) at or above which
	// consecutive points start a new trajectory.
	SeparationDistance float64

	// SeparationTime is the temporal gap at or above which consecutive
	// points start a new trajectory.
	SeparationTime time.Duration

	// MinimumLength is the smallest point count a trajectory must have
	// to be emitted. Must be >= 1.
	MinimumLength int

	// OnMalformed selects the defective-point policy.
	OnMalformed MalformedPolicy
}

// DefaultOptions contains the default assembler configuration.
var DefaultOptions = Options{
	SeparationDistance: 100,
	SeparationTime:     20 * time.Minute,
	MinimumLength:      2,
	OnMalformed:        SkipMalformed,
}

// trajectoryIDProperty is the trajectory property carrying the generated
// unique identifier; objectIDProperty carries the shared object identity.
const (
	trajectoryIDProperty = "trajectory_id"
	objectIDProperty     = "object_id"
)

// Assembler is a streaming state machine with one accumulator per object
// ID. It is owned by a single goroutine for the duration of a stream; two
// concurrent calls on the same instance are not supported.
type Assembler struct {
	opts    Options
	current map[string][]point.Point
	skipped int
	emitted int
}

// New creates an assembler.
func New(optFns ...func(o *Options)) (*Assembler, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MinimumLength < 1 {
		return nil, fmt.Errorf("minimum length must be >= 1, got %d", opts.MinimumLength)
	}
	return &Assembler{
		opts:    opts,
		current: make(map[string][]point.Point),
	}, nil
}

// Skipped returns the number of malformed points dropped so far under
// SkipMalformed.
func (a *Assembler) Skipped() int { return a.skipped }

// Emitted returns the number of trajectories emitted so far.
func (a *Assembler) Emitted() int { return a.emitted }

// Push feeds one point into the stream. When the point triggers a split,
// the finalized trajectory for its object is returned (nil if it fell
// below MinimumLength); otherwise the result is nil.
//
// Under SkipMalformed a defective point returns (nil, nil) and is counted
// in Skipped; under AbortOnMalformed it returns the *ErrMalformedPoint.
func (a *Assembler) Push(p point.Point) (*point.Trajectory, error) {
	if err := a.validate(p); err != nil {
		if a.opts.OnMalformed == SkipMalformed {
			a.skipped++
			return nil, nil
		}
		return nil, err
	}

	acc := a.current[p.ObjectID]
	if len(acc) == 0 {
		a.current[p.ObjectID] = append(acc, p)
		return nil, nil
	}

	prev := acc[len(acc)-1]
	split, err := a.shouldSplit(prev, p)
	if err != nil {
		if a.opts.OnMalformed == SkipMalformed {
			a.skipped++
			return nil, nil
		}
		return nil, err
	}
	if !split {
		a.current[p.ObjectID] = append(acc, p)
		return nil, nil
	}

	// The triggering point starts the next trajectory.
	a.current[p.ObjectID] = []point.Point{p}
	return a.finalize(acc), nil
}

// validate rejects defective points: empty object ID, zero timestamp,
// timestamp regression within the object's subsequence, and shape
// mismatches against the object's accumulator.
func (a *Assembler) validate(p point.Point) error {
	if p.ObjectID == "" {
		return &ErrMalformedPoint{Reason: "missing object id"}
	}
	if p.Timestamp.IsZero() {
		return &ErrMalformedPoint{Reason: "missing timestamp", ObjectID: p.ObjectID}
	}
	acc := a.current[p.ObjectID]
	if len(acc) > 0 {
		prev := acc[len(acc)-1]
		if p.Timestamp.Before(prev.Timestamp) {
			return &ErrMalformedPoint{Reason: "timestamp regression", ObjectID: p.ObjectID}
		}
		if err := prev.SameShape(p); err != nil {
			return &ErrMalformedPoint{Reason: err.Error(), ObjectID: p.ObjectID}
		}
	}
	return nil
}

func (a *Assembler) shouldSplit(prev, p point.Point) (bool, error) {
	if p.Timestamp.Sub(prev.Timestamp) >= a.opts.SeparationTime {
		return true, nil
	}
	d, err := geom.Distance(prev, p)
	if err != nil {
		return false, &ErrMalformedPoint{Reason: err.Error(), ObjectID: p.ObjectID}
	}
	return d >= a.opts.SeparationDistance, nil
}

// finalize applies the minimum-length filter and stamps trajectory
// properties. Returns nil when the trajectory is dropped.
func (a *Assembler) finalize(points []point.Point) *point.Trajectory {
	if len(points) < a.opts.MinimumLength {
		return nil
	}
	traj, err := point.NewTrajectory(points)
	if err != nil {
		// The accumulator is built under validate; order cannot regress.
		return nil
	}
	traj.SetProperty(objectIDProperty, point.String(points[0].ObjectID))
	traj.SetProperty(trajectoryIDProperty, point.String(uuid.NewString()))
	a.emitted++
	return traj
}

// Flush finalizes every in-progress accumulator. In-progress trajectories
// are emitted, not discarded; the minimum-length filter still applies.
// The assembler is reset and may be reused for a new stream.
func (a *Assembler) Flush() []*point.Trajectory {
	ids := make([]string, 0, len(a.current))
	for id := range a.current {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []*point.Trajectory
	for _, id := range ids {
		if traj := a.finalize(a.current[id]); traj != nil {
			out = append(out, traj)
		}
	}
	a.current = make(map[string][]point.Point)
	return out
}

// Assemble drains a point sequence and returns every trajectory it
// produces, including the flushed tails.
func (a *Assembler) Assemble(points iter.Seq[point.Point]) ([]*point.Trajectory, error) {
	var out []*point.Trajectory
	for p := range points {
		traj, err := a.Push(p)
		if err != nil {
			return out, err
		}
		if traj != nil {
			out = append(out, traj)
		}
	}
	return append(out, a.Flush()...), nil
}
