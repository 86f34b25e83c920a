package point

import "time"

// Trajectory is an ordered sequence of points sharing one domain and
// dimensionality, with a property map independent of per-point properties.
//
// Timestamps are non-decreasing; the assembler guarantees this at
// construction and NewTrajectory validates it for explicit construction.
// The point sequence is immutable once built; only the property map may be
// edited afterwards.
type Trajectory struct {
	points     []Point
	Properties Properties
}

// NewTrajectory builds a trajectory from an explicit point list. All points
// must share the first point's domain and dimensionality, and timestamps
// must be non-decreasing.
func NewTrajectory(points []Point) (*Trajectory, error) {
	for i := 1; i < len(points); i++ {
		if err := points[0].SameShape(points[i]); err != nil {
			return nil, err
		}
		if points[i].Timestamp.Before(points[i-1].Timestamp) {
			return nil, &ErrTimestampOrder{Index: i}
		}
	}
	pts := make([]Point, len(points))
	copy(pts, points)
	return &Trajectory{points: pts}, nil
}

// Len returns the number of points.
func (t *Trajectory) Len() int { return len(t.points) }

// At returns the i-th point.
func (t *Trajectory) At(i int) Point { return t.points[i] }

// First returns the first point. The trajectory must be non-empty.
func (t *Trajectory) First() Point { return t.points[0] }

// Last returns the last point. The trajectory must be non-empty.
func (t *Trajectory) Last() Point { return t.points[len(t.points)-1] }

// Points returns the underlying point slice. Callers must not mutate it.
func (t *Trajectory) Points() []Point { return t.points }

// Domain returns the trajectory's coordinate domain. Empty trajectories
// report Euclidean2D.
func (t *Trajectory) Domain() Domain {
	if len(t.points) == 0 {
		return Euclidean2D
	}
	return t.points[0].Domain
}

// ObjectID returns the object identity of the first point, or "" when empty.
func (t *Trajectory) ObjectID() string {
	if len(t.points) == 0 {
		return ""
	}
	return t.points[0].ObjectID
}

// Duration returns the time spanned from first to last point.
func (t *Trajectory) Duration() time.Duration {
	if len(t.points) < 2 {
		return 0
	}
	return t.Last().Timestamp.Sub(t.First().Timestamp)
}

// Slice returns the sub-range [i, j) as a new trajectory. Trajectory-level
// properties are copied onto the slice; point-level properties travel with
// the points themselves.
func (t *Trajectory) Slice(i, j int) *Trajectory {
	pts := make([]Point, j-i)
	copy(pts, t.points[i:j])
	return &Trajectory{points: pts, Properties: t.Properties.Clone()}
}

// SetProperty sets a trajectory-level property.
func (t *Trajectory) SetProperty(key string, v PropertyValue) {
	if t.Properties == nil {
		t.Properties = make(Properties, 1)
	}
	t.Properties[key] = v
}

// Property looks up a trajectory-level property.
func (t *Trajectory) Property(key string) (PropertyValue, bool) {
	v, ok := t.Properties[key]
	return v, ok
}
