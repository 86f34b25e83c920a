// Package point provides the value types shared by every component of the
// trajectory-analytics engine: domain-tagged points, property maps and
// trajectories.
package point

import (
	"fmt"
	"time"
)

// Domain identifies the coordinate system a point lives in. Geometry
// functions dispatch on the domain tag instead of using per-domain point
// types.
type Domain int

const (
	// Euclidean2D is a flat-plane Cartesian domain with two coordinates.
	Euclidean2D Domain = iota
	// Euclidean3D is a flat-space Cartesian domain with three coordinates.
	Euclidean3D
	// Terrestrial is a longitude/latitude domain (degrees) with
	// great-circle distance semantics over a fixed-radius sphere.
	Terrestrial
)

// Dimension returns the coordinate count required by the domain.
func (d Domain) Dimension() int {
	switch d {
	case Euclidean3D:
		return 3
	default:
		return 2
	}
}

// Terrestrial reports whether the domain uses geodesic semantics.
func (d Domain) Terrestrial() bool { return d == Terrestrial }

func (d Domain) String() string {
	switch d {
	case Euclidean2D:
		return "Euclidean2D"
	case Euclidean3D:
		return "Euclidean3D"
	case Terrestrial:
		return "Terrestrial"
	default:
		return fmt.Sprintf("Unknown(%d)", int(d))
	}
}

// PropertyKind tags the variant stored in a PropertyValue.
type PropertyKind int

const (
	PropertyNull PropertyKind = iota
	PropertyNumeric
	PropertyString
	PropertyTimestamp
)

// PropertyValue is a tagged union of the value kinds a point or trajectory
// property may hold.
type PropertyValue struct {
	Kind      PropertyKind
	Number    float64
	Str       string
	Timestamp time.Time
}

// Numeric wraps a float64 as a property value.
func Numeric(v float64) PropertyValue {
	return PropertyValue{Kind: PropertyNumeric, Number: v}
}

// String wraps a string as a property value.
func String(s string) PropertyValue {
	return PropertyValue{Kind: PropertyString, Str: s}
}

// Timestamp wraps a UTC-normalized instant as a property value.
func Timestamp(t time.Time) PropertyValue {
	return PropertyValue{Kind: PropertyTimestamp, Timestamp: t.UTC()}
}

// Null is the null property value.
func Null() PropertyValue { return PropertyValue{Kind: PropertyNull} }

// Properties is a string-keyed property map. Insertion order is not
// significant.
type Properties map[string]PropertyValue

// Clone returns a copy of the property map. A nil map clones to nil.
func (p Properties) Clone() Properties {
	if p == nil {
		return nil
	}
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Point is a fixed-dimensionality coordinate tuple with optional identity,
// timestamp and properties. Timestamps are normalized to UTC at
// construction; no timezone is retained.
type Point struct {
	Domain     Domain
	Coords     []float64
	ObjectID   string
	Timestamp  time.Time
	Properties Properties
}

// New creates a point in the given domain. The coordinate count must match
// the domain's dimensionality.
func New(domain Domain, coords ...float64) (Point, error) {
	if len(coords) != domain.Dimension() {
		return Point{}, &ErrDimensionMismatch{Expected: domain.Dimension(), Actual: len(coords)}
	}
	c := make([]float64, len(coords))
	copy(c, coords)
	return Point{Domain: domain, Coords: c}, nil
}

// MustNew is New for statically known coordinates; it panics on dimension
// mismatch.
func MustNew(domain Domain, coords ...float64) Point {
	p, err := New(domain, coords...)
	if err != nil {
		panic(err)
	}
	return p
}

// WithObjectID returns a copy of the point carrying the given object ID.
func (p Point) WithObjectID(id string) Point {
	p.ObjectID = id
	return p
}

// WithTimestamp returns a copy of the point stamped with t normalized to UTC.
func (p Point) WithTimestamp(t time.Time) Point {
	p.Timestamp = t.UTC()
	return p
}

// WithProperty returns a copy of the point with the property set. The
// property map is copied, not shared.
func (p Point) WithProperty(key string, v PropertyValue) Point {
	props := p.Properties.Clone()
	if props == nil {
		props = make(Properties, 1)
	}
	props[key] = v
	p.Properties = props
	return p
}

// Dimension returns the point's coordinate count.
func (p Point) Dimension() int { return len(p.Coords) }

// Lon returns the first coordinate (longitude for terrestrial points).
func (p Point) Lon() float64 { return p.Coords[0] }

// Lat returns the second coordinate (latitude for terrestrial points).
func (p Point) Lat() float64 { return p.Coords[1] }

// SameShape reports whether q shares p's domain and dimensionality.
func (p Point) SameShape(q Point) error {
	if p.Domain != q.Domain {
		return &ErrDomainMismatch{A: p.Domain, B: q.Domain}
	}
	if len(p.Coords) != len(q.Coords) {
		return &ErrDimensionMismatch{Expected: len(p.Coords), Actual: len(q.Coords)}
	}
	return nil
}

// Equal reports coordinate-wise equality within the same domain. Identity,
// timestamp and properties are not compared.
func (p Point) Equal(q Point) bool {
	if p.Domain != q.Domain || len(p.Coords) != len(q.Coords) {
		return false
	}
	for i := range p.Coords {
		if p.Coords[i] != q.Coords[i] {
			return false
		}
	}
	return true
}

func (p Point) String() string {
	return fmt.Sprintf("%s%v", p.Domain, p.Coords)
}
