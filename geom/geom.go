// Package geom implements the geometry engine: distance, bearing, speed,
// interpolation and geodesic travel over both Euclidean and terrestrial
// point domains. All functions are pure and dispatch on the point domain
// tag.
package geom

import (
	"math"
	"time"

	"github.com/sandialabs/tracktable-sub003/point"
)

// EarthRadiusKM is the radius of the spherical Earth model used for all
// terrestrial computations.
const EarthRadiusKM = 6371.0

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// Distance returns the distance between two points of the same shape:
// Euclidean L2 in native units for Cartesian domains, great-circle
// kilometers for terrestrial points.
func Distance(a, b point.Point) (float64, error) {
	if err := a.SameShape(b); err != nil {
		return 0, err
	}
	if a.Domain.Terrestrial() {
		return haversine(a, b), nil
	}
	return euclidean(a.Coords, b.Coords), nil
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// haversine computes the great-circle distance in kilometers.
func haversine(a, b point.Point) float64 {
	lat1 := radians(a.Lat())
	lat2 := radians(b.Lat())
	dLat := lat2 - lat1
	dLon := radians(b.Lon() - a.Lon())

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	return 2 * EarthRadiusKM * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Bearing returns the initial compass bearing in degrees [0, 360) from a
// to b. Bearing is only meaningful for terrestrial points; Euclidean
// domains yield ErrUnsupportedDomain.
func Bearing(a, b point.Point) (float64, error) {
	if err := a.SameShape(b); err != nil {
		return 0, err
	}
	if !a.Domain.Terrestrial() {
		return 0, &ErrUnsupportedDomain{Op: "bearing", Domain: a.Domain}
	}
	lat1 := radians(a.Lat())
	lat2 := radians(b.Lat())
	dLon := radians(b.Lon() - a.Lon())

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	deg := degrees(math.Atan2(y, x))
	return math.Mod(deg+360, 360), nil
}

// SpeedBetween returns the speed implied by traveling from a to b in the
// time between their timestamps: kilometers per hour for terrestrial
// points, native units per second for Euclidean points. A non-positive
// duration is an error, never a silent infinity.
func SpeedBetween(a, b point.Point) (float64, error) {
	d, err := Distance(a, b)
	if err != nil {
		return 0, err
	}
	if !b.Timestamp.After(a.Timestamp) {
		return 0, &ErrInvalidTimestampOrder{Earlier: a.Timestamp, Later: b.Timestamp}
	}
	elapsed := b.Timestamp.Sub(a.Timestamp)
	if a.Domain.Terrestrial() {
		return d / elapsed.Hours(), nil
	}
	return d / elapsed.Seconds(), nil
}

// TravelFromPoint solves the forward geodesic problem on the sphere:
// starting at origin, travel distanceKM along the given initial bearing
// (degrees) and return the destination. Terrestrial only.
//
// The result round-trips with Distance and Bearing to within ~1e-5 degrees
// for distances under a few thousand kilometers.
func TravelFromPoint(origin point.Point, bearingDeg, distanceKM float64) (point.Point, error) {
	if !origin.Domain.Terrestrial() {
		return point.Point{}, &ErrUnsupportedDomain{Op: "travel_from_point", Domain: origin.Domain}
	}
	lat1 := radians(origin.Lat())
	lon1 := radians(origin.Lon())
	theta := radians(bearingDeg)
	delta := distanceKM / EarthRadiusKM

	sinLat2 := math.Sin(lat1)*math.Cos(delta) + math.Cos(lat1)*math.Sin(delta)*math.Cos(theta)
	lat2 := math.Asin(sinLat2)
	lon2 := lon1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(lat1),
		math.Cos(delta)-math.Sin(lat1)*sinLat2,
	)
	// Normalize longitude to [-180, 180).
	lonDeg := math.Mod(degrees(lon2)+540, 360) - 180

	return point.New(point.Terrestrial, lonDeg, degrees(lat2))
}

// Interpolate returns the point at fraction t along the segment from a to
// b: linear in Cartesian coordinates, great-circle (slerp) for terrestrial
// points. Timestamps and numeric properties interpolate linearly; string
// properties are taken from the nearer endpoint. Fractions outside [0, 1]
// extrapolate and are not validated. Antipodal terrestrial endpoints have
// no unique great circle; their coordinates interpolate linearly.
func Interpolate(a, b point.Point, t float64) (point.Point, error) {
	if err := a.SameShape(b); err != nil {
		return point.Point{}, err
	}

	var out point.Point
	if a.Domain.Terrestrial() {
		out = slerp(a, b, t)
	} else {
		coords := make([]float64, len(a.Coords))
		for i := range coords {
			coords[i] = a.Coords[i] + t*(b.Coords[i]-a.Coords[i])
		}
		out = point.Point{Domain: a.Domain, Coords: coords}
	}

	out.ObjectID = a.ObjectID
	if !a.Timestamp.IsZero() && !b.Timestamp.IsZero() {
		span := b.Timestamp.Sub(a.Timestamp)
		out.Timestamp = a.Timestamp.Add(time.Duration(t * float64(span))).UTC()
	}
	out.Properties = interpolateProperties(a.Properties, b.Properties, t)
	return out, nil
}

func interpolateProperties(pa, pb point.Properties, t float64) point.Properties {
	if pa == nil && pb == nil {
		return nil
	}
	out := make(point.Properties)
	for k, va := range pa {
		vb, ok := pb[k]
		switch {
		case ok && va.Kind == point.PropertyNumeric && vb.Kind == point.PropertyNumeric:
			out[k] = point.Numeric(va.Number + t*(vb.Number-va.Number))
		case ok && t >= 0.5:
			out[k] = vb
		default:
			out[k] = va
		}
	}
	for k, vb := range pb {
		if _, ok := pa[k]; !ok {
			out[k] = vb
		}
	}
	return out
}

// slerp interpolates along the great circle through a and b.
func slerp(a, b point.Point, t float64) point.Point {
	ax, ay, az := toUnitVector(a)
	bx, by, bz := toUnitVector(b)

	dot := ax*bx + ay*by + az*bz
	dot = math.Max(-1, math.Min(1, dot))
	omega := math.Acos(dot)

	if omega < 1e-12 {
		// Coincident endpoints; fall back to the start point.
		return point.Point{Domain: a.Domain, Coords: []float64{a.Lon(), a.Lat()}}
	}

	sinOmega := math.Sin(omega)
	if sinOmega < 1e-12 {
		// Antipodal endpoints: every great circle through them is a
		// shortest path, so interpolate coordinates linearly instead.
		return point.Point{Domain: a.Domain, Coords: []float64{
			a.Lon() + t*(b.Lon()-a.Lon()),
			a.Lat() + t*(b.Lat()-a.Lat()),
		}}
	}
	wa := math.Sin((1-t)*omega) / sinOmega
	wb := math.Sin(t*omega) / sinOmega

	x := wa*ax + wb*bx
	y := wa*ay + wb*by
	z := wa*az + wb*bz

	lat := degrees(math.Asin(math.Max(-1, math.Min(1, z/math.Sqrt(x*x+y*y+z*z)))))
	lon := degrees(math.Atan2(y, x))
	return point.Point{Domain: a.Domain, Coords: []float64{lon, lat}}
}

func toUnitVector(p point.Point) (x, y, z float64) {
	lat := radians(p.Lat())
	lon := radians(p.Lon())
	return math.Cos(lat) * math.Cos(lon), math.Cos(lat) * math.Sin(lon), math.Sin(lat)
}
