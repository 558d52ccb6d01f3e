// Package geoindex indexes a static set of geographic points into an
// in-memory spatial index and answers axis-aligned bounding-box containment
// queries.
//
// The index is a BKD forest: one or more static KDB trees, each a complete
// binary tree laid out over pointer-free arrays, bulk-built from a sorted
// input. The index is built once from the full input and is immutable
// thereafter; there is no incremental insertion, deletion, or persistence.
package geoindex

import "math"

// Point is a geographic point tagged with an opaque, caller-supplied
// identifier. Two points are equal iff both their identifier and their
// coordinates match.
type Point struct {
	ID       string
	Lon, Lat float64
}

// BBox is an axis-aligned bounding box expressed as its upper-right corner
// (MaxLon, MaxLat) and lower-left corner (MinLon, MinLat).
//
// MaxLat must be >= MinLat. MaxLon may be less than MinLon, which denotes a
// box that crosses the antimeridian: its longitude interval is
// [MinLon,180] ∪ [-180,MaxLon]. A raw width (MaxLon-MinLon) of exactly 360
// denotes the full longitude range.
type BBox struct {
	MinLon, MinLat float64
	MaxLon, MaxLat float64
}

// Relation is the result of comparing two bounding boxes.
type Relation int

const (
	// Disjoint means the two boxes share no point.
	Disjoint Relation = iota
	// Intersects means the two boxes overlap but neither contains the other.
	Intersects
	// Contains means the first box entirely covers the second.
	Contains
	// Within means the first box lies entirely inside the second.
	Within
)

func (r Relation) String() string {
	switch r {
	case Disjoint:
		return "DISJOINT"
	case Intersects:
		return "INTERSECTS"
	case Contains:
		return "CONTAINS"
	case Within:
		return "WITHIN"
	default:
		return "UNKNOWN"
	}
}

// CheckLongitude reports whether x is a valid longitude.
func CheckLongitude(x float64) bool {
	return x >= -180 && x <= 180
}

// CheckLatitude reports whether y is a valid latitude.
func CheckLatitude(y float64) bool {
	return y >= -90 && y <= 90
}

// CheckBox reports whether b has valid coordinates and a non-negative
// latitude span. It checks both corners' latitudes independently; a box
// with MaxLon < MinLon is valid (it denotes an antimeridian crossing, not
// an error).
func CheckBox(b BBox) bool {
	return CheckLongitude(b.MaxLon) && CheckLongitude(b.MinLon) &&
		CheckLatitude(b.MaxLat) && CheckLatitude(b.MinLat) &&
		b.MaxLat >= b.MinLat
}

// PointInBox reports whether p lies inside b, with longitude wraparound
// across the antimeridian when b.MaxLon < b.MinLon.
func PointInBox(b BBox, p Point) bool {
	if p.Lat < b.MinLat || p.Lat > b.MaxLat {
		return false
	}

	minX, maxX, px := b.MinLon, b.MaxLon, p.Lon
	raw := maxX - minX
	if raw < 0 {
		maxX = minX + raw + 360
	}

	if px < minX {
		px += 360
	} else if px <= maxX {
		return true
	} else {
		px -= 360
	}

	return px >= minX && px <= maxX
}

// Relate compares two bounding boxes and reports how a relates to b:
// Contains means a entirely covers b, Within means a lies entirely inside
// b, Intersects is any other non-empty overlap, and Disjoint is no overlap
// at all.
func Relate(a, b BBox) Relation {
	latRel := relate1D(a.MinLat, a.MaxLat, b.MinLat, b.MaxLat)
	if latRel == Disjoint {
		return Disjoint
	}

	lonRel := relateLongitude(a.MinLon, a.MaxLon, b.MinLon, b.MaxLon)
	if lonRel == Disjoint {
		return Disjoint
	}

	if latRel == lonRel {
		return latRel
	}

	latSpanEqual := a.MinLat == b.MinLat && a.MaxLat == b.MaxLat
	lonSpanEqual := a.MinLon == b.MinLon && a.MaxLon == b.MaxLon
	switch {
	case latSpanEqual:
		return lonRel
	case lonSpanEqual:
		return latRel
	default:
		return Intersects
	}
}

// relate1D computes the non-wrapping 1-D relation of interval
// b=[bMin,bMax] against interval a=[aMin,aMax], from a's perspective:
// Contains means a contains b, Within means a is within b.
func relate1D(aMin, aMax, bMin, bMax float64) Relation {
	switch {
	case bMin > aMax || bMax < aMin:
		return Disjoint
	case bMin >= aMin && bMax <= aMax:
		return Contains
	case bMin <= aMin && bMax >= aMax:
		return Within
	default:
		return Intersects
	}
}

// relateLongitude computes the 1-D relation on the longitude axis, handling
// antimeridian wraparound on either or both sides.
func relateLongitude(aMin, aMax, bMin, bMax float64) Relation {
	aFull := aMax-aMin == 360
	bFull := bMax-bMin == 360
	switch {
	case aFull && bFull:
		return Contains // equal full ranges: treat as a contains b
	case aFull:
		return Contains
	case bFull:
		return Within
	}

	if aMax < aMin {
		aMax += 360
	}
	if bMax < bMin {
		bMax += 360
	}

	if bMin > aMax || bMax < aMin {
		// Still disjoint on the extended line; one interval lies entirely
		// to the left of the other purely because of where the wrap
		// happened to land. Shift the left one by +360 and retry.
		if aMax < bMin {
			return relate1D(aMin+360, aMax+360, bMin, bMax)
		}
		return relate1D(aMin, aMax, bMin+360, bMax+360)
	}

	return relate1D(aMin, aMax, bMin, bMax)
}

// combine returns the smallest box containing both a and b.
func combine(a, b BBox) BBox {
	return BBox{
		MinLon: math.Min(a.MinLon, b.MinLon),
		MinLat: math.Min(a.MinLat, b.MinLat),
		MaxLon: math.Max(a.MaxLon, b.MaxLon),
		MaxLat: math.Max(a.MaxLat, b.MaxLat),
	}
}

// boundsOf returns the smallest box enclosing p.
func boundsOf(p Point) BBox {
	return BBox{MinLon: p.Lon, MaxLon: p.Lon, MinLat: p.Lat, MaxLat: p.Lat}
}
