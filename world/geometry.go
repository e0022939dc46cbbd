package world

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// segment is a straight line between two planar points.
type segment struct {
	a, b orb.Point
}

// segmentsIntersect reports whether two segments share at least one point,
// touching and collinear overlap included.
func segmentsIntersect(s1, s2 segment) bool {
	p1, p2 := s1.a, s1.b
	p3, p4 := s2.a, s2.b

	d1 := direction(p3, p4, p1)
	d2 := direction(p3, p4, p2)
	d3 := direction(p1, p2, p3)
	d4 := direction(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// collinear cases
	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}
	return false
}

// direction is the cross product (p3-p1) x (p2-p1).
func direction(p1, p2, p3 orb.Point) float64 {
	return (p3[0]-p1[0])*(p2[1]-p1[1]) - (p2[0]-p1[0])*(p3[1]-p1[1])
}

// onSegment reports whether q lies in the bounding box of segment pr. It is
// only meaningful when the three points are collinear.
func onSegment(p, r, q orb.Point) bool {
	return q[0] <= math.Max(p[0], r[0]) && q[0] >= math.Min(p[0], r[0]) &&
		q[1] <= math.Max(p[1], r[1]) && q[1] >= math.Min(p[1], r[1])
}

// segmentTouchesRing reports whether seg intersects any edge of ring.
func segmentTouchesRing(seg segment, ring orb.Ring) bool {
	n := len(ring)
	for i := 0; i < n; i++ {
		edge := segment{a: ring[i], b: ring[(i+1)%n]}
		if segmentsIntersect(seg, edge) {
			return true
		}
	}
	return false
}

// segmentBlocked reports whether seg touches zone: it crosses or touches a
// boundary, or lies entirely inside the zone.
func segmentBlocked(seg segment, zone orb.Polygon) bool {
	for _, ring := range zone {
		if segmentTouchesRing(seg, ring) {
			return true
		}
	}
	// with no boundary crossing the segment is either wholly inside or
	// wholly outside
	return planar.PolygonContains(zone, seg.a)
}

// containedIn reports whether every vertex of a's outer ring lies in b.
func containedIn(a, b orb.Polygon) bool {
	if len(a) == 0 || len(b) == 0 || len(a[0]) == 0 || len(b[0]) == 0 {
		return false
	}
	ab, bb := a.Bound(), b.Bound()
	if !bb.Contains(ab.Min) || !bb.Contains(ab.Max) {
		return false
	}
	for _, p := range a[0] {
		if !planar.PolygonContains(b, p) {
			return false
		}
	}
	return true
}
