package world

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// bboxPad widens every rectangle handed to the R-tree. rtreego treats
// rectangles that only share an edge as disjoint, and points on a zone's
// boundary are inside the zone.
const bboxPad = 1e-9

// zoneEntry wraps a zone for R-tree storage.
type zoneEntry struct {
	zone orb.Polygon
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (z *zoneEntry) Bounds() rtreego.Rect {
	return z.bbox
}

// zoneIndex answers "which zones may touch this region" queries.
type zoneIndex struct {
	tree *rtreego.Rtree
}

func newZoneIndex(zones []orb.Polygon) *zoneIndex {
	tree := rtreego.NewTree(2, 25, 50)
	for _, zone := range zones {
		tree.Insert(&zoneEntry{zone: zone, bbox: toRect(zone.Bound())})
	}
	return &zoneIndex{tree: tree}
}

// query returns the zones whose bounding box intersects bound.
func (zi *zoneIndex) query(bound orb.Bound) []orb.Polygon {
	results := zi.tree.SearchIntersect(toRect(bound))
	zones := make([]orb.Polygon, 0, len(results))
	for _, item := range results {
		zones = append(zones, item.(*zoneEntry).zone)
	}
	return zones
}

func (zi *zoneIndex) size() int {
	return zi.tree.Size()
}

// toRect converts an orb bound to a padded rtreego rectangle. Only
// mismatched dimensions fail, which two-element points rule out.
func toRect(b orb.Bound) rtreego.Rect {
	r, _ := rtreego.NewRectFromPoints(
		rtreego.Point{b.Min[0] - bboxPad, b.Min[1] - bboxPad},
		rtreego.Point{b.Max[0] + bboxPad, b.Max[1] + bboxPad},
	)
	return r
}
