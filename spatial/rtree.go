package spatial

import (
	"github.com/dhconnelly/rtreego"
)

const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50

	// widens the radius search box so points exactly on the radius are
	// not dropped by rtreego's open-interval intersection test
	radiusSlack = 1e-9
)

// pointEntry wraps an indexed point for R-tree storage
type pointEntry struct {
	Point rtreego.Point
	BBox  rtreego.Rect
	Index int
}

// Bounds implements rtreego.Spatial interface
func (e *pointEntry) Bounds() rtreego.Rect {
	return e.BBox
}

// RTree is an Index backed by an R-tree. Points are stored as degenerate
// rectangles.
type RTree struct {
	dim  int
	tree *rtreego.Rtree
	size int
}

// NewRTree creates an empty R-tree index for points of dimension dim.
func NewRTree(dim int) *RTree {
	checkDim(dim)
	return &RTree{
		dim:  dim,
		tree: rtreego.NewTree(dim, rtreeMinChildren, rtreeMaxChildren),
	}
}

// Insert adds a point and returns its index.
func (rt *RTree) Insert(p []float64) int {
	checkPoint(rt.dim, p)

	point := make(rtreego.Point, len(p))
	copy(point, p)
	entry := &pointEntry{
		Point: point,
		BBox:  point.ToRect(0),
		Index: rt.size,
	}
	rt.tree.Insert(entry)
	rt.size++
	return entry.Index
}

// NearestOne returns the index of the point closest to q.
func (rt *RTree) NearestOne(q []float64) int {
	checkPoint(rt.dim, q)
	if rt.size == 0 {
		panic("spatial: nearest query on empty index")
	}
	nearest := rt.tree.NearestNeighbor(rtreego.Point(q))
	return nearest.(*pointEntry).Index
}

// WithinRadius returns the indices of all points within radius of q,
// boundary included.
func (rt *RTree) WithinRadius(q []float64, radius float64) []int {
	checkPoint(rt.dim, q)
	if radius < 0 || rt.size == 0 {
		return nil
	}

	// Box search first, then keep only what lies inside the ball
	maxSquared := radius * radius
	inBall := func(_ []rtreego.Spatial, obj rtreego.Spatial) (refuse, abort bool) {
		return SquaredDistance(q, obj.(*pointEntry).Point) > maxSquared, false
	}
	box := rtreego.Point(q).ToRect(radius + radius*radiusSlack + radiusSlack)
	results := rt.tree.SearchIntersect(box, inBall)

	indices := make([]int, 0, len(results))
	for _, item := range results {
		indices = append(indices, item.(*pointEntry).Index)
	}
	return indices
}

// Len returns the number of indexed points.
func (rt *RTree) Len() int {
	return rt.size
}

// Dim returns the point dimension.
func (rt *RTree) Dim() int {
	return rt.dim
}
