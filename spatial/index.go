// Package spatial indexes N-dimensional points for nearest-neighbor and
// radius queries.
//
// Points are identified by the sequential index they were inserted under,
// starting at zero. Two backends are provided: RTree, built on rtreego, and
// KDTree, built on the gonum k-d tree. Both answer queries exactly.
package spatial

import (
	"fmt"
	"math"
)

// Index maps points to the index they were inserted under.
//
// Insert never fails for well-formed points. A point of the wrong
// dimension, a non-finite coordinate or a nearest query on an empty index
// is a programming error and panics.
type Index interface {
	// Insert adds p and returns its index, which is the number of points
	// inserted before it.
	Insert(p []float64) int
	// NearestOne returns the index of the point closest to q.
	NearestOne(q []float64) int
	// WithinRadius returns the indices of every point whose Euclidean
	// distance to q is at most radius. Order is unspecified.
	WithinRadius(q []float64, radius float64) []int
	// Len is the number of points in the index.
	Len() int
	// Dim is the dimension of the indexed points.
	Dim() int
}

// Factory builds an empty Index for points of the given dimension.
type Factory func(dim int) Index

// NewRTreeIndex is a Factory for RTree.
func NewRTreeIndex(dim int) Index { return NewRTree(dim) }

// NewKDTreeIndex is a Factory for KDTree.
func NewKDTreeIndex(dim int) Index { return NewKDTree(dim) }

func checkDim(dim int) {
	if dim < 1 {
		panic(fmt.Sprintf("spatial: invalid dimension %d", dim))
	}
}

func checkPoint(dim int, p []float64) {
	if len(p) != dim {
		panic(fmt.Sprintf("spatial: point has dimension %d, index has %d", len(p), dim))
	}
	for i, c := range p {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			panic(fmt.Sprintf("spatial: coordinate %d is not finite (%v)", i, c))
		}
	}
}

// SquaredDistance is the squared Euclidean distance between a and b.
func SquaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
