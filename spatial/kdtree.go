package spatial

import (
	"gonum.org/v1/gonum/spatial/kdtree"
)

// kdPoint is a kdtree.Comparable carrying the point's index.
type kdPoint struct {
	coords []float64
	index  int
}

func (p kdPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(kdPoint)
	return p.coords[d] - q.coords[d]
}

func (p kdPoint) Dims() int { return len(p.coords) }

// Distance is squared, as kdtree requires.
func (p kdPoint) Distance(c kdtree.Comparable) float64 {
	return SquaredDistance(p.coords, c.(kdPoint).coords)
}

// KDTree is an Index backed by an unbalanced, incrementally built k-d tree.
type KDTree struct {
	dim  int
	tree *kdtree.Tree
}

// NewKDTree creates an empty k-d tree index for points of dimension dim.
func NewKDTree(dim int) *KDTree {
	checkDim(dim)
	return &KDTree{dim: dim, tree: &kdtree.Tree{}}
}

// Insert adds a point and returns its index.
func (kt *KDTree) Insert(p []float64) int {
	checkPoint(kt.dim, p)

	coords := make([]float64, len(p))
	copy(coords, p)
	index := kt.tree.Len()
	kt.tree.Insert(kdPoint{coords: coords, index: index}, false)
	return index
}

// NearestOne returns the index of the point closest to q.
func (kt *KDTree) NearestOne(q []float64) int {
	checkPoint(kt.dim, q)
	nearest, _ := kt.tree.Nearest(kdPoint{coords: q})
	if nearest == nil {
		panic("spatial: nearest query on empty index")
	}
	return nearest.(kdPoint).index
}

// WithinRadius returns the indices of all points within radius of q,
// boundary included.
func (kt *KDTree) WithinRadius(q []float64, radius float64) []int {
	checkPoint(kt.dim, q)
	if radius < 0 || kt.tree.Len() == 0 {
		return nil
	}

	keeper := kdtree.NewDistKeeper(radius * radius)
	kt.tree.NearestSet(keeper, kdPoint{coords: q})

	indices := make([]int, 0, keeper.Len())
	for _, found := range keeper.Heap {
		// the keeper's sentinel survives when a point ties with it
		if found.Comparable == nil {
			continue
		}
		indices = append(indices, found.Comparable.(kdPoint).index)
	}
	return indices
}

// Len returns the number of indexed points.
func (kt *KDTree) Len() int {
	return kt.tree.Len()
}

// Dim returns the point dimension.
func (kt *KDTree) Dim() int {
	return kt.dim
}
