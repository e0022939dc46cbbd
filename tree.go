package rrt

import (
	"fmt"

	"github.com/edaniels/golog"

	"rrt-motion-planner/spatial"
)

const noParent = -1

// vertex is a tree node; parent indexes the same vertex store.
type vertex struct {
	point  Point
	parent int
}

// Tree is an incrementally grown rooted tree over configuration-space
// points. Vertices live in an append-only store and are addressed by stable
// integer indices; every vertex is also held by the tree's spatial index.
//
// A Tree is not safe for concurrent mutation.
type Tree struct {
	name     string
	dim      int
	index    spatial.Index
	vertices []vertex
	edgeFree EdgeFunc
	logger   golog.Logger
}

// NewTree creates an empty tree for points of dimension dim. The name only
// labels log output.
func NewTree(name string, dim int, opts ...Option) *Tree {
	return newTree(name, dim, newOptions(opts))
}

func newTree(name string, dim int, o *options) *Tree {
	return &Tree{
		name:     name,
		dim:      dim,
		index:    o.index(dim),
		edgeFree: o.edgeFree,
		logger:   o.logger,
	}
}

func (t *Tree) edgeClear(a, b Point) bool {
	return t.edgeFree == nil || t.edgeFree(a, b)
}

// Name returns the tree's label.
func (t *Tree) Name() string { return t.name }

// Dim returns the dimension of the tree's points.
func (t *Tree) Dim() int { return t.dim }

// Len returns the number of vertices.
func (t *Tree) Len() int { return len(t.vertices) }

// Point returns the configuration stored at index. The returned slice is
// owned by the tree and must not be modified.
func (t *Tree) Point(index int) Point { return t.vertices[index].point }

// Parent returns the parent of index, or false for a root.
func (t *Tree) Parent(index int) (int, bool) {
	parent := t.vertices[index].parent
	return parent, parent != noParent
}

// AddVertex stores a copy of p as a new parentless vertex and returns its
// index.
func (t *Tree) AddVertex(p Point) int {
	point := p.Clone()
	index := t.index.Insert(point)
	if index != len(t.vertices) {
		panic(fmt.Sprintf("rrt: tree %q index out of sync: got %d, want %d", t.name, index, len(t.vertices)))
	}
	t.vertices = append(t.vertices, vertex{point: point, parent: noParent})
	return index
}

// AddEdge makes parent the parent of child, replacing any previous parent.
// No cycle check is made.
func (t *Tree) AddEdge(parent, child int) {
	if parent < 0 || parent >= len(t.vertices) {
		panic(fmt.Sprintf("rrt: tree %q has no vertex %d", t.name, parent))
	}
	t.vertices[child].parent = parent
}

// Nearest returns the index of the vertex closest to p. The tree must not be
// empty.
func (t *Tree) Nearest(p Point) int {
	return t.index.NearestOne(p)
}

// NeighborsWithin returns the indices of all vertices within radius of p.
func (t *Tree) NeighborsWithin(p Point, radius float64) []int {
	return t.index.WithinRadius(p, radius)
}

// PathToRoot walks parent links from index's parent up to and including the
// root. The vertex at index itself is not included; points are returned
// leaf to root.
func (t *Tree) PathToRoot(index int) Path {
	var path Path
	for cur := t.vertices[index].parent; cur != noParent; cur = t.vertices[cur].parent {
		path = append(path, t.vertices[cur].point.Clone())
	}
	return path
}

// PathFromRoot returns the points from the root to index, both inclusive.
func (t *Tree) PathFromRoot(index int) Path {
	path := t.PathToRoot(index)
	reversePath(path)
	return append(path, t.vertices[index].point.Clone())
}

// ancestors returns index and every vertex above it.
func (t *Tree) ancestors(index int) map[int]struct{} {
	seen := map[int]struct{}{}
	for cur := index; cur != noParent; cur = t.vertices[cur].parent {
		seen[cur] = struct{}{}
	}
	return seen
}
