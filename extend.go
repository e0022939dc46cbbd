package rrt

import (
	"rrt-motion-planner/spatial"
)

// Status is the outcome of one extension step.
type Status int

const (
	// Trapped means the candidate point was infeasible; the tree is unchanged.
	Trapped Status = iota
	// Advanced means a vertex was added closer to the target but not within
	// one step of it.
	Advanced
	// Reached means a vertex was added within one step of the target.
	Reached
)

func (s Status) String() string {
	switch s {
	case Trapped:
		return "trapped"
	case Advanced:
		return "advanced"
	case Reached:
		return "reached"
	default:
		return "unknown"
	}
}

// Extend grows the tree one step from its nearest vertex toward target. The
// step is extendLength long, or lands on target when it is closer than that.
// With WithEdgeCheck the step is trapped unless its segment is clear too.
// On Advanced or Reached the returned index is the new vertex; on Trapped
// it is -1.
func (t *Tree) Extend(target Point, extendLength float64, isFree FreeFunc) (Status, int) {
	return t.extend(target, extendLength, isFree, false)
}

// ExtendRewire is Extend followed by one pass of local rewiring: each
// vertex within extendLength of the new vertex is re-parented to it when
// the new vertex is closer than its current parent. Costs are not
// propagated to descendants.
func (t *Tree) ExtendRewire(target Point, extendLength float64, isFree FreeFunc) (Status, int) {
	return t.extend(target, extendLength, isFree, true)
}

// Connect extends toward target repeatedly until it is reached or a step is
// trapped.
func (t *Tree) Connect(target Point, extendLength float64, isFree FreeFunc) (Status, int) {
	for {
		status, index := t.Extend(target, extendLength, isFree)
		if status != Advanced {
			return status, index
		}
	}
}

func (t *Tree) extend(target Point, extendLength float64, isFree FreeFunc, rewire bool) (Status, int) {
	checkExtendLength(extendLength)

	nearest := t.Nearest(target)
	candidate := steer(t.vertices[nearest].point, target, extendLength)
	t.logger.Debugw("extend", "tree", t.name, "candidate", candidate)
	if !isFree(candidate) || !t.edgeClear(t.vertices[nearest].point, candidate) {
		return Trapped, -1
	}

	newIndex := t.AddVertex(candidate)
	t.AddEdge(nearest, newIndex)
	if rewire {
		t.rewire(newIndex, extendLength)
	}

	if Distance(candidate, target) < extendLength {
		return Reached, newIndex
	}
	t.logger.Debugw("advanced", "tree", t.name, "target", target)
	return Advanced, newIndex
}

// rewire re-parents neighbors of newIndex that sit closer to it than to
// their own parent. Ancestors of newIndex are skipped to keep the tree
// acyclic.
func (t *Tree) rewire(newIndex int, radius float64) {
	newPoint := t.vertices[newIndex].point
	ancestors := t.ancestors(newIndex)
	for _, neighbor := range t.NeighborsWithin(newPoint, radius) {
		if _, ok := ancestors[neighbor]; ok {
			continue
		}
		parent := t.vertices[neighbor].parent
		if parent == noParent {
			continue
		}
		neighborPoint := t.vertices[neighbor].point
		if spatial.SquaredDistance(newPoint, neighborPoint) < spatial.SquaredDistance(t.vertices[parent].point, neighborPoint) &&
			t.edgeClear(newPoint, neighborPoint) {
			t.vertices[neighbor].parent = newIndex
		}
	}
}
