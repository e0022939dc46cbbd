package rrt

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

const (
	startTreeName = "start"
	goalTreeName  = "goal"
	starTreeName  = "rrt_star"

	// samePointTol absorbs rounding when a connect step lands on the
	// vertex it was aimed at.
	samePointTol = 1e-12
)

// DualRRTConnect searches for a feasible path from start to goal by growing
// one tree from each end. Every iteration draws a sample, extends the active
// tree one step toward it and, if that succeeded, tries to connect the other
// tree all the way to the new vertex. The trees swap roles after every
// iteration.
//
// The returned path runs from start to goal, and consecutive waypoints are
// at most extendLength apart. ErrNoPath is returned after maxTries
// iterations without a connection. Mismatched start and goal dimensions or
// a non-positive extendLength panic.
func DualRRTConnect(
	start, goal Point,
	isFree FreeFunc,
	sample SampleFunc,
	extendLength float64,
	maxTries int,
	opts ...Option,
) (Path, error) {
	checkSameDim(start, goal)
	checkExtendLength(extendLength)
	o := newOptions(opts)

	treeA := newTree(startTreeName, len(start), o)
	treeB := newTree(goalTreeName, len(goal), o)
	treeA.AddVertex(start)
	treeB.AddVertex(goal)

	for i := 0; i < maxTries; i++ {
		o.logger.Debugw("dual rrt connect", "iteration", i, treeA.name, treeA.Len(), treeB.name, treeB.Len())

		status, newIndex := treeA.Extend(sample(), extendLength, isFree)
		if status != Trapped {
			qNew := treeA.Point(newIndex)
			if connected, reachIndex := treeB.Connect(qNew, extendLength, isFree); connected == Reached {
				path := joinTrees(treeA, newIndex, treeB, reachIndex)
				o.logger.Debugw("trees connected", "iteration", i, "waypoints", len(path))
				return path, nil
			}
		}

		treeA, treeB = treeB, treeA
	}
	return nil, errors.Wrapf(ErrNoPath, "dual rrt connect gave up after %d tries", maxTries)
}

// joinTrees builds the path root(a) -> aIndex -> bIndex -> root(b), ordered
// start to goal whichever tree is the start tree. Consecutive points that
// coincide are merged, keeping b's copy so root(b) stays exact.
func joinTrees(a *Tree, aIndex int, b *Tree, bIndex int) Path {
	path := a.PathFromRoot(aIndex)
	rest := append(Path{b.Point(bIndex).Clone()}, b.PathToRoot(bIndex)...)
	for _, p := range rest {
		if last := len(path) - 1; floats.EqualApprox(p, path[last], samePointTol) {
			path[last] = p
			continue
		}
		path = append(path, p)
	}
	if b.name == startTreeName {
		reversePath(path)
	}
	return path
}

// RRTStarConnect grows a single tree from start using ExtendRewire. With
// the configured goal bias (DefaultGoalBias unless overridden) the goal is
// used as the target instead of a fresh sample. As soon as a new vertex lies
// within extendLength of a feasible goal, the goal is attached to it and the
// path start -> goal is returned.
//
// If the budget runs out first, the path to the vertex closest to the goal
// is returned instead; it does not end at goal, and is just [start] when no
// vertex improved on the start. The error is always nil and exists for
// symmetry with DualRRTConnect.
func RRTStarConnect(
	start, goal Point,
	isFree FreeFunc,
	sample SampleFunc,
	extendLength float64,
	maxTries int,
	opts ...Option,
) (Path, error) {
	checkSameDim(start, goal)
	checkExtendLength(extendLength)
	o := newOptions(opts)

	tree := newTree(starTreeName, len(start), o)
	closest := tree.AddVertex(start)
	minDistToGoal := Distance(goal, start)

	for i := 0; i < maxTries; i++ {
		var target Point
		if o.rng.Float64() < o.goalBias {
			target = goal
		} else {
			target = sample()
		}

		status, index := tree.ExtendRewire(target, extendLength, isFree)
		if status == Trapped {
			continue
		}

		distToGoal := Distance(goal, tree.Point(index))
		if distToGoal < minDistToGoal {
			closest, minDistToGoal = index, distToGoal
		}

		if distToGoal < extendLength && isFree(goal) && tree.edgeClear(tree.Point(index), goal) {
			goalIndex := index
			if distToGoal > 0 {
				goalIndex = tree.AddVertex(goal)
				tree.AddEdge(index, goalIndex)
			}
			o.logger.Debugw("goal connected", "iteration", i, "vertices", tree.Len())
			return tree.PathFromRoot(goalIndex), nil
		}
	}

	o.logger.Debugw("goal not reached, returning closest vertex", "distance", minDistToGoal, "vertices", tree.Len())
	return tree.PathFromRoot(closest), nil
}
