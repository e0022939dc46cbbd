package rrt

// SmoothPath shortens path in place by random shortcutting. Each of the
// maxTries attempts picks two waypoints with at least one waypoint between
// them and walks the straight segment joining them in extendLength steps,
// checking isFree at every step. If the walk arrives within extendLength of
// the far waypoint, the waypoints in between are removed; otherwise the path
// is left as it was.
//
// With WithEdgeCheck every step of the walk must also pass the edge check.
//
// Waypoints are only ever removed, never moved. Paths with fewer than three
// waypoints are left untouched, and smoothing stops once two remain.
func SmoothPath(path *Path, isFree FreeFunc, extendLength float64, maxTries int, opts ...Option) {
	checkExtendLength(extendLength)
	p := *path
	if len(p) < 3 {
		return
	}
	o := newOptions(opts)
	before := len(p)

	for i := 0; i < maxTries; i++ {
		i1 := o.rng.Intn(len(p) - 2)
		i2 := i1 + 2 + o.rng.Intn(len(p)-i1-2)
		if !shortcutFree(p[i1], p[i2], extendLength, isFree, o.edgeFree) {
			continue
		}

		n := len(p)
		p = append(p[:i1+1], p[i2:]...)
		clear(p[len(p):n])
		if len(p) == 2 {
			break
		}
	}

	o.logger.Debugf("smoothPath %d -> %d waypoints", before, len(p))
	*path = p
}

// shortcutFree walks from toward to in stepLength increments and reports
// whether every intermediate point is feasible. A non-nil edgeFree must also
// accept each step, including the last one onto to.
func shortcutFree(from, to Point, stepLength float64, isFree FreeFunc, edgeFree EdgeFunc) bool {
	base := from
	for {
		dist := Distance(base, to)
		if dist < stepLength {
			return edgeFree == nil || edgeFree(base, to)
		}
		check := stepToward(base, to, stepLength, dist)
		if !isFree(check) || (edgeFree != nil && !edgeFree(base, check)) {
			return false
		}
		base = check
	}
}
