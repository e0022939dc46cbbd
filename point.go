package rrt

import (
	"gonum.org/v1/gonum/floats"
)

// Point is a configuration: one real coordinate per degree of freedom.
type Point []float64

// Clone returns a copy of p.
func (p Point) Clone() Point {
	out := make(Point, len(p))
	copy(out, p)
	return out
}

// Path is an ordered sequence of waypoints.
type Path []Point

// Length returns the summed Euclidean length of the path's segments.
func (p Path) Length() float64 {
	var total float64
	for i := 1; i < len(p); i++ {
		total += Distance(p[i-1], p[i])
	}
	return total
}

// Clone returns a deep copy of the path.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	for i, q := range p {
		out[i] = q.Clone()
	}
	return out
}

// FreeFunc reports whether a configuration is feasible (collision free,
// within limits).
type FreeFunc func(Point) bool

// EdgeFunc reports whether the straight segment from a to b is feasible.
type EdgeFunc func(a, b Point) bool

// SampleFunc draws a random configuration.
type SampleFunc func() Point

// Distance is the Euclidean distance between a and b. It panics if their
// dimensions differ.
func Distance(a, b Point) float64 {
	return floats.Distance(a, b, 2)
}

// steer returns a copy of to when it is within stepLength of from, and
// otherwise the point stepLength along the segment from -> to.
func steer(from, to Point, stepLength float64) Point {
	dist := Distance(from, to)
	if dist <= stepLength {
		return to.Clone()
	}
	return stepToward(from, to, stepLength, dist)
}

// stepToward moves stepLength from from toward to, given their distance.
func stepToward(from, to Point, stepLength, dist float64) Point {
	dir := floats.SubTo(make(Point, len(to)), to, from)
	return floats.AddScaledTo(make(Point, len(from)), from, stepLength/dist, dir)
}

func reversePath(path Path) {
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
}
