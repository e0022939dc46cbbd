// Package world models a planar workspace with polygonal no-fly zones and
// turns it into the feasibility predicates and samplers the planners in
// package rrt consume. Points are (x, y) pairs; zones are closed, so a point
// on a zone boundary is blocked.
package world

import (
	"fmt"
	"math/rand"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	rrt "rrt-motion-planner"
)

// World is an immutable set of no-fly zones inside a rectangular workspace.
// It is safe for concurrent use.
type World struct {
	bounds orb.Bound
	zones  []orb.Polygon
	index  *zoneIndex
}

// New builds a world over bounds. Zones without an outer ring of at least
// three points are dropped.
func New(bounds orb.Bound, zones []orb.Polygon) *World {
	kept := make([]orb.Polygon, 0, len(zones))
	for _, zone := range zones {
		if len(zone) == 0 || len(zone[0]) < 3 {
			continue
		}
		kept = append(kept, zone)
	}
	return &World{
		bounds: bounds,
		zones:  kept,
		index:  newZoneIndex(kept),
	}
}

// With returns a new world over the same bounds holding w's zones plus
// extra.
func (w *World) With(extra []orb.Polygon) *World {
	zones := make([]orb.Polygon, 0, len(w.zones)+len(extra))
	zones = append(zones, w.zones...)
	zones = append(zones, extra...)
	return New(w.bounds, zones)
}

// Bounds returns the workspace rectangle.
func (w *World) Bounds() orb.Bound { return w.bounds }

// Zones returns the world's no-fly zones. The slice must not be modified.
func (w *World) Zones() []orb.Polygon { return w.zones }

// Len returns the number of zones.
func (w *World) Len() int { return w.index.size() }

// IsFree reports whether p lies inside the workspace and outside every
// zone. It panics unless p is two dimensional.
func (w *World) IsFree(p rrt.Point) bool {
	pt := toOrb(p)
	if !w.bounds.Contains(pt) {
		return false
	}
	for _, zone := range w.index.query(orb.Bound{Min: pt, Max: pt}) {
		if planar.PolygonContains(zone, pt) {
			return false
		}
	}
	return true
}

// SegmentClear reports whether the straight segment a-b stays inside the
// workspace and touches no zone.
func (w *World) SegmentClear(a, b rrt.Point) bool {
	seg := segment{a: toOrb(a), b: toOrb(b)}
	if !w.bounds.Contains(seg.a) || !w.bounds.Contains(seg.b) {
		return false
	}
	for _, zone := range w.index.query(orb.MultiPoint{seg.a, seg.b}.Bound()) {
		if segmentBlocked(seg, zone) {
			return false
		}
	}
	return true
}

// PathClear reports whether every segment of path is clear. A single
// waypoint path is clear when the waypoint is free.
func (w *World) PathClear(path rrt.Path) bool {
	if len(path) == 1 {
		return w.IsFree(path[0])
	}
	for i := 1; i < len(path); i++ {
		if !w.SegmentClear(path[i-1], path[i]) {
			return false
		}
	}
	return true
}

// Sampler returns a SampleFunc drawing points uniformly from the workspace.
// The returned function is not safe for concurrent use.
func (w *World) Sampler(rng *rand.Rand) rrt.SampleFunc {
	lo, hi := w.bounds.Min, w.bounds.Max
	return func() rrt.Point {
		return rrt.Point{
			lo[0] + rng.Float64()*(hi[0]-lo[0]),
			lo[1] + rng.Float64()*(hi[1]-lo[1]),
		}
	}
}

func toOrb(p rrt.Point) orb.Point {
	if len(p) != 2 {
		panic(fmt.Sprintf("world: points are two dimensional, got %d", len(p)))
	}
	return orb.Point{p[0], p[1]}
}
