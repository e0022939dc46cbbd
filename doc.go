// Package rrt implements sampling-based motion planning over a continuous
// configuration space of any dimension.
//
// The planners never model obstacles. Callers supply a feasibility
// predicate (FreeFunc) and a random sample generator (SampleFunc); the
// package grows rapidly-exploring random trees toward samples and returns an
// ordered list of waypoints from start to goal.
//
// Entry points:
//
//   - DualRRTConnect: grow one tree from the start and one from the goal,
//     alternating which is extended, until they meet.
//   - RRTStarConnect: grow a single tree from the start with local
//     rewiring and goal-biased sampling.
//   - SmoothPath: shortcut an existing path in place.
//
// Trees, extension and the planners are single threaded. The predicate and
// sampler are called strictly one at a time.
package rrt
