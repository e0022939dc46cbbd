package world

import (
	"context"

	rrt "rrt-motion-planner"
)

// ContextFree wraps isFree so that every point is infeasible once ctx is
// done. Planners then stop growing their trees and run out their budget
// without calling isFree again.
func ContextFree(ctx context.Context, isFree rrt.FreeFunc) rrt.FreeFunc {
	return func(p rrt.Point) bool {
		if ctx.Err() != nil {
			return false
		}
		return isFree(p)
	}
}
