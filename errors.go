package rrt

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoPath is returned when a planner exhausts its iteration budget without
// connecting start and goal.
var ErrNoPath = errors.New("rrt: no path found within budget")

func checkExtendLength(extendLength float64) {
	if !(extendLength > 0) {
		panic(fmt.Sprintf("rrt: extend length must be positive, got %v", extendLength))
	}
}

func checkSameDim(start, goal Point) {
	if len(start) != len(goal) {
		panic(fmt.Sprintf("rrt: start has dimension %d, goal has %d", len(start), len(goal)))
	}
}
