package rrt

import (
	"math"
	"math/rand"
	"testing"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"rrt-motion-planner/spatial"
)

// outsideSquare is free everywhere except the open square |x| < 1, |y| < 1.
func outsideSquare(p Point) bool {
	return !(math.Abs(p[0]) < 1 && math.Abs(p[1]) < 1)
}

func uniformSampler(rng *rand.Rand, lo, hi float64, dim int) SampleFunc {
	return func() Point {
		p := make(Point, dim)
		for i := range p {
			p[i] = lo + rng.Float64()*(hi-lo)
		}
		return p
	}
}

func scriptedSampler(t *testing.T, points ...Point) SampleFunc {
	t.Helper()
	return func() Point {
		if len(points) == 0 {
			t.Fatal("sampler called more often than scripted")
		}
		p := points[0]
		points = points[1:]
		return p
	}
}

func checkPath(t *testing.T, path Path, start, goal Point, extendLength float64, isFree FreeFunc) {
	t.Helper()
	test.That(t, len(path), test.ShouldBeGreaterThanOrEqualTo, 2)
	test.That(t, path[0], test.ShouldResemble, start)
	test.That(t, path[len(path)-1], test.ShouldResemble, goal)
	for i := 1; i < len(path); i++ {
		test.That(t, Distance(path[i-1], path[i]), test.ShouldBeLessThanOrEqualTo, extendLength+1e-9)
	}
	for _, p := range path[1 : len(path)-1] {
		test.That(t, isFree(p), test.ShouldBeTrue)
	}
}

func TestDualRRTConnectAroundSquare(t *testing.T) {
	logger := golog.NewTestLogger(t)
	start, goal := Point{-1.2, 0}, Point{1.2, 0}

	for name, factory := range map[string]spatial.Factory{
		"rtree":  spatial.NewRTreeIndex,
		"kdtree": spatial.NewKDTreeIndex,
	} {
		t.Run(name, func(t *testing.T) {
			sample := uniformSampler(rand.New(rand.NewSource(3)), -2, 2, 2)
			path, err := DualRRTConnect(start, goal, outsideSquare, sample, 0.2, 1000, WithLogger(logger), WithIndex(factory))
			test.That(t, err, test.ShouldBeNil)
			test.That(t, len(path), test.ShouldBeGreaterThanOrEqualTo, 4)
			checkPath(t, path, start, goal, 0.2, outsideSquare)

			before := len(path)
			SmoothPath(&path, outsideSquare, 0.2, 100, WithLogger(logger))
			test.That(t, len(path), test.ShouldBeGreaterThanOrEqualTo, 3)
			test.That(t, len(path), test.ShouldBeLessThanOrEqualTo, before)
			test.That(t, path[0], test.ShouldResemble, start)
			test.That(t, path[len(path)-1], test.ShouldResemble, goal)
			for _, p := range path {
				test.That(t, outsideSquare(p), test.ShouldBeTrue)
			}
		})
	}
}

func TestDualRRTConnectDeterministic(t *testing.T) {
	plan := func() Path {
		sample := uniformSampler(rand.New(rand.NewSource(11)), -2, 2, 2)
		path, err := DualRRTConnect(Point{-1.2, 0}, Point{1.2, 0}, outsideSquare, sample, 0.2, 1000)
		test.That(t, err, test.ShouldBeNil)
		return path
	}
	test.That(t, plan(), test.ShouldResemble, plan())
}

func TestDualRRTConnectFreeSpace(t *testing.T) {
	var calls int
	goal := Point{4, 0}
	sample := func() Point {
		calls++
		return goal
	}
	path, err := DualRRTConnect(Point{0, 0}, goal, alwaysFree, sample, 1, 100, WithLogger(golog.NewTestLogger(t)))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, calls, test.ShouldEqual, 1)
	test.That(t, path, test.ShouldHaveLength, 5)
	for i, p := range path {
		test.That(t, p[0], test.ShouldAlmostEqual, float64(i))
		test.That(t, p[1], test.ShouldAlmostEqual, 0.0)
	}

	prev := len(path)
	for _, extendLength := range []float64{0.5, 0.25, 0.1} {
		path, err := DualRRTConnect(Point{0, 0}, goal, alwaysFree, sample, extendLength, 100)
		test.That(t, err, test.ShouldBeNil)
		checkPath(t, path, Point{0, 0}, goal, extendLength, alwaysFree)
		test.That(t, len(path), test.ShouldBeGreaterThanOrEqualTo, prev)
		prev = len(path)
	}
}

func TestDualRRTConnectGoalWithinOneStep(t *testing.T) {
	goal := Point{0.5, 0}
	path, err := DualRRTConnect(Point{0, 0}, goal, alwaysFree, func() Point { return goal }, 1, 10)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, path, test.ShouldResemble, Path{{0, 0}, {0.5, 0}})
}

func TestDualRRTConnectEdgeCheck(t *testing.T) {
	start, goal := Point{0, 0}, Point{1, 0}
	sample := uniformSampler(rand.New(rand.NewSource(4)), -2, 2, 2)
	path, err := DualRRTConnect(start, goal, alwaysFree, sample, 1, 1000, WithEdgeCheck(wallEdge))
	test.That(t, err, test.ShouldBeNil)
	checkPath(t, path, start, goal, 1, alwaysFree)
	for i := 1; i < len(path); i++ {
		test.That(t, wallEdge(path[i-1], path[i]), test.ShouldBeTrue)
	}
}

func TestDualRRTConnectGoalTreeConnects(t *testing.T) {
	// The start tree is trapped on the first iteration, so the goal tree
	// makes the connection and the joined path has to be flipped.
	below := func(p Point) bool { return p[1] <= 0.5 }
	sample := scriptedSampler(t, Point{0, 5}, Point{1, 0})
	path, err := DualRRTConnect(Point{0, 0}, Point{2, 0}, below, sample, 1, 10)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, path, test.ShouldResemble, Path{{0, 0}, {1, 0}, {2, 0}})
}

func TestDualRRTConnectNoPath(t *testing.T) {
	var calls int
	sample := func() Point {
		calls++
		return Point{1, 1}
	}
	never := func(Point) bool { return false }
	path, err := DualRRTConnect(Point{0, 0}, Point{2, 0}, never, sample, 0.5, 50)
	test.That(t, path, test.ShouldBeEmpty)
	test.That(t, errors.Is(err, ErrNoPath), test.ShouldBeTrue)
	test.That(t, calls, test.ShouldEqual, 50)

	path, err = DualRRTConnect(Point{0, 0}, Point{2, 0}, alwaysFree, sample, 0.5, 0)
	test.That(t, path, test.ShouldBeEmpty)
	test.That(t, errors.Is(err, ErrNoPath), test.ShouldBeTrue)
}

func TestPlannersRejectBadInput(t *testing.T) {
	sample := func() Point { return Point{0, 0} }
	test.That(t, func() {
		DualRRTConnect(Point{0, 0}, Point{1, 1, 1}, alwaysFree, sample, 1, 10)
	}, test.ShouldPanic)
	test.That(t, func() {
		DualRRTConnect(Point{0, 0}, Point{1, 1}, alwaysFree, sample, 0, 10)
	}, test.ShouldPanic)
	test.That(t, func() {
		RRTStarConnect(Point{0}, Point{1, 1}, alwaysFree, sample, 1, 10)
	}, test.ShouldPanic)
	test.That(t, func() {
		RRTStarConnect(Point{0, 0}, Point{1, 1}, alwaysFree, sample, -0.5, 10)
	}, test.ShouldPanic)
}

func TestRRTStarConnectGoalBias(t *testing.T) {
	// With a goal bias of one the sampler is never consulted.
	sample := scriptedSampler(t)
	path, err := RRTStarConnect(Point{0, 0}, Point{2, 0}, alwaysFree, sample, 1, 10,
		WithGoalBias(1), WithLogger(golog.NewTestLogger(t)))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, path, test.ShouldResemble, Path{{0, 0}, {1, 0}, {2, 0}})
}

func TestRRTStarConnectAttachesGoal(t *testing.T) {
	sample := scriptedSampler(t, Point{0, 1}, Point{2, 1})
	goal := Point{1.5, 1.5}
	path, err := RRTStarConnect(Point{0, 0}, goal, alwaysFree, sample, 1, 10, WithGoalBias(0))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, path, test.ShouldResemble, Path{{0, 0}, {0, 1}, {1, 1}, {1.5, 1.5}})
}

func TestRRTStarConnectBudgetExhausted(t *testing.T) {
	wall := func(p Point) bool { return p[0] < 2.5 }
	path, err := RRTStarConnect(Point{0, 0}, Point{5, 0}, wall, scriptedSampler(t), 1, 20, WithGoalBias(1))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, path, test.ShouldResemble, Path{{0, 0}, {1, 0}, {2, 0}})

	path, err = RRTStarConnect(Point{0, 0}, Point{5, 0}, wall, scriptedSampler(t), 1, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, path, test.ShouldResemble, Path{{0, 0}})
}

func TestRRTStarConnectDeterministic(t *testing.T) {
	plan := func() Path {
		sample := uniformSampler(rand.New(rand.NewSource(13)), -2, 2, 2)
		path, err := RRTStarConnect(Point{-1.2, 0}, Point{1.2, 0}, outsideSquare, sample, 0.2, 2000,
			WithRand(rand.New(rand.NewSource(7))))
		test.That(t, err, test.ShouldBeNil)
		return path
	}
	first := plan()
	test.That(t, first, test.ShouldNotBeEmpty)
	test.That(t, plan(), test.ShouldResemble, first)
}

func TestRRTStarConnectEdgeCheck(t *testing.T) {
	start, goal := Point{0, 0}, Point{1, 0}
	rng := rand.New(rand.NewSource(6))
	path, err := RRTStarConnect(start, goal, alwaysFree, uniformSampler(rng, -2, 2, 2), 0.5, 5000,
		WithRand(rng), WithEdgeCheck(wallEdge))
	test.That(t, err, test.ShouldBeNil)
	checkPath(t, path, start, goal, 0.5, alwaysFree)
	for i := 1; i < len(path); i++ {
		test.That(t, wallEdge(path[i-1], path[i]), test.ShouldBeTrue)
	}
}

func TestRRTStarConnectAroundSquare(t *testing.T) {
	start, goal := Point{-1.2, 0}, Point{1.2, 0}
	rng := rand.New(rand.NewSource(5))
	path, err := RRTStarConnect(start, goal, outsideSquare, uniformSampler(rng, -2, 2, 2), 0.2, 5000,
		WithRand(rng), WithLogger(golog.NewTestLogger(t)))
	test.That(t, err, test.ShouldBeNil)
	checkPath(t, path, start, goal, 0.2, outsideSquare)
	test.That(t, path.Length(), test.ShouldBeGreaterThan, Distance(start, goal))
}
