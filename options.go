package rrt

import (
	"math/rand"

	"github.com/edaniels/golog"
	"go.uber.org/zap"

	"rrt-motion-planner/spatial"
)

const (
	// DefaultGoalBias is the probability RRTStarConnect samples the goal
	// itself instead of calling the sampler.
	DefaultGoalBias = 0.1

	defaultSeed = 1
)

type options struct {
	logger   golog.Logger
	rng      *rand.Rand
	goalBias float64
	index    spatial.Factory
	edgeFree EdgeFunc
}

// Option configures trees, planners and the smoother.
type Option func(*options)

// WithLogger sets the logger used for debug traces. Without it nothing is
// logged.
func WithLogger(logger golog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRand sets the random source used for goal biasing and for picking
// shortcut endpoints. Without it a source seeded with a fixed value is used,
// so runs with deterministic callbacks are reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithGoalBias sets the goal sampling probability for RRTStarConnect.
func WithGoalBias(bias float64) Option {
	return func(o *options) { o.goalBias = bias }
}

// WithEdgeCheck makes trees, planners and the smoother also require the
// straight segment between consecutive points to pass fn. Without it only
// the points themselves are checked.
func WithEdgeCheck(fn EdgeFunc) Option {
	return func(o *options) { o.edgeFree = fn }
}

// WithIndex selects the spatial index backend for new trees.
func WithIndex(factory spatial.Factory) Option {
	return func(o *options) { o.index = factory }
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:   zap.NewNop().Sugar(),
		goalBias: DefaultGoalBias,
		index:    spatial.NewRTreeIndex,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.rng == nil {
		//nolint:gosec
		o.rng = rand.New(rand.NewSource(defaultSeed))
	}
	return o
}
