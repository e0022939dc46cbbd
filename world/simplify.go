package world

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// Simplify reduces each zone with Douglas-Peucker at tolerance epsilon.
// Zones whose outer ring would collapse below a triangle are kept as they
// were. The input zones are not modified.
func Simplify(zones []orb.Polygon, epsilon float64) []orb.Polygon {
	if epsilon <= 0 {
		return zones
	}
	dp := simplify.DouglasPeucker(epsilon)
	out := make([]orb.Polygon, len(zones))
	for i, zone := range zones {
		simplified := dp.Polygon(zone.Clone())
		if len(simplified) == 0 || len(simplified[0]) < 4 {
			out[i] = zone
			continue
		}
		out[i] = simplified
	}
	return out
}

// VertexCount returns the total number of ring points across zones.
func VertexCount(zones []orb.Polygon) int {
	var n int
	for _, zone := range zones {
		for _, ring := range zone {
			n += len(ring)
		}
	}
	return n
}

// EstimateEpsilon suggests a simplification tolerance for zones spread over
// bounds. It grows with the vertex count and stays a small fraction of the
// workspace diagonal.
func EstimateEpsilon(zones []orb.Polygon, bounds orb.Bound) float64 {
	diag := math.Hypot(bounds.Max[0]-bounds.Min[0], bounds.Max[1]-bounds.Min[1])
	base := diag * 2e-6

	switch n := VertexCount(zones); {
	case n > 50000:
		return base * 10
	case n > 30000:
		return base * 7
	case n > 20000:
		return base * 5
	case n > 10000:
		return base * 4
	case n > 5000:
		return base * 3
	case n > 2000:
		return base * 2
	case n > 1000:
		return base * 1.5
	default:
		return base
	}
}
