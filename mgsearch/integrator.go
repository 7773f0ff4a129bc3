package mgsearch

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// EdgeCostComputer turns a pair of endpoints into an admissible lower bound
// and, on demand, an exact traversal cost, both grasp-agnostic and
// grasp-conditional.
type EdgeCostComputer interface {
	// LowerBound is an admissible (never overestimating) lower bound on the
	// cost of travelling from a to b.
	LowerBound(a, b Config) float64
	// Cost is the grasp-agnostic exact cost of travelling from a to b.
	Cost(a, b Config) float64
	// ConditionalCost is the grasp-conditional exact cost of travelling
	// from a to b while holding the given grasp.
	ConditionalCost(a, b Config, gid GraspID) float64
}

// IntegralEdgeCostComputer evaluates edge cost by a left-Riemann sum of a
// per-point cost along the straight-line segment between the endpoints,
// short-circuiting to +Inf as soon as any sampled point is infeasible.
type IntegralEdgeCostComputer struct {
	space    StateSpace
	stepSize float64
}

// NewIntegralEdgeCostComputer builds an IntegralEdgeCostComputer that
// samples every stepSize units of configuration-space distance along a
// segment.
func NewIntegralEdgeCostComputer(space StateSpace, stepSize float64) *IntegralEdgeCostComputer {
	return &IntegralEdgeCostComputer{space: space, stepSize: stepSize}
}

// LowerBound returns the admissible configuration-space distance between a
// and b.
func (c *IntegralEdgeCostComputer) LowerBound(a, b Config) float64 {
	return c.space.Distance(a, b)
}

// Cost integrates the grasp-agnostic point cost along the segment a->b.
func (c *IntegralEdgeCostComputer) Cost(a, b Config) float64 {
	return c.integrate(a, b, c.space.Cost)
}

// ConditionalCost integrates the grasp-conditional point cost along the
// segment a->b while holding gid.
func (c *IntegralEdgeCostComputer) ConditionalCost(a, b Config, gid GraspID) float64 {
	return c.integrate(a, b, func(q Config) float64 {
		return c.space.ConditionalCost(q, gid)
	})
}

// integrate computes the left-Riemann sum of costFn along the segment from
// a to b, normalizing the direction vector to unit length before stepping
// so that every step advances exactly min(stepSize, remaining) along the
// segment regardless of floating-point error accumulation.
func (c *IntegralEdgeCostComputer) integrate(a, b Config, costFn PointCoster) float64 {
	delta := make(Config, len(a))
	for i := range delta {
		delta[i] = b[i] - a[i]
	}
	norm := floats.Norm(delta, 2)
	if norm == 0 {
		return 0
	}
	for i := range delta {
		delta[i] /= norm
	}
	integralCost := 0.0
	progress := 0.0
	for progress < norm {
		stepSizeK := math.Min(c.stepSize, norm-progress)
		q := make(Config, len(a))
		for i := range q {
			q[i] = a[i] + progress*delta[i]
		}
		dc := costFn(q)
		if math.IsInf(dc, 1) {
			return math.Inf(1)
		}
		integralCost += dc * stepSizeK
		progress += stepSizeK
	}
	return integralCost
}
