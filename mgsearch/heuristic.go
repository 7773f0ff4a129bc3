package mgsearch

import "math"

// PathCostFn is an admissible lower bound on the cost of travelling
// between two configurations, used by GoalHeuristic to blend distance with
// quality penalty. A Roadmap's EdgeCostComputer.LowerBound satisfies this.
type PathCostFn func(a, b Config) float64

// GoalHeuristic estimates the remaining cost from a configuration to the
// best reachable goal, blending the path-cost lower bound to the nearest
// goal with a penalty for that goal's quality relative to the best quality
// currently known. It mirrors the reference MGGoalDistance: the quality
// term is scaled by lambda / (max quality - min quality) so that lambda
// expresses the tradeoff independent of the specific quality units a
// caller uses.
type GoalHeuristic struct {
	goals      *GoalSet
	pathCost   PathCostFn
	lambda     float64

	scaledLambda float64
	maxQuality   float64

	// perGrasp holds, for each grasp id with at least one goal, that
	// grasp's own subset of goals, so costToGo can be restricted to goals
	// reachable under a specific grasp.
	perGrasp map[GraspID][]Goal
	all      []Goal
}

// NewGoalHeuristic builds a GoalHeuristic over goals' current contents.
// Goals added to goals after construction are not reflected; call
// NewGoalHeuristic again (or Refresh) after the goal set changes.
func NewGoalHeuristic(goals *GoalSet, pathCost PathCostFn, lambda float64) *GoalHeuristic {
	h := &GoalHeuristic{goals: goals, pathCost: pathCost, lambda: lambda}
	h.Refresh()
	return h
}

// Refresh recomputes the heuristic's cached quality normalization and
// per-grasp goal partition from the current contents of its GoalSet. It
// must be called after goals are added to or removed from the set for
// costToGo to reflect the new goal population.
func (h *GoalHeuristic) Refresh() {
	all := h.goals.All()
	h.all = all
	h.perGrasp = make(map[GraspID][]Goal)
	for _, g := range all {
		h.perGrasp[g.GraspID] = append(h.perGrasp[g.GraspID], g)
	}
	if len(all) == 0 {
		h.maxQuality = 0
		h.scaledLambda = h.lambda
		return
	}
	maxQ, minQ := all[0].Quality, all[0].Quality
	for _, g := range all[1:] {
		if g.Quality > maxQ {
			maxQ = g.Quality
		}
		if g.Quality < minQ {
			minQ = g.Quality
		}
	}
	h.maxQuality = maxQ
	normalizer := maxQ - minQ
	if normalizer == 0 {
		normalizer = 1
	}
	h.scaledLambda = h.lambda / normalizer
}

// GoalCost is the quality penalty term scaledLambda * (maxQuality -
// quality) that CostToGo adds on top of path-cost distance. It is also
// the per-goal constant an LPA* graph adapter adds when connecting a goal
// node to a virtual sink, since the sum of path cost to a goal plus
// GoalCost(quality) equals the value CostToGo would estimate for a point
// exactly at that goal.
func (h *GoalHeuristic) GoalCost(quality float64) float64 {
	return h.scaledLambda * (h.maxQuality - quality)
}

// CostToGo estimates the remaining cost from a to the best goal reachable
// under any grasp. It is a programmer error to call this before any goal
// has been registered.
func (h *GoalHeuristic) CostToGo(a Config) (float64, error) {
	if len(h.all) == 0 {
		return 0, errNoGoals
	}
	return h.nearestGoalCost(a, h.all), nil
}

// CostToGoGrasp estimates the remaining cost from a to the best goal
// reachable under grasp gid specifically. It is a programmer error to call
// this for a grasp with no associated goals.
func (h *GoalHeuristic) CostToGoGrasp(a Config, gid GraspID) (float64, error) {
	goals, ok := h.perGrasp[gid]
	if !ok || len(goals) == 0 {
		return 0, errNoGoalsForGrasp(gid)
	}
	return h.nearestGoalCost(a, goals), nil
}

// nearestGoalCost finds, among candidates, the goal minimizing
// pathCost(a, goal.Config) + GoalCost(goal.Quality), matching the
// reference implementation's nearest-neighbor query against a dummy goal
// placed at a with maximum quality. A linear scan is used in place of the
// reference's GNAT index: this package's non-goal scope keeps goal
// populations small enough that a spatial index would not pay for itself.
// candidates is always GoalSet.All()'s goal-id-ordered slice (directly, or
// partitioned by grasp while preserving that order), so a tie keeps the
// lowest-id goal on every run instead of depending on map iteration order.
func (h *GoalHeuristic) nearestGoalCost(a Config, candidates []Goal) float64 {
	best := math.Inf(1)
	for _, g := range candidates {
		c := h.pathCost(a, g.Config) + h.GoalCost(g.Quality)
		if c < best {
			best = c
		}
	}
	return best
}
