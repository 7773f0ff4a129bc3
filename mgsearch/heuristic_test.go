package mgsearch

import (
	"testing"

	"go.viam.com/test"
)

func TestGoalHeuristicCostToGoNoGoalsIsProgrammerError(t *testing.T) {
	space := freeSpace2D()
	r := NewRoadmap(space)
	gs := NewGoalSet(r)
	h := NewGoalHeuristic(gs, r.coster.LowerBound, 1.0)
	_, err := h.CostToGo(Config{0, 0})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestGoalHeuristicPrefersHigherQualityGoal(t *testing.T) {
	space := freeSpace2D()
	r := NewRoadmap(space)
	gs := NewGoalSet(r)
	test.That(t, gs.AddGoal(Goal{ID: 1, Config: Config{1, 1}, GraspID: 1, Quality: 0}), test.ShouldBeNil)
	test.That(t, gs.AddGoal(Goal{ID: 2, Config: Config{1, 1}, GraspID: 1, Quality: 1}), test.ShouldBeNil)

	h := NewGoalHeuristic(gs, r.coster.LowerBound, 10.0)
	cost, err := h.CostToGo(Config{1, 1})
	test.That(t, err, test.ShouldBeNil)
	// Both goals are equidistant, so the cheaper one must be the
	// higher-quality goal (zero quality penalty vs. a positive one).
	test.That(t, cost, test.ShouldAlmostEqual, 0.0, 1e-9)
}

func TestGoalHeuristicCostToGoGraspRestrictsToGrasp(t *testing.T) {
	space := freeSpace2D()
	r := NewRoadmap(space)
	gs := NewGoalSet(r)
	test.That(t, gs.AddGoal(Goal{ID: 1, Config: Config{0, 0}, GraspID: 1, Quality: 1}), test.ShouldBeNil)

	h := NewGoalHeuristic(gs, r.coster.LowerBound, 1.0)
	_, err := h.CostToGoGrasp(Config{0, 0}, GraspID(2))
	test.That(t, err, test.ShouldNotBeNil)

	cost, err := h.CostToGoGrasp(Config{0, 0}, GraspID(1))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cost, test.ShouldAlmostEqual, 0.0, 1e-9)
}

func TestGoalHeuristicRefreshPicksUpNewGoals(t *testing.T) {
	space := freeSpace2D()
	r := NewRoadmap(space)
	gs := NewGoalSet(r)
	h := NewGoalHeuristic(gs, r.coster.LowerBound, 1.0)
	_, err := h.CostToGo(Config{0, 0})
	test.That(t, err, test.ShouldNotBeNil)

	test.That(t, gs.AddGoal(Goal{ID: 1, Config: Config{0, 0}, GraspID: 1, Quality: 1}), test.ShouldBeNil)
	h.Refresh()
	_, err = h.CostToGo(Config{0, 0})
	test.That(t, err, test.ShouldBeNil)
}
