package mgsearch

import (
	"context"
	"testing"

	"go.viam.com/test"
)

func TestPlannerPlanWithoutGoalsIsProgrammerError(t *testing.T) {
	space := freeSpace2D()
	p := NewPlanner(space, DefaultParams())
	_, err := p.Plan(context.Background(), Config{0, 0}, GraspID(1), nil)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestPlannerSolvesSimpleFreeSpaceScenario(t *testing.T) {
	space := freeSpace2D()
	p := NewPlanner(space, DefaultParams())
	test.That(t, p.AddGoal(Goal{ID: 1, Config: Config{0.9, 0.9}, GraspID: 1, Quality: 1}), test.ShouldBeNil)

	result, err := p.Plan(context.Background(), Config{0.1, 0.1}, GraspID(1), []GraspID{1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.Solved, test.ShouldBeTrue)
	test.That(t, len(result.Path), test.ShouldBeGreaterThan, 0)
}

func TestPlannerRejectsInvalidStart(t *testing.T) {
	space := &constantSpace{
		dim: 2, lower: Config{0, 0}, upper: Config{1, 1},
		blocked: func(c Config) bool { return true },
	}
	p := NewPlanner(space, DefaultParams())
	test.That(t, p.AddGoal(Goal{ID: 1, Config: Config{0.9, 0.9}, GraspID: 1, Quality: 1}), test.ShouldBeNil)

	result, err := p.Plan(context.Background(), Config{0.1, 0.1}, GraspID(1), []GraspID{1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.Solved, test.ShouldBeFalse)
}

func TestPlannerRemoveGoalsThenPlanIsProgrammerError(t *testing.T) {
	space := freeSpace2D()
	p := NewPlanner(space, DefaultParams())
	test.That(t, p.AddGoal(Goal{ID: 1, Config: Config{0.9, 0.9}, GraspID: 1, Quality: 1}), test.ShouldBeNil)
	test.That(t, p.RemoveGoals([]GoalID{1}), test.ShouldBeNil)

	_, err := p.Plan(context.Background(), Config{0.1, 0.1}, GraspID(1), []GraspID{1})
	test.That(t, err, test.ShouldNotBeNil)
}
