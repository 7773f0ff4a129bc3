package mgsearch

import (
	"testing"

	"go.viam.com/test"
)

func TestMultiGraspGraphEncodeDecodeRoundTrip(t *testing.T) {
	space := freeSpace2D()
	r := NewRoadmap(space)
	gs := NewGoalSet(r)
	h := NewGoalHeuristic(gs, r.coster.LowerBound, 1.0)

	n := r.addNode(Config{0.3, 0.3})
	g := NewMultiGraspGraph(r, gs, h, n.uid, GraspID(2), []GraspID{1, 2, 3}).(*multiGraspGraph)

	encoded := g.encode(n.uid, GraspID(2))
	uid, gid := g.decode(encoded)
	test.That(t, uid, test.ShouldEqual, n.uid)
	test.That(t, gid, test.ShouldEqual, GraspID(2))
}

func TestSingleGraspGraphIsGoalChecksGraspBinding(t *testing.T) {
	space := freeSpace2D()
	r := NewRoadmap(space)
	gs := NewGoalSet(r)
	h := NewGoalHeuristic(gs, r.coster.LowerBound, 1.0)
	test.That(t, gs.AddGoal(Goal{ID: 1, Config: Config{0.5, 0.5}, GraspID: 9, Quality: 1}), test.ShouldBeNil)

	start := r.addNode(Config{0, 0})
	g := NewSingleGraspGraph(r, gs, h, start.uid, GraspID(9))

	nodeID := gs.goalIDToNodeID[1]
	test.That(t, g.IsGoal(nodeID), test.ShouldBeTrue)

	g2 := NewSingleGraspGraph(r, gs, h, start.uid, GraspID(1))
	test.That(t, g2.IsGoal(nodeID), test.ShouldBeFalse)
}

func TestFoldedGraphLiftEdgeOnlyFromGoalBaseNode(t *testing.T) {
	space := freeSpace2D()
	r := NewRoadmap(space)
	gs := NewGoalSet(r)
	h := NewGoalHeuristic(gs, r.coster.LowerBound, 1.0)
	test.That(t, gs.AddGoal(Goal{ID: 1, Config: Config{0.5, 0.5}, GraspID: 3, Quality: 1}), test.ShouldBeNil)

	start := r.addNode(Config{0, 0})
	g := NewFoldedGraph(r, gs, h, start.uid, false).(*foldedGraph)

	goalNodeID := gs.goalIDToNodeID[1]
	succs := g.Successors(goalNodeID)
	foundLift := false
	for _, s := range succs {
		if g.isLift(s) {
			foundLift = true
		}
	}
	test.That(t, foundLift, test.ShouldBeTrue)
	test.That(t, g.IsGoal(g.liftTarget[goalNodeID]), test.ShouldBeTrue)
}
