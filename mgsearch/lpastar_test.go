package mgsearch

import (
	"context"
	"math"
	"testing"

	"go.viam.com/test"
)

// fakeGraph is a small, explicitly constructed graph used to exercise the
// LPA* engine in isolation from the roadmap.
type fakeGraph struct {
	start     NodeID
	edges     map[NodeID]map[NodeID]float64
	heuristic map[NodeID]float64
	goal      NodeID
	invalid   map[NodeID]bool
}

func newFakeGraph(start, goal NodeID) *fakeGraph {
	return &fakeGraph{
		start:     start,
		goal:      goal,
		edges:     make(map[NodeID]map[NodeID]float64),
		heuristic: make(map[NodeID]float64),
		invalid:   make(map[NodeID]bool),
	}
}

func (g *fakeGraph) addEdge(a, b NodeID, cost float64) {
	if g.edges[a] == nil {
		g.edges[a] = make(map[NodeID]float64)
	}
	if g.edges[b] == nil {
		g.edges[b] = make(map[NodeID]float64)
	}
	g.edges[a][b] = cost
	g.edges[b][a] = cost
}

func (g *fakeGraph) StartNode() NodeID { return g.start }
func (g *fakeGraph) CheckValidity(v NodeID) bool {
	return !g.invalid[v]
}
func (g *fakeGraph) Heuristic(v NodeID) float64 { return g.heuristic[v] }
func (g *fakeGraph) neighbors(v NodeID) []NodeID {
	out := make([]NodeID, 0, len(g.edges[v]))
	for n := range g.edges[v] {
		out = append(out, n)
	}
	return out
}
func (g *fakeGraph) Successors(v NodeID) []NodeID   { return g.neighbors(v) }
func (g *fakeGraph) Predecessors(v NodeID) []NodeID  { return g.neighbors(v) }
func (g *fakeGraph) EdgeCost(u, v NodeID, lazy bool) float64 {
	c, ok := g.edges[u][v]
	if !ok {
		return math.Inf(1)
	}
	return c
}
func (g *fakeGraph) IsGoal(v NodeID) bool      { return v == g.goal }
func (g *fakeGraph) GoalCost(v NodeID) float64 { return 0 }

func TestLPAStarFindsShortestPath(t *testing.T) {
	g := newFakeGraph(1, 4)
	g.addEdge(1, 2, 1)
	g.addEdge(2, 4, 1)
	g.addEdge(1, 3, 1)
	g.addEdge(3, 4, 10)

	s := NewLPAStar(g)
	result := s.ComputeShortestPath(context.Background())
	test.That(t, result.Solved, test.ShouldBeTrue)
	test.That(t, result.PathCost, test.ShouldAlmostEqual, 2.0, 1e-9)

	path := s.ExtractPath()
	test.That(t, path, test.ShouldResemble, []NodeID{1, 2, 4})
}

func TestLPAStarUnreachableGoalIsUnsolved(t *testing.T) {
	g := newFakeGraph(1, 4)
	g.addEdge(1, 2, 1)

	s := NewLPAStar(g)
	result := s.ComputeShortestPath(context.Background())
	test.That(t, result.Solved, test.ShouldBeFalse)
}

func TestLPAStarAbsorbsCostDecreaseWithoutRestarting(t *testing.T) {
	g := newFakeGraph(1, 4)
	g.addEdge(1, 2, 1)
	g.addEdge(2, 4, 1)
	g.addEdge(1, 3, 1)
	g.addEdge(3, 4, 10)

	s := NewLPAStar(g)
	result := s.ComputeShortestPath(context.Background())
	test.That(t, result.PathCost, test.ShouldAlmostEqual, 2.0, 1e-9)

	oldCost := g.edges[3][4]
	g.addEdge(3, 4, 0.5)
	s.UpdateEdge(3, 4, oldCost)
	s.UpdateEdge(4, 3, oldCost)

	result = s.ComputeShortestPath(context.Background())
	test.That(t, result.Solved, test.ShouldBeTrue)
	test.That(t, result.PathCost, test.ShouldAlmostEqual, 1.5, 1e-9)
}

func TestLPAStarAbsorbsCostIncreaseReroutes(t *testing.T) {
	g := newFakeGraph(1, 4)
	g.addEdge(1, 2, 1)
	g.addEdge(2, 4, 1)
	g.addEdge(1, 3, 1)
	g.addEdge(3, 4, 1)

	s := NewLPAStar(g)
	result := s.ComputeShortestPath(context.Background())
	test.That(t, result.PathCost, test.ShouldAlmostEqual, 2.0, 1e-9)

	oldCost := g.edges[2][4]
	g.addEdge(2, 4, 100)
	s.UpdateEdge(2, 4, oldCost)
	s.UpdateEdge(4, 2, oldCost)

	result = s.ComputeShortestPath(context.Background())
	test.That(t, result.Solved, test.ShouldBeTrue)
	test.That(t, result.PathCost, test.ShouldAlmostEqual, 2.0, 1e-9)
}

func TestLPAStarRespectsContextCancellation(t *testing.T) {
	g := newFakeGraph(1, 4)
	g.addEdge(1, 2, 1)
	g.addEdge(2, 4, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewLPAStar(g)
	result := s.ComputeShortestPath(ctx)
	test.That(t, result.Solved, test.ShouldBeFalse)
}
