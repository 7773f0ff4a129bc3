package mgsearch

import (
	"context"
	"math"

	"go.opencensus.io/trace"
)

// SearchResult is the outcome of a search: whether a solution was found,
// the path from start to the chosen goal (inclusive of both endpoints),
// and the cost breakdown between path traversal and the goal's quality
// penalty.
type SearchResult struct {
	Solved   bool
	Path     []NodeID
	PathCost float64
	GoalCost float64
	GoalNode NodeID
}

// Cost is the total cost of the result: path cost plus goal cost.
func (r SearchResult) Cost() float64 {
	return r.PathCost + r.GoalCost
}

// vertexData is the per-vertex bookkeeping LPA* maintains: g is the best
// known cost from start, rhs is the one-step lookahead value computed from
// g-values of predecessors, h is the admissible heuristic, and parent is
// the predecessor g was last computed from.
type vertexData struct {
	g, rhs, h float64
	parent    NodeID
	hasParent bool
	inQueue   bool
}

func newVertexData(h float64) *vertexData {
	return &vertexData{g: math.Inf(1), rhs: math.Inf(1), h: h}
}

// key computes the LPA* priority key (min(g,rhs)+h, min(g,rhs)).
func (vd *vertexData) key() pqKey {
	m := math.Min(vd.g, vd.rhs)
	return pqKey{primary: m + vd.h, secondary: m}
}

// LPAStar is an incremental shortest-path search: it supports being run to
// completion once, and then re-run cheaply after edge costs change,
// reusing every g/rhs value unaffected by the change instead of
// recomputing the search from scratch. This is what lets a Planner absorb
// a roadmap's lazy edge resolutions without discarding prior search
// effort.
type LPAStar struct {
	graph Graph

	vertices map[NodeID]*vertexData
	pq       *indexedPQ

	goalKey   pqKey
	result    SearchResult
	haveGoal  bool
}

// NewLPAStar creates an LPA* search over graph, initializing the start
// vertex with g = rhs = 0 as the reference implementation does. The start
// vertex is locally consistent and so never enters the queue; instead its
// valid successors are relaxed here, which seeds the queue. If the start
// vertex is invalid nothing is seeded and the search reports no solution.
func NewLPAStar(graph Graph) *LPAStar {
	s := &LPAStar{
		graph:    graph,
		vertices: make(map[NodeID]*vertexData),
		pq:       newIndexedPQ(),
		goalKey:  pqKey{primary: math.Inf(1), secondary: math.Inf(1)},
	}
	start := graph.StartNode()
	vd := newVertexData(graph.Heuristic(start))
	vd.g = 0
	vd.rhs = 0
	s.vertices[start] = vd
	s.updateVertexKey(start, vd)
	if graph.CheckValidity(start) {
		for _, succ := range graph.Successors(start) {
			if !graph.CheckValidity(succ) {
				continue
			}
			s.handleCostDecrease(start, vd, succ, s.getVertexData(succ))
		}
	}
	return s
}

// getVertexData returns v's bookkeeping, lazily materializing it (g = rhs
// = infinity, h from the graph's heuristic) on first visit, matching the
// reference implementation's on-demand vertex allocation so the engine
// never has to enumerate the full vertex set up front.
func (s *LPAStar) getVertexData(v NodeID) *vertexData {
	vd, ok := s.vertices[v]
	if !ok {
		vd = newVertexData(s.graph.Heuristic(v))
		s.vertices[v] = vd
	}
	return vd
}

// UpdateEdge informs the search that the cost of edge (u, v) has changed
// from oldCost to its current value (read lazily from the graph), relaxing
// v's rhs accordingly. Call this whenever the roadmap resolves a lazy edge
// to an exact cost, or when an edge is found dead.
func (s *LPAStar) UpdateEdge(u, v NodeID, oldCost float64) {
	newCost := s.graph.EdgeCost(u, v, true)
	vd := s.getVertexData(v)
	if oldCost > newCost {
		s.handleCostDecrease(u, s.getVertexData(u), v, vd)
	} else if vd.hasParent && vd.parent == u {
		s.handleCostIncrease(u, v, vd)
	}
}

// handleCostDecrease relaxes v against the (possibly improved) edge from
// u: if routing through u now beats v's current rhs, u becomes v's parent.
// The lazy lower bound is used for the relaxation check itself, since the
// true cost is never less than it and so can't change a check that already
// fails. Once u is about to actually become v's parent, though, the edge is
// resolved to its exact cost: this is the edge's "first touch". If
// resolving it changes the cost, UpdateEdge re-derives v from the corrected
// value, which may reroute v through a different parent or, if the edge
// turns out infeasible, drop it from v's rhs entirely.
func (s *LPAStar) handleCostDecrease(u NodeID, ud *vertexData, v NodeID, vd *vertexData) {
	lazyCost := s.graph.EdgeCost(u, v, true)
	candidate := ud.g + lazyCost
	if vd.rhs <= candidate {
		return
	}
	vd.rhs = candidate
	vd.parent = u
	vd.hasParent = true
	s.updateVertexKey(v, vd)

	resolved := s.graph.EdgeCost(u, v, false)
	if resolved != lazyCost {
		s.UpdateEdge(u, v, lazyCost)
	}
}

// handleCostIncrease re-derives v's rhs from scratch over all of v's
// predecessors, since the edge that used to justify v's rhs (the one from
// u, v's current parent) just got worse and may no longer be the best. The
// scan itself uses lazy edge costs, same as handleCostDecrease; once the
// winning predecessor is chosen, its edge is resolved to its exact cost and,
// if that changes anything, fed back through UpdateEdge.
func (s *LPAStar) handleCostIncrease(u, v NodeID, vd *vertexData) {
	if !vd.hasParent || vd.parent != u {
		return
	}
	vd.rhs = math.Inf(1)
	vd.hasParent = false
	if !s.graph.CheckValidity(v) {
		s.updateVertexKey(v, vd)
		return
	}
	var bestParent NodeID
	var bestLazyCost float64
	for _, p := range s.graph.Predecessors(v) {
		if !s.graph.CheckValidity(p) {
			continue
		}
		pd := s.getVertexData(p)
		lazyCost := s.graph.EdgeCost(p, v, true)
		candidate := pd.g + lazyCost
		if vd.rhs > candidate {
			vd.rhs = candidate
			vd.parent = p
			vd.hasParent = true
			bestParent = p
			bestLazyCost = lazyCost
		}
	}
	s.updateVertexKey(v, vd)

	if vd.hasParent {
		resolved := s.graph.EdgeCost(bestParent, v, false)
		if resolved != bestLazyCost {
			s.UpdateEdge(bestParent, v, bestLazyCost)
		}
	}
}

// updateVertexKey keeps v's priority-queue membership consistent with
// whether it is locally consistent (g == rhs, so it should not be in the
// queue) and tracks the best known goal key the search has seen so far, so
// ComputeShortestPath can stop as soon as no remaining queue entry could
// possibly beat it.
func (s *LPAStar) updateVertexKey(v NodeID, vd *vertexData) {
	consistent := vd.g == vd.rhs
	if vd.inQueue {
		if consistent {
			s.pq.remove(v)
			vd.inQueue = false
		} else {
			s.pq.update(v, vd.key())
		}
	} else if !consistent {
		s.pq.insert(v, vd.key())
		vd.inQueue = true
	}
	if s.graph.IsGoal(v) {
		goalKey := pqKey{primary: vd.g + s.graph.GoalCost(v), secondary: vd.g}
		if goalKey.less(s.goalKey) {
			s.goalKey = goalKey
			s.result = SearchResult{
				Solved:   true,
				GoalNode: v,
				PathCost: vd.g,
				GoalCost: s.graph.GoalCost(v),
			}
			s.haveGoal = true
		}
	}
}

// ComputeShortestPath runs the LPA* main loop to convergence: pop the
// minimum-key vertex, make it locally consistent (overconsistent vertices
// settle g to rhs and relax successors; underconsistent vertices reset g
// to infinity and let successors re-derive their rhs), until the queue is
// empty or its minimum key can no longer beat the best goal found so far.
// It returns the best SearchResult found; Solved is false if no goal was
// reachable. Cancellation is checked once per popped vertex.
func (s *LPAStar) ComputeShortestPath(ctx context.Context) SearchResult {
	ctx, span := trace.StartSpan(ctx, "mgsearch.LPAStar.ComputeShortestPath")
	defer span.End()
	for s.pq.Len() > 0 {
		select {
		case <-ctx.Done():
			return s.result
		default:
		}
		topKey := s.pq.keyOf(s.topValue())
		if s.haveGoal && !topKey.less(s.goalKey) {
			break
		}
		v, _ := s.pq.popMin()
		vd := s.vertices[v]
		vd.inQueue = false

		if vd.g > vd.rhs {
			vd.g = vd.rhs
			if s.graph.CheckValidity(v) {
				for _, succ := range s.graph.Successors(v) {
					if !s.graph.CheckValidity(succ) {
						continue
					}
					s.handleCostDecrease(v, vd, succ, s.getVertexData(succ))
				}
			}
		} else {
			vd.g = math.Inf(1)
			for _, succ := range s.graph.Successors(v) {
				if !s.graph.CheckValidity(succ) {
					continue
				}
				s.handleCostIncrease(v, succ, s.getVertexData(succ))
			}
		}
		s.updateVertexKey(v, vd)
	}
	return s.result
}

func (s *LPAStar) topValue() NodeID {
	v, _ := s.pq.top()
	return v
}

// ExtractPath walks vertex parent pointers back from the goal found by the
// last ComputeShortestPath call to the start vertex, returning them in
// forward (start-to-goal) order, mirroring the reference
// implementation's extractPath.
func (s *LPAStar) ExtractPath() []NodeID {
	if !s.result.Solved {
		return nil
	}
	var reversed []NodeID
	v := s.result.GoalNode
	start := s.graph.StartNode()
	for {
		reversed = append(reversed, v)
		if v == start {
			break
		}
		vd := s.vertices[v]
		if !vd.hasParent {
			break
		}
		v = vd.parent
	}
	path := make([]NodeID, len(reversed))
	for i, v := range reversed {
		path[len(reversed)-1-i] = v
	}
	return path
}
