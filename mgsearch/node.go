package mgsearch

import "math"

// rmNode is a single roadmap vertex. Nodes are owned exclusively by the
// Roadmap's nodes map, keyed by uid; nothing else in the package holds a
// strong reference to one. This "arena with stable indices" layout avoids
// the parent/child reference cycles a naive pointer graph would create,
// without needing weak pointers.
type rmNode struct {
	uid    NodeID
	config Config

	initialized bool // has base validity been checked at least once
	valid       bool // result of that check, meaningful only if initialized

	// conditionalValidity memoizes per-grasp validity checks, so a grasp
	// already found invalid at this node is never re-queried against the
	// oracle.
	conditionalValidity map[GraspID]bool

	// densificationGen is the Roadmap's densification generation at the
	// time this node's adjacency was last refreshed; a mismatch signals
	// updateAdjacency that new neighbors may now be in range.
	densificationGen int

	// edges are keyed by the neighbor's uid.
	edges map[NodeID]*rmEdge
}

func newRMNode(uid NodeID, config Config, gen int) *rmNode {
	return &rmNode{
		uid:                  uid,
		config:               config,
		conditionalValidity:  make(map[GraspID]bool),
		densificationGen:     gen,
		edges:                make(map[NodeID]*rmEdge),
	}
}

// rmEdge is a single roadmap edge, shared between its two endpoints' edge
// maps. Costs start in the Optimistic state (only baseCost, an admissible
// lower bound, is known) and move to Resolved once a lazy evaluation
// determines an exact cost, or to Dead if that cost turns out to be +Inf.
type rmEdge struct {
	a, b NodeID

	baseCost      float64
	baseEvaluated bool

	// conditionalCosts memoizes exact per-grasp costs once resolved.
	conditionalCosts map[GraspID]float64
}

func newRMEdge(a, b NodeID, baseCost float64) *rmEdge {
	return &rmEdge{a: a, b: b, baseCost: baseCost, conditionalCosts: make(map[GraspID]float64)}
}

// other returns the uid of the endpoint opposite n.
func (e *rmEdge) other(n NodeID) NodeID {
	if e.a == n {
		return e.b
	}
	return e.a
}

// bestKnownCost returns the best available cost estimate for gid: the
// resolved conditional cost if known, otherwise the base cost (which may
// itself still be an optimistic lower bound).
func (e *rmEdge) bestKnownCost(gid GraspID) float64 {
	if c, ok := e.conditionalCosts[gid]; ok {
		return c
	}
	return e.baseCost
}

// isDead reports whether this edge has been proven infeasible regardless
// of grasp, and can safely be pruned from both endpoints.
func (e *rmEdge) isDead() bool {
	return e.baseEvaluated && math.IsInf(e.baseCost, 1)
}

// edgeKey returns a canonical, order-independent key for the pair (a, b).
// The Roadmap does not use it: each edge is stored in both endpoints' edge
// maps, keyed by the neighbor's uid.
func edgeKey(a, b NodeID) (NodeID, NodeID) {
	if a <= b {
		return a, b
	}
	return b, a
}
