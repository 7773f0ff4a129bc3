package mgsearch

import (
	"math"
	"sort"
)

// Graph is the interface the LPA* engine searches over. It is deliberately
// narrow: every method is something a search step needs on a single
// vertex or edge, so the same engine can run unmodified over any adapter
// below.
type Graph interface {
	// StartNode returns the search's fixed start vertex.
	StartNode() NodeID
	// CheckValidity reports whether v may appear in a solution path at
	// all; an invalid vertex is dropped from the search as if it had no
	// edges.
	CheckValidity(v NodeID) bool
	// Heuristic is an admissible estimate of the remaining cost from v to
	// the best goal.
	Heuristic(v NodeID) float64
	// Successors returns every vertex reachable from v by one edge.
	Successors(v NodeID) []NodeID
	// Predecessors returns every vertex from which v is reachable by one
	// edge. For the undirected graphs this package builds, this is the
	// same set Successors(v) returns, but the engine always asks for the
	// directionally correct one so directed adapters remain possible.
	Predecessors(v NodeID) []NodeID
	// EdgeCost returns the cost of the edge (u, v). If lazy is true, an
	// admissible lower bound may be returned instead of the exact cost,
	// deferring the expensive evaluation until the search actually needs
	// to commit to this edge.
	EdgeCost(u, v NodeID, lazy bool) float64
	// IsGoal reports whether v is an accepting goal vertex.
	IsGoal(v NodeID) bool
	// GoalCost is the additional cost IsGoal vertex v contributes beyond
	// the path cost to reach it (the quality penalty).
	GoalCost(v NodeID) float64
}

// singleGraspGraph searches the roadmap under exactly one grasp: every
// edge and validity check is conditioned on the same grasp id throughout.
type singleGraspGraph struct {
	roadmap *Roadmap
	goals   *GoalSet
	heur    *GoalHeuristic
	start   NodeID
	grasp   GraspID
}

// NewSingleGraspGraph builds a Graph that searches roadmap for a path from
// start to any goal reachable while holding grasp.
func NewSingleGraspGraph(roadmap *Roadmap, goals *GoalSet, heur *GoalHeuristic, start NodeID, grasp GraspID) Graph {
	return &singleGraspGraph{roadmap: roadmap, goals: goals, heur: heur, start: start, grasp: grasp}
}

func (g *singleGraspGraph) StartNode() NodeID { return g.start }

func (g *singleGraspGraph) CheckValidity(v NodeID) bool {
	n, ok := g.roadmap.getNode(v)
	if !ok {
		return false
	}
	return g.roadmap.isValidGrasping(n, g.grasp)
}

func (g *singleGraspGraph) Heuristic(v NodeID) float64 {
	n, ok := g.roadmap.getNode(v)
	if !ok {
		return math.Inf(1)
	}
	cost, err := g.heur.CostToGoGrasp(n.config, g.grasp)
	if err != nil {
		return math.Inf(1)
	}
	return cost
}

func (g *singleGraspGraph) neighbors(v NodeID) []NodeID {
	n, ok := g.roadmap.getNode(v)
	if !ok {
		return nil
	}
	g.roadmap.updateAdjacency(n)
	out := make([]NodeID, 0, len(n.edges))
	for uid := range n.edges {
		out = append(out, uid)
	}
	sortNodeIDs(out)
	return out
}

func (g *singleGraspGraph) Successors(v NodeID) []NodeID   { return g.neighbors(v) }
func (g *singleGraspGraph) Predecessors(v NodeID) []NodeID { return g.neighbors(v) }

func (g *singleGraspGraph) EdgeCost(u, v NodeID, lazy bool) float64 {
	return edgeCostFor(g.roadmap, u, v, g.grasp, lazy)
}

func (g *singleGraspGraph) IsGoal(v NodeID) bool {
	return g.goals.IsGoal(v, g.grasp)
}

func (g *singleGraspGraph) GoalCost(v NodeID) float64 {
	goalID, ok := g.goals.GoalIDFor(v, g.grasp)
	if !ok {
		return math.Inf(1)
	}
	goal, err := g.goals.Get(goalID)
	if err != nil {
		return math.Inf(1)
	}
	return g.heur.GoalCost(goal.Quality)
}

// sortNodeIDs orders ids in place so callers that enumerate a map of
// neighbors get the same Successors/Predecessors order on every run,
// regardless of Go's randomized map iteration.
func sortNodeIDs(ids []NodeID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

// edgeCostFor resolves the cost of edge (u,v) under grasp gid, using the
// roadmap's lazy evaluation when lazy is true. The edge between u and v is
// looked up fresh from u's adjacency each call rather than cached by the
// graph adapter, since the roadmap's lazy garbage collection may have
// pruned and replaced it between calls.
func edgeCostFor(roadmap *Roadmap, u, v NodeID, gid GraspID, lazy bool) float64 {
	un, ok := roadmap.getNode(u)
	if !ok {
		return math.Inf(1)
	}
	e, ok := un.edges[v]
	if !ok {
		return math.Inf(1)
	}
	if lazy {
		return e.bestKnownCost(gid)
	}
	base := roadmap.computeCost(e)
	if !base.Feasible {
		return math.Inf(1)
	}
	cond := roadmap.computeConditionalCost(e, gid)
	if !cond.Feasible {
		return math.Inf(1)
	}
	return cond.Cost
}

// multiGraspGraph searches the product of the roadmap with the set of
// active grasps: a vertex is a (roadmap node, grasp) pair, and an edge
// exists between (u, g) and (v, g) for every roadmap edge (u, v) under
// that same grasp. This lets one search simultaneously consider reaching
// any grasp's goals, at the cost of a state space |grasps| times larger.
type multiGraspGraph struct {
	roadmap *Roadmap
	goals   *GoalSet
	heur    *GoalHeuristic
	grasps  []GraspID
	start   NodeID

	// encode/decode a (NodeID, GraspID) pair into a single NodeID so the
	// rest of the engine, which is agnostic to what a NodeID means, can
	// treat this product graph like any other.
	graspIndex map[GraspID]int
}

// NewMultiGraspGraph builds a Graph over the product of roadmap with
// grasps, starting the search at start under startGrasp.
func NewMultiGraspGraph(roadmap *Roadmap, goals *GoalSet, heur *GoalHeuristic, start NodeID, startGrasp GraspID, grasps []GraspID) Graph {
	idx := make(map[GraspID]int, len(grasps))
	for i, g := range grasps {
		idx[g] = i
	}
	g := &multiGraspGraph{roadmap: roadmap, goals: goals, heur: heur, grasps: grasps, graspIndex: idx}
	g.start = g.encode(start, startGrasp)
	return g
}

// encode packs a roadmap uid and a grasp index into one NodeID: the low 32
// bits hold the grasp index, the rest hold the uid. This keeps the product
// graph's vertex space a plain NodeID without introducing a second key
// type the generic LPA* engine would need to know about.
func (g *multiGraspGraph) encode(uid NodeID, gid GraspID) NodeID {
	return uid<<32 | NodeID(g.graspIndex[gid])
}

func (g *multiGraspGraph) decode(v NodeID) (NodeID, GraspID) {
	idx := v & 0xFFFFFFFF
	return v >> 32, g.grasps[idx]
}

func (g *multiGraspGraph) StartNode() NodeID { return g.start }

func (g *multiGraspGraph) CheckValidity(v NodeID) bool {
	uid, gid := g.decode(v)
	n, ok := g.roadmap.getNode(uid)
	if !ok {
		return false
	}
	return g.roadmap.isValidGrasping(n, gid)
}

func (g *multiGraspGraph) Heuristic(v NodeID) float64 {
	uid, gid := g.decode(v)
	n, ok := g.roadmap.getNode(uid)
	if !ok {
		return math.Inf(1)
	}
	cost, err := g.heur.CostToGoGrasp(n.config, gid)
	if err != nil {
		return math.Inf(1)
	}
	return cost
}

func (g *multiGraspGraph) neighbors(v NodeID) []NodeID {
	uid, gid := g.decode(v)
	n, ok := g.roadmap.getNode(uid)
	if !ok {
		return nil
	}
	g.roadmap.updateAdjacency(n)
	out := make([]NodeID, 0, len(n.edges))
	for otherUID := range n.edges {
		out = append(out, otherUID)
	}
	sortNodeIDs(out)
	for i, otherUID := range out {
		out[i] = g.encode(otherUID, gid)
	}
	return out
}

func (g *multiGraspGraph) Successors(v NodeID) []NodeID   { return g.neighbors(v) }
func (g *multiGraspGraph) Predecessors(v NodeID) []NodeID { return g.neighbors(v) }

func (g *multiGraspGraph) EdgeCost(u, v NodeID, lazy bool) float64 {
	uu, ugid := g.decode(u)
	vu, _ := g.decode(v)
	return edgeCostFor(g.roadmap, uu, vu, ugid, lazy)
}

func (g *multiGraspGraph) IsGoal(v NodeID) bool {
	uid, gid := g.decode(v)
	return g.goals.IsGoal(uid, gid)
}

func (g *multiGraspGraph) GoalCost(v NodeID) float64 {
	uid, gid := g.decode(v)
	goalID, ok := g.goals.GoalIDFor(uid, gid)
	if !ok {
		return math.Inf(1)
	}
	goal, err := g.goals.Get(goalID)
	if err != nil {
		return math.Inf(1)
	}
	return g.heur.GoalCost(goal.Quality)
}

// DecodeMultiGrasp exposes the (uid, grasp) pair a multiGraspGraph vertex
// encodes, for callers extracting a solution path.
func DecodeMultiGrasp(g Graph, v NodeID) (NodeID, GraspID, bool) {
	mg, ok := g.(*multiGraspGraph)
	if !ok {
		return 0, 0, false
	}
	uid, gid := mg.decode(v)
	return uid, gid, true
}

// foldedGraph shares a single base layer of roadmap vertices across every
// grasp, adding a zero-cost "lift" edge from the base-layer copy of each
// goal's node to a grasp-specific goal vertex. This amortizes the shared
// portion of the search (everything before reaching a goal's
// neighborhood) across all grasps in one pass, at the cost of only
// discovering a grasp's true validity/cost once the search reaches that
// grasp's lift edge.
//
// dynamic selects whether lift edges are materialized eagerly
// (stationary, safe for any algorithm) or discovered lazily as the search
// frontier reaches a goal (dynamic, valid only with LPA*-family algorithms
// per the reference implementation, since it relies on incremental
// re-expansion rather than a one-shot successor enumeration).
type foldedGraph struct {
	roadmap *Roadmap
	goals   *GoalSet
	heur    *GoalHeuristic
	start   NodeID
	dynamic bool

	// liftTarget maps a base-layer uid that is a goal's roadmap node to
	// the synthetic lift-vertex NodeID representing "arrived at this goal
	// under its grasp". Lift vertices live in a disjoint id space (the
	// high bit set) so they never collide with base-layer uids.
	liftTarget map[NodeID]NodeID
	liftGoal   map[NodeID]GoalID
}

const foldedLiftBit NodeID = 1 << 63

// NewFoldedGraph builds a Graph over a shared base layer plus one lift
// vertex per goal. If dynamic is true, lift edges are only exposed once a
// vertex is actually a goal's base node and has been validated for that
// goal's grasp; the caller must pair this with an LPA*-family algorithm.
func NewFoldedGraph(roadmap *Roadmap, goals *GoalSet, heur *GoalHeuristic, start NodeID, dynamic bool) Graph {
	g := &foldedGraph{
		roadmap:    roadmap,
		goals:      goals,
		heur:       heur,
		start:      start,
		dynamic:    dynamic,
		liftTarget: make(map[NodeID]NodeID),
		liftGoal:   make(map[NodeID]GoalID),
	}
	for _, goal := range goals.All() {
		nodeID, ok := goals.goalIDToNodeID[goal.ID]
		if !ok {
			continue
		}
		lift := nodeID | foldedLiftBit
		g.liftTarget[nodeID] = lift
		g.liftGoal[lift] = goal.ID
	}
	return g
}

func (g *foldedGraph) isLift(v NodeID) bool { return v&foldedLiftBit != 0 }
func (g *foldedGraph) base(v NodeID) NodeID { return v &^ foldedLiftBit }

func (g *foldedGraph) StartNode() NodeID { return g.start }

func (g *foldedGraph) CheckValidity(v NodeID) bool {
	if g.isLift(v) {
		goalID := g.liftGoal[v]
		goal, err := g.goals.Get(goalID)
		if err != nil {
			return false
		}
		n, ok := g.roadmap.getNode(g.base(v))
		if !ok {
			return false
		}
		return g.roadmap.isValidGrasping(n, goal.GraspID)
	}
	n, ok := g.roadmap.getNode(v)
	if !ok {
		return false
	}
	return g.roadmap.isValid(n)
}

func (g *foldedGraph) Heuristic(v NodeID) float64 {
	n, ok := g.roadmap.getNode(g.base(v))
	if !ok {
		return math.Inf(1)
	}
	cost, err := g.heur.CostToGo(n.config)
	if err != nil {
		return math.Inf(1)
	}
	return cost
}

func (g *foldedGraph) liftEdges(v NodeID) []NodeID {
	lift, ok := g.liftTarget[v]
	if !ok {
		return nil
	}
	if g.dynamic && !g.CheckValidity(lift) {
		return nil
	}
	return []NodeID{lift}
}

func (g *foldedGraph) Successors(v NodeID) []NodeID {
	if g.isLift(v) {
		return nil
	}
	n, ok := g.roadmap.getNode(v)
	if !ok {
		return nil
	}
	g.roadmap.updateAdjacency(n)
	out := make([]NodeID, 0, len(n.edges)+1)
	for uid := range n.edges {
		out = append(out, uid)
	}
	sortNodeIDs(out)
	out = append(out, g.liftEdges(v)...)
	return out
}

func (g *foldedGraph) Predecessors(v NodeID) []NodeID {
	if g.isLift(v) {
		for base, lift := range g.liftTarget {
			if lift == v {
				return []NodeID{base}
			}
		}
		return nil
	}
	n, ok := g.roadmap.getNode(v)
	if !ok {
		return nil
	}
	g.roadmap.updateAdjacency(n)
	out := make([]NodeID, 0, len(n.edges))
	for uid := range n.edges {
		out = append(out, uid)
	}
	sortNodeIDs(out)
	return out
}

func (g *foldedGraph) EdgeCost(u, v NodeID, lazy bool) float64 {
	if g.isLift(v) {
		if !g.CheckValidity(v) {
			return math.Inf(1)
		}
		return 0
	}
	return baseEdgeCostFor(g.roadmap, u, v, lazy)
}

// baseEdgeCostFor resolves the grasp-agnostic cost of edge (u, v), used by
// the folded graph's shared base layer where no grasp has been committed
// to yet.
func baseEdgeCostFor(roadmap *Roadmap, u, v NodeID, lazy bool) float64 {
	un, ok := roadmap.getNode(u)
	if !ok {
		return math.Inf(1)
	}
	e, ok := un.edges[v]
	if !ok {
		return math.Inf(1)
	}
	if lazy {
		return e.baseCost
	}
	res := roadmap.computeCost(e)
	if !res.Feasible {
		return math.Inf(1)
	}
	return res.Cost
}

func (g *foldedGraph) IsGoal(v NodeID) bool {
	_, ok := g.liftGoal[v]
	return ok
}

func (g *foldedGraph) GoalCost(v NodeID) float64 {
	goalID, ok := g.liftGoal[v]
	if !ok {
		return math.Inf(1)
	}
	goal, err := g.goals.Get(goalID)
	if err != nil {
		return math.Inf(1)
	}
	return g.heur.GoalCost(goal.Quality)
}
