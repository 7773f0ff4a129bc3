package mgsearch

import (
	"context"
	"math"

	"github.com/edaniels/golog"
	"go.opencensus.io/trace"
)

const defaultDensificationBatch = 10

// Roadmap is a shared, lazily-evaluated probabilistic roadmap. Validity and
// cost are evaluated against the oracle on first touch and cached
// thereafter, both grasp-agnostically (base) and per grasp (conditional),
// so work done for one grasp or one search is never repeated for another.
type Roadmap struct {
	space    StateSpace
	spaceInfo SpaceInformation
	sampler  Sampler
	coster   EdgeCostComputer
	logger   golog.Logger
	trace    RoadmapLogger

	nodes        map[NodeID]*rmNode
	nn           *nnIndex
	nextUID      NodeID
	haltonSeqID  int
	densifyGen   int
	gammaPRM     float64
}

// RoadmapOption configures a Roadmap at construction time.
type RoadmapOption func(*Roadmap)

// WithRoadmapLogger installs a RoadmapLogger to record every validity check
// and cost evaluation, for the opt-in CSV trace format.
func WithRoadmapLogger(l RoadmapLogger) RoadmapOption {
	return func(r *Roadmap) { r.trace = l }
}

// WithRoadmapGoLogger installs a golog.Logger for structured diagnostic
// logging, distinct from the CSV RoadmapLogger.
func WithRoadmapGoLogger(l golog.Logger) RoadmapOption {
	return func(r *Roadmap) { r.logger = l }
}

// WithSampler overrides the default Halton sampler used to seed new nodes.
func WithSampler(s Sampler) RoadmapOption {
	return func(r *Roadmap) { r.sampler = s }
}

// WithEdgeCostComputer overrides the default IntegralEdgeCostComputer.
func WithEdgeCostComputer(c EdgeCostComputer) RoadmapOption {
	return func(r *Roadmap) { r.coster = c }
}

// NewRoadmap builds an empty Roadmap over space and immediately densifies
// it with one batch of Halton-seeded nodes, matching the teacher-grounded
// constructor convention of doing useful work eagerly rather than lazily
// on first Plan call.
func NewRoadmap(space StateSpace, opts ...RoadmapOption) *Roadmap {
	info := SpaceInfoOf(space)
	r := &Roadmap{
		space:     space,
		spaceInfo: info,
		sampler:   NewHaltonSampler(info.Dimension),
		logger:    golog.NewDevelopmentLogger("mgsearch.roadmap"),
		trace:     noopRoadmapLogger{},
		nodes:     make(map[NodeID]*rmNode),
		nn:        newNNIndex(),
		nextUID:   1,
	}
	r.coster = NewIntegralEdgeCostComputer(space, 0.001)
	for _, opt := range opts {
		opt(r)
	}
	r.gammaPRM = prmStarGamma(info)
	r.densify(context.Background(), defaultDensificationBatch)
	return r
}

// prmStarGamma computes the PRM* connection-radius constant
// gamma_PRM = 2 * ((1 + 1/D) * mu(X) / xi_D) ^ (1/D), where xi_D is the
// volume of the unit ball in D dimensions.
func prmStarGamma(info SpaceInformation) float64 {
	d := float64(info.Dimension)
	mu := info.Volume()
	xi := math.Pow(math.Pi, d/2) / math.Gamma(d/2+1)
	return 2.0 * math.Pow((1+1/d)*mu/xi, 1/d)
}

// densify adds batchSize new nodes sampled (and scaled into the
// configuration-space bounds) from the Roadmap's Sampler, advancing the
// densification generation so existing nodes know to refresh their
// adjacency against the enlarged roadmap.
func (r *Roadmap) densify(ctx context.Context, batchSize int) {
	ctx, span := trace.StartSpan(ctx, "mgsearch.Roadmap.densify")
	defer span.End()
	for i := 0; i < batchSize; i++ {
		unit := r.sampler.Next(r.spaceInfo.Dimension)
		config := r.spaceInfo.ScaleToLimits(unit)
		r.addNode(config)
	}
	r.haltonSeqID += batchSize
	r.densifyGen++
	r.logger.Debugf("densified roadmap: added=%d total=%d generation=%d", batchSize, len(r.nodes), r.densifyGen)
}

// addNode inserts config as a new node with a freshly allocated uid.
func (r *Roadmap) addNode(config Config) *rmNode {
	uid := r.nextUID
	r.nextUID++
	n := newRMNode(uid, config, r.densifyGen-1)
	r.nodes[uid] = n
	r.nn.add(uid, config)
	r.trace.NewNode(uid, config)
	return n
}

// getNode looks up a node by uid, returning ok=false if it has been
// deleted or never existed.
func (r *Roadmap) getNode(uid NodeID) (*rmNode, bool) {
	n, ok := r.nodes[uid]
	return n, ok
}

// deleteNode removes an invalid node from the roadmap. Its incident edges
// are marked dead in place rather than removed immediately; the
// corresponding neighbor cleans up its own edge map lazily the next time
// its adjacency is refreshed.
func (r *Roadmap) deleteNode(n *rmNode) {
	r.nn.remove(n.uid)
	delete(r.nodes, n.uid)
	for _, e := range n.edges {
		e.baseEvaluated = true
		e.baseCost = math.Inf(1)
	}
}

// updateAdjacency refreshes n's neighbor set against the current roadmap
// if the roadmap has been densified since n's adjacency was last computed,
// connecting n to every node within the current PRM* radius that is not
// already a neighbor. It then prunes any incident edge already proven
// dead, regardless of whether a refresh happened this call.
func (r *Roadmap) updateAdjacency(n *rmNode) {
	if n.densificationGen != r.densifyGen {
		size := r.nn.size()
		radius := 0.0
		if size > 1 {
			d := float64(r.spaceInfo.Dimension)
			radius = r.gammaPRM * math.Pow(math.Log(float64(size))/float64(size), 1/d)
		}
		for _, otherUID := range r.nn.nearestR(n.config, radius, n.uid) {
			if otherUID == n.uid {
				continue
			}
			if _, connected := n.edges[otherUID]; connected {
				continue
			}
			other, ok := r.nodes[otherUID]
			if !ok {
				continue
			}
			lb := r.coster.LowerBound(n.config, other.config)
			e := newRMEdge(n.uid, other.uid, lb)
			n.edges[otherUID] = e
			other.edges[n.uid] = e
		}
		n.densificationGen = r.densifyGen
	}
	for uid, e := range n.edges {
		if e.isDead() {
			delete(n.edges, uid)
		}
	}
}

// isValid reports whether n passes the grasp-agnostic validity check,
// evaluating and caching it against the oracle on first call. An invalid
// node is removed from the roadmap and false is returned for every
// subsequent call.
func (r *Roadmap) isValid(n *rmNode) bool {
	if !n.initialized {
		valid := r.space.IsValid(n.config)
		r.trace.ValidityBase(n.uid, valid)
		n.initialized = true
		n.valid = valid
		if !valid {
			r.deleteNode(n)
		}
	}
	return n.valid
}

// isValidGrasping reports whether n is valid both grasp-agnostically and
// with the given grasp applied, memoizing the per-grasp result.
func (r *Roadmap) isValidGrasping(n *rmNode, gid GraspID) bool {
	if !r.isValid(n) {
		return false
	}
	if v, ok := n.conditionalValidity[gid]; ok {
		return v
	}
	v := r.space.IsValidGrasping(n.config, gid, false)
	r.trace.ValidityGrasp(n.uid, gid, v)
	n.conditionalValidity[gid] = v
	return v
}

// edgeCostResult is the outcome of resolving an edge's cost: whether the
// edge is traversable and, if so, its exact cost.
type edgeCostResult struct {
	Feasible bool
	Cost     float64
}

// computeCost resolves e's grasp-agnostic cost against the oracle on first
// call, caching the result; subsequent calls return the cached outcome
// without touching the oracle again.
func (r *Roadmap) computeCost(e *rmEdge) edgeCostResult {
	if e.baseEvaluated {
		return edgeCostResult{Feasible: !math.IsInf(e.baseCost, 1), Cost: e.baseCost}
	}
	a := r.nodes[e.a]
	b := r.nodes[e.b]
	cost := r.coster.Cost(a.config, b.config)
	e.baseEvaluated = true
	e.baseCost = cost
	r.trace.EdgeCostBase(e.a, e.b, cost)
	return edgeCostResult{Feasible: !math.IsInf(cost, 1), Cost: cost}
}

// computeConditionalCost resolves e's cost while holding gid, against the
// oracle on first call for that grasp, caching the result. If the edge's
// base cost is already known infinite, the grasp-conditional cost is
// infinite too without an oracle query: a grasp-agnostic collision cannot
// be cured by any grasp.
func (r *Roadmap) computeConditionalCost(e *rmEdge, gid GraspID) edgeCostResult {
	if e.baseEvaluated && math.IsInf(e.baseCost, 1) {
		return edgeCostResult{Feasible: false, Cost: e.baseCost}
	}
	if c, ok := e.conditionalCosts[gid]; ok {
		return edgeCostResult{Feasible: !math.IsInf(c, 1), Cost: c}
	}
	a := r.nodes[e.a]
	b := r.nodes[e.b]
	cost := r.coster.ConditionalCost(a.config, b.config, gid)
	e.conditionalCosts[gid] = cost
	r.trace.EdgeCostGrasp(e.a, e.b, gid, cost)
	return edgeCostResult{Feasible: !math.IsInf(cost, 1), Cost: cost}
}
