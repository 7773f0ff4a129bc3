package mgsearch

import (
	"context"
	"io"

	"github.com/edaniels/golog"
	"go.opencensus.io/trace"
)

// AlgorithmType selects which search algorithm a Planner runs.
type AlgorithmType int

const (
	// LPAStarAlgorithm runs incremental LPA* search, absorbing lazy edge
	// resolutions without restarting the search.
	LPAStarAlgorithm AlgorithmType = iota
)

// GraphType selects how a Planner presents grasp-conditional roadmap state
// to the search algorithm.
type GraphType int

const (
	// SingleGraspGraphType searches under exactly one grasp per Plan call.
	SingleGraspGraphType GraphType = iota
	// MultiGraspGraphType searches the product of the roadmap with every
	// active grasp in one pass.
	MultiGraspGraphType
	// FoldedStationaryGraphType shares one base-layer search across every
	// grasp, with lift edges to grasp-specific goals materialized eagerly.
	FoldedStationaryGraphType
	// FoldedDynamicGraphType is FoldedStationaryGraphType with lift edges
	// discovered lazily as the frontier reaches them. Only valid with
	// LPAStarAlgorithm.
	FoldedDynamicGraphType
)

// Params configures a Planner's search behavior.
type Params struct {
	Algorithm AlgorithmType
	Graph     GraphType
	// Lambda trades path cost off against goal quality in the goal
	// heuristic: larger values favor higher-quality goals more strongly
	// relative to how much farther away they are.
	Lambda float64
	// DensificationBatch is how many additional roadmap nodes to sample
	// when a Plan call finds the roadmap currently too sparse to connect
	// start to any goal.
	DensificationBatch int
}

// DefaultParams returns the Params a Planner uses if none are supplied:
// LPA* over a single grasp, lambda 1.0, as the reference implementation
// defaults to.
func DefaultParams() Params {
	return Params{
		Algorithm:          LPAStarAlgorithm,
		Graph:              SingleGraspGraphType,
		Lambda:             1.0,
		DensificationBatch: defaultDensificationBatch,
	}
}

// Planner owns a Roadmap, its GoalSet and GoalHeuristic, and runs searches
// over them on demand. It is the package's main external entry point; see
// also cmd/mgplan for a CLI front-end built on top of it.
type Planner struct {
	space   StateSpace
	roadmap *Roadmap
	goals   *GoalSet
	heur    *GoalHeuristic
	params  Params
	logger  golog.Logger
	tracer  bool
}

// PlannerOption configures a Planner at construction time.
type PlannerOption func(*Planner)

// WithLogger installs a structured logger for diagnostic output. The
// default is a development logger under the name "mgsearch.planner".
func WithLogger(l golog.Logger) PlannerOption {
	return func(p *Planner) { p.logger = l }
}

// WithTracer enables or disables the go.opencensus.io/trace spans Plan
// emits. Spans are enabled by default.
func WithTracer(enabled bool) PlannerOption {
	return func(p *Planner) { p.tracer = enabled }
}

// WithTraceSinks enables the opt-in CSV trace log format, writing roadmap
// node records to roadmapW and validity/cost event records to eventW.
func WithTraceSinks(roadmapW, eventW io.Writer) PlannerOption {
	return func(p *Planner) {
		p.roadmap.trace = NewCSVRoadmapLogger(roadmapW, eventW)
	}
}

// NewPlanner builds a Planner over space with the given parameters. The
// roadmap is densified with one initial batch immediately, matching
// Roadmap's own eager-construction convention.
func NewPlanner(space StateSpace, params Params, opts ...PlannerOption) *Planner {
	logger := golog.NewDevelopmentLogger("mgsearch.planner")
	roadmap := NewRoadmap(space, WithRoadmapGoLogger(logger))
	goals := NewGoalSet(roadmap)
	heur := NewGoalHeuristic(goals, roadmap.coster.LowerBound, params.Lambda)
	p := &Planner{
		space:   space,
		roadmap: roadmap,
		goals:   goals,
		heur:    heur,
		params:  params,
		logger:  logger,
		tracer:  true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Logger returns the Planner's configured structured logger.
func (p *Planner) Logger() golog.Logger {
	return p.logger
}

// AddGoal registers goal with the Planner's GoalSet and refreshes the goal
// heuristic to account for it.
func (p *Planner) AddGoal(goal Goal) error {
	if err := p.goals.AddGoal(goal); err != nil {
		return err
	}
	p.heur.Refresh()
	return nil
}

// RemoveGoals unregisters every id in gids and refreshes the goal
// heuristic.
func (p *Planner) RemoveGoals(gids []GoalID) error {
	if err := p.goals.RemoveGoals(gids); err != nil {
		return err
	}
	p.heur.Refresh()
	return nil
}

// Plan searches for a path from start, holding startGrasp, to the best
// reachable goal, following the GraphType and AlgorithmType configured in
// Params. If no goal is reachable, the returned SearchResult has
// Solved == false and a nil error: infeasibility is not an error
// condition. An error is returned only for programmer errors (e.g. no
// goals registered). A cancelled context is not an error either: Plan
// stops searching and returns the result found so far with a nil error.
func (p *Planner) Plan(ctx context.Context, start Config, startGrasp GraspID, grasps []GraspID) (SearchResult, error) {
	if p.tracer {
		var span *trace.Span
		ctx, span = trace.StartSpan(ctx, "mgsearch.Planner.Plan")
		defer span.End()
	}
	if p.goals.Len() == 0 {
		return SearchResult{}, errNoGoals
	}
	startNode := p.roadmap.addNode(start)
	if !p.roadmap.isValidGrasping(startNode, startGrasp) {
		// An invalid start is ordinary infeasibility, not a programmer
		// error: LPA* simply never gets to initialize a search from it,
		// mirroring the reference implementation skipping initialization
		// when its own start-validity check fails.
		return SearchResult{Solved: false}, nil
	}

	graph, err := p.buildGraph(startNode.uid, startGrasp, grasps)
	if err != nil {
		return SearchResult{}, err
	}

	search := NewLPAStar(graph)
	result := search.ComputeShortestPath(ctx)

	// If the roadmap was too sparse to connect start to any goal, densify
	// it and retry a bounded number of times before reporting
	// infeasibility; each retry builds a fresh search since the graph's
	// vertex set has grown.
	const maxDensifyRetries = 4
	for retry := 0; !result.Solved && retry < maxDensifyRetries; retry++ {
		select {
		case <-ctx.Done():
			return result, nil
		default:
		}
		p.roadmap.densify(ctx, p.params.DensificationBatch)
		search = NewLPAStar(graph)
		result = search.ComputeShortestPath(ctx)
	}

	if !result.Solved {
		return result, nil
	}
	result.Path = search.ExtractPath()
	p.logger.Debugf("plan solved: cost=%g path_len=%d", result.Cost(), len(result.Path))
	return result, nil
}

func (p *Planner) buildGraph(start NodeID, startGrasp GraspID, grasps []GraspID) (Graph, error) {
	switch p.params.Graph {
	case SingleGraspGraphType:
		return NewSingleGraspGraph(p.roadmap, p.goals, p.heur, start, startGrasp), nil
	case MultiGraspGraphType:
		return NewMultiGraspGraph(p.roadmap, p.goals, p.heur, start, startGrasp, grasps), nil
	case FoldedStationaryGraphType:
		return NewFoldedGraph(p.roadmap, p.goals, p.heur, start, false), nil
	case FoldedDynamicGraphType:
		if p.params.Algorithm != LPAStarAlgorithm {
			return nil, programmerErrorf("folded dynamic graph requires the LPA* algorithm")
		}
		return NewFoldedGraph(p.roadmap, p.goals, p.heur, start, true), nil
	default:
		return nil, programmerErrorf("unknown graph type %d", p.params.Graph)
	}
}
