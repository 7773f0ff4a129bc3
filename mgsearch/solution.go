package mgsearch

// Step is one waypoint of an extracted solution path: a configuration and
// the grasp held while traversing it.
type Step struct {
	Config  Config
	GraspID GraspID
}

// ExtractSteps turns a SearchResult's raw vertex path into a sequence of
// (configuration, grasp) waypoints, dispatching on which Graph adapter
// produced it. For SingleGraspGraph every vertex is already a roadmap uid
// under the one grasp searched. For MultiGraspGraph each vertex encodes
// its own grasp and is decoded directly. For a folded graph the path is
// read in reverse from the goal, as the reference extractSolution does
// for FoldedMultiGraspRoadmapGraph: the lift vertex is dropped, and every
// base-layer vertex is reported under the grasp of the goal that lift
// vertex reaches.
func ExtractSteps(roadmap *Roadmap, graph Graph, result SearchResult) []Step {
	if !result.Solved {
		return nil
	}
	switch g := graph.(type) {
	case *multiGraspGraph:
		steps := make([]Step, 0, len(result.Path))
		for _, v := range result.Path {
			uid, gid := g.decode(v)
			n, ok := roadmap.getNode(uid)
			if !ok {
				continue
			}
			steps = append(steps, Step{Config: n.config, GraspID: gid})
		}
		return steps
	case *foldedGraph:
		return extractFoldedSteps(roadmap, g, result)
	default:
		steps := make([]Step, 0, len(result.Path))
		sg, _ := graph.(*singleGraspGraph)
		for _, v := range result.Path {
			n, ok := roadmap.getNode(v)
			if !ok {
				continue
			}
			step := Step{Config: n.config}
			if sg != nil {
				step.GraspID = sg.grasp
			}
			steps = append(steps, step)
		}
		return steps
	}
}

// extractFoldedSteps walks result.Path in reverse, as the reference
// FoldedMultiGraspRoadmapGraph overload of extractSolution does, reporting
// the grasp discovered at the goal's lift vertex for every base-layer
// vertex from there back to the point where the grasp was first committed.
func extractFoldedSteps(roadmap *Roadmap, g *foldedGraph, result SearchResult) []Step {
	goalID, ok := g.liftGoal[result.GoalNode]
	if !ok {
		return nil
	}
	grasp := GraspID(0)
	if gv, gerr := g.goals.Get(goalID); gerr == nil {
		grasp = gv.GraspID
	}

	reversed := make([]Step, 0, len(result.Path))
	for i := len(result.Path) - 1; i >= 0; i-- {
		v := result.Path[i]
		if g.isLift(v) {
			continue
		}
		n, ok := roadmap.getNode(v)
		if !ok {
			continue
		}
		reversed = append(reversed, Step{Config: n.config, GraspID: grasp})
	}
	steps := make([]Step, len(reversed))
	for i, s := range reversed {
		steps[len(reversed)-1-i] = s
	}
	return steps
}
