package mgsearch

import "sort"

// GoalSet tracks the currently active Goals and their corresponding
// roadmap nodes, letting the search and heuristic treat "is this node a
// goal for this grasp" and "which goal is this" as O(1) lookups.
type GoalSet struct {
	roadmap *Roadmap

	goals           map[GoalID]Goal
	goalIDToNodeID  map[GoalID]NodeID
	nodeIDToGoalID  map[NodeID]GoalID
}

// NewGoalSet returns an empty GoalSet backed by roadmap; goal configurations
// added to it become roadmap nodes.
func NewGoalSet(roadmap *Roadmap) *GoalSet {
	return &GoalSet{
		roadmap:        roadmap,
		goals:          make(map[GoalID]Goal),
		goalIDToNodeID: make(map[GoalID]NodeID),
		nodeIDToGoalID: make(map[NodeID]GoalID),
	}
}

// AddGoal registers goal, inserting its configuration into the shared
// roadmap as a new node. It is a programmer error to add a goal id twice
// without first removing it.
func (gs *GoalSet) AddGoal(goal Goal) error {
	if _, exists := gs.goals[goal.ID]; exists {
		return errDuplicateGoalID(goal.ID)
	}
	n := gs.roadmap.addNode(goal.Config)
	gs.goals[goal.ID] = goal
	gs.goalIDToNodeID[goal.ID] = n.uid
	gs.nodeIDToGoalID[n.uid] = goal.ID
	return nil
}

// RemoveGoal unregisters goal id gid. It is a programmer error to remove an
// id that is not currently registered.
func (gs *GoalSet) RemoveGoal(gid GoalID) error {
	nodeID, ok := gs.goalIDToNodeID[gid]
	if !ok {
		return errUnknownGoalID(gid)
	}
	delete(gs.goals, gid)
	delete(gs.goalIDToNodeID, gid)
	delete(gs.nodeIDToGoalID, nodeID)
	return nil
}

// RemoveGoals unregisters every id in gids, stopping at (and returning) the
// first error encountered. Ids already removed are unaffected by a later
// failure.
func (gs *GoalSet) RemoveGoals(gids []GoalID) error {
	for _, gid := range gids {
		if err := gs.RemoveGoal(gid); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the Goal registered under gid.
func (gs *GoalSet) Get(gid GoalID) (Goal, error) {
	g, ok := gs.goals[gid]
	if !ok {
		return Goal{}, errUnknownGoalID(gid)
	}
	return g, nil
}

// All returns every currently registered goal, ordered by id so that two
// runs over the same goal set see the same order regardless of Go's
// randomized map iteration.
func (gs *GoalSet) All() []Goal {
	out := make([]Goal, 0, len(gs.goals))
	for _, g := range gs.goals {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of currently registered goals.
func (gs *GoalSet) Len() int {
	return len(gs.goals)
}

// IsGoal reports whether uid is a registered goal node valid for gid: the
// node must be a goal at all, and its roadmap validity check (base and
// conditional on gid) must pass.
func (gs *GoalSet) IsGoal(uid NodeID, gid GraspID) bool {
	goalID, ok := gs.nodeIDToGoalID[uid]
	if !ok {
		return false
	}
	goal := gs.goals[goalID]
	if goal.GraspID != gid {
		return false
	}
	n, ok := gs.roadmap.getNode(uid)
	if !ok {
		return false
	}
	return gs.roadmap.isValidGrasping(n, gid)
}

// GoalIDFor returns the goal id associated with uid for grasp gid, and
// whether uid is the node of a goal bound to that grasp. Unlike IsGoal, it
// does not check the node's validity.
func (gs *GoalSet) GoalIDFor(uid NodeID, gid GraspID) (GoalID, bool) {
	goalID, ok := gs.nodeIDToGoalID[uid]
	if !ok {
		return 0, false
	}
	if gs.goals[goalID].GraspID != gid {
		return 0, false
	}
	return goalID, true
}
