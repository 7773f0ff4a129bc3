package mgsearch

import "github.com/pkg/errors"

// ProgrammerError wraps an error that indicates a contract violation by the
// caller (duplicate id, unknown id, querying an empty goal set) rather than
// ordinary path infeasibility. Ordinary infeasibility is reported through
// SearchResult.Solved being false, never through an error.
type ProgrammerError struct {
	cause error
}

func (e *ProgrammerError) Error() string {
	return e.cause.Error()
}

func (e *ProgrammerError) Unwrap() error {
	return e.cause
}

func newProgrammerError(cause error) error {
	return &ProgrammerError{cause: cause}
}

// errorf builds a plain, non-programmer error with a formatted message.
func errorf(format string, args ...interface{}) error {
	return errors.Errorf(format, args...)
}

// programmerErrorf builds a ProgrammerError with a formatted message.
func programmerErrorf(format string, args ...interface{}) error {
	return newProgrammerError(errors.Errorf(format, args...))
}

// wrapProgrammerError wraps cause as a ProgrammerError, attaching msg as
// additional context.
func wrapProgrammerError(cause error, msg string) error {
	return newProgrammerError(errors.Wrap(cause, msg))
}

// errDuplicateGraspID builds the programmer error for registering a grasp
// id that is already registered. Nothing in this package returns it.
func errDuplicateGraspID(gid GraspID) error {
	return programmerErrorf("grasp %d is already registered", gid)
}

// errUnknownGraspID builds the programmer error for referencing a grasp id
// that was never added, or was already removed. Nothing in this package
// returns it.
func errUnknownGraspID(gid GraspID) error {
	return programmerErrorf("grasp %d is not registered", gid)
}

// errDuplicateGoalID is returned by GoalSet.AddGoal when the goal id is
// already registered.
func errDuplicateGoalID(gid GoalID) error {
	return programmerErrorf("goal %d is already registered", gid)
}

// errUnknownGoalID is returned when a goal id is referenced that was never
// added, or was already removed.
func errUnknownGoalID(gid GoalID) error {
	return programmerErrorf("goal %d is not registered", gid)
}

// errNoGoals is returned by a GoalHeuristic when it is queried before any
// goal has been registered.
var errNoGoals = newProgrammerError(errors.New("cost-to-go queried with no goals registered"))

// errNoGoalsForGrasp is returned when a GoalHeuristic is queried for a
// grasp that has no associated goals.
func errNoGoalsForGrasp(gid GraspID) error {
	return newProgrammerError(errors.Errorf("cost-to-go queried for grasp %d with no associated goals", gid))
}
