package mgsearch

import (
	"fmt"
	"io"

	"github.com/google/uuid"
)

// RoadmapLogger records every validity check and cost evaluation the
// Roadmap performs against the oracle, so a run can be replayed or
// visualized offline. The default is a no-op; opt in with a CSV-writing
// implementation via WithRoadmapLogger to produce the trace format.
type RoadmapLogger interface {
	// NewNode is called once, when config is first added to the roadmap.
	NewNode(uid NodeID, config Config)
	// ValidityBase is called once per node, recording the grasp-agnostic
	// validity check outcome.
	ValidityBase(uid NodeID, valid bool)
	// ValidityGrasp is called once per (node, grasp) pair, recording the
	// grasp-conditional validity check outcome.
	ValidityGrasp(uid NodeID, gid GraspID, valid bool)
	// EdgeCostBase is called once per edge, recording the grasp-agnostic
	// cost evaluation outcome.
	EdgeCostBase(a, b NodeID, cost float64)
	// EdgeCostGrasp is called once per (edge, grasp) pair, recording the
	// grasp-conditional cost evaluation outcome.
	EdgeCostGrasp(a, b NodeID, gid GraspID, cost float64)
}

type noopRoadmapLogger struct{}

func (noopRoadmapLogger) NewNode(NodeID, Config)             {}
func (noopRoadmapLogger) ValidityBase(NodeID, bool)           {}
func (noopRoadmapLogger) ValidityGrasp(NodeID, GraspID, bool) {}
func (noopRoadmapLogger) EdgeCostBase(NodeID, NodeID, float64) {}
func (noopRoadmapLogger) EdgeCostGrasp(NodeID, NodeID, GraspID, float64) {}

// CSVRoadmapLogger writes the roadmap and event trace formats described in
// the package's external interfaces to two io.Writers: one line-oriented
// CSV for sampled roadmap nodes, one for validity/cost events. Lines are
// tagged with a per-session run id so traces from concurrent or successive
// planning sessions written to the same sink can be told apart in
// post-processing.
type CSVRoadmapLogger struct {
	roadmapW io.Writer
	eventW   io.Writer
	runID    uuid.UUID
}

// NewCSVRoadmapLogger returns a CSVRoadmapLogger writing roadmap node
// records to roadmapW and validity/cost event records to eventW, tagging
// every line with a freshly generated run id.
func NewCSVRoadmapLogger(roadmapW, eventW io.Writer) *CSVRoadmapLogger {
	return &CSVRoadmapLogger{roadmapW: roadmapW, eventW: eventW, runID: uuid.New()}
}

func (l *CSVRoadmapLogger) NewNode(uid NodeID, config Config) {
	fmt.Fprintf(l.roadmapW, "%s,%d,%d", l.runID, uid, len(config))
	for _, x := range config {
		fmt.Fprintf(l.roadmapW, ",%g", x)
	}
	fmt.Fprintln(l.roadmapW)
}

func (l *CSVRoadmapLogger) ValidityBase(uid NodeID, valid bool) {
	fmt.Fprintf(l.eventW, "%s,VAL_BASE,%d,%d\n", l.runID, uid, boolToInt(valid))
}

func (l *CSVRoadmapLogger) ValidityGrasp(uid NodeID, gid GraspID, valid bool) {
	fmt.Fprintf(l.eventW, "%s,VAL_GRASP,%d,%d,%d\n", l.runID, uid, gid, boolToInt(valid))
}

func (l *CSVRoadmapLogger) EdgeCostBase(a, b NodeID, cost float64) {
	fmt.Fprintf(l.eventW, "%s,EDGE_COST,%d,%d,%g\n", l.runID, a, b, cost)
}

func (l *CSVRoadmapLogger) EdgeCostGrasp(a, b NodeID, gid GraspID, cost float64) {
	fmt.Fprintf(l.eventW, "%s,EDGE_COST_GRASP,%d,%d,%d,%g\n", l.runID, a, b, gid, cost)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
