package main

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/JoshuaHaustein/hfts-grasp-planner/mgsearch"
)

// sceneFile is the on-disk JSON shape a scene description is read from:
// configuration-space bounds, a start configuration and grasp, a set of
// grasps, and a set of grasp-conditioned goals.
type sceneFile struct {
	Lower      []float64       `json:"lower"`
	Upper      []float64       `json:"upper"`
	Start      []float64       `json:"start"`
	StartGrasp uint64          `json:"start_grasp"`
	Grasps     []graspFile     `json:"grasps"`
	Goals      []goalFile      `json:"goals"`
	Obstacles  []obstacleFile  `json:"obstacles"`
}

type graspFile struct {
	ID uint64 `json:"id"`
}

func (g graspFile) toGrasp() mgsearch.Grasp {
	return mgsearch.Grasp{ID: mgsearch.GraspID(g.ID)}
}

type goalFile struct {
	ID      uint64    `json:"id"`
	Config  []float64 `json:"config"`
	GraspID uint64    `json:"grasp_id"`
	Quality float64   `json:"quality"`
}

func (g goalFile) toGoal() mgsearch.Goal {
	return mgsearch.Goal{
		ID:      mgsearch.GoalID(g.ID),
		Config:  mgsearch.Config(g.Config),
		GraspID: mgsearch.GraspID(g.GraspID),
		Quality: g.Quality,
	}
}

// obstacleFile is a spherical obstacle in configuration space: any
// configuration within Radius of Center is in collision.
type obstacleFile struct {
	Center []float64 `json:"center"`
	Radius float64   `json:"radius"`
}

// sphereObstacleSpace is a minimal StateSpace implementation for the CLI
// demo: validity is "outside every obstacle sphere", point cost is the
// reference 1/clearance mapping to the nearest obstacle, and grasps carry
// no geometry of their own (every grasp shares the same validity/cost as
// the unconditional case), since the CLI's purpose is to exercise the
// search machinery, not to model real robot geometry.
type sphereObstacleSpace struct {
	dim       int
	lower     mgsearch.Config
	upper     mgsearch.Config
	obstacles []obstacleFile
	grasps    map[mgsearch.GraspID]mgsearch.Grasp
}

func newSphereObstacleSpace(scene sceneFile) (*sphereObstacleSpace, error) {
	if len(scene.Lower) != len(scene.Upper) {
		return nil, errorfScene("lower and upper bounds must have the same length")
	}
	return &sphereObstacleSpace{
		dim:       len(scene.Lower),
		lower:     mgsearch.Config(scene.Lower),
		upper:     mgsearch.Config(scene.Upper),
		obstacles: scene.Obstacles,
		grasps:    make(map[mgsearch.GraspID]mgsearch.Grasp),
	}, nil
}

func errorfScene(msg string) error {
	return &sceneError{msg: msg}
}

type sceneError struct{ msg string }

func (e *sceneError) Error() string { return e.msg }

func (s *sphereObstacleSpace) Dimension() int { return s.dim }

func (s *sphereObstacleSpace) Bounds() (mgsearch.Config, mgsearch.Config) {
	return s.lower, s.upper
}

func (s *sphereObstacleSpace) Distance(a, b mgsearch.Config) float64 {
	return floats.Distance(a, b, 2)
}

func (s *sphereObstacleSpace) clearance(c mgsearch.Config) float64 {
	best := math.Inf(1)
	for _, o := range s.obstacles {
		d := floats.Distance(c, o.Center, 2) - o.Radius
		if d < best {
			best = d
		}
	}
	if len(s.obstacles) == 0 {
		return math.Inf(1)
	}
	return best
}

func (s *sphereObstacleSpace) IsValid(c mgsearch.Config) bool {
	return s.clearance(c) > 0
}

func (s *sphereObstacleSpace) IsValidGrasping(c mgsearch.Config, gid mgsearch.GraspID, lockGrasp bool) bool {
	return s.IsValid(c)
}

func (s *sphereObstacleSpace) Cost(c mgsearch.Config) float64 {
	return mgsearch.InverseClearanceCost(s.clearance(c))
}

func (s *sphereObstacleSpace) ConditionalCost(c mgsearch.Config, gid mgsearch.GraspID) float64 {
	return s.Cost(c)
}

func (s *sphereObstacleSpace) AddGrasp(g mgsearch.Grasp) error {
	if _, exists := s.grasps[g.ID]; exists {
		return errorfScene("duplicate grasp id")
	}
	s.grasps[g.ID] = g
	return nil
}

func (s *sphereObstacleSpace) RemoveGrasp(gid mgsearch.GraspID) error {
	if _, exists := s.grasps[gid]; !exists {
		return errorfScene("unknown grasp id")
	}
	delete(s.grasps, gid)
	return nil
}
