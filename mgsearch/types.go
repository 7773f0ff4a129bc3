package mgsearch

import "math"

// Config is a point in the robot's joint space: an ordered sequence of real
// numbers of fixed dimension.
type Config []float64

// Clone returns a deep copy of the configuration.
func (c Config) Clone() Config {
	out := make(Config, len(c))
	copy(out, c)
	return out
}

// GraspID uniquely identifies a Grasp. Ids are assigned by the caller, not
// by this package.
type GraspID uint64

// GoalID uniquely identifies a Goal. Ids are assigned by the caller.
type GoalID uint64

// NodeID uniquely and stably identifies a Roadmap node for its lifetime.
type NodeID uint64

// SpaceInformation is the immutable description of the configuration space
// a Roadmap is built over: its dimension and the axis-aligned box bounding
// every sampled configuration.
type SpaceInformation struct {
	Dimension int
	Lower     Config
	Upper     Config
}

// Validate checks the basic well-formedness invariant lower[i] < upper[i].
func (si SpaceInformation) Validate() error {
	if si.Dimension <= 0 {
		return errorf("space dimension must be positive, got %d", si.Dimension)
	}
	if len(si.Lower) != si.Dimension || len(si.Upper) != si.Dimension {
		return errorf("bounds length must match dimension %d", si.Dimension)
	}
	for i := 0; i < si.Dimension; i++ {
		if !(si.Lower[i] < si.Upper[i]) {
			return errorf("lower bound must be strictly less than upper bound at index %d", i)
		}
	}
	return nil
}

// Volume returns the measure mu(X) of the bounding box, used to compute the
// PRM* connection radius.
func (si SpaceInformation) Volume() float64 {
	mu := 1.0
	for i := 0; i < si.Dimension; i++ {
		mu *= si.Upper[i] - si.Lower[i]
	}
	return mu
}

// ScaleToLimits affinely maps a point in [0,1]^D into [lower, upper].
func (si SpaceInformation) ScaleToLimits(unit Config) Config {
	out := make(Config, si.Dimension)
	for i := 0; i < si.Dimension; i++ {
		out[i] = unit[i]*(si.Upper[i]-si.Lower[i]) + si.Lower[i]
	}
	return out
}

// Grasp is a fixed relative pose and gripper posture binding the object to
// the end-effector. Grasps are immutable once inserted into a StateSpace.
type Grasp struct {
	ID GraspID
	// OrientationWXYZ is the object's orientation relative to the
	// end-effector, as a unit quaternion in (w, x, y, z) order.
	OrientationWXYZ [4]float64
	// Translation is the object's translation relative to the end-effector.
	Translation [3]float64
	// GripperValues are the gripper joint values that realize the grasp.
	GripperValues []float64
}

// Goal is a desired terminal configuration tied to a specific grasp, with a
// scalar quality (higher is better).
type Goal struct {
	ID      GoalID
	Config  Config
	GraspID GraspID
	Quality float64
}

// StateSpace is the external collision/kinematics oracle this package
// depends on. Implementations must apply the scoped-acquisition pattern
// around every grasp-conditional query: snapshot, apply grasp, query,
// release/restore on every exit path (in Go, typically via defer). The
// Roadmap only issues the queries; it holds no scene state of its own.
type StateSpace interface {
	// Dimension returns the dimensionality of the configuration space.
	Dimension() int
	// Bounds returns the lower and upper limits of the configuration space.
	Bounds() (lower, upper Config)
	// Distance is an admissible lower bound on edge cost between a and b;
	// implementations are required to make this the Euclidean distance.
	Distance(a, b Config) float64
	// IsValid reports whether c is free of (self-)collision, independent of
	// any grasp.
	IsValid(c Config) bool
	// IsValidGrasping reports whether c is free of (self-)collision with the
	// given grasp applied. lockGrasp requests that the grasp remain applied
	// for the duration of subsequent calls rather than being released
	// immediately; StateSpace implementations that cannot batch queries may
	// ignore it.
	IsValidGrasping(c Config, gid GraspID, lockGrasp bool) bool
	// Cost returns the grasp-agnostic point cost of c: +Inf on collision,
	// otherwise a positive clearance-derived cost.
	Cost(c Config) float64
	// ConditionalCost returns the point cost of c with the given grasp
	// applied.
	ConditionalCost(c Config, gid GraspID) float64
	// AddGrasp registers a grasp with the oracle's scene representation.
	AddGrasp(g Grasp) error
	// RemoveGrasp unregisters a grasp from the oracle's scene.
	RemoveGrasp(gid GraspID) error
}

// SpaceInfoOf builds a SpaceInformation from a StateSpace's reported
// dimension and bounds.
func SpaceInfoOf(ss StateSpace) SpaceInformation {
	lower, upper := ss.Bounds()
	return SpaceInformation{Dimension: ss.Dimension(), Lower: lower, Upper: upper}
}

// Sampler is an abstract quasi-random source of points in the unit box
// [0,1]^D. Halton sampling is the reference implementation (see
// NewHaltonSampler) but the Roadmap treats any Sampler as an external
// collaborator.
type Sampler interface {
	// Next returns the next dim-dimensional point in [0,1]^dim.
	Next(dim int) Config
}

// PointCoster maps a single configuration to a scalar cost, +Inf on
// collision. The reference mapping is 1/clearance (see
// InverseClearanceCost); ThresholdedInverseClearance is an alternative that
// drops to zero beyond a clearance threshold.
type PointCoster func(c Config) float64

// InverseClearanceCost is the reference point-cost mapping: 1/clearance.
// It diverges as clearance approaches zero; see ThresholdedInverseClearance
// for an alternative that is zero at large clearance.
func InverseClearanceCost(clearance float64) float64 {
	if clearance <= 0 {
		return math.Inf(1)
	}
	return 1.0 / clearance
}

// ThresholdedInverseClearance maps clearance to cost: +Inf for clearance
// <= 0, 0 for clearance >= threshold, and 1/clearance - 1/threshold in
// between, so the cost is continuous at the threshold. Like the reference
// 1/clearance mapping, it still grows without bound as clearance
// approaches zero.
func ThresholdedInverseClearance(clearance, threshold float64) float64 {
	if clearance <= 0 {
		return math.Inf(1)
	}
	if clearance >= threshold {
		return 0
	}
	return 1.0/clearance - 1.0/threshold
}
