package mgsearch

import (
	"math"
	"testing"

	"go.viam.com/test"
)

type constantSpace struct {
	dim      int
	lower    Config
	upper    Config
	costFn   func(Config) float64
	blocked  func(Config) bool
}

func (s *constantSpace) Dimension() int                 { return s.dim }
func (s *constantSpace) Bounds() (Config, Config)       { return s.lower, s.upper }
func (s *constantSpace) Distance(a, b Config) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
func (s *constantSpace) IsValid(c Config) bool {
	if s.blocked != nil {
		return !s.blocked(c)
	}
	return true
}
func (s *constantSpace) IsValidGrasping(c Config, gid GraspID, lockGrasp bool) bool {
	return s.IsValid(c)
}
func (s *constantSpace) Cost(c Config) float64 {
	if s.costFn != nil {
		return s.costFn(c)
	}
	return 1
}
func (s *constantSpace) ConditionalCost(c Config, gid GraspID) float64 { return s.Cost(c) }
func (s *constantSpace) AddGrasp(g Grasp) error                       { return nil }
func (s *constantSpace) RemoveGrasp(gid GraspID) error                { return nil }

func TestIntegralEdgeCostComputerZeroLength(t *testing.T) {
	space := &constantSpace{dim: 2, lower: Config{0, 0}, upper: Config{1, 1}}
	c := NewIntegralEdgeCostComputer(space, 0.1)
	a := Config{0.5, 0.5}
	test.That(t, c.Cost(a, a), test.ShouldEqual, 0.0)
}

func TestIntegralEdgeCostComputerConstantCost(t *testing.T) {
	space := &constantSpace{dim: 1, lower: Config{0}, upper: Config{10}}
	c := NewIntegralEdgeCostComputer(space, 0.1)
	a, b := Config{0}, Config{5}
	test.That(t, c.Cost(a, b), test.ShouldAlmostEqual, 5.0, 1e-6)
}

func TestIntegralEdgeCostComputerInfiniteShortCircuits(t *testing.T) {
	space := &constantSpace{
		dim:   1,
		lower: Config{0},
		upper: Config{10},
		costFn: func(c Config) float64 {
			if c[0] > 2 && c[0] < 3 {
				return math.Inf(1)
			}
			return 1
		},
	}
	c := NewIntegralEdgeCostComputer(space, 0.1)
	a, b := Config{0}, Config{5}
	test.That(t, math.IsInf(c.Cost(a, b), 1), test.ShouldBeTrue)
}

func TestIntegralEdgeCostComputerLowerBoundIsDistance(t *testing.T) {
	space := &constantSpace{dim: 2, lower: Config{0, 0}, upper: Config{1, 1}}
	c := NewIntegralEdgeCostComputer(space, 0.1)
	a, b := Config{0, 0}, Config{3, 4}
	test.That(t, c.LowerBound(a, b), test.ShouldAlmostEqual, 5.0, 1e-9)
}
