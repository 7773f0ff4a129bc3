package mgsearch

import (
	"testing"

	"go.viam.com/test"
)

func TestHaltonSamplerStaysInUnitBox(t *testing.T) {
	s := NewHaltonSampler(3)
	for i := 0; i < 50; i++ {
		p := s.Next(3)
		test.That(t, len(p), test.ShouldEqual, 3)
		for _, x := range p {
			test.That(t, x, test.ShouldBeGreaterThanOrEqualTo, 0.0)
			test.That(t, x, test.ShouldBeLessThan, 1.0)
		}
	}
}

func TestHaltonSamplerAdvancesEachCall(t *testing.T) {
	s := NewHaltonSampler(1)
	first := s.Next(1)
	second := s.Next(1)
	test.That(t, first[0], test.ShouldNotEqual, second[0])
}

func TestFirstPrimes(t *testing.T) {
	test.That(t, firstPrimes(5), test.ShouldResemble, []int{2, 3, 5, 7, 11})
}
