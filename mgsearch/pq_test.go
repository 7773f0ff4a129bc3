package mgsearch

import (
	"testing"

	"go.viam.com/test"
)

func TestIndexedPQOrdersByKey(t *testing.T) {
	pq := newIndexedPQ()
	pq.insert(1, pqKey{primary: 5, secondary: 0})
	pq.insert(2, pqKey{primary: 1, secondary: 0})
	pq.insert(3, pqKey{primary: 3, secondary: 0})

	v, _ := pq.popMin()
	test.That(t, v, test.ShouldEqual, NodeID(2))
	v, _ = pq.popMin()
	test.That(t, v, test.ShouldEqual, NodeID(3))
	v, _ = pq.popMin()
	test.That(t, v, test.ShouldEqual, NodeID(1))
	test.That(t, pq.Len(), test.ShouldEqual, 0)
}

func TestIndexedPQTieBreaksBySecondary(t *testing.T) {
	pq := newIndexedPQ()
	pq.insert(1, pqKey{primary: 1, secondary: 5})
	pq.insert(2, pqKey{primary: 1, secondary: 1})

	v, _ := pq.popMin()
	test.That(t, v, test.ShouldEqual, NodeID(2))
}

func TestIndexedPQDecreaseKey(t *testing.T) {
	pq := newIndexedPQ()
	pq.insert(1, pqKey{primary: 10, secondary: 0})
	pq.insert(2, pqKey{primary: 5, secondary: 0})

	pq.update(1, pqKey{primary: 1, secondary: 0})
	v, _ := pq.top()
	test.That(t, v, test.ShouldEqual, NodeID(1))
}

func TestIndexedPQIncreaseKey(t *testing.T) {
	pq := newIndexedPQ()
	pq.insert(1, pqKey{primary: 1, secondary: 0})
	pq.insert(2, pqKey{primary: 5, secondary: 0})

	pq.update(1, pqKey{primary: 10, secondary: 0})
	v, _ := pq.top()
	test.That(t, v, test.ShouldEqual, NodeID(2))
}

func TestIndexedPQRemove(t *testing.T) {
	pq := newIndexedPQ()
	pq.insert(1, pqKey{primary: 1, secondary: 0})
	pq.insert(2, pqKey{primary: 2, secondary: 0})
	pq.remove(1)
	test.That(t, pq.contains(1), test.ShouldBeFalse)
	test.That(t, pq.Len(), test.ShouldEqual, 1)
	v, _ := pq.top()
	test.That(t, v, test.ShouldEqual, NodeID(2))
}
