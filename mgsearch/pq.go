package mgsearch

import "container/heap"

// pqKey is the LPA* priority key: a lexicographically ordered pair
// (primary, secondary) = (min(g,rhs)+h, min(g,rhs)).
type pqKey struct {
	primary   float64
	secondary float64
}

// less implements the lexicographic order over keys: primary first, then
// secondary as a tie-breaker.
func (k pqKey) less(o pqKey) bool {
	if k.primary != o.primary {
		return k.primary < o.primary
	}
	return k.secondary < o.secondary
}

// pqItem is one entry in the indexed priority queue. index is maintained by
// container/heap and must not be modified by callers.
type pqItem struct {
	value NodeID
	key   pqKey
	index int
}

// indexedPQ is a binary min-heap over pqItem that additionally supports
// decrease-key and increase-key by value, via an index from value to heap
// position. This is the idiomatic Go stand-in for the Fibonacci/pairing
// heap the original LPA* implementation uses for O(log n) key updates,
// built on top of the standard library's container/heap.
type indexedPQ struct {
	items []*pqItem
	index map[NodeID]*pqItem
}

// newIndexedPQ returns an empty indexed priority queue.
func newIndexedPQ() *indexedPQ {
	return &indexedPQ{index: make(map[NodeID]*pqItem)}
}

func (pq *indexedPQ) Len() int { return len(pq.items) }

func (pq *indexedPQ) Less(i, j int) bool {
	return pq.items[i].key.less(pq.items[j].key)
}

func (pq *indexedPQ) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
	pq.items[i].index = i
	pq.items[j].index = j
}

func (pq *indexedPQ) Push(x interface{}) {
	item := x.(*pqItem)
	item.index = len(pq.items)
	pq.items = append(pq.items, item)
	pq.index[item.value] = item
}

func (pq *indexedPQ) Pop() interface{} {
	n := len(pq.items)
	item := pq.items[n-1]
	pq.items[n-1] = nil
	pq.items = pq.items[:n-1]
	delete(pq.index, item.value)
	return item
}

// contains reports whether v currently has an entry in the queue.
func (pq *indexedPQ) contains(v NodeID) bool {
	_, ok := pq.index[v]
	return ok
}

// keyOf returns the current key of v. It panics if v is not present; callers
// must check contains first.
func (pq *indexedPQ) keyOf(v NodeID) pqKey {
	return pq.index[v].key
}

// insert adds v with the given key. v must not already be present.
func (pq *indexedPQ) insert(v NodeID, key pqKey) {
	heap.Push(pq, &pqItem{value: v, key: key})
}

// update sets v's key to the given value, re-heapifying as needed, whether
// that is a decrease or an increase. v must already be present.
func (pq *indexedPQ) update(v NodeID, key pqKey) {
	item := pq.index[v]
	item.key = key
	heap.Fix(pq, item.index)
}

// remove removes v from the queue. v must already be present.
func (pq *indexedPQ) remove(v NodeID) {
	item := pq.index[v]
	heap.Remove(pq, item.index)
}

// top returns the value and key of the minimum element without removing it.
// It panics on an empty queue; callers must check Len first.
func (pq *indexedPQ) top() (NodeID, pqKey) {
	return pq.items[0].value, pq.items[0].key
}

// popMin removes and returns the minimum element.
func (pq *indexedPQ) popMin() (NodeID, pqKey) {
	item := heap.Pop(pq).(*pqItem)
	return item.value, item.key
}
