package mgsearch

import "gonum.org/v1/gonum/floats"

// nnIndex is a simple linear-scan nearest-neighbor index over roadmap
// configurations. The teacher's nearestNeighbor.go switches to a
// goroutine-parallel scan once the map grows past a threshold
// (neighborsBeforeParallelization); that branch is intentionally not
// ported here, since this package commits to single-threaded search
// (no parallel search is a stated non-goal).
type nnIndex struct {
	ids     []NodeID
	configs []Config
}

func newNNIndex() *nnIndex {
	return &nnIndex{}
}

func (idx *nnIndex) add(id NodeID, c Config) {
	idx.ids = append(idx.ids, id)
	idx.configs = append(idx.configs, c)
}

func (idx *nnIndex) remove(id NodeID) {
	for i, existing := range idx.ids {
		if existing == id {
			idx.ids = append(idx.ids[:i], idx.ids[i+1:]...)
			idx.configs = append(idx.configs[:i], idx.configs[i+1:]...)
			return
		}
	}
}

func (idx *nnIndex) size() int {
	return len(idx.ids)
}

// nearest returns the id of the configuration closest to q, excluding
// exclude, and its distance. ok is false if the index (after exclusion) is
// empty.
func (idx *nnIndex) nearest(q Config, exclude NodeID) (id NodeID, dist float64, ok bool) {
	best := -1
	bestDist := 0.0
	for i, c := range idx.configs {
		if idx.ids[i] == exclude {
			continue
		}
		d := floats.Distance(q, c, 2)
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best == -1 {
		return 0, 0, false
	}
	return idx.ids[best], bestDist, true
}

// nearestR returns the ids of every configuration within radius r of q,
// excluding exclude.
func (idx *nnIndex) nearestR(q Config, r float64, exclude NodeID) []NodeID {
	var out []NodeID
	for i, c := range idx.configs {
		if idx.ids[i] == exclude {
			continue
		}
		if floats.Distance(q, c, 2) <= r {
			out = append(out, idx.ids[i])
		}
	}
	return out
}
