package spade

import "cmp"

// CMap is the co-occurrence map pruning structure (spec.md §4.3). For each
// item a: E[a] holds items co-occurring with a in the same event in at
// least min_support distinct sids; S[a] holds items occurring strictly
// after a (same sid, later event) in at least min_support distinct sids.
// It is built once from the frequent 2-sequences of a run and never
// mutated afterward.
type CMap[I cmp.Ordered] struct {
	E map[I]map[I]struct{}
	S map[I]map[I]struct{}
}

// NewCMap returns an empty co-occurrence map.
func NewCMap[I cmp.Ordered]() *CMap[I] {
	return &CMap[I]{
		E: make(map[I]map[I]struct{}),
		S: make(map[I]map[I]struct{}),
	}
}

func (c *CMap[I]) addE(a, b I) {
	if c.E[a] == nil {
		c.E[a] = make(map[I]struct{})
	}
	c.E[a][b] = struct{}{}
}

func (c *CMap[I]) addS(a, b I) {
	if c.S[a] == nil {
		c.S[a] = make(map[I]struct{})
	}
	c.S[a][b] = struct{}{}
}

// AllowsEvent reports whether b is recorded as co-occurring with a in the
// same event in at least min_support sids (the map is symmetric, so
// querying either direction agrees).
func (c *CMap[I]) AllowsEvent(a, b I) bool {
	_, ok := c.E[a][b]
	return ok
}

// AllowsSequence reports whether b is recorded as occurring strictly after
// a, same sid, in at least min_support sids.
func (c *CMap[I]) AllowsSequence(a, b I) bool {
	_, ok := c.S[a][b]
	return ok
}

// BuildCMap builds a CMap from a run's frequent 2-sequences. Each element
// must be a 2-sequence: either a single itemset of two items (an
// event-extension 2-sequence) or two singleton itemsets (a
// sequence-extension 2-sequence).
func BuildCMap[S cmp.Ordered, I cmp.Ordered](freq2 []*Element[S, I]) *CMap[I] {
	cm := NewCMap[I]()
	for _, e := range freq2 {
		seq := e.Sequence
		switch {
		case len(seq) == 1 && len(seq[0]) == 2:
			a, b := seq[0][0], seq[0][1]
			cm.addE(a, b)
			cm.addE(b, a)
		case len(seq) == 2 && len(seq[0]) == 1 && len(seq[1]) == 1:
			cm.addS(seq[0][0], seq[1][0])
		}
	}
	return cm
}
