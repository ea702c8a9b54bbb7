package spade

import (
	"cmp"
	"sort"
)

// dropLastItem returns the (k-1)-prefix of seq, obtained by removing its
// single most-recently-appended item: the last item of the last itemset if
// that itemset holds more than one item, or the whole last itemset if it is
// a singleton.
func dropLastItem[I cmp.Ordered](seq Sequence[I]) Sequence[I] {
	if len(seq) == 0 {
		return seq
	}
	last := len(seq) - 1
	if len(seq[last]) > 1 {
		out := seq.clone()
		out[last] = out[last][:len(out[last])-1]
		return out
	}
	return seq[:last]
}

// groupByClass partitions elements into equivalence classes sharing a
// common (k-1)-prefix (spec.md §4.4), returning the classes keyed by their
// prefix's canonical form and the keys in deterministic ascending order.
func groupByClass[S cmp.Ordered, I cmp.Ordered](elements []*Element[S, I]) (map[string][]*Element[S, I], []string) {
	classes := make(map[string][]*Element[S, I])
	for _, e := range elements {
		key := canonicalKey(dropLastItem(e.Sequence))
		classes[key] = append(classes[key], e)
	}
	order := make([]string, 0, len(classes))
	for key := range classes {
		order = append(order, key)
	}
	sort.Strings(order)
	return classes, order
}
