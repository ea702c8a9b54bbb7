package spade

import (
	"cmp"
	"sort"
)

// RankEvents converts caller-labeled events into the rank-ordered form
// Engine.Configure expects: for each sid, event labels are sorted ascending
// and replaced by their 0-based position, per spec.md §6 ("eid is never the
// caller's label directly; it is the label's rank within its sid, after
// sorting labels ascending"). L is typically a timestamp or sequence number;
// its only required property is a total order.
func RankEvents[S cmp.Ordered, L cmp.Ordered, I cmp.Ordered](raw map[S]map[L][]I) map[S][]Itemset[I] {
	out := make(map[S][]Itemset[I], len(raw))
	for sid, events := range raw {
		labels := make([]L, 0, len(events))
		for label := range events {
			labels = append(labels, label)
		}
		sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
		ordered := make([]Itemset[I], len(labels))
		for i, label := range labels {
			ordered[i] = newItemset(events[label])
		}
		out[sid] = ordered
	}
	return out
}
