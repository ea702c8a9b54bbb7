package spade

import "cmp"

// Element is the unit of mining: a candidate (or confirmed) sequential
// pattern together with its id-list of witnessing occurrences.
//
// IDList marks, for each witness, the input sequence (SID) and the event
// rank (EID) at which the pattern ends in that sequence. Support is the
// count of distinct SIDs in IDList.
type Element[S cmp.Ordered, I cmp.Ordered] struct {
	Sequence Sequence[I]
	IDList   map[EventID[S]]struct{}

	hash uint64
}

// NewElement canonicalizes sequence and stores the given witnesses.
func NewElement[S cmp.Ordered, I cmp.Ordered](sequence Sequence[I], witnesses ...EventID[S]) *Element[S, I] {
	seq := sequence.clone()
	e := &Element[S, I]{
		Sequence: seq,
		IDList:   make(map[EventID[S]]struct{}, len(witnesses)),
		hash:     structuralHash(seq),
	}
	for _, w := range witnesses {
		e.IDList[w] = struct{}{}
	}
	return e
}

// NewSingletonElement wraps a bare item as a 1-itemset, 1-item sequence,
// mirroring the convenience the original Python Element constructor offered
// for its Phase-A callers.
func NewSingletonElement[S cmp.Ordered, I cmp.Ordered](item I, witnesses ...EventID[S]) *Element[S, I] {
	return NewElement[S, I](Sequence[I]{Itemset[I]{item}}, witnesses...)
}

// Len returns k, the pattern's total item-occurrence count.
func (e *Element[S, I]) Len() int { return e.Sequence.Len() }

// Size returns the number of itemsets in the pattern.
func (e *Element[S, I]) Size() int { return e.Sequence.Size() }

// Support returns the count of distinct sids witnessing this pattern.
func (e *Element[S, I]) Support() int {
	sids := make(map[S]struct{}, len(e.IDList))
	for w := range e.IDList {
		sids[w.SID] = struct{}{}
	}
	return len(sids)
}

// UnionInPlace merges other's witnesses into e when both share the same
// pattern key; otherwise it is a no-op.
func (e *Element[S, I]) UnionInPlace(other *Element[S, I]) {
	if !e.Sequence.equal(other.Sequence) {
		return
	}
	for w := range other.IDList {
		e.IDList[w] = struct{}{}
	}
}

// clone returns a deep copy of e. Pools store the Element pointers they are
// given; nothing in the package calls clone.
func (e *Element[S, I]) clone() *Element[S, I] {
	c := &Element[S, I]{
		Sequence: e.Sequence.clone(),
		IDList:   make(map[EventID[S]]struct{}, len(e.IDList)),
		hash:     e.hash,
	}
	for w := range e.IDList {
		c.IDList[w] = struct{}{}
	}
	return c
}

// HasSubsequence reports whether e's pattern is a subsequence of other's.
func (e *Element[S, I]) HasSubsequence(other *Element[S, I]) bool {
	return e.Sequence.HasSubsequence(other.Sequence)
}

// EventAtomUnion appends item to the last itemset of e's sequence (sorted,
// deduplicated), producing the sequence of an event-extension atom.
func (e *Element[S, I]) EventAtomUnion(item I) Sequence[I] {
	return eventAtomUnion(e.Sequence, item)
}

func eventAtomUnion[I cmp.Ordered](seq Sequence[I], item I) Sequence[I] {
	out := seq.clone()
	last := len(out) - 1
	out[last] = out[last].withItem(item)
	return out
}

// SequenceAtomUnion appends a new itemset {item} to e's sequence, producing
// the sequence of a sequence-extension atom.
func (e *Element[S, I]) SequenceAtomUnion(item I) Sequence[I] {
	return sequenceAtomUnion(e.Sequence, item)
}

func sequenceAtomUnion[I cmp.Ordered](seq Sequence[I], item I) Sequence[I] {
	out := make(Sequence[I], len(seq)+1)
	copy(out, seq)
	out[len(seq)] = Itemset[I]{item}
	return out
}

// EquivalenceRelationDiff reports how two sibling elements in the same
// equivalence class differ in their last itemset, per spec.md §4.1:
// each return is an item and an "ok" flag, ok=false meaning "none".
//
//   - both ok, with distinct items: each side adds one item of its own to
//     the shared (k-1)-prefix — both in the terminal itemset when the sizes
//     are equal, or, when one side is one itemset longer, that side by its
//     extra trailing singleton itemset and the other by one item in the
//     itemset at the shared position;
//   - only the a-side ok: a carries one extra trailing singleton itemset
//     beyond b's length (lastA is its item, the sequence-extension) and b
//     adds nothing beyond the shared prefix;
//   - only the b-side ok: the symmetric case, with roles swapped;
//   - neither ok: a and b are not equivalence-class siblings.
//
// When the sizes differ, the longer side's itemset at the shared position
// need not equal the shorter side's corresponding itemset exactly — it only
// needs to be a subset of it, since the shorter side may carry an
// event-extension there (e.g. a=((A,B)) and b=((A),(C)) both extend ((A))).
func EquivalenceRelationDiff[I cmp.Ordered](a, b Sequence[I]) (lastA I, okA bool, lastB I, okB bool) {
	switch {
	case len(a) == len(b):
		if len(a) == 0 {
			return
		}
		for i := 0; i < len(a)-1; i++ {
			if !a[i].equal(b[i]) {
				return
			}
		}
		diffA := a[len(a)-1].subtract(b[len(b)-1])
		diffB := b[len(b)-1].subtract(a[len(a)-1])
		if len(diffA) == 1 && len(diffB) == 1 {
			lastA, okA = diffA[0], true
			lastB, okB = diffB[0], true
		}
		return
	case len(a) == len(b)+1:
		// a carries the sequence-extension (its extra trailing itemset);
		// b may itself carry an event-extension at the shared position.
		if len(b) == 0 {
			return
		}
		n := len(b) - 1
		for i := 0; i < n; i++ {
			if !a[i].equal(b[i]) {
				return
			}
		}
		if !a[n].isSubsetOf(b[n]) {
			return
		}
		switch diffB := b[n].subtract(a[n]); len(diffB) {
		case 0:
		case 1:
			lastB, okB = diffB[0], true
		default:
			return
		}
		tail := a[len(a)-1]
		if len(tail) != 1 {
			return
		}
		lastA, okA = tail[0], true
		return
	case len(b) == len(a)+1:
		// symmetric: b carries the sequence-extension, a may carry the
		// event-extension at the shared position.
		if len(a) == 0 {
			return
		}
		n := len(a) - 1
		for i := 0; i < n; i++ {
			if !a[i].equal(b[i]) {
				return
			}
		}
		if !b[n].isSubsetOf(a[n]) {
			return
		}
		switch diffA := a[n].subtract(b[n]); len(diffA) {
		case 0:
		case 1:
			lastA, okA = diffA[0], true
		default:
			return
		}
		tail := b[len(b)-1]
		if len(tail) != 1 {
			return
		}
		lastB, okB = tail[0], true
		return
	default:
		return
	}
}

// Join is the central SPADE operation: it produces, for every pair of
// co-occurring witnesses of e and other sharing a sid, the atom their
// temporal relation dictates (sequence-extension or event-extension), and
// returns them merged into a fresh ElementPool.
//
// cmap may be nil, in which case no pruning is applied; correctness is
// identical with or without it.
func (e *Element[S, I]) Join(other *Element[S, I], cmap *CMap[I]) (*ElementPool[S, I], bool) {
	lastA, okA, lastB, okB := EquivalenceRelationDiff(e.Sequence, other.Sequence)
	if !okA && !okB {
		return nil, false
	}

	anchorA, hasAnchorA := terminalItem(e.Sequence)
	anchorB, hasAnchorB := terminalItem(other.Sequence)

	pool := NewElementPool[S, I]()
	for p := range e.IDList {
		for q := range other.IDList {
			if p.SID != q.SID {
				continue
			}
			var atom Sequence[I]
			var eid int
			switch {
			case p.EID < q.EID:
				if !okB {
					continue
				}
				if cmap != nil && hasAnchorA && !cmap.AllowsSequence(anchorA, lastB) {
					continue
				}
				atom = sequenceAtomUnion(e.Sequence, lastB)
				eid = q.EID
			case p.EID > q.EID:
				if !okA {
					continue
				}
				if cmap != nil && hasAnchorB && !cmap.AllowsSequence(anchorB, lastA) {
					continue
				}
				atom = sequenceAtomUnion(other.Sequence, lastA)
				eid = p.EID
			default: // p.EID == q.EID
				if !(okA && okB && lastA != lastB) {
					continue
				}
				if cmap != nil && !cmap.AllowsEvent(lastA, lastB) {
					continue
				}
				atom = eventAtomUnion(e.Sequence, lastB)
				eid = p.EID
			}
			pool.Merge(NewElement[S, I](atom, EventID[S]{SID: p.SID, EID: eid}))
		}
	}
	return pool, true
}

// terminalItem returns the last item of seq's last itemset, if any.
func terminalItem[I cmp.Ordered](seq Sequence[I]) (I, bool) {
	var zero I
	if len(seq) == 0 {
		return zero, false
	}
	last := seq[len(seq)-1]
	if len(last) == 0 {
		return zero, false
	}
	return last[len(last)-1], true
}
