package spade

import (
	"cmp"
	"sort"
)

// Config configures a single Engine.Execute run (spec.md §6).
//
// Sequences must already be rank-ordered: each sid maps to a time-ordered
// slice of itemsets, with the slice index serving as the event's eid. Use
// RankEvents to build this from a caller's own event-label keyed data.
type Config[S cmp.Ordered, I cmp.Ordered] struct {
	Sequences  map[S][]Itemset[I]
	MinSupport int

	// MaxLength caps k, the total item-occurrence count of any returned
	// Element. Nil means unbounded. A non-nil value less than 1 is a
	// configuration failure.
	MaxLength *int

	// Maximal, if true, restricts the result to Elements that are not a
	// subsequence of any other Element in the result.
	Maximal bool

	// TopN retains only the N Elements ranked highest by (length, size),
	// ties broken by sequence order. Nil means unbounded. A non-nil value
	// less than or equal to 0 is a configuration failure.
	TopN *int

	// ExactLength, if set, restricts the result to Elements whose Len()
	// equals it exactly — the fixed-k mining mode the original pyrexplorer
	// engine exposed when no top-N cutoff was given (see SPEC_FULL.md).
	ExactLength *int

	// Sort, if true, orders the result ascending by (length, size,
	// sequence). Unset, result order is unspecified.
	Sort bool
}

// Engine mines frequent sequential patterns from a configured dataset.
// The zero value is not configured; call Configure before Execute.
type Engine[S cmp.Ordered, I cmp.Ordered] struct {
	sequences   map[S][]Itemset[I]
	minSupport  int
	maxLength   *int
	maximal     bool
	topN        *int
	exactLength *int
	sort        bool
}

// NewEngine returns an unconfigured Engine.
func NewEngine[S cmp.Ordered, I cmp.Ordered]() *Engine[S, I] {
	return &Engine[S, I]{}
}

// Configure validates cfg and resets the engine's internal state to match
// it. A successful call always fully replaces any prior configuration —
// there is no incremental reconfiguration.
func (eng *Engine[S, I]) Configure(cfg Config[S, I]) error {
	if len(cfg.Sequences) == 0 {
		return newError(ErrConfiguration, "sequences must be non-empty")
	}
	if cfg.MinSupport <= 0 {
		return newError(ErrConfiguration, "min_support must be positive, got %d", cfg.MinSupport)
	}
	if cfg.MaxLength != nil && *cfg.MaxLength < 1 {
		return newError(ErrConfiguration, "max_length must be at least 1, got %d", *cfg.MaxLength)
	}
	if cfg.TopN != nil && *cfg.TopN <= 0 {
		return newError(ErrConfiguration, "top_n must be positive, got %d", *cfg.TopN)
	}
	if cfg.ExactLength != nil && *cfg.ExactLength < 1 {
		return newError(ErrConfiguration, "exact_length must be at least 1, got %d", *cfg.ExactLength)
	}

	eng.sequences = cfg.Sequences
	eng.minSupport = cfg.MinSupport
	eng.maxLength = cfg.MaxLength
	eng.maximal = cfg.Maximal
	eng.topN = cfg.TopN
	eng.exactLength = cfg.ExactLength
	eng.sort = cfg.Sort
	return nil
}

// Execute runs the full mining pipeline (spec.md §4.4) against the current
// configuration and returns the frequent Elements it discovers.
func (eng *Engine[S, I]) Execute() ([]*Element[S, I], error) {
	if eng.sequences == nil {
		return nil, newError(ErrConfiguration, "engine is not configured")
	}

	freq1 := eng.phaseA()
	sortBySequence(freq1)

	runPhaseB := eng.maxLength == nil || *eng.maxLength >= 2
	runPhaseC := eng.maxLength == nil || *eng.maxLength >= 3

	var freq2 []*Element[S, I]
	var cmap *CMap[I]
	covered := make(map[I]bool)
	if runPhaseB {
		freq2, cmap, covered = eng.phaseB(freq1)
		sortBySequence(freq2)
	}

	frequent := NewElementPool[S, I]()
	for _, e := range freq1 {
		item := e.Sequence[0][0]
		if eng.maximal && covered[item] {
			continue
		}
		eng.promote(frequent, e)
	}
	if runPhaseB {
		for _, e := range freq2 {
			eng.promote(frequent, e)
		}
		if runPhaseC {
			eng.phaseC(frequent, freq2, cmap)
		}
	}

	result := frequent.Values()
	if eng.exactLength != nil {
		filtered := result[:0]
		for _, e := range result {
			if e.Len() == *eng.exactLength {
				filtered = append(filtered, e)
			}
		}
		result = filtered
	}
	if eng.sort {
		sort.Slice(result, func(i, j int) bool { return resultLess(result, i, j) })
	}
	return result, nil
}

func resultLess[S cmp.Ordered, I cmp.Ordered](result []*Element[S, I], i, j int) bool {
	li, lj := result[i].Len(), result[j].Len()
	if li != lj {
		return li < lj
	}
	si, sj := result[i].Size(), result[j].Size()
	if si != sj {
		return si < sj
	}
	return result[i].Sequence.compare(result[j].Sequence) < 0
}

// phaseA builds the vertical id-lists for every distinct item and returns
// the frequent 1-sequences (spec.md §4.4 Phase A).
func (eng *Engine[S, I]) phaseA() []*Element[S, I] {
	idLists := make(map[I]map[S][]int)
	for sid, events := range eng.sequences {
		for eid, itemset := range events {
			for _, item := range itemset {
				if idLists[item] == nil {
					idLists[item] = make(map[S][]int)
				}
				idLists[item][sid] = append(idLists[item][sid], eid)
			}
		}
	}

	pool := NewElementPool[S, I]()
	for item, bySid := range idLists {
		if len(bySid) < eng.minSupport {
			continue
		}
		var witnesses []EventID[S]
		for sid, eids := range bySid {
			for _, eid := range eids {
				witnesses = append(witnesses, EventID[S]{SID: sid, EID: eid})
			}
		}
		pool.Put(NewSingletonElement[S, I](item, witnesses...))
	}
	return pool.Values()
}

// phaseB generates candidate 2-sequences from freq1, builds the CMap from
// the ones that survive min_support, and reports which freq1 items are
// covered by a retained 2-sequence (for the maximal-mode pruning rule of
// spec.md §4.4).
func (eng *Engine[S, I]) phaseB(freq1 []*Element[S, I]) ([]*Element[S, I], *CMap[I], map[I]bool) {
	freq1Pool := NewElementPool[S, I]()
	for _, e := range freq1 {
		freq1Pool.Put(e)
	}

	pairCount := make(map[[2]I]int)
	for _, events := range eng.sequences {
		seen := make(map[I]bool)
		var items []I
		for _, itemset := range events {
			for _, item := range itemset {
				if seen[item] {
					continue
				}
				if !freq1Pool.Contains(Sequence[I]{Itemset[I]{item}}) {
					continue
				}
				seen[item] = true
				items = append(items, item)
			}
		}
		sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })
		for i := 0; i < len(items); i++ {
			for j := i + 1; j < len(items); j++ {
				pairCount[[2]I{items[i], items[j]}]++
			}
		}
	}

	var candidates [][2]I
	for pair, count := range pairCount {
		if count >= eng.minSupport {
			candidates = append(candidates, pair)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i][0] != candidates[j][0] {
			return candidates[i][0] < candidates[j][0]
		}
		return candidates[i][1] < candidates[j][1]
	})

	freq2Pool := NewElementPool[S, I]()
	for _, pair := range candidates {
		ei, _ := freq1Pool.Get(Sequence[I]{Itemset[I]{pair[0]}})
		ej, _ := freq1Pool.Get(Sequence[I]{Itemset[I]{pair[1]}})
		joined, ok := ei.Join(ej, nil)
		if !ok {
			continue
		}
		for _, cand := range joined.Values() {
			if cand.Support() >= eng.minSupport {
				freq2Pool.Merge(cand)
			}
		}
	}
	freq2 := freq2Pool.Values()

	cmap := BuildCMap[S, I](freq2)

	covered := make(map[I]bool)
	if eng.maximal {
		for _, e := range freq2 {
			for _, itemset := range e.Sequence {
				for _, item := range itemset {
					covered[item] = true
				}
			}
		}
	}
	return freq2, cmap, covered
}

// phaseC is the DFS enumeration step (spec.md §4.4 Phase C): it partitions
// elements into equivalence classes, joins within each class to derive the
// next length's candidates, promotes every candidate surviving min_support,
// and recurses into classes that produced more than one surviving
// candidate and have not yet reached max_length.
func (eng *Engine[S, I]) phaseC(frequent *ElementPool[S, I], elements []*Element[S, I], cmap *CMap[I]) {
	if len(elements) == 0 {
		return
	}
	classes, order := groupByClass(elements)
	for _, key := range order {
		members := classes[key]
		sort.Slice(members, func(i, j int) bool { return members[i].Sequence.compare(members[j].Sequence) < 0 })

		inner := NewElementPool[S, I]()
		for i := 0; i < len(members); i++ {
			for j := i; j < len(members); j++ {
				joined, ok := members[i].Join(members[j], cmap)
				if !ok {
					continue
				}
				for _, cand := range joined.Values() {
					if cand.Support() >= eng.minSupport {
						inner.Merge(cand)
					}
				}
			}
		}

		innerVals := inner.Values()
		sortBySequence(innerVals)
		for _, e := range innerVals {
			eng.promote(frequent, e)
		}
		if len(innerVals) > 1 && eng.canExtend(members[0].Len()+1) {
			eng.phaseC(frequent, innerVals, cmap)
		}
	}
}

// sortBySequence orders elements by their canonical sequence, giving every
// phase a deterministic processing order independent of map iteration.
func sortBySequence[S cmp.Ordered, I cmp.Ordered](elements []*Element[S, I]) {
	sort.Slice(elements, func(i, j int) bool { return elements[i].Sequence.compare(elements[j].Sequence) < 0 })
}

func (eng *Engine[S, I]) canExtend(nextLength int) bool {
	return eng.maxLength == nil || nextLength < *eng.maxLength
}

// promote inserts e into frequent. In non-maximal mode this is a plain
// insert-or-merge. In maximal mode e is dropped if it is a subsequence of an
// Element already present, and any present Element that is a subsequence of
// e is evicted first (spec.md §4.4.1).
func (eng *Engine[S, I]) promote(frequent *ElementPool[S, I], e *Element[S, I]) {
	if eng.maximal {
		eng.promoteMaximal(frequent, e)
	} else {
		frequent.Merge(e)
	}
	eng.applyTopN(frequent)
}

func (eng *Engine[S, I]) promoteMaximal(frequent *ElementPool[S, I], e *Element[S, I]) {
	existing := frequent.Values()
	for _, p := range existing {
		if e.HasSubsequence(p) {
			return
		}
	}
	for _, p := range existing {
		if p.HasSubsequence(e) {
			frequent.Delete(p.Sequence)
		}
	}
	frequent.Put(e)
}

// applyTopN evicts the lowest-ranked elements once the pool exceeds top_n,
// applied after every promotion per spec.md §4.4.2.
func (eng *Engine[S, I]) applyTopN(frequent *ElementPool[S, I]) {
	if eng.topN == nil {
		return
	}
	n := *eng.topN
	if frequent.Len() <= n {
		return
	}
	vals := frequent.Values()
	sort.Slice(vals, func(i, j int) bool { return topNLess(vals, i, j) })
	for _, e := range vals[n:] {
		frequent.Delete(e.Sequence)
	}
}

// topNLess ranks elements highest-first by (length, size), ties broken by
// sequence order, for top-N retention (spec.md §4.4.2).
func topNLess[S cmp.Ordered, I cmp.Ordered](vals []*Element[S, I], i, j int) bool {
	li, lj := vals[i].Len(), vals[j].Len()
	if li != lj {
		return li > lj
	}
	si, sj := vals[i].Size(), vals[j].Size()
	if si != sj {
		return si > sj
	}
	return vals[i].Sequence.compare(vals[j].Sequence) < 0
}
