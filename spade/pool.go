package spade

import (
	"cmp"
	"fmt"
	"hash/fnv"
	"strings"
)

// hashString is overridable for testing, mirroring the teacher repo's
// swappable uuidv1 stub (see mocks_test.go): it lets tests force hash
// collisions to exercise ElementPool's bucket-scan fallback.
var hashString = fnv64a

func fnv64a(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// canonicalKey renders a sequence's canonical form as a string: itemsets
// separated by '|', items within an itemset separated by ','. Two sequences
// compare equal iff their canonical keys are equal.
func canonicalKey[I cmp.Ordered](seq Sequence[I]) string {
	var b strings.Builder
	for i, itemset := range seq {
		if i > 0 {
			b.WriteByte('|')
		}
		for j, item := range itemset {
			if j > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%v", item)
		}
	}
	return b.String()
}

// structuralHash computes a 64-bit structural hash of a sequence's
// canonical form, per spec.md §9 ("replace deep tuple hashing with a
// precomputed 64-bit structural hash... verified by key comparison on
// collision").
func structuralHash[I cmp.Ordered](seq Sequence[I]) uint64 {
	return hashString(canonicalKey(seq))
}

// ElementPool is a keyed collection mapping a pattern key (sequence) to the
// unique Element with that key, with insert-or-merge semantics. Elements
// are bucketed by structural hash; a linear scan within the bucket
// disambiguates the rare hash collision by true sequence equality.
type ElementPool[S cmp.Ordered, I cmp.Ordered] struct {
	buckets map[uint64][]*Element[S, I]
	count   int
}

// NewElementPool returns an empty pool.
func NewElementPool[S cmp.Ordered, I cmp.Ordered]() *ElementPool[S, I] {
	return &ElementPool[S, I]{buckets: make(map[uint64][]*Element[S, I])}
}

// Get returns the element keyed by sequence, if present.
func (p *ElementPool[S, I]) Get(sequence Sequence[I]) (*Element[S, I], bool) {
	h := structuralHash(sequence)
	for _, e := range p.buckets[h] {
		if e.Sequence.equal(sequence) {
			return e, true
		}
	}
	return nil, false
}

// Contains reports whether sequence is present as a key.
func (p *ElementPool[S, I]) Contains(sequence Sequence[I]) bool {
	_, ok := p.Get(sequence)
	return ok
}

// Put inserts e under its own sequence key, replacing anything already
// stored there. Callers that want merge semantics should use Merge.
func (p *ElementPool[S, I]) Put(e *Element[S, I]) {
	existed := p.removeKey(e.Sequence)
	p.buckets[e.hash] = append(p.buckets[e.hash], e)
	if !existed {
		p.count++
	}
}

// Merge inserts e if its key is absent, or unions its id-list into the
// existing element with the same key otherwise.
func (p *ElementPool[S, I]) Merge(e *Element[S, I]) {
	if existing, ok := p.Get(e.Sequence); ok {
		existing.UnionInPlace(e)
		return
	}
	p.count++
	p.buckets[e.hash] = append(p.buckets[e.hash], e)
}

// Delete removes the element keyed by sequence, if present.
func (p *ElementPool[S, I]) Delete(sequence Sequence[I]) {
	if p.removeKey(sequence) {
		p.count--
	}
}

func (p *ElementPool[S, I]) removeKey(sequence Sequence[I]) bool {
	h := structuralHash(sequence)
	bucket := p.buckets[h]
	for i, e := range bucket {
		if e.Sequence.equal(sequence) {
			bucket[i] = bucket[len(bucket)-1]
			p.buckets[h] = bucket[:len(bucket)-1]
			return true
		}
	}
	return false
}

// Len returns the number of distinct pattern keys in the pool.
func (p *ElementPool[S, I]) Len() int { return p.count }

// Values returns the pool's elements in unspecified order.
func (p *ElementPool[S, I]) Values() []*Element[S, I] {
	out := make([]*Element[S, I], 0, p.count)
	for _, bucket := range p.buckets {
		out = append(out, bucket...)
	}
	return out
}
