package spade_test

import (
	"testing"

	"github.com/mtitov/spade/spade"
	"pgregory.net/rapid"
)

var alphabet = []string{"a", "b", "c"}

func randomDataset(t *rapid.T) (map[int][]spade.Itemset[string], int) {
	nSids := rapid.IntRange(2, 5).Draw(t, "nSids").(int)
	raw := make(map[int]map[int][]string, nSids)
	for sid := 0; sid < nSids; sid++ {
		nEvents := rapid.IntRange(1, 4).Draw(t, "nEvents").(int)
		events := make(map[int][]string, nEvents)
		for eid := 0; eid < nEvents; eid++ {
			nItems := rapid.IntRange(1, 2).Draw(t, "nItems").(int)
			items := make([]string, nItems)
			for i := range items {
				items[i] = rapid.SampledFrom(alphabet).Draw(t, "item").(string)
			}
			events[eid] = items
		}
		raw[sid] = events
	}
	minSupport := rapid.IntRange(1, nSids).Draw(t, "minSupport").(int)
	return spade.RankEvents[int, int, string](raw), minSupport
}

// TestPropertySupportMeetsThreshold checks spec.md §8's support floor: every
// Element Execute returns has support at least min_support.
func TestPropertySupportMeetsThreshold(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sequences, minSupport := randomDataset(t)

		eng := spade.NewEngine[int, string]()
		if err := eng.Configure(spade.Config[int, string]{
			Sequences:  sequences,
			MinSupport: minSupport,
		}); err != nil {
			t.Fatalf("Configure: %v", err)
		}
		got, err := eng.Execute()
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		for _, e := range got {
			if e.Support() < minSupport {
				t.Fatalf("element %v has support %d, below min_support %d", e.Sequence, e.Support(), minSupport)
			}
		}
	})
}

// TestPropertySubsetMonotonicity checks that a pattern's support never
// exceeds that of any of its own subsequences (apriori monotonicity).
func TestPropertySubsetMonotonicity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sequences, _ := randomDataset(t)

		eng := spade.NewEngine[int, string]()
		if err := eng.Configure(spade.Config[int, string]{
			Sequences:  sequences,
			MinSupport: 1,
		}); err != nil {
			t.Fatalf("Configure: %v", err)
		}
		got, err := eng.Execute()
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		for _, sub := range got {
			for _, super := range got {
				if sub == super {
					continue
				}
				if !sub.HasSubsequence(super) {
					continue
				}
				if sub.Support() < super.Support() {
					t.Fatalf("subsequence %v has support %d, less than its supersequence %v's support %d",
						sub.Sequence, sub.Support(), super.Sequence, super.Support())
				}
			}
		}
	})
}

// TestPropertyHasSubsequenceReflexive checks that every sequence is its own
// subsequence.
func TestPropertyHasSubsequenceReflexive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 5).Draw(t, "n").(int)
		raw := make([][]string, n)
		for i := range raw {
			nItems := rapid.IntRange(1, 2).Draw(t, "nItems").(int)
			items := make([]string, nItems)
			for j := range items {
				items[j] = rapid.SampledFrom(alphabet).Draw(t, "item").(string)
			}
			raw[i] = items
		}
		seq := spade.NewSequence(raw...)
		if !seq.HasSubsequence(seq) {
			t.Fatalf("sequence %v is not its own subsequence", seq)
		}
	})
}
