package spade

import (
	"testing"
)

func TestNewItemsetCanonicalizes(t *testing.T) {
	got := newItemset([]int{3, 1, 2, 1, 3})
	want := Itemset[int]{1, 2, 3}
	if !got.equal(want) {
		t.Errorf("newItemset(3,1,2,1,3) = %v, want %v", got, want)
	}
}

func TestItemsetIsSubsetOf(t *testing.T) {
	tests := []struct {
		a, b Itemset[int]
		want bool
	}{
		{Itemset[int]{}, Itemset[int]{1, 2}, true},
		{Itemset[int]{1}, Itemset[int]{1, 2}, true},
		{Itemset[int]{2}, Itemset[int]{1, 2}, true},
		{Itemset[int]{1, 2}, Itemset[int]{1, 2}, true},
		{Itemset[int]{1, 3}, Itemset[int]{1, 2}, false},
		{Itemset[int]{1, 2, 3}, Itemset[int]{1, 2}, false},
	}
	for _, test := range tests {
		if got := test.a.isSubsetOf(test.b); got != test.want {
			t.Errorf("%v.isSubsetOf(%v) = %v, want %v", test.a, test.b, got, test.want)
		}
	}
}

func TestItemsetSubtract(t *testing.T) {
	a := Itemset[int]{1, 2, 3}
	b := Itemset[int]{2}
	got := a.subtract(b)
	want := Itemset[int]{1, 3}
	if !got.equal(want) {
		t.Errorf("subtract: got %v, want %v", got, want)
	}
}

func TestItemsetWithItem(t *testing.T) {
	tests := []struct {
		s    Itemset[int]
		item int
		want Itemset[int]
	}{
		{Itemset[int]{1, 3}, 2, Itemset[int]{1, 2, 3}},
		{Itemset[int]{1, 2}, 2, Itemset[int]{1, 2}},
		{Itemset[int]{}, 5, Itemset[int]{5}},
		{Itemset[int]{2, 3}, 1, Itemset[int]{1, 2, 3}},
	}
	for _, test := range tests {
		if got := test.s.withItem(test.item); !got.equal(test.want) {
			t.Errorf("%v.withItem(%d) = %v, want %v", test.s, test.item, got, test.want)
		}
	}
}

func TestItemsetCompare(t *testing.T) {
	tests := []struct {
		a, b Itemset[int]
		want int
	}{
		{Itemset[int]{1}, Itemset[int]{1}, 0},
		{Itemset[int]{1}, Itemset[int]{2}, -1},
		{Itemset[int]{2}, Itemset[int]{1}, +1},
		{Itemset[int]{1}, Itemset[int]{1, 2}, -1},
		{Itemset[int]{1, 2}, Itemset[int]{1}, +1},
	}
	for _, test := range tests {
		if got := test.a.compare(test.b); got != test.want {
			t.Errorf("%v.compare(%v) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}

func TestSequenceHasSubsequence(t *testing.T) {
	tests := []struct {
		name string
		s    Sequence[string]
		in   Sequence[string]
		want bool
	}{
		{
			name: "empty is subsequence of anything",
			s:    NewSequence[string](),
			in:   NewSequence([]string{"a"}, []string{"b"}),
			want: true,
		},
		{
			name: "identical",
			s:    NewSequence([]string{"a"}, []string{"b"}),
			in:   NewSequence([]string{"a"}, []string{"b"}),
			want: true,
		},
		{
			name: "event subset",
			s:    NewSequence([]string{"a"}),
			in:   NewSequence([]string{"a", "b"}),
			want: true,
		},
		{
			name: "gap allowed",
			s:    NewSequence([]string{"a"}, []string{"c"}),
			in:   NewSequence([]string{"a"}, []string{"b"}, []string{"c"}),
			want: true,
		},
		{
			name: "out of order fails",
			s:    NewSequence([]string{"c"}, []string{"a"}),
			in:   NewSequence([]string{"a"}, []string{"b"}, []string{"c"}),
			want: false,
		},
		{
			name: "missing item fails",
			s:    NewSequence([]string{"a"}, []string{"d"}),
			in:   NewSequence([]string{"a"}, []string{"b"}, []string{"c"}),
			want: false,
		},
		{
			name: "longer than target fails",
			s:    NewSequence([]string{"a"}, []string{"b"}, []string{"c"}),
			in:   NewSequence([]string{"a"}, []string{"b"}),
			want: false,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.s.HasSubsequence(test.in); got != test.want {
				t.Errorf("HasSubsequence = %v, want %v", got, test.want)
			}
		})
	}
}

func TestSequenceLenSize(t *testing.T) {
	s := NewSequence([]string{"a", "b"}, []string{"c"})
	if got := s.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
	if got := s.Size(); got != 2 {
		t.Errorf("Size() = %d, want 2", got)
	}
}

func TestDropLastItem(t *testing.T) {
	tests := []struct {
		name string
		seq  Sequence[string]
		want Sequence[string]
	}{
		{
			name: "event itemset shrinks",
			seq:  NewSequence([]string{"a", "b"}),
			want: NewSequence([]string{"a"}),
		},
		{
			name: "singleton itemset dropped entirely",
			seq:  NewSequence([]string{"a"}, []string{"b"}),
			want: NewSequence([]string{"a"}),
		},
		{
			name: "empty sequence stays empty",
			seq:  NewSequence[string](),
			want: NewSequence[string](),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := dropLastItem(test.seq); !got.equal(test.want) {
				t.Errorf("dropLastItem(%v) = %v, want %v", test.seq, got, test.want)
			}
		})
	}
}
