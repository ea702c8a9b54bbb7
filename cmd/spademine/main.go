// Command spademine is a minimal driver for the spade package: it mines a
// small toy dataset and prints the discovered patterns as JSON. Loading real
// data, flags, and output formatting are left to real callers — this exists
// only to exercise Engine end to end.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mtitov/spade/spade"
)

func toJSON(v interface{}) string {
	bs, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(err)
	}
	return string(bs)
}

func main() {
	// A toy customer-journey dataset: each sid is a customer, each event is
	// the set of pages they visited in one session, in visit order.
	raw := map[string]map[int][]string{
		"alice": {0: {"home"}, 1: {"search", "cart"}, 2: {"checkout"}},
		"bob":   {0: {"home"}, 1: {"search"}, 2: {"cart"}, 3: {"checkout"}},
		"carol": {0: {"home"}, 1: {"search", "cart"}, 2: {"checkout"}},
		"dave":  {0: {"home"}, 1: {"search"}},
	}
	sequences := spade.RankEvents[string, int, string](raw)

	eng := spade.NewEngine[string, string]()
	topN := 10
	if err := eng.Configure(spade.Config[string, string]{
		Sequences:  sequences,
		MinSupport: 2,
		Maximal:    true,
		TopN:       &topN,
		Sort:       true,
	}); err != nil {
		fmt.Fprintln(os.Stderr, "configure:", err)
		os.Exit(1)
	}

	patterns, err := eng.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "execute:", err)
		os.Exit(1)
	}

	type result struct {
		Sequence [][]string `json:"sequence"`
		Support  int        `json:"support"`
	}
	out := make([]result, len(patterns))
	for i, p := range patterns {
		seq := make([][]string, len(p.Sequence))
		for j, itemset := range p.Sequence {
			seq[j] = append([]string(nil), itemset...)
		}
		out[i] = result{Sequence: seq, Support: p.Support()}
	}
	fmt.Println(toJSON(out))
}
