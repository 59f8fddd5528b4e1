// Package containment reports pairwise relations inside one interval list:
// which intervals are covered by others and which pairs overlap.
package containment

import (
	"cmp"
	"slices"

	"github.com/Sumatoshi-tech/intervals/pkg/alg/interval"
)

// Pair names two input indices, I < J.
type Pair struct {
	I int `json:"i" yaml:"i"`
	J int `json:"j" yaml:"j"`
}

// RemoveCovered drops every interval covered by another one and returns
// the survivors in start order with the number removed. Of two identical
// intervals the first one survives. Empty intervals are dropped and counted.
func RemoveCovered(list []interval.Interval) (kept []interval.Interval, removed int) {
	order := make([]int, 0, len(list))

	for i, iv := range list {
		if iv.Valid() {
			order = append(order, i)
		}
	}

	removed = len(list) - len(order)

	// Start ascending, longer first, so a cover is always visited before what it covers.
	slices.SortStableFunc(order, func(a, b int) int {
		if c := cmp.Compare(list[a].Start, list[b].Start); c != 0 {
			return c
		}

		return cmp.Compare(list[b].End, list[a].End)
	})

	reach := 0

	for n, i := range order {
		if n > 0 && list[i].End <= reach {
			removed++

			continue
		}

		kept = append(kept, list[i])
		reach = list[i].End
	}

	return kept, removed
}

// Matrix returns m where m[i][j] reports that list[i] covers list[j], i != j.
// It compares every pair and is meant for small reports.
func Matrix(list []interval.Interval) [][]bool {
	m := make([][]bool, len(list))

	for i := range list {
		m[i] = make([]bool, len(list))

		for j := range list {
			m[i][j] = i != j && list[i].Covers(list[j])
		}
	}

	return m
}

// OverlappingPairs returns every pair of overlapping intervals, ordered by
// (I, J). An interval tree answers one query per interval, so the cost is
// O(n log n + k) for k pairs.
func OverlappingPairs(list []interval.Interval) []Pair {
	tree := interval.NewTree[int, int]()

	for i, iv := range list {
		tree.Insert(iv.Start, iv.End, i)
	}

	var pairs []Pair

	for i, iv := range list {
		for _, e := range tree.QueryOverlap(iv.Start, iv.End) {
			if e.Value > i {
				pairs = append(pairs, Pair{I: i, J: e.Value})
			}
		}
	}

	slices.SortFunc(pairs, func(a, b Pair) int {
		if c := cmp.Compare(a.I, b.I); c != 0 {
			return c
		}

		return cmp.Compare(a.J, b.J)
	})

	return pairs
}
