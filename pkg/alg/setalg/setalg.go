// Package setalg implements set operations over lists of half-open intervals.
//
// Every operation accepts arbitrary input: lists are normalized (sorted,
// merged, empty spans dropped) before use, and every result is itself
// normalized. An empty list is the empty set.
package setalg

import (
	"slices"

	"github.com/Sumatoshi-tech/intervals/pkg/alg/interval"
)

// Union returns the points covered by a or b.
func Union(a, b []interval.Interval) []interval.Interval {
	return UnionAll(a, b)
}

// UnionAll returns the points covered by any of lists.
func UnionAll(lists ...[]interval.Interval) []interval.Interval {
	return interval.Normalize(slices.Concat(lists...))
}

// Intersection returns the points covered by both a and b.
// It runs in O(|a|+|b|) once both inputs are normalized.
func Intersection(a, b []interval.Interval) []interval.Interval {
	return intersectNormalized(interval.Normalize(a), interval.Normalize(b))
}

// Difference returns the points covered by a but not by b.
func Difference(a, b []interval.Interval) []interval.Interval {
	return differenceNormalized(interval.Normalize(a), interval.Normalize(b))
}

// SymmetricDifference returns the points covered by exactly one of a and b.
func SymmetricDifference(a, b []interval.Interval) []interval.Interval {
	na, nb := interval.Normalize(a), interval.Normalize(b)

	// The two halves can touch, e.g. a=[1,3) b=[3,5), so they are merged again.
	return UnionAll(differenceNormalized(na, nb), differenceNormalized(nb, na))
}

// Complement returns the points of bounds not covered by a.
func Complement(a []interval.Interval, bounds interval.Interval) []interval.Interval {
	if bounds.Empty() {
		return nil
	}

	return differenceNormalized([]interval.Interval{bounds}, interval.Normalize(a))
}

// Measure returns the number of points covered by a.
func Measure(a []interval.Interval) int {
	return interval.Measure(a)
}

// Equal reports whether a and b cover the same points.
func Equal(a, b []interval.Interval) bool {
	return slices.Equal(interval.Normalize(a), interval.Normalize(b))
}

// IntersectNormalized is Intersection for inputs already in normalized form.
// The result is undefined for other input.
func IntersectNormalized(a, b []interval.Interval) []interval.Interval {
	return intersectNormalized(a, b)
}

func intersectNormalized(a, b []interval.Interval) []interval.Interval {
	var out []interval.Interval

	i, j := 0, 0

	for i < len(a) && j < len(b) {
		if common := a[i].Intersect(b[j]); common.Valid() {
			out = append(out, common)
		}

		switch {
		case a[i].End < b[j].End:
			i++
		case b[j].End < a[i].End:
			j++
		default:
			i++
			j++
		}
	}

	return out
}

func differenceNormalized(a, b []interval.Interval) []interval.Interval {
	var out []interval.Interval

	j := 0

	for _, iv := range a {
		// b[j:] is the first hole that can still reach iv.
		for j < len(b) && b[j].End <= iv.Start {
			j++
		}

		cursor := iv.Start

		for k := j; k < len(b) && b[k].Start < iv.End; k++ {
			if b[k].Start > cursor {
				out = append(out, interval.Interval{Start: cursor, End: b[k].Start})
			}

			cursor = max(cursor, b[k].End)
		}

		if cursor < iv.End {
			out = append(out, interval.Interval{Start: cursor, End: iv.End})
		}
	}

	return out
}
