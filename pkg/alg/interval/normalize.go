package interval

import (
	"cmp"
	"slices"
)

// Normalize returns the canonical form of list: empty intervals dropped,
// the rest sorted by start and every overlapping or touching pair merged.
// The result is sorted, pairwise disjoint and non-touching. The input is
// never modified.
func Normalize(list []Interval) []Interval {
	valid := make([]Interval, 0, len(list))

	for _, iv := range list {
		if iv.Valid() {
			valid = append(valid, iv)
		}
	}

	if len(valid) == 0 {
		return nil
	}

	slices.SortFunc(valid, compareStart)

	merged := valid[:1]

	for _, iv := range valid[1:] {
		last := &merged[len(merged)-1]

		if iv.Start <= last.End {
			last.End = max(last.End, iv.End)

			continue
		}

		merged = append(merged, iv)
	}

	return slices.Clip(merged)
}

// IsNormalized reports whether list is already in canonical form.
func IsNormalized(list []Interval) bool {
	for i, iv := range list {
		if iv.Empty() {
			return false
		}

		if i > 0 && list[i-1].End >= iv.Start {
			return false
		}
	}

	return true
}

// Sort orders a copy of list by start, then end.
func Sort(list []Interval) []Interval {
	out := slices.Clone(list)
	slices.SortFunc(out, compareStart)

	return out
}

// Measure returns the number of points covered by the union of list.
func Measure(list []Interval) int {
	total := 0

	for _, iv := range Normalize(list) {
		total += iv.Len()
	}

	return total
}

func compareStart(a, b Interval) int {
	if c := cmp.Compare(a.Start, b.Start); c != 0 {
		return c
	}

	return cmp.Compare(a.End, b.End)
}
