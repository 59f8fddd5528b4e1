// Package diset maintains the minimal disjoint representation of a set of
// integers added and removed one value or one range at a time.
//
// Ranges in this package are CLOSED: Range{Start: 1, End: 3} covers 1, 2
// and 3. Two stored ranges are always separated by at least one uncovered
// integer, i.e. for neighbours (s1, e1), (s2, e2) with s1 < s2 the store
// guarantees e1 < s2-1. Touching ranges such as [1,2] and [3,4] are merged.
//
// The store is backed by an ordered map from range start to range end, so
// every point operation costs O(log n) in the number of stored ranges and
// never depends on the magnitude of the values.
//
// A Store is not safe for concurrent use.
package diset

import (
	"fmt"
	"iter"
	"math"
	"strconv"

	"github.com/tidwall/btree"
)

// Range is a closed integer range [Start, End].
type Range struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end"   yaml:"end"`
}

// Len returns the number of integers in the range, saturating at math.MaxUint64.
func (r Range) Len() uint64 {
	return span(r.Start, r.End)
}

// String renders the range as "[start,end]".
func (r Range) String() string {
	return "[" + strconv.Itoa(r.Start) + "," + strconv.Itoa(r.End) + "]"
}

// Store is a set of integers kept as disjoint, non-adjacent closed ranges.
//
// A zero value is ready to use.
type Store struct {
	// Keys are range starts, values are the matching range ends.
	tree  btree.Map[int, int]
	count uint64
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// AddNum inserts value. It is a no-op when value is already covered.
func (s *Store) AddNum(value int) {
	lower, hasLower := s.floor(value)
	if hasLower && lower.End >= value {
		return
	}

	upper, hasUpper := s.ceiling(value)

	joinLower := hasLower && value > math.MinInt && lower.End == value-1
	joinUpper := hasUpper && value < math.MaxInt && upper.Start == value+1

	switch {
	case joinLower && joinUpper:
		s.tree.Delete(upper.Start)
		s.tree.Set(lower.Start, upper.End)
	case joinLower:
		s.tree.Set(lower.Start, value)
	case joinUpper:
		s.tree.Delete(upper.Start)
		s.tree.Set(value, upper.End)
	default:
		s.tree.Set(value, value)
	}

	s.count = addSat(s.count, 1)
}

// AddRange inserts every integer in [start, end], merging with all stored
// ranges it overlaps or touches. It is a no-op when start > end.
func (s *Store) AddRange(start, end int) {
	if start > end {
		return
	}

	// Anything intersecting [reachLow, reachHigh] overlaps or touches the new range.
	reachLow, reachHigh := start, end
	if start > math.MinInt {
		reachLow = start - 1
	}

	if end < math.MaxInt {
		reachHigh = end + 1
	}

	merged := Range{Start: start, End: end}

	for _, r := range s.collect(reachLow, reachHigh) {
		merged.Start = min(merged.Start, r.Start)
		merged.End = max(merged.End, r.End)

		s.drop(r)
	}

	s.put(merged)
}

// RemoveNum removes value. A range strictly containing value is split in
// two; a range ending at value shrinks by one. It is a no-op when value is
// not covered.
func (s *Store) RemoveNum(value int) {
	r, ok := s.floor(value)
	if !ok || r.End < value {
		return
	}

	s.tree.Delete(r.Start)

	if r.Start < value {
		s.tree.Set(r.Start, value-1)
	}

	if value < r.End {
		s.tree.Set(value+1, r.End)
	}

	s.count = subSat(s.count, 1)
}

// RemoveRange removes every integer in [start, end], trimming or splitting
// the stored ranges it touches. It is a no-op when start > end.
func (s *Store) RemoveRange(start, end int) {
	if start > end {
		return
	}

	for _, r := range s.collect(start, end) {
		s.drop(r)

		if r.Start < start {
			s.put(Range{Start: r.Start, End: start - 1})
		}

		if r.End > end {
			s.put(Range{Start: end + 1, End: r.End})
		}
	}
}

// Contains reports whether value is covered by a stored range.
func (s *Store) Contains(value int) bool {
	r, ok := s.floor(value)

	return ok && r.End >= value
}

// Intervals returns the stored ranges in ascending order.
func (s *Store) Intervals() []Range {
	out := make([]Range, 0, s.tree.Len())

	s.tree.Scan(func(start, end int) bool {
		out = append(out, Range{Start: start, End: end})

		return true
	})

	return out
}

// All returns an iterator over the stored ranges in ascending order.
func (s *Store) All() iter.Seq[Range] {
	return func(yield func(Range) bool) {
		s.tree.Scan(func(start, end int) bool {
			return yield(Range{Start: start, End: end})
		})
	}
}

// Count returns the number of covered integers, saturating at math.MaxUint64.
func (s *Store) Count() uint64 {
	return s.count
}

// Len returns the number of stored ranges.
func (s *Store) Len() int {
	return s.tree.Len()
}

// Clear removes every range.
func (s *Store) Clear() {
	s.tree = btree.Map[int, int]{}
	s.count = 0
}

// Format implements [fmt.Formatter].
func (s *Store) Format(state fmt.State, _ rune) {
	fmt.Fprint(state, "{")

	first := true

	s.tree.Scan(func(start, end int) bool {
		if !first {
			fmt.Fprint(state, " ")
		}

		first = false

		if start == end {
			fmt.Fprint(state, start)
		} else {
			fmt.Fprint(state, Range{Start: start, End: end})
		}

		return true
	})

	fmt.Fprint(state, "}")
}

// floor returns the range with the greatest start <= value.
func (s *Store) floor(value int) (Range, bool) {
	var (
		out   Range
		found bool
	)

	s.tree.Descend(value, func(start, end int) bool {
		out, found = Range{Start: start, End: end}, true

		return false
	})

	return out, found
}

// ceiling returns the range with the least start >= value.
func (s *Store) ceiling(value int) (Range, bool) {
	var (
		out   Range
		found bool
	)

	s.tree.Ascend(value, func(start, end int) bool {
		out, found = Range{Start: start, End: end}, true

		return false
	})

	return out, found
}

// collect returns every stored range sharing at least one integer with [low, high].
func (s *Store) collect(low, high int) []Range {
	var hits []Range

	if r, ok := s.floor(low); ok && r.Start < low && r.End >= low {
		hits = append(hits, r)
	}

	s.tree.Ascend(low, func(start, end int) bool {
		if start > high {
			return false
		}

		hits = append(hits, Range{Start: start, End: end})

		return true
	})

	return hits
}

func (s *Store) put(r Range) {
	s.tree.Set(r.Start, r.End)
	s.count = addSat(s.count, r.Len())
}

func (s *Store) drop(r Range) {
	s.tree.Delete(r.Start)
	s.count = subSat(s.count, r.Len())
}

// span returns the size of the closed range [start, end].
func span(start, end int) uint64 {
	if start > end {
		return 0
	}

	n := uint64(end) - uint64(start) //nolint:gosec // two's complement difference is exact for end >= start.
	if n == math.MaxUint64 {
		return n
	}

	return n + 1
}

func addSat(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}

	return a + b
}

func subSat(a, b uint64) uint64 {
	if b > a {
		return 0
	}

	return a - b
}
