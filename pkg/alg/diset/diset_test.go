package diset_test

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/intervals/pkg/alg/diset"
)

// Test constants.
const (
	propertySeed   = 42
	propertyRounds = 2000
	propertyDomain = 60
)

func ranges(pairs ...[2]int) []diset.Range {
	out := make([]diset.Range, len(pairs))

	for i, p := range pairs {
		out[i] = diset.Range{Start: p[0], End: p[1]}
	}

	return out
}

// requireDisjoint checks that neighbours are separated by at least one integer.
func requireDisjoint(t *testing.T, s *diset.Store) {
	t.Helper()

	got := s.Intervals()

	for i, r := range got {
		require.LessOrEqual(t, r.Start, r.End, "range %d inverted: %v", i, r)

		if i > 0 {
			require.Less(t, got[i-1].End, r.Start-1, "ranges %v and %v touch", got[i-1], r)
		}
	}
}

func TestAddNum_Scenario(t *testing.T) {
	t.Parallel()

	s := diset.New()

	for _, v := range []int{1, 3, 7, 2, 6} {
		s.AddNum(v)
	}

	assert.Equal(t, ranges([2]int{1, 3}, [2]int{6, 7}), s.Intervals())
	assert.Equal(t, uint64(5), s.Count())
	assert.Equal(t, 2, s.Len())
}

func TestAddNum_Cases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		init [][2]int
		add  int
		want [][2]int
	}{
		{"empty", nil, 5, [][2]int{{5, 5}}},
		{"covered", [][2]int{{1, 5}}, 3, [][2]int{{1, 5}}},
		{"extend-lower", [][2]int{{1, 3}}, 4, [][2]int{{1, 4}}},
		{"extend-upper", [][2]int{{5, 7}}, 4, [][2]int{{4, 7}}},
		{"three-way", [][2]int{{1, 3}, {5, 7}}, 4, [][2]int{{1, 7}}},
		{"isolated", [][2]int{{1, 2}, {8, 9}}, 5, [][2]int{{1, 2}, {5, 5}, {8, 9}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := diset.New()
			for _, p := range tt.init {
				s.AddRange(p[0], p[1])
			}

			s.AddNum(tt.add)

			assert.Equal(t, ranges(tt.want...), s.Intervals())
			requireDisjoint(t, s)
		})
	}
}

func TestAddNum_Idempotent(t *testing.T) {
	t.Parallel()

	s := diset.New()
	s.AddRange(10, 20)
	s.AddNum(3)

	before := s.Intervals()
	count := s.Count()

	s.AddNum(3)

	assert.Equal(t, before, s.Intervals())
	assert.Equal(t, count, s.Count())
}

func TestAddRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		init  [][2]int
		start int
		end   int
		want  [][2]int
	}{
		{"empty", nil, 2, 4, [][2]int{{2, 4}}},
		{"invalid-noop", [][2]int{{1, 1}}, 5, 4, [][2]int{{1, 1}}},
		{"absorbs-many", [][2]int{{1, 2}, {4, 5}, {8, 9}, {20, 21}}, 3, 10, [][2]int{{1, 10}, {20, 21}}},
		{"touches-both", [][2]int{{1, 2}, {6, 7}}, 3, 5, [][2]int{{1, 7}}},
		{"inside", [][2]int{{1, 10}}, 3, 5, [][2]int{{1, 10}}},
		{"disjoint", [][2]int{{1, 2}}, 4, 5, [][2]int{{1, 2}, {4, 5}}},
		{"superset", [][2]int{{3, 4}, {6, 7}}, 0, 100, [][2]int{{0, 100}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := diset.New()
			for _, p := range tt.init {
				s.AddRange(p[0], p[1])
			}

			s.AddRange(tt.start, tt.end)

			want := ranges(tt.want...)
			assert.Equal(t, want, s.Intervals())
			assert.Equal(t, totalLen(want), s.Count())
			requireDisjoint(t, s)
		})
	}
}

func TestRemoveNum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		init   [][2]int
		remove int
		want   [][2]int
	}{
		{"split", [][2]int{{1, 5}}, 3, [][2]int{{1, 2}, {4, 5}}},
		{"lower-boundary", [][2]int{{1, 5}}, 1, [][2]int{{2, 5}}},
		{"upper-boundary", [][2]int{{1, 5}}, 5, [][2]int{{1, 4}}},
		{"singleton", [][2]int{{1, 1}, {4, 4}}, 4, [][2]int{{1, 1}}},
		{"absent", [][2]int{{1, 2}}, 7, [][2]int{{1, 2}}},
		{"gap", [][2]int{{1, 2}, {6, 7}}, 4, [][2]int{{1, 2}, {6, 7}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := diset.New()
			for _, p := range tt.init {
				s.AddRange(p[0], p[1])
			}

			s.RemoveNum(tt.remove)

			want := ranges(tt.want...)
			assert.Equal(t, want, s.Intervals())
			assert.Equal(t, totalLen(want), s.Count())
			assert.False(t, s.Contains(tt.remove))
		})
	}
}

func TestRemoveRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		init  [][2]int
		start int
		end   int
		want  [][2]int
	}{
		{"split-one", [][2]int{{1, 10}}, 4, 6, [][2]int{{1, 3}, {7, 10}}},
		{"trim-both-sides", [][2]int{{1, 5}, {8, 12}}, 4, 9, [][2]int{{1, 3}, {10, 12}}},
		{"removes-inner", [][2]int{{1, 2}, {4, 5}, {7, 8}}, 3, 6, [][2]int{{1, 2}, {7, 8}}},
		{"exact", [][2]int{{1, 5}}, 1, 5, nil},
		{"invalid-noop", [][2]int{{1, 5}}, 4, 2, [][2]int{{1, 5}}},
		{"uncovered", [][2]int{{1, 2}}, 5, 9, [][2]int{{1, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := diset.New()
			for _, p := range tt.init {
				s.AddRange(p[0], p[1])
			}

			s.RemoveRange(tt.start, tt.end)

			want := ranges(tt.want...)
			assert.ElementsMatch(t, want, s.Intervals())
			assert.Equal(t, totalLen(want), s.Count())
			requireDisjoint(t, s)
		})
	}
}

func TestRoundTrip_AddRangeThenRemoveEach(t *testing.T) {
	t.Parallel()

	s := diset.New()
	s.AddRange(-3, 12)

	for v := -3; v <= 12; v++ {
		s.RemoveNum(v)
		requireDisjoint(t, s)
	}

	assert.Empty(t, s.Intervals())
	assert.Equal(t, uint64(0), s.Count())
	assert.Equal(t, 0, s.Len())
}

func TestContains(t *testing.T) {
	t.Parallel()

	var s diset.Store

	assert.False(t, s.Contains(0))

	s.AddRange(5, 9)

	assert.False(t, s.Contains(4))
	assert.True(t, s.Contains(5))
	assert.True(t, s.Contains(9))
	assert.False(t, s.Contains(10))
}

func TestExtremeValues_NoWrap(t *testing.T) {
	t.Parallel()

	s := diset.New()
	s.AddNum(math.MaxInt)
	s.AddNum(math.MinInt)

	assert.Equal(t, ranges([2]int{math.MinInt, math.MinInt}, [2]int{math.MaxInt, math.MaxInt}), s.Intervals())

	s.AddNum(math.MaxInt - 1)
	s.AddRange(math.MinInt, math.MinInt+2)

	assert.Equal(t,
		ranges([2]int{math.MinInt, math.MinInt + 2}, [2]int{math.MaxInt - 1, math.MaxInt}),
		s.Intervals())
	assert.Equal(t, uint64(5), s.Count())

	s.RemoveNum(math.MaxInt)
	s.RemoveNum(math.MinInt)

	assert.Equal(t,
		ranges([2]int{math.MinInt + 1, math.MinInt + 2}, [2]int{math.MaxInt - 1, math.MaxInt - 1}),
		s.Intervals())
}

func TestCount_FullDomainSaturates(t *testing.T) {
	t.Parallel()

	s := diset.New()
	s.AddRange(math.MinInt, math.MaxInt)

	assert.Equal(t, uint64(math.MaxUint64), s.Count())
	assert.True(t, s.Contains(0))
}

func TestAll_StopsEarly(t *testing.T) {
	t.Parallel()

	s := diset.New()
	s.AddRange(1, 2)
	s.AddRange(5, 6)
	s.AddRange(9, 9)

	var seen []diset.Range

	for r := range s.All() {
		seen = append(seen, r)
		if len(seen) == 2 {
			break
		}
	}

	assert.Equal(t, ranges([2]int{1, 2}, [2]int{5, 6}), seen)
}

func TestClearAndFormat(t *testing.T) {
	t.Parallel()

	s := diset.New()
	s.AddRange(1, 3)
	s.AddNum(6)

	assert.Equal(t, "{[1,3] 6}", fmt.Sprint(s))

	s.Clear()

	assert.Equal(t, "{}", fmt.Sprint(s))
	assert.Equal(t, uint64(0), s.Count())
}

// TestRandomOperations_MatchesReferenceSet drives the store with random
// operations and compares it against a plain map.
func TestRandomOperations_MatchesReferenceSet(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(propertySeed, propertySeed))
	s := diset.New()
	ref := make(map[int]bool)

	for range propertyRounds {
		a := rng.IntN(propertyDomain)
		b := a + rng.IntN(propertyDomain/10)

		switch rng.IntN(4) {
		case 0:
			s.AddNum(a)
			ref[a] = true
		case 1:
			s.AddRange(a, b)

			for v := a; v <= b; v++ {
				ref[v] = true
			}
		case 2:
			s.RemoveNum(a)
			delete(ref, a)
		default:
			s.RemoveRange(a, b)

			for v := a; v <= b; v++ {
				delete(ref, v)
			}
		}

		requireDisjoint(t, s)
		require.Equal(t, uint64(len(ref)), s.Count())
	}

	want := make([]int, 0, len(ref))
	for v := range ref {
		want = append(want, v)
	}

	slices.Sort(want)

	var got []int

	for r := range s.All() {
		for v := r.Start; v <= r.End; v++ {
			got = append(got, v)
		}
	}

	assert.Equal(t, want, got)
}

func totalLen(list []diset.Range) uint64 {
	var n uint64

	for _, r := range list {
		n += r.Len()
	}

	return n
}
