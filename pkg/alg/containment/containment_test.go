package containment_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/intervals/pkg/alg/containment"
	"github.com/Sumatoshi-tech/intervals/pkg/alg/interval"
)

// Test constants.
const (
	propertySeed   = 31
	propertyRounds = 200
	propertyMaxN   = 30
	propertyDomain = 60
	propertyMaxLen = 15
)

func ivs(pairs ...[2]int) []interval.Interval {
	return interval.FromPairs(pairs)
}

func TestRemoveCovered(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      [][2]int
		kept    [][2]int
		removed int
	}{
		{"empty", nil, nil, 0},
		{"classic", [][2]int{{1, 4}, {3, 6}, {2, 8}}, [][2]int{{1, 4}, {2, 8}}, 1},
		{"same-start", [][2]int{{1, 2}, {1, 4}, {3, 4}}, [][2]int{{1, 4}}, 2},
		{"duplicates", [][2]int{{2, 5}, {2, 5}}, [][2]int{{2, 5}}, 1},
		{"chain", [][2]int{{1, 3}, {2, 4}, {3, 5}}, [][2]int{{1, 3}, {2, 4}, {3, 5}}, 0},
		{"drops-empty", [][2]int{{1, 3}, {5, 5}}, [][2]int{{1, 3}}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			kept, removed := containment.RemoveCovered(ivs(tt.in...))

			assert.Equal(t, ivs(tt.kept...), kept)
			assert.Equal(t, tt.removed, removed)
		})
	}
}

func TestMatrix(t *testing.T) {
	t.Parallel()

	m := containment.Matrix(ivs([2]int{0, 10}, [2]int{2, 4}, [2]int{3, 12}))

	want := [][]bool{
		{false, true, false},
		{false, false, false},
		{false, false, false},
	}

	assert.Equal(t, want, m)
}

func TestOverlappingPairs(t *testing.T) {
	t.Parallel()

	got := containment.OverlappingPairs(ivs([2]int{0, 5}, [2]int{5, 8}, [2]int{4, 6}, [2]int{9, 9}))

	assert.Equal(t, []containment.Pair{{I: 0, J: 2}, {I: 1, J: 2}}, got)
	assert.Nil(t, containment.OverlappingPairs(nil))
}

func TestOverlappingPairs_MatchesBruteForce(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(propertySeed, propertySeed))

	for range propertyRounds {
		list := make([]interval.Interval, rng.IntN(propertyMaxN))

		for i := range list {
			start := rng.IntN(propertyDomain)
			list[i] = interval.New(start, start+rng.IntN(propertyMaxLen))
		}

		var want []containment.Pair

		for i := range list {
			for j := i + 1; j < len(list); j++ {
				if list[i].Overlaps(list[j]) {
					want = append(want, containment.Pair{I: i, J: j})
				}
			}
		}

		require.Equal(t, want, containment.OverlappingPairs(list))

		kept, removed := containment.RemoveCovered(list)
		require.Equal(t, len(list), len(kept)+removed)

		for i, a := range kept {
			for j, b := range kept {
				require.False(t, i != j && a.Covers(b), "%v covers %v", a, b)
			}
		}
	}
}
