package interval

import (
	"testing"
)

// Benchmark constants.
const (
	benchIntervalCount = 10000
	benchSpacing       = 10
	benchWidth         = 15
	benchQueryLow      = 500
	benchQueryHigh     = 1500
)

func benchList() []Interval {
	list := make([]Interval, benchIntervalCount)

	// Reverse order so Normalize has real sorting work to do.
	for i := range benchIntervalCount {
		start := (benchIntervalCount - i) * benchSpacing
		list[i] = Interval{Start: start, End: start + benchWidth}
	}

	return list
}

// BenchmarkTreeInsert benchmarks inserting entries.
func BenchmarkTreeInsert(b *testing.B) {
	for range b.N {
		tree := NewTree[int, int]()

		for i := range benchIntervalCount {
			low := i * benchSpacing

			tree.Insert(low, low+benchWidth, i)
		}
	}
}

// BenchmarkTreeQueryOverlap benchmarks overlap queries.
func BenchmarkTreeQueryOverlap(b *testing.B) {
	tree := NewTree[int, int]()

	for i := range benchIntervalCount {
		low := i * benchSpacing

		tree.Insert(low, low+benchWidth, i)
	}

	b.ResetTimer()

	for range b.N {
		tree.QueryOverlap(benchQueryLow, benchQueryHigh)
	}
}

// BenchmarkNormalize benchmarks sorting and merging a reversed list.
func BenchmarkNormalize(b *testing.B) {
	list := benchList()

	b.ResetTimer()

	for range b.N {
		Normalize(list)
	}
}

// BenchmarkEvents benchmarks building sorted sweep events.
func BenchmarkEvents(b *testing.B) {
	list := benchList()

	b.ResetTimer()

	for range b.N {
		Events(list)
	}
}
