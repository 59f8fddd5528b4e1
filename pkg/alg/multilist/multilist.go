// Package multilist generalizes interval intersection and union to k lists
// of half-open intervals, including "covered by at least m lists" queries
// and weighted aggregation.
package multilist

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Sumatoshi-tech/intervals/pkg/alg/interval"
	"github.com/Sumatoshi-tech/intervals/pkg/alg/setalg"
)

// ErrInvalidThreshold is returned by AtLeast when m is outside [1, k].
var ErrInvalidThreshold = errors.New("multilist: threshold must be between 1 and the number of lists")

// Segment is a maximal span over which the same number of lists is active.
type Segment struct {
	interval.Interval `yaml:",inline"`

	Active int `json:"active" yaml:"active"`
}

// WeightedSegment is a span covered by every list, carrying the summed
// weight of all intervals active over it.
type WeightedSegment struct {
	interval.Interval `yaml:",inline"`

	Weight int `json:"weight" yaml:"weight"`
}

// Intersection returns the points covered by every list, intersecting the
// lists pairwise from left to right and stopping early once the running
// result is empty. With no lists the result is empty.
func Intersection(lists ...[]interval.Interval) []interval.Interval {
	if len(lists) == 0 {
		return nil
	}

	acc := interval.Normalize(lists[0])

	for _, next := range lists[1:] {
		if len(acc) == 0 {
			return nil
		}

		acc = setalg.IntersectNormalized(acc, interval.Normalize(next))
	}

	return acc
}

// Union returns the points covered by any list.
func Union(lists ...[]interval.Interval) []interval.Interval {
	return setalg.UnionAll(lists...)
}

// AtLeast returns the points covered by at least m of lists.
// AtLeast(lists, len(lists)) equals Intersection(lists...).
func AtLeast(lists [][]interval.Interval, m int) ([]interval.Interval, error) {
	if m < 1 || m > len(lists) {
		return nil, fmt.Errorf("%w: m=%d, k=%d", ErrInvalidThreshold, m, len(lists))
	}

	var out []interval.Interval

	for _, seg := range Profile(lists...) {
		if seg.Active < m {
			continue
		}

		if n := len(out); n > 0 && out[n-1].End == seg.Start {
			out[n-1].End = seg.End

			continue
		}

		out = append(out, seg.Interval)
	}

	return out, nil
}

// Profile sweeps all lists and returns the coverage profile: consecutive
// segments, each with the number of lists active over it. Spans covered by
// no list are omitted. Overlap inside one list counts that list once.
func Profile(lists ...[]interval.Interval) []Segment {
	var events []interval.Event

	for owner, list := range lists {
		for _, iv := range list {
			events = interval.AppendEvents(events, iv, owner)
		}
	}

	interval.SortEvents(events)

	var (
		out     []Segment
		perList = make([]int, len(lists))
		active  int
		prev    int
	)

	for _, ev := range events {
		if active > 0 && ev.Time > prev {
			out = appendSegment(out, Segment{Interval: interval.New(prev, ev.Time), Active: active})
		}

		prev = ev.Time

		if ev.Kind == interval.Start {
			if perList[ev.Owner] == 0 {
				active++
			}

			perList[ev.Owner]++
		} else {
			perList[ev.Owner]--

			if perList[ev.Owner] == 0 {
				active--
			}
		}
	}

	return out
}

// WeightedIntersection returns the spans covered by every list. Each span
// carries the sum of the weights of all intervals active over it, from all
// lists; neighbouring spans with equal weight are merged. With no lists
// the result is empty.
func WeightedIntersection(lists [][]interval.Weighted) []WeightedSegment {
	if len(lists) == 0 {
		return nil
	}

	type ref struct{ list, weight int }

	var (
		events []interval.Event
		refs   []ref
	)

	for owner, list := range lists {
		for _, w := range list {
			if w.Empty() {
				continue
			}

			events = interval.AppendEvents(events, w.Interval, len(refs))
			refs = append(refs, ref{list: owner, weight: w.Weight})
		}
	}

	interval.SortEvents(events)

	var (
		out     []WeightedSegment
		perList = make([]int, len(lists))
		active  int
		weight  int
		prev    int
	)

	for _, ev := range events {
		if active == len(lists) && ev.Time > prev {
			out = appendWeighted(out, WeightedSegment{Interval: interval.New(prev, ev.Time), Weight: weight})
		}

		prev = ev.Time
		r := refs[ev.Owner]

		if ev.Kind == interval.Start {
			if perList[r.list] == 0 {
				active++
			}

			perList[r.list]++
			weight += r.weight
		} else {
			perList[r.list]--
			weight -= r.weight

			if perList[r.list] == 0 {
				active--
			}
		}
	}

	return slices.Clip(out)
}

func appendSegment(out []Segment, seg Segment) []Segment {
	if n := len(out); n > 0 && out[n-1].End == seg.Start && out[n-1].Active == seg.Active {
		out[n-1].End = seg.End

		return out
	}

	return append(out, seg)
}

func appendWeighted(out []WeightedSegment, seg WeightedSegment) []WeightedSegment {
	if n := len(out); n > 0 && out[n-1].End == seg.Start && out[n-1].Weight == seg.Weight {
		out[n-1].End = seg.End

		return out
	}

	return append(out, seg)
}
