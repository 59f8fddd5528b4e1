// Package coloring assigns colors to half-open intervals so that no two
// overlapping intervals share a color.
//
// Intervals are the nodes of an interval graph whose edges join every
// overlapping pair. For such graphs the greedy sweep in start order is
// optimal: the number of colors equals the largest number of intervals
// active at a single point. The package provides that sweep plus weighted,
// constrained and online (Dynamic) variants.
package coloring

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Sumatoshi-tech/intervals/pkg/alg/interval"
)

// Sentinel errors for coloring input.
var (
	// ErrInvalidInterval is returned when an input interval is empty.
	ErrInvalidInterval = interval.ErrInvalidInterval
	// ErrNegativeWeight is returned when a weighted interval has a negative weight.
	ErrNegativeWeight = errors.New("coloring: weight must not be negative")
	// ErrConstraintIndex is returned when a constraint names an unknown interval.
	ErrConstraintIndex = errors.New("coloring: constraint index out of range")
	// ErrSelfConstraint is returned when a constraint joins an interval to itself.
	ErrSelfConstraint = errors.New("coloring: interval cannot differ from itself")
)

// Assignment holds one color per input interval, parallel to input order.
// Colors are numbered from 0 to Count-1.
type Assignment struct {
	Colors []int `json:"colors" yaml:"colors"`
	Count  int   `json:"count"  yaml:"count"`
}

// WeightedAssignment is an Assignment that also reports the total weight
// carried by each color.
type WeightedAssignment struct {
	Assignment `yaml:",inline"`

	Loads   []int `json:"loads"    yaml:"loads"`
	MaxLoad int   `json:"max_load" yaml:"max_load"`
}

// Constraint requires intervals A and B (input indices) to get different
// colors even when they do not overlap.
type Constraint struct {
	A int `json:"a" yaml:"a"`
	B int `json:"b" yaml:"b"`
}

// Color assigns the minimum number of colors to list.
//
// The sweep visits interval starts in order. The colors in use form a
// min-heap keyed by the end of their current holder; a start reuses the
// root color when its holder ended at or before the start, and allocates a
// new color otherwise.
func Color(list []interval.Interval) (Assignment, error) {
	if err := validate(list); err != nil {
		return Assignment{}, err
	}

	colors := make([]int, len(list))
	busy := newHolderQueue()
	count := 0

	for _, ev := range interval.Events(list) {
		if ev.Kind != interval.Start {
			continue
		}

		c := count

		if busy.Len() > 0 && busy.peek().end <= ev.Time {
			c = busy.pop().color
		} else {
			count++
		}

		colors[ev.Owner] = c
		busy.push(holder{end: list[ev.Owner].End, color: c})
	}

	return Assignment{Colors: colors, Count: count}, nil
}

// MinColors returns the chromatic number of the interval graph of list,
// or 0 when list is empty or holds an invalid interval.
func MinColors(list []interval.Interval) int {
	a, err := Color(list)
	if err != nil {
		return 0
	}

	return a.Count
}

// MaxOverlap returns the largest number of intervals sharing one point.
// Empty intervals are ignored.
func MaxOverlap(list []interval.Interval) int {
	active, peak := 0, 0

	for _, ev := range interval.Events(list) {
		if ev.Kind == interval.End {
			active--

			continue
		}

		active++
		peak = max(peak, active)
	}

	return peak
}

// ColorWeighted colors items with the minimum number of colors while
// keeping the heaviest color as light as the greedy sweep allows.
//
// Among the colors free at a start, the one bearing the smallest total
// weight is reused, so each assignment raises the maximum load by the
// least amount available; ties go to the smaller color.
func ColorWeighted(items []interval.Weighted) (WeightedAssignment, error) {
	list := interval.Strip(items)

	if err := validate(list); err != nil {
		return WeightedAssignment{}, err
	}

	for i, it := range items {
		if it.Weight < 0 {
			return WeightedAssignment{}, fmt.Errorf("%w: interval %d has weight %d", ErrNegativeWeight, i, it.Weight)
		}
	}

	colors := make([]int, len(items))
	busy := newHolderQueue()
	free := newLoadQueue()

	var loads []int

	for _, ev := range interval.Events(list) {
		if ev.Kind != interval.Start {
			continue
		}

		for busy.Len() > 0 && busy.peek().end <= ev.Time {
			c := busy.pop().color
			free.push(loaded{load: loads[c], color: c})
		}

		var c int

		if free.Len() > 0 {
			c = free.pop().color
		} else {
			c = len(loads)
			loads = append(loads, 0)
		}

		colors[ev.Owner] = c
		loads[c] += items[ev.Owner].Weight
		busy.push(holder{end: list[ev.Owner].End, color: c})
	}

	maxLoad := 0
	if len(loads) > 0 {
		maxLoad = slices.Max(loads)
	}

	return WeightedAssignment{
		Assignment: Assignment{Colors: colors, Count: len(loads)},
		Loads:      loads,
		MaxLoad:    maxLoad,
	}, nil
}

// ColorConstrained colors list so that overlapping intervals and every
// constrained pair get different colors. Each constraint acts as an extra
// edge of the interval graph. Intervals are visited in start order and take
// the smallest color used neither by an active overlapping interval nor by
// an already colored constraint partner.
//
// The result is a proper coloring but, as the extra edges break the
// interval graph structure, not necessarily a minimum one.
func ColorConstrained(list []interval.Interval, constraints []Constraint) (Assignment, error) {
	if err := validate(list); err != nil {
		return Assignment{}, err
	}

	partners := make([][]int, len(list))

	for i, c := range constraints {
		if c.A < 0 || c.A >= len(list) || c.B < 0 || c.B >= len(list) {
			return Assignment{}, fmt.Errorf("%w: constraint %d (%d, %d) with %d intervals",
				ErrConstraintIndex, i, c.A, c.B, len(list))
		}

		if c.A == c.B {
			return Assignment{}, fmt.Errorf("%w: constraint %d on interval %d", ErrSelfConstraint, i, c.A)
		}

		partners[c.A] = append(partners[c.A], c.B)
		partners[c.B] = append(partners[c.B], c.A)
	}

	colors := make([]int, len(list))
	for i := range colors {
		colors[i] = -1
	}

	busy := newHolderQueue()
	inUse := make(map[int]int)
	count := 0

	for _, ev := range interval.Events(list) {
		if ev.Kind != interval.Start {
			continue
		}

		for busy.Len() > 0 && busy.peek().end <= ev.Time {
			c := busy.pop().color
			inUse[c]--
		}

		blocked := make(map[int]bool, len(partners[ev.Owner]))

		for _, p := range partners[ev.Owner] {
			if colors[p] >= 0 {
				blocked[colors[p]] = true
			}
		}

		c := 0
		for inUse[c] > 0 || blocked[c] {
			c++
		}

		colors[ev.Owner] = c
		inUse[c]++
		count = max(count, c+1)
		busy.push(holder{end: list[ev.Owner].End, color: c})
	}

	return Assignment{Colors: colors, Count: count}, nil
}

func validate(list []interval.Interval) error {
	for i, iv := range list {
		if err := iv.Validate(); err != nil {
			return fmt.Errorf("coloring: interval %d: %w", i, err)
		}
	}

	return nil
}
