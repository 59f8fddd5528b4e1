// Package interval provides the half-open interval primitive shared by the
// interval-algebra packages, together with normalization, sweep-line events
// and an augmented interval tree for overlap queries.
//
// An Interval is the half-open range [Start, End). It is valid only when
// Start < End; a point is not an interval. Two intervals overlap when
// max(s1, s2) < min(e1, e2), so [a, b) and [b, c) touch but do not overlap.
package interval

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors for interval validation.
var (
	// ErrInvalidInterval is returned when an interval has Start >= End.
	ErrInvalidInterval = errors.New("interval: start must be less than end")
)

// Interval is the half-open integer range [Start, End).
type Interval struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end"   yaml:"end"`
}

// Weighted is an interval carrying an integer weight.
type Weighted struct {
	Interval `yaml:",inline"`

	Weight int `json:"weight" yaml:"weight"`
}

// New returns the interval [start, end).
func New(start, end int) Interval {
	return Interval{Start: start, End: end}
}

// Valid reports whether the interval is non-empty.
func (iv Interval) Valid() bool {
	return iv.Start < iv.End
}

// Empty reports whether the interval covers no points.
func (iv Interval) Empty() bool {
	return !iv.Valid()
}

// Len returns the number of integer points covered, or 0 for an empty interval.
func (iv Interval) Len() int {
	if iv.Empty() {
		return 0
	}

	return iv.End - iv.Start
}

// Contains reports whether point lies in [Start, End).
func (iv Interval) Contains(point int) bool {
	return iv.Start <= point && point < iv.End
}

// Covers reports whether other is a non-empty subset of iv.
func (iv Interval) Covers(other Interval) bool {
	return other.Valid() && iv.Start <= other.Start && other.End <= iv.End
}

// Overlaps reports whether the two intervals share at least one point.
func (iv Interval) Overlaps(other Interval) bool {
	return max(iv.Start, other.Start) < min(iv.End, other.End)
}

// Touches reports whether the intervals overlap or share an endpoint,
// i.e. whether their union is a single interval.
func (iv Interval) Touches(other Interval) bool {
	return max(iv.Start, other.Start) <= min(iv.End, other.End)
}

// Intersect returns the common part of both intervals. The result is empty
// when they do not overlap.
func (iv Interval) Intersect(other Interval) Interval {
	return Interval{Start: max(iv.Start, other.Start), End: min(iv.End, other.End)}
}

// Validate returns ErrInvalidInterval when the interval is empty.
func (iv Interval) Validate() error {
	if iv.Empty() {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, iv)
	}

	return nil
}

// String renders the interval as "[start,end)".
func (iv Interval) String() string {
	return "[" + strconv.Itoa(iv.Start) + "," + strconv.Itoa(iv.End) + ")"
}

// FromPairs converts [start, end] pairs into intervals.
func FromPairs(pairs [][2]int) []Interval {
	if pairs == nil {
		return nil
	}

	out := make([]Interval, len(pairs))

	for i, p := range pairs {
		out[i] = Interval{Start: p[0], End: p[1]}
	}

	return out
}

// Pairs converts intervals into [start, end] pairs.
func Pairs(list []Interval) [][2]int {
	out := make([][2]int, len(list))

	for i, iv := range list {
		out[i] = [2]int{iv.Start, iv.End}
	}

	return out
}

// Strip drops the weights of a weighted list.
func Strip(items []Weighted) []Interval {
	out := make([]Interval, len(items))

	for i, w := range items {
		out[i] = w.Interval
	}

	return out
}
