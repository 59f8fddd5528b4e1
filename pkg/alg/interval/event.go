package interval

import (
	"cmp"
	"slices"
)

// EventKind distinguishes the two sweep-line events of an interval.
// End sorts before Start so that [a, b) and [b, c) are never active together.
type EventKind uint8

// Sweep event kinds.
const (
	End EventKind = iota
	Start
)

// String returns the event kind name.
func (k EventKind) String() string {
	if k == Start {
		return "start"
	}

	return "end"
}

// Event is a sweep-line primitive: a boundary of the interval identified by Owner.
type Event struct {
	Time  int
	Kind  EventKind
	Owner int
}

// Events returns the sorted start/end events of every valid interval in list.
// Owner is the index of the interval in list. Empty intervals produce no events.
func Events(list []Interval) []Event {
	events := make([]Event, 0, 2*len(list)) //nolint:mnd // two boundaries per interval.

	for i, iv := range list {
		events = AppendEvents(events, iv, i)
	}

	SortEvents(events)

	return events
}

// AppendEvents appends the two events of iv, owned by owner, to events.
// Empty intervals are skipped. The caller sorts the result.
func AppendEvents(events []Event, iv Interval, owner int) []Event {
	if iv.Empty() {
		return events
	}

	return append(events,
		Event{Time: iv.Start, Kind: Start, Owner: owner},
		Event{Time: iv.End, Kind: End, Owner: owner},
	)
}

// SortEvents orders events by time, with End before Start at equal time,
// then by owner for deterministic output.
func SortEvents(events []Event) {
	slices.SortFunc(events, func(a, b Event) int {
		if c := cmp.Compare(a.Time, b.Time); c != 0 {
			return c
		}

		if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
			return c
		}

		return cmp.Compare(a.Owner, b.Owner)
	})
}
