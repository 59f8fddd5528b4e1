package coloring

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/tidwall/btree"

	"github.com/Sumatoshi-tech/intervals/pkg/alg/interval"
)

// ErrOutOfOrder is returned by Dynamic.Add when an interval starts before
// a previously added one.
var ErrOutOfOrder = errors.New("coloring: intervals must be added in non-decreasing start order")

// Dynamic colors intervals online, as they arrive in start order.
//
// Live intervals are indexed by end time. Adding an interval first expires
// every live interval ending at or before its start, returning their colors
// to a free pool, then takes the smallest free color or allocates a new one.
// Remove cancels a live interval and frees its color at once. Both run in
// amortized O(log n).
//
// A zero Dynamic is not ready to use; call NewDynamic.
// A Dynamic is not safe for concurrent use.
type Dynamic struct {
	// Keys are end times, values the ids of live intervals ending there.
	byEnd btree.Map[int, []int]
	live  map[int]liveEntry
	free  *queue[int]

	allocated int
	nextID    int
	lastStart int
	started   bool
}

type liveEntry struct {
	iv    interval.Interval
	color int
}

// NewDynamic returns an empty online colorer.
func NewDynamic() *Dynamic {
	return &Dynamic{
		live: make(map[int]liveEntry),
		free: newColorQueue(),
	}
}

// Add colors iv and returns its id and color.
// It fails with ErrInvalidInterval for an empty interval and with
// ErrOutOfOrder when iv starts before the previously added interval.
func (d *Dynamic) Add(iv interval.Interval) (id, color int, err error) {
	if err = iv.Validate(); err != nil {
		return 0, 0, fmt.Errorf("coloring: %w", err)
	}

	if d.started && iv.Start < d.lastStart {
		return 0, 0, fmt.Errorf("%w: %d after %d", ErrOutOfOrder, iv.Start, d.lastStart)
	}

	d.started, d.lastStart = true, iv.Start
	d.expire(iv.Start)

	if d.free.Len() > 0 {
		color = d.free.pop()
	} else {
		color = d.allocated
		d.allocated++
	}

	id = d.nextID
	d.nextID++

	d.live[id] = liveEntry{iv: iv, color: color}

	ids, _ := d.byEnd.Get(iv.End)
	d.byEnd.Set(iv.End, append(ids, id))

	return id, color, nil
}

// Remove cancels the live interval id and frees its color.
// It reports false when id is unknown or already expired.
func (d *Dynamic) Remove(id int) bool {
	e, ok := d.live[id]
	if !ok {
		return false
	}

	delete(d.live, id)

	ids, _ := d.byEnd.Get(e.iv.End)
	ids = slices.DeleteFunc(slices.Clone(ids), func(x int) bool { return x == id })

	if len(ids) == 0 {
		d.byEnd.Delete(e.iv.End)
	} else {
		d.byEnd.Set(e.iv.End, ids)
	}

	d.free.push(e.color)

	return true
}

// Color returns the color of the live interval id.
func (d *Dynamic) Color(id int) (int, bool) {
	e, ok := d.live[id]

	return e.color, ok
}

// Active returns the number of live intervals.
// All of them contain the start of the last added interval.
func (d *Dynamic) Active() int {
	return len(d.live)
}

// Allocated returns the number of distinct colors handed out so far,
// which equals the largest number of intervals ever live together.
func (d *Dynamic) Allocated() int {
	return d.allocated
}

// Intervals returns the live intervals by id.
func (d *Dynamic) Intervals() map[int]interval.Interval {
	out := make(map[int]interval.Interval, len(d.live))

	for id, e := range d.live {
		out[id] = e.iv
	}

	return out
}

// LiveIDs returns the ids of live intervals in ascending order.
func (d *Dynamic) LiveIDs() []int {
	return slices.Sorted(maps.Keys(d.live))
}

// expire frees the colors of every live interval ending at or before start.
func (d *Dynamic) expire(start int) {
	var ends []int

	d.byEnd.Scan(func(end int, ids []int) bool {
		if end > start {
			return false
		}

		ends = append(ends, end)

		for _, id := range ids {
			d.free.push(d.live[id].color)
			delete(d.live, id)
		}

		return true
	})

	for _, end := range ends {
		d.byEnd.Delete(end)
	}
}
