package render

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/intervals/pkg/alg/coloring"
	"github.com/Sumatoshi-tech/intervals/pkg/alg/containment"
	"github.com/Sumatoshi-tech/intervals/pkg/alg/diset"
	"github.com/Sumatoshi-tech/intervals/pkg/alg/interval"
	"github.com/Sumatoshi-tech/intervals/pkg/alg/multilist"
)

type intervalsData struct {
	Title     string              `json:"title"     yaml:"title"`
	Intervals []interval.Interval `json:"intervals" yaml:"intervals"`
	Measure   int                 `json:"measure"   yaml:"measure"`
}

type coloredInterval struct {
	interval.Interval `yaml:",inline"`

	Weight *int `json:"weight,omitempty" yaml:"weight,omitempty"`
	Color  int  `json:"color"            yaml:"color"`
}

type coloringData struct {
	Colors    int               `json:"colors"             yaml:"colors"`
	Intervals []coloredInterval `json:"intervals"          yaml:"intervals"`
	Loads     []int             `json:"loads,omitempty"    yaml:"loads,omitempty"`
	MaxLoad   int               `json:"max_load,omitempty" yaml:"max_load,omitempty"`
}

type storeData struct {
	Ranges []diset.Range `json:"ranges" yaml:"ranges"`
	Count  uint64        `json:"count"  yaml:"count"`
}

type containmentData struct {
	Kept     []interval.Interval `json:"kept"     yaml:"kept"`
	Removed  int                 `json:"removed"  yaml:"removed"`
	Overlaps []containment.Pair  `json:"overlaps" yaml:"overlaps"`
}

// Intervals prints a normalized or raw interval list with its measure.
func (r *Renderer) Intervals(title string, list []interval.Interval) error {
	measure := interval.Measure(list)

	rows := make([]table.Row, len(list))
	for i, iv := range list {
		rows[i] = table.Row{i, iv.Start, iv.End, r.Int(iv.Len())}
	}

	return r.Render(Report{
		Title:   title,
		Header:  table.Row{"#", "Start", "End", "Length"},
		Rows:    rows,
		Summary: []Stat{{"Intervals", r.Int(len(list))}, {"Measure", r.Int(measure)}},
		Data:    intervalsData{Title: title, Intervals: nonNil(list), Measure: measure},
	})
}

// Coloring prints one color per interval.
func (r *Renderer) Coloring(list []interval.Interval, a coloring.Assignment) error {
	data := coloringData{Colors: a.Count, Intervals: make([]coloredInterval, len(list))}
	rows := make([]table.Row, len(list))

	for i, iv := range list {
		data.Intervals[i] = coloredInterval{Interval: iv, Color: a.Colors[i]}
		rows[i] = table.Row{i, iv.String(), a.Colors[i]}
	}

	return r.Render(Report{
		Title:   "Coloring",
		Header:  table.Row{"#", "Interval", "Color"},
		Rows:    rows,
		Summary: []Stat{{"Colors", r.Int(a.Count)}},
		Data:    data,
	})
}

// WeightedColoring prints colors, weights and per-color loads.
func (r *Renderer) WeightedColoring(items []interval.Weighted, a coloring.WeightedAssignment) error {
	data := coloringData{
		Colors:    a.Count,
		Intervals: make([]coloredInterval, len(items)),
		Loads:     a.Loads,
		MaxLoad:   a.MaxLoad,
	}
	rows := make([]table.Row, len(items))

	for i, item := range items {
		weight := item.Weight
		data.Intervals[i] = coloredInterval{Interval: item.Interval, Weight: &weight, Color: a.Colors[i]}
		rows[i] = table.Row{i, item.Interval.String(), r.Int(item.Weight), a.Colors[i]}
	}

	summary := []Stat{{"Colors", r.Int(a.Count)}, {"Max load", r.Int(a.MaxLoad)}}
	for c, load := range a.Loads {
		summary = append(summary, Stat{"Load of color " + strconv.Itoa(c), r.Int(load)})
	}

	return r.Render(Report{
		Title:   "Weighted coloring",
		Header:  table.Row{"#", "Interval", "Weight", "Color"},
		Rows:    rows,
		Summary: summary,
		Data:    data,
	})
}

// Store prints the ranges of a disjoint interval store and its count.
func (r *Renderer) Store(store *diset.Store) error {
	ranges := store.Intervals()
	rows := make([]table.Row, len(ranges))

	for i, rg := range ranges {
		rows[i] = table.Row{rg.Start, rg.End, r.Uint(rg.Len())}
	}

	return r.Render(Report{
		Title:   "Store",
		Header:  table.Row{"Start", "End", "Count"},
		Rows:    rows,
		Summary: []Stat{{"Ranges", r.Int(len(ranges))}, {"Numbers", r.Uint(store.Count())}},
		Data:    storeData{Ranges: nonNil(ranges), Count: store.Count()},
	})
}

// Profile prints a coverage profile.
func (r *Renderer) Profile(title string, segs []multilist.Segment) error {
	rows := make([]table.Row, len(segs))
	for i, s := range segs {
		rows[i] = table.Row{s.Interval.String(), s.Active}
	}

	return r.Render(Report{
		Title:   title,
		Header:  table.Row{"Segment", "Active lists"},
		Rows:    rows,
		Summary: []Stat{{"Segments", r.Int(len(segs))}},
		Data:    nonNil(segs),
	})
}

// WeightedSegments prints a weighted intersection.
func (r *Renderer) WeightedSegments(title string, segs []multilist.WeightedSegment) error {
	rows := make([]table.Row, len(segs))
	for i, s := range segs {
		rows[i] = table.Row{s.Interval.String(), r.Int(s.Weight)}
	}

	return r.Render(Report{
		Title:   title,
		Header:  table.Row{"Segment", "Weight"},
		Rows:    rows,
		Summary: []Stat{{"Segments", r.Int(len(segs))}},
		Data:    nonNil(segs),
	})
}

// Containment prints the intervals left after dropping covered ones, and
// every overlapping pair of the input.
func (r *Renderer) Containment(kept []interval.Interval, removed int, pairs []containment.Pair) error {
	rows := make([]table.Row, len(kept))
	for i, iv := range kept {
		rows[i] = table.Row{i, iv.String()}
	}

	return r.Render(Report{
		Title:  "Containment",
		Header: table.Row{"#", "Kept"},
		Rows:   rows,
		Summary: []Stat{
			{"Removed", r.Int(removed)},
			{"Overlapping pairs", r.Int(len(pairs))},
		},
		Data: containmentData{Kept: nonNil(kept), Removed: removed, Overlaps: nonNil(pairs)},
	})
}

// nonNil keeps empty results as [] rather than null in JSON.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}
