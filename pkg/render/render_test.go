package render_test

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/intervals/pkg/alg/coloring"
	"github.com/Sumatoshi-tech/intervals/pkg/alg/containment"
	"github.com/Sumatoshi-tech/intervals/pkg/alg/diset"
	"github.com/Sumatoshi-tech/intervals/pkg/alg/interval"
	"github.com/Sumatoshi-tech/intervals/pkg/alg/multilist"
	"github.com/Sumatoshi-tech/intervals/pkg/render"
)

func newRenderer(t *testing.T, format string, human bool) (*render.Renderer, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer

	r, err := render.New(&buf, render.Options{Format: format, Humanize: human})
	require.NoError(t, err)

	return r, &buf
}

func TestNew_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := render.New(&bytes.Buffer{}, render.Options{Format: "xml"})
	require.ErrorIs(t, err, render.ErrUnknownFormat)

	r, err := render.New(&bytes.Buffer{}, render.Options{})
	require.NoError(t, err)
	assert.Equal(t, render.FormatTable, r.Format())
}

func TestIntervals_Table(t *testing.T) {
	t.Parallel()

	r, buf := newRenderer(t, render.FormatTable, true)

	require.NoError(t, r.Intervals("Union", interval.FromPairs([][2]int{{0, 1500}, {2000, 2001}})))

	out := buf.String()
	assert.Contains(t, out, "Union")
	assert.Contains(t, out, "START")
	assert.Contains(t, out, "1,500")
	assert.Contains(t, out, "Measure: 1,501")
}

func TestIntervals_EmptyTable(t *testing.T) {
	t.Parallel()

	r, buf := newRenderer(t, render.FormatTable, false)

	require.NoError(t, r.Intervals("Intersection", nil))
	assert.Contains(t, buf.String(), "(empty)")
	assert.Contains(t, buf.String(), "Measure: 0")
}

func TestIntervals_JSON(t *testing.T) {
	t.Parallel()

	r, buf := newRenderer(t, render.FormatJSON, true)

	require.NoError(t, r.Intervals("Difference", nil))

	var got map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Difference", got["title"])
	assert.Equal(t, []any{}, got["intervals"])
	assert.InDelta(t, 0, got["measure"], 0)
}

func TestColoring_YAML(t *testing.T) {
	t.Parallel()

	r, buf := newRenderer(t, render.FormatYAML, false)

	list := interval.FromPairs([][2]int{{0, 4}, {2, 6}})
	assignment, err := coloring.Color(list)
	require.NoError(t, err)

	require.NoError(t, r.Coloring(list, assignment))

	var got struct {
		Colors    int `yaml:"colors"`
		Intervals []struct {
			Start int `yaml:"start"`
			End   int `yaml:"end"`
			Color int `yaml:"color"`
		} `yaml:"intervals"`
	}

	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 2, got.Colors)
	require.Len(t, got.Intervals, 2)
	assert.Equal(t, 2, got.Intervals[1].Start)
	assert.NotEqual(t, got.Intervals[0].Color, got.Intervals[1].Color)
	assert.NotContains(t, buf.String(), "weight")
}

func TestWeightedColoring_Table(t *testing.T) {
	t.Parallel()

	r, buf := newRenderer(t, render.FormatTable, false)

	items := []interval.Weighted{
		{Interval: interval.New(0, 4), Weight: 5},
		{Interval: interval.New(2, 6), Weight: 3},
	}

	assignment, err := coloring.ColorWeighted(items)
	require.NoError(t, err)

	require.NoError(t, r.WeightedColoring(items, assignment))
	assert.Contains(t, buf.String(), "Max load: 5")
	assert.Contains(t, buf.String(), "Load of color 1: 3")
}

func TestStore_HumanizesFullDomain(t *testing.T) {
	t.Parallel()

	r, buf := newRenderer(t, render.FormatTable, true)

	store := diset.New()
	store.AddRange(math.MinInt, math.MaxInt)

	require.NoError(t, r.Store(store))
	assert.Contains(t, buf.String(), "Numbers: 18,446,744,073,709,551,615")
}

func TestStore_JSON(t *testing.T) {
	t.Parallel()

	r, buf := newRenderer(t, render.FormatJSON, false)

	store := diset.New()
	store.AddRange(1, 3)
	store.AddNum(7)

	require.NoError(t, r.Store(store))
	assert.JSONEq(t, `{"ranges":[{"start":1,"end":3},{"start":7,"end":7}],"count":4}`, buf.String())
}

func TestProfileAndSegments(t *testing.T) {
	t.Parallel()

	r, buf := newRenderer(t, render.FormatJSON, false)

	segs := multilist.Profile(interval.FromPairs([][2]int{{0, 4}}), interval.FromPairs([][2]int{{2, 6}}))
	require.NoError(t, r.Profile("Profile", segs))
	assert.JSONEq(t,
		`[{"start":0,"end":2,"active":1},{"start":2,"end":4,"active":2},{"start":4,"end":6,"active":1}]`,
		buf.String())

	buf.Reset()

	require.NoError(t, r.WeightedSegments("Weighted", nil))
	assert.JSONEq(t, `[]`, buf.String())
}

func TestContainment_Table(t *testing.T) {
	t.Parallel()

	r, buf := newRenderer(t, render.FormatTable, false)

	list := interval.FromPairs([][2]int{{1, 4}, {3, 6}, {2, 8}})
	kept, removed := containment.RemoveCovered(list)

	require.NoError(t, r.Containment(kept, removed, containment.OverlappingPairs(list)))
	assert.Contains(t, buf.String(), "Removed: 1")
	assert.Contains(t, buf.String(), "Overlapping pairs: 3")
}

func TestRender_NoColorHasNoEscapes(t *testing.T) {
	t.Parallel()

	r, buf := newRenderer(t, render.FormatTable, false)

	require.NoError(t, r.Intervals("Plain", interval.FromPairs([][2]int{{0, 1}})))
	assert.NotContains(t, buf.String(), "\x1b[")
}
