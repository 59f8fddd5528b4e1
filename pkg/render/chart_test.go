package render_test

import (
	"bytes"
	"testing"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/intervals/pkg/alg/interval"
	"github.com/Sumatoshi-tech/intervals/pkg/alg/multilist"
	"github.com/Sumatoshi-tech/intervals/pkg/render"
)

func TestProfilePoints(t *testing.T) {
	t.Parallel()

	segs := []multilist.Segment{
		{Interval: interval.New(0, 2), Active: 1},
		{Interval: interval.New(2, 4), Active: 2},
		{Interval: interval.New(6, 8), Active: 1},
	}

	labels, data := render.ProfilePoints(segs)

	assert.Equal(t, []string{"0", "2", "4", "6", "8"}, labels)
	assert.Equal(t, []opts.LineData{{Value: 1}, {Value: 2}, {Value: 0}, {Value: 1}, {Value: 0}}, data)

	labels, data = render.ProfilePoints(nil)
	assert.Empty(t, labels)
	assert.Empty(t, data)
}

func TestWriteProfileChart(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	segs := multilist.Profile(interval.FromPairs([][2]int{{0, 4}}), interval.FromPairs([][2]int{{2, 6}}))

	require.NoError(t, render.WriteProfileChart(&buf, "Coverage", segs))
	assert.Contains(t, buf.String(), "<html")
	assert.Contains(t, buf.String(), "Coverage")
}
