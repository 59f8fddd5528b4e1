package render

import (
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/intervals/pkg/alg/multilist"
)

// ProfilePoints exposes profilePoints for tests.
func ProfilePoints(segs []multilist.Segment) ([]string, []opts.LineData) {
	return profilePoints(segs)
}
