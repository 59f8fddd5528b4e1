package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/intervals/pkg/alg/multilist"
)

// Chart colors.
const (
	chartBackground = "#111113"
	chartText       = "#edeeef"
	chartTextMuted  = "#b0b4ba"
	chartAxis       = "#5a6169"
	chartGrid       = "#2e3135"
	chartSeries     = "#ad7f58"

	chartWidth  = "100%"
	chartHeight = "500px"

	dataZoomEndPercent = 100
)

// ProfileChart builds a line chart of how many lists are active along the
// axis. Each point marks a boundary and holds the count until the next one;
// gaps between segments drop to zero.
func ProfileChart(title string, segs []multilist.Segment) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:           chartWidth,
			Height:          chartHeight,
			BackgroundColor: chartBackground,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:         title,
			Subtitle:      strconv.Itoa(len(segs)) + " segments",
			Left:          "center",
			TitleStyle:    &opts.TextStyle{Color: chartText},
			SubtitleStyle: &opts.TextStyle{Color: chartTextMuted},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(
			opts.DataZoom{Type: "slider", Start: 0, End: dataZoomEndPercent},
			opts.DataZoom{Type: "inside"},
		),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "Position",
			AxisLabel: &opts.AxisLabel{Color: chartTextMuted},
			AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: chartAxis}},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      "Active lists",
			AxisLabel: &opts.AxisLabel{Color: chartTextMuted},
			AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: chartAxis}},
			SplitLine: &opts.SplitLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: chartGrid}},
		}),
	)

	labels, data := profilePoints(segs)

	line.SetXAxis(labels)
	line.AddSeries("active", data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: chartSeries}),
	)

	return line
}

// WriteProfileChart renders the profile chart as a standalone HTML page.
func WriteProfileChart(w io.Writer, title string, segs []multilist.Segment) error {
	renderErr := ProfileChart(title, segs).Render(w)
	if renderErr != nil {
		return fmt.Errorf("render chart: %w", renderErr)
	}

	return nil
}

func profilePoints(segs []multilist.Segment) (labels []string, data []opts.LineData) {
	add := func(x, y int) {
		labels = append(labels, strconv.Itoa(x))
		data = append(data, opts.LineData{Value: y})
	}

	for i, s := range segs {
		if i > 0 && segs[i-1].End < s.Start {
			add(segs[i-1].End, 0)
		}

		add(s.Start, s.Active)
	}

	if len(segs) > 0 {
		add(segs[len(segs)-1].End, 0)
	}

	return labels, data
}
