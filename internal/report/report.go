// Package report renders per-step statistics as a standalone HTML
// page with interactive charts.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/san-kum/fieldviz/internal/scan"
)

// Write renders the statistics report to w. Stats must hold at least
// one row; the order of rows sets the x axis.
func Write(w io.Writer, title string, stats []scan.StepStats) error {
	if len(stats) == 0 {
		return fmt.Errorf("report: no statistics to plot")
	}

	steps := make([]string, len(stats))
	mins := make([]opts.LineData, len(stats))
	maxs := make([]opts.LineData, len(stats))
	means := make([]opts.LineData, len(stats))
	spreads := make([]opts.LineData, len(stats))
	lo, hi := stats[0].Min, stats[0].Max
	for i, s := range stats {
		steps[i] = strconv.Itoa(s.Step)
		mins[i] = opts.LineData{Value: s.Min}
		maxs[i] = opts.LineData{Value: s.Max}
		means[i] = opts.LineData{Value: s.Mean}
		spreads[i] = opts.LineData{Value: s.StdDev}
		if s.Min < lo {
			lo = s.Min
		}
		if s.Max > hi {
			hi = s.Max
		}
	}
	subtitle := fmt.Sprintf("steps=%d global range=[%.6g, %.6g]", len(stats), lo, hi)

	rangeChart := charts.NewLine()
	rangeChart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "step", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "value", NameLocation: "middle", NameGap: 40}),
	)
	rangeChart.SetXAxis(steps).
		AddSeries("min", mins).
		AddSeries("max", maxs).
		AddSeries("mean", means)

	spreadChart := charts.NewLine()
	spreadChart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: "Spread per step"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "step", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "stddev", NameLocation: "middle", NameGap: 40}),
	)
	spreadChart.SetXAxis(steps).
		AddSeries("stddev", spreads)

	page := components.NewPage()
	page.AddCharts(rangeChart, spreadChart)
	return page.Render(w)
}

// WriteFile renders the report and writes it in one shot, so a render
// failure leaves no file behind.
func WriteFile(path, title string, stats []scan.StepStats) error {
	var buf bytes.Buffer
	if err := Write(&buf, title, stats); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
