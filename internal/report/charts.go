package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// maxScatterPoints bounds the length scatter so large datasets stay
// renderable in a browser.
const maxScatterPoints = 5000

// RenderHTML writes a single HTML page with the task-distribution bar
// chart and the output-length scatter.
func RenderHTML(w io.Writer, s Stats) error {
	tasks := s.sortedTasks()
	bars := make([]opts.BarData, 0, len(tasks))
	for _, task := range tasks {
		bars = append(bars, opts.BarData{Value: s.TaskCounts[task]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Task distribution",
			Subtitle: fmt.Sprintf("%d records", s.Total),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(tasks).
		AddSeries("records", bars,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	lengths := s.CellLengths()
	stride := 1
	if len(lengths) > maxScatterPoints {
		stride = len(lengths)/maxScatterPoints + 1
	}
	points := make([]opts.ScatterData, 0, maxScatterPoints)
	for i := 0; i < len(lengths); i += stride {
		points = append(points, opts.ScatterData{Value: []interface{}{i, lengths[i]}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Output length",
			Subtitle: fmt.Sprintf("mean %.1f cells, stddev %.1f", s.MeanCells, s.StdDevCells),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "record"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "cells"}),
	)
	scatter.AddSeries("cells", points, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))

	page := components.NewPage()
	page.AddCharts(bar, scatter)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render report page: %w", err)
	}
	return nil
}
