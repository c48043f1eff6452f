package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SaveHistogram renders the distribution of output lengths as a PNG.
func SaveHistogram(path string, s Stats) error {
	lengths := s.CellLengths()
	if len(lengths) == 0 {
		return fmt.Errorf("no records to plot")
	}

	p := plot.New()
	p.Title.Text = "Output length distribution"
	p.X.Label.Text = "cells"
	p.Y.Label.Text = "records"

	bins := 20
	if len(lengths) < bins {
		bins = len(lengths)
	}
	hist, err := plotter.NewHist(plotter.Values(lengths), bins)
	if err != nil {
		return fmt.Errorf("failed to build histogram: %w", err)
	}
	p.Add(hist)

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
