/*
 * plot.go, part of dScribe-tools.
 *
 * Copyright 2026 The dScribe-tools authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/MattB-242/dScribe-tools/sweep"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Line is a curve in a plot.
type Line struct {
	Label string //can be empty, then the line has no legend entry
	X, Y  []float64
}

// MetricLines returns one line per series, with the metric of each record against the swept value.
func MetricLines(series ...sweep.Series) []Line {
	ret := make([]Line, len(series))
	for i, s := range series {
		ret[i] = Line{Label: s.Label, X: s.Values(), Y: s.Metrics()}
	}
	return ret
}

// TimeLines returns one line per series, with the time of each record, in seconds,
// against the swept value.
func TimeLines(series ...sweep.Series) []Line {
	ret := make([]Line, len(series))
	for i, s := range series {
		ret[i] = Line{Label: s.Label, X: s.Values(), Y: s.Times()}
	}
	return ret
}

// LinePlot is a set of lines with a title and axis labels.
type LinePlot struct {
	Title  string
	XLabel string
	YLabel string
	Lines  []Line
}

// SweepPlot returns a plot of lines against the parameter swept in plan,
// titled with the fixed parameters.
func SweepPlot(plan sweep.Plan, ylabel string, lines []Line) *LinePlot {
	return &LinePlot{
		Title:  Title(plan.Fixed()),
		XLabel: plan.Grid.Param.Label(),
		YLabel: ylabel,
		Lines:  lines,
	}
}

// Size of the saved plots.
var (
	PlotWidth  = 6 * vg.Inch
	PlotHeight = 4 * vg.Inch
)

// Plot builds the gonum plot for the line plot.
func (L *LinePlot) Plot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = L.Title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = L.XLabel
	p.Y.Label.Text = L.YLabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	vs := make([]interface{}, 0, 2*len(L.Lines))
	for _, l := range L.Lines {
		if len(l.X) != len(l.Y) {
			return nil, fmt.Errorf("report: line %q has %d x and %d y values", l.Label, len(l.X), len(l.Y))
		}
		pts := make(plotter.XYs, len(l.X))
		for i := range pts {
			pts[i].X = l.X[i]
			pts[i].Y = l.Y[i]
		}
		if l.Label != "" {
			vs = append(vs, l.Label)
		}
		vs = append(vs, pts)
	}
	if err := plotutil.AddLinePoints(p, vs...); err != nil {
		return nil, fmt.Errorf("report: plotting %q: %w", L.Title, err)
	}
	return p, nil
}

// Save saves the plot to the file name, in the format given by its extension.
func (L *LinePlot) Save(name string) error {
	p, err := L.Plot()
	if err != nil {
		return err
	}
	if err := p.Save(PlotWidth, PlotHeight, name); err != nil {
		return fmt.Errorf("report: saving plot %s: %w", name, err)
	}
	return nil
}

// WritePNG writes the plot to w as a PNG image.
func (L *LinePlot) WritePNG(w io.Writer) error {
	p, err := L.Plot()
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(PlotWidth, PlotHeight, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// PlotName returns the file name, in dir, of the plot of kind (e.g. "time", "kernmatch")
// for the structure (or structures) name, with the fixed parameters of the sweep:
// dir/name_kind_p1=v1_p2=v2.png
func PlotName(dir, name, kind string, fixed []sweep.Setting) string {
	parts := make([]string, 0, len(fixed)+2)
	parts = append(parts, name, kind)
	for _, s := range fixed {
		parts = append(parts, s.String())
	}
	return filepath.Join(dir, strings.Join(parts, "_")+".png")
}

// Title returns a plot title with the fixed parameters, like "lmax = 1, rcut = 10.0".
func Title(fixed []sweep.Setting) string {
	parts := make([]string, len(fixed))
	for i, s := range fixed {
		parts[i] = strings.Replace(s.String(), "=", " = ", 1)
	}
	return strings.Join(parts, ", ")
}
