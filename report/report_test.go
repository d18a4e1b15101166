/*
 * report_test.go, part of dScribe-tools.
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
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/MattB-242/dScribe-tools/sweep"
	"gonum.org/v1/gonum/mat"
)

func TestCSVRoundTrip(Te *testing.T) {
	names := []string{"glycine", "urea, form I", `the "odd" one`}
	K := mat.NewSymDense(3, []float64{
		1, 0.8325479311, 1.0 / 3,
		0.8325479311, 1, 2e-17,
		1.0 / 3, 2e-17, 1,
	})
	file := MatrixCSVName(Te.TempDir(), 20)
	if filepath.Base(file) != "soap_comparison_rcut = 20.0.csv" {
		Te.Errorf("unexpected file name %s", file)
	}
	if err := WriteMatrixCSVFile(file, names, K); err != nil {
		Te.Fatal(err)
	}
	names2, K2, err := ReadMatrixCSVFile(file)
	if err != nil {
		Te.Fatal(err)
	}
	if !reflect.DeepEqual(names, names2) {
		Te.Errorf("names changed: %q", names2)
	}
	if !mat.Equal(K, K2) {
		Te.Errorf("matrix changed:\n%v\n%v", mat.Formatted(K), mat.Formatted(K2))
	}
	var buf bytes.Buffer
	if err := WriteMatrixCSV(&buf, names[:2], K); err == nil {
		Te.Error("a name count not matching the matrix should fail")
	}
}

func TestCSVHeader(Te *testing.T) {
	var buf bytes.Buffer
	K := mat.NewDense(2, 2, []float64{1, 0.5, 0.5, 1})
	if err := WriteMatrixCSV(&buf, []string{"a", "b"}, K); err != nil {
		Te.Fatal(err)
	}
	want := ",a,b\na,1,0.5\nb,0.5,1\n"
	if buf.String() != want {
		Te.Errorf("got %q expected %q", buf.String(), want)
	}
	bad := bytes.NewBufferString(",a,b\nb,1,0.5\na,0.5,1\n")
	if _, _, err := ReadMatrixCSV(bad); err == nil {
		Te.Error("rows in a different order than the columns should fail")
	}
}

func TestNames(Te *testing.T) {
	fixed := []sweep.Setting{{Param: sweep.LMax, Value: 1}, {Param: sweep.RCut, Value: 10}}
	if got := PlotName("out", "glycine", "time", fixed); got != filepath.Join("out", "glycine_time_lmax=1_rcut=10.0.png") {
		Te.Errorf("plot name %s", got)
	}
	if got := Title(fixed); got != "lmax = 1, rcut = 10.0" {
		Te.Errorf("title %q", got)
	}
	if got := SummaryName("out/soap_comparison_rcut = 20.0.csv"); got != "out/soap_comparison_rcut = 20.0_summary.json" {
		Te.Errorf("summary name %s", got)
	}
}

func TestLinePlot(Te *testing.T) {
	s := sweep.Series{Label: "gto", Records: []sweep.Record{
		{Value: 1, Metric: 8, Elapsed: time.Millisecond},
		{Value: 2, Metric: 20, Elapsed: 3 * time.Millisecond},
		{Value: 3, Metric: 48, Elapsed: 7 * time.Millisecond},
	}}
	lines := TimeLines(s)
	if lines[0].Y[2] != 0.007 {
		Te.Errorf("times in seconds: %v", lines[0].Y)
	}
	lp := &LinePlot{Title: "lmax = 1", XLabel: sweep.NMax.Label(), YLabel: "Width", Lines: append(MetricLines(s), Line{X: []float64{1, 3}, Y: []float64{0, 50}})}
	var buf bytes.Buffer
	if err := lp.WritePNG(&buf); err != nil {
		Te.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		Te.Error("output is not a PNG image")
	}
	name := filepath.Join(Te.TempDir(), "plot.png")
	if err := lp.Save(name); err != nil {
		Te.Fatal(err)
	}
	if _, err := os.Stat(name); err != nil {
		Te.Error(err)
	}
	plan := sweep.Plan{Grid: sweep.IntRange(sweep.LMax, 1, 3), NMax: 4, RCut: 10}
	sp := SweepPlot(plan, "Kernel match", MetricLines(s))
	if sp.Title != "nmax = 4, rcut = 10.0" || sp.XLabel != sweep.LMax.Label() {
		Te.Errorf("wrong sweep plot labels %q %q", sp.Title, sp.XLabel)
	}
	bad := &LinePlot{Lines: []Line{{X: []float64{1}, Y: nil}}}
	if err := bad.Save(name); err == nil {
		Te.Error("lines with mismatched lengths should fail")
	}
}

func TestSummary(Te *testing.T) {
	K := mat.NewSymDense(3, []float64{
		1, 0.2, 0.4,
		0.2, 1, 0.9,
		0.4, 0.9, 1,
	})
	S, err := Summarize([]string{"a", "b", "c"}, K)
	if err != nil {
		Te.Fatal(err)
	}
	if S.Pairs != 3 || math.Abs(S.Mean-0.5) > 1e-12 || S.Min != 0.2 || S.Max != 0.9 {
		Te.Errorf("unexpected summary %+v", S)
	}
	if S.Overall.Total() != 3 || S.PerStructure.View(2, 0).Total() != 2 {
		Te.Errorf("histograms with the wrong number of values")
	}
	for i := 0; i < 3; i++ {
		h := S.PerStructure.View(i, 0)
		if !h.Normalized() || math.Abs(h.Sum()-1) > 1e-12 {
			Te.Errorf("per structure histogram %d not normalized: %v", i, h)
		}
	}
	name := filepath.Join(Te.TempDir(), "s.json")
	if err := S.WriteJSON(name); err != nil {
		Te.Fatal(err)
	}
	b, err := os.ReadFile(name)
	if err != nil {
		Te.Fatal(err)
	}
	var back Summary
	if err := json.Unmarshal(b, &back); err != nil {
		Te.Fatal(err)
	}
	if back.Mean != S.Mean || back.Overall.Total() != 3 {
		Te.Errorf("summary changed in the round trip: %+v", back)
	}
	single, err := Summarize([]string{"a"}, mat.NewDense(1, 1, []float64{1}))
	if err != nil || single.Pairs != 0 {
		Te.Errorf("single structure summary: %+v %v", single, err)
	}
}
