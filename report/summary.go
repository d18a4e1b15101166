/*
 * summary.go, part of dScribe-tools.
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
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/MattB-242/dScribe-tools/histo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// SummaryBins is the number of bins in the similarity histograms.
const SummaryBins = 20

// Summary describes the similarities between different structures in a
// similarity matrix.
type Summary struct {
	Names []string `json:"structures"`
	Pairs int      `json:"pairs"`
	Mean  float64  `json:"mean"`
	Std   float64  `json:"std"`
	Min   float64  `json:"min"`
	Max   float64  `json:"max"`
	//One histogram per structure, with its similarities to the others,
	//normalized so each sums to 1.
	PerStructure *histo.Matrix `json:"per_structure,omitempty"`
	//The similarities of all the different pairs.
	Overall *histo.Data `json:"overall,omitempty"`
}

// Summarize returns the summary of the off-diagonal elements of
// the square matrix K, whose rows and columns correspond to names.
func Summarize(names []string, K mat.Matrix) (*Summary, error) {
	n, c := K.Dims()
	if n != c || n != len(names) {
		return nil, fmt.Errorf("report: %dx%d matrix for %d names", n, c, len(names))
	}
	S := &Summary{Names: names}
	vals := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			vals = append(vals, K.At(i, j))
		}
	}
	S.Pairs = len(vals)
	if S.Pairs == 0 {
		return S, nil
	}
	S.Mean, S.Std = stat.MeanStdDev(vals, nil)
	if S.Pairs == 1 {
		S.Std = 0
	}
	S.Min = floats.Min(vals)
	S.Max = floats.Max(vals)
	div := histo.Dividers(math.Min(0, S.Min), math.Max(1, S.Max), SummaryBins)
	S.Overall = histo.NewData(div, vals)
	S.PerStructure = histo.NewMatrix(n, 1, div)
	for i := 0; i < n; i++ {
		others := make([]float64, 0, n-1)
		for j := 0; j < n; j++ {
			if j != i {
				others = append(others, K.At(i, j))
			}
		}
		S.PerStructure.NewHisto(i, 0, nil, others, i)
	}
	S.PerStructure.NormalizeAll()
	return S, nil
}

// SummaryName returns the name of the JSON summary file for the CSV file csvname.
func SummaryName(csvname string) string {
	return strings.TrimSuffix(csvname, ".csv") + "_summary.json"
}

// WriteJSON writes the summary, indented, to the file name.
func (S *Summary) WriteJSON(name string) error {
	b, err := json.MarshalIndent(S, "", "  ")
	if err != nil {
		return fmt.Errorf("report: encoding summary: %w", err)
	}
	return os.WriteFile(name, append(b, '\n'), 0o644)
}
