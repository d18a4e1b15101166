/*
 * csv.go, part of dScribe-tools.
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

// Package report writes the results of comparisons and sweeps: similarity
// matrices as CSV tables with a JSON summary, and sweep series as line plots.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/MattB-242/dScribe-tools/sweep"
	"gonum.org/v1/gonum/mat"
)

// MatrixCSVName returns the name of the file for a similarity matrix computed with
// the given rcut, in the directory dir.
func MatrixCSVName(dir string, rcut float64) string {
	return filepath.Join(dir, fmt.Sprintf("soap_comparison_rcut = %s.csv", sweep.FormatFloat(rcut)))
}

// WriteMatrixCSV writes the square matrix K to w as CSV. The first row holds
// an empty cell and the names; every other row starts with the name of the structure.
// Values are written so they read back exactly.
func WriteMatrixCSV(w io.Writer, names []string, K mat.Matrix) error {
	r, c := K.Dims()
	if r != c || r != len(names) {
		return fmt.Errorf("report: %dx%d matrix for %d names", r, c, len(names))
	}
	cw := csv.NewWriter(w)
	record := make([]string, 0, len(names)+1)
	record = append(record, "")
	record = append(record, names...)
	if err := cw.Write(record); err != nil {
		return err
	}
	for i, name := range names {
		record = record[:0]
		record = append(record, name)
		for j := 0; j < c; j++ {
			record = append(record, strconv.FormatFloat(K.At(i, j), 'g', -1, 64))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMatrixCSVFile writes K to the file name.
func WriteMatrixCSVFile(name string, names []string, K mat.Matrix) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := WriteMatrixCSV(f, names, K); err != nil {
		f.Close()
		return fmt.Errorf("report: writing %s: %w", name, err)
	}
	return f.Close()
}

// ReadMatrixCSV reads a matrix written by WriteMatrixCSV, returning the names and the matrix.
func ReadMatrixCSV(r io.Reader) ([]string, *mat.Dense, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("report: reading matrix: %w", err)
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("report: matrix file needs a header and at least one row")
	}
	header := records[0]
	names := header[1:]
	n := len(names)
	if len(records)-1 != n {
		return nil, nil, fmt.Errorf("report: %d rows for %d names", len(records)-1, n)
	}
	K := mat.NewDense(n, n, nil)
	for i, rec := range records[1:] {
		if rec[0] != names[i] {
			return nil, nil, fmt.Errorf("report: row %d is labeled %q, column %d %q", i, rec[0], i, names[i])
		}
		for j, v := range rec[1:] {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("report: element %d,%d: %w", i, j, err)
			}
			K.Set(i, j, f)
		}
	}
	return names, K, nil
}

// ReadMatrixCSVFile reads the matrix in the file name.
func ReadMatrixCSVFile(name string) ([]string, *mat.Dense, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return ReadMatrixCSV(f)
}
