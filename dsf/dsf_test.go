/*
 * dsf_test.go, part of dScribe-tools.
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

package dsf

import (
	"errors"
	"io"
	"math"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/MattB-242/dScribe-tools/soap"
	"gonum.org/v1/gonum/mat"
)

func TestDSFIO(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "desc.dsf")
	w, err := NewWriter(name, "a-run")
	if err != nil {
		Te.Fatal(err)
	}
	A := mat.NewDense(2, 3, []float64{1, -2.5, math.Pi, 1e-300, 0, 6.02214076e23})
	B := mat.NewDense(1, 2, []float64{0.1, 0.2})
	o := soap.Options{Species: []string{"H", "C", "N", "O"}, RCut: 20, NMax: 16, LMax: 9, Sigma: 1, Periodic: true, Basis: soap.GTO}
	if err := w.Put("glycine", o, A); err != nil {
		Te.Fatal(err)
	}
	if err := w.WNext(map[string]string{"note": "a b=c"}, B); err != nil {
		Te.Fatal(err)
	}
	if err := w.WNext(map[string]string{"bad=key": "x"}, B); err == nil {
		Te.Error("keys with '=' should be rejected")
	}
	if w.Len() != 2 {
		Te.Errorf("writer has %d records, expected 2", w.Len())
	}
	if err := w.Close(); err != nil {
		Te.Fatal(err)
	}
	if err := w.WNext(nil, A); err == nil {
		Te.Error("writing to a closed writer should fail")
	}

	r, err := NewReader(name)
	if err != nil {
		Te.Fatal(err)
	}
	A2, err := r.Next()
	if err != nil {
		Te.Fatal(err)
	}
	if !mat.Equal(A, A2) {
		Te.Errorf("matrix changed:\n%v\n%v", mat.Formatted(A), mat.Formatted(A2))
	}
	h := r.Header()
	if h["name"] != "glycine" || h["run"] != "a-run" {
		Te.Errorf("unexpected header %v", h)
	}
	o2, err := HeaderOptions(h)
	if err != nil {
		Te.Fatal(err)
	}
	if !reflect.DeepEqual(o, o2) {
		Te.Errorf("options changed: %s vs %s", o, o2)
	}
	B2, err := r.Next()
	if err != nil {
		Te.Fatal(err)
	}
	if !mat.Equal(B, B2) || r.Header()["note"] != "a b=c" {
		Te.Errorf("second record: %v %v", mat.Formatted(B2), r.Header())
	}
	if _, err := HeaderOptions(r.Header()); err == nil {
		Te.Error("a header without options should fail")
	}
	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		Te.Errorf("expected EOF, got %v", err)
	}
	if r.Readable() {
		Te.Error("the reader should be closed after the last record")
	}
}

func TestRejectedRecord(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "rejected.dsf")
	w, err := NewWriter(name, "")
	if err != nil {
		Te.Fatal(err)
	}
	A := mat.NewDense(1, 3, []float64{1, 2, 3})
	if err := w.WNext(map[string]string{"name": "first"}, A); err != nil {
		Te.Fatal(err)
	}
	if err := w.WNext(map[string]string{"extra": "x"}, &mat.Dense{}); err == nil {
		Te.Error("an empty matrix should be rejected")
	}
	if err := w.WNext(map[string]string{"name": "good", "bad\nkey": "x"}, A); err == nil {
		Te.Error("a key with a newline should be rejected")
	}
	if err := w.WNext(map[string]string{"name": "good"}, A); err != nil {
		Te.Fatal(err)
	}
	if w.Len() != 2 {
		Te.Errorf("writer has %d records, expected 2", w.Len())
	}
	if err := w.Close(); err != nil {
		Te.Fatal(err)
	}
	r, err := NewReader(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer r.Close()
	for _, want := range []string{"first", "good"} {
		if _, err := r.Next(); err != nil {
			Te.Fatal(err)
		}
		if h := r.Header(); !reflect.DeepEqual(h, map[string]string{"name": want}) {
			Te.Errorf("rejected records leaked into the header: %v", h)
		}
	}
}
