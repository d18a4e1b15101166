/*
 * v3_test.go
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
 */

package v3

import (
	"math"
	"testing"
)

func TestNewMatrix(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 3 {
		Te.Errorf("expected 3 vecs, got %d", A.NVecs())
	}
	View := A.VecView(1)
	View.Set(0, 0, 100)
	if A.At(1, 0) != 100 {
		Te.Errorf("view didn't write through: %v", A)
	}
	if _, err := NewMatrix([]float64{1, 2}); err == nil {
		Te.Error("expected an error for a slice not divisible by 3")
	}
}

func TestCross(Te *testing.T) {
	x, _ := NewMatrix([]float64{1, 0, 0})
	y, _ := NewMatrix([]float64{0, 1, 0})
	z := Zeros(1)
	z.Cross(x, y)
	if z.At(0, 0) != 0 || z.At(0, 1) != 0 || z.At(0, 2) != 1 {
		Te.Errorf("x cross y should be z, got %v", z)
	}
	//aliasing the receiver with an operand must work.
	x.Cross(x, y)
	if x.At(0, 2) != 1 {
		Te.Errorf("aliased cross product failed: %v", x)
	}
}

func TestCellFromParameters(Te *testing.T) {
	cell, err := CellFromParameters(2, 3, 4, 90, 90, 90)
	if err != nil {
		Te.Fatal(err)
	}
	if d := Det(cell); math.Abs(d-24) > 1e-9 {
		Te.Errorf("orthorhombic volume should be 24, got %g", d)
	}
	h, err := Heights(cell)
	if err != nil {
		Te.Fatal(err)
	}
	for i, want := range []float64{2, 3, 4} {
		if math.Abs(h[i]-want) > 1e-9 {
			Te.Errorf("height %d: want %g got %g", i, want, h[i])
		}
	}
	hex, err := CellFromParameters(1, 1, 5, 90, 90, 120)
	if err != nil {
		Te.Fatal(err)
	}
	frac, _ := NewMatrix([]float64{1, 1, 0})
	cart := Zeros(1)
	cart.FracToCart(frac, hex)
	if math.Abs(Norm(cart)-1) > 1e-9 {
		Te.Errorf("a+b in a 120 degree cell should have unit length, got %g", Norm(cart))
	}
	if _, err := CellFromParameters(0, 1, 1, 90, 90, 90); err == nil {
		Te.Error("expected an error for a zero length")
	}
}
