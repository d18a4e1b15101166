/*
 * align.go, part of dScribe-tools.
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

package kernel

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrEmptyWidth    = errors.New("kernel: can't truncate descriptors to zero columns")
	ErrWidthExceeded = errors.New("kernel: truncation width exceeds the descriptor width")
)

// Truncate returns a copy of the first width columns of A.
// This is only an approximation when A and the set it is to be compared with
// were created with different parameters: the columns don't correspond to
// the same basis functions. Nothing checks that.
func Truncate(A mat.Matrix, width int) (*mat.Dense, error) {
	r, c := A.Dims()
	if width <= 0 {
		return nil, fmt.Errorf("%w (requested %d)", ErrEmptyWidth, width)
	}
	if width > c {
		return nil, fmt.Errorf("%w: requested %d, available %d", ErrWidthExceeded, width, c)
	}
	ret := mat.NewDense(r, width, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < width; j++ {
			ret.Set(i, j, A.At(i, j))
		}
	}
	return ret, nil
}

// Align returns A and B truncated to the smaller of their widths.
func Align(A, B mat.Matrix) (*mat.Dense, *mat.Dense, error) {
	_, ca := A.Dims()
	_, cb := B.Dims()
	w := ca
	if cb < w {
		w = cb
	}
	a, err := Truncate(A, w)
	if err != nil {
		return nil, nil, err
	}
	b, err := Truncate(B, w)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// NormalizeRows returns a copy of A where each row has unit L2 norm.
// Rows of zeros are left as they are.
func NormalizeRows(A mat.Matrix) *mat.Dense {
	ret := mat.DenseCopyOf(A)
	r, _ := ret.Dims()
	for i := 0; i < r; i++ {
		row := ret.RawRowView(i)
		n := floats.Norm(row, 2)
		if n == 0 {
			continue
		}
		floats.Scale(1/n, row)
	}
	return ret
}
