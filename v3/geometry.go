/*
 * geometry.go, part of dScribe-tools.
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

package v3

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

//Cross puts the cross product of the first vecs of a and b in the first vec of F. Panics if error.
func (F *Matrix) Cross(a, b *Matrix) {
	if a.NVecs() < 1 || b.NVecs() < 1 || F.NVecs() < 1 {
		panic(ErrNoCrossProduct)
	}
	x := a.At(0, 1)*b.At(0, 2) - a.At(0, 2)*b.At(0, 1)
	y := a.At(0, 2)*b.At(0, 0) - a.At(0, 0)*b.At(0, 2)
	z := a.At(0, 0)*b.At(0, 1) - a.At(0, 1)*b.At(0, 0)
	F.Set(0, 0, x)
	F.Set(0, 1, y)
	F.Set(0, 2, z)
}

// Dot returns the dot product of the first vecs of a and b.
func Dot(a, b *Matrix) float64 {
	return a.At(0, 0)*b.At(0, 0) + a.At(0, 1)*b.At(0, 1) + a.At(0, 2)*b.At(0, 2)
}

// Norm returns the euclidean norm of the first vec of a.
func Norm(a *Matrix) float64 {
	return math.Sqrt(Dot(a, a))
}

//Det returns the determinant of a 3x3 matrix. Panics if the matrix is not 3x3.
func Det(A mat.Matrix) float64 {
	r, c := A.Dims()
	if r != 3 || c != 3 {
		panic(ErrDeterminant)
	}
	return (A.At(0, 0)*(A.At(1, 1)*A.At(2, 2)-A.At(2, 1)*A.At(1, 2)) - A.At(1, 0)*(A.At(0, 1)*A.At(2, 2)-A.At(2, 1)*A.At(0, 2)) + A.At(2, 0)*(A.At(0, 1)*A.At(1, 2)-A.At(1, 1)*A.At(0, 2)))
}

// CellFromParameters returns the lattice vectors (as rows) of the cell with lengths
// a, b, c (Angstrom) and angles alpha, beta, gamma (degrees). The a vector lies along x
// and b lies in the xy plane.
func CellFromParameters(a, b, c, alpha, beta, gamma float64) (*Matrix, error) {
	if a <= 0 || b <= 0 || c <= 0 {
		return nil, Error{fmt.Sprintf("Cell lengths must be positive: %g %g %g", a, b, c), []string{"CellFromParameters"}, true}
	}
	const d2r = math.Pi / 180
	ca, cb, cg := math.Cos(alpha*d2r), math.Cos(beta*d2r), math.Cos(gamma*d2r)
	sg := math.Sin(gamma * d2r)
	if math.Abs(sg) <= appzero {
		return nil, Error{fmt.Sprintf("Degenerate cell angle gamma=%g", gamma), []string{"CellFromParameters"}, true}
	}
	cx := c * cb
	cy := c * (ca - cb*cg) / sg
	cz2 := c*c - cx*cx - cy*cy
	if cz2 <= appzero {
		return nil, Error{fmt.Sprintf("Cell angles %g %g %g don't define a cell", alpha, beta, gamma), []string{"CellFromParameters"}, true}
	}
	cell := []float64{
		a, 0, 0,
		b * cg, b * sg, 0,
		cx, cy, math.Sqrt(cz2),
	}
	for i, v := range cell {
		if math.Abs(v) <= appzero {
			cell[i] = 0
		}
	}
	return NewMatrix(cell)
}

// FracToCart puts in F the cartesian coordinates corresponding to the fractional
// coordinates frac in the cell given by the lattice vectors (rows) in cell.
func (F *Matrix) FracToCart(frac, cell *Matrix) {
	if cell.NVecs() != 3 || F.NVecs() != frac.NVecs() {
		panic(ErrShape)
	}
	F.Dense.Mul(frac.Dense, cell.Dense)
}

// Heights returns the perpendicular widths of the cell along each lattice vector, i.e.
// the distances between opposite faces. The number of periodic images needed to cover
// a sphere of radius r along lattice vector i is ceil(r/h[i]).
func Heights(cell *Matrix) ([3]float64, error) {
	var h [3]float64
	if cell == nil || cell.NVecs() != 3 {
		return h, Error{"A cell needs exactly 3 lattice vectors", []string{"Heights"}, true}
	}
	vol := math.Abs(Det(cell))
	if vol <= appzero {
		return h, Error{"Cell has zero volume", []string{"Heights"}, true}
	}
	cr := Zeros(1)
	for i := 0; i < 3; i++ {
		cr.Cross(cell.VecView((i+1)%3), cell.VecView((i+2)%3))
		h[i] = vol / Norm(cr)
	}
	return h, nil
}
