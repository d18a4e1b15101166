/*
 * basis.go, part of dScribe-tools.
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

package soap

import (
	"fmt"
	"math"

	"github.com/MattB-242/dScribe-tools/internal/logger"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mat"
)

// quadPoints is the number of Gauss-Legendre nodes for the radial integrals.
const quadPoints = 100

// gridExtent is how far past rcut, in units of sigma, the GTO radial integrals extend.
// The polynomial basis is zero at rcut.
const gridExtent = 3.0

// condWarn is the overlap condition number above which the orthonormalized
// functions are no longer orthonormal to more than a few digits.
const condWarn = 1e10

// radialBasis holds the orthonormal radial functions on the quadrature grid.
// The stored values already include the quadrature weight and the r^2 factor
// of the integral, so an integral is a plain sum over the grid.
type radialBasis struct {
	r    []float64 //nodes
	cond float64   //largest overlap condition number over all l

	//weighted[l] is an nmax x len(r) matrix. For the polynomial basis, all
	//the l share the same matrix.
	weighted []*mat.Dense
}

// newRadialBasis builds the basis for the given (validated) options.
func newRadialBasis(o Options) (*radialBasis, error) {
	rmax := o.RCut
	if o.Basis == GTO {
		rmax += gridExtent * o.Sigma
	}
	b := &radialBasis{
		r:        make([]float64, quadPoints),
		weighted: make([]*mat.Dense, o.LMax+1),
	}
	w := make([]float64, quadPoints)
	quad.Legendre{}.FixedLocations(b.r, w, 0, rmax)
	switch o.Basis {
	case Polynomial:
		g, cond, err := polynomialBasis(o.RCut, o.NMax, b.r)
		if err != nil {
			return nil, err
		}
		b.cond = cond
		weight(g, b.r, w)
		for l := range b.weighted {
			b.weighted[l] = g
		}
	default:
		for l := range b.weighted {
			g, cond, err := gtoBasis(o.RCut, o.NMax, l, b.r)
			if err != nil {
				return nil, err
			}
			b.cond = math.Max(b.cond, cond)
			weight(g, b.r, w)
			b.weighted[l] = g
		}
	}
	log := logger.WithComponent("soap")
	args := []any{"basis", string(o.Basis), "rcut", o.RCut, "nmax", o.NMax, "lmax", o.LMax, "cond", b.cond}
	if b.cond > condWarn {
		log.Warn("radial basis overlap is ill-conditioned, basis functions are only approximately orthonormal", args...)
	} else {
		log.Debug("radial basis built", args...)
	}
	return b, nil
}

// weight multiplies each column of g by w*r^2.
func weight(g *mat.Dense, r, w []float64) {
	g.Apply(func(i, j int, v float64) float64 {
		return v * w[j] * r[j] * r[j]
	}, g)
}

// GTOExponents returns the exponents of the primitive gaussians r^l exp(-alpha r^2)
// of the GTO basis for the given l. Each primitive falls to 1e-3 of its value at
// a_k, where the a_k are nmax values evenly spaced between 1 and rcut.
func GTOExponents(rcut float64, nmax, l int) []float64 {
	alphas := make([]float64, nmax)
	for k := range alphas {
		a := 1.0
		if nmax > 1 {
			a = 1 + (rcut-1)*float64(k)/float64(nmax-1)
		}
		alphas[k] = -math.Log(1e-3/math.Pow(a, float64(l))) / (a * a)
	}
	return alphas
}

// gtoBasis returns the orthonormal GTO functions for angular momentum l evaluated at r,
// as an nmax x len(r) matrix, and the condition number of the primitive overlap.
func gtoBasis(rcut float64, nmax, l int, r []float64) (*mat.Dense, float64, error) {
	alphas := GTOExponents(rcut, nmax, l)
	fl := float64(l)
	gl := math.Gamma(fl + 1.5)
	s := mat.NewSymDense(nmax, nil)
	for i, ai := range alphas {
		for j := i; j < nmax; j++ {
			s.SetSym(i, j, gl/(2*math.Pow(ai+alphas[j], fl+1.5)))
		}
	}
	prim := mat.NewDense(nmax, len(r), nil)
	for k, a := range alphas {
		for q, x := range r {
			prim.Set(k, q, math.Pow(x, fl)*math.Exp(-a*x*x))
		}
	}
	return orthonormalize(s, prim)
}

// polynomialBasis returns the orthonormal functions built from (rcut-r)^(k+2), k=1..nmax,
// evaluated at r, as an nmax x len(r) matrix. They vanish past rcut.
// The condition number of the primitive overlap is also returned.
func polynomialBasis(rcut float64, nmax int, r []float64) (*mat.Dense, float64, error) {
	s := mat.NewSymDense(nmax, nil)
	for i := 0; i < nmax; i++ {
		for j := i; j < nmax; j++ {
			a := float64(i + 1)
			b := float64(j + 1)
			s.SetSym(i, j, 2*math.Pow(rcut, a+b+7)/((a+b+5)*(a+b+6)*(a+b+7)))
		}
	}
	prim := mat.NewDense(nmax, len(r), nil)
	for k := 0; k < nmax; k++ {
		for q, x := range r {
			if x >= rcut {
				continue
			}
			prim.Set(k, q, math.Pow(rcut-x, float64(k+3)))
		}
	}
	return orthonormalize(s, prim)
}

// orthonormalize returns S^-1/2 prim, where S is the overlap matrix of the primitive
// functions whose values are the rows of prim.
// The primitives are normalized first, as their norms can differ by many
// orders of magnitude. The condition number of the normalized overlap is
// returned along with the functions.
func orthonormalize(s *mat.SymDense, prim *mat.Dense) (*mat.Dense, float64, error) {
	n := s.SymmetricDim()
	norms := make([]float64, n)
	for i := range norms {
		norms[i] = 1 / math.Sqrt(s.At(i, i))
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, s.At(i, j)*norms[i]*norms[j])
		}
	}
	prim.Apply(func(i, j int, v float64) float64 {
		return v * norms[i]
	}, prim)
	isq, cond, err := invSqrt(s)
	if err != nil {
		return nil, 0, err
	}
	ret := new(mat.Dense)
	ret.Mul(isq, prim)
	return ret, cond, nil
}

// invSqrt returns S^-1/2 for the symmetric positive definite matrix S,
// and the condition number of S (largest over smallest eigenvalue).
func invSqrt(s *mat.SymDense) (*mat.Dense, float64, error) {
	var eig mat.EigenSym
	if ok := eig.Factorize(s, true); !ok {
		return nil, 0, fmt.Errorf("soap: radial basis overlap matrix could not be diagonalized")
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	n := len(vals)
	max := vals[n-1] //ascending order
	for _, v := range vals {
		if v <= max*1e-15 {
			return nil, 0, fmt.Errorf("soap: radial basis is linearly dependent (overlap eigenvalue %g)", v)
		}
	}
	d := mat.NewDiagDense(n, nil)
	for i, v := range vals {
		d.SetDiag(i, 1/math.Sqrt(v))
	}
	ret := new(mat.Dense)
	ret.Product(&vecs, d, vecs.T())
	return ret, max / vals[0], nil
}
