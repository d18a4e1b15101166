/*
 * kernel_test.go, part of dScribe-tools.
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
	"math"
	"testing"

	chem "github.com/MattB-242/dScribe-tools"
	"github.com/MattB-242/dScribe-tools/soap"
	"github.com/MattB-242/dScribe-tools/v3"
	"gonum.org/v1/gonum/mat"
)

func set() *mat.Dense {
	return mat.NewDense(3, 4, []float64{
		0.2, 1.1, 0.0, 0.5,
		1.0, 0.3, 0.7, 0.1,
		0.4, 0.4, 0.9, 0.8,
	})
}

func TestSelfSimilarity(Te *testing.T) {
	A := set()
	for _, k := range []Kernel{NewAverage(), NewREMatch(), &Average{Metric: Metric{Kind: Cosine}}} {
		K, err := Create(k, []*mat.Dense{A, A})
		if err != nil {
			Te.Fatal(err)
		}
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				if math.Abs(K.At(i, j)-1) > 1e-12 {
					Te.Errorf("%s: element %d,%d of the self-similarity is %g", k, i, j, K.At(i, j))
				}
			}
		}
	}
}

func TestAverage(Te *testing.T) {
	A := mat.NewDense(1, 2, []float64{1, 0})
	B := mat.NewDense(2, 2, []float64{0, 1, 1, 1})
	k := NewAverage()
	p, err := Pair(k, A, B)
	if err != nil {
		Te.Fatal(err)
	}
	if want := 0.5 / math.Sqrt(1.25); math.Abs(p-want) > 1e-12 {
		Te.Errorf("normalized average similarity %g, expected %g", p, want)
	}
	k.NoNormalize = true
	ab, _ := k.Global(A, B)
	ba, _ := k.Global(B, A)
	if ab != 0.5 || ba != 0.5 {
		Te.Errorf("average similarity should be 0.5 both ways, got %g and %g", ab, ba)
	}
}

// Changing the order of the environments doesn't change REMatch similarities.
func TestREMatchPermutation(Te *testing.T) {
	A := set()
	P := mat.NewDense(3, 3, []float64{0, 0, 1, 1, 0, 0, 0, 1, 0})
	PA := new(mat.Dense)
	PA.Mul(P, A)
	B := mat.NewDense(2, 4, []float64{1, 1, 1, 1, 0, 0.5, 0, 0.5})
	k := NewREMatch()
	p, err := Pair(k, NormalizeRows(A), NormalizeRows(PA))
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(p-1) > 1e-9 {
		Te.Errorf("permuted environments should be identical, similarity %g", p)
	}
	pb, err := Pair(k, NormalizeRows(A), NormalizeRows(B))
	if err != nil {
		Te.Fatal(err)
	}
	if pb <= 0 || pb > 1 {
		Te.Errorf("similarity out of (0,1]: %g", pb)
	}
	k.MaxIter = 1
	if _, err := k.Global(A, B); !errors.Is(err, ErrNoConvergence) {
		Te.Errorf("expected a convergence error, got %v", err)
	}
}

func TestCreateErrors(Te *testing.T) {
	A := set()
	B := mat.NewDense(1, 3, []float64{1, 2, 3})
	if _, err := Create(NewAverage(), []*mat.Dense{A, B}); !errors.Is(err, ErrWidthMismatch) {
		Te.Errorf("expected a width mismatch, got %v", err)
	}
	if _, err := Create(NewAverage(), nil); !errors.Is(err, ErrTooFewSets) {
		Te.Errorf("expected too few sets, got %v", err)
	}
	if _, err := Create(NewAverage(), []*mat.Dense{A, {}}); !errors.Is(err, ErrEmptySet) {
		Te.Errorf("expected an empty set error, got %v", err)
	}
	if _, err := Parse("dot"); err == nil {
		Te.Error("unknown kernel names should fail")
	}
}

func TestTruncate(Te *testing.T) {
	A := mat.NewDense(2, 5, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	for _, w := range []int{1, 3, 5} {
		T, err := Truncate(A, w)
		if err != nil {
			Te.Fatalf("truncating to %d: %v", w, err)
		}
		if r, c := T.Dims(); r != 2 || c != w {
			Te.Errorf("truncated matrix is %dx%d", r, c)
		}
		if T.At(1, w-1) != A.At(1, w-1) {
			Te.Errorf("truncation changed the values")
		}
	}
	if _, err := Truncate(A, 0); !errors.Is(err, ErrEmptyWidth) {
		Te.Errorf("expected ErrEmptyWidth, got %v", err)
	}
	if _, err := Truncate(A, 6); !errors.Is(err, ErrWidthExceeded) {
		Te.Errorf("expected ErrWidthExceeded, got %v", err)
	}
	B := mat.NewDense(3, 3, nil)
	a, b, err := Align(A, B)
	if err != nil {
		Te.Fatal(err)
	}
	if _, ca := a.Dims(); ca != 3 {
		Te.Errorf("aligned width %d, expected 3", ca)
	}
	if rb, cb := b.Dims(); rb != 3 || cb != 3 {
		Te.Errorf("the narrower set should be unchanged, got %dx%d", rb, cb)
	}
}

func TestNormalizeRows(Te *testing.T) {
	A := mat.NewDense(2, 2, []float64{3, 4, 0, 0})
	N := NormalizeRows(A)
	want := mat.NewDense(2, 2, []float64{0.6, 0.8, 0, 0})
	if !mat.EqualApprox(N, want, 1e-15) {
		Te.Errorf("got %v", mat.Formatted(N))
	}
	if A.At(0, 0) != 3 {
		Te.Error("NormalizeRows modified its argument")
	}
}

// Two identical structures of two overlapping atoms are identical
// for the average kernel.
func TestIdenticalStructures(Te *testing.T) {
	mols := make([]*chem.Molecule, 2)
	for i := range mols {
		coords, _ := v3.NewMatrix([]float64{0, 0, 0, 0, 0, 0})
		top := chem.NewTopology(0, 1, []*chem.Atom{{Symbol: "H"}, {Symbol: "H"}})
		mol, err := chem.NewMolecule(coords, top, nil)
		if err != nil {
			Te.Fatal(err)
		}
		mols[i] = mol
	}
	g, err := soap.New(soap.Options{Species: soap.DerivedSpecies(mols...), RCut: 4, NMax: 3, LMax: 2})
	if err != nil {
		Te.Fatal(err)
	}
	sets := make([]*mat.Dense, 2)
	for i, m := range mols {
		if sets[i], err = g.Create(m); err != nil {
			Te.Fatal(err)
		}
	}
	p, err := Pair(NewAverage(), sets[0], sets[1])
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(p-1) > 1e-12 {
		Te.Errorf("identical structures have similarity %g", p)
	}
}
