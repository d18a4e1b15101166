/*
 * soap.go, part of dScribe-tools.
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
	"sort"

	chem "github.com/MattB-242/dScribe-tools"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Generator creates SOAP descriptors for a fixed set of options.
// A Generator keeps no state between calls to Create.
type Generator struct {
	opts    Options
	species []string //sorted by atomic number
	index   map[string]int
	basis   *radialBasis
	pairs   [][2]int //species pairs, in output order
	nfeat   int
}

// New returns a generator for the given options, which are validated.
func New(o Options) (*Generator, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	sp := make([]string, len(o.Species))
	copy(sp, o.Species)
	sort.SliceStable(sp, func(i, j int) bool {
		zi, _ := chem.AtomicNumber(sp[i])
		zj, _ := chem.AtomicNumber(sp[j])
		return zi < zj
	})
	o.Species = sp
	G := &Generator{opts: o, species: sp, index: make(map[string]int, len(sp))}
	for i, s := range sp {
		G.index[s] = i
	}
	for i := range sp {
		for j := i; j < len(sp); j++ {
			if i != j && o.NoCrossover {
				continue
			}
			G.pairs = append(G.pairs, [2]int{i, j})
		}
	}
	for _, p := range G.pairs {
		G.nfeat += G.pairFeatures(p)
	}
	var err error
	G.basis, err = newRadialBasis(o)
	if err != nil {
		return nil, fmt.Errorf("soap: building %s basis with nmax=%d lmax=%d rcut=%g: %w", o.Basis, o.NMax, o.LMax, o.RCut, err)
	}
	return G, nil
}

// pairFeatures is the number of power spectrum components for a species pair.
func (G *Generator) pairFeatures(p [2]int) int {
	n := G.opts.NMax
	l := G.opts.LMax + 1
	if p[0] == p[1] {
		return n * (n + 1) / 2 * l
	}
	return n * n * l
}

// Options returns the (validated) options of the generator.
func (G *Generator) Options() Options {
	return G.opts
}

// Species returns the species of the generator, sorted by atomic number.
func (G *Generator) Species() []string {
	ret := make([]string, len(G.species))
	copy(ret, G.species)
	return ret
}

// NumFeatures returns the number of columns of the descriptors,
// (S*nmax)(S*nmax+1)/2*(lmax+1) for S species.
func (G *Generator) NumFeatures() int {
	return G.nfeat
}

// Create returns the SOAP descriptor of mol: one row per atom, NumFeatures() columns.
// It is an error for mol to contain species not in the generator's list, or to
// lack a cell if the generator is periodic.
func (G *Generator) Create(mol *chem.Molecule) (*mat.Dense, error) {
	if mol == nil || mol.Len() == 0 {
		return nil, fmt.Errorf("soap: empty structure")
	}
	if G.opts.Periodic && mol.Cell == nil {
		return nil, fmt.Errorf("soap: periodic descriptor requested for %s, which has no cell", mol.Name)
	}
	spidx, err := speciesIndexes(mol, G.index)
	if err != nil {
		return nil, err
	}
	cell := mol.Cell
	if !G.opts.Periodic {
		cell = nil
	}
	neighs, err := neighborLists(mol.Coords, cell, spidx, G.opts.RCut)
	if err != nil {
		return nil, err
	}
	ret := mat.NewDense(mol.Len(), G.nfeat, nil)
	c := make([]float64, len(G.species)*G.opts.NMax*G.lmsize())
	w := newWorkspace(G.opts)
	for i, n := range neighs {
		for k := range c {
			c[k] = 0
		}
		G.expand(c, n, w)
		G.powerSpectrum(ret.RawRowView(i), c)
	}
	return ret, nil
}

func (G *Generator) lmsize() int {
	return (G.opts.LMax + 1) * (G.opts.LMax + 1)
}

// workspace holds the buffers used for one neighbor.
type workspace struct {
	ylm      []float64
	bessel   []float64
	integral *mat.Dense //nmax x (lmax+1)
}

func newWorkspace(o Options) *workspace {
	l := o.LMax + 1
	return &workspace{
		ylm:      make([]float64, l*l),
		bessel:   make([]float64, l),
		integral: mat.NewDense(o.NMax, l, nil),
	}
}

// coeffs returns the slice of c with the coefficients of species s and radial function n.
func (G *Generator) coeffs(c []float64, s, n int) []float64 {
	lm := G.lmsize()
	off := (s*G.opts.NMax + n) * lm
	return c[off : off+lm]
}

// expand adds to c the expansion coefficients of the gaussian density
// of the neighbors.
func (G *Generator) expand(c []float64, neighs []neighbor, w *workspace) {
	o := G.opts
	twosig2 := 2 * o.Sigma * o.Sigma
	sig2 := o.Sigma * o.Sigma
	//beyond this, exp(-(r-d)^2/2s^2) is below 1e-16 of its maximum.
	window := math.Sqrt(twosig2 * 37)
	r := G.basis.r
	for _, nb := range neighs {
		w.integral.Zero()
		if nb.dist == 0 {
			g := G.basis.weighted[0]
			for n := 0; n < o.NMax; n++ {
				var sum float64
				for q, x := range r {
					sum += g.At(n, q) * math.Exp(-x*x/twosig2)
				}
				//Y_00 is constant.
				G.coeffs(c, nb.species, n)[0] += 4 * math.Pi * sum / (2 * math.Sqrt(math.Pi))
			}
			continue
		}
		for q, x := range r {
			if math.Abs(x-nb.dist) > window {
				continue
			}
			gauss := math.Exp(-(x - nb.dist) * (x - nb.dist) / twosig2)
			scaledBessel(w.bessel, x*nb.dist/sig2)
			for l, b := range w.bessel {
				f := gauss * b
				if f == 0 {
					continue
				}
				g := G.basis.weighted[l]
				for n := 0; n < o.NMax; n++ {
					w.integral.Set(n, l, w.integral.At(n, l)+g.At(n, q)*f)
				}
			}
		}
		realHarmonics(w.ylm, nb.dir, o.LMax)
		for n := 0; n < o.NMax; n++ {
			cn := G.coeffs(c, nb.species, n)
			for l := 0; l <= o.LMax; l++ {
				in := 4 * math.Pi * w.integral.At(n, l)
				for m := -l; m <= l; m++ {
					cn[lmIndex(l, m)] += in * w.ylm[lmIndex(l, m)]
				}
			}
		}
	}
}

// powerSpectrum puts in dst the power spectrum of the coefficients c.
func (G *Generator) powerSpectrum(dst, c []float64) {
	o := G.opts
	pre := make([]float64, o.LMax+1)
	for l := range pre {
		pre[l] = math.Pi * math.Sqrt(8/float64(2*l+1))
	}
	k := 0
	for _, p := range G.pairs {
		for n := 0; n < o.NMax; n++ {
			c1 := G.coeffs(c, p[0], n)
			start := 0
			if p[0] == p[1] {
				start = n
			}
			for n2 := start; n2 < o.NMax; n2++ {
				c2 := G.coeffs(c, p[1], n2)
				for l := 0; l <= o.LMax; l++ {
					from, to := lmIndex(l, -l), lmIndex(l, l)+1
					dst[k] = pre[l] * floats.Dot(c1[from:to], c2[from:to])
					k++
				}
			}
		}
	}
}
