/*
 * driver.go, part of dScribe-tools.
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

package sweep

import (
	"fmt"
	"log/slog"
	"time"

	chem "github.com/MattB-242/dScribe-tools"
	"github.com/MattB-242/dScribe-tools/internal/logger"
	"github.com/MattB-242/dScribe-tools/kernel"
	"github.com/MattB-242/dScribe-tools/soap"
	"gonum.org/v1/gonum/mat"
)

// Comparison is a kernel used in a sweep, with its label and preprocessing.
type Comparison struct {
	Label         string
	Kernel        kernel.Kernel
	NormalizeRows bool //L2-normalize each descriptor row before comparing
}

// DefaultComparisons returns the normalized linear average kernel and the
// rbf REMatch kernel on row-normalized descriptors.
func DefaultComparisons() []Comparison {
	return []Comparison{
		{Label: "Average Kernel", Kernel: kernel.NewAverage()},
		{Label: "REMatch Kernel", Kernel: kernel.NewREMatch(), NormalizeRows: true},
	}
}

// Pair returns the similarity between the descriptor sets a and b.
func (C Comparison) Pair(a, b *mat.Dense) (float64, error) {
	if C.NormalizeRows {
		a = kernel.NormalizeRows(a)
		b = kernel.NormalizeRows(b)
	}
	return kernel.Pair(C.Kernel, a, b)
}

// Sink receives every descriptor a Driver creates.
type Sink interface {
	Put(name string, o soap.Options, desc *mat.Dense) error
}

// Driver runs the sweeps. Base holds the options not set by the
// sweep plans (species, sigma, periodicity, basis).
// The first error in a procedure aborts it.
type Driver struct {
	Base soap.Options
	Log  *slog.Logger
	Sink Sink //can be nil
}

// NewDriver returns a driver with the given base options that logs
// to the default logger.
func NewDriver(base soap.Options) *Driver {
	return &Driver{Base: base, Log: logger.WithComponent("sweep")}
}

// At returns the options for the ith point of plan.
func (D *Driver) At(plan Plan, i int) soap.Options {
	return plan.Grid.Param.Set(plan.Options(D.Base), plan.Grid.Values[i])
}

func (D *Driver) log() *slog.Logger {
	if D.Log == nil {
		return slog.Default()
	}
	return D.Log
}

// describe creates the descriptor of mol with options o, returning
// also the time Create took.
func (D *Driver) describe(mol *chem.Molecule, o soap.Options) (*mat.Dense, time.Duration, error) {
	g, err := soap.New(o)
	if err != nil {
		return nil, 0, err
	}
	start := time.Now()
	desc, err := g.Create(mol)
	elapsed := time.Since(start)
	if err != nil {
		return nil, 0, err
	}
	if D.Sink != nil {
		if err := D.Sink.Put(mol.Name, g.Options(), desc); err != nil {
			return nil, 0, fmt.Errorf("storing descriptor of %s: %w", mol.Name, err)
		}
	}
	return desc, elapsed, nil
}

func pointErr(plan Plan, i int, err error) error {
	s := Setting{Param: plan.Grid.Param, Value: plan.Grid.Values[i]}
	return fmt.Errorf("sweep: at %s: %w", s, err)
}

// Cost creates the descriptor of mol at each point of plan, once per basis.
// It returns one series per basis, in the order of bases, where each record
// holds the descriptor width as metric and the creation time.
func (D *Driver) Cost(mol *chem.Molecule, plan Plan, bases []soap.Basis) ([]Series, error) {
	if err := plan.Grid.Validate(); err != nil {
		return nil, err
	}
	ret := make([]Series, len(bases))
	for j, b := range bases {
		ret[j].Label = string(b)
	}
	for i, v := range plan.Grid.Values {
		for j, b := range bases {
			o := D.At(plan, i)
			o.Basis = b
			desc, elapsed, err := D.describe(mol, o)
			if err != nil {
				return nil, pointErr(plan, i, err)
			}
			rows, cols := desc.Dims()
			ret[j].add(v, float64(cols), elapsed)
			D.log().Debug("descriptor created", "structure", mol.Name, "basis", b, string(plan.Grid.Param), v, "rows", rows, "cols", cols, "time", elapsed)
		}
	}
	for _, s := range ret {
		last := s.Records[len(s.Records)-1]
		D.log().Info("cost sweep done", "basis", s.Label, "param", plan.Grid.Param, "max_width", last.Metric, "last_time", last.Elapsed)
	}
	return ret, nil
}

// PairwiseResult holds the results of a pairwise sweep.
type PairwiseResult struct {
	//One per comparison: the similarity between the two structures, and the
	//time spent comparing.
	Kernels []Series
	//The first element of the second descriptor minus the first element of
	//the first one, and the time spent creating both.
	DescDiff Series
}

// Pairwise creates the descriptors of a and b at each point of plan and compares
// them with every comparison in comps.
func (D *Driver) Pairwise(a, b *chem.Molecule, plan Plan, comps []Comparison) (*PairwiseResult, error) {
	if err := plan.Grid.Validate(); err != nil {
		return nil, err
	}
	ret := &PairwiseResult{Kernels: make([]Series, len(comps)), DescDiff: Series{Label: "descriptor difference"}}
	for j, c := range comps {
		ret.Kernels[j].Label = c.Label
	}
	for i, v := range plan.Grid.Values {
		o := D.At(plan, i)
		da, ta, err := D.describe(a, o)
		if err != nil {
			return nil, pointErr(plan, i, err)
		}
		db, tb, err := D.describe(b, o)
		if err != nil {
			return nil, pointErr(plan, i, err)
		}
		ret.DescDiff.add(v, db.At(0, 0)-da.At(0, 0), ta+tb)
		for j, c := range comps {
			start := time.Now()
			k, err := c.Pair(da, db)
			if err != nil {
				return nil, pointErr(plan, i, fmt.Errorf("%s: %w", c.Label, err))
			}
			ret.Kernels[j].add(v, k, time.Since(start))
		}
		D.log().Debug("pair compared", string(plan.Grid.Param), v)
	}
	return ret, nil
}

// Sequential creates the descriptors of mol at every point of plan and compares each
// one with the one at the previous point, after truncating the later descriptor
// to the width of the earlier. There is one series per comparison, each with
// a record less than points in the grid, keyed by the later value.
func (D *Driver) Sequential(mol *chem.Molecule, plan Plan, comps []Comparison) ([]Series, error) {
	if err := plan.Grid.Validate(); err != nil {
		return nil, err
	}
	descs := make([]*mat.Dense, plan.Grid.Len())
	for i := range plan.Grid.Values {
		var err error
		descs[i], _, err = D.describe(mol, D.At(plan, i))
		if err != nil {
			return nil, pointErr(plan, i, err)
		}
	}
	ret := make([]Series, len(comps))
	for j, c := range comps {
		ret[j].Label = c.Label
	}
	for i := 0; i < len(descs)-1; i++ {
		_, w := descs[i].Dims()
		later, err := kernel.Truncate(descs[i+1], w)
		if err != nil {
			return nil, pointErr(plan, i+1, err)
		}
		for j, c := range comps {
			start := time.Now()
			k, err := c.Pair(descs[i], later)
			if err != nil {
				return nil, pointErr(plan, i+1, fmt.Errorf("%s: %w", c.Label, err))
			}
			ret[j].add(plan.Grid.Values[i+1], k, time.Since(start))
		}
		D.log().Info(fmt.Sprintf("done %d comparisons", i+1), "param", plan.Grid.Param)
	}
	return ret, nil
}

// MatrixResult is the similarity matrix between a set of structures.
type MatrixResult struct {
	Names   []string
	K       *mat.SymDense
	Elapsed time.Duration //creating the descriptors and comparing them
}

// Matrix creates the descriptors of all mols with the base options of the driver
// and compares them all with c.
func (D *Driver) Matrix(mols []*chem.Molecule, c Comparison) (*MatrixResult, error) {
	start := time.Now()
	g, err := soap.New(D.Base)
	if err != nil {
		return nil, err
	}
	sets := make([]*mat.Dense, len(mols))
	for i, m := range mols {
		desc, _, err := D.describe(m, D.Base)
		if err != nil {
			return nil, fmt.Errorf("sweep: structure %s: %w", m.Name, err)
		}
		if c.NormalizeRows {
			desc = kernel.NormalizeRows(desc)
		}
		sets[i] = desc
	}
	K, err := kernel.Create(c.Kernel, sets)
	if err != nil {
		return nil, fmt.Errorf("sweep: %s: %w", c.Label, err)
	}
	elapsed := time.Since(start)
	D.log().Info(fmt.Sprintf("Took %.2g seconds to compare %d structures", elapsed.Seconds(), len(mols)), "rcut", D.Base.RCut, "nmax", D.Base.NMax, "lmax", D.Base.LMax, "features", g.NumFeatures())
	return &MatrixResult{Names: chem.Names(mols), K: K, Elapsed: elapsed}, nil
}
