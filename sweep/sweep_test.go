/*
 * sweep_test.go, part of dScribe-tools.
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
	"math"
	"testing"

	chem "github.com/MattB-242/dScribe-tools"
	"github.com/MattB-242/dScribe-tools/soap"
	"gonum.org/v1/gonum/mat"
)

func load(Te *testing.T, name string) *chem.Molecule {
	mol, err := chem.FileRead("../test/" + name)
	if err != nil {
		Te.Fatal(err)
	}
	return mol
}

func TestGrid(Te *testing.T) {
	g := IntRange(NMax, 1, 9)
	if g.Len() != 9 || g.Values[0] != 1 || g.Values[8] != 9 {
		Te.Errorf("bad integer range %v", g.Values)
	}
	l := Linspace(RCut, 2, 15, 20)
	if l.Len() != 20 || l.Values[0] != 2 || l.Values[19] != 15 {
		Te.Errorf("bad linspace %v", l.Values)
	}
	for _, v := range []Grid{g, l} {
		if err := v.Validate(); err != nil {
			Te.Error(err)
		}
	}
	for _, bad := range []Grid{
		{Param: NMax},
		{Param: NMax, Values: []float64{1, 2.5}},
		{Param: RCut, Values: []float64{3, 2}},
		{Param: "sigma", Values: []float64{1}},
	} {
		if err := bad.Validate(); err == nil {
			Te.Errorf("grid %v should be invalid", bad)
		}
	}
	for s, want := range map[Setting]string{
		{RCut, 10}:                 "rcut=10.0",
		{RCut, 2.6842105263157894}: "rcut=2.6842105263157894",
		{LMax, 4}:                  "lmax=4",
	} {
		if s.String() != want {
			Te.Errorf("got %s expected %s", s, want)
		}
	}
	p := Plan{Grid: g, NMax: 7, LMax: 1, RCut: 10}
	f := p.Fixed()
	if len(f) != 2 || f[0].String() != "lmax=1" || f[1].String() != "rcut=10.0" {
		Te.Errorf("fixed parameters %v", f)
	}
}

func TestCost(Te *testing.T) {
	mol := load(Te, "water.xyz")
	D := NewDriver(soap.Options{Species: soap.DerivedSpecies(mol)})
	plan := Plan{Grid: IntRange(NMax, 1, 3), LMax: 1, RCut: 4}
	series, err := D.Cost(mol, plan, []soap.Basis{soap.GTO, soap.Polynomial})
	if err != nil {
		Te.Fatal(err)
	}
	if len(series) != 2 || series[0].Label != "gto" || series[1].Label != "polynomial" {
		Te.Fatalf("unexpected series %v", series)
	}
	for _, s := range series {
		if s.Len() != 3 || len(s.Times()) != 3 {
			Te.Fatalf("expected 3 records, got %d", s.Len())
		}
		for i, r := range s.Records {
			n := float64(2 * (i + 1))
			if r.Value != float64(i+1) {
				Te.Errorf("record %d has value %g", i, r.Value)
			}
			if want := n * (n + 1) / 2 * 2; r.Metric != want {
				Te.Errorf("nmax=%d: width %g, expected %g", i+1, r.Metric, want)
			}
		}
	}
}

func TestPairwise(Te *testing.T) {
	mol := load(Te, "water.xyz")
	D := NewDriver(soap.Options{Species: soap.FixedSpecies})
	plan := Plan{Grid: Linspace(RCut, 3, 5, 3), NMax: 2, LMax: 2}
	res, err := D.Pairwise(mol, mol, plan, DefaultComparisons())
	if err != nil {
		Te.Fatal(err)
	}
	if res.DescDiff.Len() != 3 {
		Te.Errorf("expected 3 descriptor differences, got %d", res.DescDiff.Len())
	}
	for _, v := range res.DescDiff.Metrics() {
		if v != 0 {
			Te.Errorf("descriptors of the same structure differ by %g", v)
		}
	}
	for _, s := range res.Kernels {
		if s.Len() != 3 {
			Te.Fatalf("%s: expected 3 records, got %d", s.Label, s.Len())
		}
		for i, r := range s.Records {
			if i > 0 && r.Value <= s.Records[i-1].Value {
				Te.Errorf("%s: records not ascending", s.Label)
			}
			if math.Abs(r.Metric-1) > 1e-9 {
				Te.Errorf("%s: self-similarity %g", s.Label, r.Metric)
			}
		}
	}
}

type countSink struct {
	n     int
	names map[string]bool
}

func (C *countSink) Put(name string, o soap.Options, desc *mat.Dense) error {
	C.n++
	C.names[name] = true
	return nil
}

func TestSequential(Te *testing.T) {
	mol := load(Te, "water.xyz")
	sink := &countSink{names: map[string]bool{}}
	D := NewDriver(soap.Options{Species: soap.FixedSpecies})
	D.Sink = sink
	plan := Plan{Grid: IntRange(LMax, 1, 4), NMax: 2, RCut: 4}
	series, err := D.Sequential(mol, plan, DefaultComparisons())
	if err != nil {
		Te.Fatal(err)
	}
	if sink.n != 4 || !sink.names["water"] {
		Te.Errorf("sink got %d descriptors %v, expected 4 of water", sink.n, sink.names)
	}
	for _, s := range series {
		if s.Len() != 3 {
			Te.Fatalf("%s: expected 3 records, got %d", s.Label, s.Len())
		}
		for i, r := range s.Records {
			if r.Value != plan.Grid.Values[i+1] {
				Te.Errorf("%s: record %d keyed by %g", s.Label, i, r.Value)
			}
			if math.IsNaN(r.Metric) || math.Abs(r.Metric) > 1+1e-9 {
				Te.Errorf("%s: similarity %g out of range", s.Label, r.Metric)
			}
		}
	}
}

func TestMatrix(Te *testing.T) {
	mols := []*chem.Molecule{load(Te, "water.xyz"), load(Te, "methanol_cell.xyz"), load(Te, "water.xyz")}
	D := NewDriver(soap.Options{Species: soap.FixedSpecies, RCut: 4, NMax: 2, LMax: 2})
	res, err := D.Matrix(mols, DefaultComparisons()[0])
	if err != nil {
		Te.Fatal(err)
	}
	if len(res.Names) != 3 || res.Names[1] != "methanol_cell" {
		Te.Errorf("names %v", res.Names)
	}
	for i := 0; i < 3; i++ {
		if math.Abs(res.K.At(i, i)-1) > 1e-12 {
			Te.Errorf("diagonal element %d is %g", i, res.K.At(i, i))
		}
	}
	if math.Abs(res.K.At(0, 2)-1) > 1e-12 {
		Te.Errorf("equal structures have similarity %g", res.K.At(0, 2))
	}
	if res.K.At(0, 1) >= 1 {
		Te.Errorf("water and methanol have similarity %g", res.K.At(0, 1))
	}
	one, err := D.Matrix(mols[:1], DefaultComparisons()[0])
	if err != nil {
		Te.Fatal(err)
	}
	if r, _ := one.K.Dims(); r != 1 || math.Abs(one.K.At(0, 0)-1) > 1e-12 {
		Te.Errorf("single structure matrix: %v", one.K)
	}
}

func TestAbort(Te *testing.T) {
	mol := load(Te, "water.xyz")
	D := NewDriver(soap.Options{Species: []string{"C", "H"}})
	plan := Plan{Grid: IntRange(NMax, 1, 3), LMax: 1, RCut: 4}
	if _, err := D.Cost(mol, plan, []soap.Basis{soap.GTO}); err == nil {
		Te.Error("a species missing from the list should abort the sweep")
	}
}
