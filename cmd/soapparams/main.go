/*
 * main.go, part of dScribe-tools.
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

// soapparams measures the cost of the SOAP descriptor of a structure (creation
// time and descriptor width) against nmax, lmax and rcut, for the GTO and the
// polynomial radial bases, and plots it.
package main

import (
	chem "github.com/MattB-242/dScribe-tools"
	"github.com/MattB-242/dScribe-tools/internal/cli"
	"github.com/MattB-242/dScribe-tools/report"
	"github.com/MattB-242/dScribe-tools/soap"
)

var basisLabels = map[string]string{
	string(soap.GTO):        "Gaussian RBF",
	string(soap.Polynomial): "Polynomial RBF",
}

func main() {
	R := cli.Start("soapparams", "<inputfile> <outputdir>", 2)
	defer R.Close()
	inputfile, outputdir := R.Args[0], R.Args[1]
	if err := cli.File(inputfile, "input"); err != nil {
		R.Usage(err)
	}
	if err := cli.Dir(outputdir, "output"); err != nil {
		R.Usage(err)
	}
	mol, err := chem.FileRead(inputfile)
	if err != nil {
		R.Fatal("failed to read structure", err)
	}
	species := soap.DerivedSpecies(mol)
	R.Log.Info("structure read", "name", mol.Name, "atoms", mol.Len(), "species", species)
	plans, err := R.Cfg.Params.Plans()
	if err != nil {
		R.Fatal("bad sweep", err)
	}
	bases, err := R.Cfg.Params.RadialBases()
	if err != nil {
		R.Fatal("bad radial basis", err)
	}
	d := R.Driver(R.Base(species, mol))
	for _, plan := range plans {
		series, err := d.Cost(mol, plan, bases)
		if err != nil {
			R.Fatal("cost sweep failed", err)
		}
		for i := range series {
			if l, ok := basisLabels[series[i].Label]; ok {
				series[i].Label = l
			}
		}
		fixed := plan.Fixed()
		plots := []struct {
			kind, ylabel string
			lines        []report.Line
		}{
			{"time", "Computation time (s)", report.TimeLines(series...)},
			{"coeffs", "Length of local descriptors", report.MetricLines(series...)},
		}
		for _, v := range plots {
			name := report.PlotName(outputdir, mol.Name, v.kind, fixed)
			if err := report.SweepPlot(plan, v.ylabel, v.lines).Save(name); err != nil {
				R.Fatal("failed to save plot", err)
			}
			R.Log.Info("plot saved", "file", name)
		}
	}
}
