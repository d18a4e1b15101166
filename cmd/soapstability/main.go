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

// soapstability compares two structures with SOAP descriptors over ranges
// of nmax, lmax and rcut, and plots the kernel similarities, the time they
// took, and the difference between the first terms of both descriptors.
package main

import (
	chem "github.com/MattB-242/dScribe-tools"
	"github.com/MattB-242/dScribe-tools/internal/cli"
	"github.com/MattB-242/dScribe-tools/report"
)

func main() {
	R := cli.Start("soapstability", "<testfile> <compfile> <outputdir>", 3)
	defer R.Close()
	testfile, compfile, outputdir := R.Args[0], R.Args[1], R.Args[2]
	for _, f := range []string{testfile, compfile} {
		if err := cli.File(f, "the structures to compare"); err != nil {
			R.Usage(err)
		}
	}
	if err := cli.Dir(outputdir, "output"); err != nil {
		R.Usage(err)
	}
	mols, err := chem.LoadFiles([]string{testfile, compfile})
	if err != nil {
		R.Fatal("failed to read structures", err)
	}
	test, comp := mols[0], mols[1]
	plans, err := R.Cfg.Stability.Plans()
	if err != nil {
		R.Fatal("bad sweep", err)
	}
	comps, err := R.Cfg.Kernels.Comparisons()
	if err != nil {
		R.Fatal("bad kernels", err)
	}
	d := R.Driver(R.Base(nil, test, comp))
	prefix := test.Name + "_" + comp.Name
	for _, plan := range plans {
		res, err := d.Pairwise(test, comp, plan, comps)
		if err != nil {
			R.Fatal("pairwise sweep failed", err)
		}
		diff := report.MetricLines(res.DescDiff)
		diff[0].Label = ""
		plots := []struct {
			kind, ylabel string
			lines        []report.Line
		}{
			{"kerncomp", "Kernel comparison time (s)", report.TimeLines(res.Kernels...)},
			{"descdiff", "Difference between first term of first descriptor", diff},
			{"kernmatch", "Kernel match", report.MetricLines(res.Kernels...)},
		}
		fixed := plan.Fixed()
		for _, v := range plots {
			name := report.PlotName(outputdir, prefix, v.kind, fixed)
			if err := report.SweepPlot(plan, v.ylabel, v.lines).Save(name); err != nil {
				R.Fatal("failed to save plot", err)
			}
			R.Log.Info("plot saved", "file", name)
		}
	}
}
