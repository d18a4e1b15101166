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

// soapseqstab checks how the SOAP similarity of a structure with itself
// changes when nmax, lmax or rcut grow: each descriptor is compared with the
// one for the previous value of the parameter, truncated to the same width.
package main

import (
	chem "github.com/MattB-242/dScribe-tools"
	"github.com/MattB-242/dScribe-tools/internal/cli"
	"github.com/MattB-242/dScribe-tools/report"
)

func main() {
	R := cli.Start("soapseqstab", "<inputfile> <outputdir>", 2)
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
	plans, err := R.Cfg.Sequential.Plans()
	if err != nil {
		R.Fatal("bad sweep", err)
	}
	comps, err := R.Cfg.Kernels.Comparisons()
	if err != nil {
		R.Fatal("bad kernels", err)
	}
	d := R.Driver(R.Base(nil, mol))
	for _, plan := range plans {
		R.Log.Info("starting sequential comparison", "param", plan.Grid.Param, "points", plan.Grid.Len())
		series, err := d.Sequential(mol, plan, comps)
		if err != nil {
			R.Fatal("sequential sweep failed", err)
		}
		name := report.PlotName(outputdir, mol.Name, "kernstab", plan.Fixed())
		if err := report.SweepPlot(plan, "Kernel match", report.MetricLines(series...)).Save(name); err != nil {
			R.Fatal("failed to save plot", err)
		}
		R.Log.Info("plot saved", "file", name)
	}
}
