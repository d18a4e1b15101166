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

// soapcompare computes the SOAP similarity matrix between the structures
// in a directory, and writes it as CSV, with a JSON summary next to it.
package main

import (
	chem "github.com/MattB-242/dScribe-tools"
	"github.com/MattB-242/dScribe-tools/internal/cli"
	"github.com/MattB-242/dScribe-tools/report"
)

func main() {
	R := cli.Start("soapcompare", "<inputdir> <outputdir> <n (0 or less: all files)>", 3)
	defer R.Close()
	inputdir, outputdir := R.Args[0], R.Args[1]
	if err := cli.Dir(inputdir, "input"); err != nil {
		R.Usage(err)
	}
	if err := cli.Dir(outputdir, "output"); err != nil {
		R.Usage(err)
	}
	n, err := cli.Count(R.Args[2], "the number of files")
	if err != nil {
		R.Usage(err)
	}
	mols, err := chem.LoadDir(inputdir, n)
	if err != nil {
		R.Fatal("failed to read structures", err)
	}
	R.Log.Info("structures read", "dir", inputdir, "count", len(mols))
	cfg := R.Cfg
	comp, err := cfg.Compare.Comparison(cfg.Kernels)
	if err != nil {
		R.Fatal("bad kernel", err)
	}
	base := R.Base(nil, mols...)
	base.RCut, base.NMax, base.LMax = cfg.Compare.RCut, cfg.Compare.NMax, cfg.Compare.LMax
	res, err := R.Driver(base).Matrix(mols, comp)
	if err != nil {
		R.Fatal("comparison failed", err)
	}
	csvname := report.MatrixCSVName(outputdir, base.RCut)
	if err := report.WriteMatrixCSVFile(csvname, res.Names, res.K); err != nil {
		R.Fatal("failed to write similarity matrix", err)
	}
	sum, err := report.Summarize(res.Names, res.K)
	if err != nil {
		R.Fatal("failed to summarize similarities", err)
	}
	if err := sum.WriteJSON(report.SummaryName(csvname)); err != nil {
		R.Fatal("failed to write summary", err)
	}
	R.Log.Info("similarity matrix written", "file", csvname, "mean", sum.Mean, "std", sum.Std, "min", sum.Min, "max", sum.Max)
}
