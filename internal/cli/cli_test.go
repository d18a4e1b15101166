/*
 * cli_test.go, part of dScribe-tools.
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

package cli

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	chem "github.com/MattB-242/dScribe-tools"
	"github.com/MattB-242/dScribe-tools/dsf"
	"github.com/MattB-242/dScribe-tools/internal/config"
	"github.com/MattB-242/dScribe-tools/soap"
)

func TestPathChecks(Te *testing.T) {
	dir := Te.TempDir()
	file := filepath.Join(dir, "water.xyz")
	if err := os.WriteFile(file, []byte("3\n\nO 0 0 0\nH 1 0 0\nH 0 1 0\n"), 0o644); err != nil {
		Te.Fatal(err)
	}
	if err := File(file, "input"); err != nil {
		Te.Error(err)
	}
	if err := Dir(dir, "output"); err != nil {
		Te.Error(err)
	}
	if err := File(dir, "input"); !errors.Is(err, ErrUsage) {
		Te.Errorf("a directory passed as a file: %v", err)
	}
	if err := Dir(file, "output"); !errors.Is(err, ErrUsage) {
		Te.Errorf("a file passed as a directory: %v", err)
	}
	if err := File(filepath.Join(dir, "nothere.xyz"), "input"); !errors.Is(err, ErrUsage) {
		Te.Errorf("missing file: %v", err)
	}
}

func TestDriverSink(Te *testing.T) {
	base := soap.Options{Species: soap.FixedSpecies, RCut: 5, NMax: 2, LMax: 1}
	R := &Run{Name: "test", Log: slog.Default()}
	if d := R.Driver(base); d.Sink != nil {
		Te.Error("driver without a store should have a nil sink")
	}
	R.Close() //no store, nothing to do
	var err error
	name := filepath.Join(Te.TempDir(), "descs.dsf")
	R.dump, err = dsf.NewWriter(name, "abc")
	if err != nil {
		Te.Fatal(err)
	}
	d := R.Driver(base)
	if d.Sink == nil {
		Te.Fatal("driver should store descriptors")
	}
	R.Close()
	if R.dump != nil {
		Te.Error("store not released on Close")
	}
	if _, err := os.Stat(name); err != nil {
		Te.Error(err)
	}
}

func TestBase(Te *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		Te.Fatal(err)
	}
	R := &Run{Name: "test", Cfg: cfg, Log: slog.Default()}
	water, err := chem.FileRead("../../test/water.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	crystal, err := chem.FileRead("../../test/methanol_cell.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	if o := R.Base(nil, crystal); !o.Periodic || len(o.Species) != 4 {
		Te.Errorf("wrong options for a crystal: %v", o)
	}
	if o := R.Base([]string{"H", "O"}, crystal, water); o.Periodic || len(o.Species) != 2 {
		Te.Errorf("wrong options with a structure without cell: %v", o)
	}
	cfg.SOAP.Periodic = false
	if o := R.Base(nil, crystal); o.Periodic {
		Te.Errorf("periodicity should follow the config: %v", o)
	}
}

func TestCount(Te *testing.T) {
	for arg, want := range map[string]int{"1": 1, "2": 2, "0": 0, "-1": -1, "25": 25} {
		n, err := Count(arg, "n")
		if err != nil || n != want {
			Te.Errorf("%q: want %d got %d (%v)", arg, want, n, err)
		}
	}
	for _, arg := range []string{"", "two", "2.5"} {
		if _, err := Count(arg, "n"); !errors.Is(err, ErrUsage) {
			Te.Errorf("%q: expected a usage error, got %v", arg, err)
		}
	}
	//a single file, and all of them
	one, err := chem.LoadDir("../../test/set", 1)
	if err != nil || len(one) != 1 {
		Te.Errorf("one structure: %d %v", len(one), err)
	}
	all, err := chem.LoadDir("../../test/set", 0)
	if err != nil || len(all) != 3 {
		Te.Errorf("all structures: %d %v", len(all), err)
	}
}
