/*
 * config_test.go, part of dScribe-tools.
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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MattB-242/dScribe-tools/kernel"
	"github.com/MattB-242/dScribe-tools/soap"
	"github.com/MattB-242/dScribe-tools/sweep"
)

func TestDefaults(Te *testing.T) {
	cfg, err := Load("")
	if err != nil {
		Te.Fatal(err)
	}
	if cfg.Compare.RCut != 20 || cfg.Compare.NMax != 16 || cfg.Compare.LMax != 9 {
		Te.Errorf("unexpected compare defaults %+v", cfg.Compare)
	}
	plans, err := cfg.Stability.Plans()
	if err != nil {
		Te.Fatal(err)
	}
	if len(plans) != 3 {
		Te.Fatalf("expected 3 plans, got %d", len(plans))
	}
	if plans[0].Grid.Param != sweep.NMax || plans[0].Grid.Len() != 14 {
		Te.Errorf("wrong nmax plan %+v", plans[0].Grid)
	}
	if plans[1].Grid.Param != sweep.LMax || plans[1].Grid.Len() != 9 || plans[1].NMax != 4 {
		Te.Errorf("wrong lmax plan %+v", plans[1])
	}
	r := plans[2].Grid
	if r.Param != sweep.RCut || r.Len() != 20 || r.Values[0] != 2 || r.Values[19] != 15 {
		Te.Errorf("wrong rcut plan %+v", r)
	}
	seq, err := cfg.Sequential.Plans()
	if err != nil {
		Te.Fatal(err)
	}
	if seq[2].Grid.Len() != 30 || seq[2].Grid.Values[29] != 20 {
		Te.Errorf("wrong sequential rcut plan %+v", seq[2].Grid)
	}
	bases, err := cfg.Params.RadialBases()
	if err != nil {
		Te.Fatal(err)
	}
	if len(bases) != 2 || bases[0] != soap.GTO || bases[1] != soap.Polynomial {
		Te.Errorf("wrong bases %v", bases)
	}
	comps, err := cfg.Kernels.Comparisons()
	if err != nil {
		Te.Fatal(err)
	}
	if len(comps) != 2 || comps[0].NormalizeRows || !comps[1].NormalizeRows {
		Te.Errorf("wrong comparisons %+v", comps)
	}
	if !comps[0].Kernel.Normalized() || !comps[1].Kernel.Normalized() {
		Te.Errorf("default kernels should be normalized")
	}
	o := cfg.SOAP.Options(nil)
	if len(o.Species) != 4 || !o.Periodic || o.Basis != soap.GTO {
		Te.Errorf("wrong base options %v", o)
	}
	o = cfg.SOAP.Options([]string{"H"})
	if len(o.Species) != 1 {
		Te.Errorf("species not replaced: %v", o.Species)
	}
}

func TestLoadFile(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "config.yaml")
	data := `
logging:
  level: debug
  format: json
compare:
  rcut: 5
  kernel: rematch
kernels:
  rematch:
    alpha: 0.5
    metric:
      name: linear
stability:
  nmax:
    from: 2
    to: 4
    lmax: 2
    rcut: 6
`
	if err := os.WriteFile(name, []byte(data), 0o644); err != nil {
		Te.Fatal(err)
	}
	cfg, err := Load(name)
	if err != nil {
		Te.Fatal(err)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		Te.Errorf("logging not read: %+v", cfg.Logging)
	}
	//not in the file
	if cfg.Compare.NMax != 16 {
		Te.Errorf("default lost: %+v", cfg.Compare)
	}
	c, err := cfg.Compare.Comparison(cfg.Kernels)
	if err != nil {
		Te.Fatal(err)
	}
	r, ok := c.Kernel.(*kernel.REMatch)
	if !ok {
		Te.Fatalf("expected a REMatch kernel, got %T", c.Kernel)
	}
	if r.Alpha != 0.5 || r.Metric.Kind != kernel.Linear || r.Threshold != kernel.DefaultThreshold {
		Te.Errorf("wrong REMatch kernel %+v", r)
	}
	plans, err := cfg.Stability.Plans()
	if err != nil {
		Te.Fatal(err)
	}
	if plans[0].Grid.Len() != 3 || plans[0].LMax != 2 || plans[0].RCut != 6 {
		Te.Errorf("wrong nmax plan %+v", plans[0])
	}
}

func TestLoadErrors(Te *testing.T) {
	dir := Te.TempDir()
	if _, err := Load(filepath.Join(dir, "nothere.yaml")); err == nil {
		Te.Error("expected error for missing file")
	}
	cases := map[string]string{
		"syntax":  "logging: [",
		"format":  "logging:\n  format: xml\n",
		"basis":   "soap:\n  basis: bessel\n",
		"metric":  "kernels:\n  average:\n    metric:\n      name: laplacian\n",
		"kernel":  "compare:\n  kernel: fancy\n",
		"grid":    "params:\n  lmax:\n    from: 5\n    to: 1\n",
		"rcutnum": "sequential:\n  rcut:\n    num: 0\n",
	}
	for n, c := range cases {
		name := filepath.Join(dir, n+".yaml")
		if err := os.WriteFile(name, []byte(c), 0o644); err != nil {
			Te.Fatal(err)
		}
		_, err := Load(name)
		if err == nil {
			Te.Errorf("%s: expected error", n)
			continue
		}
		if n != "syntax" && !strings.Contains(err.Error(), "config") {
			Te.Errorf("%s: unexpected error %v", n, err)
		}
	}
}
