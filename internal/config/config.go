/*
 * config.go, part of dScribe-tools.
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

// Package config loads the configuration of the programs from an optional
// YAML file. Values missing from the file keep their defaults, which are
// the parameters of the usual comparison and sweep jobs.
package config

import (
	"fmt"
	"os"

	"github.com/MattB-242/dScribe-tools/kernel"
	"github.com/MattB-242/dScribe-tools/soap"
	"github.com/MattB-242/dScribe-tools/sweep"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Logging    LoggingConfig `yaml:"logging"`
	SOAP       SOAPConfig    `yaml:"soap"`
	Kernels    KernelsConfig `yaml:"kernels"`
	Compare    CompareConfig `yaml:"compare"`
	Params     SweepConfig   `yaml:"params"`
	Stability  SweepConfig   `yaml:"stability"`
	Sequential SweepConfig   `yaml:"sequential"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SOAPConfig holds the descriptor settings shared by all programs.
type SOAPConfig struct {
	//Used by the programs that don't take the species from the structures.
	Species  []string `yaml:"species"`
	Sigma    float64  `yaml:"sigma"`
	Periodic bool     `yaml:"periodic"`
	Basis    string   `yaml:"basis"`
}

// Options returns the base descriptor options with the given species.
// If species is nil, the configured ones are used.
func (S SOAPConfig) Options(species []string) soap.Options {
	if species == nil {
		species = S.Species
	}
	return soap.Options{Species: species, Sigma: S.Sigma, Periodic: S.Periodic, Basis: soap.Basis(S.Basis)}
}

// MetricConfig describes a local similarity metric.
type MetricConfig struct {
	Name   string  `yaml:"name"`
	Gamma  float64 `yaml:"gamma"`
	Coef0  float64 `yaml:"coef0"`
	Degree int     `yaml:"degree"`
}

func (M MetricConfig) metric() (kernel.Metric, error) {
	return kernel.ParseMetric(M.Name, M.Gamma, M.Coef0, M.Degree)
}

// AverageConfig holds the average kernel parameters.
type AverageConfig struct {
	Metric    MetricConfig `yaml:"metric"`
	Normalize bool         `yaml:"normalize"`
}

// REMatchConfig holds the REMatch kernel parameters.
type REMatchConfig struct {
	Metric        MetricConfig `yaml:"metric"`
	Alpha         float64      `yaml:"alpha"`
	Threshold     float64      `yaml:"threshold"`
	MaxIter       int          `yaml:"maxIter"`
	Normalize     bool         `yaml:"normalize"`
	NormalizeRows bool         `yaml:"normalizeRows"`
}

// KernelsConfig holds the parameters of both kernels.
type KernelsConfig struct {
	Average AverageConfig `yaml:"average"`
	REMatch REMatchConfig `yaml:"rematch"`
}

// AverageComparison returns the configured average kernel comparison.
func (K KernelsConfig) AverageComparison() (sweep.Comparison, error) {
	m, err := K.Average.Metric.metric()
	if err != nil {
		return sweep.Comparison{}, err
	}
	return sweep.Comparison{
		Label:  "Average Kernel",
		Kernel: &kernel.Average{Metric: m, NoNormalize: !K.Average.Normalize},
	}, nil
}

// REMatchComparison returns the configured REMatch kernel comparison.
func (K KernelsConfig) REMatchComparison() (sweep.Comparison, error) {
	r := K.REMatch
	m, err := r.Metric.metric()
	if err != nil {
		return sweep.Comparison{}, err
	}
	return sweep.Comparison{
		Label: "REMatch Kernel",
		Kernel: &kernel.REMatch{
			Metric:      m,
			Alpha:       r.Alpha,
			Threshold:   r.Threshold,
			MaxIter:     r.MaxIter,
			NoNormalize: !r.Normalize,
		},
		NormalizeRows: r.NormalizeRows,
	}, nil
}

// Comparisons returns the average and the REMatch comparisons, in that order.
func (K KernelsConfig) Comparisons() ([]sweep.Comparison, error) {
	a, err := K.AverageComparison()
	if err != nil {
		return nil, err
	}
	r, err := K.REMatchComparison()
	if err != nil {
		return nil, err
	}
	return []sweep.Comparison{a, r}, nil
}

// CompareConfig holds the parameters of the similarity matrix job.
type CompareConfig struct {
	RCut   float64 `yaml:"rcut"`
	NMax   int     `yaml:"nmax"`
	LMax   int     `yaml:"lmax"`
	Kernel string  `yaml:"kernel"` //average or rematch
}

// Comparison returns the comparison the job uses.
func (C CompareConfig) Comparison(k KernelsConfig) (sweep.Comparison, error) {
	switch C.Kernel {
	case "average":
		return k.AverageComparison()
	case "rematch":
		return k.REMatchComparison()
	}
	return sweep.Comparison{}, fmt.Errorf("config: unknown kernel %q", C.Kernel)
}

// AxisConfig describes the sweep of one parameter: its values go from From to To,
// both included. Integer parameters take all integers in between,
// rcut takes Num evenly spaced values. The other two
// parameters stay at the values given here.
type AxisConfig struct {
	From float64 `yaml:"from"`
	To   float64 `yaml:"to"`
	Num  int     `yaml:"num"`
	NMax int     `yaml:"nmax"`
	LMax int     `yaml:"lmax"`
	RCut float64 `yaml:"rcut"`
}

// Plan returns the sweep plan for the parameter p.
func (A AxisConfig) Plan(p sweep.Param) (sweep.Plan, error) {
	var g sweep.Grid
	if p.Integer() {
		g = sweep.IntRange(p, int(A.From), int(A.To))
	} else {
		g = sweep.Linspace(p, A.From, A.To, A.Num)
	}
	if err := g.Validate(); err != nil {
		return sweep.Plan{}, fmt.Errorf("config: %w", err)
	}
	return sweep.Plan{Grid: g, NMax: A.NMax, LMax: A.LMax, RCut: A.RCut}, nil
}

// SweepConfig holds the three sweeps of a job, and the radial bases
// used (only by the cost job).
type SweepConfig struct {
	NMax  AxisConfig `yaml:"nmax"`
	LMax  AxisConfig `yaml:"lmax"`
	RCut  AxisConfig `yaml:"rcut"`
	Bases []string   `yaml:"bases"`
}

// Plans returns the plans for the nmax, lmax and rcut sweeps, in that order.
func (S SweepConfig) Plans() ([]sweep.Plan, error) {
	ret := make([]sweep.Plan, 0, 3)
	for _, v := range []struct {
		p sweep.Param
		a AxisConfig
	}{{sweep.NMax, S.NMax}, {sweep.LMax, S.LMax}, {sweep.RCut, S.RCut}} {
		plan, err := v.a.Plan(v.p)
		if err != nil {
			return nil, err
		}
		ret = append(ret, plan)
	}
	return ret, nil
}

// RadialBases returns the configured radial bases.
func (S SweepConfig) RadialBases() ([]soap.Basis, error) {
	ret := make([]soap.Basis, 0, len(S.Bases))
	for _, b := range S.Bases {
		basis, err := soap.ParseBasis(b)
		if err != nil {
			return nil, err
		}
		ret = append(ret, basis)
	}
	return ret, nil
}

// Load reads a YAML config file (if path is not empty) over the defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the parts of the configuration that can be checked
// without knowing the structures.
func (C *Config) Validate() error {
	switch C.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", C.Logging.Format)
	}
	if _, err := soap.ParseBasis(C.SOAP.Basis); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := C.Kernels.Comparisons(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := C.Compare.Comparison(C.Kernels); err != nil {
		return err
	}
	for _, s := range []SweepConfig{C.Params, C.Stability, C.Sequential} {
		if _, err := s.Plans(); err != nil {
			return err
		}
	}
	if _, err := C.Params.RadialBases(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// defaultConfig returns a Config with the parameters of the usual jobs.
func defaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		SOAP: SOAPConfig{
			Species:  []string{"C", "H", "O", "N"},
			Sigma:    soap.DefaultSigma,
			Periodic: true,
			Basis:    string(soap.GTO),
		},
		Kernels: KernelsConfig{
			Average: AverageConfig{Metric: MetricConfig{Name: "linear"}, Normalize: true},
			REMatch: REMatchConfig{
				Metric:        MetricConfig{Name: "rbf", Gamma: 1},
				Alpha:         kernel.DefaultAlpha,
				Threshold:     kernel.DefaultThreshold,
				MaxIter:       kernel.DefaultMaxIter,
				Normalize:     true,
				NormalizeRows: true,
			},
		},
		Compare: CompareConfig{RCut: 20, NMax: 16, LMax: 9, Kernel: "average"},
		Params: SweepConfig{
			NMax:  AxisConfig{From: 1, To: 9, LMax: 1, RCut: 10},
			LMax:  AxisConfig{From: 1, To: 8, NMax: 1, RCut: 10},
			RCut:  AxisConfig{From: 2, To: 15, Num: 20, NMax: 4, LMax: 4},
			Bases: []string{string(soap.GTO), string(soap.Polynomial)},
		},
		Stability: SweepConfig{
			NMax: AxisConfig{From: 1, To: 14, LMax: 4, RCut: 20},
			LMax: AxisConfig{From: 1, To: 9, NMax: 4, RCut: 20},
			RCut: AxisConfig{From: 2, To: 15, Num: 20, NMax: 4, LMax: 4},
		},
		Sequential: SweepConfig{
			NMax: AxisConfig{From: 1, To: 9, LMax: 4, RCut: 20},
			LMax: AxisConfig{From: 1, To: 9, NMax: 4, RCut: 20},
			RCut: AxisConfig{From: 2, To: 20, Num: 30, NMax: 4, LMax: 4},
		},
	}
}
