/*
 * grid.go, part of dScribe-tools.
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

// Package sweep runs SOAP descriptors and kernels over ranges of one
// hyperparameter, recording the results and the time spent.
package sweep

import (
	"fmt"
	"math"

	"github.com/MattB-242/dScribe-tools/soap"
)

// Param is a SOAP hyperparameter that can be swept.
type Param string

const (
	NMax Param = "nmax"
	LMax Param = "lmax"
	RCut Param = "rcut"
)

// ParseParam returns the Param named s.
func ParseParam(s string) (Param, error) {
	switch Param(s) {
	case NMax, LMax, RCut:
		return Param(s), nil
	}
	return "", fmt.Errorf("sweep: unknown parameter %q", s)
}

// Label returns a human readable description of the parameter, for plot axes.
func (p Param) Label() string {
	switch p {
	case NMax:
		return "Number of radial basis functions"
	case LMax:
		return "Degree of spherical harmonics"
	case RCut:
		return "r_cut (A)"
	}
	return string(p)
}

// Integer reports whether the parameter only takes integer values.
func (p Param) Integer() bool {
	return p == NMax || p == LMax
}

// Set returns a copy of o with the parameter set to v.
func (p Param) Set(o soap.Options, v float64) soap.Options {
	switch p {
	case NMax:
		o.NMax = int(math.Round(v))
	case LMax:
		o.LMax = int(math.Round(v))
	case RCut:
		o.RCut = v
	}
	return o
}

// Grid is the set of values a parameter takes in a sweep, in ascending order.
type Grid struct {
	Param  Param
	Values []float64
}

// IntRange returns the grid with the integers from..to, both included.
func IntRange(p Param, from, to int) Grid {
	g := Grid{Param: p}
	for i := from; i <= to; i++ {
		g.Values = append(g.Values, float64(i))
	}
	return g
}

// Linspace returns the grid with n evenly spaced values between start and stop,
// both included.
func Linspace(p Param, start, stop float64, n int) Grid {
	switch {
	case n <= 0:
		return Grid{Param: p}
	case n == 1:
		return Grid{Param: p, Values: []float64{start}}
	}
	g := Grid{Param: p, Values: make([]float64, n)}
	step := (stop - start) / float64(n-1)
	for i := range g.Values {
		g.Values[i] = start + float64(i)*step
	}
	g.Values[n-1] = stop
	return g
}

// Len returns the number of points in the grid.
func (g Grid) Len() int {
	return len(g.Values)
}

// Validate checks that the grid is not empty, strictly ascending and,
// for integer parameters, made of integers.
func (g Grid) Validate() error {
	if _, err := ParseParam(string(g.Param)); err != nil {
		return err
	}
	if len(g.Values) == 0 {
		return fmt.Errorf("sweep: empty %s grid", g.Param)
	}
	for i, v := range g.Values {
		if g.Param.Integer() && v != math.Trunc(v) {
			return fmt.Errorf("sweep: non-integer value %g in %s grid", v, g.Param)
		}
		if i > 0 && v <= g.Values[i-1] {
			return fmt.Errorf("sweep: %s grid is not ascending at position %d", g.Param, i)
		}
	}
	return nil
}

// Plan is a grid plus the values at which the other parameters are held.
// The fixed value of the swept parameter is ignored.
type Plan struct {
	Grid Grid
	NMax int
	LMax int
	RCut float64
}

// Options returns base with the fixed parameters of the plan set.
func (P Plan) Options(base soap.Options) soap.Options {
	base.NMax = P.NMax
	base.LMax = P.LMax
	base.RCut = P.RCut
	return base
}

// Fixed returns the names and values of the parameters that are not swept, in
// the order nmax, lmax, rcut.
func (P Plan) Fixed() []Setting {
	ret := make([]Setting, 0, 2)
	for _, p := range []Param{NMax, LMax, RCut} {
		if p == P.Grid.Param {
			continue
		}
		var v float64
		switch p {
		case NMax:
			v = float64(P.NMax)
		case LMax:
			v = float64(P.LMax)
		default:
			v = P.RCut
		}
		ret = append(ret, Setting{Param: p, Value: v})
	}
	return ret
}

// Setting is a parameter and its value.
type Setting struct {
	Param Param
	Value float64
}

// String gives p=v, with rcut written always with a decimal point, so 10 is 10.0.
func (S Setting) String() string {
	if S.Param.Integer() {
		return fmt.Sprintf("%s=%d", S.Param, int(math.Round(S.Value)))
	}
	return fmt.Sprintf("%s=%s", S.Param, FormatFloat(S.Value))
}

// FormatFloat writes v in the shortest form that is exact, adding ".0"
// to integers.
func FormatFloat(v float64) string {
	s := fmt.Sprint(v)
	if v == math.Trunc(v) && !math.IsInf(v, 0) && math.Abs(v) < 1e21 {
		s += ".0"
	}
	return s
}
