/*
 * metric.go, part of dScribe-tools.
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

/*
Package kernel compares sets of local descriptors, such as those produced
by the soap package, with global similarity kernels.

A set is a matrix with one row (local environment) per atom. The local similarity
between the rows of two sets is given by a Metric, and a Kernel reduces it
to one number per pair of sets: Average takes its mean, REMatch finds the
entropy-regularized best matching between the environments.
*/
package kernel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// MetricKind names a local similarity function.
type MetricKind string

const (
	Linear MetricKind = "linear"
	RBF    MetricKind = "rbf"
	Poly   MetricKind = "polynomial"
	Cosine MetricKind = "cosine"
)

// default gamma for the rbf and polynomial metrics.
const rbfDefault = 1.0

// Metric is the similarity between two local environments (descriptor rows).
// Gamma is used by RBF and Poly, Coef0 and Degree only by Poly.
// A zero Gamma means 1.
type Metric struct {
	Kind   MetricKind
	Gamma  float64
	Coef0  float64
	Degree int
}

// ParseMetric returns the metric with the given name and parameters, checking them.
func ParseMetric(name string, gamma, coef0 float64, degree int) (Metric, error) {
	m := Metric{Kind: MetricKind(name), Gamma: gamma, Coef0: coef0, Degree: degree}
	return m, m.check()
}

func (m Metric) check() error {
	switch m.Kind {
	case Linear, Cosine:
	case RBF:
		if m.Gamma < 0 {
			return fmt.Errorf("kernel: rbf gamma can't be negative, got %g", m.Gamma)
		}
	case Poly:
		if m.Degree < 1 {
			return fmt.Errorf("kernel: polynomial degree must be at least 1, got %d", m.Degree)
		}
	default:
		return fmt.Errorf("kernel: unknown metric %q", m.Kind)
	}
	return nil
}

func (m Metric) gamma() float64 {
	if m.Gamma == 0 {
		return rbfDefault
	}
	return m.Gamma
}

func (m Metric) String() string {
	switch m.Kind {
	case RBF:
		return fmt.Sprintf("rbf(gamma=%g)", m.gamma())
	case Poly:
		return fmt.Sprintf("polynomial(gamma=%g,coef0=%g,degree=%d)", m.gamma(), m.Coef0, m.Degree)
	}
	return string(m.Kind)
}

// Similarity returns the similarity between the vectors a and b, which must have
// the same length.
func (m Metric) Similarity(a, b []float64) float64 {
	switch m.Kind {
	case RBF:
		d := floats.Distance(a, b, 2)
		return math.Exp(-m.gamma() * d * d)
	case Poly:
		return math.Pow(m.gamma()*floats.Dot(a, b)+m.Coef0, float64(m.Degree))
	case Cosine:
		na := floats.Norm(a, 2)
		nb := floats.Norm(b, 2)
		if na == 0 || nb == 0 {
			return 0
		}
		return floats.Dot(a, b) / (na * nb)
	}
	return floats.Dot(a, b)
}

// LocalSimilarity returns the matrix with the similarities between every row of A
// (rows) and every row of B (columns). A and B must have the same number of columns.
func LocalSimilarity(m Metric, A, B mat.Matrix) (*mat.Dense, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	ra, ca := A.Dims()
	rb, cb := B.Dims()
	if ca != cb {
		return nil, fmt.Errorf("%w: %d and %d columns", ErrWidthMismatch, ca, cb)
	}
	ret := mat.NewDense(ra, rb, nil)
	if m.Kind == Linear {
		ret.Mul(A, B.T())
		return ret, nil
	}
	rowsb := make([][]float64, rb)
	for j := range rowsb {
		rowsb[j] = mat.Row(nil, j, B)
	}
	a := make([]float64, ca)
	for i := 0; i < ra; i++ {
		mat.Row(a, i, A)
		for j, b := range rowsb {
			ret.Set(i, j, m.Similarity(a, b))
		}
	}
	return ret, nil
}
