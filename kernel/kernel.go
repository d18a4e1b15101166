/*
 * kernel.go, part of dScribe-tools.
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

package kernel

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrWidthMismatch = errors.New("kernel: descriptor sets have different widths")
	ErrTooFewSets    = errors.New("kernel: no descriptor sets to compare")
	ErrEmptySet      = errors.New("kernel: empty descriptor set")
	ErrNoConvergence = errors.New("kernel: REMatch did not converge")
	ErrZeroSelf      = errors.New("kernel: zero self-similarity, can't normalize")
)

// Kernel gives the global similarity between sets of local descriptors.
type Kernel interface {
	//Global returns the similarity between the sets A and B.
	Global(A, B *mat.Dense) (float64, error)
	//Normalized reports whether the matrices from Create are normalized.
	Normalized() bool
	String() string
}

// Create returns the matrix with the similarity between every pair of sets,
// using the kernel k. If the kernel is normalized, each element
// K_ij is divided by sqrt(K_ii*K_jj).
func Create(k Kernel, sets []*mat.Dense) (*mat.SymDense, error) {
	if len(sets) == 0 {
		return nil, ErrTooFewSets
	}
	_, width := sets[0].Dims()
	for i, s := range sets {
		if s == nil || s.IsEmpty() {
			return nil, fmt.Errorf("%w: set %d", ErrEmptySet, i)
		}
		if _, c := s.Dims(); c != width {
			return nil, fmt.Errorf("%w: set 0 has %d columns, set %d has %d", ErrWidthMismatch, width, i, c)
		}
	}
	n := len(sets)
	K := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v, err := k.Global(sets[i], sets[j])
			if err != nil {
				return nil, fmt.Errorf("comparing sets %d and %d: %w", i, j, err)
			}
			K.SetSym(i, j, v)
		}
	}
	if !k.Normalized() {
		return K, nil
	}
	diag := make([]float64, n)
	for i := range diag {
		diag[i] = K.At(i, i)
		if diag[i] <= 0 {
			return nil, fmt.Errorf("%w: set %d", ErrZeroSelf, i)
		}
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			K.SetSym(i, j, K.At(i, j)/math.Sqrt(diag[i]*diag[j]))
		}
	}
	return K, nil
}

// Pair returns the (normalized, if k is) similarity between A and B, i.e.
// the (0,1) element of the matrix from Create.
func Pair(k Kernel, A, B *mat.Dense) (float64, error) {
	K, err := Create(k, []*mat.Dense{A, B})
	if err != nil {
		return 0, err
	}
	return K.At(0, 1), nil
}

// Average is the kernel that takes the mean of the local similarities between
// all the environments in two sets.
type Average struct {
	Metric      Metric
	NoNormalize bool
}

// NewAverage returns a normalized average kernel with the linear metric.
func NewAverage() *Average {
	return &Average{Metric: Metric{Kind: Linear}}
}

func (A *Average) Global(a, b *mat.Dense) (float64, error) {
	C, err := LocalSimilarity(A.Metric, a, b)
	if err != nil {
		return 0, err
	}
	r, c := C.Dims()
	return mat.Sum(C) / float64(r*c), nil
}

func (A *Average) Normalized() bool { return !A.NoNormalize }

func (A *Average) String() string {
	return fmt.Sprintf("average(%s)", A.Metric)
}

// Default REMatch parameters.
const (
	DefaultAlpha     = 1.0
	DefaultThreshold = 1e-6
	DefaultMaxIter   = 100000
)

// REMatch is the regularized entropy match kernel. The environments of two
// sets are matched with a Sinkhorn iteration, Alpha controlling the entropic
// regularization (the smaller, the closer to the best-match assignment).
// Zero values for Alpha, Threshold and MaxIter mean the defaults.
// The descriptor rows are usually normalized (NormalizeRows) before
// using this kernel.
type REMatch struct {
	Metric      Metric
	Alpha       float64
	Threshold   float64
	MaxIter     int
	NoNormalize bool
}

// NewREMatch returns a normalized REMatch kernel with the rbf metric
// (gamma=1) and the default parameters.
func NewREMatch() *REMatch {
	return &REMatch{Metric: Metric{Kind: RBF, Gamma: 1}, Alpha: DefaultAlpha, Threshold: DefaultThreshold}
}

func (R *REMatch) params() (alpha, threshold float64, maxiter int) {
	alpha, threshold, maxiter = R.Alpha, R.Threshold, R.MaxIter
	if alpha == 0 {
		alpha = DefaultAlpha
	}
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	if maxiter == 0 {
		maxiter = DefaultMaxIter
	}
	return
}

func (R *REMatch) Global(a, b *mat.Dense) (float64, error) {
	C, err := LocalSimilarity(R.Metric, a, b)
	if err != nil {
		return 0, err
	}
	alpha, threshold, maxiter := R.params()
	if alpha <= 0 {
		return 0, fmt.Errorf("kernel: REMatch alpha must be positive, got %g", alpha)
	}
	n, m := C.Dims()
	K := mat.NewDense(n, m, nil)
	K.Apply(func(i, j int, v float64) float64 {
		return math.Exp(-(1 - v) / alpha)
	}, C)
	en := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		en.SetVec(i, 1/float64(n))
	}
	em := mat.NewVecDense(m, nil)
	for i := 0; i < m; i++ {
		em.SetVec(i, 1/float64(m))
	}
	u := mat.VecDenseCopyOf(en)
	v := mat.VecDenseCopyOf(em)
	uprev := mat.NewVecDense(n, nil)
	vprev := mat.NewVecDense(m, nil)
	ku := mat.NewVecDense(n, nil)
	kv := mat.NewVecDense(m, nil)
	errv := 1.0
	for niter := 0; errv > threshold; niter++ {
		if niter >= maxiter {
			return 0, fmt.Errorf("%w after %d iterations (error %g, threshold %g)", ErrNoConvergence, niter, errv, threshold)
		}
		uprev.CopyVec(u)
		vprev.CopyVec(v)
		ku.MulVec(K, v)
		u.DivElemVec(en, ku)
		kv.MulVec(K.T(), u)
		v.DivElemVec(em, kv)
		//as in the usual implementation, the error is not
		//updated every fifth iteration.
		if niter%5 != 0 {
			errv = relChange(u, uprev) + relChange(v, vprev)
		}
	}
	var glosim float64
	for i := 0; i < n; i++ {
		row := C.RawRowView(i)
		krow := K.RawRowView(i)
		for j := range row {
			glosim += krow[j] * u.AtVec(i) * v.AtVec(j) * row[j]
		}
	}
	return glosim, nil
}

// relChange returns |x-prev|^2/|x|^2
func relChange(x, prev *mat.VecDense) float64 {
	d := make([]float64, x.Len())
	floats.SubTo(d, x.RawVector().Data, prev.RawVector().Data)
	return floats.Dot(d, d) / mat.Dot(x, x)
}

func (R *REMatch) Normalized() bool { return !R.NoNormalize }

func (R *REMatch) String() string {
	alpha, threshold, _ := R.params()
	return fmt.Sprintf("rematch(%s,alpha=%g,threshold=%g)", R.Metric, alpha, threshold)
}

// Parse returns the kernel with the given name ("average" or "rematch"),
// with its default parameters.
func Parse(name string) (Kernel, error) {
	switch name {
	case "average":
		return NewAverage(), nil
	case "rematch":
		return NewREMatch(), nil
	}
	return nil, fmt.Errorf("kernel: unknown kernel %q", name)
}
