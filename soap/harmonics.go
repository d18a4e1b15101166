/*
 * harmonics.go, part of dScribe-tools.
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

package soap

import "math"

// lmIndex is the position of (l,m) in a flattened set of spherical harmonics.
func lmIndex(l, m int) int {
	return l*l + l + m
}

// realHarmonics puts in dst the real spherical harmonics Y_lm for l=0..lmax,
// evaluated in the direction of the unit vector u. dst must have room
// for (lmax+1)^2 values. The harmonics are orthonormal over the sphere.
// Without Condon-Shortley phase, which cancels out in the power spectrum anyway.
func realHarmonics(dst []float64, u [3]float64, lmax int) {
	cost := u[2]
	if cost > 1 {
		cost = 1
	} else if cost < -1 {
		cost = -1
	}
	sint := math.Sqrt(1 - cost*cost)
	phi := math.Atan2(u[1], u[0])
	//P holds P_l^m(cos theta), for the current m and l=m..lmax.
	p := make([]float64, lmax+1)
	pmm := 1.0 //P_m^m
	for m := 0; m <= lmax; m++ {
		if m > 0 {
			pmm *= float64(2*m-1) * sint
		}
		p[m] = pmm
		if m+1 <= lmax {
			p[m+1] = cost * float64(2*m+1) * pmm
		}
		for l := m + 2; l <= lmax; l++ {
			p[l] = (float64(2*l-1)*cost*p[l-1] - float64(l+m-1)*p[l-2]) / float64(l-m)
		}
		cosm := math.Cos(float64(m) * phi)
		sinm := math.Sin(float64(m) * phi)
		for l := m; l <= lmax; l++ {
			n := harmonicNorm(l, m)
			if m == 0 {
				dst[lmIndex(l, 0)] = n * p[l]
				continue
			}
			dst[lmIndex(l, m)] = math.Sqrt2 * n * p[l] * cosm
			dst[lmIndex(l, -m)] = math.Sqrt2 * n * p[l] * sinm
		}
	}
}

// harmonicNorm returns sqrt((2l+1)/4pi (l-m)!/(l+m)!)
func harmonicNorm(l, m int) float64 {
	r := float64(2*l+1) / (4 * math.Pi)
	for k := l - m + 1; k <= l+m; k++ {
		r /= float64(k)
	}
	return math.Sqrt(r)
}

// scaledBessel puts in dst, for l=0..len(dst)-1, exp(-x)*i_l(x), where i_l
// is the modified spherical Bessel function of the first kind. x must
// not be negative.
func scaledBessel(dst []float64, x float64) {
	lmax := len(dst) - 1
	if x < 1e-12 {
		for l := range dst {
			dst[l] = 0
		}
		dst[0] = 1
		return
	}
	//The upward recurrence is unstable when l is comparable to x.
	if x <= math.Max(30, float64(2*lmax)) {
		dst[lmax] = besselSeries(lmax, x)
		if lmax == 0 {
			return
		}
		dst[lmax-1] = besselSeries(lmax-1, x)
		for l := lmax - 1; l > 0; l-- {
			dst[l-1] = dst[l+1] + float64(2*l+1)/x*dst[l]
		}
		return
	}
	e := math.Exp(-2 * x)
	dst[0] = (1 - e) / (2 * x)
	if lmax == 0 {
		return
	}
	dst[1] = ((1+e)/2 - dst[0]) / x
	for l := 1; l < lmax; l++ {
		dst[l+1] = dst[l-1] - float64(2*l+1)/x*dst[l]
	}
}

// besselSeries returns exp(-x)*i_l(x) from the power series of i_l.
func besselSeries(l int, x float64) float64 {
	term := 1.0
	for k := 1; k <= l; k++ {
		term *= x / float64(2*k+1)
	}
	if term == 0 {
		return 0
	}
	sum := term
	h := x * x / 2
	for k := 1; k < 500; k++ {
		term *= h / (float64(k) * float64(2*l+2*k+1))
		sum += term
		if term < 1e-17*sum {
			break
		}
	}
	return math.Exp(-x) * sum
}
