/*
 * doc.go, part of dScribe-tools.
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
Package soap computes Smooth Overlap of Atomic Positions (SOAP) power spectrum
descriptors.

Each atom gets a gaussian of width Sigma on it. The density of every species
around a central atom, up to the cutoff radius RCut, is expanded on NMax
orthonormal radial functions and real spherical harmonics up to degree LMax.
The power spectrum of those coefficients is the descriptor: one row per atom,
NumFeatures() columns, ordered by species pair (by atomic number), n, n' and l.

Two radial bases are available: gaussian type orbitals (GTO), and the
polynomials (RCut-r)^(k+2). Both are orthonormalised with S^-1/2.

The radial integrals are evaluated by Gauss-Legendre quadrature, the modified
spherical Bessel functions in exponentially scaled form, so large cutoffs
don't overflow.
*/
package soap
