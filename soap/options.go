/*
 * options.go, part of dScribe-tools.
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

import (
	"errors"
	"fmt"
	"sort"

	chem "github.com/MattB-242/dScribe-tools"
)

// Basis is the kind of radial basis used for the expansion.
type Basis string

const (
	GTO        Basis = "gto"
	Polynomial Basis = "polynomial"
)

// ParseBasis returns the Basis named s.
func ParseBasis(s string) (Basis, error) {
	switch Basis(s) {
	case GTO, Polynomial:
		return Basis(s), nil
	}
	return "", fmt.Errorf("%w: unknown radial basis %q", ErrInvalidOptions, s)
}

// ErrInvalidOptions is returned (wrapped) by Options.Validate and New.
var ErrInvalidOptions = errors.New("invalid SOAP options")

// FixedSpecies is the species list used when it is not derived from the structures.
var FixedSpecies = []string{"C", "H", "O", "N"}

// DerivedSpecies returns the species present in all the given structures.
func DerivedSpecies(mols ...*chem.Molecule) []string {
	seen := make(map[string]bool)
	ret := make([]string, 0, 4)
	for _, m := range mols {
		for _, s := range m.Species() {
			if !seen[s] {
				seen[s] = true
				ret = append(ret, s)
			}
		}
	}
	sort.Strings(ret)
	return ret
}

// Options are the parameters of a SOAP descriptor.
type Options struct {
	Species  []string
	RCut     float64 //Angstrom
	NMax     int
	LMax     int
	Sigma    float64 //width of the atomic gaussians, Angstrom. 0 means DefaultSigma.
	Periodic bool
	Basis    Basis //empty means GTO
	//If false, only the power spectra between equal species are computed.
	NoCrossover bool
}

// DefaultSigma is the atomic gaussian width used when Options.Sigma is 0.
const DefaultSigma = 1.0

// Validate checks the options, filling the defaults in the receiver.
func (O *Options) Validate() error {
	if O.Sigma == 0 {
		O.Sigma = DefaultSigma
	}
	if O.Basis == "" {
		O.Basis = GTO
	}
	if _, err := ParseBasis(string(O.Basis)); err != nil {
		return err
	}
	switch {
	case O.RCut <= 0:
		return fmt.Errorf("%w: rcut must be positive, got %g", ErrInvalidOptions, O.RCut)
	case O.NMax < 1:
		return fmt.Errorf("%w: nmax must be at least 1, got %d", ErrInvalidOptions, O.NMax)
	case O.LMax < 0:
		return fmt.Errorf("%w: lmax can't be negative, got %d", ErrInvalidOptions, O.LMax)
	case O.Sigma < 0:
		return fmt.Errorf("%w: sigma must be positive, got %g", ErrInvalidOptions, O.Sigma)
	case len(O.Species) == 0:
		return fmt.Errorf("%w: empty species list", ErrInvalidOptions)
	}
	seen := make(map[string]bool, len(O.Species))
	for _, s := range O.Species {
		if _, ok := chem.AtomicNumber(s); !ok {
			return fmt.Errorf("%w: unknown element %q", ErrInvalidOptions, s)
		}
		if seen[s] {
			return fmt.Errorf("%w: species %q given twice", ErrInvalidOptions, s)
		}
		seen[s] = true
	}
	return nil
}

// String gives the options in the key=value form used in logs and file headers.
func (O Options) String() string {
	return fmt.Sprintf("species=%v rcut=%g nmax=%d lmax=%d sigma=%g periodic=%t basis=%s", O.Species, O.RCut, O.NMax, O.LMax, O.Sigma, O.Periodic, O.Basis)
}
