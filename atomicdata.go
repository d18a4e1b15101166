/*
 * atomicdata.go, part of dScribe-tools.
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

package chem

import "strings"

//The chemical symbols, indexed by atomic number. Index 0 is a placeholder.
var elements = []string{"X",
	"H", "He",
	"Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
	"K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn", "Ga", "Ge", "As", "Se", "Br", "Kr",
	"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn", "Sb", "Te", "I", "Xe",
	"Cs", "Ba", "La", "Ce", "Pr", "Nd", "Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb", "Lu",
	"Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg", "Tl", "Pb", "Bi", "Po", "At", "Rn",
}

var symbolNumber = func() map[string]int {
	m := make(map[string]int, len(elements))
	for i, v := range elements[1:] {
		m[v] = i + 1
	}
	return m
}()

//A map for assigning mass to elements.
//Note that just common elements are present
var symbolMass = map[string]float64{
	"H":  1.0,
	"C":  12.01,
	"O":  16.00,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"Se": 78.96,
	"K":  39.1,
	"Ca": 40.08,
	"Mg": 24.30,
	"Cl": 35.45,
	"Na": 22.99,
	"Cu": 63.55,
	"Zn": 65.38,
	"Co": 58.93,
	"Fe": 55.84,
	"Mn": 54.94,
	"Cr": 51.996,
	"Si": 28.08,
	"Be": 9.012,
	"F":  18.998,
	"Br": 79.904,
	"I":  126.90,
	"B":  10.81,
	"Al": 26.98,
	"Li": 6.94,
	"Ti": 47.87,
	"Ni": 58.69,
}

// AtomicNumber returns the atomic number for the chemical symbol s, and false if
// s is not a known element.
func AtomicNumber(s string) (int, bool) {
	z, ok := symbolNumber[s]
	return z, ok
}

// CanonicalSymbol returns s with the capitalization used for chemical symbols
// ("CL" and "cl" become "Cl"). Anything after the leading letters (charges,
// site numbers) is dropped.
func CanonicalSymbol(s string) string {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && end < 2 && isLetter(s[end]) {
		end++
	}
	if end == 0 {
		return ""
	}
	s = strings.ToUpper(s[:1]) + strings.ToLower(s[1:end])
	if _, ok := symbolNumber[s]; !ok && len(s) == 2 {
		//labels like "HW1": two letter guesses that are not elements fall back to one letter.
		if _, ok1 := symbolNumber[s[:1]]; ok1 {
			return s[:1]
		}
	}
	return s
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
