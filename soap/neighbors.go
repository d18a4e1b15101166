/*
 * neighbors.go, part of dScribe-tools.
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
	"fmt"
	"math"

	chem "github.com/MattB-242/dScribe-tools"
	"github.com/MattB-242/dScribe-tools/v3"
)

// neighbor is an atom (or a periodic image of one) within the cutoff of a center.
type neighbor struct {
	species int     //index in the generator's species list
	dist    float64 //distance to the center
	dir     [3]float64
}

// zeroDist is the distance under which a neighbor is considered to sit on the center.
const zeroDist = 1e-10

// neighborLists returns, for each atom in coords, the atoms within rcut of it,
// the atom itself included. If cell is not nil, the periodic images
// of all atoms are considered too. species gives the species index of each atom.
func neighborLists(coords, cell *v3.Matrix, species []int, rcut float64) ([][]neighbor, error) {
	images := [][3]float64{{0, 0, 0}}
	if cell != nil {
		var err error
		images, err = latticeImages(cell, rcut)
		if err != nil {
			return nil, err
		}
	}
	n := coords.NVecs()
	ret := make([][]neighbor, n)
	ci := make([]float64, 3)
	cj := make([]float64, 3)
	rcut2 := rcut * rcut
	for i := 0; i < n; i++ {
		ci = coords.Vec(ci, i)
		for j := 0; j < n; j++ {
			cj = coords.Vec(cj, j)
			for _, t := range images {
				var d [3]float64
				var d2 float64
				for k := range d {
					d[k] = cj[k] + t[k] - ci[k]
					d2 += d[k] * d[k]
				}
				if d2 > rcut2 {
					continue
				}
				dist := math.Sqrt(d2)
				if dist > zeroDist {
					for k := range d {
						d[k] /= dist
					}
				} else {
					dist = 0
					d = [3]float64{0, 0, 1}
				}
				ret[i] = append(ret[i], neighbor{species: species[j], dist: dist, dir: d})
			}
		}
	}
	return ret, nil
}

// latticeImages returns the translation vectors of all the cell images
// that can hold atoms within rcut of an atom in the original cell.
// The zero translation comes first.
func latticeImages(cell *v3.Matrix, rcut float64) ([][3]float64, error) {
	h, err := v3.Heights(cell)
	if err != nil {
		return nil, fmt.Errorf("soap: bad periodic cell: %w", err)
	}
	var reps [3]int
	//one extra image for atoms lying somewhat outside the cell.
	for i, v := range h {
		reps[i] = int(math.Ceil(rcut/v)) + 1
	}
	ret := make([][3]float64, 1, (2*reps[0]+1)*(2*reps[1]+1)*(2*reps[2]+1))
	for a := -reps[0]; a <= reps[0]; a++ {
		for b := -reps[1]; b <= reps[1]; b++ {
			for c := -reps[2]; c <= reps[2]; c++ {
				if a == 0 && b == 0 && c == 0 {
					continue
				}
				var t [3]float64
				for k := range t {
					t[k] = float64(a)*cell.At(0, k) + float64(b)*cell.At(1, k) + float64(c)*cell.At(2, k)
				}
				ret = append(ret, t)
			}
		}
	}
	return ret, nil
}

// speciesIndexes returns the position in index of the species of each atom in mol.
func speciesIndexes(mol *chem.Molecule, index map[string]int) ([]int, error) {
	ret := make([]int, mol.Len())
	for i := range ret {
		s := mol.Atom(i).Symbol
		idx, ok := index[s]
		if !ok {
			return nil, fmt.Errorf("soap: atom %d of %s has species %q, which is not in the species list", i, mol.Name, s)
		}
		ret[i] = idx
	}
	return ret, nil
}
