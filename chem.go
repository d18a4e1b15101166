/*
 * chem.go, part of dScribe-tools.
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

import (
	"fmt"
	"sort"

	v3 "github.com/MattB-242/dScribe-tools/v3"
)

// Atom contains the atoms read except for the coordinates, which will be in a matrix.
type Atom struct {
	Name    string
	ID      int
	Symbol  string
	Mass    float64
	Charge  float64
	MolName string
	MolID   int
}

// Copy puts a copy of A in the receiver.
func (N *Atom) Copy(A *Atom) {
	if A == nil || N == nil {
		panic(ErrNilAtom)
	}
	*N = *A
}

/*****Topology type***/

// Topology contains information about a structure which is not expected to change
// (i.e. everything except for coordinates).
type Topology struct {
	Atoms  []*Atom
	charge int
	multi  int
}

// NewTopology returns a topology with the given charge and multiplicity and the
// given atoms. The slice is not copied.
func NewTopology(charge, multi int, ats []*Atom) *Topology {
	top := new(Topology)
	top.Atoms = ats
	if top.Atoms == nil {
		top.Atoms = make([]*Atom, 0)
	}
	top.charge = charge
	top.multi = multi
	return top
}

// Charge gets the total charge of the topology
func (T *Topology) Charge() int {
	return T.charge
}

// Multi returns the multiplicity of the topology
func (T *Topology) Multi() int {
	return T.multi
}

// Atom returns the Atom corresponding to the index i
// of the Atom slice in the Topology. Panics if
// out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic(ErrAtomOutOfRange)
	}
	return T.Atoms[i]
}

// Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

// Symbols returns a slice with the chemical symbol of every atom, in order.
func (T *Topology) Symbols() []string {
	ret := make([]string, T.Len())
	for i, v := range T.Atoms {
		ret[i] = v.Symbol
	}
	return ret
}

// Species returns the sorted set of chemical symbols present in the topology.
func (T *Topology) Species() []string {
	seen := make(map[string]bool, 4)
	ret := make([]string, 0, 4)
	for _, v := range T.Atoms {
		if seen[v.Symbol] {
			continue
		}
		seen[v.Symbol] = true
		ret = append(ret, v.Symbol)
	}
	sort.Strings(ret)
	return ret
}

/**Type Molecule**/

// Molecule is a structure read from a file: a topology, one set of cartesian
// coordinates and, for crystals, the lattice vectors of the periodic cell.
// Nothing in the library changes a Molecule after it has been read.
type Molecule struct {
	*Topology
	Coords *v3.Matrix
	//Lattice vectors, one per row. nil for non-periodic structures.
	Cell *v3.Matrix
	Name string
}

// NewMolecule makes a molecule with ats atoms, coords coordinates and cell lattice
// vectors (which can be nil). It returns an error if the coordinates don't match
// the atoms or the cell doesn't have 3 vectors.
func NewMolecule(coords *v3.Matrix, ats *Topology, cell *v3.Matrix) (*Molecule, error) {
	if ats == nil {
		return nil, CError{"Supplied a nil Topology", "", []string{"NewMolecule"}, true}
	}
	if coords == nil {
		return nil, CError{"Supplied nil coordinates", "", []string{"NewMolecule"}, true}
	}
	mol := new(Molecule)
	mol.Topology = ats
	mol.Coords = coords
	mol.Cell = cell
	if err := mol.Corrupted(); err != nil {
		return nil, errDecorate(err, "NewMolecule")
	}
	return mol, nil
}

// Corrupted checks whether the molecule is corrupted, i.e. the
// coordinates don't match the number of atoms, or the cell is not
// a set of 3 vectors.
func (M *Molecule) Corrupted() error {
	if M.Coords.NVecs() != M.Len() {
		return CError{fmt.Sprintf("Inconsistent coordinates/atoms: Atoms %d, coords: %d", M.Len(), M.Coords.NVecs()), M.Name, []string{"Corrupted"}, true}
	}
	if M.Cell != nil && M.Cell.NVecs() != 3 {
		return CError{fmt.Sprintf("Cell should have 3 lattice vectors, has %d", M.Cell.NVecs()), M.Name, []string{"Corrupted"}, true}
	}
	return nil
}

// Periodic returns true if the molecule has a periodic cell.
func (M *Molecule) Periodic() bool {
	return M.Cell != nil
}
