/*
 * files.go, part of dScribe-tools.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	v3 "github.com/MattB-242/dScribe-tools/v3"
)

//XYZ family

// XYZFileRead reads an xyz file and returns a Molecule. If the comment line carries
// an extended-XYZ Lattice="..." entry, the molecule gets the corresponding cell.
func XYZFileRead(xyzname string) (*Molecule, error) {
	xyzfile, err := os.Open(xyzname)
	if err != nil {
		return nil, CError{err.Error(), xyzname, []string{"os.Open", "XYZFileRead"}, true}
	}
	defer xyzfile.Close()
	mol, err := XYZRead(xyzfile)
	if err != nil {
		if e, ok := err.(CError); ok {
			e.filename = xyzname
			err = e
		}
		return nil, errDecorate(err, "XYZFileRead")
	}
	mol.Name = StructureName(xyzname)
	return mol, nil
}

// XYZRead reads an xyz file from an io.Reader, returns a Molecule and an error.
// Only the first frame of a multi-XYZ file is read.
func XYZRead(xyzp io.Reader) (*Molecule, error) {
	xyz := bufio.NewReader(xyzp)
	line, err := xyz.ReadString('\n')
	if err != nil && strings.TrimSpace(line) == "" {
		return nil, CError{"Empty XYZ file", "", []string{"XYZRead"}, true}
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || natoms <= 0 {
		return nil, CError{fmt.Sprintf("Ill formatted XYZ file: bad number of atoms %q", strings.TrimSpace(line)), "", []string{"XYZRead"}, true}
	}
	comment, err := xyz.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, CError{"Ill formatted XYZ file: missing comment line", "", []string{"XYZRead"}, true}
	}
	cell, err := extXYZLattice(comment)
	if err != nil {
		return nil, errDecorate(err, "XYZRead")
	}
	atoms := make([]*Atom, natoms)
	coords := make([]float64, natoms*3)
	for i := 0; i < natoms; i++ {
		line, err = xyz.ReadString('\n')
		if err != nil && (err != io.EOF || strings.TrimSpace(line) == "") {
			return nil, CError{fmt.Sprintf("Ill formatted XYZ file: expected %d atoms, found %d", natoms, i), "", []string{"XYZRead"}, true}
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, CError{fmt.Sprintf("Line number %d ill formed", i+3), "", []string{"XYZRead"}, true}
		}
		atoms[i] = new(Atom)
		atoms[i].Symbol = CanonicalSymbol(fields[0])
		atoms[i].Name = fields[0]
		atoms[i].ID = i + 1
		atoms[i].Mass = symbolMass[atoms[i].Symbol]
		for j := 0; j < 3; j++ {
			coords[i*3+j], err = strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return nil, CError{fmt.Sprintf("Line number %d: can't parse coordinate %q", i+3, fields[j+1]), "", []string{"strconv.ParseFloat", "XYZRead"}, true}
			}
		}
	}
	mcoords, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, errDecorate(err, "XYZRead")
	}
	return NewMolecule(mcoords, NewTopology(0, 1, atoms), cell)
}

// extXYZLattice returns the cell given in an extended XYZ comment line,
// or nil if there is none.
func extXYZLattice(comment string) (*v3.Matrix, error) {
	const key = "lattice=\""
	i := strings.Index(strings.ToLower(comment), key)
	if i < 0 {
		return nil, nil
	}
	rest := comment[i+len(key):]
	end := strings.Index(rest, "\"")
	if end < 0 {
		return nil, CError{"Unterminated Lattice entry in extended XYZ comment", "", []string{"extXYZLattice"}, true}
	}
	fields := strings.Fields(rest[:end])
	if len(fields) != 9 {
		return nil, CError{fmt.Sprintf("Lattice entry should have 9 numbers, has %d", len(fields)), "", []string{"extXYZLattice"}, true}
	}
	data := make([]float64, 9)
	var err error
	for k, v := range fields {
		data[k], err = strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, CError{fmt.Sprintf("Can't parse lattice component %q", v), "", []string{"extXYZLattice"}, true}
		}
	}
	return v3.NewMatrix(data)
}

// XYZFileWrite writes the molecule mol in an XYZ file with name xyzname which will
// be created for that. If the file exists it will be overwritten.
func XYZFileWrite(xyzname string, mol *Molecule) error {
	out, err := os.Create(xyzname)
	if err != nil {
		return CError{err.Error(), xyzname, []string{"os.Create", "XYZFileWrite"}, true}
	}
	defer out.Close()
	return errDecorate(XYZWrite(out, mol), "XYZFileWrite")
}

// XYZWrite writes mol to out in XYZ format. If mol has a cell, the comment line
// will carry it as an extended-XYZ Lattice entry.
func XYZWrite(out io.Writer, mol *Molecule) error {
	if err := mol.Corrupted(); err != nil {
		return errDecorate(err, "XYZWrite")
	}
	if _, err := fmt.Fprintf(out, "%-4d\n", mol.Len()); err != nil {
		return CError{err.Error(), "", []string{"XYZWrite"}, true}
	}
	comment := mol.Name
	if mol.Cell != nil {
		c := make([]string, 0, 9)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				c = append(c, strconv.FormatFloat(mol.Cell.At(i, j), 'f', -1, 64))
			}
		}
		comment = fmt.Sprintf("Lattice=\"%s\" pbc=\"T T T\" %s", strings.Join(c, " "), mol.Name)
	}
	fmt.Fprintf(out, "%s\n", comment)
	for i := 0; i < mol.Len(); i++ {
		_, err := fmt.Fprintf(out, "%-2s  %12.6f%12.6f%12.6f\n", mol.Atom(i).Symbol, mol.Coords.At(i, 0), mol.Coords.At(i, 1), mol.Coords.At(i, 2))
		if err != nil {
			return CError{err.Error(), "", []string{"XYZWrite"}, true}
		}
	}
	return nil
}

//PDB family

// PDBFileRead reads the first model of a PDB file. A CRYST1 record, if present,
// gives the periodic cell.
func PDBFileRead(pdbname string) (*Molecule, error) {
	pdbfile, err := os.Open(pdbname)
	if err != nil {
		return nil, CError{err.Error(), pdbname, []string{"os.Open", "PDBFileRead"}, true}
	}
	defer pdbfile.Close()
	mol, err := PDBRead(pdbfile)
	if err != nil {
		if e, ok := err.(CError); ok {
			e.filename = pdbname
			err = e
		}
		return nil, errDecorate(err, "PDBFileRead")
	}
	mol.Name = StructureName(pdbname)
	return mol, nil
}

// PDBRead reads the first model of a PDB file from an io.Reader.
func PDBRead(pdbp io.Reader) (*Molecule, error) {
	pdb := bufio.NewScanner(pdbp)
	atoms := make([]*Atom, 0, 64)
	coords := make([]float64, 0, 64*3)
	var cell *v3.Matrix
	var err error
	contlines := 0
	for pdb.Scan() {
		line := pdb.Text()
		contlines++
		if strings.HasPrefix(line, "ENDMDL") {
			break
		}
		if strings.HasPrefix(line, "CRYST1") {
			cell, err = readCryst1(line)
			if err != nil {
				return nil, CError{fmt.Sprintf("Line %d: %s", contlines, err.Error()), "", []string{"readCryst1", "PDBRead"}, true}
			}
			continue
		}
		if !strings.HasPrefix(line, "ATOM") && !strings.HasPrefix(line, "HETATM") {
			continue
		}
		at, c, err := readPDBAtomLine(line)
		if err != nil {
			return nil, CError{fmt.Sprintf("Line %d: %s", contlines, err.Error()), "", []string{"readPDBAtomLine", "PDBRead"}, true}
		}
		atoms = append(atoms, at)
		coords = append(coords, c[:]...)
	}
	if err := pdb.Err(); err != nil {
		return nil, CError{err.Error(), "", []string{"bufio.Scanner", "PDBRead"}, true}
	}
	if len(atoms) == 0 {
		return nil, CError{"No atoms found in PDB", "", []string{"PDBRead"}, true}
	}
	mcoords, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, errDecorate(err, "PDBRead")
	}
	return NewMolecule(mcoords, NewTopology(0, 1, atoms), cell)
}

func readCryst1(line string) (*v3.Matrix, error) {
	if len(line) < 54 {
		return nil, fmt.Errorf("CRYST1 record too short")
	}
	var p [6]float64
	var err error
	bounds := [7]int{6, 15, 24, 33, 40, 47, 54}
	for i := range p {
		p[i], err = strconv.ParseFloat(strings.TrimSpace(line[bounds[i]:bounds[i+1]]), 64)
		if err != nil {
			return nil, fmt.Errorf("can't parse CRYST1 field %d: %w", i+1, err)
		}
	}
	//1x1x1 cells are a placeholder in many non-crystal PDBs
	if p[0] == 1 && p[1] == 1 && p[2] == 1 {
		return nil, nil
	}
	return v3.CellFromParameters(p[0], p[1], p[2], p[3], p[4], p[5])
}

// Parses a valid ATOM or HETATM line of a PDB file, returns an Atom
// object with the info except for the coordinates, which are returned separately.
func readPDBAtomLine(line string) (*Atom, [3]float64, error) {
	var coords [3]float64
	var err error
	if len(line) < 54 {
		return nil, coords, fmt.Errorf("ATOM record too short (%d characters)", len(line))
	}
	atom := new(Atom)
	atom.ID, err = strconv.Atoi(strings.TrimSpace(line[6:11]))
	if err != nil {
		return nil, coords, fmt.Errorf("can't parse atom serial number: %w", err)
	}
	atom.Name = strings.TrimSpace(line[12:16])
	atom.MolName = strings.TrimSpace(line[17:20])
	atom.MolID, _ = strconv.Atoi(strings.TrimSpace(line[22:26])) //residue numbers are not used anywhere
	for i := 0; i < 3; i++ {
		coords[i], err = strconv.ParseFloat(strings.TrimSpace(line[30+8*i:38+8*i]), 64)
		if err != nil {
			return nil, coords, fmt.Errorf("can't parse coordinate %d: %w", i, err)
		}
	}
	if len(line) >= 78 {
		atom.Symbol = CanonicalSymbol(line[76:78])
	}
	if atom.Symbol == "" {
		atom.Symbol = symbolFromName(atom.Name)
	}
	if atom.Symbol == "" {
		return nil, coords, fmt.Errorf("couldn't guess the element of atom %q", atom.Name)
	}
	atom.Mass = symbolMass[atom.Symbol]
	return atom, coords, nil
}
