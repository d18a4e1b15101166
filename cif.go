/*
 * cif.go, part of dScribe-tools.
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
	"math"
	"os"
	"strconv"
	"strings"

	v3 "github.com/MattB-242/dScribe-tools/v3"
)

var tl func(string) string = strings.ToLower

// CIFFileRead reads the first data block of a CIF file. Both small-molecule
// (_atom_site_fract_x) and mmCIF (_atom_site.Cartn_x) atom sites are understood.
// Fractional sites are expanded with the symmetry operations of the block (see CIFRead).
func CIFFileRead(cifname string) (*Molecule, error) {
	ciffile, err := os.Open(cifname)
	if err != nil {
		return nil, CError{err.Error(), cifname, []string{"os.Open", "CIFFileRead"}, true}
	}
	defer ciffile.Close()
	mol, err := CIFRead(ciffile)
	if err != nil {
		if e, ok := err.(CError); ok {
			e.filename = cifname
			err = e
		}
		return nil, errDecorate(err, "CIFFileRead")
	}
	mol.Name = StructureName(cifname)
	return mol, nil
}

// cifmap maps the lowercase, underscore-only, name of a loop column to its index.
type cifmap map[string]int

// returns the index for the first of the given keys present in the map, or -1.
func (m cifmap) get(s ...string) int {
	for _, v := range s {
		if i, ok := m[v]; ok {
			return i
		}
	}
	return -1
}

// cifKey normalizes a data name, so "_atom_site.Cartn_x" and "_atom_site_cartn_x"
// are the same key.
func cifKey(s string) string {
	return strings.Replace(tl(strings.TrimSpace(s)), ".", "_", -1)
}

// cifFloat parses a CIF number, dropping the standard uncertainty, if present ("1.234(5)").
func cifFloat(s string) (float64, error) {
	if i := strings.Index(s, "("); i > 0 {
		s = s[:i]
	}
	if s == "?" || s == "." {
		return 0, fmt.Errorf("missing value %q", s)
	}
	return strconv.ParseFloat(s, 64)
}

// cifFields splits a CIF line in tokens, honoring single and double quotes.
func cifFields(line string) []string {
	ret := make([]string, 0, 8)
	i := 0
	for i < len(line) {
		for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
		if i >= len(line) {
			break
		}
		if line[i] == '#' {
			break
		}
		q := line[i]
		if q == '\'' || q == '"' {
			end := i + 1
			//a quote only closes a token if followed by whitespace or the end of the line
			for end < len(line) && !(line[end] == q && (end+1 == len(line) || line[end+1] == ' ' || line[end+1] == '\t')) {
				end++
			}
			ret = append(ret, line[i+1:min(end, len(line))])
			i = end + 1
			continue
		}
		end := i
		for end < len(line) && line[end] != ' ' && line[end] != '\t' {
			end++
		}
		ret = append(ret, line[i:end])
		i = end
	}
	return ret
}

// cifloop is a loop_ of a CIF data block: its column keys and its rows.
type cifloop struct {
	keys cifmap
	rows [][]string
}

// symopKeys are the names of the symmetry operation column, old and new style.
var symopKeys = []string{"_symmetry_equiv_pos_as_xyz", "_space_group_symop_operation_xyz"}

// CIFRead reads the first data block of a CIF file from an io.Reader.
// If the sites are given in fractional coordinates and the block lists symmetry
// operations, every operation is applied to every site, and the images, wrapped
// into the cell, are added to the structure. Images falling on a site already
// generated from the same atom (special positions) are dropped.
func CIFRead(cifp io.Reader) (*Molecule, error) {
	scanner := bufio.NewScanner(cifp)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	cellpar := map[string]float64{}
	cellkeys := []string{"_cell_length_a", "_cell_length_b", "_cell_length_c", "_cell_angle_alpha", "_cell_angle_beta", "_cell_angle_gamma"}
	var loops []*cifloop
	var cur *cifloop
	var ops []string //symmetry operations given as single key-value pairs
	var readingkeys, seenblock bool
	contlines := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		contlines++
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, ";") { //multi-line text fields are never atom or symmetry data
			for scanner.Scan() {
				contlines++
				if strings.HasPrefix(scanner.Text(), ";") {
					break
				}
			}
			continue
		}
		if strings.HasPrefix(tl(line), "data_") {
			if seenblock {
				break
			}
			seenblock = true
			continue
		}
		if tl(line) == "loop_" {
			cur = &cifloop{keys: cifmap{}}
			loops = append(loops, cur)
			readingkeys = true
			continue
		}
		if strings.HasPrefix(line, "_") {
			fields := cifFields(line)
			key := cifKey(fields[0])
			if cur != nil && readingkeys && len(fields) == 1 {
				cur.keys[key] = len(cur.keys)
				continue
			}
			//a key-value pair ends any loop
			cur, readingkeys = nil, false
			if len(fields) < 2 {
				continue
			}
			if isInString(cellkeys, key) {
				v, err := cifFloat(fields[1])
				if err != nil {
					return nil, CError{fmt.Sprintf("Line %d: can't parse %s: %s", contlines, key, err.Error()), "", []string{"CIFRead"}, true}
				}
				cellpar[key] = v
			}
			if isInString(symopKeys, key) {
				ops = append(ops, fields[1])
			}
			continue
		}
		if cur == nil {
			continue
		}
		readingkeys = false
		fields := cifFields(line)
		//rows can span several lines
		if n := len(cur.rows); n > 0 && len(cur.rows[n-1]) < len(cur.keys) {
			cur.rows[n-1] = append(cur.rows[n-1], fields...)
		} else {
			cur.rows = append(cur.rows, fields)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, CError{err.Error(), "", []string{"bufio.Scanner", "CIFRead"}, true}
	}
	var atoms *cifloop
	for _, l := range loops {
		if atoms == nil && len(l.rows) > 0 && l.isAtomSites() {
			atoms = l
		}
		if c := l.keys.get(symopKeys...); c >= 0 {
			for i, r := range l.rows {
				if c >= len(r) {
					return nil, CError{fmt.Sprintf("Symmetry operation %d has no xyz value", i+1), "", []string{"CIFRead"}, true}
				}
				ops = append(ops, r[c])
			}
		}
	}
	if atoms == nil {
		return nil, CError{"No _atom_site loop found", "", []string{"CIFRead"}, true}
	}
	var cell *v3.Matrix
	var err error
	if len(cellpar) == 6 {
		p := make([]float64, 6)
		for i, k := range cellkeys {
			p[i] = cellpar[k]
		}
		cell, err = v3.CellFromParameters(p[0], p[1], p[2], p[3], p[4], p[5])
		if err != nil {
			return nil, errDecorate(err, "CIFRead")
		}
	} else if len(cellpar) != 0 {
		return nil, CError{fmt.Sprintf("Incomplete cell: only %d of 6 parameters given", len(cellpar)), "", []string{"CIFRead"}, true}
	}
	symops := make([]symop, len(ops))
	for i, v := range ops {
		symops[i], err = parseSymop(v)
		if err != nil {
			return nil, CError{fmt.Sprintf("Symmetry operation %d: %s", i+1, err.Error()), "", []string{"parseSymop", "CIFRead"}, true}
		}
	}
	return cifMolecule(atoms.rows, atoms.keys, cell, symops)
}

// isAtomSites returns true if l is the loop of atom sites (and not, say, the one of
// anisotropic displacements).
func (l *cifloop) isAtomSites() bool {
	for k, i := range l.keys {
		if i == 0 {
			return strings.HasPrefix(k, "_atom_site_") && !strings.HasPrefix(k, "_atom_site_aniso")
		}
	}
	return false
}

func cifMolecule(rows [][]string, m cifmap, cell *v3.Matrix, symops []symop) (*Molecule, error) {
	symcol := m.get("_atom_site_type_symbol", "_atom_site_label")
	if symcol < 0 {
		return nil, CError{"The _atom_site loop has neither type_symbol nor label", "", []string{"cifMolecule"}, true}
	}
	labelcol := m.get("_atom_site_label", "_atom_site_auth_atom_id", "_atom_site_label_atom_id")
	frac := true
	xyzcols := [3]int{m.get("_atom_site_fract_x"), m.get("_atom_site_fract_y"), m.get("_atom_site_fract_z")}
	if xyzcols[0] < 0 || xyzcols[1] < 0 || xyzcols[2] < 0 {
		frac = false
		xyzcols = [3]int{m.get("_atom_site_cartn_x"), m.get("_atom_site_cartn_y"), m.get("_atom_site_cartn_z")}
	}
	if xyzcols[0] < 0 || xyzcols[1] < 0 || xyzcols[2] < 0 {
		return nil, CError{"The _atom_site loop has no complete set of coordinates", "", []string{"cifMolecule"}, true}
	}
	if frac && cell == nil {
		return nil, CError{"Fractional coordinates given without a cell", "", []string{"cifMolecule"}, true}
	}
	//symmetry operations only make sense for crystallographic, fractional, sites
	if !frac {
		symops = nil
	}
	atoms := make([]*Atom, 0, len(rows)*max(1, len(symops)))
	coords := make([]float64, 0, 3*cap(atoms))
	for i, r := range rows {
		if len(r) < len(m) {
			return nil, CError{fmt.Sprintf("Atom site %d has %d values, %d expected", i+1, len(r), len(m)), "", []string{"cifMolecule"}, true}
		}
		symbol := CanonicalSymbol(r[symcol])
		if _, ok := AtomicNumber(symbol); !ok {
			return nil, CError{fmt.Sprintf("Unknown element %q for atom site %d", r[symcol], i+1), "", []string{"cifMolecule"}, true}
		}
		var site [3]float64
		for j, c := range xyzcols {
			v, err := cifFloat(r[c])
			if err != nil {
				return nil, CError{fmt.Sprintf("Atom site %d: %s", i+1, err.Error()), "", []string{"cifFloat", "cifMolecule"}, true}
			}
			site[j] = v
		}
		images := [][3]float64{site}
		if len(symops) > 0 {
			images = siteImages(site, symops)
		}
		for _, im := range images {
			at := new(Atom)
			at.ID = len(atoms) + 1
			at.Symbol = symbol
			if labelcol >= 0 {
				at.Name = r[labelcol]
			}
			at.Mass = symbolMass[symbol]
			atoms = append(atoms, at)
			coords = append(coords, im[:]...)
		}
	}
	mcoords, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, errDecorate(err, "cifMolecule")
	}
	if frac {
		cart := v3.Zeros(mcoords.NVecs())
		cart.FracToCart(mcoords, cell)
		mcoords = cart
	}
	return NewMolecule(mcoords, NewTopology(0, 1, atoms), cell)
}

// symopTol is the distance, in fractional coordinates, under which two images
// of a site are the same.
const symopTol = 1e-3

// symop is a crystallographic symmetry operation, acting on fractional
// coordinates as rot·x + trans.
type symop struct {
	rot   [3][3]float64
	trans [3]float64
}

// apply returns the image of the fractional site x, wrapped into [0,1).
func (s symop) apply(x [3]float64) [3]float64 {
	var ret [3]float64
	for i := range ret {
		v := s.trans[i]
		for j := range x {
			v += s.rot[i][j] * x[j]
		}
		v -= math.Floor(v)
		if v >= 1 { //tiny negative values round to 1
			v = 0
		}
		ret[i] = v
	}
	return ret
}

// siteImages returns the distinct images of the fractional site x under ops,
// in the order of the operations.
func siteImages(x [3]float64, ops []symop) [][3]float64 {
	ret := make([][3]float64, 0, len(ops))
	for _, op := range ops {
		im := op.apply(x)
		dup := false
		for _, prev := range ret {
			if fracClose(im, prev) {
				dup = true
				break
			}
		}
		if !dup {
			ret = append(ret, im)
		}
	}
	return ret
}

// fracClose returns true if the fractional positions a and b are within symopTol
// of each other, considering the periodicity of the cell.
func fracClose(a, b [3]float64) bool {
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if math.Min(d, 1-d) > symopTol {
			return false
		}
	}
	return true
}

// parseSymop parses an operation like "-x+1/2, y, z-1/2" (case and spaces
// don't matter).
func parseSymop(s string) (symop, error) {
	var op symop
	parts := strings.Split(strings.ReplaceAll(tl(s), " ", ""), ",")
	if len(parts) != 3 {
		return op, fmt.Errorf("%q doesn't have 3 components", s)
	}
	for i, p := range parts {
		if p == "" {
			return op, fmt.Errorf("empty component in %q", s)
		}
		for len(p) > 0 {
			sign := 1.0
			switch p[0] {
			case '-':
				sign = -1
				p = p[1:]
			case '+':
				p = p[1:]
			}
			if p == "" {
				return op, fmt.Errorf("dangling sign in %q", s)
			}
			if j := strings.IndexByte("xyz", p[0]); j >= 0 {
				op.rot[i][j] += sign
				p = p[1:]
				continue
			}
			end := strings.IndexAny(p, "+-xyz")
			if end < 0 {
				end = len(p)
			}
			v, err := symopNumber(p[:end])
			if err != nil {
				return op, fmt.Errorf("bad term %q in %q", p[:end], s)
			}
			p = p[end:]
			//a coefficient, as in "2x" or "1/2*x"
			if len(p) > 0 && strings.IndexByte("xyz", p[0]) >= 0 {
				op.rot[i][strings.IndexByte("xyz", p[0])] += sign * v
				p = p[1:]
				continue
			}
			op.trans[i] += sign * v
		}
	}
	return op, nil
}

// symopNumber parses a number or a fraction, like "0.5" or "1/2". A trailing "*"
// is allowed.
func symopNumber(s string) (float64, error) {
	s = strings.TrimSuffix(s, "*")
	num, den, isfrac := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil || !isfrac {
		return n, err
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, fmt.Errorf("zero denominator")
	}
	return n / d, nil
}
