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
Package chem is the main package of dScribe-tools. It provides atom and structure
types and readers for the files the descriptor tools work with.

	**Capabilities**

	Reads XYZ and extended XYZ files (a Lattice="..." comment gives the cell).

	Reads the first model of PDB files, with the CRYST1 cell.

	Reads small-molecule CIF files (fractional or cartesian atom sites, cell
	parameters with or without standard uncertainties, symmetry operations
	applied to build the full cell) and the atom sites of mmCIF files.

	Walks a directory for structure files and names every structure after its
	file, without the extension.

The descriptors themselves are in the soap package, the comparison kernels in
kernel, the parameter sweeps in sweep and the CSV/plot output in report.
*/
package chem
