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
Package dsf implements the descriptor store format, a simple file format
to keep SOAP descriptors (or any other real matrices) for later analysis.

A DSF file is a text file compressed with z-standard (zstd), and it
may only contain ASCII symbols. The file holds one or more records.

Each record starts with a header: lines with pairs key=value, which
describe the matrix (the structure name, the descriptor parameters, the run
that produced it). Keys can't contain the symbol "=" nor start with "*".
The header ends with a line starting with the characters "**", followed by
one or more spaces, the number of rows, one or more spaces, and the number
of columns of the matrix.

Then, the record has one line per row of the matrix, with the elements of the
row separated by one space. The numbers are written in the shortest form that
reads back to the same float64 value.

Each record ends with a line with only the character "*".
*/
package dsf
