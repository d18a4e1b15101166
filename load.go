/*
 * load.go, part of dScribe-tools.
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
	"io/fs"
	"path/filepath"
	"strings"
)

// readers maps the supported file extensions to their readers.
var readers = map[string]func(string) (*Molecule, error){
	".xyz":    XYZFileRead,
	".extxyz": XYZFileRead,
	".pdb":    PDBFileRead,
	".cif":    CIFFileRead,
}

// Supported returns true if the extension of name is one of the readable structure formats.
func Supported(name string) bool {
	_, ok := readers[tl(filepath.Ext(name))]
	return ok
}

// StructureName returns the base name of path without its extension, which is
// used as the name of the structure in reports and output file names.
func StructureName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FileRead reads the structure in the file name, choosing the reader from
// the file extension.
func FileRead(name string) (*Molecule, error) {
	r, ok := readers[tl(filepath.Ext(name))]
	if !ok {
		return nil, fmt.Errorf("reading %s: %w", name, ErrUnsupportedFormat)
	}
	mol, err := r(name)
	if err != nil {
		return nil, errDecorate(err, "FileRead")
	}
	return mol, nil
}

// ListStructures walks dir and returns the paths of up to n readable structure
// files, in lexical order. If n is 0 or less, all the files are returned.
func ListStructures(dir string, n int) ([]string, error) {
	files := make([]string, 0, max(n, 8))
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !Supported(path) {
			return nil
		}
		files = append(files, path)
		if n > 0 && len(files) >= n {
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing structures in %s: %w", dir, err)
	}
	return files, nil
}

// LoadFiles reads every file in paths, in order.
func LoadFiles(paths []string) ([]*Molecule, error) {
	mols := make([]*Molecule, 0, len(paths))
	for _, v := range paths {
		mol, err := FileRead(v)
		if err != nil {
			return nil, err
		}
		mols = append(mols, mol)
	}
	return mols, nil
}

// LoadDir reads up to n structures (all of them if n<=0) from dir.
// It returns an error if no structure could be found.
func LoadDir(dir string, n int) ([]*Molecule, error) {
	paths, err := ListStructures(dir, n)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no structure files in %s", dir)
	}
	return LoadFiles(paths)
}

// Names returns the names of the given molecules, in order.
func Names(mols []*Molecule) []string {
	ret := make([]string, len(mols))
	for i, v := range mols {
		ret[i] = v.Name
	}
	return ret
}
