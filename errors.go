/*
 * errors.go, part of dScribe-tools.
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
	"errors"
	"fmt"
	"strings"
)

// CError is the error type of the chem package. It keeps the name of the file
// involved (if any) and the list of functions it went through.
type CError struct {
	msg      string
	filename string
	deco     []string
	critical bool
}

// Error returns a string with an error message.
func (err CError) Error() string {
	if err.filename == "" {
		return err.msg
	}
	return fmt.Sprintf("%s (file: %s)", err.msg, err.filename)
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err CError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical returns whether the error is critical or it can be ignored.
func (err CError) Critical() bool { return err.critical }

// FileName returns the name of the file that caused the error, or the empty string.
func (err CError) FileName() string { return err.filename }

// Trace returns the chain of functions the error went through, innermost first.
func (err CError) Trace() string { return strings.Join(err.deco, " <- ") }

// errDecorate adds caller to the decoration of err, if err is a chem.Error, and
// returns it. Other errors, including wrapped ones, are returned unchanged.
func errDecorate(err error, caller string) error {
	if cerr, ok := err.(CError); ok {
		cerr.deco = cerr.Decorate(caller)
		return cerr
	}
	return err
}

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use CError.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilAtom        = PanicMsg("dScribe-tools: Attempted to copy from or to a nil Atom")
	ErrAtomOutOfRange = PanicMsg("dScribe-tools: Requested/Attempted setting Atom out of range")
)

// ErrUnsupportedFormat is returned (wrapped) when a file extension is not one of the readable formats.
var ErrUnsupportedFormat = errors.New("unsupported structure file format")
