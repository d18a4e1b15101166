/*
 * dsf.go, part of dScribe-tools.
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

package dsf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/MattB-242/dScribe-tools/soap"
	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/mat"
)

// Writer writes records to a DSF file.
type Writer struct {
	f         *os.File
	h         io.WriteCloser
	b         *bufio.Writer
	filename  string
	writeable bool
	runID     string
	records   int
}

// NewWriter creates the file name and returns a writer to it. If runID is not
// empty, it is added to the header of every record, with the key "run".
// A zstd compression level can be given, otherwise, the default is used.
func NewWriter(name string, runID string, compressionLevel ...zstd.EncoderLevel) (*Writer, error) {
	level := zstd.SpeedDefault
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
	}
	W := &Writer{filename: name, runID: runID}
	var err error
	W.f, err = os.Create(name)
	if err != nil {
		return nil, Error{"Can't create file: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	W.h, err = zstd.NewWriter(W.f, zstd.WithEncoderLevel(level))
	if err != nil {
		W.f.Close()
		return nil, Error{"Can't start compression: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	W.b = bufio.NewWriter(W.h)
	W.writeable = true
	return W, nil
}

// Len returns the number of records written so far.
func (W *Writer) Len() int {
	return W.records
}

// WNext writes a record with the given header and matrix.
func (W *Writer) WNext(header map[string]string, M mat.Matrix) error {
	if !W.writeable {
		return Error{WriterClosed, W.filename, []string{"WNext"}, true}
	}
	if M == nil {
		return Error{NilMatrix, W.filename, []string{"WNext"}, true}
	}
	r, c := M.Dims()
	if r == 0 || c == 0 {
		return Error{EmptyMatrix, W.filename, []string{"WNext"}, true}
	}
	h := make(map[string]string, len(header)+1)
	for k, v := range header {
		if k == "" || strings.ContainsAny(k, "=\n") || strings.HasPrefix(k, "*") || strings.Contains(v, "\n") {
			return Error{fmt.Sprintf("Invalid header entry %q=%q", k, v), W.filename, []string{"WNext"}, true}
		}
		h[k] = v
	}
	if W.runID != "" {
		h["run"] = W.runID
	}
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	//the record is assembled before anything is written, so a rejected
	//record leaves no trace in the file.
	rec := make([]byte, 0, 64*len(keys)+24*r*c+16)
	for _, k := range keys {
		rec = append(rec, k...)
		rec = append(rec, '=')
		rec = append(rec, h[k]...)
		rec = append(rec, '\n')
	}
	rec = fmt.Appendf(rec, "** %d %d\n", r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if j > 0 {
				rec = append(rec, ' ')
			}
			rec = strconv.AppendFloat(rec, M.At(i, j), 'g', -1, 64)
		}
		rec = append(rec, '\n')
	}
	rec = append(rec, "*\n"...)
	if _, err := W.b.Write(rec); err != nil {
		return Error{"Can't write record: " + err.Error(), W.filename, []string{"WNext"}, true}
	}
	W.records++
	return nil
}

// Put writes the descriptor desc, of the structure name, created with the options o.
func (W *Writer) Put(name string, o soap.Options, desc *mat.Dense) error {
	h := OptionsHeader(o)
	h["name"] = name
	return W.WNext(h, desc)
}

// Close flushes and closes the file. The writer can't be used after this call.
func (W *Writer) Close() error {
	if W == nil || !W.writeable {
		return nil
	}
	W.writeable = false
	err := W.b.Flush()
	if err2 := W.h.Close(); err == nil {
		err = err2
	}
	if err2 := W.f.Close(); err == nil {
		err = err2
	}
	if err != nil {
		return Error{"Can't close file: " + err.Error(), W.filename, []string{"Close"}, true}
	}
	return nil
}

// OptionsHeader returns the header entries that describe the SOAP options o.
func OptionsHeader(o soap.Options) map[string]string {
	return map[string]string{
		"species":  strings.Join(o.Species, " "),
		"rcut":     strconv.FormatFloat(o.RCut, 'g', -1, 64),
		"nmax":     strconv.Itoa(o.NMax),
		"lmax":     strconv.Itoa(o.LMax),
		"sigma":    strconv.FormatFloat(o.Sigma, 'g', -1, 64),
		"periodic": strconv.FormatBool(o.Periodic),
		"basis":    string(o.Basis),
	}
}

// HeaderOptions reads back the SOAP options from a header written with OptionsHeader.
func HeaderOptions(h map[string]string) (soap.Options, error) {
	var o soap.Options
	var err error
	for _, k := range []string{"species", "rcut", "nmax", "lmax", "sigma", "periodic", "basis"} {
		if _, ok := h[k]; !ok {
			return o, fmt.Errorf("dsf: header lacks the %q key", k)
		}
	}
	o.Species = strings.Fields(h["species"])
	if o.RCut, err = strconv.ParseFloat(h["rcut"], 64); err != nil {
		return o, fmt.Errorf("dsf: bad rcut: %w", err)
	}
	if o.NMax, err = strconv.Atoi(h["nmax"]); err != nil {
		return o, fmt.Errorf("dsf: bad nmax: %w", err)
	}
	if o.LMax, err = strconv.Atoi(h["lmax"]); err != nil {
		return o, fmt.Errorf("dsf: bad lmax: %w", err)
	}
	if o.Sigma, err = strconv.ParseFloat(h["sigma"], 64); err != nil {
		return o, fmt.Errorf("dsf: bad sigma: %w", err)
	}
	if o.Periodic, err = strconv.ParseBool(h["periodic"]); err != nil {
		return o, fmt.Errorf("dsf: bad periodic flag: %w", err)
	}
	if o.Basis, err = soap.ParseBasis(h["basis"]); err != nil {
		return o, err
	}
	return o, nil
}

// Reader reads records from a DSF file.
type Reader struct {
	f        *os.File
	z        *zstd.Decoder
	h        *bufio.Reader
	filename string
	readable bool
	header   map[string]string
}

// NewReader opens the DSF file name for reading.
func NewReader(name string) (*Reader, error) {
	R := &Reader{filename: name}
	var err error
	R.f, err = os.Open(name)
	if err != nil {
		return nil, Error{"Can't open file: " + err.Error(), name, []string{"NewReader"}, true}
	}
	R.z, err = zstd.NewReader(bufio.NewReader(R.f))
	if err != nil {
		R.f.Close()
		return nil, Error{"Can't start decompression: " + err.Error(), name, []string{"NewReader"}, true}
	}
	R.h = bufio.NewReader(R.z)
	R.readable = true
	return R, nil
}

// Readable returns true if it is possible to call Next on the reader.
func (R *Reader) Readable() bool {
	return R.readable
}

// Header returns the header of the last record read.
func (R *Reader) Header() map[string]string {
	return R.header
}

// Next reads the next record, returning its matrix. Its header is available
// afterwards through the Header method. When there are no more records,
// Next closes the reader and returns io.EOF.
func (R *Reader) Next() (*mat.Dense, error) {
	if !R.readable {
		return nil, Error{ReaderClosed, R.filename, []string{"Next"}, true}
	}
	header := make(map[string]string)
	var rows, cols int
	for first := true; ; first = false {
		str, err := R.h.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && first && str == "" {
				R.Close()
				return nil, io.EOF
			}
			return nil, Error{"Can't read header: " + err.Error(), R.filename, []string{"Next"}, true}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, "**") {
			f := strings.Fields(str)
			if len(f) != 3 {
				return nil, Error{fmt.Sprintf("Malformed dimensions line '%s'", str), R.filename, []string{"Next"}, true}
			}
			rows, err = strconv.Atoi(f[1])
			if err == nil {
				cols, err = strconv.Atoi(f[2])
			}
			if err != nil || rows <= 0 || cols <= 0 {
				return nil, Error{fmt.Sprintf("Can't read the dimensions from '%s'", str), R.filename, []string{"Next"}, true}
			}
			break
		}
		k, v, ok := strings.Cut(str, "=")
		if !ok {
			return nil, Error{fmt.Sprintf("Malformed header line '%s'", str), R.filename, []string{"Next"}, true}
		}
		header[k] = v
	}
	M := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		str, err := R.h.ReadString('\n')
		if err != nil {
			return nil, Error{fmt.Sprintf("Can't read row %d: %s", i, err.Error()), R.filename, []string{"Next"}, true}
		}
		f := strings.Fields(str)
		if len(f) != cols {
			return nil, Error{fmt.Sprintf("Row %d has %d elements, expected %d", i, len(f), cols), R.filename, []string{"Next"}, true}
		}
		row := M.RawRowView(i)
		for j, v := range f {
			row[j], err = strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, Error{fmt.Sprintf("Can't parse element %d,%d: %s", i, j, err.Error()), R.filename, []string{"Next"}, true}
			}
		}
	}
	str, err := R.h.ReadString('\n')
	if err != nil || strings.TrimSpace(str) != "*" {
		return nil, Error{WrongFormat + ": missing record termination mark", R.filename, []string{"Next"}, true}
	}
	R.header = header
	return M, nil
}

// Close closes the reader, which can't be used after this call.
func (R *Reader) Close() {
	if !R.readable {
		return
	}
	R.z.Close()
	R.f.Close()
	R.readable = false
}

// Error is the error type of the package. It fullfills chem.Error.
type Error struct {
	message  string
	filename string //the file that has problems
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("dsf file %s error: %s", err.filename, err.message)
}

// Decorate Adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file to which the failing reader or writer was associated
func (err Error) FileName() string { return err.filename }

// Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	WriterClosed = "Writer closed or uninitialized"
	ReaderClosed = "Reader closed or uninitialized"
	NilMatrix    = "Given nil matrix"
	EmptyMatrix  = "Given empty matrix"
	WrongFormat  = "Wrong format in the DSF file or record"
)
