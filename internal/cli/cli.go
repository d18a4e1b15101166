/*
 * cli.go, part of dScribe-tools.
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

// Package cli holds the start up and the checks shared by the programs
// under cmd/.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	chem "github.com/MattB-242/dScribe-tools"
	"github.com/MattB-242/dScribe-tools/dsf"
	"github.com/MattB-242/dScribe-tools/internal/config"
	"github.com/MattB-242/dScribe-tools/internal/logger"
	"github.com/MattB-242/dScribe-tools/soap"
	"github.com/MattB-242/dScribe-tools/sweep"
	"github.com/google/uuid"
)

// ErrUsage is returned (wrapped) for wrong positional arguments.
var ErrUsage = errors.New("usage error")

// Run is the state of a running program.
type Run struct {
	Name string
	Cfg  *config.Config
	Args []string //positional arguments
	ID   string
	Log  *slog.Logger
	dump *dsf.Writer
}

type flags struct {
	config    string
	logLevel  string
	logFormat string
	dump      string
}

// Start parses the command line of the program name, which takes exactly
// nargs positional arguments, described in usage. It loads the configuration,
// sets the logging up and opens the descriptor store, if requested.
// Usage errors print a message and the usage, and exit with status 1.
func Start(name, usage string, nargs int) *Run {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	var f flags
	fs.StringVar(&f.config, "config", "", "YAML configuration file (default: built-in parameters)")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides the config)")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text or json (overrides the config)")
	fs.StringVar(&f.dump, "dump", "", "write every descriptor created to this zstd-compressed file")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [options] %s\n\n", name, usage)
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])
	if fs.NArg() != nargs {
		fmt.Fprintf(os.Stderr, "%s: %d arguments required, got %d\n", name, nargs, fs.NArg())
		fs.Usage()
		os.Exit(1)
	}
	cfg, err := config.Load(f.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: failed to load config: %v\n", name, err)
		os.Exit(1)
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Logging.Format = f.logFormat
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	R := &Run{Name: name, Cfg: cfg, Args: fs.Args(), ID: uuid.NewString()}
	slog.SetDefault(logger.WithRun(R.ID))
	R.Log = logger.WithComponent(name)
	if f.dump != "" {
		R.dump, err = dsf.NewWriter(f.dump, R.ID)
		if err != nil {
			R.Fatal("failed to open descriptor store", err)
		}
		R.Log.Info("storing descriptors", "file", f.dump)
	}
	return R
}

// Usage reports err as a usage error and exits with status 1.
func (R *Run) Usage(err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", R.Name, err)
	R.Close()
	os.Exit(1)
}

// Fatal logs msg and err and exits with status 1.
func (R *Run) Fatal(msg string, err error) {
	R.Log.Error(msg, "error", err)
	R.Close()
	os.Exit(1)
}

// Close closes the descriptor store, if there is one.
func (R *Run) Close() {
	if R.dump == nil {
		return
	}
	n := R.dump.Len()
	if err := R.dump.Close(); err != nil {
		R.Log.Error("failed to close descriptor store", "error", err)
		return
	}
	R.Log.Info("descriptor store closed", "records", n)
	R.dump = nil
}

// Base returns the configured descriptor options for mols, with the given species
// (the configured ones if species is nil). If the configuration asks for periodic
// descriptors but some of mols have no cell, periodicity is turned off, with a warning.
func (R *Run) Base(species []string, mols ...*chem.Molecule) soap.Options {
	o := R.Cfg.SOAP.Options(species)
	if !o.Periodic {
		return o
	}
	for _, m := range mols {
		if !m.Periodic() {
			R.Log.Warn("structure has no cell, using non-periodic descriptors", "structure", m.Name)
			o.Periodic = false
			break
		}
	}
	return o
}

// Driver returns a sweep driver with the base options, which stores its
// descriptors if the program was asked to.
func (R *Run) Driver(base soap.Options) *sweep.Driver {
	d := sweep.NewDriver(base)
	if R.dump != nil {
		d.Sink = R.dump
	}
	return d
}

// File returns an error wrapping ErrUsage if path is not a regular file.
func File(path, what string) error {
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return fmt.Errorf("%w: %s must be a file, got %q", ErrUsage, what, path)
	}
	return nil
}

// Dir returns an error wrapping ErrUsage if path is not a directory.
func Dir(path, what string) error {
	fi, err := os.Stat(path)
	if err != nil || !fi.IsDir() {
		return fmt.Errorf("%w: %s must be a directory, got %q", ErrUsage, what, path)
	}
	return nil
}

// Count parses the count arg. Any integer is valid, values of 0 or less mean
// "all". It returns an error wrapping ErrUsage if arg is not an integer.
func Count(arg, what string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrUsage, what, arg)
	}
	return n, nil
}
