// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package pipeline

import (
	"bufio"
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

const bufferSize = 64 * 1024

type input struct {
	f    *os.File
	r    *bufio.Reader
	name string
	std  bool
}

func (p *Processor) openInput(path string) (*input, error) {
	if isStdStream(path) {
		return &input{
			f:    p.opt.Stdin,
			r:    bufio.NewReaderSize(p.opt.Stdin, bufferSize),
			name: "standard input",
			std:  true,
		}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open file for reading")
	}

	return &input{
		f:    f,
		r:    bufio.NewReaderSize(f, bufferSize),
		name: path,
	}, nil
}

// check stats the input and applies the file type policies.
func (in *input) check(allowHardLinks bool) (fileStat, error) {
	st, err := statFile(in.f)
	if err != nil {
		return st, errors.Wrap(err, "unable to stat file")
	}

	if !st.mode.IsRegular() && !in.std {
		if st.mode.IsDir() {
			return st, skipf("is a directory")
		}

		return st, skipf("is not a regular file")
	}

	if st.nlink > 1 && !allowHardLinks {
		return st, skipf("has multiple hard links (use -f to process anyway)")
	}

	return st, nil
}

// closeInput closes the input and removes the source file if processing succeeded.
func (p *Processor) closeInput(in *input, newPath string, err error) {
	if !in.std {
		in.f.Close() //nolint:errcheck
	}

	if err != nil || newPath == "" || p.opt.Keep {
		return
	}

	if rmErr := os.Remove(in.name); rmErr != nil {
		p.opt.Logger.Warn("unable to remove source file", zap.String("file", in.name), zap.String("reason", rmErr.Error()))
	}
}

type output struct {
	f *os.File
	w *bufio.Writer

	name string
	// path is empty when writing to the standard output
	path string
}

func (p *Processor) createOutput(path string) (*output, error) {
	if path == "" {
		return &output{
			f:    p.opt.Stdout,
			w:    bufio.NewWriterSize(p.opt.Stdout, bufferSize),
			name: "standard output",
		}, nil
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil && os.IsExist(err) && p.opt.Force {
		// replace the file instead of truncating it, so other hard links keep their contents
		if err = os.Remove(path); err == nil {
			f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		}
	}

	if err != nil {
		if os.IsExist(err) {
			return nil, errors.Newf("%s already exists; use -f to overwrite", path)
		}

		return nil, errors.Wrap(err, "unable to open file for writing")
	}

	return &output{
		f:    f,
		w:    bufio.NewWriterSize(f, bufferSize),
		name: path,
		path: path,
	}, nil
}

// closeOutput closes the output file, removing it if processing failed.
//
// The standard output is never closed.
func (p *Processor) closeOutput(out *output, err error) error {
	if out.path == "" {
		return err
	}

	err = errors.CombineErrors(err, errors.Wrap(out.f.Close(), "error closing output"))

	if err != nil {
		if rmErr := os.Remove(out.path); rmErr != nil {
			p.opt.Logger.Warn("unable to remove partial output", zap.String("file", out.path), zap.String("reason", rmErr.Error()))
		}
	}

	return err
}

func (p *Processor) restoreMetadata(out *output, st fileStat) {
	logger := p.opt.Logger.With(zap.String("file", out.name))

	if err := out.f.Chmod(st.mode & restorableMode); err != nil {
		logger.Warn("unable to preserve mode", zap.String("reason", err.Error()))
	}

	if err := restoreOwner(out.f, st); err != nil {
		logger.Warn("unable to preserve owner and group", zap.String("reason", err.Error()))
	}

	if err := restoreTimes(out.f, out.path, st); err != nil {
		logger.Warn("unable to preserve timestamps", zap.String("reason", err.Error()))
	}
}
