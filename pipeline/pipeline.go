// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package pipeline compresses and decompresses files in the XPACK format.
//
// Processor takes care of the file level concerns: output path derivation,
// safety checks, removal of partial outputs and sources, metadata preservation.
package pipeline

import (
	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/siderolabs/gen/xslices"
	"go.uber.org/zap"

	"github.com/siderolabs/go-xpack"
)

// Processor compresses or decompresses files one by one.
//
// The codec and the chunk buffers are shared by all files processed.
// Processor is not safe for concurrent use.
type Processor struct {
	codec xpack.Codec

	encoder *xpack.Encoder
	decoder *xpack.Decoder

	opt Options
}

// New creates new Processor.
func New(codec xpack.Codec, opts ...Option) (*Processor, error) {
	p := &Processor{
		codec: codec,
		opt:   defaultOptions(),
	}

	for _, o := range opts {
		if err := o(&p.opt); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *Processor) codecOptions() []xpack.OptionFunc {
	return []xpack.OptionFunc{
		xpack.WithChunkSize(p.opt.ChunkSize),
		xpack.WithLevel(p.opt.Level),
		xpack.WithLogger(p.opt.Logger),
	}
}

// getEncoder returns the shared Encoder, creating it on the first use.
func (p *Processor) getEncoder() (*xpack.Encoder, error) {
	if p.encoder == nil {
		enc, err := xpack.NewEncoder(p.codec, p.codecOptions()...)
		if err != nil {
			return nil, err
		}

		p.encoder = enc
	}

	return p.encoder, nil
}

// getDecoder returns the shared Decoder, creating it on the first use.
func (p *Processor) getDecoder() (*xpack.Decoder, error) {
	if p.decoder == nil {
		dec, err := xpack.NewDecoder(p.codec, p.codecOptions()...)
		if err != nil {
			return nil, err
		}

		p.decoder = dec
	}

	return p.decoder, nil
}

// Run processes paths in order, in the configured direction.
//
// No paths means the standard input.
func (p *Processor) Run(paths []string) []Outcome {
	if len(paths) == 0 {
		paths = []string{StdStream}
	}

	return xslices.Map(paths, func(path string) Outcome {
		if p.opt.Decompress {
			return p.DecompressFile(path)
		}

		return p.CompressFile(path)
	})
}

// CompressFile compresses a single file.
//
// Unless writing to the standard output, the result is written to path + "." + suffix.
func (p *Processor) CompressFile(path string) Outcome {
	return p.report(path, p.compressFile(path))
}

// DecompressFile decompresses a single file.
//
// Unless writing to the standard output, the suffix is stripped to get the output path.
func (p *Processor) DecompressFile(path string) Outcome {
	return p.report(path, p.decompressFile(path))
}

func (p *Processor) report(path string, err error) Outcome {
	outcome := outcomeOf(path, err)

	name := path
	if isStdStream(path) {
		name = "standard input"
	}

	switch outcome.Status {
	case StatusSkipped:
		p.opt.Logger.Warn("skipping", zap.String("file", name), zap.String("reason", err.Error()))
	case StatusFailed:
		p.opt.Logger.Error("failed", zap.String("file", name), zap.String("reason", err.Error()))
	case StatusSuccess:
	}

	return outcome
}

func (p *Processor) compressFile(path string) (err error) {
	var newPath string

	if !isStdStream(path) && !p.opt.ToStdout {
		if !p.opt.Force && HasSuffix(path, p.opt.Suffix) {
			return skipf("already has .%s suffix", p.opt.Suffix)
		}

		newPath = CompressedPath(path, p.opt.Suffix)
	}

	enc, err := p.getEncoder()
	if err != nil {
		return err
	}

	in, err := p.openInput(path)
	if err != nil {
		return err
	}

	defer func() { p.closeInput(in, newPath, err) }()

	st, err := in.check(p.opt.Force || newPath == "")
	if err != nil {
		return err
	}

	out, err := p.createOutput(newPath)
	if err != nil {
		return err
	}

	// runs before closeInput
	defer func() { err = p.closeOutput(out, err) }()

	if !p.opt.Force && isTerminal(out.f) {
		return errors.New("refusing to write compressed data to terminal; use -f to override")
	}

	stats, err := enc.Encode(out.w, in.r)
	if err != nil {
		return err
	}

	if err = out.w.Flush(); err != nil {
		return errors.Wrap(err, "error writing output")
	}

	if newPath != "" {
		p.restoreMetadata(out, st)
	}

	p.opt.Logger.Debug("compressed",
		zap.String("file", in.name),
		zap.String("output", out.name),
		zap.Int("chunks", stats.Chunks),
		zap.Int("raw_chunks", stats.RawChunks),
		zap.String("original", humanize.IBytes(uint64(stats.OriginalBytes))),
		zap.String("stored", humanize.IBytes(uint64(stats.StoredBytes))),
	)

	return nil
}

func (p *Processor) decompressFile(path string) (err error) {
	var newPath string

	if !isStdStream(path) && !p.opt.ToStdout {
		var ok bool

		if newPath, ok = DecompressedPath(path, p.opt.Suffix); !ok {
			return skipf("does not end with the .%s suffix", p.opt.Suffix)
		}
	}

	dec, err := p.getDecoder()
	if err != nil {
		return err
	}

	in, err := p.openInput(path)
	if err != nil {
		return err
	}

	defer func() { p.closeInput(in, newPath, err) }()

	if !p.opt.Force && isTerminal(in.f) {
		return errors.New("refusing to read compressed data from terminal; use -f to override")
	}

	st, err := in.check(p.opt.Force || newPath == "")
	if err != nil {
		return err
	}

	// the header is validated before the output is created
	hdr, err := dec.ReadHeader(in.r)
	if err != nil {
		return err
	}

	out, err := p.createOutput(newPath)
	if err != nil {
		return err
	}

	// runs before closeInput
	defer func() { err = p.closeOutput(out, err) }()

	stats, err := dec.DecodeChunks(out.w, in.r, hdr.ChunkSize)
	if err != nil {
		return err
	}

	if err = out.w.Flush(); err != nil {
		return errors.Wrap(err, "error writing output")
	}

	if newPath != "" {
		p.restoreMetadata(out, st)
	}

	p.opt.Logger.Debug("decompressed",
		zap.String("file", in.name),
		zap.String("output", out.name),
		zap.Uint32("chunk_size", hdr.ChunkSize),
		zap.Uint8("level", hdr.Level),
		zap.Int("chunks", stats.Chunks),
		zap.String("stored", humanize.IBytes(uint64(stats.StoredBytes))),
		zap.String("original", humanize.IBytes(uint64(stats.OriginalBytes))),
	)

	return nil
}
