// Package zwrap takes a file pointer and optionally wraps it so upon
// calling Close, the decompressor will be closed, followed by the
// underlying file.
// Decompression uses pgzip, which reads ahead in its own goroutines.
// The caller still sees one ordinary sequential stream.

package zwrap

import (
	"bufio"
	"errors"
	"io"

	"github.com/klauspost/pgzip"
)

var gzMagic = []byte{0x1f, 0x8b}

type FpGzip struct { // This is what we return.
	fp   io.ReadCloser
	rdr  io.Reader // either zrdr or a bufio.Reader on fp
	zrdr *pgzip.Reader
}

// Close closes the decompressor, then the underlying backing readCloser.
func (fc *FpGzip) Close() error {
	if fc.zrdr == nil {
		return fc.fp.Close()
	}
	return errors.Join(fc.zrdr.Close(), fc.fp.Close())
}

// Read makes sure we read from the compressed stream and
// not the underlying file stream.
func (fc *FpGzip) Read(p []byte) (int, error) {
	return fc.rdr.Read(p)
}

// Compressed says whether we are decompressing.
func (fc *FpGzip) Compressed() bool { return fc.zrdr != nil }

// Wrap takes a source which must be gzipped and wraps it
// so the correct Close and Read will be called.
func Wrap(fp io.ReadCloser) (*FpGzip, error) {
	zrdr, err := pgzip.NewReader(fp)
	if err != nil {
		return nil, err
	}
	return &FpGzip{fp: fp, rdr: zrdr, zrdr: zrdr}, nil
}

// WrapMaybe will decide if the underlying stream is compressed
// and wrap the file pointer if necessary.
// It peeks at the first two bytes, so it works on pipes, which cannot
// seek. An empty stream is not an error. You get back a reader which
// returns io.EOF straight away.
func WrapMaybe(fpIn io.ReadCloser) (*FpGzip, error) {
	br := bufio.NewReader(fpIn)
	magic, err := br.Peek(len(gzMagic))
	if err != nil && err != io.EOF {
		return nil, err
	}
	if len(magic) < len(gzMagic) || magic[0] != gzMagic[0] || magic[1] != gzMagic[1] {
		return &FpGzip{fp: fpIn, rdr: br}, nil
	}
	zrdr, err := pgzip.NewReader(br)
	if err != nil {
		return nil, err
	}
	return &FpGzip{fp: fpIn, rdr: zrdr, zrdr: zrdr}, nil
}
