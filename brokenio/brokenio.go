// brokenio wraps readers and writers so they break at a chosen point.
// Typical use: a test hands the code under test
// brokenio.NewWriter(&buf, n) instead of os.Stdout. After n
// bytes the writer behaves like a pipe whose reader
// has gone away, which is what you see with "pdb_selaltloc x.pdb | head".
// The reader does the same for input, returning an error part of the
// way through a file.

package brokenio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
)

// ErrBroken is what a Reader returns once it has given out its bytes,
// unless you set something else.
var ErrBroken = errors.New("brokenio: read failure")

// Reader passes through limit bytes, then fails.
type Reader struct {
	rdr_orig io.Reader // Wrapped reader
	limit    int
	nByte    int
	nCalled  int
	err      error
	verbose  bool
}

// NewReader returns a reader which fails after limit bytes.
// A negative limit means never.
func NewReader(rIn io.Reader, limit int) *Reader {
	return &Reader{rdr_orig: rIn, limit: limit, err: ErrBroken}
}

// SetErr sets the error returned after the limit is reached.
func (r *Reader) SetErr(err error) { r.err = err }

// SetVerbose sets the verbosity flag to true or false
func (r *Reader) SetVerbose(newV bool) { r.verbose = newV }

// Read wraps the underlying reader and sums up the amount of data that
// has gone through. Once the limit is reached, every call fails.
func (r *Reader) Read(p []byte) (int, error) {
	r.nCalled++
	if r.limit < 0 {
		n, err := r.rdr_orig.Read(p)
		r.nByte += n
		return n, err
	}
	left := r.limit - r.nByte
	if left <= 0 {
		return 0, r.err
	}
	if len(p) > left {
		p = p[:left]
	}
	n, err := r.rdr_orig.Read(p)
	r.nByte += n
	return n, err
}

// Close closes the wrapped reader if it has a Close method.
func (r *Reader) Close() error {
	if r.verbose {
		fmt.Println("Closing", r.nCalled, "calls and", r.nByte, "bytes")
	}
	if c, ok := r.rdr_orig.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Writer accepts limit bytes, then fails like a closed pipe.
type Writer struct {
	w       io.Writer
	limit   int
	nByte   int
	nCalled int
}

// NewWriter returns a writer which breaks after limit bytes.
func NewWriter(w io.Writer, limit int) *Writer {
	return &Writer{w: w, limit: limit}
}

// NCalled says how often Write was called.
func (w *Writer) NCalled() int { return w.nCalled }

// NByte says how many bytes got through.
func (w *Writer) NByte() int { return w.nByte }

// Write passes on what fits under the limit. The error looks like
// the one the os package gives for a broken pipe on standard output,
// so errors.Is(err, syscall.EPIPE) holds.
func (w *Writer) Write(p []byte) (int, error) {
	w.nCalled++
	left := w.limit - w.nByte
	if left >= len(p) {
		n, err := w.w.Write(p)
		w.nByte += n
		return n, err
	}
	n := 0
	if left > 0 {
		n, _ = w.w.Write(p[:left])
		w.nByte += n
	}
	return n, &os.PathError{Op: "write", Path: "|1", Err: syscall.EPIPE}
}
