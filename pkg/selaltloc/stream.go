// 13 Oct 2026
// Read a stream of records, select and write the result.

package selaltloc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"
)

// DfltChunkLines is how many output lines we collect before writing.
const DfltChunkLines = 5000

// IsBrokenPipe says if a write failed because the reader went away.
func IsBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE)
}

// chunkWriter saves lines and writes them n at a time.
type chunkWriter struct {
	w     io.Writer
	n     int
	lines []string
}

func (c *chunkWriter) add(line string) { c.lines = append(c.lines, line) }

func (c *chunkWriter) full() bool { return len(c.lines) >= c.n }

func (c *chunkWriter) write() error {
	if len(c.lines) == 0 {
		return nil
	}
	_, err := io.WriteString(c.w, strings.Join(c.lines, ""))
	c.lines = c.lines[:0]
	return err
}

// Run pushes every line of r through a Selector and writes the result
// to w, chunkLines lines at a time. A chunkLines below 1 means
// DfltChunkLines.
// Nothing is written before the first chunk is full, so a fatal error
// in a small file leaves no output at all.
// A broken pipe on w is not an error. Whoever reads our output has
// seen enough, so Run stops quietly.
func Run(r io.Reader, w io.Writer, opts Options, chunkLines int) (Stats, error) {
	if chunkLines < 1 {
		chunkLines = DfltChunkLines
	}
	cw := &chunkWriter{w: w, n: chunkLines, lines: make([]string, 0, chunkLines)}
	sel := NewSelector(opts, cw.add)
	wrtErr := func(err error) (Stats, error) {
		if IsBrokenPipe(err) {
			sel.log.Debug("broken pipe, stopping", "line", sel.nLine)
			return sel.Stats(), nil
		}
		return sel.Stats(), fmt.Errorf("writing: %w", err)
	}

	const bufSize = 64 * 1024
	br := bufio.NewReaderSize(r, bufSize)
	for {
		line, rerr := br.ReadString('\n')
		if len(line) > 0 {
			if err := sel.Feed(line); err != nil {
				return sel.Stats(), err
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return sel.Stats(), fmt.Errorf("reading line %d: %w", sel.nLine+1, rerr)
		}
		if cw.full() {
			if err := cw.write(); err != nil {
				return wrtErr(err)
			}
		}
	}
	if err := sel.Finish(); err != nil {
		return sel.Stats(), err
	}
	if err := cw.write(); err != nil {
		return wrtErr(err)
	}
	return sel.Stats(), nil
}
