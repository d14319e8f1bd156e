// This is the upper level for reading PDB files.
// Decide if a file is compressed or not and whether it is really in the
// old fixed column format. Then hand back a reader which the tools can
// pull lines from.

package pdb

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andrew-torda/pdbtools/pdb/zwrap"
	"github.com/edsrzf/mmap-go"
)

const (
	old_fmt byte = iota
	mmcif_fmt
	unk_fmt
)

// ErrMmcif is returned when we are handed an mmCIF file. The tools only
// understand fixed columns.
var ErrMmcif = errors.New("file looks like mmCIF, not PDB format")

// ErrNotFile covers names which do not exist and things like directories.
var ErrNotFile = errors.New("file not found or not readable")

// lookInFile guesses if a stream is in old PDB format or in mmcif.
// It looks at no more than maxTestLines lines. An empty file, or one
// with none of our words, is unk_fmt, which is not an error.
func lookInFile(rdr io.Reader) byte {
	pdbWords := []string{"HEADER", "COMPND", "SOURCE", "REMARK", "SEQRES", "HETATM", "ATOM", "MODEL"}
	mmcifWords := []string{"data_", "loop_", "_entry.id"}

	const maxTestLines = 5000
	scnnr := bufio.NewScanner(rdr)
	scnnr.Buffer(make([]byte, 0, 4096), 1024*1024)
	for i := 0; scnnr.Scan() && i < maxTestLines; i++ {
		s := scnnr.Text()
		for _, w := range mmcifWords {
			if strings.HasPrefix(s, w) {
				return mmcif_fmt
			}
		}
		for _, w := range pdbWords {
			if strings.HasPrefix(s, w) {
				return old_fmt
			}
		}
	}
	return unk_fmt
}

// oldOrMmcif decides what format we have.
// It uses the file name if it can, otherwise it peeks inside.
// We cannot use the function from filepath to get the file type,
// since it will return .gz if we feed it a.pdb.gz.
func oldOrMmcif(fname string) (byte, error) {
	s := filepath.Base(fname)
	if i := strings.IndexByte(s, '.'); i != -1 {
		s = strings.ToLower(s[i+1:]) // change .ent to ent
		if strings.Contains(s, "pdb") || strings.Contains(s, "ent") {
			return old_fmt, nil
		} else if strings.Contains(s, "cif") {
			return mmcif_fmt, nil
		}
	}
	fp, err := os.Open(fname)
	if err != nil {
		return unk_fmt, err
	}
	rdr, err := zwrap.WrapMaybe(fp)
	if err != nil {
		fp.Close()
		return unk_fmt, fmt.Errorf("reading %s: %w", fname, err)
	}
	defer rdr.Close()
	return lookInFile(rdr), nil
}

// mapped is a memory mapped file. The bytes.Reader walks over the
// mapping, Close unmaps and closes the file.
type mapped struct {
	*bytes.Reader
	mm mmap.MMap
	fp *os.File
}

func (m *mapped) Close() error {
	return errors.Join(m.mm.Unmap(), m.fp.Close())
}

// openFile opens a regular file, by mapping it if useMmap is set.
// Empty files cannot be mapped, so they are read normally.
func openFile(fname string, useMmap bool) (io.ReadCloser, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	if !useMmap {
		return fp, nil
	}
	fi, err := fp.Stat()
	if err != nil {
		fp.Close()
		return nil, err
	}
	if fi.Size() == 0 {
		return fp, nil
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		fp.Close()
		return nil, err
	}
	return &mapped{Reader: bytes.NewReader(mm), mm: mm, fp: fp}, nil
}

// IsFile is what the tools check before they start, so a missing
// file is reported as a usage error.
func IsFile(fname string) bool {
	fi, err := os.Stat(fname)
	return err == nil && fi.Mode().IsRegular()
}

// Open returns a reader for the records of a structure file. The file
// may be gzipped. mmCIF files are rejected with ErrMmcif.
func Open(fname string, useMmap bool) (io.ReadCloser, error) {
	if !IsFile(fname) {
		return nil, fmt.Errorf("%w: '%s'", ErrNotFile, fname)
	}
	if typ, err := oldOrMmcif(fname); err != nil {
		return nil, err
	} else if typ == mmcif_fmt {
		return nil, fmt.Errorf("%s: %w", fname, ErrMmcif)
	}
	rdr, err := openFile(fname, useMmap)
	if err != nil {
		return nil, err
	}
	z, err := zwrap.WrapMaybe(rdr)
	if err != nil {
		rdr.Close()
		return nil, fmt.Errorf("reading %s: %w", fname, err)
	}
	return z, nil
}

// OpenReader is Open for a stream such as standard input. We cannot
// peek at the format without eating the data, so only compression is
// checked. Closing the result does not close r.
func OpenReader(r io.Reader) (io.ReadCloser, error) {
	z, err := zwrap.WrapMaybe(io.NopCloser(r))
	if err != nil {
		return nil, err
	}
	return z, nil
}
