// Test Zwrap
package zwrap_test

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/andrew-torda/pdbtools/pdb/zwrap"
)

// both of these are "andrewsays", but the first is compressed. Write them to a file
// and check that the file opener does the right thing.
type gztest struct {
	data    []byte
	gzipped bool
}

var gztests = []gztest{
	{[]byte{
		0x1f, 0x8b, 0x08, 0x00, 0xb6, 0xf1, 0xa0, 0x5b, 0x00, 0x03,
		0x4b, 0xcc, 0x4b, 0x29, 0x4a, 0x2d, 0x2f, 0x4e, 0xac, 0x2c,
		0xce, 0x48, 0xcd, 0xc9, 0xc9, 0x07, 0x00, 0x44, 0xa8, 0x66,
		0x89, 0x0f, 0x00, 0x00, 0x00},
		true,
	},
	{[]byte{
		0x61, 0x6e, 0x64, 0x72, 0x65, 0x77, 0x73, 0x61,
		0x79, 0x73, 0x68, 0x65, 0x6c, 0x6c, 0x6f, 0x0a},
		false,
	},
}

// writeToTmp writes a byte slice to a temporary file and returns
// a file pointer, positioned at the start.
func writeToTmp(t *testing.T, data []byte) *os.File {
	tmpf, err := os.CreateTemp("", "del_me_testing")
	if err != nil {
		t.Fatal("Fail getting TempFile", err)
	}
	t.Cleanup(func() { os.Remove(tmpf.Name()) })
	if _, err := tmpf.Write(data); err != nil {
		t.Fatal("fail writing to tempfile", err)
	}
	if _, err := tmpf.Seek(0, io.SeekStart); err != nil {
		t.Fatal("Seek fail on " + tmpf.Name())
	}
	return tmpf
}

func TestWrap(t *testing.T) {
	b := make([]byte, 256)
	for _, x := range gztests {
		tmpr, err := zwrap.Wrap(writeToTmp(t, x.data))
		if err != nil {
			if x.gzipped {
				t.Error("Fail on correctly gzipped file")
			}
			continue // It is not gzipped, so move on to next
		} else if !x.gzipped {
			t.Error("Fail on not compressed file")
		}
		if n, err := io.ReadFull(tmpr, b[:10]); n < 10 {
			t.Errorf("Short read of %d bytes, %s", n, err)
		}
		if string(b[:10]) != "andrewsays" {
			t.Errorf("wrong string: %s", b[:10])
		}
		if err := tmpr.Close(); err != nil {
			t.Errorf("Error closing: %s", err)
		}
	}
}

// Calling WrapMaybe should not fail since it guesses if the file
// is compressed or not.
func TestWrapMaybe(t *testing.T) {
	for _, x := range gztests {
		tmpr, err := zwrap.WrapMaybe(writeToTmp(t, x.data))
		if err != nil {
			t.Fatalf("Fail on file where compressed was %v", x.gzipped)
		}
		if tmpr.Compressed() != x.gzipped {
			t.Errorf("Compressed() says %v, want %v", tmpr.Compressed(), x.gzipped)
		}
		b, err := io.ReadAll(tmpr)
		if err != nil {
			t.Error(err)
		}
		if !strings.HasPrefix(string(b), "andrewsays") {
			t.Errorf("wrong string: %s", b)
		}
		if err := tmpr.Close(); err != nil {
			t.Errorf("Error closing: %s", err)
		}
	}
}

// WrapMaybe has to work on something that cannot seek, like a pipe.
func TestWrapMaybePipe(t *testing.T) {
	const s = "ATOM      1  N   SER A   1\nEND\n"
	var zbuf bytes.Buffer
	zw := gzip.NewWriter(&zbuf)
	io.WriteString(zw, s)
	zw.Close()
	for _, in := range [][]byte{zbuf.Bytes(), []byte(s)} {
		pr, pw, err := os.Pipe()
		if err != nil {
			t.Fatal(err)
		}
		go func(b []byte) {
			pw.Write(b)
			pw.Close()
		}(in)
		rdr, err := zwrap.WrapMaybe(pr)
		if err != nil {
			t.Fatal(err)
		}
		got, err := io.ReadAll(rdr)
		rdr.Close()
		if err != nil || string(got) != s {
			t.Errorf("got %q, %v", got, err)
		}
	}
}

func TestWrapMaybeEmpty(t *testing.T) {
	rdr, err := zwrap.WrapMaybe(io.NopCloser(strings.NewReader("")))
	if err != nil {
		t.Fatal("empty input is not an error", err)
	}
	if n, err := rdr.Read(make([]byte, 10)); n != 0 || err != io.EOF {
		t.Errorf("want 0, EOF got %d, %v", n, err)
	}
}
