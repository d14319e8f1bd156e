package brokenio_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"syscall"
	"testing"

	"github.com/andrew-torda/pdbtools/brokenio"
)

var longstring = "0123456789012345678901234567890123456789"

func TestReaderLimit(t *testing.T) {
	for _, limit := range []int{0, 1, 10, 39} {
		rdr := brokenio.NewReader(strings.NewReader(longstring), limit)
		b, err := io.ReadAll(rdr)
		if !errors.Is(err, brokenio.ErrBroken) {
			t.Errorf("limit %d: want ErrBroken, got %v", limit, err)
		}
		if string(b) != longstring[:limit] {
			t.Errorf("limit %d: got %q", limit, b)
		}
	}
}

// A limit past the end of the data never fires.
func TestReaderSimple(t *testing.T) {
	for _, limit := range []int{-1, len(longstring) + 1} {
		rdr := brokenio.NewReader(strings.NewReader(longstring), limit)
		b, err := io.ReadAll(rdr)
		if err != nil || string(b) != longstring {
			t.Errorf("simple read fail got %q, %v", b, err)
		}
	}
}

func TestSetErr(t *testing.T) {
	myErr := errors.New("disk on fire")
	rdr := brokenio.NewReader(strings.NewReader(longstring), 5)
	rdr.SetErr(myErr)
	if _, err := io.ReadAll(rdr); err != myErr {
		t.Errorf("got %v", err)
	}
}

func Example_setVerbose() {
	rdr := brokenio.NewReader(strings.NewReader(longstring), -1)
	rdr.SetVerbose(true)
	tmp := make([]byte, len(longstring))
	rdr.Read(tmp)
	rdr.Close()
	// Output: Closing 1 calls and 40 bytes
}

// TestClose - check if the reader really is calling the correct close method.
func TestClose(t *testing.T) {
	f, err := os.CreateTemp("", "testclose_test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(f.Name())
	f.WriteString(longstring)
	f.Seek(0, io.SeekStart)
	rdr := brokenio.NewReader(f, -1)
	if err = rdr.Close(); err != nil {
		t.Error("failed on close of reader")
	}
	if _, err := f.Read(make([]byte, 1)); err == nil {
		t.Error("underlying file still open")
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := brokenio.NewWriter(&buf, 12)
	if n, err := io.WriteString(w, longstring[:10]); n != 10 || err != nil {
		t.Fatalf("first write got %d, %v", n, err)
	}
	n, err := io.WriteString(w, longstring[10:20])
	if n != 2 || !errors.Is(err, syscall.EPIPE) {
		t.Errorf("second write got %d, %v", n, err)
	}
	if buf.String() != longstring[:12] {
		t.Errorf("wrote %q", buf.String())
	}
	if _, err := io.WriteString(w, "x"); !errors.Is(err, syscall.EPIPE) {
		t.Error("writer should stay broken")
	}
	if w.NCalled() != 3 || w.NByte() != 12 {
		t.Errorf("counts %d %d", w.NCalled(), w.NByte())
	}
}
