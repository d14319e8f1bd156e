// Package pdbtest writes fixed column records for the tests in other
// packages. Nothing here checks that the values fit their columns.
package pdbtest

import (
	"fmt"
	"strings"
)

// Rec holds the fields of one ATOM or HETATM record. A zero Altloc is
// written as a blank, a zero Chain as 'A'.
type Rec struct {
	Hetatm  bool
	Serial  int
	Name    string // four columns, like " CA "
	Altloc  byte
	ResName string
	Chain   byte
	ResNum  int
	X, Y, Z float64
	Occ     float64
	B       float64
}

func (r Rec) fill() Rec {
	if r.Altloc == 0 {
		r.Altloc = ' '
	}
	if r.Chain == 0 {
		r.Chain = 'A'
	}
	return r
}

func (r Rec) element() string {
	return strings.TrimSpace(r.Name)[:1]
}

// Atom returns an 80 column coordinate record with a newline.
func (r Rec) Atom() string {
	r = r.fill()
	name := "ATOM"
	if r.Hetatm {
		name = "HETATM"
	}
	const f = "%-6s%5d %-4s%c%-3s %c%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  \n"
	return fmt.Sprintf(f, name, r.Serial, r.Name, r.Altloc, r.ResName, r.Chain,
		r.ResNum, r.X, r.Y, r.Z, r.Occ, r.B, r.element())
}

// Anisou returns the ANISOU record that goes with r. The U values are
// made up from the serial number.
func (r Rec) Anisou() string {
	r = r.fill()
	const f = "ANISOU%5d %-4s%c%-3s %c%4d  %7d%7d%7d%7d%7d%7d      %2s  \n"
	u := 1000 + r.Serial
	return fmt.Sprintf(f, r.Serial, r.Name, r.Altloc, r.ResName, r.Chain,
		r.ResNum, u, u+1, u+2, -u/10, u/20, -u/30, r.element())
}

// Ter returns a TER record following r.
func (r Rec) Ter() string {
	r = r.fill()
	const f = "TER   %5d      %-3s %c%4d%54s\n"
	return fmt.Sprintf(f, r.Serial+1, r.ResName, r.Chain, r.ResNum, "")
}

// Join glues lines into the text of a file.
func Join(lines ...string) string { return strings.Join(lines, "") }
