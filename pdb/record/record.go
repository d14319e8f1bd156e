// Package record reads the fixed columns of PDB coordinate records.
//
// Lines are handled as strings which still carry their line ending, so
// a record can be written back out byte for byte. Column numbers in this
// package count from zero, so the altloc is column 16 even though the
// format description calls it column 17.
package record

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind says what the selection machinery should do with a line.
type Kind byte

const (
	Other      Kind = iota // passed through untouched
	Coord                  // ATOM, HETATM, ANISOU
	Terminator             // TER, END, ENDMDL, CONECT
)

func (k Kind) String() string {
	switch k {
	case Coord:
		return "coord"
	case Terminator:
		return "terminator"
	}
	return "other"
}

// Column ranges are half open, [start, end).
type span struct{ start, end int }

const AltlocCol = 16 // the only column we ever rewrite

var (
	serialCols  = span{6, 11}
	nameCols    = span{12, 16}
	resNameCols = span{17, 20}
	resNumCols  = span{22, 26}
	occCols     = span{54, 60}
)

const chainCol = 21

var (
	coordNames = []string{"ATOM", "HETATM", "ANISOU"}
	termNames  = []string{"TER", "END", "ENDMDL", "CONECT"}
)

// Classify looks at the record name of a line.
func Classify(line string) Kind {
	for _, s := range coordNames {
		if strings.HasPrefix(line, s) {
			return Coord
		}
	}
	for _, s := range termNames {
		if strings.HasPrefix(line, s) {
			return Terminator
		}
	}
	return Other
}

// body strips the line ending, so fields near the end of a short line
// are not confused with '\r' or '\n'.
func body(line string) string {
	return strings.TrimRight(line, "\r\n")
}

// cols returns the characters of a field. Anything past the end of the
// line reads as blanks.
func cols(s string, sp span) string {
	if sp.start >= len(s) {
		return strings.Repeat(" ", sp.end-sp.start)
	}
	if sp.end > len(s) {
		return s[sp.start:] + strings.Repeat(" ", sp.end-len(s))
	}
	return s[sp.start:sp.end]
}

func at(s string, i int) byte {
	if i >= len(s) {
		return ' '
	}
	return s[i]
}

// Residue names one residue. Insertion codes are not part of it.
type Residue struct {
	Name string
	Num  int
}

// AtomKey is the identity of an atom, independent of its altloc.
type AtomKey struct {
	ResNum  int
	ResName string
	Name    string
	Chain   byte
}

// Atom is one parsed coordinate or ANISOU record. Line is the text as it
// was read, including its line ending.
type Atom struct {
	Altloc    byte
	ResName   string
	ResNum    int
	Chain     byte
	Name      string
	Serial    int
	Occupancy float64
	Line      string
}

// IsAnisou is true for anisotropic temperature factor records.
func (a Atom) IsAnisou() bool { return strings.HasPrefix(a.Line, "ANISOU") }

// Residue returns the residue the atom belongs to.
func (a Atom) Residue() Residue { return Residue{a.ResName, a.ResNum} }

// Key returns the identity used to collect the alternates of one atom.
func (a Atom) Key() AtomKey {
	return AtomKey{ResNum: a.ResNum, ResName: a.ResName, Name: a.Name, Chain: a.Chain}
}

// Blanked returns the record's line with the altloc cleared.
func (a Atom) Blanked() string { return BlankAltloc(a.Line) }

// BlankAltloc replaces column 16 by a space and leaves everything else
// alone. Lines too short to have an altloc come back unchanged.
func BlankAltloc(line string) string {
	if len(body(line)) <= AltlocCol || line[AltlocCol] == ' ' {
		return line
	}
	return line[:AltlocCol] + " " + line[AltlocCol+1:]
}

// ParseError reports a coordinate record with an unreadable field.
// N is the line number, counting from 1, when the caller knows it.
type ParseError struct {
	N     int
	Field string
	Text  string
	Err   error
}

func (e *ParseError) Error() string {
	const maxLen = 70
	s := e.Text
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	msg := fmt.Sprintf("bad %s in %q: %v", e.Field, body(s), e.Err)
	if e.N > 0 {
		msg = "line " + strconv.Itoa(e.N) + ": " + msg
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads the fields of a coordinate record. It does not check the
// record name, so call Classify first.
// The occupancy columns of an ANISOU record hold U values, so ANISOU
// records get an occupancy of zero. A blank occupancy is also zero.
// Serials must be decimal, so hybrid-36 serials are an error.
func Parse(line string) (Atom, error) {
	s := body(line)
	a := Atom{
		Altloc:  at(s, AltlocCol),
		ResName: cols(s, resNameCols),
		Chain:   at(s, chainCol),
		Name:    cols(s, nameCols),
		Line:    line,
	}
	var err error
	fail := func(field string, err error) (Atom, error) {
		return Atom{}, &ParseError{Field: field, Text: line, Err: err}
	}
	if a.ResNum, err = strconv.Atoi(strings.TrimSpace(cols(s, resNumCols))); err != nil {
		return fail("residue number", err)
	}
	if a.Serial, err = strconv.Atoi(strings.TrimSpace(cols(s, serialCols))); err != nil {
		return fail("atom serial", err)
	}
	if a.IsAnisou() {
		return a, nil
	}
	if occ := strings.TrimSpace(cols(s, occCols)); occ != "" {
		if a.Occupancy, err = strconv.ParseFloat(occ, 64); err != nil {
			return fail("occupancy", err)
		}
	}
	return a, nil
}
