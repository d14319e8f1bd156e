// 13 Oct 2026

package selaltloc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andrew-torda/pdbtools/pdb"
	"github.com/andrew-torda/pdbtools/pdb/cmmn"
	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"golang.org/x/term"
)

const usageMsg = `Picks one location for each atom with more than one. By default,
picks the atom with the highest occupancy value. User can define one specific
location using an option.

Usage:
    pdb_selaltloc [-<option>] <pdb file>

Example:
    pdb_selaltloc 1CTF.pdb  # picks locations with highest occupancy
    pdb_selaltloc -A 1CTF.pdb  # picks alternate locations labelled 'A'

With no file, records are read from standard input. Gzipped input is fine.
Settings such as the log level can go in a TOML file named by $PDBTOOLS_CONFIG.
`

// isTerminal is a variable so tests can pretend to be at a terminal.
var isTerminal = func(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// usageError is a problem with the command line. usage says whether
// to print the usage message after it.
type usageError struct {
	msg   string
	usage bool
}

func (e *usageError) Error() string { return e.msg }

type cmdLine struct {
	label string // without the '-'
	fname string // "" for standard input
}

// parseArgs copes with the odd command line, where the option is a
// minus sign followed by the label itself.
func parseArgs(args []string, stdinTTY bool) (cmdLine, error) {
	var cl cmdLine
	isOpt := func(s string) bool { return strings.HasPrefix(s, "-") }
	notFound := func(s string) error {
		return &usageError{fmt.Sprintf("ERROR!! File not found or not readable: '%s'", s), true}
	}
	switch len(args) {
	case 0:
		if stdinTTY {
			return cl, &usageError{"", true}
		}
	case 1:
		if isOpt(args[0]) {
			cl.label = args[0][1:]
			if stdinTTY {
				return cl, &usageError{"ERROR!! No data to process!", true}
			}
		} else {
			if !pdb.IsFile(args[0]) {
				return cl, notFound(args[0])
			}
			cl.fname = args[0]
		}
	case 2:
		if !isOpt(args[0]) {
			return cl, &usageError{fmt.Sprintf("ERROR! First argument is not an option: '%s'", args[0]), true}
		}
		if !pdb.IsFile(args[1]) {
			return cl, notFound(args[1])
		}
		cl.label, cl.fname = args[0][1:], args[1]
	default:
		return cl, &usageError{"", true}
	}
	if len(cl.label) > 1 {
		const emsg = "ERROR!! Alternate location identifiers must be single characters: '%s'"
		return cl, &usageError{fmt.Sprintf(emsg, cl.label), false}
	}
	return cl, nil
}

// errColor gives red diagnostics, but only on a terminal.
func errColor(w io.Writer) *color.Color {
	c := color.New(color.FgRed, color.Bold)
	if f, ok := w.(*os.File); !ok || !isTerminal(f) {
		c.DisableColor()
	}
	return c
}

// MyMain is the top level main. It returns the exit code.
// args are the command line arguments without the program name.
func MyMain(args []string, stdin *os.File, stdout, stderr io.Writer) int {
	ecolor := errColor(stderr)
	fail := func(err error) int {
		ecolor.Fprintln(stderr, "ERROR!!", err)
		return cmmn.ExitFailure
	}

	cl, err := parseArgs(args, isTerminal(stdin))
	if err != nil {
		var uerr *usageError
		if errors.As(err, &uerr) && uerr.msg != "" {
			ecolor.Fprintln(stderr, uerr.msg)
		}
		if uerr != nil && uerr.usage {
			fmt.Fprint(stderr, usageMsg)
		}
		return cmmn.ExitFailure
	}

	cfg, err := LoadConfig(os.Getenv(ConfigEnv))
	if err != nil {
		return fail(err)
	}
	lvl, _ := cfg.Level()
	logger := log.NewWithOptions(stderr, log.Options{Level: lvl, Prefix: "pdb_selaltloc"})

	var rdr io.ReadCloser
	if cl.fname == "" {
		rdr, err = pdb.OpenReader(stdin)
	} else {
		rdr, err = pdb.Open(cl.fname, !cfg.NoMmap)
	}
	if err != nil {
		return fail(err)
	}
	defer rdr.Close()

	opts := Options{Logger: logger}
	if cl.label != "" {
		opts.UseLabel, opts.Label = true, cl.label[0]
	}
	logger.Debug("starting", "file", cl.fname, "label", cl.label, "chunk_lines", cfg.ChunkLines)
	if _, err := Run(rdr, stdout, opts, cfg.ChunkLines); err != nil {
		return fail(err)
	}
	return cmmn.ExitSuccess
}
