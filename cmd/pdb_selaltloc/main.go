// 13 Oct 2026
// Select one alternate location per atom.

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/andrew-torda/pdbtools/pkg/selaltloc"
)

func main() {
	// Without this, a write to a closed stdout kills us with SIGPIPE
	// instead of returning EPIPE, which selaltloc treats as a normal end.
	signal.Ignore(syscall.SIGPIPE)
	os.Exit(selaltloc.MyMain(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
