package selaltloc

import "os"

// SetTerminal makes every file look like a terminal, or not. Call the
// function it returns to put things back.
func SetTerminal(tty bool) func() {
	old := isTerminal
	isTerminal = func(*os.File) bool { return tty }
	return func() { isTerminal = old }
}
