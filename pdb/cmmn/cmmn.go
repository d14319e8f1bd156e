// Package pdb/cmmn has definitions shared by the pdb tools and their
// tests.
package cmmn

import (
	"fmt"
	"io"
	"os"
)

// Every tool exits with one of these. Usage errors and fatal errors
// during processing both give ExitFailure.
const (
	ExitSuccess = iota
	ExitFailure
)

// WrtTemp writes a string to a temporary file and returns
// the filename. It is used all over the place in testing.
func WrtTemp(s string) (string, error) {
	return WrtTempPattern(s, "_del_me_testing")
}

// WrtTempPattern is WrtTemp, but lets you set the file name pattern,
// which matters to code that looks at suffixes like ".gz".
func WrtTempPattern(s, pattern string) (string, error) {
	f_tmp, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("tempfile fail: %w", err)
	}

	if _, err := io.WriteString(f_tmp, s); err != nil {
		f_tmp.Close()
		return "", fmt.Errorf("writing string to temp file %v", f_tmp.Name())
	}
	name := f_tmp.Name()
	f_tmp.Close()
	return name, nil
}
