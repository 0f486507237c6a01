// Package cliutil provides shared CLI utilities for rice command-line tools.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// GetOutput opens the output file or returns stdout. The returned func
// closes the file and reports the close error, so buffered writes that
// fail late are not lost.
func GetOutput(outputFile string, stdout io.Writer) (io.Writer, func() error, error) {
	if outputFile == "" || outputFile == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// PrintError writes a formatted error message to w.
func PrintError(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, "error: "+format+"\n", args...)
}
