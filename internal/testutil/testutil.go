// Package testutil provides helpers shared by rice package tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/ricelang/rice/internal/types"
)

// Codes returns the diagnostic codes in order.
func Codes(diags []types.SpanDiagnostic) []string {
	codes := make([]string, 0, len(diags))
	for _, d := range diags {
		codes = append(codes, d.Code)
	}
	return codes
}

// CountCode returns how many diagnostics carry code.
func CountCode(diags []types.SpanDiagnostic, code string) int {
	n := 0
	for _, d := range diags {
		if d.Code == code {
			n++
		}
	}
	return n
}

// NoDiagnostics fails the test if diags is non-empty, listing each one.
func NoDiagnostics(t testing.TB, diags []types.SpanDiagnostic) {
	t.Helper()
	if len(diags) == 0 {
		return
	}
	var b strings.Builder
	for _, d := range diags {
		fmt.Fprintf(&b, "\n  [%s] %s at %s: %s", d.Severity, d.Code, d.Span, d.Message)
	}
	t.Fatalf("expected no diagnostics, got %d:%s", len(diags), b.String())
}

// Dedent removes the common leading indentation from every non-blank line
// and trims a leading newline, so test sources can be written as indented
// raw strings.
func Dedent(s string) string {
	s = strings.TrimPrefix(s, "\n")
	lines := strings.Split(s, "\n")
	prefix := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if prefix < 0 || n < prefix {
			prefix = n
		}
	}
	if prefix <= 0 {
		return s
	}
	for i, line := range lines {
		if len(line) >= prefix {
			lines[i] = line[prefix:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}

// Testdata returns the path of a file under the repository's testdata
// directory.
func Testdata(elem ...string) string {
	_, file, _, _ := runtime.Caller(0)
	root := filepath.Join(filepath.Dir(file), "..", "..", "testdata")
	return filepath.Join(append([]string{root}, elem...)...)
}

// ReadFixture reads a file under testdata, failing the test on error.
func ReadFixture(t testing.TB, elem ...string) []byte {
	t.Helper()
	data, err := os.ReadFile(Testdata(elem...))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}
