package rice

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestParseConfigLine(t *testing.T) {
	tests := []struct {
		line   string
		wantOp pathOp
		want   []string
		wantOk bool
	}{
		// Replace
		{"path /usr/share/rice", pathReplace, []string{"/usr/share/rice"}, true},
		{"path /a:/b:/c", pathReplace, []string{"/a", "/b", "/c"}, true},
		// Append (leading colon)
		{"path :/extra/ui", pathAppend, []string{"/extra/ui"}, true},
		{"path :/a:/b", pathAppend, []string{"/a", "/b"}, true},
		// Prepend (trailing colon)
		{"path /first/ui:", pathPrepend, []string{"/first/ui"}, true},
		// Whitespace variations
		{"  path  /dir  ", pathReplace, []string{"/dir"}, true},
		{"path\t/dir", pathReplace, []string{"/dir"}, true},
		// Other directives
		{"theme dark", 0, nil, false},
		{"paths /a", 0, nil, false},
		// Comments and blanks
		{"# path /foo", 0, nil, false},
		{"", 0, nil, false},
		{"  ", 0, nil, false},
		// No value
		{"path", 0, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			op, dirs, ok := parseConfigLine(tt.line)
			if ok != tt.wantOk {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOk)
			}
			if !ok {
				return
			}
			if op != tt.wantOp {
				t.Errorf("op = %v, want %v", op, tt.wantOp)
			}
			if !slices.Equal(dirs, tt.want) {
				t.Errorf("dirs = %v, want %v", dirs, tt.want)
			}
		})
	}
}

func TestApplyOp(t *testing.T) {
	current := []string{"/default"}

	tests := []struct {
		name string
		op   pathOp
		dirs []string
		want []string
	}{
		{"replace", pathReplace, []string{"/new"}, []string{"/new"}},
		{"append", pathAppend, []string{"/extra"}, []string{"/default", "/extra"}},
		{"prepend", pathPrepend, []string{"/first"}, []string{"/first", "/default"}},
		{"append multiple", pathAppend, []string{"/a", "/b"}, []string{"/default", "/a", "/b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyOp(tt.op, tt.dirs, slices.Clone(current))
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseColonSemantic(t *testing.T) {
	current := []string{"/default/ui"}

	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"replace", "/new/ui", []string{"/new/ui"}},
		{"replace multiple", "/a:/b", []string{"/a", "/b"}},
		{"append", ":/extra/ui", []string{"/default/ui", "/extra/ui"}},
		{"append multiple", ":/a:/b", []string{"/default/ui", "/a", "/b"}},
		{"prepend", "/first/ui:", []string{"/first/ui", "/default/ui"}},
		{"prepend multiple", "/a:/b:", []string{"/a", "/b", "/default/ui"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, dirs := parseColonSemantic(tt.value)
			got := applyOp(op, dirs, slices.Clone(current))
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDedup(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"no dups", []string{"/a", "/b", "/c"}, []string{"/a", "/b", "/c"}},
		{"with dups", []string{"/a", "/b", "/a", "/c", "/b"}, []string{"/a", "/b", "/c"}},
		{"all same", []string{"/a", "/a", "/a"}, []string{"/a"}},
		{"empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dedup(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterExistingDirs(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "exists")
	if err := os.Mkdir(existing, 0o755); err != nil {
		t.Fatal(err)
	}

	filePath := filepath.Join(dir, "afile")
	if err := os.WriteFile(filePath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := filterExistingDirs([]string{existing, filepath.Join(dir, "missing"), filePath, "/nonexistent"})
	want := []string{existing}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestApplyConfigFile(t *testing.T) {
	dir := t.TempDir()
	confPath := filepath.Join(dir, "ricerc")
	if err := os.WriteFile(confPath, []byte("# Comment\npath /base/ui\npath :/extra/ui\ntheme dark\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := applyConfigFile(confPath, []string{"/original"}, parseConfigLine, testLogger(t))
	want := []string{"/base/ui", "/extra/ui"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestApplyConfigFilePrepend(t *testing.T) {
	dir := t.TempDir()
	confPath := filepath.Join(dir, "ricerc")
	if err := os.WriteFile(confPath, []byte("path /first:\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := applyConfigFile(confPath, []string{"/default"}, parseConfigLine, testLogger(t))
	want := []string{"/first", "/default"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestApplyConfigFileMissing(t *testing.T) {
	current := []string{"/keep"}
	got := applyConfigFile("/nonexistent/file", current, parseConfigLine, testLogger(t))
	if !slices.Equal(got, current) {
		t.Errorf("missing config should return current paths unchanged, got %v", got)
	}
}

func TestSplitPaths(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"/a:/b:/c", []string{"/a", "/b", "/c"}},
		{"/single", []string{"/single"}},
		{"", nil},
		{":/a", []string{"/a"}},          // leading empty segment skipped
		{"/a:", []string{"/a"}},          // trailing empty segment skipped
		{"/a::/b", []string{"/a", "/b"}}, // double colon, empty segment skipped
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := splitPaths(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearchPathFromEnv(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	for _, d := range []string{a, b} {
		if err := os.Mkdir(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	t.Setenv("RICEPATH", a+":"+filepath.Join(dir, "missing")+":"+b+":"+a)
	got := SearchPath()
	want := []string{a, b}
	if !slices.Equal(got, want) {
		t.Errorf("RICEPATH replace: got %v, want %v", got, want)
	}
}

func TestSearchPathAppendKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RICEPATH", ":"+dir)

	got := SearchPath()
	if len(got) == 0 || got[len(got)-1] != dir {
		t.Errorf("RICEPATH append: %s should be last in %v", dir, got)
	}
}
