package rice

import (
	"bufio"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ricelang/rice/internal/types"
)

// WithSearchPath makes ParseNamed fall back to the directories listed by
// SearchPath when a name is not found in the explicit source. With the
// option set, the explicit source may be nil.
func WithSearchPath() Option {
	return func(c *config) { c.searchPath = true }
}

type pathOp int

const (
	pathReplace pathOp = iota
	pathAppend
	pathPrepend
)

// SearchPath returns the directories searched for shared Rice documents,
// filtered to those that exist.
//
// The list starts from the built-in defaults, is then edited by "path"
// lines in /etc/ricerc and ~/.ricerc, and finally by the RICEPATH
// environment variable. A leading colon appends to the current list, a
// trailing colon prepends, and neither replaces it:
//
//	RICEPATH=/opt/ui          # only /opt/ui
//	RICEPATH=:/opt/ui         # defaults, then /opt/ui
//	RICEPATH=/opt/ui:         # /opt/ui, then defaults
func SearchPath() []string {
	return discoverSearchPath(types.Logger{})
}

func discoverSearchPath(logger types.Logger) []string {
	paths := defaultSearchPath()
	for _, cf := range configFiles() {
		paths = applyConfigFile(cf, paths, parseConfigLine, logger)
	}
	if v := os.Getenv("RICEPATH"); v != "" {
		op, dirs := parseColonSemantic(v)
		paths = applyOp(op, dirs, paths)
	}
	return filterExistingDirs(dedup(paths))
}

// searchPathSources returns a Source for every search path directory.
func searchPathSources(logger types.Logger) []Source {
	var sources []Source
	for _, d := range discoverSearchPath(logger) {
		if src, err := DirTree(d); err == nil {
			sources = append(sources, src)
		}
	}
	return sources
}

func defaultSearchPath() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "rice"))
	}
	paths = append(paths,
		"/usr/local/share/rice",
		"/usr/share/rice",
	)
	return paths
}

func configFiles() []string {
	files := []string{"/etc/ricerc"}
	if home, err := os.UserHomeDir(); err == nil {
		files = append(files, filepath.Join(home, ".ricerc"))
	}
	return files
}

// parseConfigLine parses a single ricerc line for path directives:
//
//	path /a:/b     replace
//	path :/a       append
//	path /a:       prepend
func parseConfigLine(line string) (pathOp, []string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return 0, nil, false
	}

	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "path" {
		return 0, nil, false
	}

	op, dirs := parseColonSemantic(fields[1])
	return op, dirs, true
}

// parseColonSemantic interprets leading/trailing colon semantics.
// Leading colon = append, trailing colon = prepend, neither = replace.
func parseColonSemantic(value string) (pathOp, []string) {
	if strings.HasPrefix(value, ":") {
		return pathAppend, splitPaths(strings.TrimPrefix(value, ":"))
	}
	if strings.HasSuffix(value, ":") {
		return pathPrepend, splitPaths(strings.TrimSuffix(value, ":"))
	}
	return pathReplace, splitPaths(value)
}

func applyOp(op pathOp, dirs, current []string) []string {
	switch op {
	case pathAppend:
		return append(current, dirs...)
	case pathPrepend:
		return append(dirs, current...)
	default:
		return dirs
	}
}

func applyConfigFile(path string, current []string, parseLine func(string) (pathOp, []string, bool), logger types.Logger) []string {
	f, err := os.Open(path)
	if err != nil {
		return current
	}
	defer f.Close() //nolint:errcheck // best-effort config file read

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		op, dirs, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		current = applyOp(op, dirs, current)
	}
	if err := scanner.Err(); err != nil {
		logger.Log(slog.LevelDebug, "error reading config file", slog.String("path", path), slog.Any("error", err))
	}
	return current
}

func splitPaths(s string) []string {
	if s == "" {
		return nil
	}
	var result []string
	for _, p := range strings.Split(s, ":") {
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func dedup(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	var result []string
	for _, p := range paths {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			result = append(result, p)
		}
	}
	return result
}

func filterExistingDirs(paths []string) []string {
	var result []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err == nil && info.IsDir() {
			result = append(result, p)
		}
	}
	return result
}
