package rice

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// DefaultExtensions returns the file extensions recognized as Rice
// documents.
func DefaultExtensions() []string {
	return []string{".rice"}
}

// FindResult is a document located by a Source.
type FindResult struct {
	// Reader yields the document content. The caller closes it.
	Reader io.ReadCloser
	// Path identifies where the document came from, for diagnostics.
	Path string
}

// Source finds Rice documents by name. A document's name is its file name
// without extension.
type Source interface {
	// Find locates a document by name.
	// Returns fs.ErrNotExist if not found.
	Find(name string) (FindResult, error)

	// ListDocuments returns the names of all documents known to this
	// source, sorted.
	ListDocuments() ([]string, error)
}

// SourceOption configures a source.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	extensions []string
}

func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		extensions: DefaultExtensions(),
	}
}

// WithExtensions sets the file extensions to recognize for this source.
func WithExtensions(exts ...string) SourceOption {
	return func(c *sourceConfig) {
		c.extensions = exts
	}
}

// --- Dir Source (single directory, lazy) ---

type dirSource struct {
	path   string
	config sourceConfig
}

// Dir creates a Source that searches a single directory (no recursion).
// Files are looked up lazily on each Find() call.
func Dir(path string, opts ...SourceOption) (Source, error) {
	if err := checkDir(path); err != nil {
		return nil, err
	}
	cfg := defaultSourceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &dirSource{path: path, config: cfg}, nil
}

// MustDir is like Dir but panics on error.
func MustDir(path string, opts ...SourceOption) Source {
	src, err := Dir(path, opts...)
	if err != nil {
		panic(err)
	}
	return src
}

func (s *dirSource) Find(name string) (FindResult, error) {
	for _, ext := range s.config.extensions {
		fullPath := filepath.Join(s.path, name+ext)
		f, err := os.Open(fullPath)
		if err == nil {
			return FindResult{Reader: f, Path: fullPath}, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return FindResult{Path: fullPath}, err
		}
	}
	return FindResult{}, fs.ErrNotExist
}

func (s *dirSource) ListDocuments() ([]string, error) {
	extSet := makeExtensionSet(s.config.extensions)

	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !hasValidExtension(entry.Name(), extSet) {
			continue
		}
		names = append(names, documentNameFromPath(entry.Name()))
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

// --- DirTree Source (recursive directory, indexed) ---

type treeSource struct {
	index map[string]string // document name -> file path
}

// DirTree creates a Source that recursively indexes a directory tree.
// It walks the tree once at construction and builds a name->path index.
// First match wins for duplicate names.
func DirTree(root string, opts ...SourceOption) (Source, error) {
	if err := checkDir(root); err != nil {
		return nil, err
	}

	cfg := defaultSourceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	index, err := buildIndex(os.DirFS(root), makeExtensionSet(cfg.extensions))
	if err != nil {
		return nil, err
	}
	for name, rel := range index {
		index[name] = filepath.Join(root, filepath.FromSlash(rel))
	}
	return &treeSource{index: index}, nil
}

// MustDirTree is like DirTree but panics on error.
func MustDirTree(root string, opts ...SourceOption) Source {
	src, err := DirTree(root, opts...)
	if err != nil {
		panic(err)
	}
	return src
}

func (s *treeSource) Find(name string) (FindResult, error) {
	path, ok := s.index[name]
	if !ok {
		return FindResult{}, fs.ErrNotExist
	}
	f, err := os.Open(path)
	if err != nil {
		return FindResult{Path: path}, err
	}
	return FindResult{Reader: f, Path: path}, nil
}

func (s *treeSource) ListDocuments() ([]string, error) {
	return sortedKeys(s.index), nil
}

// --- FS Source (for embed.FS, testing, http filesystems) ---

type fsSource struct {
	name   string
	fsys   fs.FS
	config sourceConfig

	once  sync.Once
	index map[string]string
	err   error
}

// FS creates a Source backed by an fs.FS (e.g., embed.FS).
// The name is used for error messages and path reporting.
// It lazily indexes the filesystem on first use.
func FS(name string, fsys fs.FS, opts ...SourceOption) Source {
	cfg := defaultSourceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &fsSource{
		name:   name,
		fsys:   fsys,
		config: cfg,
	}
}

func (s *fsSource) load() error {
	s.once.Do(func() {
		s.index, s.err = buildIndex(s.fsys, makeExtensionSet(s.config.extensions))
	})
	return s.err
}

func (s *fsSource) Find(name string) (FindResult, error) {
	if err := s.load(); err != nil {
		return FindResult{}, err
	}

	path, ok := s.index[name]
	if !ok {
		return FindResult{}, fs.ErrNotExist
	}
	f, err := s.fsys.Open(path)
	if err != nil {
		return FindResult{Path: s.name + ":" + path}, err
	}
	return FindResult{Reader: f, Path: s.name + ":" + path}, nil
}

func (s *fsSource) ListDocuments() ([]string, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	return sortedKeys(s.index), nil
}

// --- Multi Source (combines multiple sources) ---

type multiSource struct {
	sources []Source
}

// Multi combines multiple sources into one.
// Find() tries each source in order, returning the first match.
func Multi(sources ...Source) Source {
	return &multiSource{sources: sources}
}

func (s *multiSource) Find(name string) (FindResult, error) {
	for _, src := range s.sources {
		r, err := src.Find(name)
		if err == nil {
			return r, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return r, err
		}
	}
	return FindResult{}, fs.ErrNotExist
}

func (s *multiSource) ListDocuments() ([]string, error) {
	var names []string
	for _, src := range s.sources {
		n, err := src.ListDocuments()
		if err != nil {
			return nil, err
		}
		names = append(names, n...)
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

// --- Helpers ---

func checkDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &os.PathError{Op: "open", Path: path, Err: os.ErrInvalid}
	}
	return nil
}

// buildIndex walks fsys and maps document names to slash-separated paths.
// Unreadable directories are skipped. First match in walk order wins.
func buildIndex(fsys fs.FS, extSet map[string]struct{}) (map[string]string, error) {
	index := make(map[string]string)
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !hasValidExtension(path, extSet) {
			return nil
		}

		name := documentNameFromPath(path)
		if _, exists := index[name]; !exists {
			index[name] = path
		}
		return nil
	})
	return index, err
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func makeExtensionSet(extensions []string) map[string]struct{} {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = struct{}{}
	}
	return set
}

func hasValidExtension(path string, extSet map[string]struct{}) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := extSet[ext]
	return ok
}

func documentNameFromPath(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext)
}
