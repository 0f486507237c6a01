package rice

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"runtime"
	"slices"
	"sync"

	"github.com/ricelang/rice/internal/types"
)

// ParseAll parses every document in src concurrently. Results are sorted
// by path. Files that look binary are skipped.
//
// Example:
//
//	src, err := rice.DirTree("ui")
//	if err != nil { ... }
//	results, err := rice.ParseAll(ctx, src)
func ParseAll(ctx context.Context, src Source, opts ...Option) ([]*Result, error) {
	if src == nil {
		return nil, ErrNoSources
	}
	cfg := newConfig(opts)

	names, err := src.ListDocuments()
	if err != nil {
		return nil, err
	}
	return parseDocuments(ctx, []Source{src}, names, cfg, false)
}

// ParseNamed parses the named documents from src concurrently. A name
// that no source knows is an error wrapping fs.ErrNotExist. With
// WithSearchPath, names missing from src are also looked up in the
// SearchPath directories. Results are sorted by path.
func ParseNamed(ctx context.Context, src Source, names []string, opts ...Option) ([]*Result, error) {
	cfg := newConfig(opts)

	var sources []Source
	if src != nil {
		sources = append(sources, src)
	}
	if cfg.searchPath {
		sources = append(sources, searchPathSources(types.Logger{L: cfg.logger})...)
	}
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	return parseDocuments(ctx, sources, dedup(names), cfg, true)
}

func parseDocuments(ctx context.Context, sources []Source, names []string, cfg config, strict bool) ([]*Result, error) {
	logger := types.Logger{L: types.ComponentLogger(cfg.logger, "loader")}
	if len(names) == 0 {
		return nil, ctx.Err()
	}

	logger.Log(slog.LevelInfo, "parallel parsing",
		slog.Int("documents", len(names)))

	var (
		mu      sync.Mutex
		results []*Result
		errs    []error
		wg      sync.WaitGroup
	)
	sem := make(chan struct{}, runtime.NumCPU())

	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			res, err := parseNamed(sources, name, cfg, logger)
			if errors.Is(err, fs.ErrNotExist) && !strict {
				return
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("document %s: %w", name, err))
				return
			}
			if res != nil {
				results = append(results, res)
			}
		}(name)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	slices.SortFunc(results, func(a, b *Result) int {
		return cmp.Compare(a.Path, b.Path)
	})

	logger.Log(slog.LevelInfo, "parallel parsing complete",
		slog.Int("documents", len(results)))
	return results, nil
}

// parseNamed finds and parses one document. It returns a nil result for
// content that does not look like text.
func parseNamed(sources []Source, name string, cfg config, logger types.Logger) (*Result, error) {
	content, path, err := findContent(sources, name)
	if err != nil {
		return nil, err
	}

	if !looksLikeText(content) {
		logger.Log(slog.LevelDebug, "skipping binary content",
			slog.String("document", name),
			slog.String("path", path))
		return nil, nil
	}

	if logger.TraceEnabled() {
		logger.Trace("parsing document",
			slog.String("document", name),
			slog.String("path", path),
			slog.Int("bytes", len(content)))
	}
	return parseSource(content, name, path, cfg), nil
}

func findContent(sources []Source, name string) ([]byte, string, error) {
	for _, src := range sources {
		result, err := src.Find(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, result.Path, err
		}
		content, err := io.ReadAll(result.Reader)
		_ = result.Reader.Close()
		if err != nil {
			return nil, result.Path, err
		}
		return content, result.Path, nil
	}
	return nil, "", fs.ErrNotExist
}

// binaryCheckSize is how much of a file is probed for NUL bytes.
const binaryCheckSize = 1024

func looksLikeText(content []byte) bool {
	probe := content[:min(len(content), binaryCheckSize)]
	return bytes.IndexByte(probe, 0) < 0
}
