// Package local reads a checkout on disk into source records for the
// code-mode graph builder.
package local

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"

	ignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/repograph/pkg/errors"
	"github.com/matzehuels/repograph/pkg/graph"
)

// Defaults for [Options].
const (
	DefaultMaxFiles    = 500
	DefaultMaxFileSize = 1 << 20
	defaultReaders     = 8
)

// DefaultExtensions are the file types scanned when none are configured.
var DefaultExtensions = []string{"ts", "tsx", "js", "jsx", "cpp", "h", "c", "hpp", "inl", "py", "go"}

// skipDirs are never descended into.
var skipDirs = map[string]bool{".git": true, "node_modules": true}

// Options controls which files [Walk] returns.
type Options struct {
	// Extensions without the leading dot. Empty means [DefaultExtensions].
	Extensions []string `toml:"extensions"`
	// MaxFiles caps the number of records. Files past the cap are dropped
	// in walk order.
	MaxFiles int `toml:"max_files"`
	// MaxFileSize skips files larger than this many bytes.
	MaxFileSize int64 `toml:"max_file_size"`
	// RespectGitignore skips paths matched by the root .gitignore.
	RespectGitignore bool `toml:"respect_gitignore"`
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{
		Extensions:       slices.Clone(DefaultExtensions),
		MaxFiles:         DefaultMaxFiles,
		MaxFileSize:      DefaultMaxFileSize,
		RespectGitignore: true,
	}
}

func (o Options) withDefaults() Options {
	if len(o.Extensions) == 0 {
		o.Extensions = DefaultExtensions
	}
	if o.MaxFiles <= 0 {
		o.MaxFiles = DefaultMaxFiles
	}
	if o.MaxFileSize <= 0 {
		o.MaxFileSize = DefaultMaxFileSize
	}
	return o
}

// Stats describes what a walk skipped.
type Stats struct {
	Scanned   int
	Ignored   int // matched by .gitignore
	TooLarge  int
	Truncated int // dropped by MaxFiles
}

// Walk returns the matching files below root as source records with
// slash-separated paths relative to root, in lexical walk order. Files are
// read concurrently.
func Walk(ctx context.Context, root string, opts Options) ([]graph.SourceRecord, Stats, error) {
	opts = opts.withDefaults()
	var stats Stats

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, stats, errors.New(errors.ErrCodeFileNotFound, "directory not found: %s", root)
		}
		return nil, stats, errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", root)
	}
	if !info.IsDir() {
		return nil, stats, errors.New(errors.ErrCodeInvalidPath, "not a directory: %s", root)
	}

	var gi *ignore.GitIgnore
	if opts.RespectGitignore {
		gi, err = ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
		if err != nil && !os.IsNotExist(err) {
			return nil, stats, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read .gitignore")
		}
	}

	exts := make(map[string]bool, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts["."+strings.TrimPrefix(strings.ToLower(e), ".")] = true
	}

	type candidate struct {
		abs, rel string
	}
	var files []candidate
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		rel, _ := filepath.Rel(root, path)
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			if gi != nil && gi.MatchesPath(rel+"/") {
				stats.Ignored++
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !exts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			stats.Ignored++
			return nil
		}
		if fi, err := d.Info(); err == nil && fi.Size() > opts.MaxFileSize {
			stats.TooLarge++
			return nil
		}
		if len(files) >= opts.MaxFiles {
			stats.Truncated++
			return nil
		}
		files = append(files, candidate{abs: path, rel: rel})
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, stats, ctx.Err()
		}
		return nil, stats, errors.Wrap(errors.ErrCodeInvalidPath, err, "walk %s", root)
	}

	records := make([]graph.SourceRecord, len(files))
	var tooLarge atomic.Int32
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(defaultReaders)
	for i, f := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(f.abs)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", f.rel)
			}
			// The file may have grown since it was listed.
			if int64(len(data)) > opts.MaxFileSize {
				tooLarge.Add(1)
				return nil
			}
			records[i] = graph.SourceRecord{Path: f.rel, Content: string(data)}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, stats, err
	}

	if n := tooLarge.Load(); n > 0 {
		stats.TooLarge += int(n)
		records = slices.DeleteFunc(records, func(r graph.SourceRecord) bool { return r.Path == "" })
	}
	stats.Scanned = len(records)
	return records, stats, nil
}
