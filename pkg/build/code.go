package build

import (
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/repograph/pkg/errors"
	"github.com/matzehuels/repograph/pkg/extract"
	"github.com/matzehuels/repograph/pkg/graph"
)

// Scope decides which dependency targets become graph nodes.
type Scope int

const (
	// ScopeAll keeps every target the extractor reports.
	ScopeAll Scope = iota
	// ScopeLocal keeps targets that look project-internal: relative paths,
	// anything containing a path separator, and C/C++ headers.
	ScopeLocal
	// ScopeRelative keeps only targets starting with "./" or "../".
	ScopeRelative
)

var scopeNames = map[Scope]string{
	ScopeAll:      "all",
	ScopeLocal:    "local",
	ScopeRelative: "relative",
}

// String returns the scope name used in configuration and flags.
func (s Scope) String() string {
	if name, ok := scopeNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseScope parses a scope name ("all", "local", "relative"). The empty
// string means [ScopeAll].
func ParseScope(s string) (Scope, error) {
	if s == "" {
		return ScopeAll, nil
	}
	for scope, name := range scopeNames {
		if strings.EqualFold(s, name) {
			return scope, nil
		}
	}
	return ScopeAll, errors.New(errors.ErrCodeInvalidInput, "invalid scope: %q (must be one of: all, local, relative)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Scope) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scope) UnmarshalText(text []byte) error {
	v, err := ParseScope(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

var headerExtensions = []string{".h", ".hh", ".hpp", ".hxx", ".inl"}

// Keep reports whether target is kept under the scope.
func (s Scope) Keep(target string) bool {
	relative := strings.HasPrefix(target, "./") || strings.HasPrefix(target, "../")
	switch s {
	case ScopeRelative:
		return relative
	case ScopeLocal:
		if relative || strings.Contains(target, "/") {
			return true
		}
		for _, ext := range headerExtensions {
			if strings.HasSuffix(target, ext) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// CodeOptions configures [BuildCode]. The zero value keeps every target,
// keeps duplicate edges and extracts sequentially.
type CodeOptions struct {
	Scope       Scope `json:"scope" toml:"scope"`
	DedupeEdges bool  `json:"dedupeEdges" toml:"dedupe_edges"`
	// Workers bounds concurrent extraction. Values below 2 extract sequentially.
	Workers int `json:"workers,omitempty" toml:"workers"`
}

// BuildCode builds a file dependency graph from source records.
//
// Every record path becomes a node labelled with its last path segment. Each
// dependency target kept by the scope becomes a node too (even if it was never
// scanned) and gets an edge "path->target". Records with an empty path are
// skipped. The result depends only on files and opts, never on Workers.
func BuildCode(files []graph.SourceRecord, opts CodeOptions) graph.Graph {
	found := extractAll(files, opts.Workers)

	acc := newAccumulator()
	for i, f := range files {
		if f.Path == "" {
			continue
		}
		file := acc.node(f.Path, func() graph.Node {
			return graph.Node{Label: graph.FileLabel(f.Path), Kind: graph.KindFile}
		})
		file.Kind = graph.KindFile

		for _, dep := range found[i] {
			if !opts.Scope.Keep(dep.Target) {
				continue
			}
			acc.node(dep.Target, func() graph.Node {
				return graph.Node{Label: graph.FileLabel(dep.Target), Kind: graph.KindModule}
			})
			acc.edge(dep.Source, dep.Target, opts.DedupeEdges)
		}
	}
	return acc.snapshot()
}

// extractAll runs the extractor over every record, preserving input order.
func extractAll(files []graph.SourceRecord, workers int) [][]graph.Dependency {
	found := make([][]graph.Dependency, len(files))
	if workers < 2 {
		for i, f := range files {
			if f.Path != "" {
				found[i] = extract.Extract(f.Path, f.Content)
			}
		}
		return found
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, f := range files {
		if f.Path == "" {
			continue
		}
		g.Go(func() error {
			found[i] = extract.Extract(f.Path, f.Content)
			return nil
		})
	}
	_ = g.Wait()
	return found
}
