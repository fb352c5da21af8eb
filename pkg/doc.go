// Package pkg provides the core libraries for repograph.
//
// # Overview
//
// repograph turns a repository into a layered directed graph. In code mode,
// nodes are source files and the modules they import. In contributor mode,
// nodes are pull request authors and reviewers. Both graphs go through the
// same layout engine and renderers.
//
// # Architecture
//
// The typical data flow:
//
//	Source tree / pull request JSON
//	         ↓
//	    [source/local] + [extract] (records and dependencies)
//	         ↓
//	    [build] (graph construction)
//	         ↓
//	    [layout] on top of [dag] and [dag/transform] (ranks, order, coordinates)
//	         ↓
//	    [render/nodelink] (DOT, SVG, PNG, PDF)
//
// [pipeline] runs these stages behind a [cache] and is shared by the CLI and
// the HTTP API in [server].
//
// # Quick Start
//
//	files := []graph.SourceRecord{
//	    {Path: "src/main.ts", Content: `import { util } from "./utils";`},
//	}
//	g := build.BuildCode(files, build.CodeOptions{Scope: build.ScopeLocal})
//	res := layout.Graph(g, layout.DefaultConfig())
//	dot := nodelink.ToDOT(res, nodelink.Options{})
//
// # Main Packages
//
// [extract] - Regex-based import/include extraction for TypeScript,
// JavaScript, Python, Go and C/C++.
//
// [build] - Code-mode and contributor-mode graph builders.
//
// [layout] - Layered layout: cycle breaking, longest-path ranking, barycenter
// ordering and coordinate assignment.
//
// [dag] and [dag/transform] - The internal ranked graph the layout engine
// works on.
//
// [render/nodelink] - Graphviz-backed rendering with pinned positions.
//
// [graph] - The shared graph types and their JSON form.
//
// ## Infrastructure
//
// [cache] - File, in-memory LRU and Redis caches plus key derivation.
//
// [config] - TOML configuration with environment overrides.
//
// [errors] - Coded errors shared by the CLI and the API.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test -run Example ./pkg/...       # Examples only
//	go test -tags integration ./pkg/...  # Include Redis tests (needs REDIS_URL)
//
// [extract]: https://pkg.go.dev/github.com/matzehuels/repograph/pkg/extract
// [build]: https://pkg.go.dev/github.com/matzehuels/repograph/pkg/build
// [layout]: https://pkg.go.dev/github.com/matzehuels/repograph/pkg/layout
// [dag]: https://pkg.go.dev/github.com/matzehuels/repograph/pkg/dag
// [dag/transform]: https://pkg.go.dev/github.com/matzehuels/repograph/pkg/dag/transform
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/repograph/pkg/render/nodelink
// [graph]: https://pkg.go.dev/github.com/matzehuels/repograph/pkg/graph
// [source/local]: https://pkg.go.dev/github.com/matzehuels/repograph/pkg/source/local
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/repograph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/repograph/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/repograph/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/repograph/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/repograph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/repograph/pkg/observability
package pkg
