// Package pipeline runs the build → layout → render pipeline for repograph.
//
// The CLI and the HTTP server both go through a [Runner], so caching, hooks
// and logging behave the same on every entry point.
//
// # Stages
//
//  1. Build: turn source records or pull requests into a graph
//  2. Layout: rank, order and position the graph
//  3. Render: export the positioned graph as JSON, DOT, SVG, PNG or PDF
//
// Each stage can run on its own. Results of every stage are cached under a
// key derived from the hash of the stage input plus the options that change
// its output.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	g, _, err := runner.BuildCode(ctx, files, build.CodeOptions{})
//	res, hit, err := runner.Layout(ctx, g, layout.DefaultConfig())
//	svg, _, err := runner.Render(ctx, res, pipeline.RenderOptions{Format: pipeline.FormatSVG})
package pipeline

import (
	"time"

	"github.com/matzehuels/repograph/pkg/build"
	"github.com/matzehuels/repograph/pkg/cache"
	"github.com/matzehuels/repograph/pkg/errors"
	"github.com/matzehuels/repograph/pkg/graph"
	"github.com/matzehuels/repograph/pkg/layout"
)

// Graph modes.
const (
	ModeCode         = "code"
	ModeContributors = "contributors"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// Formats lists the supported output formats.
var Formats = []string{FormatJSON, FormatDOT, FormatSVG, FormatPNG, FormatPDF}

// Cache lifetimes per stage.
const (
	TTLGraph    = 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// DefaultScale is the PNG scale factor when none is given.
const DefaultScale = 2.0

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	return errors.ValidateOneOf("format", format, Formats...)
}

// RenderOptions configures the render stage.
type RenderOptions struct {
	Format   string
	Detailed bool
	// Scale applies to PNG only.
	Scale float64
}

func (o RenderOptions) withDefaults() RenderOptions {
	if o.Format == "" {
		o.Format = FormatSVG
	}
	if o.Format != FormatPNG {
		o.Scale = 0
	} else if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	return o
}

// Input is what [Runner.Execute] builds a graph from. Exactly one of Files,
// PullRequests or Graph is used, chosen by Mode; an empty Mode with a
// non-nil Graph skips the build stage.
type Input struct {
	Mode         string
	Files        []graph.SourceRecord
	PullRequests []build.PullRequest
	Graph        *graph.Graph
}

// Options configures a full pipeline run.
type Options struct {
	Code    build.CodeOptions
	Layout  layout.Config
	Formats []string
	// Detailed and Scale are forwarded to every render.
	Detailed bool
	Scale    float64
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Graph     graph.Graph
	GraphHash string
	Layout    layout.Result
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	BuildTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GraphHit  bool
	LayoutHit bool
	RenderHit bool // all artifacts came from cache
}

// LayoutKeyOpts returns the cache key options for cfg after normalization.
func LayoutKeyOpts(cfg layout.Config) cache.LayoutKeyOpts {
	cfg = cfg.Normalized()
	return cache.LayoutKeyOpts{
		Direction:      string(cfg.Direction),
		RankSeparation: cfg.RankSeparation,
		NodeSeparation: cfg.NodeSeparation,
		NodeWidth:      cfg.NodeWidth,
		NodeHeight:     cfg.NodeHeight,
		MarginX:        cfg.MarginX,
		MarginY:        cfg.MarginY,
		Passes:         cfg.Passes,
	}
}

// GraphKeyOpts returns the cache key options for code-mode options.
// Workers is left out since it never changes the graph.
func GraphKeyOpts(opts build.CodeOptions) cache.GraphKeyOpts {
	return cache.GraphKeyOpts{Scope: opts.Scope.String(), DedupeEdges: opts.DedupeEdges}
}
