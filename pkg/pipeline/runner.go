package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/repograph/pkg/build"
	"github.com/matzehuels/repograph/pkg/cache"
	"github.com/matzehuels/repograph/pkg/errors"
	"github.com/matzehuels/repograph/pkg/graph"
	"github.com/matzehuels/repograph/pkg/layout"
	"github.com/matzehuels/repograph/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no pipeline results, only the cache and logger, so one
// Runner can serve concurrent requests with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// Refresh skips cache reads. Fresh results are still written.
	Refresh bool
	// TTL, when positive, replaces the per-stage TTLs.
	TTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses [cache.DefaultKeyer] and a nil logger discards output.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// BuildCode builds a code-mode graph and reports whether it came from cache.
func (r *Runner) BuildCode(ctx context.Context, files []graph.SourceRecord, opts build.CodeOptions) (graph.Graph, bool, error) {
	if err := ctx.Err(); err != nil {
		return graph.Graph{}, false, err
	}
	inputHash, err := cache.HashJSON(files)
	if err != nil {
		return graph.Graph{}, false, errors.Wrap(errors.ErrCodeInternal, err, "hash source files")
	}
	key := r.Keyer.GraphKey(ModeCode, inputHash, GraphKeyOpts(opts))

	return r.buildCached(ctx, ModeCode, len(files), key, func() graph.Graph {
		return build.BuildCode(files, opts)
	})
}

// BuildContributors builds a contributor graph and reports whether it came
// from cache.
func (r *Runner) BuildContributors(ctx context.Context, prs []build.PullRequest) (graph.Graph, bool, error) {
	if err := ctx.Err(); err != nil {
		return graph.Graph{}, false, err
	}
	inputHash, err := cache.HashJSON(prs)
	if err != nil {
		return graph.Graph{}, false, errors.Wrap(errors.ErrCodeInternal, err, "hash pull requests")
	}
	key := r.Keyer.GraphKey(ModeContributors, inputHash, cache.GraphKeyOpts{})

	return r.buildCached(ctx, ModeContributors, len(prs), key, func() graph.Graph {
		return build.BuildContributors(prs)
	})
}

func (r *Runner) buildCached(ctx context.Context, mode string, inputs int, key string, fn func() graph.Graph) (graph.Graph, bool, error) {
	if data, ok := r.lookup(ctx, "graph", key); ok {
		if g, err := graph.ReadGraph(bytes.NewReader(data)); err == nil {
			r.Logger.Debug("graph cache hit", "mode", mode, "nodes", g.NodeCount())
			return g, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, mode, inputs)
	start := time.Now()
	g := fn()
	hooks.OnBuildComplete(ctx, mode, g.NodeCount(), g.EdgeCount(), time.Since(start), nil)

	if dangling := g.DanglingEdges(); len(dangling) > 0 {
		r.Logger.Warn("graph has edges to unknown nodes", "mode", mode, "count", len(dangling))
	}
	r.Logger.Debug("built graph",
		"mode", mode,
		"inputs", inputs,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", time.Since(start))

	if data, err := graph.MarshalGraph(g); err == nil {
		r.store(ctx, "graph", key, data, TTLGraph)
	}
	return g, false, nil
}

// Layout positions g and reports whether the result came from cache. The
// key is the graph hash plus the normalized configuration, so configs that
// normalize to the same geometry share an entry.
func (r *Runner) Layout(ctx context.Context, g graph.Graph, cfg layout.Config) (layout.Result, bool, error) {
	if err := ctx.Err(); err != nil {
		return layout.Result{}, false, err
	}
	key := r.Keyer.LayoutKey(graph.Hash(g), LayoutKeyOpts(cfg))

	if data, ok := r.lookup(ctx, "layout", key); ok {
		if res, err := layout.ReadResult(bytes.NewReader(data)); err == nil {
			return res, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, g.NodeCount(), g.EdgeCount())
	start := time.Now()
	res := layout.Graph(g, cfg)
	hooks.OnLayoutComplete(ctx, g.NodeCount(), time.Since(start), nil)

	if len(res.Skipped) > 0 {
		r.Logger.Debug("skipped edges with unknown endpoints", "count", len(res.Skipped))
	}
	if len(res.BackEdges) > 0 {
		r.Logger.Debug("ignored back edges for ranking", "count", len(res.BackEdges))
	}

	if data, err := layout.MarshalResult(res); err == nil {
		r.store(ctx, "layout", key, data, TTLLayout)
	}
	return res, false, nil
}

// Render exports res and reports whether the bytes came from cache.
func (r *Runner) Render(ctx context.Context, res layout.Result, opts RenderOptions) ([]byte, bool, error) {
	opts = opts.withDefaults()
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, false, err
	}

	layoutData, err := json.Marshal(res)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	key := r.Keyer.ArtifactKey(cache.Hash(layoutData), cache.ArtifactKeyOpts{
		Format:   opts.Format,
		Detailed: opts.Detailed,
		Scale:    opts.Scale,
	})

	if data, ok := r.lookup(ctx, "artifact", key); ok {
		return data, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Format)
	start := time.Now()
	data, err := Render(ctx, res, opts)
	hooks.OnRenderComplete(ctx, opts.Format, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	r.store(ctx, "artifact", key, data, TTLArtifact)
	return data, false, nil
}

// Execute runs every stage for in and renders each requested format.
func (r *Runner) Execute(ctx context.Context, in Input, opts Options) (*Result, error) {
	result := &Result{Artifacts: make(map[string][]byte)}
	for _, f := range opts.Formats {
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
	}

	buildStart := time.Now()
	var err error
	switch in.Mode {
	case ModeCode:
		result.Graph, result.CacheInfo.GraphHit, err = r.BuildCode(ctx, in.Files, opts.Code)
	case ModeContributors:
		result.Graph, result.CacheInfo.GraphHit, err = r.BuildContributors(ctx, in.PullRequests)
	case "":
		if in.Graph == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "no graph input")
		}
		result.Graph = *in.Graph
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid mode: %q (must be one of: code, contributors)", in.Mode)
	}
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = result.Graph.NodeCount()
	result.Stats.EdgeCount = result.Graph.EdgeCount()
	result.GraphHash = graph.Hash(result.Graph)

	r.Logger.Info("built graph",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"cached", result.CacheInfo.GraphHit,
		"duration", result.Stats.BuildTime)

	layoutStart := time.Now()
	result.Layout, result.CacheInfo.LayoutHit, err = r.Layout(ctx, result.Graph, opts.Layout)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Stats.LayoutTime = time.Since(layoutStart)

	r.Logger.Info("computed layout",
		"ranks", result.Layout.Ranks,
		"crossings", result.Layout.Crossings,
		"cached", result.CacheInfo.LayoutHit,
		"duration", result.Stats.LayoutTime)

	if len(opts.Formats) == 0 {
		return result, nil
	}

	renderStart := time.Now()
	allHit := true
	for _, format := range opts.Formats {
		data, hit, err := r.Render(ctx, result.Layout, RenderOptions{
			Format:   format,
			Detailed: opts.Detailed,
			Scale:    opts.Scale,
		})
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		result.Artifacts[format] = data
		allHit = allHit && hit
	}
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = allHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) lookup(ctx context.Context, keyType, key string) ([]byte, bool) {
	if r.Refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "cache", r.Cache.Name(), "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if r.TTL > 0 {
		ttl = r.TTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "cache", r.Cache.Name(), "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
