package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero means the entry does not expire. Implementations
// are safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Name identifies the backend in logs ("file", "memory", "redis", "null").
	Name() string
	Close() error
}

// Keyer derives cache keys for pipeline stages. Every key embeds a hash of
// the stage inputs, so equal inputs share an entry and any change misses.
type Keyer interface {
	// GraphKey keys a built graph by the hash of its raw input.
	GraphKey(mode, inputHash string, opts GraphKeyOpts) string
	// LayoutKey keys a layout by the hash of the graph it positions.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys a rendered file by the hash of the layout it draws.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// GraphKeyOpts holds the builder options that change a built graph.
type GraphKeyOpts struct {
	Scope       string `json:"scope,omitempty"`
	DedupeEdges bool   `json:"dedupe_edges,omitempty"`
}

// LayoutKeyOpts holds the layout configuration that changes positions.
type LayoutKeyOpts struct {
	Direction      string  `json:"direction"`
	RankSeparation float64 `json:"rank_separation"`
	NodeSeparation float64 `json:"node_separation"`
	NodeWidth      float64 `json:"node_width"`
	NodeHeight     float64 `json:"node_height"`
	MarginX        float64 `json:"margin_x"`
	MarginY        float64 `json:"margin_y"`
	Passes         int     `json:"passes"`
}

// ArtifactKeyOpts holds the render options that change output bytes.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Detailed bool    `json:"detailed,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
}

// DefaultKeyer produces keys of the form "<stage>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GraphKey implements Keyer.
func (DefaultKeyer) GraphKey(mode, inputHash string, opts GraphKeyOpts) string {
	return hashKey("graph", mode, inputHash, opts)
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
