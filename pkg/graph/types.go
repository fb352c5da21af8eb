package graph

import (
	"path"
	"strings"
	"time"
)

// Node kinds.
const (
	KindFile        = "file"        // a scanned source record
	KindModule      = "module"      // a dependency target that was never scanned
	KindContributor = "contributor" // a PR author or reviewer
)

// SourceRecord is one file handed to the code-mode builder.
type SourceRecord struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Dependency is a raw reference from a scanned file to a module or header.
// Target is the specifier as written in the source and is never resolved.
type Dependency struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Node is a graph vertex. ID is the unique key (file path, specifier or login).
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Kind  string `json:"kind,omitempty"`

	// Contributor attributes; nil for file nodes.
	*ContributorStats
}

// ContributorStats holds the per-identity aggregates of contributor mode.
type ContributorStats struct {
	AvatarURL    string     `json:"avatarUrl"`
	PRCount      int        `json:"prCount"`
	ReviewCount  int        `json:"reviewCount"`
	LastActivity *time.Time `json:"lastActivity"`
}

// IsContributor reports whether the node carries contributor attributes.
func (n Node) IsContributor() bool { return n.ContributorStats != nil }

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Clone returns a deep copy of n so callers can hand out nodes without sharing
// the contributor counters.
func (n Node) Clone() Node {
	if n.ContributorStats != nil {
		stats := *n.ContributorStats
		if stats.LastActivity != nil {
			t := *stats.LastActivity
			stats.LastActivity = &t
		}
		n.ContributorStats = &stats
	}
	return n
}

// Edge is a directed edge between two node IDs.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// NewEdge builds an edge whose ID is derived from its endpoints.
func NewEdge(source, target string) Edge {
	return Edge{ID: EdgeID(source, target), Source: source, Target: target}
}

// EdgeID returns the deterministic identifier "source->target".
func EdgeID(source, target string) string { return source + "->" + target }

// Graph is the unified output of both builders and the input of the layout
// engine. Nodes are unique by ID.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NodeCount returns the number of nodes.
func (g Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges.
func (g Graph) EdgeCount() int { return len(g.Edges) }

// NodeIDs returns the node IDs in graph order.
func (g Graph) NodeIDs() []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// Node returns the node with the given ID.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// DanglingEdges returns the edges whose source or target is not a node of g.
// Builders never produce them; hand-written graphs might.
func (g Graph) DanglingEdges() []Edge {
	ids := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = struct{}{}
	}
	var out []Edge
	for _, e := range g.Edges {
		_, okS := ids[e.Source]
		_, okT := ids[e.Target]
		if !okS || !okT {
			out = append(out, e)
		}
	}
	return out
}

// FileLabel returns the last segment of a slash-separated path, or the path
// itself when it has no usable last segment.
func FileLabel(p string) string {
	trimmed := strings.TrimRight(p, "/")
	if trimmed == "" {
		return p
	}
	if base := path.Base(trimmed); base != "." {
		return base
	}
	return p
}
