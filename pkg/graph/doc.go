// Package graph defines the node/edge model shared by the graph builders, the
// layout engine and every outer surface.
//
// # Model
//
// A [Graph] is an ordered list of unique [Node] values plus a list of [Edge]
// values. Node order is first-seen order as produced by a builder; edge order is
// insertion order. Every edge endpoint names a node in the same graph.
//
// Nodes come in two flavours that share one type:
//
//   - File nodes (code mode) carry only an ID and a display label.
//   - Contributor nodes carry a [ContributorStats] with PR/review counters and
//     the latest activity timestamp.
//
// Edge IDs are derived from their endpoints with [EdgeID] so that rebuilding a
// graph from the same input reproduces the same identifiers.
//
// # Serialization
//
// Graphs round-trip through JSON with [WriteGraph]/[ReadGraph] and their file
// variants. Contributor attributes are flattened into the node object, matching
// the shape consumed by the rendering layer:
//
//	{"id": "alice", "label": "alice", "avatarUrl": "...", "prCount": 3,
//	 "reviewCount": 1, "lastActivity": "2024-05-01T10:00:00Z"}
package graph
