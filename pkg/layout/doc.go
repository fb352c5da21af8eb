// Package layout computes layered ("Sugiyama") drawings of directed graphs.
//
// # Overview
//
// [Layout] takes any node/edge graph, cyclic or not, and returns each node
// with a rank, an order within its rank, a centre coordinate and port sides.
// The phases are:
//
//  1. Cycle breaking: a depth-first search from the sources removes back
//     edges, which are reported in [Result.BackEdges].
//  2. Ranking: each node's rank is its longest-path depth, so for every edge
//     that is not a back edge rank(target) > rank(source).
//  3. Ordering: edges spanning several ranks are split by virtual nodes and
//     the [Barycentric] heuristic orders each rank to reduce crossings.
//  4. Coordinates: ranks are columns (or rows, for vertical directions)
//     spaced by RankSeparation; nodes within a rank are stacked NodeSeparation
//     apart and each rank is centred against the widest one.
//  5. Ports: inbound and outbound sides follow the direction only
//     ([Direction.Ports]); for left-to-right, edges enter on the left and
//     leave on the right.
//
// Virtual nodes never appear in the result, and the edge list is passed
// through untouched.
//
// # Configuration
//
// [DefaultConfig] matches the usual web rendering: left-to-right, 180x40
// nodes, 100px between ranks, 80px between nodes and 50px margins.
//
//	cfg := layout.DefaultConfig()
//	cfg.Direction = layout.TopToBottom
//	res := layout.Layout(g.Nodes, g.Edges, cfg)
//
// # Failure Semantics
//
// Layout has no error outcomes. Edges whose endpoints are unknown are left
// out and listed in [Result.Skipped]; the input is never modified.
package layout
