// Package dag provides a ranked directed graph used as the working structure of
// the layered layout engine.
//
// # Overview
//
// Layered ("Sugiyama") drawing places every node in a rank and draws edges
// between consecutive ranks. This package holds that intermediate state: nodes
// carry a Rank, edges are plain From/To pairs, and helper methods answer the
// questions the layout phases ask (children, parents, sources, nodes per rank).
//
// The graph preserves insertion order everywhere it reports nodes, so the
// layout built on top of it is deterministic for a given input order.
//
//	g := dag.New()
//	_ = g.AddNode(dag.Node{ID: "main.ts"})
//	_ = g.AddNode(dag.Node{ID: "./utils"})
//	_ = g.AddEdge(dag.Edge{From: "main.ts", To: "./utils"})
//
// # Node Kinds
//
//   - [NodeKindRegular]: nodes supplied by the caller
//   - [NodeKindVirtual]: synthetic nodes that split an edge spanning several
//     ranks so every edge joins consecutive ranks during ordering
//
// # Edge Crossings
//
// [CountCrossings] and [CountRankCrossings] count inversions with a Fenwick
// tree in O(E log V), which keeps the barycenter sweeps cheap enough to
// evaluate after every pass. [CountPairCrossings] supports local swaps.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. Counting crossings on a graph
// that nobody mutates can run in parallel.
//
// The [transform] subpackage provides cycle breaking, rank assignment and edge
// subdivision.
//
// [transform]: github.com/matzehuels/repograph/pkg/dag/transform
package dag
