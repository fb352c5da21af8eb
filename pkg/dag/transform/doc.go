// Package transform turns an arbitrary directed graph into the layered form
// that barycentric ordering works on.
//
// # Overview
//
// Input graphs may be cyclic, disconnected and have edges spanning any number
// of ranks. After [Normalize]:
//
//   - the graph is acyclic ([BreakCycles])
//   - every node has a rank equal to its longest-path depth ([AssignLayers])
//   - every edge joins consecutive ranks ([Subdivide])
//
// # Cycle Breaking
//
// [BreakCycles] runs a depth-first search from the sources in insertion order
// and removes every edge that points back into the current DFS stack. The
// removed edges are returned so callers can report them; for every edge that
// survives, rank(target) > rank(source) holds after layering.
//
// # Layer Assignment
//
// [AssignLayers] uses Kahn's algorithm to place each node one rank after its
// deepest parent. Nodes without incoming edges start at rank 0.
//
// # Edge Subdivision
//
// [Subdivide] replaces long edges with chains of virtual nodes:
//
//	Before: app (rank 0) → core (rank 3)
//	After:  app → app_sub_1 → app_sub_2 → core
//
// # Usage
//
//	back := transform.Normalize(g) // modifies g in place
//
// or step by step:
//
//	transform.BreakCycles(g)
//	transform.AssignLayers(g)
//	transform.Subdivide(g)
package transform
