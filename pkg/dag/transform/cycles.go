package transform

import "github.com/matzehuels/repograph/pkg/dag"

// BreakCycles removes back edges so the graph becomes acyclic and returns
// them in discovery order.
//
// A depth-first search starts from every source in insertion order, then
// from any node not yet visited (nodes that only sit on cycles). An edge to a
// node still on the DFS stack closes a cycle and is removed. Self-loops are
// always back edges. Parallel back edges are reported once per instance.
func BreakCycles(g *dag.DAG) []dag.Edge {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, g.NodeCount())
	var backEdges []dag.Edge

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, child := range g.Children(node) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				backEdges = append(backEdges, dag.Edge{From: node, To: child})
			}
		}
		color[node] = black
	}

	for _, n := range g.Sources() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}
	for _, n := range g.Nodes() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	for _, e := range backEdges {
		g.RemoveEdge(e.From, e.To)
	}
	return backEdges
}
