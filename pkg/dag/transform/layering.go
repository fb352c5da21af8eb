package transform

import "github.com/matzehuels/repograph/pkg/dag"

// AssignLayers assigns every node the length of the longest path reaching it
// from a source, so sources sit at rank 0 and every edge points to a strictly
// higher rank.
//
// The traversal is Kahn's algorithm: sources (in insertion order) seed the
// queue and a node is pushed once all of its parents have been processed,
// taking one plus the maximum parent rank. Existing ranks are overwritten.
//
// AssignLayers assumes the graph is acyclic. Nodes on a cycle never reach
// in-degree zero and stay at rank 0; run [BreakCycles] first.
//
// Time complexity is O(V + E).
func AssignLayers(g *dag.DAG) {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	ranks := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		degree := g.InDegree(n.ID)
		inDegree[n.ID] = degree
		ranks[n.ID] = 0
		if degree == 0 {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range g.Children(curr) {
			if rank := ranks[curr] + 1; rank > ranks[child] {
				ranks[child] = rank
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	g.SetRanks(ranks)
}
