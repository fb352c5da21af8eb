package transform

import "github.com/matzehuels/repograph/pkg/dag"

// Normalize prepares g for ordering: it breaks cycles, assigns ranks and
// subdivides long edges. It returns the removed back edges.
func Normalize(g *dag.DAG) []dag.Edge {
	back := BreakCycles(g)
	AssignLayers(g)
	Subdivide(g)
	return back
}
