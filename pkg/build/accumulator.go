package build

import "github.com/matzehuels/repograph/pkg/graph"

// accumulator exclusively owns the node and edge containers while a graph is
// being built. Nodes keep first-seen order.
type accumulator struct {
	order []string
	nodes map[string]*graph.Node
	edges []graph.Edge
	seen  map[string]struct{} // edge IDs, for deduplicating adds
}

func newAccumulator() *accumulator {
	return &accumulator{
		nodes: make(map[string]*graph.Node),
		seen:  make(map[string]struct{}),
	}
}

// node returns the node with the given ID, inserting init if it is new.
func (a *accumulator) node(id string, init func() graph.Node) *graph.Node {
	if n, ok := a.nodes[id]; ok {
		return n
	}
	n := init()
	n.ID = id
	a.nodes[id] = &n
	a.order = append(a.order, id)
	return &n
}

// edge appends source->target. With dedupe set, an edge whose ID was already
// added is dropped and false is returned.
func (a *accumulator) edge(source, target string, dedupe bool) bool {
	e := graph.NewEdge(source, target)
	if dedupe {
		if _, ok := a.seen[e.ID]; ok {
			return false
		}
	}
	a.seen[e.ID] = struct{}{}
	a.edges = append(a.edges, e)
	return true
}

// snapshot returns an immutable copy of the accumulated graph.
func (a *accumulator) snapshot() graph.Graph {
	g := graph.Graph{
		Nodes: make([]graph.Node, len(a.order)),
		Edges: make([]graph.Edge, len(a.edges)),
	}
	for i, id := range a.order {
		g.Nodes[i] = a.nodes[id].Clone()
	}
	copy(g.Edges, a.edges)
	return g
}
