package transform

import (
	"fmt"

	"github.com/matzehuels/repograph/pkg/dag"
)

// Subdivide replaces every edge spanning more than one rank with a chain of
// [dag.NodeKindVirtual] nodes, one per intermediate rank, and returns the
// number of virtual nodes added:
//
//	Before: main.ts (rank 0) → ./core (rank 3)
//	After:  main.ts → main.ts_sub_1 → main.ts_sub_2 → ./core
//
// Virtual nodes record the edge source as MasterID. IDs have the form
// "source_sub_rank"; on collision a numeric suffix is appended
// ("a_sub_1__1"). Parallel long edges get parallel chains.
func Subdivide(g *dag.DAG) int {
	gen := newIDGen(g.Nodes())
	added := 0

	var toRemove []dag.Edge
	for _, e := range g.Edges() {
		src, srcOK := g.Node(e.From)
		dst, dstOK := g.Node(e.To)
		if !srcOK || !dstOK || dst.Rank <= src.Rank+1 {
			continue
		}

		toRemove = append(toRemove, e)
		prevID := src.ID
		for rank := src.Rank + 1; rank < dst.Rank; rank++ {
			prevID = addVirtual(g, gen, prevID, src.ID, rank)
			added++
		}
		if err := g.AddEdge(dag.Edge{From: prevID, To: dst.ID}); err != nil {
			panic(err)
		}
	}

	for _, e := range toRemove {
		g.RemoveEdge(e.From, e.To)
	}
	return added
}

func addVirtual(g *dag.DAG, gen *idGen, from, master string, rank int) string {
	id := gen.next(master, rank)
	if err := g.AddNode(dag.Node{
		ID:       id,
		Rank:     rank,
		Kind:     dag.NodeKindVirtual,
		MasterID: master,
	}); err != nil {
		panic(err)
	}
	if err := g.AddEdge(dag.Edge{From: from, To: id}); err != nil {
		panic(err)
	}
	return id
}

type idGen struct {
	used map[string]struct{}
}

func newIDGen(nodes []*dag.Node) *idGen {
	m := make(map[string]struct{}, len(nodes)*2)
	for _, n := range nodes {
		m[n.ID] = struct{}{}
	}
	return &idGen{used: m}
}

func (gen *idGen) next(base string, rank int) string {
	prefix := fmt.Sprintf("%s_sub_%d", base, rank)
	id := prefix
	for i := 1; ; i++ {
		if _, exists := gen.used[id]; !exists {
			gen.used[id] = struct{}{}
			return id
		}
		id = fmt.Sprintf("%s__%d", prefix, i)
	}
}
