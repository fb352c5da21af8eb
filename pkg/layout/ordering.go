package layout

import (
	"cmp"
	"slices"

	"github.com/matzehuels/repograph/pkg/dag"
)

// Barycentric orders the nodes of each rank to reduce edge crossings.
//
// Each pass repositions every node at the mean position of its neighbours in
// the adjacent rank, alternating downward (towards higher ranks, using
// parents) and upward (using children) sweeps, then swaps adjacent nodes
// while that strictly reduces crossings. The ordering with the fewest
// crossings seen is returned. Iteration stops after Passes passes, once two
// consecutive passes change nothing, or when no crossings remain.
//
// g must be normalized (every edge joins consecutive ranks).
type Barycentric struct {
	Passes int
}

// OrderRanks returns node IDs per rank in their final order.
func (b Barycentric) OrderRanks(g *dag.DAG) map[int][]string {
	passes := b.Passes
	if passes <= 0 {
		passes = DefaultPasses
	}

	ranks := g.RankIDs()
	orders := initialOrder(g)
	best := cloneOrders(orders)
	bestCross := dag.CountCrossings(g, orders)

	quiet := 0
	for pass := 0; pass < passes && bestCross > 0; pass++ {
		changed := sweep(g, orders, ranks, pass%2 == 0)
		if transpose(g, orders, ranks) {
			changed = true
		}
		if c := dag.CountCrossings(g, orders); c < bestCross {
			best, bestCross = cloneOrders(orders), c
		}
		if changed {
			quiet = 0
			continue
		}
		quiet++
		if quiet >= 2 {
			break
		}
	}
	return best
}

// initialOrder places nodes by depth-first search from the lowest-ranked
// nodes, in insertion order. Chains of virtual nodes end up next to the node
// they start from.
func initialOrder(g *dag.DAG) map[int][]string {
	orders := make(map[int][]string, g.RankCount())
	visited := make(map[string]bool, g.NodeCount())

	var visit func(n *dag.Node)
	visit = func(n *dag.Node) {
		if visited[n.ID] {
			return
		}
		visited[n.ID] = true
		orders[n.Rank] = append(orders[n.Rank], n.ID)
		for _, c := range g.Children(n.ID) {
			if child, ok := g.Node(c); ok {
				visit(child)
			}
		}
	}

	nodes := g.Nodes()
	slices.SortStableFunc(nodes, func(a, b *dag.Node) int { return cmp.Compare(a.Rank, b.Rank) })
	for _, n := range nodes {
		visit(n)
	}
	return orders
}

func sweep(g *dag.DAG, orders map[int][]string, ranks []int, down bool) bool {
	changed := false
	if down {
		for i := 1; i < len(ranks); i++ {
			adj := dag.PosMap(orders[ranks[i-1]])
			if reorder(orders[ranks[i]], adj, g.Parents) {
				changed = true
			}
		}
		return changed
	}
	for i := len(ranks) - 2; i >= 0; i-- {
		adj := dag.PosMap(orders[ranks[i+1]])
		if reorder(orders[ranks[i]], adj, g.Children) {
			changed = true
		}
	}
	return changed
}

// reorder sorts ids in place by barycenter. Nodes without neighbours in the
// adjacent rank keep their index; the rest fill the remaining slots in
// barycenter order, ties broken by current index.
func reorder(ids []string, adjPos map[string]int, neighbors func(string) []string) bool {
	type entry struct {
		id   string
		bary float64
		idx  int
	}

	fixed := make([]bool, len(ids))
	movable := make([]entry, 0, len(ids))
	for i, id := range ids {
		sum, n := 0, 0
		for _, nb := range neighbors(id) {
			if p, ok := adjPos[nb]; ok {
				sum += p
				n++
			}
		}
		if n == 0 {
			fixed[i] = true
			continue
		}
		movable = append(movable, entry{id, float64(sum) / float64(n), i})
	}

	slices.SortStableFunc(movable, func(a, b entry) int {
		if c := cmp.Compare(a.bary, b.bary); c != 0 {
			return c
		}
		return cmp.Compare(a.idx, b.idx)
	})

	changed := false
	j := 0
	for i := range ids {
		if fixed[i] {
			continue
		}
		if ids[i] != movable[j].id {
			changed = true
		}
		ids[i] = movable[j].id
		j++
	}
	return changed
}

// transpose swaps neighbours within each rank while the swap strictly
// reduces crossings with both adjacent ranks.
func transpose(g *dag.DAG, orders map[int][]string, ranks []int) bool {
	changed := false
	for _, r := range ranks {
		ids := orders[r]
		above := dag.PosMap(orders[r-1])
		below := dag.PosMap(orders[r+1])

		improved := true
		for round := 0; improved && round < len(ids); round++ {
			improved = false
			for i := 0; i+1 < len(ids); i++ {
				v, w := ids[i], ids[i+1]
				if pairCrossings(g, w, v, above, below) < pairCrossings(g, v, w, above, below) {
					ids[i], ids[i+1] = w, v
					improved, changed = true, true
				}
			}
		}
	}
	return changed
}

func pairCrossings(g *dag.DAG, left, right string, above, below map[string]int) int {
	return dag.CountPairCrossings(g, left, right, above, true) +
		dag.CountPairCrossings(g, left, right, below, false)
}

func cloneOrders(orders map[int][]string) map[int][]string {
	out := make(map[int][]string, len(orders))
	for r, ids := range orders {
		out[r] = slices.Clone(ids)
	}
	return out
}
