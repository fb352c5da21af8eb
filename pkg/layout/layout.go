package layout

import (
	"slices"
	"strconv"

	"github.com/matzehuels/repograph/pkg/dag"
	"github.com/matzehuels/repograph/pkg/dag/transform"
	"github.com/matzehuels/repograph/pkg/graph"
)

// PositionedNode is a graph node with its computed placement. X and Y are
// the centre of the node box.
type PositionedNode struct {
	graph.Node

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Rank   int     `json:"rank"`
	Order  int     `json:"order"`

	InboundSide  Side `json:"inboundSide"`
	OutboundSide Side `json:"outboundSide"`
}

// Result is a positioned graph.
type Result struct {
	Direction Direction        `json:"direction"`
	Nodes     []PositionedNode `json:"nodes"`
	Edges     []graph.Edge     `json:"edges"`

	// Width and Height span every node box plus margins.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Ranks  int     `json:"ranks"`
	// Crossings counted on the final ordering, including virtual segments.
	Crossings int `json:"crossings"`

	// BackEdges were ignored for ranking because they close a cycle.
	BackEdges []graph.Edge `json:"backEdges,omitempty"`
	// Skipped edges reference a node ID that is not in the graph.
	Skipped []graph.Edge `json:"skipped,omitempty"`
}

// Node returns the positioned node with the given ID.
func (r Result) Node(id string) (PositionedNode, bool) {
	for _, n := range r.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return PositionedNode{}, false
}

// Graph returns the unpositioned graph the result was computed from.
func (r Result) Graph() graph.Graph {
	g := graph.Graph{Nodes: make([]graph.Node, len(r.Nodes)), Edges: slices.Clone(r.Edges)}
	for i, n := range r.Nodes {
		g.Nodes[i] = n.Node.Clone()
	}
	return g
}

// Graph lays out g. It is shorthand for Layout(g.Nodes, g.Edges, cfg).
func Graph(g graph.Graph, cfg Config) Result {
	return Layout(g.Nodes, g.Edges, cfg)
}

// Layout assigns every node a rank, an order within its rank and a position.
//
// Layout never fails. Cycles are broken by ignoring back edges for ranking,
// edges referencing unknown node IDs are left out of the computation and
// reported in Result.Skipped, and every input node (including duplicates of
// an ID) gets exactly one positioned node in input order. The edge list is
// returned unchanged. cfg is passed through [Config.Normalized] first.
func Layout(nodes []graph.Node, edges []graph.Edge, cfg Config) Result {
	cfg = cfg.Normalized()

	res := Result{
		Direction: cfg.Direction,
		Nodes:     make([]PositionedNode, len(nodes)),
		Edges:     slices.Clone(edges),
	}
	if res.Edges == nil {
		res.Edges = []graph.Edge{}
	}
	if len(nodes) == 0 {
		res.Skipped = slices.Clone(edges)
		return res
	}

	// Internal IDs are input indexes; edges attach to the first node with an ID.
	g := dag.New()
	first := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if _, ok := first[n.ID]; !ok {
			first[n.ID] = i
		}
		_ = g.AddNode(dag.Node{ID: key(i)})
	}

	kept := make([]dag.Edge, len(edges))
	for i, e := range edges {
		s, okS := first[e.Source]
		t, okT := first[e.Target]
		if !okS || !okT {
			res.Skipped = append(res.Skipped, e)
			continue
		}
		kept[i] = dag.Edge{From: key(s), To: key(t)}
		_ = g.AddEdge(kept[i])
	}

	back := make(map[dag.Edge]bool)
	for _, e := range transform.Normalize(g) {
		back[e] = true
	}
	for i, e := range edges {
		if back[kept[i]] {
			res.BackEdges = append(res.BackEdges, e)
		}
	}

	orders := Barycentric{Passes: cfg.Passes}.OrderRanks(g)
	res.Crossings = dag.CountCrossings(g, orders)

	place(&res, nodes, g, orders, cfg)
	return res
}

// place computes coordinates from (rank, order) for the real nodes of g.
func place(res *Result, nodes []graph.Node, g *dag.DAG, orders map[int][]string, cfg Config) {
	ranks := g.RankIDs()
	perRank := make(map[int][]int, len(ranks))
	widest := 0
	for _, r := range ranks {
		for _, id := range orders[r] {
			if n, ok := g.Node(id); ok && !n.IsVirtual() {
				perRank[r] = append(perRank[r], index(id))
			}
		}
		widest = max(widest, len(perRank[r]))
	}
	numRanks := g.MaxRank() + 1

	horizontal := cfg.Direction.Horizontal()
	rankSize, crossSize := cfg.NodeWidth, cfg.NodeHeight
	marginRank, marginCross := cfg.MarginX, cfg.MarginY
	if !horizontal {
		rankSize, crossSize = cfg.NodeHeight, cfg.NodeWidth
		marginRank, marginCross = cfg.MarginY, cfg.MarginX
	}
	rankStep := rankSize + cfg.RankSeparation
	crossStep := crossSize + cfg.NodeSeparation
	in, out := cfg.Direction.Ports()

	for _, r := range ranks {
		members := perRank[r]
		// centre each rank against the widest one
		offset := float64(widest-len(members)) * crossStep / 2
		along := r
		if cfg.Direction.reversed() {
			along = numRanks - 1 - r
		}
		main := marginRank + float64(along)*rankStep + rankSize/2

		for order, i := range members {
			cross := marginCross + offset + float64(order)*crossStep + crossSize/2
			x, y := main, cross
			if !horizontal {
				x, y = cross, main
			}
			res.Nodes[i] = PositionedNode{
				Node:         nodes[i].Clone(),
				X:            x,
				Y:            y,
				Width:        cfg.NodeWidth,
				Height:       cfg.NodeHeight,
				Rank:         r,
				Order:        order,
				InboundSide:  in,
				OutboundSide: out,
			}
		}
	}

	extentRank := 2*marginRank + float64(numRanks)*rankSize + float64(numRanks-1)*cfg.RankSeparation
	extentCross := 2*marginCross + float64(widest)*crossSize + float64(widest-1)*cfg.NodeSeparation
	res.Width, res.Height = extentRank, extentCross
	if !horizontal {
		res.Width, res.Height = extentCross, extentRank
	}
	res.Ranks = numRanks
}

func key(i int) string { return strconv.Itoa(i) }

func index(id string) int {
	i, _ := strconv.Atoi(id)
	return i
}
