package layout

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/repograph/pkg/graph"
)

func nodes(ids ...string) []graph.Node {
	out := make([]graph.Node, len(ids))
	for i, id := range ids {
		out[i] = graph.Node{ID: id, Label: id}
	}
	return out
}

func edges(pairs ...string) []graph.Edge {
	out := make([]graph.Edge, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, graph.NewEdge(pairs[i], pairs[i+1]))
	}
	return out
}

func mustNode(t *testing.T, r Result, id string) PositionedNode {
	t.Helper()
	n, ok := r.Node(id)
	if !ok {
		t.Fatalf("node %q missing from result", id)
	}
	return n
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func TestLayout_TwoNodes(t *testing.T) {
	res := Layout(nodes("A", "B"), edges("A", "B"), DefaultConfig())

	a, b := mustNode(t, res, "A"), mustNode(t, res, "B")
	if a.Rank != 0 || b.Rank != 1 {
		t.Errorf("ranks = %d, %d, want 0, 1", a.Rank, b.Rank)
	}
	for _, n := range []PositionedNode{a, b} {
		if !finite(n.X) || !finite(n.Y) || n.X <= 0 || n.Y <= 0 {
			t.Errorf("%s at (%v, %v), want positive finite", n.ID, n.X, n.Y)
		}
	}
	if b.X <= a.X {
		t.Errorf("x(B) = %v, want > x(A) = %v", b.X, a.X)
	}
	if a.Y != b.Y {
		t.Errorf("y(A) = %v, y(B) = %v, want equal", a.Y, b.Y)
	}
	// margin + half a node, then one rank step further
	if a.X != 140 || b.X != 420 || a.Y != 70 {
		t.Errorf("A = (%v, %v), B.X = %v, want (140, 70), 420", a.X, a.Y, b.X)
	}
	if a.InboundSide != SideLeft || a.OutboundSide != SideRight {
		t.Errorf("ports = %s/%s, want left/right", a.InboundSide, a.OutboundSide)
	}
	if res.Width != 560 || res.Height != 140 {
		t.Errorf("size = %vx%v, want 560x140", res.Width, res.Height)
	}
}

func TestLayout_Empty(t *testing.T) {
	res := Layout(nil, nil, DefaultConfig())
	if len(res.Nodes) != 0 || len(res.Edges) != 0 {
		t.Errorf("Layout(empty) = %d nodes, %d edges", len(res.Nodes), len(res.Edges))
	}
	if res.Nodes == nil || res.Edges == nil {
		t.Error("Layout(empty) should return non-nil slices")
	}
}

func TestLayout_EmptyWithDanglingEdges(t *testing.T) {
	res := Layout(nil, edges("x", "y"), DefaultConfig())
	if len(res.Edges) != 1 || len(res.Skipped) != 1 {
		t.Errorf("edges = %v, skipped = %v", res.Edges, res.Skipped)
	}
}

func TestLayout_SingleNode(t *testing.T) {
	res := Layout(nodes("solo"), nil, DefaultConfig())
	n := mustNode(t, res, "solo")
	if n.Rank != 0 || n.Order != 0 || n.X != 140 || n.Y != 70 {
		t.Errorf("solo = %+v", n)
	}
	if res.Ranks != 1 {
		t.Errorf("Ranks = %d, want 1", res.Ranks)
	}
}

func TestLayout_Cycle(t *testing.T) {
	res := Layout(nodes("a", "b", "c"), edges("a", "b", "b", "c", "c", "a"), DefaultConfig())

	want := []graph.Edge{graph.NewEdge("c", "a")}
	if !reflect.DeepEqual(res.BackEdges, want) {
		t.Errorf("BackEdges = %v, want %v", res.BackEdges, want)
	}
	assertForwardRanks(t, res)
}

func TestLayout_SelfLoop(t *testing.T) {
	res := Layout(nodes("a"), edges("a", "a"), DefaultConfig())
	if len(res.BackEdges) != 1 {
		t.Errorf("BackEdges = %v, want the self-loop", res.BackEdges)
	}
	if len(res.Edges) != 1 {
		t.Errorf("Edges = %v, want passthrough", res.Edges)
	}
}

func TestLayout_DanglingEdgeSkipped(t *testing.T) {
	in := edges("a", "b", "a", "ghost", "ghost", "b")
	res := Layout(nodes("a", "b"), in, DefaultConfig())

	if !reflect.DeepEqual(res.Edges, in) {
		t.Errorf("Edges = %v, want input passthrough", res.Edges)
	}
	want := []graph.Edge{in[1], in[2]}
	if !reflect.DeepEqual(res.Skipped, want) {
		t.Errorf("Skipped = %v, want %v", res.Skipped, want)
	}
	if mustNode(t, res, "b").Rank != 1 {
		t.Error("valid edge a->b was not ranked")
	}
}

func TestLayout_DuplicateEdgesAndIDs(t *testing.T) {
	in := nodes("a", "b", "a")
	res := Layout(in, edges("a", "b", "a", "b"), DefaultConfig())
	if len(res.Nodes) != 3 {
		t.Fatalf("len(Nodes) = %d, want 3", len(res.Nodes))
	}
	if res.Nodes[0].Rank != 0 || res.Nodes[1].Rank != 1 {
		t.Errorf("ranks = %d, %d", res.Nodes[0].Rank, res.Nodes[1].Rank)
	}
	if res.Nodes[2].ID != "a" || res.Nodes[2].X == 0 {
		t.Errorf("duplicate node not positioned: %+v", res.Nodes[2])
	}
}

func TestLayout_Disconnected(t *testing.T) {
	res := Layout(nodes("a", "b", "x", "y", "lonely"), edges("a", "b", "x", "y"), DefaultConfig())
	assertForwardRanks(t, res)
	assertNoOverlap(t, res)

	if got := mustNode(t, res, "lonely").Rank; got != 0 {
		t.Errorf("rank(lonely) = %d, want 0", got)
	}
}

func TestLayout_LongEdgeNoVirtualNodes(t *testing.T) {
	res := Layout(nodes("a", "b", "c", "d"), edges("a", "b", "b", "c", "c", "d", "a", "d"), DefaultConfig())
	if len(res.Nodes) != 4 {
		t.Errorf("len(Nodes) = %d, want 4", len(res.Nodes))
	}
	if got := mustNode(t, res, "d").Rank; got != 3 {
		t.Errorf("rank(d) = %d, want 3", got)
	}
	if res.Ranks != 4 {
		t.Errorf("Ranks = %d, want 4", res.Ranks)
	}
}

func TestLayout_RemovesAvoidableCrossing(t *testing.T) {
	// a→y, b→x cross in insertion order
	res := Layout(nodes("a", "b", "x", "y"), edges("a", "y", "b", "x"), DefaultConfig())
	if res.Crossings != 0 {
		t.Errorf("Crossings = %d, want 0", res.Crossings)
	}
	a, b := mustNode(t, res, "a"), mustNode(t, res, "b")
	x, y := mustNode(t, res, "x"), mustNode(t, res, "y")
	if (a.Order < b.Order) != (y.Order < x.Order) {
		t.Errorf("orders a=%d b=%d x=%d y=%d still cross", a.Order, b.Order, x.Order, y.Order)
	}
}

func TestLayout_RankCentering(t *testing.T) {
	res := Layout(nodes("root", "l", "r"), edges("root", "l", "root", "r"), DefaultConfig())
	root, l, r := mustNode(t, res, "root"), mustNode(t, res, "l"), mustNode(t, res, "r")
	if root.Y != (l.Y+r.Y)/2 {
		t.Errorf("root.Y = %v, want centred between %v and %v", root.Y, l.Y, r.Y)
	}
}

func TestLayout_Directions(t *testing.T) {
	tests := []struct {
		dir     Direction
		in, out Side
		check   func(a, b PositionedNode) bool
	}{
		{LeftToRight, SideLeft, SideRight, func(a, b PositionedNode) bool { return b.X > a.X && a.Y == b.Y }},
		{RightToLeft, SideRight, SideLeft, func(a, b PositionedNode) bool { return b.X < a.X && a.Y == b.Y }},
		{TopToBottom, SideTop, SideBottom, func(a, b PositionedNode) bool { return b.Y > a.Y && a.X == b.X }},
		{BottomToTop, SideBottom, SideTop, func(a, b PositionedNode) bool { return b.Y < a.Y && a.X == b.X }},
	}
	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Direction = tt.dir
			res := Layout(nodes("A", "B"), edges("A", "B"), cfg)
			a, b := mustNode(t, res, "A"), mustNode(t, res, "B")
			if !tt.check(a, b) {
				t.Errorf("A = (%v, %v), B = (%v, %v)", a.X, a.Y, b.X, b.Y)
			}
			if a.InboundSide != tt.in || b.OutboundSide != tt.out {
				t.Errorf("ports = %s/%s, want %s/%s", a.InboundSide, b.OutboundSide, tt.in, tt.out)
			}
			if a.X <= 0 || a.Y <= 0 || b.X <= 0 || b.Y <= 0 {
				t.Error("coordinates must stay positive")
			}
		})
	}
}

func TestLayout_ZeroConfigUsesDefaults(t *testing.T) {
	res := Layout(nodes("A", "B"), edges("A", "B"), Config{})
	a, b := mustNode(t, res, "A"), mustNode(t, res, "B")
	if a.Width != DefaultNodeWidth || a.Height != DefaultNodeHeight {
		t.Errorf("node size = %vx%v", a.Width, a.Height)
	}
	if b.X <= a.X {
		t.Errorf("x(B) = %v, want > x(A) = %v", b.X, a.X)
	}
	// zero separations and margins are honoured
	if a.X != DefaultNodeWidth/2 || b.X != DefaultNodeWidth*1.5 {
		t.Errorf("A.X = %v, B.X = %v", a.X, b.X)
	}
}

func TestLayout_DoesNotMutateInput(t *testing.T) {
	in := nodes("a", "b")
	e := edges("b", "a", "a", "b")
	before := fmt.Sprint(in, e)
	Layout(in, e, DefaultConfig())
	if after := fmt.Sprint(in, e); after != before {
		t.Errorf("input changed: %s -> %s", before, after)
	}
}

func TestLayout_Deterministic(t *testing.T) {
	var ids []string
	var pairs []string
	for i := range 30 {
		ids = append(ids, fmt.Sprintf("n%d", i))
		pairs = append(pairs, fmt.Sprintf("n%d", i), fmt.Sprintf("n%d", (i*7+3)%30))
		pairs = append(pairs, fmt.Sprintf("n%d", i), fmt.Sprintf("n%d", (i*11+5)%30))
	}
	n, e := nodes(ids...), edges(pairs...)

	first := Layout(n, e, DefaultConfig())
	for range 5 {
		if again := Layout(n, e, DefaultConfig()); !reflect.DeepEqual(first, again) {
			t.Fatal("layout is not deterministic")
		}
	}
	assertForwardRanks(t, first)
	assertNoOverlap(t, first)
	for _, p := range first.Nodes {
		if !finite(p.X) || !finite(p.Y) {
			t.Errorf("%s at (%v, %v)", p.ID, p.X, p.Y)
		}
	}
}

func TestLayout_ContributorNodesKeepStats(t *testing.T) {
	in := []graph.Node{{ID: "alice", Kind: graph.KindContributor, ContributorStats: &graph.ContributorStats{PRCount: 2}}}
	res := Layout(in, nil, DefaultConfig())
	res.Nodes[0].PRCount = 5
	if in[0].PRCount != 2 {
		t.Error("result shares contributor stats with input")
	}
}

func assertForwardRanks(t *testing.T, res Result) {
	t.Helper()
	back := make(map[string]bool)
	for _, e := range res.BackEdges {
		back[e.ID] = true
	}
	for _, e := range res.Edges {
		if back[e.ID] {
			continue
		}
		s, okS := res.Node(e.Source)
		d, okD := res.Node(e.Target)
		if okS && okD && d.Rank <= s.Rank {
			t.Errorf("edge %s: rank %d -> %d", e.ID, s.Rank, d.Rank)
		}
	}
}

func assertNoOverlap(t *testing.T, res Result) {
	t.Helper()
	seen := make(map[[2]float64]string)
	for _, n := range res.Nodes {
		k := [2]float64{n.X, n.Y}
		if other, ok := seen[k]; ok {
			t.Errorf("%s and %s share position %v", n.ID, other, k)
		}
		seen[k] = n.ID
	}
}
