package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/repograph/pkg/graph"
	"github.com/matzehuels/repograph/pkg/layout"
)

func sample() layout.Result {
	nodes := []graph.Node{
		{ID: "main.ts", Label: "main.ts", Kind: graph.KindFile},
		{ID: "./utils", Label: "utils", Kind: graph.KindModule},
	}
	edges := []graph.Edge{
		graph.NewEdge("main.ts", "./utils"),
		graph.NewEdge("./utils", "main.ts"),
		graph.NewEdge("main.ts", "ghost"),
	}
	return layout.Layout(nodes, edges, layout.DefaultConfig())
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=LR;",
		`"main.ts" [label="main.ts", pos="140,70!", width=2.5, height=0.5555555555555556];`,
		`"./utils" [label="utils", pos="420,70!"`,
		`style="rounded,filled,dashed"`,
		`"main.ts" -> "./utils";`,
		`"./utils" -> "main.ts" [style=dotted];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "ghost") {
		t.Errorf("DOT contains skipped edge\n%s", dot)
	}
}

func TestToDOT_Detailed(t *testing.T) {
	res := layout.Layout([]graph.Node{{
		ID:               "alice",
		Label:            "alice",
		Kind:             graph.KindContributor,
		ContributorStats: &graph.ContributorStats{PRCount: 3, ReviewCount: 1, AvatarURL: "https://a.png"},
	}}, nil, layout.DefaultConfig())

	dot := ToDOT(res, Options{Detailed: true})

	for _, want := range []string{
		`label="alice\nrank: 0\nPRs: 3\nreviews: 1"`,
		"shape=ellipse",
		`URL="https://a.png"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
}

func TestToDOT_Empty(t *testing.T) {
	dot := ToDOT(layout.Result{}, Options{})
	if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("unexpected DOT:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 560.00 140.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 560.00 140.00" width="560" height="140"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("normalizeViewBox(no viewBox) = %s", got)
	}
}
