package graph

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/repograph/pkg/errors"
)

func TestFileLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"src/a.ts", "a.ts"},
		{"main.go", "main.go"},
		{"dir/", "dir"},
		{"a/b/c/", "c"},
		{"", ""},
		{"/", "/"},
	}
	for _, tt := range tests {
		if got := FileLabel(tt.in); got != tt.want {
			t.Errorf("FileLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNode_DisplayLabel(t *testing.T) {
	if got := (Node{ID: "src/a.ts", Label: "a.ts"}).DisplayLabel(); got != "a.ts" {
		t.Errorf("DisplayLabel() = %q, want a.ts", got)
	}
	if got := (Node{ID: "react"}).DisplayLabel(); got != "react" {
		t.Errorf("DisplayLabel() = %q, want react", got)
	}
}

func TestNode_Clone(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	orig := Node{
		ID:   "alice",
		Kind: KindContributor,
		ContributorStats: &ContributorStats{
			PRCount:      2,
			LastActivity: &ts,
		},
	}

	c := orig.Clone()
	c.PRCount = 9
	*c.LastActivity = ts.Add(time.Hour)

	if orig.PRCount != 2 {
		t.Errorf("orig.PRCount = %d, want 2", orig.PRCount)
	}
	if !orig.LastActivity.Equal(ts) {
		t.Errorf("orig.LastActivity = %v, want %v", orig.LastActivity, ts)
	}

	plain := Node{ID: "src/a.ts"}.Clone()
	if plain.IsContributor() {
		t.Error("file node clone should not carry contributor stats")
	}
}

func TestGraph_DanglingEdges(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b"}},
		Edges: []Edge{
			NewEdge("a", "b"),
			NewEdge("a", "x"),
			NewEdge("y", "b"),
		},
	}
	got := g.DanglingEdges()
	if len(got) != 2 {
		t.Fatalf("DanglingEdges() = %v, want 2 edges", got)
	}
	if got[0].ID != "a->x" || got[1].ID != "y->b" {
		t.Errorf("DanglingEdges() ids = %q, %q", got[0].ID, got[1].ID)
	}

	g.Edges = g.Edges[:1]
	if d := g.DanglingEdges(); len(d) != 0 {
		t.Errorf("DanglingEdges() = %v, want none", d)
	}
}

func TestGraph_Node(t *testing.T) {
	g := Graph{Nodes: []Node{{ID: "a", Label: "A"}, {ID: "b"}}}
	n, ok := g.Node("a")
	if !ok || n.Label != "A" {
		t.Errorf("Node(a) = %+v, %v", n, ok)
	}
	if _, ok := g.Node("missing"); ok {
		t.Error("Node(missing) should not be found")
	}
	if ids := g.NodeIDs(); strings.Join(ids, ",") != "a,b" {
		t.Errorf("NodeIDs() = %v", ids)
	}
}

func TestHash(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b"}},
		Edges: []Edge{NewEdge("a", "b")},
	}
	if Hash(g) != Hash(g) {
		t.Error("Hash is not stable")
	}
	if Hash(Graph{}) != Hash(Graph{Nodes: []Node{}, Edges: []Edge{}}) {
		t.Error("nil and empty slices should hash identically")
	}

	reordered := Graph{Nodes: []Node{{ID: "b"}, {ID: "a"}}, Edges: g.Edges}
	if Hash(g) == Hash(reordered) {
		t.Error("node order should change the hash")
	}
}

func TestReadWriteGraph(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGraph(Graph{}, &buf); err != nil {
		t.Fatalf("WriteGraph: %v", err)
	}
	if !strings.Contains(buf.String(), `"nodes": []`) {
		t.Errorf("empty graph JSON = %s, want nodes: []", buf.String())
	}

	g, err := ReadGraph(strings.NewReader(`{"nodes":null}`))
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}
	if g.Nodes == nil || g.Edges == nil {
		t.Errorf("ReadGraph did not normalize nil slices: %+v", g)
	}

	_, err = ReadGraph(strings.NewReader(`{"nodes":`))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ReadGraph(truncated) code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestReadGraphFile(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadGraphFile(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file code = %q, want %q", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}

	path := filepath.Join(dir, "graph.json")
	want := Graph{
		Nodes: []Node{{ID: "src/a.ts", Label: "a.ts", Kind: KindFile}, {ID: "react", Label: "react", Kind: KindModule}},
		Edges: []Edge{NewEdge("src/a.ts", "react")},
	}
	if err := WriteGraphFile(want, path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat: %v", err)
	}
	got, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if Hash(got) != Hash(want) {
		t.Errorf("ReadGraphFile = %+v, want %+v", got, want)
	}
}
