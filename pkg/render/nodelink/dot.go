package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/repograph/pkg/graph"
	"github.com/matzehuels/repograph/pkg/layout"
	"github.com/matzehuels/repograph/pkg/render"
)

// Graphviz measures positions in points and sizes in inches.
const pointsPerInch = 72.0

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds rank and contributor counters to node labels.
	Detailed bool
}

// ToDOT converts a layout result to Graphviz DOT.
//
// Every node carries a pinned pos attribute, so the drawing reproduces the
// computed layout when rendered with the neato engine (see [RenderSVG]).
// Pixel coordinates map 1:1 to points, with the y axis flipped because
// Graphviz grows upwards. Module nodes (targets never scanned) are dashed,
// back edges are dotted and edges in res.Skipped are left out.
func ToDOT(res layout.Result, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir(res.Direction))
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, fixedsize=true];\n")
	buf.WriteString("\n")

	for _, n := range res.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, res.Height, opts.Detailed), ", "))
	}

	back := make(map[string]bool, len(res.BackEdges))
	for _, e := range res.BackEdges {
		back[e.ID] = true
	}
	skipped := make(map[string]bool, len(res.Skipped))
	for _, e := range res.Skipped {
		skipped[e.ID] = true
	}

	buf.WriteString("\n")
	for _, e := range res.Edges {
		if skipped[e.ID] {
			continue
		}
		if back[e.ID] {
			fmt.Fprintf(&buf, "  %q -> %q [style=dotted];\n", e.Source, e.Target)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func rankdir(d layout.Direction) layout.Direction {
	if d == "" {
		return layout.LeftToRight
	}
	return d
}

func fmtLabel(n layout.PositionedNode, detailed bool) string {
	label := n.DisplayLabel()
	if !detailed {
		return label
	}
	parts := []string{fmt.Sprintf("rank: %d", n.Rank)}
	if n.IsContributor() {
		parts = append(parts, fmt.Sprintf("PRs: %d", n.PRCount), fmt.Sprintf("reviews: %d", n.ReviewCount))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n layout.PositionedNode, height float64, detailed bool) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", fmtLabel(n, detailed)),
		fmt.Sprintf("pos=\"%s,%s!\"", num(n.X), num(height-n.Y)),
		fmt.Sprintf("width=%s", num(n.Width/pointsPerInch)),
		fmt.Sprintf("height=%s", num(n.Height/pointsPerInch)),
	}
	switch n.Kind {
	case graph.KindModule:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	case graph.KindContributor:
		attrs = append(attrs, "shape=ellipse", "style=filled", "fillcolor=\"#e8f0fe\"")
	}
	if n.IsContributor() && n.AvatarURL != "" {
		attrs = append(attrs, fmt.Sprintf("URL=%q", n.AvatarURL))
	}
	return attrs
}

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// RenderSVG renders DOT produced by [ToDOT] to SVG using Graphviz's neato
// engine, which keeps pinned node positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders DOT as PDF via SVG conversion. Requires librsvg.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders DOT as PNG via SVG conversion. Requires librsvg.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
