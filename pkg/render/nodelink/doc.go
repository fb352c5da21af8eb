// Package nodelink renders positioned graphs as node-link diagrams through
// Graphviz.
//
// # Usage
//
//	res := layout.Graph(g, layout.DefaultConfig())
//	dot := nodelink.ToDOT(res, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The DOT output pins every node at its computed centre, so Graphviz only
// routes edges and draws; it never re-runs its own layout. Positions and sizes
// are carried over 1:1 (one pixel per point).
//
// [RenderPDF] and [RenderPNG] convert the SVG with rsvg-convert.
package nodelink
