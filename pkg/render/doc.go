// Package render turns positioned graphs into files.
//
// The [nodelink] subpackage writes Graphviz DOT with every node pinned at the
// coordinates computed by the layout engine and renders it to SVG. [ToPDF]
// and [ToPNG] convert any SVG further using the external rsvg-convert tool
// (from librsvg):
//
//	svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(res, nodelink.Options{}))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [nodelink]: github.com/matzehuels/repograph/pkg/render/nodelink
package render
