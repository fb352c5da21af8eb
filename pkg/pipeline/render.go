package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/repograph/pkg/layout"
	"github.com/matzehuels/repograph/pkg/render/nodelink"
)

// Render exports a positioned graph in a single format. SVG needs no
// external tools; PNG and PDF need rsvg-convert on PATH.
func Render(ctx context.Context, res layout.Result, opts RenderOptions) ([]byte, error) {
	opts = opts.withDefaults()
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, err
	}

	if opts.Format == FormatJSON {
		return layout.MarshalResult(res)
	}

	dot := nodelink.ToDOT(res, nodelink.Options{Detailed: opts.Detailed})

	var data []byte
	var err error
	switch opts.Format {
	case FormatDOT:
		data = []byte(dot)
	case FormatSVG:
		data, err = nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		data, err = nodelink.RenderPNG(ctx, dot, opts.Scale)
	case FormatPDF:
		data, err = nodelink.RenderPDF(ctx, dot)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", opts.Format, err)
	}
	return data, nil
}
