package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/repograph/pkg/errors"
	"github.com/matzehuels/repograph/pkg/layout"
	"github.com/matzehuels/repograph/pkg/pipeline"
)

// renderCommand creates the "render" command for exporting a layout.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		opts    pipeline.RenderOptions
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "render <layout.json>",
		Short: "Render a layout as DOT, SVG, PNG, PDF or JSON",
		Long: `Render a computed layout. DOT output keeps the computed positions as pinned
node coordinates. PNG and PDF are converted from SVG and require rsvg-convert.`,
		Example: `  repograph render graph.layout.json
  repograph render graph.layout.json -f dot -o graph.dot
  repograph render graph.layout.json -f png --scale 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(opts.Format); err != nil {
				return err
			}

			res, err := layout.ReadResultFile(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(noCache, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			data, hit, err := runner.Render(cmd.Context(), res, opts)
			if err != nil {
				return err
			}
			prog.done("Rendered "+strings.ToUpper(opts.Format), "bytes", len(data), "cached", hit)

			if output == "" {
				output = defaultOutput(args[0], "."+opts.Format)
			}
			if err := errors.ValidateOutputPath(output); err != nil {
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}

			printSuccess("Rendered %s", strings.ToUpper(opts.Format))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", pipeline.FormatSVG, "output format: "+strings.Join(pipeline.Formats, ", "))
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show contributor statistics in node labels")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with the format's extension)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
