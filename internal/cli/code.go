package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/repograph/pkg/build"
	"github.com/matzehuels/repograph/pkg/errors"
	"github.com/matzehuels/repograph/pkg/graph"
	"github.com/matzehuels/repograph/pkg/layout"
	"github.com/matzehuels/repograph/pkg/pipeline"
	"github.com/matzehuels/repograph/pkg/source/local"
)

// buildFlags holds the flags shared by the graph-building commands.
type buildFlags struct {
	output  string
	layout  bool
	noCache bool
	refresh bool
}

func (f *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: graph.json, or layout.json with --layout)")
	cmd.Flags().BoolVar(&f.layout, "layout", false, "also compute the layered layout and write it instead of the graph")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results and recompute")
}

// codeCommand creates the "code" command for building a file dependency graph.
func (c *CLI) codeCommand() *cobra.Command {
	var (
		flags   buildFlags
		scope   string
		dedupe  bool
		workers int
		exts    []string
	)

	cmd := &cobra.Command{
		Use:   "code [dir]",
		Short: "Build a file dependency graph from a source tree",
		Long: `Scan a directory for source files, extract import and include statements and
build a directed graph from each file to the modules it depends on.

Scope controls which targets are kept:
  all       every extracted target (default)
  local     relative targets, targets with a path separator and headers
  relative  only targets starting with "./" or "../"`,
		Example: `  repograph code .
  repograph code ./src --scope local --dedupe
  repograph code . --layout -o layout.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			opts := c.Config.Code
			if cmd.Flags().Changed("scope") {
				s, err := build.ParseScope(scope)
				if err != nil {
					return err
				}
				opts.Scope = s
			}
			if cmd.Flags().Changed("dedupe") {
				opts.DedupeEdges = dedupe
			}
			if cmd.Flags().Changed("workers") {
				opts.Workers = workers
			}

			src := c.Config.Source
			if len(exts) > 0 {
				src.Extensions = exts
			}

			return c.runCode(cmd, root, src, opts, flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&scope, "scope", "", "target filter: all, local or relative")
	cmd.Flags().BoolVar(&dedupe, "dedupe", false, "collapse repeated edges between the same files")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent extraction workers")
	cmd.Flags().StringSliceVar(&exts, "ext", nil, "file extensions to scan (e.g. --ext .go,.py)")

	return cmd
}

func (c *CLI) runCode(cmd *cobra.Command, root string, src local.Options, opts build.CodeOptions, flags buildFlags) error {
	ctx := cmd.Context()

	prog := newProgress(c.Logger)
	files, stats, err := local.Walk(ctx, root, src)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Scanned %d files", len(files)), "ignored", stats.Ignored, "too_large", stats.TooLarge)
	if stats.Truncated > 0 {
		printWarning("Stopped after %d files; raise source.max_files to scan more", len(files))
	}

	runner, err := c.newRunner(flags.noCache, flags.refresh)
	if err != nil {
		return err
	}
	defer runner.Close()

	g, hit, err := runner.BuildCode(ctx, files, opts)
	if err != nil {
		return err
	}
	return c.writeGraphOutput(cmd, runner, g, hit, flags)
}

// writeGraphOutput writes g, or its layout when flags.layout is set, and
// prints a summary.
func (c *CLI) writeGraphOutput(cmd *cobra.Command, runner *pipeline.Runner, g graph.Graph, hit bool, flags buildFlags) error {
	if !flags.layout {
		path := flags.output
		if path == "" {
			path = "graph.json"
		}
		if err := errors.ValidateOutputPath(path); err != nil {
			return err
		}
		if err := graph.WriteGraphFile(g, path); err != nil {
			return err
		}
		printSuccess("Graph built")
		printStats(g.NodeCount(), g.EdgeCount(), hit)
		printFile(path)
		printNewline()
		printNextStep("Lay it out", "repograph layout "+path)
		return nil
	}

	res, layoutHit, err := c.computeLayout(cmd, runner, g, c.Config.Layout)
	if err != nil {
		return err
	}

	path := flags.output
	if path == "" {
		path = "layout.json"
	}
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if err := layout.WriteResultFile(res, path); err != nil {
		return err
	}
	printSuccess("Graph built and laid out")
	printStats(g.NodeCount(), g.EdgeCount(), hit && layoutHit)
	printLayoutSummary(res)
	printFile(path)
	printNewline()
	printNextStep("Render it", "repograph render "+path)
	return nil
}

// defaultOutput replaces the extension of input with suffix. A
// ".layout.json" extension is replaced as a whole.
func defaultOutput(input, suffix string) string {
	base, ok := strings.CutSuffix(input, ".layout.json")
	if !ok {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}
	return base + suffix
}
