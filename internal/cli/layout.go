package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/repograph/pkg/errors"
	"github.com/matzehuels/repograph/pkg/graph"
	"github.com/matzehuels/repograph/pkg/layout"
	"github.com/matzehuels/repograph/pkg/pipeline"
)

// layoutFlags overrides the configured layout geometry.
type layoutFlags struct {
	direction      string
	rankSeparation float64
	nodeSeparation float64
	nodeWidth      float64
	nodeHeight     float64
	passes         int
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.direction, "direction", "d", "", "rank direction: LR, RL, TB or BT")
	cmd.Flags().Float64Var(&f.rankSeparation, "rank-sep", 0, "gap between ranks in pixels")
	cmd.Flags().Float64Var(&f.nodeSeparation, "node-sep", 0, "gap between nodes in a rank in pixels")
	cmd.Flags().Float64Var(&f.nodeWidth, "node-width", 0, "node box width in pixels")
	cmd.Flags().Float64Var(&f.nodeHeight, "node-height", 0, "node box height in pixels")
	cmd.Flags().IntVar(&f.passes, "passes", 0, "maximum crossing-reduction sweeps")
}

// apply overlays the flags the user set on cfg.
func (f *layoutFlags) apply(cmd *cobra.Command, cfg layout.Config) (layout.Config, error) {
	fl := cmd.Flags()
	if fl.Changed("direction") {
		d, err := layout.ParseDirection(f.direction)
		if err != nil {
			return cfg, err
		}
		cfg.Direction = d
	}
	if fl.Changed("rank-sep") {
		cfg.RankSeparation = f.rankSeparation
	}
	if fl.Changed("node-sep") {
		cfg.NodeSeparation = f.nodeSeparation
	}
	if fl.Changed("node-width") {
		cfg.NodeWidth = f.nodeWidth
	}
	if fl.Changed("node-height") {
		cfg.NodeHeight = f.nodeHeight
	}
	if fl.Changed("passes") {
		cfg.Passes = f.passes
	}
	return cfg, cfg.Validate()
}

// layoutCommand creates the "layout" command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags   layoutFlags
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "layout <graph.json>",
		Short: "Compute a layered layout for a graph",
		Long: `Assign every node a rank, order nodes within ranks to reduce edge crossings
and compute pixel coordinates. Edges that close a cycle are reported as back
edges and edges to unknown nodes are skipped.`,
		Example: `  repograph layout graph.json
  repograph layout graph.json -d TB --node-width 120 -o ranks.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.apply(cmd, c.Config.Layout)
			if err != nil {
				return err
			}

			g, err := graph.ReadGraphFile(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(noCache, refresh)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, hit, err := c.computeLayout(cmd, runner, g, cfg)
			if err != nil {
				return err
			}

			if output == "" {
				output = defaultOutput(args[0], ".layout.json")
			}
			if err := errors.ValidateOutputPath(output); err != nil {
				return err
			}
			if err := layout.WriteResultFile(res, output); err != nil {
				return err
			}

			printSuccess("Layout computed")
			printStats(len(res.Nodes), len(res.Edges), hit)
			printLayoutSummary(res)
			printFile(output)
			printNewline()
			printNextStep("Render it", "repograph render "+output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results and recompute")

	return cmd
}

// computeLayout runs the layout stage behind a spinner and logs its timing.
func (c *CLI) computeLayout(cmd *cobra.Command, runner *pipeline.Runner, g graph.Graph, cfg layout.Config) (layout.Result, bool, error) {
	type outcome struct {
		res layout.Result
		hit bool
	}

	prog := newProgress(c.Logger)
	o, err := withSpinner(cmd.Context(), "Computing layout...", func() (outcome, error) {
		res, hit, err := runner.Layout(cmd.Context(), g, cfg)
		return outcome{res, hit}, err
	})
	if err != nil {
		return layout.Result{}, false, err
	}
	prog.done(fmt.Sprintf("Laid out %d nodes in %d ranks", len(o.res.Nodes), o.res.Ranks), "cached", o.hit)
	return o.res, o.hit, nil
}

// printLayoutSummary prints the size and quality of a layout.
func printLayoutSummary(res layout.Result) {
	printKeyValue("Size", fmt.Sprintf("%.0f x %.0f", res.Width, res.Height))
	printKeyValue("Ranks", fmt.Sprint(res.Ranks))
	printKeyValue("Crossings", fmt.Sprint(res.Crossings))
	if n := len(res.BackEdges); n > 0 {
		printWarning("%d edges close a cycle and were not used for ranking", n)
	}
	if n := len(res.Skipped); n > 0 {
		printWarning("%d edges reference unknown nodes and were skipped", n)
	}
}
