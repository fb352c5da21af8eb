package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/repograph/pkg/build"
	"github.com/matzehuels/repograph/pkg/errors"
)

// contributorsCommand creates the "contributors" command for building a
// review graph from pull request data.
func (c *CLI) contributorsCommand() *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "contributors <prs.json>",
		Short: "Build a review graph from pull request JSON",
		Long: `Build a graph of pull request authors and reviewers. Each pull request author
and reviewer becomes a contributor node and each review adds an edge from the
reviewer to the author.

The input is either a JSON array of pull requests or a GraphQL response of
the form {"data": {"repository": {"pullRequests": {"nodes": [...]}}}}.
Use "-" to read from stdin.`,
		Example: `  repograph contributors prs.json
  gh api graphql -f query=@prs.graphql | repograph contributors - --layout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prs, err := readPullRequests(cmd, args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(flags.noCache, flags.refresh)
			if err != nil {
				return err
			}
			defer runner.Close()

			g, hit, err := runner.BuildContributors(cmd.Context(), prs)
			if err != nil {
				return err
			}
			c.Logger.Info(fmt.Sprintf("Read %d pull requests", len(prs)))
			return c.writeGraphOutput(cmd, runner, g, hit, flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func readPullRequests(cmd *cobra.Command, path string) ([]build.PullRequest, error) {
	if path == "-" {
		return build.DecodePullRequests(cmd.InOrStdin())
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "pull request file not found: %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return build.DecodePullRequests(f)
}
