package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stablematch/pkg/bipartite"
	"github.com/matzehuels/stablematch/pkg/io"
)

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [instance]",
		Short: "Validate an instance without solving it",
		Long: `Validate an instance without solving it.

Check parses the instance, verifies that every preference list is
consistent (no empty ties, every edge listed by both endpoints) and
prints its size and fingerprint.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runCheck(ctx context.Context, input string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	g, err := c.newRunner().Read(ctx, input)
	if err != nil {
		return err
	}
	prog.done("checked instance", "source", input, "vertices", g.Len(), "edges", g.EdgeCount())

	printSuccess("%s is a valid instance", input)
	printStats(g)
	printKeyValue("Side A", sideStats(g, bipartite.SideA))
	printKeyValue("Side B", sideStats(g, bipartite.SideB))
	printKeyValue("Hash", io.Fingerprint(g))
	return nil
}
