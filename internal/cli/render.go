package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stablematch/pkg/matching"
	"github.com/matzehuels/stablematch/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags      solverFlags
		noMatching bool
	)

	cmd := &cobra.Command{
		Use:   "render [instance]",
		Short: "Draw an instance as a node-link diagram",
		Long: `Draw an instance as a node-link diagram.

Side A is drawn on the left and side B on the right, critical vertices
with a double border. Unless --no-matching is given, the matching is
computed first and its edges are drawn bold.

Output defaults to <instance>.svg, or the configured render formats.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, args[0], &flags)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") {
				opts.Formats = resolveFormats(opts.Formats, flags.output, pipeline.FormatSVG)
			}
			return c.runRender(cmd.Context(), opts, flags.output, noMatching)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&noMatching, "no-matching", false, "draw the instance only")
	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noMatching bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	runner := c.newRunner()

	g, err := runner.Read(ctx, opts.Input)
	if err != nil {
		return err
	}

	var m *matching.Matching
	if !noMatching {
		if m, _, err = runner.Compute(ctx, g, opts); err != nil {
			return fmt.Errorf("render %s: %w", opts.Input, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	artifacts, err := runner.Render(ctx, g, m, opts)
	if err != nil {
		return fmt.Errorf("render %s: %w", opts.Input, err)
	}
	printSuccess("Rendered %s", opts.Input)
	return writeArtifacts(artifacts, opts.Formats, opts.Input, output)
}
