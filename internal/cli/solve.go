package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stablematch/pkg/pipeline"
)

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var flags solverFlags

	cmd := &cobra.Command{
		Use:   "solve [instance]",
		Short: "Compute a matching for an instance",
		Long: `Compute a matching for an instance and print it.

The instance is read from a text (.txt) or JSON (.json) file. The default
algorithm, critical-rsm, matches as many critical vertices as any
matching can and keeps the result relaxed-stable: every blocking pair
involves a vertex whose partner is critical.

With -o or --format, the instance is also drawn with the matched edges
highlighted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, args[0], &flags)
			if err != nil {
				return err
			}
			switch {
			case cmd.Flags().Changed("format"):
			case flags.output != "":
				opts.Formats = resolveFormats(opts.Formats, flags.output, pipeline.FormatDOT)
			default:
				opts.Formats = nil
			}
			return c.runSolve(cmd.Context(), opts, flags.output)
		},
	}

	flags.register(cmd)
	return cmd
}

// runSolve executes the full pipeline and reports the result.
func (c *CLI) runSolve(ctx context.Context, opts pipeline.Options, output string) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		return fmt.Errorf("solve %s: %w", opts.Input, err)
	}

	printMatching(result.Graph, result.Matching)
	printNewline()
	printSummary(opts.Algorithm, result.Summary, result.Stats)

	if len(result.Artifacts) == 0 {
		return nil
	}
	printNewline()
	return writeArtifacts(result.Artifacts, opts.Formats, opts.Input, output)
}

// resolveFormats picks the formats to write when --format is not given:
// the format implied by output's extension, else the configured formats,
// else fallback.
func resolveFormats(configured []string, output, fallback string) []string {
	if f := formatFromPath(output); f != "" {
		return []string{f}
	}
	if len(configured) > 0 {
		return configured
	}
	return []string{fallback}
}
