package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stablematch/pkg/algorithm"
	"github.com/matzehuels/stablematch/pkg/buildinfo"
	"github.com/matzehuels/stablematch/pkg/config"
	"github.com/matzehuels/stablematch/pkg/observability"
	"github.com/matzehuels/stablematch/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag value. Empty means the XDG lookup.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "stablematch",
		Short: "Stablematch computes stable and critical relaxed-stable matchings",
		Long: `Stablematch computes matchings on bipartite preference instances with ties
and critical vertices. It finds weakly stable matchings, and relaxed-stable
matchings that match every critical vertex it can reach.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			observability.SetSolverHooks(newLogHooks(c.Logger))
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/stablematch/config.toml)")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Options
// =============================================================================

// solverFlags holds the flags shared by solve and render.
type solverFlags struct {
	algorithm string
	proposing string
	threshold int
	formats   string
	detailed  bool
	output    string
}

func (f *solverFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", "", "matching algorithm: "+strings.Join(algorithm.Names(), ", ")+" (default "+pipeline.DefaultAlgorithm+")")
	cmd.Flags().StringVarP(&f.proposing, "proposing", "p", "", "proposing side: a (default), b")
	cmd.Flags().IntVar(&f.threshold, "threshold", 0, "critical displacements allowed before critical partners are protected (relaxed)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): dot, svg, png (comma-separated)")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "show ranks on edges and critical flags on vertices")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")

	_ = cmd.RegisterFlagCompletionFunc("algorithm", fixedCompletions(algorithm.Names()...))
	_ = cmd.RegisterFlagCompletionFunc("proposing", fixedCompletions("a", "b"))
	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletions(pipeline.FormatDOT, pipeline.FormatSVG, pipeline.FormatPNG))
}

func fixedCompletions(values ...string) cobra.CompletionFunc {
	return cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp)
}

// options builds pipeline options from the config file, then overrides
// them with every flag set on the command line.
func (c *CLI) options(cmd *cobra.Command, input string, f *solverFlags) (pipeline.Options, error) {
	file, err := config.Load(c.configPath)
	if err != nil {
		return pipeline.Options{}, err
	}

	opts := pipeline.Options{Input: input, Logger: c.Logger}
	file.Apply(&opts)

	flags := cmd.Flags()
	if flags.Changed("algorithm") {
		opts.Algorithm = f.algorithm
	}
	if flags.Changed("proposing") {
		opts.Proposing = f.proposing
	}
	if flags.Changed("threshold") {
		opts.Threshold = f.threshold
	}
	if flags.Changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if flags.Changed("detailed") {
		opts.Detailed = f.detailed
	}
	return opts, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Output Paths
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// formatFromPath returns the output format implied by a file extension,
// or "" when the extension is not a known format.
func formatFromPath(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if pipeline.ValidFormats[ext] {
		return ext
	}
	return ""
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .dot, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	if ext := filepath.Ext(output); formatFromPath(output) != "" {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to the file it is written to. A single
// format goes to output verbatim when given; otherwise files are named
// base.format.
func outputPaths(formats []string, input, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// writeArtifacts writes rendered artifacts in format order and prints
// each written path.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	paths := outputPaths(formats, input, output)
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			continue
		}
		if err := os.WriteFile(paths[f], data, 0o644); err != nil {
			return err
		}
		printFile(paths[f])
	}
	return nil
}
