package cli

import (
	"fmt"

	"github.com/bondcheck-labs/bondcheck/internal/config"
	"github.com/bondcheck-labs/bondcheck/internal/graph"
	"github.com/bondcheck-labs/bondcheck/internal/loader"
	"github.com/bondcheck-labs/bondcheck/internal/report"
	"github.com/bondcheck-labs/bondcheck/internal/semantics"
	"github.com/spf13/cobra"
)

var (
	validateFormat string
	validateStrict bool
)

func init() {
	validateCmd.Flags().StringVar(&validateFormat, "format", "", "Output format: text or json (default from config output.format, else text)")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Fail the run when only warnings are present")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <root>",
	Short: "Validate a manifest bundle",
	Long: `Validate all agent, skill, and command manifests under the given bundle root.

Each manifest header is checked against its kind's schema, the bond graph is
analyzed for orphan skills, broken bonds, and circular dependencies, and retry
and parameter-validation blocks are checked for invalid configuration. The
report lists every finding; the exit code identifies the dominant error
category (0 when only warnings or nothing is found).`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	format := validateFormat
	if format == "" {
		config.Load()
		format = config.Get("output.format")
	}
	if format == "" {
		format = report.FormatText
	}
	if format != report.FormatText && format != report.FormatJSON {
		return fmt.Errorf("unknown output format %q (want text or json)", format)
	}

	rep, err := runValidation(args[0], validateStrict)
	if err != nil {
		return err
	}

	if err := rep.Render(cmd.OutOrStdout(), format); err != nil {
		return err
	}
	if rep.ExitCode != report.ExitOK {
		return &codeError{code: rep.ExitCode}
	}
	return nil
}

// runValidation executes the full pipeline: load and schema-check manifests,
// build the bond graph, run the graph analyses and config semantics checks,
// and assemble the ordered report. Graph analyses run single-threaded over
// the completed entity set.
func runValidation(root string, strict bool) (*report.Report, error) {
	col := report.NewCollector()

	entities, err := loader.Load(root, col)
	if err != nil {
		return nil, err
	}

	g := graph.Build(entities)
	g.CheckIntegrity(col)
	g.CheckCycles(col)
	semantics.Check(entities, col)

	return col.Build(strict), nil
}
