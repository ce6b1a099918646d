package cli

import (
	"fmt"
	"os"

	"github.com/bondcheck-labs/bondcheck/internal/branding"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` validates plugin manifest bundles: it parses agent, skill,
and command manifests, checks each header against its schema, builds the bond
graph between agents and the skills they bond to, and reports structural
defects (orphan skills, broken bonds, circular dependencies) plus malformed
retry and parameter-validation configuration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil && !isCodeError(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
