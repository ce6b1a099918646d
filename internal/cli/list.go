package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/bondcheck-labs/bondcheck/internal/loader"
	"github.com/bondcheck-labs/bondcheck/internal/manifest"
	"github.com/bondcheck-labs/bondcheck/internal/report"
	"github.com/spf13/cobra"
)

var (
	listKindFilter string
	listJSON       bool
)

var listCmd = &cobra.Command{
	Use:   "list <root>",
	Short: "List entities discovered in a bundle",
	Long:  `List all agent, skill, and command manifests discovered under the given bundle root.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listKindFilter, "kind", "", "Filter by kind (agent, skill, command)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a discovered entity for display.
type listEntry struct {
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Path    string `json:"path"`
}

func runList(cmd *cobra.Command, args []string) error {
	// Findings are the validate command's business; listing only needs the
	// entities, so the collector is discarded.
	entities, err := loader.Load(args[0], report.NewCollector())
	if err != nil {
		return fmt.Errorf("loading bundle: %w", err)
	}

	var entries []listEntry
	for _, e := range entities {
		if listKindFilter != "" && e.Kind != listKindFilter {
			continue
		}
		entry := listEntry{
			Kind: e.Kind,
			Name: e.Name,
			Path: e.SourcePath,
		}
		if base := manifest.Base(e.Header); base != nil {
			entry.Version = base.Version
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		if listKindFilter != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "No entities matching --kind=%s\n", listKindFilter)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No entities found.")
		}
		return nil
	}

	if listJSON {
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling entries: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tNAME\tVERSION\tPATH")
	for _, e := range entries {
		version := e.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Kind, e.Name, version, e.Path)
	}
	return w.Flush()
}
