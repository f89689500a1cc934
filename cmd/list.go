package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/conneroisu/inlinescripts/internal/bundle"
	"github.com/conneroisu/inlinescripts/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l"},
	Short:   "List configured bundles",
	Long: `List the bundles defined in the configuration file with their tag id
settings and template files.

Examples:
  inlinescripts list              # Table output
  inlinescripts list -o json      # Output as JSON
  inlinescripts list -o yaml      # Output as YAML`,
	RunE: runList,
}

var listFlags *StandardFlags

func init() {
	rootCmd.AddCommand(listCmd)

	listFlags = AddStandardFlags(listCmd, "output")

	AddFlagValidation(listCmd, "output", func(format string) error {
		return ValidateFormat(format, []string{"table", "json", "yaml"})
	})
}

// bundleSummary is the list representation of a configured bundle
type bundleSummary struct {
	Name   string         `json:"name" yaml:"name"`
	TagID  string         `json:"tag_id,omitempty" yaml:"tag_id,omitempty"`
	NoHash bool           `json:"no_hash" yaml:"no_hash"`
	Files  []bundle.Entry `json:"files" yaml:"files"`
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadRuntime(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	summaries := summarizeBundles(cfg)
	out := cmd.OutOrStdout()

	switch listFlags.OutputFormat {
	case "json":
		return outputListJSON(out, summaries)
	case "yaml":
		return outputListYAML(out, summaries)
	case "table", "":
		return outputListTable(out, summaries)
	default:
		return fmt.Errorf("unsupported format: %s", listFlags.OutputFormat)
	}
}

func summarizeBundles(cfg *config.Config) []bundleSummary {
	summaries := make([]bundleSummary, 0, len(cfg.Bundles))
	for _, name := range cfg.BundleNames() {
		bc := cfg.Bundles[name]
		summaries = append(summaries, bundleSummary{
			Name:   name,
			TagID:  bc.TagID,
			NoHash: bc.NoHash,
			Files:  cfg.Entries(bc),
		})
	}
	return summaries
}

func outputListJSON(w io.Writer, summaries []bundleSummary) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summaries)
}

func outputListYAML(w io.Writer, summaries []bundleSummary) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(summaries)
}

func outputListTable(w io.Writer, summaries []bundleSummary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "No bundles configured")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTAG ID\tHASH\tFILES")

	for _, s := range summaries {
		tagID := s.TagID
		if tagID == "" {
			tagID = "(derived)"
		}
		hash := "yes"
		if s.NoHash || s.TagID != "" {
			hash = "no"
		}

		paths := make([]string, len(s.Files))
		for i, f := range s.Files {
			paths[i] = f.Path
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Name, tagID, hash, strings.Join(paths, ", "))
	}

	return tw.Flush()
}
