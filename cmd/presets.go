package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/conneroisu/inlinescripts/internal/presets"
	"github.com/conneroisu/inlinescripts/internal/script"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the shipped color scheme presets",
	Long: `List the ready-made presets that can be rendered with
"inlinescripts render --preset NAME".

Examples:
  inlinescripts presets
  inlinescripts presets --key t -o json`,
	RunE: runPresets,
}

var presetsFlags *StandardFlags

func init() {
	rootCmd.AddCommand(presetsCmd)

	presetsFlags = AddStandardFlags(presetsCmd, "output")
	presetsCmd.Flags().StringVarP(&presetsFlags.Key, "key", "k", presets.DefaultKey, "Toggle key for switch scripts")

	AddFlagValidation(presetsCmd, "output", func(format string) error {
		return ValidateFormat(format, []string{"table", "json", "yaml"})
	})
	AddFlagValidation(presetsCmd, "key", presets.ValidateKey)
}

// presetSummary is the list representation of a shipped preset
type presetSummary struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Scripts     []string `json:"scripts" yaml:"scripts"`
	Functions   []string `json:"functions" yaml:"functions"`
}

func runPresets(cmd *cobra.Command, args []string) error {
	summaries := make([]presetSummary, 0)
	for _, p := range presets.Catalog() {
		scripts, err := p.Scripts(presetsFlags.Key)
		if err != nil {
			return err
		}

		summary := presetSummary{Name: p.Name, Description: p.Description}
		for _, s := range scripts {
			summary.Scripts = append(summary.Scripts, s.Name())
			if fs, ok := s.(*script.FileScript); ok {
				summary.Functions = append(summary.Functions, fs.FunctionName())
			}
		}
		summaries = append(summaries, summary)
	}

	out := cmd.OutOrStdout()
	switch presetsFlags.OutputFormat {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(summaries)
	case "yaml":
		encoder := yaml.NewEncoder(out)
		defer encoder.Close()
		return encoder.Encode(summaries)
	case "table", "":
		return outputPresetsTable(out, summaries)
	default:
		return fmt.Errorf("unsupported format: %s", presetsFlags.OutputFormat)
	}
}

func outputPresetsTable(w io.Writer, summaries []presetSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSCRIPTS\tDESCRIPTION")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Name, strings.Join(s.Scripts, ", "), s.Description)
	}
	return tw.Flush()
}
