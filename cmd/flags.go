package cmd

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/conneroisu/inlinescripts/internal/bundle"
	"github.com/conneroisu/inlinescripts/internal/presets"
	"github.com/conneroisu/inlinescripts/internal/script"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// StandardFlags provides consistent flag definitions across commands
type StandardFlags struct {
	// Source flags
	Bundle string `flag:"bundle,b" desc:"Configured bundle to use" default:""`
	Preset string `flag:"preset,p" desc:"Shipped preset to use" default:""`
	Key    string `flag:"key,k" desc:"Toggle key for preset switch scripts" default:"d"`

	// Render flags
	TagID  string `flag:"tag-id" desc:"Explicit script tag id" default:""`
	NoHash bool   `flag:"no-hash" desc:"Do not append the content hash to the tag id" default:"false"`
	Minify bool   `flag:"minify" desc:"Minify the combined code" default:"false"`
	Check  bool   `flag:"check" desc:"Fail when the combined code is not valid JavaScript" default:"false"`
	Out    string `flag:"out" desc:"Write the tag to a file instead of stdout" default:""`

	// Output flags
	OutputFormat string `flag:"output,o" desc:"Output format (table|json|yaml)" default:"table"`
}

// AddStandardFlags adds standard flags to a command
func AddStandardFlags(cmd *cobra.Command, flagTypes ...string) *StandardFlags {
	flags := &StandardFlags{Key: presets.DefaultKey, OutputFormat: "table"}

	for _, flagType := range flagTypes {
		switch flagType {
		case "source":
			addSourceFlags(cmd, flags)
		case "render":
			addRenderFlags(cmd, flags)
		case "output":
			addOutputFlags(cmd, flags)
		}
	}

	return flags
}

func addSourceFlags(cmd *cobra.Command, flags *StandardFlags) {
	cmd.Flags().StringVarP(&flags.Bundle, "bundle", "b", "", "Configured bundle to use")
	cmd.Flags().StringVarP(&flags.Preset, "preset", "p", "", "Shipped preset to use")
	cmd.Flags().StringVarP(&flags.Key, "key", "k", presets.DefaultKey, "Toggle key for preset switch scripts")
}

func addRenderFlags(cmd *cobra.Command, flags *StandardFlags) {
	cmd.Flags().StringVar(&flags.TagID, "tag-id", "", "Explicit script tag id")
	cmd.Flags().BoolVar(&flags.NoHash, "no-hash", false, "Do not append the content hash to the tag id")
	cmd.Flags().BoolVar(&flags.Minify, "minify", false, "Minify the combined code")
	cmd.Flags().BoolVar(&flags.Check, "check", false, "Fail when the combined code is not valid JavaScript")
	cmd.Flags().StringVar(&flags.Out, "out", "", "Write the tag to a file instead of stdout")
}

func addOutputFlags(cmd *cobra.Command, flags *StandardFlags) {
	cmd.Flags().StringVarP(&flags.OutputFormat, "output", "o", "table", "Output format (table|json|yaml)")
}

// ValidateFormat checks an output format against the supported ones
func ValidateFormat(format string, supported []string) error {
	if slices.Contains(supported, format) {
		return nil
	}
	return fmt.Errorf("invalid format '%s', supported: %s", format, strings.Join(supported, ", "))
}

// AddFlagValidation runs validator against a flag's value before the command
func AddFlagValidation(cmd *cobra.Command, flagName string, validator func(string) error) {
	previous := cmd.PreRunE
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if previous != nil {
			if err := previous(cmd, args); err != nil {
				return err
			}
		}

		var validationErr error
		cmd.Flags().VisitAll(func(flag *pflag.Flag) {
			if flag.Name == flagName && validationErr == nil {
				if err := validator(flag.Value.String()); err != nil {
					validationErr = fmt.Errorf("invalid --%s: %w", flagName, err)
				}
			}
		})
		return validationErr
	}
}

// ParseEntry parses a positional "path[:json]" argument, where the optional
// JSON object maps placeholder tokens to values.
func ParseEntry(arg string) (bundle.Entry, error) {
	path, raw, found := strings.Cut(arg, ":{")
	entry := bundle.Entry{Path: strings.TrimSpace(path)}
	if !found {
		return entry, nil
	}

	var placeholders script.Placeholders
	if err := json.Unmarshal([]byte("{"+raw), &placeholders); err != nil {
		return bundle.Entry{}, fmt.Errorf("invalid placeholders for %s: %w", entry.Path, err)
	}
	entry.Placeholders = placeholders

	return entry, nil
}
