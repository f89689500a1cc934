package cmd

import (
	"context"
	"fmt"

	"github.com/conneroisu/inlinescripts/internal/bundle"
	"github.com/conneroisu/inlinescripts/internal/config"
	"github.com/conneroisu/inlinescripts/internal/errors"
	"github.com/conneroisu/inlinescripts/internal/logging"
	"github.com/conneroisu/inlinescripts/internal/output"
	"github.com/conneroisu/inlinescripts/internal/presets"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:     "render [path[:placeholders-json]...]",
	Aliases: []string{"r"},
	Short:   "Render script templates as one inline script tag",
	Long: `Render script templates into a single <script> tag.

Sources are either positional template paths, a bundle from the
configuration file (--bundle) or a shipped preset (--preset). A path may be
followed by a JSON object of placeholder values.

Examples:
  inlinescripts render js/init.js 'js/switch.js:{"__DARK__":"night"}'
  inlinescripts render --bundle theme --minify --out public/theme.html
  inlinescripts render --preset three-states --key t --no-hash
  inlinescripts render --preset theme --tag-id theme-scripts --check`,
	RunE: runRender,
}

var renderFlags *StandardFlags

func init() {
	rootCmd.AddCommand(renderCmd)

	renderFlags = AddStandardFlags(renderCmd, "source", "render")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	b, err := buildBundle(cfg, logger, renderFlags, args)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)

	tag, err := renderTag(ctx, b, cfg, renderFlags, logger)
	if err != nil {
		return err
	}

	if renderFlags.Out != "" {
		if err := output.WriteFile(renderFlags.Out, tag+"\n"); err != nil {
			return err
		}
		logger.Info(ctx, "Wrote script tag", "path", renderFlags.Out, "bytes", len(tag))
		return nil
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), tag)
	return err
}

// buildBundle creates the bundle selected by positional paths, --bundle or
// --preset, and applies the tag id and hash settings.
func buildBundle(cfg *config.Config, logger logging.Logger, flags *StandardFlags, args []string) (*bundle.Bundle, error) {
	sources := 0
	for _, selected := range []bool{len(args) > 0, flags.Bundle != "", flags.Preset != ""} {
		if selected {
			sources++
		}
	}
	if sources != 1 {
		return nil, errors.ErrInvalidArgument("specify exactly one of: template paths, --bundle or --preset")
	}

	var (
		b      *bundle.Bundle
		tagID  = flags.TagID
		noHash = flags.NoHash
		err    error
	)

	switch {
	case flags.Bundle != "":
		bc, lookupErr := cfg.Bundle(flags.Bundle)
		if lookupErr != nil {
			return nil, lookupErr
		}
		factory := bundle.NewFactory(
			bundle.WithBaseDir(cfg.Scripts.Directory),
			bundle.WithLogger(logger),
		)
		b, err = factory.FromFiles(cfg.Entries(bc)...)
		if tagID == "" {
			tagID = bc.TagID
		}
		noHash = noHash || bc.NoHash

	case flags.Preset != "":
		preset, ok := presets.Lookup(flags.Preset)
		if !ok {
			return nil, errors.ErrInvalidArgument(fmt.Sprintf("unknown preset %q", flags.Preset))
		}
		scripts, scriptsErr := preset.Scripts(flags.Key)
		if scriptsErr != nil {
			return nil, scriptsErr
		}
		b = bundle.NewFactory(bundle.WithLogger(logger)).FromSources(scripts...)

	default:
		entries := make([]bundle.Entry, 0, len(args))
		for _, arg := range args {
			entry, parseErr := ParseEntry(arg)
			if parseErr != nil {
				return nil, errors.ErrInvalidArgument(parseErr.Error())
			}
			entries = append(entries, entry)
		}
		b, err = bundle.NewFactory(bundle.WithLogger(logger)).FromFiles(entries...)
	}
	if err != nil {
		return nil, err
	}

	if tagID != "" {
		if err := b.SetTagID(tagID); err != nil {
			return nil, err
		}
	}
	if noHash {
		b.DisableHash()
	}

	return b, nil
}

// renderTag renders b, optionally checking and minifying the combined code.
// The tag id is always derived from the unminified code.
func renderTag(ctx context.Context, b *bundle.Bundle, cfg *config.Config, flags *StandardFlags, logger *logging.ScriptsLogger) (string, error) {
	perf := logger.StartOperation("render")

	id, err := b.TagID()
	if err != nil {
		perf.EndWithError(ctx, err)
		return "", err
	}
	code, err := b.CombinedCode()
	if err != nil {
		perf.EndWithError(ctx, err)
		return "", err
	}

	if flags.Check || cfg.Output.Check {
		if err := output.CheckSyntax(code); err != nil {
			perf.EndWithError(ctx, err)
			return "", err
		}
	}

	if flags.Minify || cfg.Output.Minify {
		minified, err := output.Minify(code)
		if err != nil {
			perf.EndWithError(ctx, err)
			return "", err
		}
		logger.Debug(ctx, "Minified code", "before", len(code), "after", len(minified))
		code = minified
	}

	perf.End(ctx)
	return bundle.FormatTag(id, code), nil
}
