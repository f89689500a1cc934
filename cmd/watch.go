package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/conneroisu/inlinescripts/internal/bundle"
	"github.com/conneroisu/inlinescripts/internal/config"
	"github.com/conneroisu/inlinescripts/internal/errors"
	"github.com/conneroisu/inlinescripts/internal/logging"
	"github.com/conneroisu/inlinescripts/internal/output"
	"github.com/conneroisu/inlinescripts/internal/script"
	"github.com/conneroisu/inlinescripts/internal/watcher"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:     "watch [path[:placeholders-json]...]",
	Aliases: []string{"w"},
	Short:   "Re-render a script tag whenever its templates change",
	Long: `Watch the template files of a bundle and write a freshly rendered
script tag to --out after every change. Changes are debounced using
watch.debounce from the configuration file.

Examples:
  inlinescripts watch --bundle theme --out public/theme.html
  inlinescripts watch js/init.js js/switch.js --out public/scripts.html --minify`,
	RunE: runWatch,
}

var watchFlags *StandardFlags

func init() {
	rootCmd.AddCommand(watchCmd)

	watchFlags = AddStandardFlags(watchCmd, "source", "render")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchFlags.Out == "" {
		return errors.ErrInvalidArgument("watch requires --out")
	}
	if watchFlags.Preset != "" {
		return errors.ErrInvalidArgument("presets are embedded and cannot be watched")
	}

	cfg, logger, err := loadRuntime(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initial render; the watched files are taken from the bundle it built.
	b, err := writeBundle(ctx, cfg, logger, watchFlags, args)
	if err != nil {
		return err
	}

	paths := templatePaths(b)
	if len(paths) == 0 {
		return errors.ErrInvalidArgument("bundle has no template files to watch")
	}

	fileWatcher, err := watcher.NewFileWatcher(cfg.Watch.Debounce, logger)
	if err != nil {
		return errors.WrapIO(err, errors.ErrCodeWatchFailed, "failed to create file watcher")
	}
	defer fileWatcher.Stop()

	if err := fileWatcher.AddFiles(paths...); err != nil {
		return errors.WrapIO(err, errors.ErrCodeWatchFailed, "failed to watch template files")
	}
	fileWatcher.AddFilter(watcher.NoEditorTempFilter)
	for _, dir := range fileWatcher.WatchList() {
		logger.Debug(ctx, "Watching directory", "path", dir)
	}

	fileWatcher.AddHandler(func(ctx context.Context, events []watcher.ChangeEvent) error {
		for _, event := range events {
			logger.Debug(ctx, "Template changed", "path", event.Path, "type", event.Type.String())
		}
		// Render failures are logged and the previous output is kept.
		if _, err := writeBundle(ctx, cfg, logger, watchFlags, args); err != nil {
			logger.Error(ctx, err, "Re-render failed", "changes", len(events))
			return nil
		}
		return nil
	})

	if err := fileWatcher.Start(ctx); err != nil {
		return errors.WrapIO(err, errors.ErrCodeWatchFailed, "failed to start file watcher")
	}

	logger.Info(ctx, "Watching templates", "files", len(paths), "out", watchFlags.Out)
	fmt.Fprintln(cmd.OutOrStdout(), "Watching for changes... (Press Ctrl+C to stop)")

	<-ctx.Done()
	logger.Info(context.Background(), "Stopping file watcher")

	return nil
}

// writeBundle builds a fresh bundle, renders it and writes the tag to
// flags.Out. Templates are re-read on every call.
func writeBundle(ctx context.Context, cfg *config.Config, logger *logging.ScriptsLogger, flags *StandardFlags, args []string) (*bundle.Bundle, error) {
	b, err := buildBundle(cfg, logger, flags, args)
	if err != nil {
		return nil, err
	}

	tag, err := renderTag(ctx, b, cfg, flags, logger)
	if err != nil {
		return nil, err
	}

	if err := output.WriteFile(flags.Out, tag+"\n"); err != nil {
		return nil, err
	}
	logger.Info(ctx, "Wrote script tag", "path", flags.Out, "bytes", len(tag))

	return b, nil
}

// templatePaths lists the files backing the bundle's file scripts.
func templatePaths(b *bundle.Bundle) []string {
	var paths []string
	for _, s := range b.Scripts() {
		if fs, ok := s.(*script.FileScript); ok {
			paths = append(paths, fs.FilePath())
		}
	}
	return paths
}
