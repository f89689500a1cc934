// Package cmd provides the inlinescripts command-line interface.
//
// Configuration System:
//
//	Settings are resolved from several sources, highest priority first:
//	1. Command-line flags (--config, --log-level, ...)
//	2. INLINESCRIPTS_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (INLINESCRIPTS_OUTPUT_MINIFY, ...)
//	4. Configuration file (.inlinescripts.yml)
//
// Environment Variables:
//
//	INLINESCRIPTS_CONFIG_FILE: Path to custom configuration file
//	INLINESCRIPTS_SCRIPTS_DIRECTORY: Base directory for bundle files
//	INLINESCRIPTS_OUTPUT_MINIFY: Minify rendered code
//	INLINESCRIPTS_LOG_LEVEL: Log level
//	And others following the INLINESCRIPTS_<SECTION>_<OPTION> pattern
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/conneroisu/inlinescripts/internal/config"
	"github.com/conneroisu/inlinescripts/internal/errors"
	"github.com/conneroisu/inlinescripts/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "inlinescripts",
	Short: "Render bundles of JavaScript templates into inline script tags",
	Long: `inlinescripts combines JavaScript template files into a single inline
<script> tag with a stable, content-hashed id. Templates may contain
placeholder tokens such as __FUNCTION_NAME__ or __DARK__ that are substituted
at render time.

Quick Start:
  inlinescripts render js/init.js js/switch.js     Render files as one tag
  inlinescripts render --preset three-states       Render a shipped preset
  inlinescripts render --bundle theme --out x.html Render a configured bundle
  inlinescripts list                               List configured bundles
  inlinescripts watch --bundle theme --out x.html  Re-render on change`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		handler := errors.NewErrorHandler(logging.NewLogger(&logging.LoggerConfig{
			Level:  logging.LevelDebug,
			Format: "text",
			Output: os.Stderr,
		}))
		handler.Handle(context.Background(), err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .inlinescripts.yml, can also use INLINESCRIPTS_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "log format (text, json)")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig initializes the configuration system.
//
// Configuration file priority (highest to lowest):
//  1. --config flag
//  2. INLINESCRIPTS_CONFIG_FILE environment variable
//  3. .inlinescripts.yml in the current directory
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("INLINESCRIPTS_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".inlinescripts")
	}

	viper.SetEnvPrefix("INLINESCRIPTS")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing config file is fine; defaults apply.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadRuntime loads the configuration and builds a logger writing to w.
func loadRuntime(w io.Writer) (*config.Config, *logging.ScriptsLogger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	loggerConfig := cfg.LoggerConfig()
	loggerConfig.Output = w
	loggerConfig.Component = "cli"

	return cfg, logging.NewLogger(loggerConfig), nil
}

// commandContext returns the command's context, or a background context for
// commands executed outside cobra's Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
