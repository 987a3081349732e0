package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/theme-sync/internal/apply"
	"github.com/jmylchreest/theme-sync/internal/config"
	"github.com/jmylchreest/theme-sync/internal/source"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		source     string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "theme-sync",
	Short: "Synchronize theme choices across tools",
	Long: `theme-sync keeps the light/dark theme of your tools in line with the
desktop-wide color scheme preference.

Each configured application names a file under your home directory and a pair
of tokens. Switching to dark replaces the light token with the dark token (and
the reverse for light), then runs the application's optional reload command.

Use "monitor" to follow preference changes, or "set" to apply once.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath, os.LookupEnv)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger.Debug("configuration loaded", "apps", len(cfg.Apps))

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&globalOpts.configPath, "config", "c", "",
		"Path to config file (default: ~/.config/theme-sync/default-config.yml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.source, "source", "",
		"Preference source: gsettings or portal (default: from config, else gsettings)")

	_ = rootCmd.RegisterFlagCompletionFunc("source", cobra.FixedCompletions(
		[]string{config.SourceGSettings, config.SourcePortal}, cobra.ShellCompDirectiveNoFileComp))
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelInfo
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// newSource returns the preference source chosen by flag or config.
func newSource() (source.Source, error) {
	name := globalOpts.source
	if name == "" {
		name = cfg.Source
	}
	return source.New(name, logger)
}

// newApplier returns an Applier reading the live process environment.
func newApplier() *apply.Applier {
	return apply.NewApplier(logger, apply.WithLookup(os.LookupEnv))
}
