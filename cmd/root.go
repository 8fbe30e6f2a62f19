package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"extswap/internal/app"
	"extswap/internal/commands"
	apperrors "extswap/internal/errors"
	"extswap/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "EXTSWAP"

//nolint:gochecknoglobals // Cobra CLI pattern for persistent flag variables
var (
	cfgFile string
	verbose bool

	application *app.App
)

// VersionInfo holds build information.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
	BuiltBy string
}

//nolint:gochecknoglobals // Package-level version info for CLI commands
var versionInfo = VersionInfo{
	Version: "dev",
	Commit:  "none",
	Date:    "unknown",
	BuiltBy: "unknown",
}

// SetVersionInfo updates the build information.
func SetVersionInfo(v, c, d, b string) {
	versionInfo.Version = v
	versionInfo.Commit = c
	versionInfo.Date = d
	versionInfo.BuiltBy = b
}

// GetVersionInfo returns the current version information.
func GetVersionInfo() VersionInfo {
	return versionInfo
}

// GetApp returns the initialized application instance.
func GetApp() *app.App {
	return application
}

//nolint:gochecknoglobals // Cobra CLI pattern for root command
var rootCmd = &cobra.Command{
	Use:   "extswap [roots...]",
	Short: "Rewrite .js import specifiers to .ts in SvelteKit library sources",
	Long: `Extswap walks src/lib and frontend/src/lib and rewrites import specifiers
that use the $lib alias or a relative path and end in .js so they end in .ts.
Only .svelte and .ts files are touched, and every rewritten file is reported
on stdout as "Updating <path>".

Positional arguments replace the default roots.`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         runRewrite,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra CLI pattern for flag initialization
func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default is ./.extswap.yaml)")
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().
		String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().
		String("log-format", "auto", "Log format (auto, text, json)")

	addRewriteFlags(rootCmd)
	rootCmd.Flags().
		Bool("dry-run", false, "Report files that would change without writing them")
}

// addRewriteFlags registers the flags shared by the root command and check.
func addRewriteFlags(cmd *cobra.Command) {
	cmd.Flags().
		StringSlice("exclude", []string{}, "Exclude paths matching regex pattern, relative to the root (can be specified multiple times)")
	cmd.Flags().
		Bool("diff", false, "Print a unified diff of every change")
}

func bindEnv() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	for _, name := range []string{"config", "verbose", "log-level", "log-format"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

func initConfig() {
	bindEnv()

	opts, err := appOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	// Initialize the application with dependency injection
	application, err = app.NewApp(context.Background(), opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}
}

// appOptions translates flags and EXTSWAP_* variables into app options.
func appOptions() ([]app.Option, error) {
	level, err := logging.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(viper.GetString("log-format"))
	if err != nil {
		return nil, err
	}

	opts := []app.Option{
		app.WithLogLevel(level),
		app.WithLogFormat(format),
		app.WithLogOutput(rootCmd.ErrOrStderr()),
		app.WithStdout(rootCmd.OutOrStdout()),
		app.WithConfigPath(viper.GetString("config")),
	}
	if viper.GetBool("verbose") {
		opts = append(opts, app.WithVerbose(true))
	}
	return opts, nil
}

func runRewrite(cmd *cobra.Command, args []string) error {
	return rewrite(cmd, args, false)
}

func rewrite(cmd *cobra.Command, args []string, check bool) error {
	app := GetApp()
	if app == nil {
		return errors.New("application not initialized")
	}

	excludePatterns, _ := cmd.Flags().GetStringSlice("exclude")
	diff, _ := cmd.Flags().GetBool("diff")
	dryRun := check
	if !check {
		dryRun, _ = cmd.Flags().GetBool("dry-run")
	}

	if len(excludePatterns) > 0 {
		app.Logger.Debug("Exclude patterns received from CLI",
			"patterns", excludePatterns,
			"count", len(excludePatterns))
	}

	rewriteCommand := commands.NewRewriteCommand(
		app.ConfigRepo,
		app.FileSystem,
		app.Stdout,
		app.Logger,
	)

	report, err := rewriteCommand.Execute(cmd.Context(), commands.RewriteRequest{
		Roots:           args,
		ExcludePatterns: excludePatterns,
		DryRun:          dryRun,
		Diff:            diff,
	})
	if err != nil {
		switch {
		case report != nil && len(report.Failures) > 0:
			return fmt.Errorf("%d file(s) could not be processed: %w", len(report.Failures), err)
		case apperrors.IsConfiguration(err):
			return fmt.Errorf("invalid configuration %s: %w", app.ConfigRepo.ConfigPath(), err)
		}
		return err
	}

	if check && len(report.Changed) > 0 {
		return fmt.Errorf("%d file(s) have imports to rewrite", len(report.Changed))
	}
	return nil
}
