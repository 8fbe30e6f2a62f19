package cmd

import (
	"errors"
	"fmt"

	"extswap/internal/commands"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Write .extswap.yaml (or the --config path) with the default roots,
suffixes and rewrite rules. An existing file is only touched with --force,
which rewrites it in the current format and keeps its settings.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().
		Bool("force", false, "Rewrite an existing configuration file")
}

func runInit(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return errors.New("application not initialized")
	}

	force, _ := cmd.Flags().GetBool("force")

	initCommand := commands.NewInitCommand(app.ConfigRepo, app.FileSystem, app.Logger)
	result, err := initCommand.Execute(cmd.Context(), commands.InitRequest{Force: force})
	if err != nil {
		return err
	}

	if result.Upgraded {
		fmt.Fprintf(cmd.OutOrStdout(), "Rewrote configuration file: %s\n", result.Path)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", result.Path)
	}
	return nil
}
