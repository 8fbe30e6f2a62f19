package cmd

import (
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var checkCmd = &cobra.Command{
	Use:   "check [roots...]",
	Short: "Fail when any file still has imports to rewrite",
	Long: `Scan the roots like the root command without writing anything.
Every file that would change is reported as "Would update <path>" and the
command exits non-zero when there is at least one.`,
	Args: cobra.ArbitraryArgs,
	RunE: runCheck,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(checkCmd)
	addRewriteFlags(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	return rewrite(cmd, args, true)
}
