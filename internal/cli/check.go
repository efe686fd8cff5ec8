package cli

import (
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [relative-path/]original-name new-name",
	Short: "Verify a rename without changing anything",
	Long: `Runs every precondition a rename needs and reports the first one that
does not hold. Exits non-zero when a check fails.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRename(args, renameOptions{checkOnly: true})
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
