package cmd

import (
	"github.com/spf13/cobra"
)

// fixCmd represents the fix command.
var fixCmd = newFixCmd()

func newFixCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Rewrite doc comments in place",
		Long:  fixLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Fix(cmd.Context(), runArgs(args))
		},
	}
}

func init() {
	rootCmd.AddCommand(fixCmd)
}
