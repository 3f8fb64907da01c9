package cmd

import (
	"github.com/spf13/cobra"
)

var previewFullFlag bool

// previewCmd represents the preview command.
var previewCmd = newPreviewCmd()

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [paths...]",
		Short: "Show the rewrites without writing them",
		Long:  previewLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := runArgs(args)
			opts.Full = previewFullFlag

			return workflow.Preview(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&previewFullFlag, fullFlagName, false, "print whole rewritten files instead of diffs")

	return cmd
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
