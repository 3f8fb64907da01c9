package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"termite.dev/pkg/termite/internal/adapter"
	"termite.dev/pkg/termite/internal/domain"
)

var watchWriteFlag bool
var watchDebounceFlag time.Duration

// watchCmd represents the watch command.
var watchCmd = newWatchCmd()

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Preview or fix again whenever a source file changes",
		Long:  watchLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Watch(cmd.Context(), domain.WatchArgs{
				RunArgs:  runArgs(args),
				Write:    viper.GetBool(watchWriteConfigKey),
				Debounce: configDuration(debounceConfigKey, adapter.DefaultDebounce),
			})
		},
	}

	configureWatchFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func configureWatchFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&watchWriteFlag, writeFlagName, "w", false, "write the rewrites instead of previewing them")
	bindFlagToConfig(cmd.Flags().Lookup(writeFlagName), watchWriteConfigKey)
	cmd.Flags().DurationVar(&watchDebounceFlag, debounceFlagName, adapter.DefaultDebounce, "quiet period before a changed tree is scanned again")
	bindFlagToConfig(cmd.Flags().Lookup(debounceFlagName), debounceConfigKey)
}
