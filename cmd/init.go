package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const forceFlagName = "force"

// initSummaryKeys are the linker settings echoed after the file is written.
var initSummaryKeys = []string{
	includeConfigKey,
	excludeConfigKey,
	runParallelConfigKey,
	docSigilConfigKey,
	minLengthConfigKey,
	stopwordsConfigKey,
	alwaysConfigKey,
	debounceConfigKey,
}

var initForceFlag bool

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default termite.yaml configuration file",
		Long: `Create a termite.yaml in the current working directory holding the current
settings: discovery globs, the doc-comment sigil, the stopword and
always-link lists, the minimum identifier length, watch and log options.
An existing file is kept unless --force is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			write := viper.SafeWriteConfigAs
			if initForceFlag {
				write = viper.WriteConfigAs
			}

			if err := write(targetPath); err != nil {
				return fmt.Errorf("write %s: %w", targetPath, err)
			}

			cmd.Printf("Wrote %s\n", targetPath)
			printInitSummary(cmd.OutOrStdout())

			return nil
		},
	}

	cmd.Flags().BoolVar(&initForceFlag, forceFlagName, false, "overwrite an existing termite.yaml")

	return cmd
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func printInitSummary(out io.Writer) {
	for _, key := range initSummaryKeys {
		var value string

		switch v := viper.Get(key).(type) {
		case []string, []any:
			value = strings.Join(viper.GetStringSlice(key), ", ")
		default:
			value = fmt.Sprint(v)
		}

		_, _ = fmt.Fprintf(out, "  %-18s %s\n", key, value)
	}
}
