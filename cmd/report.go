package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"termite.dev/pkg/termite/internal/controller"
	"termite.dev/pkg/termite/internal/domain"
	m "termite.dev/pkg/termite/internal/model"
)

var reportFormatFlag string
var reportSaveFlag string

// reportCmd represents the report command.
var reportCmd = newReportCmd()

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [paths...]",
		Short: "Show documentation statistics",
		Long:  reportLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseReportFormat(viper.GetString(reportFormatKey))
			if err != nil {
				return err
			}

			return workflow.Report(cmd.Context(), domain.ReportArgs{
				ScanArgs: scanArgs(args),
				Format:   format,
				Save:     m.Path(strings.TrimSpace(reportSaveFlag)),
			})
		},
	}

	configureReportFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func configureReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&reportFormatFlag, formatFlagName, "f", controller.FormatTable, "output format (table|yaml)")
	bindFlagToConfig(cmd.Flags().Lookup(formatFlagName), reportFormatKey)
	cmd.Flags().StringVar(&reportSaveFlag, saveFlagName, "", "also write the report as YAML to this path")
}

// parseReportFormat validates the format before any file is scanned.
func parseReportFormat(format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		return controller.FormatTable, nil
	}

	switch format {
	case controller.FormatTable, controller.FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w %q (want %s or %s)", controller.ErrUnknownFormat, format, controller.FormatTable, controller.FormatYAML)
	}
}
