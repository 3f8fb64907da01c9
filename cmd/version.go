package cmd

import (
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the build version and Go version used to build this tool.",
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			if !ok || info.Main.Version == "" {
				cmd.Println("version: unknown")
				return
			}

			cmd.Println("tool version\t", colorVersion(info.Main.Version))
			cmd.Println("go version\t", info.GoVersion)
		},
	}
}

// colorVersion colours the major, minor and patch numbers of a semantic
// version. Anything else is returned unchanged.
func colorVersion(version string) string {
	core, suffix := version, ""
	if i := strings.IndexAny(version, "-+"); i >= 0 {
		core, suffix = version[:i], version[i:]
	}

	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return version
	}

	return versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(parts[2]) + suffix
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
