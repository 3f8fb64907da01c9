// Package cmd provides the root command and CLI setup for termite.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"termite.dev/pkg/termite/internal/adapter"
	"termite.dev/pkg/termite/internal/controller"
	"termite.dev/pkg/termite/internal/domain"
	m "termite.dev/pkg/termite/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var watchAdapter adapter.WatchAdapter
var workflow domain.Workflow
var ui controller.UI

// includePatterns and excludePatterns are root-level flags that filter the
// discovered files for every command.
var includePatterns []string
var excludePatterns []string

var parallelFlag int
var quietFlag bool
var verboseFlag bool
var logFileFlag string

func init() {
	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore()
	watchAdapter = adapter.NewFSNotifyWatchAdapter()
	workflow = domain.NewWorkflow(fsAdapter, reportStore, watchAdapter, ui)
}

const pathPatternsHelp = `Paths may be files or directories:
  - (none)          scan the current directory
  - ./src           recursively scan src
  - ./src/lib.rs    scan a single file
Directories are filtered with --include and --exclude globs ("**/*.rs").`

const rootLongDescription = `Termite turns plain mentions of declared names in /// documentation
comments into cross-reference links. It scans a source tree, collects the
names of functions, types, enums, structs, traits and imports, and rewrites
every doc line that mentions one of them so the name reads as [` + "`Name`" + `].

` + pathPatternsHelp

const reportLongDescription = `Scan the given paths and show documentation statistics: files, doc-comment
lines, declarations per kind and the size of the identifier registry.
No file is modified.

` + pathPatternsHelp

const previewLongDescription = `Show the doc-comment rewrites termite would make as a unified diff.
No file is modified.

` + pathPatternsHelp

const fixLongDescription = `Rewrite doc comments in place, linking every mention of a declared name.
Files without changes are not touched.

` + pathPatternsHelp

const watchLongDescription = `Run a preview (or, with --write, a fix) and repeat it whenever a matching
file changes. Stop with Ctrl+C.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "termite",
		Short:        "Doc-comment cross-reference linker",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
			slog.Debug("Starting command", "command", cmd.Name(), "config", viper.ConfigFileUsed())

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

// configureRootFlags registers the persistent flags. Defaults are static
// because flags are created before the config file is read; the bound
// viper keys still resolve flag, env, config and default in that order.
func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringArrayVarP(&includePatterns, includeFlagName, "i", defaultInclude, "include files matching glob (can be repeated)")
	bindFlagToConfig(flags.Lookup(includeFlagName), includeConfigKey)

	flags.StringArrayVarP(&excludePatterns, excludeFlagName, "x", defaultExclude, "exclude files matching glob (can be repeated)")
	bindFlagToConfig(flags.Lookup(excludeFlagName), excludeConfigKey)

	flags.IntVarP(&parallelFlag, runParallelFlagName, "p", runtime.NumCPU(), "number of files processed in parallel")
	bindFlagToConfig(flags.Lookup(runParallelFlagName), runParallelConfigKey)

	flags.BoolVarP(&quietFlag, quietFlagName, "q", false, "only print the summary")
	bindFlagToConfig(flags.Lookup(quietFlagName), quietConfigKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)

	flags.StringVar(&logFileFlag, logFileFlagName, defaultLogFilename, "log file path")
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrPartialFailure):
		return 2
	default:
		return 1
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// scanArgs collects the discovery and rules settings shared by every command.
func scanArgs(args []string) domain.ScanArgs {
	return domain.ScanArgs{
		Paths:     parsePaths(args),
		Include:   viper.GetStringSlice(includeConfigKey),
		Exclude:   viper.GetStringSlice(excludeConfigKey),
		Threads:   viper.GetInt(runParallelConfigKey),
		Stopwords: viper.GetStringSlice(stopwordsConfigKey),
		Always:    viper.GetStringSlice(alwaysConfigKey),
		MinLength: viper.GetInt(minLengthConfigKey),
		DocSigil:  viper.GetString(docSigilConfigKey),
	}
}

func runArgs(args []string) domain.RunArgs {
	return domain.RunArgs{
		ScanArgs: scanArgs(args),
		Quiet:    viper.GetBool(quietConfigKey),
	}
}
