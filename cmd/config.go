package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
	"termite.dev/pkg/termite/internal/adapter"
	"termite.dev/pkg/termite/internal/controller"
	"termite.dev/pkg/termite/internal/domain/rules"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "termite"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	includeFlagName     = "include"
	excludeFlagName     = "exclude"
	runParallelFlagName = "parallel"
	quietFlagName       = "quiet"
	verboseFlagName     = "verbose"
	logFileFlagName     = "log-file"
	formatFlagName      = "format"
	saveFlagName        = "save"
	fullFlagName        = "full"
	writeFlagName       = "write"
	debounceFlagName    = "debounce"

	includeConfigKey     = "paths.include"
	excludeConfigKey     = "paths.exclude"
	runParallelConfigKey = "run.parallel"
	quietConfigKey       = "quiet"
	stopwordsConfigKey   = "linker.stopwords"
	alwaysConfigKey      = "linker.always"
	minLengthConfigKey   = "linker.min_length"
	docSigilConfigKey    = "linker.doc_sigil"
	debounceConfigKey    = "watch.debounce"
	watchWriteConfigKey  = "watch.write"
	reportFormatKey      = "report.format"

	envPrefix = "TERMITE"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".termite.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var (
	defaultInclude = []string{"**/*.rs"}
	defaultExclude = []string{"target/**", "**/target/**", ".git/**"}
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(includeConfigKey, defaultInclude)
	viper.SetDefault(excludeConfigKey, defaultExclude)
	viper.SetDefault(runParallelConfigKey, runtime.NumCPU())
	viper.SetDefault(quietConfigKey, false)

	viper.SetDefault(stopwordsConfigKey, rules.DefaultStopwords)
	viper.SetDefault(alwaysConfigKey, rules.DefaultAlways)
	viper.SetDefault(minLengthConfigKey, rules.DefaultMinLength)
	viper.SetDefault(docSigilConfigKey, rules.DefaultDocSigil)

	viper.SetDefault(debounceConfigKey, adapter.DefaultDebounce)
	viper.SetDefault(watchWriteConfigKey, false)
	viper.SetDefault(reportFormatKey, controller.FormatTable)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

// configDuration reads a duration key ("750ms", "2s"), falling back when the
// value is missing, malformed or not positive.
func configDuration(key string, fallback time.Duration) time.Duration {
	d := viper.GetDuration(key)
	if d <= 0 {
		return fallback
	}

	return d
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Numeric slog levels are accepted too (-4 is debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
