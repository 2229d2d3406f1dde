package main

import (
	"log/slog"
	"os"

	"github.com/cwhicks/siteingest/cmd"
	"github.com/cwhicks/siteingest/internal/conf"
	"github.com/cwhicks/siteingest/internal/logging"
)

func main() {
	logging.Init()

	settings, err := conf.Load()
	if err != nil {
		logging.Error("error loading configuration", "error", err)
		os.Exit(1)
	}

	if settings.Debug {
		logging.SetLevel(slog.LevelDebug)
	}

	closeFileLogger := setupFileLogging(settings)
	defer closeFileLogger()

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		logging.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// setupFileLogging redirects the default logger to a rotated log file when
// file logging is enabled. Returns a close function for the log writer.
func setupFileLogging(settings *conf.Settings) func() {
	logConf := settings.Main.Log
	if !logConf.Enabled {
		return func() {}
	}

	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}

	fileLogger, closeFunc, err := logging.NewFileLogger(
		logConf.Path, settings.Main.Name, level,
		logConf.MaxSize, logConf.MaxBackups, logConf.MaxAge)
	if err != nil {
		logging.Warn("file logging disabled", "path", logConf.Path, "error", err)
		return func() {}
	}

	slog.SetDefault(fileLogger)
	return func() {
		if err := closeFunc(); err != nil {
			logging.Warn("failed to close log writer", "error", err)
		}
	}
}
