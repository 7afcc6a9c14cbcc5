package cmd

import (
	"fmt"

	"github.com/harrison/bundler/internal/bundle"
	"github.com/harrison/bundler/internal/display"
	"github.com/harrison/bundler/internal/logger"
	"github.com/spf13/cobra"
)

// runBundle implements the root command: one bundle run.
// Per-file read failures are reported but do not fail the command; only
// setup errors (unreadable root, unwritable output) do.
func runBundle(cmd *cobra.Command, args []string) error {
	root := rootArg(args)

	cfg, p, err := loadSettings(cmd, root)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var log logger.Logger = logger.NewConsoleLogger(out, cfg.LogLevel)

	var fileLog *logger.FileLogger
	if cfg.LogDir != "" {
		fileLog, err = logger.NewFileLogger(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to create file logger: %w", err)
		}
		defer fileLog.Close()

		log = &multiLogger{loggers: []logger.Logger{log, fileLog}}
	}

	log.LogRunStart(root, cfg.Output)
	log.LogDebug(fmt.Sprintf("Included extensions: %v", p.IncludedExtensions()))
	log.LogDebug(fmt.Sprintf("Ignored directories: %v", p.IgnoredDirectories()))
	log.LogDebug(fmt.Sprintf("Ignored files: %v", p.IgnoredFiles()))

	result, err := bundle.Run(root, p, bundle.Options{
		Output:         cfg.Output,
		SeparatorWidth: cfg.SeparatorWidth,
		Observer:       log,
	})
	if err != nil {
		err = fmt.Errorf("bundle failed: %w", err)
		// main prints the returned error; only the run log records it here.
		if fileLog != nil {
			fileLog.LogError(err.Error())
		}
		return err
	}

	log.LogSummary(result)

	if result.IncludedCount == 0 {
		display.WarnEmptyBundle(root, p.IncludedExtensions()).Display(out)
	}
	if len(result.Failures) > 0 {
		paths := make([]string, 0, len(result.Failures))
		for _, f := range result.Failures {
			paths = append(paths, f.Path)
		}
		display.WarnSkippedFiles(paths).Display(out)
	}

	if cfg.Report != "" {
		// The bundle itself is complete; a report failure is not fatal.
		rep := bundle.NewReport(result)
		if fileLog != nil {
			rep.RunID = fileLog.RunID()
			rep.RunLog = fileLog.RunFile()
		}
		if err := bundle.WriteReport(cfg.Report, rep); err != nil {
			log.LogError(err.Error())
		} else {
			log.LogInfo(fmt.Sprintf("Report written to %s", cfg.Report))
		}
	}

	return nil
}

// multiLogger implements logger.Logger by delegating to multiple loggers
type multiLogger struct {
	loggers []logger.Logger
}

// LogTrace forwards to all loggers
func (ml *multiLogger) LogTrace(message string) {
	for _, l := range ml.loggers {
		l.LogTrace(message)
	}
}

// LogDebug forwards to all loggers
func (ml *multiLogger) LogDebug(message string) {
	for _, l := range ml.loggers {
		l.LogDebug(message)
	}
}

// LogInfo forwards to all loggers
func (ml *multiLogger) LogInfo(message string) {
	for _, l := range ml.loggers {
		l.LogInfo(message)
	}
}

// LogWarn forwards to all loggers
func (ml *multiLogger) LogWarn(message string) {
	for _, l := range ml.loggers {
		l.LogWarn(message)
	}
}

// LogError forwards to all loggers
func (ml *multiLogger) LogError(message string) {
	for _, l := range ml.loggers {
		l.LogError(message)
	}
}

// LogRunStart forwards to all loggers
func (ml *multiLogger) LogRunStart(root, output string) {
	for _, l := range ml.loggers {
		l.LogRunStart(root, output)
	}
}

// FileAdded forwards to all loggers
func (ml *multiLogger) FileAdded(n int, path string, size int) {
	for _, l := range ml.loggers {
		l.FileAdded(n, path, size)
	}
}

// FileFailed forwards to all loggers
func (ml *multiLogger) FileFailed(path string, err error) {
	for _, l := range ml.loggers {
		l.FileFailed(path, err)
	}
}

// LogSummary forwards to all loggers
func (ml *multiLogger) LogSummary(result *bundle.Result) {
	for _, l := range ml.loggers {
		l.LogSummary(result)
	}
}
