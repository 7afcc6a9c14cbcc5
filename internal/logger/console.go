// Package logger provides logging implementations for bundle runs.
//
// The logger package reports run progress per file and a final summary.
// Implementations are thread-safe and support console and file output.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/bundler/internal/bundle"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// Logger is what the commands log a run through. It also serves as the
// bundle.Observer for the run.
type Logger interface {
	bundle.Observer
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogRunStart(root, output string)
	LogSummary(result *bundle.Result)
}

// ConsoleLogger logs run progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// It supports log level filtering to control message verbosity.
// Color output is automatically enabled for terminal output (os.Stdout/os.Stderr).
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		mutex:       sync.Mutex{},
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
// Returns true for os.Stdout and os.Stderr when they are TTYs and NO_COLOR
// is not set.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}

	f, ok := w.(*os.File)
	if !ok || (f != os.Stdout && f != os.Stderr) {
		return false
	}

	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}

	return "info"
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// shouldLog checks if a message at the given level should be logged.
// Returns true if messageLevel >= configured logLevel.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
// Format: "[HH:MM:SS] [TRACE] <message>"
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// logWithLevel is a helper that logs a message at the specified level if filtering allows it.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}

	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string

	if cl.colorOutput {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, colorLevel(level), message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

// colorLevel wraps a level label in its ANSI color.
func colorLevel(level string) string {
	switch level {
	case "TRACE":
		return color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(level)
	case "INFO":
		return color.New(color.FgBlue).Sprint(level)
	case "WARN":
		return color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		return color.New(color.FgRed).Sprint(level)
	default:
		return level
	}
}

// LogRunStart logs the run header at INFO level.
// Format: "[HH:MM:SS] [INFO] Bundling <root> into <output>"
func (cl *ConsoleLogger) LogRunStart(root, output string) {
	if cl.colorOutput {
		output = color.New(color.Bold).Sprint(output)
	}
	cl.LogInfo(fmt.Sprintf("Bundling %s into %s", root, output))
}

// FileAdded logs a bundled file at INFO level.
// Format: "[HH:MM:SS] [INFO] Added [n] <path> (<size> bytes)"
func (cl *ConsoleLogger) FileAdded(n int, path string, size int) {
	cl.LogInfo(fmt.Sprintf("Added [%d] %s (%s)", n, path, formatBytes(int64(size))))
}

// FileFailed logs a skipped file at WARN level.
// Format: "[HH:MM:SS] [WARN] Skipped <path>: <reason>"
func (cl *ConsoleLogger) FileFailed(path string, err error) {
	cl.LogWarn(fmt.Sprintf("Skipped %s: %v", path, err))
}

// LogSummary logs the run summary at INFO level.
// Format: "[HH:MM:SS] === Bundle Summary ===\n[HH:MM:SS] Files: <n>\n..."
func (cl *ConsoleLogger) LogSummary(result *bundle.Result) {
	if cl.writer == nil || result == nil {
		return
	}

	if !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var output string

	if cl.colorOutput {
		header := color.New(color.Bold).Sprint("=== Bundle Summary ===")
		output = fmt.Sprintf("[%s] %s\n", ts, header)
		output += fmt.Sprintf("[%s] %s\n", ts, color.New(color.FgGreen).Sprintf("Files: %d", result.IncludedCount))
		if len(result.Failures) > 0 {
			output += fmt.Sprintf("[%s] %s\n", ts, color.New(color.FgRed).Sprintf("Skipped: %d", len(result.Failures)))
		} else {
			output += fmt.Sprintf("[%s] Skipped: 0\n", ts)
		}
	} else {
		output = fmt.Sprintf("[%s] === Bundle Summary ===\n", ts)
		output += fmt.Sprintf("[%s] Files: %d\n", ts, result.IncludedCount)
		output += fmt.Sprintf("[%s] Skipped: %d\n", ts, len(result.Failures))
	}

	output += fmt.Sprintf("[%s] Size: %s\n", ts, formatBytes(result.Bytes))
	output += fmt.Sprintf("[%s] Checksum: %s\n", ts, result.Checksum)
	output += fmt.Sprintf("[%s] Duration: %s\n", ts, formatDuration(result.Duration))
	output += fmt.Sprintf("[%s] Output: %s\n", ts, result.Output)

	if len(result.Failures) > 0 {
		output += fmt.Sprintf("[%s] Skipped files:\n", ts)
		for _, f := range result.Failures {
			path := f.Path
			if cl.colorOutput {
				path = color.New(color.FgRed).Sprint(path)
			}
			output += fmt.Sprintf("[%s]   - %s: %s\n", ts, path, f.Reason)
		}
	}

	cl.writer.Write([]byte(output))
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "120ms", "5s", "1m30s"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		minutes := d / time.Minute
		seconds := (d % time.Minute) / time.Second
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case d >= time.Second:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}

// formatBytes renders a byte count with a binary unit.
// Examples: "512 B", "1.5 KiB", "2.0 MiB"
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
