package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/bundler/internal/bundle"
)

// FileLogger logs bundle runs to files in a log directory.
// It creates a timestamped per-run log file and maintains a latest.log
// symlink pointing to the most recent run. Every run gets a random run ID
// written into its header so reports and logs can be matched up.
// It is thread-safe and supports log level filtering.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	runID    string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a new FileLogger in logDir with the given level.
// It creates the log directory if it doesn't exist, opens a timestamped
// run log file, and creates/updates the latest.log symlink.
func NewFileLogger(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	runID := uuid.NewString()

	// run-YYYYMMDD-HHMMSS-<id8>.log; the ID prefix keeps two runs in the
	// same second apart.
	ts := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s-%s.log", ts, runID[:8]))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")

	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}

	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	logger := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		runID:    runID,
		logLevel: normalizeLogLevel(logLevel),
		mu:       sync.Mutex{},
	}

	logger.writeRunLog("=== Bundler Run Log ===\n")
	logger.writeRunLog(fmt.Sprintf("Run ID: %s\n", runID))
	logger.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return logger, nil
}

// RunID returns the identifier written into this run's log header.
func (fl *FileLogger) RunID() string {
	return fl.runID
}

// RunFile returns the path of this run's log file.
func (fl *FileLogger) RunFile() string {
	return fl.runFile
}

// shouldLog checks if a message at the given level should be logged.
// Returns true if messageLevel >= configured logLevel.
func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

// logWithLevel is a helper that logs a message at the specified level if filtering allows it.
func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}

	formatted := fmt.Sprintf("[%s] [%s] %s\n", time.Now().Format("15:04:05"), level, message)
	fl.writeRunLog(formatted)
}

// LogRunStart records the root and output of the run.
func (fl *FileLogger) LogRunStart(root, output string) {
	fl.LogInfo(fmt.Sprintf("Bundling %s into %s", root, output))
}

// FileAdded records a bundled file at DEBUG level; the summary carries
// the full list.
func (fl *FileLogger) FileAdded(n int, path string, size int) {
	fl.LogDebug(fmt.Sprintf("Added [%d] %s (%d bytes)", n, path, size))
}

// FileFailed records a skipped file at WARN level.
func (fl *FileLogger) FileFailed(path string, err error) {
	fl.LogWarn(fmt.Sprintf("Skipped %s: %v", path, err))
}

// LogSummary logs the run summary with the bundled file list at INFO level.
func (fl *FileLogger) LogSummary(result *bundle.Result) {
	if result == nil || !fl.shouldLog("info") {
		return
	}

	timestamp := time.Now().Format("15:04:05")

	status := "SUCCESS"
	if len(result.Failures) > 0 {
		status = "PARTIAL"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n[%s] === BUNDLE SUMMARY ===\n", timestamp)
	fmt.Fprintf(&b, "[%s] Run ID:       %s\n", timestamp, fl.runID)
	fmt.Fprintf(&b, "[%s] Root:         %s\n", timestamp, result.Root)
	fmt.Fprintf(&b, "[%s] Output:       %s\n", timestamp, result.Output)
	fmt.Fprintf(&b, "[%s] Files:        %d\n", timestamp, result.IncludedCount)
	fmt.Fprintf(&b, "[%s] Skipped:      %d\n", timestamp, len(result.Failures))
	fmt.Fprintf(&b, "[%s] Bytes:        %d\n", timestamp, result.Bytes)
	fmt.Fprintf(&b, "[%s] Checksum:     %s\n", timestamp, result.Checksum)
	fmt.Fprintf(&b, "[%s] Total time:   %.3fs\n", timestamp, result.Duration.Seconds())
	fmt.Fprintf(&b, "[%s] Status:       %s\n", timestamp, status)
	fmt.Fprintf(&b, "[%s] Completed at: %s\n", timestamp, time.Now().Format(time.RFC3339))

	for _, path := range result.Files {
		fmt.Fprintf(&b, "[%s]   + %s\n", timestamp, path)
	}
	for _, f := range result.Failures {
		fmt.Fprintf(&b, "[%s]   ! %s: %s\n", timestamp, f.Path, f.Reason)
	}

	fl.writeRunLog(b.String())
}

// Close flushes and closes the run log file.
// It should be called when the logger is no longer needed.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}

	return nil
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
	}
}
