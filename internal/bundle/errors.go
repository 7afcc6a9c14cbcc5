package bundle

import (
	"errors"
	"fmt"
	"strings"
)

// SetupStage identifies which part of run setup failed.
type SetupStage int

const (
	// StageRoot represents errors opening the root directory for traversal.
	StageRoot SetupStage = iota
	// StageLock represents errors acquiring the output lock.
	StageLock
	// StageOutput represents errors creating or writing the output artifact.
	StageOutput
)

// String returns the string representation of SetupStage.
func (s SetupStage) String() string {
	switch s {
	case StageRoot:
		return "root"
	case StageLock:
		return "lock"
	case StageOutput:
		return "output"
	default:
		return "unknown"
	}
}

// Sentinel causes for files that are not text.
var (
	ErrBinaryContent = errors.New("binary content")
	ErrInvalidUTF8   = errors.New("not valid UTF-8 text")
)

// SetupError is a fatal error: the run cannot produce an artifact.
type SetupError struct {
	Stage SetupStage // Where setup failed
	Path  string     // Root directory or output path involved
	Err   error      // Underlying error
}

// Error implements the error interface for SetupError.
func (e *SetupError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %s", e.Stage, e.Path))
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return sb.String()
}

// Unwrap returns the underlying error for error wrapping support.
func (e *SetupError) Unwrap() error {
	return e.Err
}

// FileReadError is a recoverable error for one candidate file. The run
// records it and moves on.
type FileReadError struct {
	Path string // Path relative to the root
	Err  error  // Underlying error
}

// Error implements the error interface for FileReadError.
func (e *FileReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for error wrapping support.
func (e *FileReadError) Unwrap() error {
	return e.Err
}
