// Package bundle concatenates the selected files of a project into a single
// text artifact, each file framed by a header naming its relative path.
package bundle

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/harrison/bundler/internal/filelock"
	"github.com/harrison/bundler/internal/fileutil"
	"github.com/harrison/bundler/internal/policy"
)

// Observer receives per-file progress while a run is in flight.
type Observer interface {
	FileAdded(n int, path string, size int)
	FileFailed(path string, err error)
}

type nopObserver struct{}

func (nopObserver) FileAdded(int, string, int) {}
func (nopObserver) FileFailed(string, error)   {}

// Options configures a run. The zero value writes policy.DefaultOutputName
// in the working directory.
type Options struct {
	// Output is the artifact path
	Output string
	// SeparatorWidth is the rule line length (0 = DefaultSeparatorWidth)
	SeparatorWidth int
	// Observer is notified for every included or failed file (nil = silent)
	Observer Observer
}

// Failure is a candidate file that could not be bundled.
type Failure struct {
	Path   string `yaml:"path"`
	Reason string `yaml:"reason"`
	Err    error  `yaml:"-"`
}

// Result summarizes a completed run.
type Result struct {
	Root          string
	Output        string
	IncludedCount int
	// Files lists the bundled paths in artifact order
	Files    []string
	Failures []Failure
	// Bytes is the artifact size
	Bytes int64
	// Checksum is the xxhash64 of the artifact, hex encoded
	Checksum string
	Duration time.Duration
}

// Run bundles every file under root that p selects into opts.Output.
//
// Run fails with a *SetupError only when root cannot be opened for
// traversal or the output cannot be locked, created or written. A file
// that cannot be read as UTF-8 text is recorded in Result.Failures and the
// run continues.
func Run(root string, p policy.Policy, opts Options) (*Result, error) {
	start := time.Now()

	output := opts.Output
	if output == "" {
		output = policy.DefaultOutputName
	}
	observer := opts.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	if err := checkRoot(root); err != nil {
		return nil, &SetupError{Stage: StageRoot, Path: root, Err: err}
	}

	lock := filelock.ForTarget(output)
	if err := lock.Acquire(); err != nil {
		// Only contention is a lock failure; anything else means the output
		// location itself is unusable.
		stage := StageOutput
		if errors.Is(err, filelock.ErrLocked) {
			stage = StageLock
		}
		return nil, &SetupError{Stage: stage, Path: output, Err: err}
	}
	defer lock.Unlock()

	file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, &SetupError{Stage: StageOutput, Path: output, Err: err}
	}
	defer file.Close()

	outputAbs, err := filepath.Abs(output)
	if err != nil {
		return nil, &SetupError{Stage: StageOutput, Path: output, Err: err}
	}
	lockAbs, err := filepath.Abs(lock.Path())
	if err != nil {
		return nil, &SetupError{Stage: StageLock, Path: lock.Path(), Err: err}
	}

	buffered := bufio.NewWriter(file)
	digest := xxhash.New()
	counter := &countingWriter{w: io.MultiWriter(buffered, digest)}
	frames := NewFrameWriter(counter, opts.SeparatorWidth)

	result := &Result{
		Root:     root,
		Output:   output,
		Files:    make([]string, 0),
		Failures: make([]Failure, 0),
	}

	fail := func(rel string, err error) {
		result.Failures = append(result.Failures, Failure{Path: rel, Reason: err.Error(), Err: err})
		observer.FileFailed(rel, err)
	}

	walkOpts := fileutil.WalkOptions{
		SkipDir: p.SkipsDir,
		OnDirError: func(rel string, err error) {
			fail(rel, &FileReadError{Path: rel, Err: err})
		},
	}

	err = fileutil.Walk(root, walkOpts, func(e fileutil.Entry) error {
		if !p.IncludesFile(e.Name) {
			return nil
		}
		// A renamed output inside the tree must not bundle itself or its lock.
		if fileutil.SamePath(e.Path, outputAbs) || fileutil.SamePath(e.Path, lockAbs) {
			return nil
		}

		content, err := ReadText(e.Path)
		if err != nil {
			fail(e.Rel, &FileReadError{Path: e.Rel, Err: err})
			return nil
		}

		if err := frames.WriteEntry(Entry{Path: e.Rel, Content: content}); err != nil {
			return &SetupError{Stage: StageOutput, Path: output, Err: err}
		}

		result.IncludedCount++
		result.Files = append(result.Files, e.Rel)
		observer.FileAdded(result.IncludedCount, e.Rel, len(content))
		return nil
	})
	if err != nil {
		var se *SetupError
		if errors.As(err, &se) {
			return nil, se
		}
		return nil, &SetupError{Stage: StageRoot, Path: root, Err: err}
	}

	if err := buffered.Flush(); err != nil {
		return nil, &SetupError{Stage: StageOutput, Path: output, Err: fmt.Errorf("failed to flush: %w", err)}
	}
	if err := file.Close(); err != nil {
		return nil, &SetupError{Stage: StageOutput, Path: output, Err: fmt.Errorf("failed to close: %w", err)}
	}

	result.Bytes = counter.n
	result.Checksum = fmt.Sprintf("%016x", digest.Sum64())
	result.Duration = time.Since(start)
	return result, nil
}

// checkRoot verifies root is a directory this process can list.
func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory")
	}
	dir, err := os.Open(root)
	if err != nil {
		return err
	}
	defer dir.Close()
	if _, err := dir.Readdirnames(1); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// ReadText reads path in full and returns it as a string. Content holding
// a NUL byte yields ErrBinaryContent; content that is not valid UTF-8
// yields ErrInvalidUTF8.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return "", ErrBinaryContent
	}
	if !utf8.Valid(data) {
		return "", ErrInvalidUTF8
	}
	return string(data), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
