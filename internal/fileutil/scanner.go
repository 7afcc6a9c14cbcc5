package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// WalkOptions configures Walk
type WalkOptions struct {
	// SkipDir reports whether a directory basename is pruned before descent.
	// A nil SkipDir descends everywhere.
	SkipDir func(name string) bool
	// OnDirError receives listing failures below the root. The walk
	// continues with the next sibling. A nil OnDirError drops them.
	OnDirError func(rel string, err error)
}

// Entry is a file handed to a VisitFunc
type Entry struct {
	// Path is the file path joined onto the root as given to Walk
	Path string
	// Rel is the path relative to the root, always slash-separated
	Rel string
	// Name is the basename
	Name string
}

// VisitFunc is called once per file. Returning an error stops the walk and
// Walk returns it unchanged.
type VisitFunc func(entry Entry) error

// Walk traverses root top-down. In every directory the files are visited
// first in lexicographic order, then each subdirectory that SkipDir does not
// prune is walked, also in lexicographic order. Pruned directories are never
// listed. Only regular files and symlinks are visited.
//
// A root that cannot be listed is a fatal error. Listing errors in
// subdirectories go to OnDirError.
func Walk(root string, opts WalkOptions, visit VisitFunc) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", root, err)
	}

	w := &walker{root: root, opts: opts, visit: visit}
	return w.walkEntries(root, "", entries)
}

type walker struct {
	root  string
	opts  WalkOptions
	visit VisitFunc
}

func (w *walker) walkDir(dir, rel string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// ReadDir may return a partial listing; a directory that failed
		// half way is reported and dropped as a whole.
		if w.opts.OnDirError != nil {
			w.opts.OnDirError(rel, err)
		}
		return nil
	}
	return w.walkEntries(dir, rel, entries)
}

func (w *walker) walkEntries(dir, rel string, entries []fs.DirEntry) error {
	var subdirs []fs.DirEntry

	// os.ReadDir sorts by filename, so both passes run in lexicographic order.
	for _, d := range entries {
		if d.IsDir() {
			subdirs = append(subdirs, d)
			continue
		}
		if !isVisitable(dir, d) {
			continue
		}
		entry := Entry{
			Path: filepath.Join(dir, d.Name()),
			Rel:  joinRel(rel, d.Name()),
			Name: d.Name(),
		}
		if err := w.visit(entry); err != nil {
			return err
		}
	}

	for _, d := range subdirs {
		if w.opts.SkipDir != nil && w.opts.SkipDir(d.Name()) {
			continue
		}
		if err := w.walkDir(filepath.Join(dir, d.Name()), joinRel(rel, d.Name())); err != nil {
			return err
		}
	}
	return nil
}

// isVisitable filters out pipes, sockets and devices; reading those would
// block or return garbage. Symlinks are visited unless they point at a
// directory. A dangling symlink is visited so the read failure is reported.
func isVisitable(dir string, d fs.DirEntry) bool {
	t := d.Type()
	if t.IsRegular() {
		return true
	}
	if t&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, d.Name()))
	return err != nil || !info.IsDir()
}

func joinRel(rel, name string) string {
	if rel == "" {
		return name
	}
	return rel + "/" + name
}

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// Include reports whether a file basename is selected. Nil selects all files.
	Include func(name string) bool
	// SkipDir reports whether a directory basename is pruned (see WalkOptions)
	SkipDir func(name string) bool
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Files contains slash-separated paths relative to the scanned
	// directory, in walk order
	Files []string
	// Errors contains any errors encountered during scanning
	Errors []error
}

// ScanDirectory lists the files Walk would visit that Include selects,
// without reading any of them.
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	result := &ScanResult{
		Files:  make([]string, 0),
		Errors: make([]error, 0),
	}

	walkOpts := WalkOptions{
		SkipDir: opts.SkipDir,
		OnDirError: func(rel string, err error) {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", rel, err))
		},
	}

	err := Walk(dir, walkOpts, func(e Entry) error {
		if opts.Include != nil && !opts.Include(e.Name) {
			return nil
		}
		result.Files = append(result.Files, e.Rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// SamePath reports whether two paths resolve to the same absolute path.
func SamePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return false
	}
	return absA == absB
}
