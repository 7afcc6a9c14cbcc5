// Package fileutil provides the deterministic directory traversal used to
// build project bundles.
//
// # Purpose
//
// The fileutil package is designed for:
//   - Top-down traversal with files visited before subdirectories
//   - Directory pruning by basename before descent (pruned trees are never listed)
//   - Lexicographic ordering within every directory
//   - Error-tolerant scanning that collects non-fatal listing errors
//
// # Main Components
//
// Walk - streams every visitable file to a VisitFunc. The callback runs to
// completion before the next file is considered, so callers can read and
// write one file at a time.
//
// ScanDirectory - collects the relative paths Walk would visit, filtered by an
// Include predicate. Nothing is read.
//
// # Usage Examples
//
// Listing the files a policy selects:
//
//	result, err := fileutil.ScanDirectory("/path/to/project", fileutil.ScanOptions{
//	    Include: p.IncludesFile,
//	    SkipDir: p.SkipsDir,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, rel := range result.Files {
//	    fmt.Println(rel)
//	}
//
// Streaming files:
//
//	err := fileutil.Walk(root, fileutil.WalkOptions{SkipDir: p.SkipsDir}, func(e fileutil.Entry) error {
//	    fmt.Println(e.Rel)
//	    return nil
//	})
//
// # Ordering
//
// For a tree
//
//	b.ts
//	a/x.ts
//	a.ts
//
// the visit order is a.ts, b.ts, a/x.ts. Files always precede the
// subdirectories of the directory that holds them.
//
// # Error Tolerance
//
// Only a missing or unlistable root is fatal. A subdirectory that cannot be
// listed is reported through OnDirError (Walk) or ScanResult.Errors
// (ScanDirectory) and skipped.
package fileutil
