// Package policy holds the inclusion and exclusion rules that decide which
// files of a project end up in a bundle.
package policy

import (
	"sort"
	"strings"
)

// DefaultOutputName is the artifact written when no output path is given.
const DefaultOutputName = "project_bundle.txt"

// Default rule sets. Secret-bearing filenames must always stay in
// DefaultIgnoredFiles.
var (
	DefaultIncludedExtensions = []string{
		".ts", ".tsx",
		".js", ".jsx", ".mjs",
		".css",
		".prisma",
		".json",
		".md",
	}

	DefaultIgnoredDirectories = []string{
		"node_modules",
		".next",
		".git",
		".vscode",
		"public",
		"coverage",
		"dist",
		"build",
	}

	DefaultIgnoredFiles = []string{
		"package-lock.json",
		"yarn.lock",
		"bun.lockb",
		"pnpm-lock.yaml",
		".DS_Store",
		".env",
		".env.local",
		".env.production",
		".eslintrc.json",
	}
)

// Policy is the immutable set of rules applied during a bundle run.
// Matching is case-sensitive throughout.
type Policy struct {
	includedExtensions map[string]bool
	ignoredDirectories map[string]bool
	ignoredFiles       map[string]bool
}

// New builds a Policy from explicit rule lists. Extensions given without a
// leading dot get one. Empty entries are dropped.
func New(extensions, ignoredDirs, ignoredFiles []string) Policy {
	p := Policy{
		includedExtensions: make(map[string]bool),
		ignoredDirectories: make(map[string]bool),
		ignoredFiles:       make(map[string]bool),
	}
	p.add(extensions, ignoredDirs, ignoredFiles)
	return p
}

// Default returns the built-in policy. selfName is the bundler's own file
// name and outputName the artifact's basename; both are ignored so a run
// never bundles the tool or its previous output.
func Default(selfName, outputName string) Policy {
	files := append([]string{}, DefaultIgnoredFiles...)
	files = append(files, selfName, outputName)
	return New(DefaultIncludedExtensions, DefaultIgnoredDirectories, files)
}

// With returns a copy of p extended with extra rules. p is left untouched.
func (p Policy) With(extensions, ignoredDirs, ignoredFiles []string) Policy {
	out := New(p.IncludedExtensions(), p.IgnoredDirectories(), p.IgnoredFiles())
	out.add(extensions, ignoredDirs, ignoredFiles)
	return out
}

func (p Policy) add(extensions, ignoredDirs, ignoredFiles []string) {
	for _, ext := range extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		p.includedExtensions[ext] = true
	}
	for _, dir := range ignoredDirs {
		if dir = strings.TrimSpace(dir); dir != "" {
			p.ignoredDirectories[dir] = true
		}
	}
	for _, file := range ignoredFiles {
		if file = strings.TrimSpace(file); file != "" {
			p.ignoredFiles[file] = true
		}
	}
}

// SkipsDir reports whether a directory with the given basename must be
// pruned together with its whole subtree.
func (p Policy) SkipsDir(name string) bool {
	return p.ignoredDirectories[name]
}

// IgnoresFile reports whether the basename is explicitly excluded.
func (p Policy) IgnoresFile(name string) bool {
	return p.ignoredFiles[name]
}

// HasIncludedExtension reports whether name ends with one of the included
// suffixes. Suffix matching (not filepath.Ext) lets multi-dot entries such
// as ".d.ts" work.
func (p Policy) HasIncludedExtension(name string) bool {
	for ext := range p.includedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// IncludesFile reports whether a file with the given basename is bundled.
func (p Policy) IncludesFile(name string) bool {
	if p.IgnoresFile(name) {
		return false
	}
	return p.HasIncludedExtension(name)
}

// IncludedExtensions returns the included suffixes, sorted.
func (p Policy) IncludedExtensions() []string { return sortedKeys(p.includedExtensions) }

// IgnoredDirectories returns the ignored directory names, sorted.
func (p Policy) IgnoredDirectories() []string { return sortedKeys(p.ignoredDirectories) }

// IgnoredFiles returns the ignored file names, sorted.
func (p Policy) IgnoredFiles() []string { return sortedKeys(p.ignoredFiles) }

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
