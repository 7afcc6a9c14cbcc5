package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files []string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("test content"), 0644))
	}
}

func collect(t *testing.T, root string, opts WalkOptions) []string {
	t.Helper()
	var got []string
	err := Walk(root, opts, func(e Entry) error {
		got = append(got, e.Rel)
		return nil
	})
	require.NoError(t, err)
	return got
}

func TestWalk_Order(t *testing.T) {
	tmpDir := t.TempDir()

	// tmpDir/
	//   b.ts
	//   a.ts
	//   a/
	//     z.ts
	//     c/
	//       d.ts
	//     b/
	//       e.ts
	//   Z.md
	writeTree(t, tmpDir, []string{
		"b.ts",
		"a.ts",
		"a/z.ts",
		"a/c/d.ts",
		"a/b/e.ts",
		"Z.md",
	})

	got := collect(t, tmpDir, WalkOptions{})

	assert.Equal(t, []string{
		"Z.md",
		"a.ts",
		"b.ts",
		"a/z.ts",
		"a/b/e.ts",
		"a/c/d.ts",
	}, got)
}

func TestWalk_SkipDir(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{
		"index.ts",
		"node_modules/lib/index.ts",
		"src/node_modules/deep.ts",
		"src/app.ts",
	})

	var listed []string
	opts := WalkOptions{
		SkipDir: func(name string) bool {
			listed = append(listed, name)
			return name == "node_modules"
		},
	}
	got := collect(t, tmpDir, opts)

	assert.Equal(t, []string{"index.ts", "src/app.ts"}, got)
	// the lib directory below node_modules is never even considered
	assert.NotContains(t, listed, "lib")
}

func TestWalk_SymlinkedDirectoryIsNotVisited(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{"real/inner.js", "target.js"})

	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "real"), filepath.Join(tmpDir, "vendor.js")))
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "target.js"), filepath.Join(tmpDir, "link.js")))
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "gone.js"), filepath.Join(tmpDir, "dangling.js")))

	got := collect(t, tmpDir, WalkOptions{})

	assert.Equal(t, []string{"dangling.js", "link.js", "target.js", "real/inner.js"}, got)
	assert.NotContains(t, got, "vendor.js")
}

func TestWalk_EntryFields(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{"src/lib/util.ts"})

	var entries []Entry
	err := Walk(tmpDir, WalkOptions{}, func(e Entry) error {
		entries = append(entries, e)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "src/lib/util.ts", entries[0].Rel)
	assert.Equal(t, "util.ts", entries[0].Name)
	assert.Equal(t, filepath.Join(tmpDir, "src", "lib", "util.ts"), entries[0].Path)
}

func TestWalk_VisitErrorStops(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{"a.ts", "b.ts", "c.ts"})

	stop := errors.New("stop")
	var seen []string
	err := Walk(tmpDir, WalkOptions{}, func(e Entry) error {
		seen = append(seen, e.Rel)
		if e.Rel == "b.ts" {
			return stop
		}
		return nil
	})

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"a.ts", "b.ts"}, seen)
}

func TestWalk_RootErrors(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("missing root", func(t *testing.T) {
		err := Walk(filepath.Join(tmpDir, "missing"), WalkOptions{}, func(Entry) error { return nil })
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("root is a file", func(t *testing.T) {
		file := filepath.Join(tmpDir, "file.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

		err := Walk(file, WalkOptions{}, func(Entry) error { return nil })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})
}

func TestWalk_UnreadableSubdirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{"ok.ts", "locked/hidden.ts", "zz/after.ts"})
	locked := filepath.Join(tmpDir, "locked")
	require.NoError(t, os.Chmod(locked, 0000))
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	var dirErrs []string
	got := collect(t, tmpDir, WalkOptions{
		OnDirError: func(rel string, err error) { dirErrs = append(dirErrs, rel) },
	})

	assert.Equal(t, []string{"ok.ts", "zz/after.ts"}, got)
	assert.Equal(t, []string{"locked"}, dirErrs)
}

func TestScanDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{
		"file1.md",
		"file2.yaml",
		"image.png",
		"subdir1/nested1.md",
		"subdir1/subdir2/deep1.md",
		".hidden/hidden.md",
		"node_modules/package.json",
	})

	isMarkdown := func(name string) bool { return filepath.Ext(name) == ".md" }

	tests := []struct {
		name string
		opts ScanOptions
		want []string
	}{
		{
			name: "all files",
			opts: ScanOptions{},
			want: []string{
				"file1.md", "file2.yaml", "image.png",
				".hidden/hidden.md",
				"node_modules/package.json",
				"subdir1/nested1.md",
				"subdir1/subdir2/deep1.md",
			},
		},
		{
			name: "include filter",
			opts: ScanOptions{Include: isMarkdown},
			want: []string{"file1.md", ".hidden/hidden.md", "subdir1/nested1.md", "subdir1/subdir2/deep1.md"},
		},
		{
			name: "hidden directories are not special",
			opts: ScanOptions{
				Include: isMarkdown,
				SkipDir: func(name string) bool { return name == "subdir1" },
			},
			want: []string{"file1.md", ".hidden/hidden.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScanDirectory(tmpDir, tt.opts)
			require.NoError(t, err)
			require.NotNil(t, result)

			assert.Empty(t, result.Errors)
			assert.Equal(t, tt.want, result.Files)
		})
	}
}

func TestScanDirectory_NonExistentDirectory(t *testing.T) {
	result, err := ScanDirectory("/nonexistent/directory/path", ScanOptions{})
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestSamePath(t *testing.T) {
	tmpDir := t.TempDir()

	assert.True(t, SamePath(filepath.Join(tmpDir, "a", "..", "out.txt"), filepath.Join(tmpDir, "out.txt")))
	assert.False(t, SamePath(filepath.Join(tmpDir, "a.txt"), filepath.Join(tmpDir, "b.txt")))
}
