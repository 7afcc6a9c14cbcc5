package display

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func disableColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestWarningDisplay(t *testing.T) {
	disableColor(t)

	tests := []struct {
		name    string
		warning Warning
		want    string
	}{
		{
			name:    "title only",
			warning: Warning{Title: "Something happened"},
			want:    "Warning: Something happened\n",
		},
		{
			name: "single file",
			warning: Warning{
				Title:      "One file",
				Message:    "Details",
				Files:      []string{"a.ts"},
				Suggestion: "Fix it",
			},
			want: "Warning: One file\n" +
				"    Details\n" +
				"    Affected file:\n" +
				"      1. a.ts\n" +
				"    Suggestion:\n" +
				"    Fix it\n",
		},
		{
			name:    "plural files",
			warning: Warning{Title: "Two files", Files: []string{"a.ts", "b.ts"}},
			want: "Warning: Two files\n" +
				"    Affected files:\n" +
				"      1. a.ts\n" +
				"      2. b.ts\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.warning.Display(buf)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWarnEmptyBundle(t *testing.T) {
	w := WarnEmptyBundle("./app", []string{".md", ".ts"})

	assert.Equal(t, "No files were bundled from ./app", w.Title)
	assert.Equal(t, "Included extensions: .md .ts", w.Message)
	assert.Contains(t, w.Suggestion, "--ext")
}

func TestWarnSkippedFiles(t *testing.T) {
	w := WarnSkippedFiles([]string{"a.ts", "b.ts"})

	assert.Equal(t, "2 file(s) could not be read and were left out", w.Title)
	assert.Equal(t, []string{"a.ts", "b.ts"}, w.Files)
}
