package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow. Color is dropped when out is
// not a terminal or NO_COLOR is set.
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected file:\n")
		} else {
			b.WriteString("Affected files:\n")
		}

		for i, file := range w.Files {
			b.WriteString("      ")
			b.WriteString(fmt.Sprintf("%d. %s", i+1, file))
			b.WriteString("\n")
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	color.New(color.FgYellow).Fprint(out, b.String())
}

// WarnEmptyBundle is shown when a run selected no files at all.
func WarnEmptyBundle(root string, extensions []string) Warning {
	return Warning{
		Title:      fmt.Sprintf("No files were bundled from %s", root),
		Message:    fmt.Sprintf("Included extensions: %s", strings.Join(extensions, " ")),
		Suggestion: "Check the root directory, or add extensions with --ext",
	}
}

// WarnSkippedFiles lists the candidate files a run could not read.
func WarnSkippedFiles(paths []string) Warning {
	return Warning{
		Title:   fmt.Sprintf("%d file(s) could not be read and were left out", len(paths)),
		Files:   paths,
		Message: "The bundle is complete for every other file",
	}
}
