package bundle

import (
	"fmt"
	"io"
	"strings"
)

// DefaultSeparatorWidth is the length of the rule lines around each header.
const DefaultSeparatorWidth = 80

// Entry is one bundled file: its slash-separated path relative to the root
// and its text content.
type Entry struct {
	Path    string
	Content string
}

// FrameWriter appends entries to an artifact using the fixed framing:
//
//	\n
//	<rule>\n
//	FILE: <path>\n
//	<rule>\n
//	\n
//	<content>\n
type FrameWriter struct {
	w    io.Writer
	rule string
}

// NewFrameWriter returns a FrameWriter whose rule lines are width '='
// characters. A width below 1 uses DefaultSeparatorWidth.
func NewFrameWriter(w io.Writer, width int) *FrameWriter {
	if width < 1 {
		width = DefaultSeparatorWidth
	}
	return &FrameWriter{
		w:    w,
		rule: strings.Repeat("=", width),
	}
}

// WriteEntry appends one frame. The header and content go out in a single
// write so an earlier frame is never interleaved with a later one.
func (fw *FrameWriter) WriteEntry(e Entry) error {
	frame := fmt.Sprintf("\n%s\nFILE: %s\n%s\n\n%s\n", fw.rule, e.Path, fw.rule, e.Content)
	if _, err := io.WriteString(fw.w, frame); err != nil {
		return fmt.Errorf("failed to write entry %s: %w", e.Path, err)
	}
	return nil
}
