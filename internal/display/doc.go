// Package display renders user-facing warnings for bundle runs.
//
// Warnings go to the command's output stream and are colored yellow when
// that stream is a terminal:
//
//	Warning: No files were bundled from ./app
//	    Included extensions: .css .js .json .jsx .md .mjs .prisma .ts .tsx
//	    Suggestion:
//	    Check the root directory, or add extensions with --ext
package display
