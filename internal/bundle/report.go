package bundle

import (
	"fmt"

	"github.com/harrison/bundler/internal/filelock"
	"gopkg.in/yaml.v3"
)

// Report is the YAML document written by WriteReport.
type Report struct {
	Root          string    `yaml:"root"`
	Output        string    `yaml:"output"`
	IncludedCount int       `yaml:"included_count"`
	Bytes         int64     `yaml:"bytes"`
	Checksum      string    `yaml:"checksum"`
	Duration      string    `yaml:"duration"`
	Files         []string  `yaml:"files"`
	Failures      []Failure `yaml:"failures"`
	// RunID and RunLog identify the per-run log file, when one was written
	RunID  string `yaml:"run_id,omitempty"`
	RunLog string `yaml:"run_log,omitempty"`
}

// NewReport converts a run result into its report form.
func NewReport(r *Result) Report {
	return Report{
		Root:          r.Root,
		Output:        r.Output,
		IncludedCount: r.IncludedCount,
		Bytes:         r.Bytes,
		Checksum:      r.Checksum,
		Duration:      r.Duration.String(),
		Files:         r.Files,
		Failures:      r.Failures,
	}
}

// WriteReport writes rep to path as YAML, atomically.
func WriteReport(path string, rep Report) error {
	data, err := yaml.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := filelock.AtomicWrite(path, data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
