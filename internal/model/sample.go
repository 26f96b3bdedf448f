package model

import (
	"encoding/json"
	"time"
)

// Version of the subpredict CLI.
const Version = "0.3.1"

// Sample is one biological sample on disk.
type Sample struct {
	Name      string `json:"name"`       // Sample name used in logs and reports
	InputDir  string `json:"input_dir"`  // Directory holding the raw input files
	ResultDir string `json:"result_dir"` // Directory the engine writes into, one subdirectory per file
}

// FileOutcome is the terminal result of predicting one input file.
type FileOutcome struct {
	File    string        `json:"file"`    // File name relative to the sample input directory
	OK      bool          `json:"ok"`      // True if the engine exited with status 0
	Elapsed time.Duration `json:"elapsed"` // Wall-clock time spent on the file
}

// SampleResult aggregates the per-file outcomes of one sample.
type SampleResult struct {
	Sample  Sample        `json:"sample"`
	Files   []FileOutcome `json:"files"`   // In processing order (sorted by file name)
	Skipped []string      `json:"skipped"` // Entries ignored because of their extension
	Elapsed time.Duration `json:"elapsed"`
	Error   string        `json:"error,omitempty"` // Set when the sample aborted on a fatal error
}

// Aborted reports whether the sample stopped before all files were predicted.
func (r SampleResult) Aborted() bool {
	return r.Error != ""
}

// OK is true iff the sample ran to completion and every file succeeded.
// A sample without eligible files is OK.
func (r SampleResult) OK() bool {
	if r.Aborted() {
		return false
	}
	for _, f := range r.Files {
		if !f.OK {
			return false
		}
	}
	return true
}

// Failed returns the names of failed files in processing order.
func (r SampleResult) Failed() []string {
	var failed []string
	for _, f := range r.Files {
		if !f.OK {
			failed = append(failed, f.File)
		}
	}
	return failed
}

// Outcomes returns the per-file results keyed by file name.
func (r SampleResult) Outcomes() map[string]bool {
	m := make(map[string]bool, len(r.Files))
	for _, f := range r.Files {
		m[f.File] = f.OK
	}
	return m
}

// MarshalJSON adds the sample verdict as "ok".
func (r SampleResult) MarshalJSON() ([]byte, error) {
	type plain SampleResult
	return json.Marshal(struct {
		plain
		OK bool `json:"ok"`
	}{plain(r), r.OK()})
}
