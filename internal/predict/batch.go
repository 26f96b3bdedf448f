package predict

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"subpredict/internal/model"
)

// EventKind tells observers what happened during a batch.
type EventKind int

const (
	SampleStarted EventKind = iota
	FileDone
	SampleDone
)

// Event reports progress of a batch run.
type Event struct {
	Kind   EventKind
	Sample model.Sample
	Files  []string            // Eligible files, set on SampleStarted
	File   model.FileOutcome   // Set on FileDone
	Result *model.SampleResult // Set on SampleDone
	Err    error               // Set on SampleDone when the sample aborted
}

// Observer receives batch events. It is called from the batch goroutine.
type Observer func(Event)

// Batch runs many samples one after another with the same parameters.
type Batch struct {
	Analyzer *Analyzer
	Log      *zap.Logger
}

// SamplesFromRoot treats every subdirectory of inputRoot as a sample, with
// results going to resultRoot/<name>. Samples are returned sorted by name.
func SamplesFromRoot(inputRoot, resultRoot string) ([]model.Sample, error) {
	entries, err := os.ReadDir(inputRoot)
	if err != nil {
		return nil, err
	}
	var samples []model.Sample
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		samples = append(samples, NewSample(filepath.Join(inputRoot, e.Name()), resultRoot, ""))
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].Name < samples[j].Name })
	return samples, nil
}

// NewSample builds a sample for inputDir. An empty name defaults to the
// directory's base name.
func NewSample(inputDir, resultRoot, name string) model.Sample {
	if name == "" {
		name = filepath.Base(filepath.Clean(inputDir))
	}
	return model.Sample{
		Name:      name,
		InputDir:  inputDir,
		ResultDir: filepath.Join(resultRoot, name),
	}
}

// Run analyzes samples sequentially. A fatal error from one sample stops the
// batch; results gathered up to that point are returned with it.
func (b *Batch) Run(ctx context.Context, samples []model.Sample, params Params, observe Observer) ([]model.SampleResult, error) {
	log := b.Log
	if log == nil {
		log = zap.NewNop()
	}
	if observe == nil {
		observe = func(Event) {}
	}
	defer Track(log, "batch", zap.Int("samples", len(samples)))()

	prev := b.Analyzer.OnFile
	defer func() { b.Analyzer.OnFile = prev }()

	results := make([]model.SampleResult, 0, len(samples))
	for _, s := range samples {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		files, _, err := ListEligible(s.InputDir)
		if err != nil {
			err = fmt.Errorf("list sample %s: %w", s.Name, err)
			res := model.SampleResult{Sample: s, Error: err.Error()}
			results = append(results, res)
			observe(Event{Kind: SampleDone, Sample: s, Result: &res, Err: err})
			return results, err
		}
		observe(Event{Kind: SampleStarted, Sample: s, Files: files})

		sample := s
		b.Analyzer.OnFile = func(o model.FileOutcome) {
			observe(Event{Kind: FileDone, Sample: sample, File: o})
		}
		res, err := b.Analyzer.Analyze(ctx, s, params)
		results = append(results, res)
		observe(Event{Kind: SampleDone, Sample: s, Result: &res, Err: err})
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
