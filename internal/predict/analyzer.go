package predict

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"subpredict/internal/model"
)

// ErrInvalidParams is returned before any file is touched when the
// sample parameters are unusable.
var ErrInvalidParams = errors.New("invalid analysis parameters")

// Params are passed through unchanged to every file of a sample.
type Params struct {
	DBDir   string
	GffType model.GffType
	Threads int
}

// Validate checks the constraints the engine relies on.
func (p Params) Validate() error {
	if !p.GffType.Valid() {
		return fmt.Errorf("%w: gff type %q", ErrInvalidParams, p.GffType)
	}
	if p.Threads <= 0 {
		return fmt.Errorf("%w: threads must be positive, got %d", ErrInvalidParams, p.Threads)
	}
	return nil
}

// FilePredictor is the per-file step of the analyzer.
type FilePredictor interface {
	Predict(ctx context.Context, req Request) (bool, error)
}

// Analyzer predicts substrates for every eligible file of a sample.
type Analyzer struct {
	predictor FilePredictor
	log       *zap.Logger

	// OnFile, when set, is called after each file finishes.
	OnFile func(model.FileOutcome)
}

func NewAnalyzer(predictor FilePredictor, log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{predictor: predictor, log: log}
}

// ListEligible reads dir and splits its entries into eligible file names,
// sorted ascending, and skipped ones. Read errors are returned as is.
func ListEligible(dir string) (eligible, skipped []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}
	for _, e := range entries {
		name := e.Name()
		if model.IsRecognized(FileTypeOf(name)) {
			eligible = append(eligible, name)
		} else {
			skipped = append(skipped, name)
		}
	}
	// Fixed order keeps runs and their logs reproducible.
	sort.Strings(eligible)
	sort.Strings(skipped)
	return eligible, skipped, nil
}

// Analyze runs the predictor on each eligible file of sample in sorted order.
// Engine failures are folded into the result; any other error stops the
// sample and is returned together with the outcomes collected so far.
func (a *Analyzer) Analyze(ctx context.Context, sample model.Sample, params Params) (model.SampleResult, error) {
	log := a.log.With(zap.String("sample", sample.Name))
	defer Track(log, "sample analysis")()

	start := time.Now()
	result := model.SampleResult{Sample: sample}

	if err := params.Validate(); err != nil {
		return abort(result, start, err)
	}

	eligible, skipped, err := ListEligible(sample.InputDir)
	if err != nil {
		return abort(result, start, fmt.Errorf("list sample %s: %w", sample.Name, err))
	}
	for _, name := range skipped {
		log.Debug(fmt.Sprintf("Skip analysis for %s", name))
	}
	result.Skipped = skipped

	for _, name := range eligible {
		fileStart := time.Now()
		ok, err := a.predictor.Predict(ctx, Request{
			Filename:  name,
			DBDir:     params.DBDir,
			InputDir:  sample.InputDir,
			ResultDir: sample.ResultDir,
			GffType:   params.GffType,
			Threads:   params.Threads,
		})
		if err != nil {
			return abort(result, start, err)
		}
		outcome := model.FileOutcome{File: name, OK: ok, Elapsed: time.Since(fileStart)}
		result.Files = append(result.Files, outcome)
		if a.OnFile != nil {
			a.OnFile(outcome)
		}
	}
	result.Elapsed = time.Since(start)

	if result.OK() {
		log.Info(fmt.Sprintf("Sample analyzed successfully: %s", sample.Name))
		return result, nil
	}

	log.Warn("Analysis failed for the next files:\n" + strings.Join(result.Failed(), "\n"))
	return result, nil
}

// abort marks result as stopped by err so it never reads as a success.
func abort(result model.SampleResult, start time.Time, err error) (model.SampleResult, error) {
	result.Elapsed = time.Since(start)
	result.Error = err.Error()
	return result, err
}
