package predict

import (
	"context"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"subpredict/internal/model"
)

var testParams = Params{DBDir: "db", GffType: model.GffProdigal, Threads: 2}

func TestListEligible(t *testing.T) {
	dir := makeSample(t, "c.gene", "a.faa", "readme.txt", "b.fasta", "a.gff")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))

	eligible, skipped, err := ListEligible(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.faa", "b.fasta", "c.gene"}, eligible)
	assert.Equal(t, []string{"a.gff", "nested", "readme.txt"}, skipped)

	_, _, err = ListEligible(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestAnalyzer_MixedOutcome(t *testing.T) {
	dir := makeSample(t, "b.fasta", "readme.txt", "a.faa")
	log, logs := observedLogger()
	runner := &fakeRunner{exit: map[string]int{"b.fasta": 1}}
	a := NewAnalyzer(NewPredictor("", runner, log), log)

	res, err := a.Analyze(context.Background(), model.Sample{Name: "S1", InputDir: dir, ResultDir: "out"}, testParams)
	require.NoError(t, err)

	assert.False(t, res.OK())
	assert.Equal(t, []model.FileOutcome{{File: "a.faa", OK: true}, {File: "b.fasta", OK: false}}, withoutElapsed(res.Files))
	assert.Equal(t, []string{"readme.txt"}, res.Skipped)
	assert.Equal(t, []string{"a.faa", "b.fasta"}, runner.inputs())

	warns := logs.FilterLevelExact(zap.WarnLevel).All()
	require.Len(t, warns, 1)
	assert.Equal(t, "Analysis failed for the next files:\nb.fasta", warns[0].Message)
	assert.Equal(t, 1, logs.FilterMessage("Skip analysis for readme.txt").Len())
	assert.Zero(t, logs.FilterMessage("Sample analyzed successfully: S1").Len())
}

func TestAnalyzer_AllSucceed(t *testing.T) {
	dir := makeSample(t, "z.gene", "m.faa", "a.fasta")
	log, logs := observedLogger()
	runner := &fakeRunner{}
	a := NewAnalyzer(NewPredictor("", runner, log), log)

	res, err := a.Analyze(context.Background(), model.Sample{Name: "S2", InputDir: dir, ResultDir: "out"}, testParams)
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, []string{"a.fasta", "m.faa", "z.gene"}, runner.inputs())
	assert.Equal(t, 1, logs.FilterMessage("Sample analyzed successfully: S2").Len())
	assert.Zero(t, logs.FilterLevelExact(zap.WarnLevel).Len())
}

func TestAnalyzer_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	log, logs := observedLogger()
	runner := &fakeRunner{}
	a := NewAnalyzer(NewPredictor("", runner, log), log)

	res, err := a.Analyze(context.Background(), model.Sample{Name: "empty", InputDir: dir}, testParams)
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Empty(t, res.Files)
	assert.Empty(t, runner.calls)
	assert.Zero(t, logs.FilterMessageSnippet("Substrate predicted").Len())
	assert.Equal(t, 1, logs.FilterMessage("Sample analyzed successfully: empty").Len())
}

func TestAnalyzer_OnlyIneligible(t *testing.T) {
	dir := makeSample(t, "notes.md", "x.gff")
	runner := &fakeRunner{}
	a := NewAnalyzer(NewPredictor("", runner, nil), nil)

	res, err := a.Analyze(context.Background(), model.Sample{Name: "S", InputDir: dir}, testParams)
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Empty(t, res.Files)
	assert.Equal(t, []string{"notes.md", "x.gff"}, res.Skipped)
}

func TestAnalyzer_FatalErrorStopsSample(t *testing.T) {
	dir := makeSample(t, "a.faa", "b.faa", "c.faa")
	runner := &fakeRunner{fatal: map[string]error{"b.faa": exec.ErrNotFound}}
	a := NewAnalyzer(NewPredictor("", runner, nil), nil)

	res, err := a.Analyze(context.Background(), model.Sample{Name: "S", InputDir: dir}, testParams)
	require.Error(t, err)
	assert.ErrorIs(t, err, exec.ErrNotFound)
	assert.Equal(t, []string{"a.faa", "b.faa"}, runner.inputs())
	assert.Len(t, res.Files, 1)
	assert.True(t, res.Aborted())
	assert.False(t, res.OK())
}

func TestAnalyzer_MissingDirectory(t *testing.T) {
	a := NewAnalyzer(NewPredictor("", &fakeRunner{}, nil), nil)
	_, err := a.Analyze(context.Background(), model.Sample{Name: "S", InputDir: filepath.Join(t.TempDir(), "nope")}, testParams)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestAnalyzer_InvalidParams(t *testing.T) {
	dir := makeSample(t, "a.faa")
	runner := &fakeRunner{}
	a := NewAnalyzer(NewPredictor("", runner, nil), nil)
	sample := model.Sample{Name: "S", InputDir: dir}

	_, err := a.Analyze(context.Background(), sample, Params{GffType: "gtf", Threads: 1})
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = a.Analyze(context.Background(), sample, Params{GffType: model.GffProdigal, Threads: 0})
	assert.ErrorIs(t, err, ErrInvalidParams)
	assert.Empty(t, runner.calls)
}

func TestAnalyzer_OnFile(t *testing.T) {
	dir := makeSample(t, "b.gene", "a.gene")
	a := NewAnalyzer(NewPredictor("", &fakeRunner{exit: map[string]int{"a.gene": 3}}, nil), nil)
	var seen []model.FileOutcome
	a.OnFile = func(o model.FileOutcome) { seen = append(seen, o) }

	_, err := a.Analyze(context.Background(), model.Sample{Name: "S", InputDir: dir}, testParams)
	require.NoError(t, err)
	assert.Equal(t, []model.FileOutcome{{File: "a.gene", OK: false}, {File: "b.gene", OK: true}}, withoutElapsed(seen))
}

func withoutElapsed(files []model.FileOutcome) []model.FileOutcome {
	out := make([]model.FileOutcome, len(files))
	for i, f := range files {
		out[i] = model.FileOutcome{File: f.File, OK: f.OK}
	}
	return out
}
