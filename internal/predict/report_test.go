package predict

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"subpredict/internal/model"
)

func TestGenerateReport(t *testing.T) {
	results := []model.SampleResult{
		{
			Sample:  model.Sample{Name: "S1"},
			Files:   []model.FileOutcome{{File: "a.faa", OK: true, Elapsed: time.Second}, {File: "b.fasta", OK: false}},
			Skipped: []string{"readme.txt"},
		},
		{Sample: model.Sample{Name: "S2"}},
	}

	plain := GenerateReport(results, false, false)
	assert.Contains(t, plain, "Samples: 2, failed: 1")
	assert.Contains(t, plain, model.IconFailed+" S1 (2 files)")
	assert.Contains(t, plain, model.IconOK+" S2 (0 files)")
	assert.Contains(t, plain, model.IconFailed+" b.fasta")
	assert.NotContains(t, plain, "a.faa")
	assert.NotContains(t, plain, "readme.txt")
	assert.False(t, strings.Contains(plain, "\x1b["), "plain report must not carry escape codes")

	verbose := GenerateReport(results, false, true)
	assert.Contains(t, verbose, model.IconOK+" a.faa  1s")
	assert.Contains(t, verbose, "readme.txt (skipped)")
	assert.Contains(t, verbose, "no eligible files")
}
