package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleResult_OK(t *testing.T) {
	t.Run("no files is vacuously ok", func(t *testing.T) {
		r := SampleResult{Skipped: []string{"readme.txt"}}
		assert.True(t, r.OK())
		assert.Empty(t, r.Failed())
	})

	t.Run("all succeeded", func(t *testing.T) {
		r := SampleResult{Files: []FileOutcome{{File: "a.faa", OK: true}, {File: "b.gene", OK: true}}}
		assert.True(t, r.OK())
	})

	t.Run("one failure fails the sample", func(t *testing.T) {
		r := SampleResult{Files: []FileOutcome{
			{File: "a.faa", OK: true},
			{File: "b.fasta", OK: false},
			{File: "c.gene", OK: false},
		}}
		assert.False(t, r.OK())
		assert.Equal(t, []string{"b.fasta", "c.gene"}, r.Failed())
		assert.Equal(t, map[string]bool{"a.faa": true, "b.fasta": false, "c.gene": false}, r.Outcomes())
	})
}

func TestSampleResult_Aborted(t *testing.T) {
	r := SampleResult{
		Sample: Sample{Name: "S1"},
		Files:  []FileOutcome{{File: "a.faa", OK: true}},
		Error:  "predict b.faa: executable file not found in $PATH",
	}
	assert.True(t, r.Aborted())
	assert.False(t, r.OK())
	assert.Empty(t, r.Failed())
}

func TestSampleResult_JSON(t *testing.T) {
	decode := func(r SampleResult) map[string]any {
		data, err := json.Marshal(r)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	ok := decode(SampleResult{Sample: Sample{Name: "S1"}, Files: []FileOutcome{{File: "a.faa", OK: true}}})
	assert.Equal(t, true, ok["ok"])
	assert.NotContains(t, ok, "error")
	assert.Equal(t, "S1", ok["sample"].(map[string]any)["name"])

	aborted := decode(SampleResult{Sample: Sample{Name: "S2"}, Error: "boom"})
	assert.Equal(t, false, aborted["ok"])
	assert.Equal(t, "boom", aborted["error"])
}
