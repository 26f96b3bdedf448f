package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateModeTable(t *testing.T) {
	require.NoError(t, ValidateModeTable())

	t.Run("drift is reported", func(t *testing.T) {
		recognized["fna"] = struct{}{}
		defer delete(recognized, "fna")

		err := ValidateModeTable()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"fna"`)
	})
}

func TestFileTypeModes(t *testing.T) {
	assert.Equal(t, ModeProtein, FileTypeModes[FileTypeFaa])
	assert.Equal(t, ModeProk, FileTypeModes[FileTypeFasta])
	assert.Equal(t, ModeProk, FileTypeModes[FileTypeGene])
}

func TestRecognizedFileTypes(t *testing.T) {
	assert.Equal(t, []FileType{"faa", "fasta", "gene"}, RecognizedFileTypes())
	assert.True(t, IsRecognized("faa"))
	assert.False(t, IsRecognized("txt"))
	assert.False(t, IsRecognized("gff"))
}

func TestParseGffType(t *testing.T) {
	g, err := ParseGffType("prodigal")
	require.NoError(t, err)
	assert.Equal(t, GffProdigal, g)

	g, err = ParseGffType("NCBI_prok")
	require.NoError(t, err)
	assert.Equal(t, GffNCBIProk, g)

	for _, bad := range []string{"", "Prodigal", "ncbi_prok", "NCBI_euk"} {
		_, err := ParseGffType(bad)
		assert.Error(t, err, bad)
		assert.False(t, GffType(bad).Valid(), bad)
	}
}
