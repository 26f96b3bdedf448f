package model

import (
	"fmt"
	"sort"
)

// Mode is the prediction mode passed to the annotation engine.
type Mode string

const (
	ModeProk    Mode = "prok"
	ModeProtein Mode = "protein"
)

// FileType is a recognized input file extension (without the dot).
type FileType string

const (
	FileTypeGene  FileType = "gene"
	FileTypeFasta FileType = "fasta"
	FileTypeFaa   FileType = "faa"
)

// SidecarExt is the extension of the annotation file expected next to every input.
const SidecarExt = "gff"

// recognized is the closed set of file types eligible for prediction.
var recognized = map[FileType]struct{}{
	FileTypeGene:  {},
	FileTypeFasta: {},
	FileTypeFaa:   {},
}

// FileTypeModes maps each recognized file type to the engine mode used for it.
var FileTypeModes = map[FileType]Mode{
	FileTypeGene:  ModeProk,
	FileTypeFasta: ModeProk,
	FileTypeFaa:   ModeProtein,
}

// IsRecognized reports whether ft belongs to the eligible set.
func IsRecognized(ft FileType) bool {
	_, ok := recognized[ft]
	return ok
}

// RecognizedFileTypes returns the eligible set in sorted order.
func RecognizedFileTypes() []FileType {
	out := make([]FileType, 0, len(recognized))
	for ft := range recognized {
		out = append(out, ft)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ValidateModeTable checks that every recognized file type has a mode.
// A failure means the eligible set and FileTypeModes drifted apart.
func ValidateModeTable() error {
	for _, ft := range RecognizedFileTypes() {
		if _, ok := FileTypeModes[ft]; !ok {
			return fmt.Errorf("file type %q is recognized but has no prediction mode", ft)
		}
	}
	return nil
}

// GffType names the flavour of the sidecar annotation file.
type GffType string

const (
	GffProdigal GffType = "prodigal"
	GffNCBIProk GffType = "NCBI_prok"
)

// ParseGffType accepts only the two values the engine understands.
func ParseGffType(s string) (GffType, error) {
	switch GffType(s) {
	case GffProdigal, GffNCBIProk:
		return GffType(s), nil
	}
	return "", fmt.Errorf("unsupported gff type %q (want %q or %q)", s, GffProdigal, GffNCBIProk)
}

// Valid reports whether g is one of the supported values.
func (g GffType) Valid() bool {
	_, err := ParseGffType(string(g))
	return err == nil
}
