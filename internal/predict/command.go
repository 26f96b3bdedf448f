package predict

import (
	"path/filepath"
	"strconv"
	"strings"

	"subpredict/internal/model"
)

// DefaultExecutable is the annotation engine binary looked up on PATH.
const DefaultExecutable = "run_dbcan"

// Subcommand selects the substrate prediction operation of the engine.
const Subcommand = "easy_substrate"

// Command is a fully resolved engine invocation.
type Command struct {
	Executable string
	Args       []string
}

// Argv returns the executable followed by its arguments.
func (c Command) Argv() []string {
	return append([]string{c.Executable}, c.Args...)
}

func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// Invocation holds the values that end up on the engine command line.
type Invocation struct {
	DBDir     string
	Mode      model.Mode
	InputPath string
	OutputDir string
	Threads   int
	GffType   model.GffType
	GffPath   string
}

// BuildCommand lays out the engine arguments. The flag order is fixed.
func BuildCommand(executable string, inv Invocation) Command {
	if executable == "" {
		executable = DefaultExecutable
	}
	return Command{
		Executable: executable,
		Args: []string{
			Subcommand,
			"--db_dir", inv.DBDir,
			"--mode", string(inv.Mode),
			"--input_raw_data", inv.InputPath,
			"--output_dir", inv.OutputDir,
			"--threads", strconv.Itoa(inv.Threads),
			"--gff_type", string(inv.GffType),
			"--input_gff", inv.GffPath,
		},
	}
}

// FileTypeOf returns the text after the last dot of name.
// A name without a dot is its own file type, mirroring a plain split on ".".
func FileTypeOf(name string) model.FileType {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return model.FileType(name[i+1:])
	}
	return model.FileType(name)
}

// SidecarPath returns the annotation file that sits next to input:
// same directory, same base name, SidecarExt extension.
func SidecarPath(inputDir, filename string) string {
	base := filename
	if i := strings.LastIndexByte(filename, '.'); i >= 0 {
		base = filename[:i]
	}
	return filepath.Join(inputDir, base+"."+model.SidecarExt)
}
