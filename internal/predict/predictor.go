package predict

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"subpredict/internal/model"
)

// ErrUnknownFileType means a file passed the eligibility filter but has no
// prediction mode. It indicates a broken file type table, not bad input.
var ErrUnknownFileType = errors.New("no prediction mode for file type")

func init() {
	if err := model.ValidateModeTable(); err != nil {
		panic(err)
	}
}

// Request describes one file to predict.
type Request struct {
	Filename  string
	DBDir     string
	InputDir  string
	ResultDir string
	GffType   model.GffType
	Threads   int
}

// Predictor runs the annotation engine for a single input file.
type Predictor struct {
	Executable string
	Runner     Runner
	Log        *zap.Logger
}

// NewPredictor creates a Predictor. Empty executable means DefaultExecutable.
func NewPredictor(executable string, runner Runner, log *zap.Logger) *Predictor {
	if executable == "" {
		executable = DefaultExecutable
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Predictor{Executable: executable, Runner: runner, Log: log}
}

// Command resolves the engine invocation for req without running it.
func (p *Predictor) Command(req Request) (Command, error) {
	ft := FileTypeOf(req.Filename)
	mode, ok := model.FileTypeModes[ft]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q (%s)", ErrUnknownFileType, ft, req.Filename)
	}

	return BuildCommand(p.Executable, Invocation{
		DBDir:     req.DBDir,
		Mode:      mode,
		InputPath: filepath.Join(req.InputDir, req.Filename),
		// One directory per input file, named with its extension, so that
		// x.faa and x.fasta never write into the same place.
		OutputDir: filepath.Join(req.ResultDir, req.Filename),
		Threads:   req.Threads,
		GffType:   req.GffType,
		GffPath:   SidecarPath(req.InputDir, req.Filename),
	}), nil
}

// Predict runs the engine for one file and waits for it.
// A non-zero engine exit is logged and reported as false with a nil error.
// Any other failure is returned.
func (p *Predictor) Predict(ctx context.Context, req Request) (bool, error) {
	log := p.Log.With(zap.String("file", req.Filename))
	defer Track(log, "substrate prediction")()

	cmd, err := p.Command(req)
	if err != nil {
		return false, err
	}
	log.Debug("Running engine", zap.String("command", cmd.String()))

	err = p.Runner.Run(ctx, cmd)
	switch {
	case err == nil:
		log.Info(fmt.Sprintf("Substrate predicted successfully for %s", req.Filename))
		return true, nil
	case IsCheckedFailure(err):
		var pe *ProcessError
		errors.As(err, &pe)
		log.Error(fmt.Sprintf("Error during substrate prediction for %s", req.Filename),
			zap.Int("exit_code", pe.ExitCode),
			zap.Strings("argv", pe.Argv),
			zap.String("stderr", pe.Stderr),
			zap.Error(err),
		)
		return false, nil
	default:
		return false, fmt.Errorf("predict %s: %w", req.Filename, err)
	}
}
