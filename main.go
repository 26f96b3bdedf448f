package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"subpredict/internal/config"
	"subpredict/internal/logging"
	"subpredict/internal/model"
	"subpredict/internal/predict"
	"subpredict/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
	"go.uber.org/zap"
)

const (
	exitOK           = 0
	exitSampleFailed = 1
	exitFatal        = 2
)

// checkUpdate compares the installed engine version with the latest tag
// published for the engine repository.
func checkUpdate(cfg *config.Config) {
	if cfg.Engine.Version == "" {
		fmt.Println("Set engine.version in the config file to check for engine updates.")
		return
	}
	githubTag := &latest.GithubTag{
		Owner:      cfg.Update.Owner,
		Repository: cfg.Update.Repository,
	}

	res, err := latest.Check(githubTag, cfg.Engine.Version)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("A new %s release is available: %s (you have %s)\n", cfg.Update.Repository, res.Current, cfg.Engine.Version)
		fmt.Printf("Download it from https://github.com/%s/%s/releases\n", cfg.Update.Owner, cfg.Update.Repository)
	} else {
		fmt.Printf("%s %s is the latest release\n", cfg.Update.Repository, cfg.Engine.Version)
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: subpredict [options] [sample-dir ...]\n\n")
		fmt.Fprintf(os.Stderr, "subpredict runs substrate prediction for every eligible file of each sample\n")
		fmt.Fprintf(os.Stderr, "and reports which files failed. Eligible extensions: %v.\n\n", model.RecognizedFileTypes())
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  subpredict -d db data/S1            # Analyze one sample\n")
		fmt.Fprintf(os.Stderr, "  subpredict -d db -i data -o results # Analyze every sample under data/\n")
		fmt.Fprintf(os.Stderr, "  subpredict -i data --tui            # Watch progress interactively\n")
		fmt.Fprintf(os.Stderr, "  subpredict -i data --json           # Print results as JSON\n")
		fmt.Fprintf(os.Stderr, "  subpredict -d db -t 16 --write-config # Save these settings to subpredict.yaml\n")
	}

	configFlag := pflag.StringP("config", "c", "subpredict.yaml", "Path to the YAML config file")
	dbDirFlag := pflag.StringP("db-dir", "d", "", "Engine database directory (overrides analysis.db_dir)")
	gffFlag := pflag.StringP("gff-type", "g", "", "Sidecar annotation type: prodigal or NCBI_prok")
	threadsFlag := pflag.IntP("threads", "t", 0, "Threads passed to the engine")
	exeFlag := pflag.StringP("engine", "e", "", "Engine executable (overrides engine.executable)")
	inputRootFlag := pflag.StringP("input-root", "i", "", "Treat every subdirectory of this directory as a sample")
	outputFlag := pflag.StringP("output", "o", "results", "Root directory for sample results")
	nameFlag := pflag.StringP("name", "n", "", "Sample name (single sample only; defaults to the directory name)")
	reportFlag := pflag.BoolP("report", "r", false, "Print a summary report after the run")
	reportFileFlag := pflag.String("report-file", "", "Save the report to the specified file (implies --report)")
	jsonFlag := pflag.BoolP("json", "j", false, "Output results as JSON")
	tuiFlag := pflag.Bool("tui", false, "Show progress in an interactive terminal view")
	verboseFlag := pflag.BoolP("verbose", "v", false, "Log debug records to the console and add timings to the report")
	writeConfigFlag := pflag.Bool("write-config", false, "Save the effective configuration to --config and exit")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check whether a newer engine release is available")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return exitOK
	}

	if *versionFlag {
		fmt.Printf("subpredict version %s\n", model.Version)
		return exitOK
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return exitFatal
	}

	if *updateFlag {
		checkUpdate(cfg)
		return exitOK
	}

	if pflag.Lookup("db-dir").Changed {
		cfg.Analysis.DBDir = *dbDirFlag
	}
	if pflag.Lookup("gff-type").Changed {
		cfg.Analysis.GffType = *gffFlag
	}
	if pflag.Lookup("threads").Changed {
		cfg.Analysis.Threads = *threadsFlag
	}
	if pflag.Lookup("engine").Changed {
		cfg.Engine.Executable = *exeFlag
	}
	if *verboseFlag {
		cfg.Logging.ConsoleLevel = "debug"
	}
	if *writeConfigFlag {
		if err := cfg.Save(*configFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitFatal
		}
		fmt.Printf("Configuration saved to %s\n", *configFlag)
		return exitOK
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFatal
	}

	samples, err := collectSamples(pflag.Args(), *inputRootFlag, *outputFlag, *nameFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFatal
	}

	logCfg := cfg.LogConfig()
	if *tuiFlag || *jsonFlag {
		// The terminal belongs to the TUI or the JSON document; keep records in the file only.
		logCfg.Console = io.Discard
	}
	logger, closeLog, err := logging.New(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
		return exitFatal
	}
	defer closeLog()
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := predict.NewExecRunner()
	if *tuiFlag || *jsonFlag {
		runner.Stdout, runner.Stderr = io.Discard, io.Discard
	}
	batch := &predict.Batch{
		Analyzer: predict.NewAnalyzer(predict.NewPredictor(cfg.Engine.Executable, runner, logger), logger),
		Log:      logger,
	}
	params := cfg.Params()

	var results []model.SampleResult
	if *tuiFlag {
		results, err = runTuiMode(ctx, samples, func(ctx context.Context, observe predict.Observer) ([]model.SampleResult, error) {
			return batch.Run(ctx, samples, params, observe)
		})
	} else {
		results, err = batch.Run(ctx, samples, params, nil)
	}

	if *jsonFlag {
		if encErr := writeJSON(os.Stdout, results); encErr != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", encErr)
			return exitFatal
		}
	}

	if *reportFlag || *reportFileFlag != "" {
		if code := writeReport(results, *reportFileFlag, *verboseFlag); code != exitOK {
			return code
		}
	}

	if err != nil {
		logger.Error("Analysis aborted", zap.Error(err))
		if *tuiFlag || *jsonFlag {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return exitFatal
	}
	for _, r := range results {
		if !r.OK() {
			return exitSampleFailed
		}
	}
	return exitOK
}

// collectSamples resolves the samples named on the command line.
func collectSamples(args []string, inputRoot, resultRoot, name string) ([]model.Sample, error) {
	if inputRoot != "" && len(args) > 0 {
		return nil, errors.New("use either --input-root or sample directories, not both")
	}
	if name != "" && len(args) != 1 {
		return nil, errors.New("--name needs exactly one sample directory")
	}
	if inputRoot != "" {
		return predict.SamplesFromRoot(inputRoot, resultRoot)
	}
	if len(args) == 0 {
		return nil, errors.New("no samples given (see --help)")
	}
	samples := make([]model.Sample, 0, len(args))
	for _, dir := range args {
		samples = append(samples, predict.NewSample(dir, resultRoot, name))
	}
	return samples, nil
}

func writeJSON(w io.Writer, results []model.SampleResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func writeReport(results []model.SampleResult, outputFile string, verbose bool) int {
	if outputFile != "" {
		report := predict.GenerateReport(results, false, verbose)
		if err := os.WriteFile(outputFile, []byte(report+"\n"), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report to %s: %v\n", outputFile, err)
			return exitFatal
		}
		fmt.Printf("Report saved to %s\n", outputFile)
		return exitOK
	}
	styled := isatty.IsTerminal(os.Stdout.Fd())
	fmt.Println(predict.GenerateReport(results, styled, verbose))
	return exitOK
}

func runTuiMode(ctx context.Context, samples []model.Sample, run tui.RunFunc) ([]model.SampleResult, error) {
	m := tui.InitialModel(ctx, samples, run)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("terminal view: %w", err)
	}
	fm := final.(tui.AppModel)
	if fm.Running {
		// Quit before the batch returned; the context is already cancelled.
		return fm.Results, context.Canceled
	}
	return fm.Results, fm.Err
}
