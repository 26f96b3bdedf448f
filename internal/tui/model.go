package tui

import (
	"context"

	"subpredict/internal/model"
	"subpredict/internal/predict"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// fileRow is the display state of one input file.
type fileRow struct {
	Name   string
	Status string // One of the model.Icon* constants
}

// sampleRow is the display state of one sample.
type sampleRow struct {
	Sample model.Sample
	Files  []fileRow
	Done   bool
	OK     bool
	Err    error
}

// RunFunc runs the batch, reporting progress through observe.
type RunFunc func(ctx context.Context, observe predict.Observer) ([]model.SampleResult, error)

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Rows    []sampleRow
	Results []model.SampleResult
	Running bool
	Err     error

	// Plumbing
	run    RunFunc
	ctx    context.Context
	cancel context.CancelFunc
	events chan predict.Event

	// UI State
	WindowSize tea.WindowSizeMsg

	// Components
	Spinner  spinner.Model
	Viewport viewport.Model
}

// InitialModel returns the initial state for a batch over samples.
func InitialModel(parent context.Context, samples []model.Sample, run RunFunc) AppModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	rows := make([]sampleRow, len(samples))
	for i, s := range samples {
		rows[i] = sampleRow{Sample: s}
	}

	ctx, cancel := context.WithCancel(parent)
	return AppModel{
		Rows:     rows,
		Running:  true,
		run:      run,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan predict.Event),
		Spinner:  sp,
		Viewport: viewport.New(80, 20),
	}
}

// Init starts the spinner, the batch and the event pump.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, m.startBatch(), waitForEvent(m.events))
}
