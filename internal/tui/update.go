package tui

import (
	"subpredict/internal/model"
	"subpredict/internal/predict"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// MsgEvent carries one batch progress event.
type MsgEvent predict.Event

// MsgBatchDone indicates that the batch has returned.
type MsgBatchDone struct {
	Results []model.SampleResult
	Err     error
}

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.Viewport.Width = msg.Width
		m.Viewport.Height = msg.Height - 4 // minus header/footer
		m.Viewport.SetContent(m.renderRows())
		return m, nil

	case MsgEvent:
		m.apply(predict.Event(msg))
		m.Viewport.SetContent(m.renderRows())
		return m, waitForEvent(m.events)

	case MsgBatchDone:
		m.Running = false
		m.Results = msg.Results
		m.Err = msg.Err
		m.Viewport.SetContent(m.renderRows())
		return m, nil

	case spinner.TickMsg:
		if !m.Running {
			return m, nil
		}
		m.Spinner, cmd = m.Spinner.Update(msg)
		m.Viewport.SetContent(m.renderRows())
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.cancel()
			return m, tea.Quit
		case "up", "k":
			m.Viewport.LineUp(1)
		case "down", "j":
			m.Viewport.LineDown(1)
		case "g":
			m.Viewport.GotoTop()
		case "G":
			m.Viewport.GotoBottom()
		}
	}

	return m, cmd
}

// apply folds a batch event into the rows.
func (m *AppModel) apply(ev predict.Event) {
	row := m.rowFor(ev.Sample)
	if row == nil {
		return
	}
	switch ev.Kind {
	case predict.SampleStarted:
		row.Files = make([]fileRow, len(ev.Files))
		for i, f := range ev.Files {
			row.Files[i] = fileRow{Name: f, Status: model.IconPending}
		}
		if len(row.Files) > 0 {
			row.Files[0].Status = model.IconRunning
		}
	case predict.FileDone:
		for i := range row.Files {
			if row.Files[i].Name != ev.File.File {
				continue
			}
			row.Files[i].Status = model.IconOK
			if !ev.File.OK {
				row.Files[i].Status = model.IconFailed
			}
			if i+1 < len(row.Files) {
				row.Files[i+1].Status = model.IconRunning
			}
			break
		}
	case predict.SampleDone:
		row.Done = true
		row.Err = ev.Err
		row.OK = ev.Err == nil && ev.Result != nil && ev.Result.OK()
	}
}

func (m *AppModel) rowFor(s model.Sample) *sampleRow {
	for i := range m.Rows {
		if m.Rows[i].Sample.Name == s.Name && m.Rows[i].Sample.InputDir == s.InputDir {
			return &m.Rows[i]
		}
	}
	return nil
}

// startBatch runs the batch in the background and forwards its events.
func (m AppModel) startBatch() tea.Cmd {
	return func() tea.Msg {
		defer close(m.events)
		results, err := m.run(m.ctx, func(ev predict.Event) {
			select {
			case m.events <- ev:
			case <-m.ctx.Done():
			}
		})
		return MsgBatchDone{Results: results, Err: err}
	}
}

// waitForEvent blocks until the next batch event. A closed channel yields nil.
func waitForEvent(ch <-chan predict.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return MsgEvent(ev)
	}
}
