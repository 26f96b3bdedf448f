package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"subpredict/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")) // Pinkish

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // Grey

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Sky Blue/Cyan
			Bold(true)
)

func (m AppModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("subpredict " + model.Version))
	b.WriteString("\n\n")
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m AppModel) footer() string {
	if m.Running {
		done := 0
		for _, r := range m.Rows {
			if r.Done {
				done++
			}
		}
		return dimStyle.Render(fmt.Sprintf("%d/%d samples  •  ↑/↓ scroll  •  q abort", done, len(m.Rows)))
	}
	if m.Err != nil {
		return failStyle.Render(fmt.Sprintf("Aborted: %v", m.Err)) + dimStyle.Render("  •  q quit")
	}
	failed := 0
	for _, r := range m.Results {
		if !r.OK() {
			failed++
		}
	}
	summary := okStyle.Render(fmt.Sprintf("All %d samples analyzed", len(m.Results)))
	if failed > 0 {
		summary = failStyle.Render(fmt.Sprintf("%d of %d samples had failures", failed, len(m.Results)))
	}
	return summary + dimStyle.Render("  •  q quit")
}

// renderRows draws one line per sample and, for started samples, one per file.
func (m AppModel) renderRows() string {
	var b strings.Builder
	for _, r := range m.Rows {
		switch {
		case r.Done && r.Err != nil:
			b.WriteString(failStyle.Render(fmt.Sprintf("%s %s: %v", model.IconFailed, r.Sample.Name, r.Err)))
		case r.Done && r.OK:
			b.WriteString(okStyle.Render(fmt.Sprintf("%s %s", model.IconOK, r.Sample.Name)))
		case r.Done:
			b.WriteString(failStyle.Render(fmt.Sprintf("%s %s", model.IconFailed, r.Sample.Name)))
		case r.Files != nil:
			b.WriteString(activeStyle.Render(fmt.Sprintf("%s %s", m.Spinner.View(), r.Sample.Name)))
		default:
			b.WriteString(dimStyle.Render(fmt.Sprintf("%s %s", model.IconPending, r.Sample.Name)))
		}
		b.WriteString("\n")

		for _, f := range r.Files {
			line := fmt.Sprintf("    %s %s", f.Status, f.Name)
			switch f.Status {
			case model.IconOK:
				b.WriteString(okStyle.Render(line))
			case model.IconFailed:
				b.WriteString(failStyle.Render(line))
			case model.IconRunning:
				b.WriteString(activeStyle.Render(line))
			default:
				b.WriteString(dimStyle.Render(line))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
