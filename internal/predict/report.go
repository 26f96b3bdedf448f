package predict

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"subpredict/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42")) // Green

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// GenerateReport renders a summary of a batch run. With styled set the
// output carries terminal colours; verbose adds skipped entries and timings.
func GenerateReport(results []model.SampleResult, styled, verbose bool) string {
	render := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	var b strings.Builder
	var failedSamples int
	for _, r := range results {
		if !r.OK() {
			failedSamples++
		}
	}

	b.WriteString(render(headerStyle, "Substrate prediction report"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Samples: %d, failed: %d\n\n", len(results), failedSamples)

	for _, r := range results {
		icon, style := model.IconOK, okStyle
		if !r.OK() {
			icon, style = model.IconFailed, failStyle
		}
		line := fmt.Sprintf("%s %s (%d files)", icon, r.Sample.Name, len(r.Files))
		if verbose {
			line += render(dimStyle, fmt.Sprintf("  %s", r.Elapsed.Round(time.Millisecond)))
		}
		b.WriteString(render(style, line))
		b.WriteString("\n")
		if r.Aborted() {
			b.WriteString(render(failStyle, fmt.Sprintf("    aborted: %s", r.Error)))
			b.WriteString("\n")
		}

		for _, f := range r.Files {
			if f.OK && !verbose {
				continue
			}
			fi, fs := model.IconOK, okStyle
			if !f.OK {
				fi, fs = model.IconFailed, failStyle
			}
			fl := fmt.Sprintf("    %s %s", fi, f.File)
			if verbose {
				fl += fmt.Sprintf("  %s", f.Elapsed.Round(time.Millisecond))
			}
			b.WriteString(render(fs, fl))
			b.WriteString("\n")
		}
		if verbose {
			for _, s := range r.Skipped {
				b.WriteString(render(dimStyle, fmt.Sprintf("    %s %s (skipped)", model.IconSkipped, s)))
				b.WriteString("\n")
			}
			if len(r.Files) == 0 {
				b.WriteString(render(dimStyle, "    no eligible files"))
				b.WriteString("\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
