package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/quarrylabs/exprquest/internal/search"
)

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	styleExact  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	styleMuted  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleBox    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)
)

// renderResult renders a ranked result table plus a summary line.
func renderResult(target float64, res *search.Result) string {
	var sb strings.Builder

	sb.WriteString(styleHeader.Render(fmt.Sprintf("Closest expressions to %s", formatValue(target))))
	sb.WriteByte('\n')

	if len(res.Candidates) == 0 {
		sb.WriteString(styleMuted.Render("no candidates retained"))
		sb.WriteByte('\n')
	} else {
		sb.WriteString(styleBox.Render(renderRows(res.Candidates)))
		sb.WriteByte('\n')
	}

	summary := fmt.Sprintf("considered %d candidates up to cost %d in %s",
		res.Stats.Considered, res.Stats.HighestCost, res.Stats.Elapsed.Round(1e6))
	if res.Stats.Stopped {
		summary += " (budget reached)"
	}
	sb.WriteString(styleMuted.Render(summary))
	return sb.String()
}

func renderRows(candidates []search.Candidate) string {
	rows := make([][3]string, len(candidates))
	widths := [3]int{len("error"), len("value"), len("expression")}
	for i, c := range candidates {
		rows[i] = [3]string{formatValue(c.Error), formatValue(c.Value), c.Text}
		for j, cell := range rows[i] {
			if len(cell) > widths[j] {
				widths[j] = len(cell)
			}
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%4s  %-*s  %-*s  %s", "#", widths[0], "error", widths[1], "value", "expression")
	for i, row := range rows {
		line := fmt.Sprintf("%4d  %-*s  %-*s  %s", i+1, widths[0], row[0], widths[1], row[1], row[2])
		sb.WriteByte('\n')
		if candidates[i].Error == 0 {
			sb.WriteString(styleExact.Render(line))
		} else {
			sb.WriteString(line)
		}
	}
	return sb.String()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 12, 64)
}
