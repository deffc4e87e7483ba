package report

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	badgeStyle = lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("0")).Padding(0, 1)
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// Badge returns a one-line, terminal-styled recap of a summary.
func Badge(s Summary) string {
	counts := fmt.Sprintf("kept %d/%d", s.KeptExamples, s.KeptExamples+s.SkippedExamples)
	if s.SkippedExamples > 0 {
		counts = warnStyle.Render(counts)
	} else {
		counts = goodStyle.Render(counts)
	}
	return fmt.Sprintf("%s %s accuracy %.3f", badgeStyle.Render("evalpost"), counts, s.RecomputedAccuracy)
}
