package appconfig

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fmt.Fprintln(out, headingStyle.Render("Current configuration:"))
	if cfg == nil {
		defaults := Defaults()
		cfg = &defaults
	}

	logFile := cfg.LogFile
	if logFile == "" {
		logFile = "(stderr only)"
	}
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Quiet:           %v\n", cfg.Quiet)
	fmt.Fprintf(out, "  Log File:        %s\n", logFile)
	fmt.Fprintf(out, "  Search Dir:      %s\n", cfg.SearchDirectory())
	fmt.Fprintf(out, "  Pattern:         %s\n", cfg.SearchPattern())
	fmt.Fprintf(out, "  Source Token:    %q\n", cfg.SourceToken)
	fmt.Fprintf(out, "  Target Token:    %q\n", cfg.TargetToken)
	fmt.Fprintf(out, "  Report Ext:      %s\n", cfg.ReportExtension())
	fmt.Fprintf(out, "  Placeholders:    %s\n", strings.Join(quoteAll(cfg.Placeholders()), ", "))
}

func quoteAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprintf("%q", v)
	}
	return out
}
