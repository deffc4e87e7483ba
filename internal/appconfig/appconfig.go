// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultSearchDir is the directory scanned when the latest results bundle is requested.
	DefaultSearchDir = "/tmp"
	// DefaultPattern matches the bundles written by a BrowseComp evaluation run.
	DefaultPattern = "browsecomp_*_allresults.json"
	// DefaultSourceToken is the pipeline-stage marker replaced in the input path.
	DefaultSourceToken = "_allresults"
	// DefaultTargetToken replaces DefaultSourceToken when deriving the report path.
	DefaultTargetToken = "_postprocessed"
	// DefaultReportExt is the extension given to the derived report path.
	DefaultReportExt = ".html"
	// DefaultPlaceholderPrefix is the content inserted when a model call could not be completed.
	DefaultPlaceholderPrefix = "No response (bad request)"
)

// Config represents the top-level application configuration.
type Config struct {
	Debug               bool     `json:"debug"`
	Quiet               bool     `json:"quiet"`
	LogFile             string   `json:"logFile,omitempty"`
	SearchDir           string   `json:"searchDir,omitempty"`
	Pattern             string   `json:"pattern,omitempty"`
	SourceToken         string   `json:"sourceToken,omitempty"`
	TargetToken         string   `json:"targetToken,omitempty"`
	ReportExt           string   `json:"reportExt,omitempty"`
	PlaceholderPrefixes []string `json:"placeholderPrefixes,omitempty"`
	ConfigPath          string   `json:"-"`
}

// Defaults returns a Config populated with every documented default.
func Defaults() Config {
	return Config{
		SearchDir:           DefaultSearchDir,
		Pattern:             DefaultPattern,
		SourceToken:         DefaultSourceToken,
		TargetToken:         DefaultTargetToken,
		ReportExt:           DefaultReportExt,
		PlaceholderPrefixes: []string{DefaultPlaceholderPrefix},
	}
}

// SearchDirectory returns the directory used by --latest, falling back to the default if not set.
func (c Config) SearchDirectory() string {
	if dir := strings.TrimSpace(c.SearchDir); dir != "" {
		return dir
	}
	return DefaultSearchDir
}

// SearchPattern returns the glob used by --latest, falling back to the default if not set.
func (c Config) SearchPattern() string {
	if pattern := strings.TrimSpace(c.Pattern); pattern != "" {
		return pattern
	}
	return DefaultPattern
}

// ReportExtension returns the extension of the derived report path.
func (c Config) ReportExtension() string {
	if ext := strings.TrimSpace(c.ReportExt); ext != "" {
		return ext
	}
	return DefaultReportExt
}

// Placeholders returns the placeholder prefixes, applying the default list if none are configured.
// Blank entries are dropped so that they cannot match every response.
func (c Config) Placeholders() []string {
	out := make([]string, 0, len(c.PlaceholderPrefixes))
	for _, prefix := range c.PlaceholderPrefixes {
		if strings.TrimSpace(prefix) == "" {
			continue
		}
		out = append(out, prefix)
	}
	if len(out) == 0 {
		return []string{DefaultPlaceholderPrefix}
	}
	return out
}

// Validate reports configuration values that cannot produce a usable run.
func (c Config) Validate() error {
	var errs []error
	if c.Pattern != "" && strings.TrimSpace(c.Pattern) == "" {
		errs = append(errs, errors.New("pattern must not be blank"))
	}
	if ext := c.ReportExtension(); !strings.HasPrefix(ext, ".") {
		errs = append(errs, fmt.Errorf("reportExt %q must start with '.'", ext))
	}
	if strings.ContainsAny(c.TargetToken, `/\`) {
		errs = append(errs, fmt.Errorf("targetToken %q must not contain path separators", c.TargetToken))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
