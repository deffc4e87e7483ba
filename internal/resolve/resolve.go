// Package resolve decides which results bundle a run operates on.
package resolve

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
)

var (
	// ErrNoInput is returned when neither an explicit path nor --latest was given.
	ErrNoInput = errors.New("must provide --file or --latest")
	// ErrNoCandidates is returned when --latest finds nothing to process.
	ErrNoCandidates = errors.New("no matching results files found")
)

// Options describes how the input path should be chosen.
type Options struct {
	File      string
	Latest    bool
	SearchDir string
	Pattern   string
}

// Input returns the bundle path for a run. An explicit file always wins and
// is used verbatim; otherwise Latest selects the newest match in SearchDir.
func Input(opts Options) (string, error) {
	if opts.File != "" {
		return opts.File, nil
	}
	if !opts.Latest {
		return "", ErrNoInput
	}
	return LatestMatch(opts.SearchDir, opts.Pattern)
}

// LatestMatch returns the lexicographically last file in dir matching
// pattern. Bundle names embed a sortable run identifier, so the last entry
// is the most recent run.
func LatestMatch(dir, pattern string) (string, error) {
	glob := filepath.Join(dir, pattern)
	candidates, err := filepath.Glob(glob)
	if err != nil {
		return "", fmt.Errorf("invalid search pattern %q: %w", glob, err)
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoCandidates, glob)
	}
	sort.Strings(candidates)
	return candidates[len(candidates)-1], nil
}
