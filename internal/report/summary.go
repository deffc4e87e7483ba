// Package report emits the post-processing summary and the HTML report.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mwiater/evalpost/internal/accuracy"
)

// Summary is the machine-readable outcome of a post-processing run.
type Summary struct {
	File                   string          `json:"file"`
	OriginalAggregateScore json.RawMessage `json:"original_aggregate_score"`
	TotalExamples          int             `json:"total_examples"`
	KeptExamples           int             `json:"kept_examples"`
	SkippedExamples        int             `json:"skipped_examples"`
	RecomputedAccuracy     float64         `json:"recomputed_accuracy_excluding_empty"`
	ProcessedExamples      int             `json:"processed_examples"`
	SkippedEmptyResponses  int             `json:"skipped_empty_responses"`
	SkippedMissingScores   int             `json:"skipped_missing_scores"`
}

// Written announces the location of the generated report.
type Written struct {
	PostprocessedHTML string `json:"postprocessed_html"`
}

// NewSummary builds the summary for file from an aggregation result.
// originalScore is passed through untouched; nil renders as null.
func NewSummary(file string, originalScore json.RawMessage, res accuracy.Result) Summary {
	return Summary{
		File:                   file,
		OriginalAggregateScore: originalScore,
		TotalExamples:          res.Total,
		KeptExamples:           res.Kept,
		SkippedExamples:        res.Skipped,
		RecomputedAccuracy:     res.Accuracy,
		ProcessedExamples:      res.Processed,
		SkippedEmptyResponses:  res.SkippedEmpty,
		SkippedMissingScores:   res.SkippedMissingScore,
	}
}

// WriteJSON pretty-prints v to w with a two-space indent and a trailing newline.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to marshal JSON: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("unable to write JSON: %w", err)
	}
	return nil
}
