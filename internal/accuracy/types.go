// accuracy/types.go
package accuracy

// SkipReason records why an example was left out of the recomputed accuracy.
type SkipReason string

const (
	// SkipNone marks a kept example.
	SkipNone SkipReason = ""
	// SkipEmptyResponse marks an example whose final message was empty or a placeholder.
	SkipEmptyResponse SkipReason = "empty_response"
	// SkipMissingScore marks an example whose markup had no parseable score.
	SkipMissingScore SkipReason = "missing_score"
)

// Outcome is the decision taken for a single example.
type Outcome struct {
	Index  int        `json:"index"`
	Kept   bool       `json:"kept"`
	Score  float64    `json:"score"`
	Reason SkipReason `json:"reason,omitempty"`
}

// Result is the aggregate of one pass over a bundle.
type Result struct {
	// Total is the number of HTML fragments in the bundle.
	Total int `json:"total"`
	// Processed is the number of indices visited, min(len(htmls), len(convos)).
	Processed           int       `json:"processed"`
	Kept                int       `json:"kept"`
	Skipped             int       `json:"skipped"`
	SkippedEmpty        int       `json:"skipped_empty"`
	SkippedMissingScore int       `json:"skipped_missing_score"`
	Accuracy            float64   `json:"accuracy"`
	LengthMismatch      bool      `json:"length_mismatch"`
	Scores              []float64 `json:"scores"`
	KeptHTMLs           []string  `json:"-"`
	Outcomes            []Outcome `json:"outcomes"`
}
