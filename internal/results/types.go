// Package results loads the allresults bundle written by an evaluation run.
package results

import "encoding/json"

// Message is a single turn of an evaluated conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is the ordered transcript of one evaluated example.
type Conversation []Message

// Last returns the final message of the conversation and false when it is empty.
func (c Conversation) Last() (Message, bool) {
	if len(c) == 0 {
		return Message{}, false
	}
	return c[len(c)-1], true
}

// Bundle is the parsed allresults document. HTMLs and Convos are parallel:
// index i of each describes the same example. Missing keys decode as empty
// sequences. Score is passed through untouched and is nil when absent.
type Bundle struct {
	Score  json.RawMessage `json:"score,omitempty"`
	HTMLs  []string        `json:"htmls"`
	Convos []Conversation  `json:"convos"`
}

// Len returns the number of examples that can be processed, the shorter of
// the two parallel sequences.
func (b Bundle) Len() int {
	return min(len(b.HTMLs), len(b.Convos))
}

// LengthMismatch reports whether the parallel sequences disagree in length.
func (b Bundle) LengthMismatch() bool {
	return len(b.HTMLs) != len(b.Convos)
}
