// accuracy/accuracy.go
package accuracy

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mwiater/evalpost/internal/logging"
	"github.com/mwiater/evalpost/internal/results"
)

var scorePattern = regexp.MustCompile(`Score:[\s\v\p{Z}]*(True|False|[0-9]+(?:\.[0-9]+)?)`)

// ExtractScore returns the per-example score printed in an example's markup.
// "True" and "False" map to 1 and 0, a decimal token is parsed as-is. The
// second return value is false when no usable score is present.
func ExtractScore(fragment string) (float64, bool) {
	token, found := findScoreToken(fragment)
	if !found && strings.Contains(fragment, "<") {
		// The marker may be split by inline markup, e.g. <b>Score:</b> True.
		token, found = findBlockScoreToken(fragment)
	}
	if !found {
		return 0, false
	}
	return parseScoreToken(token)
}

func findScoreToken(s string) (string, bool) {
	m := scorePattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func parseScoreToken(token string) (float64, bool) {
	switch token {
	case "True":
		return 1, true
	case "False":
		return 0, true
	}
	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// inlineElements may sit inside a marker without ending it.
var inlineElements = map[string]bool{
	"a": true, "abbr": true, "b": true, "code": true, "em": true, "font": true,
	"i": true, "kbd": true, "mark": true, "s": true, "samp": true, "small": true,
	"span": true, "strong": true, "sub": true, "sup": true, "tt": true, "u": true,
}

// blockBreak separates text of sibling blocks; it is not matched by the
// whitespace class of scorePattern, so a marker never spans two blocks.
const blockBreak = "\x00"

// findBlockScoreToken searches the text of each element on its own, with
// inline children folded in and block children, scripts and styles cut out.
func findBlockScoreToken(fragment string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", false
	}

	var token string
	var found bool
	doc.Find("*").Not("head, script, style, template, title").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		token, found = findScoreToken(blockText(sel))
		return !found
	})
	return token, found
}

func blockText(sel *goquery.Selection) string {
	var b strings.Builder
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		switch name := goquery.NodeName(child); {
		case name == "#text":
			b.WriteString(child.Text())
		case inlineElements[name]:
			b.WriteString(blockText(child))
		default:
			b.WriteString(blockBreak)
		}
	})
	return b.String()
}

// IsEmptyResponse reports whether a conversation ended without a real model
// answer: no messages, a blank final message, or a final message that starts
// with one of the placeholder prefixes.
func IsEmptyResponse(convo results.Conversation, placeholders []string) bool {
	last, ok := convo.Last()
	if !ok {
		return true
	}
	content := strings.TrimSpace(last.Content)
	if content == "" {
		return true
	}
	for _, prefix := range placeholders {
		if prefix != "" && strings.HasPrefix(content, prefix) {
			return true
		}
	}
	return false
}

// Aggregate walks the bundle once, keeping examples that have a real response
// and a parseable score, and recomputes accuracy over the kept scores only.
// Accuracy is 0 when nothing is kept.
func Aggregate(bundle results.Bundle, placeholders []string) Result {
	n := bundle.Len()
	res := Result{
		Total:          len(bundle.HTMLs),
		Processed:      n,
		LengthMismatch: bundle.LengthMismatch(),
		Scores:         make([]float64, 0, n),
		KeptHTMLs:      make([]string, 0, n),
		Outcomes:       make([]Outcome, 0, n),
	}
	if res.LengthMismatch {
		logging.LogWarning("htmls (%d) and convos (%d) length mismatch; proceeding with min length", len(bundle.HTMLs), len(bundle.Convos))
	}

	for i := 0; i < n; i++ {
		if IsEmptyResponse(bundle.Convos[i], placeholders) {
			res.SkippedEmpty++
			res.Outcomes = append(res.Outcomes, Outcome{Index: i, Reason: SkipEmptyResponse})
			continue
		}
		score, ok := ExtractScore(bundle.HTMLs[i])
		if !ok {
			res.SkippedMissingScore++
			res.Outcomes = append(res.Outcomes, Outcome{Index: i, Reason: SkipMissingScore})
			continue
		}
		res.Scores = append(res.Scores, score)
		res.KeptHTMLs = append(res.KeptHTMLs, bundle.HTMLs[i])
		res.Outcomes = append(res.Outcomes, Outcome{Index: i, Kept: true, Score: score})
	}

	res.Kept = len(res.Scores)
	res.Skipped = res.SkippedEmpty + res.SkippedMissingScore
	res.Accuracy = mean(res.Scores)
	return res
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
