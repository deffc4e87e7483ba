package evalpost

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/evalpost/internal/resolve"
)

const threeExampleBundle = `{
  "score": 0.3333,
  "htmls": [
    "<p>Example A</p><p>Score: True</p>",
    "<p>Example B</p><p>Score: True</p>",
    "<p>Example C</p><p>Score: 0.0</p>"
  ],
  "convos": [
    [],
    [{"role": "user", "content": "q"}, {"role": "assistant", "content": "Exact Answer: B"}],
    [{"role": "user", "content": "q"}, {"role": "assistant", "content": "Exact Answer: C"}]
  ]
}`

func TestPostprocessEndToEnd(t *testing.T) {
	resetCommandState(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "browsecomp_20250101_allresults.json", threeExampleBundle)

	out, err := execute(t, "--file", input)
	if err != nil {
		t.Fatalf("ExecuteC error: %v\n%s", err, out.stderr)
	}

	summary, written := decodeOutputs(t, out.stdout)
	if summary["file"] != input {
		t.Fatalf("unexpected file %v", summary["file"])
	}
	if summary["original_aggregate_score"] != 0.3333 {
		t.Fatalf("expected passthrough score, got %v", summary["original_aggregate_score"])
	}
	checks := map[string]float64{
		"total_examples":                      3,
		"kept_examples":                       2,
		"skipped_examples":                    1,
		"recomputed_accuracy_excluding_empty": 0.5,
	}
	for key, want := range checks {
		if summary[key] != want {
			t.Fatalf("%s=%v want %v", key, summary[key], want)
		}
	}

	wantHTML := filepath.Join(dir, "browsecomp_20250101_postprocessed.html")
	if written["postprocessed_html"] != wantHTML {
		t.Fatalf("unexpected report path %v", written["postprocessed_html"])
	}
	data, err := os.ReadFile(wantHTML)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	doc := string(data)
	if strings.Contains(doc, "Example A") {
		t.Fatalf("skipped example must not appear in report")
	}
	if !(strings.Index(doc, "Accuracy (kept): 0.500") < strings.Index(doc, "Example B") &&
		strings.Index(doc, "Example B") < strings.Index(doc, "Example C")) {
		t.Fatalf("report order wrong:\n%s", doc)
	}
	if !strings.Contains(out.stderr, "kept 2/3") {
		t.Fatalf("expected badge on stderr, got %s", out.stderr)
	}
}

func TestPostprocessIsIdempotent(t *testing.T) {
	resetCommandState(t)
	input := writeFile(t, t.TempDir(), "browsecomp_run_allresults.json", threeExampleBundle)

	first, err := execute(t, "--file", input, "--quiet")
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	report := filepath.Join(filepath.Dir(input), "browsecomp_run_postprocessed.html")
	firstHTML, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("read first report: %v", err)
	}

	second, err := execute(t, "--file", input, "--quiet")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	secondHTML, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("read second report: %v", err)
	}

	if first.stdout != second.stdout {
		t.Fatalf("summary changed between runs:\n%s\n---\n%s", first.stdout, second.stdout)
	}
	if string(firstHTML) != string(secondHTML) {
		t.Fatalf("report changed between runs")
	}
	if strings.Contains(second.stderr, "kept 2/3") {
		t.Fatalf("--quiet should suppress the badge")
	}
}

func TestPostprocessLatest(t *testing.T) {
	resetCommandState(t)
	dir := t.TempDir()
	writeFile(t, dir, "browsecomp_20250101_allresults.json", `{"htmls": [], "convos": []}`)
	latest := writeFile(t, dir, "browsecomp_20250201_allresults.json", threeExampleBundle)

	out, err := execute(t, "--latest", "--searchDir", dir, "--quiet")
	if err != nil {
		t.Fatalf("ExecuteC error: %v", err)
	}
	summary, _ := decodeOutputs(t, out.stdout)
	if summary["file"] != latest {
		t.Fatalf("expected latest bundle %s, got %v", latest, summary["file"])
	}
}

func TestPostprocessFileBeatsLatest(t *testing.T) {
	resetCommandState(t)
	dir := t.TempDir()
	writeFile(t, dir, "browsecomp_20990101_allresults.json", threeExampleBundle)
	explicit := writeFile(t, t.TempDir(), "mine_allresults.json", threeExampleBundle)

	out, err := execute(t, "--file", explicit, "--latest", "--searchDir", dir, "--quiet")
	if err != nil {
		t.Fatalf("ExecuteC error: %v", err)
	}
	summary, _ := decodeOutputs(t, out.stdout)
	if summary["file"] != explicit {
		t.Fatalf("expected explicit file, got %v", summary["file"])
	}
}

func TestPostprocessConfigurationErrors(t *testing.T) {
	resetCommandState(t)
	if _, err := execute(t); !errors.Is(err, resolve.ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}

	resetCommandState(t)
	out, err := execute(t, "--latest", "--searchDir", t.TempDir())
	if !errors.Is(err, resolve.ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
	if out.stdout != "" {
		t.Fatalf("no output expected on configuration error, got %s", out.stdout)
	}
}

func TestPostprocessMalformedInput(t *testing.T) {
	resetCommandState(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "broken_allresults.json", `{"htmls": [`)

	out, err := execute(t, "--file", input)
	if err == nil {
		t.Fatalf("expected parse failure")
	}
	if out.stdout != "" {
		t.Fatalf("no summary expected, got %s", out.stdout)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "broken_postprocessed.html")); !os.IsNotExist(statErr) {
		t.Fatalf("no report expected, stat err=%v", statErr)
	}
}

func TestPostprocessLengthMismatchWarns(t *testing.T) {
	resetCommandState(t)
	input := writeFile(t, t.TempDir(), "mismatch_allresults.json", `{
		"htmls": ["Score: True", "Score: False", "Score: True", "Score: True", "Score: True"],
		"convos": [[{"role": "assistant", "content": "a"}], [{"role": "assistant", "content": "b"}], [{"role": "assistant", "content": "c"}]]
	}`)

	out, err := execute(t, "--file", input, "--quiet")
	if err != nil {
		t.Fatalf("mismatch must not be fatal: %v", err)
	}
	if !strings.Contains(out.stderr, "length mismatch") {
		t.Fatalf("expected warning on stderr, got %s", out.stderr)
	}
	summary, _ := decodeOutputs(t, out.stdout)
	if summary["processed_examples"] != float64(3) {
		t.Fatalf("expected 3 processed, got %v", summary["processed_examples"])
	}
	if summary["kept_examples"].(float64)+summary["skipped_examples"].(float64) != 3 {
		t.Fatalf("kept+skipped must equal processed: %v", summary)
	}
}

func TestPostprocessCustomPlaceholdersAndOutput(t *testing.T) {
	resetCommandState(t)
	dir := t.TempDir()
	configPath := writeFile(t, dir, "evalpost.yaml", "placeholderPrefixes:\n  - \"Rate limited\"\n")
	input := writeFile(t, dir, "run_allresults.json", `{
		"htmls": ["Score: True", "Score: False"],
		"convos": [[{"role": "assistant", "content": "Rate limited by provider"}], [{"role": "assistant", "content": "answer"}]]
	}`)
	htmlOut := filepath.Join(dir, "custom.html")

	out, err := execute(t, "--config", configPath, "--file", input, "--html-output", htmlOut, "--quiet")
	if err != nil {
		t.Fatalf("ExecuteC error: %v", err)
	}
	summary, written := decodeOutputs(t, out.stdout)
	if summary["skipped_empty_responses"] != float64(1) || summary["recomputed_accuracy_excluding_empty"] != float64(0) {
		t.Fatalf("expected custom placeholder skip, got %v", summary)
	}
	if written["postprocessed_html"] != htmlOut {
		t.Fatalf("expected override path, got %v", written["postprocessed_html"])
	}
	if _, err := os.Stat(htmlOut); err != nil {
		t.Fatalf("expected report at override path: %v", err)
	}
}

func TestPostprocessRefusesToOverwriteInput(t *testing.T) {
	resetCommandState(t)
	dir := t.TempDir()
	configPath := writeFile(t, dir, "evalpost.yaml", "sourceToken: \"\"\nreportExt: .json\n")
	input := writeFile(t, dir, "run_allresults.json", threeExampleBundle)

	_, err := execute(t, "--config", configPath, "--file", input, "--quiet")
	if err == nil || !strings.Contains(err.Error(), "would overwrite the input") {
		t.Fatalf("expected overwrite guard, got %v", err)
	}
	data, readErr := os.ReadFile(input)
	if readErr != nil || string(data) != threeExampleBundle {
		t.Fatalf("input bundle must be untouched")
	}
}
