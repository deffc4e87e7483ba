package report

import (
	"bytes"
	"html/template"
	"path/filepath"

	"github.com/mwiater/evalpost/internal/accuracy"
	"github.com/mwiater/evalpost/internal/util"
)

type documentData struct {
	Title     string
	Fragments []template.HTML
}

type headerData struct {
	Source   string
	Total    int
	Kept     int
	Skipped  int
	Accuracy float64
}

// Header renders the summary block placed before the kept examples.
func Header(file string, res accuracy.Result) (string, error) {
	var buf bytes.Buffer
	err := headerTemplate.Execute(&buf, headerData{
		Source:   filepath.Base(file),
		Total:    res.Total,
		Kept:     res.Kept,
		Skipped:  res.Skipped,
		Accuracy: res.Accuracy,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Render joins trusted HTML fragments, in order, into one standalone document.
func Render(fragments []string) (string, error) {
	data := documentData{
		Title:     "Postprocessed Report",
		Fragments: make([]template.HTML, len(fragments)),
	}
	for i, fragment := range fragments {
		data.Fragments[i] = template.HTML(fragment)
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Build renders the full report for a run: the header block followed by
// every kept example fragment.
func Build(file string, res accuracy.Result) (string, error) {
	header, err := Header(file, res)
	if err != nil {
		return "", err
	}
	fragments := make([]string, 0, len(res.KeptHTMLs)+1)
	fragments = append(fragments, header)
	fragments = append(fragments, res.KeptHTMLs...)
	return Render(fragments)
}

// Write stores the rendered document at path, replacing any previous report.
func Write(path, document string) error {
	return util.WriteFile(path, []byte(document))
}

var headerTemplate = template.Must(template.New("header").Parse(headerTemplateHTML))

const headerTemplateHTML = `<h2>Postprocessed Report</h2>` +
	`<p>Source JSON: {{ .Source }}</p>` +
	`<p>Total: {{ .Total }} | Kept: {{ .Kept }} | Skipped: {{ .Skipped }} | Accuracy (kept): {{ printf "%.3f" .Accuracy }}</p>`

var documentTemplate = template.Must(template.New("report").Parse(documentTemplateHTML))

const documentTemplateHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{ .Title }}</title>
  <style>
    .message {
      padding: 8px 16px;
      margin-bottom: 8px;
      border-radius: 4px;
    }
    .message.user {
      background-color: #B2DFDB;
      color: #00695C;
    }
    .message.assistant {
      background-color: #B39DDB;
      color: #4527A0;
    }
    .message.system {
      background-color: #EEEEEE;
      color: #212121;
    }
    .role {
      font-weight: bold;
      margin-bottom: 4px;
    }
    .variant {
      color: #795548;
    }
    table, th, td {
      border: 1px solid black;
    }
    pre {
      white-space: pre-wrap;
    }
  </style>
</head>
<body>
{{- range .Fragments }}
{{ . }}
<hr>
{{- end }}
</body>
</html>
`
