// internal/cli/postprocess.go
package evalpost

import (
	"fmt"
	"path/filepath"

	"github.com/k0kubun/pp"
	"github.com/mwiater/evalpost/internal/accuracy"
	"github.com/mwiater/evalpost/internal/appconfig"
	"github.com/mwiater/evalpost/internal/logging"
	"github.com/mwiater/evalpost/internal/report"
	"github.com/mwiater/evalpost/internal/resolve"
	"github.com/mwiater/evalpost/internal/results"
	"github.com/mwiater/evalpost/internal/util"
	"github.com/spf13/cobra"
)

type postprocessOptions struct {
	file       string
	latest     bool
	htmlOutput string
}

var postprocessOpts postprocessOptions

func init() {
	rootCmd.Flags().StringVar(&postprocessOpts.file, "file", "", "path to a *_allresults.json bundle")
	rootCmd.Flags().BoolVar(&postprocessOpts.latest, "latest", false, "use the latest bundle matching --pattern in --searchDir")
	rootCmd.Flags().StringVar(&postprocessOpts.htmlOutput, "html-output", "", "write the report here instead of next to the input")
}

func runPostprocess(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if cfg == nil {
		defaults := appconfig.Defaults()
		cfg = &defaults
	}
	if cfg.Debug {
		pp.Fprintln(cmd.ErrOrStderr(), cfg)
	}

	resultFile, err := resolve.Input(resolve.Options{
		File:      postprocessOpts.file,
		Latest:    postprocessOpts.latest,
		SearchDir: cfg.SearchDirectory(),
		Pattern:   cfg.SearchPattern(),
	})
	if err != nil {
		return err
	}
	logging.LogEvent("post-processing %s", resultFile)

	htmlPath := postprocessOpts.htmlOutput
	if htmlPath == "" {
		htmlPath = report.Path(resultFile, cfg.SourceToken, cfg.TargetToken, cfg.ReportExtension())
	}
	if filepath.Clean(htmlPath) == filepath.Clean(resultFile) {
		return fmt.Errorf("report path %s would overwrite the input bundle", htmlPath)
	}

	bundle, err := results.Load(resultFile)
	if err != nil {
		return err
	}

	res := accuracy.Aggregate(bundle, cfg.Placeholders())
	if cfg.Debug {
		logSkipped(bundle, res)
	}

	summary := report.NewSummary(resultFile, bundle.Score, res)
	out := cmd.OutOrStdout()
	if err := report.WriteJSON(out, summary); err != nil {
		return err
	}
	if cfg.Debug {
		pp.Fprintln(cmd.ErrOrStderr(), summary)
	}

	document, err := report.Build(resultFile, res)
	if err != nil {
		return fmt.Errorf("failed generating HTML report: %w", err)
	}
	if err := report.Write(htmlPath, document); err != nil {
		return fmt.Errorf("unable to write HTML report %s: %w", htmlPath, err)
	}
	if err := report.WriteJSON(out, report.Written{PostprocessedHTML: htmlPath}); err != nil {
		return err
	}

	if !cfg.Quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), report.Badge(summary))
	}
	return nil
}

func logSkipped(bundle results.Bundle, res accuracy.Result) {
	for _, outcome := range res.Outcomes {
		if outcome.Kept {
			continue
		}
		var content string
		if last, ok := bundle.Convos[outcome.Index].Last(); ok {
			content = last.Content
		}
		logging.LogEvent("example %d skipped (%s): last message %s", outcome.Index, outcome.Reason, util.Preview(content, 60))
	}
}
