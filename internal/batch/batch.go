// Package batch runs the message parser over a whole set of input lines,
// collecting results into a report. Failures never abort a run: the
// offending line is recorded with its error and processing continues.
package batch

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/mpesa-sms-parser/internal/models"
	"github.com/insightdelivered/mpesa-sms-parser/internal/parser"
)

// Runner parses batches of messages.
type Runner struct {
	parser *parser.MessageParser
	log    zerolog.Logger
}

// NewRunner returns a Runner logging per-line failures to the given logger.
func NewRunner(log zerolog.Logger) *Runner {
	return &Runner{parser: parser.New(), log: log}
}

// Run parses every message and returns a report tagged with a fresh run
// identifier. Line numbers in the report are 1-based positions within the
// input slice.
func (r *Runner) Run(source string, messages []string) *models.BatchReport {
	report := &models.BatchReport{
		RunID:     uuid.NewString(),
		Source:    source,
		Generated: time.Now().UTC(),
		Results:   make([]models.BatchResult, 0, len(messages)),
	}

	for i, msg := range messages {
		res := models.BatchResult{Line: i + 1}
		rec, err := r.parser.Parse(msg)
		if err != nil {
			res.Error = err.Error()
			report.Failed++
			r.log.Warn().
				Str("run_id", report.RunID).
				Int("line", res.Line).
				Err(err).
				Msg("skipping unparseable message")
		} else {
			res.Record = rec
			report.Parsed++
		}
		report.Results = append(report.Results, res)
	}

	r.log.Info().
		Str("run_id", report.RunID).
		Str("source", source).
		Int("parsed", report.Parsed).
		Int("failed", report.Failed).
		Msg("batch run complete")

	return report
}
