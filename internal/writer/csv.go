package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/insightdelivered/mpesa-sms-parser/internal/models"
)

// CSVWriter writes parsed transaction records to CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes a batch report to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, report *models.BatchReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, report)
}

// Write writes a batch report in CSV format to the given writer. Failed
// lines are included with the error in the last column so a run remains
// fully traceable.
func (w *CSVWriter) Write(out io.Writer, report *models.BatchReport) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if w.IncludeHeader {
		writer.Write([]string{"# Run ID", report.RunID})
		writer.Write([]string{"# Source", report.Source})
		writer.Write([]string{"# Generated", report.Generated.Format(time.RFC3339)})
		writer.Write([]string{"# Parsed", strconv.Itoa(report.Parsed)})
		writer.Write([]string{"# Failed", strconv.Itoa(report.Failed)})
	}

	header := []string{
		"Line", "TransactionID", "Kind", "Status", "Amount",
		"Counterparty", "CounterpartyID", "Balance", "Cost",
		"Timestamp", "FailureReason", "Error",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, res := range report.Results {
		if err := writer.Write(recordRow(res)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

func recordRow(res models.BatchResult) []string {
	line := strconv.Itoa(res.Line)
	if res.Record == nil {
		return []string{line, "", "", "", "", "", "", "", "", "", "", res.Error}
	}

	rec := res.Record
	ts := ""
	if rec.HasTimestamp() {
		ts = rec.Timestamp.Format(time.RFC3339)
	}
	return []string{
		line,
		rec.TransactionID,
		string(rec.Kind),
		string(rec.Status),
		formatAmount(rec.Amount),
		rec.Counterparty,
		rec.CounterpartyID,
		formatAmount(rec.Balance),
		formatAmount(rec.Cost),
		ts,
		rec.FailureReason,
		"",
	}
}

func formatAmount(amount *float64) string {
	if amount == nil {
		return ""
	}
	return strconv.FormatFloat(*amount, 'f', 2, 64)
}
