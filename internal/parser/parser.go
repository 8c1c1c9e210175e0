// Package parser turns raw M-PESA notification text into structured
// transaction records.
//
// Parsing runs four stages in sequence: an ordered-rule classifier decides
// the transaction kind, a per-kind extractor pulls raw field substrings, a
// normalizer converts currency and date/time fragments into typed values,
// and the assembler builds the final record. The whole pipeline is
// stateless and all-or-nothing: a message yields either a complete record
// or a typed error, never a partial record.
package parser

import (
	"strings"

	"github.com/insightdelivered/mpesa-sms-parser/internal/models"
)

// MessageParser parses one notification at a time. It holds no per-call
// state, so a single instance may be shared freely across goroutines.
type MessageParser struct{}

// New returns a ready MessageParser.
func New() *MessageParser {
	return &MessageParser{}
}

// Parse classifies, extracts and normalizes one raw message. On any stage
// failure it returns the most specific error for that stage:
// UnrecognizedMessageError, MissingFieldError or NormalizationError.
func (p *MessageParser) Parse(text string) (*models.TransactionRecord, error) {
	kind, err := classify(text)
	if err != nil {
		return nil, err
	}

	fields, err := extract(text, kind)
	if err != nil {
		return nil, err
	}

	rec := &models.TransactionRecord{
		Kind:       kind,
		Status:     models.StatusSuccess,
		RawMessage: text,
	}

	rec.TransactionID = fields[fieldTransactionID]
	rec.Counterparty = strings.TrimSpace(fields[fieldCounterparty])
	rec.CounterpartyID = fields[fieldCounterpartyID]

	if err := assignAmounts(rec, fields); err != nil {
		return nil, err
	}
	if err := assignTimestamps(rec, fields); err != nil {
		return nil, err
	}

	if kind == models.KindFailed {
		rec.Status = models.StatusFailed
		rec.FailureReason = fields[fieldFailureReason]
	}

	return rec, nil
}

// assignAmounts normalizes every monetary field present in the raw set.
func assignAmounts(rec *models.TransactionRecord, fields rawFields) error {
	monetary := []struct {
		field string
		dst   **float64
	}{
		{fieldAmount, &rec.Amount},
		{fieldBalance, &rec.Balance},
		{fieldCost, &rec.Cost},
		{fieldInterest, &rec.FulizaInterest},
		{fieldOutstanding, &rec.FulizaOutstanding},
		{fieldFulizaLimit, &rec.FulizaLimit},
		{fieldMShwariBalance, &rec.MShwariBalance},
		{fieldDailyLimit, &rec.DailyLimit},
	}

	for _, m := range monetary {
		raw, ok := fields[m.field]
		if !ok {
			continue
		}
		v, err := normalizeAmount(m.field, raw)
		if err != nil {
			return err
		}
		*m.dst = &v
	}
	return nil
}

// assignTimestamps normalizes the date/time pair and the Fuliza due date
// when the message carries them. A date without a time (or vice versa) on
// a kind that requires both never reaches this point; optional fragments
// are simply left absent.
func assignTimestamps(rec *models.TransactionRecord, fields rawFields) error {
	dateRaw, hasDate := fields[fieldDate]
	timeRaw, hasTime := fields[fieldTime]
	if hasDate && hasTime {
		ts, err := normalizeTimestamp(dateRaw, timeRaw)
		if err != nil {
			return err
		}
		rec.Timestamp = ts
	}

	if raw, ok := fields[fieldDueDate]; ok {
		due, err := normalizeDate(fieldDueDate, raw)
		if err != nil {
			return err
		}
		rec.FulizaDueDate = &due
	}
	return nil
}
