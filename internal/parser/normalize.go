package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Date and time layouts the notification templates emit. Anything outside
// these sets is rejected rather than guessed at.
var (
	dateLayouts = []string{"2/1/06", "2/1/2006"}
	timeLayouts = []string{"3:04 PM", "3:04PM", "15:04"}
)

// normalizeAmount converts a raw currency substring like "Ksh1,234.50" to
// a non-negative float with two-decimal precision. Negative signs and
// non-numeric residue fail with a NormalizationError wrapping
// ErrInvalidAmount.
func normalizeAmount(field, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	for _, prefix := range []string{"Ksh", "KSh", "KES", "ksh"} {
		s = strings.TrimPrefix(s, prefix)
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimSuffix(s, ".")

	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	if s == "" || strings.Contains(s, "-") {
		return 0, &NormalizationError{Field: field, Value: raw, err: ErrInvalidAmount}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, &NormalizationError{Field: field, Value: raw, err: ErrInvalidAmount}
	}
	return math.Round(v*100) / 100, nil
}

// normalizeTimestamp combines a date substring and a time substring into a
// single calendar timestamp. time.Parse rejects impossible combinations
// (day out of range for the month, hour >= 24), which is exactly the
// validity the record contract requires.
func normalizeTimestamp(dateRaw, timeRaw string) (time.Time, error) {
	combined := fmt.Sprintf("%s %s", strings.TrimSpace(dateRaw), strings.ToUpper(strings.TrimSpace(timeRaw)))

	for _, dl := range dateLayouts {
		for _, tl := range timeLayouts {
			if ts, err := time.Parse(dl+" "+tl, combined); err == nil {
				return ts, nil
			}
		}
	}
	return time.Time{}, &NormalizationError{
		Field: "timestamp",
		Value: combined,
		err:   ErrInvalidTimestamp,
	}
}

// normalizeDate parses a date-only fragment, used for the Fuliza due date.
func normalizeDate(field, raw string) (time.Time, error) {
	for _, dl := range dateLayouts {
		if ts, err := time.Parse(dl, strings.TrimSpace(raw)); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, &NormalizationError{Field: field, Value: raw, err: ErrInvalidTimestamp}
}
