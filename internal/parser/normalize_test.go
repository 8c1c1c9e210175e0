package parser

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		wantErr  bool
	}{
		{"Ksh1,234.50", 1234.50, false},
		{"500.00", 500.00, false},
		{"Ksh 25.99", 25.99, false},
		{"KES100", 100.00, false},
		{"1,234,567.89", 1234567.89, false},
		{".50", 0.50, false},
		{"505.00.", 505.00, false},
		{"0.00", 0.00, false},
		{"-25.99", 0, true},
		{"Ksh-1.00", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"12.3.4", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := normalizeAmount("amount", tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Fatalf("expected ErrInvalidAmount, got %v", err)
				}
				var norm *NormalizationError
				if !errors.As(err, &norm) {
					t.Fatal("expected a *NormalizationError")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %f, want %f", got, tt.expected)
			}
		})
	}
}

func TestNormalizeTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		dateRaw  string
		timeRaw  string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "short year 12-hour",
			dateRaw:  "12/3/24",
			timeRaw:  "2:15 PM",
			expected: time.Date(2024, time.March, 12, 14, 15, 0, 0, time.UTC),
		},
		{
			name:     "full year",
			dateRaw:  "5/11/2023",
			timeRaw:  "9:05 AM",
			expected: time.Date(2023, time.November, 5, 9, 5, 0, 0, time.UTC),
		},
		{
			name:     "24-hour time",
			dateRaw:  "1/1/24",
			timeRaw:  "23:59",
			expected: time.Date(2024, time.January, 1, 23, 59, 0, 0, time.UTC),
		},
		{
			name:     "no space before meridiem",
			dateRaw:  "12/3/24",
			timeRaw:  "2:15PM",
			expected: time.Date(2024, time.March, 12, 14, 15, 0, 0, time.UTC),
		},
		{
			name:    "day out of range for month",
			dateRaw: "31/2/24",
			timeRaw: "2:15 PM",
			wantErr: true,
		},
		{
			name:    "hour out of range",
			dateRaw: "12/3/24",
			timeRaw: "25:15",
			wantErr: true,
		},
		{
			name:    "garbage date",
			dateRaw: "soon",
			timeRaw: "2:15 PM",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeTimestamp(tt.dateRaw, tt.timeRaw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTimestamp) {
					t.Fatalf("expected ErrInvalidTimestamp, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	got, err := normalizeDate("fuliza_due_date", "18/03/24")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, time.March, 18, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := normalizeDate("fuliza_due_date", "18-03-24"); !errors.Is(err, ErrInvalidTimestamp) {
		t.Errorf("expected ErrInvalidTimestamp for unsupported layout, got %v", err)
	}
}
