package batch

import (
	"bytes"
	"strings"
	"testing"

	"github.com/insightdelivered/mpesa-sms-parser/internal/logger"
	"github.com/insightdelivered/mpesa-sms-parser/internal/models"
)

func TestRunContinuesPastFailures(t *testing.T) {
	var logBuf bytes.Buffer
	r := NewRunner(logger.NewWithWriter(&logBuf))

	messages := []string{
		"QCX12RT45P Confirmed. You have received Ksh500.00 from JOHN DOE 254712345678 on 12/3/24 at 2:15 PM. New M-PESA balance is Ksh1,500.00.",
		"Hello, this is not a transaction message.",
		"QCX12RT46Q Confirmed. You bought Ksh100.00 of airtime on 12/3/24 at 2:20 PM. New M-PESA balance is Ksh1,400.00.",
	}

	report := r.Run("messages.txt", messages)

	if report.RunID == "" {
		t.Error("expected a run id")
	}
	if report.Parsed != 2 || report.Failed != 1 {
		t.Errorf("counts: got parsed=%d failed=%d, want 2/1", report.Parsed, report.Failed)
	}
	if len(report.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(report.Results))
	}

	if report.Results[0].Record == nil || report.Results[0].Record.Kind != models.KindReceived {
		t.Error("first line should parse as received")
	}
	if report.Results[1].Record != nil || report.Results[1].Error == "" {
		t.Error("second line should fail with an error and no record")
	}
	if report.Results[2].Record == nil || report.Results[2].Record.Kind != models.KindAirtimePurchase {
		t.Error("third line should parse as airtime_purchase")
	}

	if !strings.Contains(logBuf.String(), "skipping unparseable message") {
		t.Error("expected a warning log for the skipped line")
	}
}
