package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadMessages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "messages.txt")
	content := `QCX12RT45P Confirmed. You have received Ksh500.00 from JOHN DOE 254712345678 on 12/3/24 at 2:15 PM. New M-PESA balance is Ksh1,500.00.

Hello, this is not a transaction message.
QCX12RT46Q Confirmed. You bought Ksh100.00 of airtime on 12/3/24 at 2:20 PM. New M-PESA balance is Ksh1,400.00.
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	messages, err := ReadMessages(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Blank lines are skipped; unparseable lines are still returned, it is
	// the caller's job to log and continue past them.
	if len(messages) != 3 {
		t.Fatalf("got %d messages, want 3", len(messages))
	}
	if messages[1] != "Hello, this is not a transaction message." {
		t.Errorf("messages[1]: got %q", messages[1])
	}
}

func TestReadMessagesEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(path, []byte("\n\n  \n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadMessages(path); err == nil {
		t.Error("expected error for a file with no messages")
	}
}

func TestReadMessagesMissingFile(t *testing.T) {
	if _, err := ReadMessages("/nonexistent/messages.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFilterMessageLines(t *testing.T) {
	text := `M-PESA Statement Export
Page 1 of 2
QCX12RT45P Confirmed. Ksh500.00 sent to JANE DOE 254798765432 on 12/3/24 at 2:15 PM.
Generated by SMS Backup
Failed. Insufficient funds in your M-PESA account.
`
	got := filterMessageLines(text)
	if len(got) != 2 {
		t.Fatalf("got %d lines, want 2: %v", len(got), got)
	}
	if got[1] != "Failed. Insufficient funds in your M-PESA account." {
		t.Errorf("got[1]: %q", got[1])
	}
}

func TestIsReadableText(t *testing.T) {
	if isReadableText("\x00\x01\x02 binary garbage here") {
		t.Error("binary garbage should not be readable")
	}
	if !isReadableText("QCX12RT45P Confirmed. Ksh500.00 sent to JANE DOE.") {
		t.Error("notification text should be readable")
	}
}
