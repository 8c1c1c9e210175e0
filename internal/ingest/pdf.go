package ingest

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPDFMessages pulls notification lines out of a PDF export. The
// text layer is read with the pdf library; if that fails or yields
// unreadable content, the external pdftotext command (poppler-utils) is
// tried before giving up. Scanned image-only exports are not supported.
func ExtractPDFMessages(filePath string) ([]string, error) {
	text, libErr := extractWithLibrary(filePath)
	if libErr != nil || !isReadableText(text) {
		var popplerErr error
		text, popplerErr = extractWithPdftotext(filePath)
		if popplerErr != nil || !isReadableText(text) {
			if libErr != nil {
				return nil, fmt.Errorf("no readable text in PDF export (the file may be image-based): %v", libErr)
			}
			return nil, fmt.Errorf("no readable text in PDF export %q; the file may be image-based or not an SMS export", filePath)
		}
	}

	messages := filterMessageLines(text)
	if len(messages) == 0 {
		return nil, fmt.Errorf("PDF export %q contains no notification lines", filePath)
	}
	return messages, nil
}

// extractWithLibrary reads the PDF text layer row by row. The library can
// panic on malformed files, so that is converted to an error.
func extractWithLibrary(filePath string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(filePath)
	if openErr != nil {
		return "", openErr
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, rowErr := page.GetTextByRow()
		if rowErr != nil {
			continue
		}
		for _, row := range rows {
			for _, word := range row.Content {
				b.WriteString(word.S)
				b.WriteByte(' ')
			}
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

func extractWithPdftotext(filePath string) (string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return "", fmt.Errorf("pdftotext not available: %v", err)
	}
	out, err := exec.Command("pdftotext", "-layout", filePath, "-").Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %v", err)
	}
	return string(out), nil
}

// Words that appear in virtually every M-PESA export. Text containing none
// of them is treated as extraction garbage rather than handed to the parser.
var commonWords = []string{
	"ksh", "confirmed", "m-pesa", "balance", "received", "sent",
	"paid", "airtime", "withdraw", "failed", "transaction",
}

func isReadableText(text string) bool {
	if len(text) < 20 {
		return false
	}
	lower := strings.ToLower(text)
	for _, word := range commonWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// filterMessageLines keeps only lines that plausibly hold one notification,
// dropping export headers, page numbers and other furniture.
func filterMessageLines(text string) []string {
	var messages []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !looksLikeMessage(line) {
			continue
		}
		messages = append(messages, line)
	}
	return messages
}

func looksLikeMessage(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "ksh") ||
		strings.Contains(lower, "confirmed") ||
		strings.Contains(lower, "failed")
}
