// Package ingest reads notification messages out of batch input files:
// plain text files with one message per line, and PDF exports produced by
// SMS backup tools.
package ingest

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadMessages loads one message per non-empty line from a file. For .pdf
// inputs the text layer is extracted first and filtered down to lines that
// look like notifications.
func ReadMessages(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return ExtractPDFMessages(path)
	}
	return readLines(path)
}

// MessagesFromText splits already-loaded text into its non-empty lines,
// one message per line. Used for uploaded batch bodies.
func MessagesFromText(text string) []string {
	var messages []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		messages = append(messages, line)
	}
	return messages
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening message file: %w", err)
	}
	defer f.Close()

	var messages []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		messages = append(messages, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading message file: %w", err)
	}

	if len(messages) == 0 {
		return nil, fmt.Errorf("message file %q has no non-empty lines", path)
	}
	return messages, nil
}
