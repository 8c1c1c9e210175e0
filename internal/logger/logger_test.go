package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	log.Info().Str("run_id", "abc").Msg("test message")

	out := buf.String()
	if !strings.Contains(out, "test message") {
		t.Errorf("expected output to contain the message, got: %s", out)
	}
	if !strings.Contains(out, `"run_id":"abc"`) {
		t.Errorf("expected structured field in output, got: %s", out)
	}
}
