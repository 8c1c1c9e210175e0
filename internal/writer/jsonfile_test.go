package writer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/insightdelivered/mpesa-sms-parser/internal/models"
)

func TestJSONFileWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	jf := NewJSONFile(path)

	err := jf.Write(sampleReport())
	assert.Nil(t, err)

	data, err := os.ReadFile(path)
	assert.Nil(t, err)

	var got models.BatchReport
	assert.Nil(t, json.Unmarshal(data, &got))
	assert.Equal(t, "messages.txt", got.Source)
	assert.Len(t, got.Results, 2)
	assert.Equal(t, models.KindReceived, got.Results[0].Record.Kind)
	assert.Nil(t, got.Results[1].Record)
	assert.NotEmpty(t, got.Results[1].Error)
}
