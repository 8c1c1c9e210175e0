package writer

import (
	"encoding/json"
	"os"

	"github.com/insightdelivered/mpesa-sms-parser/internal/models"
)

// Store persists a batch report somewhere.
type Store interface {
	Write(report *models.BatchReport) error
}

// JSONFile writes reports as an indented JSON document on disk.
type JSONFile struct {
	filename string
}

// NewJSONFile returns a Store writing to the given path.
func NewJSONFile(filename string) Store {
	return &JSONFile{filename: filename}
}

func (f *JSONFile) Write(report *models.BatchReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.filename, data, 0644)
}
