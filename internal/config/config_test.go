package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.True(t, cfg.CSVHeader)
	assert.Positive(t, cfg.BodyLimit)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.yaml")
	content := "addr: \":9000\"\ncsv_header: false\n"
	assert.Nil(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	assert.Nil(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.False(t, cfg.CSVHeader)
	// Unset keys fall back to defaults.
	assert.Equal(t, Defaults().BodyLimit, cfg.BodyLimit)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.NotNil(t, err)
}
