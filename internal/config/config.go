// Package config loads server settings from an optional YAML file via viper.
package config

import (
	"path"

	"github.com/spf13/viper"
)

// Config holds the settings the serve command reads at startup.
type Config struct {
	// Addr is the listen address for the HTTP API.
	Addr string
	// BodyLimit caps uploaded batch files, in bytes.
	BodyLimit int
	// CSVHeader controls whether batch CSV output carries metadata rows.
	CSVHeader bool
}

// Defaults returns the configuration used when no file is given.
func Defaults() *Config {
	return &Config{
		Addr:      ":8080",
		BodyLimit: 8 << 20,
		CSVHeader: true,
	}
}

// Load reads the config file at pathFile, applying defaults for any key
// the file omits. The file type is inferred from the extension.
func Load(pathFile string) (*Config, error) {
	v := viper.New()

	filename := path.Base(pathFile)
	v.AddConfigPath(path.Dir(pathFile))
	v.SetConfigName(filename[:len(filename)-len(path.Ext(filename))])

	def := Defaults()
	v.SetDefault("addr", def.Addr)
	v.SetDefault("body_limit", def.BodyLimit)
	v.SetDefault("csv_header", def.CSVHeader)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	return &Config{
		Addr:      v.GetString("addr"),
		BodyLimit: v.GetInt("body_limit"),
		CSVHeader: v.GetBool("csv_header"),
	}, nil
}
