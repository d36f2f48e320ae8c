package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// FileConfig is the optional TOML configuration file. Values act as
// defaults; explicitly set flags and env vars win.
type FileConfig struct {
	Mirror struct {
		Path            string `toml:"path"`
		RefreshInterval string `toml:"refresh_interval"`
	} `toml:"mirror"`
	Sheets struct {
		Credentials string `toml:"credentials"`
		SheetID     string `toml:"sheet_id"`
	} `toml:"sheets"`
}

// LoadFileConfig reads and parses a TOML configuration file
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var cfg FileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", path))
	}
	return &cfg, nil
}

// Apply overlays the file onto the flag-backed settings: mirror values
// replace the built-in defaults, sheet values fill only when no flag or env
// var set them.
func (c *FileConfig) Apply(mirror *Mirror, sheets *Sheets) error {
	if c.Mirror.Path != "" {
		mirror.path = c.Mirror.Path
	}
	if c.Mirror.RefreshInterval != "" {
		interval, err := time.ParseDuration(c.Mirror.RefreshInterval)
		if err != nil {
			return goerr.Wrap(err, "invalid mirror refresh interval",
				goerr.V("value", c.Mirror.RefreshInterval))
		}
		mirror.interval = interval
	}
	if c.Sheets.Credentials != "" && sheets.credentialsFile == "" {
		sheets.credentialsFile = c.Sheets.Credentials
	}
	if c.Sheets.SheetID != "" && sheets.sheetID == "" {
		sheets.sheetID = c.Sheets.SheetID
	}
	return nil
}
