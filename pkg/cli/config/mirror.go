package config

import (
	"time"

	"github.com/opsrisk-lab/riskregister/pkg/service/source"
	"github.com/urfave/cli/v3"
)

// Mirror holds CLI flags for the CSV mirror file
type Mirror struct {
	path     string
	interval time.Duration
}

// Flags returns CLI flags for mirror configuration
func (m *Mirror) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "mirror-path",
			Usage:       "Path of the CSV mirror file kept in sync with the store",
			Value:       "risk_register_live.csv",
			Sources:     cli.EnvVars("RISKREGISTER_MIRROR_PATH"),
			Destination: &m.path,
		},
		&cli.DurationFlag{
			Name:        "mirror-refresh-interval",
			Usage:       "Interval of the periodic mirror refresh safety net (0 disables it)",
			Value:       5 * time.Minute,
			Sources:     cli.EnvVars("RISKREGISTER_MIRROR_REFRESH_INTERVAL"),
			Destination: &m.interval,
		},
	}
}

// Path returns the mirror file path
func (m *Mirror) Path() string {
	return m.path
}

// Interval returns the periodic refresh interval
func (m *Mirror) Interval() time.Duration {
	return m.interval
}

// Source returns the mirror as a tabular source
func (m *Mirror) Source() *source.CSVFile {
	return source.NewCSVFile(m.path)
}
