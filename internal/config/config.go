package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

//Options holds the environment defaults shared by every command. Flags
//override them
type Options struct {
	Profile    string `env:"WFCALC_PROFILE" envDefault:"config.yaml"`
	Library    string `env:"WFCALC_LIBRARY" envDefault:"data/mods.yaml"`
	LogLevel   string `env:"WFCALC_LOG_LEVEL" envDefault:"warn"`
	LogFile    string `env:"WFCALC_LOG_FILE"`
	APIAddr    string `env:"WFCALC_API_ADDR" envDefault:"127.0.0.1:8080"`
	ExportURL  string `env:"WFCALC_EXPORT_URL" envDefault:"https://origin.warframe.com/PublicExport/index_en.txt.lzma"`
	ContentURL string `env:"WFCALC_CONTENT_URL" envDefault:"http://content.warframe.com/PublicExport/Manifest/"`
	Workers    int    `env:"WFCALC_WORKERS" envDefault:"8"`
}

//ParseEnv loads configuration from environment variables
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

//Load returns the options with environment overrides applied
func Load() (Options, error) {
	var o Options
	err := ParseEnv(&o)
	return o, err
}
