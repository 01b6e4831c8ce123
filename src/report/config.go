package report

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultTitle is the report heading used when no config file overrides it.
const DefaultTitle = "Conduit chain performance report"

// Config is the optional YAML run configuration. Zero values mean "not set";
// the caller falls back to flag values.
type Config struct {
	Title                string  `yaml:"title"`
	BlockTime            float64 `yaml:"block_time"`
	ContinueOnChartError bool    `yaml:"continue_on_chart_error"`
}

// LoadConfig reads a YAML config file. Missing keys keep their zero values
// except Title, which always has a usable default.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}
	return cfg, nil
}
