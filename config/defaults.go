package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

// DefaultPath is where the CLI looks for a config when -config is not given.
const DefaultPath = "imgconv.yml"

type Config struct {
	// CaseInsensitiveExtensions makes ".BMP" resolve like ".bmp".
	CaseInsensitiveExtensions bool `yaml:"caseInsensitiveExtensions"`
	// Verbose turns on progress logging.
	Verbose bool `yaml:"verbose"`
	// Interactive asks on stdin for an output format when the output
	// extension is not recognized.
	Interactive bool `yaml:"interactive"`
	// Layout is an optional header layout file used by -inspect instead of
	// the built-in BMP description.
	Layout string `yaml:"layout,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{}
}

// LoadConfig reads and parses the config file at configPath.
// A missing file is not an error; the defaults are returned.
func LoadConfig(configPath string) (Config, error) {
	cfg := Default()
	configData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("Configuration file '%s' not found. Using defaults.", configPath)
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read configuration file '%s': %w", configPath, err)
	}

	err = yaml.UnmarshalStrict(configData, &cfg)
	if err != nil {
		return Default(), fmt.Errorf("failed to parse configuration file '%s': %w", configPath, err)
	}
	log.Printf("Loaded configuration from %s.", configPath)
	return cfg, nil
}

// SaveConfig writes cfg to configPath.
func SaveConfig(configPath string, cfg Config) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	err = os.WriteFile(configPath, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write configuration file '%s': %w", configPath, err)
	}
	return nil
}
