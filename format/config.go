package format

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigName is the configuration file looked up in the working
// directory when no explicit path is given.
const DefaultConfigName = ".unify.yaml"

// Config selects the preferred quote character and which file extensions
// directory walks expand to.
type Config struct {
	Quote      string   `yaml:"quote"`
	Extensions []string `yaml:"extensions"`
}

// DefaultConfig returns the stock configuration: single quotes, Python
// files only.
func DefaultConfig() Config {
	return Config{
		Quote:      "'",
		Extensions: []string{".py"},
	}
}

// PreferredQuote returns the configured quote as a byte.
func (c Config) PreferredQuote() byte {
	return c.Quote[0]
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Quote != "'" && c.Quote != `"` {
		return fmt.Errorf("invalid preferred quote %q: must be ' or \"", c.Quote)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("no file extensions configured")
	}
	return nil
}

// LoadConfig reads and validates a YAML configuration file. Fields left
// out of the file keep their default values.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}
