package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML file and overlays it onto Default(). Fields absent in the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}

		return nil, fmt.Errorf("cannot read config file %q: %w", path, err)
	}

	cfg, err := FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// FromYAML overlays the YAML document onto Default().
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate reports settings the parser cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Multipart.StreamChunkSize <= 0:
		return errors.New("multipart.stream_chunk_size must be positive")
	case c.Multipart.HeaderLineSize.Maximal <= 0:
		return errors.New("multipart.header_line_size.maximal must be positive")
	case c.Multipart.HeaderLineSize.Default > c.Multipart.HeaderLineSize.Maximal:
		return errors.New("multipart.header_line_size.default exceeds the maximal one")
	case c.Multipart.HeadersNumber <= 0:
		return errors.New("multipart.headers_number must be positive")
	case c.NET.ReadBufferSize <= 0:
		return errors.New("net.read_buffer_size must be positive")
	}

	return nil
}
