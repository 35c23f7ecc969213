package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file looked up by Load when no
// explicit path is given.
const DefaultConfigFile = "./config/syrup.yml"

// Version is the version of the tool, set at build time.
var Version string

// Config is the top level struct representing the configuration file.
type Config struct {
	ApplicationConfiguration ApplicationConfiguration `yaml:"ApplicationConfiguration"`
	DecoderConfiguration     DecoderConfiguration     `yaml:"DecoderConfiguration"`
}

// Default returns the configuration used when there is no file to load.
func Default() Config {
	return Config{
		ApplicationConfiguration: ApplicationConfiguration{
			LogEncoding: "console",
		},
	}
}

// Load attempts to load the config from the given path, DefaultConfigFile
// is used if path is empty. A missing default file is not an error, the
// Default configuration is returned then.
func Load(path string) (Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	cfg, err := LoadFile(DefaultConfigFile)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile loads config from the provided path.
func LoadFile(configPath string) (Config, error) {
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}
	return Parse(configData)
}

// Parse decodes YAML configuration data over the Default values and
// validates the result. Unknown fields are rejected.
func Parse(data []byte) (Config, error) {
	config := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	err := decoder.Decode(&config)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	err = config.ApplicationConfiguration.Validate()
	if err != nil {
		return Config{}, err
	}
	err = config.DecoderConfiguration.Validate()
	if err != nil {
		return Config{}, err
	}
	return config, nil
}
