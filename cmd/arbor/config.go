package main

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
	"github.com/go-git/go-arbor/id"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"
)

// ErrUnknownGenerator is returned when the configuration names an identity
// generator that does not exist.
var ErrUnknownGenerator = errors.New("unknown generator")

const (
	sequenceGenerator = "sequence"
	uuidGenerator     = "uuid"
)

// Config is the configuration of the arbor command.
type Config struct {
	// Generator is the identity generator of the loaded trees, either
	// "sequence" or "uuid".
	Generator string `yaml:"generator"`
	// Trace lists the tracing targets to enable, on top of the ones
	// enabled from the environment.
	Trace []string `yaml:"trace"`
	// Text makes diff print a line diff of both documents.
	Text bool `yaml:"text"`
}

var defaultConfig = Config{
	Generator: sequenceGenerator,
}

// loadConfig reads the configuration stored in filename and fills every
// unset field from the defaults. An empty filename yields the defaults.
func loadConfig(fs billy.Filesystem, filename string) (*Config, error) {
	cfg := &Config{}
	if filename != "" {
		b, err := util.ReadFile(fs, filename)
		if err != nil {
			return nil, err
		}

		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	}

	if err := mergo.Merge(cfg, defaultConfig); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch c.Generator {
	case sequenceGenerator, uuidGenerator:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownGenerator, c.Generator)
	}
}

// NewGenerator returns the identity generator named by the configuration.
func (c *Config) NewGenerator() id.Generator {
	if c.Generator == uuidGenerator {
		return id.NewUUID()
	}

	return id.NewSequence()
}
