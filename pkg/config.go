package calc

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"io"
	"os"
)

const DefaultPrompt = ">>> "

// Config holds the tunables of an Engine and its REPL. Zero fields mean "use the
// default"; a negative limit disables that limit.
type Config struct {
	Prompt string `yaml:"prompt"`

	// MaxDepth limits how deeply the parser lets factors nest.
	MaxDepth int `yaml:"max_depth"`

	// MaxSteps and MaxRecursion bound the simplifier. Expressions that exceed them
	// are reported as having nothing to simplify.
	MaxSteps     int `yaml:"max_steps"`
	MaxRecursion int `yaml:"max_recursion"`
}

func DefaultConfig() Config {
	return Config{
		Prompt:       DefaultPrompt,
		MaxDepth:     DefaultMaxDepth,
		MaxSteps:     DefaultMaxSteps,
		MaxRecursion: DefaultMaxRecursion,
	}
}

// LoadConfig decodes a YAML document. Unknown keys are an error so that typos do
// not go unnoticed.
func LoadConfig(r io.Reader) (Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "decode config")
	}

	return cfg.withDefaults(), nil
}

func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "open config")
	}
	defer f.Close()

	cfg, err := LoadConfig(f)
	if err != nil {
		return Config{}, errors.Wrapf(err, "load %s", path)
	}

	return cfg, nil
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()

	if c.Prompt == "" {
		c.Prompt = def.Prompt
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = def.MaxDepth
	}
	if c.MaxSteps == 0 {
		c.MaxSteps = def.MaxSteps
	}
	if c.MaxRecursion == 0 {
		c.MaxRecursion = def.MaxRecursion
	}

	return c
}
