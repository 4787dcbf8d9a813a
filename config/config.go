// Package config loads runtime configuration for the reagent entry point
// from a YAML file with environment variable expansion. API credentials are
// never stored in the file; providers read them from the process environment
// (OPENAI_API_KEY, ANTHROPIC_API_KEY).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure mirroring config.yaml.
type Config struct {
	Model Model `yaml:"model"`
	Agent Agent `yaml:"agent"`
	Log   Log   `yaml:"log"`
}

// Model holds model provider settings.
type Model struct {
	Provider    string  `yaml:"provider"` // "openai" or "anthropic"
	Name        string  `yaml:"name"`     // provider model id
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int64   `yaml:"max_tokens"`
}

// Agent holds loop settings shared by both variants.
type Agent struct {
	MaxIterations int `yaml:"max_iterations"`
}

// Log holds logging settings.
type Log struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Default returns the baseline configuration used when no file is given.
func Default() *Config {
	return &Config{
		Model: Model{
			Provider:    "openai",
			Name:        "gpt-4o-mini",
			Temperature: 0.7,
			MaxTokens:   1000,
		},
		Agent: Agent{MaxIterations: 5},
		Log:   Log{Level: "info", Format: "text"},
	}
}

// Load reads a YAML file, expands ${VAR} references from the environment and
// returns the configuration with defaults applied to unset fields.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found at: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults fills zero-valued fields so a sparse file stays usable.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Model.Provider == "" {
		c.Model.Provider = def.Model.Provider
	}
	if c.Model.Name == "" {
		c.Model.Name = def.Model.Name
	}
	if c.Model.Temperature == 0 {
		c.Model.Temperature = def.Model.Temperature
	}
	if c.Model.MaxTokens == 0 {
		c.Model.MaxTokens = def.Model.MaxTokens
	}
	if c.Agent.MaxIterations == 0 {
		c.Agent.MaxIterations = def.Agent.MaxIterations
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
}
