package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAddr         = ":5001"
	DefaultRunTimeout   = 5 * time.Second
	DefaultMaxBodyBytes = 1 << 20
	DefaultPrompt       = "? "
	DefaultHistoryFile  = ".l25_history"
)

type Config struct {
	// Path is the file the config was loaded from, empty for defaults.
	Path string `yaml:"-"`

	Server   ServerConfig      `yaml:"server"`
	Run      RunConfig         `yaml:"run"`
	Examples map[string]string `yaml:"examples"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	RunTimeout   time.Duration `yaml:"run_timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

type RunConfig struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         DefaultAddr,
			RunTimeout:   DefaultRunTimeout,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
		Run: RunConfig{
			Prompt:      DefaultPrompt,
			HistoryFile: DefaultHistoryFile,
		},
		Examples: map[string]string{},
	}
}

// Load reads a YAML config file on top of the defaults. An empty path
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	cfg.Path = abs

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("config: server.addr must not be empty")
	}
	if c.Server.RunTimeout <= 0 {
		return fmt.Errorf("config: server.run_timeout must be positive, got %s", c.Server.RunTimeout)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	for name, path := range c.Examples {
		if path == "" {
			return fmt.Errorf("config: example %q has an empty path", name)
		}
	}

	return nil
}

// ReadExamples loads the configured example sources. Relative paths are
// resolved against the directory of the config file.
func (c *Config) ReadExamples() (map[string]string, error) {
	names := make([]string, 0, len(c.Examples))
	for name := range c.Examples {
		names = append(names, name)
	}
	sort.Strings(names)

	examples := make(map[string]string, len(names))
	for _, name := range names {
		path := c.Examples[name]
		if !filepath.IsAbs(path) && c.Path != "" {
			path = filepath.Join(filepath.Dir(c.Path), path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: example %s: %w", name, err)
		}
		examples[name] = string(data)
	}

	return examples, nil
}
