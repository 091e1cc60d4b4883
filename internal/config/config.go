package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	assets "github.com/genc-murat/memprobe/config"
)

const (
	DefaultEnv = "default"

	// SourceEmbedded is reported when no config file was found on disk.
	SourceEmbedded = "embedded"
)

type Config struct {
	Environment string `yaml:"-"`
	// Root is the directory relative paths are resolved against.
	Root string `yaml:"-"`
	// Source is the file the settings were read from, or SourceEmbedded.
	Source string `yaml:"-"`

	ScenariosFile string        `yaml:"scenarios_file"`
	Report        ReportConfig  `yaml:"report"`
	Logging       LoggingConfig `yaml:"logging"`
	Metrics       MetricsConfig `yaml:"metrics"`
}

type ReportConfig struct {
	Dir            string `yaml:"dir"`
	HistoryFile    string `yaml:"history_file"`
	HistoryEnabled bool   `yaml:"history_enabled"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Textfile string `yaml:"textfile"`
}

var errNoProjectRoot = errors.New("could not find project root (no config directory found)")

func findProjectRoot(start string) (string, error) {
	dir := start
	for {
		if info, err := os.Stat(filepath.Join(dir, "config")); err == nil && info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errNoProjectRoot
		}
		dir = parent
	}
}

// Default returns the embedded settings rooted at the working directory.
func Default() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := decode(assets.DefaultYAML, nil)
	if err != nil {
		return nil, fmt.Errorf("error parsing embedded config: %w", err)
	}
	cfg.Environment = DefaultEnv
	cfg.Root = wd
	cfg.Source = SourceEmbedded
	return cfg, nil
}

// LoadConfig loads config/<env>.yaml (or .yml) from the project root above the
// working directory.
func LoadConfig(env string) (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return LoadFrom(wd, env)
}

// LoadFrom is LoadConfig starting the root search at start. Values missing
// from the file keep their embedded defaults. When the project has no file
// for env the embedded defaults are used as a whole.
func LoadFrom(start, env string) (*Config, error) {
	if env == "" {
		env = DefaultEnv
	}

	root, err := findProjectRoot(start)
	if err != nil {
		root = start
	}

	base, err := decode(assets.DefaultYAML, nil)
	if err != nil {
		return nil, fmt.Errorf("error parsing embedded config: %w", err)
	}

	path, data, err := readEnvFile(root, env)
	switch {
	case errors.Is(err, os.ErrNotExist):
		base.Source = SourceEmbedded
	case err != nil:
		return nil, fmt.Errorf("error reading config file: %w", err)
	default:
		if base, err = decode(data, base); err != nil {
			return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
		}
		base.Source = path
	}

	base.Environment = env
	base.Root = root
	if err := base.Validate(); err != nil {
		return nil, err
	}
	return base, nil
}

// LoadOrDefault is LoadConfig that never gives up on a broken settings file:
// when the file cannot be read or is invalid, the embedded defaults rooted at
// the project root are returned together with the load error. A nil config
// means not even the defaults were usable.
func LoadOrDefault(env string) (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return LoadFromOrDefault(wd, env)
}

func LoadFromOrDefault(start, env string) (*Config, error) {
	cfg, loadErr := LoadFrom(start, env)
	if loadErr == nil {
		return cfg, nil
	}

	fallback, err := decode(assets.DefaultYAML, nil)
	if err != nil {
		return nil, errors.Join(loadErr, fmt.Errorf("error parsing embedded config: %w", err))
	}
	if env == "" {
		env = DefaultEnv
	}
	root, err := findProjectRoot(start)
	if err != nil {
		root = start
	}
	fallback.Environment = env
	fallback.Root = root
	fallback.Source = SourceEmbedded
	return fallback, loadErr
}

func readEnvFile(root, env string) (string, []byte, error) {
	var lastErr error
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(root, "config", env+ext)
		data, err := os.ReadFile(path)
		if err == nil {
			return path, data, nil
		}
		lastErr = err
		if !errors.Is(err, os.ErrNotExist) {
			break
		}
	}
	return "", nil, lastErr
}

func decode(data []byte, base *Config) (*Config, error) {
	cfg := &Config{}
	if base != nil {
		*cfg = *base
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid logging.format %q (want text or json)", c.Logging.Format)
	}
	if c.Report.Dir == "" {
		return errors.New("report.dir must not be empty")
	}
	return nil
}

// Resolve makes path absolute against the project root.
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Root, path)
}

func (c *Config) ScenariosPath() string {
	return c.Resolve(c.ScenariosFile)
}

func (c *Config) ReportDir() string {
	return c.Resolve(c.Report.Dir)
}

// HistoryPath is the history log location; a bare file name lives in the
// report directory.
func (c *Config) HistoryPath() string {
	name := c.Report.HistoryFile
	if name == "" {
		name = "history.jsonl"
	}
	if filepath.IsAbs(name) {
		return name
	}
	if filepath.Base(name) == name {
		return filepath.Join(c.ReportDir(), name)
	}
	return c.Resolve(name)
}

func (c *Config) MetricsPath() string {
	return c.Resolve(c.Metrics.Textfile)
}
