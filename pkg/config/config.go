// Package config provides configuration management for the xbps planning
// core. It handles loading, validating and saving the repository list and
// general settings from YAML configuration files, with sensible defaults.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jurgelenas/xbps/pkg/errors"
	"github.com/jurgelenas/xbps/pkg/fsutil"
)

// Config represents the application configuration.
type Config struct {
	// Repository configuration
	Repositories []*RepositoryConfig `yaml:"repositories"`

	// General settings
	Settings Settings `yaml:"settings"`
}

// RepositoryConfig represents a single repository configuration.
type RepositoryConfig struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Enabled bool   `yaml:"enabled"`
}

// Settings represents general application settings.
type Settings struct {
	// RootDir is the target root directory used for disk space accounting.
	RootDir string `yaml:"root_dir,omitempty"`

	// CacheDir holds downloaded index copies and cached binary packages.
	CacheDir string `yaml:"cache_dir,omitempty"`

	// StateDir holds the installed package database.
	StateDir string `yaml:"state_dir,omitempty"`

	// Architecture is the target architecture for provider resolution.
	Architecture string `yaml:"architecture,omitempty"`

	// Network settings
	HTTPTimeout time.Duration `yaml:"http_timeout"`

	// Output settings
	LogLevel string `yaml:"log_level"` // error, warn, info, debug
}

// Default configuration values.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultLogLevel is the default logging verbosity.
	DefaultLogLevel = "info"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = "."
	}
	return &Config{
		Repositories: []*RepositoryConfig{},
		Settings: Settings{
			RootDir:      "/",
			CacheDir:     filepath.Join(cacheDir, "xbps"),
			StateDir:     filepath.Join(cacheDir, "xbps", "state"),
			Architecture: runtime.GOARCH,
			HTTPTimeout:  DefaultHTTPTimeout,
			LogLevel:     DefaultLogLevel,
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the
// default configuration.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigValidation, err.Error())
	}

	return &config, nil
}

// SaveConfig saves configuration to a file.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}
	if err := fsutil.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to encode config")
	}
	return os.WriteFile(path, data, fsutil.FileModeSecure)
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Repositories))
	for _, repo := range c.Repositories {
		if repo.Name == "" {
			return fmt.Errorf("repository with empty name")
		}
		if repo.URL == "" {
			return fmt.Errorf("repository %s has no URL", repo.Name)
		}
		if _, dup := seen[repo.Name]; dup {
			return fmt.Errorf("duplicate repository name %s", repo.Name)
		}
		seen[repo.Name] = struct{}{}
	}
	if c.Settings.RootDir == "" {
		return fmt.Errorf("root directory cannot be empty")
	}
	return nil
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Settings.RootDir == "" {
		c.Settings.RootDir = def.Settings.RootDir
	}
	if c.Settings.CacheDir == "" {
		c.Settings.CacheDir = def.Settings.CacheDir
	}
	if c.Settings.StateDir == "" {
		c.Settings.StateDir = def.Settings.StateDir
	}
	if c.Settings.Architecture == "" {
		c.Settings.Architecture = def.Settings.Architecture
	}
	if c.Settings.HTTPTimeout == 0 {
		c.Settings.HTTPTimeout = def.Settings.HTTPTimeout
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = def.Settings.LogLevel
	}
}

// GetRepository returns the repository with the given name, or nil.
func (c *Config) GetRepository(name string) *RepositoryConfig {
	for _, repo := range c.Repositories {
		if repo.Name == name {
			return repo
		}
	}
	return nil
}

// EnabledRepositories returns the enabled repositories in configured order.
func (c *Config) EnabledRepositories() []*RepositoryConfig {
	repos := make([]*RepositoryConfig, 0, len(c.Repositories))
	for _, repo := range c.Repositories {
		if repo.Enabled {
			repos = append(repos, repo)
		}
	}
	return repos
}

// GetIndexDir returns the directory holding cached repository indexes.
func (c *Config) GetIndexDir() string {
	return filepath.Join(c.Settings.CacheDir, "indexes")
}

// GetIndexPath returns the cached index path for a repository.
func (c *Config) GetIndexPath(name string) string {
	return filepath.Join(c.GetIndexDir(), name+".json")
}

// GetFilesIndexPath returns the cached file-manifest index path for a
// repository.
func (c *Config) GetFilesIndexPath(name string) string {
	return filepath.Join(c.GetIndexDir(), name+".files.json")
}

// GetBinaryCacheDir returns the directory holding cached binary packages.
func (c *Config) GetBinaryCacheDir() string {
	return filepath.Join(c.Settings.CacheDir, "packages")
}

// GetDatabasePath returns the installed package database path.
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Settings.StateDir, "installed.json")
}
