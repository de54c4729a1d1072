package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/seekr-dev/seekr/internal/logging"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the seekr configuration file.
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the seekr configuration directory.
const ConfigDirName = ".seekr"

// Config holds all seekr configuration.
type Config struct {
	Scan    ScanConfig    `yaml:"scan"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	History HistoryConfig `yaml:"history"`
}

// ScanConfig holds configuration for source tree scanning.
type ScanConfig struct {
	// SkipDirs are directory names excluded from the walk, in addition
	// to the scanner's built-in exclusions.
	SkipDirs []string `yaml:"skip_dirs"`
}

// ServerConfig holds configuration for the HTTP API server.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	// MaxUploadMB bounds the accepted ZIP upload size.
	MaxUploadMB int `yaml:"max_upload_mb"`
	// RequestTimeoutSeconds bounds a single analysis request, including
	// the scan. Long scans are cancelled at this bound.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// HistoryConfig holds configuration for the analysis history store.
type HistoryConfig struct {
	// Disabled turns off recording of analysis reports.
	Disabled bool `yaml:"disabled"`
}

// ErrConfigNotFound is returned when no config file can be found.
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from .seekr/config.yaml, falling back to defaults.
// It searches for the config directory starting from workDir and walking
// up the directory tree. If no config is found, returns defaults.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFromPath(filepath.Join(configDir, ConfigFileName))
}

// LoadFromPath reads config from a specific path, merging the loaded
// values with defaults and validating the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())
	if err := Validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// FindConfigDir locates the .seekr directory by walking up from startDir.
func FindConfigDir(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		configDir := filepath.Join(currentDir, ConfigDirName)
		info, err := os.Stat(configDir)
		if err == nil && info.IsDir() {
			return configDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// EnsureConfigDir creates the .seekr directory if it doesn't exist and
// returns its path.
func EnsureConfigDir(workDir string) (string, error) {
	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	configDir := filepath.Join(absDir, ConfigDirName)

	info, err := os.Stat(configDir)
	if err == nil {
		if info.IsDir() {
			return configDir, nil
		}
		return "", fmt.Errorf("%s exists but is not a directory", configDir)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	return configDir, nil
}

// Validate checks that config values are valid.
func Validate(cfg *Config) error {
	if !logging.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("%w: log level must be debug, info, warn, or error, got %q",
			ErrInvalidConfig, cfg.Log.Level)
	}
	if !logging.ValidFormat(cfg.Log.Format) {
		return fmt.Errorf("%w: log format must be text or json, got %q",
			ErrInvalidConfig, cfg.Log.Format)
	}
	if cfg.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("%w: max_upload_mb must be positive, got %d",
			ErrInvalidConfig, cfg.Server.MaxUploadMB)
	}
	if cfg.Server.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: request_timeout_seconds must be positive, got %d",
			ErrInvalidConfig, cfg.Server.RequestTimeoutSeconds)
	}
	if cfg.Server.Addr == "" {
		return fmt.Errorf("%w: server addr must not be empty", ErrInvalidConfig)
	}
	return nil
}

// SaveDefault writes the default configuration to .seekr/config.yaml in
// workDir, creating the directory if needed. Fails if the file exists.
func SaveDefault(workDir string) (string, error) {
	configDir, err := EnsureConfigDir(workDir)
	if err != nil {
		return "", err
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists: %s", configPath)
	}

	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}

	header := "# seekr configuration\n\n"
	data = append([]byte(header), data...)

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}
	return configPath, nil
}
