package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (CODESWEEP_*, plus the unprefixed S3_* credentials)
// 2. Config file (.codesweep/config.yml or .codesweep/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".codesweep")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("CODESWEEP")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., CODESWEEP_OUTPUT_DATA_DIR)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("scan.languages")
	v.BindEnv("scan.ignore")

	v.BindEnv("output.data_dir")
	v.BindEnv("output.format")

	v.BindEnv("parse.workers")

	v.BindEnv("s3.bucket_name")
	v.BindEnv("s3.endpoint")
	v.BindEnv("s3.region")
	v.BindEnv("s3.prefix")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// S3 credentials are never read from a config file, only the
	// environment, matching the original dataset-sync tool's own
	// from_env convention.
	cfg.S3.AccessKeyID = os.Getenv("S3_ACCESS_KEY_ID")
	cfg.S3.SecretAccessKey = os.Getenv("S3_SECRET_ACCESS_KEY")

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("scan.languages", defaults.Scan.Languages)
	v.SetDefault("scan.ignore", defaults.Scan.Ignore)

	v.SetDefault("output.data_dir", defaults.Output.DataDir)
	v.SetDefault("output.format", defaults.Output.Format)

	v.SetDefault("parse.workers", defaults.Parse.Workers)

	v.SetDefault("s3.region", defaults.S3.Region)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
