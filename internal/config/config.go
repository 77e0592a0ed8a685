// Package config loads codesweep's configuration from defaults, a project
// config file (.codesweep/config.yml), and CODESWEEP_*-prefixed environment
// variables, in that priority order (environment wins).
package config

// Config represents the complete codesweep configuration. It can be loaded
// from .codesweep/config.yml with environment variable overrides.
type Config struct {
	Scan   ScanConfig   `yaml:"scan" mapstructure:"scan"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Parse  ParseConfig  `yaml:"parse" mapstructure:"parse"`
	S3     S3Config     `yaml:"s3" mapstructure:"s3"`
}

// ScanConfig controls which files are discovered: the language filter and
// the ignore globs handed to internal/discovery.
type ScanConfig struct {
	Languages []string `yaml:"languages" mapstructure:"languages"` // empty means every supported language
	Ignore    []string `yaml:"ignore" mapstructure:"ignore"`
}

// OutputConfig controls where the Parquet dataset lands and the default
// rendering of query commands.
type OutputConfig struct {
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`
	Format  string `yaml:"format" mapstructure:"format"` // "table", "json", or "csv"
}

// ParseConfig controls the parallel extraction pass.
type ParseConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"` // 0 means runtime.NumCPU()
}

// S3Config configures the optional push/pull dataset sync. BucketName,
// Endpoint, Region, and Prefix can live in a config file; AccessKeyID and
// SecretAccessKey are read only from the environment and so carry no
// yaml/mapstructure tag.
type S3Config struct {
	BucketName string `yaml:"bucket_name" mapstructure:"bucket_name"`
	Endpoint   string `yaml:"endpoint" mapstructure:"endpoint"`
	Region     string `yaml:"region" mapstructure:"region"`
	Prefix     string `yaml:"prefix" mapstructure:"prefix"`

	AccessKeyID     string `yaml:"-" mapstructure:"-"`
	SecretAccessKey string `yaml:"-" mapstructure:"-"`
}

// Default returns a configuration with sensible defaults: every supported
// language, the common build-artifact directories ignored, a dataset
// written to .codesweep in the current directory, and one worker per CPU.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			Languages: []string{},
			Ignore: []string{
				"node_modules/**",
				"vendor/**",
				"target/**",
				"__pycache__/**",
				".venv/**",
				"venv/**",
				"bin/**",
				"obj/**",
				".git/**",
				"dist/**",
				"build/**",
			},
		},
		Output: OutputConfig{
			DataDir: ".codesweep",
			Format:  "table",
		},
		Parse: ParseConfig{
			Workers: 0,
		},
		S3: S3Config{
			Region: "us-east-1",
		},
	}
}
