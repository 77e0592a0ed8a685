package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - LoadConfigFromDir() uses defaults when no config file exists
// - LoadConfigFromDir() loads from .codesweep/config.yml when present
// - LoadConfigFromDir() merges config file with defaults
// - Environment variables override config file values
// - LoadConfigFromDir() returns error for malformed YAML
// - LoadConfigFromDir() returns error for invalid configuration values
// - Validate() accepts valid configuration
// - Validate() rejects unknown output format
// - Validate() rejects empty data_dir
// - Validate() rejects negative worker count
// - Validate() rejects a half-specified S3 target
// - Validate() returns multiple errors for multiple invalid fields

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)
	assert.Empty(t, cfg.Scan.Languages)
	assert.Contains(t, cfg.Scan.Ignore, "node_modules/**")
	assert.Contains(t, cfg.Scan.Ignore, "vendor/**")

	assert.Equal(t, ".codesweep", cfg.Output.DataDir)
	assert.Equal(t, "table", cfg.Output.Format)

	assert.Equal(t, 0, cfg.Parse.Workers)

	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.Empty(t, cfg.S3.BucketName)

	require.NoError(t, Validate(cfg))
}

func TestLoadConfigFromDir_UsesDefaultsWhenNoFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadConfigFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, Default().Output.DataDir, cfg.Output.DataDir)
}

func TestLoadConfigFromDir_ReadsProjectFile(t *testing.T) {
	dir := t.TempDir()
	configDir := filepath.Join(dir, ".codesweep")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	yml := "output:\n  data_dir: custom-data\n  format: json\nparse:\n  workers: 4\n"
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(yml), 0644))

	cfg, err := LoadConfigFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "custom-data", cfg.Output.DataDir)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 4, cfg.Parse.Workers)
}

func TestLoadConfigFromDir_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configDir := filepath.Join(dir, ".codesweep")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	yml := "output:\n  data_dir: from-file\n"
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(yml), 0644))

	t.Setenv("CODESWEEP_OUTPUT_DATA_DIR", "from-env")

	cfg, err := LoadConfigFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Output.DataDir)
}

func TestLoadConfigFromDir_S3CredentialsFromEnvOnly(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("S3_ACCESS_KEY_ID", "AKIDEXAMPLE")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")

	cfg, err := LoadConfigFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "AKIDEXAMPLE", cfg.S3.AccessKeyID)
	assert.Equal(t, "secret", cfg.S3.SecretAccessKey)
}

func TestLoadConfigFromDir_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	configDir := filepath.Join(dir, ".codesweep")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte("output: [unterminated"), 0644))

	_, err := LoadConfigFromDir(dir)
	assert.Error(t, err)
}

func TestLoadConfigFromDir_RejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	configDir := filepath.Join(dir, ".codesweep")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	yml := "output:\n  format: yaml\n"
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(yml), 0644))

	_, err := LoadConfigFromDir(dir)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestValidate_AcceptsDefault(t *testing.T) {
	assert.NoError(t, Validate(Default()))
}

func TestValidate_RejectsUnknownFormat(t *testing.T) {
	cfg := Default()
	cfg.Output.Format = "xml"
	assert.ErrorIs(t, Validate(cfg), ErrInvalidFormat)
}

func TestValidate_RejectsEmptyDataDir(t *testing.T) {
	cfg := Default()
	cfg.Output.DataDir = "  "
	assert.ErrorIs(t, Validate(cfg), ErrEmptyDataDir)
}

func TestValidate_RejectsNegativeWorkers(t *testing.T) {
	cfg := Default()
	cfg.Parse.Workers = -1
	assert.ErrorIs(t, Validate(cfg), ErrInvalidWorkers)
}

func TestValidate_RejectsHalfSpecifiedS3(t *testing.T) {
	cfg := Default()
	cfg.S3.BucketName = "my-bucket"
	assert.ErrorIs(t, Validate(cfg), ErrIncompleteS3Config)
}

func TestValidate_AcceptsFullySpecifiedS3(t *testing.T) {
	cfg := Default()
	cfg.S3.BucketName = "my-bucket"
	cfg.S3.Endpoint = "https://s3.example.com"
	assert.NoError(t, Validate(cfg))
}

func TestValidate_ReportsMultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Output.Format = "xml"
	cfg.Parse.Workers = -1
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
	assert.Contains(t, err.Error(), "invalid worker count")
}
