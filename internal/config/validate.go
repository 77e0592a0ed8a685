package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFormat indicates an unsupported output format.
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidWorkers indicates a negative worker count.
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrEmptyDataDir indicates a missing output data directory.
	ErrEmptyDataDir = errors.New("empty output data directory")

	// ErrIncompleteS3Config indicates a partially-specified S3 sync target.
	ErrIncompleteS3Config = errors.New("incomplete s3 configuration")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateOutput(&cfg.Output); err != nil {
		errs = append(errs, err)
	}
	if err := validateParse(&cfg.Parse); err != nil {
		errs = append(errs, err)
	}
	if err := validateS3(&cfg.S3); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

func validateOutput(cfg *OutputConfig) error {
	var errs []error

	if strings.TrimSpace(cfg.DataDir) == "" {
		errs = append(errs, fmt.Errorf("%w: data_dir is required", ErrEmptyDataDir))
	}

	format := strings.ToLower(cfg.Format)
	if format != "table" && format != "json" && format != "csv" {
		errs = append(errs, fmt.Errorf("%w: must be 'table', 'json', or 'csv', got '%s'", ErrInvalidFormat, cfg.Format))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

func validateParse(cfg *ParseConfig) error {
	if cfg.Workers < 0 {
		return fmt.Errorf("%w: workers cannot be negative, got %d", ErrInvalidWorkers, cfg.Workers)
	}
	return nil
}

func validateS3(cfg *S3Config) error {
	// The bucket/endpoint pair is only required when push/pull is actually
	// invoked, not at general config-load time - a codesweep user who never
	// syncs a dataset shouldn't need S3 settings at all. Only flag the case
	// where one of the pair is set without the other, since that's always
	// a mistake rather than an unused feature.
	hasBucket := strings.TrimSpace(cfg.BucketName) != ""
	hasEndpoint := strings.TrimSpace(cfg.Endpoint) != ""
	if hasBucket != hasEndpoint {
		return fmt.Errorf("%w: bucket_name and endpoint must both be set or both be empty", ErrIncompleteS3Config)
	}
	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
