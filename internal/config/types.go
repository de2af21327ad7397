// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

const (
	// LogLevelDebug logs package scanning and every diagnostic.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs progress and warnings.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs warnings and errors only.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs errors only.
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidWorkers is returned when the worker count is negative.
	ErrInvalidWorkers = errors.New("invalid worker count")
	// ErrInvalidDirPath is the sentinel error wrapped by InvalidDirPathError.
	ErrInvalidDirPath = errors.New("invalid directory path")
	// ErrInvalidExtractConfig is the sentinel error wrapped by InvalidExtractConfigError.
	ErrInvalidExtractConfig = errors.New("invalid extract config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is the minimum level written by the CLI logger.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	// It wraps ErrInvalidLogLevel for errors.Is() compatibility.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidWorkersError is returned when Workers is negative.
	InvalidWorkersError struct {
		Value int
	}

	// DirPath is a filesystem directory. It may contain $VAR references until
	// ExpandPaths runs.
	DirPath string

	// InvalidDirPathError is returned when a DirPath is empty or whitespace-only.
	InvalidDirPathError struct {
		Field string
		Value DirPath
	}

	// InvalidExtractConfigError collects field errors of an ExtractConfig.
	InvalidExtractConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError collects field errors of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// PackagesDir is scanned for package archives.
		PackagesDir DirPath `json:"packages_dir" mapstructure:"packages_dir"`
		// Workers bounds concurrent manifest reads; 0 means one per CPU.
		Workers int `json:"workers" mapstructure:"workers"`
		// LogLevel is the minimum CLI log level.
		LogLevel LogLevel `json:"log_level" mapstructure:"log_level"`
		// Extract configures resource extraction.
		Extract ExtractConfig `json:"extract" mapstructure:"extract"`
	}

	// ExtractConfig configures where package resources are copied.
	ExtractConfig struct {
		// Enabled turns extraction on for every load.
		Enabled bool `json:"enabled" mapstructure:"enabled"`
		// CacheDir holds the temporary extraction directory.
		CacheDir DirPath `json:"cache_dir" mapstructure:"cache_dir"`
		// ImagesDir receives resources/bee2/ content.
		ImagesDir DirPath `json:"images_dir" mapstructure:"images_dir"`
		// InstancesDir receives resources/instances/ content.
		InstancesDir DirPath `json:"instances_dir" mapstructure:"instances_dir"`
	}
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		PackagesDir: "packages",
		Workers:     0,
		LogLevel:    LogLevelInfo,
		Extract: ExtractConfig{
			Enabled:      false,
			CacheDir:     "cache",
			ImagesDir:    "images/cache",
			InstancesDir: "inst_cache",
		},
	}
}

// String returns the level name.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the defined levels.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// Error implements the error interface for InvalidWorkersError.
func (e *InvalidWorkersError) Error() string {
	return fmt.Sprintf("invalid worker count %d (must be >= 0)", e.Value)
}

// Unwrap returns ErrInvalidWorkers for errors.Is() compatibility.
func (e *InvalidWorkersError) Unwrap() error { return ErrInvalidWorkers }

// String returns the path.
func (p DirPath) String() string { return string(p) }

func (p DirPath) validate(field string) []error {
	if strings.TrimSpace(string(p)) == "" {
		return []error{&InvalidDirPathError{Field: field, Value: p}}
	}
	return nil
}

// Error implements the error interface for InvalidDirPathError.
func (e *InvalidDirPathError) Error() string {
	return fmt.Sprintf("invalid %s %q: must not be empty", e.Field, e.Value)
}

// Unwrap returns ErrInvalidDirPath for errors.Is() compatibility.
func (e *InvalidDirPathError) Unwrap() error { return ErrInvalidDirPath }

// IsValid returns whether every directory of the ExtractConfig is set.
// Enabled needs no validation.
func (c ExtractConfig) IsValid() (bool, []error) {
	var errs []error
	errs = append(errs, c.CacheDir.validate("extract.cache_dir")...)
	errs = append(errs, c.ImagesDir.validate("extract.images_dir")...)
	errs = append(errs, c.InstancesDir.validate("extract.instances_dir")...)
	if len(errs) > 0 {
		return false, []error{&InvalidExtractConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidExtractConfigError.
func (e *InvalidExtractConfigError) Error() string {
	return fmt.Sprintf("invalid extract config: %s", joinErrors(e.FieldErrors))
}

// Unwrap returns ErrInvalidExtractConfig and the field errors.
func (e *InvalidExtractConfigError) Unwrap() []error {
	return append([]error{ErrInvalidExtractConfig}, e.FieldErrors...)
}

// IsValid returns whether the Config has valid fields.
func (c *Config) IsValid() (bool, []error) {
	var errs []error
	errs = append(errs, c.PackagesDir.validate("packages_dir")...)
	if c.Workers < 0 {
		errs = append(errs, &InvalidWorkersError{Value: c.Workers})
	}
	if valid, fieldErrs := c.LogLevel.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Extract.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Validate is IsValid folded into a single error.
func (c *Config) Validate() error {
	if valid, errs := c.IsValid(); !valid {
		return errs[0]
	}
	return nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s", joinErrors(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig and the field errors.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// ExpandPaths returns a copy of the config with $VAR and ${VAR} references in
// every path expanded using getenv. A nil getenv reads the process environment.
func (c *Config) ExpandPaths(getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	out := *c
	fields := []struct {
		name string
		path *DirPath
	}{
		{"packages_dir", &out.PackagesDir},
		{"extract.cache_dir", &out.Extract.CacheDir},
		{"extract.images_dir", &out.Extract.ImagesDir},
		{"extract.instances_dir", &out.Extract.InstancesDir},
	}
	for _, f := range fields {
		expanded, err := shell.Expand(string(*f.path), getenv)
		if err != nil {
			return nil, fmt.Errorf("expand %s %q: %w", f.name, *f.path, err)
		}
		*f.path = DirPath(expanded)
	}
	return &out, nil
}

func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
