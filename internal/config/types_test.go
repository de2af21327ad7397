// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestLogLevel_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level LogLevel
		want  bool
	}{
		{LogLevelDebug, true},
		{LogLevelInfo, true},
		{LogLevelWarn, true},
		{LogLevelError, true},
		{"", false},
		{"INFO", false},
		{"trace", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			t.Parallel()
			valid, errs := tt.level.IsValid()
			if valid != tt.want {
				t.Errorf("IsValid() = %v, want %v", valid, tt.want)
			}
			if !tt.want && (len(errs) != 1 || !errors.Is(errs[0], ErrInvalidLogLevel)) {
				t.Errorf("IsValid() errors = %v, want ErrInvalidLogLevel", errs)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.PackagesDir = "  "
	cfg.Workers = -2
	cfg.Extract.ImagesDir = ""

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
	}
	for _, sentinel := range []error{ErrInvalidDirPath, ErrInvalidWorkers, ErrInvalidExtractConfig} {
		if !errors.Is(err, sentinel) {
			t.Errorf("Validate() error does not wrap %v", sentinel)
		}
	}

	var cfgErr *InvalidConfigError
	if !errors.As(err, &cfgErr) || len(cfgErr.FieldErrors) != 3 {
		t.Errorf("expected 3 field errors, got %+v", cfgErr)
	}
	var dirErr *InvalidDirPathError
	if !errors.As(err, &dirErr) || dirErr.Field != "packages_dir" {
		t.Errorf("first dir error = %+v, want packages_dir", dirErr)
	}
}

func TestConfig_ExpandPaths(t *testing.T) {
	t.Parallel()

	env := map[string]string{"HOME": "/home/chell", "BEE": "/opt/bee2"}
	getenv := func(k string) string { return env[k] }

	cfg := DefaultConfig()
	cfg.PackagesDir = "$BEE/packages"
	cfg.Extract.CacheDir = "${HOME}/.cache/bee2"

	got, err := cfg.ExpandPaths(getenv)
	if err != nil {
		t.Fatalf("ExpandPaths() error = %v", err)
	}
	if got.PackagesDir != "/opt/bee2/packages" {
		t.Errorf("PackagesDir = %q", got.PackagesDir)
	}
	if got.Extract.CacheDir != "/home/chell/.cache/bee2" {
		t.Errorf("CacheDir = %q", got.Extract.CacheDir)
	}
	if got.Extract.ImagesDir != "images/cache" {
		t.Errorf("ImagesDir = %q, want it unchanged", got.Extract.ImagesDir)
	}
	if cfg.PackagesDir != "$BEE/packages" {
		t.Error("ExpandPaths() modified the receiver")
	}
}

func TestConfig_ExpandPathsRejectsCommands(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.PackagesDir = "$(rm -rf /)"
	if _, err := cfg.ExpandPaths(func(string) string { return "" }); err == nil {
		t.Error("ExpandPaths() should refuse command substitution")
	}
}
