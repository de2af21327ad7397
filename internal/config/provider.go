// SPDX-License-Identifier: MPL-2.0

package config

import "context"

type (
	// LoadOptions selects where configuration is read from.
	LoadOptions struct {
		// ConfigFilePath names a config file that must exist.
		ConfigFilePath string
		// ConfigDirPath replaces the platform config directory for the lookup.
		ConfigDirPath string
	}

	// Provider produces a validated configuration.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Config, error)
	}

	// ProviderFunc adapts a function to the Provider interface.
	ProviderFunc func(ctx context.Context, opts LoadOptions) (*Config, error)

	fileProvider struct{}
)

// Load calls f.
func (f ProviderFunc) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	return f(ctx, opts)
}

// NewProvider returns the provider backed by config files, PACKLOADER_*
// environment variables and defaults.
func NewProvider() Provider {
	return fileProvider{}
}

// Static returns a provider that ignores its options and hands out copies of cfg.
func Static(cfg *Config) Provider {
	return ProviderFunc(func(ctx context.Context, _ LoadOptions) (*Config, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out := *cfg
		return &out, nil
	})
}

func (fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	return cfg, err
}
