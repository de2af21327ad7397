// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bee2/packloader/internal/config"
)

// newConfigCommand creates the `packloader config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage packloader configuration",
		Long: `Manage packloader configuration.

Configuration is stored in:
  - Linux: ~/.config/packloader/config.cue
  - macOS: ~/Library/Application Support/packloader/config.cue
  - Windows: %APPDATA%\packloader\config.cue

Every key can be overridden with a PACKLOADER_* environment variable,
e.g. PACKLOADER_EXTRACT_ENABLED=true.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := config.CreateDefaultConfig()
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintf(app.stdout, "%s %s\n", WarningStyle.Render("Config file already exists:"), path)
				return nil
			}
			fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("Created"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, err := app.loadConfig(ctx)
	if err != nil {
		return err
	}

	// The provider does not report the file it used; resolve it separately.
	_, path, err := config.Resolve(ctx, config.LoadOptions{ConfigFilePath: app.flags.configFile})
	if err != nil {
		return err
	}
	if path == "" {
		path = SubtitleStyle.Render("(using defaults)")
	}

	keyStyle := IDStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(app.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), path)
	fmt.Fprintln(app.stdout)

	rows := []struct{ key, value string }{
		{"packages_dir", cfg.PackagesDir.String()},
		{"workers", strconv.Itoa(cfg.Workers)},
		{"log_level", cfg.LogLevel.String()},
		{"extract.enabled", strconv.FormatBool(cfg.Extract.Enabled)},
		{"extract.cache_dir", cfg.Extract.CacheDir.String()},
		{"extract.images_dir", cfg.Extract.ImagesDir.String()},
		{"extract.instances_dir", cfg.Extract.InstancesDir.String()},
	}
	for _, r := range rows {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render(r.key), valueStyle.Render(r.value))
	}
	return nil
}
