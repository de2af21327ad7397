// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand builds the command tree around app.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "packloader",
		Short: "Load and inspect BEE2 package archives",
		Long: TitleStyle.Render("packloader") + SubtitleStyle.Render(" - BEE2 package loader") + `

packloader reads every .zip package in a directory, collects the styles,
items, voice lines, skyboxes, goo, music and style variables they define,
applies overrides and resolves style inheritance.

` + SubtitleStyle.Render("Examples:") + `
  packloader load                   Load ./packages and print a summary
  packloader load --extract         Also copy package resources
  packloader list items             List every item and its owner
  packloader deps                   Show the package load order
  packloader dump --format yaml     Write the loaded data as YAML
  packloader config show            Show current configuration`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.flags.configFile, "config", "", "config file (default is $HOME/.config/packloader/config.cue)")
	flags.StringVarP(&app.flags.dir, "dir", "d", "", "packages directory (overrides packages_dir)")
	flags.IntVarP(&app.flags.workers, "workers", "w", -1, "concurrent manifest readers (0 = one per CPU)")
	flags.BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newLoadCommand(app))
	rootCmd.AddCommand(newListCommand(app))
	rootCmd.AddCommand(newDepsCommand(app))
	rootCmd.AddCommand(newDumpCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. It is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
