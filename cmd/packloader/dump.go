// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bee2/packloader/pkg/packages"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatTOML = "toml"
)

func newDumpCommand(app *App) *cobra.Command {
	var (
		format string
		output string
	)

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Write a snapshot of the loaded data",
		Long: `Load the packages directory and write a snapshot of the result: packages,
load order, object ids with their owners, style base chains, item style
folders, style variables and diagnostics.`,
		Example: `  packloader dump
  packloader dump --format yaml -o snapshot.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if err := checkFormat(format); err != nil {
				return err
			}
			out, err := app.load(cmd.Context(), extractNever)
			if err != nil {
				return err
			}

			w := app.stdout
			if output != "" {
				f, createErr := os.Create(output)
				if createErr != nil {
					return fmt.Errorf("failed to create %s: %w", output, createErr)
				}
				defer func() {
					if closeErr := f.Close(); closeErr != nil && err == nil {
						err = closeErr
					}
				}()
				w = f
			}
			return writeSnapshot(w, packages.NewSnapshot(out.result), format)
		},
	}

	dumpCmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json, yaml or toml")
	dumpCmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return dumpCmd
}

func checkFormat(format string) error {
	switch format {
	case formatJSON, formatYAML, formatTOML:
		return nil
	default:
		return fmt.Errorf("unknown format %q (valid: json, yaml, toml)", format)
	}
}

func writeSnapshot(w io.Writer, snap *packages.Snapshot, format string) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case formatTOML:
		if err := toml.NewEncoder(w).Encode(snap); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}
