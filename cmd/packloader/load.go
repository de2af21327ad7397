// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bee2/packloader/pkg/packages"
)

// exitCodeDiagnostics is returned by `load --strict` when warnings or errors were reported.
const exitCodeDiagnostics = 2

func newLoadCommand(app *App) *cobra.Command {
	var (
		extract bool
		strict  bool
		watch   bool
	)

	loadCmd := &cobra.Command{
		Use:   "load",
		Short: "Load the packages directory and print a summary",
		Long: `Load every package archive in the packages directory and print how many
objects of each category were found, followed by any diagnostics.

Resources are extracted when --extract is given or extract.enabled is set.
With --watch the directory is reloaded whenever an archive changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := extractConfigured
			if extract {
				mode = extractAlways
			}
			out, err := app.load(cmd.Context(), mode)
			if err != nil {
				return err
			}

			renderSummary(app.stdout, out.result)
			renderDiagnostics(app.stderr, out.result.Diagnostics, app.flags.verbose)

			if watch {
				return app.watchPackages(cmd.Context(), out.cfg, func(ctx context.Context) error {
					next, err := app.load(ctx, mode)
					if err != nil {
						return err
					}
					fmt.Fprintln(app.stdout)
					renderSummary(app.stdout, next.result)
					renderDiagnostics(app.stderr, next.result.Diagnostics, app.flags.verbose)
					return nil
				})
			}

			if !strict {
				return nil
			}
			if n := countAtLeast(out.result.Diagnostics, packages.SeverityWarning); n > 0 {
				return &ExitError{
					Code: exitCodeDiagnostics,
					Err:  fmt.Errorf("load reported %d warning(s) or error(s)", n),
				}
			}
			return nil
		},
	}

	loadCmd.Flags().BoolVar(&extract, "extract", false, "extract package resources after loading")
	loadCmd.Flags().BoolVar(&strict, "strict", false, "exit with status 2 when warnings or errors are reported")
	loadCmd.Flags().BoolVar(&watch, "watch", false, "reload whenever a package archive changes")
	loadCmd.MarkFlagsMutuallyExclusive("watch", "strict")
	return loadCmd
}

// renderSummary prints the package list and the per-category object counts.
func renderSummary(w io.Writer, res *packages.Result) {
	fmt.Fprintln(w, TitleStyle.Render("Packages"))
	for _, p := range res.Packages {
		fmt.Fprintf(w, "  %s %s\n", IDStyle.Render(p.ID), SubtitleStyle.Render(p.Name))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, TitleStyle.Render("Objects"))
	for _, cat := range packages.Categories() {
		fmt.Fprintf(w, "  %-10s %s\n", cat, countStyle.Render(fmt.Sprint(len(res.Data.Objects(cat)))))
	}
}

// renderDiagnostics prints one line per diagnostic. Verbose mode adds the cause.
func renderDiagnostics(w io.Writer, diags []packages.Diagnostic, verbose bool) {
	if len(diags) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, d := range diags {
		var prefix string
		switch d.Severity {
		case packages.SeverityError:
			prefix = ErrorStyle.Render("error")
		case packages.SeverityWarning:
			prefix = WarningStyle.Render("warning")
		default:
			prefix = VerboseStyle.Render("info")
		}

		line := fmt.Sprintf("%s: %s", prefix, d.Message)
		if d.Package != "" {
			line += " " + IDStyle.Render("["+d.Package+"]")
		}
		if d.Path != "" {
			line += fmt.Sprintf(" (%s)", d.Path)
		}
		fmt.Fprintln(w, line)

		if verbose && d.Cause != nil {
			fmt.Fprintln(w, VerboseStyle.Render("  "+formatErrorForDisplay(d.Cause, true)))
		}
	}
}

// countAtLeast counts the diagnostics of severity floor or worse.
func countAtLeast(diags []packages.Diagnostic, floor packages.Severity) int {
	rank := map[packages.Severity]int{
		packages.SeverityInfo:    0,
		packages.SeverityWarning: 1,
		packages.SeverityError:   2,
	}
	n := 0
	for _, d := range diags {
		if rank[d.Severity] >= rank[floor] {
			n++
		}
	}
	return n
}
