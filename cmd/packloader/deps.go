// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newDepsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Show packages in prerequisite order",
		Long: `Print the registered packages so that every package follows the
prerequisites it declares, along with the packages that require it.
Prerequisite cycles are reported as diagnostics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := app.load(cmd.Context(), extractNever)
			if err != nil {
				return err
			}
			res := out.result

			prereqs := make(map[string][]string, len(res.Packages))
			for _, p := range res.Packages {
				prereqs[p.ID] = p.Prerequisites
			}

			if res.LoadOrder == nil && len(res.Packages) > 0 {
				renderDiagnostics(app.stderr, res.Diagnostics, app.flags.verbose)
				return fmt.Errorf("no load order: package prerequisites form a cycle")
			}

			fmt.Fprintln(app.stdout, TitleStyle.Render("Load order"))
			for i, id := range res.LoadOrder {
				line := fmt.Sprintf("%3d. %s", i+1, IDStyle.Render(id))
				if pre := prereqs[id]; len(pre) > 0 {
					line += SubtitleStyle.Render(" requires " + strings.Join(pre, ", "))
				}
				if by := res.RequiredBy[id]; len(by) > 0 {
					line += SubtitleStyle.Render(" required by " + strings.Join(by, ", "))
				}
				fmt.Fprintln(app.stdout, line)
			}
			return nil
		},
	}
}
