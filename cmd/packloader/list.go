// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bee2/packloader/pkg/packages"
)

func newListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list [category...]",
		Short: "List loaded objects by category",
		Long: `List the id and owning package of every loaded object.

Categories are matched case-insensitively and may be plural:
  style, item, quotepack, skybox, goo, music, stylevar`,
		Example: `  packloader list
  packloader list styles items`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := parseCategories(args)
			if err != nil {
				return err
			}
			out, err := app.load(cmd.Context(), extractNever)
			if err != nil {
				return err
			}
			renderObjects(app.stdout, out.result.Data, cats)
			return nil
		},
	}
}

// parseCategories resolves category arguments. No arguments means every category.
func parseCategories(args []string) ([]packages.Category, error) {
	if len(args) == 0 {
		return packages.Categories(), nil
	}
	cats := make([]packages.Category, 0, len(args))
	for _, arg := range args {
		cat, err := parseCategoryArg(arg)
		if err != nil {
			return nil, err
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

func parseCategoryArg(arg string) (packages.Category, error) {
	cat, err := packages.ParseCategory(arg)
	if err == nil {
		return cat, nil
	}
	for _, suffix := range []string{"es", "s"} {
		if trimmed, ok := strings.CutSuffix(strings.ToLower(arg), suffix); ok {
			if cat, perr := packages.ParseCategory(trimmed); perr == nil {
				return cat, nil
			}
		}
	}
	return 0, err
}

func renderObjects(w io.Writer, data *packages.Data, cats []packages.Category) {
	for i, cat := range cats {
		if i > 0 {
			fmt.Fprintln(w)
		}
		objs := data.Objects(cat)
		fmt.Fprintf(w, "%s %s\n", TitleStyle.Render(cat.String()), SubtitleStyle.Render(fmt.Sprintf("(%d)", len(objs))))
		for _, obj := range objs {
			id := obj.Ident()
			line := fmt.Sprintf("  %s %s", IDStyle.Render(id.ID), SubtitleStyle.Render(id.PackageID))
			if st, ok := obj.(*packages.Style); ok && len(st.Bases) > 1 {
				line += VerboseStyle.Render(" bases: " + strings.Join(st.BaseIDs()[1:], " > "))
			}
			fmt.Fprintln(w, line)
		}
	}
}
