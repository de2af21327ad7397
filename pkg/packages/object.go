// SPDX-License-Identifier: MPL-2.0

package packages

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/bee2/packloader/pkg/proptree"
)

// BlankIcon is the icon name used when a definition names none.
const BlankIcon = "_blank"

type (
	// Object is a parsed content definition of any category.
	Object interface {
		// Category reports which category the object belongs to.
		Category() Category
		// Ident returns the object's identity fields.
		Ident() *Identity
	}

	// Identity holds the fields every content object carries.
	Identity struct {
		// ID is unique within the object's category.
		ID string
		// PackageID is the id of the package holding the original definition.
		PackageID string
		// PackageName is that package's display name.
		PackageName string
	}

	// SelItem is the selection metadata shared by styles, quote packs,
	// skyboxes, goo and music.
	SelItem struct {
		Name      string
		ShortName string
		Authors   []string
		Icon      string
		Desc      []DescLine
	}

	// DescLine is one labelled description line.
	DescLine struct {
		Label string `json:"label" yaml:"label" toml:"label"`
		Text  string `json:"text" yaml:"text" toml:"text"`
	}
)

// Ident returns the identity itself; embedding Identity satisfies Object.Ident.
func (i *Identity) Ident() *Identity { return i }

// parseSelItem reads the selection metadata of a definition block.
func parseSelItem(node *proptree.Property) (SelItem, error) {
	name, err := node.Require("name")
	if err != nil {
		return SelItem{}, err
	}
	short := node.Get("shortName", "")
	if short == "" {
		short = name
	}
	return SelItem{
		Name:      name,
		ShortName: short,
		Authors:   splitValues(node.Get("authors", ""), ","),
		Icon:      node.Get("icon", BlankIcon),
		Desc:      parseDesc(node),
	}, nil
}

// parseDesc collects description lines. A description block contributes one
// line per child labelled with the case-folded child name. A flat description
// is a single line labelled "line", and so is an empty block, with no text.
func parseDesc(node *proptree.Property) []DescLine {
	fold := cases.Fold()
	var out []DescLine
	for _, d := range node.FindAll("description") {
		if !d.HasChildren() {
			out = append(out, DescLine{Label: "line", Text: d.Value})
			continue
		}
		for _, line := range d.Children {
			out = append(out, DescLine{Label: fold.String(line.Name), Text: line.Value})
		}
	}
	return out
}

// splitValues splits s on sep, trims every token and drops empty ones.
func splitValues(s, sep string) []string {
	var out []string
	for _, v := range strings.Split(s, sep) {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
