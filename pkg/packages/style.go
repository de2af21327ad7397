// SPDX-License-Identifier: MPL-2.0

package packages

import (
	"github.com/bee2/packloader/pkg/proptree"
)

type (
	// Style is a visual style. Items carry per-style data and fall back along
	// the style's base chain when they have none for it.
	Style struct {
		Identity
		SelItem

		// BaseStyle is the id of the style this one inherits from, or "".
		BaseStyle string
		// Suggested holds the selections recommended alongside the style.
		Suggested Suggested
		// Editor is the styles/<folder>/items.txt tree.
		Editor *proptree.Property
		// Config is the styles/<folder>/vbsp_config.cfg tree, an empty block
		// when the style has none.
		Config *proptree.Property
		// Bases is the resolved base chain: the style itself, then each
		// ancestor in order. It is set by ResolveStyles.
		Bases []*Style
	}

	// Suggested names the quote pack, music, skybox and goo a style suggests.
	Suggested struct {
		Quote  string `json:"quote,omitempty" yaml:"quote,omitempty" toml:"quote,omitempty"`
		Music  string `json:"music,omitempty" yaml:"music,omitempty" toml:"music,omitempty"`
		Skybox string `json:"skybox,omitempty" yaml:"skybox,omitempty" toml:"skybox,omitempty"`
		Goo    string `json:"goo,omitempty" yaml:"goo,omitempty" toml:"goo,omitempty"`
	}
)

// Category implements Object.
func (*Style) Category() Category { return CategoryStyle }

// BaseIDs returns the ids of the base chain.
func (s *Style) BaseIDs() []string {
	ids := make([]string, len(s.Bases))
	for i, b := range s.Bases {
		ids[i] = b.ID
	}
	return ids
}

func parseStyle(env *parseEnv) (Object, error) {
	sel, err := parseSelItem(env.node)
	if err != nil {
		return nil, err
	}

	base := env.node.Get("base", "NONE")
	if base == "NONE" {
		base = ""
	}

	sugg := env.node.Find("suggested")
	folderName, err := env.node.Require("folder")
	if err != nil {
		return nil, err
	}
	folder := "styles/" + folderName

	editor, err := readResource(env.arc, folder+"/items.txt")
	if err != nil {
		return nil, err
	}
	config, err := readOptional(env.arc, folder+"/vbsp_config.cfg")
	if err != nil {
		return nil, err
	}
	if config == nil {
		config = proptree.NewBlock("")
	}

	return &Style{
		SelItem:   sel,
		BaseStyle: base,
		Suggested: Suggested{
			Quote:  sugg.Get("quote", ""),
			Music:  sugg.Get("music", ""),
			Skybox: sugg.Get("skybox", ""),
			Goo:    sugg.Get("goo", ""),
		},
		Editor: editor,
		Config: config,
	}, nil
}
