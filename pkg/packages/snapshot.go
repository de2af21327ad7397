// SPDX-License-Identifier: MPL-2.0

package packages

import (
	"golang.org/x/exp/slices"
)

type (
	// Snapshot is a serializable summary of a load result.
	Snapshot struct {
		LoadID      string            `json:"load_id" yaml:"load_id" toml:"load_id"`
		Packages    []PackageInfo     `json:"packages" yaml:"packages" toml:"packages"`
		LoadOrder   []string          `json:"load_order,omitempty" yaml:"load_order,omitempty" toml:"load_order,omitempty"`
		Styles      []StyleSummary    `json:"styles" yaml:"styles" toml:"styles"`
		Items       []ItemSummary     `json:"items" yaml:"items" toml:"items"`
		QuotePacks  []ObjectSummary   `json:"quote_packs" yaml:"quote_packs" toml:"quote_packs"`
		Skyboxes    []ObjectSummary   `json:"skyboxes" yaml:"skyboxes" toml:"skyboxes"`
		Goo         []ObjectSummary   `json:"goo" yaml:"goo" toml:"goo"`
		Music       []ObjectSummary   `json:"music" yaml:"music" toml:"music"`
		StyleVars   []StyleVarSummary `json:"style_vars" yaml:"style_vars" toml:"style_vars"`
		Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty" toml:"diagnostics,omitempty"`
	}

	// ObjectSummary describes one selectable object.
	ObjectSummary struct {
		ID      string   `json:"id" yaml:"id" toml:"id"`
		Package string   `json:"package" yaml:"package" toml:"package"`
		Name    string   `json:"name" yaml:"name" toml:"name"`
		Authors []string `json:"authors,omitempty" yaml:"authors,omitempty" toml:"authors,omitempty"`
	}

	// StyleSummary describes a style and its resolved base chain.
	StyleSummary struct {
		ObjectSummary `yaml:",inline"`

		Base      string    `json:"base,omitempty" yaml:"base,omitempty" toml:"base,omitempty"`
		Bases     []string  `json:"bases" yaml:"bases" toml:"bases"`
		Suggested Suggested `json:"suggested" yaml:"suggested" toml:"suggested"`
	}

	// ItemSummary describes an item's versions.
	ItemSummary struct {
		ID       string           `json:"id" yaml:"id" toml:"id"`
		Package  string           `json:"package" yaml:"package" toml:"package"`
		Versions []VersionSummary `json:"versions" yaml:"versions" toml:"versions"`
	}

	// VersionSummary maps each style of an item version to its folder.
	VersionSummary struct {
		Name       string            `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
		Beta       bool              `json:"beta,omitempty" yaml:"beta,omitempty" toml:"beta,omitempty"`
		Deprecated bool              `json:"deprecated,omitempty" yaml:"deprecated,omitempty" toml:"deprecated,omitempty"`
		Default    string            `json:"default" yaml:"default" toml:"default"`
		Styles     map[string]string `json:"styles" yaml:"styles" toml:"styles"`
	}

	// StyleVarSummary describes a style variable.
	StyleVarSummary struct {
		ID      string   `json:"id" yaml:"id" toml:"id"`
		Package string   `json:"package" yaml:"package" toml:"package"`
		Name    string   `json:"name" yaml:"name" toml:"name"`
		Styles  []string `json:"styles,omitempty" yaml:"styles,omitempty" toml:"styles,omitempty"`
		Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	}

	// DiagnosticEntry is the serializable form of a Diagnostic.
	DiagnosticEntry struct {
		Severity Severity `json:"severity" yaml:"severity" toml:"severity"`
		Code     string   `json:"code" yaml:"code" toml:"code"`
		Message  string   `json:"message" yaml:"message" toml:"message"`
		Package  string   `json:"package,omitempty" yaml:"package,omitempty" toml:"package,omitempty"`
	}
)

// NewSnapshot summarizes a load result.
func NewSnapshot(res *Result) *Snapshot {
	d := res.Data
	if d == nil {
		d = &Data{}
	}
	s := &Snapshot{
		LoadID:     res.ID,
		Packages:   slices.Clone(res.Packages),
		LoadOrder:  slices.Clone(res.LoadOrder),
		Styles:     make([]StyleSummary, 0, len(d.Styles)),
		Items:      make([]ItemSummary, 0, len(d.Items)),
		QuotePacks: make([]ObjectSummary, 0, len(d.QuotePacks)),
		Skyboxes:   make([]ObjectSummary, 0, len(d.Skyboxes)),
		Goo:        make([]ObjectSummary, 0, len(d.Goo)),
		Music:      make([]ObjectSummary, 0, len(d.Music)),
		StyleVars:  make([]StyleVarSummary, 0, len(d.StyleVars)),
	}

	for _, st := range d.Styles {
		s.Styles = append(s.Styles, StyleSummary{
			ObjectSummary: summarize(&st.Identity, &st.SelItem),
			Base:          st.BaseStyle,
			Bases:         st.BaseIDs(),
			Suggested:     st.Suggested,
		})
	}
	for _, it := range d.Items {
		s.Items = append(s.Items, summarizeItem(it))
	}
	for _, v := range d.QuotePacks {
		s.QuotePacks = append(s.QuotePacks, summarize(&v.Identity, &v.SelItem))
	}
	for _, v := range d.Skyboxes {
		s.Skyboxes = append(s.Skyboxes, summarize(&v.Identity, &v.SelItem))
	}
	for _, v := range d.Goo {
		s.Goo = append(s.Goo, summarize(&v.Identity, &v.SelItem))
	}
	for _, v := range d.Music {
		s.Music = append(s.Music, summarize(&v.Identity, &v.SelItem))
	}
	for _, v := range d.StyleVars {
		s.StyleVars = append(s.StyleVars, StyleVarSummary{
			ID:      v.ID,
			Package: v.PackageID,
			Name:    v.Name,
			Styles:  slices.Clone(v.Styles),
			Enabled: v.Enabled,
		})
	}
	for _, diag := range res.Diagnostics {
		s.Diagnostics = append(s.Diagnostics, DiagnosticEntry{
			Severity: diag.Severity,
			Code:     diag.Code,
			Message:  diag.Message,
			Package:  diag.Package,
		})
	}
	return s
}

func summarize(id *Identity, sel *SelItem) ObjectSummary {
	return ObjectSummary{
		ID:      id.ID,
		Package: id.PackageID,
		Name:    sel.Name,
		Authors: slices.Clone(sel.Authors),
	}
}

func summarizeItem(it *Item) ItemSummary {
	out := ItemSummary{ID: it.ID, Package: it.PackageID, Versions: make([]VersionSummary, 0, len(it.Versions))}
	for _, v := range it.Versions {
		vs := VersionSummary{
			Name:       v.Name,
			Beta:       v.Beta,
			Deprecated: v.Deprecated,
			Styles:     make(map[string]string, len(v.Styles)),
		}
		if v.DefStyle != nil {
			vs.Default = v.DefStyle.Folder
		}
		for style, folder := range v.Styles {
			if folder != nil {
				vs.Styles[style] = folder.Folder
			}
		}
		out.Versions = append(out.Versions, vs)
	}
	return out
}
