// SPDX-License-Identifier: MPL-2.0

package packages

import (
	"golang.org/x/exp/maps"
)

// ResolveStyles links every style's base chain and fills in the per-style data
// of every item version.
//
// A style's chain starts with the style itself and follows BaseStyle ids until
// an id is unknown or would revisit a style already in the chain. An item
// version lacking data for a style takes the data of the nearest ancestor in
// that style's chain which it does define, or its DefStyle when none does.
func ResolveStyles(styles []*Style, items []*Item) {
	index := make(map[string]*Style, len(styles))
	for _, s := range styles {
		if _, dup := index[s.ID]; !dup {
			index[s.ID] = s
		}
	}
	for _, s := range styles {
		s.Bases = baseChain(s, index)
	}

	for _, item := range items {
		for _, v := range item.Versions {
			inheritVersion(v, styles)
		}
	}
}

func baseChain(s *Style, index map[string]*Style) []*Style {
	chain := []*Style{s}
	visited := map[string]bool{s.ID: true}
	for cur := s; cur.BaseStyle != ""; {
		next, ok := index[cur.BaseStyle]
		if !ok || visited[next.ID] {
			break
		}
		visited[next.ID] = true
		chain = append(chain, next)
		cur = next
	}
	return chain
}

func inheritVersion(v *ItemVersion, styles []*Style) {
	if v.Styles == nil {
		v.Styles = make(map[string]*ItemFolder, len(styles))
	}
	declared := maps.Clone(v.Styles)
	for _, s := range styles {
		if _, ok := declared[s.ID]; ok {
			continue
		}
		data := v.DefStyle
		for _, base := range s.Bases[1:] {
			if d, ok := declared[base.ID]; ok {
				data = d
				break
			}
		}
		v.Styles[s.ID] = data
	}
}
