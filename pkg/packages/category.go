// SPDX-License-Identifier: MPL-2.0

package packages

import (
	"fmt"
	"strings"
)

// Content categories, in the order they are collected and parsed.
const (
	CategoryStyle Category = iota
	CategoryItem
	CategoryQuotePack
	CategorySkybox
	CategoryGoo
	CategoryMusic
	CategoryStyleVar

	numCategories = int(CategoryStyleVar) + 1
)

// Category identifies a kind of content definition.
type Category int

var categoryNames = [numCategories]string{
	CategoryStyle:     "Style",
	CategoryItem:      "Item",
	CategoryQuotePack: "QuotePack",
	CategorySkybox:    "Skybox",
	CategoryGoo:       "Goo",
	CategoryMusic:     "Music",
	CategoryStyleVar:  "StyleVar",
}

// Categories returns every category in collection order.
func Categories() []Category {
	out := make([]Category, numCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// ParseCategory maps a manifest block name to its category.
func ParseCategory(name string) (Category, error) {
	for i, n := range categoryNames {
		if strings.EqualFold(n, name) {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown content category %q", name)
}

// String returns the manifest block name of the category.
func (c Category) String() string {
	if c < 0 || int(c) >= numCategories {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
