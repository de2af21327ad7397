// SPDX-License-Identifier: MPL-2.0

package packages

import (
	"fmt"

	"github.com/bee2/packloader/pkg/archive"
	"github.com/bee2/packloader/pkg/proptree"
)

type (
	// RawDefinition is one content block of a manifest, before parsing.
	RawDefinition struct {
		Category Category
		ID       string
		// Archive is the owning package's archive; it is borrowed, not owned.
		Archive     archive.Archive
		Node        *proptree.Property
		PackageID   string
		PackageName string
		Override    bool
	}

	// collection is the per-load output of definition collection.
	collection struct {
		originals [numCategories][]*RawDefinition
		byID      [numCategories]map[string]*RawDefinition
		overrides [numCategories]map[string][]*RawDefinition
		// overrideIDs keeps override ids in first-seen order.
		overrideIDs [numCategories][]string
	}
)

func newCollection() *collection {
	c := &collection{}
	for i := range numCategories {
		c.byID[i] = make(map[string]*RawDefinition)
		c.overrides[i] = make(map[string][]*RawDefinition)
	}
	return c
}

// collect gathers the definitions of pkg. A package whose prerequisites are not
// all registered contributes nothing. The returned count is the number of
// definition blocks seen, including overrides and duplicates.
func (c *collection) collect(pkg *Package, reg *Registry, report func(Diagnostic)) int {
	for _, pre := range pkg.Prerequisites {
		if _, ok := reg.Lookup(pre); !ok {
			err := &MissingPrerequisiteError{Package: pkg.ID, Prerequisite: pre}
			report(Diagnostic{
				Severity: SeverityError,
				Code:     CodeMissingPrerequisite,
				Message:  err.Error(),
				Package:  pkg.ID,
				Path:     pkg.Path,
				Cause:    err,
			})
			return 0
		}
	}

	seen := 0
	for _, cat := range Categories() {
		for _, node := range pkg.Manifest.FindAll(cat.String()) {
			seen++
			id, err := node.Require("id")
			if err != nil {
				report(Diagnostic{
					Severity: SeverityError,
					Code:     CodeMissingField,
					Message:  fmt.Sprintf("%s definition skipped: %v", cat, err),
					Package:  pkg.ID,
					Path:     pkg.Path,
					Cause:    err,
				})
				continue
			}
			def := &RawDefinition{
				Category:    cat,
				ID:          id,
				Archive:     pkg.Archive,
				Node:        node,
				PackageID:   pkg.ID,
				PackageName: pkg.Name,
				Override:    node.Bool("overrideOrig", false),
			}
			c.add(def, report)
		}
	}
	return seen
}

func (c *collection) add(def *RawDefinition, report func(Diagnostic)) {
	cat := def.Category
	if def.Override {
		if _, ok := c.overrides[cat][def.ID]; !ok {
			c.overrideIDs[cat] = append(c.overrideIDs[cat], def.ID)
		}
		c.overrides[cat][def.ID] = append(c.overrides[cat][def.ID], def)
		return
	}
	if first, dup := c.byID[cat][def.ID]; dup {
		err := &DuplicateDefinitionError{Category: cat, ID: def.ID, Package: def.PackageID, Kept: first.PackageID}
		report(Diagnostic{
			Severity: SeverityError,
			Code:     CodeDuplicateDefinition,
			Message:  err.Error(),
			Package:  def.PackageID,
			Path:     def.Archive.Path(),
			Cause:    err,
		})
		return
	}
	c.byID[cat][def.ID] = def
	c.originals[cat] = append(c.originals[cat], def)
}

// originalDefs returns the original definitions of a category in collection order.
func (c *collection) originalDefs(cat Category) []*RawDefinition {
	return c.originals[cat]
}

// overridesFor returns the override definitions for one id in collection order.
func (c *collection) overridesFor(cat Category, id string) []*RawDefinition {
	return c.overrides[cat][id]
}

// orphans returns the override ids of a category that have no original.
func (c *collection) orphans(cat Category) []string {
	var out []string
	for _, id := range c.overrideIDs[cat] {
		if _, ok := c.byID[cat][id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
