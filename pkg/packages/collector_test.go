// SPDX-License-Identifier: MPL-2.0

package packages

import (
	"errors"
	"slices"
	"testing"

	"github.com/bee2/packloader/pkg/proptree"
)

// manifestPackage builds a registered-style Package from manifest text.
func manifestPackage(t *testing.T, id, manifest string, prereqs ...string) *Package {
	t.Helper()
	info, err := proptree.ParseString(manifest, id+":info.txt")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	return &Package{
		ID:            id,
		Name:          id + " name",
		Prerequisites: prereqs,
		Path:          id + ".zip",
		Archive:       memArchive(t, map[string]string{}),
		Manifest:      info,
	}
}

func collectAll(t *testing.T, pkgs ...*Package) (*collection, []Diagnostic, []int) {
	t.Helper()
	reg := NewRegistry()
	for _, p := range pkgs {
		reg.Register(p)
	}
	var diags []Diagnostic
	report := func(d Diagnostic) { diags = append(diags, d) }
	c := newCollection()
	counts := make([]int, 0, len(pkgs))
	for _, p := range reg.All() {
		counts = append(counts, c.collect(p, reg, report))
	}
	return c, diags, counts
}

func defIDs(defs []*RawDefinition) []string {
	ids := make([]string, len(defs))
	for i, d := range defs {
		ids[i] = d.ID
	}
	return ids
}

func TestCollect_OriginalsAndOverrides(t *testing.T) {
	t.Parallel()

	base := manifestPackage(t, "base", `
"Skybox" { "ID" "SKY_A" }
"Style" { "ID" "A" }
"Skybox" { "ID" "SKY_B" }
"Skybox" { "ID" "SKY_A" "overrideOrig" "1" }`)
	ext := manifestPackage(t, "ext", `
"Skybox" { "ID" "SKY_A" "overrideOrig" "1" }
"Skybox" { "ID" "SKY_NEW" "overrideOrig" "1" }`, "base")

	c, diags, counts := collectAll(t, base, ext)
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics %v", diags)
	}
	if !slices.Equal(counts, []int{4, 2}) {
		t.Errorf("counts = %v, want [4 2]", counts)
	}
	if got := defIDs(c.originalDefs(CategorySkybox)); !slices.Equal(got, []string{"SKY_A", "SKY_B"}) {
		t.Errorf("skybox originals = %v", got)
	}
	if got := defIDs(c.originalDefs(CategoryStyle)); !slices.Equal(got, []string{"A"}) {
		t.Errorf("style originals = %v", got)
	}

	overs := c.overridesFor(CategorySkybox, "SKY_A")
	if len(overs) != 2 || overs[0].PackageID != "base" || overs[1].PackageID != "ext" {
		t.Errorf("overrides should keep scan order, got %v", overs)
	}
	if got := c.orphans(CategorySkybox); !slices.Equal(got, []string{"SKY_NEW"}) {
		t.Errorf("orphans = %v, want [SKY_NEW]", got)
	}

	def := c.originalDefs(CategoryStyle)[0]
	if def.PackageName != "base name" || def.Archive != base.Archive || def.Override {
		t.Errorf("raw definition fields not populated: %+v", def)
	}
}

func TestCollect_DuplicateKeepsFirst(t *testing.T) {
	t.Parallel()

	first := manifestPackage(t, "first", `"Style" { "ID" "DUP" "marker" "1" }`)
	second := manifestPackage(t, "second", `"Style" { "ID" "DUP" "marker" "2" }`)

	c, diags, _ := collectAll(t, first, second)
	defs := c.originalDefs(CategoryStyle)
	if len(defs) != 1 || defs[0].Node.Get("marker", "") != "1" {
		t.Fatalf("first definition should win, got %v", defs)
	}
	if len(diags) != 1 || diags[0].Code != CodeDuplicateDefinition {
		t.Fatalf("diagnostics = %v, want one duplicate_definition", diags)
	}
	if diags[0].Message != `ERROR! "DUP" defined twice!` {
		t.Errorf("Message = %q", diags[0].Message)
	}
	if !errors.Is(diags[0].Cause, ErrDuplicateDefinition) || diags[0].Package != "second" {
		t.Errorf("unexpected diagnostic %+v", diags[0])
	}
}

func TestCollect_SameIDAcrossCategories(t *testing.T) {
	t.Parallel()

	pkg := manifestPackage(t, "p", `"Style" { "ID" "X" } "Item" { "ID" "X" }`)
	c, diags, _ := collectAll(t, pkg)
	if len(diags) != 0 {
		t.Errorf("ids are per category, got %v", diags)
	}
	if len(c.originalDefs(CategoryStyle)) != 1 || len(c.originalDefs(CategoryItem)) != 1 {
		t.Error("both definitions should be kept")
	}
}

func TestCollect_MissingPrerequisite(t *testing.T) {
	t.Parallel()

	pkg := manifestPackage(t, "orphan", `"Style" { "ID" "A" } "Item" { "ID" "B" }`, "absent")
	c, diags, counts := collectAll(t, pkg)

	if counts[0] != 0 {
		t.Errorf("count = %d, want 0", counts[0])
	}
	for _, cat := range Categories() {
		if len(c.originalDefs(cat)) != 0 {
			t.Errorf("%v: package with a missing prerequisite contributed definitions", cat)
		}
	}
	if len(diags) != 1 || diags[0].Code != CodeMissingPrerequisite || !errors.Is(diags[0].Cause, ErrMissingPrerequisite) {
		t.Fatalf("diagnostics = %v", diags)
	}
}

func TestCollect_MissingIDSkipsDefinition(t *testing.T) {
	t.Parallel()

	pkg := manifestPackage(t, "p", `"Style" { "name" "no id" } "Style" { "ID" "OK" }`)
	c, diags, counts := collectAll(t, pkg)

	if got := defIDs(c.originalDefs(CategoryStyle)); !slices.Equal(got, []string{"OK"}) {
		t.Errorf("originals = %v, want [OK]", got)
	}
	if counts[0] != 2 {
		t.Errorf("count = %d, want 2", counts[0])
	}
	if len(diags) != 1 || diags[0].Code != CodeMissingField {
		t.Errorf("diagnostics = %v, want one missing_field", diags)
	}
}
