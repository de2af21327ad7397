// SPDX-License-Identifier: MPL-2.0

package packages

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestParseSelItem(t *testing.T) {
	t.Parallel()

	node := mustParseNode(t, `"Style"
{
	"name" "Clean"
	"authors" " Ada ,, Bob ,"
	"description"
		{
		"Line" "first"
		"WARNING" "second"
		}
}`)
	sel, err := parseSelItem(node)
	if err != nil {
		t.Fatalf("parseSelItem() error = %v", err)
	}
	if sel.ShortName != "Clean" {
		t.Errorf("ShortName = %q, want the name", sel.ShortName)
	}
	if want := []string{"Ada", "Bob"}; !slices.Equal(sel.Authors, want) {
		t.Errorf("Authors = %v, want %v", sel.Authors, want)
	}
	if sel.Icon != BlankIcon {
		t.Errorf("Icon = %q, want %q", sel.Icon, BlankIcon)
	}
	want := []DescLine{{Label: "line", Text: "first"}, {Label: "warning", Text: "second"}}
	if !slices.Equal(sel.Desc, want) {
		t.Errorf("Desc = %v, want %v", sel.Desc, want)
	}
}

func TestParseSelItem_FlatDescriptionAndMissingName(t *testing.T) {
	t.Parallel()

	sel, err := parseSelItem(mustParseNode(t, `"X" { "name" "N" "shortName" "S" "icon" "ico" "description" "Just one line." }`))
	if err != nil {
		t.Fatalf("parseSelItem() error = %v", err)
	}
	if sel.ShortName != "S" || sel.Icon != "ico" {
		t.Errorf("unexpected metadata %+v", sel)
	}
	if want := []DescLine{{Label: "line", Text: "Just one line."}}; !slices.Equal(sel.Desc, want) {
		t.Errorf("Desc = %v, want %v", sel.Desc, want)
	}

	if _, err := parseSelItem(mustParseNode(t, `"X" { "icon" "ico" }`)); !errors.Is(err, ErrMissingField) {
		t.Errorf("parseSelItem() without name error = %v, want ErrMissingField", err)
	}
}

func TestParseDesc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node string
		want []DescLine
	}{
		{name: "none", node: `"X" { "name" "N" }`, want: nil},
		{name: "empty block", node: `"X" { "description" {} }`, want: []DescLine{{Label: "line", Text: ""}}},
		{
			name: "flat then block",
			node: `"X" { "description" "one" "Description" { "NOTE" "two" } }`,
			want: []DescLine{{Label: "line", Text: "one"}, {Label: "note", Text: "two"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := parseDesc(mustParseNode(t, tt.node)); !slices.Equal(got, tt.want) {
				t.Errorf("parseDesc() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseStyle(t *testing.T) {
	t.Parallel()

	a := memArchive(t, map[string]string{
		"styles/clean/items.txt":       editorItems,
		"styles/clean/vbsp_config.cfg": `"Options" { "Glass" "1" }`,
	})
	node := mustParseNode(t, `"Style"
{
	"ID" "CLEAN"
	"name" "Clean"
	"base" "BEE2_ORIGINAL"
	"folder" "clean"
	"suggested" { "quote" "GLADOS" "goo" "GOO_DARK" }
}`)
	obj, _, err := parseWith(t, CategoryStyle, a, node)
	if err != nil {
		t.Fatalf("parseStyle() error = %v", err)
	}
	s := obj.(*Style)
	if s.BaseStyle != "BEE2_ORIGINAL" {
		t.Errorf("BaseStyle = %q", s.BaseStyle)
	}
	if s.Suggested != (Suggested{Quote: "GLADOS", Goo: "GOO_DARK"}) {
		t.Errorf("Suggested = %+v", s.Suggested)
	}
	if len(s.Editor.FindAll("Item")) != 2 {
		t.Errorf("Editor tree not loaded: %s", s.Editor)
	}
	if s.Config.Find("Options") == nil {
		t.Errorf("Config tree not loaded: %s", s.Config)
	}
}

func TestParseStyle_NoBaseAndNoConfig(t *testing.T) {
	t.Parallel()

	a := memArchive(t, map[string]string{"styles/x/items.txt": editorItems})
	obj, _, err := parseWith(t, CategoryStyle, a, mustParseNode(t, `"Style" { "ID" "X" "name" "X" "base" "NONE" "folder" "x" }`))
	if err != nil {
		t.Fatalf("parseStyle() error = %v", err)
	}
	s := obj.(*Style)
	if s.BaseStyle != "" {
		t.Errorf("BaseStyle = %q, want none", s.BaseStyle)
	}
	if s.Config == nil || s.Config.HasChildren() {
		t.Errorf("Config should be an empty block, got %v", s.Config)
	}
}

func TestParseStyle_MissingEditor(t *testing.T) {
	t.Parallel()

	_, _, err := parseWith(t, CategoryStyle, memArchive(t, map[string]string{}),
		mustParseNode(t, `"Style" { "ID" "X" "name" "X" "folder" "x" }`))
	var invalid *InvalidPackageError
	if !errors.As(err, &invalid) {
		t.Fatalf("parseStyle() error = %v, want *InvalidPackageError", err)
	}
	if invalid.Resource != "styles/x/items.txt" {
		t.Errorf("Resource = %q", invalid.Resource)
	}
}

func TestParseItem(t *testing.T) {
	t.Parallel()

	a := memArchive(t, map[string]string{
		"items/door_clean/properties.txt": `"Properties"
{
	"authors" "Ada, Bob"
	"tags" "Door; Test ;"
	"ent_count" "4"
	"infoURL" "https://example.com/door"
	"icon" { "0" "door_closed" "1" "door_open" }
	"description" { "line" "A door." }
}`,
		"items/door_clean/editoritems.txt": editorItems,
		"items/door_clean/vbsp_config.cfg": `"Conditions" {}`,
		"items/door_old/properties.txt":    `"Properties" {}`,
		"items/door_old/editoritems.txt":   editorItems,
	})
	node := mustParseNode(t, `"Item"
{
	"ID" "DOOR"
	"version"
		{
		"name" "Normal"
		"styles" { "CLEAN" "door_clean" "OLD" "door_old" }
		}
	"version"
		{
		"name" "Beta"
		"beta" "1"
		"deprecated" "1"
		"styles" { "OLD" "door_old" }
		"styles" { "CLEAN" "door_clean" }
		}
}`)

	obj, _, err := parseWith(t, CategoryItem, a, node)
	if err != nil {
		t.Fatalf("parseItem() error = %v", err)
	}
	item := obj.(*Item)
	if len(item.Versions) != 2 {
		t.Fatalf("got %d versions, want 2", len(item.Versions))
	}

	v1, v2 := item.Versions[0], item.Versions[1]
	if v1.Name != "Normal" || v1.Beta || v1.Deprecated {
		t.Errorf("unexpected first version %+v", v1)
	}
	if !v2.Beta || !v2.Deprecated {
		t.Errorf("second version flags not read: %+v", v2)
	}
	if v1.DefStyle.Folder != "door_clean" || v2.DefStyle.Folder != "door_old" {
		t.Errorf("DefStyle = %q, %q; want the first listed style per version", v1.DefStyle.Folder, v2.DefStyle.Folder)
	}
	if v1.Styles["CLEAN"] != v2.Styles["CLEAN"] {
		t.Error("versions referencing one folder should share its data")
	}

	clean := v1.Styles["CLEAN"]
	if !slices.Equal(clean.Authors, []string{"Ada", "Bob"}) || !slices.Equal(clean.Tags, []string{"Door", "Test"}) {
		t.Errorf("Authors/Tags = %v / %v", clean.Authors, clean.Tags)
	}
	if clean.EntityCount != "4" || clean.InfoURL != "https://example.com/door" {
		t.Errorf("EntityCount/InfoURL = %q / %q", clean.EntityCount, clean.InfoURL)
	}
	if clean.Icons["1"] != "door_open" || len(clean.Desc) != 1 {
		t.Errorf("Icons/Desc = %v / %v", clean.Icons, clean.Desc)
	}
	if len(clean.Editor) != 2 || clean.Config == nil {
		t.Errorf("editor nodes = %d, config = %v", len(clean.Editor), clean.Config)
	}

	old := v1.Styles["OLD"]
	if old.EntityCount != "??" || old.Config != nil {
		t.Errorf("defaults not applied: %+v", old)
	}
}

func TestParseItem_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		files   map[string]string
		node    string
		message string
	}{
		{
			name:    "missing editor",
			files:   map[string]string{"items/f/properties.txt": `"Properties" {}`},
			node:    `"Item" { "ID" "I" "version" { "styles" { "S" "f" } } }`,
			message: "editor=false, properties=true",
		},
		{
			name:    "missing properties",
			files:   map[string]string{"items/f/editoritems.txt": editorItems},
			node:    `"Item" { "ID" "I" "version" { "styles" { "S" "f" } } }`,
			message: "editor=true, properties=false",
		},
		{
			name:    "version without styles",
			files:   map[string]string{},
			node:    `"Item" { "ID" "I" "version" { "name" "empty" } }`,
			message: "lists no styles",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := parseWith(t, CategoryItem, memArchive(t, tt.files), mustParseNode(t, tt.node))
			if !errors.Is(err, ErrInvalidPackage) {
				t.Fatalf("parseItem() error = %v, want ErrInvalidPackage", err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q does not mention %q", err, tt.message)
			}
		})
	}
}

func TestParseItem_NoVersions(t *testing.T) {
	t.Parallel()

	obj, _, err := parseWith(t, CategoryItem, memArchive(t, map[string]string{}), mustParseNode(t, `"Item" { "ID" "EMPTY" }`))
	if err != nil {
		t.Fatalf("parseItem() error = %v", err)
	}
	if n := len(obj.(*Item).Versions); n != 0 {
		t.Errorf("got %d versions, want 0", n)
	}
}

func TestParseConfigured(t *testing.T) {
	t.Parallel()

	a := memArchive(t, map[string]string{
		"voice/glados.voice": `"Quotes" { "Line" "hello" }`,
		"skybox/dark.cfg":    `"Sky" { "fog" "1" }`,
		"goo/dark.cfg":       `"Goo" { "tint" "1" }`,
		"music/core.cfg":     `"Track" { "len" "2" }`,
	})

	tests := []struct {
		name  string
		cat   Category
		node  string
		check func(t *testing.T, obj Object)
	}{
		{
			name: "voice",
			cat:  CategoryQuotePack,
			node: `"QuotePack" { "ID" "V" "name" "GLaDOS" "file" "glados" }`,
			check: func(t *testing.T, obj Object) {
				if obj.(*Voice).Config.Find("Quotes") == nil {
					t.Error("voice config not loaded")
				}
			},
		},
		{
			name: "skybox",
			cat:  CategorySkybox,
			node: `"Skybox" { "ID" "S" "name" "Dark" "config" "dark" }`,
			check: func(t *testing.T, obj Object) {
				sky := obj.(*Skybox)
				if sky.Material != DefaultSkyboxMaterial || sky.Config.Find("Sky") == nil {
					t.Errorf("unexpected skybox %+v", sky)
				}
			},
		},
		{
			name: "goo",
			cat:  CategoryGoo,
			node: `"Goo" { "ID" "G" "name" "Dark" "config" "dark.cfg" "material" "goo/dark" }`,
			check: func(t *testing.T, obj Object) {
				goo := obj.(*Goo)
				if goo.Material != "goo/dark" || goo.CheapMaterial != "goo/dark" || goo.Config.Find("Goo") == nil {
					t.Errorf("unexpected goo %+v", goo)
				}
			},
		},
		{
			name: "music",
			cat:  CategoryMusic,
			node: `"Music" { "ID" "M" "name" "Core" "instance" "inst/music.vmf" "config" "core.cfg" }`,
			check: func(t *testing.T, obj Object) {
				m := obj.(*Music)
				if m.Instance != "inst/music.vmf" || m.Config.Find("Track") == nil {
					t.Errorf("unexpected music %+v", m)
				}
			},
		},
		{
			name: "style var",
			cat:  CategoryStyleVar,
			node: `"StyleVar" { "ID" "SV" "name" "Glass" "Style" "CLEAN" "Style" "OLD" "enabled" "1" }`,
			check: func(t *testing.T, obj Object) {
				v := obj.(*StyleVar)
				if v.Name != "Glass" || !v.Enabled || !slices.Equal(v.Styles, []string{"CLEAN", "OLD"}) {
					t.Errorf("unexpected style var %+v", v)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			obj, warnings, err := parseWith(t, tt.cat, a, mustParseNode(t, tt.node))
			if err != nil {
				t.Fatalf("parse error = %v", err)
			}
			if obj.Category() != tt.cat {
				t.Errorf("Category() = %v, want %v", obj.Category(), tt.cat)
			}
			if len(warnings) != 0 {
				t.Errorf("unexpected warnings %v", warnings)
			}
			tt.check(t, obj)
		})
	}
}

func TestParseConfigured_MissingConfigWarns(t *testing.T) {
	t.Parallel()

	a := memArchive(t, map[string]string{})
	obj, warnings, err := parseWith(t, CategorySkybox, a, mustParseNode(t, `"Skybox" { "ID" "S" "name" "Sky" "config" "gone" }`))
	if err != nil {
		t.Fatalf("parseSkybox() error = %v", err)
	}
	if !slices.Equal(warnings, []string{CodeConfigMissing}) {
		t.Errorf("warnings = %v, want [%s]", warnings, CodeConfigMissing)
	}
	if cfg := obj.(*Skybox).Config; cfg == nil || cfg.HasChildren() {
		t.Errorf("Config should be an empty block, got %v", cfg)
	}

	_, warnings, err = parseWith(t, CategoryGoo, a, mustParseNode(t, `"Goo" { "ID" "G" "name" "Goo" }`))
	if err != nil || len(warnings) != 0 {
		t.Errorf("goo without config: err = %v, warnings = %v", err, warnings)
	}
}

func TestParseMusic_RequiresInstance(t *testing.T) {
	t.Parallel()

	_, _, err := parseWith(t, CategoryMusic, memArchive(t, map[string]string{}), mustParseNode(t, `"Music" { "ID" "M" "name" "M" }`))
	if !errors.Is(err, ErrMissingField) {
		t.Errorf("parseMusic() error = %v, want ErrMissingField", err)
	}
}
