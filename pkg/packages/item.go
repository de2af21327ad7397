// SPDX-License-Identifier: MPL-2.0

package packages

import (
	"fmt"

	"github.com/bee2/packloader/pkg/proptree"
)

type (
	// Item is a placeable item with one or more versions.
	Item struct {
		Identity

		Versions []*ItemVersion
	}

	// ItemVersion is one selectable version of an item.
	ItemVersion struct {
		Name       string
		Beta       bool
		Deprecated bool
		// Styles maps a style id to the item data used in that style. After
		// ResolveStyles it holds an entry for every known style.
		Styles map[string]*ItemFolder
		// DefStyle is the data of the first style listed for the version.
		DefStyle *ItemFolder
	}

	// ItemFolder is the data read from one items/<folder> directory. Versions
	// and styles referencing the same folder share one ItemFolder.
	ItemFolder struct {
		Folder      string
		Authors     []string
		Tags        []string
		Desc        []DescLine
		EntityCount string
		InfoURL     string
		// Icons maps an icon slot to an image name.
		Icons map[string]string
		// Editor holds every "Item" node of editoritems.txt.
		Editor []*proptree.Property
		// Config is vbsp_config.cfg, nil when the folder has none.
		Config *proptree.Property
	}
)

// Category implements Object.
func (*Item) Category() Category { return CategoryItem }

// versionDraft is an item version before folder names are resolved.
type versionDraft struct {
	version  *ItemVersion
	styles   map[string]string
	defStyle string
}

func parseItem(env *parseEnv) (Object, error) {
	var (
		drafts  []versionDraft
		folders = make(map[string]*ItemFolder)
		order   []string
	)

	for _, ver := range env.node.FindAll("version") {
		d := versionDraft{
			version: &ItemVersion{
				Name:       ver.Get("name", ""),
				Beta:       ver.Bool("beta", false),
				Deprecated: ver.Bool("deprecated", false),
			},
			styles: make(map[string]string),
		}
		for _, list := range ver.FindAll("styles") {
			for _, sty := range list.Children {
				if d.defStyle == "" {
					d.defStyle = sty.Value
				}
				d.styles[sty.Name] = sty.Value
				if _, seen := folders[sty.Value]; !seen {
					folders[sty.Value] = nil
					order = append(order, sty.Value)
				}
			}
		}
		if d.defStyle == "" {
			return nil, &InvalidPackageError{
				Archive: env.arc.Path(),
				Reason:  fmt.Sprintf("item %q version %q lists no styles", env.id, d.version.Name),
			}
		}
		drafts = append(drafts, d)
	}

	for _, name := range order {
		folder, err := readItemFolder(env, name)
		if err != nil {
			return nil, err
		}
		folders[name] = folder
	}

	item := &Item{Versions: make([]*ItemVersion, 0, len(drafts))}
	for _, d := range drafts {
		v := d.version
		v.Styles = make(map[string]*ItemFolder, len(d.styles))
		for style, folder := range d.styles {
			v.Styles[style] = folders[folder]
		}
		v.DefStyle = folders[d.defStyle]
		item.Versions = append(item.Versions, v)
	}
	return item, nil
}

// readItemFolder loads items/<name>. Both properties.txt and editoritems.txt
// must exist.
func readItemFolder(env *parseEnv, name string) (*ItemFolder, error) {
	dir := "items/" + name
	propsPath := dir + "/properties.txt"
	editorPath := dir + "/editoritems.txt"

	hasProps, hasEditor := env.arc.Has(propsPath), env.arc.Has(editorPath)
	if !hasProps || !hasEditor {
		return nil, &InvalidPackageError{
			Archive:  env.arc.Path(),
			Resource: dir,
			Reason:   fmt.Sprintf("folder not valid, likely missing (editor=%t, properties=%t)", hasEditor, hasProps),
		}
	}

	propsFile, err := readResource(env.arc, propsPath)
	if err != nil {
		return nil, err
	}
	props := propsFile.Find("Properties")
	if props == nil {
		return nil, &InvalidPackageError{Archive: env.arc.Path(), Resource: propsPath, Reason: `no "Properties" block`}
	}
	editor, err := readResource(env.arc, editorPath)
	if err != nil {
		return nil, err
	}
	config, err := readOptional(env.arc, dir+"/vbsp_config.cfg")
	if err != nil {
		return nil, err
	}

	icons := make(map[string]string)
	if icon := props.Find("icon"); icon.IsBlock() {
		for _, p := range icon.Children {
			icons[p.Name] = p.Value
		}
	}

	return &ItemFolder{
		Folder:      name,
		Authors:     splitValues(props.Get("authors", ""), ","),
		Tags:        splitValues(props.Get("tags", ""), ";"),
		Desc:        parseDesc(props),
		EntityCount: props.Get("ent_count", "??"),
		InfoURL:     props.Get("infoURL", ""),
		Icons:       icons,
		Editor:      editor.FindAll("Item"),
		Config:      config,
	}, nil
}
