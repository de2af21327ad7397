// SPDX-License-Identifier: MPL-2.0

package packages

// Data holds the resolved objects of one load, per category, in package scan
// order then declaration order.
type Data struct {
	Styles     []*Style
	Items      []*Item
	QuotePacks []*Voice
	Skyboxes   []*Skybox
	Goo        []*Goo
	Music      []*Music
	StyleVars  []*StyleVar
}

func (d *Data) add(obj Object) {
	switch o := obj.(type) {
	case *Style:
		d.Styles = append(d.Styles, o)
	case *Item:
		d.Items = append(d.Items, o)
	case *Voice:
		d.QuotePacks = append(d.QuotePacks, o)
	case *Skybox:
		d.Skyboxes = append(d.Skyboxes, o)
	case *Goo:
		d.Goo = append(d.Goo, o)
	case *Music:
		d.Music = append(d.Music, o)
	case *StyleVar:
		d.StyleVars = append(d.StyleVars, o)
	}
}

// Objects returns the objects of one category as Object values.
func (d *Data) Objects(c Category) []Object {
	switch c {
	case CategoryStyle:
		return toObjects(d.Styles)
	case CategoryItem:
		return toObjects(d.Items)
	case CategoryQuotePack:
		return toObjects(d.QuotePacks)
	case CategorySkybox:
		return toObjects(d.Skyboxes)
	case CategoryGoo:
		return toObjects(d.Goo)
	case CategoryMusic:
		return toObjects(d.Music)
	case CategoryStyleVar:
		return toObjects(d.StyleVars)
	default:
		return nil
	}
}

// Len returns the total number of objects.
func (d *Data) Len() int {
	n := 0
	for _, c := range Categories() {
		n += len(d.Objects(c))
	}
	return n
}

func toObjects[T Object](in []T) []Object {
	out := make([]Object, len(in))
	for i, o := range in {
		out[i] = o
	}
	return out
}
