// SPDX-License-Identifier: MPL-2.0

package packages

import (
	"github.com/bee2/packloader/pkg/archive"
	"github.com/bee2/packloader/pkg/proptree"
)

type (
	// parseEnv is what a category parser sees of one definition.
	parseEnv struct {
		arc  archive.Archive
		id   string
		node *proptree.Property
		// warn reports a non-fatal problem found while parsing.
		warn func(code, msg string, cause error)
	}

	// kind is the parse and merge behavior of one category.
	kind struct {
		parse func(env *parseEnv) (Object, error)
		// merge folds a parsed override into the original.
		merge func(orig, over Object)
	}
)

var kinds = [numCategories]kind{
	CategoryStyle:     {parse: parseStyle, merge: noMerge},
	CategoryItem:      {parse: parseItem, merge: noMerge},
	CategoryQuotePack: {parse: parseVoice, merge: noMerge},
	CategorySkybox:    {parse: parseSkybox, merge: mergeAs((*Skybox).merge)},
	CategoryGoo:       {parse: parseGoo, merge: mergeAs((*Goo).merge)},
	CategoryMusic:     {parse: parseMusic, merge: mergeAs((*Music).merge)},
	CategoryStyleVar:  {parse: parseStyleVar, merge: mergeAs((*StyleVar).merge)},
}

// noMerge discards the override. Styles, items and quote packs accept
// overrides but ignore their content.
func noMerge(Object, Object) {}

func mergeAs[T Object](fn func(T, T)) func(orig, over Object) {
	return func(orig, over Object) {
		o, ok1 := orig.(T)
		v, ok2 := over.(T)
		if ok1 && ok2 {
			fn(o, v)
		}
	}
}

// readResource parses a required archive entry.
func readResource(a archive.Archive, name string) (*proptree.Property, error) {
	tree, err := archive.ReadTree(a, name)
	if archive.IsNotExist(err) {
		return nil, &InvalidPackageError{Archive: a.Path(), Resource: name, Reason: "required resource missing"}
	}
	if err != nil {
		return nil, &InvalidPackageError{Archive: a.Path(), Resource: name, Reason: "resource unreadable", Cause: err}
	}
	return tree, nil
}

// readOptional parses an optional archive entry. A missing entry yields nil.
func readOptional(a archive.Archive, name string) (*proptree.Property, error) {
	if !a.Has(name) {
		return nil, nil
	}
	return readResource(a, name)
}

// readConfig loads an optional category configuration file. An empty name
// means no configuration; a named file that does not exist is reported as a
// warning. Either way an empty block is returned.
func (env *parseEnv) readConfig(name string) (*proptree.Property, error) {
	if name == "" {
		return proptree.NewBlock(""), nil
	}
	tree, err := readOptional(env.arc, name)
	if err != nil {
		return nil, err
	}
	if tree == nil {
		if env.warn != nil {
			env.warn(CodeConfigMissing, name+" not in "+env.arc.Path(), nil)
		}
		return proptree.NewBlock(""), nil
	}
	return tree, nil
}
