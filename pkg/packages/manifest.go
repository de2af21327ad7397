// SPDX-License-Identifier: MPL-2.0

package packages

import (
	"fmt"

	"github.com/bee2/packloader/pkg/archive"
	"github.com/bee2/packloader/pkg/proptree"
)

// ManifestName is the archive entry holding a package manifest.
const ManifestName = "info.txt"

type (
	// Package is one registered content package. It owns its archive until the
	// load that opened it finishes.
	Package struct {
		// ID is the unique package identifier.
		ID string
		// Name is the display name; it defaults to ID.
		Name string
		// Desc is the optional package description.
		Desc string
		// Prerequisites are the ids of packages this one requires.
		Prerequisites []string
		// Path is the archive path.
		Path string
		// Archive is the opened package archive.
		Archive archive.Archive
		// Manifest is the parsed info.txt tree.
		Manifest *proptree.Property
	}

	// PackageInfo is the part of a Package that outlives its load.
	PackageInfo struct {
		ID            string   `json:"id" yaml:"id" toml:"id"`
		Name          string   `json:"name" yaml:"name" toml:"name"`
		Desc          string   `json:"desc,omitempty" yaml:"desc,omitempty" toml:"desc,omitempty"`
		Prerequisites []string `json:"prerequisites,omitempty" yaml:"prerequisites,omitempty" toml:"prerequisites,omitempty"`
		Path          string   `json:"path" yaml:"path" toml:"path"`
	}
)

// ReadManifest reads the manifest of an opened archive. It returns an
// *InvalidPackageError when the manifest entry is absent or malformed and a
// *proptree.MissingFieldError when the manifest has no ID.
func ReadManifest(a archive.Archive) (*Package, error) {
	if !a.Has(ManifestName) {
		return nil, &InvalidPackageError{Archive: a.Path(), Resource: ManifestName, Reason: "manifest not found"}
	}
	info, err := archive.ReadTree(a, ManifestName)
	if err != nil {
		return nil, &InvalidPackageError{Archive: a.Path(), Resource: ManifestName, Reason: "manifest unreadable", Cause: err}
	}

	id, err := info.Require("ID")
	if err != nil {
		return nil, fmt.Errorf("%s:%s: %w", a.Path(), ManifestName, err)
	}

	return &Package{
		ID:            id,
		Name:          info.Get("Name", id),
		Desc:          info.Get("Desc", ""),
		Prerequisites: info.Values("Prerequisites"),
		Path:          a.Path(),
		Archive:       a,
		Manifest:      info,
	}, nil
}

// Info returns the package's load-independent description.
func (p *Package) Info() PackageInfo {
	return PackageInfo{
		ID:            p.ID,
		Name:          p.Name,
		Desc:          p.Desc,
		Prerequisites: p.Prerequisites,
		Path:          p.Path,
	}
}
