// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// PackageBuilder assembles a package archive for tests: a manifest (info.txt)
// made of the package identity plus raw content blocks, and any resource files.
type PackageBuilder struct {
	id      string
	name    string
	prereqs []string
	blocks  []string
	files   map[string]string
	noInfo  bool
}

// NewPackage starts a package with the given ID.
func NewPackage(id string) *PackageBuilder {
	return &PackageBuilder{id: id, files: make(map[string]string)}
}

// Name sets the display name.
func (b *PackageBuilder) Name(name string) *PackageBuilder {
	b.name = name
	return b
}

// Requires declares prerequisite package IDs.
func (b *PackageBuilder) Requires(ids ...string) *PackageBuilder {
	b.prereqs = append(b.prereqs, ids...)
	return b
}

// Block appends a category block; body holds the block's inner lines.
func (b *PackageBuilder) Block(category, body string) *PackageBuilder {
	b.blocks = append(b.blocks, fmt.Sprintf("%q\n\t{\n%s\n\t}\n", category, body))
	return b
}

// File adds a resource entry to the archive.
func (b *PackageBuilder) File(name, content string) *PackageBuilder {
	b.files[name] = content
	return b
}

// WithoutManifest drops info.txt from the archive.
func (b *PackageBuilder) WithoutManifest() *PackageBuilder {
	b.noInfo = true
	return b
}

// Manifest renders the info.txt text.
func (b *PackageBuilder) Manifest() string {
	var sb strings.Builder
	if b.id != "" {
		fmt.Fprintf(&sb, "\"ID\" %q\n", b.id)
	}
	if b.name != "" {
		fmt.Fprintf(&sb, "\"Name\" %q\n", b.name)
	}
	if len(b.prereqs) > 0 {
		sb.WriteString("\"Prerequisites\"\n\t{\n")
		for _, p := range b.prereqs {
			fmt.Fprintf(&sb, "\t\"Package\" %q\n", p)
		}
		sb.WriteString("\t}\n")
	}
	for _, blk := range b.blocks {
		sb.WriteString(blk)
	}
	return sb.String()
}

// Files returns every archive entry, manifest included.
func (b *PackageBuilder) Files() map[string]string {
	out := make(map[string]string, len(b.files)+1)
	for k, v := range b.files {
		out[k] = v
	}
	if !b.noInfo {
		out["info.txt"] = b.Manifest()
	}
	return out
}

// WriteZip writes the package to dir/<fileName> and returns the archive path.
func (b *PackageBuilder) WriteZip(t testing.TB, dir, fileName string) string {
	t.Helper()
	path := filepath.Join(dir, fileName)
	WriteZip(t, path, b.Files())
	return path
}

// WriteZip writes a zip archive holding files (entry name -> content) to path.
// Entries are written in lexical order so archives are reproducible.
func WriteZip(t testing.TB, path string, files map[string]string) {
	t.Helper()
	MustMkdirAll(t, filepath.Dir(path), 0o755)

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create zip %s: %v", path, err)
	}
	zw := zip.NewWriter(f)

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(files[name])); err != nil {
			t.Fatalf("failed to write zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to finish zip %s: %v", path, err)
	}
	MustClose(t, f)
}
