// SPDX-License-Identifier: MPL-2.0

// Package archive abstracts the package files the loader reads from.
//
// An Archive only needs to list its entry names and open one entry for reading.
// Zip files are the on-disk format; any fs.FS can be wrapped as well, which is
// how unpacked package directories and tests are served.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/bee2/packloader/pkg/proptree"
)

type (
	// Archive is one opened package file.
	Archive interface {
		// Path identifies the archive, usually its filesystem path.
		Path() string
		// Names lists entry paths (forward slashes, no leading slash).
		Names() []string
		// Has reports whether an entry exists.
		Has(name string) bool
		// Open opens an entry for reading.
		Open(name string) (io.ReadCloser, error)
		// Close releases the underlying handle.
		Close() error
	}

	// ZipArchive is an Archive backed by a zip file on disk.
	ZipArchive struct {
		path   string
		reader *zip.ReadCloser
		names  []string
		files  map[string]*zip.File
	}

	// FSArchive is an Archive backed by an fs.FS.
	FSArchive struct {
		path  string
		fsys  fs.FS
		names []string
		index map[string]bool
	}
)

// OpenZip opens a zip archive. The caller owns the returned handle.
func OpenZip(filePath string) (*ZipArchive, error) {
	rc, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", filePath, err)
	}

	za := &ZipArchive{
		path:   filePath,
		reader: rc,
		files:  make(map[string]*zip.File, len(rc.File)),
	}
	for _, f := range rc.File {
		name := normalize(f.Name)
		if name == "" || strings.HasSuffix(f.Name, "/") {
			continue
		}
		if _, dup := za.files[name]; dup {
			continue
		}
		za.files[name] = f
		za.names = append(za.names, name)
	}
	return za, nil
}

// Path returns the archive file path.
func (z *ZipArchive) Path() string { return z.path }

// Names returns entry names in archive order.
func (z *ZipArchive) Names() []string { return z.names }

// Has reports whether the entry exists.
func (z *ZipArchive) Has(name string) bool {
	_, ok := z.files[normalize(name)]
	return ok
}

// Open opens an entry. A missing entry wraps fs.ErrNotExist.
func (z *ZipArchive) Open(name string) (io.ReadCloser, error) {
	f, ok := z.files[normalize(name)]
	if !ok {
		return nil, fmt.Errorf("%s:%s: %w", z.path, name, fs.ErrNotExist)
	}
	return f.Open()
}

// Close closes the zip file.
func (z *ZipArchive) Close() error {
	return z.reader.Close()
}

// FromFS wraps fsys as an archive identified by archivePath.
// Every regular file reachable from the root becomes an entry.
func FromFS(archivePath string, fsys fs.FS) (*FSArchive, error) {
	fa := &FSArchive{path: archivePath, fsys: fsys, index: make(map[string]bool)}
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		fa.names = append(fa.names, p)
		fa.index[p] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", archivePath, err)
	}
	sort.Strings(fa.names)
	return fa, nil
}

// Path returns the identifier given to FromFS.
func (f *FSArchive) Path() string { return f.path }

// Names returns entry names in lexical order.
func (f *FSArchive) Names() []string { return f.names }

// Has reports whether the entry exists.
func (f *FSArchive) Has(name string) bool { return f.index[normalize(name)] }

// Open opens an entry. A missing entry wraps fs.ErrNotExist.
func (f *FSArchive) Open(name string) (io.ReadCloser, error) {
	n := normalize(name)
	if !f.index[n] {
		return nil, fmt.Errorf("%s:%s: %w", f.path, name, fs.ErrNotExist)
	}
	return f.fsys.Open(n)
}

// Close is a no-op unless the wrapped filesystem is an io.Closer.
func (f *FSArchive) Close() error {
	if c, ok := f.fsys.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// ReadTree opens an entry and parses it as a property tree.
func ReadTree(a Archive, name string) (root *proptree.Property, err error) {
	rc, err := a.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return proptree.Parse(rc, a.Path()+":"+name)
}

// IsNotExist reports whether err signals a missing entry.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// normalize turns an entry name into the canonical forward-slash form.
func normalize(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return ""
	}
	return path.Clean(name)
}
