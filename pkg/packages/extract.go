// SPDX-License-Identifier: MPL-2.0

package packages

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bee2/packloader/internal/progress"
	"github.com/bee2/packloader/pkg/archive"
)

// Archive prefixes that hold extractable resources, lower-cased.
const (
	ImagesPrefix    = "resources/bee2/"
	InstancesPrefix = "resources/instances/"
)

// ExtractOptions configures resource extraction.
type ExtractOptions struct {
	// CacheDir holds the temporary extraction directory.
	CacheDir string
	// ImagesDir receives the entries under resources/BEE2/.
	ImagesDir string
	// InstancesDir receives the entries under resources/instances/.
	InstancesDir string
}

// resourceEntry is one archive entry selected for extraction.
type resourceEntry struct {
	arc archive.Archive
	// name is the archive entry name.
	name string
	// dest is "images" or "instances".
	dest string
	// rel is the path below the matched prefix.
	rel string
}

func (st *loadState) extract(opts ExtractOptions) {
	var arcs []archive.Archive
	for _, p := range st.registry.All() {
		arcs = append(arcs, p.Archive)
	}
	entries := resourceEntries(arcs)
	st.progress.Length(progress.StageResources, len(entries))
	st.logger.Info("extracting resources", "entries", len(entries))

	if err := extractResources(entries, opts, st.progress, func(e resourceEntry, err error) {
		st.report(Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeExtractFailed,
			Message:  fmt.Sprintf("extract %s: %v", e.name, err),
			Path:     e.arc.Path(),
			Cause:    err,
		})
	}); err != nil {
		st.report(Diagnostic{
			Severity: SeverityError,
			Code:     CodeExtractFailed,
			Message:  err.Error(),
			Cause:    err,
		})
	}
}

// resourceEntries selects the entries of arcs under an extractable prefix,
// compared case-insensitively.
func resourceEntries(arcs []archive.Archive) []resourceEntry {
	var out []resourceEntry
	for _, a := range arcs {
		for _, name := range a.Names() {
			lower := strings.ToLower(name)
			switch {
			case strings.HasPrefix(lower, ImagesPrefix):
				out = append(out, resourceEntry{arc: a, name: name, dest: "images", rel: name[len(ImagesPrefix):]})
			case strings.HasPrefix(lower, InstancesPrefix):
				out = append(out, resourceEntry{arc: a, name: name, dest: "instances", rel: name[len(InstancesPrefix):]})
			}
		}
	}
	return out
}

// extractResources writes entries into a temporary directory under
// opts.CacheDir, clears the destination directories and moves the extracted
// trees into place. The temporary directory is removed on every path.
// Failures of single entries go to onErr and do not stop extraction.
func extractResources(entries []resourceEntry, opts ExtractOptions, sink progress.Sink, onErr func(resourceEntry, error)) (err error) {
	if err = os.MkdirAll(opts.CacheDir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	tmp, err := os.MkdirTemp(opts.CacheDir, "extract-")
	if err != nil {
		return fmt.Errorf("create extraction directory: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(tmp); rmErr != nil && err == nil {
			err = fmt.Errorf("remove extraction directory: %w", rmErr)
		}
	}()

	for _, e := range entries {
		if err := extractEntry(e, filepath.Join(tmp, e.dest)); err != nil {
			onErr(e, err)
		}
		sink.Step(progress.StageResources)
	}

	if err = replaceDir(filepath.Join(tmp, "images"), opts.ImagesDir); err != nil {
		return err
	}
	if err = replaceDir(filepath.Join(tmp, "instances"), opts.InstancesDir); err != nil {
		return err
	}
	return nil
}

func extractEntry(e resourceEntry, root string) (err error) {
	rel := filepath.FromSlash(e.rel)
	if rel == "" || rel == "." {
		return nil
	}
	dest := filepath.Join(root, rel)
	relPath, relErr := filepath.Rel(root, dest)
	if relErr != nil || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return fmt.Errorf("invalid path in archive: %s", e.name)
	}
	if err = os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	rc, err := e.arc.Open(e.name)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	_, err = io.Copy(f, rc)
	return err
}

// replaceDir removes target and, when src exists, moves src to target.
func replaceDir(src, target string) error {
	if target == "" {
		return nil
	}
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("clear %s: %w", target, err)
	}
	if _, err := os.Stat(src); err != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create parent of %s: %w", target, err)
	}
	if err := os.Rename(src, target); err != nil {
		return fmt.Errorf("move resources to %s: %w", target, err)
	}
	return nil
}
