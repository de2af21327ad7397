// SPDX-License-Identifier: MPL-2.0

package packages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bee2/packloader/internal/dag"
	"github.com/bee2/packloader/internal/progress"
	"github.com/bee2/packloader/pkg/archive"
)

type (
	// Loader loads package directories. A Loader keeps no state between
	// loads and may be reused.
	Loader struct {
		logger   *log.Logger
		progress progress.Sink
		workers  int
		extract  *ExtractOptions
	}

	// Option configures a Loader.
	Option func(*Loader)

	// Result is the outcome of one load.
	Result struct {
		// ID identifies the load in log output.
		ID string
		// Data holds the resolved objects.
		Data *Data
		// Packages lists the registered packages in registration order.
		Packages []PackageInfo
		// LoadOrder lists package ids so that prerequisites come first. It is
		// nil when the prerequisites form a cycle.
		LoadOrder []string
		// RequiredBy maps a package id to the packages declaring it as a
		// prerequisite.
		RequiredBy map[string][]string
		// Diagnostics are the non-fatal problems found during the load.
		Diagnostics []Diagnostic
	}

	// loadState is everything one LoadDir call mutates.
	loadState struct {
		logger     *log.Logger
		progress   progress.Sink
		registry   *Registry
		defs       *collection
		data       *Data
		diags      []Diagnostic
		archives   []archive.Archive
		order      []string
		requiredBy map[string][]string
	}

	// scanResult is the outcome of reading one archive's manifest.
	scanResult struct {
		path string
		arc  archive.Archive
		pkg  *Package
		err  error
	}
)

// WithLogger sets the logger. The default discards all output.
func WithLogger(l *log.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// WithProgress sets the progress sink.
func WithProgress(s progress.Sink) Option {
	return func(ld *Loader) {
		if s != nil {
			ld.progress = s
		}
	}
}

// WithWorkers bounds the number of archives opened concurrently.
// Values below 1 select runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(ld *Loader) {
		ld.workers = n
	}
}

// WithExtraction enables resource extraction after each load.
func WithExtraction(opts ExtractOptions) Option {
	return func(ld *Loader) {
		ld.extract = &opts
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	ld := &Loader{
		logger:   log.New(io.Discard),
		progress: progress.Nop(),
	}
	for _, opt := range opts {
		opt(ld)
	}
	if ld.workers < 1 {
		ld.workers = runtime.NumCPU()
	}
	return ld
}

// LoadDir loads every .zip package in dir. It fails only when dir cannot be
// listed or ctx is cancelled; every other problem becomes a diagnostic on the
// result. All archives opened by the load are closed before LoadDir returns.
func (ld *Loader) LoadDir(ctx context.Context, dir string) (*Result, error) {
	paths, err := listArchives(dir)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	st := &loadState{
		logger:   ld.logger.With("load", id),
		progress: ld.progress,
		registry: NewRegistry(),
		defs:     newCollection(),
		data:     &Data{},
	}
	defer st.closeArchives()

	st.logger.Info("loading packages", "dir", dir, "archives", len(paths))

	if err := st.scan(ctx, paths, ld.workers); err != nil {
		return nil, err
	}
	st.checkPrerequisiteCycles()

	n := st.collect()
	st.progress.Length(progress.StageObjects, n)
	st.progress.Length(progress.StageImages, n-len(st.defs.originalDefs(CategoryStyleVar)))

	if err := st.parse(ctx); err != nil {
		return nil, err
	}
	ResolveStyles(st.data.Styles, st.data.Items)

	if ld.extract != nil {
		st.extract(*ld.extract)
	} else {
		st.progress.Length(progress.StageResources, 1)
		st.progress.Step(progress.StageResources)
	}

	res := &Result{
		ID:          id,
		Data:        st.data,
		LoadOrder:   st.order,
		RequiredBy:  st.requiredBy,
		Diagnostics: st.diags,
	}
	for _, p := range st.registry.All() {
		res.Packages = append(res.Packages, p.Info())
	}
	st.logger.Info("load complete", "packages", len(res.Packages), "objects", st.data.Len(), "diagnostics", len(st.diags))
	return res, nil
}

// listArchives returns the .zip files of dir in name order.
func listArchives(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read packages directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".zip") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// scan opens every archive and reads its manifest concurrently, then registers
// the packages in archive order.
func (st *loadState) scan(ctx context.Context, paths []string, workers int) error {
	st.progress.Length(progress.StagePackages, len(paths))

	results := make([]scanResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = readArchive(p)
			return nil
		})
	}
	waitErr := g.Wait()

	for _, r := range results {
		if r.arc != nil {
			st.archives = append(st.archives, r.arc)
		}
	}
	if waitErr != nil {
		return waitErr
	}

	for _, r := range results {
		st.logger.Debug("reading package file", "path", r.path)
		if r.err != nil {
			st.reportScanError(r)
		} else {
			st.register(r.pkg)
		}
		st.progress.Step(progress.StagePackages)
	}
	return nil
}

func readArchive(path string) scanResult {
	za, err := archive.OpenZip(path)
	if err != nil {
		return scanResult{path: path, err: err}
	}
	pkg, err := ReadManifest(za)
	return scanResult{path: path, arc: za, pkg: pkg, err: err}
}

func (st *loadState) reportScanError(r scanResult) {
	code := CodeManifestInvalid
	switch {
	case r.arc == nil:
		code = CodeArchiveOpenFailed
	case errors.Is(r.err, ErrMissingField):
		code = CodeMissingField
	}
	st.report(Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  fmt.Sprintf("bad package %q: %v", filepath.Base(r.path), r.err),
		Path:     r.path,
		Cause:    r.err,
	})
}

func (st *loadState) register(pkg *Package) {
	if old := st.registry.Register(pkg); old != nil {
		st.report(Diagnostic{
			Severity: SeverityWarning,
			Code:     CodePackageIDCollision,
			Message:  fmt.Sprintf("package id %q in %s replaces %s", pkg.ID, pkg.Path, old.Path),
			Package:  pkg.ID,
			Path:     pkg.Path,
		})
	}
}

// checkPrerequisiteCycles reports prerequisite cycles between registered
// packages. Cycles do not affect loading; every prerequisite is registered.
func (st *loadState) checkPrerequisiteCycles() {
	order, err := st.registry.DependencyOrder()
	st.order = order
	st.requiredBy = st.registry.RequiredBy()
	var cycle *dag.CycleError
	if errors.As(err, &cycle) {
		st.report(Diagnostic{
			Severity: SeverityWarning,
			Code:     CodePrerequisiteCycle,
			Message:  cycle.Error(),
			Cause:    err,
		})
	}
}

func (st *loadState) collect() int {
	n := 0
	for _, pkg := range st.registry.All() {
		st.logger.Debug("scanning package", "package", pkg.ID)
		n += st.defs.collect(pkg, st.registry, st.report)
	}
	return n
}

// parse builds every original object, merges its overrides and records the
// result in st.data.
func (st *loadState) parse(ctx context.Context) error {
	for _, cat := range Categories() {
		k := kinds[cat]
		for _, def := range st.defs.originalDefs(cat) {
			if err := ctx.Err(); err != nil {
				return err
			}
			st.logger.Debug("loading object", "category", cat, "id", def.ID)
			obj, err := st.parseDef(k, def)
			if err != nil {
				st.reportParseError(CodeDefinitionInvalid, def, err)
				st.progress.Step(progress.StageObjects)
				continue
			}
			ident := obj.Ident()
			ident.ID = def.ID
			ident.PackageID = def.PackageID
			ident.PackageName = def.PackageName

			for _, over := range st.defs.overridesFor(cat, def.ID) {
				overObj, err := st.parseDef(k, over)
				if err != nil {
					st.reportParseError(CodeOverrideInvalid, over, err)
					continue
				}
				k.merge(obj, overObj)
			}
			st.data.add(obj)
			st.progress.Step(progress.StageObjects)
		}

		for _, id := range st.defs.orphans(cat) {
			defs := st.defs.overridesFor(cat, id)
			st.report(Diagnostic{
				Severity: SeverityInfo,
				Code:     CodeOrphanOverride,
				Message:  fmt.Sprintf("override for unknown %s %q ignored", cat, id),
				Package:  defs[0].PackageID,
				Path:     defs[0].Archive.Path(),
			})
		}
	}
	return nil
}

func (st *loadState) parseDef(k kind, def *RawDefinition) (Object, error) {
	env := &parseEnv{
		arc:  def.Archive,
		id:   def.ID,
		node: def.Node,
		warn: func(code, msg string, cause error) {
			st.report(Diagnostic{
				Severity: SeverityWarning,
				Code:     code,
				Message:  fmt.Sprintf("%s %q: %s", def.Category, def.ID, msg),
				Package:  def.PackageID,
				Path:     def.Archive.Path(),
				Cause:    cause,
			})
		},
	}
	return k.parse(env)
}

func (st *loadState) reportParseError(code string, def *RawDefinition, err error) {
	if errors.Is(err, ErrMissingField) {
		code = CodeMissingField
	}
	st.report(Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  fmt.Sprintf("%s %q: %v", def.Category, def.ID, err),
		Package:  def.PackageID,
		Path:     def.Archive.Path(),
		Cause:    err,
	})
}

// report records a diagnostic and logs it.
func (st *loadState) report(d Diagnostic) {
	st.diags = append(st.diags, d)
	kv := []any{"code", d.Code}
	if d.Package != "" {
		kv = append(kv, "package", d.Package)
	}
	switch d.Severity {
	case SeverityError:
		st.logger.Error(d.Message, kv...)
	case SeverityWarning:
		st.logger.Warn(d.Message, kv...)
	default:
		st.logger.Info(d.Message, kv...)
	}
}

// closeArchives releases every archive the load opened.
func (st *loadState) closeArchives() {
	for _, a := range st.archives {
		if err := a.Close(); err != nil {
			st.logger.Warn("closing archive failed", "path", a.Path(), "err", err)
		}
	}
	st.archives = nil
}
