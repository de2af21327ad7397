// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/bee2/packloader/internal/config"
	"github.com/bee2/packloader/internal/issue"
	"github.com/bee2/packloader/internal/progress"
	"github.com/bee2/packloader/internal/watch"
	"github.com/bee2/packloader/pkg/packages"
)

const (
	// extractNever skips extraction regardless of configuration.
	extractNever extractMode = iota
	// extractConfigured follows extract.enabled.
	extractConfigured
	// extractAlways extracts even when the configuration disables it.
	extractAlways
)

type (
	// App wires CLI services and shared dependencies. Every command handler
	// receives the App and goes through it for configuration and loading.
	App struct {
		Config     ConfigProvider
		stdout     io.Writer
		stderr     io.Writer
		issueStyle string
		flags      rootFlags
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Stdout io.Writer
		Stderr io.Writer
		// IssueStyle is the glamour style used for catalog issues ("dark" by default).
		IssueStyle string
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// rootFlags holds the persistent flag values.
	rootFlags struct {
		configFile string
		dir        string
		workers    int
		verbose    bool
	}

	extractMode int

	// loadOutcome is a finished load plus the configuration it ran with.
	loadOutcome struct {
		cfg    *config.Config
		result *packages.Result
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.IssueStyle == "" {
		deps.IssueStyle = "dark"
	}
	return &App{
		Config:     deps.Config,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
		issueStyle: deps.IssueStyle,
		flags:      rootFlags{workers: -1},
	}
}

// loadConfig loads the configuration and applies the persistent flags over it.
// Paths in the result are environment-expanded.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.flags.configFile})
	if err != nil {
		a.renderIssue(err)
		return nil, err
	}

	if a.flags.dir != "" {
		cfg.PackagesDir = config.DirPath(a.flags.dir)
	}
	if a.flags.workers >= 0 {
		cfg.Workers = a.flags.workers
	}
	if a.flags.verbose {
		cfg.LogLevel = config.LogLevelDebug
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg.ExpandPaths(nil)
}

// newLogger creates the stderr logger for one command run.
func (a *App) newLogger(cfg *config.Config) *log.Logger {
	level, err := log.ParseLevel(cfg.LogLevel.String())
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}

// load runs one package load with the effective configuration.
func (a *App) load(ctx context.Context, mode extractMode) (*loadOutcome, error) {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	logger := a.newLogger(cfg)
	opts := []packages.Option{
		packages.WithLogger(logger),
		packages.WithProgress(progress.NewLogSink(logger)),
		packages.WithWorkers(cfg.Workers),
	}
	if mode == extractAlways || (mode == extractConfigured && cfg.Extract.Enabled) {
		opts = append(opts, packages.WithExtraction(packages.ExtractOptions{
			CacheDir:     cfg.Extract.CacheDir.String(),
			ImagesDir:    cfg.Extract.ImagesDir.String(),
			InstancesDir: cfg.Extract.InstancesDir.String(),
		}))
	}

	dir := cfg.PackagesDir.String()
	res, err := packages.NewLoader(opts...).LoadDir(ctx, dir)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		aerr := issue.NewErrorContext().
			WithOperation("load packages").
			WithResource(dir).
			WithIssue(issue.PackagesDirNotFoundId).
			WithSuggestion("Pass --dir to point at your packages directory").
			WithSuggestion("Set packages_dir in " + config.ConfigFileName + "." + config.ConfigFileExt).
			Wrap(err).
			BuildError()
		a.renderIssue(aerr)
		return nil, aerr
	}

	if len(res.Packages) == 0 {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+"no packages found in "+dir)
		a.renderIssueID(issue.NoPackagesFoundId)
	}
	return &loadOutcome{cfg: cfg, result: res}, nil
}

// watchPackages calls reload after every batch of archive changes in the
// packages directory until ctx is cancelled.
func (a *App) watchPackages(ctx context.Context, cfg *config.Config, reload func(context.Context) error) error {
	w, err := watch.New(watch.Config{
		Dir:    cfg.PackagesDir.String(),
		Logger: a.newLogger(cfg),
		OnChange: func(ctx context.Context, _ []string) error {
			return reload(ctx)
		},
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stderr, SubtitleStyle.Render("Watching "+w.Dir()+" for changes (Ctrl+C to stop)"))
	return w.Run(ctx)
}

// renderIssue writes the catalog issue linked to err, if any, to stderr.
func (a *App) renderIssue(err error) {
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.Issue != 0 {
		a.renderIssueID(ae.Issue)
	}
}

func (a *App) renderIssueID(id issue.Id) {
	iss := issue.Get(id)
	if iss == nil {
		return
	}
	rendered, err := iss.Render(a.issueStyle)
	if err != nil {
		return
	}
	fmt.Fprint(a.stderr, rendered)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
