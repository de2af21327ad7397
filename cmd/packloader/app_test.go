// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/bee2/packloader/internal/config"
	"github.com/bee2/packloader/internal/testutil"
)

// cliRun captures one command execution.
type cliRun struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
	err    error
}

// configFor returns the default configuration pointed at dir, logging errors only.
func configFor(dir string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.PackagesDir = config.DirPath(dir)
	cfg.LogLevel = config.LogLevelError
	return cfg
}

// runCLI executes the command tree with args against cfg.
func runCLI(t *testing.T, cfg *config.Config, args ...string) *cliRun {
	t.Helper()
	run := &cliRun{}
	app := NewApp(Dependencies{
		Config:     config.Static(cfg),
		Stdout:     &run.stdout,
		Stderr:     &run.stderr,
		IssueStyle: "notty",
	})
	root := newRootCommand(app)
	root.SetOut(&run.stdout)
	root.SetErr(&run.stderr)
	root.SetArgs(args)
	run.err = root.ExecuteContext(context.Background())
	return run
}

func styleDef(id, base, folder string) string {
	body := fmt.Sprintf("\t\"ID\" %q\n\t\"Name\" %q\n\t\"folder\" %q", id, id+" style", folder)
	if base != "" {
		body += fmt.Sprintf("\n\t\"base\" %q", base)
	}
	return body
}

// writePackages writes base (style A) and ext (style B based on A, requires base).
func writePackages(t *testing.T, dir string) {
	t.Helper()
	testutil.NewPackage("base").Name("Base Package").
		Block("Style", styleDef("A", "", "a")).
		File("styles/a/items.txt", `"Item" { "Type" "ITEM_X" }`).
		WriteZip(t, dir, "1_base.zip")
	testutil.NewPackage("ext").Requires("base").
		Block("Style", styleDef("B", "A", "b")).
		File("styles/b/items.txt", `"Item" { "Type" "ITEM_X" }`).
		WriteZip(t, dir, "2_ext.zip")
}
