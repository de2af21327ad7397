// SPDX-License-Identifier: MPL-2.0

package packages

import (
	"context"
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/bee2/packloader/internal/testutil"
	"github.com/bee2/packloader/pkg/archive"
	"github.com/bee2/packloader/pkg/proptree"
)

const editorItems = `"Item" { "Type" "ITEM_X" }
"Item" { "Type" "ITEM_Y" }
`

// styleBlock renders the inner lines of a Style definition.
func styleBlock(id, base, folder string) string {
	body := fmt.Sprintf("\t\"ID\" %q\n\t\"Name\" %q\n\t\"folder\" %q", id, id+" style", folder)
	if base != "" {
		body += fmt.Sprintf("\n\t\"base\" %q", base)
	}
	return body
}

// itemBlock renders an Item definition with one version using the given
// style -> folder pairs, in order.
func itemBlock(id string, pairs ...string) string {
	body := fmt.Sprintf("\t\"ID\" %q\n\t\"version\"\n\t\t{\n\t\t\"name\" \"v1\"\n\t\t\"styles\"\n\t\t\t{\n", id)
	for i := 0; i+1 < len(pairs); i += 2 {
		body += fmt.Sprintf("\t\t\t%q %q\n", pairs[i], pairs[i+1])
	}
	return body + "\t\t\t}\n\t\t}"
}

// withStyleFolder adds the resources of styles/<folder>.
func withStyleFolder(b *testutil.PackageBuilder, folder string) *testutil.PackageBuilder {
	return b.File("styles/"+folder+"/items.txt", editorItems)
}

// withItemFolder adds the resources of items/<folder>.
func withItemFolder(b *testutil.PackageBuilder, folder string) *testutil.PackageBuilder {
	return b.
		File("items/"+folder+"/properties.txt", `"Properties" { "authors" "Ada, Bob" "tags" "Tag1; Tag2" }`).
		File("items/"+folder+"/editoritems.txt", editorItems)
}

// memArchive builds an in-memory archive from entry name -> content.
func memArchive(t *testing.T, files map[string]string) archive.Archive {
	t.Helper()
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	a, err := archive.FromFS("mem.zip", fsys)
	if err != nil {
		t.Fatalf("FromFS() error = %v", err)
	}
	return a
}

// mustParseNode parses text and returns its first top-level node.
func mustParseNode(t *testing.T, text string) *proptree.Property {
	t.Helper()
	root, err := proptree.ParseString(text, "def.txt")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if len(root.Children) == 0 {
		t.Fatal("no nodes parsed")
	}
	return root.Children[0]
}

// parseWith runs a category parser over node, recording warnings.
func parseWith(t *testing.T, cat Category, a archive.Archive, node *proptree.Property) (Object, []string, error) {
	t.Helper()
	var warnings []string
	env := &parseEnv{
		arc:  a,
		id:   node.Get("id", ""),
		node: node,
		warn: func(code, _ string, _ error) { warnings = append(warnings, code) },
	}
	obj, err := kinds[cat].parse(env)
	return obj, warnings, err
}

// mustLoad runs a load over dir and fails the test on error.
func mustLoad(t *testing.T, dir string, opts ...Option) *Result {
	t.Helper()
	res, err := NewLoader(opts...).LoadDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	return res
}

// diagCodes returns the diagnostic codes of a result in order.
func diagCodes(res *Result) []string {
	codes := make([]string, 0, len(res.Diagnostics))
	for _, d := range res.Diagnostics {
		codes = append(codes, d.Code)
	}
	return codes
}

func hasDiag(res *Result, code string) bool {
	for _, d := range res.Diagnostics {
		if d.Code == code {
			return true
		}
	}
	return false
}
